package script

// Sequencer owns the Blocks of a program and steps the front one per tick.
// Blocks are only ever removed from the front.
type Sequencer struct {
	blocks []Block
}

// NewSequencer returns a sequencer over a copy of blocks.
func NewSequencer(blocks []Block) *Sequencer {
	s := &Sequencer{}
	s.Reset(blocks)
	return s
}

// Reset replaces the program, discarding any unwind progress.
func (s *Sequencer) Reset(blocks []Block) {
	s.blocks = append([]Block(nil), blocks...)
}

// Advance runs one pass of the front Block and retires as many Blocks as the
// resulting signal asks for. It reports whether the program has finished;
// an empty program is finished without calling c.
func (s *Sequencer) Advance(c Caller) bool {
	if len(s.blocks) == 0 {
		return true
	}
	sig := Step(s.blocks[0], c)
	n := len(s.blocks)
	if uint64(sig) < uint64(n) {
		n = int(sig)
	}
	s.blocks = s.blocks[n:]
	return len(s.blocks) == 0
}

// Remaining returns the number of Blocks not yet retired.
func (s *Sequencer) Remaining() int {
	return len(s.blocks)
}

// Current returns the front Block and whether there is one.
func (s *Sequencer) Current() (Block, bool) {
	if len(s.blocks) == 0 {
		return Block{}, false
	}
	return s.blocks[0], true
}
