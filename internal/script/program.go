package script

// Program ties the latest compilation outcome to a Sequencer. Loading new
// source replaces both in one step so no unwind progress survives a
// recompilation.
type Program struct {
	opts    []Option
	outcome Outcome
	seq     *Sequencer
}

// NewProgram returns a program with nothing loaded.
func NewProgram(opts ...Option) *Program {
	return &Program{opts: opts, seq: NewSequencer(nil)}
}

// Load compiles src and resets the sequencer to the new Blocks. A rejected or
// failed compilation leaves an empty sequencer that Tick will not run.
func (p *Program) Load(src string) (Outcome, error) {
	out, err := Compile(src, p.opts...)
	p.outcome = out
	p.seq.Reset(out.Blocks)
	return out, err
}

// Outcome returns the latest compilation outcome.
func (p *Program) Outcome() Outcome {
	return p.outcome
}

// Status is shorthand for Outcome().Status.
func (p *Program) Status() Status {
	return p.outcome.Status
}

// Tick advances the program by one pass. It reports true once a compiled
// program has fully unwound; a program that is not compiled never finishes.
func (p *Program) Tick(c Caller) bool {
	if p.outcome.Status != StatusCompiled {
		return false
	}
	return p.seq.Advance(c)
}

// Remaining returns the number of Blocks left to run.
func (p *Program) Remaining() int {
	return p.seq.Remaining()
}

// Current returns the Block the next Tick will run.
func (p *Program) Current() (Block, bool) {
	return p.seq.Current()
}
