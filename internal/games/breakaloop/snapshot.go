package breakaloop

// Snapshot captures the game state for determinism testing and tracing.
type Snapshot struct {
	Tick      uint64
	Phase     Phase
	Level     int // zero-based
	Cleared   int
	Code      string
	Status    string
	Remaining int // loops left to break
	TickRate  int

	PlayerX, PlayerY float64
	PlayerW, PlayerH float64
	Jumps, MaxJumps  int

	Tokens  int
	Flying  int
	Enemies int
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:     g.tick,
		Phase:    g.phase,
		Cleared:  g.cleared,
		TickRate: g.TickRate(),
	}
	s := g.stage
	if s == nil {
		return snap
	}

	snap.Level = s.index()
	snap.Code = s.code
	snap.Status = s.status
	snap.Remaining = s.program.Remaining()
	snap.PlayerX, snap.PlayerY = s.player.Pos.X, s.player.Pos.Y
	snap.PlayerW, snap.PlayerH = s.player.Size.X, s.player.Size.Y
	snap.Jumps, snap.MaxJumps = s.player.Jumps(), s.player.MaxJumps
	snap.Tokens = len(s.tokens)
	for _, t := range s.tokens {
		if t.Flying() {
			snap.Flying++
		}
	}
	snap.Enemies = len(s.enemies)
	return snap
}
