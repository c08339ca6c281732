package breakaloop

import (
	"math"

	"github.com/vovakirdan/breakaloop/internal/config"
	"github.com/vovakirdan/breakaloop/internal/core"
)

const (
	// collisionStep is how far a blocked body backs off per collision test.
	collisionStep = 0.05
	// maxBackoff bounds every back-off loop.
	maxBackoff = 10000
	// hitboxInset keeps touching edges from counting as overlap.
	hitboxInset = 0.05
	// spawnLift keeps a spawned body off the floor it stands on.
	spawnLift = 0.05
)

// Player is the character the user steers. Pos is the top-left corner.
type Player struct {
	Pos      core.Vec
	Size     core.Vec
	Vel      core.Vec
	MaxJumps int

	jumps int // remaining until the next landing
}

// playerInput is what the player reacts to during one tick.
type playerInput struct {
	axis float64 // -1 left, 1 right
	jump bool
}

func newPlayer(feet core.Vec, cfg config.PlayerConfig) *Player {
	size := core.Vec{X: cfg.Width, Y: cfg.Height}
	return &Player{
		Pos:      core.Vec{X: feet.X, Y: feet.Y - size.Y - spawnLift},
		Size:     size,
		MaxJumps: cfg.Jumps,
		jumps:    cfg.Jumps,
	}
}

// Rect returns the player's bounds.
func (p *Player) Rect() core.RectF {
	return core.RectF{X: p.Pos.X, Y: p.Pos.Y, W: p.Size.X, H: p.Size.Y}
}

func (p *Player) hitbox() core.RectF {
	return p.Rect().Inset(hitboxInset)
}

// Jumps returns the jumps left before the player has to land.
func (p *Player) Jumps() int {
	return p.jumps
}

// Jumping reports whether the player has used a jump since last landing.
func (p *Player) Jumping() bool {
	return p.jumps < p.MaxJumps
}

// Small reports whether the player is shrunk.
func (p *Player) Small(cfg config.PlayerConfig) bool {
	return p.Size.X < cfg.Width
}

// Shrink switches to the small size, keeping the top-left corner.
func (p *Player) Shrink(cfg config.PlayerConfig) {
	p.Size = core.Vec{X: cfg.SmallWidth, Y: cfg.SmallHeight}
}

// Restore returns a shrunk player to full size. The body grows up and to the
// left so its bottom-right corner stays put.
func (p *Player) Restore(cfg config.PlayerConfig) {
	if !p.Small(cfg) {
		return
	}
	full := core.Vec{X: cfg.Width, Y: cfg.Height}
	p.Pos = p.Pos.Sub(full.Sub(p.Size))
	p.Size = full
}

func (p *Player) collides(s *stage) bool {
	if s.blocked(p.hitbox()) {
		return true
	}
	r := p.Rect()
	return r.X < 0 || r.Y < 0 || r.Right() >= s.width || r.Bottom() >= s.height
}

func (p *Player) update(dt float64, in playerInput, s *stage, cfg config.BreakALoopConfig) {
	if in.jump && p.jumps > 0 {
		p.jumps--
		p.Vel.Y = cfg.Physics.JumpVelocity
	}

	p.Vel.Y += cfg.Physics.Gravity * dt

	target := in.axis * p.Size.X * cfg.Player.SpeedPerWidth
	p.Vel.X += (target - p.Vel.X) * (1 - math.Pow(0.5, dt/cfg.Physics.HalfLife))

	for i := 0; i < maxBackoff && p.collides(s); i++ {
		p.Pos.Y -= collisionStep
	}

	p.moveX(dt, s)
	p.moveY(dt, s)

	hit := p.hitbox()
	for _, t := range s.tokens {
		if t.Rect().Intersects(hit) {
			s.collect(t)
		}
	}
}

func (p *Player) moveX(dt float64, s *stage) {
	p.Pos.X += p.Vel.X * dt
	if !p.collides(s) {
		return
	}
	back := backoff(p.Vel.X)
	for i := 0; i < maxBackoff && p.collides(s); i++ {
		p.Pos.X -= back
	}
	p.Vel.X = 0
}

func (p *Player) moveY(dt float64, s *stage) {
	p.Pos.Y += p.Vel.Y * dt
	if !p.collides(s) {
		return
	}
	back := backoff(p.Vel.Y)
	for i := 0; i < maxBackoff && p.collides(s); i++ {
		p.Pos.Y -= back
	}
	if p.Vel.Y > 0 {
		p.jumps = p.MaxJumps
	}
	p.Vel.Y = 0
}

// backoff is the step that undoes motion at velocity v. A body blocked while
// at rest is pushed back as if it had moved forward.
func backoff(v float64) float64 {
	if v < 0 {
		return -collisionStep
	}
	return collisionStep
}
