package breakaloop

import (
	"github.com/vovakirdan/breakaloop/internal/config"
	"github.com/vovakirdan/breakaloop/internal/core"
)

const enemyInset = 0.1

// Enemy walks the floor and picks up tokens before the player can. Pos is
// the bottom-left corner.
type Enemy struct {
	Pos  core.Vec
	Size core.Vec
	dir  float64
}

func newEnemy(pos core.Vec, cfg config.EnemyConfig) *Enemy {
	return &Enemy{Pos: pos, Size: core.Vec{X: cfg.Width, Y: cfg.Height}, dir: 1}
}

// Rect returns the enemy's bounds.
func (e *Enemy) Rect() core.RectF {
	return core.RectF{X: e.Pos.X, Y: e.Pos.Y - e.Size.Y, W: e.Size.X, H: e.Size.Y}
}

func (e *Enemy) collides(s *stage) bool {
	r := e.Rect().Inset(enemyInset)
	if r.X < 0 || r.Right() >= s.width || r.Y < 0 || r.Bottom() >= s.height {
		return true
	}
	return s.blocked(r)
}

// update patrols, or copies the player's velocity when mirror is set.
func (e *Enemy) update(dt float64, player *Player, mirror bool, s *stage, speed float64) {
	if mirror {
		e.Pos.X += player.Vel.X * dt
		back := backoff(player.Vel.X)
		for i := 0; i < maxBackoff && e.collides(s); i++ {
			e.Pos.X -= back
		}
		e.Pos.Y += player.Vel.Y * dt
		back = backoff(player.Vel.Y)
		for i := 0; i < maxBackoff && e.collides(s); i++ {
			e.Pos.Y -= back
		}
	} else {
		e.Pos.X += e.dir * speed * dt
		if e.collides(s) {
			e.dir = -e.dir
		}
	}

	r := e.Rect()
	for _, t := range s.tokens {
		if t.Rect().Intersects(r) {
			s.collect(t)
		}
	}
}
