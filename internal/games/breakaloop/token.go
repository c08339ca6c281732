package breakaloop

import (
	"unicode/utf8"

	"github.com/vovakirdan/breakaloop/internal/core"
	"github.com/vovakirdan/breakaloop/internal/levels"
)

// Token is a piece of code lying in the world. Pos is the centre of the
// bottom edge of its text.
type Token struct {
	Text string
	Pos  core.Vec

	target   core.Vec
	flying   bool
	finished bool
}

func newToken(text string, pos core.Vec) *Token {
	return &Token{Text: text, Pos: pos}
}

func (t *Token) width() float64 {
	return float64(utf8.RuneCountInString(t.Text))
}

// Rect returns the area the token's text covers.
func (t *Token) Rect() core.RectF {
	w := t.width()
	return core.RectF{X: t.Pos.X - w/2, Y: t.Pos.Y - 1, W: w, H: 1}
}

// Flying reports whether the token has been collected and is on its way to
// the cursor.
func (t *Token) Flying() bool {
	return t.flying
}

// Insertion is the text spliced into the code.
func (t *Token) Insertion() string {
	return levels.Insertion(t.Text)
}

// collect starts the flight towards cursor, the top-left cell of the
// placeholder. A token already in flight keeps its target.
func (t *Token) collect(cursor core.Vec) {
	if t.flying {
		return
	}
	t.flying = true
	t.target = cursor.Add(core.Vec{X: t.width() / 2, Y: 1})
}

func (t *Token) update(dt, speed float64) {
	if !t.flying || t.finished {
		return
	}
	d := t.target.Sub(t.Pos)
	dist := d.Len()
	step := speed * dt
	if step >= dist {
		t.Pos = t.target
		t.finished = true
		return
	}
	t.Pos = t.Pos.Add(d.Scale(step / dist))
}
