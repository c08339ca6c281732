package breakaloop

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/breakaloop/internal/config"
	"github.com/vovakirdan/breakaloop/internal/core"
	"github.com/vovakirdan/breakaloop/internal/levels"
)

const (
	openLoop   = "int main() { while (1) { $ } }"
	closedLoop = "int main() { while (1) { update_game(); } }"
)

func quiet() *log.Logger {
	return log.New(io.Discard)
}

func testLevel(code string, tokens ...levels.TokenSpec) levels.Level {
	return levels.Level{
		ID:     "t",
		Name:   "Test",
		Code:   code,
		Spawn:  core.Vec{X: 1, Y: 40},
		Tokens: tokens,
	}
}

func token(text string, x, y float64) levels.TokenSpec {
	return levels.TokenSpec{Text: text, Pos: core.Vec{X: x, Y: y}}
}

func newTestStage(def levels.Level) *stage {
	return newStage(def, config.Default(), quiet())
}

func newTestGame(t *testing.T, opts []Option, ls ...levels.Level) *Game {
	t.Helper()
	base := []Option{
		WithConfig(config.Default()),
		WithLevels(levels.NewSet(ls...)),
		WithLogger(quiet()),
	}
	g := New(append(base, opts...)...)
	g.Reset(core.DefaultConfig())
	if err := g.Err(); err != nil {
		t.Fatalf("Reset() error = %v", err)
	}
	return g
}

// run steps g n times with the same input and returns every event.
func run(g *Game, n int, actions ...core.Action) []core.Event {
	var events []core.Event
	for i := 0; i < n; i++ {
		res := g.Step(core.NewInputFrame(actions...))
		events = append(events, res.Events...)
	}
	return events
}
