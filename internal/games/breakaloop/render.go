package breakaloop

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/breakaloop/internal/core"
	"github.com/vovakirdan/breakaloop/internal/script"
)

// Visual characters for rendering
const (
	PlatformChar = '▓'
	PlayerChar   = '█'
	EnemyChar    = '█'
	CursorChar   = '█'
	WipeChar     = '█'
)

// wipeTilt is the horizontal lean of the transition wipe, in cells.
const wipeTilt = 20

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.loadErr != nil {
		drawCenteredMessage(dst, "Cannot load levels", g.loadErr.Error())
		return
	}
	if g.stage == nil {
		return
	}

	switch g.phase {
	case PhaseTitle:
		g.drawTitle(dst)
		return
	case PhaseFinished:
		g.drawFinished(dst)
		return
	}

	g.drawStage(dst)
	dst.DrawTextColor(1, 0, formatTime(g.elapsed), core.ColorWhite)
	header := fmt.Sprintf("Level %d/%d  %s", g.stage.index()+1, g.levels.Len(), g.stage.def.Name)
	dst.DrawTextColor(dst.Width()-len([]rune(header))-1, 0, header, core.ColorWhite)

	if g.phase == PhaseTransition {
		g.drawWipe(dst)
	}
	if g.paused {
		drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}
}

func (g *Game) drawStage(dst *core.Screen) {
	s := g.stage

	for _, p := range s.platforms {
		dst.DrawRectColor(p.Cells(), PlatformChar, core.ColorDarkGray)
	}
	for _, e := range s.enemies {
		dst.DrawRectColor(e.Rect().Cells(), EnemyChar, core.ColorRed)
	}

	g.drawCode(dst)

	for _, t := range s.tokens {
		x, y := t.Rect().Cells().X, int(math.Floor(t.Pos.Y-1))
		dst.DrawTextColor(x, y, t.Text, core.ColorBrightRed)
	}

	dst.DrawRectColor(s.player.Rect().Cells(), PlayerChar, core.ColorGray)
}

// drawCode draws the program with its first placeholder as a blinking
// cursor. Later placeholders are hidden.
func (g *Game) drawCode(dst *core.Screen) {
	s := g.stage
	x0, y0 := codeOrigin.Round()
	passed := false
	lines := s.lines()
	for i, line := range lines {
		y := y0 + i
		if !passed {
			if left, right, ok := strings.Cut(line, string(script.Placeholder)); ok {
				passed = true
				dst.DrawTextColor(x0, y, left, core.ColorGray)
				cx := x0 + len([]rune(left))
				if s.cursorVisible() {
					dst.SetColor(cx, y, CursorChar, core.ColorGray)
				}
				dst.DrawTextColor(cx+1, y, stripPlaceholders(right), core.ColorGray)
				continue
			}
		}
		dst.DrawTextColor(x0, y, stripPlaceholders(line), core.ColorGray)
	}

	color := core.ColorGreen
	if s.status != StatusCompiled {
		color = core.ColorRed
	}
	dst.DrawTextColor(x0, y0+len(lines), s.status, color)
}

func stripPlaceholders(s string) string {
	return strings.ReplaceAll(s, string(script.Placeholder), "")
}

// drawWipe draws a slanted band that sweeps left to right over the
// transition, covering the screen at half time.
func (g *Game) drawWipe(dst *core.Screen) {
	w, h := float64(dst.Width()), float64(dst.Height())
	total := g.cfg.Timing.Transition
	if total <= 0 || h == 0 {
		return
	}
	pos := g.trans.timer / total * (w*2 + wipeTilt*2)
	for y := 0; y < dst.Height(); y++ {
		f := float64(y) / h
		left := pos - w - wipeTilt - wipeTilt*f
		right := pos - wipeTilt*f
		for x := core.Max(0, int(math.Floor(left))); x < dst.Width() && float64(x) < right; x++ {
			dst.SetColor(x, y, WipeChar, core.ColorWhite)
		}
	}
}

func (g *Game) drawTitle(dst *core.Screen) {
	h := dst.Height()
	dst.DrawTextCenteredColor(h/2-4, "B R E A K   A   L O O P !", core.ColorBrightWhite)
	dst.DrawTextCenteredColor(h/2-2, "while (1) { you(); }", core.ColorGray)
	dst.DrawTextCenteredColor(h/2+1, "Press Enter to play", core.ColorGreen)
	dst.DrawTextCenteredColor(h/2+3, "A/D move   Space jump   R restart level   P pause   Q quit", core.ColorGray)
}

// drawFinished reveals the closing lines one per second.
func (g *Game) drawFinished(dst *core.Screen) {
	h := dst.Height()
	lines := []struct {
		text  string
		color core.Color
	}{
		{"Thanks for playing!", core.ColorBrightWhite},
		{"Your time: " + formatTime(g.elapsed), core.ColorYellow},
		{fmt.Sprintf("Levels cleared: %d", g.cleared), core.ColorGray},
		{"Press R to play again", core.ColorGreen},
	}
	for i, l := range lines {
		if g.finishTime < float64(i) {
			break
		}
		dst.DrawTextCenteredColor(h/2-3+i*2, l.text, l.color)
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Max(len([]rune(title)), len([]rune(subtitle))) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	box := core.NewRect(boxX, boxY, boxW, boxH)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box)
	dst.DrawTextCentered(boxY+1, title)
	dst.DrawTextCentered(boxY+3, subtitle)
}

func formatTime(secs float64) string {
	return core.FormatDuration(seconds(secs))
}
