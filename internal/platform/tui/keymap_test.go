package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/breakaloop/internal/core"
)

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name   string
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{"a", runes("a"), core.ActionLeft, false},
		{"left", keyOf(tea.KeyLeft), core.ActionLeft, false},
		{"d", runes("d"), core.ActionRight, false},
		{"right", keyOf(tea.KeyRight), core.ActionRight, false},
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionJump, false},
		{"w", runes("w"), core.ActionJump, false},
		{"up", keyOf(tea.KeyUp), core.ActionJump, false},
		{"s", runes("s"), core.ActionDown, false},
		{"enter", keyOf(tea.KeyEnter), core.ActionConfirm, false},
		{"esc", keyOf(tea.KeyEsc), core.ActionBack, false},
		{"b", runes("b"), core.ActionBack, false},
		{"p", runes("p"), core.ActionPause, false},
		{"r", runes("r"), core.ActionRestart, false},
		{"q", runes("q"), core.ActionQuit, true},
		{"ctrl+c", keyOf(tea.KeyCtrlC), core.ActionQuit, true},
		{"unbound", runes("x"), core.ActionNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, quit := km.MapKey(tt.msg)
			if action != tt.action || quit != tt.quit {
				t.Errorf("MapKey(%q) = (%v, %v), want (%v, %v)",
					tt.msg.String(), action, quit, tt.action, tt.quit)
			}
		})
	}
}

func TestHoldTracker(t *testing.T) {
	start := time.Unix(100, 0)
	h := NewHoldTracker(300 * time.Millisecond)

	h.Press(core.ActionLeft, start)

	frame := core.NewInputFrame()
	h.Apply(&frame, start.Add(200*time.Millisecond))
	if !frame.Has(core.ActionLeft) {
		t.Error("Left should be held inside the window")
	}

	frame = core.NewInputFrame()
	h.Apply(&frame, start.Add(400*time.Millisecond))
	if frame.Has(core.ActionLeft) {
		t.Error("Left should be released after the window")
	}

	// Expired entries are forgotten, not only skipped.
	frame = core.NewInputFrame()
	h.Apply(&frame, start)
	if frame.Has(core.ActionLeft) {
		t.Error("expired press came back")
	}
}

func TestHoldTrackerOppositeDirection(t *testing.T) {
	now := time.Unix(100, 0)
	h := NewHoldTracker(time.Second)

	h.Press(core.ActionLeft, now)
	h.Press(core.ActionRight, now.Add(10*time.Millisecond))

	frame := core.NewInputFrame()
	h.Apply(&frame, now.Add(20*time.Millisecond))
	if frame.Has(core.ActionLeft) {
		t.Error("pressing Right should release Left")
	}
	if !frame.Has(core.ActionRight) {
		t.Error("Right should be held")
	}
	if frame.Axis() != 1 {
		t.Errorf("Axis() = %v, want 1", frame.Axis())
	}

	h.Release()
	frame = core.NewInputFrame()
	h.Apply(&frame, now.Add(20*time.Millisecond))
	if frame.Has(core.ActionRight) {
		t.Error("Release() should forget every held action")
	}
}

func TestHeld(t *testing.T) {
	for _, a := range []core.Action{core.ActionLeft, core.ActionRight} {
		if !Held(a) {
			t.Errorf("Held(%v) = false", a)
		}
	}
	for _, a := range []core.Action{core.ActionJump, core.ActionRestart, core.ActionPause} {
		if Held(a) {
			t.Errorf("Held(%v) = true", a)
		}
	}
}
