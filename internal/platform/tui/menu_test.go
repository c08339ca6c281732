package tui

import (
	"io"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/breakaloop/internal/core"
	"github.com/vovakirdan/breakaloop/internal/levels"
	"github.com/vovakirdan/breakaloop/internal/registry"
)

func testLevels() levels.Set {
	return levels.NewSet(
		levels.Level{ID: "01-first", Name: "First"},
		levels.Level{ID: "02-second", Name: "Second"},
		levels.Level{ID: "03-third", Name: "Third"},
	)
}

func menuUpdate(t *testing.T, m MenuModel, msg tea.Msg) MenuModel {
	t.Helper()
	next, _ := m.Update(msg)
	menu, ok := next.(MenuModel)
	if !ok {
		t.Fatalf("Update() returned %T", next)
	}
	return menu
}

func TestMenuNavigation(t *testing.T) {
	m := NewMenuModel(testLevels(), nil, core.DefaultConfig())

	m = menuUpdate(t, m, keyOf(tea.KeyUp))
	if m.cursor != 0 {
		t.Errorf("cursor moved above the first level: %d", m.cursor)
	}
	for i := 0; i < 5; i++ {
		m = menuUpdate(t, m, keyOf(tea.KeyDown))
	}
	if m.cursor != 2 {
		t.Errorf("cursor = %d, want 2", m.cursor)
	}
	if m.Selected() != -1 {
		t.Error("nothing should be selected yet")
	}

	m = menuUpdate(t, m, keyOf(tea.KeyEnter))
	if m.Selected() != 2 {
		t.Errorf("Selected() = %d, want 2", m.Selected())
	}
}

func TestMenuShowsBestTimes(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.SaveLevelTime(1, 83456*time.Millisecond); err != nil {
		t.Fatalf("SaveLevelTime() failed: %v", err)
	}

	view := NewMenuModel(testLevels(), store, core.DefaultConfig()).View()
	if !strings.Contains(view, "Second") || !strings.Contains(view, "00:01:23.46") {
		t.Errorf("menu view lacks the best time:\n%s", view)
	}
	if !strings.Contains(view, "--:--:--.--") {
		t.Error("levels without a clear should show an empty time")
	}
}

func TestMenuTimesAndQuit(t *testing.T) {
	m := menuUpdate(t, NewMenuModel(testLevels(), nil, core.DefaultConfig()), keyOf(tea.KeyTab))
	if !m.WantsTimes() {
		t.Error("tab should open the times board")
	}

	m = menuUpdate(t, NewMenuModel(testLevels(), nil, core.DefaultConfig()), runes("q"))
	if !m.IsQuitting() {
		t.Error("q should quit")
	}
}

func TestTimesBoards(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.SaveRun(0, 3, 2*time.Minute); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if _, err := store.SaveLevelTime(0, 5*time.Second); err != nil {
		t.Fatalf("SaveLevelTime() failed: %v", err)
	}

	m := NewTimesModel(testLevels(), store, 100, 30)
	if len(m.boards) != 4 {
		t.Fatalf("Expected 4 boards, got %d", len(m.boards))
	}
	if len(m.rows) != 1 || m.rows[0][1] != "00:02:00.00" {
		t.Errorf("full runs rows = %v", m.rows)
	}

	next, _ := m.Update(keyOf(tea.KeyTab))
	m = next.(TimesModel)
	if m.boards[m.cursor].level != 0 || len(m.rows) != 1 || m.rows[0][1] != "00:00:05.00" {
		t.Errorf("level 1 rows = %v", m.rows)
	}

	next, _ = m.Update(keyOf(tea.KeyTab))
	m = next.(TimesModel)
	if len(m.rows) != 0 || !strings.Contains(m.View(), "No times recorded yet") {
		t.Errorf("empty board rows = %v", m.rows)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	next, _ = next.(TimesModel).Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	next, _ = next.(TimesModel).Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = next.(TimesModel)
	if m.cursor != 3 {
		t.Errorf("cursor should wrap to the last board, got %d", m.cursor)
	}

	next, _ = m.Update(keyOf(tea.KeyEsc))
	if !next.(TimesModel).IsGoingBack() {
		t.Error("esc should go back")
	}
}

func TestSessionFlow(t *testing.T) {
	var created []int
	game := &fakeGame{results: []core.StepResult{{State: core.GameState{Paused: true}}}}
	s := NewSessionModel(SessionConfig{
		Runtime: core.RuntimeConfig{ScreenW: 20, ScreenH: 5, TickRate: 60},
		Levels:  testLevels(),
		NewGame: func(level int) registry.Game {
			created = append(created, level)
			return game
		},
		Logger: log.New(io.Discard),
	})

	step := func(msg tea.Msg) {
		t.Helper()
		next, _ := s.Update(msg)
		s = next.(SessionModel)
	}

	step(keyOf(tea.KeyDown))
	step(keyOf(tea.KeyEnter))
	if s.screen != screenGame || len(created) != 1 || created[0] != 1 {
		t.Fatalf("screen = %d, created = %v; want game on level 1", s.screen, created)
	}
	if game.resets != 1 {
		t.Errorf("game reset %d times, want 1", game.resets)
	}

	step(TickMsg{Gen: s.game.gen})
	step(keyOf(tea.KeyEsc))
	if s.screen != screenMenu || s.game != nil {
		t.Fatalf("esc on a paused game should return to the menu")
	}
	if s.menu.Selected() != -1 {
		t.Error("the menu should start fresh")
	}

	step(keyOf(tea.KeyTab))
	if s.screen != screenTimes {
		t.Fatalf("tab should open the times board")
	}
	step(keyOf(tea.KeyEsc))
	if s.screen != screenMenu {
		t.Error("esc should return from the times board")
	}

	next, cmd := s.Update(runes("q"))
	if !next.(SessionModel).quitting || cmd == nil {
		t.Error("q should end the session")
	}
}
