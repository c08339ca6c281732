// Package tui runs games in a terminal with Bubble Tea. It owns the tick
// loop, key mapping, menus and the SSH front end; games only see
// core.InputFrame and core.Screen.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg triggers one simulation tick of the game model with the same Gen.
type TickMsg struct {
	Time time.Time
	Gen  uint64
}

var generations atomic.Uint64

// nextGen returns a fresh tick chain identifier. A model ignores ticks from
// chains it did not start, so a stale chain never doubles the game speed.
func nextGen() uint64 {
	return generations.Add(1)
}

// tickCmd schedules the next tick at the given rate.
func tickCmd(tickRate int, gen uint64) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t, Gen: gen}
	})
}
