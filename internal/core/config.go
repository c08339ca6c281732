package core

import "time"

// RuntimeConfig is passed to games at initialization.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  40,
		TickRate: 60,
	}
}

// GameState communicates game status to the platform.
type GameState struct {
	Score    int  // Levels cleared
	Level    int  // Zero-based index of the current level
	GameOver bool // Whether the game has ended
	Paused   bool
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState

	// TickRate, when positive, asks the platform to run subsequent ticks at
	// this rate. Zero keeps the configured rate.
	TickRate int

	// Events lists what happened during the tick, oldest first.
	Events []Event
}

// Event is something a game reports to the platform, e.g. for persistence.
type Event struct {
	Kind    EventKind
	Level   int           // zero-based level index; unused for EventRunFinished
	Elapsed time.Duration // in-game time the level or run took
}

// EventKind names an Event.
type EventKind int

const (
	EventLevelCleared EventKind = iota + 1
	EventRunFinished
)
