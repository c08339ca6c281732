// Package registry maps game IDs to factories. Games register themselves
// from init(), so the platform can start them without importing their
// internals.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/breakaloop/internal/core"
)

// Game is what the platform drives: one Step per tick, one Render per frame.
// Implementations hold no terminal state.
type Game interface {
	// ID is the stable identifier used by the CLI and storage.
	ID() string

	// Title is the display name.
	Title() string

	// Reset starts a new run with the given runtime settings.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one tick. The result may ask the
	// platform for a different tick rate.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current state into a pre-cleared screen.
	Render(dst *core.Screen)

	// State returns the current game state.
	State() core.GameState
}

// GameInfo describes a registered game.
type GameInfo struct {
	ID    string
	Title string
}

// Factory creates a new game instance.
type Factory func() Game

var (
	mu        sync.RWMutex
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
)

// Register adds a factory. It panics on a duplicate ID.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	factories[id] = f
	titles[id] = f().Title()
}

// List returns every registered game sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(factories))
	for id := range factories {
		result = append(result, GameInfo{ID: id, Title: titles[id]})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Create instantiates the game registered under id.
func Create(id string) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return f(), nil
}
