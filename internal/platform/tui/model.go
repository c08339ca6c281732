package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/breakaloop/internal/core"
	"github.com/vovakirdan/breakaloop/internal/registry"
	"github.com/vovakirdan/breakaloop/internal/storage"
)

// DefaultHold is how long a direction key counts as held after a press
// when no config value is given.
const DefaultHold = 350 * time.Millisecond

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	hold       *HoldTracker
	inputFrame core.InputFrame
	gameState  core.GameState
	tickRate   int
	gen        uint64
	width      int
	height     int
	standalone bool
	quitting   bool
	backToMenu bool
	clock      func() time.Time
}

// NewModel creates a model for game. The screen has the configured size and
// is centred in the terminal.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, hold time.Duration) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}
	if hold <= 0 {
		hold = DefaultHold
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		logger:     log.Default(),
		config:     cfg,
		keyMapper:  NewKeyMapper(),
		hold:       NewHoldTracker(hold),
		inputFrame: core.NewInputFrame(),
		tickRate:   cfg.TickRate,
		gen:        nextGen(),
		clock:      time.Now,
	}
}

// Init resets the game and starts the tick loop.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.tickRate, m.gen)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case TickMsg:
		if msg.Gen != m.gen {
			return m, nil
		}
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		if err := m.saveScreenshot(); err != nil {
			m.logger.Warn("screenshot failed", "error", err)
		}
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	switch {
	case action == core.ActionBack:
		if m.gameState.GameOver || m.gameState.Paused {
			m.backToMenu = true
			if m.standalone {
				return m, tea.Quit
			}
		}
	case Held(action):
		m.hold.Press(action, m.clock())
	case action != core.ActionNone:
		m.inputFrame.Set(action)
	}
	return m, nil
}

// handleTick runs one simulation step and schedules the next one at the
// rate the game asked for.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	m.hold.Apply(&m.inputFrame, m.clock())

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	if result.TickRate > 0 {
		m.tickRate = result.TickRate
	}
	m.record(result.Events)

	m.inputFrame.Clear()
	return m, tickCmd(m.tickRate, m.gen)
}

// record persists game events. Storage failures never stop the game.
func (m Model) record(events []core.Event) {
	if m.store == nil {
		return
	}
	for _, ev := range events {
		var err error
		switch ev.Kind {
		case core.EventLevelCleared:
			_, err = m.store.SaveLevelTime(ev.Level, ev.Elapsed)
		case core.EventRunFinished:
			_, err = m.store.SaveRun(ev.Level, m.gameState.Score, ev.Elapsed)
		}
		if err != nil {
			m.logger.Error("cannot save result", "event", ev.Kind, "error", err)
		}
	}
}

// saveScreenshot writes the current screen as plain text.
func (m Model) saveScreenshot() error {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}
	dir := filepath.Join(home, ".breakaloop", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		return err
	}
	m.logger.Info("screenshot saved", "path", path)
	return nil
}

// View renders the game centred in the terminal.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.width > 0 && m.height > 0 &&
		(m.width < m.screen.Width() || m.height < m.screen.Height()) {
		msg := fmt.Sprintf("Terminal too small: need %dx%d, have %dx%d",
			m.screen.Width(), m.screen.Height(), m.width, m.height)
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, msg)
	}

	m.game.Render(m.screen)
	view := RenderScreen(m.screen)
	if m.width == 0 || m.height == 0 {
		return view
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, view)
}

// IsQuitting returns true if the user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the user asked to leave the game.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// TickRate returns the rate of the running tick chain.
func (m Model) TickRate() int {
	return m.tickRate
}

// Run starts a standalone Bubble Tea program for game.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, hold time.Duration) error {
	model := NewModel(game, store, cfg, hold)
	model.standalone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
