// Package breakaloop implements "Break a loop!", a platformer where every
// level is a C program stuck in an endless loop. The player collects code
// tokens, which are spliced into the program, until the program unwinds.
package breakaloop

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/breakaloop/internal/config"
	"github.com/vovakirdan/breakaloop/internal/core"
	"github.com/vovakirdan/breakaloop/internal/levels"
	"github.com/vovakirdan/breakaloop/internal/registry"
	"github.com/vovakirdan/breakaloop/internal/script"
)

// GameID is the registry identifier.
const GameID = "breakaloop"

// Phase is the screen the game is on.
type Phase int

const (
	PhaseTitle Phase = iota
	PhasePlaying
	PhaseTransition
	PhaseFinished
)

func (p Phase) String() string {
	switch p {
	case PhaseTitle:
		return "title"
	case PhasePlaying:
		return "playing"
	case PhaseTransition:
		return "transition"
	case PhaseFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Settings applied by the CLI before the registry creates a game.
var (
	configPath string
	levelsDir  string
	startLevel int
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetLevelsDir loads levels from dir instead of the embedded set.
func SetLevelsDir(dir string) {
	levelsDir = dir
}

// SetStartLevel sets the zero-based level a new run starts on.
func SetStartLevel(index int) {
	startLevel = index
}

// Option configures a Game.
type Option func(*Game)

// WithConfig uses cfg instead of loading the config file.
func WithConfig(cfg config.BreakALoopConfig) Option {
	return func(g *Game) {
		g.cfg = cfg
		g.cfgSet = true
	}
}

// WithLevels uses set instead of loading levels.
func WithLevels(set levels.Set) Option {
	return func(g *Game) {
		g.levels = set
		g.levelsSet = true
	}
}

// WithLogger routes game and interpreter logs to logger.
func WithLogger(logger *log.Logger) Option {
	return func(g *Game) {
		g.logger = logger
	}
}

// WithStartLevel starts runs on the level at index.
func WithStartLevel(index int) Option {
	return func(g *Game) {
		g.start = index
		g.startSet = true
	}
}

// SkipTitle starts directly in the first level.
func SkipTitle() Option {
	return func(g *Game) {
		g.skipTitle = true
	}
}

type transition struct {
	target int
	timer  float64
	loaded bool
}

// Game implements the Break a loop! game logic.
type Game struct {
	cfg       config.BreakALoopConfig
	cfgSet    bool
	levels    levels.Set
	levelsSet bool
	logger    *log.Logger
	start     int
	startSet  bool
	skipTitle bool

	runtime core.RuntimeConfig
	calls   *script.Calls[*stage]
	loadErr error

	phase      Phase
	stage      *stage
	trans      transition
	paused     bool
	cleared    int
	tick       uint64
	elapsed    float64 // seconds of play in this run
	levelTime  float64 // seconds spent on the current level
	finishTime float64 // seconds on the finished screen
	events     []core.Event
}

// New creates a new game instance.
func New(opts ...Option) *Game {
	g := &Game{}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Break a loop!"
}

// Reset loads config and levels and starts a new run.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	if g.logger == nil {
		g.logger = log.Default()
	}
	g.loadErr = nil

	if !g.cfgSet {
		cfg, err := config.Load(configPath)
		if err != nil {
			g.logger.Warn("using default config", "error", err)
			cfg = config.Default()
		}
		g.cfg = cfg
	}
	if !g.levelsSet {
		set, err := levels.Load(levelsDir)
		if err != nil {
			g.logger.Error("cannot load levels", "error", err)
			g.loadErr = err
			return
		}
		g.levels = set
	}
	if !g.startSet {
		g.start = startLevel
	}
	g.start = core.Clamp(g.start, 0, g.levels.Len()-1)

	g.calls = newCalls(g.cfg, g.logger)
	g.phase = PhaseTitle
	if g.skipTitle {
		g.phase = PhasePlaying
	}
	g.paused = false
	g.cleared = 0
	g.tick = 0
	g.elapsed = 0
	g.finishTime = 0
	g.trans = transition{}
	g.load(g.start)
}

// load swaps in the level at index.
func (g *Game) load(index int) {
	def, err := g.levels.At(index)
	if err != nil {
		g.loadErr = err
		return
	}
	g.stage = newStage(def, g.cfg, g.logger)
	g.levelTime = 0
	g.logger.Info("level loaded", "level", def.ID, "name", def.Name)
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.events = nil
	if g.loadErr != nil || g.stage == nil {
		return g.result()
	}

	switch g.phase {
	case PhaseTitle:
		if in.Has(core.ActionConfirm) || in.Has(core.ActionJump) {
			g.phase = PhasePlaying
		}
		return g.result()

	case PhaseFinished:
		g.finishTime += g.dt()
		if in.Has(core.ActionRestart) || in.Has(core.ActionConfirm) {
			g.restartRun()
		}
		return g.result()
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return g.result()
	}

	dt := g.dt()
	g.tick++
	g.elapsed += dt
	g.levelTime += dt

	if in.Has(core.ActionRestart) {
		g.beginTransition(g.stage.index())
	}

	if g.phase == PhaseTransition {
		g.stepTransition(dt)
		if g.phase == PhaseFinished {
			return g.result()
		}
	}

	if g.phase == PhasePlaying {
		if g.stage.update(dt, g.calls) {
			g.levelCleared()
		}
		g.stage.player.update(dt, playerInput{
			axis: in.Axis(),
			jump: in.Has(core.ActionJump),
		}, g.stage, g.cfg)
	}

	return g.result()
}

func (g *Game) levelCleared() {
	idx := g.stage.index()
	g.cleared++
	g.events = append(g.events, core.Event{
		Kind:    core.EventLevelCleared,
		Level:   idx,
		Elapsed: seconds(g.levelTime),
	})
	g.logger.Info("level cleared", "level", g.stage.def.ID, "time", formatTime(g.levelTime))
	g.beginTransition(idx + 1)
}

func (g *Game) beginTransition(target int) {
	g.phase = PhaseTransition
	g.trans = transition{target: target}
}

// stepTransition swaps the level at half time and resumes play at full time.
// Running past the last level finishes the run.
func (g *Game) stepTransition(dt float64) {
	total := g.cfg.Timing.Transition
	g.trans.timer += dt
	if g.trans.timer >= total/2 && !g.trans.loaded {
		g.trans.loaded = true
		if g.trans.target >= g.levels.Len() {
			g.finishRun()
			return
		}
		g.load(g.trans.target)
	}
	if g.trans.timer >= total {
		g.phase = PhasePlaying
		g.trans = transition{}
	}
}

func (g *Game) finishRun() {
	g.phase = PhaseFinished
	g.finishTime = 0
	g.events = append(g.events, core.Event{
		Kind:    core.EventRunFinished,
		Level:   g.start,
		Elapsed: seconds(g.elapsed),
	})
	g.logger.Info("run finished", "time", formatTime(g.elapsed), "levels", g.cleared)
}

func (g *Game) restartRun() {
	g.phase = PhasePlaying
	g.cleared = 0
	g.elapsed = 0
	g.finishTime = 0
	g.trans = transition{}
	g.load(g.start)
}

// TickRate returns the ticks per second the game wants right now.
func (g *Game) TickRate() int {
	if g.stage != nil && g.stage.lagged && g.phase == PhasePlaying {
		return g.cfg.Timing.LagTickRate
	}
	if g.runtime.TickRate > 0 {
		return g.runtime.TickRate
	}
	return g.cfg.Timing.TickRate
}

func (g *Game) dt() float64 {
	rate := g.TickRate()
	if rate <= 0 {
		rate = 60
	}
	return 1 / float64(rate)
}

func (g *Game) result() core.StepResult {
	return core.StepResult{
		State:    g.State(),
		TickRate: g.TickRate(),
		Events:   g.events,
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	level := 0
	if g.stage != nil {
		level = g.stage.index()
	}
	return core.GameState{
		Score:    g.cleared,
		Level:    level,
		GameOver: g.phase == PhaseFinished,
		Paused:   g.paused,
	}
}

// Phase returns the current screen.
func (g *Game) Phase() Phase {
	return g.phase
}

// Err returns the error that stopped levels from loading, if any.
func (g *Game) Err() error {
	return g.loadErr
}

// Elapsed returns the play time of the current run.
func (g *Game) Elapsed() time.Duration {
	return seconds(g.elapsed)
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// Register the game with the registry
func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
}
