package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/breakaloop/internal/config"
	"github.com/vovakirdan/breakaloop/internal/core"
	"github.com/vovakirdan/breakaloop/internal/games/breakaloop"
	"github.com/vovakirdan/breakaloop/internal/levels"
	"github.com/vovakirdan/breakaloop/internal/registry"
	"github.com/vovakirdan/breakaloop/internal/storage"
)

const defaultLogFile = "~/.breakaloop/breakaloop.log"

var logCloser io.Closer

// setupLogger installs the process-wide logger. The TUI owns the terminal,
// so logs go to a file unless --log-file is "-".
func setupLogger() error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}

	var w io.Writer = os.Stderr
	if flagLogFile != "-" && flagLogFile != "" {
		path, err := expandHome(flagLogFile)
		if err != nil {
			return err
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("cannot create log directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return fmt.Errorf("cannot open log file: %w", err)
		}
		w = f
		logCloser = f
	}

	log.SetDefault(log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Prefix:          "breakaloop",
	}))
	return nil
}

func closeLogger() {
	if logCloser != nil {
		logCloser.Close()
		logCloser = nil
	}
}

func expandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

// loadConfig returns the game config, falling back to the defaults.
func loadConfig() config.BreakALoopConfig {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v; using default config\n", err)
		return config.Default()
	}
	return cfg
}

func loadLevels() (levels.Set, error) {
	set, err := levels.Load(flagLevelsDir)
	if err != nil {
		return levels.Set{}, err
	}
	if set.Len() == 0 {
		return levels.Set{}, fmt.Errorf("no levels in %s", flagLevelsDir)
	}
	return set, nil
}

// runtimeConfig sizes the screen to the game world.
func runtimeConfig(cfg config.BreakALoopConfig) core.RuntimeConfig {
	rt := core.RuntimeConfig{
		ScreenW:  cfg.World.Width,
		ScreenH:  cfg.World.Height,
		TickRate: cfg.Timing.TickRate,
		Seed:     flagSeed,
	}
	if flagFPS > 0 {
		rt.TickRate = flagFPS
	}
	return rt
}

// holdWindow converts the configured key hold time.
func holdWindow(cfg config.BreakALoopConfig) time.Duration {
	return time.Duration(cfg.Input.HoldSeconds * float64(time.Second))
}

// createGame builds the game through the registry, starting on level.
func createGame(level int) (registry.Game, error) {
	breakaloop.SetConfigPath(flagConfig)
	breakaloop.SetLevelsDir(flagLevelsDir)
	breakaloop.SetStartLevel(level)
	return registry.Create(breakaloop.GameID)
}

// openStore opens the times database. Games still run without it.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open times database: %v\n", err)
		return nil
	}
	return store
}

// warnSmallTerminal tells the user when the world will not fit.
func warnSmallTerminal(rt core.RuntimeConfig) {
	w, h, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return
	}
	if w < rt.ScreenW || h < rt.ScreenH {
		fmt.Fprintf(os.Stderr, "Warning: terminal is %dx%d, the game needs %dx%d\n",
			w, h, rt.ScreenW, rt.ScreenH)
		time.Sleep(time.Second)
	}
}
