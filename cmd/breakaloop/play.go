package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/breakaloop/internal/platform/tui"
)

var flagLevel int

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the levels in order",
	Long: `Start a run on the first level, or on --level.

Controls:
  A/D, Left/Right  - Move
  Space/W/Up       - Jump (double jump in the air)
  R                - Restart the level
  P                - Pause
  Esc/B            - Leave (while paused or finished)
  Ctrl+S           - Save a screenshot
  Q/Ctrl+C         - Quit

Examples:
  breakaloop play
  breakaloop play --level 4
  breakaloop play --levels-dir ./my-levels
  breakaloop play --config ./tuning.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagLevel, "level", 1, "Level number to start on")
}

func runPlay(_ *cobra.Command, _ []string) {
	set, err := loadLevels()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if flagLevel < 1 || flagLevel > set.Len() {
		fmt.Fprintf(os.Stderr, "Error: level %d out of range 1-%d\n", flagLevel, set.Len())
		os.Exit(1)
	}

	game, err := createGame(flagLevel - 1)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	cfg := loadConfig()
	rt := runtimeConfig(cfg)
	warnSmallTerminal(rt)

	store := openStore()
	runErr := tui.Run(game, store, rt, holdWindow(cfg))
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
