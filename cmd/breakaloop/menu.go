package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/breakaloop/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a level interactively",
	Long: `Start with a level picker showing the best clear time of every level.
Leaving a game (Esc while paused or on the finished screen) returns here.

Controls:
  Up/Down/j/k  - Navigate
  Enter/Space  - Play from the selected level
  Tab          - Best times
  Q            - Quit

Examples:
  breakaloop menu
  breakaloop menu --fps 30
  breakaloop menu --db ./times.db`,
	Args: cobra.NoArgs,
	Run:  runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	set, err := loadLevels()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg := loadConfig()
	rt := runtimeConfig(cfg)
	store := openStore()

	for {
		result, err := tui.RunMenu(set, store, rt)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}
		if result.Quit {
			break
		}

		if result.WantsTimes {
			goBack, err := tui.RunTimes(set, store, rt.ScreenW, rt.ScreenH)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
			if goBack {
				continue
			}
			break
		}

		game, err := createGame(result.Level)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			continue
		}

		rt.Seed = time.Now().UnixNano()
		if err := tui.Run(game, store, rt, holdWindow(cfg)); err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}
	}

	if store != nil {
		store.Close()
	}
}
