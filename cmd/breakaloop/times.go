package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/breakaloop/internal/core"
	"github.com/vovakirdan/breakaloop/internal/storage"
)

var timesCmd = &cobra.Command{
	Use:   "times",
	Short: "Show best times",
	Long: `Display the ten fastest full runs and the best clear time of each level.

Examples:
  breakaloop times
  breakaloop times --db ./times.db`,
	Args: cobra.NoArgs,
	Run:  runTimes,
}

func runTimes(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening times database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	runs, err := store.BestRuns(10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		return
	}

	fmt.Println("Full runs")
	fmt.Println()
	if len(runs) == 0 {
		fmt.Println("  No full runs recorded yet.")
	} else {
		fmt.Printf("  %-4s  %-11s  %s\n", "Rank", "Time", "Date")
		fmt.Printf("  %-4s  %-11s  %s\n", "----", "----", "----")
		for i, r := range runs {
			fmt.Printf("  %-4d  %-11s  %s\n", i+1, core.FormatDuration(r.Elapsed), r.CreatedAt.Format("2006-01-02 15:04"))
		}
	}

	best, err := store.BestLevelTimes()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving level times: %v\n", err)
		return
	}

	fmt.Println()
	fmt.Println("Levels")
	fmt.Println()
	set, setErr := loadLevels()
	if setErr != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", setErr)
	}
	for i, n := 0, set.Len(); i < n; i++ {
		lvl, _ := set.At(i)
		t := "--:--:--.--"
		if d, ok := best[i]; ok {
			t = core.FormatDuration(d)
		}
		fmt.Printf("  %2d  %-22s  %s\n", i+1, lvl.Name, t)
	}

	if stats, err := store.GetStats(); err == nil && stats.Runs+stats.Clears > 0 {
		fmt.Println()
		fmt.Printf("%d runs, %d level clears, last played %s\n",
			stats.Runs, stats.Clears, stats.LastPlayed.Format("2006-01-02 15:04"))
	}
}
