package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List the levels",
	Long: `Shows the levels in play order, with the number of tokens to collect
and enemies on each.

Examples:
  breakaloop levels
  breakaloop levels --levels-dir ./my-levels`,
	Args: cobra.NoArgs,
	Run:  runLevels,
}

func runLevels(_ *cobra.Command, _ []string) {
	set, err := loadLevels()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	maxIDLen := 2 // "ID" header
	for _, l := range set.All() {
		if len(l.ID) > maxIDLen {
			maxIDLen = len(l.ID)
		}
	}

	fmt.Printf("  %-3s  %-*s  %-22s  %6s  %7s\n", "#", maxIDLen, "ID", "Name", "Tokens", "Enemies")
	fmt.Printf("  %-3s  %-*s  %-22s  %6s  %7s\n", "-", maxIDLen, "--", "----", "------", "-------")
	for _, l := range set.All() {
		fmt.Printf("  %-3d  %-*s  %-22s  %6d  %7d\n",
			l.Index+1, maxIDLen, l.ID, l.Name, len(l.Tokens), len(l.Enemies))
	}

	fmt.Println()
	fmt.Println("Run 'breakaloop play --level <#>' to start on a level.")
}
