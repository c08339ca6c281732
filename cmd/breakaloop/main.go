// breakaloop is a terminal platformer where every level is a C program stuck
// in an endless loop, plus tools to inspect how the game runs such programs.
//
// Usage:
//
//	breakaloop play             - Play from the first (or --level) level
//	breakaloop menu             - Pick a level, see best times
//	breakaloop levels           - List levels
//	breakaloop check <src>      - Compile a program and print its loops
//	breakaloop trace <src>      - Run a program headless, printing every call
//	breakaloop repl             - Interactive program stepper
//	breakaloop serve            - Start SSH server for remote play
//	breakaloop times            - Show best times
//
// Global flags:
//
//	--fps <rate>         - Tick rate (default: from config)
//	--seed <value>       - RNG seed
//	--db <path>          - Database path (default: ~/.breakaloop/breakaloop.db)
//	--config <path>      - Game config YAML
//	--levels-dir <dir>   - Load levels from a directory
//	--log-level <level>  - debug, info, warn, error
//	--log-file <path>    - Log destination; "-" is stderr
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/breakaloop/internal/storage"
)

var (
	// Global flags
	flagFPS       int
	flagSeed      int64
	flagDBPath    string
	flagConfig    string
	flagLevelsDir string
	flagLogLevel  string
	flagLogFile   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "breakaloop",
	Short: "Break a loop! - escape C programs that never end",
	Long: `Break a loop! is a terminal platformer. Every level shows a C program
stuck in an endless loop. Collect code tokens to splice them into the program
until every loop is broken.

Available commands:
  play     - Play the levels in order
  menu     - Interactive level picker with best times
  levels   - List the levels
  check    - Compile a program and print the loops the game runs
  trace    - Run a program headless and print every call
  repl     - Step a program interactively
  serve    - Start SSH server for remote play
  times    - Show best times

Examples:
  breakaloop play
  breakaloop play --level 5
  breakaloop check 03-stairs
  breakaloop trace prog.c --ticks 5 --true player_is_jumping
  breakaloop serve --ssh :2222`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		return setupLogger()
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		closeLogger()
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 0, "Tick rate (0 = tick_rate from the game config)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to times database")
	pf.StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	pf.StringVar(&flagLevelsDir, "levels-dir", "", "Load levels from this directory instead of the built-in set")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pf.StringVar(&flagLogFile, "log-file", defaultLogFile, `Log file ("-" for stderr)`)

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(traceCmd)
	rootCmd.AddCommand(replCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(timesCmd)
}
