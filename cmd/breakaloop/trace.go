package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/breakaloop/internal/script"
)

var (
	flagTicks int
	flagTrue  []string
)

var traceCmd = &cobra.Command{
	Use:   "trace <file.c|level>",
	Short: "Run a program headless and print every call",
	Long: `Compile a program and run it one loop pass per tick, the way the game
does, printing every call it makes. Calls answer false unless named with
--true. Stops when every loop is broken or after --ticks ticks.

Examples:
  breakaloop trace prog.c
  breakaloop trace 06 --solved --true player_is_jumping
  breakaloop trace prog.c --ticks 100 --true a --true b`,
	Args: cobra.ExactArgs(1),
	Run:  runTraceCmd,
}

func init() {
	traceCmd.Flags().IntVar(&flagTicks, "ticks", 10, "Maximum number of ticks to run")
	traceCmd.Flags().StringSliceVar(&flagTrue, "true", nil, "Calls that answer true")
	traceCmd.Flags().BoolVar(&flagSolved, "solved", false, "Splice a level's tokens before running")
}

func runTraceCmd(_ *cobra.Command, args []string) {
	src, err := resolveSource(args[0], flagSolved)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	answers := make(map[string]bool, len(flagTrue))
	for _, name := range flagTrue {
		answers[name] = true
	}
	if !runTrace(os.Stdout, src, flagTicks, answers) {
		os.Exit(1)
	}
}

// tracer answers calls from a fixed table and prints each one.
type tracer struct {
	w       io.Writer
	answers map[string]bool
	tick    int
}

func newTracer(w io.Writer) *tracer {
	return &tracer{w: w, answers: make(map[string]bool)}
}

func (t *tracer) Call(name string) bool {
	v := t.answers[name]
	fmt.Fprintf(t.w, "tick %d: %s() -> %t\n", t.tick, name, v)
	return v
}

// runTrace runs src for at most ticks ticks. It returns false when the
// program does not compile.
func runTrace(w io.Writer, src source, ticks int, answers map[string]bool) bool {
	prog := script.NewProgram(script.WithLogger(log.Default()))
	out, err := prog.Load(src.code)
	if err != nil || !out.Compiled() {
		fmt.Fprintf(w, "%s does not compile: %v\n", src.name, out.Err)
		return false
	}

	tr := newTracer(w)
	for name, v := range answers {
		tr.answers[name] = v
	}

	fmt.Fprintf(w, "%s: %d loops\n", src.name, prog.Remaining())
	for tr.tick = 1; tr.tick <= ticks; tr.tick++ {
		before := prog.Remaining()
		finished := prog.Tick(tr)
		if broken := before - prog.Remaining(); broken > 0 {
			fmt.Fprintf(w, "tick %d: %d loop(s) broken, %d left\n", tr.tick, broken, prog.Remaining())
		}
		if finished {
			fmt.Fprintf(w, "finished after %d ticks\n", tr.tick)
			return true
		}
	}
	fmt.Fprintf(w, "still looping after %d ticks\n", ticks)
	return true
}
