package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/breakaloop/internal/script"
)

var flagSolved bool

var checkCmd = &cobra.Command{
	Use:   "check <file.c|level>",
	Short: "Compile a program and print the loops the game runs",
	Long: `Compile a C file, or the code of a level, exactly as the game does and
print the compilation status, every diagnostic and the lowered loops.

A level is named by its ID or number. With --solved its tokens are spliced
into the placeholders in the order the level lists them.

Exits with status 1 when the program does not compile.

Examples:
  breakaloop check prog.c
  breakaloop check 06
  breakaloop check 6 --solved`,
	Args: cobra.ExactArgs(1),
	Run:  runCheck,
}

func init() {
	checkCmd.Flags().BoolVar(&flagSolved, "solved", false, "Splice a level's tokens before compiling")
}

func runCheck(_ *cobra.Command, args []string) {
	src, err := resolveSource(args[0], flagSolved)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if !printCheck(os.Stdout, src) {
		os.Exit(1)
	}
}

// printCheck compiles src and reports on w. It returns whether the program
// compiled.
func printCheck(w io.Writer, src source) bool {
	out, _ := script.Compile(src.code, script.WithLogger(log.Default()))

	fmt.Fprintf(w, "%s\nstatus: %s\n", src.name, out.Status)
	if out.Err != nil {
		fmt.Fprintf(w, "error: %v\n", out.Err)
	}

	for _, d := range out.Diagnostics {
		fmt.Fprintf(w, "%s\n", d)
	}
	if !out.Compiled() {
		return false
	}

	fmt.Fprintf(w, "loops: %d\n", len(out.Blocks))
	for i, b := range out.Blocks {
		fmt.Fprintf(w, "\nloop %d:\n%s\n", i+1, b)
	}
	return true
}
