package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/charmbracelet/log"
	"github.com/peterh/liner"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/breakaloop/internal/script"
)

const (
	historyFile = ".breakaloop/repl_history"
	promptMain  = "loop> "
)

const replHelp = `Type C source lines to build a program. Commands:
  :step                 run one tick
  :run N                run up to N ticks
  :set NAME true|false  choose what a call answers
  :blocks               show the loop running now
  :src                  show the program
  :load FILE            replace the program with a file
  :clear                start an empty program
  :quit                 leave`

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Step a program interactively",
	Long: `Build a program line by line and step it one tick at a time.
Every call answers false until set with :set.

` + replHelp,
	Args: cobra.NoArgs,
	Run:  runRepl,
}

// replCommandLexer splits a command line into the command and its words.
var replCommandLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Command", Pattern: `:[A-Za-z]+`},
	{Name: "Word", Pattern: `[^\s]+`},
	{Name: "Whitespace", Pattern: `\s+`},
})

// replCommand is one ':' command line, e.g. ":set player_is_jumping() true".
type replCommand struct {
	Name string   `parser:"@Command"`
	Args []string `parser:"@Word*"`
}

var replParser = participle.MustBuild[replCommand](
	participle.Lexer(replCommandLexer),
	participle.Elide("Whitespace"),
)

// replSession holds the program being built and run.
type replSession struct {
	w       io.Writer
	lines   []string
	prog    *script.Program
	tracer  *tracer
	dirty   bool
	ticks   int
	stopped bool
}

func newReplSession(w io.Writer) *replSession {
	return &replSession{
		w:      w,
		prog:   script.NewProgram(script.WithLogger(log.Default())),
		tracer: newTracer(w),
	}
}

// exec runs one input line and reports whether the session should end.
func (r *replSession) exec(line string) bool {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, ":") {
		r.lines = append(r.lines, line)
		r.dirty = true
		return false
	}

	cmd, err := replParser.ParseString("", trimmed)
	if err != nil {
		fmt.Fprintf(r.w, "bad command: %v\n", err)
		return false
	}

	switch cmd.Name {
	case ":quit", ":q":
		return true
	case ":help":
		fmt.Fprintln(r.w, replHelp)
	case ":step":
		r.run(1)
	case ":run":
		n := 1
		if len(cmd.Args) > 0 {
			v, err := strconv.Atoi(cmd.Args[0])
			if err != nil || v < 1 {
				fmt.Fprintf(r.w, "bad tick count %q\n", cmd.Args[0])
				return false
			}
			n = v
		}
		r.run(n)
	case ":set":
		if len(cmd.Args) != 2 {
			fmt.Fprintln(r.w, "usage: :set NAME true|false")
			return false
		}
		v, err := strconv.ParseBool(cmd.Args[1])
		if err != nil {
			fmt.Fprintf(r.w, "bad value %q\n", cmd.Args[1])
			return false
		}
		r.tracer.answers[strings.TrimSuffix(cmd.Args[0], "()")] = v
	case ":blocks":
		r.blocks()
	case ":src":
		for i, l := range r.lines {
			fmt.Fprintf(r.w, "%3d  %s\n", i+1, l)
		}
	case ":load":
		if len(cmd.Args) != 1 {
			fmt.Fprintln(r.w, "usage: :load FILE")
			return false
		}
		data, err := os.ReadFile(cmd.Args[0])
		if err != nil {
			fmt.Fprintf(r.w, "%v\n", err)
			return false
		}
		r.lines = strings.Split(strings.TrimRight(string(data), "\n"), "\n")
		r.dirty = true
		r.compile()
	case ":clear":
		r.lines = nil
		r.dirty = true
	default:
		fmt.Fprintf(r.w, "unknown command %s. Type :help for help.\n", cmd.Name)
	}
	return false
}

// compile reloads the program if the source changed, which restarts it.
func (r *replSession) compile() bool {
	if !r.dirty {
		return r.prog.Status() == script.StatusCompiled
	}
	r.dirty = false
	r.ticks = 0
	r.stopped = false

	out, err := r.prog.Load(strings.Join(r.lines, "\n"))
	for _, d := range out.Diagnostics {
		fmt.Fprintf(r.w, "%s\n", d)
	}
	switch {
	case err != nil:
		fmt.Fprintf(r.w, "compilation failed: %v\n", err)
		return false
	case !out.Compiled():
		fmt.Fprintf(r.w, "compilation failed: %v\n", out.Err)
		return false
	}
	fmt.Fprintf(r.w, "compiled: %d loops\n", len(out.Blocks))
	return true
}

func (r *replSession) run(n int) {
	if !r.compile() {
		return
	}
	if r.stopped {
		fmt.Fprintln(r.w, "program finished; edit it or :clear to start again")
		return
	}
	for i := 0; i < n; i++ {
		r.ticks++
		r.tracer.tick = r.ticks
		if r.prog.Tick(r.tracer) {
			r.stopped = true
			fmt.Fprintf(r.w, "finished after %d ticks\n", r.ticks)
			return
		}
	}
	fmt.Fprintf(r.w, "%d loops left\n", r.prog.Remaining())
}

func (r *replSession) blocks() {
	if !r.compile() {
		return
	}
	b, ok := r.prog.Current()
	if !ok {
		fmt.Fprintln(r.w, "no loops left")
		return
	}
	fmt.Fprintf(r.w, "current loop (%d left):\n%s\n", r.prog.Remaining(), b)
}

func runRepl(_ *cobra.Command, _ []string) {
	session := newReplSession(os.Stdout)

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			if session.exec(scanner.Text()) {
				return
			}
		}
		return
	}

	fmt.Println("Break a loop! program stepper. Type :help for help.")

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)
	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if err := os.MkdirAll(filepath.Dir(histPath), 0o755); err != nil {
			return
		}
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	for {
		line, err := ln.Prompt(promptMain)
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			fmt.Println()
			return
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		if strings.TrimSpace(line) != "" {
			ln.AppendHistory(line)
		}
		if session.exec(line) {
			return
		}
	}
}
