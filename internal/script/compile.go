package script

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/breakaloop/internal/cgrammar"
)

const (
	// Placeholder marks where the next token will be spliced into the code.
	// It is a UI cursor only and never reaches the grammar.
	Placeholder = '$'

	// EntryPoint is the function whose loops form the program.
	EntryPoint = "main"
)

// ErrUnimplemented is matched by every *UnimplementedError.
var ErrUnimplemented = errors.New("unimplemented control transfer")

// UnimplementedError reports a construct the interpreter must not silently
// skip, such as goto. It fails the whole compilation attempt.
type UnimplementedError struct {
	Pos       cgrammar.Pos
	Construct string
}

func (e *UnimplementedError) Error() string {
	return fmt.Sprintf("%s: %s is not implemented", e.Pos, e.Construct)
}

func (e *UnimplementedError) Is(target error) bool {
	return target == ErrUnimplemented
}

// Status is the state of the latest compilation attempt.
type Status int

const (
	StatusUnattempted Status = iota
	StatusCompiled
	StatusRejected      // not valid C
	StatusUnimplemented // valid C using a construct that cannot run, such as goto
)

func (s Status) String() string {
	switch s {
	case StatusUnattempted:
		return "unattempted"
	case StatusCompiled:
		return "compiled"
	case StatusRejected:
		return "rejected"
	case StatusUnimplemented:
		return "unimplemented"
	default:
		return "unknown"
	}
}

// Outcome is the result of compiling one source text.
type Outcome struct {
	Status      Status
	Blocks      []Block
	Diagnostics []Diagnostic
	Err         error // set when Status is StatusRejected or StatusUnimplemented
}

// Compiled reports whether the outcome holds a runnable program.
func (o Outcome) Compiled() bool {
	return o.Status == StatusCompiled
}

// Option configures compilation.
type Option func(*options)

type options struct {
	logger *log.Logger
}

// WithLogger routes diagnostics to logger instead of log.Default().
func WithLogger(logger *log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func buildOptions(opts []Option) options {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = log.Default()
	}
	return o
}

// Prefilter removes what the grammar must never see: lines starting with '#',
// lines that are only a // comment, and every placeholder character.
// Dropped lines are blanked so positions stay stable.
func Prefilter(src string) string {
	lines := strings.Split(src, "\n")
	for i, line := range lines {
		if strings.HasPrefix(line, "#") || strings.HasPrefix(strings.TrimSpace(line), "//") {
			lines[i] = ""
		}
	}
	return strings.ReplaceAll(strings.Join(lines, "\n"), string(Placeholder), "")
}

// Splice replaces the first placeholder in src with text. Source without a
// placeholder is returned unchanged.
func Splice(src, text string) string {
	return strings.Replace(src, string(Placeholder), text, 1)
}

// Compile parses src and extracts its loop program.
//
// A syntax error is not an error of Compile: it yields a StatusRejected
// outcome for display. The returned error is reserved for constructs that
// cannot be represented at all (goto); it is an *UnimplementedError and the
// outcome is StatusUnimplemented.
func Compile(src string, opts ...Option) (Outcome, error) {
	o := buildOptions(opts)

	unit, err := cgrammar.Parse(Prefilter(src))
	if err != nil {
		o.logger.Debug("compilation rejected", "error", err)
		return Outcome{Status: StatusRejected, Err: err}, nil
	}

	ex := newExtractor(o.logger)
	blocks, err := ex.program(unit)
	if err != nil {
		o.logger.Error("compilation aborted", "error", err)
		return Outcome{Status: StatusUnimplemented, Diagnostics: ex.diags, Err: err}, err
	}
	return Outcome{Status: StatusCompiled, Blocks: blocks, Diagnostics: ex.diags}, nil
}
