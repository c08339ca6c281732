// Package cgrammar parses C source into a small syntax tree.
//
// Parsing is done by modernc.org/cc/v4. The tree keeps statements, calls and
// operators and folds everything else into opaque nodes: callers that only
// understand a subset of C walk it and decide what each node means.
package cgrammar

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"modernc.org/cc/v4"
)

// SourceName is the file name reported in positions and parser messages.
const SourceName = "level.c"

// prelude declares what the cc parser expects every translation unit to
// carry. Nodes from it are dropped.
const (
	preludeName = "<prelude>"
	prelude     = "int __predefined_declarator;\n"
)

// ErrSyntax is matched by every *SyntaxError.
var ErrSyntax = errors.New("syntax error")

// Pos is a 1-based line/column position in the source text.
type Pos struct {
	Line   int
	Column int
}

func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// SyntaxError reports source text that is not valid C.
type SyntaxError struct {
	Pos Pos
	Msg string
}

func (e *SyntaxError) Error() string {
	if e.Pos.Line == 0 {
		return "syntax error: " + e.Msg
	}
	return fmt.Sprintf("syntax error at %s: %s", e.Pos, e.Msg)
}

// Is makes errors.Is(err, ErrSyntax) true for any SyntaxError.
func (e *SyntaxError) Is(target error) bool {
	return target == ErrSyntax
}

// Parse parses a complete translation unit. There is no partial result:
// either the whole text is valid or a *SyntaxError is returned.
// Preprocessing directives are not expected; macros are never defined.
func Parse(src string) (*TranslationUnit, error) {
	if !strings.HasSuffix(src, "\n") {
		src += "\n"
	}
	ast, err := cc.Parse(&cc.Config{}, []cc.Source{
		{Name: preludeName, Value: prelude},
		{Name: SourceName, Value: src},
	})
	if err != nil {
		return nil, syntaxError(err)
	}
	return translationUnit(ast.TranslationUnit), nil
}

// syntaxError converts the first cc message, "file:line:col: msg", into a
// SyntaxError.
func syntaxError(err error) *SyntaxError {
	first, _, _ := strings.Cut(err.Error(), "\n")
	rest, ok := strings.CutPrefix(first, SourceName+":")
	if !ok {
		return &SyntaxError{Msg: first}
	}
	parts := strings.SplitN(rest, ":", 3)
	if len(parts) != 3 {
		return &SyntaxError{Msg: first}
	}
	line, lerr := strconv.Atoi(parts[0])
	col, cerr := strconv.Atoi(parts[1])
	if lerr != nil || cerr != nil {
		return &SyntaxError{Msg: first}
	}
	return &SyntaxError{
		Pos: Pos{Line: line, Column: col},
		Msg: strings.TrimSpace(parts[2]),
	}
}
