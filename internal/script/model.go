// Package script turns player-assembled C fragments into a restricted,
// frame-steppable program.
//
// Only the body of each top-level `while` loop inside main survives
// compilation. Each body becomes a Block; a Sequencer runs one full pass of
// the front Block per game tick and retires Blocks as `break` and `return`
// unwind them. Calls reach the game through a Caller.
package script

import (
	"fmt"
	"strings"
)

// Statement is one executable statement of a Block.
type Statement interface {
	fmt.Stringer
	isStatement()
}

// Expression is a boolean expression used by Conditional.
type Expression interface {
	fmt.Stringer
	isExpression()
}

// Effectful is a bare call statement; its result is discarded.
type Effectful struct {
	Name string
}

// Break unwinds exactly one Block.
type Break struct{}

// Return unwinds every remaining Block.
type Return struct{}

// Conditional runs Then when Cond is true. There is no else branch.
type Conditional struct {
	Cond Expression
	Then Statement
}

// Unsupported is any statement outside the executable subset. It does nothing.
type Unsupported struct {
	Construct string
}

func (Effectful) isStatement()   {}
func (Break) isStatement()       {}
func (Return) isStatement()      {}
func (Conditional) isStatement() {}
func (Unsupported) isStatement() {}

func (s Effectful) String() string { return s.Name + "();" }
func (Break) String() string       { return "break;" }
func (Return) String() string      { return "return;" }
func (s Conditional) String() string {
	return fmt.Sprintf("if (%s) %s", s.Cond, s.Then)
}
func (s Unsupported) String() string { return "/* unsupported: " + s.Construct + " */" }

// Call asks the host for a boolean.
type Call struct {
	Name string
}

// LogicalAnd is `L && R` with short-circuit evaluation.
type LogicalAnd struct {
	L, R Expression
}

// UnsupportedExpr is any expression outside the subset. It evaluates to false.
type UnsupportedExpr struct {
	Construct string
}

func (Call) isExpression()            {}
func (LogicalAnd) isExpression()      {}
func (UnsupportedExpr) isExpression() {}

func (e Call) String() string            { return e.Name + "()" }
func (e LogicalAnd) String() string      { return fmt.Sprintf("%s && %s", e.L, e.R) }
func (e UnsupportedExpr) String() string { return "/* unsupported: " + e.Construct + " */ 0" }

// Block is the lowered body of one loop. It is never modified after
// construction.
type Block struct {
	stmts []Statement
}

// NewBlock builds a Block from statements in execution order.
func NewBlock(stmts ...Statement) Block {
	return Block{stmts: append([]Statement(nil), stmts...)}
}

// Len returns the number of statements.
func (b Block) Len() int {
	return len(b.stmts)
}

// Statements returns a copy of the block's statements.
func (b Block) Statements() []Statement {
	return append([]Statement(nil), b.stmts...)
}

// String renders the block as a C-like loop body.
func (b Block) String() string {
	var sb strings.Builder
	sb.WriteString("{\n")
	for _, s := range b.stmts {
		sb.WriteString("    ")
		sb.WriteString(s.String())
		sb.WriteByte('\n')
	}
	sb.WriteString("}")
	return sb.String()
}
