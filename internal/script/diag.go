package script

import (
	"fmt"

	"github.com/vovakirdan/breakaloop/internal/cgrammar"
)

// Severity captures how much a diagnostic matters.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityNote    Severity = "note"
)

// Code is a stable identifier for a diagnostic.
type Code string

const (
	CodeNoEntryPoint          Code = "NO_ENTRY_POINT"
	CodeLoopBodyNotBlock      Code = "LOOP_BODY_NOT_BLOCK"
	CodeDeclarationDropped    Code = "DECLARATION_DROPPED"
	CodeElseDropped           Code = "ELSE_DROPPED"
	CodeEmptyStatement        Code = "EMPTY_STATEMENT"
	CodeUnsupportedStatement  Code = "UNSUPPORTED_STATEMENT"
	CodeUnsupportedExpression Code = "UNSUPPORTED_EXPRESSION"
	CodeUnsupportedOperator   Code = "UNSUPPORTED_OPERATOR"
	CodeComplexCallee         Code = "COMPLEX_CALLEE"
)

// Diagnostic reports a construct that was lowered to a no-op or ignored.
// Diagnostics never make compilation fail.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Pos      cgrammar.Pos
	Message  string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s: %s [%s]", d.Pos, d.Severity, d.Message, d.Code)
}
