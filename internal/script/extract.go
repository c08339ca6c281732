package script

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/breakaloop/internal/cgrammar"
)

// extractor walks a syntax tree and lowers the loops of the entry point.
type extractor struct {
	logger *log.Logger
	diags  []Diagnostic
}

func newExtractor(logger *log.Logger) *extractor {
	return &extractor{logger: logger}
}

func (x *extractor) report(sev Severity, code Code, pos cgrammar.Pos, format string, args ...any) {
	d := Diagnostic{Severity: sev, Code: code, Pos: pos, Message: fmt.Sprintf(format, args...)}
	x.diags = append(x.diags, d)
	if sev == SeverityWarning {
		x.logger.Warn(d.Message, "pos", pos, "code", code)
	} else {
		x.logger.Debug(d.Message, "pos", pos, "code", code)
	}
}

// program extracts one Block per top-level while loop of every entry point
// definition, in source order.
func (x *extractor) program(unit *cgrammar.TranslationUnit) ([]Block, error) {
	blocks := []Block{}
	found := false

	for _, decl := range unit.Decls {
		fn, ok := decl.(*cgrammar.FuncDef)
		if !ok || fn.Name != EntryPoint {
			continue
		}
		found = true
		for _, item := range fn.Body.Items {
			loop, ok := item.(*cgrammar.WhileStmt)
			if !ok {
				continue
			}
			body, ok := loop.Body.(*cgrammar.CompoundStmt)
			if !ok {
				x.report(SeverityWarning, CodeLoopBodyNotBlock, loop.Pos,
					"while loop body is not a block; loop ignored")
				continue
			}
			block, err := x.block(body)
			if err != nil {
				return nil, err
			}
			blocks = append(blocks, block)
		}
	}

	if !found {
		x.report(SeverityNote, CodeNoEntryPoint, cgrammar.Pos{Line: 1, Column: 1},
			"no %s function; program is empty", EntryPoint)
	}
	return blocks, nil
}

func (x *extractor) block(body *cgrammar.CompoundStmt) (Block, error) {
	stmts := make([]Statement, 0, len(body.Items))
	for _, item := range body.Items {
		s, ok := item.(cgrammar.Stmt)
		if !ok {
			x.report(SeverityNote, CodeDeclarationDropped, item.Position(),
				"declaration inside loop body dropped")
			continue
		}
		if g := findGoto(s); g != nil {
			return Block{}, &UnimplementedError{Pos: g.Pos, Construct: "goto " + g.Label}
		}
		lowered, err := x.statement(s)
		if err != nil {
			return Block{}, err
		}
		stmts = append(stmts, lowered)
	}
	return NewBlock(stmts...), nil
}

func (x *extractor) statement(s cgrammar.Stmt) (Statement, error) {
	switch s := s.(type) {
	case *cgrammar.ExprStmt:
		return x.exprStatement(s), nil

	case *cgrammar.BreakStmt:
		return Break{}, nil

	case *cgrammar.ReturnStmt:
		return Return{}, nil

	case *cgrammar.IfStmt:
		if s.Else != nil {
			x.report(SeverityNote, CodeElseDropped, s.Else.Position(), "else branch dropped")
		}
		cond := x.expression(s.Cond)
		if _, ok := s.Then.(*cgrammar.CompoundStmt); ok {
			x.report(SeverityWarning, CodeUnsupportedStatement, s.Then.Position(),
				"block as if body is not supported")
			return Conditional{Cond: cond, Then: Unsupported{Construct: "block"}}, nil
		}
		then, err := x.statement(s.Then)
		if err != nil {
			return nil, err
		}
		return Conditional{Cond: cond, Then: then}, nil

	default:
		name := statementKind(s)
		x.report(SeverityWarning, CodeUnsupportedStatement, s.Position(), "%s is not supported", name)
		return Unsupported{Construct: name}, nil
	}
}

// findGoto returns the first goto anywhere inside s, however deeply nested.
// Even one that could never run fails the compilation.
func findGoto(s cgrammar.Stmt) *cgrammar.GotoStmt {
	var children []cgrammar.Stmt
	switch s := s.(type) {
	case nil:
		return nil
	case *cgrammar.GotoStmt:
		return s
	case *cgrammar.CompoundStmt:
		for _, item := range s.Items {
			if st, ok := item.(cgrammar.Stmt); ok {
				children = append(children, st)
			}
		}
	case *cgrammar.IfStmt:
		children = []cgrammar.Stmt{s.Then, s.Else}
	case *cgrammar.LabeledStmt:
		children = []cgrammar.Stmt{s.Stmt}
	case *cgrammar.CaseStmt:
		children = []cgrammar.Stmt{s.Stmt}
	case *cgrammar.WhileStmt:
		children = []cgrammar.Stmt{s.Body}
	case *cgrammar.DoWhileStmt:
		children = []cgrammar.Stmt{s.Body}
	case *cgrammar.ForStmt:
		children = []cgrammar.Stmt{s.Body}
	case *cgrammar.SwitchStmt:
		children = []cgrammar.Stmt{s.Body}
	}
	for _, c := range children {
		if g := findGoto(c); g != nil {
			return g
		}
	}
	return nil
}

func (x *extractor) exprStatement(s *cgrammar.ExprStmt) Statement {
	if s.X == nil {
		x.report(SeverityNote, CodeEmptyStatement, s.Pos, "empty statement")
		return Unsupported{Construct: "empty statement"}
	}
	call, ok := cgrammar.Unparen(s.X).(*cgrammar.CallExpr)
	if !ok {
		name := expressionKind(s.X)
		x.report(SeverityWarning, CodeUnsupportedStatement, s.Pos, "%s statement is not supported", name)
		return Unsupported{Construct: name}
	}
	name, ok := x.callee(call)
	if !ok {
		return Unsupported{Construct: "call"}
	}
	return Effectful{Name: name}
}

func (x *extractor) expression(e cgrammar.Expr) Expression {
	switch e := cgrammar.Unparen(e).(type) {
	case *cgrammar.CallExpr:
		name, ok := x.callee(e)
		if !ok {
			return UnsupportedExpr{Construct: "call"}
		}
		return Call{Name: name}

	case *cgrammar.BinaryExpr:
		if e.Op != "&&" {
			x.report(SeverityWarning, CodeUnsupportedOperator, e.Pos,
				"operator %q is not supported; evaluates to false", e.Op)
			return UnsupportedExpr{Construct: "operator " + e.Op}
		}
		return LogicalAnd{L: x.expression(e.X), R: x.expression(e.Y)}

	default:
		name := expressionKind(e)
		x.report(SeverityWarning, CodeUnsupportedExpression, e.Position(),
			"%s in condition is not supported; evaluates to false", name)
		return UnsupportedExpr{Construct: name}
	}
}

// callee returns the called identifier. Arguments are ignored.
func (x *extractor) callee(c *cgrammar.CallExpr) (string, bool) {
	id, ok := cgrammar.Unparen(c.Fun).(*cgrammar.Ident)
	if !ok {
		x.report(SeverityWarning, CodeComplexCallee, c.Pos,
			"callee %s is not an identifier", expressionKind(c.Fun))
		return "", false
	}
	return id.Name, true
}

func statementKind(s cgrammar.Stmt) string {
	switch s.(type) {
	case *cgrammar.CompoundStmt:
		return "block"
	case *cgrammar.WhileStmt:
		return "while"
	case *cgrammar.DoWhileStmt:
		return "do-while"
	case *cgrammar.ForStmt:
		return "for"
	case *cgrammar.SwitchStmt:
		return "switch"
	case *cgrammar.CaseStmt:
		return "case"
	case *cgrammar.LabeledStmt:
		return "label"
	case *cgrammar.ContinueStmt:
		return "continue"
	case *cgrammar.AsmStmt:
		return "asm"
	default:
		return fmt.Sprintf("%T", s)
	}
}

func expressionKind(e cgrammar.Expr) string {
	switch e := e.(type) {
	case *cgrammar.Ident:
		return "identifier"
	case *cgrammar.Literal:
		return "literal"
	case *cgrammar.CallExpr:
		return "call"
	case *cgrammar.UnaryExpr:
		return "operator " + e.Op
	case *cgrammar.BinaryExpr:
		return "operator " + e.Op
	case *cgrammar.AssignExpr:
		return "assignment"
	case *cgrammar.CondExpr:
		return "conditional expression"
	case *cgrammar.ParenExpr:
		return expressionKind(e.X)
	case *cgrammar.OtherExpr:
		return e.Kind
	default:
		return fmt.Sprintf("%T", e)
	}
}
