package cgrammar

// Node is implemented by every syntax tree node.
type Node interface {
	Position() Pos
}

// TranslationUnit is a whole source file.
type TranslationUnit struct {
	Decls []ExternalDecl
}

// ExternalDecl is a top-level item: *FuncDef or *Declaration.
type ExternalDecl interface {
	Node
	externalDecl()
}

// BlockItem is an item inside a compound statement: a Stmt or a *Declaration.
type BlockItem interface {
	Node
	blockItem()
}

// Stmt is a statement node.
type Stmt interface {
	BlockItem
	stmt()
}

// Expr is an expression node.
type Expr interface {
	Node
	expr()
}

// Declaration declares names without defining a function body. Its contents
// are not kept.
type Declaration struct {
	Pos Pos
}

// FuncDef is a function definition with a body.
type FuncDef struct {
	Pos  Pos
	Name string
	Body *CompoundStmt
}

func (d *Declaration) Position() Pos { return d.Pos }
func (f *FuncDef) Position() Pos     { return f.Pos }

func (*Declaration) externalDecl() {}
func (*FuncDef) externalDecl()     {}
func (*Declaration) blockItem()    {}

type (
	// CompoundStmt is a `{ ... }` block.
	CompoundStmt struct {
		Pos   Pos
		Items []BlockItem
	}

	// ExprStmt is an expression followed by `;`. X is nil for the empty statement.
	ExprStmt struct {
		Pos Pos
		X   Expr
	}

	// IfStmt is `if (Cond) Then [else Else]`.
	IfStmt struct {
		Pos  Pos
		Cond Expr
		Then Stmt
		Else Stmt
	}

	// WhileStmt is `while (Cond) Body`.
	WhileStmt struct {
		Pos  Pos
		Cond Expr
		Body Stmt
	}

	// DoWhileStmt is `do Body while (Cond);`.
	DoWhileStmt struct {
		Pos  Pos
		Body Stmt
		Cond Expr
	}

	// ForStmt is a `for` loop. Its clauses are not kept.
	ForStmt struct {
		Pos  Pos
		Body Stmt
	}

	// SwitchStmt is `switch (Tag) Body`.
	SwitchStmt struct {
		Pos  Pos
		Tag  Expr
		Body Stmt
	}

	// CaseStmt is a `case` or `default` label and the statement it marks.
	CaseStmt struct {
		Pos  Pos
		Stmt Stmt
	}

	// LabeledStmt is `Label: Stmt`.
	LabeledStmt struct {
		Pos   Pos
		Label string
		Stmt  Stmt
	}

	// BreakStmt is `break;`.
	BreakStmt struct{ Pos Pos }

	// ContinueStmt is `continue;`.
	ContinueStmt struct{ Pos Pos }

	// ReturnStmt is `return [Value];`.
	ReturnStmt struct {
		Pos   Pos
		Value Expr
	}

	// GotoStmt is `goto Label;`. Label is "*" for a computed goto.
	GotoStmt struct {
		Pos   Pos
		Label string
	}

	// AsmStmt is an inline assembly statement.
	AsmStmt struct{ Pos Pos }
)

func (s *CompoundStmt) Position() Pos { return s.Pos }
func (s *ExprStmt) Position() Pos     { return s.Pos }
func (s *IfStmt) Position() Pos       { return s.Pos }
func (s *WhileStmt) Position() Pos    { return s.Pos }
func (s *DoWhileStmt) Position() Pos  { return s.Pos }
func (s *ForStmt) Position() Pos      { return s.Pos }
func (s *SwitchStmt) Position() Pos   { return s.Pos }
func (s *CaseStmt) Position() Pos     { return s.Pos }
func (s *LabeledStmt) Position() Pos  { return s.Pos }
func (s *BreakStmt) Position() Pos    { return s.Pos }
func (s *ContinueStmt) Position() Pos { return s.Pos }
func (s *ReturnStmt) Position() Pos   { return s.Pos }
func (s *GotoStmt) Position() Pos     { return s.Pos }
func (s *AsmStmt) Position() Pos      { return s.Pos }

func (*CompoundStmt) blockItem() {}
func (*ExprStmt) blockItem()     {}
func (*IfStmt) blockItem()       {}
func (*WhileStmt) blockItem()    {}
func (*DoWhileStmt) blockItem()  {}
func (*ForStmt) blockItem()      {}
func (*SwitchStmt) blockItem()   {}
func (*CaseStmt) blockItem()     {}
func (*LabeledStmt) blockItem()  {}
func (*BreakStmt) blockItem()    {}
func (*ContinueStmt) blockItem() {}
func (*ReturnStmt) blockItem()   {}
func (*GotoStmt) blockItem()     {}
func (*AsmStmt) blockItem()      {}

func (*CompoundStmt) stmt() {}
func (*ExprStmt) stmt()     {}
func (*IfStmt) stmt()       {}
func (*WhileStmt) stmt()    {}
func (*DoWhileStmt) stmt()  {}
func (*ForStmt) stmt()      {}
func (*SwitchStmt) stmt()   {}
func (*CaseStmt) stmt()     {}
func (*LabeledStmt) stmt()  {}
func (*BreakStmt) stmt()    {}
func (*ContinueStmt) stmt() {}
func (*ReturnStmt) stmt()   {}
func (*GotoStmt) stmt()     {}
func (*AsmStmt) stmt()      {}

type (
	// Ident is a bare identifier.
	Ident struct {
		Pos  Pos
		Name string
	}

	// Literal is a numeric, character or string constant as written.
	Literal struct {
		Pos   Pos
		Value string
	}

	// CallExpr is `Fun(Args...)`.
	CallExpr struct {
		Pos  Pos
		Fun  Expr
		Args []Expr
	}

	// UnaryExpr is a prefix or postfix operator application.
	UnaryExpr struct {
		Pos     Pos
		Op      string
		X       Expr
		Postfix bool
	}

	// BinaryExpr is `X Op Y`, including the comma operator.
	BinaryExpr struct {
		Pos Pos
		Op  string
		X   Expr
		Y   Expr
	}

	// AssignExpr is `L Op R` for `=` and the compound assignments.
	AssignExpr struct {
		Pos Pos
		Op  string
		L   Expr
		R   Expr
	}

	// CondExpr is `Cond ? Then : Else`. Then is nil for the GNU `a ?: b` form.
	CondExpr struct {
		Pos  Pos
		Cond Expr
		Then Expr
		Else Expr
	}

	// ParenExpr is a parenthesised expression.
	ParenExpr struct {
		Pos Pos
		X   Expr
	}

	// OtherExpr is an expression whose parts are not kept, such as a cast,
	// sizeof, indexing or member access. Kind names it.
	OtherExpr struct {
		Pos  Pos
		Kind string
	}
)

func (e *Ident) Position() Pos      { return e.Pos }
func (e *Literal) Position() Pos    { return e.Pos }
func (e *CallExpr) Position() Pos   { return e.Pos }
func (e *UnaryExpr) Position() Pos  { return e.Pos }
func (e *BinaryExpr) Position() Pos { return e.Pos }
func (e *AssignExpr) Position() Pos { return e.Pos }
func (e *CondExpr) Position() Pos   { return e.Pos }
func (e *ParenExpr) Position() Pos  { return e.Pos }
func (e *OtherExpr) Position() Pos  { return e.Pos }

func (*Ident) expr()      {}
func (*Literal) expr()    {}
func (*CallExpr) expr()   {}
func (*UnaryExpr) expr()  {}
func (*BinaryExpr) expr() {}
func (*AssignExpr) expr() {}
func (*CondExpr) expr()   {}
func (*ParenExpr) expr()  {}
func (*OtherExpr) expr()  {}

// Unparen strips any number of enclosing parentheses.
func Unparen(e Expr) Expr {
	for {
		p, ok := e.(*ParenExpr)
		if !ok {
			return e
		}
		e = p.X
	}
}
