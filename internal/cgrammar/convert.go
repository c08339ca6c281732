package cgrammar

import "modernc.org/cc/v4"

func at(n cc.Node) Pos {
	p := n.Position()
	return Pos{Line: p.Line, Column: p.Column}
}

func translationUnit(n *cc.TranslationUnit) *TranslationUnit {
	unit := &TranslationUnit{}
	for ; n != nil; n = n.TranslationUnit {
		ed := n.ExternalDeclaration
		if ed.Position().Filename == preludeName {
			continue
		}
		switch ed.Case {
		case cc.ExternalDeclarationFuncDef:
			fn := ed.FunctionDefinition
			unit.Decls = append(unit.Decls, &FuncDef{
				Pos:  at(fn),
				Name: fn.Declarator.Name(),
				Body: compound(fn.CompoundStatement),
			})
		case cc.ExternalDeclarationDecl, cc.ExternalDeclarationAsmStmt:
			unit.Decls = append(unit.Decls, &Declaration{Pos: at(ed)})
		}
	}
	return unit
}

func compound(n *cc.CompoundStatement) *CompoundStmt {
	s := &CompoundStmt{Pos: at(n.Token)}
	for l := n.BlockItemList; l != nil; l = l.BlockItemList {
		item := l.BlockItem
		if item.Case == cc.BlockItemStmt {
			s.Items = append(s.Items, statement(item.Statement))
			continue
		}
		// Declarations, __label__ lists and nested function definitions.
		s.Items = append(s.Items, &Declaration{Pos: at(item)})
	}
	return s
}

func statement(n *cc.Statement) Stmt {
	switch n.Case {
	case cc.StatementLabeled:
		return labeled(n.LabeledStatement)
	case cc.StatementCompound:
		return compound(n.CompoundStatement)
	case cc.StatementExpr:
		es := n.ExpressionStatement
		return &ExprStmt{Pos: at(es), X: expression(es.ExpressionList)}
	case cc.StatementSelection:
		return selection(n.SelectionStatement)
	case cc.StatementIteration:
		return iteration(n.IterationStatement)
	case cc.StatementJump:
		return jump(n.JumpStatement)
	default:
		return &AsmStmt{Pos: at(n)}
	}
}

func labeled(n *cc.LabeledStatement) Stmt {
	if n.Case == cc.LabeledStatementLabel {
		return &LabeledStmt{Pos: at(n.Token), Label: n.Token.SrcStr(), Stmt: statement(n.Statement)}
	}
	return &CaseStmt{Pos: at(n.Token), Stmt: statement(n.Statement)}
}

func selection(n *cc.SelectionStatement) Stmt {
	switch n.Case {
	case cc.SelectionStatementSwitch:
		return &SwitchStmt{Pos: at(n.Token), Tag: expression(n.ExpressionList), Body: statement(n.Statement)}
	case cc.SelectionStatementIfElse:
		return &IfStmt{
			Pos:  at(n.Token),
			Cond: expression(n.ExpressionList),
			Then: statement(n.Statement),
			Else: statement(n.Statement2),
		}
	default:
		return &IfStmt{Pos: at(n.Token), Cond: expression(n.ExpressionList), Then: statement(n.Statement)}
	}
}

func iteration(n *cc.IterationStatement) Stmt {
	switch n.Case {
	case cc.IterationStatementWhile:
		return &WhileStmt{Pos: at(n.Token), Cond: expression(n.ExpressionList), Body: statement(n.Statement)}
	case cc.IterationStatementDo:
		return &DoWhileStmt{Pos: at(n.Token), Body: statement(n.Statement), Cond: expression(n.ExpressionList)}
	default:
		return &ForStmt{Pos: at(n.Token), Body: statement(n.Statement)}
	}
}

func jump(n *cc.JumpStatement) Stmt {
	pos := at(n.Token)
	switch n.Case {
	case cc.JumpStatementGoto:
		return &GotoStmt{Pos: pos, Label: n.Token2.SrcStr()}
	case cc.JumpStatementGotoExpr:
		return &GotoStmt{Pos: pos, Label: "*"}
	case cc.JumpStatementContinue:
		return &ContinueStmt{Pos: pos}
	case cc.JumpStatementBreak:
		return &BreakStmt{Pos: pos}
	default:
		return &ReturnStmt{Pos: pos, Value: expression(n.ExpressionList)}
	}
}

// expression converts an expression subtree. cc collapses single-operand
// productions, so most nodes seen here carry an operator.
func expression(n cc.ExpressionNode) Expr {
	if n == nil {
		return nil
	}
	switch n := n.(type) {
	case *cc.PrimaryExpression:
		return primary(n)
	case *cc.PostfixExpression:
		return postfix(n)
	case *cc.UnaryExpression:
		return unary(n)
	case *cc.CastExpression:
		if n.Case == cc.CastExpressionUnary {
			return expression(n.UnaryExpression)
		}
		return &OtherExpr{Pos: at(n), Kind: "cast"}
	case *cc.MultiplicativeExpression:
		return binary(n, n.MultiplicativeExpression, n.CastExpression, n.Token)
	case *cc.AdditiveExpression:
		return binary(n, n.AdditiveExpression, n.MultiplicativeExpression, n.Token)
	case *cc.ShiftExpression:
		return binary(n, n.ShiftExpression, n.AdditiveExpression, n.Token)
	case *cc.RelationalExpression:
		return binary(n, n.RelationalExpression, n.ShiftExpression, n.Token)
	case *cc.EqualityExpression:
		return binary(n, n.EqualityExpression, n.RelationalExpression, n.Token)
	case *cc.AndExpression:
		return binary(n, n.AndExpression, n.EqualityExpression, n.Token)
	case *cc.ExclusiveOrExpression:
		return binary(n, n.ExclusiveOrExpression, n.AndExpression, n.Token)
	case *cc.InclusiveOrExpression:
		return binary(n, n.InclusiveOrExpression, n.ExclusiveOrExpression, n.Token)
	case *cc.LogicalAndExpression:
		return binary(n, n.LogicalAndExpression, n.InclusiveOrExpression, n.Token)
	case *cc.LogicalOrExpression:
		return binary(n, n.LogicalOrExpression, n.LogicalAndExpression, n.Token)
	case *cc.ConditionalExpression:
		if n.Case == cc.ConditionalExpressionLOr {
			return expression(n.LogicalOrExpression)
		}
		return &CondExpr{
			Pos:  at(n),
			Cond: expression(n.LogicalOrExpression),
			Then: expression(n.ExpressionList),
			Else: expression(n.ConditionalExpression),
		}
	case *cc.AssignmentExpression:
		if n.Case == cc.AssignmentExpressionCond {
			return expression(n.ConditionalExpression)
		}
		return &AssignExpr{
			Pos: at(n),
			Op:  n.Token.SrcStr(),
			L:   expression(n.UnaryExpression),
			R:   expression(n.AssignmentExpression),
		}
	case *cc.ExpressionList:
		var x Expr
		for l := n; l != nil; l = l.ExpressionList {
			y := expression(l.AssignmentExpression)
			if x == nil {
				x = y
				continue
			}
			x = &BinaryExpr{Pos: at(n), Op: ",", X: x, Y: y}
		}
		return x
	case *cc.ConstantExpression:
		return expression(n.ConditionalExpression)
	default:
		return &OtherExpr{Pos: at(n), Kind: "expression"}
	}
}

// binary builds `left op right`. A node without a left operand is a
// pass-through production.
func binary(n cc.Node, left, right cc.ExpressionNode, op cc.Token) Expr {
	if left == nil {
		return expression(right)
	}
	return &BinaryExpr{Pos: at(n), Op: op.SrcStr(), X: expression(left), Y: expression(right)}
}

func primary(n *cc.PrimaryExpression) Expr {
	switch n.Case {
	case cc.PrimaryExpressionIdent:
		return &Ident{Pos: at(n), Name: n.Token.SrcStr()}
	case cc.PrimaryExpressionExpr:
		return &ParenExpr{Pos: at(n), X: expression(n.ExpressionList)}
	case cc.PrimaryExpressionStmt:
		return &OtherExpr{Pos: at(n), Kind: "statement expression"}
	case cc.PrimaryExpressionGeneric:
		return &OtherExpr{Pos: at(n), Kind: "generic selection"}
	default:
		return &Literal{Pos: at(n), Value: n.Token.SrcStr()}
	}
}

func postfix(n *cc.PostfixExpression) Expr {
	switch n.Case {
	case cc.PostfixExpressionPrimary:
		return expression(n.PrimaryExpression)
	case cc.PostfixExpressionCall:
		call := &CallExpr{Pos: at(n), Fun: expression(n.PostfixExpression)}
		for l := n.ArgumentExpressionList; l != nil; l = l.ArgumentExpressionList {
			call.Args = append(call.Args, expression(l.AssignmentExpression))
		}
		return call
	case cc.PostfixExpressionInc, cc.PostfixExpressionDec:
		return &UnaryExpr{Pos: at(n), Op: n.Token.SrcStr(), X: expression(n.PostfixExpression), Postfix: true}
	case cc.PostfixExpressionIndex:
		return &OtherExpr{Pos: at(n), Kind: "index"}
	case cc.PostfixExpressionSelect, cc.PostfixExpressionPSelect:
		return &OtherExpr{Pos: at(n), Kind: "member access"}
	default:
		return &OtherExpr{Pos: at(n), Kind: "compound literal"}
	}
}

func unary(n *cc.UnaryExpression) Expr {
	switch n.Case {
	case cc.UnaryExpressionPostfix:
		return expression(n.PostfixExpression)
	case cc.UnaryExpressionInc, cc.UnaryExpressionDec:
		return &UnaryExpr{Pos: at(n.Token), Op: n.Token.SrcStr(), X: expression(n.UnaryExpression)}
	case cc.UnaryExpressionAddrof, cc.UnaryExpressionDeref, cc.UnaryExpressionPlus,
		cc.UnaryExpressionMinus, cc.UnaryExpressionCpl, cc.UnaryExpressionNot:
		return &UnaryExpr{Pos: at(n.Token), Op: n.Token.SrcStr(), X: expression(n.CastExpression)}
	case cc.UnaryExpressionSizeofExpr, cc.UnaryExpressionSizeofType:
		return &OtherExpr{Pos: at(n.Token), Kind: "sizeof"}
	case cc.UnaryExpressionAlignofExpr, cc.UnaryExpressionAlignofType:
		return &OtherExpr{Pos: at(n.Token), Kind: "alignof"}
	case cc.UnaryExpressionLabelAddr:
		return &OtherExpr{Pos: at(n.Token), Kind: "label address"}
	default:
		return &OtherExpr{Pos: at(n.Token), Kind: "complex part"}
	}
}
