package ast

// StmtVisitor is implemented by passes that handle every statement kind.
// Adding a statement type adds a method here, so every pass has to grow a
// case for it before the module compiles again.
type StmtVisitor[T any] interface {
	VisitAssignStmt(*AssignStmt) T
	VisitExprStmt(*ExprStmt) T
	VisitIfStmt(*IfStmt) T
	VisitWhileStmt(*WhileStmt) T
	VisitForStmt(*ForStmt) T
	VisitBreakStmt(*BreakStmt) T
	VisitContinueStmt(*ContinueStmt) T
}

// ExprVisitor is the expression counterpart of StmtVisitor.
type ExprVisitor[T any] interface {
	VisitNumLit(*NumLit) T
	VisitBoolLit(*BoolLit) T
	VisitIdent(*Ident) T
	VisitBinaryExpr(*BinaryExpr) T
	VisitUnaryExpr(*UnaryExpr) T
}

// AcceptStmt dispatches s to the matching method of v.
// It returns false when s is nil or not a known statement type.
func AcceptStmt[T any](s Stmt, v StmtVisitor[T]) (T, bool) {
	switch n := s.(type) {
	case *AssignStmt:
		return v.VisitAssignStmt(n), true
	case *ExprStmt:
		return v.VisitExprStmt(n), true
	case *IfStmt:
		return v.VisitIfStmt(n), true
	case *WhileStmt:
		return v.VisitWhileStmt(n), true
	case *ForStmt:
		return v.VisitForStmt(n), true
	case *BreakStmt:
		return v.VisitBreakStmt(n), true
	case *ContinueStmt:
		return v.VisitContinueStmt(n), true
	}
	var zero T
	return zero, false
}

// AcceptExpr dispatches e to the matching method of v.
// It returns false when e is nil or not a known expression type.
func AcceptExpr[T any](e Expr, v ExprVisitor[T]) (T, bool) {
	switch n := e.(type) {
	case *NumLit:
		return v.VisitNumLit(n), true
	case *BoolLit:
		return v.VisitBoolLit(n), true
	case *Ident:
		return v.VisitIdent(n), true
	case *BinaryExpr:
		return v.VisitBinaryExpr(n), true
	case *UnaryExpr:
		return v.VisitUnaryExpr(n), true
	}
	var zero T
	return zero, false
}

// Walk traverses an AST in depth-first order.
// For each node, it calls fn(node). If fn returns false,
// the children of that node are not visited.
//
// Example: count identifiers
//
//	count := 0
//	ast.Walk(program, func(n ast.Node) bool {
//	    if _, ok := n.(*ast.Ident); ok {
//	        count++
//	    }
//	    return true
//	})
func Walk(node Node, fn func(Node) bool) {
	if isNil(node) || !fn(node) {
		return
	}

	switch n := node.(type) {
	case *Program:
		for _, s := range n.Stmts {
			Walk(s, fn)
		}

	case *Block:
		for _, s := range n.Stmts {
			Walk(s, fn)
		}

	case *NumLit, *BoolLit, *Ident:
		// no children

	case *BinaryExpr:
		Walk(n.Left, fn)
		Walk(n.Right, fn)

	case *UnaryExpr:
		Walk(n.Expr, fn)

	case *AssignStmt:
		Walk(n.Target, fn)
		Walk(n.Value, fn)

	case *ExprStmt:
		Walk(n.Expr, fn)

	case *IfStmt:
		for _, br := range n.Branches {
			Walk(br.Cond, fn)
			Walk(br.Body, fn)
		}
		if n.Else != nil {
			Walk(n.Else, fn)
		}

	case *WhileStmt:
		Walk(n.Cond, fn)
		Walk(n.Body, fn)

	case *ForStmt:
		Walk(n.Var, fn)
		Walk(n.Range.Start, fn)
		Walk(n.Range.Stop, fn)
		Walk(n.Range.Step, fn)
		Walk(n.Body, fn)

	case *BreakStmt, *ContinueStmt:
		// no children
	}
}

// isNil reports whether node is nil, including typed nil pointers.
func isNil(node Node) bool {
	switch n := node.(type) {
	case nil:
		return true
	case *Block:
		return n == nil
	case *Ident:
		return n == nil
	}
	return false
}
