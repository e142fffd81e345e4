package ast

import "github.com/0xoc/P2C/internal/token"

// AssignStmt represents plain or compound assignment.
// Examples: a = 10, total += i
type AssignStmt struct {
	BaseStmt
	Op     token.Token // ASSIGN, ADD_ASSIGN, SUB_ASSIGN, MUL_ASSIGN or DIV_ASSIGN
	Target *Ident
	Value  Expr
}

// ExprStmt represents an expression evaluated for its own sake.
type ExprStmt struct {
	BaseStmt
	Expr Expr
}

// Block is a brace-delimited statement list. It may be empty.
type Block struct {
	Lbrace token.Position
	Rbrace token.Position
	Stmts  []Stmt
}

func (b *Block) Pos() token.Position { return b.Lbrace }
func (b *Block) End() token.Position { return b.Rbrace }

// IfBranch is one guarded clause of an if/elif chain.
type IfBranch struct {
	Cond Expr
	Body *Block
}

// IfStmt represents an if/elif/else chain collapsed into ordered branches.
// Branches always has at least one element. Else is nil when there is no
// else clause and comes after every branch when present.
type IfStmt struct {
	BaseStmt
	Branches []IfBranch
	Else     *Block
}

// WhileStmt represents a while loop.
type WhileStmt struct {
	BaseStmt
	Cond Expr
	Body *Block
}

// Range holds the normalized arguments of range(...): one argument means
// (0, a, 1), two mean (a, b, 1).
type Range struct {
	Start Expr
	Stop  Expr
	Step  Expr
}

// ForStmt represents for <var> in range(...).
type ForStmt struct {
	BaseStmt
	Var   *Ident
	Range Range
	Body  *Block
}

// BreakStmt exits the innermost enclosing loop.
type BreakStmt struct {
	BaseStmt
}

// ContinueStmt jumps to the next iteration of the innermost enclosing loop.
type ContinueStmt struct {
	BaseStmt
}

var (
	_ Stmt = (*AssignStmt)(nil)
	_ Stmt = (*ExprStmt)(nil)
	_ Stmt = (*IfStmt)(nil)
	_ Stmt = (*WhileStmt)(nil)
	_ Stmt = (*ForStmt)(nil)
	_ Stmt = (*BreakStmt)(nil)
	_ Stmt = (*ContinueStmt)(nil)
	_ Node = (*Block)(nil)
)
