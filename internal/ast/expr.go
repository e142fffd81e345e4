package ast

import "github.com/0xoc/P2C/internal/token"

// NumLit represents a numeric literal.
// Examples: 10, 3.14, .5, 1e10
type NumLit struct {
	BaseExpr
	Value float64 // Parsed numeric value
	Raw   string  // Original source text, emitted verbatim
}

// BoolLit represents True or False.
type BoolLit struct {
	BaseExpr
	Value bool
}

// Ident represents a variable reference.
type Ident struct {
	BaseExpr
	Name string
}

// BinaryExpr represents a binary operation.
// Op is one of + - * / % && || < <= > >= == !=.
type BinaryExpr struct {
	BaseExpr
	Left  Expr
	Op    token.Token
	Right Expr
}

// UnaryExpr represents a prefix operation: -x, +x, !x.
type UnaryExpr struct {
	BaseExpr
	Op   token.Token // ADD, SUB or NOT
	Expr Expr
}

// IsConst reports whether e is a numeric literal, optionally wrapped in
// unary + or -, and returns its folded value.
func IsConst(e Expr) (float64, bool) {
	switch n := e.(type) {
	case *NumLit:
		return n.Value, true
	case *UnaryExpr:
		v, ok := IsConst(n.Expr)
		if !ok {
			return 0, false
		}
		switch n.Op {
		case token.ADD:
			return v, true
		case token.SUB:
			return -v, true
		}
	}
	return 0, false
}

var (
	_ Expr = (*NumLit)(nil)
	_ Expr = (*BoolLit)(nil)
	_ Expr = (*Ident)(nil)
	_ Expr = (*BinaryExpr)(nil)
	_ Expr = (*UnaryExpr)(nil)
)
