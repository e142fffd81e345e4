package ast

import "github.com/0xoc/P2C/internal/token"

// Program is the root of the tree: top-level statements in source order.
type Program struct {
	// Source file name (for error messages)
	Filename string

	Stmts []Stmt

	StartPos token.Position
	EndPos   token.Position
}

// Pos returns the position of the first token in the program.
func (p *Program) Pos() token.Position { return p.StartPos }

// End returns the position after the last token in the program.
func (p *Program) End() token.Position { return p.EndPos }

var _ Node = (*Program)(nil)
