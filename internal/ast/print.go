package ast

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/0xoc/P2C/internal/token"
)

// Printer renders AST nodes back into P2C source, one statement per line
// with compound operands fully parenthesized.
type Printer struct {
	w      io.Writer
	indent int
	err    error
}

// NewPrinter creates a new Printer that writes to w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Print writes the source form of node to the writer.
func (p *Printer) Print(node Node) error {
	p.printNode(node)
	return p.err
}

// String returns the source form of node.
func String(node Node) string {
	var sb strings.Builder
	_ = NewPrinter(&sb).Print(node)
	return sb.String()
}

func (p *Printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *Printer) writeIndent() {
	if p.err != nil {
		return
	}
	_, p.err = io.WriteString(p.w, strings.Repeat("    ", p.indent))
}

func (p *Printer) printNode(node Node) {
	switch n := node.(type) {
	case nil:
		p.printf("<nil>")
	case *Program:
		for _, s := range n.Stmts {
			p.printStmt(s)
		}
	case *Block:
		p.printBlock(n)
	case Expr:
		p.printExpr(n)
	case Stmt:
		p.printStmt(n)
	default:
		p.printf("<%T>", node)
	}
}

func (p *Printer) printStmt(s Stmt) {
	p.writeIndent()
	switch n := s.(type) {
	case *AssignStmt:
		p.printExpr(n.Target)
		p.printf(" %s ", n.Op.Symbol())
		p.printExpr(n.Value)

	case *ExprStmt:
		p.printExpr(n.Expr)

	case *IfStmt:
		for i, br := range n.Branches {
			if i == 0 {
				p.printf("if ")
			} else {
				p.writeIndent()
				p.printf("elif ")
			}
			p.printExpr(br.Cond)
			p.printf(": ")
			p.printBlock(br.Body)
			if i < len(n.Branches)-1 || n.Else != nil {
				p.printf("\n")
			}
		}
		if n.Else != nil {
			p.writeIndent()
			p.printf("else: ")
			p.printBlock(n.Else)
		}

	case *WhileStmt:
		p.printf("while ")
		p.printExpr(n.Cond)
		p.printf(": ")
		p.printBlock(n.Body)

	case *ForStmt:
		p.printf("for %s in range(", n.Var.Name)
		p.printExpr(n.Range.Start)
		p.printf(", ")
		p.printExpr(n.Range.Stop)
		p.printf(", ")
		p.printExpr(n.Range.Step)
		p.printf("): ")
		p.printBlock(n.Body)

	case *BreakStmt:
		p.printf("break")

	case *ContinueStmt:
		p.printf("continue")

	default:
		p.printf("<%T>", s)
	}
	p.printf("\n")
}

func (p *Printer) printBlock(b *Block) {
	if b == nil || len(b.Stmts) == 0 {
		p.printf("{ }")
		return
	}
	p.printf("{\n")
	p.indent++
	for _, s := range b.Stmts {
		p.printStmt(s)
	}
	p.indent--
	p.writeIndent()
	p.printf("}")
}

func (p *Printer) printExpr(e Expr) {
	switch n := e.(type) {
	case nil:
		p.printf("<nil>")

	case *NumLit:
		p.printf("%s", numText(n))

	case *BoolLit:
		if n.Value {
			p.printf("True")
		} else {
			p.printf("False")
		}

	case *Ident:
		p.printf("%s", n.Name)

	case *BinaryExpr:
		// Operands are parenthesized whenever they are compound, which keeps
		// the output independent of precedence and associativity rules.
		p.printOperand(n.Left)
		p.printf(" %s ", n.Op.Symbol())
		p.printOperand(n.Right)

	case *UnaryExpr:
		p.printf("%s", n.Op.Symbol())
		p.printOperand(n.Expr)

	default:
		p.printf("<%T>", e)
	}
}

func (p *Printer) printOperand(e Expr) {
	if needsParens(e) {
		p.printf("(")
		p.printExpr(e)
		p.printf(")")
		return
	}
	p.printExpr(e)
}

func needsParens(e Expr) bool {
	switch e.(type) {
	case *BinaryExpr, *UnaryExpr:
		return true
	default:
		return false
	}
}

func numText(n *NumLit) string {
	if n.Raw != "" {
		return n.Raw
	}
	return strconv.FormatFloat(n.Value, 'g', -1, 64)
}

// Sexpr serializes a node as nested tagged tuples, e.g.
//
//	(= a 10)
//	(+ (neg a) b)
//	(for i (range 10 20 2) ((+= a i)))
//
// The form names each variant explicitly and is stable across parses of
// the same source.
func Sexpr(node Node) string {
	var sb strings.Builder
	writeSexpr(&sb, node)
	return sb.String()
}

func writeSexpr(sb *strings.Builder, node Node) {
	switch n := node.(type) {
	case nil:
		sb.WriteString("nil")

	case *Program:
		sb.WriteString("(program")
		for _, s := range n.Stmts {
			sb.WriteByte(' ')
			writeSexpr(sb, s)
		}
		sb.WriteByte(')')

	case *Block:
		writeStmts(sb, n)

	case *NumLit:
		sb.WriteString(strconv.FormatFloat(n.Value, 'g', -1, 64))

	case *BoolLit:
		if n.Value {
			sb.WriteString("True")
		} else {
			sb.WriteString("False")
		}

	case *Ident:
		sb.WriteString(n.Name)

	case *BinaryExpr:
		fmt.Fprintf(sb, "(%s ", n.Op.Symbol())
		writeSexpr(sb, n.Left)
		sb.WriteByte(' ')
		writeSexpr(sb, n.Right)
		sb.WriteByte(')')

	case *UnaryExpr:
		fmt.Fprintf(sb, "(%s ", unaryTag(n.Op))
		writeSexpr(sb, n.Expr)
		sb.WriteByte(')')

	case *AssignStmt:
		fmt.Fprintf(sb, "(%s %s ", n.Op.Symbol(), n.Target.Name)
		writeSexpr(sb, n.Value)
		sb.WriteByte(')')

	case *ExprStmt:
		sb.WriteString("(expr ")
		writeSexpr(sb, n.Expr)
		sb.WriteByte(')')

	case *IfStmt:
		sb.WriteString("(if")
		for _, br := range n.Branches {
			sb.WriteString(" (")
			writeSexpr(sb, br.Cond)
			sb.WriteByte(' ')
			writeStmts(sb, br.Body)
			sb.WriteByte(')')
		}
		if n.Else != nil {
			sb.WriteString(" (else ")
			writeStmts(sb, n.Else)
			sb.WriteByte(')')
		}
		sb.WriteByte(')')

	case *WhileStmt:
		sb.WriteString("(while ")
		writeSexpr(sb, n.Cond)
		sb.WriteByte(' ')
		writeStmts(sb, n.Body)
		sb.WriteByte(')')

	case *ForStmt:
		fmt.Fprintf(sb, "(for %s (range ", n.Var.Name)
		writeSexpr(sb, n.Range.Start)
		sb.WriteByte(' ')
		writeSexpr(sb, n.Range.Stop)
		sb.WriteByte(' ')
		writeSexpr(sb, n.Range.Step)
		sb.WriteString(") ")
		writeStmts(sb, n.Body)
		sb.WriteByte(')')

	case *BreakStmt:
		sb.WriteString("(break)")

	case *ContinueStmt:
		sb.WriteString("(continue)")

	default:
		fmt.Fprintf(sb, "<%T>", node)
	}
}

func writeStmts(sb *strings.Builder, b *Block) {
	sb.WriteByte('(')
	if b != nil {
		for i, s := range b.Stmts {
			if i > 0 {
				sb.WriteByte(' ')
			}
			writeSexpr(sb, s)
		}
	}
	sb.WriteByte(')')
}

// unaryTag distinguishes unary operators from their binary spellings.
func unaryTag(op token.Token) string {
	switch op {
	case token.SUB:
		return "neg"
	case token.ADD:
		return "pos"
	case token.NOT:
		return "!"
	default:
		return op.String()
	}
}
