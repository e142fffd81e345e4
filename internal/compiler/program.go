package compiler

import (
	"fmt"
	"strings"

	"github.com/0xoc/P2C/internal/semantic"
)

// Fixed text around the lowered instructions.
const (
	Header = "#include <stdio.h>\n\nint main() {\n"
	Footer = "return 0;\n}\n"
)

// Program is the result of lowering one source program.
type Program struct {
	// Code is the flat instruction stream in execution order.
	Code []Instr

	// NumericType is the C type given to every variable and temporary.
	NumericType string

	// Symbols lists the declared variables in declaration order.
	Symbols []*semantic.Symbol

	// Counts of generated names.
	NumTemps  int
	NumLabels int
}

// Body returns the instructions as C lines, one per line.
func (p *Program) Body() string {
	var sb strings.Builder
	for _, in := range p.Code {
		sb.WriteString(in.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Text returns the complete C program: header, body and footer.
// The text is not indented; see Format.
func (p *Program) Text() string {
	return Header + p.Body() + Footer
}

// Disassemble returns a human-readable listing of the instructions.
func (p *Program) Disassemble() string {
	var sb strings.Builder

	if len(p.Symbols) > 0 {
		sb.WriteString("=== Symbols ===\n")
		for _, sym := range p.Symbols {
			fmt.Fprintf(&sb, "  [%d] %s %s (%s)\n", sym.Index, p.NumericType, sym.Name, sym.Pos)
		}
		sb.WriteString("\n")
	}

	fmt.Fprintf(&sb, "=== Code (%d temps, %d labels) ===\n", p.NumTemps, p.NumLabels)
	for i, in := range p.Code {
		fmt.Fprintf(&sb, "  %04d: %-8s %s\n", i, in.Op.String(), in.String())
	}
	return sb.String()
}
