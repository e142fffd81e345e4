// Package compiler lowers a P2C AST into three-address code and renders
// it as the body of a C main function.
package compiler

import (
	"fmt"

	"github.com/0xoc/P2C/internal/token"
)

// Op identifies the kind of a three-address instruction.
type Op uint8

const (
	// Decl declares a variable without a value: Type Dest;
	Decl Op = iota

	// Temp declares a temporary holding one operation:
	// Type Dest = X Oper Y; or Type Dest = Oper X; or Type Dest = X;
	Temp

	// Assign stores into a variable: Dest Oper X;
	// A non-empty Type declares Dest in the same line.
	Assign

	// IfFalse jumps when X is zero: if (!X) goto Target;
	IfFalse

	// IfCmp jumps when a comparison holds: if (X Oper Y) goto Target;
	IfCmp

	// Goto jumps unconditionally: goto Target;
	Goto

	// Label defines a jump target: Target: ;
	Label
)

// String returns a human-readable name for the op.
func (op Op) String() string {
	switch op {
	case Decl:
		return "Decl"
	case Temp:
		return "Temp"
	case Assign:
		return "Assign"
	case IfFalse:
		return "IfFalse"
	case IfCmp:
		return "IfCmp"
	case Goto:
		return "Goto"
	case Label:
		return "Label"
	default:
		return fmt.Sprintf("Op(%d)", op)
	}
}

// Instr is one three-address instruction. Which fields are used depends
// on Op; see the Op constants.
type Instr struct {
	Op     Op
	Type   string         // C type for declarations
	Dest   string         // Variable or temporary written
	Oper   string         // Operator text, emitted verbatim
	X, Y   string         // Operands: names or literal text
	Target string         // Label jumped to or defined
	Pos    token.Position // Source position the instruction came from
}

// String renders the instruction as one line of C.
func (in Instr) String() string {
	switch in.Op {
	case Decl:
		return fmt.Sprintf("%s %s;", in.Type, in.Dest)

	case Temp:
		switch {
		case in.Y != "":
			return fmt.Sprintf("%s %s = %s %s %s;", in.Type, in.Dest, in.X, in.Oper, in.Y)
		case in.Oper != "":
			return fmt.Sprintf("%s %s = %s%s;", in.Type, in.Dest, in.Oper, in.X)
		default:
			return fmt.Sprintf("%s %s = %s;", in.Type, in.Dest, in.X)
		}

	case Assign:
		if in.Type != "" {
			return fmt.Sprintf("%s %s %s %s;", in.Type, in.Dest, in.Oper, in.X)
		}
		return fmt.Sprintf("%s %s %s;", in.Dest, in.Oper, in.X)

	case IfFalse:
		return fmt.Sprintf("if (!%s) goto %s;", in.X, in.Target)

	case IfCmp:
		return fmt.Sprintf("if (%s %s %s) goto %s;", in.X, in.Oper, in.Y, in.Target)

	case Goto:
		return fmt.Sprintf("goto %s;", in.Target)

	case Label:
		// The empty statement keeps the label legal when a declaration follows.
		return in.Target + ": ;"

	default:
		return fmt.Sprintf("/* %s */", in.Op)
	}
}

// Writes returns the name the instruction stores into, or "".
func (in Instr) Writes() string {
	switch in.Op {
	case Decl, Temp, Assign:
		return in.Dest
	}
	return ""
}

// IsJump reports whether the instruction may transfer control.
func (in Instr) IsJump() bool {
	return in.Op == IfFalse || in.Op == IfCmp || in.Op == Goto
}
