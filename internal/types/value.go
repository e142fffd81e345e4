// Package types defines the numeric values manipulated by generated code,
// with C arithmetic rules.
package types

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind represents the C arithmetic class of a value.
type Kind uint8

const (
	KindInt   Kind = iota // Integer types: int, long, short, char, ...
	KindFloat             // Floating types: float, double, long double
)

// String returns a string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	default:
		return "unknown"
	}
}

// KindOf classifies a C type name. It reports false for names that are
// not arithmetic types.
func KindOf(ctype string) (Kind, bool) {
	words := strings.Fields(ctype)
	if len(words) == 0 {
		return 0, false
	}
	kind := KindInt
	for _, w := range words {
		switch w {
		case "float", "double":
			kind = KindFloat
		case "int", "long", "short", "char", "signed", "unsigned",
			"int8_t", "int16_t", "int32_t", "int64_t",
			"uint8_t", "uint16_t", "uint32_t", "uint64_t", "size_t":
		default:
			return 0, false
		}
	}
	return kind, true
}

// Value is a C arithmetic value. Values are passed by value.
type Value struct {
	kind Kind
	i    int64
	f    float64
}

// Errors reported by arithmetic.
var (
	ErrDivByZero  = errors.New("integer division by zero")
	ErrFloatMod   = errors.New("invalid operands to %: floating point")
	ErrBadLiteral = errors.New("invalid numeric literal")
)

// Constructors

// Int creates an integer value.
func Int(n int64) Value {
	return Value{kind: KindInt, i: n}
}

// Float creates a floating value.
func Float(f float64) Value {
	return Value{kind: KindFloat, f: f}
}

// Bool creates the int value 1 for true and 0 for false, as C comparisons do.
func Bool(b bool) Value {
	if b {
		return Int(1)
	}
	return Int(0)
}

// Accessors

// Kind returns the value's kind.
func (v Value) Kind() Kind {
	return v.kind
}

// AsFloat returns the value as a float64.
func (v Value) AsFloat() float64 {
	if v.kind == KindFloat {
		return v.f
	}
	return float64(v.i)
}

// AsInt returns the value as an int64, truncating toward zero.
func (v Value) AsInt() int64 {
	if v.kind == KindInt {
		return v.i
	}
	return truncate(v.f)
}

// AsBool reports whether the value is nonzero.
func (v Value) AsBool() bool {
	if v.kind == KindFloat {
		return v.f != 0
	}
	return v.i != 0
}

// Convert returns v converted to kind, as assignment to a variable of
// that kind does.
func (v Value) Convert(kind Kind) Value {
	if v.kind == kind {
		return v
	}
	if kind == KindFloat {
		return Float(v.AsFloat())
	}
	return Int(v.AsInt())
}

// String returns a debug representation of the value.
func (v Value) String() string {
	if v.kind == KindFloat {
		return fmt.Sprintf("Float(%s)", FormatNum(v.f))
	}
	return fmt.Sprintf("Int(%d)", v.i)
}

// Format returns the value as printf's %g or %d would show it.
func (v Value) Format() string {
	if v.kind == KindFloat {
		return FormatNum(v.f)
	}
	return strconv.FormatInt(v.i, 10)
}

// Operators

// Binary applies a C binary operator. Operands are brought to a common
// kind first: float if either is float.
func Binary(op string, x, y Value) (Value, error) {
	switch op {
	case "&&":
		return Bool(x.AsBool() && y.AsBool()), nil
	case "||":
		return Bool(x.AsBool() || y.AsBool()), nil
	case "<", "<=", ">", ">=", "==", "!=":
		return Bool(compare(op, Compare(x, y))), nil
	}

	if x.kind == KindFloat || y.kind == KindFloat {
		a, b := x.AsFloat(), y.AsFloat()
		switch op {
		case "+":
			return Float(a + b), nil
		case "-":
			return Float(a - b), nil
		case "*":
			return Float(a * b), nil
		case "/":
			return Float(a / b), nil
		case "%":
			return Value{}, ErrFloatMod
		}
		return Value{}, fmt.Errorf("unknown operator %q", op)
	}

	a, b := x.i, y.i
	switch op {
	case "+":
		return Int(a + b), nil
	case "-":
		return Int(a - b), nil
	case "*":
		return Int(a * b), nil
	case "/":
		if b == 0 {
			return Value{}, ErrDivByZero
		}
		return Int(a / b), nil
	case "%":
		if b == 0 {
			return Value{}, ErrDivByZero
		}
		return Int(a % b), nil
	}
	return Value{}, fmt.Errorf("unknown operator %q", op)
}

// Unary applies a C unary operator.
func Unary(op string, x Value) (Value, error) {
	switch op {
	case "+":
		return x, nil
	case "-":
		if x.kind == KindFloat {
			return Float(-x.f), nil
		}
		return Int(-x.i), nil
	case "!":
		return Bool(!x.AsBool()), nil
	}
	return Value{}, fmt.Errorf("unknown operator %q", op)
}

// Compare compares two values numerically.
// Returns -1 if a < b, 0 if a == b, 1 if a > b. NaN compares unequal
// to everything and reports 2.
func Compare(a, b Value) int {
	if a.kind == KindInt && b.kind == KindInt {
		switch {
		case a.i < b.i:
			return -1
		case a.i > b.i:
			return 1
		default:
			return 0
		}
	}
	x, y := a.AsFloat(), b.AsFloat()
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	case x == y:
		return 0
	default:
		return 2
	}
}

func compare(op string, c int) bool {
	if c == 2 {
		return op == "!="
	}
	switch op {
	case "<":
		return c < 0
	case "<=":
		return c <= 0
	case ">":
		return c > 0
	case ">=":
		return c >= 0
	case "==":
		return c == 0
	default:
		return c != 0
	}
}

// Literal Parsing and Formatting

// ParseLiteral parses numeric literal text the way a C compiler reads it.
// Text with a fraction or exponent is a float; other text is an integer,
// octal when it has a leading zero.
func ParseLiteral(s string) (Value, error) {
	if s == "" {
		return Value{}, ErrBadLiteral
	}
	if strings.ContainsAny(s, ".eE") {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return Value{}, fmt.Errorf("%w: %s", ErrBadLiteral, s)
		}
		return Float(f), nil
	}

	base := 10
	digits := s
	if len(s) > 1 && s[0] == '0' {
		base = 8
		digits = s[1:]
	}
	n, err := strconv.ParseInt(digits, base, 64)
	if err != nil {
		return Value{}, fmt.Errorf("%w: %s", ErrBadLiteral, s)
	}
	return Int(n), nil
}

// FormatNum formats a float like printf's %g, with integral values
// printed without a fraction.
func FormatNum(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case f == math.Trunc(f) && math.Abs(f) < 1e15:
		return strconv.FormatFloat(f, 'f', -1, 64)
	default:
		return strconv.FormatFloat(f, 'g', 6, 64)
	}
}

// truncate converts toward zero, saturating where C would be undefined.
func truncate(f float64) int64 {
	switch {
	case math.IsNaN(f):
		return 0
	case f >= math.MaxInt64:
		return math.MaxInt64
	case f <= math.MinInt64:
		return math.MinInt64
	}
	return int64(f)
}
