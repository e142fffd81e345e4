package types

import (
	"errors"
	"math"
	"testing"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		ctype string
		kind  Kind
		ok    bool
	}{
		{"float", KindFloat, true},
		{"double", KindFloat, true},
		{"long double", KindFloat, true},
		{"int", KindInt, true},
		{"long long", KindInt, true},
		{"unsigned int", KindInt, true},
		{"int64_t", KindInt, true},
		{"", 0, false},
		{"bool", 0, false},
		{"struct point", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.ctype, func(t *testing.T) {
			kind, ok := KindOf(tt.ctype)
			if ok != tt.ok || kind != tt.kind {
				t.Errorf("KindOf(%q) = %v, %v; want %v, %v", tt.ctype, kind, ok, tt.kind, tt.ok)
			}
		})
	}
}

func TestValueConstructors(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		kind Kind
	}{
		{"Int(0)", Int(0), KindInt},
		{"Int(42)", Int(42), KindInt},
		{"Float(-3.14)", Float(-3.14), KindFloat},
		{"Bool true", Bool(true), KindInt},
		{"Bool false", Bool(false), KindInt},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.v.Kind() != tt.kind {
				t.Errorf("Kind() = %v, want %v", tt.v.Kind(), tt.kind)
			}
		})
	}
}

func TestConvert(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		kind Kind
		want Value
	}{
		{"int to float", Int(3), KindFloat, Float(3)},
		{"float to int truncates", Float(3.9), KindInt, Int(3)},
		{"negative truncates toward zero", Float(-3.9), KindInt, Int(-3)},
		{"same kind", Float(2.5), KindFloat, Float(2.5)},
		{"nan to int", Float(math.NaN()), KindInt, Int(0)},
		{"huge to int saturates", Float(1e300), KindInt, Int(math.MaxInt64)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.Convert(tt.kind); got != tt.want {
				t.Errorf("Convert() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAsBool(t *testing.T) {
	tests := []struct {
		v    Value
		want bool
	}{
		{Int(0), false},
		{Int(-1), true},
		{Float(0), false},
		{Float(0.1), true},
		{Float(math.NaN()), true},
	}

	for _, tt := range tests {
		if got := tt.v.AsBool(); got != tt.want {
			t.Errorf("%v.AsBool() = %v, want %v", tt.v, got, tt.want)
		}
	}
}

func TestBinary(t *testing.T) {
	tests := []struct {
		name string
		op   string
		x, y Value
		want Value
	}{
		{"int add", "+", Int(2), Int(3), Int(5)},
		{"int sub", "-", Int(2), Int(3), Int(-1)},
		{"int division truncates", "/", Int(7), Int(2), Int(3)},
		{"negative int division", "/", Int(-7), Int(2), Int(-3)},
		{"int mod", "%", Int(7), Int(3), Int(1)},
		{"negative mod keeps sign", "%", Int(-7), Int(3), Int(-1)},
		{"float division", "/", Float(7), Int(2), Float(3.5)},
		{"mixed promotes", "*", Int(3), Float(0.5), Float(1.5)},
		{"float divide by zero", "/", Float(1), Int(0), Float(math.Inf(1))},
		{"less", "<", Int(1), Float(1.5), Int(1)},
		{"greater equal", ">=", Int(1), Int(2), Int(0)},
		{"equal", "==", Float(2), Int(2), Int(1)},
		{"not equal", "!=", Int(2), Int(2), Int(0)},
		{"and", "&&", Int(1), Float(0), Int(0)},
		{"or", "||", Int(0), Float(0.5), Int(1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Binary(tt.op, tt.x, tt.y)
			if err != nil {
				t.Fatalf("Binary() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Binary(%q, %v, %v) = %v, want %v", tt.op, tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestBinaryErrors(t *testing.T) {
	tests := []struct {
		name string
		op   string
		x, y Value
		want error
	}{
		{"int divide by zero", "/", Int(1), Int(0), ErrDivByZero},
		{"int mod by zero", "%", Int(1), Int(0), ErrDivByZero},
		{"float mod", "%", Float(5), Int(2), ErrFloatMod},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Binary(tt.op, tt.x, tt.y)
			if !errors.Is(err, tt.want) {
				t.Errorf("Binary() error = %v, want %v", err, tt.want)
			}
		})
	}

	if _, err := Binary("**", Int(1), Int(2)); err == nil {
		t.Error("Binary(**) should fail")
	}
}

func TestNaNComparisons(t *testing.T) {
	nan := Float(math.NaN())
	for _, op := range []string{"<", "<=", ">", ">=", "=="} {
		if v, _ := Binary(op, nan, nan); v.AsBool() {
			t.Errorf("NaN %s NaN = true, want false", op)
		}
	}
	if v, _ := Binary("!=", nan, Int(1)); !v.AsBool() {
		t.Error("NaN != 1 = false, want true")
	}
}

func TestUnary(t *testing.T) {
	tests := []struct {
		op   string
		x    Value
		want Value
	}{
		{"-", Int(3), Int(-3)},
		{"-", Float(2.5), Float(-2.5)},
		{"+", Float(2.5), Float(2.5)},
		{"!", Int(0), Int(1)},
		{"!", Float(2), Int(0)},
	}

	for _, tt := range tests {
		got, err := Unary(tt.op, tt.x)
		if err != nil {
			t.Fatalf("Unary(%q) error = %v", tt.op, err)
		}
		if got != tt.want {
			t.Errorf("Unary(%q, %v) = %v, want %v", tt.op, tt.x, got, tt.want)
		}
	}

	if _, err := Unary("~", Int(1)); err == nil {
		t.Error("Unary(~) should fail")
	}
}

func TestParseLiteral(t *testing.T) {
	tests := []struct {
		text string
		want Value
	}{
		{"0", Int(0)},
		{"10", Int(10)},
		{"010", Int(8)},
		{"1.5", Float(1.5)},
		{".5", Float(0.5)},
		{"2.", Float(2)},
		{"1e3", Float(1000)},
		{"2E-1", Float(0.2)},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, err := ParseLiteral(tt.text)
			if err != nil {
				t.Fatalf("ParseLiteral() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseLiteral(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}

	for _, bad := range []string{"", "09", "abc", "99999999999999999999"} {
		if _, err := ParseLiteral(bad); !errors.Is(err, ErrBadLiteral) {
			t.Errorf("ParseLiteral(%q) error = %v, want ErrBadLiteral", bad, err)
		}
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		v    Value
		want string
	}{
		{Int(42), "42"},
		{Int(-7), "-7"},
		{Float(70), "70"},
		{Float(3.5), "3.5"},
		{Float(1.0 / 3), "0.333333"},
		{Float(1e20), "1e+20"},
		{Float(math.Inf(-1)), "-inf"},
		{Float(math.NaN()), "nan"},
	}

	for _, tt := range tests {
		if got := tt.v.Format(); got != tt.want {
			t.Errorf("%v.Format() = %q, want %q", tt.v, got, tt.want)
		}
	}
}

func TestString(t *testing.T) {
	if got := Int(3).String(); got != "Int(3)" {
		t.Errorf("String() = %q", got)
	}
	if got := Float(0.5).String(); got != "Float(0.5)" {
		t.Errorf("String() = %q", got)
	}
}
