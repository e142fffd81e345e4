package vm

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/0xoc/P2C/internal/compiler"
	"github.com/0xoc/P2C/internal/parser"
	"github.com/0xoc/P2C/internal/types"
)

// lower parses and lowers source with the given numeric type.
func lower(t *testing.T, src, ctype string) *compiler.Program {
	t.Helper()
	prog, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	p, err := compiler.Compile(prog, compiler.Config{NumericType: ctype})
	if err != nil {
		t.Fatalf("compile error: %v", err)
	}
	return p
}

// run lowers and executes source, returning the VM for inspection.
func run(t *testing.T, src, ctype string, cfg Config) *VM {
	t.Helper()
	vm, err := NewWithConfig(lower(t, src, ctype), cfg)
	if err != nil {
		t.Fatalf("NewWithConfig() error = %v", err)
	}
	if err := vm.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	return vm
}

func TestRun(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		ctype string
		want  map[string]types.Value
	}{
		{
			name: "for with positive step",
			src:  "a = 0\nfor i in range(10,20,2): { a += i }",
			want: map[string]types.Value{"a": types.Float(70), "i": types.Float(20)},
		},
		{
			name: "for with negative step",
			src:  "n = 0\nfor i in range(10, 0, -2): { n += 1 }",
			want: map[string]types.Value{"n": types.Float(5), "i": types.Float(0)},
		},
		{
			name: "continue in while skips the rest of the body",
			src:  "a = 0\nb = 0\nwhile a < 30: {\n a += 1\n if a==20: { continue }\n b += 1\n}",
			want: map[string]types.Value{"a": types.Float(30), "b": types.Float(29)},
		},
		{
			name:  "continue in for still advances",
			src:   "s = 0\nfor i in range(6): { if i % 2 == 0: { continue } s += i }",
			ctype: "int",
			want:  map[string]types.Value{"s": types.Int(9), "i": types.Int(6)},
		},
		{
			name: "break leaves the loop",
			src:  "for i in range(100): { if i == 5: { break } }",
			want: map[string]types.Value{"i": types.Float(5)},
		},
		{
			name: "break leaves the innermost loop only",
			src:  "c = 0\nfor i in range(3): { for j in range(3): { if j == 1: { break } c += 1 } }",
			want: map[string]types.Value{"c": types.Float(3), "i": types.Float(3), "j": types.Float(1)},
		},
		{
			name: "range bounds are fixed before the loop",
			src:  "n = 3\nc = 0\nfor i in range(n): { n = 10\nc += 1 }",
			want: map[string]types.Value{"n": types.Float(10), "c": types.Float(3), "i": types.Float(3)},
		},
		{
			name: "if chain picks one branch",
			src:  "x = 5\nif x < 3: { y = 1 } elif x < 6: { y = 2 } else: { y = 3 }",
			want: map[string]types.Value{"x": types.Float(5), "y": types.Float(2)},
		},
		{
			name: "precedence",
			src:  "a = 2; b = 3; c = 4\nx = a + b * c\ny = -a + b",
			want: map[string]types.Value{"x": types.Float(14), "y": types.Float(1)},
		},
		{
			name: "nested grouping",
			src:  "a = 1; b = 2; c = 30\nresult = 24 * ((a+b)-c/10)",
			want: map[string]types.Value{"result": types.Float(0)},
		},
		{
			name: "float division",
			src:  "x = 7.0 / 2\ny = 7 / 2.",
			want: map[string]types.Value{"x": types.Float(3.5), "y": types.Float(3.5)},
		},
		{
			name: "integer literals divide as integers",
			src:  "x = 7 / 2\na = 7\ny = a / 2",
			want: map[string]types.Value{"x": types.Float(3), "y": types.Float(3.5)},
		},
		{
			name:  "int division truncates",
			src:   "x = 7 / 2\ny = -7 // 2",
			ctype: "int",
			want:  map[string]types.Value{"x": types.Int(3), "y": types.Int(-3)},
		},
		{
			name:  "int assignment truncates",
			src:   "x = 2.9",
			ctype: "long",
			want:  map[string]types.Value{"x": types.Int(2)},
		},
		{
			name: "logic and booleans",
			src:  "x = (1 < 2) and not (3 > 4)\ny = False or True\nz = not 0.5",
			want: map[string]types.Value{"x": types.Float(1), "y": types.Float(1), "z": types.Float(0)},
		},
		{
			name: "compound assignments",
			src:  "x = 10; x -= 4; x *= 3; x /= 4",
			want: map[string]types.Value{"x": types.Float(4.5)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctype := tt.ctype
			if ctype == "" {
				ctype = "float"
			}
			vm := run(t, tt.src, ctype, Config{})
			for name, want := range tt.want {
				got, ok := vm.Var(name)
				if !ok {
					t.Errorf("%s has no value", name)
					continue
				}
				if got != want {
					t.Errorf("%s = %v, want %v", name, got, want)
				}
			}
		})
	}
}

func TestRunErrors(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		ctype  string
		target error
		msg    string
		line   int
	}{
		{"float modulo", "a = 5\nx = a % 2", "float", types.ErrFloatMod, "invalid operands", 2},
		{"int division by zero", "z = 0\nx = 1 / z", "int", types.ErrDivByZero, "division by zero", 2},
		{"undeclared variable", "x = 1\ny = x + q", "float", nil, `undeclared variable "q"`, 2},
		{"read before assignment", "for i in range(3): { a += i }", "float", nil, `variable "a" is read before it is assigned`, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vm, err := New(lower(t, tt.src, tt.ctype))
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			err = vm.Run(context.Background())
			if err == nil {
				t.Fatal("Run() succeeded, want error")
			}
			var re *RuntimeError
			if !errors.As(err, &re) {
				t.Fatalf("error type = %T, want *RuntimeError", err)
			}
			if tt.target != nil && !errors.Is(err, tt.target) {
				t.Errorf("error = %v, want %v", err, tt.target)
			}
			if !strings.Contains(re.Message, tt.msg) {
				t.Errorf("Message = %q, want it to contain %q", re.Message, tt.msg)
			}
			if re.Pos.Line != tt.line {
				t.Errorf("Pos.Line = %d, want %d", re.Pos.Line, tt.line)
			}
		})
	}
}

// The parser never emits a literal C rejects, so the instruction is built by hand.
func TestRunBadLiteral(t *testing.T) {
	prog := lower(t, "x = 9", "int")
	prog.Code[0].X = "09"

	vm, err := New(prog)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	err = vm.Run(context.Background())
	if !errors.Is(err, types.ErrBadLiteral) {
		t.Fatalf("Run() error = %v, want %v", err, types.ErrBadLiteral)
	}
	var re *RuntimeError
	if !errors.As(err, &re) || re.Pos.Line != 1 {
		t.Errorf("error = %#v, want RuntimeError at line 1", err)
	}
}

func TestInputs(t *testing.T) {
	vm := run(t, "for i in range(n): { a += i }", "int", Config{
		Inputs: map[string]float64{"a": 100, "n": 4.7},
	})

	if got, _ := vm.Var("a"); got != types.Int(106) {
		t.Errorf("a = %v, want Int(106)", got)
	}
	if got, _ := vm.Var("n"); got != types.Int(4) {
		t.Errorf("n = %v, want Int(4)", got)
	}
}

func TestStepLimit(t *testing.T) {
	vm, err := NewWithConfig(lower(t, "while 1: { }", "float"), Config{MaxSteps: 100})
	if err != nil {
		t.Fatalf("NewWithConfig() error = %v", err)
	}
	err = vm.Run(context.Background())
	if !errors.Is(err, ErrStepLimit) {
		t.Fatalf("Run() error = %v, want ErrStepLimit", err)
	}
	if vm.Steps() != 100 {
		t.Errorf("Steps() = %d, want 100", vm.Steps())
	}
}

func TestUnlimitedSteps(t *testing.T) {
	vm := run(t, "for i in range(100000): { }", "int", Config{MaxSteps: -1})
	if vm.Steps() <= 100000 {
		t.Errorf("Steps() = %d, want more than 100000", vm.Steps())
	}
}

func TestContextCancel(t *testing.T) {
	vm, err := New(lower(t, "while 1: { }", "float"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := vm.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
}

func TestReset(t *testing.T) {
	vm := run(t, "x = 1; y = x + 1", "float", Config{})
	first := vm.Vars()
	steps := vm.Steps()

	vm.Reset()
	if _, ok := vm.Var("x"); ok {
		t.Error("Reset() kept x")
	}
	if vm.Steps() != 0 {
		t.Errorf("Steps() after Reset = %d, want 0", vm.Steps())
	}

	if err := vm.Run(context.Background()); err != nil {
		t.Fatalf("second Run() error = %v", err)
	}
	if vm.Steps() != steps {
		t.Errorf("second run took %d steps, want %d", vm.Steps(), steps)
	}
	second := vm.Vars()
	if len(first) != 2 || len(second) != 2 || first["y"] != second["y"] {
		t.Errorf("runs differ: %v then %v", first, second)
	}
}

func TestVarsSkipsTemporaries(t *testing.T) {
	vm := run(t, "x = 1 + 2", "float", Config{})
	vars := vm.Vars()
	if len(vars) != 1 || vars["x"] != types.Float(3) {
		t.Errorf("Vars() = %v, want only x", vars)
	}
	if v, ok := vm.Var("t1"); !ok || v != types.Float(3) {
		t.Errorf("Var(t1) = %v, %v", v, ok)
	}
}

func TestNewErrors(t *testing.T) {
	tests := []struct {
		name string
		prog *compiler.Program
		msg  string
	}{
		{
			name: "non-arithmetic type",
			prog: &compiler.Program{NumericType: "struct s"},
			msg:  "unsupported numeric type",
		},
		{
			name: "undefined label",
			prog: &compiler.Program{
				NumericType: "float",
				Code:        []compiler.Instr{{Op: compiler.Goto, Target: "l9"}},
			},
			msg: "undefined label l9",
		},
		{
			name: "duplicate label",
			prog: &compiler.Program{
				NumericType: "float",
				Code: []compiler.Instr{
					{Op: compiler.Label, Target: "l1"},
					{Op: compiler.Label, Target: "l1"},
				},
			},
			msg: "defined twice",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.prog)
			if err == nil || !strings.Contains(err.Error(), tt.msg) {
				t.Errorf("New() error = %v, want %q", err, tt.msg)
			}
		})
	}
}
