// Package vm executes lowered three-address code directly, with the
// arithmetic of the program's C numeric type. It lets a translation be
// checked without a C compiler.
package vm

import (
	"context"
	"errors"
	"fmt"

	"github.com/0xoc/P2C/internal/compiler"
	"github.com/0xoc/P2C/internal/token"
	"github.com/0xoc/P2C/internal/types"
)

// DefaultMaxSteps bounds execution when Config.MaxSteps is zero.
const DefaultMaxSteps = 10_000_000

// cancelCheckInterval is how many instructions run between context checks.
const cancelCheckInterval = 1024

// ErrStepLimit is wrapped by the RuntimeError returned when a run executes
// more instructions than allowed.
var ErrStepLimit = errors.New("step limit exceeded")

// RuntimeError reports a failure while executing an instruction.
type RuntimeError struct {
	Pos     token.Position // Source position of the failing instruction
	Message string
	Err     error // Underlying cause, if any
}

func (e *RuntimeError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s: %s", e.Pos, e.Message)
	}
	return e.Message
}

func (e *RuntimeError) Unwrap() error {
	return e.Err
}

// Config holds VM configuration options.
type Config struct {
	// MaxSteps bounds the number of executed instructions.
	// Zero means DefaultMaxSteps; negative means no bound.
	MaxSteps int

	// Inputs gives variables a value before the first instruction runs.
	// Values are converted to the program's numeric type.
	Inputs map[string]float64
}

// VM runs one lowered program. A VM is not safe for concurrent use;
// create one per goroutine.
type VM struct {
	program *compiler.Program
	config  Config
	kind    types.Kind

	// Instruction index of every label.
	labels map[string]int

	// Variable and temporary state. A declared name without a value
	// is present in declared only.
	values   map[string]types.Value
	declared map[string]bool

	steps int
}

// New creates a VM for prog with default configuration.
func New(prog *compiler.Program) (*VM, error) {
	return NewWithConfig(prog, Config{})
}

// NewWithConfig creates a VM for prog. It fails if the numeric type is
// not an arithmetic C type or a jump names an undefined label.
func NewWithConfig(prog *compiler.Program, config Config) (*VM, error) {
	kind, ok := types.KindOf(prog.NumericType)
	if !ok {
		return nil, fmt.Errorf("unsupported numeric type %q", prog.NumericType)
	}
	if config.MaxSteps == 0 {
		config.MaxSteps = DefaultMaxSteps
	}

	vm := &VM{
		program: prog,
		config:  config,
		kind:    kind,
		labels:  make(map[string]int),
	}

	for i, in := range prog.Code {
		if in.Op != compiler.Label {
			continue
		}
		if _, dup := vm.labels[in.Target]; dup {
			return nil, fmt.Errorf("label %s defined twice", in.Target)
		}
		vm.labels[in.Target] = i
	}
	for _, in := range prog.Code {
		if in.IsJump() {
			if _, ok := vm.labels[in.Target]; !ok {
				return nil, fmt.Errorf("jump to undefined label %s", in.Target)
			}
		}
	}

	vm.Reset()
	return vm, nil
}

// Reset clears all variables and reapplies the configured inputs.
func (vm *VM) Reset() {
	vm.values = make(map[string]types.Value)
	vm.declared = make(map[string]bool)
	vm.steps = 0
	for name, v := range vm.config.Inputs {
		vm.values[name] = types.Float(v).Convert(vm.kind)
		vm.declared[name] = true
	}
}

// Run executes the program from the first instruction until it falls off
// the end. Variables keep their final values for Var.
func (vm *VM) Run(ctx context.Context) error {
	code := vm.program.Code
	ip := 0
	for ip < len(code) {
		if vm.config.MaxSteps > 0 && vm.steps >= vm.config.MaxSteps {
			return &RuntimeError{
				Pos:     code[ip].Pos,
				Message: fmt.Sprintf("%v after %d instructions", ErrStepLimit, vm.steps),
				Err:     ErrStepLimit,
			}
		}
		if vm.steps%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		vm.steps++

		in := code[ip]
		ip++

		switch in.Op {
		case compiler.Decl:
			vm.declared[in.Dest] = true

		case compiler.Temp:
			v, err := vm.evalTemp(in)
			if err != nil {
				return err
			}
			vm.store(in.Dest, v)

		case compiler.Assign:
			if err := vm.execAssign(in); err != nil {
				return err
			}

		case compiler.IfFalse:
			x, err := vm.operand(in, in.X)
			if err != nil {
				return err
			}
			if !x.AsBool() {
				ip = vm.labels[in.Target]
			}

		case compiler.IfCmp:
			x, err := vm.operand(in, in.X)
			if err != nil {
				return err
			}
			y, err := vm.operand(in, in.Y)
			if err != nil {
				return err
			}
			cond, err := types.Binary(in.Oper, x, y)
			if err != nil {
				return vm.fail(in, err)
			}
			if cond.AsBool() {
				ip = vm.labels[in.Target]
			}

		case compiler.Goto:
			ip = vm.labels[in.Target]

		case compiler.Label:
			// Nothing to do

		default:
			return vm.fail(in, fmt.Errorf("unknown instruction %s", in.Op))
		}
	}
	return nil
}

// evalTemp computes the value of a Temp instruction.
func (vm *VM) evalTemp(in compiler.Instr) (types.Value, error) {
	x, err := vm.operand(in, in.X)
	if err != nil {
		return types.Value{}, err
	}

	var v types.Value
	switch {
	case in.Y != "":
		y, err := vm.operand(in, in.Y)
		if err != nil {
			return types.Value{}, err
		}
		v, err = types.Binary(in.Oper, x, y)
		if err != nil {
			return types.Value{}, vm.fail(in, err)
		}
	case in.Oper != "":
		v, err = types.Unary(in.Oper, x)
		if err != nil {
			return types.Value{}, vm.fail(in, err)
		}
	default:
		v = x
	}
	return v, nil
}

// execAssign performs a plain or compound assignment.
func (vm *VM) execAssign(in compiler.Instr) error {
	if in.Type != "" {
		vm.declared[in.Dest] = true
	}
	x, err := vm.operand(in, in.X)
	if err != nil {
		return err
	}

	if in.Oper == "=" {
		vm.store(in.Dest, x)
		return nil
	}

	op := in.Oper[:len(in.Oper)-1]
	cur, err := vm.operand(in, in.Dest)
	if err != nil {
		return err
	}
	v, err := types.Binary(op, cur, x)
	if err != nil {
		return vm.fail(in, err)
	}
	vm.store(in.Dest, v)
	return nil
}

// store assigns v to name, converting it to the program's numeric type.
func (vm *VM) store(name string, v types.Value) {
	vm.declared[name] = true
	vm.values[name] = v.Convert(vm.kind)
}

// operand resolves a name or literal text to a value.
func (vm *VM) operand(in compiler.Instr, text string) (types.Value, error) {
	if text == "" {
		return types.Value{}, vm.fail(in, errors.New("missing operand"))
	}
	if c := text[0]; c == '.' || (c >= '0' && c <= '9') {
		v, err := types.ParseLiteral(text)
		if err != nil {
			return types.Value{}, vm.fail(in, err)
		}
		return v, nil
	}

	if v, ok := vm.values[text]; ok {
		return v, nil
	}
	if vm.declared[text] {
		return types.Value{}, vm.fail(in, fmt.Errorf("variable %q is read before it is assigned", text))
	}
	return types.Value{}, vm.fail(in, fmt.Errorf("undeclared variable %q", text))
}

func (vm *VM) fail(in compiler.Instr, err error) error {
	return &RuntimeError{Pos: in.Pos, Message: err.Error(), Err: err}
}

// Var returns the current value of a variable or temporary.
func (vm *VM) Var(name string) (types.Value, bool) {
	v, ok := vm.values[name]
	return v, ok
}

// Vars returns the values of the program's source variables that hold a
// value, keyed by name.
func (vm *VM) Vars() map[string]types.Value {
	out := make(map[string]types.Value, len(vm.program.Symbols))
	for _, sym := range vm.program.Symbols {
		if v, ok := vm.values[sym.Name]; ok {
			out[sym.Name] = v
		}
	}
	return out
}

// Steps returns the number of instructions executed since the last Reset.
func (vm *VM) Steps() int {
	return vm.steps
}
