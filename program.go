package p2c

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/0xoc/P2C/internal/ast"
	"github.com/0xoc/P2C/internal/compiler"
	"github.com/0xoc/P2C/internal/logger"
	"github.com/0xoc/P2C/internal/types"
	"github.com/0xoc/P2C/internal/vm"
)

// Program represents a translated program. It is immutable and safe for
// concurrent use.
type Program struct {
	compiled *compiler.Program
	tree     *ast.Program
	source   string
	code     string
	warnings []Warning
}

// Warning is a non-fatal diagnostic about the source, such as reading a
// variable before any assignment to it.
type Warning struct {
	Line    int
	Column  int
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("%d:%d: warning: %s", w.Line, w.Column, w.Message)
}

// Code returns the generated C program.
func (p *Program) Code() string {
	return p.code
}

// WriteTo writes the generated C program to w.
func (p *Program) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, p.code)
	return int64(n), err
}

// Disassemble returns a listing of the symbols and three-address
// instructions. Useful for debugging the lowering.
func (p *Program) Disassemble() string {
	return p.compiled.Disassemble()
}

// AST returns the parse tree as nested tagged tuples, e.g.
// (program (= a 10)).
func (p *Program) AST() string {
	return ast.Sexpr(p.tree)
}

// Source returns the original source code.
func (p *Program) Source() string {
	return p.source
}

// Variables returns the names of the declared variables in declaration order.
func (p *Program) Variables() []string {
	names := make([]string, len(p.compiled.Symbols))
	for i, sym := range p.compiled.Symbols {
		names[i] = sym.Name
	}
	return names
}

// Warnings returns the diagnostics found while checking the source.
func (p *Program) Warnings() []Warning {
	return append([]Warning(nil), p.warnings...)
}

// RunConfig holds options for Program.Run.
type RunConfig struct {
	// MaxSteps bounds the number of executed instructions (default
	// 10,000,000). Negative means no bound.
	MaxSteps int

	// Inputs gives variables a value before execution starts.
	Inputs map[string]float64
}

// Result holds the variables left by a run.
type Result struct {
	Vars  []Var // Variables that hold a value, in declaration order
	Steps int   // Number of instructions executed
}

// Var is one variable and its final value.
type Var struct {
	Name  string
	Value float64
}

// Lookup returns the final value of the named variable.
func (r *Result) Lookup(name string) (float64, bool) {
	for _, v := range r.Vars {
		if v.Name == name {
			return v.Value, true
		}
	}
	return 0, false
}

// String lists the variables one per line as "name = value".
func (r *Result) String() string {
	var sb strings.Builder
	for _, v := range r.Vars {
		fmt.Fprintf(&sb, "%s = %s\n", v.Name, types.FormatNum(v.Value))
	}
	return sb.String()
}

// Run executes the generated code with the arithmetic of the configured
// numeric type: integer types truncate and floating types do not.
// It fails on what would be undefined behavior in C, such as reading a
// variable before any assignment or dividing an integer by zero.
//
// If config is nil, default configuration is used.
func (p *Program) Run(ctx context.Context, config *RunConfig) (*Result, error) {
	if config == nil {
		config = &RunConfig{}
	}

	machine, err := vm.NewWithConfig(p.compiled, vm.Config{
		MaxSteps: config.MaxSteps,
		Inputs:   config.Inputs,
	})
	if err != nil {
		return nil, &RuntimeError{Message: err.Error()}
	}

	if err := machine.Run(ctx); err != nil {
		var re *vm.RuntimeError
		if errors.As(err, &re) {
			return nil, &RuntimeError{
				Filename: re.Pos.Filename,
				Line:     re.Pos.Line,
				Message:  re.Message,
				Err:      re.Err,
			}
		}
		return nil, err
	}

	values := machine.Vars()
	result := &Result{Steps: machine.Steps()}
	for _, sym := range p.compiled.Symbols {
		if v, ok := values[sym.Name]; ok {
			result.Vars = append(result.Vars, Var{Name: sym.Name, Value: v.AsFloat()})
		}
	}
	logger.LogRun(p.tree.Filename, result.Steps, len(result.Vars))
	return result, nil
}
