package p2c

import (
	"errors"
	"fmt"

	"github.com/0xoc/P2C/internal/compiler"
	"github.com/0xoc/P2C/internal/parser"
	"github.com/0xoc/P2C/internal/token"
	"github.com/0xoc/P2C/internal/vm"
)

// ErrStepLimit is wrapped by the RuntimeError of a run that exceeded
// RunConfig.MaxSteps.
var ErrStepLimit = vm.ErrStepLimit

// SyntaxError represents a token the grammar cannot accept.
type SyntaxError struct {
	Filename string   // Source file name, if known
	Line     int      // 1-based line number
	Column   int      // 1-based column number
	Message  string   // Error description
	Expected []string // Token kinds that would have been accepted, if known
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at %s: %s", location(e.Filename, e.Line, e.Column), e.Message)
}

// LoweringError represents a program that parsed but cannot be translated,
// such as a break outside any loop.
type LoweringError struct {
	Filename string // Source file name, if known
	Line     int    // 1-based line number, 0 if unknown
	Message  string // Error description
}

func (e *LoweringError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("lowering error: %s", e.Message)
	}
	return fmt.Sprintf("lowering error at %s: %s", location(e.Filename, e.Line, 0), e.Message)
}

// RuntimeError represents a failure while running a translated program.
type RuntimeError struct {
	Filename string // Source file name, if known
	Line     int    // 1-based line number, 0 if unknown
	Message  string // Error description
	Err      error  // Underlying cause, if any
}

func (e *RuntimeError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("runtime error: %s", e.Message)
	}
	return fmt.Sprintf("runtime error at %s: %s", location(e.Filename, e.Line, 0), e.Message)
}

func (e *RuntimeError) Unwrap() error {
	return e.Err
}

// ConfigError reports an invalid Config field.
type ConfigError struct {
	Field string
	Value string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid config: %s %q", e.Field, e.Value)
}

// IsSyntaxError reports whether err is or wraps a SyntaxError.
func IsSyntaxError(err error) bool {
	var se *SyntaxError
	return errors.As(err, &se)
}

// IsLoweringError reports whether err is or wraps a LoweringError.
func IsLoweringError(err error) bool {
	var le *LoweringError
	return errors.As(err, &le)
}

// convertError maps internal error types to the public ones.
func convertError(err error) error {
	var se *parser.SyntaxError
	if errors.As(err, &se) {
		return &SyntaxError{
			Filename: se.Pos.Filename,
			Line:     se.Pos.Line,
			Column:   se.Pos.Column,
			Message:  se.Message,
			Expected: se.Want,
		}
	}
	var le *compiler.LoweringError
	if errors.As(err, &le) {
		return &LoweringError{
			Filename: le.Pos.Filename,
			Line:     le.Pos.Line,
			Message:  le.Message,
		}
	}
	return err
}

func location(filename string, line, column int) string {
	pos := token.Position{Filename: filename, Line: line, Column: column}
	if column == 0 {
		if filename != "" {
			return fmt.Sprintf("%s:%d", filename, line)
		}
		return fmt.Sprintf("line %d", line)
	}
	return pos.String()
}
