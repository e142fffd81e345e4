// Package parser provides the P2C recursive descent parser.
package parser

import (
	"fmt"
	"strings"

	"github.com/0xoc/P2C/internal/token"
)

// SyntaxError reports a token the grammar cannot accept at its position.
// Parsing stops at the first SyntaxError.
type SyntaxError struct {
	Pos     token.Position // Position of the offending token
	Got     string         // Offending token as written, or its kind
	Want    []string       // Token kinds that would have been accepted (optional)
	Message string         // Human-readable error message
}

// Error returns a formatted error message with position information.
func (e *SyntaxError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s: %s", e.Pos, e.Message)
	}
	return e.Message
}

// errorf creates a SyntaxError at the given position with formatted message.
func errorf(pos token.Position, got string, format string, args ...any) *SyntaxError {
	return &SyntaxError{
		Pos:     pos,
		Got:     got,
		Message: fmt.Sprintf(format, args...),
	}
}

// expectedError creates a SyntaxError for an unexpected token.
func expectedError(pos token.Position, got string, want ...string) *SyntaxError {
	var msg string
	switch len(want) {
	case 0:
		msg = fmt.Sprintf("unexpected %s", got)
	case 1:
		msg = fmt.Sprintf("expected %s, got %s", want[0], got)
	default:
		msg = fmt.Sprintf("expected one of %s, got %s", strings.Join(want, " "), got)
	}
	return &SyntaxError{
		Pos:     pos,
		Got:     got,
		Want:    want,
		Message: msg,
	}
}
