package semantic

import (
	"fmt"

	"github.com/0xoc/P2C/internal/token"
)

// Warning represents a semantic warning (non-fatal issue).
type Warning struct {
	Pos     token.Position
	Message string
}

// String returns the warning as a formatted string.
func (w *Warning) String() string {
	return fmt.Sprintf("%s: warning: %s", w.Pos, w.Message)
}

// WarningList is a collection of semantic warnings.
type WarningList []*Warning

// Add appends a warning to the list.
func (wl *WarningList) Add(pos token.Position, format string, args ...any) {
	*wl = append(*wl, &Warning{
		Pos:     pos,
		Message: fmt.Sprintf(format, args...),
	})
}

// Common warning messages.
const (
	warnUseBeforeAssign = "variable %q is used before it is assigned"
	warnZeroStep        = "range step is zero; the loop never terminates"
	warnReservedName    = "name %q is reserved in C; the generated code will not compile"
)
