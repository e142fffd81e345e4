// Package semantic holds the program-wide symbol table and the non-fatal
// checks run over a parsed program.
//
// P2C has a single flat namespace with no block scope. A variable comes
// into existence the first time it is assigned or used as a for loop
// variable, and every variable has the same numeric type.
package semantic

import "github.com/0xoc/P2C/internal/token"

// VarType represents the type of a variable.
type VarType int

const (
	TypeUnknown VarType = iota // Not yet determined
	TypeNumber                 // The single numeric type
)

// String returns a human-readable name for the variable type.
func (t VarType) String() string {
	switch t {
	case TypeUnknown:
		return "unknown"
	case TypeNumber:
		return "number"
	default:
		return "invalid"
	}
}

// Symbol holds information about a declared variable.
type Symbol struct {
	Name  string         // Variable name
	Type  VarType        // Always TypeNumber once declared
	Index int            // Declaration order, starting at 0
	Pos   token.Position // Position of the first declaring use
}

// SymbolTable maps variable names to their declarations. It is owned by
// one compilation run and never shrinks during it.
type SymbolTable struct {
	symbols map[string]*Symbol
	order   []*Symbol
}

// NewSymbolTable creates an empty symbol table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{symbols: make(map[string]*Symbol)}
}

// DeclareIfAbsent declares name if it is not yet known and reports whether
// this call created it. Later calls for the same name return false and
// leave the first declaration untouched.
func (st *SymbolTable) DeclareIfAbsent(name string, pos token.Position) bool {
	if _, exists := st.symbols[name]; exists {
		return false
	}
	sym := &Symbol{
		Name:  name,
		Type:  TypeNumber,
		Index: len(st.order),
		Pos:   pos,
	}
	st.symbols[name] = sym
	st.order = append(st.order, sym)
	return true
}

// Lookup returns the symbol for name and true if it has been declared.
func (st *SymbolTable) Lookup(name string) (*Symbol, bool) {
	sym, ok := st.symbols[name]
	return sym, ok
}

// Symbols returns all symbols in declaration order.
func (st *SymbolTable) Symbols() []*Symbol {
	out := make([]*Symbol, len(st.order))
	copy(out, st.order)
	return out
}

// Count returns the number of declared symbols.
func (st *SymbolTable) Count() int {
	return len(st.order)
}

// Reset forgets every declaration.
func (st *SymbolTable) Reset() {
	clear(st.symbols)
	st.order = st.order[:0]
}
