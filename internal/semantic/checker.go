package semantic

import (
	"github.com/0xoc/P2C/internal/ast"
)

// cReserved holds the C keywords (through C23), none of which may name a
// variable.
var cReserved = map[string]bool{
	"auto": true, "break": true, "case": true, "char": true, "const": true,
	"continue": true, "default": true, "do": true, "double": true, "else": true,
	"enum": true, "extern": true, "float": true, "for": true, "goto": true,
	"if": true, "inline": true, "int": true, "long": true, "register": true,
	"restrict": true, "return": true, "short": true, "signed": true,
	"sizeof": true, "static": true, "struct": true, "switch": true,
	"typedef": true, "union": true, "unsigned": true, "void": true,
	"volatile": true, "while": true, "bool": true, "true": true, "false": true,
	"_Bool": true, "_Complex": true, "_Imaginary": true, "_Alignas": true,
	"_Alignof": true, "_Atomic": true, "_Generic": true, "_Noreturn": true,
	"_Static_assert": true, "_Thread_local": true, "alignas": true,
	"alignof": true, "constexpr": true, "nullptr": true, "static_assert": true,
	"thread_local": true, "typeof": true, "typeof_unqual": true,
}

// Checker walks a program in source order, mirroring the order in which
// the generator declares variables, and records warnings. It never
// rejects a program.
type Checker struct {
	symbols  *SymbolTable
	warnings WarningList
	reported map[string]bool
}

// IsReserved reports whether name cannot be used as a variable in the
// generated C program.
func IsReserved(name string) bool {
	return cReserved[name]
}

// Check returns the warnings for prog. The result is nil for a clean program.
func Check(prog *ast.Program) WarningList {
	c := &Checker{
		symbols:  NewSymbolTable(),
		reported: make(map[string]bool),
	}
	c.checkStmts(prog.Stmts)
	return c.warnings
}

func (c *Checker) checkBlock(block *ast.Block) {
	if block == nil {
		return
	}
	c.checkStmts(block.Stmts)
}

func (c *Checker) checkStmts(stmts []ast.Stmt) {
	for _, stmt := range stmts {
		c.checkStmt(stmt)
	}
}

func (c *Checker) checkStmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.AssignStmt:
		c.checkExpr(s.Value)
		if s.Op.IsCompound() {
			c.use(s.Target)
		}
		c.declare(s.Target)

	case *ast.ExprStmt:
		c.checkExpr(s.Expr)

	case *ast.IfStmt:
		for _, br := range s.Branches {
			c.checkExpr(br.Cond)
		}
		for _, br := range s.Branches {
			c.checkBlock(br.Body)
		}
		c.checkBlock(s.Else)

	case *ast.WhileStmt:
		c.checkExpr(s.Cond)
		c.checkBlock(s.Body)

	case *ast.ForStmt:
		c.checkExpr(s.Range.Start)
		c.checkExpr(s.Range.Stop)
		c.checkExpr(s.Range.Step)
		if v, ok := ast.IsConst(s.Range.Step); ok && v == 0 {
			c.warnings.Add(s.Range.Step.Pos(), warnZeroStep)
		}
		c.declare(s.Var)
		c.checkBlock(s.Body)
	}
}

func (c *Checker) checkExpr(expr ast.Expr) {
	ast.Walk(expr, func(n ast.Node) bool {
		if id, ok := n.(*ast.Ident); ok {
			c.use(id)
		}
		return true
	})
}

// declare records an assignment to id.
func (c *Checker) declare(id *ast.Ident) {
	if c.symbols.DeclareIfAbsent(id.Name, id.Pos()) && IsReserved(id.Name) && !c.reported[id.Name] {
		c.warnings.Add(id.Pos(), warnReservedName, id.Name)
	}
}

// use records a read of id, warning once per name if it is not yet declared.
func (c *Checker) use(id *ast.Ident) {
	if _, ok := c.symbols.Lookup(id.Name); ok || c.reported[id.Name] {
		return
	}
	c.reported[id.Name] = true
	c.warnings.Add(id.Pos(), warnUseBeforeAssign, id.Name)
	if IsReserved(id.Name) {
		c.warnings.Add(id.Pos(), warnReservedName, id.Name)
	}
}
