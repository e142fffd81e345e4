package compiler

import (
	"fmt"
	"strconv"

	"github.com/0xoc/P2C/internal/ast"
	"github.com/0xoc/P2C/internal/semantic"
	"github.com/0xoc/P2C/internal/token"
)

// Default generator settings.
const (
	DefaultNumericType = "float"
	DefaultTempPrefix  = "t"
	DefaultLabelPrefix = "l"
)

// LoweringError reports an AST the generator cannot translate: a node
// kind it has no case for, or break/continue outside any loop.
type LoweringError struct {
	Pos     token.Position
	Message string
}

func (e *LoweringError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s: %s", e.Pos, e.Message)
	}
	return e.Message
}

// Config controls naming and typing of the generated code.
// Zero fields take the Default values.
type Config struct {
	NumericType string // C type of every variable and temporary
	TempPrefix  string // Temporaries are named TempPrefix1, TempPrefix2, ...
	LabelPrefix string // Labels are named LabelPrefix1, LabelPrefix2, ...
}

func (c *Config) applyDefaults() {
	if c.NumericType == "" {
		c.NumericType = DefaultNumericType
	}
	if c.TempPrefix == "" {
		c.TempPrefix = DefaultTempPrefix
	}
	if c.LabelPrefix == "" {
		c.LabelPrefix = DefaultLabelPrefix
	}
}

// Compile lowers prog with a fresh generator.
func Compile(prog *ast.Program, cfg Config) (*Program, error) {
	g := NewGenerator(cfg)
	code, err := g.Generate(prog)
	if err != nil {
		return nil, err
	}
	return &Program{
		Code:        code,
		NumericType: g.cfg.NumericType,
		Symbols:     g.symbols.Symbols(),
		NumTemps:    g.numTemps,
		NumLabels:   g.labels,
	}, nil
}

// loopTargets holds the jump targets of one enclosing loop.
type loopTargets struct {
	brk  string // break jumps here
	cont string // continue jumps here
}

// Generator lowers programs into three-address instructions. Its counters
// and symbol table belong to one run: Generate resets them first, so a
// Generator may be reused but not shared between goroutines.
type Generator struct {
	cfg     Config
	symbols *semantic.SymbolTable

	temps    int // Last temporary number handed out
	numTemps int // Temporaries allocated this run
	labels   int // Last label number handed out

	loops    []loopTargets   // Stack of enclosing loops, innermost last
	reserved map[string]bool // Source identifiers temporaries must avoid
}

var (
	_ ast.StmtVisitor[[]Instr] = (*Generator)(nil)
	_ ast.ExprVisitor[lowered] = (*Generator)(nil)
)

// NewGenerator creates a generator with cfg's defaults applied.
func NewGenerator(cfg Config) *Generator {
	cfg.applyDefaults()
	return &Generator{
		cfg:      cfg,
		symbols:  semantic.NewSymbolTable(),
		reserved: make(map[string]bool),
	}
}

// Reset clears the counters, the symbol table and the loop stack.
func (g *Generator) Reset() {
	g.symbols.Reset()
	g.temps = 0
	g.numTemps = 0
	g.labels = 0
	g.loops = g.loops[:0]
	clear(g.reserved)
}

// Symbols returns the symbol table filled by the last run.
func (g *Generator) Symbols() *semantic.SymbolTable {
	return g.symbols
}

// Generate lowers every top-level statement of prog in source order.
func (g *Generator) Generate(prog *ast.Program) (code []Instr, err error) {
	g.Reset()
	defer func() {
		if r := recover(); r != nil {
			le, ok := r.(*LoweringError)
			if !ok {
				panic(r) // Re-panic for non-lowering errors
			}
			code, err = nil, le
		}
	}()

	g.reserve(prog)
	for _, stmt := range prog.Stmts {
		code = append(code, g.lowerStmt(stmt)...)
	}
	return code, nil
}

// reserve records every identifier in prog so temporaries never shadow one.
func (g *Generator) reserve(prog *ast.Program) {
	ast.Walk(prog, func(n ast.Node) bool {
		if id, ok := n.(*ast.Ident); ok {
			g.reserved[id.Name] = true
		}
		return true
	})
}

// fail aborts the run with a LoweringError.
func (g *Generator) fail(pos token.Position, format string, args ...any) {
	panic(&LoweringError{Pos: pos, Message: fmt.Sprintf(format, args...)})
}

// newTemp returns a fresh temporary name.
func (g *Generator) newTemp() string {
	g.numTemps++
	for {
		g.temps++
		name := g.cfg.TempPrefix + strconv.Itoa(g.temps)
		if !g.reserved[name] {
			return name
		}
	}
}

// newLabel returns a fresh label name.
func (g *Generator) newLabel() string {
	g.labels++
	return g.cfg.LabelPrefix + strconv.Itoa(g.labels)
}

// -----------------------------------------------------------------------------
// Statements
// -----------------------------------------------------------------------------

// lowerStmt lowers one statement. Statements never yield a value.
func (g *Generator) lowerStmt(stmt ast.Stmt) []Instr {
	code, ok := ast.AcceptStmt[[]Instr](stmt, g)
	if !ok {
		pos := token.NoPos
		if stmt != nil {
			pos = stmt.Pos()
		}
		g.fail(pos, "invalid line: unexpected statement type %T", stmt)
	}
	return code
}

// lowerBlock lowers the statements of a block in order.
func (g *Generator) lowerBlock(block *ast.Block) []Instr {
	if block == nil {
		return nil
	}
	var code []Instr
	for _, stmt := range block.Stmts {
		code = append(code, g.lowerStmt(stmt)...)
	}
	return code
}

// VisitAssignStmt lowers the value, then stores it. A first assignment
// declares the target in the same line; compound operators are kept as-is.
func (g *Generator) VisitAssignStmt(s *ast.AssignStmt) []Instr {
	code, value := g.lowerExpr(s.Value)
	name := s.Target.Name
	isNew := g.symbols.DeclareIfAbsent(name, s.Target.Pos())

	store := Instr{Op: Assign, Dest: name, Oper: s.Op.Symbol(), X: value, Pos: s.Pos()}
	switch {
	case isNew && s.Op == token.ASSIGN:
		store.Type = g.cfg.NumericType
	case isNew:
		code = append(code, Instr{Op: Decl, Type: g.cfg.NumericType, Dest: name, Pos: s.Pos()})
	}
	return append(code, store)
}

// VisitExprStmt keeps the preamble for its effects and drops the value.
func (g *Generator) VisitExprStmt(s *ast.ExprStmt) []Instr {
	code, _ := g.lowerExpr(s.Expr)
	return code
}

// VisitIfStmt lowers an if/elif/else chain. Every branch condition is
// evaluated up front, before the first jump.
func (g *Generator) VisitIfStmt(s *ast.IfStmt) []Instr {
	if len(s.Branches) == 0 {
		g.fail(s.Pos(), "if statement without a branch")
	}

	var code []Instr
	conds := make([]string, len(s.Branches))
	for i, br := range s.Branches {
		pre, value := g.lowerExpr(br.Cond)
		code = append(code, pre...)
		conds[i] = value
	}

	end := g.newLabel()
	for i, br := range s.Branches {
		next := g.newLabel()
		code = append(code, Instr{Op: IfFalse, X: conds[i], Target: next, Pos: br.Cond.Pos()})
		code = append(code, g.lowerBlock(br.Body)...)
		code = append(code,
			Instr{Op: Goto, Target: end, Pos: br.Cond.Pos()},
			Instr{Op: Label, Target: next, Pos: br.Cond.Pos()},
		)
	}
	if s.Else != nil {
		code = append(code, g.lowerBlock(s.Else)...)
	}
	return append(code, Instr{Op: Label, Target: end, Pos: s.Pos()})
}

// VisitWhileStmt lowers a while loop. The condition is re-evaluated after
// the start label on every iteration.
func (g *Generator) VisitWhileStmt(s *ast.WhileStmt) []Instr {
	start := g.newLabel()
	end := g.newLabel()

	code := []Instr{{Op: Label, Target: start, Pos: s.Pos()}}
	pre, cond := g.lowerExpr(s.Cond)
	code = append(code, pre...)
	code = append(code, Instr{Op: IfFalse, X: cond, Target: end, Pos: s.Cond.Pos()})

	g.loops = append(g.loops, loopTargets{brk: end, cont: start})
	code = append(code, g.lowerBlock(s.Body)...)
	g.loops = g.loops[:len(g.loops)-1]

	return append(code,
		Instr{Op: Goto, Target: start, Pos: s.Pos()},
		Instr{Op: Label, Target: end, Pos: s.Pos()},
	)
}

// VisitForStmt lowers a range loop. Start, stop and step are evaluated
// once before the loop. The exit test is >= for a positive literal step
// and <= for a zero or negative one; any other step counts as positive.
// continue jumps to the step label so the counter still advances.
func (g *Generator) VisitForStmt(s *ast.ForStmt) []Instr {
	pos := s.Pos()
	code, start := g.lowerExpr(s.Range.Start)

	pre, stop := g.lowerExpr(s.Range.Stop)
	code = append(code, pre...)
	code, stop = g.snapshot(code, s.Range.Stop, stop)

	pre, step := g.lowerExpr(s.Range.Step)
	code = append(code, pre...)
	code, step = g.snapshot(code, s.Range.Step, step)

	name := s.Var.Name
	init := Instr{Op: Assign, Dest: name, Oper: "=", X: start, Pos: pos}
	if g.symbols.DeclareIfAbsent(name, s.Var.Pos()) {
		init.Type = g.cfg.NumericType
	}
	code = append(code, init)

	exit := ">="
	if v, ok := ast.IsConst(s.Range.Step); ok && v <= 0 {
		exit = "<="
	}

	loop := g.newLabel()
	cont := g.newLabel()
	end := g.newLabel()

	code = append(code,
		Instr{Op: Label, Target: loop, Pos: pos},
		Instr{Op: IfCmp, X: name, Oper: exit, Y: stop, Target: end, Pos: pos},
	)

	g.loops = append(g.loops, loopTargets{brk: end, cont: cont})
	code = append(code, g.lowerBlock(s.Body)...)
	g.loops = g.loops[:len(g.loops)-1]

	return append(code,
		Instr{Op: Label, Target: cont, Pos: pos},
		Instr{Op: Assign, Dest: name, Oper: "+=", X: step, Pos: pos},
		Instr{Op: Goto, Target: loop, Pos: pos},
		Instr{Op: Label, Target: end, Pos: pos},
	)
}

// snapshot copies a plain variable into a temporary so later writes to
// the variable do not change a range bound. Literals and temporaries are
// already fixed and pass through unchanged.
func (g *Generator) snapshot(code []Instr, e ast.Expr, value string) ([]Instr, string) {
	if _, ok := e.(*ast.Ident); !ok {
		return code, value
	}
	t := g.newTemp()
	code = append(code, Instr{Op: Temp, Type: g.cfg.NumericType, Dest: t, X: value, Pos: e.Pos()})
	return code, t
}

// VisitBreakStmt jumps to the end label of the innermost loop.
func (g *Generator) VisitBreakStmt(s *ast.BreakStmt) []Instr {
	if len(g.loops) == 0 {
		g.fail(s.Pos(), "break outside loop")
	}
	target := g.loops[len(g.loops)-1].brk
	return []Instr{{Op: Goto, Target: target, Pos: s.Pos()}}
}

// VisitContinueStmt jumps to the continue label of the innermost loop.
func (g *Generator) VisitContinueStmt(s *ast.ContinueStmt) []Instr {
	if len(g.loops) == 0 {
		g.fail(s.Pos(), "continue outside loop")
	}
	target := g.loops[len(g.loops)-1].cont
	return []Instr{{Op: Goto, Target: target, Pos: s.Pos()}}
}

// -----------------------------------------------------------------------------
// Expressions
// -----------------------------------------------------------------------------

// lowered is the result of lowering an expression: the instructions that
// compute it and the name or literal text holding its value.
type lowered struct {
	code  []Instr
	value string
}

// lowerExpr lowers e and returns its preamble and value.
func (g *Generator) lowerExpr(e ast.Expr) ([]Instr, string) {
	r, ok := ast.AcceptExpr[lowered](e, g)
	if !ok {
		pos := token.NoPos
		if e != nil {
			pos = e.Pos()
		}
		g.fail(pos, "invalid expression: unexpected type %T", e)
	}
	return r.code, r.value
}

// VisitNumLit emits the literal as written.
func (g *Generator) VisitNumLit(e *ast.NumLit) lowered {
	if e.Raw != "" {
		return lowered{value: e.Raw}
	}
	return lowered{value: strconv.FormatFloat(e.Value, 'g', -1, 64)}
}

// VisitBoolLit emits True as 1 and False as 0.
func (g *Generator) VisitBoolLit(e *ast.BoolLit) lowered {
	if e.Value {
		return lowered{value: "1"}
	}
	return lowered{value: "0"}
}

// VisitIdent refers to the variable by name.
func (g *Generator) VisitIdent(e *ast.Ident) lowered {
	return lowered{value: e.Name}
}

// VisitBinaryExpr lowers both operands, left first, then computes the
// result into one fresh temporary. && and || evaluate both sides.
func (g *Generator) VisitBinaryExpr(e *ast.BinaryExpr) lowered {
	code, left := g.lowerExpr(e.Left)
	pre, right := g.lowerExpr(e.Right)
	code = append(code, pre...)

	t := g.newTemp()
	code = append(code, Instr{
		Op:   Temp,
		Type: g.cfg.NumericType,
		Dest: t,
		Oper: e.Op.Symbol(),
		X:    left,
		Y:    right,
		Pos:  e.Pos(),
	})
	return lowered{code: code, value: t}
}

// VisitUnaryExpr lowers the operand and applies the operator into a
// fresh temporary.
func (g *Generator) VisitUnaryExpr(e *ast.UnaryExpr) lowered {
	code, operand := g.lowerExpr(e.Expr)

	t := g.newTemp()
	code = append(code, Instr{
		Op:   Temp,
		Type: g.cfg.NumericType,
		Dest: t,
		Oper: e.Op.Symbol(),
		X:    operand,
		Pos:  e.Pos(),
	})
	return lowered{code: code, value: t}
}
