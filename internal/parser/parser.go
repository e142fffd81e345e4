package parser

import (
	"errors"
	"strconv"

	"github.com/0xoc/P2C/internal/ast"
	"github.com/0xoc/P2C/internal/lexer"
	"github.com/0xoc/P2C/internal/token"
)

// TokenSource delivers tokens strictly left to right. NextToken returns
// false once the stream is exhausted. *lexer.Lexer implements it.
type TokenSource interface {
	NextToken() (lexer.Token, bool)
}

var _ TokenSource = (*lexer.Lexer)(nil)

// exprStart lists the tokens that can begin an expression.
var exprStart = []string{"number", "name", "True", "False", "(", "+", "-", "!"}

// Parser is a recursive descent parser for P2C programs.
type Parser struct {
	src     TokenSource    // Token stream
	tok     lexer.Token    // Current token
	prevEnd token.Position // End of the last consumed token
	atEOF   bool           // Stream exhausted; stop pulling
}

// Parse parses a P2C program from source code.
func Parse(src string) (*ast.Program, error) {
	return ParseFile("", []byte(src))
}

// ParseFile parses src, attaching filename to every position.
func ParseFile(filename string, src []byte) (*ast.Program, error) {
	lx := lexer.New(src)
	lx.SetFilename(filename)
	prog, err := ParseTokens(lx)
	if prog != nil {
		prog.Filename = filename
	}
	return prog, err
}

// ParseTokens parses a program from an arbitrary token stream.
// The first error aborts the parse and no program is returned.
func ParseTokens(src TokenSource) (prog *ast.Program, err error) {
	p := &Parser{src: src}
	defer p.recover(&err)

	p.next()
	return p.parseProgram(), nil
}

// ParseExpr parses a single expression (useful for testing).
func ParseExpr(src string) (expr ast.Expr, err error) {
	p := &Parser{src: lexer.NewFromString(src)}
	defer p.recover(&err)

	p.next()
	expr = p.parseExpr()
	p.expect(token.EOF)
	return expr, nil
}

// recover turns a SyntaxError panic into an error return.
func (p *Parser) recover(errp *error) {
	if r := recover(); r != nil {
		serr, ok := r.(*SyntaxError)
		if !ok {
			panic(r)
		}
		*errp = serr
	}
}

// -----------------------------------------------------------------------------
// Token handling
// -----------------------------------------------------------------------------

// next advances to the next token. The stream is not pulled past EOF.
func (p *Parser) next() {
	p.prevEnd = tokenEnd(p.tok)
	if p.atEOF {
		return
	}

	tok, ok := p.src.NextToken()
	if !ok {
		p.atEOF = true
		tok.Type = token.EOF
		tok.Value = ""
		if !tok.Pos.IsValid() {
			tok.Pos = p.prevEnd
		}
	}
	if tok.Type == token.ILLEGAL {
		panic(errorf(tok.Pos, tok.Value, "unexpected character %q", tok.Value))
	}
	p.tok = tok
}

// tokenEnd returns the position just past tok.
func tokenEnd(tok lexer.Token) token.Position {
	end := tok.Pos
	end.Column += len(tok.Value)
	end.Offset += len(tok.Value)
	return end
}

// expect checks that the current token is tok and advances.
// It returns the position of the consumed token.
func (p *Parser) expect(tok token.Token) token.Position {
	pos := p.tok.Pos
	if p.tok.Type != tok {
		panic(expectedError(pos, p.tokenDesc(), tok.String()))
	}
	p.next()
	return pos
}

// tokenDesc returns a description of the current token for error messages.
func (p *Parser) tokenDesc() string {
	if p.tok.Type == token.EOF {
		return token.EOF.String()
	}
	if p.tok.Value != "" {
		return p.tok.Value
	}
	return p.tok.Type.String()
}

// -----------------------------------------------------------------------------
// Program and statement parsing
// -----------------------------------------------------------------------------

// parseProgram parses statements until end of input.
func (p *Parser) parseProgram() *ast.Program {
	prog := &ast.Program{StartPos: p.tok.Pos}
	for p.tok.Type != token.EOF {
		if p.tok.Type == token.SEMICOLON {
			p.next()
			continue
		}
		prog.Stmts = append(prog.Stmts, p.parseStmt())
	}
	prog.EndPos = p.tok.Pos
	return prog
}

// parseStmt parses any statement.
func (p *Parser) parseStmt() ast.Stmt {
	startPos := p.tok.Pos

	switch p.tok.Type {
	case token.IF:
		return p.parseIfStmt()

	case token.WHILE:
		return p.parseWhileStmt()

	case token.FOR:
		return p.parseForStmt()

	case token.BREAK:
		p.next()
		return &ast.BreakStmt{BaseStmt: ast.MakeBaseStmt(startPos, p.prevEnd)}

	case token.CONTINUE:
		p.next()
		return &ast.ContinueStmt{BaseStmt: ast.MakeBaseStmt(startPos, p.prevEnd)}
	}

	if !p.canStartExpr() {
		panic(expectedError(startPos, p.tokenDesc(), "statement"))
	}
	return p.parseSimpleStmt()
}

// parseSimpleStmt parses an assignment or a bare expression statement.
func (p *Parser) parseSimpleStmt() ast.Stmt {
	expr := p.parseExpr()
	if !p.tok.Type.IsAssign() {
		return &ast.ExprStmt{
			BaseStmt: ast.MakeBaseStmt(expr.Pos(), expr.End()),
			Expr:     expr,
		}
	}

	target, ok := expr.(*ast.Ident)
	if !ok {
		panic(errorf(p.tok.Pos, p.tokenDesc(), "left side of assignment must be a variable"))
	}
	op := p.tok.Type
	p.next()
	value := p.parseExpr()

	return &ast.AssignStmt{
		BaseStmt: ast.MakeBaseStmt(target.Pos(), value.End()),
		Op:       op,
		Target:   target,
		Value:    value,
	}
}

// parseIfStmt parses an if statement with its elif and else clauses.
func (p *Parser) parseIfStmt() *ast.IfStmt {
	startPos := p.tok.Pos
	p.next() // consume 'if'

	stmt := &ast.IfStmt{}
	stmt.Branches = append(stmt.Branches, p.parseBranch())
	for p.tok.Type == token.ELIF {
		p.next()
		stmt.Branches = append(stmt.Branches, p.parseBranch())
	}

	if p.tok.Type == token.ELSE {
		p.next()
		p.expect(token.COLON)
		stmt.Else = p.parseBlock()
	}

	stmt.BaseStmt = ast.MakeBaseStmt(startPos, p.prevEnd)
	return stmt
}

// parseBranch parses "cond: { ... }".
func (p *Parser) parseBranch() ast.IfBranch {
	cond := p.parseExpr()
	p.expect(token.COLON)
	return ast.IfBranch{Cond: cond, Body: p.parseBlock()}
}

// parseWhileStmt parses a while statement.
func (p *Parser) parseWhileStmt() *ast.WhileStmt {
	startPos := p.tok.Pos
	p.next() // consume 'while'

	cond := p.parseExpr()
	p.expect(token.COLON)
	body := p.parseBlock()

	return &ast.WhileStmt{
		BaseStmt: ast.MakeBaseStmt(startPos, p.prevEnd),
		Cond:     cond,
		Body:     body,
	}
}

// parseForStmt parses "for NAME in range(args): { ... }".
func (p *Parser) parseForStmt() *ast.ForStmt {
	startPos := p.tok.Pos
	p.next() // consume 'for'

	namePos := p.tok.Pos
	name := p.tok.Value
	p.expect(token.NAME)
	loopVar := &ast.Ident{BaseExpr: ast.MakeBaseExpr(namePos, p.prevEnd), Name: name}

	p.expect(token.IN)
	rangePos := p.expect(token.RANGE)
	rng := p.parseRange(rangePos)
	p.expect(token.COLON)
	body := p.parseBlock()

	return &ast.ForStmt{
		BaseStmt: ast.MakeBaseStmt(startPos, p.prevEnd),
		Var:      loopVar,
		Range:    rng,
		Body:     body,
	}
}

// parseRange parses the argument list of range. A missing start is 0 and
// a missing step is 1.
func (p *Parser) parseRange(pos token.Position) ast.Range {
	p.expect(token.LPAREN)
	if p.tok.Type == token.RPAREN {
		panic(errorf(p.tok.Pos, p.tokenDesc(), "range expects 1 to 3 arguments, got 0"))
	}

	args := []ast.Expr{p.parseExpr()}
	for p.tok.Type == token.COMMA {
		p.next()
		args = append(args, p.parseExpr())
	}
	if len(args) > 3 {
		panic(errorf(args[3].Pos(), "", "range expects 1 to 3 arguments, got %d", len(args)))
	}
	p.expect(token.RPAREN)

	switch len(args) {
	case 1:
		return ast.Range{Start: implicitNum(pos, 0), Stop: args[0], Step: implicitNum(pos, 1)}
	case 2:
		return ast.Range{Start: args[0], Stop: args[1], Step: implicitNum(pos, 1)}
	default:
		return ast.Range{Start: args[0], Stop: args[1], Step: args[2]}
	}
}

// implicitNum builds a literal for a defaulted range argument.
// isLeadingZeroInt reports whether lit is an integer literal such as 010
// that starts with 0 and is not all zeros.
func isLeadingZeroInt(lit string) bool {
	if len(lit) < 2 || lit[0] != '0' {
		return false
	}
	zeros := true
	for i := 0; i < len(lit); i++ {
		if lit[i] < '0' || lit[i] > '9' {
			return false
		}
		if lit[i] != '0' {
			zeros = false
		}
	}
	return !zeros
}

func implicitNum(pos token.Position, v float64) *ast.NumLit {
	return &ast.NumLit{
		BaseExpr: ast.MakeBaseExpr(pos, pos),
		Value:    v,
		Raw:      strconv.FormatFloat(v, 'g', -1, 64),
	}
}

// parseBlock parses a brace-delimited statement list. The list may be empty.
func (p *Parser) parseBlock() *ast.Block {
	lbrace := p.expect(token.LBRACE)

	var stmts []ast.Stmt
	for p.tok.Type != token.RBRACE {
		switch p.tok.Type {
		case token.EOF:
			panic(expectedError(p.tok.Pos, p.tokenDesc(), token.RBRACE.String()))
		case token.SEMICOLON:
			p.next()
		default:
			stmts = append(stmts, p.parseStmt())
		}
	}
	rbrace := p.expect(token.RBRACE)

	return &ast.Block{Lbrace: lbrace, Rbrace: rbrace, Stmts: stmts}
}

// -----------------------------------------------------------------------------
// Expression parsing
// -----------------------------------------------------------------------------

// parseExpr parses a full expression.
func (p *Parser) parseExpr() ast.Expr {
	return p.parseRelational()
}

// parseRelational parses comparison and logical operators. They share one
// nonassociative level, so "a < b < c" and "a < b and c" are rejected.
func (p *Parser) parseRelational() ast.Expr {
	expr := p.parseAdditive()
	if !p.tok.Type.IsRelational() {
		return expr
	}

	op := p.tok.Type
	p.next()
	right := p.parseAdditive()
	if p.tok.Type.IsRelational() {
		panic(errorf(p.tok.Pos, p.tokenDesc(),
			"%s cannot follow %s without parentheses", p.tokenDesc(), op))
	}

	return &ast.BinaryExpr{
		BaseExpr: ast.MakeBaseExpr(expr.Pos(), right.End()),
		Left:     expr,
		Op:       op,
		Right:    right,
	}
}

// parseAdditive parses + and - expressions.
func (p *Parser) parseAdditive() ast.Expr {
	return p.parseBinaryLeft(p.parseMultiplicative, token.ADD, token.SUB)
}

// parseMultiplicative parses *, / and % expressions.
func (p *Parser) parseMultiplicative() ast.Expr {
	return p.parseBinaryLeft(p.parseUnary, token.MUL, token.DIV, token.MOD)
}

// parseUnary parses prefix +, - and !, which bind tighter than any binary
// operator and nest to the right.
func (p *Parser) parseUnary() ast.Expr {
	switch p.tok.Type {
	case token.ADD, token.SUB, token.NOT:
		startPos := p.tok.Pos
		op := p.tok.Type
		p.next()
		operand := p.parseUnary()
		return &ast.UnaryExpr{
			BaseExpr: ast.MakeBaseExpr(startPos, operand.End()),
			Op:       op,
			Expr:     operand,
		}
	}
	return p.parsePrimary()
}

// parsePrimary parses literals, names and parenthesized expressions.
func (p *Parser) parsePrimary() ast.Expr {
	tok := p.tok

	switch tok.Type {
	case token.NUMBER:
		// C reads 010 as octal, so the only integers that may start
		// with 0 are zeros.
		if isLeadingZeroInt(tok.Value) {
			panic(errorf(tok.Pos, tok.Value, "leading zeros in integer literal %q are not permitted", tok.Value))
		}
		v, err := strconv.ParseFloat(tok.Value, 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			panic(errorf(tok.Pos, tok.Value, "invalid number %q", tok.Value))
		}
		p.next()
		return &ast.NumLit{BaseExpr: ast.MakeBaseExpr(tok.Pos, p.prevEnd), Value: v, Raw: tok.Value}

	case token.NAME:
		p.next()
		return &ast.Ident{BaseExpr: ast.MakeBaseExpr(tok.Pos, p.prevEnd), Name: tok.Value}

	case token.TRUE, token.FALSE:
		p.next()
		return &ast.BoolLit{BaseExpr: ast.MakeBaseExpr(tok.Pos, p.prevEnd), Value: tok.Type == token.TRUE}

	case token.LPAREN:
		p.next()
		expr := p.parseExpr()
		p.expect(token.RPAREN)
		return expr
	}

	panic(expectedError(tok.Pos, p.tokenDesc(), exprStart...))
}

// canStartExpr reports whether the current token can begin an expression.
func (p *Parser) canStartExpr() bool {
	switch p.tok.Type {
	case token.NUMBER, token.NAME, token.TRUE, token.FALSE, token.LPAREN,
		token.ADD, token.SUB, token.NOT:
		return true
	}
	return false
}

// -----------------------------------------------------------------------------
// Helper functions
// -----------------------------------------------------------------------------

// parseBinaryLeft parses left-associative binary operators.
func (p *Parser) parseBinaryLeft(higher func() ast.Expr, ops ...token.Token) ast.Expr {
	expr := higher()
	for p.match(ops...) {
		op := p.tok.Type
		p.next()
		right := higher()
		expr = &ast.BinaryExpr{
			BaseExpr: ast.MakeBaseExpr(expr.Pos(), right.End()),
			Left:     expr,
			Op:       op,
			Right:    right,
		}
	}
	return expr
}

// match returns true if current token matches any of the given types.
func (p *Parser) match(types ...token.Token) bool {
	for _, t := range types {
		if p.tok.Type == t {
			return true
		}
	}
	return false
}
