// Package lexer provides P2C source code tokenization.
package lexer

import (
	"unicode/utf8"

	"github.com/0xoc/P2C/internal/pattern"
	"github.com/0xoc/P2C/internal/token"
)

// Token rules for the variable-length lexemes. Both patterns are anchored,
// so a match always starts at the current scan offset. The exponent of a
// number is scanned by exponentLen.
var (
	identRule    = pattern.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*`)
	mantissaRule = pattern.MustCompile(`^(?:[0-9]+(?:\.[0-9]*)?|\.[0-9]+)`)
)

// Lexer tokenizes P2C source code.
type Lexer struct {
	src    string         // Source code
	offset int            // Current byte offset
	pos    token.Position // Position of src[offset]
}

// New creates a new Lexer for the given source code.
func New(src []byte) *Lexer {
	return NewFromString(string(src))
}

// NewFromString creates a new Lexer from a string.
func NewFromString(src string) *Lexer {
	return &Lexer{
		src: src,
		pos: token.Position{Line: 1, Column: 1},
	}
}

// SetFilename attaches a file name to the positions of subsequent tokens.
func (l *Lexer) SetFilename(name string) {
	l.pos.Filename = name
}

// Token represents a scanned token with its position and value.
type Token struct {
	Type  token.Token
	Pos   token.Position
	Value string
}

// Scan scans and returns the next token. At end of input it keeps
// returning an EOF token.
func (l *Lexer) Scan() Token {
	l.skipWhitespace()

	pos := l.pos
	if l.offset >= len(l.src) {
		return Token{Type: token.EOF, Pos: pos}
	}

	ch := l.src[l.offset]
	switch ch {
	case '+':
		return l.operator(pos, token.ADD, token.ADD_ASSIGN)
	case '-':
		return l.operator(pos, token.SUB, token.SUB_ASSIGN)
	case '*':
		return l.operator(pos, token.MUL, token.MUL_ASSIGN)
	case '/':
		// Floor division is lowered as plain division.
		if l.peek(1) == '/' {
			l.advance(1)
			tok := l.operator(pos, token.DIV, token.DIV_ASSIGN)
			tok.Value = "/" + tok.Value
			return tok
		}
		return l.operator(pos, token.DIV, token.DIV_ASSIGN)
	case '%':
		return l.single(pos, token.MOD)
	case '=':
		return l.operator(pos, token.ASSIGN, token.EQUALS)
	case '!':
		return l.operator(pos, token.NOT, token.NOT_EQUALS)
	case '<':
		return l.operator(pos, token.LESS, token.LTE)
	case '>':
		return l.operator(pos, token.GREATER, token.GTE)
	case '&':
		if l.peek(1) == '&' {
			l.advance(2)
			return Token{Type: token.AND, Pos: pos, Value: "&&"}
		}
		l.advance(1)
		return Token{Type: token.ILLEGAL, Pos: pos, Value: "&"}
	case '|':
		if l.peek(1) == '|' {
			l.advance(2)
			return Token{Type: token.OR, Pos: pos, Value: "||"}
		}
		l.advance(1)
		return Token{Type: token.ILLEGAL, Pos: pos, Value: "|"}
	case '(':
		return l.single(pos, token.LPAREN)
	case ')':
		return l.single(pos, token.RPAREN)
	case '{':
		return l.single(pos, token.LBRACE)
	case '}':
		return l.single(pos, token.RBRACE)
	case ',':
		return l.single(pos, token.COMMA)
	case ';':
		return l.single(pos, token.SEMICOLON)
	case ':':
		return l.single(pos, token.COLON)
	}

	rest := l.src[l.offset:]
	if loc := mantissaRule.FindStringIndex(rest); loc != nil && loc[1] > 0 {
		n := loc[1] + exponentLen(rest[loc[1]:])
		l.advance(n)
		return Token{Type: token.NUMBER, Pos: pos, Value: rest[:n]}
	}
	if loc := identRule.FindStringIndex(rest); loc != nil && loc[1] > 0 {
		name := rest[:loc[1]]
		l.advance(loc[1])
		return Token{Type: token.LookupIdent(name), Pos: pos, Value: name}
	}

	_, size := utf8.DecodeRuneInString(rest)
	l.advance(size)
	return Token{Type: token.ILLEGAL, Pos: pos, Value: rest[:size]}
}

// NextToken returns the next token, or false once the input is exhausted.
func (l *Lexer) NextToken() (Token, bool) {
	tok := l.Scan()
	if tok.Type == token.EOF {
		return tok, false
	}
	return tok, true
}

// Tokenize scans the whole source and returns every token before EOF.
func Tokenize(src string) []Token {
	l := NewFromString(src)
	var toks []Token
	for {
		tok, ok := l.NextToken()
		if !ok {
			return toks
		}
		toks = append(toks, tok)
	}
}

// operator scans a one-character operator that becomes withEq when followed by '='.
func (l *Lexer) operator(pos token.Position, plain, withEq token.Token) Token {
	if l.peek(1) == '=' {
		l.advance(2)
		return Token{Type: withEq, Pos: pos, Value: withEq.String()}
	}
	return l.single(pos, plain)
}

func (l *Lexer) single(pos token.Position, t token.Token) Token {
	l.advance(1)
	return Token{Type: t, Pos: pos, Value: t.String()}
}

// exponentLen returns the length of an exponent suffix ("e10", "E-3") at
// the start of s, or 0 when s does not start with a complete one.
func exponentLen(s string) int {
	if len(s) == 0 || (s[0] != 'e' && s[0] != 'E') {
		return 0
	}
	i := 1
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := i
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == digits {
		return 0
	}
	return i
}

func (l *Lexer) peek(n int) byte {
	if l.offset+n < len(l.src) {
		return l.src[l.offset+n]
	}
	return 0
}

// advance moves n bytes forward, keeping line and column current.
func (l *Lexer) advance(n int) {
	for i := 0; i < n && l.offset < len(l.src); i++ {
		if l.src[l.offset] == '\n' {
			l.pos.Line++
			l.pos.Column = 1
		} else {
			l.pos.Column++
		}
		l.offset++
		l.pos.Offset = l.offset
	}
}

// skipWhitespace skips blanks, newlines and # comments. Newlines carry no
// meaning in the language beyond line tracking.
func (l *Lexer) skipWhitespace() {
	for l.offset < len(l.src) {
		switch l.src[l.offset] {
		case ' ', '\t', '\r', '\n':
			l.advance(1)
		case '#':
			for l.offset < len(l.src) && l.src[l.offset] != '\n' {
				l.advance(1)
			}
		default:
			return
		}
	}
}
