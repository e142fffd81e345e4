// Package token defines lexical tokens for the P2C source language.
package token

import "fmt"

// Token represents a lexical token type.
type Token uint8

const (
	// Special tokens
	ILLEGAL Token = iota // <illegal>
	EOF                  // EOF

	// Operators and delimiters
	operatorStart
	ADD        // +
	ADD_ASSIGN // +=
	SUB        // -
	SUB_ASSIGN // -=
	MUL        // *
	MUL_ASSIGN // *=
	DIV        // /
	DIV_ASSIGN // /=
	MOD        // %

	ASSIGN     // =
	EQUALS     // ==
	NOT_EQUALS // !=
	LESS       // <
	LTE        // <=
	GREATER    // >
	GTE        // >=

	AND // &&
	OR  // ||
	NOT // !

	LPAREN    // (
	RPAREN    // )
	LBRACE    // {
	RBRACE    // }
	COMMA     // ,
	SEMICOLON // ;
	COLON     // :
	operatorEnd

	// Keywords
	keywordStart
	IF       // if
	ELIF     // elif
	ELSE     // else
	WHILE    // while
	FOR      // for
	IN       // in
	RANGE    // range
	BREAK    // break
	CONTINUE // continue
	TRUE     // True
	FALSE    // False
	keywordEnd

	// Literals
	NAME   // name
	NUMBER // number
)

// IsOperator returns true if the token is an operator or delimiter.
func (t Token) IsOperator() bool {
	return t > operatorStart && t < operatorEnd
}

// IsKeyword returns true if the token is a keyword.
func (t Token) IsKeyword() bool {
	return t > keywordStart && t < keywordEnd
}

// IsLiteral returns true if the token is a literal (name or number).
func (t Token) IsLiteral() bool {
	return t == NAME || t == NUMBER
}

// IsAssign returns true for the plain and compound assignment operators.
func (t Token) IsAssign() bool {
	switch t {
	case ASSIGN, ADD_ASSIGN, SUB_ASSIGN, MUL_ASSIGN, DIV_ASSIGN:
		return true
	default:
		return false
	}
}

// IsCompound returns true for assignments that also read their target.
func (t Token) IsCompound() bool {
	return t.IsAssign() && t != ASSIGN
}

// IsRelational returns true for the comparison and logical binary operators.
// They share one nonassociative precedence level.
func (t Token) IsRelational() bool {
	switch t {
	case EQUALS, NOT_EQUALS, LESS, LTE, GREATER, GTE, AND, OR:
		return true
	default:
		return false
	}
}

// keywords maps keyword strings to their token types.
var keywords = map[string]Token{
	"if":       IF,
	"elif":     ELIF,
	"else":     ELSE,
	"while":    WHILE,
	"for":      FOR,
	"in":       IN,
	"range":    RANGE,
	"break":    BREAK,
	"continue": CONTINUE,
	"True":     TRUE,
	"False":    FALSE,
}

// logicalWords are keywords spelled as words that lex to operator tokens.
var logicalWords = map[string]Token{
	"and": AND,
	"or":  OR,
	"not": NOT,
}

// LookupIdent returns the token type for a given identifier.
// Returns a keyword or operator token if found, otherwise NAME.
func LookupIdent(ident string) Token {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	if tok, ok := logicalWords[ident]; ok {
		return tok
	}
	return NAME
}

// LookupKeyword returns the token type for a keyword, or ILLEGAL if not found.
func LookupKeyword(name string) Token {
	if tok, ok := keywords[name]; ok {
		return tok
	}
	return ILLEGAL
}

// Symbol returns the operator text as it appears in generated code.
// The keyword spellings and, or, not lex to the same tokens as &&, ||, !
// so they share a symbol.
func (t Token) Symbol() string {
	if t.IsOperator() {
		return names[t]
	}
	return ""
}

var names = [...]string{
	ILLEGAL:    "illegal",
	EOF:        "end of file",
	ADD:        "+",
	ADD_ASSIGN: "+=",
	SUB:        "-",
	SUB_ASSIGN: "-=",
	MUL:        "*",
	MUL_ASSIGN: "*=",
	DIV:        "/",
	DIV_ASSIGN: "/=",
	MOD:        "%",
	ASSIGN:     "=",
	EQUALS:     "==",
	NOT_EQUALS: "!=",
	LESS:       "<",
	LTE:        "<=",
	GREATER:    ">",
	GTE:        ">=",
	AND:        "&&",
	OR:         "||",
	NOT:        "!",
	LPAREN:     "(",
	RPAREN:     ")",
	LBRACE:     "{",
	RBRACE:     "}",
	COMMA:      ",",
	SEMICOLON:  ";",
	COLON:      ":",
	IF:         "if",
	ELIF:       "elif",
	ELSE:       "else",
	WHILE:      "while",
	FOR:        "for",
	IN:         "in",
	RANGE:      "range",
	BREAK:      "break",
	CONTINUE:   "continue",
	TRUE:       "True",
	FALSE:      "False",
	NAME:       "name",
	NUMBER:     "number",
}

// String returns a human-readable name for the token type.
func (t Token) String() string {
	if int(t) < len(names) && names[t] != "" {
		return names[t]
	}
	return fmt.Sprintf("token(%d)", t)
}
