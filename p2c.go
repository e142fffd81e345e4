package p2c

import (
	"io"

	"github.com/0xoc/P2C/internal/compiler"
	"github.com/0xoc/P2C/internal/lexer"
	"github.com/0xoc/P2C/internal/logger"
	"github.com/0xoc/P2C/internal/parser"
	"github.com/0xoc/P2C/internal/semantic"
)

// Version is the p2c version string.
const Version = "0.1.0"

// Translate converts source code into a C program.
// This is a convenience function for one-off translation.
//
// Parameters:
//   - src: P2C source code
//   - config: translation configuration (can be nil for defaults)
//
// Example:
//
//	out, err := p2c.Translate("a = 10", nil)
//	// out contains "float a = 10;" inside main
func Translate(src string, config *Config) (string, error) {
	prog, err := Compile(src, config)
	if err != nil {
		return "", err
	}
	return prog.Code(), nil
}

// Compile parses, checks and lowers a program.
// Nothing is returned alongside an error: a failed translation has no
// partial output.
//
// Example:
//
//	prog, err := p2c.Compile(src, &p2c.Config{NumericType: "double"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Print(prog.Code())
func Compile(src string, config *Config) (*Program, error) {
	var cfg Config
	if config != nil {
		cfg = *config
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	// Parse
	lx := lexer.NewFromString(src)
	lx.SetFilename(cfg.Filename)
	tokens := &countingSource{src: lx}
	tree, err := parser.ParseTokens(tokens)
	if err != nil {
		return nil, convertError(err)
	}
	tree.Filename = cfg.Filename
	logger.LogLexing(cfg.Filename, tokens.count)
	logger.LogParsing(cfg.Filename, len(tree.Stmts))

	// Check
	var warnings []Warning
	for _, w := range semantic.Check(tree) {
		logger.LogWarning(cfg.Filename, w.Pos.Line, w.Message)
		warnings = append(warnings, Warning{Line: w.Pos.Line, Column: w.Pos.Column, Message: w.Message})
	}

	// Lower
	compiled, err := compiler.Compile(tree, cfg.compilerConfig())
	if err != nil {
		return nil, convertError(err)
	}
	logger.LogLowering(cfg.Filename, len(compiled.Code), compiled.NumTemps,
		compiled.NumLabels, len(compiled.Symbols))

	code := compiled.Text()
	if cfg.format() {
		code = compiler.Format(code)
	}

	return &Program{
		compiled: compiled,
		tree:     tree,
		source:   src,
		code:     code,
		warnings: warnings,
	}, nil
}

// Exec reads a whole program from input and writes its translation to output.
// Nothing is written when translation fails.
//
// Example:
//
//	err := p2c.Exec(os.Stdin, os.Stdout, nil)
func Exec(input io.Reader, output io.Writer, config *Config) error {
	src, err := io.ReadAll(input)
	if err != nil {
		return err
	}
	prog, err := Compile(string(src), config)
	if err != nil {
		return err
	}
	_, err = prog.WriteTo(output)
	return err
}

// MustCompile is like Compile but panics if the program cannot be translated.
// It simplifies initialization of global program variables.
func MustCompile(src string) *Program {
	prog, err := Compile(src, nil)
	if err != nil {
		panic(err)
	}
	return prog
}

// countingSource counts the tokens the parser pulls.
type countingSource struct {
	src   *lexer.Lexer
	count int
}

func (s *countingSource) NextToken() (lexer.Token, bool) {
	tok, ok := s.src.NextToken()
	if ok {
		s.count++
	}
	return tok, ok
}

var _ parser.TokenSource = (*countingSource)(nil)
