package parser_test

import (
	"testing"

	"github.com/0xoc/P2C/internal/ast"
	"github.com/0xoc/P2C/internal/parser"
)

// FuzzParser tests the parser with random inputs to find crashes.
func FuzzParser(f *testing.F) {
	seeds := []string{
		// Empty and minimal
		"",
		";",
		"a",

		// Assignments
		"a = 10",
		"a += 1; b -= 2; c *= 3; d /= 4",
		"result = 24 * ((a+b)-c/10)",
		"x = -a + b",
		"x = not a or b",

		// Control flow
		"if a: { }",
		"if a == 20: { continue } elif b: { break } else: { c = 1 }",
		"while i < 10: { i += 1 }",
		"for i in range(10): { }",
		"for i in range(10, 20, 2): { a += i }",
		"for i in range(10, 0, -1): { while True: { break } }",

		// Comments and separators
		"# comment\na = 1 # trailing",
		"a = 1;;b = 2",
	}

	for _, seed := range seeds {
		f.Add(seed)
	}

	// Add some invalid inputs to ensure graceful error handling
	invalid := []string{
		"$",
		"a < b < c",
		"if a { }",
		"while a: {",
		"for i in range(): { }",
		"((((",
		"a = = b",
		"}",
	}

	for _, inv := range invalid {
		f.Add(inv)
	}

	f.Fuzz(func(t *testing.T, src string) {
		// Limit input size to prevent timeouts
		const maxLen = 10000
		if len(src) > maxLen {
			return
		}

		// Parser should not panic on any input
		prog, err := parser.Parse(src)
		if err == nil {
			if prog == nil {
				t.Fatal("Parse returned nil program without error")
			}
			// A successful parse must be stable.
			again, err := parser.Parse(src)
			if err != nil || ast.Sexpr(again) != ast.Sexpr(prog) {
				t.Fatalf("second parse of %q differs", src)
			}
		}

		// ParseExpr should also not panic
		_, _ = parser.ParseExpr(src)
	})
}
