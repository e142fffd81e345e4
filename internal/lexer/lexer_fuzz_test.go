package lexer

import (
	"testing"

	"github.com/0xoc/P2C/internal/token"
)

// FuzzLexer checks that scanning always terminates and always makes progress.
func FuzzLexer(f *testing.F) {
	seeds := []string{
		"",
		"a = 10",
		"result = 24 * ((a+b)-c/10)",
		"for i in range(10,20,2): { a += i }",
		"while a < 10: { if a == 5: { break } a += 1 }",
		"if a: { } elif b: { } else: { }",
		"x = not a and b",
		"# only a comment",
		"$ @ & | é",
		"1.5e+3 .5 2.",
	}
	for _, s := range seeds {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, src string) {
		l := NewFromString(src)
		lastOffset := -1
		for i := 0; i <= len(src)+1; i++ {
			tok := l.Scan()
			if tok.Type == token.EOF {
				return
			}
			if tok.Pos.Offset <= lastOffset {
				t.Fatalf("no progress at offset %d", tok.Pos.Offset)
			}
			lastOffset = tok.Pos.Offset
		}
		t.Fatalf("lexer did not reach EOF for %q", src)
	})
}
