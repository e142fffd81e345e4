package compiler_test

import (
	"strings"
	"testing"
	"time"

	"github.com/0xoc/P2C/internal/compiler"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "indents by brace depth",
			src:  "int main() {\nfloat a = 1;\nreturn 0;\n}\n",
			want: "int main() {\n    float a = 1;\n    return 0;\n}\n",
		},
		{
			name: "labels sit one level left",
			src:  "int main() {\nl1: ;\ngoto l1;\n}\n",
			want: "int main() {\nl1: ;\n    goto l1;\n}\n",
		},
		{
			name: "collapses blank runs",
			src:  "a;\n\n\n\nb;\n \t\n\t\nc;\n",
			want: "a;\n\nb;\n\nc;\n",
		},
		{
			name: "blank run at end keeps one newline",
			src:  "a;\n\n\n\n",
			want: "a;\n",
		},
		{
			name: "strips trailing and leading blanks",
			src:  "  int main() {   \n\t\tx = 1;  \n  }\n",
			want: "int main() {\n    x = 1;\n}\n",
		},
		{
			name: "unbalanced close does not go negative",
			src:  "}\n}\na;\n",
			want: "}\n}\na;\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := compiler.Format(tt.src); got != tt.want {
				t.Errorf("Format() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatIdempotent(t *testing.T) {
	p := compile(t, "i = 0\nwhile i < 3: { if i == 1: { break } i += 1 }", compiler.Config{})
	once := compiler.Format(p.Text())
	if twice := compiler.Format(once); twice != once {
		t.Errorf("Format not idempotent:\n%s\nthen:\n%s", once, twice)
	}
}

func TestFormatProgram(t *testing.T) {
	p := compile(t, "a = 0\nfor i in range(3): { a += i }", compiler.Config{})
	want := `#include <stdio.h>

int main() {
    float a = 0;
    float i = 0;
l1: ;
    if (i >= 3) goto l3;
    a += i;
l2: ;
    i += 1;
    goto l1;
l3: ;
    return 0;
}
`
	if got := compiler.Format(p.Text()); got != want {
		t.Errorf("Format(Text()) =\n%s\nwant:\n%s", got, want)
	}
}

// formatInput builds n lines of generated-looking code with blank runs.
func formatInput(n int) string {
	var sb strings.Builder
	sb.WriteString("int main() {\n")
	for i := 0; i < n; i++ {
		switch i % 4 {
		case 0:
			sb.WriteString("l1: ;\n")
		case 1:
			sb.WriteString("\n \n\t\n")
		default:
			sb.WriteString("float t1 = a + b;\n")
		}
	}
	sb.WriteString("}\n")
	return sb.String()
}

func TestFormatLargeInput(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping large input in short mode")
	}

	const lines = 200000
	src := formatInput(lines)

	start := time.Now()
	got := compiler.Format(src)
	if elapsed := time.Since(start); elapsed > 10*time.Second {
		t.Fatalf("Format of %d lines took %v", lines, elapsed)
	}

	if strings.Contains(got, "\n\n\n") {
		t.Error("blank run not collapsed")
	}
	// Each blank run becomes one empty line, so every input row yields one
	// output line, plus the opening and closing lines of main.
	if want := lines + 2; strings.Count(got, "\n") != want {
		t.Errorf("line count = %d, want %d", strings.Count(got, "\n"), want)
	}
}

func BenchmarkFormat(b *testing.B) {
	src := formatInput(10000)
	b.SetBytes(int64(len(src)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		compiler.Format(src)
	}
}
