package compiler

import (
	"strings"

	"github.com/0xoc/P2C/internal/pattern"
)

var labelLine = pattern.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*:`)

// indentUnit is one level of indentation in formatted output.
const indentUnit = "    "

// Format normalizes generated C text. Runs of blank lines collapse to one
// and every line is re-indented by brace depth, with labels one level left
// of the code around them. Only whitespace changes.
func Format(src string) string {
	lines := strings.Split(src, "\n")
	out := make([]string, 0, len(lines))
	depth := 0
	blank := false

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			if !blank {
				out = append(out, "")
			}
			blank = true
			continue
		}
		blank = false

		level := depth
		if strings.HasPrefix(trimmed, "}") || labelLine.MatchString(trimmed) {
			level--
		}
		out = append(out, strings.Repeat(indentUnit, max(level, 0))+trimmed)

		depth += strings.Count(trimmed, "{") - strings.Count(trimmed, "}")
		depth = max(depth, 0)
	}

	return strings.Join(out, "\n")
}
