package report

import (
	"strings"

	"znkr.io/diff/textdiff"

	"tokalign/internal/sequence"
)

// Unified returns a line-level unified diff of the plain renderings of a and b.
// The result is empty when both render to the same text.
func Unified(a, b *sequence.Sequence) string {
	x, y := withNewline(a.String()), withNewline(b.String())
	if x == y {
		return ""
	}
	return textdiff.Unified(x, y, textdiff.IndentHeuristic())
}

func withNewline(s string) string {
	if s == "" || strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}
