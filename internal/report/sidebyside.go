package report

import (
	"fmt"
	"io"

	"github.com/mattn/go-runewidth"

	"tokalign/internal/align"
	"tokalign/internal/token"
)

// SideBySide writes one line per aligned column: position, operation marker
// and both cells at a fixed width.
func SideBySide(w io.Writer, al *align.Alignment, opts Options) error {
	opts = opts.normalized()
	pairs := al.Pairs()

	width := 1
	for _, p := range pairs {
		width = max(width, runewidth.StringWidth(p.A.DisplayText()))
	}
	width = min(width, opts.Width)

	for k, p := range pairs {
		left := cell(p.A, width, opts)
		right := cell(p.B, 0, opts)
		if _, err := fmt.Fprintf(w, "%4d %s %s | %s\n", k, p.Op.Marker(), left, right); err != nil {
			return err
		}
	}
	return WriteScore(w, al)
}

// WriteScore writes the final score and the per-operation counts on one line.
func WriteScore(w io.Writer, al *align.Alignment) error {
	st := al.Stats()
	_, err := fmt.Fprintf(w, "score %.2f: %d match, %d substitute, %d insert, %d delete\n",
		al.FinalScore(), st.Matches, st.Substitutions, st.Insertions, st.Deletions)
	return err
}

// cell renders a token's escaped text; width > 0 pads it to a fixed column.
func cell(t *token.Token, width int, opts Options) string {
	s := t.DisplayText()
	if t.IsSpacer() {
		s = string(opts.Filler)
	}
	if width > 0 {
		s = fit(s, width)
	}
	if opts.Color {
		s = t.Paint(s)
	}
	return s
}
