package report

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"

	"tokalign/internal/sequence"
)

var controlEscaper = strings.NewReplacer("\n", `\n`, "\t", `\t`, "\r", `\r`)

// SummaryLines describes a sequence: counts, the flat text wrapped to the
// column width, and one row per token.
func SummaryLines(seq *sequence.Sequence, opts Options) []string {
	opts = opts.normalized()
	rule := strings.Repeat("=", opts.Width)
	text := seq.String()

	lines := []string{
		rule,
		fmt.Sprintf("Text: %d (%d) tokens, %d characters",
			seq.Len(), seq.Len()-seq.SpacerCount(), utf8.RuneCountInString(text)),
		rule,
	}
	lines = append(lines, wrap(controlEscaper.Replace(text), opts.Width, opts.MaxLines)...)
	lines = append(lines, rule, "Tokens:")
	for _, tok := range seq.Tokens() {
		lines = append(lines, tok.Summary())
	}
	return append(lines, rule)
}

// wrap cuts s into chunks of at most width runes; an empty s gives one empty line.
func wrap(s string, width, maxLines int) []string {
	runes := []rune(s)
	out := make([]string, 0, len(runes)/width+1)
	for len(runes) > width && len(out) < maxLines-1 {
		out = append(out, string(runes[:width]))
		runes = runes[width:]
	}
	if len(runes) > width {
		runes = runes[:width]
	}
	return append(out, string(runes))
}

// Summary writes SummaryLines of seq to w.
func Summary(w io.Writer, seq *sequence.Sequence, opts Options) error {
	for _, line := range SummaryLines(seq, opts) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// Compare writes the summaries of a and b side by side, each column padded to
// the configured width in display cells.
func Compare(w io.Writer, a, b *sequence.Sequence, opts Options) error {
	opts = opts.normalized()
	left, right := SummaryLines(a, opts), SummaryLines(b, opts)
	for i := range max(len(left), len(right)) {
		var l, r string
		if i < len(left) {
			l = left[i]
		}
		if i < len(right) {
			r = right[i]
		}
		if _, err := fmt.Fprintf(w, "%s |  %s  |\n", fit(l, opts.Width), fit(r, opts.Width)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, strings.Repeat("=", 2*opts.Width))
	return err
}

// fit pads or truncates s to exactly width display cells.
func fit(s string, width int) string {
	if runewidth.StringWidth(s) > width {
		s = runewidth.Truncate(s, width, "…")
	}
	return runewidth.FillRight(s, width)
}
