package token

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
)

// DefaultFiller is appended to padded tokens when no other filler is given.
const DefaultFiller = '='

// Token represents a single unit of text with its position and diff annotations.
type Token struct {
	Kind Kind
	Text string

	// Index and Start are owned by the containing sequence and recomputed on every mutation.
	Index int
	Start int // offset in runes within the flattened sequence

	Aligned    bool
	Padding    int // filler runes appended when rendering
	Color      Color
	Background Background
	Format     Format

	// Original is a frozen copy of the token this one was derived from.
	// Only the scorer reads it.
	Original  *Token
	Operation string
}

// New creates a token and classifies its text.
func New(text string) *Token {
	return &Token{Kind: Classify(text), Text: text}
}

// NewSpacer creates an aligned gap placeholder padded with n filler runes.
func NewSpacer(n int) *Token {
	return &Token{Kind: Spacer, Aligned: true, Padding: max(n, 0)}
}

// Derive creates a token for text whose Original is a snapshot of prior.
// The snapshot keeps prior's own history but none of its alignment annotations.
func Derive(text string, prior *Token, operation string) *Token {
	t := New(text)
	t.Operation = operation
	if prior != nil {
		t.Original = prior.Snapshot()
	}
	return t
}

// Snapshot returns a detached copy suitable for use as an Original.
func (t *Token) Snapshot() *Token {
	if t == nil {
		return nil
	}
	cp := *t
	cp.ClearAlignment()
	cp.Color = ColorNone
	cp.Background = BackgroundNone
	cp.Format = 0
	return &cp
}

// Clone returns a copy of t. Original snapshots are shared since they are never written.
func (t *Token) Clone() *Token {
	if t == nil {
		return nil
	}
	cp := *t
	return &cp
}

// Len returns the number of runes in Text.
func (t *Token) Len() int { return utf8.RuneCountInString(t.Text) }

// Width returns the number of terminal cells Text occupies.
func (t *Token) Width() int { return runewidth.StringWidth(t.Text) }

// End returns the exclusive end offset of the token.
func (t *Token) End() int { return t.Start + t.Len() }

// Equal compares tokens by text only.
func (t *Token) Equal(other *Token) bool {
	if t == nil || other == nil {
		return t == other
	}
	return t.Text == other.Text
}

// IsSpacer reports whether the token is a gap placeholder.
func (t *Token) IsSpacer() bool { return t.Kind == Spacer }

// IsLayout reports whether the token holds whitespace only.
func (t *Token) IsLayout() bool { return IsLayout(t.Text) }

// ClearAlignment resets the annotations written by the aligner.
func (t *Token) ClearAlignment() {
	t.Aligned = false
	t.Padding = 0
	t.Color = ColorNone
}

// Tagged reports whether the token carries any display tag.
func (t *Token) Tagged() bool {
	return t.Color != ColorNone || t.Background != BackgroundNone || t.Format != 0
}

// PaddedText returns Text followed by Padding filler runes when the token is aligned.
func (t *Token) PaddedText(filler rune) string {
	if !t.Aligned || t.Padding <= 0 {
		return t.Text
	}
	return t.Text + strings.Repeat(string(filler), t.Padding)
}

// Annotated returns the padded text wrapped in the ANSI sequences of its tags.
func (t *Token) Annotated(filler rune) string {
	return t.Paint(t.PaddedText(filler))
}

// Paint wraps s in the ANSI sequences of the token's tags; s is returned as is
// when the token has none.
func (t *Token) Paint(s string) string {
	if !t.Tagged() {
		return s
	}
	c := color.New(t.attrs()...)
	c.EnableColor()
	return c.Sprint(s)
}

func (t *Token) attrs() []color.Attribute {
	attrs := make([]color.Attribute, 0, 4)
	if t.Color != ColorNone && int(t.Color) < len(colorAttrs) {
		attrs = append(attrs, colorAttrs[t.Color])
	}
	if t.Background != BackgroundNone && int(t.Background) < len(backgroundAttrs) {
		attrs = append(attrs, backgroundAttrs[t.Background])
	}
	return append(attrs, t.Format.attrs()...)
}

// DisplayText returns Text with control characters escaped.
func (t *Token) DisplayText() string {
	for _, r := range t.Text {
		if r < 0x20 || r == 0x7f {
			q := strconv.Quote(t.Text)
			return q[1 : len(q)-1]
		}
	}
	return t.Text
}

// Summary returns a one-line description used by debug listings.
func (t *Token) Summary() string {
	orig := ""
	if t.Original != nil {
		orig = t.Original.DisplayText()
	}
	return fmt.Sprintf("%3d: [%d, %-10s], l=[%2d]  |  %-12s  |  %-15s | %-9s",
		t.Index, t.Start, strconv.Itoa(t.End()), t.Len(), t.Kind, t.DisplayText(), orig)
}

// String returns the raw text.
func (t *Token) String() string { return t.Text }

// GoString is used by %#v in test failures.
func (t *Token) GoString() string {
	return fmt.Sprintf("%s@[%d]: %q", t.Kind, t.Index, t.Text)
}
