package sequence

import (
	"strings"

	"tokalign/internal/token"
)

// needsSeparator applies the spacing rule; prev is the nearest preceding non-Spacer token.
func needsSeparator(prev, t *token.Token) bool {
	switch {
	case prev == nil:
		return false
	case t.Kind.NoSeparatorBefore():
		return false
	case t.IsLayout() || prev.IsLayout():
		return false
	case token.IsOpeningMark(prev.Text):
		return false
	default:
		return true
	}
}

// Reindex recomputes Index and Start of every token and drops the cached string.
func (s *Sequence) Reindex() {
	pos := 0
	var prev *token.Token
	for i, t := range s.tokens {
		t.Index = i
		if needsSeparator(prev, t) {
			pos++
		}
		t.Start = pos
		pos += t.Len()
		if !t.IsSpacer() {
			prev = t
		}
	}
	s.text = ""
	s.cached = false
}

// String flattens the sequence with the spacing rule. The result is cached.
func (s *Sequence) String() string {
	if s.cached {
		return s.text
	}
	var sb strings.Builder
	var prev *token.Token
	for _, t := range s.tokens {
		if needsSeparator(prev, t) {
			sb.WriteByte(' ')
		}
		sb.WriteString(t.Text)
		if !t.IsSpacer() {
			prev = t
		}
	}
	s.text = sb.String()
	s.cached = true
	return s.text
}

// Padded concatenates the padded cell of every token. Two aligned sequences
// render to the same display width token for token.
func (s *Sequence) Padded(filler rune) string {
	var sb strings.Builder
	for _, t := range s.tokens {
		sb.WriteString(t.PaddedText(filler))
	}
	return sb.String()
}

// Annotated is Padded with the colour and format tags of every token applied.
func (s *Sequence) Annotated(filler rune) string {
	var sb strings.Builder
	for _, t := range s.tokens {
		sb.WriteString(t.Annotated(filler))
	}
	return sb.String()
}
