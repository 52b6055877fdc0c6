package testkit

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"tokalign/internal/align"
	"tokalign/internal/sequence"
	"tokalign/internal/token"
)

// CheckSequenceInvariants verifies the derived fields of a sequence:
// 1) Index is the dense range 0..n-1 in slice order
// 2) Start is non-decreasing
// 3) every token sits at its Start in the flat string
func CheckSequenceInvariants(seq *sequence.Sequence) error {
	if seq == nil {
		return fmt.Errorf("nil sequence")
	}
	flat := []rune(seq.String())
	prev := 0
	for i, tok := range seq.Tokens() {
		if tok == nil {
			return fmt.Errorf("nil token at %d", i)
		}
		if tok.Index != i {
			return fmt.Errorf("token %q at position %d has index %d", tok.Text, i, tok.Index)
		}
		if tok.Start < prev {
			return fmt.Errorf("token %d starts at %d before previous start %d", i, tok.Start, prev)
		}
		prev = tok.Start
		if tok.End() > len(flat) {
			return fmt.Errorf("token %d ends at %d beyond text length %d", i, tok.End(), len(flat))
		}
		if got := string(flat[tok.Start:tok.End()]); got != tok.Text {
			return fmt.Errorf("token %d is %q but text at [%d,%d) is %q", i, tok.Text, tok.Start, tok.End(), got)
		}
	}
	return nil
}

// CheckAlignmentInvariants verifies the output contract of an alignment:
// 1) both sides are valid sequences of equal length
// 2) Spacers carry no text and pad to the rune length of their counterpart
// 3) every annotated column holds the same number of runes on both sides
func CheckAlignmentInvariants(al *align.Alignment) error {
	if al == nil {
		return fmt.Errorf("nil alignment")
	}
	if err := CheckSequenceInvariants(al.A); err != nil {
		return fmt.Errorf("first sequence: %w", err)
	}
	if err := CheckSequenceInvariants(al.B); err != nil {
		return fmt.Errorf("second sequence: %w", err)
	}
	if al.A.Len() != al.B.Len() {
		return fmt.Errorf("aligned lengths differ: %d vs %d", al.A.Len(), al.B.Len())
	}
	for k := range al.A.Len() {
		a, b := al.A.At(k), al.B.At(k)
		for _, c := range [...][2]*token.Token{{a, b}, {b, a}} {
			sp, other := c[0], c[1]
			if !sp.IsSpacer() {
				continue
			}
			if sp.Text != "" {
				return fmt.Errorf("column %d: spacer with text %q", k, sp.Text)
			}
			if sp.Padding != other.Len() {
				return fmt.Errorf("column %d: spacer opposite %q has padding %d, want %d", k, other.Text, sp.Padding, other.Len())
			}
		}
		if !a.Aligned && !b.Aligned {
			continue
		}
		if na, nb := a.Len()+a.Padding, b.Len()+b.Padding; na != nb {
			return fmt.Errorf("column %d: cells %q and %q pad to %d and %d runes", k, a.Text, b.Text, na, nb)
		}
	}
	return nil
}

// SameWidth reports whether the padded renderings of both sides have the
// same number of runes.
func SameWidth(al *align.Alignment, filler rune) bool {
	return utf8.RuneCountInString(al.A.Padded(filler)) == utf8.RuneCountInString(al.B.Padded(filler))
}

// Texts returns the token texts of seq joined by "|", handy in failure messages.
func Texts(seq *sequence.Sequence) string {
	parts := make([]string, seq.Len())
	for i, tok := range seq.Tokens() {
		parts[i] = tok.Text
	}
	return strings.Join(parts, "|")
}
