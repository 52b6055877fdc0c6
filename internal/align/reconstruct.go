package align

import (
	"slices"

	"tokalign/internal/sequence"
	"tokalign/internal/token"
)

// Reconstruct walks the traceback from the bottom-right cell and returns two
// sequences of equal length. At every cell the first applicable move wins:
// Diag when both sequences still have tokens, then Up, then Left.
// Output tokens are clones, the inputs are left untouched.
func Reconstruct(a, b *sequence.Sequence, mx *Matrix) (*sequence.Sequence, *sequence.Sequence) {
	i, j := a.Len(), b.Len()
	outA := make([]*token.Token, 0, max(i, j))
	outB := make([]*token.Token, 0, max(i, j))

walk:
	for {
		tr := mx.Trace[i][j]
		switch {
		case tr.Has(Diag) && i > 0 && j > 0:
			outA = append(outA, a.At(i-1).Clone())
			outB = append(outB, b.At(j-1).Clone())
			i--
			j--
		case tr.Has(Up) && i > 0:
			t1 := a.At(i - 1).Clone()
			outA = append(outA, t1)
			outB = append(outB, gapFor(b, j, t1))
			i--
		case tr.Has(Left) && j > 0:
			t2 := b.At(j - 1).Clone()
			outA = append(outA, gapFor(a, i, t2))
			outB = append(outB, t2)
			j--
		default:
			break walk
		}
	}

	slices.Reverse(outA)
	slices.Reverse(outB)
	annotate(outA, outB)
	return sequence.New(outA...), sequence.New(outB...)
}

// gapFor returns the placeholder set against consumed. A Spacer already sitting
// at the gapped position of other is reused, otherwise a fresh one is made.
// Either way the placeholder pads to the rune length of consumed.
func gapFor(other *sequence.Sequence, k int, consumed *token.Token) *token.Token {
	if other.Len() > 0 {
		cand := other.At(max(k-1, 0))
		if cand.IsSpacer() {
			sp := cand.Clone()
			sp.Padding = consumed.Len()
			return sp
		}
	}
	return token.NewSpacer(consumed.Len())
}

// annotate pads every differing pair to a common rune length and colours it by role.
func annotate(outA, outB []*token.Token) {
	for k, w1 := range outA {
		w2 := outB[k]
		if w1.Text == w2.Text {
			continue
		}
		n := max(w1.Len(), w2.Len())
		w1.Padding = n - w1.Len()
		w2.Padding = n - w2.Len()
		w1.Aligned = true
		w2.Aligned = true

		c := token.Red
		switch {
		case w1.IsSpacer():
			c = token.Blue
		case w2.IsSpacer():
			c = token.Magenta
		}
		w1.Color = c
		w2.Color = c
	}
}
