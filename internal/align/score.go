package align

import (
	"tokalign/internal/sequence"
	"tokalign/internal/token"
)

// Score clears prior alignment annotations on both inputs and fills the
// score and traceback tables. Ties keep every maximal direction.
func Score(a, b *sequence.Sequence, sc Scoring) *Matrix {
	a.ClearAlignment()
	b.ClearAlignment()
	n, m := a.Len(), b.Len()
	mx := newMatrix(n, m)

	for i := 1; i <= n; i++ {
		mx.Score[i][0] = float64(i) * sc.Gap
		mx.Trace[i][0] = Up
	}
	for j := 1; j <= m; j++ {
		mx.Score[0][j] = float64(j) * sc.Gap
		mx.Trace[0][j] = Left
	}

	for i := 1; i <= n; i++ {
		t1 := a.At(i - 1)
		for j := 1; j <= m; j++ {
			t2 := b.At(j - 1)
			diag := mx.Score[i-1][j-1]
			if t1.Text == t2.Text {
				diag += sc.Match
			} else {
				diag += MismatchCost(t1, t2, sc)
			}
			up := mx.Score[i-1][j] + sc.Gap
			left := mx.Score[i][j-1] + sc.Gap

			best := max(diag, up, left)
			mx.Score[i][j] = best
			var dir Direction
			if diag == best {
				dir |= Diag
			}
			if up == best {
				dir |= Up
			}
			if left == best {
				dir |= Left
			}
			mx.Trace[i][j] = dir
		}
	}
	return mx
}

// MismatchCost scores a diagonal move between two tokens with different text.
// When t1 carries an Original, the similarity is measured against it and a
// bonus is added for an exact hit.
func MismatchCost(t1, t2 *token.Token, sc Scoring) float64 {
	src := t1
	var bonus float64
	if t1.Original != nil {
		src = t1.Original
		if src.Text == t2.Text {
			bonus += sc.OriginalMatch
		}
		if src.Kind == t2.Kind {
			bonus += sc.TypeMatch
		}
	}

	maxLen := max(src.Len(), t2.Len())
	cost := sc.Mismatch
	if maxLen > 0 {
		lcs := LongestCommonSubstring(src.Text, t2.Text)
		cost += float64(lcs) / float64(maxLen) * sc.SubstringMatch
	}
	if t1.Kind == t2.Kind && maxLen > 1 {
		cost += sc.TypeMatch
	}
	return cost + bonus
}

// LongestCommonSubstring returns the length in runes of the longest common
// contiguous run of a and b.
func LongestCommonSubstring(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 || len(rb) == 0 {
		return 0
	}
	// две строки таблицы вместо полной матрицы
	prev := make([]int, len(rb)+1)
	cur := make([]int, len(rb)+1)
	best := 0
	for i := 1; i <= len(ra); i++ {
		for j := 1; j <= len(rb); j++ {
			if ra[i-1] == rb[j-1] {
				cur[j] = prev[j-1] + 1
				best = max(best, cur[j])
			} else {
				cur[j] = 0
			}
		}
		prev, cur = cur, prev
	}
	return best
}
