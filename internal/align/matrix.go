package align

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"tokalign/internal/sequence"
	"tokalign/internal/token"
)

// Direction is the set of recurrence branches that reached a cell's score.
type Direction uint8

const (
	// Diag consumes one token from each sequence.
	Diag Direction = 1 << iota
	// Up consumes a token of the first sequence against a gap.
	Up
	// Left consumes a token of the second sequence against a gap.
	Left
)

// Has reports whether every bit of d2 is set in d.
func (d Direction) Has(d2 Direction) bool { return d&d2 == d2 && d2 != 0 }

func (d Direction) String() string {
	if d == 0 {
		return "-"
	}
	var sb strings.Builder
	if d.Has(Diag) {
		sb.WriteByte('D')
	}
	if d.Has(Up) {
		sb.WriteByte('U')
	}
	if d.Has(Left) {
		sb.WriteByte('L')
	}
	return sb.String()
}

// Matrix holds the (n+1)×(m+1) score and traceback tables of one alignment.
type Matrix struct {
	Rows, Cols int
	Score      [][]float64
	Trace      [][]Direction
}

func newMatrix(n, m int) *Matrix {
	mx := &Matrix{
		Rows:  n + 1,
		Cols:  m + 1,
		Score: make([][]float64, n+1),
		Trace: make([][]Direction, n+1),
	}
	// одна аллокация на таблицу
	scores := make([]float64, (n+1)*(m+1))
	trace := make([]Direction, (n+1)*(m+1))
	for i := range n + 1 {
		mx.Score[i] = scores[i*(m+1) : (i+1)*(m+1)]
		mx.Trace[i] = trace[i*(m+1) : (i+1)*(m+1)]
	}
	return mx
}

// Final returns the score of the bottom-right cell.
func (mx *Matrix) Final() float64 {
	return mx.Score[mx.Rows-1][mx.Cols-1]
}

const matrixCell = 10

// Format renders the score and traceback tables as one grid: a row per token
// of a, a column per token of b, both led by the empty prefix. Each cell holds
// the score and the directions that reached it.
func (mx *Matrix) Format(a, b *sequence.Sequence) string {
	var sb strings.Builder
	sb.WriteString(matrixLabel(nil))
	for j := range mx.Cols {
		sb.WriteByte(' ')
		sb.WriteString(matrixLabel(tokenAt(b, j-1)))
	}
	sb.WriteByte('\n')
	for i := range mx.Rows {
		sb.WriteString(matrixLabel(tokenAt(a, i-1)))
		for j := range mx.Cols {
			fmt.Fprintf(&sb, " %6.2f %-3s", mx.Score[i][j], mx.Trace[i][j])
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func tokenAt(s *sequence.Sequence, i int) *token.Token {
	if s == nil || i < 0 || i >= s.Len() {
		return nil
	}
	return s.At(i)
}

// matrixLabel quotes the token text so that whitespace stays visible.
func matrixLabel(t *token.Token) string {
	label := "·"
	if t != nil {
		label = strconv.Quote(t.Text)
	}
	return runewidth.FillRight(runewidth.Truncate(label, matrixCell, "…"), matrixCell)
}
