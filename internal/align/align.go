package align

import (
	"tokalign/internal/lexer"
	"tokalign/internal/sequence"
	"tokalign/internal/token"
)

// Op classifies one aligned pair.
type Op uint8

const (
	OpMatch Op = iota
	OpSubstitute
	// OpInsert marks a token present only in the second sequence.
	OpInsert
	// OpDelete marks a token present only in the first sequence.
	OpDelete
)

func (op Op) String() string {
	switch op {
	case OpMatch:
		return "match"
	case OpSubstitute:
		return "substitute"
	case OpInsert:
		return "insert"
	case OpDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Marker returns the one-character column marker used by side-by-side output.
func (op Op) Marker() string {
	switch op {
	case OpSubstitute:
		return "~"
	case OpInsert:
		return "+"
	case OpDelete:
		return "-"
	default:
		return "="
	}
}

// Pair is one column of an alignment.
type Pair struct {
	A, B *token.Token
	Op   Op
}

// Stats counts the pairs of an alignment by operation.
type Stats struct {
	Matches       int `json:"matches"`
	Substitutions int `json:"substitutions"`
	Insertions    int `json:"insertions"`
	Deletions     int `json:"deletions"`
}

// Alignment is the result of aligning two sequences.
type Alignment struct {
	A, B   *sequence.Sequence
	Matrix *Matrix
	// Left and Right are the scored inputs; Matrix rows follow Left, columns Right.
	Left, Right *sequence.Sequence
}

// Align scores a against b and reconstructs the aligned pair.
// Prior alignment annotations on a and b are cleared.
func Align(a, b *sequence.Sequence, sc Scoring) (*Alignment, error) {
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	mx := Score(a, b, sc)
	outA, outB := Reconstruct(a, b, mx)
	return &Alignment{A: outA, B: outB, Matrix: mx, Left: a, Right: b}, nil
}

// FormatMatrix renders the score and traceback grid labelled with the input tokens.
func (al *Alignment) FormatMatrix() string {
	return al.Matrix.Format(al.Left, al.Right)
}

// AlignStrings tokenizes both strings with the default lexer and aligns them.
func AlignStrings(s1, s2 string, sc Scoring) (*Alignment, error) {
	return AlignStringsWith(lexer.New(lexer.Options{}), s1, s2, sc)
}

// AlignStringsWith tokenizes both strings with lx and aligns them.
func AlignStringsWith(lx *lexer.Lexer, s1, s2 string, sc Scoring) (*Alignment, error) {
	a, err := sequence.FromStringWith(lx, s1)
	if err != nil {
		return nil, err
	}
	b, err := sequence.FromStringWith(lx, s2)
	if err != nil {
		return nil, err
	}
	return Align(a, b, sc)
}

// FinalScore returns the score of the optimal alignment.
func (al *Alignment) FinalScore() float64 {
	return al.Matrix.Final()
}

// Pairs returns the aligned columns in order.
func (al *Alignment) Pairs() []Pair {
	out := make([]Pair, al.A.Len())
	for k := range out {
		a, b := al.A.At(k), al.B.At(k)
		p := Pair{A: a, B: b}
		switch {
		case a.Text == b.Text:
			p.Op = OpMatch
		case a.IsSpacer():
			p.Op = OpInsert
		case b.IsSpacer():
			p.Op = OpDelete
		default:
			p.Op = OpSubstitute
		}
		out[k] = p
	}
	return out
}

// Stats counts the pairs by operation.
func (al *Alignment) Stats() Stats {
	var st Stats
	for _, p := range al.Pairs() {
		switch p.Op {
		case OpMatch:
			st.Matches++
		case OpSubstitute:
			st.Substitutions++
		case OpInsert:
			st.Insertions++
		case OpDelete:
			st.Deletions++
		}
	}
	return st
}
