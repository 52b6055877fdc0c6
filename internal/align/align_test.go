package align_test

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"tokalign/internal/align"
	"tokalign/internal/lexer"
	"tokalign/internal/sequence"
	"tokalign/internal/testkit"
	"tokalign/internal/token"
)

func texts(s *sequence.Sequence) []string {
	out := make([]string, s.Len())
	for i, t := range s.Tokens() {
		out[i] = t.Text
	}
	return out
}

func mustAlign(t *testing.T, s1, s2 string) *align.Alignment {
	t.Helper()
	al, err := align.AlignStrings(s1, s2, align.DefaultScoring())
	if err != nil {
		t.Fatalf("AlignStrings(%q, %q): %v", s1, s2, err)
	}
	return al
}

func checkAligned(t *testing.T, al *align.Alignment) {
	t.Helper()
	if err := testkit.CheckAlignmentInvariants(al); err != nil {
		t.Fatal(err)
	}
}

func TestDefaultScoring(t *testing.T) {
	want := align.Scoring{Match: 1, Gap: -1, Mismatch: -1, SubstringMatch: 1.5, TypeMatch: 0.5, OriginalMatch: 0.5}
	if diff := cmp.Diff(want, align.DefaultScoring()); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}
	if err := want.Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	bad := []align.Scoring{
		{Match: 1, Gap: 0, Mismatch: -1},
		{Match: 1, Gap: 2, Mismatch: -1},
		{Match: math.NaN(), Gap: -1},
		{Match: 1, Gap: -1, SubstringMatch: math.Inf(1)},
	}
	for _, sc := range bad {
		if err := sc.Validate(); !errors.Is(err, align.ErrBadScoring) {
			t.Errorf("Validate(%+v) = %v, want ErrBadScoring", sc, err)
		}
	}
	if _, err := align.AlignStrings("a", "b", bad[0]); !errors.Is(err, align.ErrBadScoring) {
		t.Fatalf("Align must reject bad scoring, got %v", err)
	}
}

func TestLongestCommonSubstring(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "abc", 0},
		{"abc", "", 0},
		{"cat", "dog", 0},
		{"cat", "cats", 3},
		{"xabcy", "zabcw", 3},
		{"žąsis", "ąsa", 2},
		{"abab", "baba", 3},
	}
	for _, tt := range tests {
		if got := align.LongestCommonSubstring(tt.a, tt.b); got != tt.want {
			t.Errorf("LongestCommonSubstring(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestMismatchCost(t *testing.T) {
	sc := align.DefaultScoring()
	cat, cats, dog := token.New("cat"), token.New("cats"), token.New("dog")

	// -1 + 3/4*1.5 + 0.5
	if got := align.MismatchCost(cat, cats, sc); got != 0.625 {
		t.Fatalf("cost(cat, cats) = %v, want 0.625", got)
	}
	// -1 + 0 + 0.5
	if got := align.MismatchCost(cat, dog, sc); got != -0.5 {
		t.Fatalf("cost(cat, dog) = %v, want -0.5", got)
	}
	// single characters get no type bonus
	if got := align.MismatchCost(token.New("a"), token.New("b"), sc); got != -1 {
		t.Fatalf("cost(a, b) = %v, want -1", got)
	}
	// different kinds get no type bonus
	if got := align.MismatchCost(token.New("cat"), token.New("42"), sc); got != -1 {
		t.Fatalf("cost(cat, 42) = %v, want -1", got)
	}
}

func TestMismatchMonotoneInLCS(t *testing.T) {
	sc := align.DefaultScoring()
	base := token.New("abcdef")
	others := []string{"uvwxyz", "auvwxy", "abuvwx", "abcuvw", "abcduv", "abcdeu"}
	prev := math.Inf(-1)
	for _, o := range others {
		got := align.MismatchCost(base, token.New(o), sc)
		if got < prev {
			t.Fatalf("cost dropped from %v to %v at %q", prev, got, o)
		}
		prev = got
	}
}

func TestMismatchUsesOriginal(t *testing.T) {
	sc := align.DefaultScoring()
	masked := token.Derive("", token.New("cat"), "mask")
	// source is "cat": -1 + 1.5 (full lcs) + 0.5 original + 0.5 original kind
	if got := align.MismatchCost(masked, token.New("cat"), sc); got != 1.5 {
		t.Fatalf("cost = %v, want 1.5", got)
	}
	plain := token.NewSpacer(0)
	if got := align.MismatchCost(plain, token.New("cat"), sc); got != -1 {
		t.Fatalf("spacer without original: cost = %v, want -1", got)
	}
}

func TestScoreBaseCases(t *testing.T) {
	a := sequence.MustFromString("a b")
	b := sequence.MustFromString("a")
	mx := align.Score(a, b, align.DefaultScoring())
	if mx.Rows != 4 || mx.Cols != 2 {
		t.Fatalf("matrix shape %dx%d, want 4x2", mx.Rows, mx.Cols)
	}
	if mx.Trace[0][0] != 0 || mx.Score[0][0] != 0 {
		t.Fatal("origin must have score 0 and no direction")
	}
	for i := 1; i < mx.Rows; i++ {
		if mx.Score[i][0] != -float64(i) || mx.Trace[i][0] != align.Up {
			t.Errorf("row %d: %v %v", i, mx.Score[i][0], mx.Trace[i][0])
		}
	}
	if mx.Score[0][1] != -1 || mx.Trace[0][1] != align.Left {
		t.Errorf("column base: %v %v", mx.Score[0][1], mx.Trace[0][1])
	}
}

func TestScoreClearsAnnotations(t *testing.T) {
	a := sequence.MustFromString("cat")
	a.At(0).Aligned, a.At(0).Padding, a.At(0).Color = true, 3, token.Red
	align.Score(a, sequence.MustFromString("cat"), align.DefaultScoring())
	if a.At(0).Aligned || a.At(0).Padding != 0 || a.At(0).Color != token.ColorNone {
		t.Fatalf("annotations not cleared: %#v", a.At(0))
	}
}

func TestTiesKeepAllDirections(t *testing.T) {
	sc := align.Scoring{Match: 1, Gap: -1, Mismatch: -2}
	a, b := sequence.MustFromString("x"), sequence.MustFromString("y")
	mx := align.Score(a, b, sc)
	if got := mx.Trace[1][1]; got != align.Diag|align.Up|align.Left {
		t.Fatalf("trace = %v, want DUL", got)
	}
	// diagonal wins the tie
	outA, outB := align.Reconstruct(a, b, mx)
	if diff := cmp.Diff([]string{"x"}, texts(outA)); diff != "" {
		t.Fatalf("A mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"y"}, texts(outB)); diff != "" {
		t.Fatalf("B mismatch (-want +got):\n%s", diff)
	}
	if outA.At(0).Color != token.Red || outB.At(0).Color != token.Red {
		t.Fatal("substitution must be red")
	}
}

func TestUpBeatsLeft(t *testing.T) {
	// a gap on either side scores the same; the first sequence is consumed first
	sc := align.Scoring{Match: 1, Gap: -1, Mismatch: -5}
	al, err := align.Align(sequence.MustFromString("x"), sequence.MustFromString("y"), sc)
	if err != nil {
		t.Fatalf("Align: %v", err)
	}
	if diff := cmp.Diff([]string{"", "x"}, texts(al.A)); diff != "" {
		t.Fatalf("A mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"y", ""}, texts(al.B)); diff != "" {
		t.Fatalf("B mismatch (-want +got):\n%s", diff)
	}
	checkAligned(t, al)
}

func TestSelfAlignment(t *testing.T) {
	for _, in := range []string{"the cat sat", "Labas, pasauli!\n\tKaip sekasi?", "a"} {
		seq := sequence.MustFromString(in)
		al, err := align.Align(seq, seq, align.DefaultScoring())
		if err != nil {
			t.Fatalf("Align: %v", err)
		}
		if got, want := al.FinalScore(), float64(seq.Len()); got != want {
			t.Errorf("%q: score %v, want %v", in, got, want)
		}
		if al.A.SpacerCount() != 0 || al.B.SpacerCount() != 0 {
			t.Errorf("%q: self alignment produced gaps", in)
		}
		for k := 1; k <= seq.Len(); k++ {
			if !al.Matrix.Trace[k][k].Has(align.Diag) {
				t.Errorf("%q: cell (%d,%d) lacks diagonal", in, k, k)
			}
		}
		if st := al.Stats(); st.Matches != seq.Len() {
			t.Errorf("%q: stats %+v", in, st)
		}
	}
}

func TestTheBigCat(t *testing.T) {
	al := mustAlign(t, "the cat sat", "the big cat sat")
	checkAligned(t, al)
	if diff := cmp.Diff([]string{"the", "", "", " ", "cat", " ", "sat"}, texts(al.A)); diff != "" {
		t.Fatalf("A mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"the", " ", "big", " ", "cat", " ", "sat"}, texts(al.B)); diff != "" {
		t.Fatalf("B mismatch (-want +got):\n%s", diff)
	}
	gap := al.A.At(2)
	if !gap.IsSpacer() || gap.Padding != 3 || !gap.Aligned || gap.Color != token.Blue {
		t.Fatalf("unexpected gap opposite big: %#v pad=%d color=%v", gap, gap.Padding, gap.Color)
	}
	if al.B.At(2).Color != token.Blue || al.B.At(2).Padding != 0 {
		t.Fatalf("big must be blue without padding")
	}
	if got := al.A.Padded('='); got != "the==== cat sat" {
		t.Fatalf("Padded A = %q", got)
	}
	if got := al.B.Padded('='); got != "the big cat sat" {
		t.Fatalf("Padded B = %q", got)
	}
	if got := al.A.String(); got != "the cat sat" {
		t.Fatalf("plain A = %q", got)
	}
	want := align.Stats{Matches: 5, Insertions: 2}
	if diff := cmp.Diff(want, al.Stats()); diff != "" {
		t.Fatalf("stats mismatch (-want +got):\n%s", diff)
	}
	if al.FinalScore() != 3 {
		t.Fatalf("score = %v, want 3", al.FinalScore())
	}
}

func TestDeletionIsMagenta(t *testing.T) {
	al := mustAlign(t, "the big cat sat", "the cat sat")
	checkAligned(t, al)
	if al.B.At(2).Color != token.Magenta || al.A.At(2).Text != "big" {
		t.Fatalf("expected magenta gap opposite big, got %q/%v", al.A.At(2).Text, al.B.At(2).Color)
	}
	if st := al.Stats(); st.Deletions != 2 || st.Insertions != 0 {
		t.Fatalf("stats %+v", st)
	}
}

func TestColorColour(t *testing.T) {
	lx := lexer.New(lexer.Options{Splitter: lexer.Chars})
	al, err := align.AlignStringsWith(lx, "color", "colour", align.DefaultScoring())
	if err != nil {
		t.Fatalf("AlignStringsWith: %v", err)
	}
	checkAligned(t, al)
	if diff := cmp.Diff([]string{"c", "o", "l", "o", "", "r"}, texts(al.A)); diff != "" {
		t.Fatalf("A mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"c", "o", "l", "o", "u", "r"}, texts(al.B)); diff != "" {
		t.Fatalf("B mismatch (-want +got):\n%s", diff)
	}
	if al.FinalScore() != 4 {
		t.Fatalf("score = %v, want 5 matches and one gap", al.FinalScore())
	}
	if gap := al.A.At(4); gap.Padding != 1 || gap.Color != token.Blue {
		t.Fatalf("unexpected gap %#v", gap)
	}
}

func TestPaddingCountsRunes(t *testing.T) {
	cases := []struct {
		s1, s2 string
		col    int
		want   string // text of the token opposite the spacer
	}{
		{"a\n", "a", 1, "\n"},
		{"a\t", "a", 1, "\t"},
		{"猫", "", 0, "猫"},
	}
	for _, tc := range cases {
		al := mustAlign(t, tc.s1, tc.s2)
		checkAligned(t, al)
		tok, gap := al.A.At(tc.col), al.B.At(tc.col)
		if tok.Text != tc.want || !gap.IsSpacer() {
			t.Fatalf("%q/%q: column %d is %#v / %#v", tc.s1, tc.s2, tc.col, tok, gap)
		}
		if gap.Padding != tok.Len() {
			t.Errorf("%q/%q: spacer opposite %q has padding %d, want %d", tc.s1, tc.s2, tok.Text, gap.Padding, tok.Len())
		}
	}

	// 猫 is two cells wide but one rune long
	al := mustAlign(t, "猫 x", "ab x")
	checkAligned(t, al)
	if a, b := al.A.At(0), al.B.At(0); a.Padding != 1 || b.Padding != 0 || a.Color != token.Red {
		t.Fatalf("substitution padding %d/%d color %v, want 1/0 red", a.Padding, b.Padding, a.Color)
	}
	if got, want := al.A.Padded('='), "猫= x"; got != want {
		t.Fatalf("Padded = %q, want %q", got, want)
	}
}

func TestEqualLengths(t *testing.T) {
	cases := [][2]string{
		{"", ""},
		{"", "a b c"},
		{"a b c", ""},
		{"The quick brown fox.", "A quick brown dog, jumping!"},
		{"1 2 3 4 5", "5 4 3 2 1"},
		{"labas rytas", "labas vakaras, drauge"},
		{"\n\n", "\t"},
	}
	for _, c := range cases {
		al := mustAlign(t, c[0], c[1])
		checkAligned(t, al)
	}
}

func TestEmptyAlignment(t *testing.T) {
	al := mustAlign(t, "", "")
	if al.A.Len() != 0 || al.B.Len() != 0 || al.FinalScore() != 0 {
		t.Fatalf("unexpected result for empty inputs: %d %d %v", al.A.Len(), al.B.Len(), al.FinalScore())
	}
	al = mustAlign(t, "", "a b")
	if al.A.SpacerCount() != 3 || al.FinalScore() != -3 {
		t.Fatalf("expected three gaps, got %v score %v", texts(al.A), al.FinalScore())
	}
}

func TestInputsUntouched(t *testing.T) {
	a := sequence.MustFromString("the cat sat")
	b := sequence.MustFromString("the big cat sat")
	al, err := align.Align(a, b, align.DefaultScoring())
	if err != nil {
		t.Fatalf("Align: %v", err)
	}
	for i, tok := range a.Tokens() {
		if tok.Index != i || tok.Aligned {
			t.Fatalf("input token %q changed: index %d aligned %v", tok.Text, tok.Index, tok.Aligned)
		}
	}
	for _, out := range al.A.Tokens() {
		for _, in := range a.Tokens() {
			if out == in {
				t.Fatalf("output shares token %q with input", out.Text)
			}
		}
	}
}

func TestRealignKeepsShape(t *testing.T) {
	first := mustAlign(t, "the cat sat", "the big cat sat")
	again, err := align.Align(first.A, sequence.MustFromString("the big cat sat"), align.DefaultScoring())
	if err != nil {
		t.Fatalf("Align: %v", err)
	}
	checkAligned(t, again)
	if again.A.Len() != first.A.Len() {
		t.Fatalf("realignment changed the length: %v", texts(again.A))
	}
}

func TestTokenizationErrorSurfaces(t *testing.T) {
	bad := lexer.SplitterFunc(func(string) []string { return []string{"missing"} })
	_, err := align.AlignStringsWith(lexer.New(lexer.Options{Splitter: bad}), "a", "b", align.DefaultScoring())
	if !errors.Is(err, lexer.ErrTokenNotFound) {
		t.Fatalf("expected ErrTokenNotFound, got %v", err)
	}
}

func TestDirectionString(t *testing.T) {
	if got := (align.Diag | align.Left).String(); got != "DL" {
		t.Fatalf("String = %q", got)
	}
	if got := align.Direction(0).String(); got != "-" {
		t.Fatalf("String = %q", got)
	}
}

func TestFormatMatrix(t *testing.T) {
	lx := lexer.New(lexer.Options{Splitter: lexer.Chars})
	al, err := align.AlignStringsWith(lx, "ab", "b", align.DefaultScoring())
	if err != nil {
		t.Fatal(err)
	}
	var got [][]string
	for _, line := range strings.Split(strings.TrimSuffix(al.FormatMatrix(), "\n"), "\n") {
		got = append(got, strings.Fields(line))
	}
	want := [][]string{
		{"·", "·", `"b"`},
		{"·", "0.00", "-", "-1.00", "L"},
		{`"a"`, "-1.00", "U", "-1.00", "D"},
		{`"b"`, "-2.00", "U", "0.00", "D"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("matrix mismatch (-want +got):\n%s", diff)
	}
}
