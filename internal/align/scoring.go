package align

import (
	"errors"
	"fmt"
	"math"
)

// ErrBadScoring is returned by Validate for unusable scoring constants.
var ErrBadScoring = errors.New("align: invalid scoring")

// Scoring holds the constants of the alignment recurrence.
type Scoring struct {
	Match          float64 `toml:"match" json:"match"`
	Gap            float64 `toml:"gap" json:"gap"`
	Mismatch       float64 `toml:"mismatch" json:"mismatch"`
	SubstringMatch float64 `toml:"substring_match" json:"substring_match"`
	TypeMatch      float64 `toml:"type_match" json:"type_match"`
	OriginalMatch  float64 `toml:"original_match" json:"original_match"`
}

// DefaultScoring returns the stock constants.
func DefaultScoring() Scoring {
	return Scoring{
		Match:          1,
		Gap:            -1,
		Mismatch:       -1,
		SubstringMatch: 1.5,
		TypeMatch:      0.5,
		OriginalMatch:  0.5,
	}
}

// Validate rejects non-finite constants and a gap that does not penalize.
func (sc Scoring) Validate() error {
	fields := []struct {
		name string
		v    float64
	}{
		{"match", sc.Match},
		{"gap", sc.Gap},
		{"mismatch", sc.Mismatch},
		{"substring_match", sc.SubstringMatch},
		{"type_match", sc.TypeMatch},
		{"original_match", sc.OriginalMatch},
	}
	for _, f := range fields {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return fmt.Errorf("%w: %s is %v", ErrBadScoring, f.name, f.v)
		}
	}
	if sc.Gap >= 0 {
		return fmt.Errorf("%w: gap must be negative, got %v", ErrBadScoring, sc.Gap)
	}
	return nil
}
