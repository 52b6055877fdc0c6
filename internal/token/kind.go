package token

import "fmt"

// Kind represents the category of a text token.
type Kind uint8

const (
	// Generic is the fallback for text that matches no other class.
	Generic Kind = iota
	// Whitespace represents a single space character.
	Whitespace
	// Punctuation represents a mark from the fixed punctuation set.
	Punctuation
	// Word represents letters, digits, hyphens, apostrophes and periods.
	Word
	// Numeric represents a run of decimal digits.
	Numeric
	// Special represents a control character ("\n" or "\t").
	Special
	// Spacer is a zero-width placeholder inserted during alignment.
	Spacer
)

var kindNames = [...]string{
	Generic:     "Generic",
	Whitespace:  "Whitespace",
	Punctuation: "Punctuation",
	Word:        "Word",
	Numeric:     "Numeric",
	Special:     "Special",
	Spacer:      "Spacer",
}

// String returns the tag used for the kind in listings and serialized records.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// ParseKind converts a serialized tag back to a Kind.
// "Token" is accepted as an alias of Generic.
func ParseKind(s string) (Kind, bool) {
	if s == "Token" {
		return Generic, true
	}
	for k, name := range kindNames {
		if name == s {
			return Kind(k), true
		}
	}
	return Generic, false
}

// NoSeparatorBefore reports whether the spacing rule never puts a space in
// front of a token of this kind.
func (k Kind) NoSeparatorBefore() bool {
	switch k {
	case Whitespace, Punctuation, Spacer:
		return true
	default:
		return false
	}
}
