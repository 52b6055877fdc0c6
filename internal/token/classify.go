package token

import (
	"regexp"
	"unicode"
)

// punctuationMarks is the fixed set of marks classified as Punctuation.
var punctuationMarks = map[string]struct{}{
	".": {}, ",": {}, "!": {}, "?": {}, ":": {}, ";": {},
	"(": {}, ")": {}, "[": {}, "]": {}, "{": {}, "}": {},
	`"`: {}, "'": {}, "-": {}, "—": {}, "–": {}, "…": {},
	"„": {}, "“": {}, "”": {}, "''": {},
}

// openingMarks never take a separator after them when a sequence is flattened.
var openingMarks = map[string]struct{}{
	"(": {}, "[": {}, "{": {}, "„": {}, "“": {}, `"`: {},
}

var wordPattern = regexp.MustCompile(`^[A-Za-zĄČĘĖĮŠŲŪŽąčęėįšųūž0-9'.\-]+$`)

// Classify maps text to its Kind. The checks run in a fixed priority order,
// so "-" is Punctuation and "42" is Numeric even though both match the word pattern.
func Classify(text string) Kind {
	switch {
	case text == " ":
		return Whitespace
	case IsPunctuation(text):
		return Punctuation
	case isDigits(text):
		return Numeric
	case wordPattern.MatchString(text):
		return Word
	case text == "":
		return Spacer
	case text == "\n" || text == "\t":
		return Special
	default:
		return Generic
	}
}

// IsPunctuation reports whether text is one of the fixed punctuation marks.
func IsPunctuation(text string) bool {
	_, ok := punctuationMarks[text]
	return ok
}

// IsOpeningMark reports whether text opens a bracketed or quoted span.
func IsOpeningMark(text string) bool {
	_, ok := openingMarks[text]
	return ok
}

// IsLayout reports whether text is non-empty and made of whitespace only.
func IsLayout(text string) bool {
	if text == "" {
		return false
	}
	for _, r := range text {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

func isDigits(text string) bool {
	if text == "" {
		return false
	}
	for _, r := range text {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
