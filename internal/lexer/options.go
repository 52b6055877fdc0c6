package lexer

// Options configure a Lexer.
type Options struct {
	// Splitter produces the non-whitespace units; nil means Words.
	Splitter Splitter
	// NormalizeNFC composes the input into NFC before splitting.
	NormalizeNFC bool
}

func (o Options) splitter() Splitter {
	if o.Splitter == nil {
		return Words
	}
	return o.Splitter
}
