package parser

import "github.com/lumina-lang/lumina/internal/token"

// SyntaxError is the single structured error the grammar raises on parse
// failure: it carries the failing location, the set of lexical
// forms the grammar expected, what it found instead, and the offending
// input slice for diagnostics to quote.
type SyntaxError struct {
	Location token.Location
	Expected []string
	Found    string
	Slice    string
}

func (e *SyntaxError) Error() string {
	msg := "unexpected " + e.Found
	if len(e.Expected) > 0 {
		msg += ", expected one of " + joinExpected(e.Expected)
	}
	return msg
}

func joinExpected(xs []string) string {
	out := ""
	for i, x := range xs {
		if i > 0 {
			out += ", "
		}
		out += x
	}
	return out
}
