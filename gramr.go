package gramr

import "fmt"

// --- Tokens -----------------------------------------------------------------

// TokType is a category type for a Token. The grammar packages assign token
// types to terminals when a grammar is built; clients providing their own
// scanners may use any values they see fit.
type TokType int

// Token represents a single input token, as produced by a scanner and matched
// against a terminal of a grammar.
//
// For recognizing token sequences the lexeme and the token type are all that
// is needed; Value is a slot for scanners which pre-convert lexemes.
type Token interface {
	TokType() TokType
	Lexeme() string
	Value() interface{}
	Span() Span
}

// --- Spans ------------------------------------------------------------------

// Span is a small type for capturing a run of input tokens. It denotes a start
// position and the position just behind the end.
type Span [2]uint64 // (x…y)

// From returns the start value of a span.
func (s Span) From() uint64 {
	return s[0]
}

// To returns the end value of a span.
func (s Span) To() uint64 {
	return s[1]
}

// IsNull is true for the zero span.
func (s Span) IsNull() bool {
	return s == Span{}
}

// Extend returns the smallest span covering both s and other.
func (s Span) Extend(other Span) Span {
	if other[0] < s[0] {
		s[0] = other[0]
	}
	if other[1] > s[1] {
		s[1] = other[1]
	}
	return s
}

func (s Span) String() string {
	return fmt.Sprintf("(%d…%d)", s[0], s[1])
}
