/*
Package scanner defines an interface for scanners to be used with the parsers
of packages slr and ll, plus a default implementation feeding a pre-split
sequence of grammar-symbol names to a parser. An adapter for lexmachine-backed
scanning lives in sub-package lexmach.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package scanner

import (
	"fmt"
	"strings"
	"text/scanner"

	"github.com/npillmayer/gramr"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'gramr.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("gramr.scanner")
}

// EOF is identical to text/scanner.EOF. Scanners append it to the input; it
// is never part of a client-provided token sequence.
const EOF = gramr.TokType(scanner.EOF)

// Invalid is the token type produced for lexemes which are not terminals of
// the grammar. No parse table has entries for it, so parsers will reject.
const Invalid = gramr.TokType(-3)

// Tokenizer is a scanner interface.
type Tokenizer interface {
	NextToken() gramr.Token
	SetErrorHandler(func(error))
}

// Default error reporting function for scanners.
func logError(e error) {
	tracer().Errorf("scanner error: " + e.Error())
}

// SymbolScanner is a Tokenizer over a pre-split sequence of terminal names.
// After the sequence is exhausted it keeps producing EOF tokens.
// Create one with Symbols or Fields.
type SymbolScanner struct {
	types map[string]gramr.TokType // terminal name -> token value
	toks  []string
	pos   int
	Error func(error) // error handler
}

var _ Tokenizer = (*SymbolScanner)(nil)

// Symbols creates a scanner for a sequence of terminal names. The types
// mapping is usually Grammar.TokenTypes().
func Symbols(types map[string]gramr.TokType, toks []string) *SymbolScanner {
	return &SymbolScanner{
		types: types,
		toks:  toks,
		Error: logError,
	}
}

// Fields creates a scanner for a whitespace-separated string of terminal
// names.
func Fields(types map[string]gramr.TokType, input string) *SymbolScanner {
	return Symbols(types, strings.Fields(input))
}

// SetErrorHandler sets an error handler for the scanner.
func (s *SymbolScanner) SetErrorHandler(h func(error)) {
	if h == nil {
		s.Error = logError
		return
	}
	s.Error = h
}

// NextToken is part of the Tokenizer interface. Lexemes which are not
// terminals of the grammar are handed to the error handler and produce
// Invalid tokens.
func (s *SymbolScanner) NextToken() gramr.Token {
	if s.pos >= len(s.toks) {
		tracer().Debugf("SymbolScanner reached end of input")
		return MakeDefaultToken(EOF, "", gramr.Span{uint64(s.pos), uint64(s.pos)})
	}
	lexeme := s.toks[s.pos]
	span := gramr.Span{uint64(s.pos), uint64(s.pos + 1)}
	s.pos++
	tt, ok := s.types[lexeme]
	if !ok {
		s.Error(fmt.Errorf("input symbol %q is not a terminal of the grammar", lexeme))
		tt = Invalid
	}
	return MakeDefaultToken(tt, lexeme, span)
}

// --- Default tokens ---------------------------------------------------------

// DefaultToken is a very unsophisticated token type, used by the symbol
// scanner as well as the lexmachine adapter.
type DefaultToken struct {
	kind   gramr.TokType
	lexeme string
	Val    interface{}
	span   gramr.Span
}

// MakeDefaultToken wraps a token type and a lexeme into a token.
func MakeDefaultToken(typ gramr.TokType, lexeme string, span gramr.Span) DefaultToken {
	return DefaultToken{
		kind:   typ,
		lexeme: lexeme,
		span:   span,
	}
}

func (t DefaultToken) TokType() gramr.TokType {
	return t.kind
}

func (t DefaultToken) Value() interface{} {
	return t.Val
}

func (t DefaultToken) Lexeme() string {
	return t.lexeme
}

func (t DefaultToken) Span() gramr.Span {
	return t.span
}
