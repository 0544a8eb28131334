/*
Package slr provides an SLR(1)-recognizer. Clients have to use the tools
of package lr to prepare the necessary parse tables. The SLR parser
utilizes these tables to recognize a given input, provided through a
scanner interface.

This parser is intended for small to moderate grammars, e.g. for
configuration input or small domain-specific languages. The main focus of
this implementation is adaptability and on-the-fly usage: clients construct
the parse tables from a grammar and use the parser directly, without a
code-generation or compile step. If you want, you can create a grammar from
user input and use a parser for it in a couple of lines of code.

Package slr can only handle SLR(1) grammars: table construction (package lr)
refuses grammars with conflicts, rather than resolving them.

Usage

Clients construct a grammar, usually by using a grammar builder:

	b := lr.NewGrammarBuilder("Expressions")
	b.Production("E", "E + T")
	b.Production("E", "T")
	b.Production("T", "id")
	g, err := b.Grammar()

This grammar is subjected to grammar analysis and table generation.

	ga := lr.Analysis(g)
	lrgen := lr.NewTableGenerator(ga)
	if err := lrgen.CreateTables(); err != nil { ... }  // not SLR(1)

Finally parse some input:

	p := slr.NewParser(g, lrgen.GotoTable(), lrgen.ActionTable())
	accepted, err := p.ParseStrings(lrgen.CFSM().S0, []string{"id", "+", "id"})

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package slr

import (
	"fmt"

	"github.com/npillmayer/gramr"
	"github.com/npillmayer/schuko/tracing"

	"github.com/npillmayer/gramr/lr"
	"github.com/npillmayer/gramr/lr/scanner"
)

// tracer traces with key 'gramr.lr'.
func tracer() tracing.Trace {
	return tracing.Select("gramr.lr")
}

// Parser is an SLR(1)-parser type. Create and initialize one with
// slr.NewParser(...)
type Parser struct {
	G       *lr.Grammar
	stack   []stackitem // parser stack
	gotoT   *lr.Table   // GOTO table
	actionT *lr.Table   // ACTION table
}

// We store pairs of state-IDs and symbol-IDs on the parse stack.
type stackitem struct {
	stateID uint       // ID of a CFSM state
	symID   int        // ID of a grammar symbol (terminal or non-terminal)
	span    gramr.Span // input span over which this symbol reaches
}

// NewParser creates an SLR(1) parser.
func NewParser(g *lr.Grammar, gotoTable *lr.Table, actionTable *lr.Table) *Parser {
	parser := &Parser{
		G:       g,
		stack:   make([]stackitem, 0, 512),
		gotoT:   gotoTable,
		actionT: actionTable,
	}
	return parser
}

// Parse starts a new parse, given a start state and a scanner tokenizing the
// input. The parser must have been initialized with non-nil tables.
//
// The parser returns true if the input string has been accepted. A missing
// ACTION-table entry is a rejection verdict, not an error; errors signal
// misuse or an inconsistency in the parse tables.
func (p *Parser) Parse(S *lr.CFSMState, scan scanner.Tokenizer) (bool, error) {
	tracer().Debugf("~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~")
	if p.G == nil || p.gotoT == nil || p.actionT == nil {
		tracer().Errorf("SLR(1)-parser not initialized")
		return false, fmt.Errorf("SLR(1)-parser not initialized")
	}
	p.stack = p.stack[:0]
	p.stack = append(p.stack, stackitem{S.ID, 0, gramr.Span{0, 0}}) // push S
	token := scan.NextToken()
	tokval := token.TokType()
	for {
		tracer().Debugf("got token %q/%d from scanner", token.Lexeme(), tokval)
		state := p.stack[len(p.stack)-1] // TOS
		action := p.actionT.Value(state.stateID, tokval)
		tracer().Debugf("action(%d,%d)=%s", state.stateID, tokval, valstring(action, p.actionT))
		if action == p.actionT.NullValue() {
			tracer().Infof("no action for (%d,%v), rejecting", state.stateID, token.Lexeme())
			return false, nil // no applicable action: reject
		}
		if action == lr.AcceptAction {
			return true, nil
		}
		if action == lr.ShiftAction {
			nextstate := p.gotoT.Value(state.stateID, tokval)
			if nextstate == p.gotoT.NullValue() {
				return false, fmt.Errorf("shift entry without transition at state %d", state.stateID)
			}
			tracer().Debugf("shifting, next state = %d", nextstate)
			p.stack = append(p.stack, // push a terminal state onto stack
				stackitem{uint(nextstate), int(tokval), token.Span()})
			token = scan.NextToken()
			tokval = token.TokType()
		} else { // reduce action
			rule := p.G.Rule(int(action))
			nextstate, handlespan, err := p.reduce(rule)
			if err != nil {
				return false, err
			}
			if handlespan.IsNull() { // resulted from an epsilon production
				pos := token.Span().From()
				handlespan = gramr.Span{pos, pos} // epsilon was just before lookahead
			}
			tracer().Debugf("reduced to next state = %d", nextstate)
			p.stack = append(p.stack, // push a non-terminal state onto stack
				stackitem{nextstate, rule.LHS.Value, handlespan})
		}
	}
}

// ParseStrings recognizes a sequence of terminal names, e.g.
//
//     accepted, err := p.ParseStrings(S0, []string{"id", "+", "id"})
//
// The end-of-input marker must not be part of the sequence; the scanner
// appends it.
func (p *Parser) ParseStrings(S *lr.CFSMState, toks []string) (bool, error) {
	if p.G == nil {
		return false, fmt.Errorf("SLR(1)-parser not initialized")
	}
	scan := scanner.Symbols(p.G.TokenTypes(), toks)
	return p.Parse(S, scan)
}

// reduce performs a reduce action for a rule
//
//    LHS --> X1 ... Xn   (with X being terminals or non-terminals)
//
// Symbols X1 to Xn are represented on the stack as states
//
//    [TOS]  Sn(Xn, span_n) ... S1(X1, span1)  ...
//
// An epsilon-production pops nothing. The state to push is found in the GOTO
// table; a missing entry there is an inconsistency introduced during table
// construction, not a parse-time condition.
func (p *Parser) reduce(rule *lr.Rule) (uint, gramr.Span, error) {
	tracer().Infof("reduce %v", rule)
	var handlespan gramr.Span
	handle := reverse(rule.RHS())
	for _, sym := range handle {
		tos := p.stack[len(p.stack)-1]
		if tos.symID != sym.Value {
			tracer().Errorf("expected %v on top of stack, got %d", sym, tos.symID)
		}
		handlespan = handlespan.Extend(tos.span)
		p.stack = p.stack[:len(p.stack)-1] // pop TOS
	}
	state := p.stack[len(p.stack)-1] // TOS
	nextstate := p.gotoT.Value(state.stateID, rule.LHS.TokenType())
	if nextstate == p.gotoT.NullValue() {
		return 0, handlespan, fmt.Errorf("no GOTO entry for (%d,%v)", state.stateID, rule.LHS)
	}
	return uint(nextstate), handlespan, nil
}

// --- Helpers ----------------------------------------------------------------

// reverse the symbols of a RHS of a rule (i.e., a handle)
func reverse(syms []*lr.Symbol) []*lr.Symbol {
	r := append([]*lr.Symbol(nil), syms...) // make copy first
	for i := len(syms)/2 - 1; i >= 0; i-- {
		opp := len(syms) - 1 - i
		r[i], r[opp] = r[opp], r[i]
	}
	return r
}

// valstring is a short helper to stringify an action table entry.
func valstring(v int32, m *lr.Table) string {
	if v == m.NullValue() {
		return "<none>"
	} else if v == lr.AcceptAction {
		return "<accept>"
	} else if v == lr.ShiftAction {
		return "<shift>"
	}
	return fmt.Sprintf("<reduce %d>", v)
}
