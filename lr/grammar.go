package lr

import (
	"bytes"
	"fmt"
	"strings"
	"unicode"

	"github.com/npillmayer/gramr"
)

// Token values of reserved symbols and the value range of non-terminals.
// Terminals of textual grammars get auto-assigned values starting at
// TerminalTypeBase; non-terminal values count down from NonTermType.
const (
	EpsilonType      = 0     // epsilon pseudo-terminal, occurs in FIRST sets only
	EOFType          = -1    // end-of-input marker, identical to text/scanner.EOF
	NonTermType      = -1000 // non-terminal values are below this
	TerminalTypeBase = 256   // above the range of single-rune token values
)

// Reserved literals of the textual rule notation.
const (
	EpsilonLiteral = "e"
	epsilonGlyph   = "ε"
)

// --- Symbols ----------------------------------------------------------------

// Symbol is a symbol of a grammar: either a terminal or a non-terminal.
// Symbols are classified exactly once, when they are first registered with a
// grammar builder. The classification is frozen in the token value: terminals
// carry values above NonTermType, non-terminals values below it.
type Symbol struct {
	Name  string // printable name of this symbol
	Value int    // token value of a terminal, ID of a non-terminal
}

// IsTerminal is true for terminals, including the end-of-input marker.
func (lrsym *Symbol) IsTerminal() bool {
	return lrsym.Value > NonTermType
}

// TokenType returns the token value of a symbol.
func (lrsym *Symbol) TokenType() gramr.TokType {
	return gramr.TokType(lrsym.Value)
}

func (lrsym *Symbol) String() string {
	return lrsym.Name
}

// --- Rules ------------------------------------------------------------------

// Rule is a grammar production. The right-hand side of an epsilon-production
// is empty.
type Rule struct {
	Serial int     // rule number, in order of addition; 0 = augmented start rule
	LHS    *Symbol // left-hand side, a non-terminal
	rhs    []*Symbol
}

func newRule(serial int, lhs *Symbol, rhs []*Symbol) *Rule {
	return &Rule{Serial: serial, LHS: lhs, rhs: rhs}
}

// RHS returns the right-hand side of a rule. Callers must not modify the
// returned slice.
func (r *Rule) RHS() []*Symbol {
	return r.rhs
}

// IsEpsilon is true for epsilon-productions, i.e. productions with an empty RHS.
func (r *Rule) IsEpsilon() bool {
	return len(r.rhs) == 0
}

func (r *Rule) String() string {
	return fmt.Sprintf("%d: %s ::= %s", r.Serial, r.LHS.Name, rhsString(r.rhs))
}

func rhsString(rhs []*Symbol) string {
	var b bytes.Buffer
	b.WriteString("[")
	for i, sym := range rhs {
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString(sym.Name)
	}
	b.WriteString("]")
	return b.String()
}

// eqRHS compares two right-hand sides symbol by symbol.
func eqRHS(rhs1, rhs2 []*Symbol) bool {
	if len(rhs1) != len(rhs2) {
		return false
	}
	for i, sym := range rhs1 {
		if rhs2[i] != sym {
			return false
		}
	}
	return true
}

// --- Grammar ----------------------------------------------------------------

// Grammar is an immutable grammar, built by a GrammarBuilder. rules[0] is
// always the augmented start rule S' ::= S.
type Grammar struct {
	Name         string  // a grammar has a name, for documentation only
	EOF          *Symbol // end-of-input pseudo-terminal, never part of a RHS
	rules        []*Rule
	terminals    []*Symbol // in order of first registration
	nonterminals []*Symbol // in order of first registration
	symbols      map[string]*Symbol
	firstError   error // first error encountered while building
}

// Size returns the number of rules, including the augmented start rule.
func (g *Grammar) Size() int {
	return len(g.rules)
}

// Rule returns a grammar rule by its serial number, or nil.
func (g *Grammar) Rule(no int) *Rule {
	if no < 0 || no >= len(g.rules) {
		return nil
	}
	return g.rules[no]
}

// Start returns the start symbol of the original, un-augmented grammar, i.e.
// the RHS of rule 0.
func (g *Grammar) Start() *Symbol {
	return g.rules[0].rhs[0]
}

// SymbolByName returns a grammar symbol with a given name, if any.
func (g *Grammar) SymbolByName(name string) *Symbol {
	return g.symbols[name]
}

// TokenTypes returns a mapping from terminal names to their token values.
// Scanners use it to classify input lexemes.
func (g *Grammar) TokenTypes() map[string]gramr.TokType {
	t := make(map[string]gramr.TokType, len(g.terminals))
	for _, sym := range g.terminals {
		t[sym.Name] = sym.TokenType()
	}
	return t
}

// EachNonTerminal iterates over all non-terminals, in registration order, and
// collects the mapper results.
func (g *Grammar) EachNonTerminal(mapper func(A *Symbol) interface{}) []interface{} {
	r := make([]interface{}, 0, len(g.nonterminals))
	for _, A := range g.nonterminals {
		r = append(r, mapper(A))
	}
	return r
}

// EachTerminal iterates over all terminals, in registration order, and
// collects the mapper results. The end-of-input marker is not included.
func (g *Grammar) EachTerminal(mapper func(t *Symbol) interface{}) []interface{} {
	r := make([]interface{}, 0, len(g.terminals))
	for _, t := range g.terminals {
		r = append(r, mapper(t))
	}
	return r
}

// EachSymbol iterates over all symbols of the grammar, terminals first.
// Iteration order is deterministic for an unchanged grammar, which keeps
// CFSM state numbering reproducible.
func (g *Grammar) EachSymbol(mapper func(A *Symbol) interface{}) []interface{} {
	r := make([]interface{}, 0, len(g.terminals)+len(g.nonterminals))
	for _, t := range g.terminals {
		r = append(r, mapper(t))
	}
	for _, A := range g.nonterminals {
		r = append(r, mapper(A))
	}
	return r
}

// rulesFor returns all rules with a given LHS.
func (g *Grammar) rulesFor(A *Symbol) []*Rule {
	rules := make([]*Rule, 0, 2)
	for _, r := range g.rules {
		if r.LHS == A {
			rules = append(rules, r)
		}
	}
	return rules
}

// matchesRHS finds the rule LHS ::= handle, if present.
func (g *Grammar) matchesRHS(lhs *Symbol, handle []*Symbol) (*Rule, int) {
	for _, r := range g.rules {
		if r.LHS == lhs && eqRHS(r.rhs, handle) {
			return r, r.Serial
		}
	}
	return nil, -1
}

// Dump is a debugging helper, listing all rules of a grammar.
func (g *Grammar) Dump() {
	tracer().Debugf("--- %s --------------", g.Name)
	tracer().Debugf("T  = %v", g.terminals)
	tracer().Debugf("N  = %v", g.nonterminals)
	tracer().Debugf("S' = %v", g.rules[0].LHS)
	for _, r := range g.rules {
		tracer().Debugf("%v", r)
	}
	tracer().Debugf("-------------------------")
}

// --- Grammar builder ----------------------------------------------------

// GrammarBuilder is a builder type for constructing grammars. Clients add
// rules either with the chained notation
//
//     b.LHS("E").N("E").T("+", '+').N("T").End()
//
// or with the textual notation
//
//     b.Production("E", "E + T")
//
// and finally freeze the grammar with b.Grammar().
type GrammarBuilder struct {
	g       *Grammar
	nexttok int // next auto-assigned terminal token value
}

// NewGrammarBuilder gets a new grammar builder, given the name of the grammar
// to build.
func NewGrammarBuilder(gname string) *GrammarBuilder {
	g := &Grammar{
		Name:    gname,
		symbols: make(map[string]*Symbol),
	}
	g.EOF = &Symbol{Name: "#eof", Value: EOFType}
	return &GrammarBuilder{g: g, nexttok: TerminalTypeBase}
}

func (gb *GrammarBuilder) newRuleBuilder(lhs *Symbol) *RuleBuilder {
	return &RuleBuilder{gb: gb, lhs: lhs, rhs: make([]*Symbol, 0, 5)}
}

// LHS starts a rule given the left-hand side symbol (non-terminal).
func (gb *GrammarBuilder) LHS(s string) *RuleBuilder {
	sym, err := gb.internNonTerminal(s)
	if err != nil {
		gb.fail(err)
		return gb.newRuleBuilder(nil)
	}
	return gb.newRuleBuilder(sym)
}

// Production adds a rule in textual notation, one alternative per call.
// The body is tokenized on whitespace. A symbol name consisting of upper-case
// letters denotes a non-terminal, the reserved literal 'e' (or 'ε') denotes
// epsilon, any other symbol is a terminal. Terminal token values are assigned
// automatically at first sighting.
//
// Unlike the chained notation, errors are returned to the caller instead of
// being latched: interactive clients skip unusable rule lines and go on.
func (gb *GrammarBuilder) Production(lhs string, body string) error {
	if !isNonTermName(lhs) {
		return fmt.Errorf("LHS of rule must be a non-terminal name, is %q", lhs)
	}
	rhs := make([]*Symbol, 0, 5)
	for _, s := range strings.Fields(body) {
		if s == EpsilonLiteral || s == epsilonGlyph {
			continue // epsilon contributes no RHS symbol
		}
		var sym *Symbol
		var err error
		if isNonTermName(s) {
			sym, err = gb.internNonTerminal(s)
		} else {
			sym, err = gb.internTerminal(s, 0)
		}
		if err != nil {
			return err
		}
		rhs = append(rhs, sym)
	}
	head, err := gb.internNonTerminal(lhs)
	if err != nil {
		return err
	}
	r := gb.appendRule(head, rhs)
	tracer().Debugf("added rule %v", r)
	return nil
}

// isNonTermName reproduces the classification convention of textual grammars:
// a symbol with at least one letter, all of them upper-case, names a
// non-terminal.
func isNonTermName(s string) bool {
	cased := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			cased = true
		}
	}
	return cased
}

func (gb *GrammarBuilder) internNonTerminal(s string) (*Symbol, error) {
	if sym, ok := gb.g.symbols[s]; ok {
		if sym.IsTerminal() {
			return nil, fmt.Errorf("symbol %q is already registered as a terminal", s)
		}
		return sym, nil
	}
	sym := &Symbol{Name: s, Value: NonTermType - len(gb.g.nonterminals)}
	gb.g.symbols[s] = sym
	gb.g.nonterminals = append(gb.g.nonterminals, sym)
	return sym, nil
}

func (gb *GrammarBuilder) internTerminal(s string, tokval int) (*Symbol, error) {
	if sym, ok := gb.g.symbols[s]; ok {
		if !sym.IsTerminal() {
			return nil, fmt.Errorf("symbol %q is already registered as a non-terminal", s)
		}
		return sym, nil
	}
	if tokval == 0 { // auto-assign a token value
		tokval = gb.nexttok
		gb.nexttok++
	}
	sym := &Symbol{Name: s, Value: tokval}
	gb.g.symbols[s] = sym
	gb.g.terminals = append(gb.g.terminals, sym)
	return sym, nil
}

func (gb *GrammarBuilder) appendRule(lhs *Symbol, rhs []*Symbol) *Rule {
	r := newRule(len(gb.g.rules), lhs, rhs)
	gb.g.rules = append(gb.g.rules, r)
	return r
}

// fail latches the first error encountered during building. It will be
// returned by Grammar().
func (gb *GrammarBuilder) fail(err error) {
	tracer().Errorf("grammar builder: %v", err)
	if gb.g.firstError == nil {
		gb.g.firstError = err
	}
}

// Grammar validates the rules added so far, augments the grammar with a fresh
// start rule S' ::= S (serial 0) and returns the frozen grammar.
func (gb *GrammarBuilder) Grammar() (*Grammar, error) {
	g := gb.g
	if g.firstError != nil {
		return nil, g.firstError
	}
	if len(g.rules) == 0 {
		return nil, fmt.Errorf("grammar %q has no rules", g.Name)
	}
	for _, A := range g.nonterminals {
		if len(g.rulesFor(A)) == 0 {
			return nil, fmt.Errorf("non-terminal %q has no productions", A.Name)
		}
	}
	start := g.rules[0].LHS
	dname := start.Name + "'"
	for g.symbols[dname] != nil {
		dname = dname + "'" // must not collide with an existing name
	}
	derived, _ := gb.internNonTerminal(dname)
	r0 := newRule(0, derived, []*Symbol{start})
	g.rules = append([]*Rule{r0}, g.rules...)
	for i, r := range g.rules { // re-number, original rules move up by one
		r.Serial = i
	}
	tracer().Infof("grammar %q: %d rules, %d terminals, %d non-terminals",
		g.Name, len(g.rules), len(g.terminals), len(g.nonterminals))
	return g, nil
}

// --- Rule builder -----------------------------------------------------------

// RuleBuilder is a builder type for rules, created by GrammarBuilder.LHS(…).
type RuleBuilder struct {
	gb  *GrammarBuilder
	lhs *Symbol
	rhs []*Symbol
}

// N appends a non-terminal to the RHS of a rule under construction.
func (rb *RuleBuilder) N(s string) *RuleBuilder {
	sym, err := rb.gb.internNonTerminal(s)
	if err != nil {
		rb.gb.fail(err)
		return rb
	}
	rb.rhs = append(rb.rhs, sym)
	return rb
}

// T appends a terminal with a token value to the RHS of a rule. Token values
// must be positive; values below TerminalTypeBase are reserved for single-rune
// tokens.
func (rb *RuleBuilder) T(s string, tokval int) *RuleBuilder {
	if tokval <= 0 {
		rb.gb.fail(fmt.Errorf("token value of terminal %q must be positive, is %d", s, tokval))
		return rb
	}
	sym, err := rb.gb.internTerminal(s, tokval)
	if err != nil {
		rb.gb.fail(err)
		return rb
	}
	rb.rhs = append(rb.rhs, sym)
	return rb
}

// End completes a rule and hands it over to the grammar builder.
func (rb *RuleBuilder) End() *Rule {
	if rb.lhs == nil {
		return nil
	}
	r := rb.gb.appendRule(rb.lhs, rb.rhs)
	tracer().Debugf("added rule %v", r)
	return r
}

// Epsilon completes a rule as an epsilon-production, i.e. with an empty RHS.
func (rb *RuleBuilder) Epsilon() *Rule {
	rb.rhs = rb.rhs[:0]
	return rb.End()
}
