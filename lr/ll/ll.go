/*
Package ll provides an LL(1) predictive table and a top-down recognizer for
it. Clients analyse a grammar with package lr first; the predictive table is
derived from the same FIRST- and FOLLOW-sets which feed SLR(1) table
construction, so both parser families can be judged for one grammar with a
single analysis.

Usage

	b := lr.NewGrammarBuilder("G")
	b.Production("S", "a")
	b.Production("S", "b")
	g, _ := b.Grammar()
	ga := lr.Analysis(g)

	llgen := ll.NewTableGenerator(ga)
	table, err := llgen.CreateTable()
	if err != nil { ... }  // grammar is not LL(1)

	p := ll.NewParser(g, table)
	accepted, err := p.ParseStrings([]string{"a"})

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package ll

import (
	"errors"
	"fmt"

	"github.com/npillmayer/gramr"
	"github.com/npillmayer/gramr/lr"
	"github.com/npillmayer/gramr/lr/scanner"
	"github.com/npillmayer/gramr/lr/sparse"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'gramr.lr'.
func tracer() tracing.Trace {
	return tracing.Select("gramr.lr")
}

// ErrNotLL1 is returned by CreateTable if two productions compete for the
// same table cell. No table is handed out then.
var ErrNotLL1 = errors.New("grammar is not LL(1)")

// --- Predictive table -------------------------------------------------------

// Table is an LL(1) predictive table: a mapping (non-terminal, token value)
// -> rule serial. Cells are backed by a sparse matrix; rows are indexed by
// non-terminal registration order.
type Table struct {
	g      *lr.Grammar
	matrix *sparse.IntMatrix
	mincol gramr.TokType // lowest token value => offset for column access
	rows   map[*lr.Symbol]int
}

// Rule returns the serial number of the production to predict for a
// non-terminal A and a lookahead token value, or -1 if the cell is empty.
// Token values outside the grammar's range have no entries; scanners may
// produce such values for unknown input symbols.
func (t *Table) Rule(A *lr.Symbol, tt gramr.TokType) int {
	row, ok := t.rows[A]
	if !ok || tt < t.mincol {
		return -1
	}
	v := t.matrix.Value(row, t.col(tt))
	if v == t.matrix.NullValue() {
		return -1
	}
	return int(v)
}

func (t *Table) col(tt gramr.TokType) int {
	j := int(tt - t.mincol)
	if j < 0 {
		panic(fmt.Sprintf("ll.Table access with column < 0: %d", j))
	}
	return j
}

func (t *Table) set(A *lr.Symbol, tt gramr.TokType, serial int) {
	t.matrix.Set(t.rows[A], t.col(tt), int32(serial))
}

// --- Table generation -------------------------------------------------------

// TableGenerator is a generator object to construct LL(1) predictive tables.
type TableGenerator struct {
	g            *lr.Grammar
	ga           *lr.LRAnalysis
	HasConflicts bool // has CreateTable found a conflict?
}

// NewTableGenerator creates a new TableGenerator for a (previously analysed)
// grammar.
func NewTableGenerator(ga *lr.LRAnalysis) *TableGenerator {
	return &TableGenerator{g: ga.Grammar(), ga: ga}
}

// CreateTable constructs the LL(1) predictive table. For every production
// A ::= α, the production is entered at (A, t) for every terminal
// t ∈ FIRST(α); if α is nullable, additionally for every t ∈ FOLLOW(A),
// end-of-input marker included. Construction aborts at the first cell
// collision and returns ErrNotLL1: the verdict is what matters, not an
// enumeration of all conflicts.
//
// The augmented start rule is not entered; prediction starts at the original
// start symbol.
func (llgen *TableGenerator) CreateTable() (*Table, error) {
	g := llgen.g
	table := llgen.emptyTable()
	for serial := 1; serial < g.Size(); serial++ {
		r := g.Rule(serial)
		first := llgen.ga.FirstOfString(r.RHS())
		tracer().Debugf("FIRST(%v) = %v", r, first.Values())
		for _, v := range first.Values() {
			tt := gramr.TokType(v.(int))
			if tt == lr.EpsilonType {
				continue
			}
			if err := llgen.enter(table, r, tt); err != nil {
				return nil, err
			}
		}
		if first.Contains(lr.EpsilonType) {
			for _, v := range llgen.ga.Follow(r.LHS).Values() {
				if err := llgen.enter(table, r, gramr.TokType(v.(int))); err != nil {
					return nil, err
				}
			}
		}
	}
	return table, nil
}

// enter installs rule r at cell (LHS, tt), unless the cell already predicts a
// production with a different body.
func (llgen *TableGenerator) enter(table *Table, r *lr.Rule, tt gramr.TokType) error {
	prev := table.Rule(r.LHS, tt)
	if prev >= 0 && prev != r.Serial {
		// duplicate registrations of an identical body are not a conflict
		if !sameRHS(llgen.g.Rule(prev), r) {
			tracer().Infof("LL(1) conflict at (%v,%d): rule %d vs rule %d",
				r.LHS, tt, prev, r.Serial)
			llgen.HasConflicts = true
			return ErrNotLL1
		}
		return nil // keep the earlier entry
	}
	table.set(r.LHS, tt, r.Serial)
	return nil
}

func sameRHS(r1, r2 *lr.Rule) bool {
	if len(r1.RHS()) != len(r2.RHS()) {
		return false
	}
	for i, sym := range r1.RHS() {
		if r2.RHS()[i] != sym {
			return false
		}
	}
	return true
}

func (llgen *TableGenerator) emptyTable() *Table {
	g := llgen.g
	mintok := gramr.TokType(lr.EOFType)
	maxtok := gramr.TokType(0)
	rows := make(map[*lr.Symbol]int)
	g.EachNonTerminal(func(A *lr.Symbol) interface{} {
		rows[A] = len(rows)
		return nil
	})
	g.EachTerminal(func(t *lr.Symbol) interface{} {
		if t.TokenType() > maxtok {
			maxtok = t.TokenType()
		} else if t.TokenType() < mintok {
			mintok = t.TokenType()
		}
		return nil
	})
	extent := int(maxtok - mintok + 1)
	tracer().Infof("LL(1) table of size %d x %d", len(rows), extent)
	return &Table{
		g:      g,
		matrix: sparse.NewIntMatrix(len(rows), extent, sparse.DefaultNullValue),
		mincol: mintok,
		rows:   rows,
	}
}

// --- Predictive parser ------------------------------------------------------

// Parser is an LL(1) predictive recognizer. Create and initialize one with
// ll.NewParser(...)
type Parser struct {
	G     *lr.Grammar
	table *Table
	stack []*lr.Symbol // prediction stack
}

// NewParser creates an LL(1) parser from a grammar and its predictive table.
func NewParser(g *lr.Grammar, table *Table) *Parser {
	return &Parser{
		G:     g,
		table: table,
		stack: make([]*lr.Symbol, 0, 512),
	}
}

// Parse starts a new parse, given a scanner tokenizing the input. The
// prediction stack is seeded with the end-of-input marker and the start
// symbol.
//
// The parser returns true if the input string has been accepted. Terminal
// mismatches and missing table cells are rejection verdicts, not errors.
func (p *Parser) Parse(scan scanner.Tokenizer) (bool, error) {
	tracer().Debugf("~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~")
	if p.G == nil || p.table == nil {
		tracer().Errorf("LL(1)-parser not initialized")
		return false, fmt.Errorf("LL(1)-parser not initialized")
	}
	p.stack = p.stack[:0]
	p.stack = append(p.stack, p.G.EOF, p.G.Start())
	token := scan.NextToken()
	for len(p.stack) > 0 {
		top := p.stack[len(p.stack)-1]
		p.stack = p.stack[:len(p.stack)-1] // pop TOS
		tracer().Debugf("top=%v, lookahead %q/%d", top, token.Lexeme(), token.TokType())
		if top.IsTerminal() {
			if top.TokenType() != token.TokType() {
				tracer().Infof("expected %v, got %q, rejecting", top, token.Lexeme())
				return false, nil
			}
			if top.Value == lr.EOFType {
				return true, nil
			}
			token = scan.NextToken()
			continue
		}
		serial := p.table.Rule(top, token.TokType())
		if serial < 0 {
			tracer().Infof("no prediction for (%v,%q), rejecting", top, token.Lexeme())
			return false, nil
		}
		rule := p.G.Rule(serial)
		tracer().Debugf("predict %v", rule)
		rhs := rule.RHS()
		for i := len(rhs) - 1; i >= 0; i-- { // epsilon-productions push nothing
			p.stack = append(p.stack, rhs[i])
		}
	}
	return false, nil
}

// ParseStrings recognizes a sequence of terminal names, e.g.
//
//     accepted, err := p.ParseStrings([]string{"a", "b"})
//
// The end-of-input marker must not be part of the sequence; the scanner
// appends it.
func (p *Parser) ParseStrings(toks []string) (bool, error) {
	if p.G == nil {
		return false, fmt.Errorf("LL(1)-parser not initialized")
	}
	scan := scanner.Symbols(p.G.TokenTypes(), toks)
	return p.Parse(scan)
}
