package lr

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/cnf/structhash"
	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
	"github.com/npillmayer/gramr"
	"github.com/npillmayer/gramr/lr/iteratable"
	"github.com/npillmayer/gramr/lr/sparse"
)

// Refer to "Crafting A Compiler" by Charles N. Fisher & Richard J. LeBlanc, Jr.
// Section 6.2.1 LR(0) Parsing

// Actions for parser action tables. Reduce actions are encoded as the serial
// number of the rule to reduce; serial 0 is the augmented start rule, which is
// never reduced but accepted.
const (
	ShiftAction  = -1
	AcceptAction = -2
)

// ErrNotSLR1 is returned by CreateTables if table construction found a
// shift/reduce- or reduce/reduce-conflict. No tables are handed out then.
var ErrNotSLR1 = errors.New("grammar is not SLR(1)")

// ErrStateOverflow is returned if CFSM construction exceeds MaxStates.
// The canonical LR(0) state count may grow combinatorially for pathological
// grammars; the ceiling turns that into a clear failure.
var ErrStateOverflow = errors.New("too many LR(0) states")

// DefaultMaxStates is the default CFSM state ceiling of a TableGenerator.
const DefaultMaxStates = 8192

// === Closure and Goto-Set Operations =======================================

// closure computes the closure of a single LR(0) item.
func (ga *LRAnalysis) closure(i Item, A *Symbol) *iteratable.Set {
	S := newItemSet()
	S.Add(i)
	return ga.closureSet(S)
}

// closureSet expands an item set: for every item with a non-terminal A after
// the dot, all start items of A's rules are added, until no new items appear.
func (ga *LRAnalysis) closureSet(S *iteratable.Set) *iteratable.Set {
	C := S.Copy() // add start items to closure
	C.IterateOnce()
	for C.Next() {
		item := asItem(C.Item())
		A := item.PeekSymbol()           // get symbol A after dot
		if A != nil && !A.IsTerminal() { // A is non-terminal
			R := ga.g.startItemsFor(A)
			if New := R.Difference(C); !New.Empty() {
				C.Union(New) // iteration will pick the new items up
			}
		}
	}
	return C
}

// startItemsFor returns a set of the items A ::= ∘ … for all rules of a
// non-terminal A.
func (g *Grammar) startItemsFor(A *Symbol) *iteratable.Set {
	S := newItemSet()
	for _, r := range g.rulesFor(A) {
		i, _ := StartItem(r)
		S.Add(i)
	}
	return S
}

func (ga *LRAnalysis) gotoSet(closure *iteratable.Set, A *Symbol) *iteratable.Set {
	// for every item in closure C
	// if item in C:  N -> ... ∘A ...
	//     advance N -> ... A ∘ ...
	gotoset := newItemSet()
	for _, x := range closure.Values() {
		i := asItem(x)
		if i.PeekSymbol() == A {
			ii := i.Advance()
			tracer().Debugf("goto(%s) -%s-> %s", i, A, ii)
			gotoset.Add(ii)
		}
	}
	return gotoset
}

func (ga *LRAnalysis) gotoSetClosure(i *iteratable.Set, A *Symbol) *iteratable.Set {
	gotoset := ga.gotoSet(i, A)
	gclosure := ga.closureSet(gotoset)
	tracer().Debugf("goto(%s) --%s--> %s", itemSetString(i), A, itemSetString(gclosure))
	return gclosure
}

// === CFSM Construction =====================================================

// CFSMState is a state within the CFSM for a grammar.
type CFSMState struct {
	ID     uint            // serial ID of this state, assigned in discovery order
	items  *iteratable.Set // configuration items within this state
	Accept bool            // does this state contain the completed start rule?
}

// CFSM edge between 2 states, directed and labelled with a symbol.
type cfsmEdge struct {
	from  *CFSMState
	to    *CFSMState
	label *Symbol
}

// Dump is a debugging helper.
func (s *CFSMState) Dump() {
	tracer().Debugf("--- state %03d -----------", s.ID)
	Dump(s.items)
	tracer().Debugf("-------------------------")
}

func (s *CFSMState) isErrorState() bool {
	return s.items.Size() == 0
}

// Create a state from an item set.
func state(id uint, iset *iteratable.Set) *CFSMState {
	s := &CFSMState{ID: id}
	if iset == nil {
		s.items = newItemSet()
	} else {
		s.items = iset
	}
	return s
}

func (s *CFSMState) String() string {
	return fmt.Sprintf("(state %d | [%d])", s.ID, s.items.Size())
}

func (s *CFSMState) containsCompletedStartRule() bool {
	for _, x := range s.items.Values() {
		i := asItem(x)
		if i.rule.Serial == 0 && i.PeekSymbol() == nil {
			return true
		}
	}
	return false
}

// We need this for the set of states. It sorts states by serial ID.
func stateComparator(s1, s2 interface{}) int {
	c1 := s1.(*CFSMState)
	c2 := s2.(*CFSMState)
	return utils.IntComparator(int(c1.ID), int(c2.ID))
}

// CFSM is the characteristic finite state machine for an LR grammar, i.e. the
// LR(0) state diagram. Will be constructed by a TableGenerator.
// Clients normally do not use it directly. Nevertheless, there are some
// methods defined on it, e.g, for debugging purposes, or even to compute your
// own tables from it.
type CFSM struct {
	g       *Grammar              // this CFSM is for grammar g
	states  *treeset.Set          // all the states, sorted by ID
	edges   *arraylist.List       // all the edges between states
	index   map[string]*CFSMState // item-set digest -> state
	S0      *CFSMState            // start state
	cfsmIds uint                  // serial IDs for CFSM states
}

// create an empty (initial) CFSM automaton.
func emptyCFSM(g *Grammar) *CFSM {
	c := &CFSM{g: g}
	c.states = treeset.NewWith(stateComparator)
	c.edges = arraylist.New()
	c.index = make(map[string]*CFSMState)
	return c
}

// itemSetDigest produces a canonical digest for an item set: items are
// identified by (rule serial, dot) and sorted, making the digest independent
// of insertion order.
func itemSetDigest(iset *iteratable.Set) string {
	type digest struct {
		Items []string
	}
	d := digest{Items: make([]string, 0, iset.Size())}
	for _, x := range iset.Values() {
		i := asItem(x)
		d.Items = append(d.Items, fmt.Sprintf("%d.%d", i.rule.Serial, i.dot))
	}
	sort.Strings(d.Items)
	return fmt.Sprintf("%x", structhash.Sha1(d, 1))
}

// addState adds a state to the CFSM, unless an equal state is already
// present. First discovery wins: the ID of a state never changes afterwards.
func (c *CFSM) addState(iset *iteratable.Set) *CFSMState {
	s := c.findStateByItems(iset)
	if s == nil {
		s = state(c.cfsmIds, iset)
		c.cfsmIds++
		c.states.Add(s)
		c.index[itemSetDigest(iset)] = s
	}
	return s
}

// findStateByItems finds a CFSM state by the contained item set.
func (c *CFSM) findStateByItems(iset *iteratable.Set) *CFSMState {
	if s, ok := c.index[itemSetDigest(iset)]; ok {
		if !s.items.Equals(iset) { // digest collision, not expected to happen
			tracer().Errorf("item-set digest collision at state %d", s.ID)
			return nil
		}
		return s
	}
	return nil
}

func (c *CFSM) addEdge(s0, s1 *CFSMState, sym *Symbol) *cfsmEdge {
	e := &cfsmEdge{from: s0, to: s1, label: sym}
	c.edges.Add(e)
	return e
}

func (c *CFSM) allEdges(s *CFSMState) []*cfsmEdge {
	it := c.edges.Iterator()
	r := make([]*cfsmEdge, 0, 2)
	for it.Next() {
		e := it.Value().(*cfsmEdge)
		if e.from == s {
			r = append(r, e)
		}
	}
	return r
}

// StateCount returns the number of states of the CFSM.
func (c *CFSM) StateCount() int {
	return c.states.Size()
}

// === Table Generation ======================================================

// TableGenerator is a generator object to construct SLR(1) parser tables.
// Clients usually create a Grammar G, then an LRAnalysis-object for G, and
// then a table generator. TableGenerator.CreateTables() constructs the CFSM
// and the parser tables for an SLR(1)-parser recognizing grammar G.
type TableGenerator struct {
	g            *Grammar
	ga           *LRAnalysis
	dfa          *CFSM
	gototable    *Table
	actiontable  *Table
	MaxStates    int  // ceiling for CFSM construction
	HasConflicts bool // has CreateTables found conflicts?
}

// NewTableGenerator creates a new TableGenerator for a (previously analysed)
// grammar.
func NewTableGenerator(ga *LRAnalysis) *TableGenerator {
	lrgen := &TableGenerator{}
	lrgen.g = ga.Grammar()
	lrgen.ga = ga
	lrgen.MaxStates = DefaultMaxStates
	return lrgen
}

// CFSM returns the characteristic finite state machine (CFSM) for a grammar.
// Usually clients call lrgen.CreateTables() beforehand, but it is possible
// to call lrgen.CFSM() directly. The CFSM will be created, if it has not
// been constructed previously.
func (lrgen *TableGenerator) CFSM() *CFSM {
	if lrgen.dfa == nil {
		dfa, err := lrgen.buildCFSM()
		if err != nil {
			tracer().Errorf("CFSM construction failed: %v", err)
			return nil
		}
		lrgen.dfa = dfa
	}
	return lrgen.dfa
}

// GotoTable returns the GOTO table for LR-parsing a grammar. The tables have
// to be built by a successful call to CreateTables() previously.
func (lrgen *TableGenerator) GotoTable() *Table {
	if lrgen.gototable == nil {
		tracer().Errorf("tables not yet initialized")
	}
	return lrgen.gototable
}

// ActionTable returns the ACTION table for LR-parsing a grammar. The tables
// have to be built by a successful call to CreateTables() previously.
func (lrgen *TableGenerator) ActionTable() *Table {
	if lrgen.actiontable == nil {
		tracer().Errorf("tables not yet initialized")
	}
	return lrgen.actiontable
}

// CreateTables creates the necessary data structures for an SLR(1) parser.
// If the grammar exhibits a shift/reduce- or reduce/reduce-conflict, both
// tables are discarded and ErrNotSLR1 is returned: conflicts are a structured
// verdict about the grammar, not a fault.
func (lrgen *TableGenerator) CreateTables() error {
	dfa, err := lrgen.buildCFSM()
	if err != nil {
		return err
	}
	lrgen.dfa = dfa
	lrgen.gototable = lrgen.BuildGotoTable()
	actions, hasConflicts := lrgen.BuildSLR1ActionTable()
	if hasConflicts {
		lrgen.HasConflicts = true
		lrgen.gototable = nil // no partial tables leak through
		lrgen.actiontable = nil
		return ErrNotSLR1
	}
	lrgen.actiontable = actions
	return nil
}

// buildCFSM constructs the characteristic finite state machine for a grammar.
// States are discovered breadth-first, starting from the closure of the
// augmented start item, and numbered in discovery order.
func (lrgen *TableGenerator) buildCFSM() (*CFSM, error) {
	tracer().Debugf("=== build CFSM ==================================================")
	G := lrgen.g
	cfsm := emptyCFSM(G)
	closure0 := lrgen.ga.closure(StartItem(G.rules[0]))
	cfsm.S0 = cfsm.addState(closure0)
	cfsm.S0.Dump()
	S := treeset.NewWith(stateComparator) // worklist; min-ID first = FIFO
	S.Add(cfsm.S0)
	for S.Size() > 0 {
		s := S.Values()[0].(*CFSMState)
		S.Remove(s)
		G.EachSymbol(func(A *Symbol) interface{} {
			gotoset := lrgen.ga.gotoSetClosure(s.items, A)
			if gotoset.Empty() { // no transition under A
				return nil
			}
			snew := cfsm.findStateByItems(gotoset)
			if snew == nil {
				snew = cfsm.addState(gotoset)
				S.Add(snew)
				if snew.containsCompletedStartRule() {
					snew.Accept = true
				}
				snew.Dump()
			}
			cfsm.addEdge(s, snew, A)
			return nil
		})
		if cfsm.StateCount() > lrgen.MaxStates {
			tracer().Errorf("state count exceeds %d, giving up", lrgen.MaxStates)
			return nil, ErrStateOverflow
		}
		tracer().Debugf("-----------------------------------------------------------------")
	}
	tracer().Infof("CFSM of %q has %d states", G.Name, cfsm.StateCount())
	return cfsm, nil
}

// ===========================================================================

// tableDimensions finds the token value range the tables have to span. The
// end-of-input marker is always included.
func (lrgen *TableGenerator) tableDimensions() (gramr.TokType, gramr.TokType) {
	maxtok := gramr.TokType(0)
	mintok := gramr.TokType(EOFType)
	lrgen.g.EachSymbol(func(A *Symbol) interface{} {
		if A.TokenType() > maxtok {
			maxtok = A.TokenType()
		} else if A.TokenType() < mintok {
			mintok = A.TokenType()
		}
		return nil
	})
	return mintok, maxtok
}

// BuildGotoTable builds the GOTO table. This is normally not called directly,
// but rather via CreateTables(). The GOTO table holds the transitions for all
// symbols, terminals included: shift actions find their target state here.
func (lrgen *TableGenerator) BuildGotoTable() *Table {
	statescnt := lrgen.dfa.states.Size()
	mintok, maxtok := lrgen.tableDimensions()
	extent := int(maxtok - mintok + 1)
	tracer().Infof("GOTO table of size %d x %d", statescnt, extent)
	gototable := &Table{
		matrix: sparse.NewIntMatrix(statescnt, extent, sparse.DefaultNullValue),
		mincol: mintok,
	}
	states := lrgen.dfa.states.Iterator()
	for states.Next() {
		state := states.Value().(*CFSMState)
		for _, e := range lrgen.dfa.allEdges(state) {
			gototable.set(state.ID, e.label.TokenType(), int32(e.to.ID))
		}
	}
	return gototable
}

// BuildSLR1ActionTable constructs the SLR(1) ACTION table. This method is
// normally not called by clients, but rather via CreateTables(). Reduce
// entries are gated by the FOLLOW-set of the rule's LHS (created by the
// grammar analysis).
//
// For building the ACTION table we iterate over all the states of the CFSM.
// An inner loop iterates over all the items within a CFSM-state.
// If an item has a terminal immediately after the dot, we produce a shift
// entry. If an item's dot is behind the complete RHS of a rule, then
// - for the augmented start rule: we produce an accept-entry at #eof
// - otherwise: a reduce-entry for the rule, for each terminal of FOLLOW(LHS).
//
// Shift entries are encoded as -1, accept entries as -2, reduce entries as
// the serial no. of the grammar rule to reduce. Every cell of the sparse
// matrix may hold a pair of entries, thus preserving shift/reduce- and
// reduce/reduce-conflicts for diagnosis.
func (lrgen *TableGenerator) BuildSLR1ActionTable() (*Table, bool) {
	statescnt := lrgen.dfa.states.Size()
	mintok, maxtok := lrgen.tableDimensions()
	extent := int(maxtok - mintok + 1)
	tracer().Infof("ACTION table of size %d x %d", statescnt, extent)
	actions := &Table{
		matrix: sparse.NewIntMatrix(statescnt, extent, sparse.DefaultNullValue),
		mincol: mintok,
	}
	hasConflicts := false
	states := lrgen.dfa.states.Iterator()
	for states.Next() {
		state := states.Value().(*CFSMState)
		tracer().Debugf("--- state %d --------------------------------", state.ID)
		for _, v := range state.items.Values() {
			i := asItem(v)
			A := i.PeekSymbol()
			if A == nil { // dot at end of rule: reduce or accept
				rule := i.Rule()
				if rule.Serial == 0 { // completed start rule
					if lrgen.enterAction(actions, state, EOFType, AcceptAction) {
						hasConflicts = true
					}
					continue
				}
				lookaheads := lrgen.ga.Follow(rule.LHS)
				tracer().Debugf("    Follow(%v) = %v", rule.LHS, lookaheads.Values())
				for _, la := range lookaheads.Values() {
					tt := gramr.TokType(la.(int))
					if lrgen.enterAction(actions, state, tt, int32(rule.Serial)) {
						hasConflicts = true
					}
				}
			} else if A.IsTerminal() { // create a shift entry
				if lrgen.enterAction(actions, state, A.TokenType(), ShiftAction) {
					hasConflicts = true
				}
			}
			// transitions under non-terminals are covered by the GOTO table
		}
	}
	return actions, hasConflicts
}

// enterAction enters an action into a table cell, reporting true if the cell
// already held a different action. Reduce actions over rules with identical
// LHS and RHS are the same action, whatever their serials. The colliding entry
// is kept in the cell's secondary slot.
func (lrgen *TableGenerator) enterAction(actions *Table, state *CFSMState,
	tt gramr.TokType, val int32) bool {
	//
	if a := actions.Value(state.ID, tt); a != actions.NullValue() {
		if a == val { // relax, identical action
			return false
		}
		if a > 0 && val > 0 { // reduce/reduce over duplicated rules
			r1, r2 := lrgen.g.Rule(int(a)), lrgen.g.Rule(int(val))
			if r1.LHS == r2.LHS && eqRHS(r1.rhs, r2.rhs) {
				return false // keep the earlier entry
			}
		}
		tracer().Infof("conflict at state %d, token %d: %s vs %s", state.ID, tt,
			valstring(a, actions), valstring(val, actions))
		actions.add(state.ID, tt, val)
		return true
	}
	actions.add(state.ID, tt, val)
	return false
}

// --- Parser tables ----------------------------------------------------------

// Table is a parse table, i.e. a sparse matrix indexed by (state, token
// value). Columns are shifted by the lowest token value of the grammar, which
// for non-terminal columns is negative.
type Table struct {
	matrix *sparse.IntMatrix
	mincol gramr.TokType // lowest token value => offset for column access
}

func (t *Table) col(tt gramr.TokType) int {
	j := int(tt - t.mincol)
	if j < 0 {
		panic(fmt.Sprintf("lr.Table access with column < 0: %d", j))
	}
	return j
}

func (t *Table) add(i uint, tt gramr.TokType, val int32) {
	t.matrix.Add(int(i), t.col(tt), val)
}

func (t *Table) set(i uint, tt gramr.TokType, val int32) {
	t.matrix.Set(int(i), t.col(tt), val)
}

// NullValue returns the empty-cell marker of this table.
func (t *Table) NullValue() int32 {
	return t.matrix.NullValue()
}

// Value returns the primary entry at (state, token value), or NullValue.
// Token values outside the grammar's range have no entries; scanners may
// produce such values for unknown input symbols.
func (t *Table) Value(i uint, tt gramr.TokType) int32 {
	if tt < t.mincol {
		return t.matrix.NullValue()
	}
	return t.matrix.Value(int(i), t.col(tt))
}

// Values returns the pair of entries at (state, token value). The secondary
// entry is only set for conflicting table cells.
func (t *Table) Values(i uint, tt gramr.TokType) (int32, int32) {
	if tt < t.mincol {
		return t.matrix.NullValue(), t.matrix.NullValue()
	}
	return t.matrix.Values(int(i), t.col(tt))
}

// valstring is a short helper to stringify an action table entry.
func valstring(v int32, m *Table) string {
	if v == m.NullValue() {
		return "<none>"
	} else if v == AcceptAction {
		return "<accept>"
	} else if v == ShiftAction {
		return "<shift>"
	}
	return fmt.Sprintf("<reduce %d>", v)
}

// --- Exporting tables -------------------------------------------------------

// CFSM2GraphViz exports a CFSM to the Graphviz Dot format, given a filename.
func (c *CFSM) CFSM2GraphViz(filename string) {
	f, err := os.Create(filename)
	if err != nil {
		tracer().Errorf("file open error: %v", err)
		return
	}
	defer f.Close()
	f.WriteString(`digraph {
graph [splines=true, fontname=Helvetica, fontsize=10];
node [shape=Mrecord, style=filled, fontname=Helvetica, fontsize=10];
edge [fontname=Helvetica, fontsize=10];

`)
	for _, x := range c.states.Values() {
		s := x.(*CFSMState)
		f.WriteString(fmt.Sprintf("s%03d [fillcolor=%s label=\"{%03d | %s}\"]\n",
			s.ID, nodecolor(s), s.ID, forGraphviz(s.items)))
	}
	it := c.edges.Iterator()
	for it.Next() {
		edge := it.Value().(*cfsmEdge)
		f.WriteString(fmt.Sprintf("s%03d -> s%03d [label=\"%s\"]\n",
			edge.from.ID, edge.to.ID, edge.label))
	}
	f.WriteString("}\n")
}

func nodecolor(state *CFSMState) string {
	if state.Accept {
		return "lightgray"
	}
	return "white"
}

// GotoTableAsHTML exports a GOTO-table in HTML-format.
func GotoTableAsHTML(lrgen *TableGenerator, w io.Writer) {
	if lrgen.gototable == nil {
		tracer().Errorf("GOTO table not yet created, cannot export to HTML")
		return
	}
	parserTableAsHTML(lrgen, "GOTO", lrgen.gototable, w)
}

// ActionTableAsHTML exports the SLR(1) ACTION-table in HTML-format.
func ActionTableAsHTML(lrgen *TableGenerator, w io.Writer) {
	if lrgen.actiontable == nil {
		tracer().Errorf("ACTION table not yet created, cannot export to HTML")
		return
	}
	parserTableAsHTML(lrgen, "ACTION", lrgen.actiontable, w)
}

func parserTableAsHTML(lrgen *TableGenerator, tname string, table *Table, w io.Writer) {
	symvec := make([]*Symbol, 0, len(lrgen.g.terminals)+len(lrgen.g.nonterminals)+1)
	io.WriteString(w, "<html><body>\n")
	io.WriteString(w, fmt.Sprintf("%s table of size = %d<p>", tname, table.matrix.ValueCount()))
	io.WriteString(w, "<table border=1 cellspacing=0 cellpadding=5>\n")
	io.WriteString(w, "<tr bgcolor=#cccccc><td></td>\n")
	lrgen.g.EachSymbol(func(A *Symbol) interface{} {
		io.WriteString(w, fmt.Sprintf("<td>%s</td>", A))
		symvec = append(symvec, A)
		return nil
	})
	io.WriteString(w, fmt.Sprintf("<td>%s</td>", lrgen.g.EOF))
	symvec = append(symvec, lrgen.g.EOF)
	io.WriteString(w, "</tr>\n")
	states := lrgen.dfa.states.Iterator()
	var td string // table cell
	for states.Next() {
		state := states.Value().(*CFSMState)
		io.WriteString(w, fmt.Sprintf("<tr><td>state %d</td>\n", state.ID))
		for _, A := range symvec {
			v1, v2 := table.Values(state.ID, A.TokenType())
			if v1 == table.NullValue() {
				td = "&nbsp;"
			} else if v2 == table.NullValue() {
				td = fmt.Sprintf("%d", v1)
			} else {
				td = fmt.Sprintf("%d/%d", v1, v2)
			}
			io.WriteString(w, "<td>")
			io.WriteString(w, td)
			io.WriteString(w, "</td>\n")
		}
		io.WriteString(w, "</tr>\n")
	}
	io.WriteString(w, "</table></body></html>\n")
}
