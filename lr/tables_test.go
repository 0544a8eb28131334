package lr

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestCFSMBuild(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gramr.lr")
	defer teardown()
	//
	b := NewGrammarBuilder("G")
	b.Production("S", "a b")
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	lrgen := NewTableGenerator(Analysis(g))
	cfsm := lrgen.CFSM()
	if cfsm == nil {
		t.Fatal("no CFSM constructed")
	}
	// states: {S'→∘S, S→∘ab}, {S'→S∘}, {S→a∘b}, {S→ab∘}
	if cfsm.StateCount() != 4 {
		t.Errorf("CFSM should have 4 states, has %d", cfsm.StateCount())
	}
	if cfsm.S0 == nil || cfsm.S0.ID != 0 {
		t.Errorf("start state should carry ID 0, is %v", cfsm.S0)
	}
}

func TestSLRTables(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gramr.lr")
	defer teardown()
	//
	g := arithGrammar(t)
	lrgen := NewTableGenerator(Analysis(g))
	if err := lrgen.CreateTables(); err != nil {
		t.Fatalf("table creation failed: %v", err)
	}
	if lrgen.HasConflicts {
		t.Errorf("arithmetic expression grammar should be SLR(1)")
	}
	if lrgen.GotoTable() == nil || lrgen.ActionTable() == nil {
		t.Fatal("tables should have been created")
	}
	// exactly one state accepts at #eof
	actions := lrgen.ActionTable()
	acceptcnt := 0
	for _, x := range lrgen.CFSM().states.Values() {
		s := x.(*CFSMState)
		if actions.Value(s.ID, EOFType) == AcceptAction {
			acceptcnt++
			if !s.Accept {
				t.Errorf("state %d accepts at #eof but is not flagged", s.ID)
			}
		}
	}
	if acceptcnt != 1 {
		t.Errorf("expected exactly 1 accepting state, found %d", acceptcnt)
	}
}

// An ambiguous grammar must be refused with discarded tables.
func TestSLRConflict(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gramr.lr")
	defer teardown()
	//
	b := NewGrammarBuilder("Ambig")
	b.Production("E", "E + E")
	b.Production("E", "id")
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	lrgen := NewTableGenerator(Analysis(g))
	if err := lrgen.CreateTables(); err != ErrNotSLR1 {
		t.Errorf("expected ErrNotSLR1, got %v", err)
	}
	if !lrgen.HasConflicts {
		t.Errorf("conflicts should have been flagged")
	}
	if lrgen.gototable != nil || lrgen.actiontable != nil {
		t.Errorf("conflicting tables should have been discarded")
	}
}

// State numbering is a function of the grammar alone: two table generators for
// the same grammar produce identical automata and tables.
func TestCFSMDeterminism(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gramr.lr")
	defer teardown()
	//
	g := arithGrammar(t)
	ga := Analysis(g)
	lrgen1 := NewTableGenerator(ga)
	lrgen2 := NewTableGenerator(ga)
	if err := lrgen1.CreateTables(); err != nil {
		t.Fatal(err)
	}
	if err := lrgen2.CreateTables(); err != nil {
		t.Fatal(err)
	}
	if lrgen1.CFSM().StateCount() != lrgen2.CFSM().StateCount() {
		t.Fatalf("state counts differ: %d vs %d",
			lrgen1.CFSM().StateCount(), lrgen2.CFSM().StateCount())
	}
	for id := 0; id < lrgen1.CFSM().StateCount(); id++ {
		g.EachSymbol(func(A *Symbol) interface{} {
			v1 := lrgen1.GotoTable().Value(uint(id), A.TokenType())
			v2 := lrgen2.GotoTable().Value(uint(id), A.TokenType())
			if v1 != v2 {
				t.Errorf("GOTO(%d,%v) differs between runs: %d vs %d", id, A, v1, v2)
			}
			a1 := lrgen1.ActionTable().Value(uint(id), A.TokenType())
			a2 := lrgen2.ActionTable().Value(uint(id), A.TokenType())
			if a1 != a2 {
				t.Errorf("ACTION(%d,%v) differs between runs: %d vs %d", id, A, a1, a2)
			}
			return nil
		})
	}
}

func TestStateOverflow(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gramr.lr")
	defer teardown()
	//
	g := arithGrammar(t)
	lrgen := NewTableGenerator(Analysis(g))
	lrgen.MaxStates = 2
	if err := lrgen.CreateTables(); err != ErrStateOverflow {
		t.Errorf("expected ErrStateOverflow, got %v", err)
	}
}

func TestGotoTableShiftTargets(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gramr.lr")
	defer teardown()
	//
	g := arithGrammar(t)
	lrgen := NewTableGenerator(Analysis(g))
	if err := lrgen.CreateTables(); err != nil {
		t.Fatal(err)
	}
	// every shift action has a transition in the GOTO table
	actions := lrgen.ActionTable()
	gototable := lrgen.GotoTable()
	for _, x := range lrgen.CFSM().states.Values() {
		s := x.(*CFSMState)
		g.EachTerminal(func(term *Symbol) interface{} {
			if actions.Value(s.ID, term.TokenType()) == ShiftAction {
				if gototable.Value(s.ID, term.TokenType()) == gototable.NullValue() {
					t.Errorf("shift at (%d,%v) has no GOTO target", s.ID, term)
				}
			}
			return nil
		})
	}
}
