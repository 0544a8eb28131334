package lr

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func arithGrammar(t *testing.T) *Grammar {
	b := NewGrammarBuilder("Expr")
	b.Production("E", "E + T")
	b.Production("E", "T")
	b.Production("T", "T * F")
	b.Production("T", "F")
	b.Production("F", "( E )")
	b.Production("F", "id")
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestFirstSets(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gramr.lr")
	defer teardown()
	//
	g := arithGrammar(t)
	ga := Analysis(g)
	lparen := g.SymbolByName("(").Value
	id := g.SymbolByName("id").Value
	for _, name := range []string{"E", "T", "F"} {
		first := ga.First(g.SymbolByName(name))
		if !first.Contains(lparen) || !first.Contains(id) {
			t.Errorf("FIRST(%s) should be { ( id }, is %v", name, first.Values())
		}
		if first.Size() != 2 {
			t.Errorf("FIRST(%s) should have 2 members, has %d", name, first.Size())
		}
	}
}

func TestFollowSets(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gramr.lr")
	defer teardown()
	//
	g := arithGrammar(t)
	ga := Analysis(g)
	plus := g.SymbolByName("+").Value
	star := g.SymbolByName("*").Value
	rparen := g.SymbolByName(")").Value
	followE := ga.Follow(g.SymbolByName("E"))
	if !followE.Contains(plus) || !followE.Contains(rparen) || !followE.Contains(EOFType) {
		t.Errorf("FOLLOW(E) should be { + ) #eof }, is %v", followE.Values())
	}
	followT := ga.Follow(g.SymbolByName("T"))
	if !followT.Contains(star) || !followT.Contains(plus) {
		t.Errorf("FOLLOW(T) should contain + and *, is %v", followT.Values())
	}
}

func TestEpsilonPropagation(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gramr.lr")
	defer teardown()
	//
	b := NewGrammarBuilder("G")
	b.Production("S", "A b")
	b.Production("A", "a")
	b.Production("A", "e")
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	ga := Analysis(g)
	A := g.SymbolByName("A")
	if !ga.DerivesEpsilon(A) {
		t.Errorf("A should be nullable")
	}
	firstS := ga.First(g.SymbolByName("S"))
	bval := g.SymbolByName("b").Value
	if !firstS.Contains(g.SymbolByName("a").Value) || !firstS.Contains(bval) {
		t.Errorf("FIRST(S) should be { a b }, is %v", firstS.Values())
	}
	if firstS.Contains(EpsilonType) {
		t.Errorf("S is not nullable, FIRST(S) is %v", firstS.Values())
	}
	if !ga.Follow(A).Contains(bval) {
		t.Errorf("FOLLOW(A) should contain b, is %v", ga.Follow(A).Values())
	}
}

// FIRST sets hold terminals (plus epsilon), FOLLOW sets hold terminals (plus
// the end-of-input marker) and never epsilon.
func TestSetProperties(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gramr.lr")
	defer teardown()
	//
	b := NewGrammarBuilder("G")
	b.Production("S", "A B c")
	b.Production("A", "a")
	b.Production("A", "e")
	b.Production("B", "b")
	b.Production("B", "e")
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	ga := Analysis(g)
	g.EachNonTerminal(func(A *Symbol) interface{} {
		for _, v := range ga.First(A).Values() {
			if v.(int) <= NonTermType {
				t.Errorf("FIRST(%s) contains a non-terminal: %v", A, ga.First(A).Values())
			}
		}
		for _, v := range ga.Follow(A).Values() {
			if v.(int) == EpsilonType {
				t.Errorf("FOLLOW(%s) contains epsilon: %v", A, ga.Follow(A).Values())
			}
			if v.(int) <= NonTermType {
				t.Errorf("FOLLOW(%s) contains a non-terminal: %v", A, ga.Follow(A).Values())
			}
		}
		return nil
	})
}

func TestFirstOfString(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gramr.lr")
	defer teardown()
	//
	b := NewGrammarBuilder("G")
	b.Production("S", "A b")
	b.Production("A", "a")
	b.Production("A", "e")
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	ga := Analysis(g)
	empty := ga.FirstOfString(nil)
	if !empty.Contains(EpsilonType) || empty.Size() != 1 {
		t.Errorf("FIRST of the empty string should be { epsilon }, is %v", empty.Values())
	}
	beta := g.Rule(1).RHS() // A b
	fb := ga.FirstOfString(beta)
	if !fb.Contains(g.SymbolByName("a").Value) || !fb.Contains(g.SymbolByName("b").Value) {
		t.Errorf("FIRST(A b) should be { a b }, is %v", fb.Values())
	}
	if fb.Contains(EpsilonType) {
		t.Errorf("FIRST(A b) should not contain epsilon, is %v", fb.Values())
	}
}
