package lr

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestGrammarBuilder1(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gramr.lr")
	defer teardown()
	//
	b := NewGrammarBuilder("G")
	b.LHS("S").N("A").T("b", 'b').End()
	b.LHS("A").T("a", 'a').End()
	b.LHS("A").Epsilon()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	if g.Size() != 4 { // 3 rules + augmented start rule
		t.Errorf("grammar should have 4 rules, has %d", g.Size())
	}
	if g.Rule(0).LHS.Name != "S'" {
		t.Errorf("rule 0 should be the augmented start rule, LHS is %v", g.Rule(0).LHS)
	}
	if g.Start().Name != "S" {
		t.Errorf("start symbol should be S, is %v", g.Start())
	}
	if !g.Rule(3).IsEpsilon() {
		t.Errorf("rule 3 should be an epsilon-production: %v", g.Rule(3))
	}
}

func TestGrammarProduction(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gramr.lr")
	defer teardown()
	//
	b := NewGrammarBuilder("Expr")
	if err := b.Production("E", "E + T"); err != nil {
		t.Fatal(err)
	}
	if err := b.Production("E", "T"); err != nil {
		t.Fatal(err)
	}
	if err := b.Production("T", "id"); err != nil {
		t.Fatal(err)
	}
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	E := g.SymbolByName("E")
	if E == nil || E.IsTerminal() {
		t.Errorf("E should be a non-terminal, is %v", E)
	}
	plus := g.SymbolByName("+")
	if plus == nil || !plus.IsTerminal() {
		t.Fatalf("+ should be a terminal, is %v", plus)
	}
	if plus.Value < TerminalTypeBase {
		t.Errorf("auto-assigned token value should be >= %d, is %d",
			TerminalTypeBase, plus.Value)
	}
	id := g.SymbolByName("id")
	if id == nil || !id.IsTerminal() {
		t.Errorf("id should be a terminal, is %v", id)
	}
}

func TestGrammarEpsilonNotation(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gramr.lr")
	defer teardown()
	//
	b := NewGrammarBuilder("G")
	if err := b.Production("S", "A b"); err != nil {
		t.Fatal(err)
	}
	if err := b.Production("A", "a"); err != nil {
		t.Fatal(err)
	}
	if err := b.Production("A", "e"); err != nil {
		t.Fatal(err)
	}
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	if !g.Rule(3).IsEpsilon() {
		t.Errorf("A ::= e should be an epsilon-production, is %v", g.Rule(3))
	}
	if g.SymbolByName("e") != nil {
		t.Errorf("epsilon marker should not be registered as a grammar symbol")
	}
	if _, ok := g.TokenTypes()["e"]; ok {
		t.Errorf("epsilon marker should not appear in the token type mapping")
	}
}

func TestGrammarProductionErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gramr.lr")
	defer teardown()
	//
	b := NewGrammarBuilder("G")
	if err := b.Production("x", "a"); err == nil {
		t.Errorf("lower-case LHS should be refused")
	}
	if err := b.Production("S", "a B"); err != nil {
		t.Fatal(err)
	}
	if err := b.Production("B", "a"); err != nil { // B reused consistently
		t.Fatal(err)
	}
	if err := b.Production("S", "B a"); err != nil {
		t.Fatal(err)
	}
	if _, err := b.Grammar(); err != nil {
		t.Errorf("grammar should be valid, got %v", err)
	}
}

func TestGrammarValidation(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gramr.lr")
	defer teardown()
	//
	b := NewGrammarBuilder("G")
	if err := b.Production("S", "A b"); err != nil {
		t.Fatal(err)
	}
	if _, err := b.Grammar(); err == nil { // A has no productions
		t.Errorf("grammar with an unproductive non-terminal should be refused")
	}
}

func TestNonTermNameClassification(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gramr.lr")
	defer teardown()
	//
	cases := []struct {
		name string
		isNT bool
	}{
		{"S", true},
		{"EXPR", true},
		{"S1", true},
		{"id", false},
		{"Expr", false},
		{"+", false},
		{"(", false},
	}
	for _, c := range cases {
		if isNonTermName(c.name) != c.isNT {
			t.Errorf("classification of %q should be %v", c.name, c.isNT)
		}
	}
}

func TestItemAdvance(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gramr.lr")
	defer teardown()
	//
	b := NewGrammarBuilder("G")
	b.Production("S", "a b")
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	i, A := StartItem(g.Rule(1))
	if A == nil || A.Name != "a" {
		t.Errorf("symbol after dot should be a, is %v", A)
	}
	i = i.Advance()
	if i.PeekSymbol() == nil || i.PeekSymbol().Name != "b" {
		t.Errorf("symbol after dot should be b, is %v", i.PeekSymbol())
	}
	i = i.Advance()
	if i.PeekSymbol() != nil {
		t.Errorf("item should be a reduce item: %v", i)
	}
	if i.Advance() != NullItem {
		t.Errorf("advancing past the end should produce the null item")
	}
}
