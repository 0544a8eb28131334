package ll

import (
	"testing"

	"github.com/npillmayer/gramr/lr"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestLLTable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gramr.lr")
	defer teardown()
	//
	b := lr.NewGrammarBuilder("G")
	b.Production("S", "a")
	b.Production("S", "b")
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	table, err := NewTableGenerator(lr.Analysis(g)).CreateTable()
	if err != nil {
		t.Fatalf("grammar should be LL(1): %v", err)
	}
	S := g.SymbolByName("S")
	if serial := table.Rule(S, g.SymbolByName("a").TokenType()); serial != 1 {
		t.Errorf("cell (S,a) should predict rule 1, predicts %d", serial)
	}
	if serial := table.Rule(S, g.SymbolByName("b").TokenType()); serial != 2 {
		t.Errorf("cell (S,b) should predict rule 2, predicts %d", serial)
	}
	if serial := table.Rule(S, lr.EOFType); serial != -1 {
		t.Errorf("cell (S,#eof) should be empty, predicts %d", serial)
	}
}

func TestLLConflict(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gramr.lr")
	defer teardown()
	//
	b := lr.NewGrammarBuilder("G")
	b.Production("S", "a S")
	b.Production("S", "a")
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	llgen := NewTableGenerator(lr.Analysis(g))
	table, err := llgen.CreateTable()
	if err != ErrNotLL1 {
		t.Errorf("expected ErrNotLL1, got %v", err)
	}
	if table != nil {
		t.Errorf("conflicting table should have been discarded")
	}
	if !llgen.HasConflicts {
		t.Errorf("conflicts should have been flagged")
	}
}

// Left-recursive grammars always exhibit FIRST/FIRST conflicts.
func TestLLLeftRecursion(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gramr.lr")
	defer teardown()
	//
	b := lr.NewGrammarBuilder("Expr")
	b.Production("E", "E + T")
	b.Production("E", "T")
	b.Production("T", "id")
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := NewTableGenerator(lr.Analysis(g)).CreateTable(); err != ErrNotLL1 {
		t.Errorf("left-recursive grammar should be refused, got %v", err)
	}
}

func epsilonParser(t *testing.T) *Parser {
	b := lr.NewGrammarBuilder("G")
	b.Production("S", "A b")
	b.Production("A", "a")
	b.Production("A", "e")
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	table, err := NewTableGenerator(lr.Analysis(g)).CreateTable()
	if err != nil {
		t.Fatalf("grammar should be LL(1): %v", err)
	}
	return NewParser(g, table)
}

func TestLLParse1(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gramr.lr")
	defer teardown()
	//
	p := epsilonParser(t)
	for _, toks := range [][]string{{"b"}, {"a", "b"}} {
		accept, err := p.ParseStrings(toks)
		if err != nil {
			t.Fatalf("parser returned error for %v: %v", toks, err)
		}
		if !accept {
			t.Errorf("parser did not accept input %v", toks)
		}
	}
}

func TestLLReject(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gramr.lr")
	defer teardown()
	//
	p := epsilonParser(t)
	for _, toks := range [][]string{{"a"}, {"b", "b"}, {"c"}, {}} {
		accept, err := p.ParseStrings(toks)
		if err != nil {
			t.Fatalf("rejection should not be an error, got %v for %v", err, toks)
		}
		if accept {
			t.Errorf("parser should not accept input %v", toks)
		}
	}
}

func TestLLUninitialized(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gramr.lr")
	defer teardown()
	//
	p := NewParser(nil, nil)
	if _, err := p.ParseStrings([]string{"a"}); err == nil {
		t.Errorf("uninitialized parser should return an error")
	}
}
