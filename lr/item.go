package lr

import (
	"bytes"
	"fmt"

	"github.com/npillmayer/gramr/lr/iteratable"
)

// Item is an LR(0) item: a grammar rule together with a dot position marking
// recognition progress through the RHS. Items are value types; two items are
// equal iff they refer to the same rule and carry the same dot position.
type Item struct {
	rule *Rule
	dot  int
}

// NullItem is the invalid item.
var NullItem = Item{nil, 0}

// StartItem returns an item for a rule with the dot at position 0, plus the
// symbol after the dot (nil for epsilon-productions).
func StartItem(r *Rule) (Item, *Symbol) {
	if r == nil {
		return NullItem, nil
	}
	i := Item{rule: r, dot: 0}
	return i, i.PeekSymbol()
}

// Rule returns the rule of an item.
func (i Item) Rule() *Rule {
	return i.rule
}

// PeekSymbol returns the symbol after the dot, or nil if the dot is at the
// end of the RHS (a reduce item).
func (i Item) PeekSymbol() *Symbol {
	if i.dot >= len(i.rule.rhs) {
		return nil
	}
	return i.rule.rhs[i.dot]
}

// Prefix returns the symbols before the dot. Callers must not modify the
// returned slice.
func (i Item) Prefix() []*Symbol {
	return i.rule.rhs[:i.dot]
}

// Advance returns a new item with the dot advanced by one position, or
// NullItem if the dot is already at the end.
func (i Item) Advance() Item {
	if i.dot >= len(i.rule.rhs) {
		return NullItem
	}
	return Item{rule: i.rule, dot: i.dot + 1}
}

func (i Item) String() string {
	var b bytes.Buffer
	fmt.Fprintf(&b, "%s ::=", i.rule.LHS.Name)
	for n, sym := range i.rule.rhs {
		if n == i.dot {
			b.WriteString(" ∘")
		}
		b.WriteString(" " + sym.Name)
	}
	if i.dot == len(i.rule.rhs) {
		b.WriteString(" ∘")
	}
	return b.String()
}

// --- Item sets --------------------------------------------------------------

func newItemSet() *iteratable.Set {
	return iteratable.NewSet(8)
}

func asItem(x interface{}) Item {
	if i, ok := x.(Item); ok {
		return i
	}
	return NullItem
}

// Dump is a debugging helper, listing all items of an item set.
func Dump(S *iteratable.Set) {
	for n, x := range S.Values() {
		i := asItem(x)
		tracer().Debugf("   item %2d = %v", n, i)
	}
}

func itemSetString(S *iteratable.Set) string {
	var b bytes.Buffer
	b.WriteString("{")
	for n, x := range S.Values() {
		if n > 0 {
			b.WriteString(", ")
		}
		b.WriteString(asItem(x).String())
	}
	b.WriteString("}")
	return b.String()
}

func forGraphviz(S *iteratable.Set) string {
	var b bytes.Buffer
	for _, x := range S.Values() {
		b.WriteString(asItem(x).String())
		b.WriteString("\\l")
	}
	return b.String()
}
