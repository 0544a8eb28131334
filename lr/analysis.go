package lr

import (
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
)

// LRAnalysis holds the results of static grammar analysis: FIRST and FOLLOW
// sets for every non-terminal of a grammar. Clients create one with
// lr.Analysis(g); the fixpoint computations run exactly once per instance.
//
// FIRST and FOLLOW sets are represented as ordered sets of token values.
// FIRST sets may contain EpsilonType, FOLLOW sets never do, but may contain
// EOFType.
type LRAnalysis struct {
	g      *Grammar
	first  map[*Symbol]*treeset.Set
	follow map[*Symbol]*treeset.Set
}

// Analysis analyses a grammar and computes FIRST and FOLLOW sets for it.
func Analysis(g *Grammar) *LRAnalysis {
	if g == nil {
		return nil
	}
	ga := &LRAnalysis{
		g:      g,
		first:  make(map[*Symbol]*treeset.Set),
		follow: make(map[*Symbol]*treeset.Set),
	}
	for _, A := range g.nonterminals {
		ga.first[A] = newTokSet()
		ga.follow[A] = newTokSet()
	}
	ga.calculateFirst()
	ga.calculateFollow()
	return ga
}

// Grammar returns the grammar this analysis is for.
func (ga *LRAnalysis) Grammar() *Grammar {
	return ga.g
}

// First returns FIRST(A) as a set of token values, possibly including
// EpsilonType.
func (ga *LRAnalysis) First(A *Symbol) *treeset.Set {
	return ga.first[A]
}

// Follow returns FOLLOW(A) as a set of token values, possibly including
// EOFType.
func (ga *LRAnalysis) Follow(A *Symbol) *treeset.Set {
	return ga.follow[A]
}

// DerivesEpsilon is true if A is nullable, i.e. epsilon ∈ FIRST(A).
func (ga *LRAnalysis) DerivesEpsilon(A *Symbol) bool {
	f := ga.first[A]
	return f != nil && f.Contains(EpsilonType)
}

// FirstOfString returns FIRST of a concatenation of symbols. The empty string
// has FIRST = {epsilon}. Scanning stops at the first symbol which does not
// derive epsilon.
func (ga *LRAnalysis) FirstOfString(syms []*Symbol) *treeset.Set {
	result := newTokSet()
	if len(syms) == 0 {
		result.Add(EpsilonType)
		return result
	}
	for i, sym := range syms {
		if sym.IsTerminal() {
			result.Add(sym.Value)
			return result
		}
		unionExceptEpsilon(result, ga.first[sym])
		if !ga.first[sym].Contains(EpsilonType) {
			return result
		}
		if i == len(syms)-1 { // every symbol of the string is nullable
			result.Add(EpsilonType)
		}
	}
	return result
}

// calculateFirst is a fixpoint iteration over all rules. FIRST sets only ever
// grow and are bounded by the terminal alphabet, so the iteration terminates.
func (ga *LRAnalysis) calculateFirst() {
	changed := true
	for changed {
		changed = false
		for _, r := range ga.g.rules {
			F := ga.first[r.LHS]
			before := F.Size()
			n := 0 // number of nullable symbols scanned
			for _, sym := range r.rhs {
				if sym.IsTerminal() {
					F.Add(sym.Value)
					break
				}
				unionExceptEpsilon(F, ga.first[sym])
				if !ga.first[sym].Contains(EpsilonType) {
					break
				}
				n++
			}
			if n == len(r.rhs) { // covers the epsilon-production case, too
				F.Add(EpsilonType)
			}
			if F.Size() > before {
				changed = true
			}
		}
	}
	ga.g.EachNonTerminal(func(A *Symbol) interface{} {
		tracer().Debugf("FIRST(%s) = %v", A, ga.first[A].Values())
		return nil
	})
}

// calculateFollow is a fixpoint iteration over all rules, run after
// calculateFirst. FOLLOW of the start symbol is seeded with the end-of-input
// marker.
func (ga *LRAnalysis) calculateFollow() {
	ga.follow[ga.g.rules[0].LHS].Add(EOFType)
	changed := true
	for changed {
		changed = false
		for _, r := range ga.g.rules {
			for i, B := range r.rhs {
				if B.IsTerminal() {
					continue
				}
				beta := r.rhs[i+1:]
				fb := ga.FirstOfString(beta)
				F := ga.follow[B]
				before := F.Size()
				unionExceptEpsilon(F, fb)
				if fb.Contains(EpsilonType) { // beta empty or nullable
					union(F, ga.follow[r.LHS])
				}
				if F.Size() > before {
					changed = true
				}
			}
		}
	}
	ga.g.EachNonTerminal(func(A *Symbol) interface{} {
		tracer().Debugf("FOLLOW(%s) = %v", A, ga.follow[A].Values())
		return nil
	})
}

// --- Token sets -------------------------------------------------------------

// Sets of token values are ordered, which makes set dumps and table
// construction deterministic.
func newTokSet() *treeset.Set {
	return treeset.NewWith(utils.IntComparator)
}

func union(dst *treeset.Set, src *treeset.Set) {
	if src == nil {
		return
	}
	for _, v := range src.Values() {
		dst.Add(v)
	}
}

func unionExceptEpsilon(dst *treeset.Set, src *treeset.Set) {
	if src == nil {
		return
	}
	for _, v := range src.Values() {
		if v.(int) != EpsilonType {
			dst.Add(v)
		}
	}
}
