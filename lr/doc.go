/*
Package lr implements the grammar analysis needed for deterministic parsing.

Building a Grammar

Grammars are specified using a grammar builder object. Clients add
rules, consisting of non-terminal symbols and terminals. Terminals
carry a token value of type int. Grammars may contain epsilon-productions.

Example:

    b := lr.NewGrammarBuilder("G")
    b.LHS("S").N("A").T("a", 1).End()  // S  ->  A a
    b.LHS("A").T("b", 2).End()         // A  ->  b
    b.LHS("A").Epsilon()               // A  ->

Alternatively rules may be given in textual form, one alternative per call.
Symbol names consisting of upper-case letters denote non-terminals, the
reserved literal 'e' denotes an empty right-hand side, and every other
symbol is a terminal (token values are assigned automatically):

    b := lr.NewGrammarBuilder("G")
    b.Production("E", "E + T")
    b.Production("E", "T")

When the grammar is frozen with b.Grammar(), it is augmented with a fresh
start rule S' ::= S, where S is the left-hand side of the first rule added.
The augmented rule always carries serial number 0.

Static Grammar Analysis

After the grammar is complete, it has to be analysed. For this end, the
grammar is subjected to an LRAnalysis object, which computes FIRST and
FOLLOW sets for all non-terminals of the grammar.

    ga := lr.Analysis(g)
    ga.First(A)    // FIRST(A) as a set of token values, 0 = epsilon
    ga.Follow(A)   // FOLLOW(A), may include lr.EOFType

Parser Construction

Using grammar analysis as input, a bottom-up parser can be constructed.
First a characteristic finite state machine (CFSM) is built from the
grammar. The CFSM will then be transformed into a GOTO table and an
ACTION table for an SLR(1) parser. If the grammar is not SLR(1), table
construction signals this with ErrNotSLR1 and no tables are handed out.
The CFSM is made available to the client for debugging purposes and can
be exported to Graphviz's Dot-format.

Example:

    lrgen := lr.NewTableGenerator(ga)
    if err := lrgen.CreateTables(); err != nil {
        // grammar is not SLR(1)
    }

A predictive table for top-down parsing is derived from the same analysis
by package ll.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lr

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'gramr.lr'.
func tracer() tracing.Trace {
	return tracing.Select("gramr.lr")
}
