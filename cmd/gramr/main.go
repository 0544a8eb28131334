package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"

	"github.com/npillmayer/gramr/lr"
	"github.com/npillmayer/gramr/lr/ll"
	"github.com/npillmayer/gramr/lr/scanner"
	"github.com/npillmayer/gramr/lr/scanner/lexmach"
	"github.com/npillmayer/gramr/lr/slr"
)

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

// tracer traces with key 'gramr.lr'.
func tracer() tracing.Trace {
	return tracing.Select("gramr.lr")
}

// main() starts an interactive CLI. Users enter grammar rules, one rule per
// line, alternatives separated by '|':
//
//    gramr> E -> E + T | T
//    gramr> T -> T * F | F
//    gramr> F -> ( E ) | id
//
// An empty line finishes the grammar. GRAMR analyzes it, reports the detected
// grammar class (LL(1) and/or SLR(1), or neither) and then reads test token
// sequences, answering with an accept/reject verdict per line.
func main() {
	initDisplay()
	gtrace.SyntaxTracer = gologadapter.New()
	tlevel := flag.String("trace", "Error", "Trace level [Debug|Info|Error]")
	scanmode := flag.String("scan", "fields", "Scanner mode [fields|lex]")
	dump := flag.Bool("dump", false, "Export parse tables (HTML) and CFSM (Dot)")
	flag.Parse()
	tracer().SetTraceLevel(traceLevel(*tlevel))
	pterm.Info.Println("Welcome to GRAMR")
	pterm.Info.Println("Enter rules like 'E -> E + T | T', empty line to finish")
	repl, err := readline.New("gramr> ")
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	b := lr.NewGrammarBuilder("G")
	rulecnt := 0
	for {
		line, err := repl.Readline()
		if err != nil { // io.EOF or interrupt
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			break
		}
		if addRule(b, line) {
			rulecnt++
		}
	}
	if rulecnt == 0 {
		pterm.Error.Println("no grammar rules given")
		os.Exit(1)
	}
	g, err := b.Grammar()
	if err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(1)
	}
	g.Dump() // only visible in debug mode
	//
	// grammar analysis and table construction for both parser families
	ga := lr.Analysis(g)
	lrgen := lr.NewTableGenerator(ga)
	errSLR := lrgen.CreateTables()
	lltable, errLL := ll.NewTableGenerator(ga).CreateTable()
	isSLR, isLL := errSLR == nil, errLL == nil
	pterm.Info.Println("Grammar class: " + verdict(isLL, isSLR))
	if *dump && isSLR {
		dumpTables(g, lrgen)
	}
	if !isSLR && !isLL {
		pterm.Error.Println("cannot recognize input with this grammar")
		os.Exit(1)
	}
	useLL := isLL
	if isLL && isSLR {
		useLL = askParser(repl)
	}
	//
	// recognize test inputs, one per line
	pterm.Info.Println("Enter token sequences to test, empty line to quit")
	repl.SetPrompt(">> ")
	for {
		line, err := repl.Readline()
		if err != nil {
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			break
		}
		scan, err := makeScanner(g, *scanmode, line)
		if err != nil {
			pterm.Error.Println(err.Error())
			continue
		}
		var accept bool
		if useLL {
			p := ll.NewParser(g, lltable)
			accept, err = p.Parse(scan)
		} else {
			p := slr.NewParser(g, lrgen.GotoTable(), lrgen.ActionTable())
			accept, err = p.Parse(lrgen.CFSM().S0, scan)
		}
		if err != nil {
			pterm.Error.Println(err.Error())
			continue
		}
		if accept {
			pterm.Success.Println("yes")
		} else {
			pterm.Error.Println("no")
		}
	}
}

// addRule splits a rule line on '->' and '|' and feeds each alternative to
// the grammar builder. Unusable lines are reported and skipped.
func addRule(b *lr.GrammarBuilder, line string) bool {
	parts := strings.SplitN(line, "->", 2)
	if len(parts) != 2 {
		pterm.Error.Println("rules look like 'E -> E + T | T', skipping")
		return false
	}
	head := strings.TrimSpace(parts[0])
	ok := true
	for _, alt := range strings.Split(parts[1], "|") {
		if err := b.Production(head, strings.TrimSpace(alt)); err != nil {
			pterm.Error.Println(err.Error())
			ok = false
		}
	}
	return ok
}

func verdict(isLL, isSLR bool) string {
	switch {
	case isLL && isSLR:
		return "LL(1) and SLR(1)"
	case isLL:
		return "LL(1)"
	case isSLR:
		return "SLR(1)"
	}
	return "neither LL(1) nor SLR(1)"
}

// askParser lets the user choose between the two parsers, if the grammar
// supports both.
func askParser(repl *readline.Instance) bool {
	repl.SetPrompt("parser [LL/SLR]> ")
	for {
		line, err := repl.Readline()
		if err != nil {
			return false
		}
		switch strings.ToUpper(strings.TrimSpace(line)) {
		case "LL":
			return true
		case "SLR":
			return false
		}
		pterm.Error.Println("please answer 'LL' or 'SLR'")
	}
}

// makeScanner creates a tokenizer for one input line. Mode "fields" splits
// the line on whitespace; mode "lex" compiles a lexmachine DFA from the
// grammar's terminal literals, so tokens need no separating blanks.
func makeScanner(g *lr.Grammar, mode string, line string) (scanner.Tokenizer, error) {
	if mode == "lex" {
		adapter, err := lexmach.NewLMAdapter(nil, g.TokenTypes())
		if err != nil {
			return nil, err
		}
		return adapter.Scanner(line)
	}
	return scanner.Fields(g.TokenTypes(), line), nil
}

func dumpTables(g *lr.Grammar, lrgen *lr.TableGenerator) {
	gotofile, err := os.Create(g.Name + "_goto.html")
	if err != nil {
		pterm.Error.Println(err.Error())
		return
	}
	defer gotofile.Close()
	lr.GotoTableAsHTML(lrgen, gotofile)
	actionfile, err := os.Create(g.Name + "_action.html")
	if err != nil {
		pterm.Error.Println(err.Error())
		return
	}
	defer actionfile.Close()
	lr.ActionTableAsHTML(lrgen, actionfile)
	lrgen.CFSM().CFSM2GraphViz(fmt.Sprintf("./%s_cfsm.dot", g.Name))
	pterm.Info.Println("tables exported")
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

func traceLevel(l string) tracing.TraceLevel {
	switch strings.ToLower(l) {
	case "debug":
		return tracing.LevelDebug
	case "info":
		return tracing.LevelInfo
	}
	return tracing.LevelError
}
