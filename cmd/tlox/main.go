/*
Package main is the entry point for tlox, a tree-walking Lox
interpreter.

Usage:

	tlox                Start the interactive REPL
	tlox <path>         Execute a Lox source file
	tlox -ast <path>    Print each top-level expression statement
	                    (Lisp-style) instead of running it, a
	                    debugging aid

The same fatih/color-based stderr reporting and exit-code discipline
are shared between the REPL and one-shot file execution.
*/
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/kodelox/tlox/ast"
	"github.com/kodelox/tlox/builtins"
	"github.com/kodelox/tlox/interpreter"
	"github.com/kodelox/tlox/loxerr"
	"github.com/kodelox/tlox/parser"
	"github.com/kodelox/tlox/replsession"
	"github.com/kodelox/tlox/resolver"
	"github.com/kodelox/tlox/scanner"
)

const (
	banner = `  _   _
 | |_| |_____  __
 | __| |/ _ \ \/ /
 | |_| | (_) >  <
  \__|_|\___/_/\_\
`
	version = "v0.1.0"
	line    = "----------------------------------------------------------------"
	prompt  = "tlox > "
)

var redColor = color.New(color.FgRed)

func main() {
	args := os.Args[1:]

	if len(args) == 2 && args[0] == "-ast" {
		printAST(args[1])
		return
	}

	if len(args) == 1 {
		runFile(args[0])
		return
	}

	session := replsession.New(banner, version, line, prompt)
	session.Start(os.Stdout)
}

// runFile executes the Lox source at path, exiting 65 for a
// scan/parse error, 70 for a resolve/execute error, 0 on success.
func runFile(path string) {
	source, err := os.ReadFile(path)
	if err != nil {
		redColor.Fprintf(os.Stderr, "Could not read file '%s': %v\n", path, err)
		os.Exit(1)
	}

	reporter := loxerr.NewReporter(os.Stderr)

	tokens, err := scanner.Scan(string(source))
	if err != nil {
		reporter.Report(err)
		os.Exit(65)
	}

	stmts, err := parser.Parse(tokens)
	if err != nil {
		reporter.Report(err)
		os.Exit(65)
	}

	globals := builtins.GlobalNames()
	bindings, err := resolver.Resolve(stmts, globals)
	if err != nil {
		reporter.Report(err)
		os.Exit(70)
	}

	in := interpreter.New(os.Stdout)
	builtins.Install(in)
	in.SetBindings(bindings)

	if err := in.Execute(stmts); err != nil {
		reporter.Report(err)
		os.Exit(70)
	}
}

// printAST parses the file at path and prints each top-level
// expression statement in fully-parenthesized form. Every other
// statement kind (print, var, block, control flow) is skipped and
// produces no output, since ast.Printer only implements ExprVisitor.
func printAST(path string) {
	source, err := os.ReadFile(path)
	if err != nil {
		redColor.Fprintf(os.Stderr, "Could not read file '%s': %v\n", path, err)
		os.Exit(1)
	}

	reporter := loxerr.NewReporter(os.Stderr)

	tokens, scanErr := scanner.Scan(string(source))
	if scanErr != nil {
		reporter.Report(scanErr)
		os.Exit(65)
	}

	stmts, parseErr := parser.Parse(tokens)
	if parseErr != nil {
		reporter.Report(parseErr)
		os.Exit(65)
	}

	p := &ast.Printer{}
	for _, s := range stmts {
		if exprStmt, ok := s.(*ast.Expression); ok {
			out, err := p.Print(exprStmt.E)
			if err != nil {
				redColor.Fprintf(os.Stderr, "%v\n", err)
				continue
			}
			fmt.Println(out)
		}
	}
}
