/*
Package replsession implements the interactive read-eval-print loop:
one line in, immediately scanned, parsed, resolved, and executed
against a persistent interpreter and binding set that outlive the
line. Uses chzyer/readline for line editing and history, and
fatih/color for colored diagnostics, wrapping each line's evaluation
in a panic-recovery guard.
*/
package replsession

import (
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/kodelox/tlox/ast"
	"github.com/kodelox/tlox/builtins"
	"github.com/kodelox/tlox/interpreter"
	"github.com/kodelox/tlox/loxerr"
	"github.com/kodelox/tlox/parser"
	"github.com/kodelox/tlox/resolver"
	"github.com/kodelox/tlox/scanner"
)

var (
	blueColor   = color.New(color.FgBlue)
	yellowColor = color.New(color.FgYellow)
	redColor    = color.New(color.FgRed)
	greenColor  = color.New(color.FgGreen)
	cyanColor   = color.New(color.FgCyan)
)

// Session is one REPL instance: banner text plus the prompt shown at
// each line.
type Session struct {
	Banner  string
	Version string
	Line    string
	Prompt  string

	in       *interpreter.Interpreter
	bindings resolver.Bindings
	globals  map[string]bool
}

// New creates a Session holding the banner text and prompt. The
// interpreter, its built-ins and the resolver's initial scope are set
// up by Start, once the output writer is known.
func New(banner, version, line, prompt string) *Session {
	s := &Session{Banner: banner, Version: version, Line: line, Prompt: prompt}
	return s
}

func (s *Session) printBanner(w io.Writer) {
	blueColor.Fprintf(w, "%s\n", s.Line)
	greenColor.Fprintf(w, "%s\n", s.Banner)
	blueColor.Fprintf(w, "%s\n", s.Line)
	yellowColor.Fprintln(w, "Version: "+s.Version)
	blueColor.Fprintf(w, "%s\n", s.Line)
	cyanColor.Fprintf(w, "%s\n", "Welcome to tlox!")
	cyanColor.Fprintf(w, "%s\n", "Type your code and press enter")
	cyanColor.Fprintf(w, "%s\n", "Type '.exit' to quit")
	cyanColor.Fprintf(w, "%s\n", "Use up/down arrows to navigate command history")
	blueColor.Fprintf(w, "%s\n", s.Line)
}

// Start runs the interactive loop against w until EOF, an error from
// readline, or the ".exit" command. Each line is independently
// scanned/parsed/resolved, then executed against the same interpreter
// and bindings as every prior line, so variables and functions
// declared on one line remain visible on the next.
func (s *Session) Start(w io.Writer) {
	s.printBanner(w)

	rl, err := readline.New(s.Prompt)
	if err != nil {
		panic(err)
	}
	defer rl.Close()

	s.in = interpreter.New(w)
	builtins.Install(s.in)
	s.bindings = make(resolver.Bindings)
	s.globals = builtins.GlobalNames()

	for {
		line, err := rl.Readline()
		if err != nil {
			w.Write([]byte("Good Bye!\n"))
			return
		}

		line = strings.Trim(line, " \n\t\r")
		if line == "" {
			continue
		}
		if line == ".exit" {
			w.Write([]byte("Good Bye!\n"))
			return
		}

		rl.SaveHistory(line)
		s.evalLine(w, line)
	}
}

// evalLine runs one line through the full pipeline, reporting the
// first diagnostic in red and otherwise leaving output to any `print`
// statements the line itself contains; the REPL does not auto-print
// bare expression results.
func (s *Session) evalLine(w io.Writer, line string) {
	defer func() {
		if recovered := recover(); recovered != nil {
			redColor.Fprintf(w, "[RUNTIME ERROR] %v\n", recovered)
		}
	}()

	reporter := loxerr.NewReporter(redWriter{w})

	tokens, err := scanner.Scan(line)
	if err != nil {
		reporter.Report(err)
		return
	}

	stmts, err := parser.Parse(tokens)
	if err != nil {
		reporter.Report(err)
		return
	}

	newBindings, err := resolver.Resolve(stmts, s.globals)
	if err != nil {
		reporter.Report(err)
		return
	}
	s.bindings.Merge(newBindings)
	s.in.SetBindings(s.bindings)

	if err := s.in.Execute(stmts); err != nil {
		reporter.Report(err)
		return
	}

	for _, name := range topLevelNames(stmts) {
		s.globals[name] = true
	}
}

// topLevelNames lists the names a line declares directly at its own
// top level (var and function declarations), so the next line's
// resolver pass can see them as globals instead of reporting them
// undefined.
func topLevelNames(statements []ast.Stmt) []string {
	var names []string
	for _, s := range statements {
		switch n := s.(type) {
		case *ast.Var:
			names = append(names, n.Name.Lexeme)
		case *ast.Function:
			names = append(names, n.Name.Lexeme)
		}
	}
	return names
}

// redWriter routes loxerr.Reporter's plain-text diagnostics through
// fatih/color so REPL errors stand out from ordinary output.
type redWriter struct{ w io.Writer }

func (r redWriter) Write(p []byte) (int, error) {
	redColor.Fprint(r.w, string(p))
	return len(p), nil
}
