// Package loxerr defines the three error kinds used across the
// scan/parse/resolve/execute pipeline and the stderr reporting
// format shared by the CLI and REPL. Formatting helpers take an
// injected io.Writer rather than writing directly to os.Stderr from
// deep in the pipeline, so tests can capture diagnostics in a buffer.
package loxerr

import (
	"fmt"
	"io"

	"github.com/kodelox/tlox/token"
)

// ScanError is raised by the scanner on the first unrecoverable
// lexical error.
type ScanError struct {
	Message string
	Line    int
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("[line %d] Error: %s", e.Line, e.Message)
}

// ParseError is raised by the parser. It carries the offending token
// so the reporter can print "at 'LEXEME'" or "at end".
type ParseError struct {
	Message string
	Tok     token.Token
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("[line %d] Error %s: %s", e.Tok.Line, where(e.Tok), e.Message)
}

// ExecuteError covers both resolve-time and runtime errors, which
// share the same shape and the same exit code: tlox does not
// distinguish a static scope error from a dynamic type error at the
// reporting layer.
type ExecuteError struct {
	Message string
	Tok     token.Token
}

func (e *ExecuteError) Error() string {
	return fmt.Sprintf("[line %d] Error: %s", e.Tok.Line, e.Message)
}

func where(tok token.Token) string {
	if tok.IsEOF() {
		return "at end"
	}
	return fmt.Sprintf("at '%s'", tok.Lexeme)
}

// Reporter writes diagnostics to an injected io.Writer in tlox's
// canonical stderr format.
type Reporter struct {
	Writer io.Writer
}

// NewReporter creates a Reporter that writes to w (typically os.Stderr
// for the CLI, or a bytes.Buffer in tests).
func NewReporter(w io.Writer) *Reporter {
	return &Reporter{Writer: w}
}

// Report prints err in its canonical diagnostic form. Unrecognized
// error types fall back to a generic "Error: MSG" so the
// reporter never silently drops a diagnostic.
func (r *Reporter) Report(err error) {
	switch e := err.(type) {
	case *ScanError:
		fmt.Fprintf(r.Writer, "[line %d] Error: %s\n", e.Line, e.Message)
	case *ParseError:
		fmt.Fprintf(r.Writer, "[line %d] Error %s: %s\n", e.Tok.Line, where(e.Tok), e.Message)
	case *ExecuteError:
		fmt.Fprintf(r.Writer, "[line %d] Error: %s\n", e.Tok.Line, e.Message)
	default:
		fmt.Fprintf(r.Writer, "Error: %s\n", err.Error())
	}
}
