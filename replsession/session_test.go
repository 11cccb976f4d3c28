package replsession

import (
	"bytes"
	"testing"

	"github.com/kodelox/tlox/builtins"
	"github.com/kodelox/tlox/interpreter"
	"github.com/kodelox/tlox/resolver"
	"github.com/stretchr/testify/assert"
)

func newTestSession(w *bytes.Buffer) *Session {
	s := &Session{}
	s.in = interpreter.New(w)
	builtins.Install(s.in)
	s.bindings = make(resolver.Bindings)
	s.globals = builtins.GlobalNames()
	return s
}

func TestVariableDeclaredOnOneLineIsVisibleOnTheNext(t *testing.T) {
	var out bytes.Buffer
	s := newTestSession(&out)
	s.evalLine(&out, "var x = 41;")
	s.evalLine(&out, "print x + 1;")
	assert.Equal(t, "42\n", out.String())
}

func TestFunctionDeclaredOnOneLineIsCallableOnTheNext(t *testing.T) {
	var out bytes.Buffer
	s := newTestSession(&out)
	s.evalLine(&out, `fun greet() { print "hi"; }`)
	s.evalLine(&out, "greet();")
	assert.Equal(t, "hi\n", out.String())
}

func TestReferencingAnUndeclaredNameReportsAnError(t *testing.T) {
	var out bytes.Buffer
	s := newTestSession(&out)
	s.evalLine(&out, "print undeclared;")
	assert.Contains(t, out.String(), "Undefined variable 'undeclared'.")
}
