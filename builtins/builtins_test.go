package builtins_test

import (
	"bytes"
	"strconv"
	"testing"

	"github.com/kodelox/tlox/builtins"
	"github.com/kodelox/tlox/interpreter"
	"github.com/kodelox/tlox/parser"
	"github.com/kodelox/tlox/resolver"
	"github.com/kodelox/tlox/scanner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClockReturnsANumber(t *testing.T) {
	tokens, err := scanner.Scan(`print clock();`)
	require.NoError(t, err)
	stmts, err := parser.Parse(tokens)
	require.NoError(t, err)
	bindings, err := resolver.Resolve(stmts, builtins.GlobalNames())
	require.NoError(t, err)

	var out bytes.Buffer
	in := interpreter.New(&out)
	builtins.Install(in)
	in.SetBindings(bindings)
	require.NoError(t, in.Execute(stmts))

	_, err = strconv.ParseFloat(out.String()[:len(out.String())-1], 64)
	assert.NoError(t, err)
}
