package resolver_test

import (
	"testing"

	"github.com/kodelox/tlox/ast"
	"github.com/kodelox/tlox/loxerr"
	"github.com/kodelox/tlox/parser"
	"github.com/kodelox/tlox/resolver"
	"github.com/kodelox/tlox/scanner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustResolve(t *testing.T, src string, globals map[string]bool) (resolver.Bindings, []ast.Stmt) {
	t.Helper()
	tokens, err := scanner.Scan(src)
	require.NoError(t, err)
	stmts, err := parser.Parse(tokens)
	require.NoError(t, err)
	bindings, err := resolver.Resolve(stmts, globals)
	require.NoError(t, err)
	return bindings, stmts
}

func TestLocalVariableResolvesToDepthZero(t *testing.T) {
	bindings, stmts := mustResolve(t, "{ var a = 1; print a; }", nil)
	block := stmts[0].(*ast.Block)
	printStmt := block.Statements[1].(*ast.Print)
	v := printStmt.E.(*ast.Variable)
	depth, ok := bindings[v]
	require.True(t, ok)
	assert.Equal(t, 0, depth)
}

func TestOuterVariableResolvesWithNonZeroDepth(t *testing.T) {
	bindings, stmts := mustResolve(t, "{ var a = 1; { print a; } }", nil)
	outer := stmts[0].(*ast.Block)
	inner := outer.Statements[1].(*ast.Block)
	printStmt := inner.Statements[0].(*ast.Print)
	v := printStmt.E.(*ast.Variable)
	depth, ok := bindings[v]
	require.True(t, ok)
	assert.Equal(t, 1, depth)
}

func TestUndeclaredGlobalIsResolveError(t *testing.T) {
	tokens, err := scanner.Scan("print a;")
	require.NoError(t, err)
	stmts, err := parser.Parse(tokens)
	require.NoError(t, err)
	_, err = resolver.Resolve(stmts, nil)
	require.Error(t, err)
	var execErr *loxerr.ExecuteError
	require.ErrorAs(t, err, &execErr)
	assert.Equal(t, "Undefined variable 'a'.", execErr.Message)
}

func TestUseBeforeDeclarationInOwnInitializerIsError(t *testing.T) {
	tokens, err := scanner.Scan("{ var a = a; }")
	require.NoError(t, err)
	stmts, err := parser.Parse(tokens)
	require.NoError(t, err)
	_, err = resolver.Resolve(stmts, nil)
	require.Error(t, err)
	var execErr *loxerr.ExecuteError
	require.ErrorAs(t, err, &execErr)
	assert.Equal(t, "Can't read local variable in its own initializer.", execErr.Message)
}

func TestDoubleDeclarationInSameScopeIsError(t *testing.T) {
	tokens, err := scanner.Scan("{ var a = 1; var a = 2; }")
	require.NoError(t, err)
	stmts, err := parser.Parse(tokens)
	require.NoError(t, err)
	_, err = resolver.Resolve(stmts, nil)
	require.Error(t, err)
	var execErr *loxerr.ExecuteError
	require.ErrorAs(t, err, &execErr)
	assert.Equal(t, "Already a variable with this name in this scope.", execErr.Message)
}

func TestFunctionParametersAreResolvedInsideBody(t *testing.T) {
	bindings, stmts := mustResolve(t, "fun f(a) { print a; }", nil)
	fn := stmts[0].(*ast.Function)
	printStmt := fn.Body.Statements[0].(*ast.Print)
	v := printStmt.E.(*ast.Variable)
	depth, ok := bindings[v]
	require.True(t, ok)
	assert.Equal(t, 0, depth)
}

func TestInitialScopeSeedsGlobalVisibility(t *testing.T) {
	// Names present in the initial (root) scope -- e.g. built-ins --
	// resolve at depth 0 from top level, since the root scope doubles
	// as the global environment itself.
	bindings, stmts := mustResolve(t, "print clock;", map[string]bool{"clock": true})
	printStmt := stmts[0].(*ast.Print)
	v := printStmt.E.(*ast.Variable)
	depth, ok := bindings[v]
	require.True(t, ok)
	assert.Equal(t, 0, depth)
}
