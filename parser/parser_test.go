package parser_test

import (
	"testing"

	"github.com/kodelox/tlox/ast"
	"github.com/kodelox/tlox/loxerr"
	"github.com/kodelox/tlox/parser"
	"github.com/kodelox/tlox/scanner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, src string) []ast.Stmt {
	t.Helper()
	tokens, err := scanner.Scan(src)
	require.NoError(t, err)
	stmts, err := parser.Parse(tokens)
	require.NoError(t, err)
	return stmts
}

func TestEmptySourceYieldsEmptyStatementList(t *testing.T) {
	stmts := mustParse(t, "")
	assert.Empty(t, stmts)
}

func TestVarDeclarationWithoutInitializerDefaultsToNil(t *testing.T) {
	stmts := mustParse(t, "var x;")
	require.Len(t, stmts, 1)
	v := stmts[0].(*ast.Var)
	lit := v.Initializer.(*ast.Literal)
	assert.Nil(t, lit.Value)
}

func TestForDesugarsToBlockWhile(t *testing.T) {
	stmts := mustParse(t, "for (var i = 0; i < 10; i = i + 1) print i;")
	require.Len(t, stmts, 1)
	outer := stmts[0].(*ast.Block)
	require.Len(t, outer.Statements, 2)
	_, isVar := outer.Statements[0].(*ast.Var)
	assert.True(t, isVar)
	whileStmt, isWhile := outer.Statements[1].(*ast.While)
	require.True(t, isWhile)
	body := whileStmt.Body.(*ast.Block)
	require.Len(t, body.Statements, 2)
}

func TestForWithMissingConditionDefaultsToTrue(t *testing.T) {
	stmts := mustParse(t, "for (;;) print 1;")
	whileStmt := stmts[0].(*ast.While)
	lit := whileStmt.Condition.(*ast.Literal)
	assert.Equal(t, true, lit.Value)
}

func TestInvalidAssignmentTargetDoesNotSynchronize(t *testing.T) {
	tokens, err := scanner.Scan("1 = 2; print 3;")
	require.NoError(t, err)
	_, err = parser.Parse(tokens)
	require.Error(t, err)
	var parseErr *loxerr.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "Invalid assignment target.", parseErr.Message)
}

func TestMissingExpressionReportsExpectExpression(t *testing.T) {
	tokens, err := scanner.Scan("print;")
	require.NoError(t, err)
	_, err = parser.Parse(tokens)
	require.Error(t, err)
	var parseErr *loxerr.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "Expect expression.", parseErr.Message)
	assert.Equal(t, ";", parseErr.Tok.Lexeme)
}

func TestParserCollectsFirstErrorAndContinues(t *testing.T) {
	// First statement has an error (missing ';'), reported at the 'var'
	// on line 2; synchronization discards tokens up to the next ';' and
	// the parser continues to the end, reporting only the first error.
	tokens, err := scanner.Scan("var x = 1\nvar y = 2;")
	require.NoError(t, err)
	_, err = parser.Parse(tokens)
	require.Error(t, err)
	var parseErr *loxerr.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, 2, parseErr.Tok.Line)
}

func TestFunctionDeclarationParsesParamsAndBody(t *testing.T) {
	stmts := mustParse(t, "fun add(a, b) { return a + b; }")
	require.Len(t, stmts, 1)
	fn := stmts[0].(*ast.Function)
	assert.Equal(t, "add", fn.Name.Lexeme)
	require.Len(t, fn.Parameters, 2)
	require.Len(t, fn.Body.Statements, 1)
	_, isReturn := fn.Body.Statements[0].(*ast.Return)
	assert.True(t, isReturn)
}

func TestCallExpressionParsesArguments(t *testing.T) {
	stmts := mustParse(t, "foo(1, 2, 3);")
	exprStmt := stmts[0].(*ast.Expression)
	call := exprStmt.E.(*ast.Call)
	assert.Len(t, call.Arguments, 3)
}

func TestLogicalOperatorsParseAsLogicalNode(t *testing.T) {
	stmts := mustParse(t, "a and b or c;")
	exprStmt := stmts[0].(*ast.Expression)
	_, ok := exprStmt.E.(*ast.Logical)
	assert.True(t, ok)
}
