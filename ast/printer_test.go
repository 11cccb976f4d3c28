package ast_test

import (
	"testing"

	"github.com/kodelox/tlox/ast"
	"github.com/kodelox/tlox/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrinterParenthesizesExpression(t *testing.T) {
	expr := &ast.Binary{
		Left:     &ast.Literal{Value: 1.0},
		Operator: token.New(token.Plus, "+", nil, 1, 1),
		Right: &ast.Binary{
			Left:     &ast.Literal{Value: 2.0},
			Operator: token.New(token.Star, "*", nil, 1, 1),
			Right:    &ast.Literal{Value: 3.0},
		},
	}

	p := &ast.Printer{}
	out, err := p.Print(expr)
	require.NoError(t, err)
	assert.Equal(t, "(+ 1 (* 2 3))", out)
}

func TestPrinterHandlesNilLiteral(t *testing.T) {
	p := &ast.Printer{}
	out, err := p.Print(&ast.Literal{Value: nil})
	require.NoError(t, err)
	assert.Equal(t, "nil", out)
}
