package ast

import (
	"bytes"
	"fmt"
)

// Printer renders an expression tree as a fully-parenthesized string,
// e.g. "(+ 1 (* 2 3))", a debugging aid exposed as `tlox -ast`.
type Printer struct {
	buf bytes.Buffer
}

// Print renders e and returns the result.
func (p *Printer) Print(e Expr) (string, error) {
	p.buf.Reset()
	_, err := e.Accept(p)
	if err != nil {
		return "", err
	}
	return p.buf.String(), nil
}

func (p *Printer) parenthesize(name string, exprs ...Expr) (any, error) {
	p.buf.WriteString("(")
	p.buf.WriteString(name)
	for _, e := range exprs {
		p.buf.WriteString(" ")
		if _, err := e.Accept(p); err != nil {
			return nil, err
		}
	}
	p.buf.WriteString(")")
	return nil, nil
}

func (p *Printer) VisitLiteral(e *Literal) (any, error) {
	if e.Value == nil {
		p.buf.WriteString("nil")
		return nil, nil
	}
	p.buf.WriteString(fmt.Sprintf("%v", e.Value))
	return nil, nil
}

func (p *Printer) VisitVariable(e *Variable) (any, error) {
	p.buf.WriteString(e.Name.Lexeme)
	return nil, nil
}

func (p *Printer) VisitAssign(e *Assign) (any, error) {
	return p.parenthesize("= "+e.Name.Lexeme, e.Value)
}

func (p *Printer) VisitUnary(e *Unary) (any, error) {
	return p.parenthesize(e.Operator.Lexeme, e.Right)
}

func (p *Printer) VisitBinary(e *Binary) (any, error) {
	return p.parenthesize(e.Operator.Lexeme, e.Left, e.Right)
}

func (p *Printer) VisitLogical(e *Logical) (any, error) {
	return p.parenthesize(e.Operator.Lexeme, e.Left, e.Right)
}

func (p *Printer) VisitGrouping(e *Grouping) (any, error) {
	return p.parenthesize("group", e.Inner)
}

func (p *Printer) VisitCall(e *Call) (any, error) {
	return p.parenthesize("call", append([]Expr{e.Callee}, e.Arguments...)...)
}
