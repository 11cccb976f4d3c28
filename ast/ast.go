/*
Package ast defines the Lox expression and statement node families.

Each node kind gets one Visit method on a small dispatch interface, so
the interpreter and the printer implement these interfaces instead of
type-switching by hand (the resolver type-switches over node kinds). Every bindable node (Variable,
Assign) is a pointer type -- pointer identity is what the resolver
uses as a map key, so distinct source occurrences of the same name
never collapse into one key, without any extra bookkeeping.
*/
package ast

import "github.com/kodelox/tlox/token"

// Node is the common ancestor of every AST node. It exists so the
// resolver's Bindings map (keyed on Node) can accept both Expr and
// Stmt nodes uniformly, though in practice only *Variable and *Assign
// are ever used as keys (see resolver.Bindings).
type Node interface {
	astNode()
}

// Expr is implemented by every expression node.
type Expr interface {
	Node
	exprNode()
	Accept(v ExprVisitor) (any, error)
}

// Stmt is implemented by every statement node.
type Stmt interface {
	Node
	stmtNode()
	Accept(v StmtVisitor) error
}

// ExprVisitor dispatches over the expression node variants.
type ExprVisitor interface {
	VisitLiteral(e *Literal) (any, error)
	VisitVariable(e *Variable) (any, error)
	VisitAssign(e *Assign) (any, error)
	VisitUnary(e *Unary) (any, error)
	VisitBinary(e *Binary) (any, error)
	VisitLogical(e *Logical) (any, error)
	VisitGrouping(e *Grouping) (any, error)
	VisitCall(e *Call) (any, error)
}

// StmtVisitor dispatches over the statement node variants.
type StmtVisitor interface {
	VisitExpression(s *Expression) error
	VisitPrint(s *Print) error
	VisitVar(s *Var) error
	VisitBlock(s *Block) error
	VisitIf(s *If) error
	VisitWhile(s *While) error
	VisitFunction(s *Function) error
	VisitReturn(s *Return) error
}

// ---- Expressions ----

// Literal is a constant value baked into the source: a number, string,
// boolean, or nil.
type Literal struct {
	Value any
}

func (*Literal) astNode() {}
func (*Literal) exprNode() {}
func (e *Literal) Accept(v ExprVisitor) (any, error) { return v.VisitLiteral(e) }

// Variable is a read of a named binding. Each textual occurrence is a
// distinct *Variable value, even when the lexeme repeats elsewhere --
// this is the pointer-identity guarantee the resolver relies on.
type Variable struct {
	Name token.Token
}

func (*Variable) astNode() {}
func (*Variable) exprNode() {}
func (e *Variable) Accept(v ExprVisitor) (any, error) { return v.VisitVariable(e) }

// Assign writes Value into the binding named Name.
type Assign struct {
	Name  token.Token
	Value Expr
}

func (*Assign) astNode() {}
func (*Assign) exprNode() {}
func (e *Assign) Accept(v ExprVisitor) (any, error) { return v.VisitAssign(e) }

// Unary is a prefix operator application: -x or !x.
type Unary struct {
	Operator token.Token
	Right    Expr
}

func (*Unary) astNode() {}
func (*Unary) exprNode() {}
func (e *Unary) Accept(v ExprVisitor) (any, error) { return v.VisitUnary(e) }

// Binary is an infix arithmetic/comparison/equality operator
// application. and/or are modeled separately as Logical for
// short-circuit semantics.
type Binary struct {
	Left     Expr
	Operator token.Token
	Right    Expr
}

func (*Binary) astNode() {}
func (*Binary) exprNode() {}
func (e *Binary) Accept(v ExprVisitor) (any, error) { return v.VisitBinary(e) }

// Logical is `and`/`or`, distinguished from Binary because it
// short-circuits.
type Logical struct {
	Left     Expr
	Operator token.Token
	Right    Expr
}

func (*Logical) astNode() {}
func (*Logical) exprNode() {}
func (e *Logical) Accept(v ExprVisitor) (any, error) { return v.VisitLogical(e) }

// Grouping is a parenthesized subexpression.
type Grouping struct {
	Inner Expr
}

func (*Grouping) astNode() {}
func (*Grouping) exprNode() {}
func (e *Grouping) Accept(v ExprVisitor) (any, error) { return v.VisitGrouping(e) }

// Call invokes Callee with Arguments. ClosingParen anchors runtime
// errors (arity mismatch, non-callable callee) to a source position.
type Call struct {
	Callee       Expr
	ClosingParen token.Token
	Arguments    []Expr
}

func (*Call) astNode() {}
func (*Call) exprNode() {}
func (e *Call) Accept(v ExprVisitor) (any, error) { return v.VisitCall(e) }

// ---- Statements ----

// Expression evaluates E and discards the result.
type Expression struct {
	E Expr
}

func (*Expression) astNode() {}
func (*Expression) stmtNode() {}
func (s *Expression) Accept(v StmtVisitor) error { return v.VisitExpression(s) }

// Print evaluates E and writes its stringification followed by a
// newline to standard output.
type Print struct {
	E Expr
}

func (*Print) astNode() {}
func (*Print) stmtNode() {}
func (s *Print) Accept(v StmtVisitor) error { return v.VisitPrint(s) }

// Var declares Name, binding it to the evaluated Initializer.
// Initializer is *Literal{Value: nil} when the source omits it.
type Var struct {
	Name        token.Token
	Initializer Expr
}

func (*Var) astNode() {}
func (*Var) stmtNode() {}
func (s *Var) Accept(v StmtVisitor) error { return v.VisitVar(s) }

// Block introduces a new lexical scope around Statements.
type Block struct {
	Statements []Stmt
}

func (*Block) astNode() {}
func (*Block) stmtNode() {}
func (s *Block) Accept(v StmtVisitor) error { return v.VisitBlock(s) }

// If executes Then if Condition is truthy, else Else (which may be nil).
type If struct {
	Condition Expr
	Then      Stmt
	Else      Stmt
}

func (*If) astNode() {}
func (*If) stmtNode() {}
func (s *If) Accept(v StmtVisitor) error { return v.VisitIf(s) }

// While repeatedly executes Body while Condition is truthy.
type While struct {
	Condition Expr
	Body      Stmt
}

func (*While) astNode() {}
func (*While) stmtNode() {}
func (s *While) Accept(v StmtVisitor) error { return v.VisitWhile(s) }

// Function declares a named function, capturing the defining
// environment as its closure at execution time.
type Function struct {
	Name       token.Token
	Parameters []token.Token
	Body       *Block
}

func (*Function) astNode() {}
func (*Function) stmtNode() {}
func (s *Function) Accept(v StmtVisitor) error { return v.VisitFunction(s) }

// Return raises a non-local exit from the enclosing function call with
// the evaluated result of E (nil literal if the source omits it).
type Return struct {
	Keyword token.Token
	E       Expr
}

func (*Return) astNode() {}
func (*Return) stmtNode() {}
func (s *Return) Accept(v StmtVisitor) error { return v.VisitReturn(s) }
