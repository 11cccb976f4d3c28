/*
Package interpreter implements the tree-walking evaluator: the final
stage of the scan -> parse -> resolve -> interpret pipeline. It merges
expression evaluation and statement execution into a single
ExprVisitor+StmtVisitor, walking the resolved AST directly rather than
compiling to any intermediate form.
*/
package interpreter

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/kodelox/tlox/ast"
	"github.com/kodelox/tlox/loxerr"
	"github.com/kodelox/tlox/resolver"
	"github.com/kodelox/tlox/token"
)

// Value is the dynamic runtime value of any Lox expression: nil, bool,
// float64, string, or a Callable. Lox only ever needs these five
// shapes, so a plain any plus a handful of type switches covers the
// whole value model without a closed interface hierarchy.
type Value = any

// returnSignal is how a `return` statement unwinds the Go call stack
// back to the nearest enclosing UserFunction.Call. It satisfies the
// error interface purely so it can travel through the existing
// Stmt-execution error-return plumbing, but it is never passed to a
// loxerr.Reporter: it is intercepted at the function-call boundary,
// or, for a return outside any function, by Execute, which reports an
// ExecuteError in its place. Return is control flow, not a reportable
// error.
type returnSignal struct {
	Value Value
}

func (r *returnSignal) Error() string { return "return outside function" }

// Interpreter executes a resolved statement list against a persistent
// global environment. One Interpreter can run many top-level Execute
// calls in sequence, as a REPL does one per input line, sharing
// globals and bindings across all of them.
type Interpreter struct {
	Globals  *Environment
	bindings resolver.Bindings
	env      *Environment
	Stdout   interface{ Write([]byte) (int, error) }
}

// New creates an Interpreter with an empty global environment. Callers
// typically call DefineGlobal for every built-in (e.g. clock, wired by
// the builtins package) before the first Execute.
func New(stdout interface{ Write([]byte) (int, error) }) *Interpreter {
	globals := NewEnvironment(nil)
	return &Interpreter{Globals: globals, env: globals, bindings: make(resolver.Bindings), Stdout: stdout}
}

// DefineGlobal binds name in the global environment, for wiring
// built-ins ahead of execution.
func (in *Interpreter) DefineGlobal(name string, value Value) {
	in.Globals.Define(name, value)
}

// SetBindings installs the resolver output to be consulted by variable
// lookups and assignments for the statements about to be executed,
// replacing the previously installed map. To keep bindings across
// calls, a caller merges each new result into one map and passes that
// map every time, as the REPL session does with Bindings.Merge.
func (in *Interpreter) SetBindings(b resolver.Bindings) {
	in.bindings = b
}

// Execute runs statements against the global environment, returning
// the first *loxerr.ExecuteError encountered.
func (in *Interpreter) Execute(statements []ast.Stmt) error {
	for _, s := range statements {
		if err := in.exec(s); err != nil {
			if _, ok := err.(*returnSignal); ok {
				return &loxerr.ExecuteError{Message: "Can't return from top-level code."}
			}
			return err
		}
	}
	return nil
}

func (in *Interpreter) exec(s ast.Stmt) error {
	return s.Accept(in)
}

// executeBlock runs statements against a nested scope, restoring the
// previous scope on every exit path (normal, error, or returnSignal)
// so a panic-free return unwind never leaves the interpreter's current
// scope corrupted.
func (in *Interpreter) executeBlock(statements []ast.Stmt, scope *Environment) error {
	previous := in.env
	in.env = scope
	defer func() { in.env = previous }()

	for _, s := range statements {
		if err := in.exec(s); err != nil {
			return err
		}
	}
	return nil
}

// --- StmtVisitor ---

func (in *Interpreter) VisitExpression(s *ast.Expression) error {
	_, err := in.eval(s.E)
	return err
}

func (in *Interpreter) VisitPrint(s *ast.Print) error {
	v, err := in.eval(s.E)
	if err != nil {
		return err
	}
	fmt.Fprintln(in.Stdout, Stringify(v))
	return nil
}

func (in *Interpreter) VisitVar(s *ast.Var) error {
	var value Value
	if s.Initializer != nil {
		v, err := in.eval(s.Initializer)
		if err != nil {
			return err
		}
		value = v
	}
	in.env.Define(s.Name.Lexeme, value)
	return nil
}

func (in *Interpreter) VisitBlock(s *ast.Block) error {
	return in.executeBlock(s.Statements, NewEnvironment(in.env))
}

func (in *Interpreter) VisitIf(s *ast.If) error {
	cond, err := in.eval(s.Condition)
	if err != nil {
		return err
	}
	if isTruthy(cond) {
		return in.exec(s.Then)
	}
	if s.Else != nil {
		return in.exec(s.Else)
	}
	return nil
}

func (in *Interpreter) VisitWhile(s *ast.While) error {
	for {
		cond, err := in.eval(s.Condition)
		if err != nil {
			return err
		}
		if !isTruthy(cond) {
			return nil
		}
		if err := in.exec(s.Body); err != nil {
			return err
		}
	}
}

func (in *Interpreter) VisitFunction(s *ast.Function) error {
	fn := &UserFunction{Decl: s, Closure: in.env}
	in.env.Define(s.Name.Lexeme, fn)
	return nil
}

func (in *Interpreter) VisitReturn(s *ast.Return) error {
	var value Value
	if s.E != nil {
		v, err := in.eval(s.E)
		if err != nil {
			return err
		}
		value = v
	}
	return &returnSignal{Value: value}
}

// --- ExprVisitor ---

func (in *Interpreter) eval(e ast.Expr) (Value, error) {
	return e.Accept(in)
}

func (in *Interpreter) VisitLiteral(e *ast.Literal) (any, error) {
	return e.Value, nil
}

func (in *Interpreter) VisitVariable(e *ast.Variable) (any, error) {
	depth, ok := in.bindings[e]
	if !ok {
		return in.env.Get(e.Name, -1)
	}
	return in.env.Get(e.Name, depth)
}

func (in *Interpreter) VisitAssign(e *ast.Assign) (any, error) {
	value, err := in.eval(e.Value)
	if err != nil {
		return nil, err
	}
	depth, ok := in.bindings[e]
	if !ok {
		if err := in.env.Assign(e.Name, value, -1); err != nil {
			return nil, err
		}
		return value, nil
	}
	if err := in.env.Assign(e.Name, value, depth); err != nil {
		return nil, err
	}
	return value, nil
}

func (in *Interpreter) VisitUnary(e *ast.Unary) (any, error) {
	right, err := in.eval(e.Right)
	if err != nil {
		return nil, err
	}
	switch e.Operator.Kind {
	case token.Minus:
		n, ok := right.(float64)
		if !ok {
			return nil, &loxerr.ExecuteError{Message: "Unsupported operand for '-', must be 'number'.", Tok: e.Operator}
		}
		return -n, nil
	case token.Bang:
		return !isTruthy(right), nil
	}
	panic("interpreter: unreachable unary operator " + string(e.Operator.Kind))
}

func (in *Interpreter) VisitBinary(e *ast.Binary) (any, error) {
	left, err := in.eval(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := in.eval(e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Operator.Kind {
	case token.Minus, token.Slash, token.Star, token.Greater, token.GreaterEqual, token.Less, token.LessEqual:
		return in.numericBinary(e.Operator, left, right)
	case token.Plus:
		return in.plus(e.Operator, left, right)
	case token.EqualEqual:
		return isEqual(left, right), nil
	case token.BangEqual:
		return !isEqual(left, right), nil
	}
	panic("interpreter: unreachable binary operator " + string(e.Operator.Kind))
}

func (in *Interpreter) numericBinary(op token.Token, left, right Value) (any, error) {
	l, lok := left.(float64)
	r, rok := right.(float64)
	if !lok || !rok {
		return nil, &loxerr.ExecuteError{Message: "Unsupported operands for '" + string(op.Kind) + "', must both be 'number'.", Tok: op}
	}
	switch op.Kind {
	case token.Minus:
		return l - r, nil
	case token.Slash:
		return l / r, nil
	case token.Star:
		return l * r, nil
	case token.Greater:
		return l > r, nil
	case token.GreaterEqual:
		return l >= r, nil
	case token.Less:
		return l < r, nil
	case token.LessEqual:
		return l <= r, nil
	}
	panic("interpreter: unreachable numeric operator " + string(op.Kind))
}

func (in *Interpreter) plus(op token.Token, left, right Value) (any, error) {
	if ln, ok := left.(float64); ok {
		if rn, ok := right.(float64); ok {
			return ln + rn, nil
		}
	}
	if ls, ok := left.(string); ok {
		if rs, ok := right.(string); ok {
			return ls + rs, nil
		}
	}
	return nil, &loxerr.ExecuteError{Message: "Unsupported operands for '+', must both be 'string' or 'number'.", Tok: op}
}

func (in *Interpreter) VisitLogical(e *ast.Logical) (any, error) {
	left, err := in.eval(e.Left)
	if err != nil {
		return nil, err
	}
	if e.Operator.Kind == token.Or {
		if isTruthy(left) {
			return left, nil
		}
	} else {
		if !isTruthy(left) {
			return left, nil
		}
	}
	return in.eval(e.Right)
}

func (in *Interpreter) VisitGrouping(e *ast.Grouping) (any, error) {
	return in.eval(e.Inner)
}

func (in *Interpreter) VisitCall(e *ast.Call) (any, error) {
	callee, err := in.eval(e.Callee)
	if err != nil {
		return nil, err
	}

	args := make([]Value, len(e.Arguments))
	for i, a := range e.Arguments {
		v, err := in.eval(a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	fn, ok := callee.(Callable)
	if !ok {
		return nil, &loxerr.ExecuteError{Message: "Can only call functions and classes.", Tok: e.ClosingParen}
	}
	if len(args) != fn.Arity() {
		return nil, &loxerr.ExecuteError{
			Message: fmt.Sprintf("Expected %d arguments but got %d.", fn.Arity(), len(args)),
			Tok:     e.ClosingParen,
		}
	}
	return fn.Call(in, args)
}

// --- value semantics ---

func isTruthy(v Value) bool {
	if v == nil {
		return false
	}
	if b, ok := v.(bool); ok {
		return b
	}
	return true
}

// isEqual implements Lox equality: no cross-type coercion, and NaN is
// not equal to itself, matching Go's native float64 == (and thus
// requiring no special case for NaN).
func isEqual(a, b Value) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	an, aIsNum := a.(float64)
	bn, bIsNum := b.(float64)
	if aIsNum && bIsNum {
		return an == bn
	}
	return a == b
}

// Stringify renders a runtime value the way `print` displays it.
// Whole-valued floats drop their trailing ".0", so 3.0 prints as "3".
func Stringify(v Value) string {
	if v == nil {
		return "nil"
	}
	if n, ok := v.(float64); ok {
		if math.IsInf(n, 0) || math.IsNaN(n) {
			return strconv.FormatFloat(n, 'g', -1, 64)
		}
		text := strconv.FormatFloat(n, 'f', -1, 64)
		if strings.HasSuffix(text, ".0") {
			return strings.TrimSuffix(text, ".0")
		}
		return text
	}
	if s, ok := v.(string); ok {
		return s
	}
	if b, ok := v.(bool); ok {
		if b {
			return "true"
		}
		return "false"
	}
	if c, ok := v.(Callable); ok {
		return c.String()
	}
	return fmt.Sprintf("%v", v)
}
