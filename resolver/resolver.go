/*
Package resolver implements the static scope-distance pass: a pure
function from a statement list to a Bindings map from every
Variable/Assign node to its lexical depth. Dispatch over node kinds is
a type switch rather than a reflection-based one.
*/
package resolver

import (
	"fmt"

	"github.com/kodelox/tlox/ast"
	"github.com/kodelox/tlox/loxerr"
	"github.com/kodelox/tlox/token"
)

// bindingState is the tri-state of a name within one scope.
type bindingState int

const (
	undeclared bindingState = iota
	declaredUninitialized
	defined
)

// Bindings maps a bindable AST node (by pointer identity, see
// ast.Variable/ast.Assign) to its resolved scope distance.
type Bindings map[ast.Node]int

// Merge OR-unions other into b. Overlapping keys indicate two
// bindable nodes sharing identity, which must never happen within a
// single resolver pass or across independently-resolved REPL chunks
// whose ASTs are disjoint; it is an assertion failure, not a user
// error.
func (b Bindings) Merge(other Bindings) {
	for node, depth := range other {
		if existing, ok := b[node]; ok {
			panic(fmt.Sprintf("resolver: node %v already bound at depth %d, cannot rebind to %d", node, existing, depth))
		}
		b[node] = depth
	}
}

// scope is an ordered name -> bindingState mapping for one lexical level.
type scope map[string]bindingState

// Resolver walks a statement tree accumulating a Bindings map. Scopes
// are pushed/popped on a stack with index len(stack)-1 = innermost.
type Resolver struct {
	scopes   []scope
	bindings Bindings
}

// New creates a Resolver. initialScope seeds name visibility for the
// root environment's built-ins.
func New(initialScope map[string]bool) *Resolver {
	r := &Resolver{bindings: make(Bindings)}
	root := make(scope, len(initialScope))
	for name, ok := range initialScope {
		if ok {
			root[name] = defined
		}
	}
	r.scopes = []scope{root}
	return r
}

// Resolve runs the resolver over statements and returns the completed
// Bindings map, or the first resolve error (an *loxerr.ExecuteError,
// since resolve-time and runtime errors share shape and exit code).
func Resolve(statements []ast.Stmt, initialScope map[string]bool) (Bindings, error) {
	r := New(initialScope)
	if err := r.resolveStmts(statements); err != nil {
		return nil, err
	}
	return r.bindings, nil
}

func (r *Resolver) push() {
	r.scopes = append(r.scopes, scope{})
}

func (r *Resolver) pop() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

func (r *Resolver) innermost() scope {
	return r.scopes[len(r.scopes)-1]
}

func (r *Resolver) resolveStmts(statements []ast.Stmt) error {
	for _, s := range statements {
		if err := r.resolveStmt(s); err != nil {
			return err
		}
	}
	return nil
}

func (r *Resolver) resolveStmt(s ast.Stmt) error {
	switch n := s.(type) {
	case *ast.Expression:
		return r.resolveExpr(n.E)
	case *ast.Print:
		return r.resolveExpr(n.E)
	case *ast.Var:
		return r.resolveVar(n)
	case *ast.Block:
		r.push()
		err := r.resolveStmts(n.Statements)
		r.pop()
		return err
	case *ast.If:
		if err := r.resolveExpr(n.Condition); err != nil {
			return err
		}
		if err := r.resolveStmt(n.Then); err != nil {
			return err
		}
		if n.Else != nil {
			return r.resolveStmt(n.Else)
		}
		return nil
	case *ast.While:
		if err := r.resolveExpr(n.Condition); err != nil {
			return err
		}
		return r.resolveStmt(n.Body)
	case *ast.Function:
		return r.resolveFunction(n)
	case *ast.Return:
		return r.resolveExpr(n.E)
	default:
		panic(fmt.Sprintf("resolver: unhandled statement type %T", s))
	}
}

func (r *Resolver) resolveVar(n *ast.Var) error {
	scope := r.innermost()
	if _, exists := scope[n.Name.Lexeme]; exists {
		return &loxerr.ExecuteError{Message: "Already a variable with this name in this scope.", Tok: n.Name}
	}
	scope[n.Name.Lexeme] = declaredUninitialized
	if err := r.resolveExpr(n.Initializer); err != nil {
		return err
	}
	scope[n.Name.Lexeme] = defined
	return nil
}

func (r *Resolver) resolveFunction(n *ast.Function) error {
	r.innermost()[n.Name.Lexeme] = defined

	r.push()
	defer r.pop()
	for _, param := range n.Parameters {
		r.innermost()[param.Lexeme] = defined
	}
	return r.resolveStmts(n.Body.Statements)
}

func (r *Resolver) resolveExpr(e ast.Expr) error {
	switch n := e.(type) {
	case *ast.Literal:
		return nil
	case *ast.Variable:
		return r.resolveVariable(n)
	case *ast.Assign:
		if err := r.resolveLocal(n, n.Name); err != nil {
			return err
		}
		return r.resolveExpr(n.Value)
	case *ast.Unary:
		return r.resolveExpr(n.Right)
	case *ast.Binary:
		if err := r.resolveExpr(n.Left); err != nil {
			return err
		}
		return r.resolveExpr(n.Right)
	case *ast.Logical:
		if err := r.resolveExpr(n.Left); err != nil {
			return err
		}
		return r.resolveExpr(n.Right)
	case *ast.Grouping:
		return r.resolveExpr(n.Inner)
	case *ast.Call:
		if err := r.resolveExpr(n.Callee); err != nil {
			return err
		}
		for _, arg := range n.Arguments {
			if err := r.resolveExpr(arg); err != nil {
				return err
			}
		}
		return nil
	default:
		panic(fmt.Sprintf("resolver: unhandled expression type %T", e))
	}
}

func (r *Resolver) resolveVariable(n *ast.Variable) error {
	if len(r.scopes) > 0 {
		if state, ok := r.innermost()[n.Name.Lexeme]; ok && state == declaredUninitialized {
			return &loxerr.ExecuteError{Message: "Can't read local variable in its own initializer.", Tok: n.Name}
		}
	}
	return r.resolveLocal(n, n.Name)
}

// resolveLocal walks outward from the innermost scope looking for
// name, recording the depth (distance from innermost, 0 = current
// scope) in the Bindings map keyed by node's pointer identity. A name
// found in no scope, including the root scope, is undeclared: every
// Variable/Assign node must either resolve to a depth or fail here,
// with no silent fallback to a runtime lookup.
func (r *Resolver) resolveLocal(node ast.Node, name token.Token) error {
	for depth := 0; depth < len(r.scopes); depth++ {
		scope := r.scopes[len(r.scopes)-1-depth]
		if _, ok := scope[name.Lexeme]; ok {
			r.bindings[node] = depth
			return nil
		}
	}
	return &loxerr.ExecuteError{Message: "Undefined variable '" + name.Lexeme + "'.", Tok: name}
}
