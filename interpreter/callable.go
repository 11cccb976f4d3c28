package interpreter

import (
	"fmt"

	"github.com/kodelox/tlox/ast"
)

// Callable is anything invocable with `(...)` syntax: a user-defined
// function or a native built-in, behind the single interface point
// callers need (arity + Call).
type Callable interface {
	Arity() int
	Call(in *Interpreter, args []any) (any, error)
	String() string
}

// UserFunction is a Lox function: its declaration plus the environment
// live at the moment it was declared, captured by pointer so the
// closure shares mutable state with its defining scope (see
// environment.go's doc comment).
type UserFunction struct {
	Decl    *ast.Function
	Closure *Environment
}

func (f *UserFunction) Arity() int { return len(f.Decl.Parameters) }

func (f *UserFunction) String() string {
	return fmt.Sprintf("<fn %s>", f.Decl.Name.Lexeme)
}

// Call binds args to parameters in a fresh scope nested under the
// closure and executes the body. A returnSignal unwound from the body
// supplies the call's result; falling off the end yields nil.
func (f *UserFunction) Call(in *Interpreter, args []any) (any, error) {
	scope := NewEnvironment(f.Closure)
	for i, param := range f.Decl.Parameters {
		scope.Define(param.Lexeme, args[i])
	}

	err := in.executeBlock(f.Decl.Body.Statements, scope)
	if ret, ok := err.(*returnSignal); ok {
		return ret.Value, nil
	}
	if err != nil {
		return nil, err
	}
	return nil, nil
}

// NativeFunction wraps a Go function as a Callable.
type NativeFunction struct {
	Name    string
	ArityN  int
	Fn      func(in *Interpreter, args []any) (any, error)
}

func (f *NativeFunction) Arity() int { return f.ArityN }

func (f *NativeFunction) String() string {
	return fmt.Sprintf("<native fn %s>", f.Name)
}

func (f *NativeFunction) Call(in *Interpreter, args []any) (any, error) {
	return f.Fn(in, args)
}
