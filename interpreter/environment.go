package interpreter

import (
	"github.com/kodelox/tlox/loxerr"
	"github.com/kodelox/tlox/token"
)

// Environment is a lexical scope boundary for variable lifetime and
// accessibility, chained to its enclosing scope. Scopes are shared by
// pointer, never copied: a closure captures the *Environment live at
// its creation, and mutations performed through one reference (e.g. a
// counter incremented on every call) are visible through every other
// reference to the same Environment.
type Environment struct {
	values    map[string]any
	enclosing *Environment
}

// NewEnvironment creates a scope nested inside enclosing, or a root
// scope if enclosing is nil.
func NewEnvironment(enclosing *Environment) *Environment {
	return &Environment{values: make(map[string]any), enclosing: enclosing}
}

// Define binds name to value in this environment, overwriting any
// existing binding of the same name at this level. The resolver
// rejects a second `var` of one name in one scope, the global scope
// included; overwriting happens for a repeated function declaration
// or a direct call such as DefineGlobal.
func (e *Environment) Define(name string, value any) {
	e.values[name] = value
}

// Get returns the value bound to name, searching exactly depth
// enclosing scopes outward from e before looking, or searching the
// full chain when depth is negative (the fallback the interpreter uses
// for a node that has no entry in its bindings).
func (e *Environment) Get(name token.Token, depth int) (any, error) {
	if depth >= 0 {
		return e.ancestor(depth).getHere(name)
	}
	env := e
	for env != nil {
		if v, ok := env.values[name.Lexeme]; ok {
			return v, nil
		}
		env = env.enclosing
	}
	return nil, &loxerr.ExecuteError{Message: "Undefined variable '" + name.Lexeme + "'.", Tok: name}
}

func (e *Environment) getHere(name token.Token) (any, error) {
	if v, ok := e.values[name.Lexeme]; ok {
		return v, nil
	}
	return nil, &loxerr.ExecuteError{Message: "Undefined variable '" + name.Lexeme + "'.", Tok: name}
}

// Assign stores value into the binding for name, at exactly depth
// scopes out when depth >= 0, or by walking the full chain otherwise.
// Assigning to a name with no existing binding anywhere is an error --
// unlike Define, Assign never creates a new binding.
func (e *Environment) Assign(name token.Token, value any, depth int) error {
	if depth >= 0 {
		return e.ancestor(depth).assignHere(name, value)
	}
	env := e
	for env != nil {
		if _, ok := env.values[name.Lexeme]; ok {
			env.values[name.Lexeme] = value
			return nil
		}
		env = env.enclosing
	}
	return &loxerr.ExecuteError{Message: "Undefined variable '" + name.Lexeme + "'.", Tok: name}
}

func (e *Environment) assignHere(name token.Token, value any) error {
	if _, ok := e.values[name.Lexeme]; !ok {
		return &loxerr.ExecuteError{Message: "Undefined variable '" + name.Lexeme + "'.", Tok: name}
	}
	e.values[name.Lexeme] = value
	return nil
}

func (e *Environment) ancestor(depth int) *Environment {
	env := e
	for i := 0; i < depth; i++ {
		env = env.enclosing
	}
	return env
}
