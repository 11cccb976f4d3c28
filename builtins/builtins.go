/*
Package builtins wires the handful of native functions Lox provides
out of the box into an Interpreter's global environment.
*/
package builtins

import (
	"time"

	"github.com/kodelox/tlox/interpreter"
)

// Install defines every built-in function into in's global scope.
func Install(in *interpreter.Interpreter) {
	in.DefineGlobal("clock", &interpreter.NativeFunction{
		Name:   "clock",
		ArityN: 0,
		Fn: func(in *interpreter.Interpreter, args []any) (any, error) {
			return float64(time.Now().UnixNano()) / float64(time.Second), nil
		},
	})
}

// GlobalNames lists every built-in name, for seeding the resolver's
// initial scope so references to clock resolve as global lookups
// rather than "undeclared" during static analysis.
func GlobalNames() map[string]bool {
	return map[string]bool{"clock": true}
}
