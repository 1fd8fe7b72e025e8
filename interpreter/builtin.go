package interpreter

import (
	"io"

	"monkey/object"
	"monkey/stdlib"
)

// WithOutput sets the writer the builtins print to.
func WithOutput(out io.Writer) Option {
	return func(i *Interpreter) { i.builtins = stdlib.New(out) }
}

// WithBuiltins replaces the whole builtin table.
func WithBuiltins(builtins object.Module) Option {
	return func(i *Interpreter) { i.builtins = builtins }
}

func (i *Interpreter) lookupBuiltin(name string) (object.Object, bool) {
	fn, ok := i.builtins[name]
	return fn, ok
}
