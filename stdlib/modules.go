package stdlib

import (
	"fmt"
	"io"
	"os"

	"monkey/object"
)

func newError(format string, a ...interface{}) *object.Error {
	return &object.Error{Message: fmt.Sprintf(format, a...)}
}

func builtin(name string, fn object.BuiltinFunction) *object.Builtin {
	return &object.Builtin{Name: name, Fn: fn}
}

// every module of the std lib needs to be listed here, their functions are
// all visible without any import
var builtinModules = []object.Module{
	arrayModule,
	hashmapModule,
	stringModule,
	typeModule,
}

// New returns the builtins by name. puts writes to out, stdout when out is
// nil.
func New(out io.Writer) object.Module {
	if out == nil {
		out = os.Stdout
	}

	builtins := object.Module{}
	for _, module := range builtinModules {
		for name, fn := range module {
			builtins[name] = fn
		}
	}
	for name, fn := range fmtModule(out) {
		builtins[name] = fn
	}
	return builtins
}
