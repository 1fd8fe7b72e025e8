package stdlib

import (
	"fmt"
	"io"

	"monkey/object"
)

func fmtModule(out io.Writer) object.Module {
	return object.Module{
		"puts": builtin("puts", puts(out)),
	}
}

// puts prints the display of every argument on its own line.
func puts(out io.Writer) object.BuiltinFunction {
	return func(args ...object.Object) object.Object {
		for _, arg := range args {
			fmt.Fprintln(out, arg.Inspect())
		}
		return object.NULL
	}
}
