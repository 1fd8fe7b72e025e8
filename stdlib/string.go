package stdlib

import (
	"strings"

	"monkey/object"
)

var stringModule = object.Module{
	"join": builtin("join", stringJoin),
}

// Join concatenates the displays of the array elements, the separator string
// is placed between elements in the resulting string.
func stringJoin(args ...object.Object) object.Object {
	if err := checkArity(args, 2); err != nil {
		return err
	}

	array, ok := args[0].(*object.Array)
	if !ok {
		return typeError("join", object.ARRAY_OBJ, args[0])
	}

	separator, ok := args[1].(*object.String)
	if !ok {
		return typeError("join", object.STRING_OBJ, args[1])
	}

	elements := make([]string, 0, len(array.Elements))
	for _, elem := range array.Elements {
		elements = append(elements, elem.Inspect())
	}

	return &object.String{
		Value: strings.Join(elements, separator.Value),
	}
}
