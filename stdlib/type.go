package stdlib

import (
	"monkey/object"
)

// types module definition
var typeModule = object.Module{
	"type": builtin("type", typeOf),
}

func typeOf(args ...object.Object) object.Object {
	if err := checkArity(args, 1); err != nil {
		return err
	}
	return &object.String{Value: string(args[0].Type())}
}
