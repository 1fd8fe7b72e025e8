package stdlib

import (
	"monkey/object"
)

var hashmapModule = object.Module{
	"keys":   funcH("keys", keys),
	"values": funcH("values", values),
}

// keys lists the keys of a hash in insertion order.
func keys(hash *object.Hash) object.Object {
	result := make([]object.Object, 0, hash.Len())
	for _, pair := range hash.Ordered() {
		result = append(result, pair.Key)
	}

	return &object.Array{
		Elements: result,
	}
}

func values(hash *object.Hash) object.Object {
	result := make([]object.Object, 0, hash.Len())
	for _, pair := range hash.Ordered() {
		result = append(result, pair.Value)
	}

	return &object.Array{
		Elements: result,
	}
}
