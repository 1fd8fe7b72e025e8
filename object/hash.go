package object

import (
	"bytes"
	"strings"
)

// HashKey identifies a hashable value. Two keys are equal exactly when the
// values are of the same type and carry the same payload.
type HashKey struct {
	Type ObjectType
	Int  int64
	Str  string
}

type Hashable interface {
	Object
	HashKey() HashKey
}

type HashPair struct {
	Key   Object
	Value Object
}

// Hash maps keys to values and remembers the order keys were first set in.
type Hash struct {
	Pairs map[HashKey]HashPair
	order []HashKey
}

func NewHash() *Hash {
	return &Hash{Pairs: make(map[HashKey]HashPair)}
}

// Set binds key to value. Setting an existing key replaces its value but
// keeps its position.
func (h *Hash) Set(key Hashable, value Object) {
	hashed := key.HashKey()
	if _, ok := h.Pairs[hashed]; !ok {
		h.order = append(h.order, hashed)
	}
	h.Pairs[hashed] = HashPair{Key: key, Value: value}
}

func (h *Hash) Get(key Hashable) (Object, bool) {
	pair, ok := h.Pairs[key.HashKey()]
	if !ok {
		return nil, false
	}
	return pair.Value, true
}

func (h *Hash) Len() int {
	return len(h.Pairs)
}

// Ordered returns the pairs in insertion order.
func (h *Hash) Ordered() []HashPair {
	pairs := make([]HashPair, 0, len(h.order))
	for _, key := range h.order {
		pairs = append(pairs, h.Pairs[key])
	}
	return pairs
}

func (h *Hash) Type() ObjectType { return HASH_OBJ }
func (h *Hash) Inspect() string {
	var out bytes.Buffer
	pairs := make([]string, 0, len(h.order))
	for _, pair := range h.Ordered() {
		pairs = append(pairs, pair.Key.Inspect()+": "+pair.Value.Inspect())
	}
	out.WriteString("{")
	out.WriteString(strings.Join(pairs, ", "))
	out.WriteString("}")
	return out.String()
}
