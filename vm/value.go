package vm

import (
	"fmt"
	"reflect"

	"github.com/reusee/regvm/bytecode"
)

// Truthy reports whether v takes the true branch of a condition. null,
// false, the empty string and zero are false.
func Truthy(v Value) bool {
	switch v := v.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	case float64:
		return v != 0
	}
	return true
}

// Equal compares structurally. Structs are equal when they share a class and
// their fields are pairwise equal; cyclic structs are handled.
func Equal(a, b Value) bool {
	return equal(a, b, make(map[[2]*Struct]bool))
}

func equal(a, b Value, seen map[[2]*Struct]bool) bool {
	switch a := a.(type) {

	case *Struct:
		b, ok := b.(*Struct)
		if !ok {
			return false
		}
		if a == b {
			return true
		}
		if a.Class != b.Class || len(a.Fields) != len(b.Fields) {
			return false
		}
		key := [2]*Struct{a, b}
		if seen[key] {
			return true
		}
		seen[key] = true
		for name, av := range a.Fields {
			bv, ok := b.Fields[name]
			if !ok || !equal(av, bv, seen) {
				return false
			}
		}
		return true

	case *bytecode.Class:
		b, ok := b.(*bytecode.Class)
		return ok && a == b

	}

	if _, ok := b.(*Struct); ok {
		return false
	}
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if !reflect.TypeOf(a).Comparable() || reflect.TypeOf(a) != reflect.TypeOf(b) {
		return false
	}
	return a == b
}

func less(a, b Value) (bool, error) {
	x, ok1 := a.(float64)
	y, ok2 := b.(float64)
	if !ok1 || !ok2 {
		return false, fmt.Errorf("%w: %s < %s", ErrTypeMismatch, typeName(a), typeName(b))
	}
	return x < y, nil
}

func typeName(v Value) string {
	switch v := v.(type) {
	case nil:
		return "null"
	case bool:
		return "bool"
	case string:
		return "string"
	case float64:
		return "number"
	case *Struct:
		return v.className()
	case *bytecode.Class:
		return "class"
	}
	return fmt.Sprintf("%T", v)
}
