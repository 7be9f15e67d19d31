package model

import "reflect"

// Equal reports whether two inputs are structurally equal. The kind takes
// part in the comparison, so a text input never equals a number input with
// the same id, description, and examples. Pointers to inputs compare by the
// value they point to.
func Equal(a, b Input) bool {
	a, b = deref(a), deref(b)
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}
	return reflect.DeepEqual(a, b)
}

func deref(input Input) Input {
	if isNilInput(input) {
		return nil
	}
	value := reflect.ValueOf(input)
	if value.Kind() != reflect.Pointer {
		return input
	}
	if elem, ok := value.Elem().Interface().(Input); ok {
		return elem
	}
	return input
}
