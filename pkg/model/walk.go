package model

import (
	"errors"
	"strings"
)

// SkipChildren may be returned by a WalkFunc to skip the children of the
// current form or selection.
var SkipChildren = errors.New("model: skip children")

// WalkFunc is invoked for every input visited by Walk. Path is the dotted id
// path from the root, including the input's own id.
type WalkFunc func(path string, input Input) error

// Walk visits input and its descendants depth first, parents before
// children: form elements in order, then selection options in order.
func Walk(input Input, fn WalkFunc) error {
	input = deref(input)
	if input == nil || fn == nil {
		return nil
	}
	err := walk("", input, fn)
	if errors.Is(err, SkipChildren) {
		return nil
	}
	return err
}

func walk(prefix string, input Input, fn WalkFunc) error {
	path := JoinPath(prefix, input.ID())
	if err := fn(path, input); err != nil {
		return err
	}

	switch typed := input.(type) {
	case Form:
		for _, element := range typed.elements {
			if err := walk(path, element, fn); err != nil && !errors.Is(err, SkipChildren) {
				return err
			}
		}
	case Selection:
		for _, option := range typed.options {
			if err := walk(path, option, fn); err != nil && !errors.Is(err, SkipChildren) {
				return err
			}
		}
	}
	return nil
}

// JoinPath joins two dotted path fragments, ignoring empty ones.
func JoinPath(parent, child string) string {
	parent = strings.TrimSpace(parent)
	child = strings.TrimSpace(child)
	if parent == "" {
		return child
	}
	if child == "" {
		return parent
	}
	return parent + "." + child
}

// Must panics when err is non-nil. It keeps fixtures and examples short.
func Must[T Input](input T, err error) T {
	if err != nil {
		panic(err)
	}
	return input
}
