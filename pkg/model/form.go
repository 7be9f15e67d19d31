package model

import (
	"fmt"
	"reflect"
)

// Form aggregates an ordered list of inputs, including nested forms.
type Form struct {
	base
	elements []Input
	examples []string
}

// NewForm builds a form. Elements may be empty; each element must be a
// constructed input and ids must be unique among the direct children.
func NewForm(id, description string, elements []Input, examples []string) (Form, error) {
	b, err := newBase(KindForm, id, description)
	if err != nil {
		return Form{}, err
	}

	var stored []Input
	if len(elements) > 0 {
		stored = make([]Input, 0, len(elements))
	}
	seen := make(map[string]struct{}, len(elements))
	for idx, element := range elements {
		element = deref(element)
		if element == nil || element.ID() == "" {
			return Form{}, &InvalidFieldError{
				Kind:   KindForm,
				Field:  "elements",
				Reason: fmt.Sprintf("element at index %d is empty", idx),
			}
		}
		elementID := element.ID()
		if _, exists := seen[elementID]; exists {
			return Form{}, &InvalidFieldError{
				Kind:   KindForm,
				Field:  "elements",
				Reason: fmt.Sprintf("element id %q appears more than once in form %q", elementID, id),
				Err:    ErrDuplicateID,
			}
		}
		seen[elementID] = struct{}{}
		stored = append(stored, element)
	}

	return Form{
		base:     b,
		elements: stored,
		examples: cloneSlice(examples),
	}, nil
}

func (Form) Kind() Kind { return KindForm }

// Elements returns a copy of the form's elements in declaration order.
func (f Form) Elements() []Input { return cloneSlice(f.elements) }

// Examples returns a copy of the form's example phrases, or nil when there
// are none.
func (f Form) Examples() []string { return cloneSlice(f.examples) }

// Len reports the number of direct elements.
func (f Form) Len() int { return len(f.elements) }

// Element looks up a direct child by id.
func (f Form) Element(id string) (Input, bool) {
	for _, element := range f.elements {
		if element.ID() == id {
			return element, true
		}
	}
	return nil, false
}

func isNilInput(input Input) bool {
	if input == nil {
		return true
	}
	value := reflect.ValueOf(input)
	return value.Kind() == reflect.Pointer && value.IsNil()
}
