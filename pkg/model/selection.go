package model

import "fmt"

// Option is one selectable choice within a Selection. Examples are phrases
// that indicate the option should be chosen.
type Option struct {
	base
	examples []string
}

// NewOption builds an option.
func NewOption(id, description string, examples []string) (Option, error) {
	b, err := newBase(KindOption, id, description)
	if err != nil {
		return Option{}, err
	}
	return Option{base: b, examples: cloneSlice(examples)}, nil
}

func (Option) Kind() Kind { return KindOption }

// Examples returns a copy of the option's example phrases, or nil when
// there are none.
func (o Option) Examples() []string { return cloneSlice(o.examples) }

// Selection is a field whose value is chosen from a fixed set of options.
// When Multiple is false at most one option is expected per extraction.
type Selection struct {
	base
	options  []Option
	examples []string
	multiple bool
}

// NewSelection builds a selection. A nil options slice is reported as
// missing; an empty, non-nil slice is accepted. Option ids must be unique.
func NewSelection(id, description string, options []Option, examples []string, multiple bool) (Selection, error) {
	b, err := newBase(KindSelection, id, description)
	if err != nil {
		return Selection{}, err
	}
	if options == nil {
		return Selection{}, &MissingFieldError{Kind: KindSelection, Field: "options"}
	}

	seen := make(map[string]struct{}, len(options))
	for idx, option := range options {
		if option.id == "" {
			return Selection{}, &InvalidFieldError{
				Kind:   KindSelection,
				Field:  "options",
				Reason: fmt.Sprintf("option at index %d was not constructed", idx),
			}
		}
		if _, exists := seen[option.id]; exists {
			return Selection{}, &InvalidFieldError{
				Kind:   KindSelection,
				Field:  "options",
				Reason: fmt.Sprintf("option id %q appears more than once", option.id),
				Err:    ErrDuplicateID,
			}
		}
		seen[option.id] = struct{}{}
	}

	return Selection{
		base:     b,
		options:  cloneSlice(options),
		examples: cloneSlice(examples),
		multiple: multiple,
	}, nil
}

func (Selection) Kind() Kind { return KindSelection }

// Options returns a copy of the selection's options in declaration order.
// It is never nil, so the result can be passed back to NewSelection. Other
// slice accessors return nil when empty; compare values with Equal.
func (s Selection) Options() []Option {
	if len(s.options) == 0 {
		return []Option{}
	}
	return cloneSlice(s.options)
}

// Examples returns a copy of the selection's example phrases, or nil when
// there are none.
func (s Selection) Examples() []string { return cloneSlice(s.examples) }

// Multiple reports whether more than one option may be chosen.
func (s Selection) Multiple() bool { return s.multiple }

// OptionIDs lists the ids of the options, preserving their order. An empty
// selection yields an empty slice.
func (s Selection) OptionIDs() []string {
	ids := make([]string, len(s.options))
	for idx, option := range s.options {
		ids[idx] = option.id
	}
	return ids
}

// Option looks up an option by id.
func (s Selection) Option(id string) (Option, bool) {
	for _, option := range s.options {
		if option.id == id {
			return option, true
		}
	}
	return Option{}, false
}
