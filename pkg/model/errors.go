package model

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

var (
	// ErrInvalidID signals an identifier that does not follow the naming
	// convention (ASCII letter or underscore first, then letters, digits, or
	// underscores).
	ErrInvalidID = errors.New("model: invalid id")
	// ErrDuplicateID signals two siblings sharing the same id inside a form
	// or selection.
	ErrDuplicateID = errors.New("model: duplicate id")
)

// MissingFieldError reports a required attribute that was omitted when
// constructing an input.
type MissingFieldError struct {
	Kind  Kind
	Field string
}

func (e *MissingFieldError) Error() string {
	if e.Kind == "" {
		return fmt.Sprintf("model: missing required field %q", e.Field)
	}
	return fmt.Sprintf("model: %s missing required field %q", e.Kind, e.Field)
}

// InvalidFieldError reports an attribute supplied with a value of the wrong
// shape. Err, when set, carries the underlying cause (for example
// ErrDuplicateID) and is exposed through Unwrap.
type InvalidFieldError struct {
	Kind   Kind
	Field  string
	Reason string
	Err    error
}

func (e *InvalidFieldError) Error() string {
	var b strings.Builder
	b.WriteString("model: ")
	if e.Kind != "" {
		b.WriteString(string(e.Kind))
		b.WriteString(" ")
	}
	fmt.Fprintf(&b, "field %q is invalid", e.Field)
	if e.Reason != "" {
		b.WriteString(": ")
		b.WriteString(e.Reason)
	}
	return b.String()
}

func (e *InvalidFieldError) Unwrap() error {
	return e.Err
}

func validateID(kind Kind, id string) error {
	if isBlank(id) {
		return &MissingFieldError{Kind: kind, Field: "id"}
	}
	for idx, r := range id {
		valid := r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		if idx > 0 && r >= '0' && r <= '9' {
			valid = true
		}
		if valid {
			continue
		}
		reason := fmt.Sprintf("id %q contains %q at offset %d", id, r, idx)
		if idx == 0 && r >= '0' && r <= '9' {
			reason = fmt.Sprintf("id %q must not start with a digit", id)
		} else if r == utf8.RuneError {
			reason = fmt.Sprintf("id %q is not valid UTF-8", id)
		}
		return &InvalidFieldError{Kind: kind, Field: "id", Reason: reason, Err: ErrInvalidID}
	}
	return nil
}

func isBlank(value string) bool {
	return strings.TrimSpace(value) == ""
}
