package model

// Kind identifies the variant of an input. The tag is part of an input's
// identity: two inputs with identical attributes but different kinds are not
// equal.
type Kind string

const (
	KindText         Kind = "text"
	KindNumber       Kind = "number"
	KindNumericRange Kind = "numeric_range"
	KindDate         Kind = "date"
	KindAutocomplete Kind = "autocomplete"
	KindOption       Kind = "option"
	KindSelection    Kind = "selection"
	KindForm         Kind = "form"
)

// Kinds lists every known kind in declaration order.
func Kinds() []Kind {
	return []Kind{
		KindText,
		KindNumber,
		KindNumericRange,
		KindDate,
		KindAutocomplete,
		KindOption,
		KindSelection,
		KindForm,
	}
}

// ParseKind resolves a kind tag, reporting false for unknown values.
func ParseKind(raw string) (Kind, bool) {
	for _, kind := range Kinds() {
		if string(kind) == raw {
			return kind, true
		}
	}
	return "", false
}

// IsExtraction reports whether the kind belongs to the extraction family.
func (k Kind) IsExtraction() bool {
	switch k {
	case KindText, KindNumber, KindNumericRange, KindDate:
		return true
	default:
		return false
	}
}

// Input is the capability set shared by every element of a schema. The set
// of implementations is closed to this package.
type Input interface {
	ID() string
	Description() string
	Kind() Kind

	sealed()
}

// Extractor is implemented by inputs whose value is extracted freely from
// text, guided by (text, value) examples.
type Extractor interface {
	Input
	Examples() []Example
}

// Example pairs a source text snippet with the value expected to be extracted
// from it.
type Example struct {
	Text  string `json:"text" yaml:"text"`
	Value string `json:"value" yaml:"value"`
}

// base carries the attributes shared by every input.
type base struct {
	id          string
	description string
}

func (b base) ID() string          { return b.id }
func (b base) Description() string { return b.description }
func (base) sealed()               {}

func newBase(kind Kind, id, description string) (base, error) {
	if err := validateID(kind, id); err != nil {
		return base{}, err
	}
	if isBlank(description) {
		return base{}, &MissingFieldError{Kind: kind, Field: "description"}
	}
	return base{id: id, description: description}, nil
}

var (
	_ Extractor = ExtractionInput{}
	_ Input     = AutocompleteInput{}
	_ Input     = Option{}
	_ Input     = Selection{}
	_ Input     = Form{}
)
