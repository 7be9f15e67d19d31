package model

// ExtractionInput is a field whose value is extracted freely from text. The
// four extraction variants share this single type and differ only by Kind:
// free text, numeric scalar, numeric interval, and date.
type ExtractionInput struct {
	base
	kind     Kind
	examples []Example
}

// NewTextInput builds a free text extraction input.
func NewTextInput(id, description string, examples []Example) (ExtractionInput, error) {
	return newExtraction(KindText, id, description, examples)
}

// NewNumber builds a numeric scalar extraction input.
func NewNumber(id, description string, examples []Example) (ExtractionInput, error) {
	return newExtraction(KindNumber, id, description, examples)
}

// NewNumericRange builds a numeric interval extraction input.
func NewNumericRange(id, description string, examples []Example) (ExtractionInput, error) {
	return newExtraction(KindNumericRange, id, description, examples)
}

// NewDateInput builds a date extraction input.
func NewDateInput(id, description string, examples []Example) (ExtractionInput, error) {
	return newExtraction(KindDate, id, description, examples)
}

// NewExtractionInput builds an extraction input for any kind in the
// extraction family. Other kinds are rejected.
func NewExtractionInput(kind Kind, id, description string, examples []Example) (ExtractionInput, error) {
	if !kind.IsExtraction() {
		return ExtractionInput{}, &InvalidFieldError{
			Kind:   kind,
			Field:  "kind",
			Reason: "not an extraction kind",
		}
	}
	return newExtraction(kind, id, description, examples)
}

func newExtraction(kind Kind, id, description string, examples []Example) (ExtractionInput, error) {
	b, err := newBase(kind, id, description)
	if err != nil {
		return ExtractionInput{}, err
	}
	return ExtractionInput{
		base:     b,
		kind:     kind,
		examples: cloneSlice(examples),
	}, nil
}

// Kind reports which extraction variant the input is.
func (e ExtractionInput) Kind() Kind { return e.kind }

// Examples returns a copy of the (text, value) examples, or nil when there
// are none.
func (e ExtractionInput) Examples() []Example { return cloneSlice(e.examples) }

// AutocompleteInput is a field whose values are suggested or completed rather
// than extracted. It carries no examples.
type AutocompleteInput struct {
	base
}

// NewAutocompleteInput builds an autocomplete input.
func NewAutocompleteInput(id, description string) (AutocompleteInput, error) {
	b, err := newBase(KindAutocomplete, id, description)
	if err != nil {
		return AutocompleteInput{}, err
	}
	return AutocompleteInput{base: b}, nil
}

func (AutocompleteInput) Kind() Kind { return KindAutocomplete }

// cloneSlice copies src, normalising empty input to nil so that structurally
// equal values compare equal regardless of how they were built.
func cloneSlice[T any](src []T) []T {
	if len(src) == 0 {
		return nil
	}
	out := make([]T, len(src))
	copy(out, src)
	return out
}
