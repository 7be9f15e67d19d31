package openapi

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-inputschema/pkg/model"
)

const (
	// ExtensionKind records the input kind a schema was generated from.
	ExtensionKind = "x-kind"
	// ExtensionExamples records the input's examples.
	ExtensionExamples = "x-examples"
	// ExtensionOptions maps option ids to their descriptions on selections.
	ExtensionOptions = "x-options"

	// RangeMin and RangeMax name the bounds of a numeric range value.
	RangeMin = "min"
	RangeMax = "max"

	// DateFormat is the JSON Schema format used for date inputs.
	DateFormat = "date"
)

// Schema builds the schema of the value extracted for input:
//
//	text, autocomplete  string
//	number              number
//	numeric_range       object {min, max}
//	date                string, format date
//	option              boolean
//	selection           string enum, or array of unique enum items when multiple
//	form                object keyed by element id, no additional properties
func Schema(input model.Input) (*openapi3.Schema, error) {
	if input == nil {
		return nil, errors.New("openapi: input is nil")
	}

	var schema *openapi3.Schema
	switch typed := input.(type) {
	case model.ExtractionInput:
		schema = extractionSchema(typed.Kind())
		setExamples(schema, typed.Examples())
	case model.AutocompleteInput:
		schema = openapi3.NewStringSchema()
	case model.Option:
		schema = openapi3.NewBoolSchema()
		setExamples(schema, typed.Examples())
	case model.Selection:
		schema = selectionSchema(typed)
		setExamples(schema, typed.Examples())
	case model.Form:
		var err error
		schema, err = formSchema(typed)
		if err != nil {
			return nil, err
		}
		setExamples(schema, typed.Examples())
	default:
		return nil, fmt.Errorf("openapi: unsupported input %T", input)
	}

	schema.Description = input.Description()
	if schema.Extensions == nil {
		schema.Extensions = make(map[string]any)
	}
	schema.Extensions[ExtensionKind] = string(input.Kind())
	return schema, nil
}

// MarshalSchema renders the schema for input as indented JSON.
func MarshalSchema(input model.Input) ([]byte, error) {
	schema, err := Schema(input)
	if err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("openapi: marshal schema %q: %w", input.ID(), err)
	}
	return data, nil
}

func extractionSchema(kind model.Kind) *openapi3.Schema {
	switch kind {
	case model.KindNumber:
		return openapi3.NewFloat64Schema()
	case model.KindNumericRange:
		schema := openapi3.NewObjectSchema().
			WithProperty(RangeMin, openapi3.NewFloat64Schema()).
			WithProperty(RangeMax, openapi3.NewFloat64Schema())
		schema.Required = []string{RangeMin, RangeMax}
		closeObject(schema)
		return schema
	case model.KindDate:
		return openapi3.NewStringSchema().WithFormat(DateFormat)
	default:
		return openapi3.NewStringSchema()
	}
}

func selectionSchema(selection model.Selection) *openapi3.Schema {
	ids := selection.OptionIDs()
	item := openapi3.NewStringSchema()
	if len(ids) > 0 {
		enum := make([]any, len(ids))
		for idx, id := range ids {
			enum[idx] = id
		}
		item = item.WithEnum(enum...)
	} else {
		// no option ids: no value is allowed
		item.Not = openapi3.NewSchemaRef("", openapi3.NewSchema())
	}

	descriptions := make(map[string]any, len(ids))
	for _, option := range selection.Options() {
		descriptions[option.ID()] = option.Description()
	}

	schema := item
	if selection.Multiple() {
		schema = openapi3.NewArraySchema().WithItems(item).WithUniqueItems(true)
	}
	if len(descriptions) > 0 {
		schema.Extensions = map[string]any{ExtensionOptions: descriptions}
	}
	return schema
}

func formSchema(form model.Form) (*openapi3.Schema, error) {
	schema := openapi3.NewObjectSchema()
	schema.Title = form.ID()
	for _, element := range form.Elements() {
		child, err := Schema(element)
		if err != nil {
			return nil, fmt.Errorf("openapi: form %q element %q: %w", form.ID(), element.ID(), err)
		}
		schema = schema.WithProperty(element.ID(), child)
	}
	closeObject(schema)
	return schema, nil
}

func closeObject(schema *openapi3.Schema) {
	closed := false
	schema.AdditionalProperties = openapi3.AdditionalProperties{Has: &closed}
}

func setExamples[T any](schema *openapi3.Schema, examples []T) {
	if len(examples) == 0 {
		return
	}
	if schema.Extensions == nil {
		schema.Extensions = make(map[string]any)
	}
	schema.Extensions[ExtensionExamples] = examples
}
