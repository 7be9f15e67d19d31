package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/goliatone/go-inputschema/pkg/model"
	"github.com/goliatone/go-inputschema/pkg/openapi"
)

const schemaResource = "inputschema.json"

// Issue describes a single problem found in an extraction result.
type Issue struct {
	Path    string `json:"path,omitempty"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// Result captures the outcome of validating an extraction result.
type Result struct {
	Valid  bool    `json:"valid"`
	Issues []Issue `json:"issues,omitempty"`
}

// Validator checks extraction results against the schema derived from an
// input tree. The compiled schema is reused across calls and safe for
// concurrent use.
type Validator struct {
	input  model.Input
	schema *jsonschema.Schema
	ranges []string
}

// NewValidator compiles the schema for input.
func NewValidator(input model.Input) (*Validator, error) {
	raw, err := openapi.MarshalSchema(input)
	if err != nil {
		return nil, fmt.Errorf("validation: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	compiler.AssertFormat = true
	if err := compiler.AddResource(schemaResource, bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("validation: add schema: %w", err)
	}
	schema, err := compiler.Compile(schemaResource)
	if err != nil {
		return nil, fmt.Errorf("validation: compile schema: %w", err)
	}

	return &Validator{
		input:  input,
		schema: schema,
		ranges: rangePaths(input),
	}, nil
}

// Validate is a convenience wrapper that compiles the schema for input and
// validates raw against it.
func Validate(input model.Input, raw []byte) (Result, error) {
	validator, err := NewValidator(input)
	if err != nil {
		return Result{}, err
	}
	return validator.Validate(raw), nil
}

// Validate decodes raw JSON and checks it against the schema. Selection
// values must be among the selection's option ids, dates must be formatted
// as YYYY-MM-DD, and numeric ranges must not have min greater than max.
func (v *Validator) Validate(raw []byte) Result {
	result := Result{Valid: true}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		result.Valid = false
		result.Issues = []Issue{{Message: fmt.Sprintf("invalid JSON: %v", err)}}
		return result
	}
	return v.ValidateValue(doc)
}

// ValidateValue checks an already decoded JSON value.
func (v *Validator) ValidateValue(doc any) Result {
	result := Result{Valid: true}

	if err := v.schema.Validate(doc); err != nil {
		result.Issues = append(result.Issues, issuesFromError(err)...)
	}
	result.Issues = append(result.Issues, v.checkRanges(doc)...)

	if len(result.Issues) > 0 {
		result.Valid = false
		sort.SliceStable(result.Issues, func(i, j int) bool {
			return result.Issues[i].Path < result.Issues[j].Path
		})
	}
	return result
}

func (v *Validator) checkRanges(doc any) []Issue {
	var issues []Issue
	for _, path := range v.ranges {
		value, ok := lookup(doc, path)
		if !ok {
			continue
		}
		bounds, ok := value.(map[string]any)
		if !ok {
			continue
		}
		low, lowOK := bounds[openapi.RangeMin].(float64)
		high, highOK := bounds[openapi.RangeMax].(float64)
		if lowOK && highOK && low > high {
			issues = append(issues, Issue{
				Path:    pointerFromPath(path),
				Field:   path,
				Message: fmt.Sprintf("range minimum %v is greater than maximum %v", low, high),
			})
		}
	}
	return issues
}

// rangePaths lists dotted value paths of numeric range inputs. The root's own
// id is not part of the value path.
func rangePaths(input model.Input) []string {
	var paths []string
	_ = model.Walk(input, func(path string, current model.Input) error {
		if current.Kind() == model.KindSelection {
			return model.SkipChildren
		}
		if current.Kind() != model.KindNumericRange {
			return nil
		}
		rel := strings.TrimPrefix(strings.TrimPrefix(path, input.ID()), ".")
		paths = append(paths, rel)
		return nil
	})
	return paths
}

func lookup(doc any, path string) (any, bool) {
	if path == "" {
		return doc, true
	}
	current := doc
	for _, segment := range strings.Split(path, ".") {
		node, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = node[segment]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

func issuesFromError(err error) []Issue {
	var validationErr *jsonschema.ValidationError
	if !errors.As(err, &validationErr) {
		return []Issue{{Message: strings.TrimSpace(err.Error())}}
	}

	var issues []Issue
	var collect func(*jsonschema.ValidationError)
	collect = func(node *jsonschema.ValidationError) {
		if len(node.Causes) == 0 {
			issues = append(issues, Issue{
				Path:    node.InstanceLocation,
				Field:   fieldPathFromPointer(node.InstanceLocation),
				Message: strings.TrimSpace(node.Message),
			})
			return
		}
		for _, cause := range node.Causes {
			collect(cause)
		}
	}
	collect(validationErr)
	return issues
}

func fieldPathFromPointer(pointer string) string {
	trimmed := strings.TrimPrefix(strings.TrimSpace(pointer), "#")
	trimmed = strings.TrimPrefix(trimmed, "/")
	if trimmed == "" {
		return ""
	}
	parts := strings.Split(trimmed, "/")
	for idx, part := range parts {
		part = strings.ReplaceAll(part, "~1", "/")
		parts[idx] = strings.ReplaceAll(part, "~0", "~")
	}
	return strings.Join(parts, ".")
}

func pointerFromPath(path string) string {
	if path == "" {
		return ""
	}
	parts := strings.Split(path, ".")
	for idx, part := range parts {
		part = strings.ReplaceAll(part, "~", "~0")
		parts[idx] = strings.ReplaceAll(part, "/", "~1")
	}
	return "/" + strings.Join(parts, "/")
}
