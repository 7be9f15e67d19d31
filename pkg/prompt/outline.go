package prompt

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-inputschema/pkg/model"
	"github.com/goliatone/go-inputschema/pkg/openapi"
)

// Line is one row of a form outline.
type Line struct {
	Depth       int
	Path        string
	ID          string
	Kind        model.Kind
	Type        string
	Description string
	Choices     []string
}

// Example is an input text paired with the JSON value expected for it.
type Example struct {
	Text   string
	Output string
}

// Outline describes every element of form, depth first, one line per
// element. Paths are relative to the form.
func Outline(form model.Form) []Line {
	var lines []Line
	appendLines(&lines, form.Elements(), "", 0)
	return lines
}

func appendLines(lines *[]Line, elements []model.Input, prefix string, depth int) {
	for _, element := range elements {
		path := model.JoinPath(prefix, element.ID())
		line := Line{
			Depth:       depth,
			Path:        path,
			ID:          element.ID(),
			Kind:        element.Kind(),
			Type:        typeLabel(element),
			Description: element.Description(),
		}
		if selection, ok := element.(model.Selection); ok {
			line.Choices = selection.OptionIDs()
		}
		*lines = append(*lines, line)

		if form, ok := element.(model.Form); ok {
			appendLines(lines, form.Elements(), path, depth+1)
		}
	}
}

func typeLabel(input model.Input) string {
	switch typed := input.(type) {
	case model.ExtractionInput:
		switch typed.Kind() {
		case model.KindNumber:
			return "number"
		case model.KindNumericRange:
			return "numeric range"
		case model.KindDate:
			return "date"
		default:
			return "text"
		}
	case model.AutocompleteInput:
		return "text, suggested"
	case model.Option:
		return "boolean"
	case model.Selection:
		if typed.Multiple() {
			return "any of"
		}
		return "one of"
	case model.Form:
		return "object"
	default:
		return string(input.Kind())
	}
}

// Examples derives prompt examples from the extraction examples and option
// phrases found in form. Each example's output holds only the value it
// demonstrates, nested under the ids of enclosing forms.
func Examples(form model.Form) ([]Example, error) {
	var out []Example
	err := model.Walk(form, func(path string, input model.Input) error {
		rel := strings.TrimPrefix(strings.TrimPrefix(path, form.ID()), ".")
		switch typed := input.(type) {
		case model.ExtractionInput:
			for _, example := range typed.Examples() {
				encoded, err := outputJSON(rel, exampleValue(typed.Kind(), example.Value))
				if err != nil {
					return err
				}
				out = append(out, Example{Text: example.Text, Output: encoded})
			}
		case model.Selection:
			for _, option := range typed.Options() {
				var value any = option.ID()
				if typed.Multiple() {
					value = []string{option.ID()}
				}
				for _, phrase := range option.Examples() {
					encoded, err := outputJSON(rel, value)
					if err != nil {
						return err
					}
					out = append(out, Example{Text: phrase, Output: encoded})
				}
			}
			return model.SkipChildren
		case model.Option:
			for _, phrase := range typed.Examples() {
				encoded, err := outputJSON(rel, true)
				if err != nil {
					return err
				}
				out = append(out, Example{Text: phrase, Output: encoded})
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("prompt: build examples: %w", err)
	}
	return out, nil
}

// exampleValue converts an example value into the JSON shape the schema
// expects, falling back to the raw string when it does not parse.
func exampleValue(kind model.Kind, raw string) any {
	trimmed := strings.TrimSpace(raw)
	switch kind {
	case model.KindNumber:
		if number, err := strconv.ParseFloat(trimmed, 64); err == nil {
			return number
		}
	case model.KindNumericRange:
		if low, high, ok := parseRange(trimmed); ok {
			return map[string]any{openapi.RangeMin: low, openapi.RangeMax: high}
		}
	}
	return raw
}

func parseRange(raw string) (float64, float64, bool) {
	for _, sep := range []string{"..", " to ", "-"} {
		idx := strings.Index(raw[min(1, len(raw)):], sep)
		if idx < 0 {
			continue
		}
		idx += min(1, len(raw))
		low, errLow := strconv.ParseFloat(strings.TrimSpace(raw[:idx]), 64)
		high, errHigh := strconv.ParseFloat(strings.TrimSpace(raw[idx+len(sep):]), 64)
		if errLow == nil && errHigh == nil {
			return low, high, true
		}
	}
	return 0, 0, false
}

func outputJSON(path string, value any) (string, error) {
	wrapped := value
	if path != "" {
		segments := strings.Split(path, ".")
		for idx := len(segments) - 1; idx >= 0; idx-- {
			wrapped = map[string]any{segments[idx]: wrapped}
		}
	}
	data, err := json.Marshal(wrapped)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
