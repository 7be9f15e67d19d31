package loader

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-inputschema/pkg/model"
)

// node is the serialised shape of a single input. The same shape is used for
// every kind; fields that do not apply to a kind must be left out.
type node struct {
	Kind        string  `json:"kind" yaml:"kind"`
	ID          string  `json:"id" yaml:"id"`
	Description string  `json:"description" yaml:"description"`
	Multiple    bool    `json:"multiple,omitempty" yaml:"multiple,omitempty"`
	Examples    []any   `json:"examples,omitempty" yaml:"examples,omitempty"`
	Options     *[]node `json:"options,omitempty" yaml:"options,omitempty"`
	Elements    []node  `json:"elements,omitempty" yaml:"elements,omitempty"`
}

func (d *decoder) input(raw node, path string) (model.Input, error) {
	if strings.TrimSpace(raw.Kind) == "" {
		return nil, d.fail(path, &model.MissingFieldError{Field: "kind"})
	}
	kind, ok := model.ParseKind(strings.TrimSpace(raw.Kind))
	if !ok {
		return nil, d.fail(path, &model.InvalidFieldError{
			Field:  "kind",
			Reason: fmt.Sprintf("unknown kind %q", raw.Kind),
		})
	}
	if err := checkApplicable(kind, raw); err != nil {
		return nil, d.fail(path, err)
	}

	description := d.text(raw.Description)
	switch {
	case kind.IsExtraction():
		examples, err := d.pairs(kind, raw.Examples)
		if err != nil {
			return nil, d.fail(path, err)
		}
		input, err := model.NewExtractionInput(kind, raw.ID, description, examples)
		if err != nil {
			return nil, d.fail(path, err)
		}
		return input, nil
	case kind == model.KindAutocomplete:
		input, err := model.NewAutocompleteInput(raw.ID, description)
		if err != nil {
			return nil, d.fail(path, err)
		}
		return input, nil
	case kind == model.KindOption:
		return d.option(raw, path)
	case kind == model.KindSelection:
		return d.selection(raw, path)
	default:
		return d.form(raw, path)
	}
}

func (d *decoder) option(raw node, path string) (model.Option, error) {
	if kind := strings.TrimSpace(raw.Kind); kind != "" && kind != string(model.KindOption) {
		return model.Option{}, d.fail(path, &model.InvalidFieldError{
			Kind:   model.KindSelection,
			Field:  "options",
			Reason: fmt.Sprintf("option has kind %q", raw.Kind),
		})
	}
	if err := checkApplicable(model.KindOption, raw); err != nil {
		return model.Option{}, d.fail(path, err)
	}
	examples, err := d.phrases(model.KindOption, raw.Examples)
	if err != nil {
		return model.Option{}, d.fail(path, err)
	}
	option, err := model.NewOption(raw.ID, d.text(raw.Description), examples)
	if err != nil {
		return model.Option{}, d.fail(path, err)
	}
	return option, nil
}

func (d *decoder) selection(raw node, path string) (model.Selection, error) {
	examples, err := d.phrases(model.KindSelection, raw.Examples)
	if err != nil {
		return model.Selection{}, d.fail(path, err)
	}

	var options []model.Option
	if raw.Options != nil {
		options = make([]model.Option, 0, len(*raw.Options))
		for idx, rawOption := range *raw.Options {
			option, err := d.option(rawOption, childPath(path, rawOption.ID, idx))
			if err != nil {
				return model.Selection{}, err
			}
			options = append(options, option)
		}
	}

	selection, err := model.NewSelection(raw.ID, d.text(raw.Description), options, examples, raw.Multiple)
	if err != nil {
		return model.Selection{}, d.fail(path, err)
	}
	return selection, nil
}

func (d *decoder) form(raw node, path string) (model.Form, error) {
	examples, err := d.phrases(model.KindForm, raw.Examples)
	if err != nil {
		return model.Form{}, d.fail(path, err)
	}

	elements := make([]model.Input, 0, len(raw.Elements))
	for idx, rawElement := range raw.Elements {
		element, err := d.input(rawElement, childPath(path, rawElement.ID, idx))
		if err != nil {
			return model.Form{}, err
		}
		elements = append(elements, element)
	}

	form, err := model.NewForm(raw.ID, d.text(raw.Description), elements, examples)
	if err != nil {
		return model.Form{}, d.fail(path, err)
	}
	return form, nil
}

func (d *decoder) pairs(kind model.Kind, raw []any) ([]model.Example, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	out := make([]model.Example, 0, len(raw))
	for idx, entry := range raw {
		var text, value any
		switch typed := entry.(type) {
		case []any:
			if len(typed) != 2 {
				return nil, invalidExample(kind, idx, fmt.Sprintf("expected a [text, value] pair, got %d items", len(typed)))
			}
			text, value = typed[0], typed[1]
		case map[string]any:
			text, value = typed["text"], typed["value"]
			if len(typed) != 2 || text == nil || value == nil {
				return nil, invalidExample(kind, idx, "expected keys text and value")
			}
		default:
			return nil, invalidExample(kind, idx, fmt.Sprintf("expected a [text, value] pair, got %T", entry))
		}
		textStr, ok := text.(string)
		if !ok {
			return nil, invalidExample(kind, idx, fmt.Sprintf("text must be a string, got %T", text))
		}
		valueStr, ok := value.(string)
		if !ok {
			return nil, invalidExample(kind, idx, fmt.Sprintf("value must be a string, got %T", value))
		}
		out = append(out, model.Example{Text: d.text(textStr), Value: d.text(valueStr)})
	}
	return out, nil
}

func (d *decoder) phrases(kind model.Kind, raw []any) ([]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	out := make([]string, 0, len(raw))
	for idx, entry := range raw {
		phrase, ok := entry.(string)
		if !ok {
			return nil, invalidExample(kind, idx, fmt.Sprintf("expected a string, got %T", entry))
		}
		out = append(out, d.text(phrase))
	}
	return out, nil
}

func checkApplicable(kind model.Kind, raw node) error {
	if raw.Options != nil && kind != model.KindSelection {
		return &model.InvalidFieldError{Kind: kind, Field: "options", Reason: "only selections carry options"}
	}
	if raw.Elements != nil && kind != model.KindForm {
		return &model.InvalidFieldError{Kind: kind, Field: "elements", Reason: "only forms carry elements"}
	}
	if raw.Multiple && kind != model.KindSelection {
		return &model.InvalidFieldError{Kind: kind, Field: "multiple", Reason: "only selections allow multiple"}
	}
	if len(raw.Examples) > 0 && kind == model.KindAutocomplete {
		return &model.InvalidFieldError{Kind: kind, Field: "examples", Reason: "autocomplete inputs carry no examples"}
	}
	return nil
}

func invalidExample(kind model.Kind, idx int, reason string) error {
	return &model.InvalidFieldError{
		Kind:   kind,
		Field:  "examples",
		Reason: fmt.Sprintf("entry %d: %s", idx, reason),
	}
}

func childPath(parent, id string, idx int) string {
	if strings.TrimSpace(id) == "" {
		id = fmt.Sprintf("[%d]", idx)
	}
	return model.JoinPath(parent, id)
}

func nodeFrom(input model.Input) (node, error) {
	switch typed := input.(type) {
	case model.ExtractionInput:
		out := node{Kind: string(typed.Kind()), ID: typed.ID(), Description: typed.Description()}
		for _, example := range typed.Examples() {
			out.Examples = append(out.Examples, map[string]any{"text": example.Text, "value": example.Value})
		}
		return out, nil
	case model.AutocompleteInput:
		return node{Kind: string(typed.Kind()), ID: typed.ID(), Description: typed.Description()}, nil
	case model.Option:
		return node{
			Kind:        string(typed.Kind()),
			ID:          typed.ID(),
			Description: typed.Description(),
			Examples:    phrasesToAny(typed.Examples()),
		}, nil
	case model.Selection:
		options := make([]node, 0, len(typed.Options()))
		for _, option := range typed.Options() {
			encoded, err := nodeFrom(option)
			if err != nil {
				return node{}, err
			}
			options = append(options, encoded)
		}
		return node{
			Kind:        string(typed.Kind()),
			ID:          typed.ID(),
			Description: typed.Description(),
			Multiple:    typed.Multiple(),
			Examples:    phrasesToAny(typed.Examples()),
			Options:     &options,
		}, nil
	case model.Form:
		out := node{
			Kind:        string(typed.Kind()),
			ID:          typed.ID(),
			Description: typed.Description(),
			Examples:    phrasesToAny(typed.Examples()),
		}
		for _, element := range typed.Elements() {
			encoded, err := nodeFrom(element)
			if err != nil {
				return node{}, err
			}
			out.Elements = append(out.Elements, encoded)
		}
		return out, nil
	case *model.ExtractionInput, *model.AutocompleteInput, *model.Option, *model.Selection, *model.Form:
		inner := derefInput(typed)
		if inner == nil {
			return node{}, fmt.Errorf("loader: nil input %T", input)
		}
		return nodeFrom(inner)
	default:
		return node{}, fmt.Errorf("loader: unsupported input %T", input)
	}
}

func derefInput(input model.Input) model.Input {
	switch typed := input.(type) {
	case *model.ExtractionInput:
		if typed != nil {
			return *typed
		}
	case *model.AutocompleteInput:
		if typed != nil {
			return *typed
		}
	case *model.Option:
		if typed != nil {
			return *typed
		}
	case *model.Selection:
		if typed != nil {
			return *typed
		}
	case *model.Form:
		if typed != nil {
			return *typed
		}
	default:
		return input
	}
	return nil
}

func phrasesToAny(values []string) []any {
	if len(values) == 0 {
		return nil
	}
	out := make([]any, len(values))
	for idx, value := range values {
		out[idx] = value
	}
	return out
}
