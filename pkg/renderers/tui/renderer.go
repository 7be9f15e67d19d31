package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-inputschema/pkg/model"
	"github.com/goliatone/go-inputschema/pkg/openapi"
	"github.com/goliatone/go-inputschema/pkg/validation"
)

// DateLayout is the layout accepted for date inputs.
const DateLayout = "2006-01-02"

// Renderer collects values for a form interactively in the terminal. Empty
// answers leave the corresponding value unset, matching how extraction
// results omit what the text does not mention.
type Renderer struct {
	driver            PromptDriver
	outputFormat      OutputFormat
	suggester         Suggester
	prefill           map[string]any
	submitTransformer SubmitTransformer
	theme             Theme
}

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		driver:       newSurveyDriver(),
		outputFormat: OutputFormatJSON,
	}

	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}

	if _, ok := ParseOutputFormat(string(r.outputFormat)); !ok {
		return nil, fmt.Errorf("tui: unknown output format %q", r.outputFormat)
	}
	return r, nil
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain"
	default:
		return "application/json"
	}
}

// Collect prompts for every element of form in order and returns the
// answers as a nested map shaped like an extraction result.
func (r *Renderer) Collect(ctx context.Context, form model.Form) (map[string]any, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.driver == nil {
		return nil, errors.New("tui: prompt driver is nil")
	}
	if form.ID() == "" {
		return nil, &model.MissingFieldError{Kind: model.KindForm, Field: "id"}
	}

	state := NewState(r.prefill)
	if err := r.promptElements(ctx, form.Elements(), "", state); err != nil {
		return nil, err
	}
	return state.Values(), nil
}

// Render collects values, checks them against the form schema and
// serializes them in the configured output format.
func (r *Renderer) Render(ctx context.Context, form model.Form) ([]byte, error) {
	values, err := r.Collect(ctx, form)
	if err != nil {
		return nil, err
	}

	validator, err := validation.NewValidator(form)
	if err != nil {
		return nil, fmt.Errorf("tui: %w", err)
	}
	if result := validator.ValidateValue(values); !result.Valid {
		messages := make([]string, 0, len(result.Issues))
		for _, issue := range result.Issues {
			messages = append(messages, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
		}
		return nil, fmt.Errorf("%w: %s", ErrInvalidResult, strings.Join(messages, "; "))
	}

	if r.submitTransformer != nil {
		values, err = r.submitTransformer(values)
		if err != nil {
			return nil, fmt.Errorf("tui: submit transformer: %w", err)
		}
	}

	return r.serialize(values)
}

func (r *Renderer) promptElements(ctx context.Context, elements []model.Input, prefix string, state *State) error {
	for _, element := range elements {
		path := model.JoinPath(prefix, element.ID())
		if err := r.promptInput(ctx, element, path, state); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) promptInput(ctx context.Context, input model.Input, path string, state *State) error {
	switch typed := input.(type) {
	case model.ExtractionInput:
		switch typed.Kind() {
		case model.KindNumber:
			return r.promptNumber(ctx, typed, path, state)
		case model.KindNumericRange:
			return r.promptRange(ctx, typed, path, state)
		case model.KindDate:
			return r.promptText(ctx, typed, path, state, validateDate)
		default:
			return r.promptText(ctx, typed, path, state, nil)
		}
	case model.AutocompleteInput:
		return r.promptText(ctx, typed, path, state, nil)
	case model.Option:
		return r.promptOption(ctx, typed, path, state)
	case model.Selection:
		if typed.Multiple() {
			return r.promptMultiSelection(ctx, typed, path, state)
		}
		return r.promptSelection(ctx, typed, path, state)
	case model.Form:
		return r.promptElements(ctx, typed.Elements(), path, state)
	default:
		return fmt.Errorf("tui: unsupported input %T at %s", input, path)
	}
}

func (r *Renderer) promptText(ctx context.Context, input model.Input, path string, state *State, validate func(string) error) error {
	cfg := InputConfig{
		Message:   r.label(input),
		Default:   defaultStringValue(state, path),
		Help:      input.Description(),
		Validator: optional(validate),
	}
	if input.Kind() == model.KindAutocomplete && r.suggester != nil {
		suggest := r.suggester
		cfg.Suggest = func(partial string) []string {
			return suggest(path, partial)
		}
	}

	for {
		response, err := r.driver.Input(ctx, cfg)
		if err != nil {
			return err
		}
		response = strings.TrimSpace(response)
		if response == "" {
			state.Delete(path)
			return nil
		}
		if validate != nil {
			if err := validate(response); err != nil {
				r.info(ctx, fmt.Sprintf("Invalid %s: %v", path, err))
				continue
			}
		}
		return state.SetValue(path, response)
	}
}

func (r *Renderer) promptNumber(ctx context.Context, input model.Input, path string, state *State) error {
	cfg := InputConfig{
		Message:   r.label(input),
		Default:   defaultNumberString(state, path),
		Help:      input.Description(),
		Validator: optional(validateNumber),
	}
	for {
		response, err := r.driver.Input(ctx, cfg)
		if err != nil {
			return err
		}
		response = strings.TrimSpace(response)
		if response == "" {
			state.Delete(path)
			return nil
		}
		value, err := strconv.ParseFloat(response, 64)
		if err != nil {
			r.info(ctx, fmt.Sprintf("Invalid %s: %q is not a number", path, response))
			continue
		}
		return state.SetValue(path, value)
	}
}

func (r *Renderer) promptRange(ctx context.Context, input model.Input, path string, state *State) error {
	var lowDefault, highDefault string
	if current, ok := state.GetValue(path); ok {
		if bounds, ok := current.(map[string]any); ok {
			lowDefault = numberString(bounds[openapi.RangeMin])
			highDefault = numberString(bounds[openapi.RangeMax])
		}
	}

	label := r.label(input)
	for {
		lowRaw, err := r.driver.Input(ctx, InputConfig{
			Message:   label + " (min)",
			Default:   lowDefault,
			Help:      input.Description(),
			Validator: optional(validateNumber),
		})
		if err != nil {
			return err
		}
		lowRaw = strings.TrimSpace(lowRaw)
		if lowRaw == "" {
			state.Delete(path)
			return nil
		}
		low, err := strconv.ParseFloat(lowRaw, 64)
		if err != nil {
			r.info(ctx, fmt.Sprintf("Invalid %s: %q is not a number", path, lowRaw))
			continue
		}

		highRaw, err := r.driver.Input(ctx, InputConfig{
			Message:   label + " (max)",
			Default:   highDefault,
			Help:      input.Description(),
			Validator: validateNumber,
		})
		if err != nil {
			return err
		}
		high, err := strconv.ParseFloat(strings.TrimSpace(highRaw), 64)
		if err != nil {
			r.info(ctx, fmt.Sprintf("Invalid %s: %q is not a number", path, highRaw))
			continue
		}
		if low > high {
			r.info(ctx, fmt.Sprintf("Invalid %s: minimum %v is greater than maximum %v", path, low, high))
			continue
		}
		return state.SetValue(path, map[string]any{
			openapi.RangeMin: low,
			openapi.RangeMax: high,
		})
	}
}

func (r *Renderer) promptOption(ctx context.Context, option model.Option, path string, state *State) error {
	current, _ := state.GetValue(path)
	def, _ := current.(bool)
	resp, err := r.driver.Confirm(ctx, ConfirmConfig{
		Message: r.label(option),
		Default: def,
		Help:    option.Description(),
	})
	if err != nil {
		return err
	}
	return state.SetValue(path, resp)
}

func (r *Renderer) promptSelection(ctx context.Context, selection model.Selection, path string, state *State) error {
	ids := selection.OptionIDs()
	if len(ids) == 0 {
		r.info(ctx, fmt.Sprintf("Skipping %s: no options", path))
		return nil
	}

	defaultIdx := -1
	if current, ok := state.GetValue(path); ok {
		if id, ok := current.(string); ok {
			defaultIdx = indexOf(ids, id)
		}
	}

	for {
		idx, err := r.driver.Select(ctx, SelectConfig{
			Message:      r.label(selection),
			Options:      optionLabels(selection),
			DefaultIndex: defaultIdx,
			Help:         selection.Description(),
		})
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(ids) {
			r.info(ctx, fmt.Sprintf("Invalid %s selection", path))
			continue
		}
		return state.SetValue(path, ids[idx])
	}
}

func (r *Renderer) promptMultiSelection(ctx context.Context, selection model.Selection, path string, state *State) error {
	ids := selection.OptionIDs()
	if len(ids) == 0 {
		r.info(ctx, fmt.Sprintf("Skipping %s: no options", path))
		return nil
	}

	var defaults []int
	if current, ok := state.GetValue(path); ok {
		defaults = indicesOf(ids, stringifySlice(current))
	}

	indices, err := r.driver.MultiSelect(ctx, SelectConfig{
		Message:  r.label(selection),
		Options:  optionLabels(selection),
		Defaults: defaults,
		Help:     selection.Description(),
	})
	if err != nil {
		return err
	}

	chosen := make([]any, 0, len(indices))
	seen := make(map[int]struct{}, len(indices))
	for _, idx := range indices {
		if idx < 0 || idx >= len(ids) {
			continue
		}
		if _, dup := seen[idx]; dup {
			continue
		}
		seen[idx] = struct{}{}
		chosen = append(chosen, ids[idx])
	}
	if len(chosen) == 0 {
		state.Delete(path)
		return nil
	}
	return state.SetValue(path, chosen)
}

func (r *Renderer) label(input model.Input) string {
	return r.theme.PromptPrefix + input.ID()
}

func (r *Renderer) info(ctx context.Context, msg string) {
	_ = r.driver.Info(ctx, r.theme.InfoPrefix+msg)
}

func (r *Renderer) serialize(values map[string]any) ([]byte, error) {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return []byte(flattenForm(values)), nil
	case OutputFormatPrettyText:
		return []byte(prettyPrint(values)), nil
	default:
		return jsonBytes(values)
	}
}

func optionLabels(selection model.Selection) []string {
	options := selection.Options()
	labels := make([]string, 0, len(options))
	for _, option := range options {
		if option.Description() == "" {
			labels = append(labels, option.ID())
			continue
		}
		labels = append(labels, fmt.Sprintf("%s (%s)", option.ID(), option.Description()))
	}
	return labels
}

func optional(validate func(string) error) func(string) error {
	if validate == nil {
		return nil
	}
	return func(raw string) error {
		if strings.TrimSpace(raw) == "" {
			return nil
		}
		return validate(strings.TrimSpace(raw))
	}
}

func validateDate(raw string) error {
	if _, err := time.Parse(DateLayout, raw); err != nil {
		return fmt.Errorf("%q is not a date in YYYY-MM-DD form", raw)
	}
	return nil
}

func validateNumber(raw string) error {
	if _, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err != nil {
		return fmt.Errorf("%q is not a number", raw)
	}
	return nil
}

func defaultStringValue(state *State, path string) string {
	if v, ok := state.GetValue(path); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func defaultNumberString(state *State, path string) string {
	v, ok := state.GetValue(path)
	if !ok {
		return ""
	}
	return numberString(v)
}

func numberString(value any) string {
	switch v := value.(type) {
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case json.Number:
		return v.String()
	case string:
		return v
	default:
		return ""
	}
}

func stringifySlice(value any) []string {
	switch v := value.(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, fmt.Sprint(item))
		}
		return out
	default:
		return nil
	}
}

func flattenForm(values map[string]any) string {
	flattened := url.Values{}
	flatten("", values, flattened)
	return flattened.Encode()
}

func flatten(prefix string, value any, out url.Values) {
	switch v := value.(type) {
	case map[string]any:
		for key, val := range v {
			flatten(model.JoinPath(prefix, key), val, out)
		}
	case []any:
		for _, val := range v {
			out.Add(prefix+"[]", fmt.Sprint(val))
		}
	default:
		out.Set(prefix, fmt.Sprint(v))
	}
}

func prettyPrint(values map[string]any) string {
	var b strings.Builder
	writePretty(&b, "", values)
	return b.String()
}

func writePretty(b *strings.Builder, prefix string, value any) {
	switch v := value.(type) {
	case map[string]any:
		keys := make([]string, 0, len(v))
		for key := range v {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			writePretty(b, model.JoinPath(prefix, key), v[key])
		}
	case []any:
		for idx, val := range v {
			writePretty(b, fmt.Sprintf("%s[%d]", prefix, idx), val)
		}
	default:
		if prefix != "" {
			fmt.Fprintf(b, "%s=%v\n", prefix, v)
		}
	}
}

func jsonBytes(values map[string]any) ([]byte, error) {
	return json.Marshal(values)
}
