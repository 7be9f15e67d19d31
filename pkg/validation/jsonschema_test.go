package validation

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-inputschema/pkg/model"
)

func bookingForm() model.Form {
	arrival := model.Must(model.NewDateInput("arrival", "arrival date", nil))
	budget := model.Must(model.NewNumericRange("budget", "nightly budget", nil))
	extras := model.Must(model.NewSelection("extras", "requested extras", []model.Option{
		model.Must(model.NewOption("breakfast", "breakfast included", nil)),
		model.Must(model.NewOption("parking", "parking space", nil)),
	}, nil, true))
	room := model.Must(model.NewSelection("room", "room type", []model.Option{
		model.Must(model.NewOption("single", "single room", nil)),
		model.Must(model.NewOption("double", "double room", nil)),
	}, nil, false))
	name := model.Must(model.NewTextInput("name", "guest name", nil))
	stay := model.Must(model.NewNumericRange("nights", "length of stay", nil))
	guest := model.Must(model.NewForm("guest", "lead guest", []model.Input{name, stay}, nil))
	return model.Must(model.NewForm("booking", "hotel booking", []model.Input{arrival, budget, extras, room, guest}, nil))
}

func TestValidate_Valid(t *testing.T) {
	raw := []byte(`{
  "arrival": "2024-05-03",
  "budget": {"min": 80, "max": 120},
  "extras": ["breakfast"],
  "room": "double",
  "guest": {"name": "Ada", "nights": {"min": 2, "max": 3}}
}`)
	result, err := Validate(bookingForm(), raw)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !result.Valid {
		t.Fatalf("expected valid result: %#v", result.Issues)
	}
}

func TestValidate_PartialResultsAreValid(t *testing.T) {
	result, err := Validate(bookingForm(), []byte(`{"room": "single"}`))
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !result.Valid {
		t.Fatalf("expected missing fields to be allowed: %#v", result.Issues)
	}
}

func TestValidate_ReportsFieldIssues(t *testing.T) {
	raw := []byte(`{
  "arrival": "May 3rd",
  "room": "suite",
  "extras": ["breakfast", "breakfast"],
  "unexpected": true
}`)
	result, err := Validate(bookingForm(), raw)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if result.Valid {
		t.Fatalf("expected invalid result")
	}

	fields := make(map[string]bool)
	for _, issue := range result.Issues {
		fields[issue.Field] = true
		if strings.TrimSpace(issue.Message) == "" {
			t.Fatalf("issue without message: %#v", issue)
		}
	}
	for _, field := range []string{"arrival", "room", "extras"} {
		if !fields[field] {
			t.Fatalf("expected an issue for %q, got %#v", field, result.Issues)
		}
	}
}

func TestValidate_EmptySelectionAllowsNoValue(t *testing.T) {
	pick := model.Must(model.NewSelection("pick", "pick one", []model.Option{}, nil, false))
	picks := model.Must(model.NewSelection("picks", "pick many", []model.Option{}, nil, true))
	form := model.Must(model.NewForm("empty", "empty choices", []model.Input{pick, picks}, nil))

	tests := []struct {
		name  string
		raw   string
		valid bool
	}{
		{name: "single value", raw: `{"pick": "anything"}`, valid: false},
		{name: "multiple value", raw: `{"picks": ["anything"]}`, valid: false},
		{name: "omitted", raw: `{}`, valid: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Validate(form, []byte(tt.raw))
			if err != nil {
				t.Fatalf("validate: %v", err)
			}
			if result.Valid != tt.valid {
				t.Fatalf("expected valid=%v, got %#v", tt.valid, result)
			}
		})
	}
}

func TestValidate_RangeOrder(t *testing.T) {
	validator, err := NewValidator(bookingForm())
	if err != nil {
		t.Fatalf("new validator: %v", err)
	}
	result := validator.Validate([]byte(`{"budget": {"min": 200, "max": 100}, "guest": {"nights": {"min": 5, "max": 1}}}`))
	if result.Valid {
		t.Fatalf("expected invalid ranges")
	}

	var got []Issue
	for _, issue := range result.Issues {
		got = append(got, Issue{Path: issue.Path, Field: issue.Field})
	}
	want := []Issue{
		{Path: "/budget", Field: "budget"},
		{Path: "/guest/nights", Field: "guest.nights"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("range issues mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_InvalidJSON(t *testing.T) {
	result, err := Validate(bookingForm(), []byte(`{"room":`))
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if result.Valid || len(result.Issues) != 1 {
		t.Fatalf("expected a single JSON issue, got %#v", result)
	}
}

func TestValidate_NilInput(t *testing.T) {
	if _, err := Validate(nil, []byte(`{}`)); err == nil {
		t.Fatalf("expected error for nil input")
	}
}

func TestValidator_ConcurrentUse(t *testing.T) {
	validator, err := NewValidator(bookingForm())
	if err != nil {
		t.Fatalf("new validator: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if result := validator.Validate([]byte(`{"room": "single"}`)); !result.Valid {
				t.Errorf("unexpected issues: %#v", result.Issues)
			}
		}()
	}
	wg.Wait()
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "tagged", text: "Sure!\n<json>{\"room\": \"single\"}</json>\nDone.", want: `{"room": "single"}`},
		{name: "fenced", text: "Here you go:\n```json\n{\"room\": \"double\"}\n```", want: `{"room": "double"}`},
		{name: "bare", text: "The answer is {\"a\": {\"b\": 1}} as requested.", want: `{"a": {"b": 1}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractJSON(tt.text)
			if err != nil {
				t.Fatalf("extract: %v", err)
			}
			if diff := cmp.Diff(tt.want, string(got)); diff != "" {
				t.Fatalf("extracted mismatch (-want +got):\n%s", diff)
			}
		})
	}

	if _, err := ExtractJSON("no structured data here"); !errors.Is(err, ErrNoJSON) {
		t.Fatalf("expected ErrNoJSON, got %v", err)
	}
	if _, err := ExtractJSON("{not json}"); !errors.Is(err, ErrNoJSON) {
		t.Fatalf("expected ErrNoJSON for malformed object, got %v", err)
	}
}
