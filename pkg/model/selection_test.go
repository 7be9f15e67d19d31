package model_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-inputschema/pkg/model"
)

func confirmSelection(t *testing.T) model.Selection {
	t.Helper()

	yes := model.Must(model.NewOption("yes", "affirmative", []string{"yes", "yep"}))
	no := model.Must(model.NewOption("no", "negative", []string{"no", "nope"}))
	selection, err := model.NewSelection("confirm", "confirmation", []model.Option{yes, no}, []string{"do you agree?"}, false)
	if err != nil {
		t.Fatalf("build selection: %v", err)
	}
	return selection
}

func TestSelection_OptionIDs(t *testing.T) {
	selection := confirmSelection(t)

	if diff := cmp.Diff([]string{"yes", "no"}, selection.OptionIDs()); diff != "" {
		t.Fatalf("option ids mismatch (-want +got):\n%s", diff)
	}
	if selection.Multiple() {
		t.Fatalf("expected single selection")
	}
	if diff := cmp.Diff([]string{"do you agree?"}, selection.Examples()); diff != "" {
		t.Fatalf("examples mismatch (-want +got):\n%s", diff)
	}

	options := selection.Options()
	if len(options) != len(selection.OptionIDs()) {
		t.Fatalf("option ids length %d does not match options %d", len(selection.OptionIDs()), len(options))
	}
	for idx, id := range selection.OptionIDs() {
		if options[idx].ID() != id {
			t.Fatalf("option id %d = %q, want %q", idx, id, options[idx].ID())
		}
	}
}

func TestSelection_EmptyOptions(t *testing.T) {
	selection, err := model.NewSelection("pick", "pick one", []model.Option{}, nil, true)
	if err != nil {
		t.Fatalf("empty options should be accepted: %v", err)
	}
	ids := selection.OptionIDs()
	if ids == nil || len(ids) != 0 {
		t.Fatalf("expected empty non-nil ids, got %#v", ids)
	}
	if !selection.Multiple() {
		t.Fatalf("expected multiple to be preserved")
	}
	if options := selection.Options(); options == nil || len(options) != 0 {
		t.Fatalf("expected empty non-nil options, got %#v", options)
	}
	if examples := selection.Examples(); examples != nil {
		t.Fatalf("expected nil examples, got %#v", examples)
	}

	rebuilt, err := model.NewSelection(selection.ID(), selection.Description(), selection.Options(), selection.Examples(), selection.Multiple())
	if err != nil {
		t.Fatalf("rebuild from accessors: %v", err)
	}
	if !model.Equal(selection, rebuilt) {
		t.Fatalf("expected rebuilt selection to be equal")
	}
}

func TestSelection_DuplicateOptionIDs(t *testing.T) {
	a := model.Must(model.NewOption("red", "red colour", nil))
	b := model.Must(model.NewOption("red", "another red", nil))

	_, err := model.NewSelection("colour", "favourite colour", []model.Option{a, b}, nil, false)
	if !errors.Is(err, model.ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}
	var invalid *model.InvalidFieldError
	if !errors.As(err, &invalid) || invalid.Field != "options" {
		t.Fatalf("expected InvalidFieldError on options, got %v", err)
	}
}

func TestSelection_ZeroOptionRejected(t *testing.T) {
	_, err := model.NewSelection("colour", "favourite colour", []model.Option{{}}, nil, false)
	var invalid *model.InvalidFieldError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidFieldError, got %v", err)
	}
}

func TestSelection_OptionLookupAndIsolation(t *testing.T) {
	selection := confirmSelection(t)

	option, ok := selection.Option("no")
	if !ok || option.Description() != "negative" {
		t.Fatalf("unexpected lookup result: %v %v", option, ok)
	}
	if _, ok := selection.Option("maybe"); ok {
		t.Fatalf("unexpected option found")
	}

	options := selection.Options()
	options[0] = model.Must(model.NewOption("maybe", "unsure", nil))
	if diff := cmp.Diff([]string{"yes", "no"}, selection.OptionIDs()); diff != "" {
		t.Fatalf("options leaked mutation (-want +got):\n%s", diff)
	}
}

func TestSelection_Equal(t *testing.T) {
	a := confirmSelection(t)
	b := confirmSelection(t)
	if !model.Equal(a, b) {
		t.Fatalf("expected selections to be equal")
	}

	yes := model.Must(model.NewOption("yes", "affirmative", []string{"yes", "yep"}))
	no := model.Must(model.NewOption("no", "negative", []string{"no", "nope"}))
	multi := model.Must(model.NewSelection("confirm", "confirmation", []model.Option{yes, no}, []string{"do you agree?"}, true))
	if model.Equal(a, multi) {
		t.Fatalf("multiple flag must participate in equality")
	}
}
