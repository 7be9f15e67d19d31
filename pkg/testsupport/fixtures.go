package testsupport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-inputschema/pkg/loader"
	"github.com/goliatone/go-inputschema/pkg/model"
)

// MustLoadForm reads a form fixture (YAML or JSON). Testing helpers fail the
// test on error to keep contract tests concise.
func MustLoadForm(t *testing.T, path string) model.Form {
	t.Helper()

	form, err := LoadForm(path)
	if err != nil {
		t.Fatalf("load form: %v", err)
	}
	return form
}

// LoadForm returns a form fixture without requiring testing.T, allowing
// callers to wire fixtures in setup functions.
func LoadForm(path string) (model.Form, error) {
	if path == "" {
		return model.Form{}, errors.New("testsupport: form path is required")
	}
	form, err := loader.LoadForm(path)
	if err != nil {
		return model.Form{}, fmt.Errorf("testsupport: load form: %w", err)
	}
	return form, nil
}

// ContactForm builds the contact form used across package tests: a text
// input "name", a number "age" and a yes/no selection "confirm".
func ContactForm() model.Form {
	name := model.Must(model.NewTextInput("name", "full name", []model.Example{
		{Text: "My name is Ada Lovelace", Value: "Ada Lovelace"},
	}))
	age := model.Must(model.NewNumber("age", "age in years", []model.Example{
		{Text: "I am 36 years old", Value: "36"},
	}))
	confirm := model.Must(model.NewSelection("confirm", "confirmation", []model.Option{
		model.Must(model.NewOption("yes", "affirmative", []string{"yep"})),
		model.Must(model.NewOption("no", "negative", []string{"nope"})),
	}, nil, false))
	return model.Must(model.NewForm("contact", "contact form", []model.Input{name, age, confirm}, nil))
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenJSON decodes a JSON golden file into a generic value.
func MustReadGoldenJSON(t *testing.T, path string) any {
	t.Helper()
	var out any
	if err := json.Unmarshal(MustReadGolden(t, path), &out); err != nil {
		t.Fatalf("decode golden %s: %v", path, err)
	}
	return out
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureOutput executes a render function that writes to an io.Writer,
// returning both the string result and the writer contents.
func CaptureOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	return out, buf.String()
}
