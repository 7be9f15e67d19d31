package loader_test

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-inputschema/pkg/loader"
	"github.com/goliatone/go-inputschema/pkg/model"
	"github.com/goliatone/go-inputschema/pkg/testsupport"
)

func TestLoadForm_YAML(t *testing.T) {
	form, err := loader.LoadForm("testdata/contact.yaml")
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if form.ID() != "contact" || form.Description() != "contact form" {
		t.Fatalf("unexpected form header: %q %q", form.ID(), form.Description())
	}

	name, ok := form.Element("name")
	if !ok || name.Kind() != model.KindText {
		t.Fatalf("expected text input name, got %#v", name)
	}
	wantExamples := []model.Example{
		{Text: "My name is Ada Lovelace", Value: "Ada Lovelace"},
		{Text: "call me Grace", Value: "Grace"},
	}
	if diff := cmp.Diff(wantExamples, name.(model.Extractor).Examples()); diff != "" {
		t.Fatalf("examples mismatch (-want +got):\n%s", diff)
	}

	confirm, ok := form.Element("confirm")
	if !ok {
		t.Fatalf("missing confirm selection")
	}
	selection := confirm.(model.Selection)
	if diff := cmp.Diff([]string{"yes", "no"}, selection.OptionIDs()); diff != "" {
		t.Fatalf("option ids mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadForm_JSONSanitizesDescriptions(t *testing.T) {
	form, err := loader.LoadForm("testdata/booking.json")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := form.Description(); got != "hotel booking request" {
		t.Fatalf("expected markup to be stripped, got %q", got)
	}

	var kinds []model.Kind
	for _, element := range form.Elements() {
		kinds = append(kinds, element.Kind())
	}
	want := []model.Kind{model.KindDate, model.KindNumericRange, model.KindAutocomplete, model.KindSelection, model.KindForm}
	if diff := cmp.Diff(want, kinds); diff != "" {
		t.Fatalf("kinds mismatch (-want +got):\n%s", diff)
	}

	extras, _ := form.Element("extras")
	if !extras.(model.Selection).Multiple() {
		t.Fatalf("expected multiple selection")
	}

	raw, err := loader.Load("testdata/booking.json", loader.WithSanitize(false))
	if err != nil {
		t.Fatalf("load raw: %v", err)
	}
	if got := raw.Description(); got != "hotel <b>booking</b> request" {
		t.Fatalf("expected raw description, got %q", got)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		missing string
		invalid string
	}{
		{name: "missing kind", doc: "id: a\ndescription: b\n", missing: "kind"},
		{name: "missing description", doc: "kind: text\nid: a\n", missing: "description"},
		{name: "selection without options", doc: "kind: selection\nid: a\ndescription: b\n", missing: "options"},
		{name: "unknown kind", doc: "kind: checkbox\nid: a\ndescription: b\n", invalid: "kind"},
		{name: "bad pair", doc: "kind: text\nid: a\ndescription: b\nexamples:\n  - [only-one]\n", invalid: "examples"},
		{name: "non string phrase", doc: "kind: option\nid: a\ndescription: b\nexamples: [1]\n", invalid: "examples"},
		{name: "options on text", doc: "kind: text\nid: a\ndescription: b\noptions: []\n", invalid: "options"},
		{name: "autocomplete examples", doc: "kind: autocomplete\nid: a\ndescription: b\nexamples: [x]\n", invalid: "examples"},
		{name: "bad id", doc: `{"kind": "number", "id": "9lives", "description": "b"}`, invalid: "id"},
		{
			name:    "duplicate element",
			doc:     "kind: form\nid: f\ndescription: d\nelements:\n  - {kind: text, id: a, description: x}\n  - {kind: date, id: a, description: y}\n",
			invalid: "elements",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loader.Parse([]byte(tt.doc), "inline.yaml")
			if err == nil {
				t.Fatalf("expected error")
			}
			if tt.missing != "" {
				var missing *model.MissingFieldError
				if !errors.As(err, &missing) || missing.Field != tt.missing {
					t.Fatalf("expected missing %q, got %v", tt.missing, err)
				}
			}
			if tt.invalid != "" {
				var invalid *model.InvalidFieldError
				if !errors.As(err, &invalid) || invalid.Field != tt.invalid {
					t.Fatalf("expected invalid %q, got %v", tt.invalid, err)
				}
			}
		})
	}
}

func TestParse_RejectsUnknownKeysAndEmptyDocuments(t *testing.T) {
	if _, err := loader.Parse([]byte(`{"kind":"text","id":"a","description":"b","colour":"red"}`), "x.json"); err == nil {
		t.Fatalf("expected unknown JSON key to fail")
	}
	if _, err := loader.Parse([]byte("kind: text\nid: a\ndescription: b\ncolour: red\n"), "x.yaml"); err == nil {
		t.Fatalf("expected unknown YAML key to fail")
	}
	if _, err := loader.Parse([]byte("  \n"), "x.yaml"); !errors.Is(err, loader.ErrEmptyDocument) {
		t.Fatalf("expected ErrEmptyDocument, got %v", err)
	}
}

func TestParse_EmptyOptionsAccepted(t *testing.T) {
	input, err := loader.Parse([]byte("kind: selection\nid: pick\ndescription: pick one\noptions: []\n"), "x.yaml")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if ids := input.(model.Selection).OptionIDs(); len(ids) != 0 {
		t.Fatalf("expected no option ids, got %v", ids)
	}
}

func TestMarshal_RoundTrip(t *testing.T) {
	original, err := loader.Load("testdata/booking.json")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	empty := model.Must(model.NewSelection("empty", "no options", []model.Option{}, nil, false))
	withEmpty := model.Must(model.NewForm("wrapper", "wrapper form", []model.Input{original, empty}, []string{"a & b"}))

	for _, format := range []loader.Format{loader.FormatJSON, loader.FormatYAML} {
		t.Run(string(format), func(t *testing.T) {
			data, err := loader.Marshal(withEmpty, format)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			decoded, err := loader.Parse(data, "roundtrip."+string(format))
			if err != nil {
				t.Fatalf("parse: %v\n%s", err, data)
			}
			if !model.Equal(withEmpty, decoded) {
				t.Fatalf("round trip changed the tree:\n%s", data)
			}
		})
	}

	if _, err := loader.Marshal(withEmpty, "toml"); err == nil {
		t.Fatalf("expected unsupported format error")
	}
	if _, err := loader.Marshal(nil, loader.FormatJSON); err == nil {
		t.Fatalf("expected nil input error")
	}
}

func TestMarshal_RoundTripKeepsMarkup(t *testing.T) {
	name := model.Must(model.NewTextInput("name", "values <b>bold</b>", []model.Example{
		{Text: "x &amp; y", Value: "x &amp; y"},
	}))
	brk := model.Must(model.NewTextInput("brk", "<br>", nil))
	form := model.Must(model.NewForm("markup", "markup & entities", []model.Input{name, brk}, nil))

	for _, format := range []loader.Format{loader.FormatJSON, loader.FormatYAML} {
		t.Run(string(format), func(t *testing.T) {
			data, err := loader.Marshal(form, format)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			decoded, err := loader.Parse(data, "markup."+string(format), loader.WithSanitize(false))
			if err != nil {
				t.Fatalf("parse: %v\n%s", err, data)
			}
			if !model.Equal(form, decoded) {
				t.Fatalf("round trip changed the tree:\n%s", data)
			}
		})
	}

	data, err := loader.Marshal(form, loader.FormatJSON)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if _, err := loader.Parse(data, "markup.json"); err == nil {
		t.Fatalf("expected sanitising parse to reject a markup-only description")
	}
}

func TestMarshal_Golden(t *testing.T) {
	form := testsupport.MustLoadForm(t, filepath.Join("testdata", "contact.yaml"))
	data, err := loader.Marshal(form, loader.FormatJSON)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	golden := filepath.Join("testdata", "contact.golden.json")
	if testsupport.WriteMaybeGolden(t, golden, append(data, '\n')) {
		return
	}

	var got any
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("decode marshalled form: %v", err)
	}
	want := testsupport.MustReadGoldenJSON(t, golden)
	if diff := testsupport.CompareGolden(want, got); diff != "" {
		t.Fatalf("golden mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFS(t *testing.T) {
	fsys := fstest.MapFS{
		"forms/a.yaml":   {Data: []byte("kind: form\nid: alpha\ndescription: first\n")},
		"forms/b.json":   {Data: []byte(`{"kind":"text","id":"beta","description":"second"}`)},
		"forms/notes.md": {Data: []byte("ignored")},
	}

	store, err := loader.LoadFS(fsys)
	if err != nil {
		t.Fatalf("load fs: %v", err)
	}
	if diff := cmp.Diff([]string{"alpha", "beta"}, store.IDs()); diff != "" {
		t.Fatalf("ids mismatch (-want +got):\n%s", diff)
	}
	if _, ok := store.Form("alpha"); !ok {
		t.Fatalf("expected alpha form")
	}
	if _, ok := store.Form("beta"); ok {
		t.Fatalf("beta is not a form")
	}
	if source, _ := store.Source("beta"); source != "forms/b.json" {
		t.Fatalf("unexpected source %q", source)
	}

	fsys["forms/c.yaml"] = &fstest.MapFile{Data: []byte("kind: date\nid: alpha\ndescription: clash\n")}
	if _, err := loader.LoadFS(fsys); !errors.Is(err, model.ErrDuplicateID) {
		t.Fatalf("expected duplicate root id error, got %v", err)
	}

	empty, err := loader.LoadFS(nil)
	if err != nil || empty.Len() != 0 {
		t.Fatalf("expected empty store, got %v %v", empty, err)
	}
}
