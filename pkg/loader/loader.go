package loader

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-inputschema/pkg/model"
)

// Format selects the encoding used by Marshal.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ErrEmptyDocument is returned when a document holds no content.
var ErrEmptyDocument = errors.New("loader: document is empty")

// Option configures decoding.
type Option func(*decoder)

// WithSanitize toggles stripping of markup from descriptions and examples.
// Sanitising is enabled by default.
func WithSanitize(enabled bool) Option {
	return func(d *decoder) {
		d.sanitize = enabled
	}
}

type decoder struct {
	source   string
	sanitize bool
}

func newDecoder(source string, options []Option) *decoder {
	d := &decoder{source: source, sanitize: true}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(d)
	}
	return d
}

func (d *decoder) text(raw string) string {
	if !d.sanitize {
		return raw
	}
	return sanitizeText(raw)
}

// fail prefixes err with the document source and element path while keeping
// it reachable through errors.As.
func (d *decoder) fail(path string, err error) error {
	if path == "" {
		return fmt.Errorf("loader: %s: %w", d.source, err)
	}
	return fmt.Errorf("loader: %s: %s: %w", d.source, path, err)
}

// Parse decodes a single input tree from JSON or YAML. Documents starting
// with '{' are decoded as JSON; everything else as YAML. Unknown keys are
// rejected.
func Parse(data []byte, source string, options ...Option) (model.Input, error) {
	d := newDecoder(source, options)
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyDocument, source)
	}

	var raw node
	if trimmed[0] == '{' {
		dec := json.NewDecoder(bytes.NewReader(trimmed))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("loader: parse %s as JSON: %w", source, err)
		}
	} else {
		dec := yaml.NewDecoder(bytes.NewReader(trimmed))
		dec.KnownFields(true)
		if err := dec.Decode(&raw); err != nil {
			if errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("%w: %s", ErrEmptyDocument, source)
			}
			return nil, fmt.Errorf("loader: parse %s as YAML: %w", source, err)
		}
	}

	return d.input(raw, raw.ID)
}

// Load reads and parses the file at path.
func Load(path string, options ...Option) (model.Input, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loader: read %s: %w", path, err)
	}
	return Parse(data, path, options...)
}

// LoadForm reads the file at path and requires its root to be a form.
func LoadForm(path string, options ...Option) (model.Form, error) {
	input, err := Load(path, options...)
	if err != nil {
		return model.Form{}, err
	}
	form, ok := input.(model.Form)
	if !ok {
		return model.Form{}, fmt.Errorf("loader: %s: root input %q is a %s, not a form", path, input.ID(), input.Kind())
	}
	return form, nil
}

// Marshal encodes an input tree. Parse with WithSanitize(false) returns an
// equal value; the default Parse strips markup and decodes entities, so text
// containing '<', '>' or '&' may come back changed.
func Marshal(input model.Input, format Format) ([]byte, error) {
	if input == nil {
		return nil, errors.New("loader: input is nil")
	}
	raw, err := nodeFrom(input)
	if err != nil {
		return nil, err
	}
	switch format {
	case FormatJSON, "":
		return json.MarshalIndent(raw, "", "  ")
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(raw); err != nil {
			return nil, fmt.Errorf("loader: encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("loader: encode yaml: %w", err)
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("loader: unsupported format %q", format)
	}
}

// Store indexes the root inputs of every schema file found in a filesystem.
type Store struct {
	inputs  map[string]model.Input
	sources map[string]string
}

// LoadFS walks fsys and parses every .json, .yaml, and .yml file. Each file
// holds one root input; root ids must be unique across files. A nil fsys
// yields an empty store.
func LoadFS(fsys fs.FS, options ...Option) (*Store, error) {
	store := &Store{
		inputs:  make(map[string]model.Input),
		sources: make(map[string]string),
	}
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isSchemaFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("loader: read %s: %w", path, err)
		}
		input, err := Parse(data, path, options...)
		if err != nil {
			return err
		}

		id := input.ID()
		if previous, exists := store.sources[id]; exists {
			return fmt.Errorf("loader: duplicate root id %q (files %s and %s): %w", id, previous, path, model.ErrDuplicateID)
		}
		store.inputs[id] = input
		store.sources[id] = path
		return nil
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

// LoadDir is LoadFS over a directory on disk.
func LoadDir(dir string, options ...Option) (*Store, error) {
	return LoadFS(os.DirFS(dir), options...)
}

// Input returns the root input registered under id.
func (s *Store) Input(id string) (model.Input, bool) {
	if s == nil {
		return nil, false
	}
	input, ok := s.inputs[id]
	return input, ok
}

// Form returns the root form registered under id.
func (s *Store) Form(id string) (model.Form, bool) {
	input, ok := s.Input(id)
	if !ok {
		return model.Form{}, false
	}
	form, ok := input.(model.Form)
	return form, ok
}

// Source reports the file a root input was loaded from.
func (s *Store) Source(id string) (string, bool) {
	if s == nil {
		return "", false
	}
	source, ok := s.sources[id]
	return source, ok
}

// IDs lists the registered root ids in sorted order.
func (s *Store) IDs() []string {
	if s == nil || len(s.inputs) == 0 {
		return nil
	}
	ids := make([]string, 0, len(s.inputs))
	for id := range s.inputs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len reports the number of registered root inputs.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.inputs)
}

func isSchemaFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
