package prompt

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-inputschema/pkg/model"
)

// Option configures the prompt engine before construction.
type Option func(*config)

type config struct {
	baseDir  string
	files    fs.FS
	template string
	examples bool
}

// WithBaseDir loads templates from a directory on disk. Templates found there
// take precedence over the bundled ones.
func WithBaseDir(dir string) Option {
	return func(cfg *config) {
		cfg.baseDir = strings.TrimSpace(dir)
	}
}

// WithFS loads templates from files instead of the bundled templates.
func WithFS(files fs.FS) Option {
	return func(cfg *config) {
		if files != nil {
			cfg.files = files
		}
	}
}

// WithTemplate selects the template used by Render.
func WithTemplate(name string) Option {
	return func(cfg *config) {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			cfg.template = trimmed
		}
	}
}

// WithExamples toggles the example section of the prompt. Enabled by default.
func WithExamples(enabled bool) Option {
	return func(cfg *config) {
		cfg.examples = enabled
	}
}

// Engine renders extraction prompts for forms using a pongo2 template set.
// It is safe for concurrent use.
type Engine struct {
	mu sync.RWMutex

	templateSet *pongo2.TemplateSet
	templates   map[string]*pongo2.Template
	name        string
	examples    bool
}

// New constructs an Engine using the provided options.
func New(options ...Option) (*Engine, error) {
	cfg := &config{
		files:    TemplatesFS(),
		template: DefaultTemplate,
		examples: true,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(cfg)
	}

	var loaders []pongo2.TemplateLoader
	if cfg.baseDir != "" {
		loader, err := pongo2.NewLocalFileSystemLoader(cfg.baseDir)
		if err != nil {
			return nil, fmt.Errorf("prompt: create local loader: %w", err)
		}
		loaders = append(loaders, loader)
	}
	loaders = append(loaders, pongo2.NewFSLoader(cfg.files))

	return &Engine{
		templateSet: pongo2.NewSet("inputschema", loaders...),
		templates:   make(map[string]*pongo2.Template),
		name:        cfg.template,
		examples:    cfg.examples,
	}, nil
}

// Render builds the extraction prompt asking a language model to fill form
// from text. When out writers are given the prompt is also written to them.
func (e *Engine) Render(form model.Form, text string, out ...io.Writer) (string, error) {
	if e == nil || e.templateSet == nil {
		return "", errors.New("prompt: engine is nil")
	}
	if form.ID() == "" {
		return "", &model.MissingFieldError{Kind: model.KindForm, Field: "id"}
	}

	tmpl, err := e.getTemplate(e.name)
	if err != nil {
		return "", err
	}

	ctx, err := e.context(form, text)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteWriter(ctx, &buf); err != nil {
		return "", fmt.Errorf("prompt: execute template %q: %w", e.name, err)
	}

	rendered := buf.String()
	for _, w := range out {
		if _, err := io.WriteString(w, rendered); err != nil {
			return "", err
		}
	}
	return rendered, nil
}

func (e *Engine) context(form model.Form, text string) (pongo2.Context, error) {
	lines := Outline(form)
	outline := make([]map[string]any, 0, len(lines))
	for _, line := range lines {
		outline = append(outline, map[string]any{
			"indent":      strings.Repeat("  ", line.Depth),
			"path":        line.Path,
			"id":          line.ID,
			"kind":        string(line.Kind),
			"type":        line.Type,
			"description": line.Description,
			"choices":     strings.Join(line.Choices, ", "),
		})
	}

	examples := []map[string]any{}
	if e.examples {
		built, err := Examples(form)
		if err != nil {
			return nil, err
		}
		for _, example := range built {
			examples = append(examples, map[string]any{
				"text":   example.Text,
				"output": example.Output,
			})
		}
	}

	return pongo2.Context{
		"form": map[string]any{
			"id":          form.ID(),
			"description": form.Description(),
			"examples":    form.Examples(),
		},
		"outline":  outline,
		"examples": examples,
		"text":     text,
	}, nil
}

func (e *Engine) getTemplate(name string) (*pongo2.Template, error) {
	e.mu.RLock()
	if tmpl, ok := e.templates[name]; ok {
		e.mu.RUnlock()
		return tmpl, nil
	}
	e.mu.RUnlock()

	e.mu.Lock()
	defer e.mu.Unlock()

	if tmpl, ok := e.templates[name]; ok {
		return tmpl, nil
	}

	tmpl, err := e.templateSet.FromFile(name)
	if err != nil {
		return nil, fmt.Errorf("prompt: load template %q: %w", name, err)
	}

	e.templates[name] = tmpl
	return tmpl, nil
}
