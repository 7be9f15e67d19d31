package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-inputschema/internal/config"
	"github.com/goliatone/go-inputschema/pkg/loader"
	"github.com/goliatone/go-inputschema/pkg/model"
)

// app carries state shared by every subcommand of one invocation.
type app struct {
	cfgFile  string
	logLevel string
	formID   string

	cfg    *config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "inputschema",
		Short: "Describe, validate and collect structured input schemas",
		Long: `inputschema works with immutable input schemas: forms made of text,
number, numeric range, date, autocomplete and selection inputs.

Schemas are YAML or JSON documents. A path may point at a single file or at a
directory of schema files, in which case --form selects the form to use.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}

	root.PersistentFlags().StringVar(
		&a.cfgFile, "config", "", "config file (default: ./inputschema.yaml or ~/.inputschema/inputschema.yaml)",
	)
	root.PersistentFlags().StringVar(
		&a.logLevel, "log-level", "", "log level: debug, info, warn or error (overrides config)",
	)
	root.PersistentFlags().StringVar(
		&a.formID, "form", "", "form id to use when a directory holds several schemas",
	)

	root.AddCommand(
		newLintCmd(a),
		newSchemaCmd(a),
		newPromptCmd(a),
		newValidateCmd(a),
		newCollectCmd(a),
		newConfigCmd(a),
	)
	return root
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		return err
	}
	a.cfg = cfg

	level := cfg.LogLevel
	if a.logLevel != "" {
		level = a.logLevel
	}
	parsed, err := parseLevel(level)
	if err != nil {
		return err
	}
	a.logger = newLogger(cmd.ErrOrStderr(), parsed)
	return nil
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func parseLevel(raw string) (slog.Level, error) {
	var level slog.Level
	if strings.TrimSpace(raw) == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(strings.TrimSpace(raw))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q", raw)
	}
	return level, nil
}

func (a *app) loaderOptions() []loader.Option {
	sanitize := true
	if a.cfg != nil {
		sanitize = a.cfg.Loader.Sanitize
	}
	return []loader.Option{loader.WithSanitize(sanitize)}
}

// loadInputs reads the schema file or directory at path and returns its root
// inputs in id order, along with the file each came from.
func (a *app) loadInputs(path string) ([]model.Input, []string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, nil, err
	}
	if !info.IsDir() {
		input, err := loader.Load(path, a.loaderOptions()...)
		if err != nil {
			return nil, nil, err
		}
		return []model.Input{input}, []string{path}, nil
	}

	store, err := loader.LoadDir(path, a.loaderOptions()...)
	if err != nil {
		return nil, nil, err
	}
	var (
		inputs  []model.Input
		sources []string
	)
	for _, id := range store.IDs() {
		input, _ := store.Input(id)
		source, _ := store.Source(id)
		inputs = append(inputs, input)
		sources = append(sources, source)
	}
	a.logger.Debug("loaded schema directory", "dir", path, "inputs", store.Len())
	return inputs, sources, nil
}

// loadForm resolves the form a command operates on. A directory must either
// hold exactly one form or --form must name one.
func (a *app) loadForm(path string) (model.Form, error) {
	inputs, sources, err := a.loadInputs(path)
	if err != nil {
		return model.Form{}, err
	}

	var candidates []model.Form
	for idx, input := range inputs {
		form, ok := input.(model.Form)
		if !ok {
			continue
		}
		if a.formID != "" && form.ID() != a.formID {
			continue
		}
		a.logger.Debug("form candidate", "id", form.ID(), "source", sources[idx])
		candidates = append(candidates, form)
	}

	switch {
	case len(candidates) == 1:
		return candidates[0], nil
	case a.formID != "":
		return model.Form{}, fmt.Errorf("form %q not found in %s", a.formID, path)
	case len(candidates) == 0:
		return model.Form{}, fmt.Errorf("no form found in %s", path)
	default:
		ids := make([]string, 0, len(candidates))
		for _, form := range candidates {
			ids = append(ids, form.ID())
		}
		return model.Form{}, fmt.Errorf("%s holds several forms (%s); choose one with --form", path, strings.Join(ids, ", "))
	}
}

// readArg returns the named file, or stdin when name is "-".
func readArg(cmd *cobra.Command, name string) ([]byte, error) {
	if name == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(name)
}
