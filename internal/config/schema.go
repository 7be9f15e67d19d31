package config

// Config holds inputschema configuration.
// Stored at: ./inputschema.yaml or $HOME/.inputschema/inputschema.yaml
type Config struct {
	LogLevel string       `mapstructure:"log_level" yaml:"log_level"` // debug, info, warn, error
	Loader   LoaderConfig `mapstructure:"loader" yaml:"loader"`
	Prompt   PromptConfig `mapstructure:"prompt" yaml:"prompt"`
	Collect  CollectCfg   `mapstructure:"collect" yaml:"collect"`
}

// LoaderConfig controls how schema documents are read.
type LoaderConfig struct {
	Sanitize bool `mapstructure:"sanitize" yaml:"sanitize"` // strip markup from descriptions and examples
}

// PromptConfig controls extraction prompt rendering.
type PromptConfig struct {
	// TemplateDir overrides bundled templates when set (supports ${ENV_VAR}).
	TemplateDir string `mapstructure:"template_dir" yaml:"template_dir,omitempty"`
	Template    string `mapstructure:"template" yaml:"template"`
	Examples    bool   `mapstructure:"examples" yaml:"examples"`
}

// CollectCfg controls the interactive collector.
type CollectCfg struct {
	Output      string          `mapstructure:"output" yaml:"output"` // json, pretty, form
	Suggestions []SuggestionCfg `mapstructure:"suggestions" yaml:"suggestions,omitempty"`
}

// SuggestionCfg lists completions for the autocomplete input at Path, a
// dotted id path relative to the form.
type SuggestionCfg struct {
	Path   string   `mapstructure:"path" yaml:"path"`
	Values []string `mapstructure:"values" yaml:"values"`
}

// SuggestionsFor returns the configured completions for path.
func (c CollectCfg) SuggestionsFor(path string) []string {
	var out []string
	for _, entry := range c.Suggestions {
		if entry.Path == path {
			out = append(out, entry.Values...)
		}
	}
	return out
}

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Loader: LoaderConfig{
			Sanitize: true,
		},
		Prompt: PromptConfig{
			Template: "extraction.tpl",
			Examples: true,
		},
		Collect: CollectCfg{
			Output: "json",
		},
	}
}
