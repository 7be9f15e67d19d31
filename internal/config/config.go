package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes environment overrides, e.g. INPUTSCHEMA_LOG_LEVEL or
// INPUTSCHEMA_PROMPT_TEMPLATE_DIR.
const EnvPrefix = "INPUTSCHEMA"

var envPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// Load reads configuration from cfgFile, or from inputschema.yaml in the
// working directory or $HOME/.inputschema when cfgFile is empty. A missing
// default file is not an error. Environment variables override file values.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("loader.sanitize", defaults.Loader.Sanitize)
	v.SetDefault("prompt.template_dir", defaults.Prompt.TemplateDir)
	v.SetDefault("prompt.template", defaults.Prompt.Template)
	v.SetDefault("prompt.examples", defaults.Prompt.Examples)
	v.SetDefault("collect.output", defaults.Collect.Output)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("inputschema")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.inputschema")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read %s: %w", describe(cfgFile), err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	cfg.Prompt.TemplateDir = ResolveEnvVars(cfg.Prompt.TemplateDir)
	return &cfg, nil
}

// ResolveEnvVars expands ${ENV_VAR} references in a string.
func ResolveEnvVars(value string) string {
	if value == "" {
		return value
	}
	return envPattern.ReplaceAllStringFunc(value, func(match string) string {
		return os.Getenv(match[2 : len(match)-1])
	})
}

// WriteDefault writes the default configuration to path.
func WriteDefault(path string) error {
	data, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return fmt.Errorf("config: marshal defaults: %w", err)
	}

	header := []byte(`# inputschema configuration
# Values can be overridden with INPUTSCHEMA_* environment variables,
# e.g. INPUTSCHEMA_LOG_LEVEL=debug or INPUTSCHEMA_PROMPT_TEMPLATE_DIR=./templates

`)
	return os.WriteFile(path, append(header, data...), 0o644)
}

func describe(cfgFile string) string {
	if cfgFile == "" {
		return "config file"
	}
	return cfgFile
}
