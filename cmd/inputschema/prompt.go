package main

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-inputschema/pkg/prompt"
)

func newPromptCmd(a *app) *cobra.Command {
	var text string

	cmd := &cobra.Command{
		Use:   "prompt <file|dir>",
		Short: "Render the extraction prompt for a form",
		Long: `Render the prompt asking a language model to extract the form's values
from --text. Use --text - to read the text from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if text == "" {
				return errors.New("--text is required")
			}
			if text == "-" {
				data, err := readArg(cmd, "-")
				if err != nil {
					return err
				}
				text = strings.TrimSpace(string(data))
			}

			form, err := a.loadForm(args[0])
			if err != nil {
				return err
			}
			engine, err := prompt.New(
				prompt.WithBaseDir(a.cfg.Prompt.TemplateDir),
				prompt.WithTemplate(a.cfg.Prompt.Template),
				prompt.WithExamples(a.cfg.Prompt.Examples),
			)
			if err != nil {
				return err
			}
			a.logger.Debug("rendering prompt", "form", form.ID(), "template", a.cfg.Prompt.Template)
			_, err = engine.Render(form, text, cmd.OutOrStdout())
			return err
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "text to extract values from, or - for stdin")
	return cmd
}
