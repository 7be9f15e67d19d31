package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-inputschema/pkg/renderers/tui"
)

func newCollectCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "collect <file|dir>",
		Short: "Fill in a form interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			form, err := a.loadForm(args[0])
			if err != nil {
				return err
			}

			if output == "" {
				output = a.cfg.Collect.Output
			}
			format, ok := tui.ParseOutputFormat(output)
			if !ok {
				return fmt.Errorf("unknown output format %q", output)
			}

			collect := a.cfg.Collect
			renderer, err := tui.New(
				tui.WithOutputFormat(format),
				tui.WithSuggester(func(path, partial string) []string {
					var out []string
					for _, value := range collect.SuggestionsFor(path) {
						if strings.HasPrefix(strings.ToLower(value), strings.ToLower(partial)) {
							out = append(out, value)
						}
					}
					return out
				}),
			)
			if err != nil {
				return err
			}

			data, err := renderer.Render(cmd.Context(), form)
			if err != nil {
				return err
			}
			a.logger.Debug("collected values", "form", form.ID(), "content_type", renderer.ContentType())
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return err
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output format: json, pretty or form (overrides config)")
	return cmd
}
