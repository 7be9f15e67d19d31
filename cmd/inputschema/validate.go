package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-inputschema/pkg/validation"
)

var errInvalidResult = errors.New("extraction result is invalid")

func newValidateCmd(a *app) *cobra.Command {
	var resultPath string

	cmd := &cobra.Command{
		Use:   "validate <file|dir>",
		Short: "Validate an extraction result against a form",
		Long: `Validate a model response against the form's schema. The response may
wrap its JSON in <json></json> tags or a fenced block. The report is printed
as JSON and the command fails when the result is invalid.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			form, err := a.loadForm(args[0])
			if err != nil {
				return err
			}
			raw, err := readArg(cmd, resultPath)
			if err != nil {
				return err
			}
			payload, err := validation.ExtractJSON(string(raw))
			if err != nil {
				return err
			}

			result, err := validation.Validate(form, payload)
			if err != nil {
				return err
			}
			data, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))

			if !result.Valid {
				for _, issue := range result.Issues {
					a.logger.Warn("validation issue", "field", issue.Field, "message", issue.Message)
				}
				return fmt.Errorf("%w: %d issue(s)", errInvalidResult, len(result.Issues))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&resultPath, "result", "-", "file holding the model response, or - for stdin")
	return cmd
}
