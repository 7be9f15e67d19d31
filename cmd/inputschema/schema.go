package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-inputschema/pkg/model"
	"github.com/goliatone/go-inputschema/pkg/openapi"
)

func newSchemaCmd(a *app) *cobra.Command {
	var (
		asOpenAPI bool
		title     string
		version   string
	)

	cmd := &cobra.Command{
		Use:   "schema <file|dir>",
		Short: "Print the JSON schema of a form",
		Long: `Print the JSON schema describing the extraction result of a form.
With --openapi every root input is emitted as a component schema of an
OpenAPI 3 document instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var payload any
			if asOpenAPI {
				var inputs []model.Input
				if a.formID != "" {
					form, err := a.loadForm(args[0])
					if err != nil {
						return err
					}
					inputs = []model.Input{form}
				} else {
					loaded, _, err := a.loadInputs(args[0])
					if err != nil {
						return err
					}
					inputs = loaded
				}
				doc, err := openapi.Document(title, version, inputs...)
				if err != nil {
					return err
				}
				if err := doc.Validate(cmd.Context()); err != nil {
					return fmt.Errorf("openapi document is invalid: %w", err)
				}
				payload = doc
			} else {
				form, err := a.loadForm(args[0])
				if err != nil {
					return err
				}
				schema, err := openapi.Schema(form)
				if err != nil {
					return err
				}
				payload = schema
			}

			data, err := json.MarshalIndent(payload, "", "  ")
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return err
		},
	}

	cmd.Flags().BoolVar(&asOpenAPI, "openapi", false, "emit an OpenAPI 3 document with one component per root input")
	cmd.Flags().StringVar(&title, "title", "inputschema", "OpenAPI document title")
	cmd.Flags().StringVar(&version, "version", "1.0.0", "OpenAPI document version")
	return cmd
}
