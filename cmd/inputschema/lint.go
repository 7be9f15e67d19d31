package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-inputschema/pkg/model"
)

func newLintCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "lint <file|dir>",
		Short: "Load schemas and report their structure",
		Long: `Load one schema file or every schema file in a directory and report
each root input. Any construction error (missing field, invalid id,
duplicate sibling id) fails the command.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs, sources, err := a.loadInputs(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for idx, input := range inputs {
				count := 0
				_ = model.Walk(input, func(string, model.Input) error {
					count++
					return nil
				})
				fmt.Fprintf(out, "ok %s (%s, %d inputs) %s\n", input.ID(), input.Kind(), count, sources[idx])
			}
			a.logger.Info("lint complete", "path", args[0], "roots", len(inputs))
			return nil
		},
	}
}
