package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pathlock/pathlock/internal/configschema"
)

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema for the optional .pathlock.jsonc policy file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := configschema.Generate()
			if err != nil {
				return fmt.Errorf("generate schema: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(append(doc, '\n'))
			return err
		},
	}
}
