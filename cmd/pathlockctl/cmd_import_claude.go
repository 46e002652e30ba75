package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pathlock/pathlock/internal/importer"
)

func newImportClaudeCmd() *cobra.Command {
	var settings string

	cmd := &cobra.Command{
		Use:   "import-claude",
		Short: "Convert Claude Code's settings.json deny/ask rules into a PATHLOCK_BLOCKED_PATHS value",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImportClaude(cmd, settings)
		},
	}

	cmd.Flags().StringVar(&settings, "settings", "", "path to settings.json (default: Claude Code's standard locations, layered)")
	return cmd
}

func runImportClaude(cmd *cobra.Command, settings string) error {
	result, err := importer.ImportFromClaude(settings)
	if err != nil {
		return fmt.Errorf("import claude settings: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s=%s\n", "PATHLOCK_BLOCKED_PATHS", result.BlockedPathsEnvValue())

	if len(result.Skipped) > 0 {
		errOut := cmd.ErrOrStderr()
		fmt.Fprintf(errOut, "# %d rule(s) skipped (not filesystem-path rules):\n", len(result.Skipped))
		for _, rule := range result.Skipped {
			fmt.Fprintf(errOut, "#   %s\n", rule)
		}
	}
	return nil
}
