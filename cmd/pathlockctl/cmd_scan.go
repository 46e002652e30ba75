package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pathlock/pathlock/internal/policy"
)

func newScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan <dir>",
		Short: "Walk a directory tree and report files a policy probably ought to block",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd, args[0])
		},
	}
	return cmd
}

func runScan(cmd *cobra.Command, root string) error {
	findings, err := policy.FindSensitiveFiles(root)
	if err != nil {
		return fmt.Errorf("scan %s: %w", root, err)
	}

	out := cmd.OutOrStdout()
	if len(findings) == 0 {
		fmt.Fprintln(out, "no sensitive files found")
		return nil
	}

	for _, f := range findings {
		fmt.Fprintf(out, "%s  (%s)\n", f.Path, f.Reason)
	}
	return nil
}
