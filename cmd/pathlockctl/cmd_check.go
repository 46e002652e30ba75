package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pathlock/pathlock/internal/policy"
)

func newCheckCmd() *cobra.Command {
	var at string

	cmd := &cobra.Command{
		Use:   "check <path>",
		Short: "Report whether pathlock's current policy would allow or deny a path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args[0], at)
		},
	}

	cmd.Flags().StringVar(&at, "at", "", "resolve path relative to this directory, as the *at-family hooks would a dirfd")
	return cmd
}

func runCheck(cmd *cobra.Command, path, at string) error {
	oracle := newStandaloneOracle()

	var decision policy.Decision
	var rule string

	if at != "" {
		dir, err := os.Open(at) //nolint:gosec // operator-provided path on the CLI
		if err != nil {
			return fmt.Errorf("open --at directory %s: %w", at, err)
		}
		defer dir.Close()
		decision, rule = oracle.ExplainAt(int(dir.Fd()), path)
	} else {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getwd: %w", err)
		}
		decision, rule = oracle.Explain(path, cwd)
	}

	verdict := "ALLOW"
	if decision == policy.Deny {
		verdict = "DENY"
	}

	if rule != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%s)\n", verdict, path, rule)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", verdict, path)
	}

	if decision == policy.Deny {
		return errDenied
	}
	return nil
}

// errDenied carries no message of its own: runCheck already printed the
// verdict, this just gives `pathlockctl check` a non-zero exit status for
// scripting without repeating that line to stderr.
var errDenied = exitError{}

type exitError struct{}

func (exitError) Error() string { return "" }
