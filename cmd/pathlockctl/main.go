// Command pathlockctl is the operator-facing companion to pathlockfs: it
// never loads into a target process itself, but it checks policy decisions
// ahead of time, scans a tree for files a policy probably ought to cover,
// converts rules from other tools, prints the on-disk policy file's JSON
// Schema, and launches a command under pathlockfs via LD_PRELOAD.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if msg := err.Error(); msg != "" {
			fmt.Fprintln(os.Stderr, msg)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "pathlockctl",
		Short:         "Inspect, test, and launch processes under the pathlock filesystem guard",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newCheckCmd(),
		newScanCmd(),
		newImportClaudeCmd(),
		newSchemaCmd(),
		newShellCmd(),
	)
	return root
}
