// Command generate-config-schema refreshes docs/schema/pathlock.schema.json
// from internal/configschema. Run it from the repository root after
// changing the policy file shape.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pathlock/pathlock/internal/configschema"
)

func main() {
	if err := run(filepath.Join("docs", "schema", "pathlock.schema.json")); err != nil {
		fmt.Fprintln(os.Stderr, "generate-config-schema:", err)
		os.Exit(1)
	}
}

func run(out string) error {
	data, err := configschema.Generate()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(out), 0o750); err != nil {
		return err
	}
	return os.WriteFile(out, append(data, '\n'), 0o600)
}
