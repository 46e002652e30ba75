package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
)

func withBlockedPaths(t *testing.T, value string) {
	t.Helper()
	t.Setenv("PATHLOCK_BLOCKED_PATHS", value)
	t.Setenv("PATHLOCK_BLOCKED_GLOBS", "")
	t.Setenv("PATHLOCK_DEBUG", "")
	resetConfigForTest(t)
}

func TestRunCheckAllowsAndDenies(t *testing.T) {
	dir := t.TempDir()
	blocked := filepath.Join(dir, "secret")
	withBlockedPaths(t, blocked)

	cmd := &cobra.Command{}
	var out bytes.Buffer
	cmd.SetOut(&out)

	if err := runCheck(cmd, filepath.Join(dir, "ok"), ""); err != nil {
		t.Fatalf("expected allow, got error: %v", err)
	}
	if err := runCheck(cmd, blocked, ""); err == nil {
		t.Fatal("expected deny to surface a non-nil error")
	}
	if !bytes.Contains(out.Bytes(), []byte("DENY")) {
		t.Errorf("expected DENY verdict in output, got %q", out.String())
	}
}

func TestRunCheckAtOpensDirectory(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "sub")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	withBlockedPaths(t, filepath.Join(sub, "denied"))

	cmd := &cobra.Command{}
	var out bytes.Buffer
	cmd.SetOut(&out)

	if err := runCheck(cmd, "denied", sub); err == nil {
		t.Fatal("expected deny relative to --at directory")
	}
	if err := runCheck(cmd, "allowed", sub); err != nil {
		t.Fatalf("expected allow relative to --at directory, got %v", err)
	}
}
