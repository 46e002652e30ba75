package main

import (
	"testing"

	"github.com/pathlock/pathlock/internal/policy"
)

// resetConfigForTest drops the process-wide one-shot policy config so each
// test observes the environment it just set, and restores a clean slate for
// whichever test runs next.
func resetConfigForTest(t *testing.T) {
	t.Helper()
	policy.ResetForTest()
	t.Cleanup(policy.ResetForTest)
}
