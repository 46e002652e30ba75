package importer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClaudePathToPrefix(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"absolute stays absolute", "/home/user/.ssh", "/home/user/.ssh"},
		{"strips glob suffix", "/home/user/.ssh/**", "/home/user/.ssh"},
		{"trailing slash stripped", "/app/", "/app"},
		{"rejects embedded glob", "/home/user/*.pem", ""},
		{"rejects bracket glob", "/etc/[a-z]*", ""},
		{"empty input", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := claudePathToPrefix(tt.in)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadClaudeSettings(t *testing.T) {
	t.Run("valid settings", func(t *testing.T) {
		tmpDir := t.TempDir()
		settingsPath := filepath.Join(tmpDir, "settings.json")
		content := `{
  "permissions": {
    "allow": ["Bash(npm install)"],
    "deny": ["Read(/home/user/.ssh/**)"],
    "ask": ["Write(/home/user/.aws)"]
  }
}`
		require.NoError(t, os.WriteFile(settingsPath, []byte(content), 0o600))

		settings, err := LoadClaudeSettings(settingsPath)
		require.NoError(t, err)
		assert.Equal(t, []string{"Read(/home/user/.ssh/**)"}, settings.Permissions.Deny)
		assert.Equal(t, []string{"Write(/home/user/.aws)"}, settings.Permissions.Ask)
	})

	t.Run("settings with comments (JSONC)", func(t *testing.T) {
		tmpDir := t.TempDir()
		settingsPath := filepath.Join(tmpDir, "settings.json")
		content := `{
  // deny filesystem access to secrets
  "permissions": {
    "deny": ["Read(/home/user/.ssh/**)"] // ssh keys
  }
}`
		require.NoError(t, os.WriteFile(settingsPath, []byte(content), 0o600))

		settings, err := LoadClaudeSettings(settingsPath)
		require.NoError(t, err)
		assert.Equal(t, []string{"Read(/home/user/.ssh/**)"}, settings.Permissions.Deny)
	})

	t.Run("missing file yields empty settings, not an error", func(t *testing.T) {
		settings, err := LoadClaudeSettings("/nonexistent/path/settings.json")
		require.NoError(t, err)
		assert.Empty(t, settings.Permissions.Deny)
	})

	t.Run("invalid json", func(t *testing.T) {
		tmpDir := t.TempDir()
		settingsPath := filepath.Join(tmpDir, "settings.json")
		require.NoError(t, os.WriteFile(settingsPath, []byte("not json"), 0o600))

		_, err := LoadClaudeSettings(settingsPath)
		assert.Error(t, err)
	})
}

func TestImportFromClaude(t *testing.T) {
	t.Run("converts filesystem-shaped deny and ask rules", func(t *testing.T) {
		tmpDir := t.TempDir()
		settingsPath := filepath.Join(tmpDir, "settings.json")
		content := `{
  "permissions": {
    "allow": ["Bash(npm install)"],
    "deny": ["Bash(curl:*)", "Read(/home/user/.ssh/**)", "Edit(/home/user/.npmrc)"],
    "ask": ["Write(/home/user/.aws)"]
  }
}`
		require.NoError(t, os.WriteFile(settingsPath, []byte(content), 0o600))

		result, err := ImportFromClaude(settingsPath)
		require.NoError(t, err)

		assert.ElementsMatch(t, []string{"/home/user/.ssh", "/home/user/.npmrc", "/home/user/.aws"}, result.Prefixes)
		assert.Contains(t, result.Skipped, "Bash(curl:*)")
	})

	t.Run("bare tool names are skipped, not fatal", func(t *testing.T) {
		tmpDir := t.TempDir()
		settingsPath := filepath.Join(tmpDir, "settings.json")
		content := `{"permissions": {"deny": ["Edit", "Read(/app/secret)"]}}`
		require.NoError(t, os.WriteFile(settingsPath, []byte(content), 0o600))

		result, err := ImportFromClaude(settingsPath)
		require.NoError(t, err)
		assert.Equal(t, []string{"/app/secret"}, result.Prefixes)
		assert.Contains(t, result.Skipped, "Edit")
	})

	t.Run("dedupes repeated prefixes", func(t *testing.T) {
		tmpDir := t.TempDir()
		settingsPath := filepath.Join(tmpDir, "settings.json")
		content := `{"permissions": {"deny": ["Read(/app)", "Edit(/app/**)"]}}`
		require.NoError(t, os.WriteFile(settingsPath, []byte(content), 0o600))

		result, err := ImportFromClaude(settingsPath)
		require.NoError(t, err)
		assert.Equal(t, []string{"/app"}, result.Prefixes)
	})
}

func TestBlockedPathsEnvValue(t *testing.T) {
	r := &Result{Prefixes: []string{"/app", "/home/user/.ssh"}}
	assert.Equal(t, "/app:/home/user/.ssh", r.BlockedPathsEnvValue())
}
