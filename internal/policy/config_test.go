package policy

import (
	"os"
	"path/filepath"
	"testing"
)

func withEnv(t *testing.T, key, value string) {
	t.Helper()
	old, had := os.LookupEnv(key)
	if err := os.Setenv(key, value); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if had {
			os.Setenv(key, old)
		} else {
			os.Unsetenv(key)
		}
	})
}

func withCwd(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(old) })
}

func TestLoadDefaultsWhenEnvUnset(t *testing.T) {
	os.Unsetenv(EnvBlockedPaths)
	os.Unsetenv(EnvBlockedGlobs)
	os.Unsetenv(EnvDebug)
	withCwd(t, t.TempDir())

	cfg := load()
	if cfg.FailClosed() {
		t.Fatal("expected ready state")
	}
	if len(cfg.Prefixes()) != 2 {
		t.Fatalf("expected 2 default prefixes, got %v", cfg.Prefixes())
	}
}

func TestLoadParsesEnvPrefixList(t *testing.T) {
	withEnv(t, EnvBlockedPaths, "/secret:/other/path:")
	withEnv(t, EnvDebug, "1")
	withCwd(t, t.TempDir())

	cfg := load()
	if !cfg.Debug() {
		t.Error("expected debug enabled")
	}
	want := []string{"/secret", "/other/path"}
	got := cfg.Prefixes()
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("prefix[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestLoadCapsPrefixCount(t *testing.T) {
	long := ""
	for i := 0; i < 100; i++ {
		if i > 0 {
			long += ":"
		}
		long += "/p" + string(rune('a'+i%26)) + string(rune('0'+i/26))
	}
	withEnv(t, EnvBlockedPaths, long)
	withCwd(t, t.TempDir())

	cfg := load()
	if len(cfg.Prefixes()) != MaxBlockedPaths {
		t.Errorf("got %d prefixes, want cap of %d", len(cfg.Prefixes()), MaxBlockedPaths)
	}
}

func TestLoadMalformedPolicyFileFailsClosed(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, PolicyFileName), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	os.Unsetenv(EnvBlockedPaths)
	withCwd(t, dir)

	cfg := load()
	if !cfg.FailClosed() {
		t.Error("expected fail-closed on malformed policy file")
	}
}

func TestLoadPolicyFileSuppliesPrefixesWhenEnvUnset(t *testing.T) {
	dir := t.TempDir()
	content := `{
		// trailing comment allowed, this is jsonc
		"blockedPaths": ["/fromfile"],
		"blockedGlobs": ["**/*.key"],
		"debug": true
	}`
	if err := os.WriteFile(filepath.Join(dir, PolicyFileName), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	os.Unsetenv(EnvBlockedPaths)
	os.Unsetenv(EnvDebug)
	withCwd(t, dir)

	cfg := load()
	if cfg.FailClosed() {
		t.Fatal("expected ready state")
	}
	if !cfg.Debug() {
		t.Error("expected debug from policy file")
	}
	found := false
	for _, p := range cfg.Prefixes() {
		if p == "/fromfile" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected /fromfile among prefixes, got %v", cfg.Prefixes())
	}
}

func TestLoadEnvTakesPrecedenceOverPolicyFile(t *testing.T) {
	dir := t.TempDir()
	content := `{"blockedPaths": ["/fromfile"]}`
	if err := os.WriteFile(filepath.Join(dir, PolicyFileName), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	withEnv(t, EnvBlockedPaths, "/fromenv")
	withCwd(t, dir)

	cfg := load()
	prefixes := cfg.Prefixes()
	if len(prefixes) != 1 || prefixes[0] != "/fromenv" {
		t.Errorf("expected only env-supplied prefix, got %v", prefixes)
	}
}

func TestLoadExposesBlockedGlobs(t *testing.T) {
	withEnv(t, EnvBlockedGlobs, "**/*.pem:**/id_rsa*")
	withCwd(t, t.TempDir())

	cfg := load()
	want := []string{"**/*.pem", "**/id_rsa*"}
	got := cfg.Globs()
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("glob[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestLoadResolvesBlockedCommandsToPaths(t *testing.T) {
	dir := t.TempDir()
	fakeBin := filepath.Join(dir, "mytool")
	if err := os.WriteFile(fakeBin, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	withEnv(t, EnvBlockedCommands, fakeBin)
	withCwd(t, dir)

	cfg := load()
	found := false
	for _, p := range cfg.Prefixes() {
		if p == fakeBin {
			found = true
		}
	}
	if !found {
		t.Errorf("expected resolved command path %q among prefixes, got %v", fakeBin, cfg.Prefixes())
	}
}

func TestLoadSkipsBlockedCommandsThatLookLikeShellSyntax(t *testing.T) {
	withEnv(t, EnvBlockedCommands, "git push:rm -rf")
	withCwd(t, t.TempDir())

	cfg := load()
	for _, p := range cfg.Prefixes() {
		if p == "git push" || p == "rm -rf" {
			t.Errorf("shell-syntax token leaked into prefixes: %v", cfg.Prefixes())
		}
	}
}

func TestLoadPolicyFileExtendsChain(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "base.jsonc")
	if err := os.WriteFile(base, []byte(`{"blockedPaths": ["/base"]}`), 0o644); err != nil {
		t.Fatal(err)
	}
	child := `{"extends": "base.jsonc", "blockedPaths": ["/child"]}`
	if err := os.WriteFile(filepath.Join(dir, PolicyFileName), []byte(child), 0o644); err != nil {
		t.Fatal(err)
	}
	os.Unsetenv(EnvBlockedPaths)
	withCwd(t, dir)

	cfg := load()
	prefixes := cfg.Prefixes()
	hasBase, hasChild := false, false
	for _, p := range prefixes {
		if p == "/base" {
			hasBase = true
		}
		if p == "/child" {
			hasChild = true
		}
	}
	if !hasBase || !hasChild {
		t.Errorf("expected both /base and /child, got %v", prefixes)
	}
}

func TestLoadPolicyFileExtendsChainCarriesBlockedCommands(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "base.jsonc")
	if err := os.WriteFile(base, []byte(`{"blockedCommands": ["curl"]}`), 0o644); err != nil {
		t.Fatal(err)
	}
	child := `{"extends": "base.jsonc", "blockedCommands": ["wget"]}`
	if err := os.WriteFile(filepath.Join(dir, PolicyFileName), []byte(child), 0o644); err != nil {
		t.Fatal(err)
	}
	os.Unsetenv(EnvBlockedPaths)
	os.Unsetenv(EnvBlockedCommands)
	withCwd(t, dir)

	pf, err := loadPolicyFileChain(PolicyFileName)
	if err != nil {
		t.Fatal(err)
	}
	if pf == nil {
		t.Fatal("expected a merged policy file")
	}
	hasCurl, hasWget := false, false
	for _, c := range pf.BlockedCommands {
		if c == "curl" {
			hasCurl = true
		}
		if c == "wget" {
			hasWget = true
		}
	}
	if !hasCurl || !hasWget {
		t.Errorf("expected both curl and wget in merged blockedCommands, got %v", pf.BlockedCommands)
	}
}

func TestGetIsOneShot(t *testing.T) {
	ResetForTest()
	t.Cleanup(ResetForTest)
	withEnv(t, EnvBlockedPaths, "/first")
	withCwd(t, t.TempDir())

	first := Get()
	os.Setenv(EnvBlockedPaths, "/second")
	second := Get()
	if first != second {
		t.Error("Get() must return the same instance once initialized")
	}
}
