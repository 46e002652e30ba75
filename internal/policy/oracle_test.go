package policy

import (
	"os"
	"path/filepath"
	"testing"
)

func readyConfig(prefixes, globs []string) *Config {
	cfg := &Config{state: stateReady, prefixes: prefixes, globs: globs}
	cfg.index = newPrefixIndex(prefixes).withGlobs(globs)
	return cfg
}

func TestOracleAdmitBlocksExactAndNested(t *testing.T) {
	cfg := readyConfig([]string{"/app"}, nil)
	o := NewOracle(cfg, DefaultResolver, UnixReadlink, os.Getwd)

	if o.Admit("/app", "") != Deny {
		t.Error("expected deny for exact prefix match")
	}
	if o.Admit("/app/sub/file", "") != Deny {
		t.Error("expected deny for nested path")
	}
	if o.Admit("/applications/x", "") != Allow {
		t.Error("expected allow: /applications is not /app")
	}
}

func TestOracleAdmitDeniesTextualDodges(t *testing.T) {
	cfg := readyConfig([]string{"/app"}, nil)
	o := NewOracle(cfg, DefaultResolver, UnixReadlink, os.Getwd)

	for _, path := range []string{"/tmp/../app/secret", "/./app/./x", "/app/", "/x/../../app/y"} {
		if o.Admit(path, "") != Deny {
			t.Errorf("expected deny for %q after canonicalization", path)
		}
	}
}

func TestOracleEmptyPolicyAllowsEverything(t *testing.T) {
	cfg := readyConfig(nil, nil)
	failingResolver := func(string) (string, error) { return "", os.ErrPermission }
	o := NewOracle(cfg, failingResolver, UnixReadlink, os.Getwd)

	if o.Admit("/anything/at/all", "") != Allow {
		t.Error("empty policy must allow every path, even when resolution would fail")
	}
	if o.AdmitAt(42, "relative") != Allow {
		t.Error("empty policy must allow *at paths without resolving the descriptor")
	}
}

func TestOracleFailClosedDeniesEverything(t *testing.T) {
	cfg := &Config{state: stateFailClosed}
	o := NewOracle(cfg, DefaultResolver, UnixReadlink, os.Getwd)

	if o.Admit("/tmp/anything", "") != Deny {
		t.Error("fail-closed config must deny unconditionally")
	}
	if o.AdmitAt(AtFDCwd, "anything") != Deny {
		t.Error("fail-closed config must deny unconditionally for *at calls too")
	}
}

func TestOracleAdmitResolvesSymlinkedDirectoryIntoForbiddenPrefix(t *testing.T) {
	dir := t.TempDir()
	forbidden := filepath.Join(dir, "forbidden")
	if err := os.Mkdir(forbidden, 0o755); err != nil {
		t.Fatal(err)
	}
	link := filepath.Join(dir, "innocent")
	if err := os.Symlink(forbidden, link); err != nil {
		t.Fatal(err)
	}
	realForbidden, _ := filepath.EvalSymlinks(forbidden)

	cfg := readyConfig([]string{realForbidden}, nil)
	o := NewOracle(cfg, DefaultResolver, UnixReadlink, os.Getwd)

	if o.Admit(filepath.Join(link, "data.txt"), "") != Deny {
		t.Error("expected deny: symlinked directory resolves into a forbidden prefix")
	}
}

func TestOracleAdmitSymlinkCreateChecksTargetRelativeToLinkDir(t *testing.T) {
	dir := t.TempDir()
	allowedDir := filepath.Join(dir, "allowed")
	forbiddenDir := filepath.Join(dir, "forbidden")
	if err := os.Mkdir(allowedDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(forbiddenDir, 0o755); err != nil {
		t.Fatal(err)
	}
	realForbidden, _ := filepath.EvalSymlinks(forbiddenDir)

	cfg := readyConfig([]string{realForbidden}, nil)
	o := NewOracle(cfg, DefaultResolver, UnixReadlink, os.Getwd)

	linkPath := filepath.Join(allowedDir, "link")
	// Relative target "../forbidden/x" must be resolved against allowedDir
	// (the link's own directory), not the process cwd, which is why this
	// must still deny even though cwd here is some unrelated test tempdir.
	if o.AdmitSymlinkCreate(linkPath, "", "../forbidden/x") != Deny {
		t.Error("expected deny: symlink target escapes into a forbidden prefix via relative path")
	}
	if o.AdmitSymlinkCreate(linkPath, "", "../allowed/x") != Allow {
		t.Error("expected allow: target stays within an allowed directory")
	}
}

func TestOracleAdmitAtJoinsDirFD(t *testing.T) {
	cfg := readyConfig([]string{"/blocked"}, nil)
	readlink := func(path string) (string, error) {
		if path == "/proc/self/fd/9" {
			return "/blocked/subdir", nil
		}
		return "", os.ErrNotExist
	}
	o := NewOracle(cfg, DefaultResolver, readlink, os.Getwd)

	if o.AdmitAt(9, "file") != Deny {
		t.Error("expected deny: dirfd resolves under a blocked prefix")
	}
}

func TestOracleExplainReportsMatchedRule(t *testing.T) {
	cfg := readyConfig([]string{"/app"}, []string{"**/*.pem"})
	o := NewOracle(cfg, DefaultResolver, UnixReadlink, os.Getwd)

	if d, reason := o.Explain("/app/secret", ""); d != Deny || reason != "prefix /app" {
		t.Errorf("got (%v, %q), want (Deny, \"prefix /app\")", d, reason)
	}
	if d, reason := o.Explain("/home/user/key.pem", ""); d != Deny || reason != "glob **/*.pem" {
		t.Errorf("got (%v, %q), want (Deny, \"glob **/*.pem\")", d, reason)
	}
	if d, reason := o.Explain("/tmp/ok", ""); d != Allow || reason != "" {
		t.Errorf("got (%v, %q), want (Allow, \"\")", d, reason)
	}
}

func TestOracleAdmitGlobSupplement(t *testing.T) {
	cfg := readyConfig(nil, []string{"**/*.pem"})
	o := NewOracle(cfg, DefaultResolver, UnixReadlink, os.Getwd)

	if o.Admit("/home/user/site.pem", "") != Deny {
		t.Error("expected deny via glob supplement")
	}
	if o.Admit("/home/user/site.crt", "") != Allow {
		t.Error("expected allow: non-matching extension")
	}
}
