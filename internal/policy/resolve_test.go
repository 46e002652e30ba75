package policy

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestResolveExistingPath(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "real")
	if err := os.Mkdir(target, 0o755); err != nil {
		t.Fatal(err)
	}
	link := filepath.Join(dir, "link")
	if err := os.Symlink(target, link); err != nil {
		t.Fatal(err)
	}

	got, err := Resolve(DefaultResolver, link)
	if err != nil {
		t.Fatal(err)
	}
	want, _ := filepath.EvalSymlinks(target)
	if got != want {
		t.Errorf("Resolve(%q) = %q, want %q", link, got, want)
	}
}

func TestResolveFallsBackToParentForMissingLeaf(t *testing.T) {
	dir := t.TempDir()
	realDir := filepath.Join(dir, "realdir")
	if err := os.Mkdir(realDir, 0o755); err != nil {
		t.Fatal(err)
	}
	linkedDir := filepath.Join(dir, "linkdir")
	if err := os.Symlink(realDir, linkedDir); err != nil {
		t.Fatal(err)
	}

	notYetCreated := filepath.Join(linkedDir, "newfile")
	got, err := Resolve(DefaultResolver, notYetCreated)
	if err != nil {
		t.Fatal(err)
	}
	wantDir, _ := filepath.EvalSymlinks(realDir)
	want := filepath.Join(wantDir, "newfile")
	if got != want {
		t.Errorf("Resolve(%q) = %q, want %q — symlinked parent directory must still resolve", notYetCreated, got, want)
	}
}

func TestResolveWrapsUnexpectedFailures(t *testing.T) {
	failing := func(string) (string, error) { return "", os.ErrPermission }

	_, err := Resolve(failing, "/some/path")
	if err == nil {
		t.Fatal("expected an error from a failing resolver")
	}
	var re *ResolutionError
	if !errors.As(err, &re) {
		t.Fatalf("expected a *ResolutionError, got %T: %v", err, err)
	}
	if !errors.Is(err, os.ErrPermission) {
		t.Errorf("expected wrapped cause to survive, got %v", err)
	}
}

func TestResolveDeepMissingChainStillResolvesSymlinkedAncestor(t *testing.T) {
	dir := t.TempDir()
	realDir := filepath.Join(dir, "realdir")
	if err := os.Mkdir(realDir, 0o755); err != nil {
		t.Fatal(err)
	}
	linkedDir := filepath.Join(dir, "linkdir")
	if err := os.Symlink(realDir, linkedDir); err != nil {
		t.Fatal(err)
	}

	deepMissing := filepath.Join(linkedDir, "a", "b", "c")
	got, err := Resolve(DefaultResolver, deepMissing)
	if err != nil {
		t.Fatal(err)
	}
	wantDir, _ := filepath.EvalSymlinks(realDir)
	want := filepath.Join(wantDir, "a", "b", "c")
	if got != want {
		t.Errorf("Resolve(%q) = %q, want %q", deepMissing, got, want)
	}
}
