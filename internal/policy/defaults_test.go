package policy

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFindSensitiveFiles(t *testing.T) {
	dir := t.TempDir()
	sshDir := filepath.Join(dir, ".ssh")
	if err := os.Mkdir(sshDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(sshDir, "id_rsa"), []byte("key"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hi"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("SECRET=1"), 0o644); err != nil {
		t.Fatal(err)
	}

	findings, err := FindSensitiveFiles(dir)
	if err != nil {
		t.Fatal(err)
	}

	paths := map[string]bool{}
	for _, f := range findings {
		paths[f.Path] = true
	}
	if !paths[sshDir] {
		t.Error("expected .ssh directory to be flagged")
	}
	if !paths[filepath.Join(sshDir, "id_rsa")] {
		t.Error("expected id_rsa to be flagged")
	}
	if !paths[filepath.Join(dir, ".env")] {
		t.Error("expected .env to be flagged")
	}
	if paths[filepath.Join(dir, "notes.txt")] {
		t.Error("did not expect notes.txt to be flagged")
	}
}
