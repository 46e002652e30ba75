package policy

import (
	"errors"
	"testing"
)

func fakeCwd(p string) func() (string, error) {
	return func() (string, error) { return p, nil }
}

func TestJoinAtAbsolutePathIgnoresDirFD(t *testing.T) {
	got, err := JoinAt(nil, 5, "/etc/passwd", fakeCwd("/should/not/be/used"))
	if err != nil {
		t.Fatal(err)
	}
	if got != "/etc/passwd" {
		t.Errorf("got %q, want /etc/passwd", got)
	}
}

func TestJoinAtCwdSentinel(t *testing.T) {
	got, err := JoinAt(nil, AtFDCwd, "relative/file", fakeCwd("/home/user"))
	if err != nil {
		t.Fatal(err)
	}
	if got != "/home/user/relative/file" {
		t.Errorf("got %q", got)
	}
}

func TestJoinAtResolvesRealDirFD(t *testing.T) {
	readlink := func(path string) (string, error) {
		if path == "/proc/self/fd/7" {
			return "/var/data", nil
		}
		return "", errors.New("unexpected path")
	}
	got, err := JoinAt(readlink, 7, "file.txt", fakeCwd("/unused"))
	if err != nil {
		t.Fatal(err)
	}
	if got != "/var/data/file.txt" {
		t.Errorf("got %q", got)
	}
}

func TestResolveDirFDRejectsNegativeNonCwd(t *testing.T) {
	_, err := ResolveDirFD(nil, -5, fakeCwd("/x"))
	if err == nil {
		t.Error("expected error for invalid dirfd")
	}
}

func TestResolveDirFDPropagatesReadlinkFailure(t *testing.T) {
	readlink := func(path string) (string, error) { return "", errors.New("boom") }
	_, err := ResolveDirFD(readlink, 3, fakeCwd("/x"))
	if err == nil {
		t.Error("expected error propagated from readlink")
	}
}
