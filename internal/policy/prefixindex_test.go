package policy

import "testing"

func TestPrefixIndexExactAndDirectoryMatch(t *testing.T) {
	idx := newPrefixIndex([]string{"/app", "/.apps_data"})

	cases := map[string]bool{
		"/app":                 true,
		"/app/sub/file":        true,
		"/applications":        false,
		"/applications/thing":  false,
		"/.apps_data":          true,
		"/.apps_data/x":        true,
		"/.apps_datafoo":       false,
		"/etc/passwd":          false,
		"/":                    false,
	}
	for path, want := range cases {
		if got := idx.Blocked(path); got != want {
			t.Errorf("Blocked(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestPrefixIndexOverlappingPrefixesFallBackToShorter(t *testing.T) {
	// "/app/sub" is a longer configured prefix than "/app" and shares its
	// leading bytes, so the radix tree's longest-byte-match can find it
	// first; matchedPrefix must still fall back to "/app" for paths that
	// only satisfy the boundary rule against the shorter entry.
	idx := newPrefixIndex([]string{"/app", "/app/sub"})

	cases := map[string]bool{
		"/app/subdir/file": true,
		"/app/sub":         true,
		"/app/sub/file":    true,
		"/app/other":       true,
		"/applications":    false,
	}
	for path, want := range cases {
		if got := idx.Blocked(path); got != want {
			t.Errorf("Blocked(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestPrefixIndexGlobSupplement(t *testing.T) {
	idx := newPrefixIndex(nil).withGlobs([]string{"**/*.pem", "**/secrets/**"})

	cases := map[string]bool{
		"/home/user/key.pem": true,
		"/home/user/key.pub": false,
		"/var/secrets/token": true,
		"/var/other/token":   false,
	}
	for path, want := range cases {
		if got := idx.Blocked(path); got != want {
			t.Errorf("Blocked(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestPrefixIndexNilIsUnblocked(t *testing.T) {
	var idx *prefixIndex
	if idx.Blocked("/app") {
		t.Error("nil index should never block")
	}
}
