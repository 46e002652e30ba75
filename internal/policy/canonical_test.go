package policy

import "testing"

func TestCanonicalize(t *testing.T) {
	cases := map[string]string{
		"":                    "/",
		"/":                   "/",
		"/app":                "/app",
		"/app/":               "/app",
		"/app/../etc":         "/etc",
		"/app/./config":       "/app/config",
		"/a/b/../../c":        "/c",
		"/a/b/../../../../c":  "/c",
		"/./././":             "/",
		"//double//slash":     "/double/slash",
		"relative/path":       "relative/path",
		"/app/data/../../app": "/app",
	}
	for in, want := range cases {
		if got := Canonicalize(in); got != want {
			t.Errorf("Canonicalize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCanonicalizeNeverEscapesRoot(t *testing.T) {
	got := Canonicalize("/../../../etc/passwd")
	if got != "/etc/passwd" {
		t.Errorf("Canonicalize escaped root: got %q", got)
	}
}

func TestCanonicalizeIsIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"/",
		"/app/",
		"/app/../etc",
		"/./app/./x",
		"/tmp/../app/x",
		"//double//slash",
		"/../..",
	}
	for _, in := range inputs {
		once := Canonicalize(in)
		twice := Canonicalize(once)
		if once != twice {
			t.Errorf("Canonicalize not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}
