package policy

import (
	"os"
	"path/filepath"
)

// ResolutionError wraps a symlink-resolution failure that is neither a
// clean "does not exist" nor success — e.g. ELOOP, EACCES from a traversed
// directory, or an I/O error. A distinct type (rather than a sentinel
// value) so callers can assert on it without string-matching a message;
// the oracle treats any of these as grounds to deny.
type ResolutionError struct {
	Path string
	Err  error
}

func (e *ResolutionError) Error() string {
	return "pathlock: resolve " + e.Path + ": " + e.Err.Error()
}

func (e *ResolutionError) Unwrap() error { return e.Err }

// RealResolver resolves symlinks in an absolute path down to a real,
// canonical filesystem path. cmd/pathlockfs supplies an implementation
// backed by the forwarded (non-interposed) libc realpath so that resolving
// a path never recurses back through our own interposition; the default
// used by tests and by pathlockctl is filepath.EvalSymlinks, since neither
// of those runs under LD_PRELOAD.
type RealResolver func(path string) (string, error)

// DefaultResolver is filepath.EvalSymlinks, suitable whenever the caller is
// not itself the interposed process (pathlockctl, and all tests).
func DefaultResolver(path string) (string, error) {
	return filepath.EvalSymlinks(path)
}

// Resolve turns an already textually-canonicalized absolute path into the
// path the admission oracle should actually test against the forbidden
// prefixes, in two steps:
//
//  1. Try to resolve the full path. If every component exists, this yields
//     the true, symlink-free target and is what we test.
//  2. If the full path does not exist (common for create-type calls:
//     open(O_CREAT), mkdir, rename's destination, ...), resolving the whole
//     path fails even though the parent directory is real. Fall back to
//     resolving just the parent directory and re-appending the final
//     component — this still defeats a symlinked parent directory, which is
//     the attack this step exists for, without requiring the leaf itself to
//     exist.
//
// Any resolution failure other than "does not exist" is surfaced to the
// caller, who must treat it as ResolutionUnknown and fail closed.
func Resolve(resolver RealResolver, canon string) (string, error) {
	if resolver == nil {
		resolver = DefaultResolver
	}

	if real, err := resolver(canon); err == nil {
		return real, nil
	} else if !os.IsNotExist(err) {
		return "", &ResolutionError{Path: canon, Err: err}
	}

	dir := filepath.Dir(canon)
	base := filepath.Base(canon)

	if dir == canon {
		// canon is "/" itself; nothing left to fall back to.
		return canon, nil
	}

	realDir, err := resolver(dir)
	if err != nil {
		if os.IsNotExist(err) {
			// Neither the path nor its parent exists; the grandparent chain
			// may still contain a symlink. Recurse one level up.
			realDir, err = Resolve(resolver, dir)
			if err != nil {
				return "", err
			}
			return filepath.Join(realDir, base), nil
		}
		return "", &ResolutionError{Path: dir, Err: err}
	}
	return filepath.Join(realDir, base), nil
}
