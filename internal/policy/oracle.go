package policy

import (
	"os"
	"path/filepath"
	"strconv"
)

// Decision is the oracle's verdict for a single path-taking call.
type Decision int

const (
	// Allow means the call should be forwarded to the real implementation.
	Allow Decision = iota
	// Deny means the call should fail with the policy's denial errno
	// without ever reaching the real implementation.
	Deny
)

// Oracle is the admission engine: given a Config and a resolver, it answers
// whether a given path, or (dirfd, path) pair, may proceed. It holds no
// mutable state of its own beyond what Config already froze at load time.
type Oracle struct {
	cfg      *Config
	resolver RealResolver
	readlink ReadlinkFunc
	cwd      func() (string, error)
}

// NewOracle builds an Oracle around cfg. A nil resolver/readlink/cwd falls
// back to the real-filesystem defaults; cmd/pathlockfs supplies
// forwarded-libc implementations for the resolver and readlink.
func NewOracle(cfg *Config, resolver RealResolver, readlink ReadlinkFunc, cwd func() (string, error)) *Oracle {
	if cwd == nil {
		cwd = os.Getwd
	}
	return &Oracle{cfg: cfg, resolver: resolver, readlink: readlink, cwd: cwd}
}

// Admit decides whether an absolute-or-cwd-relative path may be accessed.
// base is the directory a relative path should be joined against (normally
// the caller's cwd); pass "" to require path be already absolute.
func (o *Oracle) Admit(path, base string) Decision {
	if o.cfg.FailClosed() {
		return Deny
	}
	full := joinBase(path, base)
	return o.admitResolved(full)
}

// AdmitAt is the `*at`-family counterpart of Admit: path is resolved
// relative to dirfd (AT_FDCWD or a real descriptor) rather than a plain
// base directory.
func (o *Oracle) AdmitAt(dirfd int, path string) Decision {
	if o.cfg.FailClosed() {
		return Deny
	}
	if o.cfg.Empty() {
		return Allow
	}
	full, err := JoinAt(o.readlink, dirfd, path, o.cwd)
	if err != nil {
		// Resolution failure (ResolutionUnknown) always fails closed.
		return Deny
	}
	return o.admitResolved(full)
}

func (o *Oracle) admitResolved(full string) Decision {
	if o.cfg.Empty() {
		return Allow
	}
	canon := Canonicalize(full)
	if o.cfg.index.Blocked(canon) {
		return Deny
	}

	// A resolution failure of any kind fails closed: there is no
	// distinction between ELOOP, EACCES, and a missing next-symbol that an
	// interposition layer can safely act on.
	real, err := Resolve(o.resolver, canon)
	if err != nil {
		return Deny
	}
	real = Canonicalize(real)
	if o.cfg.index.Blocked(real) {
		return Deny
	}
	return Allow
}

// Explain is Admit's diagnostic counterpart: it reports not just the
// verdict but, on Deny, which configured rule produced it — a literal
// prefix, a supplementary glob, or a symlink resolution that landed under
// one of those. Used by `pathlockctl check`, and by cmd/pathlockfs only to
// build its debug trace when tracing is enabled; the hooks' decisions
// always come from Admit/AdmitAt.
func (o *Oracle) Explain(path, base string) (Decision, string) {
	if o.cfg.FailClosed() {
		return Deny, "fail-closed: configuration could not be loaded"
	}
	full := joinBase(path, base)
	return o.explainResolved(full)
}

// ExplainAt is Explain's *at-family counterpart.
func (o *Oracle) ExplainAt(dirfd int, path string) (Decision, string) {
	if o.cfg.FailClosed() {
		return Deny, "fail-closed: configuration could not be loaded"
	}
	if o.cfg.Empty() {
		return Allow, ""
	}
	full, err := JoinAt(o.readlink, dirfd, path, o.cwd)
	if err != nil {
		return Deny, "cannot resolve directory descriptor " + strconv.Itoa(dirfd)
	}
	return o.explainResolved(full)
}

func (o *Oracle) explainResolved(full string) (Decision, string) {
	if o.cfg.Empty() {
		return Allow, ""
	}
	canon := Canonicalize(full)
	if rule, kind, ok := o.cfg.index.MatchReason(canon); ok {
		return Deny, kind + " " + rule
	}

	real, err := Resolve(o.resolver, canon)
	if err != nil {
		return Deny, "symlink resolution failed: " + err.Error()
	}
	real = Canonicalize(real)
	if rule, kind, ok := o.cfg.index.MatchReason(real); ok {
		return Deny, kind + " " + rule + " (via symlink resolution to " + real + ")"
	}
	return Allow, ""
}

// AdmitSymlinkCreate decides whether creating a symlink at linkPath
// pointing to target may proceed. Both the link's own location
// and — if target resolves under a forbidden prefix — the target itself
// must be checked; a relative target is resolved against linkPath's
// containing directory, not the caller's cwd, since that is how the kernel
// itself will interpret the link once created.
func (o *Oracle) AdmitSymlinkCreate(linkPath, base, target string) Decision {
	if d := o.Admit(linkPath, base); d == Deny {
		return Deny
	}
	linkDir := filepath.Dir(joinBase(linkPath, base))
	return o.admitSymlinkTarget(linkDir, target)
}

// AdmitSymlinkCreateAt is the `*at`-family counterpart of
// AdmitSymlinkCreate (symlinkat).
func (o *Oracle) AdmitSymlinkCreateAt(dirfd int, linkPath, target string) Decision {
	if d := o.AdmitAt(dirfd, linkPath); d == Deny {
		return Deny
	}
	if o.cfg.Empty() {
		return Allow
	}
	full, err := JoinAt(o.readlink, dirfd, linkPath, o.cwd)
	if err != nil {
		return Deny
	}
	return o.admitSymlinkTarget(filepath.Dir(full), target)
}

func (o *Oracle) admitSymlinkTarget(linkDir, target string) Decision {
	full := joinBase(target, linkDir)
	return o.admitResolved(full)
}

func joinBase(path, base string) string {
	if len(path) > 0 && path[0] == '/' {
		return path
	}
	if base == "" {
		return path
	}
	return filepath.Join(base, path)
}
