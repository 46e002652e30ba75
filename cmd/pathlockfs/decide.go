package main

import (
	"os"

	"github.com/pathlock/pathlock/internal/policy"
)

// admitPath is the shared admission check every path-only hook (not part
// of the `*at` family) goes through: resolve the oracle's verdict for path
// against the process's current working directory, trace it when debug
// tracing is enabled, and report a plain bool the hook can branch on.
func admitPath(op, path string) bool {
	o := oracle()
	cwd, _ := os.Getwd()
	allowed := o.Admit(path, cwd) == policy.Allow
	traceDecision(op, path, allowed, explainOr(o, path, cwd))
	return allowed
}

// admitAt is admitPath's `*at`-family counterpart: path is resolved
// relative to dirfd rather than cwd.
func admitAt(op string, dirfd int, path string) bool {
	o := oracle()
	allowed := o.AdmitAt(dirfd, path) == policy.Allow
	if policy.Get().Debug() {
		full, err := policy.JoinAt(forwardedReadlink, dirfd, path, os.Getwd)
		reason := ""
		if err == nil {
			reason = explainOr(o, full, "")
		}
		traceDecisionAt(op, dirfd, path, allowed, reason)
	}
	return allowed
}

// admitSymlinkCreate is the symlink-creation special case: both
// the link's own location and, transitively, its target must clear the
// oracle before the link may be created.
func admitSymlinkCreate(op, linkPath, target string) bool {
	o := oracle()
	cwd, _ := os.Getwd()
	allowed := o.AdmitSymlinkCreate(linkPath, cwd, target) == policy.Allow
	traceDecision(op, linkPath+" -> "+target, allowed, explainOr(o, linkPath, cwd))
	return allowed
}

func admitSymlinkCreateAt(op string, dirfd int, linkPath, target string) bool {
	o := oracle()
	allowed := o.AdmitSymlinkCreateAt(dirfd, linkPath, target) == policy.Allow
	traceDecisionAt(op, dirfd, linkPath+" -> "+target, allowed, "")
	return allowed
}
