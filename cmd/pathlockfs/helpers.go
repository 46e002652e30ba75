package main

/*
#define _GNU_SOURCE
#include <errno.h>
#include <fcntl.h>

// Every hook file that needs to synthesize a denial shares this one
// definition of "how to set errno from Go" rather than each declaring its
// own copy — cgo compiles each file's preamble as its own translation
// unit, so this has to live somewhere all the hook files' Go code can
// reach through a single cgo call; helpers.go is that shared point. This
// file carries no //export directives, which is also what makes including
// fcntl.h legal here: the hook files exporting open/openat must not pull
// in a header that declares those same names.
static void pl_set_errno(int e) {
	errno = e;
}
*/
import "C"

import (
	"errors"
	"os"
	"syscall"
	"unsafe"

	"github.com/pathlock/pathlock/internal/interpose"
	"github.com/pathlock/pathlock/internal/policy"
	"github.com/pathlock/pathlock/internal/trace"
)

// oracle builds a fresh Oracle bound to the process-wide config, the real
// (forwarded) resolver and readlink, and os.Getwd. The Oracle itself holds
// no mutable state, so constructing one per call is cheap and avoids any
// shared global beyond the already-immutable Config.
func oracle() *policy.Oracle {
	return policy.NewOracle(policy.Get(), realpathResolver, forwardedReadlink, os.Getwd)
}

// realpathResolver resolves symlinks via the forwarded, non-interposed libc
// realpath rather than filepath.EvalSymlinks, so the shim resolves paths
// with the same resolver the hosted process's own libc uses. Going through
// the cached next-symbol pointer rather than the public realpath name
// guarantees no recursion into this library's own realpath hook.
func realpathResolver(path string) (string, error) {
	fn, err := interpose.Next("realpath")
	if err != nil {
		return "", err
	}
	buf := make([]byte, 4096)
	r, callErr := interpose.CallPtrPathBuf(fn, path, unsafe.Pointer(&buf[0]))
	if callErr != nil || r == nil {
		return "", callErr
	}
	return cStringToGo(buf), nil
}

func cStringToGo(buf []byte) string {
	for i, b := range buf {
		if b == 0 {
			return string(buf[:i])
		}
	}
	return string(buf)
}

// forwardedReadlink is the ReadlinkFunc the Oracle uses to resolve `*at`
// dirfds and symlink targets, backed by the cached next-symbol readlink
// rather than golang.org/x/sys/unix directly, so cmd/pathlockfs's own
// resolution never depends on whether this process's libc happens to
// implement readlink as a raw syscall or something more exotic (e.g. a
// FUSE-backed /proc emulation). policy.UnixReadlink remains the default
// for pathlockctl and tests, which never run under LD_PRELOAD.
func forwardedReadlink(path string) (string, error) {
	fn, err := interpose.Next("readlink")
	if err != nil {
		return policy.UnixReadlink(path)
	}
	buf := make([]byte, 4096)
	n, callErr := interpose.CallLongPathBufSize(fn, path, unsafe.Pointer(&buf[0]), len(buf))
	if callErr != nil {
		return "", callErr
	}
	return string(buf[:n]), nil
}

// denyErrno is the errno every blocked call reports:
// the caller sees the same failure shape a genuinely missing-permission
// real filesystem would produce.
const denyErrno = C.EACCES

// Open-family flag bits, shared with hooks_open.go's needsMode.
var (
	oCreat   = C.int(C.O_CREAT)
	oTmpfile = C.int(C.O_TMPFILE)
)

// returnFailureInt sets errno and returns -1, the shared failure sentinel
// for every int-returning hook. No hook family can drift into forgetting to
// set errno, or returning the wrong sentinel, because they all call here.
func returnFailureInt() C.int {
	C.pl_set_errno(denyErrno)
	return -1
}

// returnFailurePtr is returnFailureInt's pointer-returning counterpart,
// used by fopen/freopen/opendir/realpath/canonicalize_file_name.
func returnFailurePtr() unsafe.Pointer {
	C.pl_set_errno(denyErrno)
	return nil
}

// returnFailureLong is returnFailureInt's ssize_t-returning counterpart,
// used by readlink/readlinkat/getxattr/listxattr and siblings.
func returnFailureLong() C.long {
	C.pl_set_errno(denyErrno)
	return -1
}

// hostErrno recovers the errno a forwarded libc call reported.
func hostErrno(err error) C.int {
	var errno syscall.Errno
	if errors.As(err, &errno) && errno != 0 {
		return C.int(errno)
	}
	return C.EIO
}

// forwardResultInt returns a forwarded call's result to the C caller. On a
// host-side failure the errno cgo captured at the call site is re-asserted
// before returning: the Go runtime may issue syscalls of its own on this
// thread between the real call and our return to C, so the thread-local
// errno the caller is about to read cannot be trusted to still hold the
// host call's value. The failure itself passes through unchanged — a
// forwarded ENOENT stays ENOENT, never EACCES.
func forwardResultInt(r int, callErr error) C.int {
	if callErr != nil {
		C.pl_set_errno(hostErrno(callErr))
		return -1
	}
	return C.int(r)
}

// forwardResultLong is forwardResultInt for ssize_t-returning entry points.
func forwardResultLong(r int64, callErr error) C.long {
	if callErr != nil {
		C.pl_set_errno(hostErrno(callErr))
		return -1
	}
	return C.long(r)
}

// forwardResultPtr is forwardResultInt for pointer-returning entry points.
func forwardResultPtr(r unsafe.Pointer, callErr error) unsafe.Pointer {
	if callErr != nil {
		C.pl_set_errno(hostErrno(callErr))
		return nil
	}
	return r
}

func traceDecision(op, path string, allowed bool, reason string) {
	if !policy.Get().Debug() {
		return
	}
	verdict := "allow"
	if !allowed {
		verdict = "deny"
	}
	trace.Decision(op, path, verdict, reason)
}

func traceDecisionAt(op string, dirfd int, path string, allowed bool, reason string) {
	if !policy.Get().Debug() {
		return
	}
	verdict := "allow"
	if !allowed {
		verdict = "deny"
	}
	trace.DecisionAt(op, dirfd, path, verdict, reason)
}

// explainOr calls Oracle.Explain only when debug tracing is enabled —
// Explain does one extra MatchReason pass that the hot path (Admit) skips,
// so non-debug runs never pay for it.
func explainOr(o *policy.Oracle, path, base string) string {
	if !policy.Get().Debug() {
		return ""
	}
	_, reason := o.Explain(path, base)
	return reason
}
