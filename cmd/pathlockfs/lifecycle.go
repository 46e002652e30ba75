package main

import "C"

import (
	"os"
	"strconv"
	"strings"

	"github.com/pathlock/pathlock/internal/interpose"
	"github.com/pathlock/pathlock/internal/policy"
	"github.com/pathlock/pathlock/internal/trace"
)

// preloadNames lists every symbol the dispatch layer may need to forward
// to, resolved once from the library constructor rather than lazily from
// each hook's hot path. A name absent on this host (e.g. statx on an old
// glibc) is simply left unresolved; the corresponding hook fails closed at
// call time.
var preloadNames = []string{
	"open", "open64", "openat", "openat64", "creat", "creat64",
	"fopen", "fopen64", "freopen", "freopen64",
	"stat", "stat64", "lstat", "lstat64", "fstatat", "fstatat64",
	"__xstat", "__xstat64", "__lxstat", "__lxstat64", "__fxstatat", "__fxstatat64",
	"statx",
	"access", "faccessat", "euidaccess", "eaccess",
	"opendir", "chdir", "mkdir", "mkdirat", "rmdir",
	"unlink", "unlinkat", "rename", "renameat", "renameat2", "link", "linkat",
	"chmod", "fchmodat", "chown", "lchown", "fchownat", "truncate", "truncate64",
	"getxattr", "lgetxattr", "setxattr", "lsetxattr",
	"removexattr", "lremovexattr", "listxattr", "llistxattr",
	"symlink", "symlinkat", "readlink", "readlinkat",
	"execve", "execveat",
	"ftw", "nftw",
	"realpath", "canonicalize_file_name",
	"utime", "utimes", "utimensat", "futimesat",
	"mknod", "mknodat", "mkfifo", "mkfifoat",
}

// pathlockOnLoad is invoked once, from the cgo constructor in main.go, when
// the dynamic linker maps this shared object into the target process. It
// forces the one-shot config load and resolves every forwardable symbol up
// front so no hook's first call pays dlsym's latency or risks a partial
// cache under concurrent first use.
//
//export pathlockOnLoad
func pathlockOnLoad() {
	cfg := policy.Get()
	interpose.Preload(preloadNames)
	if cfg.Debug() {
		state := "ready"
		if cfg.FailClosed() {
			state = "fail-closed"
		}
		trace.Decision("init", "-", state, strconv.Itoa(len(cfg.Prefixes()))+" prefixes: "+strings.Join(cfg.Prefixes(), ","))
	}
}

// pathlockOnUnload runs from the cgo destructor as the library is
// unmapped. There is no frozen state to release — policy.Config is
// immutable for the process's lifetime — but embedding harnesses (notably
// test runners) sometimes force-unload via dlclose, so trace output is
// flushed here rather than lost.
//
//export pathlockOnUnload
func pathlockOnUnload() {
	_ = os.Stderr.Sync()
}
