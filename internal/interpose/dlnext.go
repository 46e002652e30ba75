// Package interpose is the only cgo-dependent part of pathlock's decision
// path. It resolves, once per process and cached forever after, the *next*
// definition of each libc entry point pathlockfs interposes on — the
// dlsym(RTLD_NEXT, ...) trick that lets a hook forward an allowed call to
// the real implementation without recursing into the shim's own interposed
// name.
//
// cmd/pathlockfs is the only importer of this package. internal/policy
// never imports cgo: the admission oracle is pure, cgo-free Go, so
// `go test ./internal/policy` never needs a C toolchain.
package interpose

/*
#cgo LDFLAGS: -ldl
#include <dlfcn.h>
#include <stdlib.h>
*/
import "C"

import (
	"fmt"
	"sync"
	"unsafe"
)

var (
	cacheMu sync.RWMutex
	cache   map[string]unsafe.Pointer
)

// Next resolves name's next definition after this library's own via
// dlsym(RTLD_NEXT, name) and caches the resulting address. Next-symbol
// lookups return stable addresses for the lifetime of the process, so the
// cache never needs invalidation, only population.
func Next(name string) (unsafe.Pointer, error) {
	cacheMu.RLock()
	p, ok := cache[name]
	cacheMu.RUnlock()
	if ok {
		return p, nil
	}

	cName := C.CString(name)
	defer C.free(unsafe.Pointer(cName))
	resolved := C.dlsym(C.RTLD_NEXT, cName)
	if resolved == nil {
		return nil, fmt.Errorf("interpose: no next definition for %q", name)
	}

	cacheMu.Lock()
	if cache == nil {
		cache = make(map[string]unsafe.Pointer)
	}
	cache[name] = resolved
	cacheMu.Unlock()
	return resolved, nil
}

// Preload resolves every name up front, intended to run once from the
// library constructor (cmd/pathlockfs's lifecycle hook) so that no hook's
// hot path is the first caller to touch the dynamic linker. A symbol
// absent on this host (e.g. statx on an old glibc) is simply left
// unresolved; the corresponding hook fails closed at call time.
func Preload(names []string) {
	for _, n := range names {
		_, _ = Next(n)
	}
}
