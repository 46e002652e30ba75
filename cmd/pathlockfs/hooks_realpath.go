package main

/*
// Declared by hand rather than via <stdlib.h>: stdlib.h also declares
// realpath and canonicalize_file_name, which would collide with this
// file's exported definitions of those names in the generated export
// translation unit.
extern void free(void *);

// cgo's generated _cgo_export.c unconditionally includes <stdlib.h>, whose
// own realpath()/canonicalize_file_name() prototypes use const/restrict
// qualifiers cgo cannot reproduce for a //export'd Go function — so the
// real libc names are defined here as thin hand-written trampolines (the
// same technique main.go uses for the ctor/dtor attributes) that forward to
// Go functions carrying non-colliding names.
extern void* pl_realpath_impl(char *path0, void *resolvedBuf);
extern void* pl_canonicalize_file_name_impl(char *path0);

char *realpath(const char *path0, char *resolvedBuf) {
	return (char *)pl_realpath_impl((char *)path0, (void *)resolvedBuf);
}

char *canonicalize_file_name(const char *path0) {
	return (char *)pl_canonicalize_file_name_impl((char *)path0);
}
*/
import "C"

import (
	"unsafe"

	"github.com/pathlock/pathlock/internal/interpose"
)

// realpath/canonicalize_file_name are the path-canonicalization family,
// which gets result-tested blocking: the oracle runs on the
// resolved output, not the caller's raw argument, because the resolver can
// legally accept a non-blocked argument and still hand back a canonical
// path that falls under a forbidden prefix via a symlink the argument
// itself never mentioned.

//export pl_realpath_impl
func pl_realpath_impl(path0 *C.char, resolvedBuf unsafe.Pointer) unsafe.Pointer {
	path := C.GoString(path0)
	fn, err := interpose.Next("realpath")
	if err != nil {
		return returnFailurePtr()
	}
	r, callErr := interpose.CallPtrPathBuf(fn, path, resolvedBuf)
	if callErr != nil || r == nil {
		return forwardResultPtr(nil, callErr)
	}
	resolved := C.GoString((*C.char)(r))
	if !admitPath("realpath", resolved) {
		if resolvedBuf == nil {
			// The GNU extension (resolved_path == NULL) mallocs its own
			// buffer; the caller-supplied-buffer form owns no allocation of
			// ours to free.
			C.free(r)
		}
		return returnFailurePtr()
	}
	return r
}

//export pl_canonicalize_file_name_impl
func pl_canonicalize_file_name_impl(path0 *C.char) unsafe.Pointer {
	path := C.GoString(path0)
	fn, err := interpose.Next("canonicalize_file_name")
	if err != nil {
		return returnFailurePtr()
	}
	r, callErr := interpose.CallPtrPath(fn, path)
	if callErr != nil || r == nil {
		return forwardResultPtr(nil, callErr)
	}
	resolved := C.GoString((*C.char)(r))
	if !admitPath("canonicalize_file_name", resolved) {
		C.free(r)
		return returnFailurePtr()
	}
	return r
}
