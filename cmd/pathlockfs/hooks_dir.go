package main

/*
#include <sys/types.h>
*/
import "C"

import (
	"unsafe"

	"github.com/pathlock/pathlock/internal/interpose"
)

//export opendir
func opendir(path0 *C.char) unsafe.Pointer {
	path := C.GoString(path0)
	if !admitPath("opendir", path) {
		return returnFailurePtr()
	}
	fn, err := interpose.Next("opendir")
	if err != nil {
		return returnFailurePtr()
	}
	r, callErr := interpose.CallPtrPath(fn, path)
	return forwardResultPtr(r, callErr)
}

//export chdir
func chdir(path0 *C.char) C.int {
	path := C.GoString(path0)
	if !admitPath("chdir", path) {
		return returnFailureInt()
	}
	fn, err := interpose.Next("chdir")
	if err != nil {
		return returnFailureInt()
	}
	r, callErr := interpose.CallPath(fn, path)
	return forwardResultInt(r, callErr)
}

//export mkdir
func mkdir(path0 *C.char, mode0 C.mode_t) C.int {
	path := C.GoString(path0)
	if !admitPath("mkdir", path) {
		return returnFailureInt()
	}
	fn, err := interpose.Next("mkdir")
	if err != nil {
		return returnFailureInt()
	}
	r, callErr := interpose.CallPathInt(fn, path, int(mode0))
	return forwardResultInt(r, callErr)
}

//export mkdirat
func mkdirat(dirfd0 C.int, path0 *C.char, mode0 C.mode_t) C.int {
	dirfd, path := int(dirfd0), C.GoString(path0)
	if !admitAt("mkdirat", dirfd, path) {
		return returnFailureInt()
	}
	fn, err := interpose.Next("mkdirat")
	if err != nil {
		return returnFailureInt()
	}
	r, callErr := interpose.CallDirfdPathInt(fn, dirfd, path, int(mode0))
	return forwardResultInt(r, callErr)
}

//export rmdir
func rmdir(path0 *C.char) C.int {
	path := C.GoString(path0)
	if !admitPath("rmdir", path) {
		return returnFailureInt()
	}
	fn, err := interpose.Next("rmdir")
	if err != nil {
		return returnFailureInt()
	}
	r, callErr := interpose.CallPath(fn, path)
	return forwardResultInt(r, callErr)
}
