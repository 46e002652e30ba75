package main

/*
#include <stddef.h>
*/
import "C"

import (
	"unsafe"

	"github.com/pathlock/pathlock/internal/interpose"
)

//export symlink
func symlink(target0, linkpath0 *C.char) C.int {
	target, linkpath := C.GoString(target0), C.GoString(linkpath0)
	if !admitSymlinkCreate("symlink", linkpath, target) {
		return returnFailureInt()
	}
	fn, err := interpose.Next("symlink")
	if err != nil {
		return returnFailureInt()
	}
	r, callErr := interpose.CallPathPath(fn, target, linkpath)
	return forwardResultInt(r, callErr)
}

//export symlinkat
func symlinkat(target0 *C.char, dirfd0 C.int, linkpath0 *C.char) C.int {
	target, dirfd, linkpath := C.GoString(target0), int(dirfd0), C.GoString(linkpath0)
	if !admitSymlinkCreateAt("symlinkat", dirfd, linkpath, target) {
		return returnFailureInt()
	}
	fn, err := interpose.Next("symlinkat")
	if err != nil {
		return returnFailureInt()
	}
	r, callErr := interpose.CallSymlinkat(fn, target, dirfd, linkpath)
	return forwardResultInt(r, callErr)
}

//export readlink
func readlink(path0 *C.char, buf unsafe.Pointer, bufsiz C.size_t) C.long {
	path := C.GoString(path0)
	if !admitPath("readlink", path) {
		return returnFailureLong()
	}
	fn, err := interpose.Next("readlink")
	if err != nil {
		return returnFailureLong()
	}
	r, callErr := interpose.CallLongPathBufSize(fn, path, buf, int(bufsiz))
	return forwardResultLong(r, callErr)
}

//export readlinkat
func readlinkat(dirfd0 C.int, path0 *C.char, buf unsafe.Pointer, bufsiz C.size_t) C.long {
	dirfd, path := int(dirfd0), C.GoString(path0)
	if !admitAt("readlinkat", dirfd, path) {
		return returnFailureLong()
	}
	fn, err := interpose.Next("readlinkat")
	if err != nil {
		return returnFailureLong()
	}
	r, callErr := interpose.CallLongDirfdPathBufSize(fn, dirfd, path, buf, int(bufsiz))
	return forwardResultLong(r, callErr)
}
