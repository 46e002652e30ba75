package main

/*
#include <sys/types.h>
*/
import "C"

import (
	"unsafe"

	"github.com/pathlock/pathlock/internal/interpose"
)

//export utime
func utime(path0 *C.char, times unsafe.Pointer) C.int {
	path := C.GoString(path0)
	if !admitPath("utime", path) {
		return returnFailureInt()
	}
	fn, err := interpose.Next("utime")
	if err != nil {
		return returnFailureInt()
	}
	r, callErr := interpose.CallPathBuf(fn, path, times)
	return forwardResultInt(r, callErr)
}

//export utimes
func utimes(path0 *C.char, times unsafe.Pointer) C.int {
	path := C.GoString(path0)
	if !admitPath("utimes", path) {
		return returnFailureInt()
	}
	fn, err := interpose.Next("utimes")
	if err != nil {
		return returnFailureInt()
	}
	r, callErr := interpose.CallPathBuf(fn, path, times)
	return forwardResultInt(r, callErr)
}

//export utimensat
func utimensat(dirfd0 C.int, path0 *C.char, times unsafe.Pointer, flags0 C.int) C.int {
	dirfd, path := int(dirfd0), C.GoString(path0)
	if !admitAt("utimensat", dirfd, path) {
		return returnFailureInt()
	}
	fn, err := interpose.Next("utimensat")
	if err != nil {
		return returnFailureInt()
	}
	r, callErr := interpose.CallDirfdPathBufInt(fn, dirfd, path, times, int(flags0))
	return forwardResultInt(r, callErr)
}

//export futimesat
func futimesat(dirfd0 C.int, path0 *C.char, times unsafe.Pointer) C.int {
	dirfd, path := int(dirfd0), C.GoString(path0)
	if !admitAt("futimesat", dirfd, path) {
		return returnFailureInt()
	}
	fn, err := interpose.Next("futimesat")
	if err != nil {
		return returnFailureInt()
	}
	r, callErr := interpose.CallDirfdPathBufInt(fn, dirfd, path, times, 0)
	return forwardResultInt(r, callErr)
}

func doMknod(name, path string, mode C.mode_t, dev C.dev_t) C.int {
	if !admitPath(name, path) {
		return returnFailureInt()
	}
	fn, err := interpose.Next(name)
	if err != nil {
		return returnFailureInt()
	}
	r, callErr := interpose.CallPathModeDev(fn, path, uint32(mode), uint64(dev))
	return forwardResultInt(r, callErr)
}

//export mknod
func mknod(path0 *C.char, mode0 C.mode_t, dev0 C.dev_t) C.int {
	return doMknod("mknod", C.GoString(path0), mode0, dev0)
}

//export mknodat
func mknodat(dirfd0 C.int, path0 *C.char, mode0 C.mode_t, dev0 C.dev_t) C.int {
	dirfd, path := int(dirfd0), C.GoString(path0)
	if !admitAt("mknodat", dirfd, path) {
		return returnFailureInt()
	}
	fn, err := interpose.Next("mknodat")
	if err != nil {
		return returnFailureInt()
	}
	r, callErr := interpose.CallDirfdPathModeDev(fn, dirfd, path, uint32(mode0), uint64(dev0))
	return forwardResultInt(r, callErr)
}

//export mkfifo
func mkfifo(path0 *C.char, mode0 C.mode_t) C.int {
	path := C.GoString(path0)
	if !admitPath("mkfifo", path) {
		return returnFailureInt()
	}
	fn, err := interpose.Next("mkfifo")
	if err != nil {
		return returnFailureInt()
	}
	r, callErr := interpose.CallPathInt(fn, path, int(mode0))
	return forwardResultInt(r, callErr)
}

//export mkfifoat
func mkfifoat(dirfd0 C.int, path0 *C.char, mode0 C.mode_t) C.int {
	dirfd, path := int(dirfd0), C.GoString(path0)
	if !admitAt("mkfifoat", dirfd, path) {
		return returnFailureInt()
	}
	fn, err := interpose.Next("mkfifoat")
	if err != nil {
		return returnFailureInt()
	}
	r, callErr := interpose.CallDirfdPathInt(fn, dirfd, path, int(mode0))
	return forwardResultInt(r, callErr)
}
