package main

/*
#include <sys/types.h>
*/
import "C"

import (
	"unsafe"

	"github.com/pathlock/pathlock/internal/interpose"
)

func doStatPathBuf(name, path string, buf unsafe.Pointer) C.int {
	if !admitPath(name, path) {
		return returnFailureInt()
	}
	fn, err := interpose.Next(name)
	if err != nil {
		return returnFailureInt()
	}
	r, callErr := interpose.CallPathBuf(fn, path, buf)
	return forwardResultInt(r, callErr)
}

//export stat
func stat(path0 *C.char, buf unsafe.Pointer) C.int {
	return doStatPathBuf("stat", C.GoString(path0), buf)
}

//export stat64
func stat64(path0 *C.char, buf unsafe.Pointer) C.int {
	return doStatPathBuf("stat64", C.GoString(path0), buf)
}

//export lstat
func lstat(path0 *C.char, buf unsafe.Pointer) C.int {
	return doStatPathBuf("lstat", C.GoString(path0), buf)
}

//export lstat64
func lstat64(path0 *C.char, buf unsafe.Pointer) C.int {
	return doStatPathBuf("lstat64", C.GoString(path0), buf)
}

func doXstat(name string, ver C.int, path0 *C.char, buf unsafe.Pointer) C.int {
	path := C.GoString(path0)
	if !admitPath(name, path) {
		return returnFailureInt()
	}
	fn, err := interpose.Next(name)
	if err != nil {
		return returnFailureInt()
	}
	r, callErr := interpose.CallVerPathBuf(fn, int(ver), path, buf)
	return forwardResultInt(r, callErr)
}

//export __xstat
func __xstat(ver C.int, path0 *C.char, buf unsafe.Pointer) C.int {
	return doXstat("__xstat", ver, path0, buf)
}

//export __xstat64
func __xstat64(ver C.int, path0 *C.char, buf unsafe.Pointer) C.int {
	return doXstat("__xstat64", ver, path0, buf)
}

//export __lxstat
func __lxstat(ver C.int, path0 *C.char, buf unsafe.Pointer) C.int {
	return doXstat("__lxstat", ver, path0, buf)
}

//export __lxstat64
func __lxstat64(ver C.int, path0 *C.char, buf unsafe.Pointer) C.int {
	return doXstat("__lxstat64", ver, path0, buf)
}

func doFstatat(name string, dirfd0 C.int, path0 *C.char, buf unsafe.Pointer, flags0 C.int) C.int {
	dirfd, path := int(dirfd0), C.GoString(path0)
	if !admitAt(name, dirfd, path) {
		return returnFailureInt()
	}
	fn, err := interpose.Next(name)
	if err != nil {
		return returnFailureInt()
	}
	r, callErr := interpose.CallDirfdPathBufInt(fn, dirfd, path, buf, int(flags0))
	return forwardResultInt(r, callErr)
}

//export fstatat
func fstatat(dirfd0 C.int, path0 *C.char, buf unsafe.Pointer, flags0 C.int) C.int {
	return doFstatat("fstatat", dirfd0, path0, buf, flags0)
}

//export fstatat64
func fstatat64(dirfd0 C.int, path0 *C.char, buf unsafe.Pointer, flags0 C.int) C.int {
	return doFstatat("fstatat64", dirfd0, path0, buf, flags0)
}

//export __fxstatat
func __fxstatat(ver, dirfd0 C.int, path0 *C.char, buf unsafe.Pointer, flags0 C.int) C.int {
	dirfd, path := int(dirfd0), C.GoString(path0)
	if !admitAt("__fxstatat", dirfd, path) {
		return returnFailureInt()
	}
	fn, err := interpose.Next("__fxstatat")
	if err != nil {
		return returnFailureInt()
	}
	r, callErr := interpose.CallVerDirfdPathBufInt(fn, int(ver), dirfd, path, buf, int(flags0))
	return forwardResultInt(r, callErr)
}

//export __fxstatat64
func __fxstatat64(ver, dirfd0 C.int, path0 *C.char, buf unsafe.Pointer, flags0 C.int) C.int {
	dirfd, path := int(dirfd0), C.GoString(path0)
	if !admitAt("__fxstatat64", dirfd, path) {
		return returnFailureInt()
	}
	fn, err := interpose.Next("__fxstatat64")
	if err != nil {
		return returnFailureInt()
	}
	r, callErr := interpose.CallVerDirfdPathBufInt(fn, int(ver), dirfd, path, buf, int(flags0))
	return forwardResultInt(r, callErr)
}

//export statx
func statx(dirfd0 C.int, path0 *C.char, flags0 C.int, mask0 C.uint, buf unsafe.Pointer) C.int {
	dirfd, path := int(dirfd0), C.GoString(path0)
	if !admitAt("statx", dirfd, path) {
		return returnFailureInt()
	}
	fn, err := interpose.Next("statx")
	if err != nil {
		return returnFailureInt()
	}
	r, callErr := interpose.CallStatx(fn, dirfd, path, int(flags0), uint32(mask0), buf)
	return forwardResultInt(r, callErr)
}
