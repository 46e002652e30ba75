package main

/*
#include <sys/types.h>
*/
import "C"

import (
	"unsafe"

	"github.com/pathlock/pathlock/internal/interpose"
)

func doGetxattr(name, path string, nameArg0 *C.char, value unsafe.Pointer, size C.size_t) C.long {
	if !admitPath(name, path) {
		return returnFailureLong()
	}
	fn, err := interpose.Next(name)
	if err != nil {
		return returnFailureLong()
	}
	r, callErr := interpose.CallLongPathStrBufSize(fn, path, C.GoString(nameArg0), value, int(size))
	return forwardResultLong(r, callErr)
}

//export getxattr
func getxattr(path0, nameArg0 *C.char, value unsafe.Pointer, size C.size_t) C.long {
	return doGetxattr("getxattr", C.GoString(path0), nameArg0, value, size)
}

//export lgetxattr
func lgetxattr(path0, nameArg0 *C.char, value unsafe.Pointer, size C.size_t) C.long {
	return doGetxattr("lgetxattr", C.GoString(path0), nameArg0, value, size)
}

func doSetxattr(name, path string, nameArg0 *C.char, value unsafe.Pointer, size C.size_t, flags C.int) C.int {
	if !admitPath(name, path) {
		return returnFailureInt()
	}
	fn, err := interpose.Next(name)
	if err != nil {
		return returnFailureInt()
	}
	r, callErr := interpose.CallPathStrBufSizeInt(fn, path, C.GoString(nameArg0), value, int(size), int(flags))
	return forwardResultInt(r, callErr)
}

//export setxattr
func setxattr(path0, nameArg0 *C.char, value unsafe.Pointer, size C.size_t, flags C.int) C.int {
	return doSetxattr("setxattr", C.GoString(path0), nameArg0, value, size, flags)
}

//export lsetxattr
func lsetxattr(path0, nameArg0 *C.char, value unsafe.Pointer, size C.size_t, flags C.int) C.int {
	return doSetxattr("lsetxattr", C.GoString(path0), nameArg0, value, size, flags)
}

func doRemovexattr(name, path string, nameArg0 *C.char) C.int {
	if !admitPath(name, path) {
		return returnFailureInt()
	}
	fn, err := interpose.Next(name)
	if err != nil {
		return returnFailureInt()
	}
	r, callErr := interpose.CallPathPath(fn, path, C.GoString(nameArg0))
	return forwardResultInt(r, callErr)
}

//export removexattr
func removexattr(path0, nameArg0 *C.char) C.int {
	return doRemovexattr("removexattr", C.GoString(path0), nameArg0)
}

//export lremovexattr
func lremovexattr(path0, nameArg0 *C.char) C.int {
	return doRemovexattr("lremovexattr", C.GoString(path0), nameArg0)
}

func doListxattr(name, path string, list unsafe.Pointer, size C.size_t) C.long {
	if !admitPath(name, path) {
		return returnFailureLong()
	}
	fn, err := interpose.Next(name)
	if err != nil {
		return returnFailureLong()
	}
	r, callErr := interpose.CallLongPathBufSize(fn, path, list, int(size))
	return forwardResultLong(r, callErr)
}

//export listxattr
func listxattr(path0 *C.char, list unsafe.Pointer, size C.size_t) C.long {
	return doListxattr("listxattr", C.GoString(path0), list, size)
}

//export llistxattr
func llistxattr(path0 *C.char, list unsafe.Pointer, size C.size_t) C.long {
	return doListxattr("llistxattr", C.GoString(path0), list, size)
}
