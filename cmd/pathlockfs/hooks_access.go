package main

import "C"

import (
	"github.com/pathlock/pathlock/internal/interpose"
)

func doAccess(name, path string, mode C.int) C.int {
	if !admitPath(name, path) {
		return returnFailureInt()
	}
	fn, err := interpose.Next(name)
	if err != nil {
		return returnFailureInt()
	}
	r, callErr := interpose.CallPathInt(fn, path, int(mode))
	return forwardResultInt(r, callErr)
}

//export access
func access(path0 *C.char, mode0 C.int) C.int {
	return doAccess("access", C.GoString(path0), mode0)
}

//export euidaccess
func euidaccess(path0 *C.char, mode0 C.int) C.int {
	return doAccess("euidaccess", C.GoString(path0), mode0)
}

//export eaccess
func eaccess(path0 *C.char, mode0 C.int) C.int {
	return doAccess("eaccess", C.GoString(path0), mode0)
}

//export faccessat
func faccessat(dirfd0 C.int, path0 *C.char, mode0, flags0 C.int) C.int {
	dirfd, path := int(dirfd0), C.GoString(path0)
	if !admitAt("faccessat", dirfd, path) {
		return returnFailureInt()
	}
	fn, err := interpose.Next("faccessat")
	if err != nil {
		return returnFailureInt()
	}
	r, callErr := interpose.CallDirfdPathIntInt(fn, dirfd, path, int(mode0), int(flags0))
	return forwardResultInt(r, callErr)
}
