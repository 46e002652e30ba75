package main

import "C"

import (
	"unsafe"

	"github.com/pathlock/pathlock/internal/interpose"
)

// ftw/nftw walk an entire subtree through a caller-supplied callback; the
// oracle only gates the walk's root here, not each visited entry.

//export ftw
func ftw(path0 *C.char, fn0 unsafe.Pointer, nopenfd0 C.int) C.int {
	path := C.GoString(path0)
	if !admitPath("ftw", path) {
		return returnFailureInt()
	}
	fn, err := interpose.Next("ftw")
	if err != nil {
		return returnFailureInt()
	}
	r, callErr := interpose.CallPathWalkfnInt(fn, path, fn0, int(nopenfd0))
	return forwardResultInt(r, callErr)
}

//export nftw
func nftw(path0 *C.char, fn0 unsafe.Pointer, nopenfd0, flags0 C.int) C.int {
	path := C.GoString(path0)
	if !admitPath("nftw", path) {
		return returnFailureInt()
	}
	fn, err := interpose.Next("nftw")
	if err != nil {
		return returnFailureInt()
	}
	r, callErr := interpose.CallPathWalkfnIntInt(fn, path, fn0, int(nopenfd0), int(flags0))
	return forwardResultInt(r, callErr)
}
