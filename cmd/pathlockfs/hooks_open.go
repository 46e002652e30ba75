package main

/*
#include <sys/types.h>
*/
import "C"

import (
	"unsafe"

	"github.com/pathlock/pathlock/internal/interpose"
)

// needsMode reports whether flags carries O_CREAT or O_TMPFILE, the two
// cases where open's variadic mode_t argument is meaningful.
// When neither is set, the real call site may not have passed a third
// argument at all, so the mode parameter our exported signature always
// declares must not be forwarded.
//
// The flag values come from helpers.go rather than <fcntl.h> here: a
// preamble in a file with //export directives is copied into the generated
// export translation unit, where fcntl.h's own declaration of open would
// collide with the exported symbol.
func needsMode(flags C.int) bool {
	return flags&oCreat != 0 || flags&oTmpfile == oTmpfile
}

func doOpen(name string, path0 *C.char, flags0, mode0 C.int) C.int {
	path := C.GoString(path0)
	if !admitPath(name, path) {
		return returnFailureInt()
	}
	fn, err := interpose.Next(name)
	if err != nil {
		return returnFailureInt()
	}
	var r int
	var callErr error
	if needsMode(flags0) {
		r, callErr = interpose.CallPathIntInt(fn, path, int(flags0), int(mode0))
	} else {
		r, callErr = interpose.CallPathInt(fn, path, int(flags0))
	}
	return forwardResultInt(r, callErr)
}

//export open
func open(path0 *C.char, flags0 C.int, mode0 C.mode_t) C.int {
	return doOpen("open", path0, flags0, C.int(mode0))
}

//export open64
func open64(path0 *C.char, flags0 C.int, mode0 C.mode_t) C.int {
	return doOpen("open64", path0, flags0, C.int(mode0))
}

//export creat
func creat(path0 *C.char, mode0 C.mode_t) C.int {
	path := C.GoString(path0)
	if !admitPath("creat", path) {
		return returnFailureInt()
	}
	fn, err := interpose.Next("creat")
	if err != nil {
		return returnFailureInt()
	}
	r, callErr := interpose.CallPathInt(fn, path, int(mode0))
	return forwardResultInt(r, callErr)
}

//export creat64
func creat64(path0 *C.char, mode0 C.mode_t) C.int {
	path := C.GoString(path0)
	if !admitPath("creat64", path) {
		return returnFailureInt()
	}
	fn, err := interpose.Next("creat64")
	if err != nil {
		return returnFailureInt()
	}
	r, callErr := interpose.CallPathInt(fn, path, int(mode0))
	return forwardResultInt(r, callErr)
}

func doOpenat(name string, dirfd0 C.int, path0 *C.char, flags0, mode0 C.int) C.int {
	path := C.GoString(path0)
	dirfd := int(dirfd0)
	if !admitAt(name, dirfd, path) {
		return returnFailureInt()
	}
	fn, err := interpose.Next(name)
	if err != nil {
		return returnFailureInt()
	}
	var r int
	var callErr error
	if needsMode(flags0) {
		r, callErr = interpose.CallDirfdPathIntInt(fn, dirfd, path, int(flags0), int(mode0))
	} else {
		r, callErr = interpose.CallDirfdPathInt(fn, dirfd, path, int(flags0))
	}
	return forwardResultInt(r, callErr)
}

//export openat
func openat(dirfd0 C.int, path0 *C.char, flags0 C.int, mode0 C.mode_t) C.int {
	return doOpenat("openat", dirfd0, path0, flags0, C.int(mode0))
}

//export openat64
func openat64(dirfd0 C.int, path0 *C.char, flags0 C.int, mode0 C.mode_t) C.int {
	return doOpenat("openat64", dirfd0, path0, flags0, C.int(mode0))
}

func doFopen(name string, path0, mode0 *C.char) unsafe.Pointer {
	path, mode := C.GoString(path0), C.GoString(mode0)
	if !admitPath(name, path) {
		return returnFailurePtr()
	}
	fn, err := interpose.Next(name)
	if err != nil {
		return returnFailurePtr()
	}
	r, callErr := interpose.CallPtrPathStr(fn, path, mode)
	return forwardResultPtr(r, callErr)
}

//export fopen
func fopen(path0, mode0 *C.char) unsafe.Pointer {
	return doFopen("fopen", path0, mode0)
}

//export fopen64
func fopen64(path0, mode0 *C.char) unsafe.Pointer {
	return doFopen("fopen64", path0, mode0)
}

func doFreopen(name string, path0, mode0 *C.char, stream unsafe.Pointer) unsafe.Pointer {
	path, mode := C.GoString(path0), C.GoString(mode0)
	if !admitPath(name, path) {
		return returnFailurePtr()
	}
	fn, err := interpose.Next(name)
	if err != nil {
		return returnFailurePtr()
	}
	r, callErr := interpose.CallPtrPathStrPtr(fn, path, mode, stream)
	return forwardResultPtr(r, callErr)
}

//export freopen
func freopen(path0, mode0 *C.char, stream unsafe.Pointer) unsafe.Pointer {
	return doFreopen("freopen", path0, mode0, stream)
}

//export freopen64
func freopen64(path0, mode0 *C.char, stream unsafe.Pointer) unsafe.Pointer {
	return doFreopen("freopen64", path0, mode0, stream)
}
