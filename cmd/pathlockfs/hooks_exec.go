package main

import "C"

import (
	"unsafe"

	"github.com/pathlock/pathlock/internal/interpose"
)

// execve/execveat deny by returning -1/EACCES exactly like every other
// hook; the shell or loader that issued the exec sees a normal permission
// failure and reports it however it normally would; the execution family
// gets no special casing beyond that.

//export execve
func execve(path0 *C.char, argv, envp **C.char) C.int {
	path := C.GoString(path0)
	if !admitPath("execve", path) {
		return returnFailureInt()
	}
	fn, err := interpose.Next("execve")
	if err != nil {
		return returnFailureInt()
	}
	r, callErr := interpose.CallPathArgvEnvp(fn, path, unsafe.Pointer(argv), unsafe.Pointer(envp))
	return forwardResultInt(r, callErr)
}

//export execveat
func execveat(dirfd0 C.int, path0 *C.char, argv, envp **C.char, flags0 C.int) C.int {
	dirfd, path := int(dirfd0), C.GoString(path0)
	if !admitAt("execveat", dirfd, path) {
		return returnFailureInt()
	}
	fn, err := interpose.Next("execveat")
	if err != nil {
		return returnFailureInt()
	}
	r, callErr := interpose.CallExecveat(fn, dirfd, path, unsafe.Pointer(argv), unsafe.Pointer(envp), int(flags0))
	return forwardResultInt(r, callErr)
}
