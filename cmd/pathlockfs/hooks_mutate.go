package main

/*
#include <sys/types.h>
*/
import "C"

import (
	"github.com/pathlock/pathlock/internal/interpose"
)

//export unlink
func unlink(path0 *C.char) C.int {
	path := C.GoString(path0)
	if !admitPath("unlink", path) {
		return returnFailureInt()
	}
	fn, err := interpose.Next("unlink")
	if err != nil {
		return returnFailureInt()
	}
	r, callErr := interpose.CallPath(fn, path)
	return forwardResultInt(r, callErr)
}

//export unlinkat
func unlinkat(dirfd0 C.int, path0 *C.char, flags0 C.int) C.int {
	dirfd, path := int(dirfd0), C.GoString(path0)
	if !admitAt("unlinkat", dirfd, path) {
		return returnFailureInt()
	}
	fn, err := interpose.Next("unlinkat")
	if err != nil {
		return returnFailureInt()
	}
	r, callErr := interpose.CallDirfdPathInt(fn, dirfd, path, int(flags0))
	return forwardResultInt(r, callErr)
}

// admitRename requires both the source and destination to clear the
// oracle: a rename that would move a file out from under a forbidden
// prefix is just as much a policy violation as one that would move a file
// into one.
func admitRename(oldPath, newPath string) bool {
	oAllowed := admitPath("rename:src", oldPath)
	nAllowed := admitPath("rename:dst", newPath)
	return oAllowed && nAllowed
}

//export rename
func rename(oldpath0, newpath0 *C.char) C.int {
	oldpath, newpath := C.GoString(oldpath0), C.GoString(newpath0)
	if !admitRename(oldpath, newpath) {
		return returnFailureInt()
	}
	fn, err := interpose.Next("rename")
	if err != nil {
		return returnFailureInt()
	}
	r, callErr := interpose.CallPathPath(fn, oldpath, newpath)
	return forwardResultInt(r, callErr)
}

func doRenameat(name string, olddirfd0 C.int, oldpath0 *C.char, newdirfd0 C.int, newpath0 *C.char, flags uint32) C.int {
	olddirfd, newdirfd := int(olddirfd0), int(newdirfd0)
	oldpath, newpath := C.GoString(oldpath0), C.GoString(newpath0)
	if !admitAt(name+":src", olddirfd, oldpath) || !admitAt(name+":dst", newdirfd, newpath) {
		return returnFailureInt()
	}
	fn, err := interpose.Next(name)
	if err != nil {
		return returnFailureInt()
	}
	r, callErr := interpose.CallRenameat2(fn, olddirfd, oldpath, newdirfd, newpath, flags)
	return forwardResultInt(r, callErr)
}

//export renameat
func renameat(olddirfd0 C.int, oldpath0 *C.char, newdirfd0 C.int, newpath0 *C.char) C.int {
	return doRenameat("renameat", olddirfd0, oldpath0, newdirfd0, newpath0, 0)
}

//export renameat2
func renameat2(olddirfd0 C.int, oldpath0 *C.char, newdirfd0 C.int, newpath0 *C.char, flags0 C.uint) C.int {
	return doRenameat("renameat2", olddirfd0, oldpath0, newdirfd0, newpath0, uint32(flags0))
}

//export link
func link(oldpath0, newpath0 *C.char) C.int {
	oldpath, newpath := C.GoString(oldpath0), C.GoString(newpath0)
	if !admitPath("link:src", oldpath) || !admitPath("link:dst", newpath) {
		return returnFailureInt()
	}
	fn, err := interpose.Next("link")
	if err != nil {
		return returnFailureInt()
	}
	r, callErr := interpose.CallPathPath(fn, oldpath, newpath)
	return forwardResultInt(r, callErr)
}

//export linkat
func linkat(olddirfd0 C.int, oldpath0 *C.char, newdirfd0 C.int, newpath0 *C.char, flags0 C.int) C.int {
	olddirfd, newdirfd := int(olddirfd0), int(newdirfd0)
	oldpath, newpath := C.GoString(oldpath0), C.GoString(newpath0)
	if !admitAt("linkat:src", olddirfd, oldpath) || !admitAt("linkat:dst", newdirfd, newpath) {
		return returnFailureInt()
	}
	fn, err := interpose.Next("linkat")
	if err != nil {
		return returnFailureInt()
	}
	r, callErr := interpose.CallRenameat2(fn, olddirfd, oldpath, newdirfd, newpath, uint32(flags0))
	return forwardResultInt(r, callErr)
}

//export chmod
func chmod(path0 *C.char, mode0 C.mode_t) C.int {
	path := C.GoString(path0)
	if !admitPath("chmod", path) {
		return returnFailureInt()
	}
	fn, err := interpose.Next("chmod")
	if err != nil {
		return returnFailureInt()
	}
	r, callErr := interpose.CallPathInt(fn, path, int(mode0))
	return forwardResultInt(r, callErr)
}

//export fchmodat
func fchmodat(dirfd0 C.int, path0 *C.char, mode0 C.mode_t, flags0 C.int) C.int {
	dirfd, path := int(dirfd0), C.GoString(path0)
	if !admitAt("fchmodat", dirfd, path) {
		return returnFailureInt()
	}
	fn, err := interpose.Next("fchmodat")
	if err != nil {
		return returnFailureInt()
	}
	r, callErr := interpose.CallDirfdPathIntInt(fn, dirfd, path, int(mode0), int(flags0))
	return forwardResultInt(r, callErr)
}

func doChown(name, path string, uid, gid C.int) C.int {
	if !admitPath(name, path) {
		return returnFailureInt()
	}
	fn, err := interpose.Next(name)
	if err != nil {
		return returnFailureInt()
	}
	r, callErr := interpose.CallPathLongLong(fn, path, int64(uid), int64(gid))
	return forwardResultInt(r, callErr)
}

//export chown
func chown(path0 *C.char, uid0, gid0 C.uint) C.int {
	return doChown("chown", C.GoString(path0), C.int(uid0), C.int(gid0))
}

//export lchown
func lchown(path0 *C.char, uid0, gid0 C.uint) C.int {
	return doChown("lchown", C.GoString(path0), C.int(uid0), C.int(gid0))
}

//export fchownat
func fchownat(dirfd0 C.int, path0 *C.char, uid0, gid0 C.uint, flags0 C.int) C.int {
	dirfd, path := int(dirfd0), C.GoString(path0)
	if !admitAt("fchownat", dirfd, path) {
		return returnFailureInt()
	}
	fn, err := interpose.Next("fchownat")
	if err != nil {
		return returnFailureInt()
	}
	r, callErr := interpose.CallDirfdPathLongLongInt(fn, dirfd, path, int64(uid0), int64(gid0), int(flags0))
	return forwardResultInt(r, callErr)
}

func doTruncate(name, path string, length C.long) C.int {
	if !admitPath(name, path) {
		return returnFailureInt()
	}
	fn, err := interpose.Next(name)
	if err != nil {
		return returnFailureInt()
	}
	r, callErr := interpose.CallPathLong(fn, path, int64(length))
	return forwardResultInt(r, callErr)
}

//export truncate
func truncate(path0 *C.char, length0 C.long) C.int {
	return doTruncate("truncate", C.GoString(path0), length0)
}

//export truncate64
func truncate64(path0 *C.char, length0 C.long) C.int {
	return doTruncate("truncate64", C.GoString(path0), length0)
}
