package interpose

/*
#include <stdint.h>
#include <stddef.h>
#include <stdlib.h>
#include <sys/types.h>

// Every trampoline below exists for exactly one reason: cgo cannot cast an
// unsafe.Pointer to a C function pointer type and call it from Go, so each
// argument shape the dispatch layer's forwarded libc calls need gets one
// tiny, mechanical "cast fn and call it" wrapper here. Grouping by shape
// (not by libc function name) is what keeps this file from having ~60
// near-duplicate bodies: a family of siblings that differ only in name
// (stat/lstat, getxattr/lgetxattr, chown/lchown, ...) shares one trampoline.

typedef int (*fn_path_t)(const char *);
static int pl_call_path(void *fn, const char *a) {
	return ((fn_path_t)fn)(a);
}

typedef int (*fn_path_path_t)(const char *, const char *);
static int pl_call_path_path(void *fn, const char *a, const char *b) {
	return ((fn_path_path_t)fn)(a, b);
}

typedef int (*fn_path_int_t)(const char *, int);
static int pl_call_path_int(void *fn, const char *a, int i) {
	return ((fn_path_int_t)fn)(a, i);
}

typedef int (*fn_path_int_int_t)(const char *, int, int);
static int pl_call_path_int_int(void *fn, const char *a, int i, int j) {
	return ((fn_path_int_int_t)fn)(a, i, j);
}

typedef int (*fn_dirfd_path_i_t)(int, const char *, int);
static int pl_call_dirfd_path_int(void *fn, int dirfd, const char *a, int i) {
	return ((fn_dirfd_path_i_t)fn)(dirfd, a, i);
}

typedef int (*fn_dirfd_path_i_i_t)(int, const char *, int, int);
static int pl_call_dirfd_path_int_int(void *fn, int dirfd, const char *a, int i, int j) {
	return ((fn_dirfd_path_i_i_t)fn)(dirfd, a, i, j);
}

// mknod's device argument is a full dev_t (64-bit on Linux); funneling it
// through the int-int shape would truncate any encoded device whose major
// number needs the high bits, so the node-creation calls get their own
// exactly-typed trampolines.
typedef int (*fn_path_mode_dev_t)(const char *, mode_t, dev_t);
static int pl_call_path_mode_dev(void *fn, const char *a, mode_t mode, dev_t dev) {
	return ((fn_path_mode_dev_t)fn)(a, mode, dev);
}

typedef int (*fn_dirfd_path_mode_dev_t)(int, const char *, mode_t, dev_t);
static int pl_call_dirfd_path_mode_dev(void *fn, int dirfd, const char *a, mode_t mode, dev_t dev) {
	return ((fn_dirfd_path_mode_dev_t)fn)(dirfd, a, mode, dev);
}

typedef int (*fn_path_l_t)(const char *, long);
static int pl_call_path_long(void *fn, const char *a, long i) {
	return ((fn_path_l_t)fn)(a, i);
}

typedef int (*fn_path_l_l_t)(const char *, long, long);
static int pl_call_path_long_long(void *fn, const char *a, long i, long j) {
	return ((fn_path_l_l_t)fn)(a, i, j);
}

typedef int (*fn_dirfd_path_l_l_i_t)(int, const char *, long, long, int);
static int pl_call_dirfd_path_long_long_int(void *fn, int dirfd, const char *a, long i, long j, int k) {
	return ((fn_dirfd_path_l_l_i_t)fn)(dirfd, a, i, j, k);
}

typedef int (*fn_path_buf_t)(const char *, void *);
static int pl_call_path_buf(void *fn, const char *a, void *buf) {
	return ((fn_path_buf_t)fn)(a, buf);
}

typedef int (*fn_ver_path_buf_t)(int, const char *, void *);
static int pl_call_ver_path_buf(void *fn, int ver, const char *a, void *buf) {
	return ((fn_ver_path_buf_t)fn)(ver, a, buf);
}

typedef int (*fn_dirfd_path_buf_i_t)(int, const char *, void *, int);
static int pl_call_dirfd_path_buf_int(void *fn, int dirfd, const char *a, void *buf, int flags) {
	return ((fn_dirfd_path_buf_i_t)fn)(dirfd, a, buf, flags);
}

typedef int (*fn_ver_dirfd_path_buf_i_t)(int, int, const char *, void *, int);
static int pl_call_ver_dirfd_path_buf_int(void *fn, int ver, int dirfd, const char *a, void *buf, int flags) {
	return ((fn_ver_dirfd_path_buf_i_t)fn)(ver, dirfd, a, buf, flags);
}

typedef int (*fn_statx_t)(int, const char *, int, unsigned int, void *);
static int pl_call_statx(void *fn, int dirfd, const char *a, int flags, unsigned int mask, void *buf) {
	return ((fn_statx_t)fn)(dirfd, a, flags, mask, buf);
}

static void *pl_call_ptr_path(void *fn, const char *a) {
	return ((void *(*)(const char *))fn)(a);
}

static void *pl_call_ptr_path_str(void *fn, const char *a, const char *mode) {
	return ((void *(*)(const char *, const char *))fn)(a, mode);
}

static void *pl_call_ptr_path_str_ptr(void *fn, const char *a, const char *mode, void *stream) {
	return ((void *(*)(const char *, const char *, void *))fn)(a, mode, stream);
}

static void *pl_call_ptr_path_buf(void *fn, const char *a, void *buf) {
	return ((void *(*)(const char *, void *))fn)(a, buf);
}

typedef long (*fn_path_buf_sz_t)(const char *, void *, size_t);
static long pl_call_long_path_buf_size(void *fn, const char *a, void *buf, size_t size) {
	return ((fn_path_buf_sz_t)fn)(a, buf, size);
}

typedef long (*fn_dirfd_path_buf_sz_t)(int, const char *, void *, size_t);
static long pl_call_long_dirfd_path_buf_size(void *fn, int dirfd, const char *a, void *buf, size_t size) {
	return ((fn_dirfd_path_buf_sz_t)fn)(dirfd, a, buf, size);
}

typedef long (*fn_path_str_buf_sz_t)(const char *, const char *, void *, size_t);
static long pl_call_long_path_str_buf_size(void *fn, const char *a, const char *name, void *buf, size_t size) {
	return ((fn_path_str_buf_sz_t)fn)(a, name, buf, size);
}

typedef int (*fn_path_str_buf_sz_i_t)(const char *, const char *, const void *, size_t, int);
static int pl_call_path_str_buf_size_int(void *fn, const char *a, const char *name, void *buf, size_t size, int flags) {
	return ((fn_path_str_buf_sz_i_t)fn)(a, name, buf, size, flags);
}

typedef int (*fn_symlinkat_t)(const char *, int, const char *);
static int pl_call_symlinkat(void *fn, const char *target, int dirfd, const char *linkpath) {
	return ((fn_symlinkat_t)fn)(target, dirfd, linkpath);
}

typedef int (*fn_path_argv_envp_t)(const char *, char *const *, char *const *);
static int pl_call_path_argv_envp(void *fn, const char *a, void *argv, void *envp) {
	return ((fn_path_argv_envp_t)fn)(a, (char *const *)argv, (char *const *)envp);
}

typedef int (*fn_execveat_t)(int, const char *, char *const *, char *const *, int);
static int pl_call_execveat(void *fn, int dirfd, const char *a, void *argv, void *envp, int flags) {
	return ((fn_execveat_t)fn)(dirfd, a, (char *const *)argv, (char *const *)envp, flags);
}

typedef int (*fn_path_walkfn_i_t)(const char *, void *, int);
static int pl_call_path_walkfn_int(void *fn, const char *a, void *walkfn, int nopenfd) {
	return ((fn_path_walkfn_i_t)fn)(a, walkfn, nopenfd);
}

typedef int (*fn_path_walkfn_i_i_t)(const char *, void *, int, int);
static int pl_call_path_walkfn_int_int(void *fn, const char *a, void *walkfn, int nopenfd, int flags) {
	return ((fn_path_walkfn_i_i_t)fn)(a, walkfn, nopenfd, flags);
}

typedef int (*fn_renameat2_t)(int, const char *, int, const char *, unsigned int);
static int pl_call_renameat2(void *fn, int olddirfd, const char *oldpath, int newdirfd, const char *newpath, unsigned int flags) {
	return ((fn_renameat2_t)fn)(olddirfd, oldpath, newdirfd, newpath, flags);
}
*/
import "C"

import (
	"syscall"
	"unsafe"
)

// Each Go wrapper below takes the already-resolved next-symbol address
// (from Next) plus the call's real arguments, invokes the matching C
// trampoline, and returns the libc return value together with the errno
// cgo captured for us — calling any C function through `C.xxx(...)` with
// two return values yields the C errno as the second, which is what lets
// the hooks forward to the real implementation and pass its failure
// straight through unchanged.

func CallPath(fn unsafe.Pointer, path string) (int, error) {
	cpath := C.CString(path)
	defer C.free(unsafe.Pointer(cpath))
	r, errno := C.pl_call_path(fn, cpath)
	return int(r), errnoOrNil(int64(r), errno)
}

func CallPathPath(fn unsafe.Pointer, a, b string) (int, error) {
	ca, cb := C.CString(a), C.CString(b)
	defer C.free(unsafe.Pointer(ca))
	defer C.free(unsafe.Pointer(cb))
	r, errno := C.pl_call_path_path(fn, ca, cb)
	return int(r), errnoOrNil(int64(r), errno)
}

func CallPathInt(fn unsafe.Pointer, path string, i int) (int, error) {
	cpath := C.CString(path)
	defer C.free(unsafe.Pointer(cpath))
	r, errno := C.pl_call_path_int(fn, cpath, C.int(i))
	return int(r), errnoOrNil(int64(r), errno)
}

func CallPathIntInt(fn unsafe.Pointer, path string, i, j int) (int, error) {
	cpath := C.CString(path)
	defer C.free(unsafe.Pointer(cpath))
	r, errno := C.pl_call_path_int_int(fn, cpath, C.int(i), C.int(j))
	return int(r), errnoOrNil(int64(r), errno)
}

func CallDirfdPathInt(fn unsafe.Pointer, dirfd int, path string, i int) (int, error) {
	cpath := C.CString(path)
	defer C.free(unsafe.Pointer(cpath))
	r, errno := C.pl_call_dirfd_path_int(fn, C.int(dirfd), cpath, C.int(i))
	return int(r), errnoOrNil(int64(r), errno)
}

func CallDirfdPathIntInt(fn unsafe.Pointer, dirfd int, path string, i, j int) (int, error) {
	cpath := C.CString(path)
	defer C.free(unsafe.Pointer(cpath))
	r, errno := C.pl_call_dirfd_path_int_int(fn, C.int(dirfd), cpath, C.int(i), C.int(j))
	return int(r), errnoOrNil(int64(r), errno)
}

func CallPathModeDev(fn unsafe.Pointer, path string, mode uint32, dev uint64) (int, error) {
	cpath := C.CString(path)
	defer C.free(unsafe.Pointer(cpath))
	r, errno := C.pl_call_path_mode_dev(fn, cpath, C.mode_t(mode), C.dev_t(dev))
	return int(r), errnoOrNil(int64(r), errno)
}

func CallDirfdPathModeDev(fn unsafe.Pointer, dirfd int, path string, mode uint32, dev uint64) (int, error) {
	cpath := C.CString(path)
	defer C.free(unsafe.Pointer(cpath))
	r, errno := C.pl_call_dirfd_path_mode_dev(fn, C.int(dirfd), cpath, C.mode_t(mode), C.dev_t(dev))
	return int(r), errnoOrNil(int64(r), errno)
}

func CallPathLong(fn unsafe.Pointer, path string, i int64) (int, error) {
	cpath := C.CString(path)
	defer C.free(unsafe.Pointer(cpath))
	r, errno := C.pl_call_path_long(fn, cpath, C.long(i))
	return int(r), errnoOrNil(int64(r), errno)
}

func CallPathLongLong(fn unsafe.Pointer, path string, i, j int64) (int, error) {
	cpath := C.CString(path)
	defer C.free(unsafe.Pointer(cpath))
	r, errno := C.pl_call_path_long_long(fn, cpath, C.long(i), C.long(j))
	return int(r), errnoOrNil(int64(r), errno)
}

func CallDirfdPathLongLongInt(fn unsafe.Pointer, dirfd int, path string, i, j int64, k int) (int, error) {
	cpath := C.CString(path)
	defer C.free(unsafe.Pointer(cpath))
	r, errno := C.pl_call_dirfd_path_long_long_int(fn, C.int(dirfd), cpath, C.long(i), C.long(j), C.int(k))
	return int(r), errnoOrNil(int64(r), errno)
}

func CallPathBuf(fn unsafe.Pointer, path string, buf unsafe.Pointer) (int, error) {
	cpath := C.CString(path)
	defer C.free(unsafe.Pointer(cpath))
	r, errno := C.pl_call_path_buf(fn, cpath, buf)
	return int(r), errnoOrNil(int64(r), errno)
}

func CallVerPathBuf(fn unsafe.Pointer, ver int, path string, buf unsafe.Pointer) (int, error) {
	cpath := C.CString(path)
	defer C.free(unsafe.Pointer(cpath))
	r, errno := C.pl_call_ver_path_buf(fn, C.int(ver), cpath, buf)
	return int(r), errnoOrNil(int64(r), errno)
}

func CallDirfdPathBufInt(fn unsafe.Pointer, dirfd int, path string, buf unsafe.Pointer, flags int) (int, error) {
	cpath := C.CString(path)
	defer C.free(unsafe.Pointer(cpath))
	r, errno := C.pl_call_dirfd_path_buf_int(fn, C.int(dirfd), cpath, buf, C.int(flags))
	return int(r), errnoOrNil(int64(r), errno)
}

func CallVerDirfdPathBufInt(fn unsafe.Pointer, ver, dirfd int, path string, buf unsafe.Pointer, flags int) (int, error) {
	cpath := C.CString(path)
	defer C.free(unsafe.Pointer(cpath))
	r, errno := C.pl_call_ver_dirfd_path_buf_int(fn, C.int(ver), C.int(dirfd), cpath, buf, C.int(flags))
	return int(r), errnoOrNil(int64(r), errno)
}

func CallStatx(fn unsafe.Pointer, dirfd int, path string, flags int, mask uint32, buf unsafe.Pointer) (int, error) {
	cpath := C.CString(path)
	defer C.free(unsafe.Pointer(cpath))
	r, errno := C.pl_call_statx(fn, C.int(dirfd), cpath, C.int(flags), C.uint(mask), buf)
	return int(r), errnoOrNil(int64(r), errno)
}

func CallPtrPath(fn unsafe.Pointer, path string) (unsafe.Pointer, error) {
	cpath := C.CString(path)
	defer C.free(unsafe.Pointer(cpath))
	r, errno := C.pl_call_ptr_path(fn, cpath)
	return r, ptrErrnoOrNil(r, errno)
}

func CallPtrPathStr(fn unsafe.Pointer, path, mode string) (unsafe.Pointer, error) {
	cpath, cmode := C.CString(path), C.CString(mode)
	defer C.free(unsafe.Pointer(cpath))
	defer C.free(unsafe.Pointer(cmode))
	r, errno := C.pl_call_ptr_path_str(fn, cpath, cmode)
	return r, ptrErrnoOrNil(r, errno)
}

func CallPtrPathStrPtr(fn unsafe.Pointer, path, mode string, stream unsafe.Pointer) (unsafe.Pointer, error) {
	cpath, cmode := C.CString(path), C.CString(mode)
	defer C.free(unsafe.Pointer(cpath))
	defer C.free(unsafe.Pointer(cmode))
	r, errno := C.pl_call_ptr_path_str_ptr(fn, cpath, cmode, stream)
	return r, ptrErrnoOrNil(r, errno)
}

func CallPtrPathBuf(fn unsafe.Pointer, path string, buf unsafe.Pointer) (unsafe.Pointer, error) {
	cpath := C.CString(path)
	defer C.free(unsafe.Pointer(cpath))
	r, errno := C.pl_call_ptr_path_buf(fn, cpath, buf)
	return r, ptrErrnoOrNil(r, errno)
}

func CallLongPathBufSize(fn unsafe.Pointer, path string, buf unsafe.Pointer, size int) (int64, error) {
	cpath := C.CString(path)
	defer C.free(unsafe.Pointer(cpath))
	r, errno := C.pl_call_long_path_buf_size(fn, cpath, buf, C.size_t(size))
	return int64(r), errnoOrNil(int64(r), errno)
}

func CallLongDirfdPathBufSize(fn unsafe.Pointer, dirfd int, path string, buf unsafe.Pointer, size int) (int64, error) {
	cpath := C.CString(path)
	defer C.free(unsafe.Pointer(cpath))
	r, errno := C.pl_call_long_dirfd_path_buf_size(fn, C.int(dirfd), cpath, buf, C.size_t(size))
	return int64(r), errnoOrNil(int64(r), errno)
}

func CallLongPathStrBufSize(fn unsafe.Pointer, path, name string, buf unsafe.Pointer, size int) (int64, error) {
	cpath, cname := C.CString(path), C.CString(name)
	defer C.free(unsafe.Pointer(cpath))
	defer C.free(unsafe.Pointer(cname))
	r, errno := C.pl_call_long_path_str_buf_size(fn, cpath, cname, buf, C.size_t(size))
	return int64(r), errnoOrNil(int64(r), errno)
}

func CallPathStrBufSizeInt(fn unsafe.Pointer, path, name string, buf unsafe.Pointer, size, flags int) (int, error) {
	cpath, cname := C.CString(path), C.CString(name)
	defer C.free(unsafe.Pointer(cpath))
	defer C.free(unsafe.Pointer(cname))
	r, errno := C.pl_call_path_str_buf_size_int(fn, cpath, cname, buf, C.size_t(size), C.int(flags))
	return int(r), errnoOrNil(int64(r), errno)
}

func CallSymlinkat(fn unsafe.Pointer, target string, dirfd int, linkpath string) (int, error) {
	ctarget, clink := C.CString(target), C.CString(linkpath)
	defer C.free(unsafe.Pointer(ctarget))
	defer C.free(unsafe.Pointer(clink))
	r, errno := C.pl_call_symlinkat(fn, ctarget, C.int(dirfd), clink)
	return int(r), errnoOrNil(int64(r), errno)
}

// argv and envp travel as unsafe.Pointer, not a typed C pointer: cgo types
// are scoped to the declaring package, so cmd/pathlockfs's own **C.char is
// a different Go type from this package's and could not cross the call
// boundary. The trampoline casts back to char *const *.
func CallPathArgvEnvp(fn unsafe.Pointer, path string, argv, envp unsafe.Pointer) (int, error) {
	cpath := C.CString(path)
	defer C.free(unsafe.Pointer(cpath))
	r, errno := C.pl_call_path_argv_envp(fn, cpath, argv, envp)
	return int(r), errnoOrNil(int64(r), errno)
}

func CallExecveat(fn unsafe.Pointer, dirfd int, path string, argv, envp unsafe.Pointer, flags int) (int, error) {
	cpath := C.CString(path)
	defer C.free(unsafe.Pointer(cpath))
	r, errno := C.pl_call_execveat(fn, C.int(dirfd), cpath, argv, envp, C.int(flags))
	return int(r), errnoOrNil(int64(r), errno)
}

func CallPathWalkfnInt(fn unsafe.Pointer, path string, walkfn unsafe.Pointer, nopenfd int) (int, error) {
	cpath := C.CString(path)
	defer C.free(unsafe.Pointer(cpath))
	r, errno := C.pl_call_path_walkfn_int(fn, cpath, walkfn, C.int(nopenfd))
	return int(r), errnoOrNil(int64(r), errno)
}

func CallPathWalkfnIntInt(fn unsafe.Pointer, path string, walkfn unsafe.Pointer, nopenfd, flags int) (int, error) {
	cpath := C.CString(path)
	defer C.free(unsafe.Pointer(cpath))
	r, errno := C.pl_call_path_walkfn_int_int(fn, cpath, walkfn, C.int(nopenfd), C.int(flags))
	return int(r), errnoOrNil(int64(r), errno)
}

func CallRenameat2(fn unsafe.Pointer, olddirfd int, oldpath string, newdirfd int, newpath string, flags uint32) (int, error) {
	coldpath, cnewpath := C.CString(oldpath), C.CString(newpath)
	defer C.free(unsafe.Pointer(coldpath))
	defer C.free(unsafe.Pointer(cnewpath))
	r, errno := C.pl_call_renameat2(fn, C.int(olddirfd), coldpath, C.int(newdirfd), cnewpath, C.uint(flags))
	return int(r), errnoOrNil(int64(r), errno)
}

// errnoOrNil suppresses the errno cgo always returns alongside a
// successful (>= 0) libc call — the forwarded result is only an error at
// all when the call's own documented failure sentinel (-1) was returned.
// cgo hands back a nil error when the C side left errno at zero, so a
// failed call with no errno gets EIO rather than a nil error.
func errnoOrNil(r int64, errno error) error {
	if r < 0 {
		if errno == nil {
			return syscall.EIO
		}
		return errno
	}
	return nil
}

func ptrErrnoOrNil(r unsafe.Pointer, errno error) error {
	if r == nil {
		if errno == nil {
			return syscall.EIO
		}
		return errno
	}
	return nil
}
