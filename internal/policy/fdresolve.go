package policy

import (
	"fmt"
	"strconv"

	"golang.org/x/sys/unix"
)

// ReadlinkFunc reads the target of a symlink. cmd/pathlockfs supplies the
// original, non-interposed readlink (via the cached function-pointer
// table) so that resolving a real (non-AT_FDCWD) dirfd never depends on our
// own readlink hook — if /proc itself were ever covered by a forbidden
// prefix, recursing through the interposed path here would deadlock or,
// worse, silently bypass the check it exists to perform.
type ReadlinkFunc func(path string) (string, error)

// UnixReadlink is the default ReadlinkFunc, backed directly by the
// golang.org/x/sys/unix raw syscall. Raw syscalls never pass through libc's
// symbol table, so this path carries no reentrancy hazard to begin with; it
// is supplied as ReadlinkFunc anyway so callers can substitute a fake in
// tests.
func UnixReadlink(path string) (string, error) {
	buf := make([]byte, 4096)
	n, err := unix.Readlink(path, buf)
	if err != nil {
		return "", err
	}
	return string(buf[:n]), nil
}

// AtFDCwd mirrors the libc AT_FDCWD sentinel: a dirfd value meaning "resolve
// relative to the calling thread's current working directory" rather than a
// real descriptor.
const AtFDCwd = -100

// ResolveDirFD turns a directory file descriptor (as passed to an `*at`
// family call such as openat/unlinkat/mkdirat) into an absolute path, by
// reading the kernel-maintained symlink at /proc/self/fd/<n>. AT_FDCWD
// resolves to whatever the supplied cwd function returns, matching the
// kernel's own interpretation.
func ResolveDirFD(readlink ReadlinkFunc, dirfd int, cwd func() (string, error)) (string, error) {
	if dirfd == AtFDCwd {
		return cwd()
	}
	if dirfd < 0 {
		return "", fmt.Errorf("pathlock: invalid directory file descriptor %d", dirfd)
	}
	if readlink == nil {
		readlink = UnixReadlink
	}
	link := "/proc/self/fd/" + strconv.Itoa(dirfd)
	target, err := readlink(link)
	if err != nil {
		return "", fmt.Errorf("pathlock: resolve dirfd %d: %w", dirfd, err)
	}
	return target, nil
}

// JoinAt resolves a (dirfd, path) pair as the kernel does: an absolute path
// argument ignores dirfd entirely; a relative one is joined against the
// directory dirfd names.
func JoinAt(readlink ReadlinkFunc, dirfd int, path string, cwd func() (string, error)) (string, error) {
	if len(path) > 0 && path[0] == '/' {
		return path, nil
	}
	dir, err := ResolveDirFD(readlink, dirfd, cwd)
	if err != nil {
		return "", err
	}
	if dir == "" {
		return "/" + path, nil
	}
	if dir[len(dir)-1] == '/' {
		return dir + path, nil
	}
	return dir + "/" + path, nil
}
