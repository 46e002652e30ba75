//go:build !linux

package main

import (
	"fmt"
	"os/exec"
)

// startShellWithPTY has no non-Linux implementation: pathlockfs itself
// depends on /proc/self/fd, RTLD_NEXT, and glibc's versioned *xstat
// family, so `pathlockctl shell` has nothing to wrap outside Linux either.
func startShellWithPTY(_ *exec.Cmd) (func(), error) {
	return nil, fmt.Errorf("pathlockctl shell: pathlock is Linux-only")
}
