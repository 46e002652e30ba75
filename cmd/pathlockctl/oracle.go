package main

import (
	"os"

	"github.com/pathlock/pathlock/internal/policy"
)

// newStandaloneOracle builds an Oracle the way pathlockctl needs it: policy.Config
// loaded from the environment/policy file exactly as pathlockfs would load it, but
// with the real filesystem's own symlink resolution and readlink, since
// pathlockctl is never itself LD_PRELOAD-wrapped and so has no forwarded-libc
// next-symbols to borrow.
func newStandaloneOracle() *policy.Oracle {
	cfg := policy.Get()
	return policy.NewOracle(cfg, policy.DefaultResolver, policy.UnixReadlink, os.Getwd)
}
