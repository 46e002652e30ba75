package main

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pathlock/pathlock/internal/policy"
)

// defaultPreloadLib is where `go build -buildmode=c-shared -o <this>
// ./cmd/pathlockfs` is documented to place the shim; --lib overrides it
// for any other build layout.
const defaultPreloadLib = "./pathlockfs.so"

func newShellCmd() *cobra.Command {
	var lib string
	var userShell bool
	var login bool

	cmd := &cobra.Command{
		Use:   "shell [--] [cmd...]",
		Short: "Run a command (default: bash) with the pathlockfs shim preloaded",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mode := ShellModeDefault
			if userShell {
				mode = ShellModeUser
			}
			return runShell(lib, mode, login, args)
		},
	}

	cmd.Flags().StringVar(&lib, "lib", defaultPreloadLib, "path to the built pathlockfs.so shared object")
	cmd.Flags().BoolVar(&userShell, "user-shell", false, "launch $SHELL instead of bash when no command is given")
	cmd.Flags().BoolVar(&login, "login", false, "resolve the shell's -lc flag instead of -c (the shell is started with no arguments, so the launched command is unchanged)")
	return cmd
}

func runShell(lib string, mode ShellMode, login bool, args []string) error {
	if _, err := os.Stat(lib); err != nil {
		return fmt.Errorf("pathlockfs shared object not found at %s (build it with "+
			"`go build -buildmode=c-shared -o %s ./cmd/pathlockfs`, or pass --lib): %w", lib, lib, err)
	}

	name, cmdArgs, err := shellCommand(mode, login, args)
	if err != nil {
		return err
	}
	// Std streams stay nil so pty.Start wires the child to its controlling
	// tty; the relay goroutines bridge the real stdin/stdout to the ptmx.
	execCmd := exec.Command(name, cmdArgs...)
	execCmd.Env = append(os.Environ(), preloadEnv(lib)...)

	stop, err := startShellWithPTY(execCmd)
	if err != nil {
		return fmt.Errorf("start pty: %w", err)
	}
	defer stop()

	return execCmd.Wait()
}

// shellCommand picks the program to exec. An explicit argv always wins;
// otherwise the interpreter comes from ResolveExecutionShell so a stray or
// unsupported $SHELL fails loudly instead of being exec'd. The -c/-lc flag
// ResolveExecutionShell returns is not passed on: the shell is started
// with no arguments.
func shellCommand(mode ShellMode, login bool, args []string) (string, []string, error) {
	if len(args) > 0 {
		return args[0], args[1:], nil
	}
	shell, _, err := ResolveExecutionShell(mode, login)
	if err != nil {
		return "", nil, fmt.Errorf("resolve shell: %w", err)
	}
	return shell, nil, nil
}

// preloadEnv returns the LD_PRELOAD and PATHLOCK_* entries to layer onto
// the child's environment, read from this process's own already-loaded
// policy.Config so `pathlockctl shell` always launches under exactly the
// policy `pathlockctl check` just tested against.
func preloadEnv(lib string) []string {
	cfg := policy.Get()
	debug := "0"
	if cfg.Debug() {
		debug = "1"
	}
	return []string{
		"LD_PRELOAD=" + lib,
		policy.EnvBlockedPaths + "=" + strings.Join(cfg.Prefixes(), ":"),
		policy.EnvBlockedGlobs + "=" + strings.Join(cfg.Globs(), ":"),
		policy.EnvDebug + "=" + debug,
	}
}
