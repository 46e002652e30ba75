package main

import (
	"fmt"
	"os"
	"path/filepath"
)

// ShellMode selects how runShell picks the interpreter for an argument-less
// invocation.
type ShellMode string

const (
	// ShellModeDefault always launches bash, regardless of $SHELL.
	ShellModeDefault ShellMode = "default"
	// ShellModeUser launches whatever $SHELL names, validated against
	// allowedUserShells.
	ShellModeUser ShellMode = "user"
)

// allowedUserShells is the set of interpreters ShellModeUser accepts. An
// operator's $SHELL pointing anywhere else is rejected rather than silently
// executed, since the -c/-lc flag ResolveExecutionShell returns only makes
// sense for an actual shell.
var allowedUserShells = map[string]bool{
	"sh":   true,
	"bash": true,
	"zsh":  true,
	"ksh":  true,
	"dash": true,
	"fish": true,
}

// ResolveExecutionShell returns the interpreter path and the flag used to
// hand it a command string (-c, or -lc for a login shell).
func ResolveExecutionShell(mode ShellMode, login bool) (string, string, error) {
	flag := "-c"
	if login {
		flag = "-lc"
	}

	switch mode {
	case ShellModeDefault, "":
		return "/bin/bash", flag, nil
	case ShellModeUser:
		shell := os.Getenv("SHELL")
		if shell == "" {
			return "", "", fmt.Errorf("$SHELL is not set")
		}
		if !filepath.IsAbs(shell) {
			return "", "", fmt.Errorf("$SHELL must be an absolute path, got %q", shell)
		}
		base := filepath.Base(shell)
		if !allowedUserShells[base] {
			return "", "", fmt.Errorf("$SHELL %q is not one of the supported shells", shell)
		}
		info, err := os.Stat(shell)
		if err != nil {
			return "", "", fmt.Errorf("stat $SHELL: %w", err)
		}
		if info.IsDir() || info.Mode()&0o111 == 0 {
			return "", "", fmt.Errorf("$SHELL %q is not executable", shell)
		}
		return shell, flag, nil
	default:
		return "", "", fmt.Errorf("unsupported shell mode %q", mode)
	}
}
