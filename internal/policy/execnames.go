package policy

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// commonExecutableDirs is scanned for every blocked command name in
// addition to the $PATH lookup, so a copy outside $PATH is blocked too (e.g.
// the shim runs under a stripped-down PATH but the operator still means
// "block /usr/bin/curl wherever it lives").
var commonExecutableDirs = []string{
	"/usr/bin",
	"/bin",
	"/usr/local/bin",
	"/opt/homebrew/bin",
	"/opt/local/bin",
}

// resolveCommandNames turns a list of bare command names (as would appear in
// PATHLOCK_BLOCKED_COMMANDS or a policy file's blockedCommands) into the
// absolute executable paths they currently resolve to, so they can be folded
// into the ordinary literal-prefix index and enforced by the existing
// execve/execveat hooks without any additional matching logic. Names that
// look like shell syntax (globs, separators, redirection) rather than a
// single executable token are skipped — PATHLOCK_BLOCKED_COMMANDS names
// programs, it is not a shell-command preflight language.
func resolveCommandNames(names []string) []string {
	var out []string
	seen := make(map[string]bool)
	add := func(p string) {
		if p == "" || seen[p] {
			return
		}
		seen[p] = true
		out = append(out, p)
	}
	addCanonical := func(p string) {
		if p == "" {
			return
		}
		add(p)
		if resolved, err := filepath.EvalSymlinks(p); err == nil {
			add(resolved)
		}
	}

	for _, name := range names {
		token := strings.TrimSpace(name)
		if token == "" || strings.ContainsAny(token, "*?[]|&;()<>$`= \t") {
			continue
		}

		if strings.ContainsRune(token, filepath.Separator) {
			abs := token
			if !filepath.IsAbs(abs) {
				if cwd, err := os.Getwd(); err == nil {
					abs = filepath.Join(cwd, abs)
				}
			}
			if executablePathExists(abs) {
				addCanonical(abs)
			}
			continue
		}

		if resolved, err := exec.LookPath(token); err == nil {
			addCanonical(resolved)
		}
		for _, dir := range commonExecutableDirs {
			candidate := filepath.Join(dir, token)
			if executablePathExists(candidate) {
				addCanonical(candidate)
			}
		}
	}

	return out
}

func executablePathExists(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
