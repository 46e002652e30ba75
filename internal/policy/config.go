package policy

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/tidwall/jsonc"
)

const (
	// EnvBlockedPaths names the colon-separated list of forbidden absolute
	// path prefixes.
	EnvBlockedPaths = "PATHLOCK_BLOCKED_PATHS"
	// EnvBlockedGlobs names the colon-separated list of doublestar glob
	// patterns evaluated in addition to the literal prefixes.
	EnvBlockedGlobs = "PATHLOCK_BLOCKED_GLOBS"
	// EnvDebug enables the stderr trace when its value is exactly "1".
	EnvDebug = "PATHLOCK_DEBUG"
	// EnvBlockedCommands names a colon-separated list of bare command names
	// (e.g. "curl:nc:ssh") resolved at load time to the absolute executable
	// paths they currently name and folded into the literal-prefix index, so
	// the existing execve/execveat hooks deny them without any dedicated
	// exec-matching logic.
	EnvBlockedCommands = "PATHLOCK_BLOCKED_COMMANDS"

	// DefaultBlockedPaths is used when EnvBlockedPaths is unset.
	DefaultBlockedPaths = "/app:/.apps_data"

	// PolicyFileName is the optional JSONC policy file consulted alongside
	// the environment, in the process's working directory.
	PolicyFileName = ".pathlock.jsonc"

	// MaxBlockedPaths bounds the combined number of literal prefixes kept
	// from the environment and the policy file. Entries beyond this cap are
	// silently dropped — documented behavior, not a fault.
	MaxBlockedPaths = 64

	listSeparator = ":"
)

// PolicyFile is the optional, supplemental on-disk configuration shape.
// Fields here are unioned with (not a replacement for) the environment
// variables: an operator can use either, or both, and env values always
// take precedence per-field over a file value.
type PolicyFile struct {
	// Extends names another policy file (resolved relative to this file's
	// directory) whose BlockedPaths/BlockedGlobs/Debug are loaded first and
	// then layered under this file's own values.
	Extends         string   `json:"extends,omitempty"`
	BlockedPaths    []string `json:"blockedPaths,omitempty"`
	BlockedGlobs    []string `json:"blockedGlobs,omitempty"`
	BlockedCommands []string `json:"blockedCommands,omitempty"`
	Debug           *bool    `json:"debug,omitempty"`
}

// Config is the process-wide, immutable-after-init policy state. It is
// never mutated once Get() has returned it.
type Config struct {
	state    initState
	prefixes []string // frozen, order preserved for debug trace determinism
	globs    []string
	debug    bool
	index    *prefixIndex
}

// FailClosed reports whether initialization could not complete. This is
// the single most important flag in the system: when true,
// the oracle blocks unconditionally regardless of path.
func (c *Config) FailClosed() bool { return c.state == stateFailClosed }

// Empty reports whether the policy has nothing to enforce: no literal
// prefixes and no globs. An empty policy admits every path without ever
// touching the resolver, so a process configured with an empty list cannot
// be denied by a resolution failure either.
func (c *Config) Empty() bool { return len(c.prefixes) == 0 && len(c.globs) == 0 }

// Debug reports whether trace output is enabled.
func (c *Config) Debug() bool { return c.debug }

// Prefixes returns the frozen, ordered forbidden-prefix list.
func (c *Config) Prefixes() []string { return append([]string(nil), c.prefixes...) }

// Globs returns the frozen, supplementary glob pattern list.
func (c *Config) Globs() []string { return append([]string(nil), c.globs...) }

var (
	once    sync.Once
	current *Config
)

// Get returns the process-wide configuration, loading it from the
// environment and optional policy file on first call. Whichever goroutine
// calls first wins, and every later caller — including concurrent
// first-callers — observes the same, already-published value.
func Get() *Config {
	once.Do(func() {
		current = load()
	})
	return current
}

// ResetForTest clears the one-shot guard so tests can exercise load() under
// different environments. Never called outside test code.
func ResetForTest() {
	once = sync.Once{}
	current = nil
}

func load() *Config {
	debugEnv := os.Getenv(EnvDebug)
	debug := debugEnv == "1"

	pathsEnv, pathsSet := os.LookupEnv(EnvBlockedPaths)
	if !pathsSet {
		pathsEnv = DefaultBlockedPaths
	}

	prefixes := parsePrefixList(pathsEnv)

	globsEnv, globsSet := os.LookupEnv(EnvBlockedGlobs)
	globs := splitTrim(globsEnv, listSeparator)

	commandsEnv, commandsSet := os.LookupEnv(EnvBlockedCommands)
	commandNames := splitTrim(commandsEnv, listSeparator)

	if pf, err := loadPolicyFileChain(PolicyFileName); err != nil {
		// An operator-provided policy file that cannot be parsed latches
		// fail-closed rather than silently running with less policy than
		// intended.
		return &Config{state: stateFailClosed}
	} else if pf != nil {
		if !pathsSet {
			prefixes = appendCapped(prefixes, pf.BlockedPaths, MaxBlockedPaths)
		}
		if !globsSet {
			globs = appendUnique(globs, pf.BlockedGlobs)
		}
		if !commandsSet {
			commandNames = appendUnique(commandNames, pf.BlockedCommands)
		}
		if pf.Debug != nil && debugEnv == "" {
			debug = *pf.Debug
		}
	}

	if len(commandNames) > 0 {
		prefixes = appendCapped(prefixes, resolveCommandNames(commandNames), MaxBlockedPaths)
	}

	cfg := &Config{
		state:    stateReady,
		prefixes: prefixes,
		globs:    globs,
		debug:    debug,
	}
	cfg.index = newPrefixIndex(cfg.prefixes).withGlobs(cfg.globs)
	return cfg
}

func parsePrefixList(s string) []string {
	tokens := splitTrim(s, listSeparator)
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if len(out) >= MaxBlockedPaths {
			break
		}
		out = append(out, t)
	}
	return out
}

// splitTrim splits s on sep, trims leading/trailing whitespace from each
// token, strips trailing path separators (so "/app/" normalizes the same as
// "/app"), and drops empty tokens.
func splitTrim(s, sep string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, tok := range strings.Split(s, sep) {
		tok = strings.TrimSpace(tok)
		for len(tok) > 1 && strings.HasSuffix(tok, "/") {
			tok = strings.TrimSuffix(tok, "/")
		}
		if tok == "" {
			continue
		}
		out = append(out, tok)
	}
	return out
}

func appendCapped(base []string, extra []string, cap int) []string {
	out := append([]string(nil), base...)
	for _, e := range extra {
		if len(out) >= cap {
			break
		}
		e = strings.TrimSpace(e)
		for len(e) > 1 && strings.HasSuffix(e, "/") {
			e = strings.TrimSuffix(e, "/")
		}
		if e == "" {
			continue
		}
		out = append(out, e)
	}
	return out
}

func appendUnique(base []string, extra []string) []string {
	seen := make(map[string]bool, len(base))
	out := append([]string(nil), base...)
	for _, b := range base {
		seen[b] = true
	}
	for _, e := range extra {
		e = strings.TrimSpace(e)
		if e == "" || seen[e] {
			continue
		}
		seen[e] = true
		out = append(out, e)
	}
	return out
}

// loadPolicyFileChain reads name from the current working directory and
// resolves its Extends chain, most-base-first. A missing file is not an
// error (the file is entirely optional); a present-but-malformed file is.
func loadPolicyFileChain(name string) (*PolicyFile, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, nil
	}
	return readPolicyChain(filepath.Join(cwd, name), map[string]bool{})
}

func readPolicyChain(path string, seen map[string]bool) (*PolicyFile, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	if seen[abs] {
		return nil, fmt.Errorf("policy file cycle detected at %s", abs)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	seen[abs] = true

	var pf PolicyFile
	if err := json.Unmarshal(jsonc.ToJSON(data), &pf); err != nil {
		return nil, fmt.Errorf("invalid policy file %s: %w", path, err)
	}

	if pf.Extends == "" {
		return &pf, nil
	}

	basePath := pf.Extends
	if !filepath.IsAbs(basePath) {
		basePath = filepath.Join(filepath.Dir(path), basePath)
	}
	base, err := readPolicyChain(basePath, seen)
	if err != nil {
		return nil, err
	}
	if base == nil {
		return &pf, nil
	}

	merged := &PolicyFile{
		BlockedPaths:    appendUnique(base.BlockedPaths, pf.BlockedPaths),
		BlockedGlobs:    appendUnique(base.BlockedGlobs, pf.BlockedGlobs),
		BlockedCommands: appendUnique(base.BlockedCommands, pf.BlockedCommands),
		Debug:           pf.Debug,
	}
	if merged.Debug == nil {
		merged.Debug = base.Debug
	}
	return merged, nil
}
