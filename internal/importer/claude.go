// Package importer converts permission rules from other tools into
// pathlock forbidden-prefix candidates. It never runs inside the shim
// itself; it is purely a pathlockctl-side conversion utility.
package importer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/tidwall/jsonc"
)

// ClaudeSettings is the shape of Claude Code's settings.json that matters
// for this import: the permission rule lists. Everything else in the file
// is ignored.
type ClaudeSettings struct {
	Permissions ClaudePermissions `json:"permissions"`
}

// ClaudePermissions mirrors Claude Code's permissions.{allow,deny,ask}
// rule lists. Only Deny and Ask feed the importer: pathlock has no "allow"
// concept of its own to reconcile against (everything not blocked is
// allowed by default), so Allow rules carry no information this importer
// can use.
type ClaudePermissions struct {
	Allow []string `json:"allow"`
	Deny  []string `json:"deny"`
	Ask   []string `json:"ask"`
}

// DefaultClaudeSettingsPaths returns the standard locations Claude Code
// stores settings, user-level first, most-specific project override last
// so later entries win when the caller layers them.
func DefaultClaudeSettingsPaths() []string {
	var paths []string
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".claude", "settings.json"))
	}
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths,
			filepath.Join(cwd, ".claude", "settings.json"),
			filepath.Join(cwd, ".claude", "settings.local.json"),
		)
	}
	return paths
}

// LoadClaudeSettings reads and parses a Claude Code settings file. A
// missing or empty file is not an error: it yields a zero-value
// ClaudeSettings with no rules, so callers scanning several candidate
// paths in a row don't need to special-case absence themselves.
func LoadClaudeSettings(path string) (*ClaudeSettings, error) {
	data, err := os.ReadFile(path) //nolint:gosec // operator-provided path, read-only
	if err != nil {
		if os.IsNotExist(err) {
			return &ClaudeSettings{}, nil
		}
		return nil, fmt.Errorf("read claude settings %s: %w", path, err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return &ClaudeSettings{}, nil
	}
	var settings ClaudeSettings
	if err := json.Unmarshal(jsonc.ToJSON(data), &settings); err != nil {
		return nil, fmt.Errorf("invalid JSON in claude settings %s: %w", path, err)
	}
	return &settings, nil
}

var (
	// readPattern matches filesystem-shaped Read() rules, e.g.
	// "Read(./.env)" or "Read(/home/user/.ssh/**)".
	readPattern = regexp.MustCompile(`^Read\((.+)\)$`)
	// editPattern matches Edit() rules the same way Read() is matched;
	// Claude treats Edit as a write-capable operation on the same path
	// shape, and so does this importer.
	editPattern = regexp.MustCompile(`^Edit\((.+)\)$`)
	// writePattern matches Write() rules.
	writePattern = regexp.MustCompile(`^Write\((.+)\)$`)
)

// Result is the outcome of converting one Claude settings file's deny (and
// ask) rules into pathlock forbidden-prefix candidates.
type Result struct {
	SourcePath string
	// Prefixes is the deduplicated, order-preserved list of candidate
	// PATHLOCK_BLOCKED_PATHS entries derived from filesystem-shaped rules.
	Prefixes []string
	// Skipped lists rules that could not be converted — tool-and-argument
	// rules like "Bash(rm:*)" have no filesystem-path equivalent pathlock
	// can enforce, and bare tool names ("Read") are global, not path-scoped.
	Skipped []string
}

// ImportFromClaude loads settings from path (or every DefaultClaudeSettingsPaths
// entry, layered in order, if path is empty) and converts every
// filesystem-shaped Read/Write/Edit rule found in permissions.deny and
// permissions.ask into a candidate forbidden prefix. permissions.allow is
// never consulted: pathlock's policy is deny-only, so there is nothing an
// allow rule could add to it.
func ImportFromClaude(path string) (*Result, error) {
	var paths []string
	if path != "" {
		paths = []string{path}
	} else {
		paths = DefaultClaudeSettingsPaths()
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("could not determine a claude settings path")
	}

	result := &Result{SourcePath: strings.Join(paths, ",")}
	seen := make(map[string]bool)

	for _, p := range paths {
		settings, err := LoadClaudeSettings(p)
		if err != nil {
			return nil, err
		}
		for _, rule := range settings.Permissions.Deny {
			convertRule(rule, result, seen)
		}
		for _, rule := range settings.Permissions.Ask {
			convertRule(rule, result, seen)
		}
	}
	return result, nil
}

func convertRule(rule string, result *Result, seen map[string]bool) {
	rule = strings.TrimSpace(rule)
	if rule == "" {
		return
	}

	var path string
	switch {
	case readPattern.MatchString(rule):
		path = readPattern.FindStringSubmatch(rule)[1]
	case editPattern.MatchString(rule):
		path = editPattern.FindStringSubmatch(rule)[1]
	case writePattern.MatchString(rule):
		path = writePattern.FindStringSubmatch(rule)[1]
	default:
		result.Skipped = append(result.Skipped, rule)
		return
	}

	prefix := claudePathToPrefix(path)
	if prefix == "" {
		result.Skipped = append(result.Skipped, rule)
		return
	}
	if seen[prefix] {
		return
	}
	seen[prefix] = true
	result.Prefixes = append(result.Prefixes, prefix)
}

// claudePathToPrefix turns a Claude path argument into a literal pathlock
// prefix: strips a trailing "/**" (pathlock prefixes already imply
// everything beneath them, so the glob suffix carries no extra
// information once converted), resolves "./"-relative paths against the
// current working directory since pathlock prefixes must be absolute, and
// rejects anything that still contains glob metacharacters after that —
// those need PATHLOCK_BLOCKED_GLOBS, not a literal prefix, and this
// importer only emits the latter.
func claudePathToPrefix(path string) string {
	path = strings.TrimSpace(path)
	path = strings.TrimSuffix(path, "/**")
	if path == "" {
		return ""
	}
	if strings.ContainsAny(path, "*?[") {
		return ""
	}
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return ""
		}
		path = filepath.Join(cwd, path)
	}
	path = filepath.Clean(path)
	if path != "/" {
		path = strings.TrimSuffix(path, "/")
	}
	return path
}

// BlockedPathsEnvValue renders r.Prefixes as a PATHLOCK_BLOCKED_PATHS value
// ready to export.
func (r *Result) BlockedPathsEnvValue() string {
	return strings.Join(r.Prefixes, ":")
}
