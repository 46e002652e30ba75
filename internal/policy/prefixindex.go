package policy

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	iradix "github.com/hashicorp/go-immutable-radix"
)

// prefixIndex answers "is this path under a forbidden prefix" in O(depth)
// rather than O(len(prefixes)) by keeping the literal prefixes in a radix
// tree keyed on path bytes, alongside the raw glob list for the
// supplementary doublestar pass. Built once at Config load time and never
// mutated afterward.
type prefixIndex struct {
	tree  *iradix.Tree
	globs []string
}

func newPrefixIndex(prefixes []string) *prefixIndex {
	txn := iradix.New().Txn()
	for _, p := range prefixes {
		txn.Insert([]byte(p), struct{}{})
	}
	return &prefixIndex{tree: txn.Commit()}
}

func (idx *prefixIndex) withGlobs(globs []string) *prefixIndex {
	idx.globs = globs
	return idx
}

// Blocked reports whether canon — an already textually-canonicalized,
// absolute path — falls under one of the forbidden literal prefixes (exact
// match, or match followed by a path separator so that "/app" never matches
// "/applications") or one of the supplementary glob patterns.
func (idx *prefixIndex) Blocked(canon string) bool {
	if idx == nil {
		return false
	}
	if idx.blockedByPrefix(canon) {
		return true
	}
	return idx.blockedByGlob(canon)
}

func (idx *prefixIndex) blockedByPrefix(canon string) bool {
	_, ok := idx.matchedPrefix(canon)
	return ok
}

// matchedPrefix returns the forbidden literal prefix that blocks canon, if
// any. Split out from blockedByPrefix so diagnostic callers (pathlockctl
// check) can report which configured entry fired, without duplicating the
// ancestor walk.
//
// The match rule ("C == P or C begins with P + separator") means any
// matching P is necessarily one of canon's own ancestor directories, formed
// by truncating canon at one of its '/' boundaries. iradix's LongestPrefix
// finds the longest configured *key* that is a byte-prefix of canon, which
// is not the same thing: with both "/app" and "/app/sub" configured,
// LongestPrefix on "/app/subdir/file" returns "/app/sub" (a byte-prefix but
// not a directory ancestor), fails the boundary check, and stops even though
// the shorter configured prefix "/app" is a genuine ancestor match. So walk
// canon's ancestors from longest to shortest, doing an exact lookup at each
// boundary, instead of trusting the tree's single longest-byte match.
func (idx *prefixIndex) matchedPrefix(canon string) (string, bool) {
	if idx.tree == nil {
		return "", false
	}
	candidate := canon
	for {
		if _, ok := idx.tree.Get([]byte(candidate)); ok {
			return candidate, true
		}
		cut := strings.LastIndexByte(candidate, '/')
		if cut <= 0 {
			return "", false
		}
		candidate = candidate[:cut]
	}
}

func (idx *prefixIndex) blockedByGlob(canon string) bool {
	_, ok := idx.matchedGlob(canon)
	return ok
}

// matchedGlob returns the configured glob pattern (as given, not trimmed)
// that blocks canon, if any.
func (idx *prefixIndex) matchedGlob(canon string) (string, bool) {
	trimmed := strings.TrimPrefix(canon, "/")
	for _, g := range idx.globs {
		pattern := strings.TrimPrefix(g, "/")
		if ok, _ := doublestar.Match(pattern, trimmed); ok {
			return g, true
		}
		// Also allow the glob to match any ancestor directory component so a
		// glob like "**/secrets" blocks files underneath a matched dir, not
		// just a path equal to the match.
		if matchesAncestor(pattern, trimmed) {
			return g, true
		}
	}
	return "", false
}

// MatchReason reports which configured rule, if any, blocks canon: the
// literal prefix or the glob pattern. Used only by diagnostic callers
// (pathlockctl check and the shim's debug trace); the hot-path Blocked
// check never calls this.
func (idx *prefixIndex) MatchReason(canon string) (rule string, kind string, ok bool) {
	if idx == nil {
		return "", "", false
	}
	if p, matched := idx.matchedPrefix(canon); matched {
		return p, "prefix", true
	}
	if g, matched := idx.matchedGlob(canon); matched {
		return g, "glob", true
	}
	return "", "", false
}

func matchesAncestor(pattern, trimmed string) bool {
	parts := strings.Split(trimmed, "/")
	for i := 1; i < len(parts); i++ {
		candidate := strings.Join(parts[:i], "/")
		if ok, _ := doublestar.Match(pattern, candidate); ok {
			return true
		}
	}
	return false
}
