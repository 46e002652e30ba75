package policy

import "strings"

// Canonicalize performs pure, textual `.`/`..` collapsing on an absolute
// path — no filesystem access, no symlink awareness. It is the first of the
// two normalization passes described for the oracle: a quick, allocation-
// only rewrite that resolve.go's symlink-aware pass builds on top of.
//
// A relative path is returned unchanged (callers are expected to have
// joined it against a base directory already); a "" input becomes "/".
func Canonicalize(path string) string {
	if path == "" {
		return "/"
	}
	if path[0] != '/' {
		return path
	}

	segments := strings.Split(path, "/")
	out := make([]string, 0, len(segments))
	for _, seg := range segments {
		switch seg {
		case "", ".":
			continue
		case "..":
			if len(out) > 0 {
				out = out[:len(out)-1]
			}
		default:
			out = append(out, seg)
		}
	}
	if len(out) == 0 {
		return "/"
	}
	return "/" + strings.Join(out, "/")
}
