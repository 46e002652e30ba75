// Package trace emits pathlock's debug decision trace. The whole line
// reaches stderr through a single write so two concurrent hook invocations
// can never interleave one line's bytes with another's.
package trace

import (
	"os"
	"strconv"
	"strings"
)

// tag is the stable prefix every trace line begins with.
const tag = "[pathlock] "

// Decision emits one line reporting the oracle's verdict for path, and
// (when present) the rule that produced it. Called only when
// policy.Get().Debug() is true; callers must check that themselves so
// this package never has to read process configuration on its own.
func Decision(op, path, verdict, rule string) {
	var b strings.Builder
	b.Grow(len(tag) + len(op) + len(path) + len(verdict) + len(rule) + 16)
	b.WriteString(tag)
	b.WriteString(op)
	b.WriteString(" ")
	b.WriteString(path)
	b.WriteString(" -> ")
	b.WriteString(verdict)
	if rule != "" {
		b.WriteString(" (")
		b.WriteString(rule)
		b.WriteString(")")
	}
	b.WriteString("\n")
	_, _ = os.Stderr.Write([]byte(b.String()))
}

// DecisionAt is Decision's descriptor-relative counterpart, reporting the
// dirfd alongside the relative path so a trace reader can reconstruct what
// the *at-family call actually resolved.
func DecisionAt(op string, dirfd int, path, verdict, rule string) {
	Decision(op, "(fd "+strconv.Itoa(dirfd)+")/"+path, verdict, rule)
}
