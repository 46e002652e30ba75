// Package policy implements the path-admission decision engine: the pure,
// cgo-free core that decides whether a caller-supplied path falls under a
// configured forbidden prefix. It has no knowledge of libc, cgo, or the
// dynamic loader — that belongs to cmd/pathlockfs, which is the only
// consumer that needs to be cgo at all.
package policy

// initState is the three-state lifecycle of the process-wide configuration:
// uninitialized -> {ready, failClosed}. Once ready or failClosed, state never
// changes again until process exit.
type initState int

const (
	stateUninitialized initState = iota
	stateReady
	stateFailClosed
)

func (s initState) String() string {
	switch s {
	case stateReady:
		return "ready"
	case stateFailClosed:
		return "fail-closed"
	default:
		return "uninitialized"
	}
}
