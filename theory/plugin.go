// Package theory implements the bidirectional bridge between the SAT
// engine and theory plugins (spec.md §4.5, C5): Solver_internal owns
// literal preprocessing, the plugin chain, and the congruence-closure
// tie-in; plugins themselves register simplify/preprocess hooks and
// check-point callbacks through it.
package theory

// State is the opaque per-plugin state returned by a plugin's setup; this
// package never inspects it (spec.md §9 "heterogeneous plugin chain" — a
// tagged variant is unnecessary because plugins are only invoked, never
// inspected).
type State interface{}

// Plugin is the contract every theory plugin implements (spec.md §6.1).
// CreateAndSetup is called once at registration and returns closures over
// whatever state the plugin needs, so PushLevel/PopLevels never need to be
// threaded a state value back in — they close over it instead.
type Plugin interface {
	Name() string
	CreateAndSetup(si *SI) (pushLevel func(), popLevels func(n int))
}

type registeredPlugin struct {
	name      string
	pushLevel func()
	popLevels func(n int)
}
