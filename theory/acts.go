package theory

import (
	"github.com/coresat/cdclt/lit"
	"github.com/coresat/cdclt/term"
)

// Token is an opaque theory proof token attached to a Lemma premise.
type Token interface{}

// Consequence lazily yields the supporting literals of a semantic
// propagation and a proof token, materialized only if conflict analysis
// actually needs the reason (spec.md §4.4's acts.propagate).
type Consequence func() (lits []lit.Atom, pr Token)

// Acts is the handle passed to every plugin callback (spec.md §6.2). The
// CDCL engine (C4) supplies the concrete implementation; this package only
// specifies the contract theory plugins and the congruence closure are
// written against.
type Acts interface {
	// RaiseConflict asserts that ¬∧lits holds under the trail; never returns
	// normally, the caller's callback stack unwinds into conflict analysis.
	RaiseConflict(lits []lit.Atom, pr Token)
	// Propagate enqueues l with a semantic reason.
	Propagate(l lit.Atom, reason Consequence)
	// AddClause installs a clause at level 0. keep selects the recorded
	// premise (Hyp if keep, else Local); the engine keeps the clause either
	// way.
	AddClause(lits []lit.Atom, keep bool, pr Token)
	// MkLit interns lit as an atom, invoking preprocessing if necessary.
	MkLit(l term.Literal) lit.Atom
	// IterAssumptions iterates the trail literals visible this round, in
	// trail order, stopping early if f returns false.
	IterAssumptions(f func(lit.Atom) bool)
}
