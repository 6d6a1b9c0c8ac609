package theory

import (
	"github.com/coresat/cdclt/lit"
	"github.com/coresat/cdclt/term"
)

// Node is an opaque congruence-closure node handle.
type Node int

// Explanation is an opaque justification for a merge, conflict, or
// propagation; the CC implementation defines its contents.
type Explanation interface{}

// CC is the congruence-closure contract this package consumes (spec.md
// §6.3); it is an external collaborator, not implemented here, the same
// way the term layer is.
type CC interface {
	AddTerm(t term.Term) Node
	Find(n Node) Node
	Merge(n1, n2 Node, expl Explanation)
	AssertLits(lits []lit.Atom)
	Check(acts Acts)
	PushLevel()
	PopLevels(n int)
	SetAsLit(n Node, l lit.Atom)
	RaiseConflictFromExpl(acts Acts, expl Explanation)

	OnNewTerm(cb func(Node, term.Term))
	OnPreMerge(cb func(n1, n2 Node))
	OnPostMerge(cb func(n1, n2 Node))
	OnConflict(cb func(Explanation))
	OnPropagate(cb func(lit.Atom, Explanation))
}
