package cdcl

import (
	"github.com/coresat/cdclt/clausedb"
	"github.com/coresat/cdclt/lit"
	"github.com/coresat/cdclt/term"
	"github.com/coresat/cdclt/theory"
)

// theoryConflict is panicked by acts.RaiseConflict and recovered by
// propagate(), implementing the "never returns" contract of spec.md §6.2
// without threading a conflict-return value through every CC/plugin call.
type theoryConflict struct {
	id clausedb.ClauseID
}

// engineActs is the concrete Acts handle (spec.md §6.2) the engine passes
// to theory plugins and the congruence closure.
type engineActs struct {
	e *Engine
}

func (a *engineActs) RaiseConflict(lits []lit.Atom, pr theory.Token) {
	neg := make([]lit.Atom, len(lits))
	for i, l := range lits {
		neg[i] = l.Not()
	}
	c := a.e.db.NewClause(neg, clausedb.LemmaPremise(pr))
	a.e.db.Attach(c)
	panic(theoryConflict{id: c.ID})
}

func (a *engineActs) Propagate(l lit.Atom, reason theory.Consequence) {
	if a.e.db.Vars.IsFalse(l) {
		// l is already false: the implication lits => l this thunk would
		// have justified is itself the conflict, materialized as a lemma
		// exactly like raise_conflict would (spec.md §4.4's acts.propagate
		// "materialized into a clause only if the reason is needed").
		lits, pr := reason()
		neg := make([]lit.Atom, 0, len(lits)+1)
		for _, q := range lits {
			neg = append(neg, q.Not())
		}
		neg = append(neg, l)
		c := a.e.db.NewClause(neg, clausedb.LemmaPremise(pr))
		a.e.db.Attach(c)
		panic(theoryConflict{id: c.ID})
	}
	ref := a.e.storeSemanticReason(reason)
	a.e.assign(l, lit.Reason{Kind: lit.ReasonSemantic, Ref: ref})
}

func (a *engineActs) AddClause(lits []lit.Atom, keep bool, pr theory.Token) {
	a.e.addTheoryClause(lits, keep, pr)
}

func (a *engineActs) MkLit(l term.Literal) lit.Atom {
	if si := a.e.si; si != nil && si.Preprocess != nil {
		l = si.Preprocess.PreprocessLit(l)
	}
	return a.e.db.MakeAtom(l)
}

func (a *engineActs) IterAssumptions(f func(lit.Atom) bool) {
	for i := 0; i < a.e.trail.Len(); i++ {
		if !f(a.e.trail.At(i)) {
			return
		}
	}
}
