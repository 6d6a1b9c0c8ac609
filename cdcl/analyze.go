package cdcl

import (
	"github.com/coresat/cdclt/clausedb"
	"github.com/coresat/cdclt/lit"
)

// analyze performs first-UIP conflict analysis starting from the conflict
// clause conflID (spec.md §4.4): repeatedly resolve against the reason of
// the most recently assigned trail literal until exactly one literal at the
// current decision level remains. It returns the learned clause's atoms
// (asserting literal first), the level to backjump to, and the ids of every
// clause resolved against, in order, for the learned clause's History
// premise.
func (e *Engine) analyze(conflID clausedb.ClauseID) ([]lit.Atom, int, []clausedb.ClauseID) {
	seen := make([]bool, e.db.Vars.NVars())
	learnts := []lit.Atom{lit.AtomUndef}
	var history []clausedb.ClauseID
	counter := 0
	btLevel := 0

	p := lit.AtomUndef
	reason := lit.Reason{Kind: lit.ReasonBCP, Ref: lit.ClauseRef(conflID)}
	for {
		// materialize lazily, mirroring the teacher's deferred calcReason
		// call: a reason computed at the bottom of the previous iteration
		// is only dereferenced here, never if the loop already ended.
		id := e.materializeReason(p, reason)
		history = append(history, id)
		for _, q := range e.db.Clause(id).Reason(e.db, p) {
			v := q.Var()
			if seen[v] {
				continue
			}
			seen[v] = true
			lvl := int(e.db.Vars.Level[v])
			switch {
			case lvl == e.trail.Level():
				counter++
			case lvl > 0:
				learnts = append(learnts, q.Not())
				if lvl > btLevel {
					btLevel = lvl
				}
			}
		}

		for {
			p = e.trail.Last()
			reason = e.db.Vars.Reason[p.Var()]
			e.trail.DropLast()
			e.db.Vars.Unassign(p)
			e.heap.insert(p.Var())
			if seen[p.Var()] {
				break
			}
		}
		counter--
		if counter == 0 {
			break
		}
	}
	learnts[0] = p.Not()
	sortLearnt(learnts, e.db.Vars)
	return learnts, btLevel, history
}

// materializeReason returns a clause id usable for resolution against p's
// antecedent: a BCP reason is already one; a semantic reason's thunk is
// materialized into a real Lemma clause on first use, exactly spec.md
// §4.4's "materialized into a clause only if the reason is needed for
// analysis", and cached back onto the variable so repeat visits reuse it.
func (e *Engine) materializeReason(p lit.Atom, r lit.Reason) clausedb.ClauseID {
	if r.Kind != lit.ReasonSemantic {
		return clausedb.ClauseID(r.Ref)
	}
	lits, pr := e.semanticReason(r.Ref)
	atoms := make([]lit.Atom, 0, len(lits)+1)
	atoms = append(atoms, p)
	for _, l := range lits {
		atoms = append(atoms, l.Not())
	}
	c := e.db.NewClause(atoms, clausedb.LemmaPremise(pr))
	if p != lit.AtomUndef {
		e.db.Vars.Reason[p.Var()] = lit.Reason{Kind: lit.ReasonBCP, Ref: lit.ClauseRef(c.ID)}
	}
	return c.ID
}

// sortLearnt places the second-highest-level literal at position 1,
// fixing the two initial watches and hence the backjump level (spec.md
// §4.4).
func sortLearnt(atoms []lit.Atom, vars *lit.Vars) {
	if len(atoms) < 2 {
		return
	}
	best := 1
	bestLevel := vars.Level[atoms[1].Var()]
	for i := 2; i < len(atoms); i++ {
		if l := vars.Level[atoms[i].Var()]; l > bestLevel {
			bestLevel = l
			best = i
		}
	}
	atoms[1], atoms[best] = atoms[best], atoms[1]
}
