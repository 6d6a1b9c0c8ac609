package clausedb

import "github.com/coresat/cdclt/lit"

// Assigner is supplied by the caller (the CDCL engine owns the trail and
// decision levels) so the watch scan can record newly implied atoms without
// this package knowing about trails or decision levels. It mirrors the
// teacher's Solver.enqueue: it reports false only on a genuine conflict
// (the atom is already assigned to the opposite value); assigning an
// atom that is already true is a no-op success.
type Assigner func(a lit.Atom, reason lit.ClauseRef) bool

// PropagateAtom is called once atom a has just been assigned true. It scans
// the clauses watching a (i.e. waiting for a's falsification of their
// watched literal) and, for each, either finds a new literal to watch,
// confirms the clause already satisfied, or finds it unit and reports the
// implication through assign. It returns the id of the first clause found
// to be empty under the assignment (ClauseIDNull if none), at which point
// the caller must stop draining its propagation queue: the remaining
// watchers of a are preserved unprocessed on the watch list.
func (db *DB) PropagateAtom(a lit.Atom, assign Assigner) ClauseID {
	list := db.watches[a]
	db.watches[a] = db.watches[a][:0]

	for i := 0; i < len(list); i++ {
		id := list[i]
		c := db.Clauses[id]
		if !propagateOne(db, c, a, assign) {
			// Conflict: keep the remaining unexamined watchers of a around.
			db.watches[a] = append(db.watches[a], list[i+1:]...)
			return id
		}
	}
	return ClauseIDNull
}

// propagateOne re-establishes c's watch after a (the negation of one of
// c's watched atoms) has become true, returning false iff c is now a
// conflicting (empty) clause.
func propagateOne(db *DB, c *Clause, a lit.Atom, assign Assigner) bool {
	if c.Atoms[0] == a.Not() {
		c.Atoms[0], c.Atoms[1] = c.Atoms[1], c.Atoms[0]
	}
	if db.Vars.IsTrue(c.Atoms[0]) {
		db.watch(a, c.ID)
		return true
	}
	for i := 2; i < c.Len(); i++ {
		if !db.Vars.IsFalse(c.Atoms[i]) {
			c.Atoms[1], c.Atoms[i] = c.Atoms[i], c.Atoms[1]
			db.watch(c.Atoms[1].Not(), c.ID)
			return true
		}
	}
	db.watch(a, c.ID)
	return assign(c.Atoms[0], lit.ClauseRef(c.ID))
}

// Reason returns the antecedent literals that imply p under c — every
// other atom of c, negated (spec.md §3's clause-as-reason convention). If p
// is still unassigned (called mid-derivation, e.g. from proof checking)
// the first atom is included too.
func (c *Clause) Reason(db *DB, p lit.Atom) []lit.Atom {
	offset := 1
	if db.Vars.IsUnassigned(p) {
		offset = 0
	}
	out := make([]lit.Atom, 0, c.Len()-offset)
	for i := offset; i < c.Len(); i++ {
		out = append(out, c.Atoms[i].Not())
	}
	if c.Learnt() {
		db.BumpClauseActivity(c)
	}
	return out
}
