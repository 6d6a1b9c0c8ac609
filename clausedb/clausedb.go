// Package clausedb owns the clause storage, the term-to-variable hash
// table, and the two-watched-literal propagation scheme (spec.md §3, C2).
package clausedb

import (
	"github.com/coresat/cdclt/lit"
	"github.com/coresat/cdclt/term"
)

// DB is the clause database: variable store, the atom table that interns
// terms into propositional variables, and the clause arena itself.
type DB struct {
	Vars *lit.Vars

	atoms    map[int]lit.Var // term.ID() -> interned variable
	varTerm  []term.Term     // inverse of atoms, indexed by lit.Var

	Clauses  []*Clause
	Permanent []ClauseID
	Learnts  []ClauseID
	nextID   ClauseID

	watches map[lit.Atom][]ClauseID

	ClaInc   float64
	ClaDecay float64
}

// NewDB returns an empty clause database.
func NewDB() *DB {
	return &DB{
		Vars:     lit.NewVars(0),
		atoms:    make(map[int]lit.Var),
		watches:  make(map[lit.Atom][]ClauseID),
		ClaInc:   1.0,
		ClaDecay: 0.999,
	}
}

// MakeAtom interns t as a propositional variable (allocating a fresh one on
// first sight) and returns the atom denoting l's sign of it, folding any
// negations already carried by l.Term into the sign (spec.md §4.1). This is
// the core's "make_atom".
func (db *DB) MakeAtom(l term.Literal) lit.Atom {
	norm := term.Atom(l.Term, l.Neg)
	v, ok := db.atoms[norm.Term.ID()]
	if !ok {
		v = db.Vars.NewVar()
		db.atoms[norm.Term.ID()] = v
		for len(db.varTerm) <= int(v) {
			db.varTerm = append(db.varTerm, nil)
		}
		db.varTerm[v] = norm.Term
	}
	return lit.NewAtom(v, norm.Neg)
}

// TermOf returns the term a variable was interned from, or nil for a
// variable allocated without one.
func (db *DB) TermOf(v lit.Var) term.Term {
	if int(v) >= len(db.varTerm) {
		return nil
	}
	return db.varTerm[v]
}

// Lits returns the atom slice of clause id.
func (db *DB) Lits(id ClauseID) []lit.Atom { return db.Clauses[id].Atoms }

// Clause returns the clause record for id.
func (db *DB) Clause(id ClauseID) *Clause { return db.Clauses[id] }

// NewClause allocates (but does not attach) a clause with the given atoms
// and premise. The caller is responsible for calling Attach once the
// clause has two or more atoms, or handling the unit/empty case itself.
func (db *DB) NewClause(atoms []lit.Atom, premise Premise) *Clause {
	id := db.nextID
	db.nextID++
	c := &Clause{ID: id, Atoms: atoms, Premise: premise}
	db.Clauses = append(db.Clauses, c)
	if premise.Kind == History {
		c.Activity = 0
		db.Learnts = append(db.Learnts, id)
	} else {
		db.Permanent = append(db.Permanent, id)
	}
	return c
}

// Attach registers c's first two atoms' negations on the watch lists
// (spec.md §4.2: a clause watches two atoms whose falsification could make
// it unit or empty).
func (db *DB) Attach(c *Clause) {
	if c.Len() < 2 {
		return
	}
	c.Attached = true
	db.watch(c.Atoms[0].Not(), c.ID)
	db.watch(c.Atoms[1].Not(), c.ID)
}

// Detach removes c from both of its watch lists and marks it removed;
// callers must not dereference c's Atoms for propagation afterward.
func (db *DB) Detach(c *Clause) {
	if !c.Attached {
		return
	}
	db.unwatch(c.Atoms[0].Not(), c.ID)
	db.unwatch(c.Atoms[1].Not(), c.ID)
	c.Attached = false
	c.removed = true
}

func (db *DB) watch(a lit.Atom, id ClauseID) {
	db.watches[a] = append(db.watches[a], id)
}

func (db *DB) unwatch(a lit.Atom, id ClauseID) {
	list := db.watches[a]
	for i, cid := range list {
		if cid == id {
			n := len(list)
			list[i] = list[n-1]
			db.watches[a] = list[:n-1]
			return
		}
	}
}

// BumpClauseActivity bumps c's activity and rescales the whole learnt-clause
// pool if it overflows, mirroring the variable-activity bump scheme.
func (db *DB) BumpClauseActivity(c *Clause) {
	c.Activity += db.ClaInc
	if c.Activity > 1e100 {
		for _, id := range db.Learnts {
			db.Clauses[id].Activity *= 1e-100
		}
		db.ClaInc *= 1e-100
	}
}

// DecayClauseActivity grows the activity increment, effectively decaying
// every existing clause's relative activity.
func (db *DB) DecayClauseActivity() { db.ClaInc /= db.ClaDecay }

// BumpVarActivity bumps the activity of the variable underlying a and
// restores the VSIDS heap invariant through bump if it is non-nil.
func (db *DB) BumpVarActivity(a lit.Atom, bump func(v lit.Var)) {
	v := a.Var()
	db.Vars.Weight[v] += db.Vars.VarInc
	if db.Vars.Weight[v] > 1e100 {
		for i := range db.Vars.Weight {
			db.Vars.Weight[i] *= 1e-100
		}
		db.Vars.VarInc *= 1e-100
	}
	if bump != nil {
		bump(v)
	}
}

// DecayVarActivity grows the activity increment, effectively decaying every
// existing variable's relative activity.
func (db *DB) DecayVarActivity() { db.Vars.VarInc /= db.Vars.VarDecay }

// ReduceLearnts drops the lower-activity half of the learnt clauses,
// skipping clauses currently locked as a BCP reason or of length <= 2
// (spec.md §4.4). It returns the clauses removed so the caller can also
// detach any proof-DAG bookkeeping.
func (db *DB) ReduceLearnts() []ClauseID {
	sortLearntsByActivity(db)

	n := len(db.Learnts)
	lim := db.ClaInc / float64(n)
	kept := db.Learnts[:0]
	var removed []ClauseID
	for i, id := range db.Learnts {
		c := db.Clauses[id]
		if c.Len() > 2 && !c.Locked(db.Vars) && (i < n/2 || c.Activity < lim) {
			db.Detach(c)
			removed = append(removed, id)
			continue
		}
		kept = append(kept, id)
	}
	db.Learnts = kept
	return removed
}

func sortLearntsByActivity(db *DB) {
	ls := db.Learnts
	for i := 1; i < len(ls); i++ {
		for j := i; j > 0 && db.Clauses[ls[j]].Activity < db.Clauses[ls[j-1]].Activity; j-- {
			ls[j], ls[j-1] = ls[j-1], ls[j]
		}
	}
}

// CheckWatches verifies, for every attached clause, that neither watched
// atom is currently false unless the clause is satisfied or unit — the
// invariant the propagation scheme must maintain (spec.md testable
// property 2). It is intended for tests, not the hot path.
func (db *DB) CheckWatches() bool {
	for _, c := range db.Clauses {
		if !c.Attached || c.removed {
			continue
		}
		sat := false
		for _, a := range c.Atoms {
			if db.Vars.IsTrue(a) {
				sat = true
				break
			}
		}
		if sat {
			continue
		}
		falseWatches := 0
		if db.Vars.IsFalse(c.Atoms[0]) {
			falseWatches++
		}
		if db.Vars.IsFalse(c.Atoms[1]) {
			falseWatches++
		}
		if falseWatches > 1 {
			return false
		}
		if falseWatches == 1 {
			for _, a := range c.Atoms[2:] {
				if !db.Vars.IsFalse(a) {
					return false
				}
			}
		}
	}
	return true
}

// CheckModel verifies every non-removed clause, attached or not (unit
// clauses included), has at least one true atom under the current
// assignment.
func (db *DB) CheckModel() bool {
	for _, c := range db.Clauses {
		if c.removed {
			continue
		}
		ok := false
		for _, a := range c.Atoms {
			if db.Vars.IsTrue(a) {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	return true
}
