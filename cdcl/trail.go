package cdcl

import (
	"github.com/coresat/cdclt/clausedb"
	"github.com/coresat/cdclt/lit"
)

// Trail is the chronological sequence of assigned atoms, partitioned into
// decision levels by trailLim (spec.md §3 "Trail"): trailLim[i] is the
// trail index at which decision level i+1 began.
type Trail struct {
	atoms    []lit.Atom
	trailLim []int
}

// NewTrail returns an empty trail at decision level 0.
func NewTrail() *Trail { return &Trail{} }

// Level returns the current decision level (0 at the root).
func (t *Trail) Level() int { return len(t.trailLim) }

// Len returns the number of atoms currently assigned.
func (t *Trail) Len() int { return len(t.atoms) }

// NewDecisionLevel opens a fresh decision level starting at the trail's
// current length.
func (t *Trail) NewDecisionLevel() { t.trailLim = append(t.trailLim, len(t.atoms)) }

// Push records a as the next trail entry. The caller is responsible for
// having already set its assignment in the Vars store.
func (t *Trail) Push(a lit.Atom) { t.atoms = append(t.atoms, a) }

// At returns the atom at trail position i.
func (t *Trail) At(i int) lit.Atom { return t.atoms[i] }

// Last returns the most recently pushed atom.
func (t *Trail) Last() lit.Atom { return t.atoms[len(t.atoms)-1] }

// DropLast removes and returns the most recently pushed atom.
func (t *Trail) DropLast() lit.Atom {
	a := t.atoms[len(t.atoms)-1]
	t.atoms = t.atoms[:len(t.atoms)-1]
	return a
}

// LevelStart returns the trail index at which decision level lvl began;
// LevelStart(0) is always 0.
func (t *Trail) LevelStart(lvl int) int {
	if lvl == 0 {
		return 0
	}
	return t.trailLim[lvl-1]
}

// CancelUntil unassigns every atom back to (but not including) level lvl,
// restoring each underlying variable to the decision heap with h, and
// returns control to the caller at decision level lvl.
func (t *Trail) CancelUntil(lvl int, db *clausedb.DB, h *varHeap) {
	for t.Level() > lvl {
		start := t.trailLim[len(t.trailLim)-1]
		for len(t.atoms) > start {
			a := t.DropLast()
			db.Vars.Unassign(a)
			h.insert(a.Var())
		}
		t.trailLim = t.trailLim[:len(t.trailLim)-1]
	}
}
