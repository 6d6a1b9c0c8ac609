package clausedb

import (
	"strings"

	"github.com/coresat/cdclt/lit"
)

// Clause is an immutable array of atoms with an activity score, attachment
// bookkeeping, and a provenance premise (spec.md §3). The atom slice itself
// is not mutated after allocation except for the first two entries, which
// the two-watched-literal scheme permutes in place to keep the watched
// pair at indices 0 and 1.
type Clause struct {
	ID       ClauseID
	Atoms    []lit.Atom
	Activity float64
	Premise  Premise
	Attached bool
	Visited bool // scratch flag for the proof reconstructor / GC marking
	removed  bool
}

// Len returns the number of atoms in the clause.
func (c *Clause) Len() int { return len(c.Atoms) }

// Learnt reports whether the clause was derived by resolution (a History
// premise), as opposed to being a hypothesis, local assumption, or theory
// lemma.
func (c *Clause) Learnt() bool { return c.Premise.Kind == History }

// Locked reports whether c is currently serving as the BCP reason for the
// literal at its first watched position; locked clauses are never dropped
// by clause-DB reduction.
func (c *Clause) Locked(vars *lit.Vars) bool {
	if c.Len() == 0 {
		return false
	}
	v := c.Atoms[0].Var()
	r := vars.Reason[v]
	return r.Kind == lit.ReasonBCP && r.Ref == lit.ClauseRef(c.ID)
}

func (c *Clause) String() string {
	parts := make([]string, len(c.Atoms))
	for i, a := range c.Atoms {
		parts[i] = a.String()
	}
	return strings.Join(parts, " ∨ ")
}
