package solver

import (
	"github.com/coresat/cdclt/clausedb"
	"github.com/coresat/cdclt/lit"
	"github.com/coresat/cdclt/proof"
	"github.com/coresat/cdclt/term"
	"github.com/coresat/cdclt/tribool"
)

// CheckLevel controls how much certificate work Solve does after an Unsat
// verdict (spec.md §6.4): full proof reconstruction walks the resolution
// DAG built from the conflict's History premise chain, which is strictly
// more expensive than stopping at the unsat core.
type CheckLevel uint8

const (
	// CheckNone reports Unsat with no Proof or UnsatCore populated.
	CheckNone CheckLevel = iota
	// CheckCore reconstructs the proof DAG only far enough to extract the
	// unsat core; Proof is left nil at this level.
	CheckCore
	// CheckProof reconstructs the full resolution-DAG proof and returns it
	// in Proof; the proof is not re-checked after reconstruction.
	CheckProof
)

// ResultKind tags Result's active variant.
type ResultKind uint8

const (
	// ResultSat means Model is populated.
	ResultSat ResultKind = iota
	// ResultUnsat means UnsatCore (and, at CheckProof, Proof) is populated.
	ResultUnsat
	// ResultUnknown means the search was aborted; Reason explains why.
	ResultUnknown
)

// UnknownReason explains a ResultUnknown verdict (spec.md §6.4).
type UnknownReason uint8

const (
	// ReasonTimeout means onProgress (or a Ctl cancellation) aborted the search.
	ReasonTimeout UnknownReason = iota
	// ReasonIncomplete means proof reconstruction failed after an Unsat
	// verdict at a CheckLevel that required it; the verdict itself still
	// stands, only the certificate is missing (spec.md §7).
	ReasonIncomplete
)

// Result is the closed sum type Solve returns (spec.md §6.4), generalizing
// the teacher's bare boolean Solve/Answer pair into a tagged result that
// carries a model, a proof and unsat core, or an abort reason depending on
// Kind.
type Result struct {
	Kind ResultKind

	Model *Model

	Proof     *proof.Node
	UnsatCore []clausedb.ClauseID
	ProofErr  error

	Reason UnknownReason
}

// Model is the placeholder total assignment spec.md §9's Open Question
// calls for: a flat map from variable to boolean, plus a TermValue lookup
// that only answers for terms that were themselves interned as boolean
// atoms. Anything else — including every non-atomic-boolean term — gets
// (false, false), an explicit "unknown" rather than a guess.
type Model struct {
	byVar  map[lit.Var]bool
	byTerm map[int]bool
}

// newModel builds a Model from vals, the assignment snapshotted by
// Engine.Model() at the moment Solve found StatusSat — not read live off
// db.Vars, since the engine cancels its trail back to rootLevel before
// Solve returns.
func newModel(db *clausedb.DB, vals []tribool.Tribool) *Model {
	m := &Model{
		byVar:  make(map[lit.Var]bool, len(vals)),
		byTerm: make(map[int]bool, len(vals)),
	}
	for v := lit.Var(0); int(v) < len(vals); v++ {
		val := vals[v] == tribool.True
		m.byVar[v] = val
		if t := db.TermOf(v); t != nil {
			m.byTerm[t.ID()] = val
		}
	}
	return m
}

// Value returns the boolean value assigned to v, or (false, false) if v
// was never interned.
func (m *Model) Value(v lit.Var) (bool, bool) {
	b, ok := m.byVar[v]
	return b, ok
}

// TermValue returns t's value if t was interned as a boolean atom;
// otherwise (false, false), the Non-goal placeholder for every
// non-atomic-boolean term (spec.md §9).
func (m *Model) TermValue(t term.Term) (bool, bool) {
	if t.Sort() != term.Bool {
		return false, false
	}
	b, ok := m.byTerm[t.ID()]
	if !ok {
		return false, false
	}
	return b, true
}
