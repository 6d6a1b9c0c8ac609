// Package proof implements the resolution-DAG proof reconstructor
// (spec.md §4.6, C6): given a clause's provenance chain of History
// premises, it reconstructs a proof tree bottoming out at Hyp/Local/Lemma
// leaves, and can extract the unsat core and emit a DOT rendering.
package proof

import (
	"fmt"
	"sort"
	"strings"

	"github.com/coresat/cdclt/clausedb"
	"github.com/coresat/cdclt/lit"
)

// NodeKind tags a proof DAG node.
type NodeKind uint8

const (
	// Hypothesis is a leaf for a Hyp or Local premise.
	Hypothesis NodeKind = iota
	// LemmaNode is a leaf for a theory Lemma premise.
	LemmaNode
	// ResolutionNode resolves two parent proofs on a pivot variable.
	ResolutionNode
)

// Node is one proved clause in the resolution DAG.
type Node struct {
	Kind    NodeKind
	Atoms   []lit.Atom // the clause's sorted atom list (by atom id)
	Pivot   lit.Var    // set iff Kind == ResolutionNode
	Parents [2]*Node   // set iff Kind == ResolutionNode
	Token   interface{} // theory proof token, set iff Kind == LemmaNode
	ID      clausedb.ClauseID
}

// ResolutionError is returned when resolving two clauses on a pivot
// produces zero or more than one canceling literal pair — a history-
// premise inconsistency, and hence a solver bug (spec.md §7).
type ResolutionError struct {
	C1, C2 clausedb.ClauseID
	Pivots int
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("resolution error between clause %d and %d: %d candidate pivots", e.C1, e.C2, e.Pivots)
}

// InsufficientHypotheses is returned when prove_unsat cannot close the
// proof with the premises available; it is fatal to proof production but
// does not invalidate the UNSAT verdict itself (spec.md §7).
type InsufficientHypotheses struct {
	Remaining []lit.Atom
}

func (e *InsufficientHypotheses) Error() string {
	return fmt.Sprintf("insufficient hypotheses to close proof: %d literals remain", len(e.Remaining))
}

// Reconstructor proves clauses from a clause database, memoizing by sorted
// atom-id key (spec.md §4.6's "proof hash table").
type Reconstructor struct {
	db    *clausedb.DB
	proved map[string]*Node
}

// NewReconstructor returns a reconstructor over db.
func NewReconstructor(db *clausedb.DB) *Reconstructor {
	return &Reconstructor{db: db, proved: make(map[string]*Node)}
}

func key(atoms []lit.Atom) string {
	sorted := append([]lit.Atom(nil), atoms...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	var b strings.Builder
	for _, a := range sorted {
		fmt.Fprintf(&b, "%d,", a)
	}
	return b.String()
}

// IsProven reports whether id is already in the proof table; if not and
// its premise is a leaf kind (Hyp, Local, Lemma), it is inserted as a leaf
// and true is returned. Only a History premise returns false, signaling
// the caller that its parents must be proved first (spec.md §4.6).
func (r *Reconstructor) IsProven(id clausedb.ClauseID) (*Node, bool) {
	c := r.db.Clause(id)
	k := key(c.Atoms)
	if n, ok := r.proved[k]; ok {
		return n, true
	}
	atoms := append([]lit.Atom(nil), c.Atoms...)
	sort.Slice(atoms, func(i, j int) bool { return atoms[i] < atoms[j] })
	switch c.Premise.Kind {
	case clausedb.Hyp, clausedb.Local:
		n := &Node{Kind: Hypothesis, Atoms: atoms, ID: id}
		r.proved[k] = n
		return n, true
	case clausedb.Lemma:
		n := &Node{Kind: LemmaNode, Atoms: atoms, Token: c.Premise.Token, ID: id}
		r.proved[k] = n
		return n, true
	default:
		return nil, false
	}
}

// Prove proves id, worklist-driven: parents are proved first, then
// linearly resolved in order (spec.md §4.6). Mismatches between the
// parents' fold and id's actual atom list are closed with unit resolution
// against level-0 BCP reasons.
func (r *Reconstructor) Prove(id clausedb.ClauseID) (*Node, error) {
	if n, ok := r.IsProven(id); ok {
		return n, nil
	}
	c := r.db.Clause(id)
	parents := c.Premise.Parents
	if len(parents) == 0 {
		return nil, &ResolutionError{C1: id, C2: id, Pivots: 0}
	}

	first, err := r.Prove(parents[0])
	if err != nil {
		return nil, err
	}
	acc := first
	for _, pid := range parents[1:] {
		pn, err := r.Prove(pid)
		if err != nil {
			return nil, err
		}
		acc, err = r.addRes(acc, pn)
		if err != nil {
			return nil, err
		}
	}

	acc, err = r.closeGap(acc, c.Atoms)
	if err != nil {
		return nil, err
	}
	result := *acc
	result.ID = id
	r.proved[key(c.Atoms)] = &result
	return &result, nil
}

// addRes computes the single resolution step between c and d: the sorted
// merge of their atom lists minus exactly one canceling (pivot, ¬pivot)
// pair. Zero or multiple candidate pivots is a ResolutionError.
func (r *Reconstructor) addRes(c, d *Node) (*Node, error) {
	inC := make(map[lit.Atom]bool, len(c.Atoms))
	for _, a := range c.Atoms {
		inC[a] = true
	}
	var pivots []lit.Var
	for _, a := range d.Atoms {
		if inC[a.Not()] {
			pivots = append(pivots, a.Var())
		}
	}
	if len(pivots) != 1 {
		return nil, &ResolutionError{C1: c.ID, C2: d.ID, Pivots: len(pivots)}
	}
	pivot := pivots[0]

	merged := make(map[lit.Atom]bool)
	for _, a := range c.Atoms {
		if a.Var() != pivot {
			merged[a] = true
		}
	}
	for _, a := range d.Atoms {
		if a.Var() != pivot {
			merged[a] = true
		}
	}
	out := make([]lit.Atom, 0, len(merged))
	for a := range merged {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	return &Node{Kind: ResolutionNode, Atoms: out, Pivot: pivot, Parents: [2]*Node{c, d}}, nil
}

// closeGap performs unit resolution to reconcile acc's folded atom list
// with target: for every literal the fold produced that target lacks, its
// variable's level-0 BCP reason is located and resolved in to remove it; a
// literal without such a reason yields InsufficientHypotheses (spec.md
// §4.6's "learnt-clause minimization reversal").
func (r *Reconstructor) closeGap(acc *Node, target []lit.Atom) (*Node, error) {
	want := make(map[lit.Atom]bool, len(target))
	for _, a := range target {
		want[a] = true
	}
	have := make(map[lit.Atom]bool, len(acc.Atoms))
	for _, a := range acc.Atoms {
		have[a] = true
	}
	var extra []lit.Atom
	for a := range have {
		if !want[a] {
			extra = append(extra, a)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })

	for _, a := range extra {
		v := a.Var()
		reason := r.db.Vars.Reason[v]
		if reason.Kind != lit.ReasonBCP || r.db.Vars.Level[v] != 0 {
			return nil, &InsufficientHypotheses{Remaining: []lit.Atom{a}}
		}
		unitID := clausedb.ClauseID(reason.Ref)
		unitNode, err := r.Prove(unitID)
		if err != nil {
			return nil, err
		}
		acc, err = r.addRes(acc, unitNode)
		if err != nil {
			return nil, err
		}
	}
	return acc, nil
}

// ProveUnsat proves conflict, then repeatedly resolves it against level-0
// unit reasons of its remaining literals until the empty clause is
// derived (spec.md §4.6).
func (r *Reconstructor) ProveUnsat(conflict clausedb.ClauseID) (*Node, error) {
	n, err := r.Prove(conflict)
	if err != nil {
		return nil, err
	}
	for len(n.Atoms) > 0 {
		a := n.Atoms[0]
		v := a.Var()
		reason := r.db.Vars.Reason[v]
		if reason.Kind != lit.ReasonBCP || r.db.Vars.Level[v] != 0 {
			return n, &InsufficientHypotheses{Remaining: n.Atoms}
		}
		unitNode, err := r.Prove(clausedb.ClauseID(reason.Ref))
		if err != nil {
			return n, err
		}
		n, err = r.addRes(n, unitNode)
		if err != nil {
			return n, err
		}
	}
	return n, nil
}

// UnsatCore walks the resolution DAG rooted at n depth-first, collecting
// the clause ids of every Hypothesis and Lemma leaf, deduplicated by
// clause identity (spec.md §4.6).
func UnsatCore(n *Node) []clausedb.ClauseID {
	seen := make(map[clausedb.ClauseID]bool)
	var out []clausedb.ClauseID
	var walk func(*Node)
	walk = func(x *Node) {
		switch x.Kind {
		case Hypothesis, LemmaNode:
			if !seen[x.ID] {
				seen[x.ID] = true
				out = append(out, x.ID)
			}
		case ResolutionNode:
			walk(x.Parents[0])
			walk(x.Parents[1])
		}
	}
	walk(n)
	return out
}
