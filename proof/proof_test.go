package proof

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/coresat/cdclt/clausedb"
	"github.com/coresat/cdclt/lit"
)

// TestProveS1TrivialUnsat mirrors spec.md §8 scenario S1: assert {a} and
// {¬a}; the conflict resolves in exactly one step over a.
func TestProveS1TrivialUnsat(t *testing.T) {
	db := clausedb.NewDB()
	v := db.Vars.NewVar()
	a := v.Pos()

	hyp1 := db.NewClause([]lit.Atom{a}, clausedb.HypPremise())
	db.Vars.Assign(a, 0, lit.Reason{Kind: lit.ReasonBCP, Ref: lit.ClauseRef(hyp1.ID)})

	hyp2 := db.NewClause([]lit.Atom{a.Not()}, clausedb.HypPremise())
	conflict := db.NewClause([]lit.Atom{}, clausedb.HistoryPremise([]clausedb.ClauseID{hyp2.ID, hyp1.ID}))

	r := NewReconstructor(db)
	n, err := r.Prove(conflict.ID)
	if err != nil {
		t.Fatalf("prove failed: %v", err)
	}
	if len(n.Atoms) != 0 {
		t.Fatalf("expected the empty clause, got %v", n.Atoms)
	}
	if n.Kind != ResolutionNode || n.Pivot != v {
		t.Fatalf("expected a single resolution step over a, got kind=%v pivot=%v", n.Kind, n.Pivot)
	}

	core := UnsatCore(n)
	if len(core) != 2 {
		t.Fatalf("expected unsat core of size 2, got %d", len(core))
	}
}

func TestDOTWellFormed(t *testing.T) {
	db := clausedb.NewDB()
	v := db.Vars.NewVar()
	a := v.Pos()

	hyp1 := db.NewClause([]lit.Atom{a}, clausedb.HypPremise())
	hyp2 := db.NewClause([]lit.Atom{a.Not()}, clausedb.HypPremise())
	conflict := db.NewClause([]lit.Atom{}, clausedb.HistoryPremise([]clausedb.ClauseID{hyp2.ID, hyp1.ID}))

	r := NewReconstructor(db)
	n, err := r.Prove(conflict.ID)
	if err != nil {
		t.Fatalf("prove failed: %v", err)
	}

	out := DOT(n)
	if !strings.HasPrefix(out, "digraph proof {") {
		t.Fatalf("expected a digraph preamble")
	}
	if strings.Count(out, "_pivot") == 0 {
		t.Fatalf("expected at least one pivot node")
	}
}

// TestUnsatCoreStableUnderParentOrder proves the same clause resolved in
// either parent order yields the same core set, up to order: History
// premises list parents in fold order, but the core is a set.
func TestUnsatCoreStableUnderParentOrder(t *testing.T) {
	db := clausedb.NewDB()
	v := db.Vars.NewVar()
	a := v.Pos()

	hyp1 := db.NewClause([]lit.Atom{a}, clausedb.HypPremise())
	hyp2 := db.NewClause([]lit.Atom{a.Not()}, clausedb.HypPremise())

	forward := db.NewClause([]lit.Atom{}, clausedb.HistoryPremise([]clausedb.ClauseID{hyp2.ID, hyp1.ID}))
	backward := db.NewClause([]lit.Atom{}, clausedb.HistoryPremise([]clausedb.ClauseID{hyp1.ID, hyp2.ID}))

	r := NewReconstructor(db)
	nf, err := r.Prove(forward.ID)
	if err != nil {
		t.Fatalf("prove forward failed: %v", err)
	}
	r2 := NewReconstructor(db)
	nb, err := r2.Prove(backward.ID)
	if err != nil {
		t.Fatalf("prove backward failed: %v", err)
	}

	coreForward := UnsatCore(nf)
	coreBackward := UnsatCore(nb)
	less := func(a, b clausedb.ClauseID) bool { return a < b }
	if diff := cmp.Diff(coreForward, coreBackward, cmpopts.SortSlices(less)); diff != "" {
		t.Fatalf("unsat core mismatch under parent-order swap (-forward +backward):\n%s", diff)
	}
}

func TestResolutionErrorOnBadMerge(t *testing.T) {
	db := clausedb.NewDB()
	v1 := db.Vars.NewVar()
	v2 := db.Vars.NewVar()
	a, b := v1.Pos(), v2.Pos()

	c1 := db.NewClause([]lit.Atom{a}, clausedb.HypPremise())
	c2 := db.NewClause([]lit.Atom{b}, clausedb.HypPremise()) // shares no pivot with c1
	bogus := db.NewClause([]lit.Atom{a, b}, clausedb.HistoryPremise([]clausedb.ClauseID{c1.ID, c2.ID}))

	r := NewReconstructor(db)
	_, err := r.Prove(bogus.ID)
	if err == nil {
		t.Fatalf("expected a resolution error when no pivot cancels")
	}
	if _, ok := err.(*ResolutionError); !ok {
		t.Fatalf("expected *ResolutionError, got %T", err)
	}
}
