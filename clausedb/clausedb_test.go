package clausedb

import (
	"testing"

	"github.com/coresat/cdclt/lit"
	"github.com/coresat/cdclt/term"
)

func TestMakeAtomInternsOnce(t *testing.T) {
	db := NewDB()
	f := term.NewFactory()
	p := f.BoolAtom("p")

	a1 := db.MakeAtom(term.Make(false, p))
	a2 := db.MakeAtom(term.Make(false, p))
	if a1 != a2 {
		t.Fatalf("interning the same term twice should yield the same atom")
	}
	if db.Vars.NVars() != 1 {
		t.Fatalf("expected 1 variable, got %d", db.Vars.NVars())
	}
}

func TestMakeAtomFoldsNegation(t *testing.T) {
	db := NewDB()
	f := term.NewFactory()
	p := f.BoolAtom("p")
	np := f.Not(p)

	a := db.MakeAtom(term.Make(false, np))
	direct := db.MakeAtom(term.Make(true, p))
	if a != direct {
		t.Fatalf("atom(neg(p), false) should equal atom(p, true)")
	}
}

func unitAssigner(db *DB) Assigner {
	return func(a lit.Atom, ref lit.ClauseRef) bool {
		if db.Vars.IsFalse(a) {
			return false
		}
		if db.Vars.IsTrue(a) {
			return true
		}
		db.Vars.Assign(a, 0, lit.Reason{Kind: lit.ReasonBCP, Ref: ref})
		return true
	}
}

func TestPropagateAtomFindsUnit(t *testing.T) {
	db := NewDB()
	v1 := db.Vars.NewVar()
	v2 := db.Vars.NewVar()
	a1, a2 := v1.Pos(), v2.Pos()

	c := db.NewClause([]lit.Atom{a1, a2}, HypPremise())
	db.Attach(c)

	db.Vars.Assign(a1.Not(), 0, lit.NoReason)
	conflict := db.PropagateAtom(a1.Not(), unitAssigner(db))
	if conflict != ClauseIDNull {
		t.Fatalf("unexpected conflict")
	}
	if !db.Vars.IsTrue(a2) {
		t.Fatalf("expected a2 to be implied true")
	}
	if db.Vars.Reason[v2].Kind != lit.ReasonBCP {
		t.Fatalf("expected BCP reason on v2")
	}
}

func TestPropagateAtomFindsConflict(t *testing.T) {
	db := NewDB()
	v1 := db.Vars.NewVar()
	v2 := db.Vars.NewVar()
	a1, a2 := v1.Pos(), v2.Pos()

	c := db.NewClause([]lit.Atom{a1, a2}, HypPremise())
	db.Attach(c)

	db.Vars.Assign(a2.Not(), 0, lit.NoReason)
	db.Vars.Assign(a1.Not(), 0, lit.NoReason)

	conflict := db.PropagateAtom(a1.Not(), unitAssigner(db))
	if conflict != c.ID {
		t.Fatalf("expected conflict on clause %d, got %d", c.ID, conflict)
	}
}

func TestCheckWatchesHoldsAfterAttach(t *testing.T) {
	db := NewDB()
	v1 := db.Vars.NewVar()
	v2 := db.Vars.NewVar()
	v3 := db.Vars.NewVar()
	c := db.NewClause([]lit.Atom{v1.Pos(), v2.Pos(), v3.Pos()}, HypPremise())
	db.Attach(c)
	if !db.CheckWatches() {
		t.Fatalf("watches should be consistent right after attach")
	}
}

func TestReduceLearntsSkipsLocked(t *testing.T) {
	db := NewDB()
	v1 := db.Vars.NewVar()
	v2 := db.Vars.NewVar()
	v3 := db.Vars.NewVar()
	a1, a2, a3 := v1.Pos(), v2.Pos(), v3.Pos()

	c := db.NewClause([]lit.Atom{a1, a2, a3}, HistoryPremise(nil))
	db.Attach(c)
	db.Vars.Assign(a1, 0, lit.Reason{Kind: lit.ReasonBCP, Ref: lit.ClauseRef(c.ID)})

	removed := db.ReduceLearnts()
	for _, id := range removed {
		if id == c.ID {
			t.Fatalf("locked clause must not be removed")
		}
	}
}
