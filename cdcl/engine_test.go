package cdcl

import (
	"testing"

	"github.com/coresat/cdclt/clausedb"
	"github.com/coresat/cdclt/lit"
	"github.com/coresat/cdclt/tribool"
)

func newTestEngine(nVars int) (*Engine, *clausedb.DB, []lit.Var) {
	db := clausedb.NewDB()
	vars := make([]lit.Var, nVars)
	for i := range vars {
		vars[i] = db.Vars.NewVar()
	}
	e := NewEngine(db, nil)
	return e, db, vars
}

func TestSolveTrivialUnsat(t *testing.T) {
	e, db, vars := newTestEngine(1)
	a := vars[0].Pos()
	if ok, _ := e.AddClause([]lit.Atom{a}, clausedb.HypPremise()); !ok {
		t.Fatalf("unexpected immediate conflict")
	}
	if ok, _ := e.AddClause([]lit.Atom{a.Not()}, clausedb.HypPremise()); ok {
		t.Fatalf("expected unit conflict on asserting ¬a after a")
	}
	_ = db
	status, _ := e.Solve(nil)
	if status != StatusUnsat {
		t.Fatalf("expected Unsat, got %v", status)
	}
}

func TestSolveSat(t *testing.T) {
	e, _, vars := newTestEngine(2)
	p, q := vars[0].Pos(), vars[1].Pos()

	// {p, q}, {¬p, q} -- forces q = true in every model.
	ok1, _ := e.AddClause([]lit.Atom{p, q}, clausedb.HypPremise())
	ok2, _ := e.AddClause([]lit.Atom{p.Not(), q}, clausedb.HypPremise())
	if !ok1 || !ok2 {
		t.Fatalf("unexpected conflict adding clauses")
	}

	status, _ := e.Solve(nil)
	if status != StatusSat {
		t.Fatalf("expected Sat, got %v", status)
	}
	if m := e.Model(); m[q.Var()] != tribool.True {
		t.Fatalf("expected q=true in every model")
	}
}

func TestSolveAssumptionsDoNotLeakBetweenCalls(t *testing.T) {
	e, _, vars := newTestEngine(2)
	p, q := vars[0].Pos(), vars[1].Pos()

	// {p, q} forces q true whenever p is false; with p assumed true it is
	// satisfiable either way. A second call assuming ¬p must see q free
	// of any assignment the first call's assumption left behind.
	if ok, _ := e.AddClause([]lit.Atom{p, q}, clausedb.HypPremise()); !ok {
		t.Fatalf("unexpected conflict adding clause")
	}

	status, _ := e.Solve([]lit.Atom{p})
	if status != StatusSat {
		t.Fatalf("expected Sat on first call, got %v", status)
	}

	status, _ = e.Solve([]lit.Atom{p.Not()})
	if status != StatusSat {
		t.Fatalf("expected Sat on second call, got %v", status)
	}
	if !e.db.Vars.IsTrue(q) {
		t.Fatalf("expected q forced true once p is false, got unassigned/false")
	}
}

func TestSolveLearnsAndBackjumps(t *testing.T) {
	e, _, vars := newTestEngine(3)
	a, b, c := vars[0].Pos(), vars[1].Pos(), vars[2].Pos()

	// A small unsatisfiable instance forcing at least one conflict/learn.
	clauses := [][]lit.Atom{
		{a, b, c},
		{a, b, c.Not()},
		{a, b.Not(), c},
		{a, b.Not(), c.Not()},
		{a.Not(), b, c},
		{a.Not(), b, c.Not()},
		{a.Not(), b.Not(), c},
		{a.Not(), b.Not(), c.Not()},
	}
	for _, cl := range clauses {
		if ok, _ := e.AddClause(cl, clausedb.HypPremise()); !ok {
			t.Fatalf("unexpected conflict adding clause %v", cl)
		}
	}
	status, core := e.Solve(nil)
	if status != StatusUnsat {
		t.Fatalf("expected Unsat for the full 3-var clause set, got %v", status)
	}
	if len(core) == 0 {
		t.Fatalf("expected a conflicting clause reported")
	}
}
