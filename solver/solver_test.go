package solver

import (
	"testing"

	"github.com/coresat/cdclt/term"
)

func TestAddClauseRootConflictIsReported(t *testing.T) {
	s := New(nil)
	f := term.NewFactory()
	a := f.BoolAtom("a")
	pos := s.MkAtom(a, false)

	if err := s.AddClause(pos); err != nil {
		t.Fatalf("unexpected error asserting a: %v", err)
	}
	if err := s.AddClause(pos.Not()); err == nil {
		t.Fatalf("expected a root-level conflict asserting ~a after a")
	}
}

func TestSolveSatReportsModel(t *testing.T) {
	s := New(nil)
	f := term.NewFactory()
	p := s.MkAtom(f.BoolAtom("p"), false)
	q := s.MkAtom(f.BoolAtom("q"), false)

	if err := s.AddClause(p, q); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.AddClause(p.Not(), q); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	res := s.Solve(nil, nil, CheckNone)
	if res.Kind != ResultSat {
		t.Fatalf("expected Sat, got %v", res.Kind)
	}
	if val, ok := res.Model.Value(q.Var()); !ok || !val {
		t.Fatalf("expected q=true in every model, got %v ok=%v", val, ok)
	}
}

func TestSolveUnsatProducesCore(t *testing.T) {
	s := New(nil)
	f := term.NewFactory()
	a := s.MkAtom(f.BoolAtom("a"), false)

	if err := s.AddClause(a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.AddClause(a.Not()); err == nil {
		t.Fatalf("expected immediate root conflict")
	}

	res := s.Solve(nil, nil, CheckProof)
	if res.Kind != ResultUnsat {
		t.Fatalf("expected Unsat, got %v", res.Kind)
	}
}

func TestDeactivateRetiresGuardedGroup(t *testing.T) {
	s := New(nil)
	f := term.NewFactory()
	p := s.MkAtom(f.BoolAtom("p"), false)

	grp := s.Activate()
	if err := s.AddClause(p.Not()); err != nil { // folded to ~grp \/ ~p
		t.Fatalf("unexpected error: %v", err)
	}
	s.activeGroup = nil
	if err := s.AddClause(p); err != nil { // unconditional: forces p true
		t.Fatalf("unexpected error: %v", err)
	}

	// Retiring the group asserts ~grp, which trivially satisfies ~grp \/
	// ~p regardless of p; the unconditional clause p is the only
	// remaining constraint, so the instance is Sat with p true.
	if err := s.Deactivate(grp); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	res := s.Solve(nil, nil, CheckNone)
	if res.Kind != ResultSat {
		t.Fatalf("expected Sat once the group is retired, got %v", res.Kind)
	}
	if val, ok := res.Model.Value(p.Var()); !ok || !val {
		t.Fatalf("expected p=true, got %v ok=%v", val, ok)
	}
}
