package solver

import (
	"testing"

	"github.com/coresat/cdclt/term"
)

func TestCtlGoSolveWaitReturnsResult(t *testing.T) {
	s := New(nil)
	f := term.NewFactory()
	p := s.MkAtom(f.BoolAtom("p"), false)
	if err := s.AddClause(p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	c := NewCtl(s, 0)
	c.GoSolve(nil, CheckNone)
	res := c.Wait()
	if res.Kind != ResultSat {
		t.Fatalf("expected Sat, got %v", res.Kind)
	}
}

func TestCtlCancelYieldsUnknown(t *testing.T) {
	s := New(nil)
	c := NewCtl(s, 1000)

	// A cancellation requested before the search starts is observed on the
	// very first throttled progress check.
	c.Cancel()
	c.GoSolve(nil, CheckNone)
	res := c.Wait()
	if res.Kind != ResultUnknown {
		t.Fatalf("expected Unknown after cancel, got %v", res.Kind)
	}
	if res.Reason != ReasonTimeout {
		t.Fatalf("expected ReasonTimeout, got %v", res.Reason)
	}
}
