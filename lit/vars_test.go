package lit

import "testing"

func TestVarsAssignUnassign(t *testing.T) {
	vs := NewVars(4)
	a := vs.NewVar().Pos()
	if !vs.IsUnassigned(a) {
		t.Errorf("fresh var should be unassigned")
	}
	vs.Assign(a, 1, Reason{Kind: ReasonDecision})
	if !vs.IsTrue(a) {
		t.Errorf("a should be true")
	}
	if !vs.IsFalse(a.Not()) {
		t.Errorf("not(a) should be false")
	}
	if vs.Level[a.Var()] != 1 {
		t.Errorf("level: got %d want 1", vs.Level[a.Var()])
	}
	vs.Unassign(a)
	if !vs.IsUnassigned(a) {
		t.Errorf("a should be unassigned after Unassign")
	}
	if vs.Level[a.Var()] != -1 {
		t.Errorf("level should reset to -1")
	}
}

func TestVarsGrow(t *testing.T) {
	vs := NewVars(2)
	for i := 0; i < 10; i++ {
		vs.NewVar()
	}
	if vs.NVars() != 10 {
		t.Errorf("nvars: got %d want 10", vs.NVars())
	}
}
