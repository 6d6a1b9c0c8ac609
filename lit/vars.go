package lit

import "github.com/coresat/cdclt/tribool"

// Vars is the per-variable store shared by the clause database, the CDCL
// engine, and conflict analysis. Every slice is indexed by Var.
type Vars struct {
	Vals      []tribool.Tribool // current assignment, Undef until set
	Level     []int32           // decision level assigned at, -1 if unassigned
	Weight    []float64         // VSIDS-style activity
	HeapIndex []int             // position in the decision heap, -1 if absent
	Reason    []Reason
	SeenPos   []bool // conflict-analysis scratch flags
	SeenNeg   []bool
	PolCache  []bool // phase-saving: last polarity (true == negative atom last assigned)

	VarInc  float64 // activity bump amount, grows as decay is applied
	VarDecay float64
}

// NewVars returns a store with capacity for n variables, none yet in use.
func NewVars(n int) *Vars {
	v := &Vars{VarInc: 1.0, VarDecay: 0.95}
	v.growTo(n)
	return v
}

// NVars returns the number of variables currently in use.
func (v *Vars) NVars() int { return len(v.Vals) }

// NewVar allocates and returns a fresh variable.
func (v *Vars) NewVar() Var {
	n := Var(len(v.Vals))
	if int(n) >= cap(v.Vals) {
		v.growTo(int(n) + 1)
	}
	v.Vals = append(v.Vals, tribool.Undef)
	v.Level = append(v.Level, -1)
	v.Weight = append(v.Weight, 0)
	v.HeapIndex = append(v.HeapIndex, -1)
	v.Reason = append(v.Reason, NoReason)
	v.SeenPos = append(v.SeenPos, false)
	v.SeenNeg = append(v.SeenNeg, false)
	v.PolCache = append(v.PolCache, false)
	return n
}

func (v *Vars) growTo(n int) {
	if n <= cap(v.Vals) {
		return
	}
	if c := 2 * cap(v.Vals); c > n {
		n = c
	}
	v.Vals = append(make([]tribool.Tribool, 0, n), v.Vals...)
	v.Level = append(make([]int32, 0, n), v.Level...)
	v.Weight = append(make([]float64, 0, n), v.Weight...)
	v.HeapIndex = append(make([]int, 0, n), v.HeapIndex...)
	v.Reason = append(make([]Reason, 0, n), v.Reason...)
	v.SeenPos = append(make([]bool, 0, n), v.SeenPos...)
	v.SeenNeg = append(make([]bool, 0, n), v.SeenNeg...)
	v.PolCache = append(make([]bool, 0, n), v.PolCache...)
}

// AtomValue returns the current tri-valued assignment of atom a, accounting
// for its sign.
func (v *Vars) AtomValue(a Atom) tribool.Tribool {
	if a == AtomUndef {
		return tribool.Undef
	}
	val := v.Vals[a.Var()]
	if a.Sign() {
		return val.Not()
	}
	return val
}

// IsTrue reports whether atom a is currently assigned true.
func (v *Vars) IsTrue(a Atom) bool { return v.AtomValue(a) == tribool.True }

// IsFalse reports whether atom a is currently assigned false.
func (v *Vars) IsFalse(a Atom) bool { return v.AtomValue(a) == tribool.False }

// IsUnassigned reports whether the variable underlying a has no value.
func (v *Vars) IsUnassigned(a Atom) bool { return v.AtomValue(a) == tribool.Undef }

// Assign sets atom a true (and hence its dual false) at level lvl with the
// given reason.
func (v *Vars) Assign(a Atom, lvl int, r Reason) {
	val := tribool.True
	if a.Sign() {
		val = tribool.False
	}
	v.Vals[a.Var()] = val
	v.Level[a.Var()] = int32(lvl)
	v.Reason[a.Var()] = r
}

// Unassign clears the variable underlying a back to Undef, saving its last
// polarity for the decision heuristic's phase-saving (spec.md §4.4 "next
// unassigned atom from heap, preferring polarity cache").
func (v *Vars) Unassign(a Atom) {
	vr := a.Var()
	v.PolCache[vr] = v.Vals[vr] == tribool.False
	v.Vals[vr] = tribool.Undef
	v.Level[vr] = -1
	v.Reason[vr] = NoReason
}

// ClearSeen resets the conflict-analysis scratch flags for v.
func (vs *Vars) ClearSeen(v Var) {
	vs.SeenPos[v] = false
	vs.SeenNeg[v] = false
}
