// Package cdcl implements the CDCL search engine (spec.md §4.4, C4): the
// main solve loop, BCP driven through the clause database's watch lists,
// first-UIP conflict analysis, VSIDS variable activity, and the theory
// interface's check-point dispatch.
package cdcl

import (
	"github.com/coresat/cdclt/clausedb"
	"github.com/coresat/cdclt/lit"
	"github.com/coresat/cdclt/theory"
	"github.com/coresat/cdclt/tribool"
)

// Status is the outcome of a Solve call.
type Status uint8

const (
	// StatusSat means every clause is satisfied under the current model.
	StatusSat Status = iota
	// StatusUnsat means no satisfying assignment exists at the root level.
	StatusUnsat
	// StatusUnknown means the search was aborted (timeout or step bound).
	StatusUnknown
)

// Stats tallies search progress, surfaced through the solver's metrics.
type Stats struct {
	Conflicts     int64
	Decisions     int64
	Propagations  int64
	Restarts      int64
}

// Engine is the CDCL search engine. It owns the trail and the decision
// heap; the clause database and (optionally) the theory interface are
// supplied at construction.
type Engine struct {
	db   *clausedb.DB
	heap *varHeap
	si   *theory.SI

	trail     *Trail
	propQ     *lit.Queue
	rootLevel int

	reduce  *reduceSchedule
	restart RestartPolicy

	semanticReasons []theory.Consequence

	Stats Stats

	// OnProgress is called once per BCP round; returning true aborts the
	// search, which returns StatusUnknown (spec.md's TimeoutLike/on_progress).
	OnProgress func() bool

	acts *engineActs

	// ok is cleared the moment any clause addition (initial or theory) is
	// found conflicting at the root level; once false the instance is
	// permanently unsatisfiable and Solve short-circuits to it (spec.md
	// §7 "Unsat at level 0 — not an error").
	ok           bool
	rootConflict clausedb.ClauseID

	// model is the assignment snapshotted at the moment a StatusSat verdict
	// is found, before the trail is cancelled back to rootLevel; reading
	// db.Vars.Vals after that cancel would see Undef for every variable
	// decided above rootLevel.
	model []tribool.Tribool
}

// NewEngine returns an engine over db, with theory interface si (nil for a
// pure-propositional solve).
func NewEngine(db *clausedb.DB, si *theory.SI) *Engine {
	e := &Engine{
		db:           db,
		heap:         newVarHeap(db.Vars),
		si:           si,
		trail:        NewTrail(),
		propQ:        lit.NewQueue(),
		reduce:       newReduceSchedule(0),
		restart:      NewLubyRestart(100),
		ok:           true,
		rootConflict: clausedb.ClauseIDNull,
	}
	e.acts = &engineActs{e: e}
	for v := lit.Var(0); int(v) < db.Vars.NVars(); v++ {
		e.heap.insert(v)
	}
	return e
}

// NotifyNewVar tells the engine's decision heap about a variable the
// clause database just interned.
func (e *Engine) NotifyNewVar(v lit.Var) { e.heap.insert(v) }

// storeSemanticReason records a theory propagation's lazy reason thunk,
// returning a handle materializeReason can later resolve.
func (e *Engine) storeSemanticReason(c theory.Consequence) lit.ClauseRef {
	e.semanticReasons = append(e.semanticReasons, c)
	return lit.ClauseRef(len(e.semanticReasons) - 1)
}

func (e *Engine) semanticReason(ref lit.ClauseRef) ([]lit.Atom, theory.Token) {
	return e.semanticReasons[ref]()
}

// assign records a at the current decision level with reason r, or reports
// false if a is already assigned to the opposite value (a genuine
// conflict). Assigning an atom already true is a no-op success.
func (e *Engine) assign(a lit.Atom, r lit.Reason) bool {
	if e.db.Vars.IsFalse(a) {
		return false
	}
	if e.db.Vars.IsTrue(a) {
		return true
	}
	e.db.Vars.Assign(a, e.trail.Level(), r)
	e.trail.Push(a)
	e.propQ.Push(a)
	return true
}

// bcpAssign adapts assign to clausedb.Assigner's signature for PropagateAtom.
func (e *Engine) bcpAssign(a lit.Atom, ref lit.ClauseRef) bool {
	return e.assign(a, lit.Reason{Kind: lit.ReasonBCP, Ref: ref})
}

// decide pushes a fresh decision level and assigns the heap's best
// unassigned variable, preferring its cached polarity (spec.md §4.4 "next
// unassigned atom from heap, preferring polarity cache").
func (e *Engine) decide() bool {
	var v lit.Var
	for {
		v = e.heap.popBest()
		if v == lit.VarUndef {
			return false
		}
		if e.db.Vars.IsUnassigned(v.Pos()) {
			break
		}
	}
	e.trail.NewDecisionLevel()
	a := v.Pos()
	if e.db.Vars.PolCache[v] {
		a = v.Neg()
	}
	e.Stats.Decisions++
	e.assign(a, lit.Reason{Kind: lit.ReasonDecision, Ref: lit.ClauseRefNull})
	return true
}

// propagate drains the propagation queue via the clause database's watch
// lists, interleaving the theory interface's partial check between BCP
// rounds and its final check once propagation has fully stabilized
// (spec.md §4.4). It returns the conflicting clause id, or ClauseIDNull.
func (e *Engine) propagate() (conflict clausedb.ClauseID) {
	defer func() {
		if r := recover(); r != nil {
			tc, ok := r.(theoryConflict)
			if !ok {
				panic(r)
			}
			e.propQ.Clear()
			conflict = tc.id
		}
	}()

	checked := 0
	for {
		for e.propQ.Len() > 0 {
			a := e.propQ.Pop()
			e.Stats.Propagations++
			if c := e.db.PropagateAtom(a, e.bcpAssign); c != clausedb.ClauseIDNull {
				e.propQ.Clear()
				return c
			}
		}
		if e.si == nil {
			return clausedb.ClauseIDNull
		}
		fresh := e.trail.Len() - checked
		if fresh > 0 {
			lits := make([]lit.Atom, fresh)
			for i := 0; i < fresh; i++ {
				lits[i] = e.trail.At(checked + i)
			}
			checked = e.trail.Len()
			e.si.AssertLits(false, lits, e.acts)
		}
		if e.propQ.Len() > 0 {
			continue
		}
		e.si.AssertLits(true, nil, e.acts)
		if e.propQ.Len() == 0 {
			return clausedb.ClauseIDNull
		}
	}
}

// addTheoryClause implements acts.add_clause: install a clause at level 0,
// backjumping to level 0 first so the install always happens at the root.
// keep only selects the recorded premise (Hyp if keep, else Local; Lemma
// whenever pr is non-nil); the clause is never removed in either case.
func (e *Engine) addTheoryClause(lits []lit.Atom, keep bool, pr theory.Token) {
	e.trail.CancelUntil(0, e.db, e.heap)
	premise := clausedb.LocalPremise()
	switch {
	case pr != nil:
		premise = clausedb.LemmaPremise(pr)
	case keep:
		premise = clausedb.HypPremise()
	}
	c := e.db.NewClause(lits, premise)
	switch c.Len() {
	case 0:
		panic(theoryConflict{id: c.ID})
	case 1:
		if !e.assign(c.Atoms[0], lit.Reason{Kind: lit.ReasonBCP, Ref: lit.ClauseRef(c.ID)}) {
			panic(theoryConflict{id: c.ID})
		}
	default:
		e.db.Attach(c)
	}
}

// AddClause allocates and, for clauses of length >= 2, attaches a clause
// built from atoms under the given premise (spec.md §4.2's make_clause + the
// CDCL engine's attachment responsibility). A unit clause is enqueued
// directly; an empty clause reports an immediate (root-level) conflict.
func (e *Engine) AddClause(atoms []lit.Atom, premise clausedb.Premise) (ok bool, id clausedb.ClauseID) {
	c := e.db.NewClause(atoms, premise)
	switch c.Len() {
	case 0:
		ok = false
	case 1:
		ok = e.assign(c.Atoms[0], lit.Reason{Kind: lit.ReasonBCP, Ref: lit.ClauseRef(c.ID)})
	default:
		e.db.Attach(c)
		ok = true
	}
	if !ok && e.trail.Level() == 0 {
		e.ok = false
		e.rootConflict = c.ID
	}
	return ok, c.ID
}

// SetRestartPolicy swaps the engine's restart policy; callers typically do
// this once, before the first Solve call.
func (e *Engine) SetRestartPolicy(p RestartPolicy) { e.restart = p }

// Configure retunes the default Luby restart unit and the clause-DB
// reduction schedule's initial budget; callers typically do this once,
// right after NewEngine, from config.Config's RestartUnit/ReduceInitial.
func (e *Engine) Configure(restartUnit int64, reduceInitial int) {
	if restartUnit > 0 {
		e.restart = NewLubyRestart(restartUnit)
	}
	e.reduce = newReduceSchedule(reduceInitial)
}

// Ok reports whether the instance is still potentially satisfiable: false
// once any clause addition has produced a root-level conflict.
func (e *Engine) Ok() bool { return e.ok }

// Solve runs the main CDCL loop (spec.md §4.4) until a model is found, the
// root level conflicts, or OnProgress requests an abort. Assumptions are
// scoped to this call only: any still on the trail from a previous Solve
// are discarded first, so permanent clauses survive but an earlier call's
// assumption-forced assignments never leak into this one (spec.md §8
// property 6, "push/pop round-trip").
func (e *Engine) Solve(assumptions []lit.Atom) (Status, []clausedb.ClauseID) {
	if !e.ok {
		return StatusUnsat, []clausedb.ClauseID{e.rootConflict}
	}
	e.trail.CancelUntil(0, e.db, e.heap)
	e.rootLevel = 0
	for _, a := range assumptions {
		e.trail.NewDecisionLevel()
		if !e.assign(a, lit.Reason{Kind: lit.ReasonDecision, Ref: lit.ClauseRefNull}) {
			return StatusUnsat, nil
		}
	}
	e.rootLevel = e.trail.Level()

	for {
		conflict := e.propagate()
		if e.OnProgress != nil && e.OnProgress() {
			return StatusUnknown, nil
		}
		if conflict != clausedb.ClauseIDNull {
			e.Stats.Conflicts++
			if e.trail.Level() == e.rootLevel {
				return StatusUnsat, []clausedb.ClauseID{conflict}
			}
			learnt, backjump, history := e.analyze(conflict)
			target := backjump
			if target < e.rootLevel {
				target = e.rootLevel
			}
			e.trail.CancelUntil(target, e.db, e.heap)

			premise := clausedb.HistoryPremise(history)
			ok, id := e.AddClause(learnt, premise)
			e.bumpLearntActivities(learnt, id)

			e.db.DecayVarActivity()
			e.db.DecayClauseActivity()
			e.reduce.tick()
			if e.restart.ShouldRestart(e.Stats.Conflicts) {
				e.Stats.Restarts++
				e.trail.CancelUntil(e.rootLevel, e.db, e.heap)
			} else if ok && len(learnt) > 1 {
				e.assign(learnt[0], lit.Reason{Kind: lit.ReasonBCP, Ref: lit.ClauseRef(id)})
			}
			continue
		}

		if e.trail.Len() == e.db.Vars.NVars() {
			e.snapshotModel()
			e.trail.CancelUntil(e.rootLevel, e.db, e.heap)
			return StatusSat, nil
		}
		if e.reduce.shouldReduce(len(e.db.Learnts), e.trail.Len()) {
			e.db.ReduceLearnts()
		}
		if !e.decide() {
			e.snapshotModel()
			e.trail.CancelUntil(e.rootLevel, e.db, e.heap)
			return StatusSat, nil
		}
	}
}

func (e *Engine) bumpLearntActivities(learnt []lit.Atom, id clausedb.ClauseID) {
	if id == clausedb.ClauseIDNull {
		return
	}
	c := e.db.Clause(id)
	if c.Learnt() {
		e.db.BumpClauseActivity(c)
	}
	for _, a := range learnt {
		e.db.BumpVarActivity(a, e.heap.fix)
	}
}

// snapshotModel copies the current total assignment into e.model, before
// the trail is cancelled back to rootLevel (the teacher's search snapshots
// s.model the same way, ahead of its own pre-return cancelUntil).
func (e *Engine) snapshotModel() {
	e.model = make([]tribool.Tribool, e.db.Vars.NVars())
	copy(e.model, e.db.Vars.Vals)
}

// Model returns the assignment snapshotted at the most recent StatusSat
// verdict; valid only after Solve has returned StatusSat.
func (e *Engine) Model() []tribool.Tribool {
	out := make([]tribool.Tribool, len(e.model))
	copy(out, e.model)
	return out
}
