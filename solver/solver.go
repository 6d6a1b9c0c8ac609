// Package solver assembles the clause database, preprocessor, theory
// interface, CDCL engine, and proof reconstructor into the single
// top-level entry point spec.md §6.4 describes (C7): AddClause, MkAtom,
// AddTheory, Solve.
package solver

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/coresat/cdclt/cdcl"
	"github.com/coresat/cdclt/clausedb"
	"github.com/coresat/cdclt/config"
	"github.com/coresat/cdclt/lit"
	"github.com/coresat/cdclt/preprocess"
	"github.com/coresat/cdclt/proof"
	"github.com/coresat/cdclt/term"
	"github.com/coresat/cdclt/theory"
)

// Solver is the top-level CDCL(T) core (spec.md §2 C7): it owns one
// clause database, one preprocessing pipeline, one theory interface, one
// CDCL engine, and a proof reconstructor built lazily against the same
// database.
type Solver struct {
	db         *clausedb.DB
	simplify   *preprocess.Simplifier
	preprocess *preprocess.Preprocessor
	si         *theory.SI
	engine     *cdcl.Engine
	reconstruct *proof.Reconstructor

	log *logrus.Logger

	activeGroup *lit.Atom
}

// New returns a fresh solver tuned by cfg (config.New's defaults if cfg is
// nil).
func New(cfg *config.Config) *Solver {
	if cfg == nil {
		cfg = config.New()
	}
	db := clausedb.NewDB()
	db.Vars.VarDecay = cfg.VarDecay
	db.ClaDecay = cfg.ClaDecay

	s := &Solver{db: db, log: cfg.Logger}
	if s.log == nil {
		s.log = logrus.StandardLogger()
	}

	s.simplify = preprocess.NewSimplifier()
	s.preprocess = preprocess.NewPreprocessor(s.simplify, s.mkLitForHooks, s.addClauseForHooks)
	s.si = theory.NewSI(s.simplify, s.preprocess)
	s.engine = cdcl.NewEngine(db, s.si)
	s.engine.Configure(cfg.RestartUnit, cfg.ReduceInitial)
	s.reconstruct = proof.NewReconstructor(db)
	return s
}

// mkLitForHooks lets a preprocess hook intern a fresh term mid-rewrite
// (spec.md §4.3's mk_lit), without invoking preprocessing recursively on
// its own output — callers are expected to hand it already-preprocessed
// terms.
func (s *Solver) mkLitForHooks(t term.Term) lit.Atom {
	before := s.db.Vars.NVars()
	a := s.db.MakeAtom(term.Atom(t, false))
	if s.db.Vars.NVars() > before {
		s.engine.NotifyNewVar(lit.Var(before))
	}
	return a
}

// addClauseForHooks lets a preprocess hook assert a Tseitin-style
// definitional clause immediately (spec.md §4.3).
func (s *Solver) addClauseForHooks(atoms []lit.Atom) {
	s.engine.AddClause(atoms, clausedb.LocalPremise())
}

// MkAtom interns t (with sign) as a propositional atom, running it
// through the preprocess pipeline first (spec.md §6.2's mk_lit): the
// literal is simplified, preprocessed (possibly asserting definitional
// clauses along the way), then handed to the clause database. Every
// boolean subterm reachable in the preprocessed term's DAG is also lifted
// to its own atom and reported to the congruence closure via SetAsLit
// (spec.md §4.3's mandatory bool-subterm lifting), so a theory plugin
// keyed off that binding sees it regardless of which atom a caller asked
// for first.
func (s *Solver) MkAtom(t term.Term, sign bool) lit.Atom {
	l := term.Atom(t, sign)
	l = s.preprocess.PreprocessLit(l)
	before := s.db.Vars.NVars()
	a := s.db.MakeAtom(l)
	if s.db.Vars.NVars() > before {
		s.engine.NotifyNewVar(lit.Var(before))
	}
	preprocess.LiftBoolSubterms(l.Term, s.mkLitForHooks, s.si.LiftBoolSubterm, make(map[int]bool))
	return a
}

// AddClause asserts atoms as a permanent hypothesis clause. If a clause
// group is currently active (see Activate), the group's selector is
// folded in so the clause can later be toggled by assumption rather than
// holding unconditionally.
func (s *Solver) AddClause(atoms ...lit.Atom) error {
	if s.activeGroup != nil {
		atoms = append(append([]lit.Atom{}, atoms...), s.activeGroup.Not())
	}
	ok, id := s.engine.AddClause(atoms, clausedb.HypPremise())
	if !ok {
		return errors.Wrapf(ErrRootConflict, "clause %d", id)
	}
	return nil
}

// ErrRootConflict is returned by AddClause when the new clause conflicts
// with the assignment already forced at the root level (spec.md §7:
// "Unsat at level 0 — not an error" from the engine's perspective, but a
// caller adding clauses incrementally still needs to be told).
var ErrRootConflict = errors.New("solver: clause conflicts at the root level")

// AddTheory registers a theory plugin with the theory interface.
func (s *Solver) AddTheory(p theory.Plugin) {
	s.si.RegisterPlugin(p)
}

// SetCC wires the lazily-tied congruence closure (spec.md §9).
func (s *Solver) SetCC(cc theory.CC) {
	s.si.SetCC(cc)
}

// Activate starts a new activation-guarded clause group (spec.md §9
// supplement, grounded on the teacher-family's incremental-clause-group
// sugar): it allocates a fresh selector literal a and folds ¬a into every
// clause AddClause installs from here until the next Activate call. A
// caller assumes a to include the group for one Solve call, or calls
// Deactivate(a) to retire it permanently.
func (s *Solver) Activate() lit.Atom {
	v := s.db.Vars.NewVar()
	s.engine.NotifyNewVar(v)
	a := v.Pos()
	s.activeGroup = &a
	return a
}

// Deactivate permanently retires the clause group guarded by a by
// asserting ¬a as a unit hypothesis; every clause folded under a is from
// then on trivially satisfied.
func (s *Solver) Deactivate(a lit.Atom) error {
	return s.AddClause(a.Not())
}

// Solve runs the CDCL(T) search under assumptions, polling onProgress
// (nil means never abort) once per propagation round, and produces a
// certificate for an Unsat verdict according to check.
func (s *Solver) Solve(assumptions []lit.Atom, onProgress func() bool, check CheckLevel) Result {
	s.engine.OnProgress = onProgress
	status, conflict := s.engine.Solve(assumptions)
	switch status {
	case cdcl.StatusSat:
		return Result{Kind: ResultSat, Model: newModel(s.db, s.engine.Model())}
	case cdcl.StatusUnknown:
		return Result{Kind: ResultUnknown, Reason: ReasonTimeout}
	default:
		return s.unsatResult(conflict, check)
	}
}

func (s *Solver) unsatResult(conflict []clausedb.ClauseID, check CheckLevel) Result {
	r := Result{Kind: ResultUnsat}
	if check == CheckNone || len(conflict) == 0 {
		return r
	}
	n, err := s.reconstruct.ProveUnsat(conflict[0])
	if err != nil {
		r.ProofErr = err
		r.Reason = ReasonIncomplete
		return r
	}
	r.UnsatCore = proof.UnsatCore(n)
	if check == CheckProof {
		r.Proof = n
	}
	return r
}

// SetRestartPolicy swaps the engine's restart policy (spec.md §4.4: the
// schedule itself is unprescribed).
func (s *Solver) SetRestartPolicy(p cdcl.RestartPolicy) { s.engine.SetRestartPolicy(p) }

// SolverStats satisfies metrics.StatsSource.
func (s *Solver) SolverStats() cdcl.Stats { return s.engine.Stats }
