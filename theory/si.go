package theory

import (
	"github.com/coresat/cdclt/lit"
	"github.com/coresat/cdclt/preprocess"
	"github.com/coresat/cdclt/term"
)

// CheckHook is a partial/final check callback a plugin registers; it
// observes the current trail through acts and may propagate or conflict.
type CheckHook func(acts Acts)

// Counters tallies SI-level bookkeeping (how many times each extension
// point fired); package metrics does not export these counters.
type Counters struct {
	PartialChecks int64
	FinalChecks   int64
	PushLevels    int64
	PopLevels     int64
}

// SI is Solver_internal (spec.md §4.5): the bidirectional bridge between
// the SAT engine and theory plugins. It owns the simplify instance, the
// preprocess cache, the plugin chain, and the three callback lists.
type SI struct {
	Simplify   *preprocess.Simplifier
	Preprocess *preprocess.Preprocessor

	plugins []registeredPlugin

	onPartialCheck []CheckHook
	onFinalCheck   []CheckHook

	// cc is resolved lazily (spec.md §9 "lazy CC tie-in"): the top-level
	// solver constructs SI before the congruence closure exists, then
	// calls SetCC once it does. Listener registrations made before SetCC
	// are buffered and replayed onto the real CC.
	cc          CC
	onNewTerm   []func(Node, term.Term)
	onPreMerge  []func(n1, n2 Node)
	onPostMerge []func(n1, n2 Node)
	onConflict  []func(Explanation)
	onPropagate []func(a lit.Atom, expl Explanation)

	Counters Counters
}

// NewSI returns an empty Solver_internal wired to the given
// simplify/preprocess instances.
func NewSI(simplify *preprocess.Simplifier, preprocessor *preprocess.Preprocessor) *SI {
	return &SI{Simplify: simplify, Preprocess: preprocessor}
}

// AddSimplifier registers a simplify hook, taking priority over any hook
// already registered (spec.md "reverse registration order").
func (si *SI) AddSimplifier(h preprocess.SimplifyHook) { si.Simplify.AddHook(h) }

// AddPreprocess registers a preprocess hook, same ordering rule.
func (si *SI) AddPreprocess(h preprocess.PreprocessHook) { si.Preprocess.AddHook(h) }

// OnPartialCheck registers h to run on every assert_lits(final=false).
func (si *SI) OnPartialCheck(h CheckHook) { si.onPartialCheck = append(si.onPartialCheck, h) }

// OnFinalCheck registers h to run on every assert_lits(final=true).
func (si *SI) OnFinalCheck(h CheckHook) { si.onFinalCheck = append(si.onFinalCheck, h) }

// RegisterPlugin calls p's setup and records the push/pop closures it
// returns; plugins are invoked in registration order at every dispatch
// point.
func (si *SI) RegisterPlugin(p Plugin) {
	push, pop := p.CreateAndSetup(si)
	si.plugins = append(si.plugins, registeredPlugin{name: p.Name(), pushLevel: push, popLevels: pop})
}

// SetCC resolves the lazily-tied congruence closure and wires through any
// CC event listeners plugins registered before it existed.
func (si *SI) SetCC(cc CC) {
	si.cc = cc
	for _, cb := range si.onNewTerm {
		cc.OnNewTerm(cb)
	}
	for _, cb := range si.onPreMerge {
		cc.OnPreMerge(cb)
	}
	for _, cb := range si.onPostMerge {
		cc.OnPostMerge(cb)
	}
	for _, cb := range si.onConflict {
		cc.OnConflict(cb)
	}
	for _, cb := range si.onPropagate {
		cc.OnPropagate(cb)
	}
}

// LiftBoolSubterm tells the congruence closure that t is bound to atom a,
// via cc.SetAsLit (spec.md §4.3's bool-subterm lifting); a no-op until
// SetCC has resolved the lazily-tied CC.
func (si *SI) LiftBoolSubterm(a lit.Atom, t term.Term) {
	if si.cc == nil {
		return
	}
	n := si.cc.AddTerm(t)
	si.cc.SetAsLit(n, a)
}

// OnCCNewTerm registers cb to fire when the CC sees a fresh term.
func (si *SI) OnCCNewTerm(cb func(Node, term.Term)) {
	si.onNewTerm = append(si.onNewTerm, cb)
	if si.cc != nil {
		si.cc.OnNewTerm(cb)
	}
}

// OnCCPropagate registers cb to fire when the CC derives a propagation.
func (si *SI) OnCCPropagate(cb func(a lit.Atom, expl Explanation)) {
	si.onPropagate = append(si.onPropagate, cb)
	if si.cc != nil {
		si.cc.OnPropagate(cb)
	}
}

// OnCCPreMerge registers cb to fire before the CC merges two nodes.
func (si *SI) OnCCPreMerge(cb func(n1, n2 Node)) {
	si.onPreMerge = append(si.onPreMerge, cb)
	if si.cc != nil {
		si.cc.OnPreMerge(cb)
	}
}

// OnCCPostMerge registers cb to fire after the CC merges two nodes.
func (si *SI) OnCCPostMerge(cb func(n1, n2 Node)) {
	si.onPostMerge = append(si.onPostMerge, cb)
	if si.cc != nil {
		si.cc.OnPostMerge(cb)
	}
}

// OnCCConflict registers cb to fire when the CC detects a conflict.
func (si *SI) OnCCConflict(cb func(Explanation)) {
	si.onConflict = append(si.onConflict, cb)
	if si.cc != nil {
		si.cc.OnConflict(cb)
	}
}

// AssertLits implements spec.md §4.5's assert_lits: forward to the CC
// (unless final), run the CC's check, then fan out to the partial or
// final check hooks.
func (si *SI) AssertLits(final bool, lits []lit.Atom, acts Acts) {
	if si.cc == nil {
		return
	}
	if !final {
		si.Counters.PartialChecks++
		si.cc.AssertLits(lits)
	} else {
		si.Counters.FinalChecks++
	}
	si.cc.Check(acts)
	hooks := si.onPartialCheck
	if final {
		hooks = si.onFinalCheck
	}
	for _, h := range hooks {
		h(acts)
	}
}

// PushLevel fans out to every plugin (registration order) and to the CC.
func (si *SI) PushLevel() {
	si.Counters.PushLevels++
	for _, p := range si.plugins {
		p.pushLevel()
	}
	if si.cc != nil {
		si.cc.PushLevel()
	}
}

// PopLevels fans out to every plugin (registration order) and to the CC.
// Preprocess and simplify caches are never popped: their correctness
// depends on hook purity (spec.md §5, an explicitly unenforced invariant).
func (si *SI) PopLevels(n int) {
	si.Counters.PopLevels++
	for _, p := range si.plugins {
		p.popLevels(n)
	}
	if si.cc != nil {
		si.cc.PopLevels(n)
	}
}
