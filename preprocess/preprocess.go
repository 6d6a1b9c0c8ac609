package preprocess

import (
	"github.com/coresat/cdclt/lit"
	"github.com/coresat/cdclt/term"
)

// Preprocessor layers the preprocess-hook chain over a Simplifier (spec.md
// §4.3): `preprocess_lit` simplifies, then preprocesses, then rebuilds the
// literal with its original sign. Preprocess caches are never popped on
// backtrack — their correctness depends on hooks being pure functions of
// their input, the same non-enforced invariant the source relies on.
type Preprocessor struct {
	simplify *Simplifier
	chain    Chain[PreprocessHook]
	cache    map[int]term.Term

	mk  MkLit
	add AddClause
}

// NewPreprocessor returns a preprocessor that calls mk/add when a hook asks
// to intern a literal or assert a definitional clause.
func NewPreprocessor(simplify *Simplifier, mk MkLit, add AddClause) *Preprocessor {
	return &Preprocessor{simplify: simplify, cache: make(map[int]term.Term), mk: mk, add: add}
}

// AddHook registers h, taking priority over every hook already registered.
func (p *Preprocessor) AddHook(h PreprocessHook) { p.chain.Register(h) }

// Preprocess rewrites t to a fixed point under the preprocess hook chain,
// recursing into children first exactly like Simplifier.Simplify.
func (p *Preprocessor) Preprocess(t term.Term) term.Term {
	if v, ok := p.cache[t.ID()]; ok {
		return v
	}
	cur := p.preprocessChildren(t)
	cur = p.fixpoint(cur)
	p.cache[t.ID()] = cur
	return cur
}

func (p *Preprocessor) preprocessChildren(t term.Term) term.Term {
	children := term.Children(t)
	if len(children) == 0 {
		return t
	}
	newChildren := make([]term.Term, len(children))
	changed := false
	for i, c := range children {
		nc := p.Preprocess(c)
		newChildren[i] = nc
		if nc.ID() != c.ID() {
			changed = true
		}
	}
	if !changed {
		return t
	}
	rb, ok := t.(term.Rebuilder)
	if !ok {
		return t
	}
	return rb.WithChildren(newChildren)
}

func (p *Preprocessor) fixpoint(t term.Term) term.Term {
	cur := t
	for {
		next, rewrote := p.tryHooks(cur)
		if !rewrote {
			return cur
		}
		cur = next
	}
}

func (p *Preprocessor) tryHooks(t term.Term) (term.Term, bool) {
	var result term.Term
	found := false
	p.chain.Reversed(func(h PreprocessHook) bool {
		if u, ok := h(t, p.mk, p.add); ok && u.ID() != t.ID() {
			result = u
			found = true
			return false
		}
		return true
	})
	return result, found
}

// PreprocessLit simplifies l's term, preprocesses the result, then rebuilds
// a literal of the original sign around it. This is idempotent up to the
// caches (spec.md testable property 5): once primed, re-applying returns
// the same literal and asserts no new clauses.
func (p *Preprocessor) PreprocessLit(l term.Literal) term.Literal {
	simplified := p.simplify.Simplify(l.Term)
	processed := p.Preprocess(simplified)
	return term.Make(l.Neg, processed)
}

// LiftBoolSubterms ensures every non-negation boolean subterm reachable in
// t's DAG has an atom, informing onAtom of the (atom, term) binding so the
// caller can tell the congruence closure about it via cc.set_as_lit
// (spec.md §4.3's bool-subterm lifting). Already-visited terms are skipped.
func LiftBoolSubterms(t term.Term, mk MkLit, onAtom func(a lit.Atom, t term.Term), seen map[int]bool) {
	if seen[t.ID()] {
		return
	}
	seen[t.ID()] = true
	if t.Sort() == term.Bool {
		if _, isNeg := t.AsNegation(); !isNeg {
			onAtom(mk(t), t)
		}
	}
	for _, c := range term.Children(t) {
		LiftBoolSubterms(c, mk, onAtom, seen)
	}
}
