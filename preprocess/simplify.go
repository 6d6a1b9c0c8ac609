package preprocess

import "github.com/coresat/cdclt/term"

// Simplifier is the memoized fixed-point rewriter of spec.md §4.3: for each
// term, children are simplified first, then the hook chain is tried
// (most-recent-first) until none applies.
type Simplifier struct {
	chain Chain[SimplifyHook]
	cache map[int]term.Term
}

// NewSimplifier returns an empty simplifier.
func NewSimplifier() *Simplifier {
	return &Simplifier{cache: make(map[int]term.Term)}
}

// AddHook registers h, taking priority over every hook already registered.
func (s *Simplifier) AddHook(h SimplifyHook) { s.chain.Register(h) }

// Simplify rewrites t to a fixed point, memoizing by term id so repeat
// calls on a term already seen (including one surfaced as a rewritten
// child of something else) are O(1).
func (s *Simplifier) Simplify(t term.Term) term.Term {
	if v, ok := s.cache[t.ID()]; ok {
		return v
	}
	cur := s.simplifyChildren(t)
	cur = s.fixpoint(cur)
	s.cache[t.ID()] = cur
	return cur
}

func (s *Simplifier) simplifyChildren(t term.Term) term.Term {
	children := term.Children(t)
	if len(children) == 0 {
		return t
	}
	newChildren := make([]term.Term, len(children))
	changed := false
	for i, c := range children {
		nc := s.Simplify(c)
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

func (s *Simplifier) fixpoint(t term.Term) term.Term {
	cur := t
	for {
		next, rewrote := s.tryHooks(cur)
		if !rewrote {
			return cur
		}
		cur = next
	}
}

func (s *Simplifier) tryHooks(t term.Term) (term.Term, bool) {
	var result term.Term
	found := false
	s.chain.Reversed(func(h SimplifyHook) bool {
		if u, ok := h(t); ok && u.ID() != t.ID() {
			result = u
			found = true
			return false
		}
		return true
	})
	return result, found
}
