// Package preprocess implements the simplify and preprocess hook chains
// (spec.md §4.3): a memoized, fixed-point term rewriter that theory plugins
// extend by registering hooks, plus the preprocess-cache variant that may
// also introduce definitional clauses while rewriting a literal.
package preprocess

import (
	"github.com/coresat/cdclt/lit"
	"github.com/coresat/cdclt/term"
)

// SimplifyHook rewrites t, reporting (replacement, true) on a match or
// (nil, false) to pass. Hooks never see t's children directly: the cache
// maps them first so every hook always observes already-simplified
// subterms.
type SimplifyHook func(t term.Term) (term.Term, bool)

// MkLit interns a term as a literal atom (spec.md §6.2's mk_lit). The term
// is interned as given; it is not run through the preprocessor again.
type MkLit func(t term.Term) lit.Atom

// AddClause asserts a clause of atoms to the SAT engine immediately, for
// hooks that introduce Tseitin-style definitions.
type AddClause func(atoms []lit.Atom)

// PreprocessHook rewrites t like a SimplifyHook, but may also call mk and
// add to introduce definitional clauses while doing so.
type PreprocessHook func(t term.Term, mk MkLit, add AddClause) (term.Term, bool)

// Chain holds hooks in registration order but always tries them most-
// recently-registered first (spec.md "Ordering guarantees").
type Chain[H any] struct {
	hooks []H
}

// Register appends h, making it take priority over every hook already
// registered.
func (c *Chain[H]) Register(h H) { c.hooks = append(c.hooks, h) }

// Reversed yields c's hooks from most-recently-registered to least.
func (c *Chain[H]) Reversed(yield func(H) bool) {
	for i := len(c.hooks) - 1; i >= 0; i-- {
		if !yield(c.hooks[i]) {
			return
		}
	}
}

// Len reports how many hooks are registered.
func (c *Chain[H]) Len() int { return len(c.hooks) }
