package term

// Rebuilder is implemented by Term types that support structural rewriting:
// given replacement children in the same order Children(t) returned them,
// it returns the term with those children substituted. Terms with no
// children (atoms, constants) never need to implement it; the preprocessor
// skips rebuilding when a term doesn't.
type Rebuilder interface {
	WithChildren(children []Term) Term
}

func (d *Demo) WithChildren(children []Term) Term {
	switch d.kind {
	case demoNeg:
		return &Demo{id: d.f.alloc(), f: d.f, kind: demoNeg, isBool: d.isBool, inner: children[0].(*Demo)}
	case demoEq:
		return &Demo{id: d.f.alloc(), f: d.f, kind: demoEq, isBool: d.isBool, lhs: children[0].(*Demo), rhs: children[1].(*Demo)}
	case demoApp:
		return &Demo{id: d.f.alloc(), f: d.f, kind: demoApp, isBool: d.isBool, fn: d.fn, args: children}
	default:
		return d
	}
}
