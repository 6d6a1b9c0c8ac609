package term

// Demo is a minimal, deliberately non-hash-consed Term implementation used
// only by tests and the CLI to exercise the core without a real term
// layer. Term hash-consing and type checking are out of scope for this
// module (spec.md §1); production callers supply their own Term.
type Demo struct {
	id      int
	f       *Factory
	kind    demoKind
	isBool  bool
	boolVal bool
	inner   *Demo
	lhs     *Demo
	rhs     *Demo
	fn      string
	args    []Term
}

type demoKind uint8

const (
	demoAtomic demoKind = iota
	demoBoolConst
	demoNeg
	demoEq
	demoApp
)

// Factory mints Demo terms with increasing ids.
type Factory struct{ next int }

// NewFactory returns a fresh term factory.
func NewFactory() *Factory { return &Factory{} }

func (f *Factory) alloc() int {
	f.next++
	return f.next
}

// Atomic returns a fresh, non-boolean opaque term (e.g. a theory term such
// as an arithmetic expression, whose internals this module never inspects).
func (f *Factory) Atomic() *Demo {
	return &Demo{id: f.alloc(), f: f, kind: demoAtomic}
}

// BoolAtom returns a fresh boolean-sorted propositional atom, presented as
// a nullary application of name so it still satisfies AsApp.
func (f *Factory) BoolAtom(name string) *Demo {
	return &Demo{id: f.alloc(), f: f, kind: demoApp, isBool: true, fn: name}
}

// BoolConst returns the boolean constant term for v.
func (f *Factory) BoolConst(v bool) *Demo {
	return &Demo{id: f.alloc(), f: f, kind: demoBoolConst, isBool: true, boolVal: v}
}

// Not returns the negation of t.
func (f *Factory) Not(t *Demo) *Demo {
	return &Demo{id: f.alloc(), f: f, kind: demoNeg, isBool: true, inner: t}
}

// Eq returns the equality of a and b.
func (f *Factory) Eq(a, b *Demo) *Demo {
	return &Demo{id: f.alloc(), f: f, kind: demoEq, isBool: true, lhs: a, rhs: b}
}

// App returns the application of fn to args; isBool marks whether the
// result is boolean-sorted (an uninterpreted predicate) or not (an
// uninterpreted function into some other theory's sort).
func (f *Factory) App(fn string, isBool bool, args ...Term) *Demo {
	return &Demo{id: f.alloc(), f: f, kind: demoApp, isBool: isBool, fn: fn, args: args}
}

func (d *Demo) ID() int { return d.id }

func (d *Demo) Sort() Type {
	if d.isBool {
		return Bool
	}
	return Atomic
}

func (d *Demo) AsBoolConst() (bool, bool) {
	if d.kind == demoBoolConst {
		return d.boolVal, true
	}
	return false, false
}

func (d *Demo) AsNegation() (Term, bool) {
	if d.kind == demoNeg {
		return d.inner, true
	}
	return nil, false
}

func (d *Demo) AsEquality() (Term, Term, bool) {
	if d.kind == demoEq {
		return d.lhs, d.rhs, true
	}
	return nil, nil, false
}

func (d *Demo) AsApp() (string, []Term, bool) {
	if d.kind == demoApp {
		return d.fn, d.args, true
	}
	return "", nil, false
}
