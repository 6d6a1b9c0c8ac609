package term

import "hash/fnv"

// Literal is a pair (term, sign) where term is kept in absolute form once
// Normalize has been applied (spec.md §3): two literals that differ only by
// a normalizable negation collapse to the same variable downstream.
type Literal struct {
	Term Term
	Neg  bool
}

// Make builds a literal without normalizing it.
func Make(sign bool, t Term) Literal { return Literal{Term: t, Neg: sign} }

// Not returns the negation of l (neg(neg l) == l).
func (l Literal) Not() Literal { return Literal{Term: l.Term, Neg: !l.Neg} }

// Sign reports whether l occurs negated.
func (l Literal) Sign() bool { return l.Neg }

// TermOf returns the literal's term.
func (l Literal) TermOf() Term { return l.Term }

// Equal reports whether a and b are the same literal.
func Equal(a, b Literal) bool { return a.Neg == b.Neg && a.Term.ID() == b.Term.ID() }

// Hash returns a hash of l respecting both its term identity and its sign.
func Hash(l Literal) uint64 {
	h := fnv.New64a()
	var buf [9]byte
	id := l.Term.ID()
	for i := 0; i < 8; i++ {
		buf[i] = byte(id >> (8 * i))
	}
	if l.Neg {
		buf[8] = 1
	}
	h.Write(buf[:])
	return h.Sum64()
}

// Abs strips every outer negation from t, returning the innermost
// non-negation term and how many negations were stripped. An even count
// means the accumulated sign is unchanged; an odd count means it flips.
func Abs(t Term) (abs Term, flips int) {
	cur := t
	for {
		inner, ok := cur.AsNegation()
		if !ok {
			return cur, flips
		}
		cur = inner
		flips++
	}
}

// NormTag reports whether Normalize flipped a literal's sign while
// canonicalizing its term.
type NormTag uint8

const (
	// SameSign means canonicalization left the sign as given.
	SameSign NormTag = iota
	// Negated means canonicalization flipped the sign.
	Negated
)

// Normalize strips outer negations from l's term into its sign, so the
// term carried by the result never itself denotes a negation. It is
// idempotent: Normalize(Normalize(l).0) == (Normalize(l).0, SameSign).
func Normalize(l Literal) (Literal, NormTag) {
	abs, flips := Abs(l.Term)
	sign := l.Neg
	if flips%2 == 1 {
		sign = !sign
	}
	tag := SameSign
	if sign != l.Neg {
		tag = Negated
	}
	return Literal{Term: abs, Neg: sign}, tag
}

// Atom builds the literal denoting sign-occurrence of t, folding any
// negations already present in t into the requested sign (spec.md §4.1).
func Atom(t Term, sign bool) Literal {
	abs, flips := Abs(t)
	if flips%2 == 1 {
		sign = !sign
	}
	return Literal{Term: abs, Neg: sign}
}
