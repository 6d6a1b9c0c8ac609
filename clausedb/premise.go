package clausedb

// ClauseID is a stable, monotonically increasing identifier assigned to a
// clause when it is allocated.
type ClauseID int32

// ClauseIDNull denotes the absence of a clause.
const ClauseIDNull = ClauseID(-1)

// PremiseKind tags the provenance of a clause, per spec.md §3.
type PremiseKind uint8

const (
	// Hyp is a clause asserted by the user via AddClause.
	Hyp PremiseKind = iota
	// Local is an assumption scoped to the current solve call.
	Local
	// Lemma is a clause contributed by a theory, carrying an opaque proof
	// token the theory can later use to justify the lemma.
	Lemma
	// History is a learned clause, recording the parent clauses resolved
	// (in order) to derive it.
	History
)

func (k PremiseKind) String() string {
	switch k {
	case Hyp:
		return "hyp"
	case Local:
		return "local"
	case Lemma:
		return "lemma"
	case History:
		return "history"
	default:
		return "unknown"
	}
}

// Premise is the provenance record attached to every clause.
type Premise struct {
	Kind    PremiseKind
	Token   interface{} // theory proof token, set iff Kind == Lemma
	Parents []ClauseID  // resolution history, set iff Kind == History
}

// HypPremise builds a user-hypothesis premise.
func HypPremise() Premise { return Premise{Kind: Hyp} }

// LocalPremise builds a current-scope assumption premise.
func LocalPremise() Premise { return Premise{Kind: Local} }

// LemmaPremise builds a theory-lemma premise carrying an opaque token.
func LemmaPremise(token interface{}) Premise { return Premise{Kind: Lemma, Token: token} }

// HistoryPremise builds a learned-clause premise from its resolution
// parents, listed in the order they must be folded.
func HistoryPremise(parents []ClauseID) Premise {
	return Premise{Kind: History, Parents: parents}
}
