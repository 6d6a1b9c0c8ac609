package proof

import (
	"fmt"
	"strings"
)

// DOT renders n's resolution DAG as a GraphViz digraph (spec.md §6.5): one
// node per proved clause, color-coded by premise kind, one intermediate
// node per resolution pivot, edges from conclusion to pivot to parents.
// Node ids are stable only within a single call, not across runs.
func DOT(n *Node) string {
	var b strings.Builder
	b.WriteString("digraph proof {\n")
	seen := make(map[*Node]string)
	counter := 0
	var emit func(*Node) string
	emit = func(x *Node) string {
		if id, ok := seen[x]; ok {
			return id
		}
		id := fmt.Sprintf("n%d", counter)
		counter++
		seen[x] = id

		switch x.Kind {
		case Hypothesis:
			fmt.Fprintf(&b, "  %s [label=%q, color=blue];\n", id, clauseLabel(x))
		case LemmaNode:
			fmt.Fprintf(&b, "  %s [label=%q, color=green];\n", id, clauseLabel(x))
		case ResolutionNode:
			fmt.Fprintf(&b, "  %s [label=%q, color=black];\n", id, clauseLabel(x))
			pivotID := fmt.Sprintf("%s_pivot", id)
			fmt.Fprintf(&b, "  %s [shape=diamond, label=\"x%d\"];\n", pivotID, int32(x.Pivot)+1)
			left := emit(x.Parents[0])
			right := emit(x.Parents[1])
			fmt.Fprintf(&b, "  %s -> %s;\n", id, pivotID)
			fmt.Fprintf(&b, "  %s -> %s;\n", pivotID, left)
			fmt.Fprintf(&b, "  %s -> %s;\n", pivotID, right)
		}
		return id
	}
	emit(n)
	b.WriteString("}\n")
	return b.String()
}

func clauseLabel(n *Node) string {
	parts := make([]string, len(n.Atoms))
	for i, a := range n.Atoms {
		parts[i] = a.String()
	}
	return strings.Join(parts, " ∨ ")
}
