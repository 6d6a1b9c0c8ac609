package cdcl

import "github.com/coresat/cdclt/lit"

// varHeap is a VSIDS decision heap over variables, ordered by descending
// activity (lit.Vars.Weight). It is a direct generalization of the
// teacher's order.Order: the same container/heap-style percolation, but
// indexed through lit.Vars.HeapIndex instead of a private indices map,
// since Var.heap_index is a first-class field of the variable record (see
// spec.md §3).
type varHeap struct {
	heap []lit.Var
	vars *lit.Vars
}

func newVarHeap(vars *lit.Vars) *varHeap {
	return &varHeap{vars: vars}
}

func (h *varHeap) less(i, j int) bool {
	return h.vars.Weight[h.heap[i]] > h.vars.Weight[h.heap[j]]
}

func (h *varHeap) swap(i, j int) {
	h.heap[i], h.heap[j] = h.heap[j], h.heap[i]
	h.vars.HeapIndex[h.heap[i]] = i
	h.vars.HeapIndex[h.heap[j]] = j
}

// insert adds v to the heap if it isn't already present.
func (h *varHeap) insert(v lit.Var) {
	if h.vars.HeapIndex[v] >= 0 {
		return
	}
	h.vars.HeapIndex[v] = len(h.heap)
	h.heap = append(h.heap, v)
	h.up(len(h.heap) - 1)
}

// fix restores heap order around v after its activity changed.
func (h *varHeap) fix(v lit.Var) {
	i := h.vars.HeapIndex[v]
	if i < 0 {
		return
	}
	h.down(i, len(h.heap))
	h.up(i)
}

// popBest removes and returns the variable with the highest remaining
// activity, or lit.VarUndef if the heap is empty.
func (h *varHeap) popBest() lit.Var {
	if len(h.heap) == 0 {
		return lit.VarUndef
	}
	n := len(h.heap) - 1
	h.swap(0, n)
	v := h.heap[n]
	h.heap = h.heap[:n]
	h.down(0, n)
	h.vars.HeapIndex[v] = -1
	return v
}

func (h *varHeap) contains(v lit.Var) bool {
	return h.vars.HeapIndex[v] >= 0
}

func (h *varHeap) up(j int) {
	for {
		i := (j - 1) / 2
		if i == j || !h.less(j, i) {
			break
		}
		h.swap(i, j)
		j = i
	}
}

func (h *varHeap) down(i0, n int) {
	i := i0
	for {
		j1 := 2*i + 1
		if j1 >= n || j1 < 0 {
			break
		}
		j := j1
		if j2 := j1 + 1; j2 < n && h.less(j2, j1) {
			j = j2
		}
		if !h.less(j, i) {
			break
		}
		h.swap(i, j)
		i = j
	}
}
