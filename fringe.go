package ddo

import "container/heap"

// fringeHeap is the bare container/heap.Interface adapter. It exists so
// Fringe can expose typed Push/Pop methods instead of the interface{}
// signatures container/heap requires.
type fringeHeap struct {
	items    []*Node
	ordering NodeOrdering
}

func (h *fringeHeap) Len() int            { return len(h.items) }
func (h *fringeHeap) Less(i, j int) bool  { return h.ordering.Less(h.items[i], h.items[j]) }
func (h *fringeHeap) Swap(i, j int)       { h.items[i], h.items[j] = h.items[j], h.items[i] }
func (h *fringeHeap) Push(x interface{})  { h.items = append(h.items, x.(*Node)) }
func (h *fringeHeap) Pop() interface{} {
	old := h.items
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	h.items = old[:n-1]
	return item
}

// Fringe is a priority queue of open subproblems (Nodes) for the
// branch-and-bound driver, ordered by a user-supplied
// NodeOrdering — conventionally by descending UB, ties broken by
// descending LPLen (MaxUB).
type Fringe struct {
	h *fringeHeap
}

// NewFringe returns an empty fringe ranked by ordering.
func NewFringe(ordering NodeOrdering) *Fringe {
	h := &fringeHeap{ordering: ordering}
	heap.Init(h)
	return &Fringe{h: h}
}

// Push inserts node into the fringe.
func (f *Fringe) Push(node *Node) { heap.Push(f.h, node) }

// Pop removes and returns the highest-ranked node. Panics if the fringe is
// empty; callers must check Len first.
func (f *Fringe) Pop() *Node { return heap.Pop(f.h).(*Node) }

// Len returns the number of subproblems currently queued.
func (f *Fringe) Len() int { return f.h.Len() }
