package selection

import (
	"bytes"
	"container/heap"
)

// Entry pairs a candidate with its effective distance to the round reference.
type Entry struct {
	ID       []byte // ID is the candidate as supplied by the caller
	Distance uint64 // Distance is the weighted, 64-bit truncated XOR distance
}

// less orders entries by distance, then by candidate bytes.
func less(a, b Entry) bool {
	if a.Distance != b.Distance {
		return a.Distance < b.Distance
	}

	return bytes.Compare(a.ID, b.ID) < 0
}

// boundedHeap keeps the n closest entries seen so far.
// It is a max-heap: the root is the furthest entry currently kept.
type boundedHeap struct {
	entries []Entry
	limit   int
}

// newBoundedHeap creates an empty heap holding at most limit entries.
func newBoundedHeap(limit int) *boundedHeap {
	return &boundedHeap{
		entries: make([]Entry, 0, limit),
		limit:   limit,
	}
}

func (h *boundedHeap) Len() int           { return len(h.entries) }
func (h *boundedHeap) Less(i, j int) bool { return less(h.entries[j], h.entries[i]) }
func (h *boundedHeap) Swap(i, j int)      { h.entries[i], h.entries[j] = h.entries[j], h.entries[i] }

func (h *boundedHeap) Push(x any) {
	h.entries = append(h.entries, x.(Entry))
}

func (h *boundedHeap) Pop() any {
	last := len(h.entries) - 1
	e := h.entries[last]
	h.entries = h.entries[:last]

	return e
}

// offer adds e if the heap has room or e is closer than the furthest kept entry.
// Returns true if e was kept.
func (h *boundedHeap) offer(e Entry) bool {
	if len(h.entries) < h.limit {
		heap.Push(h, e)
		return true
	}

	if !less(e, h.entries[0]) {
		return false
	}

	// Replace the root in place and restore the heap, one O(log n) pass
	h.entries[0] = e
	heap.Fix(h, 0)

	return true
}

// drain empties the heap and returns its entries closest first.
func (h *boundedHeap) drain() []Entry {
	out := make([]Entry, len(h.entries))
	for i := len(out) - 1; i >= 0; i-- {
		out[i] = heap.Pop(h).(Entry)
	}

	return out
}
