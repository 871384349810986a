package pqueue

import "container/heap"

// encodedMinHeap is a binary min-heap of score+id encoded uint64s. Ported
// from the teacher's structs.MinHeap; it implements container/heap.Interface
// so the standard library drives the sift operations.
type encodedMinHeap []uint64

func (h encodedMinHeap) Len() int            { return len(h) }
func (h encodedMinHeap) Less(i, j int) bool  { return h[i] < h[j] }
func (h encodedMinHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *encodedMinHeap) Push(x interface{}) { *h = append(*h, x.(uint64)) }
func (h *encodedMinHeap) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// NearestSet is the bounded top-ef "nearest so far" structure used by
// LayerSearcher.SearchOnLevel. It keeps at most ef entries; once full, the
// entry with the lowest score (the current worst-best) is evicted whenever a
// better one is admitted. Peek exposes that worst-best score as a lower
// bound: no unexplored candidate scoring below it can improve the set.
type NearestSet struct {
	items encodedMinHeap
	ef    int
}

// NewNearestSet creates a NearestSet bounded to ef entries.
func NewNearestSet(ef int) *NearestSet {
	return &NearestSet{items: make(encodedMinHeap, 0, ef+1), ef: ef}
}

// Len returns the number of entries currently held.
func (s *NearestSet) Len() int { return len(s.items) }

// Reset empties the set and rebinds it to a (possibly new) beam width,
// keeping the underlying array when it already has enough capacity.
func (s *NearestSet) Reset(ef int) {
	s.items = s.items[:0]
	s.ef = ef
}

// Push admits a candidate into the set. If the set is already at capacity
// and the candidate does not improve on the current worst-best, it is
// dropped; otherwise it is added, evicting the previous worst-best if that
// pushed the set over capacity.
func (s *NearestSet) Push(p ScoredPoint) {
	if len(s.items) < s.ef {
		heap.Push(&s.items, encodeItem(p.Score, p.ID))
		return
	}
	if len(s.items) == 0 {
		return
	}
	if p.Score <= decodeItem(s.items[0]).Score {
		return
	}
	heap.Push(&s.items, encodeItem(p.Score, p.ID))
	heap.Pop(&s.items)
}

// Peek returns the current worst-best entry and reports whether the set has
// a meaningful lower bound yet. The bound only becomes meaningful once the
// set has reached its ef capacity — while there is still room, an
// unexplored candidate scoring below today's worst entry could still be
// worth keeping, so the beam search must not stop early.
func (s *NearestSet) Peek() (ScoredPoint, bool) {
	if len(s.items) < s.ef {
		return ScoredPoint{}, false
	}
	return decodeItem(s.items[0]), true
}

// Drain empties the set and returns its contents sorted by descending
// score (closest first) — the order LinkStore adjacency lists and
// heuristic selection both expect.
func (s *NearestSet) Drain() []ScoredPoint {
	n := len(s.items)
	out := make([]ScoredPoint, n)
	for i := n - 1; i >= 0; i-- {
		out[i] = decodeItem(heap.Pop(&s.items).(uint64))
	}
	return out
}
