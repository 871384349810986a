package pqueue

// CandidateHeap is a max-heap over ScoredPoint ordered by descending score:
// the root is always the most promising unexplored point. Ported from the
// teacher's structs.MaxHeap with Dist renamed to Score; the comparison
// direction is unchanged because "larger score" plays the role "larger
// distance" played there.
type CandidateHeap struct {
	items []ScoredPoint
}

// NewCandidateHeap creates an empty candidate heap with some initial capacity.
func NewCandidateHeap() *CandidateHeap {
	return &CandidateHeap{items: make([]ScoredPoint, 0, 64)}
}

// Len returns the number of queued candidates.
func (h *CandidateHeap) Len() int { return len(h.items) }

// Push inserts a candidate and restores the heap property.
func (h *CandidateHeap) Push(p ScoredPoint) {
	h.items = append(h.items, p)
	h.siftUp(len(h.items) - 1)
}

// Pop removes and returns the candidate with the highest score.
// Panics if the heap is empty; callers must check Len first.
func (h *CandidateHeap) Pop() ScoredPoint {
	top := h.items[0]
	last := len(h.items) - 1
	h.items[0] = h.items[last]
	h.items = h.items[:last]
	if last > 0 {
		h.siftDown(0)
	}
	return top
}

// Reset empties the heap while keeping the underlying array.
func (h *CandidateHeap) Reset() {
	h.items = h.items[:0]
}

func (h *CandidateHeap) siftUp(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if h.items[i].Score > h.items[parent].Score {
			h.items[i], h.items[parent] = h.items[parent], h.items[i]
			i = parent
		} else {
			break
		}
	}
}

func (h *CandidateHeap) siftDown(i int) {
	n := len(h.items)
	for {
		left, right := 2*i+1, 2*i+2
		largest := i
		if left < n && h.items[left].Score > h.items[largest].Score {
			largest = left
		}
		if right < n && h.items[right].Score > h.items[largest].Score {
			largest = right
		}
		if largest == i {
			break
		}
		h.items[i], h.items[largest] = h.items[largest], h.items[i]
		i = largest
	}
}
