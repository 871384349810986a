package pqueue

import "sync"

// HeapPool recycles CandidateHeap and NearestSet instances across
// SearchOnLevel calls, the same way the teacher's structs.HeapPoolManager
// recycled its MinHeap/MaxHeap pair.
type HeapPool struct {
	candidates sync.Pool
	nearest    sync.Pool
}

// NewHeapPool creates an empty pool.
func NewHeapPool() *HeapPool {
	return &HeapPool{
		candidates: sync.Pool{New: func() interface{} { return NewCandidateHeap() }},
		nearest:    sync.Pool{New: func() interface{} { return NewNearestSet(0) }},
	}
}

// GetCandidates returns a cleared CandidateHeap.
func (p *HeapPool) GetCandidates() *CandidateHeap {
	h := p.candidates.Get().(*CandidateHeap)
	h.Reset()
	return h
}

// PutCandidates returns a CandidateHeap to the pool.
func (p *HeapPool) PutCandidates(h *CandidateHeap) {
	p.candidates.Put(h)
}

// GetNearest returns a NearestSet bounded to ef.
func (p *HeapPool) GetNearest(ef int) *NearestSet {
	s := p.nearest.Get().(*NearestSet)
	s.Reset(ef)
	return s
}

// PutNearest returns a NearestSet to the pool.
func (p *HeapPool) PutNearest(s *NearestSet) {
	p.nearest.Put(s)
}
