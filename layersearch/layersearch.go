// Package layersearch implements the two adjacency-walking procedures HNSW
// construction and search share: greedy descent through the upper layers
// (SearchEntry) and the bounded beam search on a single layer
// (SearchOnLevel). Ported from the teacher's hnsw.greedySearchLayer and
// hnsw.searchLayer, generalized from HNSW.Nodes-as-pointers to LinkStore's
// id-addressed adjacency and rewritten to the "higher score is closer"
// convention spec.md §3 requires.
package layersearch

import (
	"github.com/dmarro89/hnsw-builder/internal/pqueue"
	"github.com/dmarro89/hnsw-builder/linkstore"
	"github.com/dmarro89/hnsw-builder/scorer"
	"github.com/dmarro89/hnsw-builder/visited"
)

// ScoredPoint pairs a point id with its score. Re-exported from pqueue so
// callers of this package never need to import it directly.
type ScoredPoint = pqueue.ScoredPoint

// Searcher runs SearchEntry/SearchOnLevel against a LinkStore, borrowing
// pooled visited-lists and heaps for every call the way the teacher's HNSW
// borrowed its heapPool for every searchLayer call.
type Searcher struct {
	store   *linkstore.Store
	visited *visited.Pool
	heaps   *pqueue.HeapPool
}

// New creates a Searcher over store, using pool for visited-lists and heaps
// for candidate priority queues.
func New(store *linkstore.Store, visitedPool *visited.Pool, heaps *pqueue.HeapPool) *Searcher {
	return &Searcher{store: store, visited: visitedPool, heaps: heaps}
}

// SearchEntry performs greedy descent (spec.md §4.4.1): starting at entry
// on topLevel, repeatedly hill-climbs to a strictly-better neighbor on each
// layer down to, but not including, targetLevel, then returns the scored
// point reached just above targetLevel. Deterministic given a deterministic
// scorer.
func (s *Searcher) SearchEntry(entry linkstore.PointID, topLevel, targetLevel int, sc scorer.Scorer) ScoredPoint {
	current := ScoredPoint{ID: entry, Score: sc.ScorePoint(entry)}

	for level := topLevel; level > targetLevel; level-- {
		limit := s.store.Cap(level)
		for {
			neighbors := s.store.Neighbors(current.ID, level)
			if len(neighbors) == 0 {
				break
			}
			scored := sc.ScorePoints(append([]linkstore.PointID(nil), neighbors...), limit)

			improved := false
			for _, sp := range scored {
				if sp.Score > current.Score {
					current = sp
					improved = true
				}
			}
			if !improved {
				break
			}
		}
	}

	return current
}

// SearchOnLevel performs bounded beam search (spec.md §4.4.2): explores
// outward from entry on level, bounded to a beam width of ef, and returns
// up to ef results sorted by descending score. existingLinks are neighbors
// the owning point already has at this level; any not reached by the beam
// are folded in afterwards so repeat insertions never lose a pre-existing
// edge the beam happened not to rediscover.
func (s *Searcher) SearchOnLevel(entry ScoredPoint, level, ef int, sc scorer.Scorer, existingLinks []linkstore.PointID) []ScoredPoint {
	visitedList := s.visited.Acquire(s.store.NumPoints())
	defer s.visited.Release(visitedList)

	candidates := s.heaps.GetCandidates()
	defer s.heaps.PutCandidates(candidates)
	nearest := s.heaps.GetNearest(ef)
	defer s.heaps.PutNearest(nearest)

	visitedList.CheckAndSet(entry.ID)
	candidates.Push(entry)
	nearest.Push(entry)

	limit := s.store.Cap(level)
	scratch := make([]linkstore.PointID, 0, 2*limit)

	for candidates.Len() > 0 {
		candidate := candidates.Pop()

		if bound, ok := nearest.Peek(); ok && candidate.Score < bound.Score {
			break
		}

		scratch = scratch[:0]
		for _, link := range s.store.Neighbors(candidate.ID, level) {
			if !visitedList.CheckAndSet(link) {
				scratch = append(scratch, link)
			}
		}

		scored := sc.ScorePoints(scratch, limit)
		for _, sp := range scored {
			candidates.Push(sp)
			nearest.Push(sp)
		}
	}

	for _, link := range existingLinks {
		if !visitedList.Check(link) {
			nearest.Push(ScoredPoint{ID: link, Score: sc.ScorePoint(link)})
		}
	}

	return nearest.Drain()
}
