package scorer

// VectorStore is the minimal read-only vector storage VectorScorer needs:
// dense float32 vectors addressed by point id. Out of scope for the core
// (spec.md §1 names vector storage as an external collaborator); this is
// just enough surface for VectorScorer to exercise the builder in tests and
// the demo CLI.
type VectorStore interface {
	Vector(id PointID) []float32
}

// SliceStore is a VectorStore backed by a plain slice, the simplest
// possible stand-in for a real vector storage layer.
type SliceStore [][]float32

// Vector returns the vector at id.
func (s SliceStore) Vector(id PointID) []float32 { return s[id] }

// VectorScorer is a concrete Scorer fixed to one query vector at
// construction, the same shape as the original's FilteredScorer/RawScorer
// pairing collapsed into a single type (no separate raw-storage layer
// exists here). Grounded on hnsw.HNSW.DistanceFunc, generalized to accept
// any DistanceFunc and any VectorStore.
type VectorScorer struct {
	store  VectorStore
	query  []float32
	dist   DistanceFunc
	filter FilterContext
}

// NewVectorScorer creates a Scorer over store, fixed to query, using dist to
// compare vectors. filter may be nil, meaning every point is admissible.
func NewVectorScorer(store VectorStore, query []float32, dist DistanceFunc, filter FilterContext) *VectorScorer {
	return &VectorScorer{store: store, query: query, dist: dist, filter: filter}
}

// CheckVector reports whether id passes this scorer's filter, if any.
func (s *VectorScorer) CheckVector(id PointID) bool {
	if s.filter == nil {
		return true
	}
	return s.filter.Check(id)
}

// ScorePoint scores id against the fixed query vector.
func (s *VectorScorer) ScorePoint(id PointID) float32 {
	return s.dist(s.query, s.store.Vector(id))
}

// ScoreInternal scores two stored points against each other.
func (s *VectorScorer) ScoreInternal(a, b PointID) float32 {
	return s.dist(s.store.Vector(a), s.store.Vector(b))
}

// ScorePoints scores every id in ids against the query vector. limit only
// sizes the result slice's preallocation; every id is scored regardless.
func (s *VectorScorer) ScorePoints(ids []PointID, limit int) []ScoredPoint {
	if limit <= 0 || limit > len(ids) {
		limit = len(ids)
	}
	out := make([]ScoredPoint, 0, limit)
	for _, id := range ids {
		out = append(out, ScoredPoint{ID: id, Score: s.ScorePoint(id)})
	}
	return out
}
