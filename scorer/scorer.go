// Package scorer defines the pluggable similarity contract the graph
// builder consumes (spec §6) and supplies one concrete implementation,
// VectorScorer, over dense float32 vectors — enough to exercise the core
// end to end in tests and the demo CLI. Production callers are expected to
// supply their own Scorer backed by whatever vector storage they already
// have; the core never assumes VectorScorer specifically.
package scorer

import "github.com/dmarro89/hnsw-builder/internal/pqueue"

// PointID is a dense, non-negative point identifier in [0, N).
type PointID = int

// ScoredPoint pairs a point id with its similarity score. Higher is closer,
// uniformly across every Scorer implementation.
type ScoredPoint = pqueue.ScoredPoint

// FilterContext is an opaque admissibility predicate holder, supplied by
// the caller at Scorer construction time. The builder never looks inside
// one; it only ever asks the Scorer "is point P admissible?" via
// Scorer.CheckVector.
type FilterContext interface {
	Check(id PointID) bool
}

// Scorer is the narrow, total contract the builder consumes. All scores are
// real numbers; NaN is forbidden. Implementations must be safe to call
// repeatedly for the lifetime of exactly one insertion or one search — the
// builder borrows a Scorer exclusively for that duration and never retains
// it afterwards.
type Scorer interface {
	// CheckVector reports whether id is admissible under this scorer's
	// filter, if any.
	CheckVector(id PointID) bool

	// ScorePoint scores a candidate against the query vector fixed at
	// construction.
	ScorePoint(id PointID) float32

	// ScoreInternal scores two stored points against each other.
	ScoreInternal(a, b PointID) float32

	// ScorePoints scores every id in ids against the query vector. limit is
	// a hint sized for the caller's expected batch (SIMD/prefetch tuning);
	// it must never cause correctness-affecting truncation — every id in
	// ids is scored and returned.
	ScorePoints(ids []PointID, limit int) []ScoredPoint
}
