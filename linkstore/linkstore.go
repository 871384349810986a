// Package linkstore implements LinkStore: the per-point, per-layer adjacency
// lists with degree caps that back the HNSW graph.
//
// Unlike the teacher's structs.Node, which links points together through
// *Node pointers, LinkStore follows the design this graph is built from
// (see original_source/graph_linear_builder.rs's links_layers field): all
// cross-references are dense point-id indices into a flat, id-addressed
// store. That keeps the graph's inherent cyclicity out of the type system
// and gives cache-friendly, allocation-cheap iteration.
package linkstore

import "github.com/dmarro89/hnsw-builder/internal/assert"

// PointID is a dense, non-negative point identifier in [0, N).
type PointID = int

// layers is the ordered sequence of adjacency lists for one point: layers[0]
// is the layer-0 list, always present; layers[i] is the layer-i list.
type layers = [][]PointID

// Store holds LinkStore's state: one layers slice per point, indexed
// by point id exactly like the original's links_layers: Vec<LayersContainer>.
type Store struct {
	m, m0    int
	points   []layers
	maxLevel int
}

// New creates an empty Store with degree caps m (layers >= 1) and m0
// (layer 0).
func New(m, m0 int) *Store {
	return &Store{m: m, m0: m0}
}

// Cap returns the degree cap for a layer: M0 at layer 0, M above it.
func (s *Store) Cap(level int) int {
	if level == 0 {
		return s.m0
	}
	return s.m
}

// MaxLevel returns the highest level assigned to any point so far.
func (s *Store) MaxLevel() int {
	return s.maxLevel
}

// NumPoints returns the number of points the store has capacity for
// (the highest point id ever passed to SetLevels, plus one).
func (s *Store) NumPoints() int {
	return len(s.points)
}

// Level returns the highest layer index materialized for p (level(P) in the
// spec). Panics if p was never leveled.
func (s *Store) Level(p PointID) int {
	ls := s.points[p]
	assert.That(ls != nil, "linkstore: point %d has not been leveled", p)
	return len(ls) - 1
}

// SetLevels grows the store so point p exists with layers 0..=level, each
// initially empty, and updates MaxLevel. Idempotent for a given (p, level)
// pair; the store only ever grows, never shrinks, matching the original's
// set_levels.
func (s *Store) SetLevels(p PointID, level int) {
	for len(s.points) <= p {
		s.points = append(s.points, nil)
	}

	ls := s.points[p]
	for len(ls) <= level {
		cap := s.m0
		if len(ls) > 0 {
			cap = s.m
		}
		ls = append(ls, make([]PointID, 0, cap))
	}
	s.points[p] = ls

	if level > s.maxLevel {
		s.maxLevel = level
	}
}

// Neighbors returns a read-only view of p's adjacency list at level. The
// slice must not be mutated by callers; use ReplaceNeighbors/PushNeighbor.
func (s *Store) Neighbors(p PointID, level int) []PointID {
	return s.points[p][level]
}

// ReplaceNeighbors overwrites p's adjacency list at level with list. The
// caller must ensure len(list) <= Cap(level).
func (s *Store) ReplaceNeighbors(p PointID, level int, list []PointID) {
	s.points[p][level] = list
}

// PushNeighbor appends q to p's adjacency list at level. The caller
// guarantees q is not already present and that capacity permits the append.
func (s *Store) PushNeighbor(p PointID, level int, q PointID) {
	s.points[p][level] = append(s.points[p][level], q)
}
