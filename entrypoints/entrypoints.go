// Package entrypoints tracks a small, bounded set of candidate entry points
// for greedy descent. A single top-level entry point is usually enough, but
// it can be excluded by a filter at search time; entrypoints keeps up to
// entry_points_num high-level candidates around so a filtered search still
// has somewhere admissible to start from. Generalizes the teacher's single
// HNSW.EntryPoint field into the bounded, filter-aware slot set
// spec.md §4.3 describes.
package entrypoints

import "github.com/dmarro89/hnsw-builder/linkstore"

// Record is one (point_id, level) candidate.
type Record struct {
	PointID linkstore.PointID
	Level   int
}

// Admissible tests whether a candidate point is still eligible to serve as
// an entry point (the scorer's filter predicate, applied by the caller).
type Admissible func(p linkstore.PointID) bool

// EntryPoints holds up to cap candidate entry-point slots.
type EntryPoints struct {
	cap     int
	records []Record
}

// New creates an EntryPoints bounded to cap candidate slots. cap is always
// treated as at least 1.
func New(cap int) *EntryPoints {
	if cap < 1 {
		cap = 1
	}
	return &EntryPoints{cap: cap}
}

// NewPoint registers point p at level with the set, and returns the
// previous best admissible candidate (if any) so the caller can use it as
// the descent starting point for p's own insertion.
//
// The slot set is updated in the same call: if there is spare capacity, p is
// simply added. Otherwise p replaces the weakest slot when p's level beats
// it, or when that slot's stored point has stopped being admissible.
func (e *EntryPoints) NewPoint(p linkstore.PointID, level int, admissible Admissible) (Record, bool) {
	prev, found := e.GetEntryPoint(admissible)

	if len(e.records) < e.cap {
		e.records = append(e.records, Record{PointID: p, Level: level})
		return prev, found
	}

	worstIdx := -1
	for i, r := range e.records {
		if !admissible(r.PointID) {
			worstIdx = i
			break
		}
		if worstIdx == -1 || r.Level < e.records[worstIdx].Level {
			worstIdx = i
		}
	}

	replace := !admissible(e.records[worstIdx].PointID) || level > e.records[worstIdx].Level
	if replace {
		e.records[worstIdx] = Record{PointID: p, Level: level}
	}

	return prev, found
}

// GetEntryPoint returns the highest-level candidate that currently passes
// admissible, or false if none do.
func (e *EntryPoints) GetEntryPoint(admissible Admissible) (Record, bool) {
	best := Record{}
	found := false
	for _, r := range e.records {
		if !admissible(r.PointID) {
			continue
		}
		if !found || r.Level > best.Level {
			best = r
			found = true
		}
	}
	return best, found
}
