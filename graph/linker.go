package graph

import (
	"sort"

	"github.com/dmarro89/hnsw-builder/internal/assert"
	"github.com/dmarro89/hnsw-builder/linkstore"
	"github.com/dmarro89/hnsw-builder/layersearch"
	"github.com/dmarro89/hnsw-builder/scorer"
)

// LinkNewPoint runs the full insertion of point p (spec.md §4.5): the
// LEVELED -> LINKED transition. p must already have been leveled via
// SetLevels, and must not have been linked before. sc is borrowed
// exclusively for the duration of this call.
func (b *Builder) LinkNewPoint(p linkstore.PointID, sc scorer.Scorer) {
	b.ensureState(p)
	assert.That(b.states[p] == stateLeveled, "graph: point %d must be leveled exactly once before linking", p)

	level := b.store.Level(p)

	prev, found := b.entries.NewPoint(p, level, sc.CheckVector)
	b.states[p] = stateLinked

	if !found {
		// First point ever admitted under this filter class: it becomes
		// the entry point and there is nothing yet to link to.
		return
	}

	b.log.Debug("linking point", "point", p, "level", level, "entry", prev.PointID, "entry_level", prev.Level)

	var current layersearch.ScoredPoint
	if prev.Level > level {
		current = b.search.SearchEntry(prev.PointID, prev.Level, level, sc)
	} else {
		current = layersearch.ScoredPoint{ID: prev.PointID, Score: sc.ScoreInternal(p, prev.PointID)}
	}

	linkingLevel := level
	if prev.Level < linkingLevel {
		linkingLevel = prev.Level
	}

	for lvl := linkingLevel; lvl >= 0; lvl-- {
		levelM := b.store.Cap(lvl)
		existing := b.store.Neighbors(p, lvl)

		nearest := b.search.SearchOnLevel(current, lvl, b.cfg.EfConstruction, sc, existing)

		if best, ok := maxByScore(nearest); ok {
			current = best
		}

		if b.cfg.UseHeuristic {
			b.linkHeuristic(p, lvl, levelM, nearest, sc)
		} else {
			b.linkNaive(p, lvl, levelM, nearest, sc)
		}
	}
}

func maxByScore(points []layersearch.ScoredPoint) (layersearch.ScoredPoint, bool) {
	if len(points) == 0 {
		return layersearch.ScoredPoint{}, false
	}
	best := points[0]
	for _, p := range points[1:] {
		if p.Score > best.Score {
			best = p
		}
	}
	return best, true
}

// linkHeuristic implements the heuristic branch of spec.md §4.5 step 4.d:
// diversified neighbor selection for p, then symmetric re-linking of each
// selected neighbor. A neighbor whose list is already at levelM re-runs
// the selection over p plus the first levelM entries of its list, which is
// the whole list, so none of its existing neighbors is left out of the
// competition.
func (b *Builder) linkHeuristic(p linkstore.PointID, level, levelM int, nearest []layersearch.ScoredPoint, sc scorer.Scorer) {
	selected := heuristicSelect(nearest, levelM, sc)
	b.store.ReplaceNeighbors(p, level, selected)

	for _, q := range selected {
		qLinks := b.store.Neighbors(q, level)
		if len(qLinks) < levelM {
			b.store.PushNeighbor(q, level, p)
			continue
		}

		candidates := make([]scoredPoint, 0, levelM+1)
		candidates = append(candidates, scoredPoint{ID: p, Score: sc.ScoreInternal(p, q)})

		take := qLinks
		if len(take) > levelM {
			take = take[:levelM]
		}
		for _, x := range take {
			candidates = append(candidates, scoredPoint{ID: x, Score: sc.ScoreInternal(x, q)})
		}
		sort.Slice(candidates, func(i, j int) bool { return candidates[i].Score > candidates[j].Score })

		reselected := heuristicSelect(candidates, levelM, sc)
		b.store.ReplaceNeighbors(q, level, reselected)
	}
}

// linkNaive implements the naive branch: symmetric sorted insertion with no
// diversification, iterating R in the beam's enumeration order.
func (b *Builder) linkNaive(p linkstore.PointID, level, levelM int, nearest []layersearch.ScoredPoint, sc scorer.Scorer) {
	for _, r := range nearest {
		connectNewPoint(b.store, p, r.ID, level, levelM, sc)
		connectNewPoint(b.store, r.ID, p, level, levelM, sc)
	}
}

// heuristicSelect implements spec.md §4.5.1: given candidates sorted by
// descending score, greedily keep a candidate only if no already-selected
// candidate is closer to it than the query point was.
func heuristicSelect(candidates []scoredPoint, m int, sc scorer.Scorer) []linkstore.PointID {
	selected := make([]linkstore.PointID, 0, m)
	for _, c := range candidates {
		if len(selected) >= m {
			break
		}
		dominated := false
		for _, s := range selected {
			if sc.ScoreInternal(c.ID, s) > c.Score {
				dominated = true
				break
			}
		}
		if !dominated {
			selected = append(selected, c.ID)
		}
	}
	return selected
}

// connectNewPoint implements spec.md §4.5.2 (connect_new_point): insert
// newPoint into target's neighbor list at level, keeping the list sorted by
// descending score-to-target and capped at levelM.
func connectNewPoint(store *linkstore.Store, target, newPoint linkstore.PointID, level, levelM int, sc scorer.Scorer) {
	list := store.Neighbors(target, level)
	newScore := sc.ScoreInternal(target, newPoint)

	insertAt := len(list)
	for i, q := range list {
		if sc.ScoreInternal(target, q) < newScore {
			insertAt = i
			break
		}
	}

	switch {
	case len(list) < levelM:
		grown := make([]linkstore.PointID, len(list)+1)
		copy(grown, list[:insertAt])
		grown[insertAt] = newPoint
		copy(grown[insertAt+1:], list[insertAt:])
		store.ReplaceNeighbors(target, level, grown)
	case insertAt != len(list):
		shifted := make([]linkstore.PointID, len(list))
		copy(shifted, list[:insertAt])
		shifted[insertAt] = newPoint
		copy(shifted[insertAt+1:], list[insertAt:len(list)-1])
		store.ReplaceNeighbors(target, level, shifted)
	default:
		// newPoint is worse than every current entry; do nothing.
	}
}
