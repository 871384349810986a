package graph

import "github.com/dmarro89/hnsw-builder/scorer"

// Search runs a query against the built graph: greedy descent to layer 0,
// then a bounded beam search there, returning the top results by
// descending score. This is a read path over the same core components the
// Linker uses, supplementing spec.md's construction-only framing (§1 scopes
// the "hard part" as construction) because §8 Scenario 3 exercises search
// against a built graph, and original_source/graph_linear_builder.rs itself
// exposes an equivalent `search` alongside `link_new_point`.
func (b *Builder) Search(top, ef int, sc scorer.Scorer) []scoredPoint {
	entry, found := b.entries.GetEntryPoint(sc.CheckVector)
	if !found {
		return nil
	}

	zeroEntry := b.search.SearchEntry(entry.PointID, entry.Level, 0, sc)

	beamWidth := ef
	if top > beamWidth {
		beamWidth = top
	}

	nearest := b.search.SearchOnLevel(zeroEntry, 0, beamWidth, sc, nil)
	if len(nearest) > top {
		nearest = nearest[:top]
	}
	return nearest
}
