package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmarro89/hnsw-builder/linkstore"
	"github.com/dmarro89/hnsw-builder/scorer"
)

func alwaysAdmissible(linkstore.PointID) bool { return true }

// TestDegreeCapNeverExceeded is spec.md §8 Scenario 2 / invariant I1: no
// point's neighbor list at any level ever exceeds that level's cap.
func TestDegreeCapNeverExceeded(t *testing.T) {
	cfg := smallCfg()
	vectors := genVectors(150, 8, 10)
	b, _ := NewBuilder(cfg)
	levels := genLevels(b, len(vectors), 11)
	b = buildGraph(cfg, vectors, levels)

	for id := range vectors {
		for lvl := 0; lvl <= b.Level(id); lvl++ {
			nb := b.Neighbors(id, lvl)
			assert.LessOrEqualf(t, len(nb), b.Cap(lvl), "point %d level %d exceeds cap", id, lvl)
		}
	}
}

// TestNoSelfLoopsOrDuplicateNeighbors is invariant I2.
func TestNoSelfLoopsOrDuplicateNeighbors(t *testing.T) {
	cfg := smallCfg()
	vectors := genVectors(120, 8, 20)
	b, _ := NewBuilder(cfg)
	levels := genLevels(b, len(vectors), 21)
	b = buildGraph(cfg, vectors, levels)

	for id := range vectors {
		for lvl := 0; lvl <= b.Level(id); lvl++ {
			seen := make(map[int]bool)
			for _, q := range b.Neighbors(id, lvl) {
				assert.NotEqual(t, id, q, "point %d must not neighbor itself", id)
				assert.Falsef(t, seen[q], "point %d has duplicate neighbor %d at level %d", id, q, lvl)
				seen[q] = true
			}
		}
	}
}

// TestDeterministicBuild is a scaled instance of spec.md §8 Scenario 1 /
// law D1: building twice from identical parameters, scorer, insertion
// order and pre-assigned levels must produce bitwise-identical adjacency.
func TestDeterministicBuild(t *testing.T) {
	cfg := smallCfg()
	cfg.EntryPointsNum = 10
	vectors := genVectors(200, 12, 42)

	seedBuilder, _ := NewBuilder(cfg)
	levels := genLevels(seedBuilder, len(vectors), 42)

	a := buildGraph(cfg, vectors, levels)
	b := buildGraph(cfg, vectors, levels)

	require.Equal(t, a.MaxLevel(), b.MaxLevel())
	for id := range vectors {
		require.Equal(t, a.Level(id), b.Level(id), "point %d level mismatch", id)
		for lvl := 0; lvl <= a.Level(id); lvl++ {
			assert.Equal(t, a.Neighbors(id, lvl), b.Neighbors(id, lvl), "point %d level %d neighbor mismatch", id, lvl)
		}
	}
}

// TestSearchSelfRecall is spec.md §8 Scenario 3: querying with a point's own
// vector should recover that point as the top result the large majority of
// the time.
func TestSearchSelfRecall(t *testing.T) {
	cfg := smallCfg()
	cfg.UseHeuristic = false
	cfg.EfConstruction = 32
	vectors := genVectors(300, 12, 7)

	seedBuilder, _ := NewBuilder(cfg)
	levels := genLevels(seedBuilder, len(vectors), 7)
	b := buildGraph(cfg, vectors, levels)

	hits := 0
	for id, vec := range vectors {
		sc := scorer.NewVectorScorer(vectors, vec, scorer.Cosine, nil)
		results := b.Search(1, 32, sc)
		if len(results) > 0 && results[0].ID == id {
			hits++
		}
	}

	recall := float64(hits) / float64(len(vectors))
	assert.GreaterOrEqualf(t, recall, 0.95, "self-recall %.3f below 0.95", recall)
}

// TestHeuristicReducesDuplicateNeighborhoodTriangles is spec.md §8 Scenario
// 4: the heuristic branch should diversify neighborhoods relative to the
// naive branch, producing fewer closely-clustered neighbor triangles.
func TestHeuristicReducesDuplicateNeighborhoodTriangles(t *testing.T) {
	vectors := genVectors(150, 8, 99)

	heuristicCfg := smallCfg()
	heuristicCfg.UseHeuristic = true
	seedBuilder, _ := NewBuilder(heuristicCfg)
	levels := genLevels(seedBuilder, len(vectors), 99)

	heuristicGraph := buildGraph(heuristicCfg, vectors, levels)

	naiveCfg := heuristicCfg
	naiveCfg.UseHeuristic = false
	naiveGraph := buildGraph(naiveCfg, vectors, levels)

	countTriangles := func(b *Builder) int {
		count := 0
		for p := range vectors {
			sc := scorer.NewVectorScorer(vectors, vectors[p], scorer.Cosine, nil)
			nb := b.Neighbors(p, 0)
			for i := 0; i < len(nb); i++ {
				for j := i + 1; j < len(nb); j++ {
					a, q := nb[i], nb[j]
					if sc.ScoreInternal(a, q) > sc.ScorePoint(a) {
						count++
					}
				}
			}
		}
		return count
	}

	heuristicTriangles := countTriangles(heuristicGraph)
	naiveTriangles := countTriangles(naiveGraph)

	assert.Lessf(t, heuristicTriangles, naiveTriangles,
		"heuristic build produced %d triangles, naive produced %d", heuristicTriangles, naiveTriangles)
}

// TestEntryPointMonotonicity is spec.md §8 Scenario 5: a single point given
// a level far above everything else must surface as the entry point once
// inserted, regardless of what was already present.
func TestEntryPointMonotonicity(t *testing.T) {
	cfg := smallCfg()
	cfg.EntryPointsNum = 10
	vectors := genVectors(100, 6, 50)

	seedBuilder, _ := NewBuilder(cfg)
	levels := genLevels(seedBuilder, len(vectors), 50)
	for i := range levels {
		if levels[i] > 2 {
			levels[i] = 2
		}
	}
	levels[50] = 9

	b := buildGraph(cfg, vectors, levels)

	entry, found := b.GetEntryPoint(alwaysAdmissible)
	require.True(t, found)
	assert.Equal(t, 50, entry.PointID)
	assert.Equal(t, 9, entry.Level)
}

// TestSymmetryWithoutEviction is a scaled, eviction-free instance of
// spec.md §8 Scenario 6: when M is large enough that no neighbor list ever
// reaches its cap, every edge the naive branch creates must be symmetric.
func TestSymmetryWithoutEviction(t *testing.T) {
	cfg := smallCfg()
	cfg.UseHeuristic = false
	cfg.M = 64
	cfg.M0 = 64
	vectors := genVectors(40, 6, 77)

	seedBuilder, _ := NewBuilder(cfg)
	levels := genLevels(seedBuilder, len(vectors), 77)
	b := buildGraph(cfg, vectors, levels)

	for p := range vectors {
		for lvl := 0; lvl <= b.Level(p); lvl++ {
			for _, q := range b.Neighbors(p, lvl) {
				assert.Containsf(t, b.Neighbors(q, lvl), p, "edge %d->%d at level %d is not symmetric", p, q, lvl)
			}
		}
	}
}
