package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmarro89/hnsw-builder/linkstore"
	"github.com/dmarro89/hnsw-builder/scorer"
)

func smallCfg() Config {
	cfg := DefaultConfig()
	cfg.M = 4
	cfg.M0 = 8
	cfg.EfConstruction = 16
	cfg.EntryPointsNum = 4
	return cfg
}

// TestSetLevelsMustRunBeforeLinking covers the UNINITIALISED -> LEVELED ->
// LINKED state machine spec.md describes: each transition must run exactly
// once, in order.
func TestSetLevelsMustRunBeforeLinking(t *testing.T) {
	b, err := NewBuilder(smallCfg())
	require.NoError(t, err)

	vectors := genVectors(2, 4, 1)
	sc := scorer.NewVectorScorer(vectors, vectors[0], scorer.Cosine, nil)

	assert.Panics(t, func() { b.LinkNewPoint(0, sc) }, "linking before leveling must panic")

	b.SetLevels(0, 0)
	assert.Panics(t, func() { b.SetLevels(0, 0) }, "re-leveling must panic")

	require.NotPanics(t, func() { b.LinkNewPoint(0, sc) })
	assert.Panics(t, func() { b.LinkNewPoint(0, sc) }, "re-linking must panic")
}

// TestB1SinglePointInsertion is spec.md §8 Scenario B1: inserting the only
// point in the graph produces an empty neighbor list and no crash.
func TestB1SinglePointInsertion(t *testing.T) {
	b, err := NewBuilder(smallCfg())
	require.NoError(t, err)

	vectors := genVectors(1, 4, 2)
	b.SetLevels(0, 0)
	sc := scorer.NewVectorScorer(vectors, vectors[0], scorer.Cosine, nil)
	b.LinkNewPoint(0, sc)

	assert.Empty(t, b.Neighbors(0, 0))
	_, found := b.GetEntryPoint(func(linkstore.PointID) bool { return true })
	assert.True(t, found)
}

// TestB2TwoPointsAreMutualNeighbors is spec.md §8 Scenario B2.
func TestB2TwoPointsAreMutualNeighbors(t *testing.T) {
	vectors := genVectors(2, 4, 3)
	cfg := smallCfg()
	b, err := NewBuilder(cfg)
	require.NoError(t, err)

	b.SetLevels(0, 0)
	b.SetLevels(1, 0)

	sc0 := scorer.NewVectorScorer(vectors, vectors[0], scorer.Cosine, nil)
	b.LinkNewPoint(0, sc0)

	sc1 := scorer.NewVectorScorer(vectors, vectors[1], scorer.Cosine, nil)
	b.LinkNewPoint(1, sc1)

	assert.Equal(t, []int{1}, b.Neighbors(0, 0))
	assert.Equal(t, []int{0}, b.Neighbors(1, 0))
}

// TestB3HigherLevelPointBecomesEntryPoint is spec.md §8 Scenario B3: a point
// leveled above everything inserted before it must become the entry point.
func TestB3HigherLevelPointBecomesEntryPoint(t *testing.T) {
	vectors := genVectors(5, 4, 4)
	cfg := smallCfg()
	b, err := NewBuilder(cfg)
	require.NoError(t, err)

	for id := 0; id < 4; id++ {
		b.SetLevels(id, 0)
	}
	b.SetLevels(4, 3)

	for id, vec := range vectors {
		sc := scorer.NewVectorScorer(vectors, vec, scorer.Cosine, nil)
		b.LinkNewPoint(id, sc)
	}

	always := func(linkstore.PointID) bool { return true }
	entry, found := b.GetEntryPoint(always)
	require.True(t, found)
	assert.Equal(t, 4, entry.PointID)
	assert.Equal(t, 3, entry.Level)
}
