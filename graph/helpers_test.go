package graph

import (
	"math/rand/v2"

	"github.com/dmarro89/hnsw-builder/scorer"
)

func genVectors(n, dim int, seed uint64) scorer.SliceStore {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	vectors := make(scorer.SliceStore, n)
	for i := range vectors {
		v := make([]float32, dim)
		for d := range v {
			v[d] = float32(rng.Float64()*2 - 1)
		}
		vectors[i] = v
	}
	return vectors
}

func genLevels(b *Builder, n int, seed uint64) []int {
	rng := rand.New(rand.NewPCG(seed, seed^0xd1b54a32d192ed03))
	levels := make([]int, n)
	for i := range levels {
		levels[i] = b.SampleLevel(rng.Float64)
	}
	return levels
}

// buildGraph levels every point first, then links every point in index
// order, mirroring spec.md §8 Scenario 1's "assign levels, then insert all
// points in index order".
func buildGraph(cfg Config, vectors scorer.SliceStore, levels []int) *Builder {
	b, err := NewBuilder(cfg)
	if err != nil {
		panic(err)
	}
	for id := range vectors {
		b.SetLevels(id, levels[id])
	}
	for id, vec := range vectors {
		sc := scorer.NewVectorScorer(vectors, vec, scorer.Cosine, nil)
		b.LinkNewPoint(id, sc)
	}
	return b
}
