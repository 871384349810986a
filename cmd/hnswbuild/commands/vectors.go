package commands

import "math/rand/v2"

// generateVectors deterministically produces n dense float32 vectors of the
// given dimensionality from seed, the same role the teacher's benchmarks
// package gives its own random-vector generators in insert_test.go.
func generateVectors(n, dim int, seed uint64) [][]float32 {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	vectors := make([][]float32, n)
	for i := range vectors {
		v := make([]float32, dim)
		for d := range v {
			v[d] = float32(rng.Float64()*2 - 1)
		}
		vectors[i] = v
	}
	return vectors
}

// sampleLevels draws one level per vector from levelSample, independent of
// and ahead of insertion, matching spec.md's "levels are assigned before
// linking begins".
func sampleLevels(n int, seed uint64, levelSample func(rng func() float64) int) []int {
	rng := rand.New(rand.NewPCG(seed, seed^0xd1b54a32d192ed03))
	levels := make([]int, n)
	for i := range levels {
		levels[i] = levelSample(rng.Float64)
	}
	return levels
}
