package benchmarks

import (
	"fmt"
	"math/rand/v2"
	"os"
	"runtime"
	"strconv"
	"testing"
	"time"

	"github.com/dmarro89/hnsw-builder/graph"
	"github.com/dmarro89/hnsw-builder/scorer"
)

// BenchmarkGraphConstruction measures Builder.LinkNewPoint throughput across
// a range of corpus sizes, the same shape the teacher's
// BenchmarkHNSWConstruction used, retargeted at the graph package's flat,
// id-addressed LinkStore instead of the teacher's pointer-linked HNSW.
func BenchmarkGraphConstruction(b *testing.B) {
	seedStr := os.Getenv("HNSW_RAND_SEED")
	seedVal := uint64(42)
	if seedStr != "" {
		if val, err := strconv.ParseUint(seedStr, 10, 64); err == nil {
			seedVal = val
		}
	}

	rng := rand.New(rand.NewPCG(seedVal, seedVal))
	runtime.GC()

	configs := []struct {
		name      string
		numVecs   int
		dimension int
	}{
		{"small", 10000, 128},
		{"medium", 100000, 128},
		{"large", 1000000, 128},
	}

	for _, cfg := range configs {
		vectors := generateRandomVectorsWithRNG(cfg.numVecs, cfg.dimension, rng)

		b.Run(fmt.Sprintf("Build_%s_%dv_%dd", cfg.name, cfg.numVecs, cfg.dimension), func(b *testing.B) {
			fmt.Printf("NumCPU: %d, GOMAXPROCS: %d\n", runtime.NumCPU(), runtime.GOMAXPROCS(0))

			b.ResetTimer()
			b.ReportAllocs()

			var totalInsertTime time.Duration
			var totalVectors int

			for i := 0; i < b.N; i++ {
				b.StopTimer()
				builder, err := graph.NewBuilder(graph.Config{
					M:              16,
					M0:             32,
					EfConstruction: 100,
					EntryPointsNum: 10,
					UseHeuristic:   true,
				})
				if err != nil {
					b.Fatalf("creating builder: %v", err)
				}
				levels := make([]int, cfg.numVecs)
				for p := range levels {
					levels[p] = builder.SampleLevel(rng.Float64)
				}
				runtime.GC()
				b.StartTimer()

				startTime := time.Now()
				store := scorer.SliceStore(vectors)
				for j := 0; j < cfg.numVecs; j++ {
					builder.SetLevels(j, levels[j])
					sc := scorer.NewVectorScorer(store, vectors[j], scorer.NegSquaredEuclidean, nil)
					builder.LinkNewPoint(j, sc)
				}
				elapsed := time.Since(startTime)
				totalInsertTime += elapsed
				totalVectors += cfg.numVecs

				vectorsPerSecond := float64(cfg.numVecs) / elapsed.Seconds()
				b.ReportMetric(vectorsPerSecond, "vectors/sec")
			}

			avgVectorsPerSecond := float64(totalVectors) / totalInsertTime.Seconds()
			fmt.Printf("Average insertion rate: %.2f vectors/sec\n", avgVectorsPerSecond)
		})
	}
}

func generateRandomVectorsWithRNG(count, dim int, rng *rand.Rand) [][]float32 {
	vectors := make([][]float32, count)
	for i := range vectors {
		vectors[i] = make([]float32, dim)
		for j := range vectors[i] {
			vectors[i][j] = rng.Float32()
		}
	}
	return vectors
}

func generateRandomVectors(count, dim int) [][]float32 {
	rng := rand.New(rand.NewPCG(1, 1))
	return generateRandomVectorsWithRNG(count, dim, rng)
}
