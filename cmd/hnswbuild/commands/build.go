package commands

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	hbconfig "github.com/dmarro89/hnsw-builder/config"
	"github.com/dmarro89/hnsw-builder/graph"
	"github.com/dmarro89/hnsw-builder/scorer"
)

var buildFlags struct {
	numVectors     int
	dim            int
	m              int
	m0             int
	efConstruction int
	entryPointsNum int
	metric         string
	seed           uint64
	heuristic      bool
}

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Generate random vectors and build an HNSW graph over them",
	RunE:  runBuild,
}

func init() {
	f := buildCmd.Flags()
	f.IntVar(&buildFlags.numVectors, "num-vectors", 0, "number of vectors to generate")
	f.IntVar(&buildFlags.dim, "dim", 0, "vector dimensionality")
	f.IntVar(&buildFlags.m, "m", 0, "degree cap above layer 0")
	f.IntVar(&buildFlags.m0, "m0", 0, "degree cap at layer 0")
	f.IntVar(&buildFlags.efConstruction, "ef-construction", 0, "beam width used while linking")
	f.IntVar(&buildFlags.entryPointsNum, "entry-points-num", 0, "number of entry-point slots")
	f.StringVar(&buildFlags.metric, "metric", "", "distance metric: cosine, dot, or euclidean")
	f.Uint64Var(&buildFlags.seed, "seed", 0, "PRNG seed for vector generation and level sampling")
	f.BoolVar(&buildFlags.heuristic, "heuristic", true, "use heuristic neighbor diversification instead of naive insertion")
}

func runBuild(cmd *cobra.Command, args []string) error {
	resolved, err := hbconfig.Resolve(hbconfig.ResolveOptions{
		ConfigPath:         configPath,
		CLINumVectors:      buildFlags.numVectors,
		CLIDim:             buildFlags.dim,
		CLIM:               buildFlags.m,
		CLIM0:              buildFlags.m0,
		CLIEfConstruction:  buildFlags.efConstruction,
		CLIEntryPointsNum:  buildFlags.entryPointsNum,
		CLIMetric:          buildFlags.metric,
		CLISeed:            buildFlags.seed,
		CLISeedSet:         cmd.Flags().Changed("seed"),
		CLIUseHeuristic:    buildFlags.heuristic,
		CLIUseHeuristicSet: cmd.Flags().Changed("heuristic"),
	})
	if err != nil {
		return fmt.Errorf("resolving config: %w", err)
	}

	dist, err := distanceFuncFor(resolved.Metric)
	if err != nil {
		return err
	}

	buildID := uuid.New()
	log := slog.New(slog.NewTextHandler(os.Stderr, nil)).With("build_id", buildID.String())

	cfg := graph.Config{
		NumVectors:     resolved.NumVectors,
		M:              resolved.M,
		M0:             resolved.M0,
		EfConstruction: resolved.EfConstruction,
		EntryPointsNum: resolved.EntryPointsNum,
		UseHeuristic:   resolved.UseHeuristic,
	}
	builder, err := graph.NewBuilder(cfg)
	if err != nil {
		return fmt.Errorf("creating builder: %w", err)
	}
	builder.SetLogger(log)

	log.Info("generating vectors", "num_vectors", resolved.NumVectors, "dim", resolved.Dim, "metric", resolved.Metric, "seed", resolved.Seed)
	vectors := generateVectors(resolved.NumVectors, resolved.Dim, resolved.Seed)
	levels := sampleLevels(len(vectors), resolved.Seed, builder.SampleLevel)

	start := time.Now()
	log.Info("build started", "heuristic", resolved.UseHeuristic, "m", resolved.M, "m0", resolved.M0)
	for id := range vectors {
		builder.SetLevels(id, levels[id])
	}
	for id, vec := range vectors {
		sc := scorer.NewVectorScorer(scorer.SliceStore(vectors), vec, dist, nil)
		builder.LinkNewPoint(id, sc)
		if (id+1)%1000 == 0 {
			log.Info("build progress", "points_linked", id+1)
		}
	}
	elapsed := time.Since(start)
	log.Info("build finished", "elapsed", elapsed.String(), "max_level", builder.MaxLevel())

	printReport(cmd, builder, len(vectors), elapsed, buildID)
	return nil
}

func distanceFuncFor(metric string) (scorer.DistanceFunc, error) {
	switch metric {
	case "cosine":
		return scorer.Cosine, nil
	case "dot":
		return scorer.Dot, nil
	case "euclidean":
		return scorer.NegSquaredEuclidean, nil
	default:
		return nil, fmt.Errorf("unknown metric %q (want cosine, dot, or euclidean)", metric)
	}
}

func printReport(cmd *cobra.Command, b *graph.Builder, numVectors int, elapsed time.Duration, buildID uuid.UUID) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "build %s: %d points, max level %d, %s\n", buildID, numVectors, b.MaxLevel(), elapsed)
	fmt.Fprintf(out, "%-6s %10s %10s %10s\n", "layer", "points", "avg_deg", "max_deg")
	for layer := 0; layer <= b.MaxLevel(); layer++ {
		points := 0
		degreeSum := 0
		maxDegree := 0
		for id := 0; id < numVectors; id++ {
			if b.Level(id) < layer {
				continue
			}
			points++
			degree := len(b.Neighbors(id, layer))
			degreeSum += degree
			if degree > maxDegree {
				maxDegree = degree
			}
		}
		avgDegree := 0.0
		if points > 0 {
			avgDegree = float64(degreeSum) / float64(points)
		}
		fmt.Fprintf(out, "%-6d %10d %10.2f %10d\n", layer, points, avgDegree, maxDegree)
	}
}
