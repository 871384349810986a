// Package config loads and resolves cmd/hnswbuild's run parameters from an
// optional YAML file overridden by CLI flags, the same file-then-flag
// layering hurttlocker-cortex's internal/config.ResolveConfig uses. It has
// nothing to do with the core graph packages, which take a plain
// graph.Config struct and know nothing about files or flags.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ValueSource records where a resolved value came from, for diagnostic
// logging.
type ValueSource string

const (
	SourceDefault ValueSource = "default"
	SourceConfig  ValueSource = "config"
	SourceCLI     ValueSource = "cli"
)

// FileConfig is the shape of the optional YAML config file.
type FileConfig struct {
	NumVectors     int    `yaml:"num_vectors"`
	Dim            int    `yaml:"dim"`
	M              int    `yaml:"m"`
	M0             int    `yaml:"m0"`
	EfConstruction int    `yaml:"ef_construction"`
	EntryPointsNum int    `yaml:"entry_points_num"`
	UseHeuristic   *bool  `yaml:"use_heuristic"`
	Metric         string `yaml:"metric"`
	Seed           uint64 `yaml:"seed"`
}

// ResolveOptions carries the CLI flag values. A zero value means "the flag
// was not set" for every field except the bool/uint64 ones, which need
// their own "was this set" companion flags.
type ResolveOptions struct {
	ConfigPath string

	CLINumVectors     int
	CLIDim            int
	CLIM              int
	CLIM0             int
	CLIEfConstruction int
	CLIEntryPointsNum int
	CLIMetric         string

	CLISeed    uint64
	CLISeedSet bool

	CLIUseHeuristic    bool
	CLIUseHeuristicSet bool
}

// Resolved is the final, fully-layered set of parameters plus where each
// came from.
type Resolved struct {
	NumVectors     int
	Dim            int
	M              int
	M0             int
	EfConstruction int
	EntryPointsNum int
	UseHeuristic   bool
	Metric         string
	Seed           uint64

	Sources map[string]ValueSource
}

// DefaultConfigPath is ~/.hnswbuild/config.yaml, mirroring
// cortex's DefaultConfigPath layout.
func DefaultConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".hnswbuild", "config.yaml")
}

// Resolve layers defaults, then the config file (if present), then CLI
// flags, recording the winning source of each field.
func Resolve(opts ResolveOptions) (Resolved, error) {
	out := Resolved{
		NumVectors:     10000,
		Dim:            32,
		M:              16,
		M0:             32,
		EfConstruction: 200,
		EntryPointsNum: 10,
		UseHeuristic:   true,
		Metric:         "cosine",
		Seed:           42,
		Sources:        map[string]ValueSource{},
	}
	for _, field := range []string{"num_vectors", "dim", "m", "m0", "ef_construction", "entry_points_num", "use_heuristic", "metric", "seed"} {
		out.Sources[field] = SourceDefault
	}

	path := strings.TrimSpace(opts.ConfigPath)
	if path == "" {
		path = DefaultConfigPath()
	}

	fc, err := loadFile(path)
	if err != nil {
		return out, err
	}

	if fc != nil {
		applyInt(&out.NumVectors, fc.NumVectors, "num_vectors", SourceConfig, out.Sources)
		applyInt(&out.Dim, fc.Dim, "dim", SourceConfig, out.Sources)
		applyInt(&out.M, fc.M, "m", SourceConfig, out.Sources)
		applyInt(&out.M0, fc.M0, "m0", SourceConfig, out.Sources)
		applyInt(&out.EfConstruction, fc.EfConstruction, "ef_construction", SourceConfig, out.Sources)
		applyInt(&out.EntryPointsNum, fc.EntryPointsNum, "entry_points_num", SourceConfig, out.Sources)
		if fc.UseHeuristic != nil {
			out.UseHeuristic = *fc.UseHeuristic
			out.Sources["use_heuristic"] = SourceConfig
		}
		if strings.TrimSpace(fc.Metric) != "" {
			out.Metric = fc.Metric
			out.Sources["metric"] = SourceConfig
		}
		if fc.Seed != 0 {
			out.Seed = fc.Seed
			out.Sources["seed"] = SourceConfig
		}
	}

	applyInt(&out.NumVectors, opts.CLINumVectors, "num_vectors", SourceCLI, out.Sources)
	applyInt(&out.Dim, opts.CLIDim, "dim", SourceCLI, out.Sources)
	applyInt(&out.M, opts.CLIM, "m", SourceCLI, out.Sources)
	applyInt(&out.M0, opts.CLIM0, "m0", SourceCLI, out.Sources)
	applyInt(&out.EfConstruction, opts.CLIEfConstruction, "ef_construction", SourceCLI, out.Sources)
	applyInt(&out.EntryPointsNum, opts.CLIEntryPointsNum, "entry_points_num", SourceCLI, out.Sources)
	if strings.TrimSpace(opts.CLIMetric) != "" {
		out.Metric = opts.CLIMetric
		out.Sources["metric"] = SourceCLI
	}
	if opts.CLISeedSet {
		out.Seed = opts.CLISeed
		out.Sources["seed"] = SourceCLI
	}
	if opts.CLIUseHeuristicSet {
		out.UseHeuristic = opts.CLIUseHeuristic
		out.Sources["use_heuristic"] = SourceCLI
	}

	return out, nil
}

func applyInt(dst *int, v int, field string, source ValueSource, sources map[string]ValueSource) {
	if v <= 0 {
		return
	}
	*dst = v
	sources[field] = source
}

func loadFile(path string) (*FileConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var fc FileConfig
	if err := yaml.Unmarshal(b, &fc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &fc, nil
}
