package graph

import (
	"errors"

	"github.com/dmarro89/hnsw-builder/scorer"
)

// Config holds the construction parameters for a Builder (spec.md §6).
type Config struct {
	// NumVectors is an initial capacity hint; points may exceed it, since
	// LinkStore grows on demand via SetLevels.
	NumVectors int

	// M is the degree cap for layers >= 1.
	M int

	// M0 is the degree cap for layer 0. Typically 2*M.
	M0 int

	// EfConstruction is the beam width used while linking a new point.
	EfConstruction int

	// EntryPointsNum caps the number of entry-point slots EntryPoints keeps
	// around. Slots are not keyed by filter class.
	EntryPointsNum int

	// UseHeuristic selects the §4.5 branch: heuristic diversification
	// (true) versus naive sorted insertion (false).
	UseHeuristic bool

	// Reserve is a preallocation hint; it has no semantic effect, kept for
	// parity with the original's constructor signature.
	Reserve bool
}

// DefaultConfig returns reasonable defaults, grounded on hnsw.DefaultConfig.
func DefaultConfig() Config {
	return Config{
		M:              16,
		M0:             32,
		EfConstruction: 200,
		EntryPointsNum: 10,
		UseHeuristic:   true,
	}
}

func validateConfig(cfg Config) error {
	if cfg.M <= 0 {
		return errors.New("m must be positive")
	}
	if cfg.M0 <= 0 {
		return errors.New("m0 must be positive")
	}
	if cfg.EfConstruction <= 0 {
		return errors.New("ef_construct must be positive")
	}
	if cfg.EntryPointsNum <= 0 {
		return errors.New("entry_points_num must be positive")
	}
	return nil
}

// scoredPoint is a package-local alias so other files don't need to import
// scorer solely for the type name.
type scoredPoint = scorer.ScoredPoint
