// Package graph ties LinkStore, LevelSampler, EntryPoints and
// LayerSearcher together into the Linker that orchestrates point insertion
// (spec.md §4.5). It is the direct generalization of the teacher's
// hnsw.HNSW type and hnsw.Insert method to the id-addressed LinkStore
// layout and the Scorer/FilterContext collaborator contracts of spec.md §6.
package graph

import (
	"fmt"
	"log/slog"

	"github.com/dmarro89/hnsw-builder/entrypoints"
	"github.com/dmarro89/hnsw-builder/internal/assert"
	"github.com/dmarro89/hnsw-builder/internal/pqueue"
	"github.com/dmarro89/hnsw-builder/levelsampler"
	"github.com/dmarro89/hnsw-builder/linkstore"
	"github.com/dmarro89/hnsw-builder/layersearch"
	"github.com/dmarro89/hnsw-builder/visited"
)

// pointState tracks each point's position in the UNINITIALISED -> LEVELED
// -> LINKED state machine (spec.md, "State machine (per-point insertion)").
// Neither transition may run twice, be skipped, or reversed; violations are
// programmer errors and panic, per spec.md §7.
type pointState uint8

const (
	stateUninitialised pointState = iota
	stateLeveled
	stateLinked
)

// Builder is the sequential reference Linker: a single cooperative driver
// that processes one point insertion at a time (spec.md §5). It has no
// suspension points within SetLevels/LinkNewPoint; calls are atomic from
// the outside. Builder holds no lock of its own: its methods must not be
// called concurrently from several goroutines.
type Builder struct {
	cfg     Config
	store   *linkstore.Store
	sampler *levelsampler.Sampler
	entries *entrypoints.EntryPoints
	search  *layersearch.Searcher

	states []pointState

	log *slog.Logger
}

// NewBuilder validates cfg and creates an empty Builder, the way
// hnsw.NewHNSW validates a Config before constructing an HNSW.
func NewBuilder(cfg Config) (*Builder, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("graph: invalid config: %w", err)
	}

	store := linkstore.New(cfg.M, cfg.M0)
	return &Builder{
		cfg:     cfg,
		store:   store,
		sampler: levelsampler.New(cfg.M),
		entries: entrypoints.New(cfg.EntryPointsNum),
		search:  layersearch.New(store, visited.NewPool(), pqueue.NewHeapPool()),
		log:     slog.Default(),
	}, nil
}

// SetLogger overrides the structured logger used for build diagnostics.
// The core packages beneath Builder never log; only the orchestrating
// Builder does, the same narrative split the teacher draws between
// hnsw.HNSW (documented, stateful) and structs/ (silent utilities).
func (b *Builder) SetLogger(log *slog.Logger) {
	b.log = log
}

// LevelFactor exposes the sampler's normalization constant, mostly for
// diagnostics and tests.
func (b *Builder) LevelFactor() float64 {
	return b.sampler.LevelFactor()
}

// SampleLevel draws a level for a new point using rng (see levelsampler).
// Per spec.md §4.5 step 1, levels are assigned before linking begins, so
// this is independent of SetLevels/LinkNewPoint and may be called ahead of
// time for every point, e.g. so multiple builders proceed in lockstep.
func (b *Builder) SampleLevel(rng func() float64) int {
	return b.sampler.Sample(rng)
}

func (b *Builder) ensureState(p linkstore.PointID) {
	for len(b.states) <= p {
		b.states = append(b.states, stateUninitialised)
	}
}

// SetLevels performs the UNINITIALISED -> LEVELED transition: it declares
// point p at the given level, materializing its empty layers. It must run
// exactly once per point, before LinkNewPoint.
func (b *Builder) SetLevels(p linkstore.PointID, level int) {
	b.ensureState(p)
	assert.That(b.states[p] == stateUninitialised, "graph: point %d already leveled", p)
	b.store.SetLevels(p, level)
	b.states[p] = stateLeveled
}

// MaxLevel returns the highest level assigned to any point so far.
func (b *Builder) MaxLevel() int {
	return b.store.MaxLevel()
}

// NumPoints returns the number of points the store currently has capacity
// for (the highest point id ever leveled, plus one).
func (b *Builder) NumPoints() int {
	return b.store.NumPoints()
}

// Neighbors returns point p's adjacency list at level, read-only.
func (b *Builder) Neighbors(p linkstore.PointID, level int) []linkstore.PointID {
	return b.store.Neighbors(p, level)
}

// Level returns the highest layer index materialized for p.
func (b *Builder) Level(p linkstore.PointID) int {
	return b.store.Level(p)
}

// Cap returns the degree cap for level: M0 at layer 0, M above it.
func (b *Builder) Cap(level int) int {
	return b.store.Cap(level)
}

// GetEntryPoint returns the highest-level point currently admissible under
// admissible, if any.
func (b *Builder) GetEntryPoint(admissible entrypoints.Admissible) (entrypoints.Record, bool) {
	return b.entries.GetEntryPoint(admissible)
}
