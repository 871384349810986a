// Package levelsampler draws the random maximum layer assigned to each new
// point, following the truncated geometric distribution used throughout the
// HNSW literature. Ported from the teacher's HNSW.RandomLevel, corrected to
// round (as original_source/graph_linear_builder.rs's get_random_layer does)
// rather than truncate, and to clamp the uniform draw away from zero.
package levelsampler

import "math"

// minUniform is the smallest value the uniform draw is allowed to take.
// -ln(U) diverges as U -> 0; clamping keeps Sample finite.
const minUniform = 1e-12

// Sampler draws per-point levels from -ln(U)*levelFactor, where
// levelFactor = 1 / ln(max(m, 2)).
type Sampler struct {
	levelFactor float64
}

// New creates a Sampler for the given M (expected connections per layer
// above layer 0).
func New(m int) *Sampler {
	base := m
	if base < 2 {
		base = 2
	}
	return &Sampler{levelFactor: 1.0 / math.Log(float64(base))}
}

// LevelFactor returns the normalization constant used by Sample, mostly for
// tests and diagnostics.
func (s *Sampler) LevelFactor() float64 {
	return s.levelFactor
}

// Sample draws one level using rng, a func returning a value in [0, 1) the
// way math/rand/v2's Float64 does. The draw is clamped to (0, 1] before
// taking its log, so Sample never produces NaN or an infinite level.
func (s *Sampler) Sample(rng func() float64) int {
	u := rng()
	if u < minUniform {
		u = minUniform
	}
	if u > 1 {
		u = 1
	}
	level := -math.Log(u) * s.levelFactor
	return int(math.Round(level))
}
