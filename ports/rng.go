package ports

import (
	"math/rand"
)

// RNGPort provides seeded random number generation for deterministic operations
type RNGPort interface {
	// SeededStream creates a deterministic random number generator for a
	// named operation. The same name and seed always yield the same stream.
	SeededStream(name string, seed int64) *rand.Rand

	// Stream creates a deterministic RNG stream for a specific run, stage,
	// and experiment key. This ensures repeated meta-analysis runs with the
	// same base seed produce identical results experiment by experiment.
	Stream(runID, stageName, experimentKey string, baseSeed int64) *rand.Rand

	// ValidateSeed ensures the seed produces expected deterministic results
	ValidateSeed(name string, seed int64, expected []float64) error
}
