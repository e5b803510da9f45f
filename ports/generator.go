package ports

import (
	"math/rand"

	"nullsim/domain/sample"
)

// GroupGenerator produces fresh sample groups from a known population, for
// meta-analysis experiments where the ground truth is controlled: a
// generator whose groups share one distribution embodies a true null, one
// whose groups are separated by a real effect measures power.
type GroupGenerator interface {
	// Generate draws one fresh group of the given per-sample size
	Generate(rng *rand.Rand, size int) (sample.Group, error)
}
