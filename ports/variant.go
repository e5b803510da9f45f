package ports

import (
	"math/rand"

	"nullsim/domain/sample"
)

// NullModel is the reusable state a variant derives once from the observed
// data, from which every simulated trial is drawn. Implementations may
// shuffle internal state in place on each draw; the returned group is only
// valid until the next Draw call.
type NullModel interface {
	// Draw produces one simulated dataset under the null hypothesis,
	// matching the observed partition sizes.
	Draw(rng *rand.Rand) (sample.Group, error)
}

// Variant is the contract a concrete hypothesis test must satisfy: a fixed
// test-statistic computation plus the mechanics of building and sampling a
// null model. The engine drives the generic simulate-and-compare protocol;
// variants supply only these two concerns.
type Variant interface {
	// Name identifies the variant in manifests and logs
	Name() string

	// Statistic computes the scalar test statistic on real or simulated
	// data. It must be computed identically for both.
	Statistic(g sample.Group) (float64, error)

	// BuildNullModel derives the reusable null model from the observed
	// group. Called once per test instance.
	BuildNullModel(g sample.Group) (NullModel, error)
}
