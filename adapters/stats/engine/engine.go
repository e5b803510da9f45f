// Package engine drives the generic simulate-and-compare protocol behind
// every Monte Carlo hypothesis test: build a null model once from the
// observed data, draw many simulated datasets from it, and locate the
// actual statistic within the resulting empirical null distribution.
package engine

import (
	"fmt"

	"nullsim/domain/core"
	"nullsim/domain/sample"
	"nullsim/ports"
)

// DefaultIterations is the trial count used when a caller does not
// request a specific one
const DefaultIterations = 1000

// HypothesisTest binds one observed group, one null model, and the actual
// observed statistic, computed once from the real, unshuffled data before
// any simulation runs. Trial statistics are replaced, not appended, on
// each EstimatePValue call.
type HypothesisTest struct {
	variant    ports.Variant
	group      sample.Group
	model      ports.NullModel
	rng        ports.RNGPort
	streamName string
	seed       int64

	actual            float64
	trials            []float64
	defaultIterations int
}

// Option configures a HypothesisTest at construction
type Option func(*HypothesisTest)

// WithDefaultIterations overrides the trial count used when
// EstimatePValue is called with a non-positive iteration count
func WithDefaultIterations(n int) Option {
	return func(ht *HypothesisTest) {
		if n > 0 {
			ht.defaultIterations = n
		}
	}
}

// New validates the observed group, builds the variant's null model once,
// and computes the actual statistic. Malformed input fails here, before
// any trial work, so a misleading partial result is never reported.
//
// The stream name and seed identify the instance's trial stream; every
// EstimatePValue call derives it afresh, so the instance replays the same
// shuffle sequence on each run.
func New(variant ports.Variant, group sample.Group, rngPort ports.RNGPort, streamName string, seed int64, opts ...Option) (*HypothesisTest, error) {
	if variant == nil {
		return nil, core.NewInvalidDataError("variant must not be nil")
	}
	if rngPort == nil {
		return nil, core.NewInvalidDataError("rng must not be nil")
	}

	actual, err := variant.Statistic(group)
	if err != nil {
		return nil, fmt.Errorf("computing actual statistic: %w", err)
	}

	model, err := variant.BuildNullModel(group)
	if err != nil {
		return nil, fmt.Errorf("building null model: %w", err)
	}

	ht := &HypothesisTest{
		variant:           variant,
		group:             group,
		model:             model,
		rng:               rngPort,
		streamName:        streamName,
		seed:              seed,
		actual:            actual,
		defaultIterations: DefaultIterations,
	}
	for _, opt := range opts {
		opt(ht)
	}
	return ht, nil
}

// Variant returns the test variant driving this instance
func (ht *HypothesisTest) Variant() ports.Variant {
	return ht.variant
}

// Group returns the observed sample group bound to this instance
func (ht *HypothesisTest) Group() sample.Group {
	return ht.group
}

// Actual returns the observed test statistic
func (ht *HypothesisTest) Actual() float64 {
	return ht.actual
}

// EstimatePValue runs the requested number of simulated trials and returns
// the fraction whose statistic is greater than or equal to the actual
// statistic. The comparison is deliberately inclusive: this is a one-sided
// right-tail test on a magnitude statistic, and ties count against
// significance. A non-positive iteration count uses the configured default.
//
// Any previously stored trial statistics are replaced, so MaxTrialStatistic
// and TrialDistribution always reflect the most recent run. The trial
// stream is re-derived from the instance's name and seed on every call,
// so repeated calls with the same iteration count produce bit-identical
// trial statistics.
func (ht *HypothesisTest) EstimatePValue(iterations int) (float64, error) {
	if iterations <= 0 {
		iterations = ht.defaultIterations
	}

	stream := ht.rng.SeededStream(ht.streamName, ht.seed)
	trials := make([]float64, iterations)
	extreme := 0
	for i := 0; i < iterations; i++ {
		drawn, err := ht.model.Draw(stream)
		if err != nil {
			return 0, fmt.Errorf("trial %d: %w", i, err)
		}
		stat, err := ht.variant.Statistic(drawn)
		if err != nil {
			return 0, fmt.Errorf("trial %d: %w", i, err)
		}
		trials[i] = stat
		if stat >= ht.actual {
			extreme++
		}
	}

	ht.trials = trials
	return float64(extreme) / float64(iterations), nil
}

// MaxTrialStatistic returns the largest statistic observed across the most
// recent run's trials
func (ht *HypothesisTest) MaxTrialStatistic() (float64, error) {
	if ht.trials == nil {
		return 0, fmt.Errorf("%w: call EstimatePValue first", core.ErrNotYetRun)
	}
	max := ht.trials[0]
	for _, v := range ht.trials[1:] {
		if v > max {
			max = v
		}
	}
	return max, nil
}

// TrialDistribution returns a copy of the most recent run's trial
// statistics, in trial order, for external visualization
func (ht *HypothesisTest) TrialDistribution() ([]float64, error) {
	if ht.trials == nil {
		return nil, fmt.Errorf("%w: call EstimatePValue first", core.ErrNotYetRun)
	}
	out := make([]float64, len(ht.trials))
	copy(out, ht.trials)
	return out, nil
}
