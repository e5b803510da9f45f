package engine

import (
	"fmt"

	"github.com/montanaflynn/stats"

	"nullsim/domain/core"
)

// NullDistributionSummary describes the shape of the empirical null
// distribution from the most recent run, for callers that render the trial
// histogram with a marker at the actual statistic.
type NullDistributionSummary struct {
	Actual       float64 `json:"actual"`
	Mean         float64 `json:"mean"`
	StdDev       float64 `json:"std_dev"`
	Min          float64 `json:"min"`
	Max          float64 `json:"max"`
	Percentile95 float64 `json:"percentile_95"`
	Percentile99 float64 `json:"percentile_99"`
	Trials       int     `json:"trials"`
}

// Summary computes descriptive statistics over the most recent run's
// trial statistics
func (ht *HypothesisTest) Summary() (NullDistributionSummary, error) {
	if ht.trials == nil {
		return NullDistributionSummary{}, fmt.Errorf("%w: call EstimatePValue first", core.ErrNotYetRun)
	}

	data := stats.Float64Data(ht.trials)
	mean, err := stats.Mean(data)
	if err != nil {
		return NullDistributionSummary{}, core.NewInvariantError("summarizing trials: %v", err)
	}
	sd, err := stats.StandardDeviation(data)
	if err != nil {
		return NullDistributionSummary{}, core.NewInvariantError("summarizing trials: %v", err)
	}
	min, err := stats.Min(data)
	if err != nil {
		return NullDistributionSummary{}, core.NewInvariantError("summarizing trials: %v", err)
	}
	max, err := stats.Max(data)
	if err != nil {
		return NullDistributionSummary{}, core.NewInvariantError("summarizing trials: %v", err)
	}
	p95, err := stats.Percentile(data, 95)
	if err != nil {
		// Percentile needs more than one sample; fall back to the max
		p95 = max
	}
	p99, err := stats.Percentile(data, 99)
	if err != nil {
		p99 = max
	}

	return NullDistributionSummary{
		Actual:       ht.actual,
		Mean:         mean,
		StdDev:       sd,
		Min:          min,
		Max:          max,
		Percentile95: p95,
		Percentile99: p99,
		Trials:       len(ht.trials),
	}, nil
}
