package variants

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"

	"nullsim/domain/core"
	"nullsim/domain/sample"
	"nullsim/ports"
)

// DiffStdDev tests whether two groups differ in spread, using the absolute
// difference of sample standard deviations as the statistic. The null
// model is the same pooled permutation as DiffMeans; only the statistic
// changes.
type DiffStdDev struct{}

// NewDiffStdDev creates the difference-of-standard-deviations variant
func NewDiffStdDev() *DiffStdDev {
	return &DiffStdDev{}
}

// Name returns the variant name
func (v *DiffStdDev) Name() string {
	return "diff_stddev_permutation"
}

// Statistic computes |sd(group1) - sd(group2)| with the sample (n-1)
// estimator, identically for actual and simulated data
func (v *DiffStdDev) Statistic(g sample.Group) (float64, error) {
	if err := v.checkShape(g); err != nil {
		return 0, err
	}
	sd1, err := stats.StandardDeviationSample(stats.Float64Data(g.Sample(0)))
	if err != nil {
		return 0, core.NewInvalidGroupError(0, err.Error())
	}
	sd2, err := stats.StandardDeviationSample(stats.Float64Data(g.Sample(1)))
	if err != nil {
		return 0, core.NewInvalidGroupError(1, err.Error())
	}
	return math.Abs(sd1 - sd2), nil
}

// BuildNullModel pools both groups for permutation draws
func (v *DiffStdDev) BuildNullModel(g sample.Group) (ports.NullModel, error) {
	if err := v.checkShape(g); err != nil {
		return nil, err
	}
	return newPermutationModel(g), nil
}

// checkShape requires two groups of at least two observations each, since
// the sample estimator is undefined for singleton groups
func (v *DiffStdDev) checkShape(g sample.Group) error {
	if g.Arity() != 2 {
		return core.NewInvalidDataError(
			fmt.Sprintf("%s compares exactly 2 groups, got %d", v.Name(), g.Arity()))
	}
	for i := 0; i < g.Arity(); i++ {
		if g.Sample(i).Len() < 2 {
			return core.NewInvalidGroupError(i, "need at least 2 observations for a standard deviation")
		}
	}
	return nil
}

var _ ports.Variant = (*DiffStdDev)(nil)
