package metaanalysis

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nullsim/adapters/generators"
	"nullsim/adapters/rng"
	"nullsim/adapters/stats/variants"
	"nullsim/domain/core"
)

func TestSpec_Validation(t *testing.T) {
	base := Spec{
		Generator:   generators.NewNullNormal(0, 1),
		Alpha:       0.05,
		Experiments: 10,
		Iterations:  50,
		SampleSize:  10,
	}

	tests := []struct {
		name   string
		mutate func(*Spec)
	}{
		{"nil generator", func(s *Spec) { s.Generator = nil }},
		{"zero alpha", func(s *Spec) { s.Alpha = 0 }},
		{"alpha of one", func(s *Spec) { s.Alpha = 1 }},
		{"no experiments", func(s *Spec) { s.Experiments = 0 }},
		{"no iterations", func(s *Spec) { s.Iterations = 0 }},
		{"no sample size", func(s *Spec) { s.SampleSize = -5 }},
	}

	estimator := NewEstimator(variants.NewDiffMeans(), rng.New(), 1)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := base
			tt.mutate(&spec)
			_, err := estimator.EstimateFalsePositiveRate(context.Background(), spec)
			require.Error(t, err)
			assert.True(t, core.IsInvalidDataError(err), "expected invalid data error, got %v", err)
		})
	}
}

// Under a true null the false-positive rate converges to the significance
// threshold itself. 1000 experiments of 200 trials keeps the sampling
// tolerance modest while staying fast.
func TestFalsePositiveRate_ApproximatesAlpha(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping calibration run in short mode")
	}

	estimator := NewEstimator(variants.NewDiffMeans(), rng.New(), 42)
	manifest, err := estimator.EstimateFalsePositiveRate(context.Background(), Spec{
		Generator:   generators.NewNullNormal(0, 1),
		Alpha:       0.05,
		Experiments: 1000,
		Iterations:  200,
		SampleSize:  20,
	})
	require.NoError(t, err)

	assert.InDelta(t, 0.05, manifest.Rate, 0.03,
		"false-positive rate should approximate alpha")
	assert.Equal(t, manifest.SignificantCount, int(manifest.Rate*float64(manifest.Experiments)+0.5))
}

func TestPower_IncreasesWithEffectSize(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping power run in short mode")
	}

	estimator := NewEstimator(variants.NewDiffMeans(), rng.New(), 7)
	spec := Spec{
		Alpha:       0.05,
		Experiments: 300,
		Iterations:  200,
		SampleSize:  25,
	}

	spec.Generator = generators.NewShiftedNormal(0, 1, 0.2)
	weak, err := estimator.EstimatePower(context.Background(), spec)
	require.NoError(t, err)

	spec.Generator = generators.NewShiftedNormal(0, 1, 1.5)
	strong, err := estimator.EstimatePower(context.Background(), spec)
	require.NoError(t, err)

	assert.Greater(t, strong.Rate, weak.Rate,
		"power at delta=1.5 should exceed power at delta=0.2")
	assert.Greater(t, strong.Rate, 0.9, "a 1.5-sigma effect at n=25 should be detected almost always")
}

func TestPower_IncreasesWithSampleSize(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping power run in short mode")
	}

	estimator := NewEstimator(variants.NewDiffMeans(), rng.New(), 11)
	spec := Spec{
		Generator:   generators.NewShiftedNormal(0, 1, 0.8),
		Alpha:       0.05,
		Experiments: 300,
		Iterations:  200,
	}

	curve, err := estimator.PowerCurve(context.Background(), spec, []int{10, 60})
	require.NoError(t, err)
	require.Len(t, curve, 2)
	assert.Greater(t, curve[1].Power, curve[0].Power,
		"power at n=60 should exceed power at n=10 for a fixed effect")
}

func TestRuns_DeterministicForFixedSeed(t *testing.T) {
	spec := Spec{
		Generator:   generators.NewNullNormal(0, 1),
		Alpha:       0.05,
		Experiments: 60,
		Iterations:  100,
		SampleSize:  15,
	}

	first, err := NewEstimator(variants.NewDiffMeans(), rng.New(), 99).
		EstimateFalsePositiveRate(context.Background(), spec)
	require.NoError(t, err)

	second, err := NewEstimator(variants.NewDiffMeans(), rng.New(), 99, WithWorkers(1)).
		EstimateFalsePositiveRate(context.Background(), spec)
	require.NoError(t, err)

	// Worker count must not affect the aggregate: every experiment runs on
	// its own derived stream.
	assert.Equal(t, first.SignificantCount, second.SignificantCount)
	assert.Equal(t, first.Rate, second.Rate)
}

func TestMinimumDetectableSampleSize(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping sweep in short mode")
	}

	estimator := NewEstimator(variants.NewDiffMeans(), rng.New(), 5)
	spec := Spec{
		Generator:   generators.NewShiftedNormal(0, 1, 1.5),
		Alpha:       0.05,
		Experiments: 200,
		Iterations:  200,
	}

	size, err := estimator.MinimumDetectableSampleSize(context.Background(), spec, 0.8, []int{5, 10, 20, 40})
	require.NoError(t, err)
	assert.LessOrEqual(t, size, 40, "a 1.5-sigma effect should reach 80%% power by n=40")

	// A negligible effect cannot reach near-certain power at tiny n
	spec.Generator = generators.NewShiftedNormal(0, 1, 0.05)
	_, err = estimator.MinimumDetectableSampleSize(context.Background(), spec, 0.99, []int{5})
	assert.True(t, errors.Is(err, ErrTargetPowerNotReached), "got %v", err)
}

func TestMinimumSizeOnCurve(t *testing.T) {
	curve := []PowerPoint{
		{SampleSize: 10, Power: 0.31},
		{SampleSize: 20, Power: 0.64},
		{SampleSize: 40, Power: 0.92},
	}

	size, err := MinimumSizeOnCurve(curve, 0.8)
	require.NoError(t, err)
	assert.Equal(t, 40, size)

	// Exact hits count: the comparison is inclusive
	size, err = MinimumSizeOnCurve(curve, 0.64)
	require.NoError(t, err)
	assert.Equal(t, 20, size)

	_, err = MinimumSizeOnCurve(curve, 0.99)
	assert.True(t, errors.Is(err, ErrTargetPowerNotReached), "got %v", err)

	_, err = MinimumSizeOnCurve(curve, 0)
	assert.Error(t, err)
}

func TestManifest_Fields(t *testing.T) {
	estimator := NewEstimator(variants.NewDiffStdDev(), rng.New(), 21)
	manifest, err := estimator.EstimateFalsePositiveRate(context.Background(), Spec{
		Generator:   generators.NewNullNormal(0, 1),
		Alpha:       0.05,
		Experiments: 20,
		Iterations:  50,
		SampleSize:  10,
	})
	require.NoError(t, err)

	assert.False(t, core.ID(manifest.RunID).IsEmpty())
	assert.Equal(t, "false_positive_rate", manifest.Stage)
	assert.Equal(t, "diff_stddev_permutation", manifest.Variant)
	assert.Equal(t, int64(21), manifest.Seed)
	assert.Equal(t, 20, manifest.Experiments)
	assert.GreaterOrEqual(t, manifest.Rate, 0.0)
	assert.LessOrEqual(t, manifest.Rate, 1.0)
	assert.False(t, manifest.CreatedAt.IsZero())
}
