package metaanalysis

import (
	"context"
	"errors"
	"fmt"
)

// ErrTargetPowerNotReached indicates no swept sample size achieved the
// requested power
var ErrTargetPowerNotReached = errors.New("target power not reached at any swept sample size")

// PowerPoint is one point on a power curve
type PowerPoint struct {
	SampleSize int     `json:"sample_size"`
	Power      float64 `json:"power"`
}

// PowerCurve estimates power at each of the given per-group sample sizes,
// holding the generator's effect size fixed
func (e *Estimator) PowerCurve(ctx context.Context, spec Spec, sizes []int) ([]PowerPoint, error) {
	if len(sizes) == 0 {
		return nil, fmt.Errorf("no sample sizes to sweep")
	}
	points := make([]PowerPoint, 0, len(sizes))
	for _, n := range sizes {
		s := spec
		s.SampleSize = n
		manifest, err := e.EstimatePower(ctx, s)
		if err != nil {
			return nil, fmt.Errorf("sample size %d: %w", n, err)
		}
		points = append(points, PowerPoint{SampleSize: n, Power: manifest.Rate})
	}
	return points, nil
}

// MinimumSizeOnCurve returns the first point on an already-estimated power
// curve that reaches the target power, so callers holding a curve need not
// re-run any estimates.
func MinimumSizeOnCurve(curve []PowerPoint, targetPower float64) (int, error) {
	if targetPower <= 0 || targetPower > 1 {
		return 0, fmt.Errorf("target power must be in (0,1], got %v", targetPower)
	}
	for _, pt := range curve {
		if pt.Power >= targetPower {
			return pt.SampleSize, nil
		}
	}
	return 0, ErrTargetPowerNotReached
}

// MinimumDetectableSampleSize sweeps sample sizes in the given order and
// returns the first that reaches the target power. The sweep stops at the
// first hit, so callers normally pass sizes in ascending order.
func (e *Estimator) MinimumDetectableSampleSize(ctx context.Context, spec Spec, targetPower float64, sizes []int) (int, error) {
	if targetPower <= 0 || targetPower > 1 {
		return 0, fmt.Errorf("target power must be in (0,1], got %v", targetPower)
	}
	for _, n := range sizes {
		s := spec
		s.SampleSize = n
		manifest, err := e.EstimatePower(ctx, s)
		if err != nil {
			return 0, fmt.Errorf("sample size %d: %w", n, err)
		}
		if manifest.Rate >= targetPower {
			return n, nil
		}
	}
	return 0, ErrTargetPowerNotReached
}
