package sample

import (
	"fmt"
	"math"

	"nullsim/domain/core"
)

// Sample is an ordered, finite sequence of numeric observations for one
// group. Samples are owned by the caller and only read by the engine.
type Sample []float64

// Len returns the number of observations
func (s Sample) Len() int {
	return len(s)
}

// validate rejects empty samples and non-finite observations
func (s Sample) validate(group int) error {
	if len(s) == 0 {
		return core.NewInvalidGroupError(group, "empty sample")
	}
	for i, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return core.NewInvalidGroupError(group, fmt.Sprintf("non-finite value at index %d", i))
		}
	}
	return nil
}

// Group is a fixed-arity tuple of samples under comparison, commonly two.
// Arity and per-group sizes are fixed at construction from the actual data
// and reused for every simulated trial.
type Group struct {
	samples []Sample
}

// NewGroup validates and captures two or more samples
func NewGroup(samples ...Sample) (Group, error) {
	if len(samples) < 2 {
		return Group{}, core.NewInvalidDataError("need at least two groups to compare")
	}
	for i, s := range samples {
		if err := s.validate(i); err != nil {
			return Group{}, err
		}
	}
	captured := make([]Sample, len(samples))
	copy(captured, samples)
	return Group{samples: captured}, nil
}

// Regroup builds a group from already-validated samples without rescanning
// values. The simulation loop uses it for every null draw, where the
// observations are a re-partition of values that passed validation at
// construction time. Callers outside the simulation path should use NewGroup.
func Regroup(samples []Sample) Group {
	return Group{samples: samples}
}

// Arity returns the number of groups under comparison
func (g Group) Arity() int {
	return len(g.samples)
}

// Sample returns the i-th group's observations
func (g Group) Sample(i int) Sample {
	return g.samples[i]
}

// Sizes returns the per-group observation counts in group order
func (g Group) Sizes() []int {
	sizes := make([]int, len(g.samples))
	for i, s := range g.samples {
		sizes[i] = len(s)
	}
	return sizes
}

// TotalSize returns the observation count summed across groups
func (g Group) TotalSize() int {
	total := 0
	for _, s := range g.samples {
		total += len(s)
	}
	return total
}

// Pool concatenates all observations from every group into one collection,
// in group order. The returned slice is a copy.
func (g Group) Pool() []float64 {
	pooled := make([]float64, 0, g.TotalSize())
	for _, s := range g.samples {
		pooled = append(pooled, s...)
	}
	return pooled
}
