// Package variants holds the concrete hypothesis-test strategies. Each
// variant supplies a test statistic plus null-model mechanics; the
// simulation engine in adapters/stats/engine drives everything else.
package variants

import (
	"math/rand"

	"nullsim/domain/core"
	"nullsim/domain/sample"
	"nullsim/ports"
)

// permutationModel embodies "labels are exchangeable under the null": it
// pools every observation from every group and re-partitions the pool into
// groups of the original sizes on each draw. Built once per test instance
// and shuffled in place for every trial, so the dominant cost per trial is
// the shuffle plus re-slicing.
type permutationModel struct {
	pooled []float64
	sizes  []int
	groups []sample.Sample // reused backing for drawn groups
}

func newPermutationModel(g sample.Group) *permutationModel {
	return &permutationModel{
		pooled: g.Pool(),
		sizes:  g.Sizes(),
		groups: make([]sample.Sample, g.Arity()),
	}
}

// Draw shuffles the pooled collection uniformly and slices it into
// contiguous runs matching the remembered group sizes, in original group
// order. The returned group aliases the pooled array and is only valid
// until the next Draw.
func (m *permutationModel) Draw(rng *rand.Rand) (sample.Group, error) {
	total := 0
	for _, n := range m.sizes {
		total += n
	}
	if len(m.pooled) != total {
		return sample.Group{}, core.NewInvariantError(
			"pooled collection has %d values but group sizes sum to %d", len(m.pooled), total)
	}

	rng.Shuffle(len(m.pooled), func(i, j int) {
		m.pooled[i], m.pooled[j] = m.pooled[j], m.pooled[i]
	})

	offset := 0
	for i, n := range m.sizes {
		m.groups[i] = sample.Sample(m.pooled[offset : offset+n])
		offset += n
	}
	return sample.Regroup(m.groups), nil
}

var _ ports.NullModel = (*permutationModel)(nil)
