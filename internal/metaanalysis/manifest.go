package metaanalysis

import (
	"nullsim/domain/core"
)

// RunManifest captures the complete specification and outcome of one
// meta-analysis run, including everything needed to reproduce it.
type RunManifest struct {
	RunID            core.RunID     `json:"run_id"`
	Stage            string         `json:"stage"` // "false_positive_rate" or "power"
	Variant          string         `json:"variant"`
	Seed             int64          `json:"seed"`
	Alpha            float64        `json:"alpha"`
	Experiments      int            `json:"experiments"`
	Iterations       int            `json:"iterations"`
	SampleSize       int            `json:"sample_size"`
	SignificantCount int            `json:"significant_count"`
	Rate             float64        `json:"rate"`
	RuntimeMs        int64          `json:"runtime_ms"`
	CreatedAt        core.Timestamp `json:"created_at"`
}
