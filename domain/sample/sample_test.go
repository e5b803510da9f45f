package sample

import (
	"math"
	"testing"

	"nullsim/domain/core"
)

func TestNewGroup_Validation(t *testing.T) {
	tests := []struct {
		name    string
		samples []Sample
		wantErr bool
	}{
		{
			name:    "two valid groups",
			samples: []Sample{{1, 2, 3}, {4, 5}},
			wantErr: false,
		},
		{
			name:    "three valid groups",
			samples: []Sample{{1}, {2}, {3}},
			wantErr: false,
		},
		{
			name:    "single group rejected",
			samples: []Sample{{1, 2, 3}},
			wantErr: true,
		},
		{
			name:    "no groups rejected",
			samples: nil,
			wantErr: true,
		},
		{
			name:    "empty group rejected",
			samples: []Sample{{1, 2}, {}},
			wantErr: true,
		},
		{
			name:    "NaN rejected",
			samples: []Sample{{1, math.NaN()}, {2, 3}},
			wantErr: true,
		},
		{
			name:    "Inf rejected",
			samples: []Sample{{1, 2}, {math.Inf(1)}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGroup(tt.samples...)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !core.IsInvalidDataError(err) {
					t.Fatalf("expected invalid data error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestGroup_SizesAndPool(t *testing.T) {
	g, err := NewGroup(Sample{1, 2, 3}, Sample{4, 5})
	if err != nil {
		t.Fatalf("NewGroup: %v", err)
	}

	if g.Arity() != 2 {
		t.Errorf("Arity = %d, want 2", g.Arity())
	}
	sizes := g.Sizes()
	if len(sizes) != 2 || sizes[0] != 3 || sizes[1] != 2 {
		t.Errorf("Sizes = %v, want [3 2]", sizes)
	}
	if g.TotalSize() != 5 {
		t.Errorf("TotalSize = %d, want 5", g.TotalSize())
	}

	pool := g.Pool()
	want := []float64{1, 2, 3, 4, 5}
	if len(pool) != len(want) {
		t.Fatalf("Pool length = %d, want %d", len(pool), len(want))
	}
	for i, v := range want {
		if pool[i] != v {
			t.Errorf("Pool[%d] = %v, want %v", i, pool[i], v)
		}
	}

	// Pool must be a copy, not a view into the captured samples
	pool[0] = 99
	if g.Sample(0)[0] != 1 {
		t.Error("mutating the pooled copy changed the captured sample")
	}
}

func TestNewGroup_CapturesSampleList(t *testing.T) {
	samples := []Sample{{1, 2}, {3, 4}}
	g, err := NewGroup(samples...)
	if err != nil {
		t.Fatalf("NewGroup: %v", err)
	}

	// Re-pointing the caller's slice must not affect the group
	samples[0] = Sample{7, 8}
	if g.Sample(0)[0] != 1 {
		t.Error("group observed caller mutation of the sample list")
	}
}
