package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds the recognized simulation options
type Config struct {
	Simulation SimulationConfig
}

// SimulationConfig controls trial counts, significance, and reproducibility
type SimulationConfig struct {
	Iterations  int     // trials per p-value estimate
	Alpha       float64 // significance threshold
	Seed        int64   // base random seed
	Experiments int     // repetitions for meta-analysis runs
	Workers     int     // concurrent meta-analysis experiments
}

// Load reads configuration from environment variables, applying defaults
// for anything unset
func Load() (*Config, error) {
	sim, err := loadSimulationConfig()
	if err != nil {
		return nil, fmt.Errorf("loading simulation configuration: %w", err)
	}
	return &Config{Simulation: *sim}, nil
}

func loadSimulationConfig() (*SimulationConfig, error) {
	cfg := &SimulationConfig{
		Iterations:  1000,
		Alpha:       0.05,
		Seed:        time.Now().UnixNano(),
		Experiments: 1000,
		Workers:     4,
	}

	if v := os.Getenv("NULLSIM_ITERATIONS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("NULLSIM_ITERATIONS must be a positive integer, got %q", v)
		}
		cfg.Iterations = n
	}

	if v := os.Getenv("NULLSIM_ALPHA"); v != "" {
		a, err := strconv.ParseFloat(v, 64)
		if err != nil || a <= 0 || a >= 1 {
			return nil, fmt.Errorf("NULLSIM_ALPHA must be a probability in (0,1), got %q", v)
		}
		cfg.Alpha = a
	}

	if v := os.Getenv("NULLSIM_SEED"); v != "" {
		s, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("NULLSIM_SEED must be an integer, got %q", v)
		}
		cfg.Seed = s
	}

	if v := os.Getenv("NULLSIM_EXPERIMENTS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("NULLSIM_EXPERIMENTS must be a positive integer, got %q", v)
		}
		cfg.Experiments = n
	}

	if v := os.Getenv("NULLSIM_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("NULLSIM_WORKERS must be a positive integer, got %q", v)
		}
		cfg.Workers = n
	}

	return cfg, nil
}
