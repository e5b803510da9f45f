package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"nullsim/adapters/generators"
	"nullsim/adapters/rng"
	"nullsim/adapters/stats/engine"
	"nullsim/adapters/stats/variants"
	"nullsim/internal/config"
	"nullsim/internal/metaanalysis"
	"nullsim/ports"
)

func main() {
	// Load .env if present; a missing file is not an error
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	rootCmd := &cobra.Command{
		Use:   "nullsim",
		Short: "Monte Carlo hypothesis testing via simulated null distributions",
	}

	rootCmd.AddCommand(
		newTestCmd(cfg),
		newFPRCmd(cfg),
		newPowerCmd(cfg),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func variantByName(name string) (ports.Variant, error) {
	switch name {
	case "means":
		return variants.NewDiffMeans(), nil
	case "stddev":
		return variants.NewDiffStdDev(), nil
	default:
		return nil, fmt.Errorf("unknown variant %q (want means or stddev)", name)
	}
}

func newTestCmd(cfg *config.Config) *cobra.Command {
	var (
		variantName string
		sampleSize  int
		delta       float64
		sigma       float64
		iterations  int
		seed        int64
	)

	cmd := &cobra.Command{
		Use:   "test",
		Short: "Run one permutation test on generator-drawn groups",
		Long: `Draw two Normal groups (optionally separated by --delta), run the
selected permutation test, and print the p-value with a summary of the
empirical null distribution.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			variant, err := variantByName(variantName)
			if err != nil {
				return err
			}

			streams := rng.New()

			gen := generators.NewShiftedNormal(0, sigma, delta)
			group, err := gen.Generate(streams.SeededStream("cli-test/generate", seed), sampleSize)
			if err != nil {
				return err
			}

			test, err := engine.New(variant, group, streams, "cli-test/trials", seed)
			if err != nil {
				return err
			}
			p, err := test.EstimatePValue(iterations)
			if err != nil {
				return err
			}
			summary, err := test.Summary()
			if err != nil {
				return err
			}

			out := struct {
				Variant string                         `json:"variant"`
				PValue  float64                        `json:"p_value"`
				Null    engine.NullDistributionSummary `json:"null_distribution"`
			}{variant.Name(), p, summary}
			return printJSON(cmd, out)
		},
	}

	cmd.Flags().StringVar(&variantName, "variant", "means", "test variant: means or stddev")
	cmd.Flags().IntVar(&sampleSize, "n", 50, "observations per group")
	cmd.Flags().Float64Var(&delta, "delta", 0, "true separation between group means")
	cmd.Flags().Float64Var(&sigma, "sigma", 1, "population standard deviation")
	cmd.Flags().IntVar(&iterations, "iterations", cfg.Simulation.Iterations, "simulated trials")
	cmd.Flags().Int64Var(&seed, "seed", cfg.Simulation.Seed, "random seed")
	return cmd
}

func newFPRCmd(cfg *config.Config) *cobra.Command {
	var (
		variantName string
		sampleSize  int
		sigma       float64
		alpha       float64
		experiments int
		iterations  int
		seed        int64
	)

	cmd := &cobra.Command{
		Use:   "fpr",
		Short: "Estimate the false-positive rate under a true null",
		RunE: func(cmd *cobra.Command, args []string) error {
			variant, err := variantByName(variantName)
			if err != nil {
				return err
			}

			estimator := metaanalysis.NewEstimator(variant, rng.New(), seed,
				metaanalysis.WithWorkers(cfg.Simulation.Workers))

			manifest, err := estimator.EstimateFalsePositiveRate(context.Background(), metaanalysis.Spec{
				Generator:   generators.NewNullNormal(0, sigma),
				Alpha:       alpha,
				Experiments: experiments,
				Iterations:  iterations,
				SampleSize:  sampleSize,
			})
			if err != nil {
				return err
			}
			return printJSON(cmd, manifest)
		},
	}

	cmd.Flags().StringVar(&variantName, "variant", "means", "test variant: means or stddev")
	cmd.Flags().IntVar(&sampleSize, "n", 20, "observations per group")
	cmd.Flags().Float64Var(&sigma, "sigma", 1, "population standard deviation")
	cmd.Flags().Float64Var(&alpha, "alpha", cfg.Simulation.Alpha, "significance threshold")
	cmd.Flags().IntVar(&experiments, "experiments", cfg.Simulation.Experiments, "full test repetitions")
	cmd.Flags().IntVar(&iterations, "iterations", cfg.Simulation.Iterations, "trials per repetition")
	cmd.Flags().Int64Var(&seed, "seed", cfg.Simulation.Seed, "base random seed")
	return cmd
}

func newPowerCmd(cfg *config.Config) *cobra.Command {
	var (
		variantName string
		sampleSize  int
		sigma       float64
		delta       float64
		alpha       float64
		experiments int
		iterations  int
		seed        int64
		sweep       string
		target      float64
	)

	cmd := &cobra.Command{
		Use:   "power",
		Short: "Estimate statistical power at a known effect size",
		Long: `Estimate the probability that the test flags significance when the
groups really are separated by --delta. With --sweep, estimate power at
each listed sample size and report the smallest one reaching --target.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			variant, err := variantByName(variantName)
			if err != nil {
				return err
			}

			estimator := metaanalysis.NewEstimator(variant, rng.New(), seed,
				metaanalysis.WithWorkers(cfg.Simulation.Workers))

			spec := metaanalysis.Spec{
				Generator:   generators.NewShiftedNormal(0, sigma, delta),
				Alpha:       alpha,
				Experiments: experiments,
				Iterations:  iterations,
				SampleSize:  sampleSize,
			}

			if sweep == "" {
				manifest, err := estimator.EstimatePower(context.Background(), spec)
				if err != nil {
					return err
				}
				return printJSON(cmd, manifest)
			}

			sizes, err := parseSizes(sweep)
			if err != nil {
				return err
			}
			curve, err := estimator.PowerCurve(context.Background(), spec, sizes)
			if err != nil {
				return err
			}
			out := struct {
				Curve     []metaanalysis.PowerPoint `json:"curve"`
				Target    float64                   `json:"target_power"`
				MinSize   int                       `json:"min_sample_size,omitempty"`
				Unreached bool                      `json:"target_unreached,omitempty"`
			}{Curve: curve, Target: target}
			if minSize, err := metaanalysis.MinimumSizeOnCurve(curve, target); err != nil {
				out.Unreached = true
			} else {
				out.MinSize = minSize
			}
			return printJSON(cmd, out)
		},
	}

	cmd.Flags().StringVar(&variantName, "variant", "means", "test variant: means or stddev")
	cmd.Flags().IntVar(&sampleSize, "n", 20, "observations per group")
	cmd.Flags().Float64Var(&sigma, "sigma", 1, "population standard deviation")
	cmd.Flags().Float64Var(&delta, "delta", 0.5, "true separation between group means")
	cmd.Flags().Float64Var(&alpha, "alpha", cfg.Simulation.Alpha, "significance threshold")
	cmd.Flags().IntVar(&experiments, "experiments", cfg.Simulation.Experiments, "full test repetitions")
	cmd.Flags().IntVar(&iterations, "iterations", cfg.Simulation.Iterations, "trials per repetition")
	cmd.Flags().Int64Var(&seed, "seed", cfg.Simulation.Seed, "base random seed")
	cmd.Flags().StringVar(&sweep, "sweep", "", "comma-separated sample sizes to sweep, e.g. 10,20,40,80")
	cmd.Flags().Float64Var(&target, "target", 0.8, "target power for the sweep")
	return cmd
}

func parseSizes(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	sizes := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid sample size %q in sweep", p)
		}
		sizes = append(sizes, n)
	}
	return sizes, nil
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
