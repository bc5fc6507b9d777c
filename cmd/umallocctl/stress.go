package main

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/joshuapare/umalloc/internal/logger"
	"github.com/joshuapare/umalloc/internal/trace"
)

var (
	stressOps     int
	stressSeed    uint64
	stressMaxSize string
	stressCheck   bool
	stressDrain   bool
)

func init() {
	cmd := newStressCmd()
	cmd.Flags().IntVar(&stressOps, "ops", 10000, "Number of alloc/free operations")
	cmd.Flags().Uint64Var(&stressSeed, "seed", 1, "Random seed")
	cmd.Flags().StringVar(&stressMaxSize, "max-size", "4KiB", "Largest request size")
	cmd.Flags().BoolVar(&stressCheck, "check", false, "Validate the free list after every operation")
	cmd.Flags().BoolVar(&stressDrain, "drain", false, "Free every live block at the end")
	rootCmd.AddCommand(cmd)
}

func newStressCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stress",
		Short: "Run a seeded random workload",
		Long: `The stress command generates a reproducible random mix of allocations and
releases, checks every payload on release, and prints the resulting counters.

Example:
  umallocctl stress --ops 100000 --seed 7
  umallocctl stress --ops 5000 --max-size 64KiB --check --drain`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStress()
		},
	}
	return cmd
}

func runStress() error {
	maxSize, err := humanize.ParseBytes(stressMaxSize)
	if err != nil {
		return fmt.Errorf("invalid --max-size %q: %w", stressMaxSize, err)
	}
	if maxSize > 1<<32-1 {
		return fmt.Errorf("--max-size %s exceeds 4GiB", stressMaxSize)
	}
	if stressOps < 0 {
		return fmt.Errorf("--ops must not be negative")
	}

	a, release, err := newAllocator()
	if err != nil {
		return err
	}
	defer release()

	ops := trace.Generate(trace.GenConfig{
		Ops:      stressOps,
		Seed:     stressSeed,
		MaxBytes: uint32(maxSize),
		Check:    stressCheck,
		Drain:    stressDrain,
	})
	printVerbose("Generated %d operations (seed %d)\n", len(ops), stressSeed)

	start := time.Now()
	res, err := (&trace.Runner{A: a}).Run(ops)
	elapsed := time.Since(start)
	logger.Info("stress finished", "seed", stressSeed, "ops", res.Ops, "elapsed", elapsed)
	if err != nil {
		return fmt.Errorf("stress seed %d: %w", stressSeed, err)
	}

	summary := fmt.Sprintf("seed %d: %d ops in %s, %d allocs, %d frees, %d refused, peak %s requested\n",
		stressSeed, res.Ops, elapsed.Round(time.Microsecond), res.Allocs, res.Frees, res.Failures,
		humanize.IBytes(uint64(res.PeakInUse)))
	return report(res, summary, a)
}
