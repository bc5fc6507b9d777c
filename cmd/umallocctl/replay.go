package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/umalloc/internal/logger"
	"github.com/joshuapare/umalloc/internal/trace"
)

var replayChecked bool

func init() {
	cmd := newReplayCmd()
	cmd.Flags().BoolVar(&replayChecked, "checked", false, "Release through FreeChecked to catch double frees")
	rootCmd.AddCommand(cmd)
}

func newReplayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replay <trace>",
		Short: "Replay an allocation trace",
		Long: `The replay command runs a trace file against a fresh allocator and prints
the final free list and counters. Use "-" to read the trace from stdin.

Trace lines:
  alloc <name> <bytes>
  free <name>
  check
  dump

Example:
  umallocctl replay workload.trace
  umallocctl replay workload.trace --arena mmap --min-grow 1024
  umallocctl replay workload.trace --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(args)
		},
	}
	return cmd
}

func runReplay(args []string) error {
	path := args[0]
	printVerbose("Reading trace: %s\n", path)

	in := os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open trace: %w", err)
		}
		defer f.Close()
		in = f
	}
	ops, err := trace.Parse(in)
	if err != nil {
		return err
	}

	a, release, err := newAllocator()
	if err != nil {
		return err
	}
	defer release()

	r := &trace.Runner{A: a, Checked: replayChecked}
	if !jsonOut && !quiet {
		r.OnDump = func() {
			if err := printState(os.Stdout, a); err != nil {
				logger.Warn("dump failed", "error", err)
			}
		}
	}

	res, err := r.Run(ops)
	logger.Info("replay finished", "trace", path, "ops", res.Ops, "failures", res.Failures)
	if err != nil {
		return fmt.Errorf("replay %s: %w", path, err)
	}

	summary := fmt.Sprintf("%s: %d ops, %d allocs, %d frees, %d refused, %d checks, %d live\n",
		path, res.Ops, res.Allocs, res.Frees, res.Failures, res.Checks, res.Live)
	return report(res, summary, a)
}
