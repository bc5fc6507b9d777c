package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/joshuapare/umalloc/alloc"
	"github.com/joshuapare/umalloc/arena"
	"github.com/joshuapare/umalloc/internal/format"
	"github.com/joshuapare/umalloc/internal/logger"
	"github.com/joshuapare/umalloc/printer"
)

var (
	// Global flags
	verbose   bool
	quiet     bool
	jsonOut   bool
	logFile   string
	arenaKind string
	arenaMax  string
	minGrow   uint32

	closeLog = func() error { return nil }
)

var rootCmd = &cobra.Command{
	Use:   "umallocctl",
	Short: "Drive the umalloc free-list allocator",
	Long: `umallocctl replays allocation traces and random workloads against the
umalloc free-list allocator and reports the resulting free list and counters.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		c, err := logger.Init(logger.Options{
			Enabled: verbose || logFile != "",
			LogFile: logFile,
			Level:   level,
		})
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		closeLog = c
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeLog()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output and debug logging")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Append JSON log records to this file")
	rootCmd.PersistentFlags().StringVar(&arenaKind, "arena", "heap", "Arena backing: heap, mmap or none")
	rootCmd.PersistentFlags().StringVar(&arenaMax, "arena-max", "1GiB", "Arena size limit (e.g. 64MiB)")
	rootCmd.PersistentFlags().
		Uint32Var(&minGrow, "min-grow", format.MinGrowUnits, "Smallest arena extension in 8-byte units")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newAllocator builds an allocator from the global arena flags. The
// returned function releases the arena.
func newAllocator() (*alloc.Allocator, func() error, error) {
	limit, err := humanize.ParseBytes(arenaMax)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --arena-max %q: %w", arenaMax, err)
	}
	if limit == 0 || limit > uint64(format.MaxUnits)*format.UnitSize {
		return nil, nil, fmt.Errorf("--arena-max %s out of range", arenaMax)
	}

	var ext arena.Extender
	release := func() error { return nil }
	switch arenaKind {
	case "heap":
		ext = arena.NewHeap(int(limit))
	case "mmap":
		m, err := arena.NewMmap(int(limit))
		if err != nil {
			return nil, nil, fmt.Errorf("failed to reserve arena: %w", err)
		}
		ext, release = m, m.Close
	case "none":
		ext = arena.Failing{}
	default:
		return nil, nil, fmt.Errorf("unknown --arena %q (want heap, mmap or none)", arenaKind)
	}

	logger.Debug("arena ready", "kind", arenaKind, "limit", humanize.IBytes(limit), "min_grow", minGrow)
	a := alloc.New(ext, &alloc.Config{
		MinGrowUnits: minGrow,
		Logger:       logger.L,
	})
	return a, release, nil
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...any) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...any) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// printState writes the allocator state in the selected format.
func printState(w io.Writer, a *alloc.Allocator) error {
	opts := printer.DefaultOptions()
	if jsonOut {
		opts.Format = printer.FormatJSON
	}
	return printer.New(w, opts).Print(printer.Capture(a))
}

// report prints a run summary followed by the final allocator state. In JSON
// mode both go out as one document.
func report(summary any, text string, a *alloc.Allocator) error {
	if jsonOut {
		var state bytes.Buffer
		if err := printState(&state, a); err != nil {
			return err
		}
		return printJSON(struct {
			Result any             `json:"result"`
			State  json.RawMessage `json:"state"`
		}{summary, state.Bytes()})
	}
	if quiet {
		return nil
	}
	fmt.Fprint(os.Stdout, text)
	return printState(os.Stdout, a)
}
