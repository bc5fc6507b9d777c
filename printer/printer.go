// Package printer renders allocator state for humans and tools.
package printer

import (
	"fmt"
	"io"

	"github.com/joshuapare/umalloc/alloc"
)

const (
	DefaultIndentSize = 2
	DefaultMaxBlocks  = 64
)

// Format specifies the output format for printing.
type Format string

const (
	// FormatText outputs human-readable text format.
	FormatText Format = "text"

	// FormatJSON outputs JSON format.
	FormatJSON Format = "json"
)

// Options controls printing behavior.
type Options struct {
	// Format specifies output format (text, json).
	// Default: FormatText
	Format Format

	// IndentSize is the number of spaces per indent level (text format only).
	// Default: 2
	IndentSize int

	// ShowBlocks lists individual free blocks, not just totals.
	// Default: true
	ShowBlocks bool

	// MaxBlocks limits how many free blocks are listed (0 = unlimited).
	// Default: 64
	MaxBlocks int
}

// DefaultOptions returns sensible defaults for printing.
func DefaultOptions() Options {
	return Options{
		Format:     FormatText,
		IndentSize: DefaultIndentSize,
		ShowBlocks: true,
		MaxBlocks:  DefaultMaxBlocks,
	}
}

// Snapshot is the allocator state a Printer renders.
type Snapshot struct {
	Blocks []alloc.Block
	Cursor uint32
	Stats  alloc.Stats
}

// Capture takes a snapshot of a.
func Capture(a *alloc.Allocator) Snapshot {
	return Snapshot{
		Blocks: a.FreeBlocks(),
		Cursor: a.Cursor(),
		Stats:  a.Stats(),
	}
}

// Printer handles formatted output of allocator snapshots.
type Printer struct {
	opts   Options
	writer io.Writer
}

// New creates a new Printer writing to w.
//
// Example:
//
//	p := printer.New(os.Stdout, printer.DefaultOptions())
//	p.Print(printer.Capture(a))
func New(w io.Writer, opts Options) *Printer {
	if opts.IndentSize <= 0 {
		opts.IndentSize = DefaultIndentSize
	}
	return &Printer{
		writer: w,
		opts:   opts,
	}
}

// Print writes the free list and the statistics.
func (p *Printer) Print(s Snapshot) error {
	switch p.opts.Format {
	case FormatJSON:
		return p.printJSON(s)
	case FormatText:
		return p.printText(s)
	default:
		return fmt.Errorf("printer: unknown format %q", p.opts.Format)
	}
}

// visibleBlocks applies MaxBlocks.
func (p *Printer) visibleBlocks(blocks []alloc.Block) ([]alloc.Block, int) {
	if !p.opts.ShowBlocks {
		return nil, len(blocks)
	}
	if p.opts.MaxBlocks > 0 && len(blocks) > p.opts.MaxBlocks {
		return blocks[:p.opts.MaxBlocks], len(blocks) - p.opts.MaxBlocks
	}
	return blocks, 0
}
