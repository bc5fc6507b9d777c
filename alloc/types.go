package alloc

import (
	"log/slog"

	"github.com/joshuapare/umalloc/internal/format"
)

// Ptr is the handle of an allocated block: the unit address of its payload.
type Ptr uint32

// Nil is the zero Ptr. Alloc returns it together with an error on failure.
const Nil Ptr = 0

// Block describes a free block.
type Block struct {
	Addr  uint32 // Unit address of the header
	Units uint32 // Size in units, header included
}

// Bytes returns the block size in bytes, header included.
func (b Block) Bytes() int { return format.UnitsToBytes(b.Units) }

// Config holds allocator tunables.
type Config struct {
	// MinGrowUnits is the smallest arena extension, in units. Growing in
	// batches amortizes the cost of calling the environment.
	MinGrowUnits uint32

	// Logger receives debug records for arena growth. Nil discards them
	// unless UMALLOC_LOG_ALLOC is set in the environment.
	Logger *slog.Logger
}

// DefaultConfig is used when New is given a nil config.
var DefaultConfig = Config{
	MinGrowUnits: format.MinGrowUnits,
}

// Stats holds allocator counters and a few derived gauges.
type Stats struct {
	AllocCalls       int    // Total Alloc() calls
	AllocFailures    int    // Alloc() calls that returned an error
	FreeCalls        int    // Total Free() calls, Nil excluded
	GrowCalls        int    // Successful arena extensions
	GrowUnits        uint64 // Units added by arena extensions
	ExactFits        int    // Allocations that unlinked a whole free block
	Splits           int    // Allocations that carved the tail of a larger block
	FallbackSteps    int    // Links walked after the closest-fit candidate was rejected
	CoalesceForward  int    // Released blocks merged with their successor
	CoalesceBackward int    // Released blocks merged into their predecessor

	ArenaBytes int64 // Bytes the allocator owns
	FreeBytes  int64 // Bytes on the free list, headers included
	FreeBlocks int   // Free blocks, sentinel excluded
	InUseBytes int64 // ArenaBytes - FreeBytes
}
