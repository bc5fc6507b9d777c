package alloc

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/joshuapare/umalloc/arena"
	"github.com/joshuapare/umalloc/internal/buf"
	"github.com/joshuapare/umalloc/internal/format"
)

// Runtime debug flag for growth logging - controlled by UMALLOC_LOG_ALLOC env var.
var logAlloc = os.Getenv("UMALLOC_LOG_ALLOC") != ""

// node is the in-struct storage of the sentinel. Every other node lives in
// the arena bytes.
type node struct {
	size uint32
	next uint32
}

// Allocator is a free-list allocator over one arena.
type Allocator struct {
	ext arena.Extender
	mem []byte // ext.Bytes() as of the last successful extension

	cfg   Config
	log   *slog.Logger
	debug bool // log has debug enabled; gates per-release records

	base     node   // sentinel, address format.BaseAddr
	freelist uint32 // cursor: last insertion/search point
	started  bool   // free list bootstrapped

	// owned is the number of units handed to the allocator by the arena.
	owned uint64

	stats Stats

	// Test hook: called before each arena extension (nil in production)
	onGrow func(units uint32)
}

// New creates an allocator drawing memory from ext.
//
// Parameters:
//   - ext: the arena to grow (see package arena)
//   - cfg: tunables (use nil for DefaultConfig)
//
// No memory is requested until the first Alloc.
func New(ext arena.Extender, cfg *Config) *Allocator {
	if cfg == nil {
		cfg = &DefaultConfig
	}
	c := *cfg
	if c.MinGrowUnits == 0 {
		c.MinGrowUnits = format.MinGrowUnits
	}

	logger := c.Logger
	if logger == nil {
		if logAlloc {
			logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
		} else {
			logger = slog.New(slog.NewTextHandler(io.Discard, nil))
		}
	}

	return &Allocator{
		ext:   ext,
		mem:   ext.Bytes(),
		cfg:   c,
		log:   logger.With("component", "alloc"),
		debug: logger.Enabled(context.Background(), slog.LevelDebug),
	}
}

// bootstrap makes the sentinel a one-element circular list.
func (a *Allocator) bootstrap() {
	a.base = node{size: 0, next: format.BaseAddr}
	a.freelist = format.BaseAddr
	a.started = true
}

// Node accessors. These are the only functions that reinterpret arena bytes
// as headers.

func (a *Allocator) size(n uint32) uint32 {
	if n == format.BaseAddr {
		return a.base.size
	}
	return format.ReadSize(a.mem, format.OffsetOf(n))
}

func (a *Allocator) setSize(n, units uint32) {
	if n == format.BaseAddr {
		a.base.size = units
		return
	}
	format.PutSize(a.mem, format.OffsetOf(n), units)
}

func (a *Allocator) next(n uint32) uint32 {
	if n == format.BaseAddr {
		return a.base.next
	}
	return format.ReadNext(a.mem, format.OffsetOf(n))
}

func (a *Allocator) setNext(n, v uint32) {
	if n == format.BaseAddr {
		a.base.next = v
		return
	}
	format.PutNext(a.mem, format.OffsetOf(n), v)
}

// arenaLimit returns one past the highest unit address the arena covers.
func (a *Allocator) arenaLimit() uint32 {
	return format.AddrOf(len(a.mem))
}

// Bytes returns the payload of a live block. The slice aliases the arena and
// is capped at the payload length.
//
// An arena that relocates on growth (arena.Heap) invalidates earlier slices
// whenever Alloc extends it; re-fetch after every Alloc in that case.
func (a *Allocator) Bytes(p Ptr) []byte {
	if p == Nil {
		return nil
	}
	hdr := uint32(p) - 1
	units := a.size(hdr)
	if units == 0 {
		return nil
	}
	b, ok := buf.Slice(a.mem, format.OffsetOf(uint32(p)), format.UnitsToBytes(units-1))
	if !ok {
		return nil
	}
	return b
}

// Size returns the usable payload size of a live block in bytes.
func (a *Allocator) Size(p Ptr) int {
	if p == Nil {
		return 0
	}
	units := a.size(uint32(p) - 1)
	if units == 0 {
		return 0
	}
	return format.UnitsToBytes(units - 1)
}

// Units returns the size of a live block in units, header included.
func (a *Allocator) Units(p Ptr) uint32 {
	if p == Nil {
		return 0
	}
	return a.size(uint32(p) - 1)
}

// Cursor returns the unit address the next search starts after.
func (a *Allocator) Cursor() uint32 {
	return a.freelist
}

// Arena returns the extender the allocator grows through.
func (a *Allocator) Arena() arena.Extender {
	return a.ext
}
