// Package arena supplies the raw memory an allocator carves blocks from.
//
// An arena is a single contiguous byte region that only ever grows upward.
// Extend appends n bytes and returns the byte offset where the new region
// starts; previously returned offsets stay valid forever. Implementations:
//
//   - Heap: a Go slice, bounded by a byte limit. The backing array may be
//     reallocated on growth, so callers re-read Bytes after Extend.
//   - Mmap: a reserved virtual-memory region committed page by page. The
//     backing memory never moves.
//   - Failing: refuses every extension.
//
// Arenas are not safe for concurrent use.
package arena

import "errors"

// DefaultMaxBytes bounds a Heap arena created with a non-positive limit.
const DefaultMaxBytes = 1 << 30

var (
	// ErrExhausted indicates the environment cannot extend the arena any further.
	ErrExhausted = errors.New("arena: exhausted")

	// ErrClosed indicates the arena was used after Close.
	ErrClosed = errors.New("arena: closed")

	// ErrBadSize indicates a non-positive extension request.
	ErrBadSize = errors.New("arena: extension size must be positive")
)

// Extender is the environment primitive an allocator grows through.
type Extender interface {
	// Extend grows the arena by n bytes and returns the byte offset of the
	// first new byte. On error the arena is unchanged.
	Extend(n int) (base int, err error)

	// Bytes returns the whole arena, from offset 0 to the end of the most
	// recent extension.
	Bytes() []byte
}

// Failing is an Extender that refuses every request.
type Failing struct {
	// Err is returned from Extend. Nil means ErrExhausted.
	Err error
}

// Extend always fails.
func (f Failing) Extend(int) (int, error) {
	if f.Err != nil {
		return 0, f.Err
	}
	return 0, ErrExhausted
}

// Bytes returns an empty arena.
func (Failing) Bytes() []byte { return nil }
