package arena

import "fmt"

// Heap is an arena backed by an ordinary Go byte slice.
type Heap struct {
	data []byte
	max  int
}

// NewHeap creates an empty heap arena that refuses to grow past max bytes.
// A non-positive max selects DefaultMaxBytes.
func NewHeap(max int) *Heap {
	if max <= 0 {
		max = DefaultMaxBytes
	}
	return &Heap{max: max}
}

// Extend appends n zeroed bytes.
func (h *Heap) Extend(n int) (int, error) {
	if n <= 0 {
		return 0, ErrBadSize
	}
	base := len(h.data)
	if n > h.max-base {
		return 0, fmt.Errorf("heap arena: need %d bytes, %d of %d left: %w", n, h.max-base, h.max, ErrExhausted)
	}
	if base+n > cap(h.data) {
		// Double like append would, but never past the limit.
		grown := max(2*cap(h.data), base+n)
		grown = min(grown, h.max)
		next := make([]byte, base, grown)
		copy(next, h.data)
		h.data = next
	}
	h.data = h.data[:base+n]
	return base, nil
}

// Bytes returns the current arena contents.
func (h *Heap) Bytes() []byte { return h.data }

// Len returns the arena size in bytes.
func (h *Heap) Len() int { return len(h.data) }

// Max returns the growth limit in bytes.
func (h *Heap) Max() int { return h.max }
