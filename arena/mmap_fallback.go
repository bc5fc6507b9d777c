//go:build !unix && !windows

package arena

// Mmap falls back to a heap arena where virtual-memory reservation is not
// available. The arena may move on growth.
type Mmap struct {
	*Heap
	closed bool
}

// NewMmap returns a heap-backed arena limited to reserve bytes.
func NewMmap(reserve int) (*Mmap, error) {
	if reserve <= 0 {
		return nil, ErrBadSize
	}
	return &Mmap{Heap: NewHeap(reserve)}, nil
}

// Extend grows the underlying heap arena.
func (m *Mmap) Extend(n int) (int, error) {
	if m.closed {
		return 0, ErrClosed
	}
	return m.Heap.Extend(n)
}

// Reserved returns the growth limit.
func (m *Mmap) Reserved() int { return m.Max() }

// Close drops the arena.
func (m *Mmap) Close() error {
	m.closed = true
	m.Heap = NewHeap(m.Max())
	return nil
}
