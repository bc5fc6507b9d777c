//go:build unix

package arena

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
)

// Mmap is an arena carved out of one anonymous private mapping. The full
// reservation is mapped PROT_NONE up front and pages are made writable as
// Extend reaches them, so the arena never moves.
type Mmap struct {
	data      []byte // whole reservation
	used      int
	committed int
	pageSize  int
}

// NewMmap reserves reserve bytes of address space.
func NewMmap(reserve int) (*Mmap, error) {
	if reserve <= 0 {
		return nil, ErrBadSize
	}
	page := unix.Getpagesize()
	reserve = (reserve + page - 1) &^ (page - 1)
	data, err := unix.Mmap(-1, 0, reserve, unix.PROT_NONE, unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return nil, fmt.Errorf("mmap arena: reserve %d bytes: %w", reserve, err)
	}
	return &Mmap{data: data, pageSize: page}, nil
}

// Extend makes the next n bytes usable.
func (m *Mmap) Extend(n int) (int, error) {
	if m.data == nil {
		return 0, ErrClosed
	}
	if n <= 0 {
		return 0, ErrBadSize
	}
	base := m.used
	if n > len(m.data)-base {
		return 0, fmt.Errorf("mmap arena: need %d bytes, %d reserved left: %w", n, len(m.data)-base, ErrExhausted)
	}
	end := base + n
	if end > m.committed {
		commit := (end + m.pageSize - 1) &^ (m.pageSize - 1)
		if err := unix.Mprotect(m.data[m.committed:commit], unix.PROT_READ|unix.PROT_WRITE); err != nil {
			return 0, fmt.Errorf("mmap arena: commit: %w: %w", err, ErrExhausted)
		}
		m.committed = commit
	}
	m.used = end
	return base, nil
}

// Bytes returns the committed prefix that has been handed out.
func (m *Mmap) Bytes() []byte {
	if m.data == nil {
		return nil
	}
	return m.data[:m.used:m.used]
}

// Reserved returns the size of the address-space reservation.
func (m *Mmap) Reserved() int { return len(m.data) }

// Close unmaps the arena. Every slice obtained from Bytes becomes invalid.
func (m *Mmap) Close() error {
	if m.data == nil {
		return nil
	}
	err := unix.Munmap(m.data)
	if errors.Is(err, unix.EINVAL) {
		// Treat double-unmap as no-op for callers.
		err = nil
	}
	m.data = nil
	m.used, m.committed = 0, 0
	return err
}
