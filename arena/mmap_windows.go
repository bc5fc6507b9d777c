//go:build windows

package arena

import (
	"fmt"
	"os"
	"unsafe"

	"golang.org/x/sys/windows"
)

// Mmap is an arena carved out of one VirtualAlloc reservation. Pages are
// committed as Extend reaches them, so the arena never moves.
type Mmap struct {
	addr      uintptr
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
	page := os.Getpagesize()
	reserve = (reserve + page - 1) &^ (page - 1)
	addr, err := windows.VirtualAlloc(0, uintptr(reserve), windows.MEM_RESERVE, windows.PAGE_NOACCESS)
	if err != nil {
		return nil, fmt.Errorf("mmap arena: reserve %d bytes: %w", reserve, err)
	}
	data := unsafe.Slice((*byte)(unsafe.Pointer(addr)), reserve) //nolint:govet // address owned by VirtualAlloc
	return &Mmap{addr: addr, data: data, pageSize: page}, nil
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
		_, err := windows.VirtualAlloc(
			m.addr+uintptr(m.committed),
			uintptr(commit-m.committed),
			windows.MEM_COMMIT,
			windows.PAGE_READWRITE,
		)
		if err != nil {
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

// Close releases the reservation. Every slice obtained from Bytes becomes invalid.
func (m *Mmap) Close() error {
	if m.data == nil {
		return nil
	}
	err := windows.VirtualFree(m.addr, 0, windows.MEM_RELEASE)
	m.data = nil
	m.addr = 0
	m.used, m.committed = 0, 0
	return err
}
