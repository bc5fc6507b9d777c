package format

import (
	"fmt"

	"github.com/joshuapare/umalloc/internal/buf"
)

// Header is a decoded block header.
//
// Header layout (little-endian):
//
//	Offset  Size  Description
//	0x00    4     Size in units, including this header unit.
//	0x04    4     Next free block address, or InUseTag when allocated.
//	0x08    ...   Payload (Size-1 units).
type Header struct {
	Addr  uint32 // Unit address of the header
	Units uint32 // Block length in units
	Next  uint32 // Raw next/tag field
}

// InUse reports whether the header carries the allocation tag.
func (h Header) InUse() bool {
	return h.Next == InUseTag
}

// End returns the unit address one past the block.
func (h Header) End() uint64 {
	return uint64(h.Addr) + uint64(h.Units)
}

// DecodeHeader reads the header at unit address addr from the arena bytes and
// checks that the whole block it describes lies inside b.
func DecodeHeader(b []byte, addr uint32) (Header, error) {
	if addr == BaseAddr {
		return Header{}, fmt.Errorf("header: sentinel address: %w", ErrTruncated)
	}
	off := OffsetOf(addr)
	raw, ok := buf.Slice(b, off, UnitSize)
	if !ok {
		return Header{}, fmt.Errorf("header at unit %d: %w", addr, ErrTruncated)
	}
	h := Header{
		Addr:  addr,
		Units: ReadSize(raw, 0),
		Next:  ReadNext(raw, 0),
	}
	if h.Units == 0 {
		return Header{}, fmt.Errorf("header at unit %d: %w", addr, ErrZeroSize)
	}
	if _, ok := buf.RunEnd(len(b), off, int(h.Units), UnitSize); !ok {
		return Header{}, fmt.Errorf("header at unit %d spans %d units: %w", addr, h.Units, ErrTruncated)
	}
	return h, nil
}

// EncodeHeader writes size and next for the header at unit address addr.
func EncodeHeader(b []byte, addr, units, next uint32) {
	off := OffsetOf(addr)
	PutSize(b, off, units)
	PutNext(b, off, next)
}
