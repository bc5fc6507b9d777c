// Package format describes the in-arena layout of allocator blocks. The goal
// is to keep the byte-level encoding in one place so the free-list code only
// deals in unit addresses and sizes.
package format

const (
	// UnitSize is the storage quantum in bytes. Every block is a whole number
	// of units and every header occupies exactly one unit.
	//
	// Header layout (little-endian):
	//   0x00  uint32  size in units, header unit included
	//   0x04  uint32  next free block address (free) or InUseTag (allocated)
	UnitSize = 8

	// UnitShift is log2(UnitSize).
	UnitShift = 3

	// UnitMask is the bitmask used for aligning to unit boundaries (UnitSize - 1).
	UnitMask = UnitSize - 1

	// HeaderSizeOffset is the byte offset of the size field inside a header.
	HeaderSizeOffset = 0x00

	// HeaderNextOffset is the byte offset of the next/tag field inside a header.
	HeaderNextOffset = 0x04

	// HeaderUnits is the number of units taken by a block header.
	HeaderUnits = 1

	// BaseAddr is the unit address of the sentinel node. It never maps to
	// arena bytes; the first arena unit has address BaseAddr+1.
	BaseAddr = 0

	// MinGrowUnits is the default floor for a single arena extension.
	MinGrowUnits = 4096

	// MaxUnits bounds the arena address space. Unit addresses stay below
	// InUseTag so a free-list link can never be mistaken for the tag.
	MaxUnits = 0x8000_0000

	// InUseTag is stamped into the next field of allocated blocks.
	InUseTag = 0xA110C8ED
)
