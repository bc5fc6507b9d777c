package format

import "encoding/binary"

// Binary encoding utilities for block headers.
//
// Headers are stored little-endian regardless of host order so an arena dump
// reads the same everywhere. encoding/binary.LittleEndian is inlined by the
// compiler; an unsafe cast buys nothing measurable here.

// PutU32 writes a uint32 value to the buffer at the specified offset in little-endian format.
func PutU32(b []byte, off int, v uint32) {
	binary.LittleEndian.PutUint32(b[off:off+4], v)
}

// ReadU32 reads a uint32 value from the buffer at the specified offset in little-endian format.
func ReadU32(b []byte, off int) uint32 {
	return binary.LittleEndian.Uint32(b[off : off+4])
}

// ReadSize returns the size field of the header at byte offset off.
func ReadSize(b []byte, off int) uint32 {
	return ReadU32(b, off+HeaderSizeOffset)
}

// PutSize sets the size field of the header at byte offset off.
func PutSize(b []byte, off int, units uint32) {
	PutU32(b, off+HeaderSizeOffset, units)
}

// ReadNext returns the next/tag field of the header at byte offset off.
func ReadNext(b []byte, off int) uint32 {
	return ReadU32(b, off+HeaderNextOffset)
}

// PutNext sets the next/tag field of the header at byte offset off.
func PutNext(b []byte, off int, v uint32) {
	PutU32(b, off+HeaderNextOffset, v)
}
