package format

// Unit arithmetic for converting between byte counts, byte offsets and unit
// addresses. Arena byte offset 0 is unit address 1; address 0 is the sentinel.

// AlignUnit returns n aligned up to the next unit boundary.
//
// Example:
//
//	AlignUnit(0) = 0
//	AlignUnit(1) = 8
//	AlignUnit(8) = 8
//	AlignUnit(9) = 16
func AlignUnit(n int) int {
	return (n + UnitMask) & ^UnitMask
}

// UnitsFor returns the number of units needed for an nbytes payload plus its
// header. Computed in 64 bits so the largest uint32 request cannot wrap.
//
// Example:
//
//	UnitsFor(0)   = 1
//	UnitsFor(1)   = 2
//	UnitsFor(8)   = 2
//	UnitsFor(100) = 14
func UnitsFor(nbytes uint32) uint64 {
	return (uint64(nbytes)+UnitMask)>>UnitShift + HeaderUnits
}

// AddrOf converts an arena byte offset to a unit address.
func AddrOf(off int) uint32 {
	return uint32(off>>UnitShift) + 1
}

// OffsetOf converts a unit address back to an arena byte offset.
// The caller must not pass BaseAddr.
func OffsetOf(addr uint32) int {
	return int(addr-1) << UnitShift
}

// UnitsToBytes returns the byte length of n units.
func UnitsToBytes(n uint32) int {
	return int(n) << UnitShift
}
