// Package buf contains overflow-safe arithmetic and bounds-checked slicing
// for arena byte views.
package buf

import "math"

// AddOverflowSafe adds a and b, returning ok = false when the result would overflow int.
func AddOverflowSafe(a, b int) (int, bool) {
	switch {
	case b > 0 && a > math.MaxInt-b:
		return 0, false
	case b < 0 && a < math.MinInt-b:
		return 0, false
	default:
		return a + b, true
	}
}

// MulOverflowSafe multiplies two non-negative ints, returning ok = false on
// overflow or when either operand is negative.
func MulOverflowSafe(a, b int) (int, bool) {
	if a < 0 || b < 0 {
		return 0, false
	}
	if a == 0 || b == 0 {
		return 0, true
	}
	if a > math.MaxInt/b {
		return 0, false
	}
	return a * b, true
}

// RunEnd returns the end offset of count consecutive width-byte units that
// start at off, or ok = false if the run leaves a buffer of bufLen bytes.
//
//	end, ok := buf.RunEnd(len(arena), off, int(units), format.UnitSize)
func RunEnd(bufLen, off, count, width int) (int, bool) {
	if off < 0 || off > bufLen {
		return 0, false
	}
	n, ok := MulOverflowSafe(count, width)
	if !ok {
		return 0, false
	}
	end, ok := AddOverflowSafe(off, n)
	if !ok || end > bufLen {
		return 0, false
	}
	return end, true
}

// Slice returns the sub-slice [off:off+n], capped at its own end, if it
// fits within len(b).
func Slice(b []byte, off, n int) ([]byte, bool) {
	if n < 0 {
		return nil, false
	}
	end, ok := RunEnd(len(b), off, n, 1)
	if !ok {
		return nil, false
	}
	return b[off:end:end], true
}
