package format

import "errors"

var (
	// ErrTruncated indicates the buffer lacked the bytes required for a header.
	ErrTruncated = errors.New("format: truncated buffer")
	// ErrZeroSize indicates a header declared a zero-unit block.
	ErrZeroSize = errors.New("format: zero-size block")
	// ErrMisaligned indicates a byte offset that is not a multiple of UnitSize.
	ErrMisaligned = errors.New("format: offset not unit-aligned")
)
