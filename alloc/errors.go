package alloc

import "errors"

var (
	// ErrNoSpace indicates that no free block was large enough and the arena
	// could not be extended. The allocator state is unchanged.
	ErrNoSpace = errors.New("alloc: out of memory")

	// ErrGrowFail indicates the arena returned a region the allocator cannot use.
	ErrGrowFail = errors.New("alloc: grow failed")

	// ErrBadPtr indicates a handle that does not point at a block header inside the arena.
	ErrBadPtr = errors.New("alloc: bad pointer")

	// ErrNotInUse indicates an attempt to free a block that is not allocated.
	ErrNotInUse = errors.New("alloc: block not in use")
)
