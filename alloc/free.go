package alloc

import (
	"fmt"

	"github.com/joshuapare/umalloc/internal/format"
)

// Free returns a block to the free list and merges it with any free block it
// touches. Free(Nil) does nothing.
//
// p must have come from Alloc on this allocator and must not have been freed
// since. Anything else corrupts the free list silently; use FreeChecked
// while debugging.
func (a *Allocator) Free(p Ptr) {
	if p == Nil {
		return
	}
	a.stats.FreeCalls++
	a.release(uint32(p) - format.HeaderUnits)
}

// FreeChecked validates p before freeing it. It returns ErrBadPtr when p does
// not address a well-formed block inside the arena and ErrNotInUse when the
// block is not currently allocated (double free, or a pointer into a free
// block).
func (a *Allocator) FreeChecked(p Ptr) error {
	if p == Nil {
		return nil
	}
	if uint32(p) <= format.HeaderUnits || !a.started {
		return fmt.Errorf("free %#x: %w", uint32(p), ErrBadPtr)
	}
	h, err := format.DecodeHeader(a.mem, uint32(p)-format.HeaderUnits)
	if err != nil {
		return fmt.Errorf("free %#x: %w: %w", uint32(p), ErrBadPtr, err)
	}
	if !h.InUse() {
		return fmt.Errorf("free %#x: %w", uint32(p), ErrNotInUse)
	}
	a.Free(p)
	return nil
}

// release links the block at unit address blk into the free list.
func (a *Allocator) release(blk uint32) {
	// Find the free pair that brackets blk. At the wrap point (node >= next)
	// blk belongs there if it is above the highest or below the lowest block.
	n := a.freelist
	for !(blk > n && blk < a.next(n)) {
		nx := a.next(n)
		if n >= nx && (blk > n || blk < nx) {
			break
		}
		n = nx
	}

	succ := a.next(n)
	if blk+a.size(blk) == succ {
		a.setSize(blk, a.size(blk)+a.size(succ))
		a.setNext(blk, a.next(succ))
		a.stats.CoalesceForward++
		if a.debug {
			a.log.Debug("coalesced forward", "addr", blk, "absorbed", succ, "units", a.size(blk))
		}
	} else {
		a.setNext(blk, succ)
	}

	if n+a.size(n) == blk {
		a.setSize(n, a.size(n)+a.size(blk))
		a.setNext(n, a.next(blk))
		a.stats.CoalesceBackward++
		if a.debug {
			a.log.Debug("coalesced backward", "addr", n, "absorbed", blk, "units", a.size(n))
		}
	} else {
		a.setNext(n, blk)
	}

	a.freelist = n
}
