package alloc

import (
	"fmt"
	"math"

	"github.com/joshuapare/umalloc/internal/format"
)

// Alloc returns a handle to a block with at least nbytes of payload.
// A zero-byte request is legal and yields a header-only block.
//
// On failure Alloc returns Nil and an error wrapping ErrNoSpace; the free
// list and cursor are left exactly as they were.
func (a *Allocator) Alloc(nbytes uint32) (Ptr, error) {
	a.stats.AllocCalls++

	need := format.UnitsFor(nbytes)
	if need > format.MaxUnits {
		a.stats.AllocFailures++
		return Nil, fmt.Errorf("alloc %d bytes: request exceeds arena address space: %w", nbytes, ErrNoSpace)
	}
	nunits := uint32(need)

	if !a.started {
		a.bootstrap()
	}

	prev, blk := a.closestFit(nunits)
	for {
		if sz := a.size(blk); sz >= nunits {
			if sz == nunits {
				a.setNext(prev, a.next(blk))
				a.stats.ExactFits++
			} else {
				// Keep the head on the list, hand out the tail.
				sz -= nunits
				a.setSize(blk, sz)
				blk += sz
				a.setSize(blk, nunits)
				a.stats.Splits++
			}
			a.setNext(blk, format.InUseTag)
			a.freelist = prev
			return Ptr(blk + format.HeaderUnits), nil
		}

		if blk == a.freelist {
			cur, err := a.morecore(nunits)
			if err != nil {
				a.stats.AllocFailures++
				return Nil, fmt.Errorf("alloc %d bytes: %w", nbytes, err)
			}
			blk = cur
		}

		prev, blk = blk, a.next(blk)
		a.stats.FallbackSteps++
	}
}

// closestFit scans from the node after the cursor up to the wrap point at
// the sentinel and returns the block whose size is nearest nunits, together
// with its predecessor. The first node (the one right after the cursor) is
// the default and is not scored; ties keep the earlier block.
//
// The candidate may be smaller than nunits. Alloc then walks forward from it
// like first fit.
func (a *Allocator) closestFit(nunits uint32) (prev, found uint32) {
	prev, found = a.freelist, a.next(a.freelist)
	best := uint32(math.MaxUint32)

	pred, n := prev, found
	for a.next(n) != format.BaseAddr {
		pred, n = n, a.next(n)
		if d := absDiff(a.size(n), nunits); d < best {
			best = d
			prev, found = pred, n
		}
	}
	return prev, found
}

func absDiff(a, b uint32) uint32 {
	if a > b {
		return a - b
	}
	return b - a
}
