// Package alloc implements a free-list memory allocator over a growable arena.
//
// # Overview
//
// The allocator hands out blocks of a single contiguous arena supplied by an
// arena.Extender. Free space is tracked by a circular, singly-linked list of
// free blocks threaded through the arena itself: every block starts with a
// one-unit header holding its size in units, and free blocks reuse the second
// header word as the link to the next free block. There is no side table.
//
// # Allocator API
//
//   - Alloc(n): return a handle to at least n bytes, growing the arena if needed
//   - Free(p): return a block to the free list, coalescing with neighbours
//   - FreeChecked(p): Free with header validation, for debugging
//   - Bytes(p): the payload of a live block
//
// # Blocks and Units
//
// Sizes are measured in units of format.UnitSize (8) bytes. A request for n
// bytes takes ceil(n/8)+1 units; the extra unit is the header. Blocks are
// named by unit addresses: the sentinel node is address 0 and arena byte
// offset b is address b/8+1. A Ptr is the address of the payload, one unit
// past the header.
//
//	unit:   |  hdr  | payload ...          |  hdr  | payload ... |
//	        ^ block address                ^ next block
//	                ^ Ptr
//
// # Search Strategy
//
// Alloc first scans the free list from just after the cursor up to the wrap
// point at the sentinel and picks the block whose size is numerically closest
// to the request, over- and under-sized alike ("closest fit"). It then walks
// forward from that candidate and takes the first block that is big enough.
// An exact fit is unlinked whole; a larger block gives up its tail, so the
// remainder keeps its place in the list. When the walk comes back to the
// cursor without a fit, the arena grows by max(need, MinGrowUnits) units and
// the new region is released into the list like any other block.
//
// # Coalescing
//
// The list is kept in address order, so Free only has to find the free pair
// that brackets the released block. A released block merges with its
// successor when it ends where the successor starts, and with its predecessor
// when the predecessor ends where it starts. No two free blocks ever touch.
//
// # Usage Example
//
//	a := alloc.New(arena.NewHeap(0), nil)
//
//	p, err := a.Alloc(100)
//	if err != nil {
//	    return err // arena exhausted
//	}
//	copy(a.Bytes(p), payload)
//
//	a.Free(p)
//
// # Misuse
//
// Free trusts its argument. Freeing a handle twice, freeing a handle that did
// not come from Alloc, or writing past the payload corrupts the free list and
// is not detected. FreeChecked catches the common cases (out-of-range handle,
// double free) at the cost of a header decode.
//
// # Thread Safety
//
// Allocator instances are not thread-safe. Callers must synchronize access
// externally. Independent instances share no state.
//
// # Related Packages
//
//   - github.com/joshuapare/umalloc/arena: arena implementations
//   - github.com/joshuapare/umalloc/verify: invariant checks used by Check
//   - github.com/joshuapare/umalloc/internal/format: header layout
package alloc
