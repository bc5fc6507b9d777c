// Package verify provides invariant checks for free-list allocator state.
//
// # Overview
//
// The checks operate on plain snapshots, not on a live allocator, so they can
// be reused by tests, by the allocator's own Check method and by tooling that
// replays traces. Validation categories:
//   - Free list: addresses ascend from the sentinel, sizes are positive,
//     blocks stay inside the arena, no overlap, no two blocks touch.
//   - Live spans: allocations handed out to callers never overlap each other
//     or any free block.
//   - Circularity: following next links from a node returns to it.
//
// # Quick Start
//
//	if err := verify.AllInvariants(free, live, limit); err != nil {
//	    var verr *verify.ValidationError
//	    if errors.As(err, &verr) {
//	        fmt.Printf("%s at unit %d\n", verr.Type, verr.Addr)
//	    }
//	}
//
// Addresses and sizes are in allocator units. limit is one past the highest
// unit address the arena currently covers.
package verify
