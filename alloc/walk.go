package alloc

import (
	"fmt"

	"github.com/joshuapare/umalloc/internal/format"
	"github.com/joshuapare/umalloc/verify"
)

// maxWalk bounds a list walk so a corrupted (non-circular) list cannot hang
// diagnostics. A healthy list has at most one node per arena unit plus the
// sentinel.
func (a *Allocator) maxWalk() int {
	return int(a.arenaLimit()) + 1
}

// Walk calls fn for every free block in list order, starting after the
// sentinel, until fn returns false. The sentinel itself is not reported.
// Walk does not move the cursor.
func (a *Allocator) Walk(fn func(Block) bool) {
	if !a.started {
		return
	}
	limit := a.maxWalk()
	for n, steps := a.base.next, 0; n != format.BaseAddr && steps < limit; n, steps = a.next(n), steps+1 {
		if !fn(Block{Addr: n, Units: a.size(n)}) {
			return
		}
	}
}

// FreeBlocks returns a snapshot of the free list in list order.
func (a *Allocator) FreeBlocks() []Block {
	var blocks []Block
	a.Walk(func(b Block) bool {
		blocks = append(blocks, b)
		return true
	})
	return blocks
}

// Check validates the free-list invariants: the list is circular through the
// sentinel, address ordered, inside the arena, and fully coalesced.
func (a *Allocator) Check() error {
	return a.CheckLive(nil)
}

// CheckLive validates the free-list invariants and additionally that the
// given live allocations overlap neither each other nor any free block.
func (a *Allocator) CheckLive(live []Ptr) error {
	if !a.started {
		if len(live) > 0 {
			return fmt.Errorf("check: %d live pointers before first allocation: %w", len(live), ErrBadPtr)
		}
		return nil
	}

	limit := a.arenaLimit()
	if err := verify.Circular(a.checkedNext(limit), format.BaseAddr, a.maxWalk()); err != nil {
		return fmt.Errorf("check: %w", err)
	}

	blocks := a.FreeBlocks()
	free := make([]verify.Block, len(blocks))
	for i, b := range blocks {
		free[i] = verify.Block{Addr: b.Addr, Units: b.Units}
	}

	spans := make([]verify.Span, 0, len(live))
	for _, p := range live {
		h, err := format.DecodeHeader(a.mem, uint32(p)-format.HeaderUnits)
		if err != nil || p == Nil {
			return fmt.Errorf("check: live pointer %#x: %w", uint32(p), ErrBadPtr)
		}
		if !h.InUse() {
			return fmt.Errorf("check: live pointer %#x: %w", uint32(p), ErrNotInUse)
		}
		spans = append(spans, verify.Span{Addr: h.Addr, Units: h.Units})
	}

	if err := verify.AllInvariants(free, spans, limit); err != nil {
		return fmt.Errorf("check: %w", err)
	}
	return nil
}

// checkedNext follows links without trusting them to stay inside the arena.
// An out-of-range link is reported as a self loop, which never reaches the
// sentinel and so fails the circularity check.
func (a *Allocator) checkedNext(limit uint32) func(uint32) uint32 {
	return func(n uint32) uint32 {
		nx := a.next(n)
		if nx != format.BaseAddr && nx >= limit {
			return n
		}
		return nx
	}
}

// Stats returns the allocator counters and current free-list gauges.
func (a *Allocator) Stats() Stats {
	s := a.stats
	s.ArenaBytes = int64(a.owned) * format.UnitSize
	a.Walk(func(b Block) bool {
		s.FreeBlocks++
		s.FreeBytes += int64(b.Bytes())
		return true
	})
	s.InUseBytes = s.ArenaBytes - s.FreeBytes
	return s
}
