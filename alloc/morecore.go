package alloc

import (
	"fmt"

	"github.com/joshuapare/umalloc/internal/format"
)

// morecore extends the arena by at least nunits units, never less than
// MinGrowUnits, and releases the new region into the free list. It returns
// the cursor after the release. On error nothing is mutated.
func (a *Allocator) morecore(nunits uint32) (uint32, error) {
	nu := max(nunits, a.cfg.MinGrowUnits)
	if a.owned+uint64(nu) > format.MaxUnits || uint64(a.arenaLimit())+uint64(nu) > format.MaxUnits {
		return 0, fmt.Errorf("grow %d units: arena address space full: %w", nu, ErrNoSpace)
	}

	if a.onGrow != nil {
		a.onGrow(nu)
	}

	nbytes := format.UnitsToBytes(nu)
	base, err := a.ext.Extend(nbytes)
	if err != nil {
		a.log.Debug("arena extension refused", "units", nu, "bytes", nbytes, "error", err)
		return 0, fmt.Errorf("grow %d units: %w: %w", nu, ErrNoSpace, err)
	}

	mem := a.ext.Bytes()
	switch {
	case format.AlignUnit(base) != base:
		return 0, fmt.Errorf("grow: region at byte %d: %w: %w", base, ErrGrowFail, format.ErrMisaligned)
	case base < len(a.mem):
		return 0, fmt.Errorf("grow: region at byte %d below arena end %d: %w", base, len(a.mem), ErrGrowFail)
	case len(mem) < base+nbytes:
		return 0, fmt.Errorf("grow: arena holds %d bytes, region needs %d: %w", len(mem), base+nbytes, ErrGrowFail)
	}
	a.mem = mem

	blk := format.AddrOf(base)
	format.EncodeHeader(a.mem, blk, nu, format.InUseTag)
	a.owned += uint64(nu)
	a.stats.GrowCalls++
	a.stats.GrowUnits += uint64(nu)

	a.log.Debug("arena grown",
		"request_units", nunits,
		"units", nu,
		"addr", blk,
		"arena_bytes", len(a.mem),
	)

	a.release(blk)
	return a.freelist, nil
}
