package alloc

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/umalloc/arena"
	"github.com/joshuapare/umalloc/internal/format"
)

// countingArena wraps an arena and records every extension request.
type countingArena struct {
	arena.Extender
	requests []int
	failures int
}

func (c *countingArena) Extend(n int) (int, error) {
	c.requests = append(c.requests, n)
	base, err := c.Extender.Extend(n)
	if err != nil {
		c.failures++
	}
	return base, err
}

// unitBytes returns the largest request that still fits in n units.
func unitBytes(n uint32) uint32 {
	return (n - format.HeaderUnits) * format.UnitSize
}

func newTestAllocator(t *testing.T, minGrow uint32) (*Allocator, *countingArena) {
	t.Helper()
	ca := &countingArena{Extender: arena.NewHeap(0)}
	return New(ca, &Config{MinGrowUnits: minGrow}), ca
}

func mustAlloc(t *testing.T, a *Allocator, nbytes uint32) Ptr {
	t.Helper()
	p, err := a.Alloc(nbytes)
	require.NoError(t, err, "Alloc(%d)", nbytes)
	require.NotEqual(t, Nil, p)
	require.GreaterOrEqual(t, a.Size(p), int(nbytes))
	return p
}

func fill(a *Allocator, p Ptr, n int, v byte) {
	b := a.Bytes(p)
	for i := range n {
		b[i] = v
	}
}

func requireFilled(t *testing.T, a *Allocator, p Ptr, n int, v byte) {
	t.Helper()
	b := a.Bytes(p)
	require.GreaterOrEqual(t, len(b), n)
	for i := range n {
		require.Equal(t, v, b[i], "payload of %#x corrupted at byte %d", uint32(p), i)
	}
}

func hdr(p Ptr) uint32 { return uint32(p) - format.HeaderUnits }

// fragmentedAllocator builds, in a 4096-unit arena, the free list
//
//	base -> 1(4030) -> 4033(20) -> 4055(30) -> 4087(10) -> base
//
// with two-unit guard blocks at 4031, 4053 and 4085 and the cursor at 1.
func fragmentedAllocator(t *testing.T) (*Allocator, *countingArena) {
	t.Helper()
	a, ca := newTestAllocator(t, 4096)

	x1 := mustAlloc(t, a, unitBytes(10))
	mustAlloc(t, a, unitBytes(2))
	x2 := mustAlloc(t, a, unitBytes(30))
	mustAlloc(t, a, unitBytes(2))
	x3 := mustAlloc(t, a, unitBytes(20))
	mustAlloc(t, a, unitBytes(2))

	require.Equal(t, uint32(4087), hdr(x1))
	require.Equal(t, uint32(4055), hdr(x2))
	require.Equal(t, uint32(4033), hdr(x3))

	a.Free(x1)
	a.Free(x2)
	a.Free(x3)

	require.Equal(t, []Block{
		{Addr: 1, Units: 4030},
		{Addr: 4033, Units: 20},
		{Addr: 4055, Units: 30},
		{Addr: 4087, Units: 10},
	}, a.FreeBlocks())
	require.Equal(t, uint32(1), a.Cursor())
	require.NoError(t, a.Check())
	return a, ca
}
