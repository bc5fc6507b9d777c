package verify

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func requireType(t *testing.T, err error, typ string) {
	t.Helper()
	var verr *ValidationError
	require.True(t, errors.As(err, &verr), "expected *ValidationError, got %v", err)
	require.Equal(t, typ, verr.Type, "unexpected error: %v", err)
}

// TestFreeList_Valid tests validation of a well-formed free list.
func TestFreeList_Valid(t *testing.T) {
	blocks := []Block{{Addr: 1, Units: 4}, {Addr: 10, Units: 2}, {Addr: 20, Units: 100}}
	require.NoError(t, FreeList(blocks, 121))
	require.NoError(t, FreeList(nil, 1), "empty list is valid")
}

func TestFreeList_Touching(t *testing.T) {
	blocks := []Block{{Addr: 1, Units: 4}, {Addr: 5, Units: 2}}
	err := FreeList(blocks, 100)
	requireType(t, err, TypeTouching)
	require.Contains(t, err.Error(), "not coalesced")
}

func TestFreeList_Overlap(t *testing.T) {
	requireType(t, FreeList([]Block{{Addr: 1, Units: 8}, {Addr: 5, Units: 2}}, 100), TypeOverlap)
}

func TestFreeList_Order(t *testing.T) {
	requireType(t, FreeList([]Block{{Addr: 50, Units: 1}, {Addr: 10, Units: 1}}, 100), TypeOrder)
}

func TestFreeList_ZeroSize(t *testing.T) {
	requireType(t, FreeList([]Block{{Addr: 3, Units: 0}}, 100), TypeSize)
}

func TestFreeList_Bounds(t *testing.T) {
	requireType(t, FreeList([]Block{{Addr: 90, Units: 20}}, 100), TypeBounds)
	requireType(t, FreeList([]Block{{Addr: 0, Units: 1}}, 100), TypeBounds)
}

func TestDisjoint(t *testing.T) {
	require.NoError(t, Disjoint([]Span{{Addr: 30, Units: 5}, {Addr: 1, Units: 29}}))

	spans := []Span{{Addr: 30, Units: 5}, {Addr: 1, Units: 30}}
	requireType(t, Disjoint(spans), TypeOverlap)
	require.Equal(t, uint32(30), spans[0].Addr, "input must not be reordered")
}

func TestAllInvariants_LiveOverlapsFree(t *testing.T) {
	free := []Block{{Addr: 1, Units: 10}}
	live := []Span{{Addr: 8, Units: 4}}
	requireType(t, AllInvariants(free, live, 100), TypeOverlap)

	live = []Span{{Addr: 11, Units: 4}}
	require.NoError(t, AllInvariants(free, live, 100))
}

func TestCircular(t *testing.T) {
	ring := map[uint32]uint32{0: 4, 4: 9, 9: 0}
	require.NoError(t, Circular(func(a uint32) uint32 { return ring[a] }, 0, 10))
	require.NoError(t, Circular(func(a uint32) uint32 { return ring[a] }, 9, 10))

	broken := map[uint32]uint32{0: 4, 4: 9, 9: 4}
	requireType(t, Circular(func(a uint32) uint32 { return broken[a] }, 0, 10), TypeCycle)
}

func TestValidationError_Format(t *testing.T) {
	err := &ValidationError{Type: TypeOverlap, Message: "boom", Addr: 7}
	require.Equal(t, "Overlap at unit 7: boom", err.Error())

	err = &ValidationError{Type: TypeCycle, Message: "boom", Addr: -1}
	require.Equal(t, "Circularity: boom", err.Error())
}
