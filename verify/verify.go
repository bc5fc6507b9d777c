package verify

import (
	"fmt"
	"sort"
)

// Error types for different validation failures.
const (
	TypeOrder    = "FreeListOrder"
	TypeSize     = "BlockSize"
	TypeBounds   = "ArenaBounds"
	TypeOverlap  = "Overlap"
	TypeTouching = "Uncoalesced"
	TypeCycle    = "Circularity"
)

// ValidationError describes one violated invariant.
type ValidationError struct {
	Type    string
	Message string
	Addr    int64 // Unit address where the violation was found (-1 if N/A)
	Details map[string]any
}

func (e *ValidationError) Error() string {
	if e.Addr >= 0 {
		return fmt.Sprintf("%s at unit %d: %s", e.Type, e.Addr, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Block is a free block as seen from a list walk.
type Block struct {
	Addr  uint32
	Units uint32
}

// End returns the unit address one past the block.
func (b Block) End() uint64 { return uint64(b.Addr) + uint64(b.Units) }

// Span is a live allocation, header included.
type Span struct {
	Addr  uint32
	Units uint32
}

// End returns the unit address one past the span.
func (s Span) End() uint64 { return uint64(s.Addr) + uint64(s.Units) }

// AllInvariants validates the free list, the live spans and their mutual
// disjointness. Returns the first error encountered, or nil if all checks pass.
func AllInvariants(free []Block, live []Span, limit uint32) error {
	if err := FreeList(free, limit); err != nil {
		return err
	}
	if err := Disjoint(live); err != nil {
		return err
	}
	all := make([]Span, 0, len(free)+len(live))
	for _, b := range free {
		all = append(all, Span(b))
	}
	all = append(all, live...)
	return Disjoint(all)
}

// FreeList validates free blocks listed in walk order starting after the
// sentinel. Because the sentinel has the lowest address, a correct list
// visits blocks in strictly ascending address order.
func FreeList(blocks []Block, limit uint32) error {
	for i, b := range blocks {
		if b.Units == 0 {
			return &ValidationError{
				Type:    TypeSize,
				Message: "free block has zero units",
				Addr:    int64(b.Addr),
			}
		}
		if b.Addr == 0 || b.End() > uint64(limit) {
			return &ValidationError{
				Type:    TypeBounds,
				Message: fmt.Sprintf("block [%d,%d) outside arena [1,%d)", b.Addr, b.End(), limit),
				Addr:    int64(b.Addr),
			}
		}
		if i == 0 {
			continue
		}
		prev := blocks[i-1]
		switch {
		case b.Addr <= prev.Addr:
			return &ValidationError{
				Type:    TypeOrder,
				Message: fmt.Sprintf("block follows unit %d but is not above it", prev.Addr),
				Addr:    int64(b.Addr),
			}
		case prev.End() > uint64(b.Addr):
			return &ValidationError{
				Type:    TypeOverlap,
				Message: fmt.Sprintf("previous free block [%d,%d) runs into it", prev.Addr, prev.End()),
				Addr:    int64(b.Addr),
			}
		case prev.End() == uint64(b.Addr):
			return &ValidationError{
				Type:    TypeTouching,
				Message: fmt.Sprintf("adjacent to free block at unit %d and not coalesced", prev.Addr),
				Addr:    int64(b.Addr),
				Details: map[string]any{"prev_units": prev.Units, "units": b.Units},
			}
		}
	}
	return nil
}

// Disjoint checks that no two spans share a unit. The input is not modified.
func Disjoint(spans []Span) error {
	sorted := make([]Span, len(spans))
	copy(sorted, spans)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Addr < sorted[j].Addr })

	for i := 1; i < len(sorted); i++ {
		prev, cur := sorted[i-1], sorted[i]
		if prev.End() > uint64(cur.Addr) {
			return &ValidationError{
				Type:    TypeOverlap,
				Message: fmt.Sprintf("span [%d,%d) overlaps span [%d,%d)", prev.Addr, prev.End(), cur.Addr, cur.End()),
				Addr:    int64(cur.Addr),
			}
		}
	}
	return nil
}

// Circular follows next from start and reports an error unless it comes back
// to start within maxSteps links.
func Circular(next func(uint32) uint32, start uint32, maxSteps int) error {
	node := start
	for step := 0; step < maxSteps; step++ {
		node = next(node)
		if node == start {
			return nil
		}
	}
	return &ValidationError{
		Type:    TypeCycle,
		Message: fmt.Sprintf("no return to start after %d links", maxSteps),
		Addr:    int64(start),
	}
}
