package alloc

import (
	"math/rand"
	"testing"

	"github.com/joshuapare/umalloc/arena"
)

func BenchmarkAllocFree_SameSize(b *testing.B) {
	a := New(arena.NewHeap(0), nil)
	b.ReportAllocs()
	for b.Loop() {
		p, err := a.Alloc(64)
		if err != nil {
			b.Fatal(err)
		}
		a.Free(p)
	}
}

func BenchmarkAllocFree_Fragmented(b *testing.B) {
	a := New(arena.NewHeap(0), nil)
	rng := rand.New(rand.NewSource(1))
	live := make([]Ptr, 0, 512)
	for range 512 {
		p, err := a.Alloc(uint32(rng.Intn(512)))
		if err != nil {
			b.Fatal(err)
		}
		live = append(live, p)
	}
	for i := 0; i < len(live); i += 2 {
		a.Free(live[i])
		live[i] = Nil
	}

	for b.Loop() {
		i := rng.Intn(len(live))
		if live[i] != Nil {
			a.Free(live[i])
			live[i] = Nil
			continue
		}
		p, err := a.Alloc(uint32(rng.Intn(512)))
		if err != nil {
			b.Fatal(err)
		}
		live[i] = p
	}
}
