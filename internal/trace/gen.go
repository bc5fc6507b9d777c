package trace

import (
	"math"
	"math/rand/v2"
	"strconv"
)

// GenConfig shapes a random workload.
type GenConfig struct {
	Ops      int    // Number of alloc/free operations
	Seed     uint64 // PRNG seed; equal seeds give equal traces
	MaxBytes uint32 // Largest request size
	Check    bool   // Insert a check after every operation
	Drain    bool   // Free everything still live at the end
}

// Generate builds a reproducible random trace. Roughly 60% of the
// operations allocate while anything is live.
func Generate(cfg GenConfig) []Op {
	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))
	maxBytes := max(cfg.MaxBytes, 1)

	var ops []Op
	var live []string
	next := 0
	emit := func(op Op) {
		ops = append(ops, op)
		if cfg.Check {
			ops = append(ops, Op{Kind: KindCheck})
		}
	}
	free := func(i int) {
		name := live[i]
		live[i] = live[len(live)-1]
		live = live[:len(live)-1]
		emit(Op{Kind: KindFree, Name: name})
	}

	for range cfg.Ops {
		if len(live) == 0 || rng.IntN(10) < 6 {
			name := "b" + strconv.Itoa(next)
			next++
			live = append(live, name)
			emit(Op{Kind: KindAlloc, Name: name, Bytes: size(rng, maxBytes)})
			continue
		}
		free(rng.IntN(len(live)))
	}
	if cfg.Drain {
		for len(live) > 0 {
			free(rng.IntN(len(live)))
		}
	}
	return ops
}

func size(rng *rand.Rand, limit uint32) uint32 {
	if limit == math.MaxUint32 {
		return rng.Uint32()
	}
	return rng.Uint32N(limit + 1)
}
