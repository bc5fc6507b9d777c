package printer

import (
	"encoding/json"

	"github.com/joshuapare/umalloc/alloc"
	"github.com/joshuapare/umalloc/internal/format"
)

// jsonBlock represents a free block in JSON format.
type jsonBlock struct {
	Addr  uint32 `json:"addr"`
	Units uint32 `json:"units"`
	Bytes int    `json:"bytes"`
}

// jsonStats mirrors alloc.Stats with stable field names.
type jsonStats struct {
	AllocCalls       int    `json:"alloc_calls"`
	AllocFailures    int    `json:"alloc_failures"`
	FreeCalls        int    `json:"free_calls"`
	GrowCalls        int    `json:"grow_calls"`
	GrowUnits        uint64 `json:"grow_units"`
	ExactFits        int    `json:"exact_fits"`
	Splits           int    `json:"splits"`
	FallbackSteps    int    `json:"fallback_steps"`
	CoalesceForward  int    `json:"coalesce_forward"`
	CoalesceBackward int    `json:"coalesce_backward"`
	ArenaBytes       int64  `json:"arena_bytes"`
	FreeBytes        int64  `json:"free_bytes"`
	FreeBlocks       int    `json:"free_blocks"`
	InUseBytes       int64  `json:"in_use_bytes"`
}

type jsonSnapshot struct {
	UnitSize   int         `json:"unit_size"`
	Cursor     uint32      `json:"cursor"`
	Blocks     []jsonBlock `json:"blocks,omitempty"`
	BlocksMore int         `json:"blocks_omitted,omitempty"`
	Stats      jsonStats   `json:"stats"`
}

func (p *Printer) printJSON(s Snapshot) error {
	shown, hidden := p.visibleBlocks(s.Blocks)
	out := jsonSnapshot{
		UnitSize:   format.UnitSize,
		Cursor:     s.Cursor,
		BlocksMore: hidden,
		Stats:      toJSONStats(s.Stats),
	}
	for _, b := range shown {
		out.Blocks = append(out.Blocks, jsonBlock{Addr: b.Addr, Units: b.Units, Bytes: b.Bytes()})
	}

	enc := json.NewEncoder(p.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func toJSONStats(st alloc.Stats) jsonStats {
	return jsonStats{
		AllocCalls:       st.AllocCalls,
		AllocFailures:    st.AllocFailures,
		FreeCalls:        st.FreeCalls,
		GrowCalls:        st.GrowCalls,
		GrowUnits:        st.GrowUnits,
		ExactFits:        st.ExactFits,
		Splits:           st.Splits,
		FallbackSteps:    st.FallbackSteps,
		CoalesceForward:  st.CoalesceForward,
		CoalesceBackward: st.CoalesceBackward,
		ArenaBytes:       st.ArenaBytes,
		FreeBytes:        st.FreeBytes,
		FreeBlocks:       st.FreeBlocks,
		InUseBytes:       st.InUseBytes,
	}
}
