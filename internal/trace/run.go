package trace

import (
	"errors"
	"fmt"
	"hash/fnv"

	"github.com/joshuapare/umalloc/alloc"
)

var (
	// ErrCorrupted indicates a payload changed between alloc and free.
	ErrCorrupted = errors.New("trace: payload corrupted")

	// ErrUnknownName indicates a free of a name that is not live.
	ErrUnknownName = errors.New("trace: name not live")

	// ErrNameLive indicates an alloc of a name that is still live.
	ErrNameLive = errors.New("trace: name already live")
)

// Result summarizes a replay.
type Result struct {
	Ops       int   `json:"ops"`         // Operations executed
	Allocs    int   `json:"allocs"`      // Successful allocations
	Frees     int   `json:"frees"`       // Releases
	Failures  int   `json:"failures"`    // Allocations refused with alloc.ErrNoSpace
	Checks    int   `json:"checks"`      // Invariant checks run
	Live      int   `json:"live"`        // Names still allocated at the end
	PeakInUse int64 `json:"peak_in_use"` // Largest sum of live request sizes
}

type liveBlock struct {
	ptr   alloc.Ptr
	bytes uint32
	seed  byte
}

// Runner replays operations against an allocator.
type Runner struct {
	A *alloc.Allocator

	// OnDump is called for every dump operation. Nil ignores dumps.
	OnDump func()

	// Checked releases through FreeChecked instead of Free.
	Checked bool

	live   map[string]liveBlock
	failed map[string]bool
	inUse  int64
}

// Run executes ops in order and stops at the first error. Refused
// allocations are counted, not fatal. Live names carry over between calls.
func (r *Runner) Run(ops []Op) (Result, error) {
	if r.live == nil {
		r.live = make(map[string]liveBlock)
		r.failed = make(map[string]bool)
	}
	var res Result
	for _, op := range ops {
		if err := r.step(op, &res); err != nil {
			res.Live = len(r.live)
			if op.Line > 0 {
				return res, fmt.Errorf("line %d: %s: %w", op.Line, op, err)
			}
			return res, fmt.Errorf("op %d: %s: %w", res.Ops, op, err)
		}
		res.Ops++
	}
	res.Live = len(r.live)
	return res, nil
}

// Live returns the handle allocated under name.
func (r *Runner) Live(name string) (alloc.Ptr, bool) {
	lb, ok := r.live[name]
	return lb.ptr, ok
}

func (r *Runner) step(op Op, res *Result) error {
	switch op.Kind {
	case KindAlloc:
		if _, ok := r.live[op.Name]; ok {
			return ErrNameLive
		}
		delete(r.failed, op.Name)
		p, err := r.A.Alloc(op.Bytes)
		if errors.Is(err, alloc.ErrNoSpace) {
			r.failed[op.Name] = true
			res.Failures++
			return nil
		}
		if err != nil {
			return err
		}
		lb := liveBlock{ptr: p, bytes: op.Bytes, seed: seedOf(op.Name)}
		paint(r.A.Bytes(p)[:op.Bytes], lb.seed)
		r.live[op.Name] = lb
		r.inUse += int64(op.Bytes)
		res.PeakInUse = max(res.PeakInUse, r.inUse)
		res.Allocs++
	case KindFree:
		lb, ok := r.live[op.Name]
		if !ok && r.failed[op.Name] {
			// Freeing a refused allocation frees nil.
			delete(r.failed, op.Name)
			return nil
		}
		if !ok {
			return ErrUnknownName
		}
		// Growth may have moved the arena, so re-read the payload.
		if at := firstMismatch(r.A.Bytes(lb.ptr)[:lb.bytes], lb.seed); at >= 0 {
			return fmt.Errorf("%w at byte %d of %q", ErrCorrupted, at, op.Name)
		}
		if r.Checked {
			if err := r.A.FreeChecked(lb.ptr); err != nil {
				return err
			}
		} else {
			r.A.Free(lb.ptr)
		}
		delete(r.live, op.Name)
		r.inUse -= int64(lb.bytes)
		res.Frees++
	case KindCheck:
		ptrs := make([]alloc.Ptr, 0, len(r.live))
		for _, lb := range r.live {
			ptrs = append(ptrs, lb.ptr)
		}
		if err := r.A.CheckLive(ptrs); err != nil {
			return err
		}
		res.Checks++
	case KindDump:
		if r.OnDump != nil {
			r.OnDump()
		}
	default:
		return fmt.Errorf("unknown operation %s", op.Kind)
	}
	return nil
}

func seedOf(name string) byte {
	h := fnv.New32a()
	h.Write([]byte(name))
	return byte(h.Sum32())
}

func paint(b []byte, seed byte) {
	for i := range b {
		b[i] = seed + byte(i)
	}
}

func firstMismatch(b []byte, seed byte) int {
	for i := range b {
		if b[i] != seed+byte(i) {
			return i
		}
	}
	return -1
}
