// Package trace reads and replays allocator workloads.
//
// A trace is line oriented. Blank lines and lines starting with '#' are
// ignored; every other line is one operation:
//
//	alloc <name> <bytes>
//	free <name>
//	check
//	dump
//
// Names are arbitrary tokens without whitespace that stand for the handle
// returned by the matching alloc.
package trace

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Kind identifies a trace operation.
type Kind uint8

const (
	KindAlloc Kind = iota + 1
	KindFree
	KindCheck
	KindDump
)

func (k Kind) String() string {
	switch k {
	case KindAlloc:
		return "alloc"
	case KindFree:
		return "free"
	case KindCheck:
		return "check"
	case KindDump:
		return "dump"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Op is one trace line.
type Op struct {
	Kind  Kind
	Name  string // alloc, free
	Bytes uint32 // alloc
	Line  int    // 1-based source line, 0 for generated ops
}

func (o Op) String() string {
	switch o.Kind {
	case KindAlloc:
		return fmt.Sprintf("alloc %s %d", o.Name, o.Bytes)
	case KindFree:
		return "free " + o.Name
	default:
		return o.Kind.String()
	}
}

// Parse reads a trace. Errors carry the offending line number.
func Parse(r io.Reader) ([]Op, error) {
	scanner := bufio.NewScanner(r)
	var ops []Op
	line := 0
	for scanner.Scan() {
		line++
		trim := strings.TrimSpace(scanner.Text())
		if trim == "" || strings.HasPrefix(trim, "#") {
			continue
		}
		op, err := parseLine(strings.Fields(trim))
		if err != nil {
			return nil, fmt.Errorf("trace: line %d: %w", line, err)
		}
		op.Line = line
		ops = append(ops, op)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("trace: line %d: %w", line+1, err)
	}
	return ops, nil
}

func parseLine(f []string) (Op, error) {
	want := func(n int) error {
		if len(f) != n {
			return fmt.Errorf("%s takes %d argument(s), got %d", f[0], n-1, len(f)-1)
		}
		return nil
	}
	switch f[0] {
	case "alloc":
		if err := want(3); err != nil {
			return Op{}, err
		}
		n, err := strconv.ParseUint(f[2], 10, 32)
		if err != nil {
			return Op{}, fmt.Errorf("bad size %q: %w", f[2], err)
		}
		return Op{Kind: KindAlloc, Name: f[1], Bytes: uint32(n)}, nil
	case "free":
		if err := want(2); err != nil {
			return Op{}, err
		}
		return Op{Kind: KindFree, Name: f[1]}, nil
	case "check":
		if err := want(1); err != nil {
			return Op{}, err
		}
		return Op{Kind: KindCheck}, nil
	case "dump":
		if err := want(1); err != nil {
			return Op{}, err
		}
		return Op{Kind: KindDump}, nil
	default:
		return Op{}, fmt.Errorf("unknown operation %q", f[0])
	}
}
