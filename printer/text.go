package printer

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/joshuapare/umalloc/alloc"
)

// numbers groups digits the way a person reads them (4,096 not 4096).
var numbers = message.NewPrinter(language.English)

func bytesOf(n int64) string {
	if n < 0 {
		return "-" + humanize.IBytes(uint64(-n))
	}
	return humanize.IBytes(uint64(n))
}

func (p *Printer) printText(s Snapshot) error {
	var b strings.Builder
	indent := strings.Repeat(" ", p.opts.IndentSize)

	var units uint64
	for _, blk := range s.Blocks {
		units += uint64(blk.Units)
	}
	b.WriteString(numbers.Sprintf("free list: %d blocks, %d units (%s), cursor at unit %d\n",
		len(s.Blocks), units, bytesOf(int64(units)*8), s.Cursor))

	shown, hidden := p.visibleBlocks(s.Blocks)
	if len(shown) > 0 {
		fmt.Fprintf(&b, "%s%-5s %12s %12s %10s\n", indent, "#", "addr", "units", "bytes")
		for i, blk := range shown {
			b.WriteString(numbers.Sprintf("%s%-5d %12d %12d %10s\n",
				indent, i, blk.Addr, blk.Units, bytesOf(int64(blk.Bytes()))))
		}
	}
	if hidden > 0 {
		b.WriteString(numbers.Sprintf("%s... %d more\n", indent, hidden))
	}

	writeStats(&b, indent, s.Stats)
	_, err := p.writer.Write([]byte(b.String()))
	return err
}

func writeStats(b *strings.Builder, indent string, st alloc.Stats) {
	b.WriteString("stats:\n")
	rows := []struct {
		name string
		val  any
	}{
		{"alloc calls", st.AllocCalls},
		{"alloc failures", st.AllocFailures},
		{"free calls", st.FreeCalls},
		{"exact fits", st.ExactFits},
		{"splits", st.Splits},
		{"fallback steps", st.FallbackSteps},
		{"coalesce fwd", st.CoalesceForward},
		{"coalesce back", st.CoalesceBackward},
		{"grow calls", st.GrowCalls},
		{"arena", bytesOf(st.ArenaBytes)},
		{"in use", bytesOf(st.InUseBytes)},
		{"free", bytesOf(st.FreeBytes)},
	}
	for _, r := range rows {
		switch v := r.val.(type) {
		case string:
			fmt.Fprintf(b, "%s%-16s %s\n", indent, r.name, v)
		default:
			b.WriteString(numbers.Sprintf("%s%-16s %d\n", indent, r.name, v))
		}
	}
}
