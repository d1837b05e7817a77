package router

import (
	"fmt"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/shirou/gopsutil/process"

	"github.com/sarchlab/qrouter/netlist"
)

// netStats is the per-net length/via-count accumulation for the
// end-of-run summary. It is derived by walking the already-committed
// segments rather than threaded through commit.Commit, since every
// number it reports is already fully determined by the Route/Segment
// records the netlist holds.
type netStats struct {
	length int // sum of wire-segment cell-to-cell hops across every route
	vias   int
}

func netStatsFor(nl *netlist.Netlist, n *netlist.Net) netStats {
	var s netStats
	for _, rid := range n.Routes {
		route := nl.Route(rid)
		for _, sid := range route.Segments {
			seg := nl.Segment(sid)
			if seg.Kind == netlist.ViaSegment {
				s.vias++
				continue
			}
			s.length += len(seg.Cells()) - 1
		}
	}
	return s
}

// Report renders the scheduler's end-of-run summary table (net, status,
// wire length, via count) followed by process CPU time and current RSS read
// through gopsutil, exactly as core/util.go's PrintState renders its
// per-cycle tables with go-pretty.
func (r *Router) Report() string {
	var b strings.Builder

	t := table.NewWriter()
	t.SetTitle(fmt.Sprintf("Routing summary (session %s)", r.Session.String()))
	t.AppendHeader(table.Row{"Net", "Status", "Critical", "Length", "Vias"})

	if r.nl != nil {
		failing := map[string]bool{}
		for _, name := range r.FailingNets() {
			failing[name] = true
		}
		for _, n := range r.nl.Nets() {
			status := "routed"
			if failing[n.Name] {
				status = "failing"
			} else if len(n.Routes) == 0 && len(n.Nodes) >= 2 {
				status = "unrouted"
			}
			stats := netStatsFor(r.nl, n)
			t.AppendRow(table.Row{n.Name, status, n.Critical, stats.length, stats.vias})
		}
	}
	b.WriteString(t.Render())
	b.WriteString("\n")

	if usage, err := processUsage(); err == nil {
		b.WriteString(fmt.Sprintf("cpu_time=%.2fs rss=%dKB\n", usage.cpuSeconds, usage.peakRSSKB))
	}

	return b.String()
}

type processUsageStats struct {
	cpuSeconds float64
	peakRSSKB  uint64
}

// processUsage reads this process's own CPU time and resident set size
// through gopsutil.
func processUsage() (processUsageStats, error) {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return processUsageStats{}, err
	}
	times, err := p.Times()
	if err != nil {
		return processUsageStats{}, err
	}
	mem, err := p.MemoryInfo()
	if err != nil {
		return processUsageStats{}, err
	}
	return processUsageStats{
		cpuSeconds: times.User + times.System,
		peakRSSKB:  mem.RSS / 1024,
	}, nil
}
