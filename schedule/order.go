package schedule

import (
	"sort"

	"github.com/sarchlab/qrouter/netlist"
)

// orderNets implements net-ordering priority score: critical
// nets first, then descending bounding-box half-perimeter (hardest nets
// first), with fan-out and net id as deterministic tie-breaks.
func orderNets(nets []*netlist.Net) []*netlist.Net {
	ordered := append([]*netlist.Net(nil), nets...)
	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if a.Critical != b.Critical {
			return a.Critical
		}
		if ha, hb := a.BBox.HalfPerimeter(), b.BBox.HalfPerimeter(); ha != hb {
			return ha > hb
		}
		if a.FanOut() != b.FanOut() {
			return a.FanOut() > b.FanOut()
		}
		return a.ID < b.ID
	})
	return ordered
}

// routableNets drops nets the configuration marks as ignored.
func routableNets(nets []*netlist.Net) []*netlist.Net {
	out := make([]*netlist.Net, 0, len(nets))
	for _, n := range nets {
		if !n.Ignored {
			out = append(out, n)
		}
	}
	return out
}
