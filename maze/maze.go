// Package maze implements the cost-weighted maze search engine: the
// step_cost function, the six-neighbour expansion rule, path extraction,
// and stacked-via relief.
package maze

import (
	"github.com/sarchlab/qrouter/frontier"
	"github.com/sarchlab/qrouter/grid"
	"github.com/sarchlab/qrouter/netlist"
)

// Net bundles the per-search facts the expansion rule needs about the net
// currently being routed: its identifier (for ownership comparisons), its
// kind (signal nets route point-to-point; power/ground nets terminate
// anywhere already on their rail), and its current no-ripup set.
type Net struct {
	ID      grid.NetID
	Kind    netlist.NetKind
	NoRipup map[grid.NetID]bool
}

// Result is the outcome of a successful search.
type Result struct {
	Path []grid.Coord
	Cost int
}

// Search runs one maze expansion from sources to targets.
// conflictMode selects stage-1 no-conflict routing (false) or
// stage-2 rip-up-and-reroute routing (true). mask, bbox, and failures
// implement the scheduler's spatial restriction. The frontier is reset at
// the start of every call, so one Frontier can be reused across nets and
// across a net's stage-1/stage-2 attempts.
func Search(
	g *grid.Grid,
	f *frontier.Frontier,
	taps *netlist.TapIndex,
	params CostParams,
	net Net,
	sources, targets []grid.Coord,
	conflictMode bool,
	mask Mask,
	bbox netlist.BBox,
	failures int,
) (Result, bool) {
	f.Reset()
	for _, s := range sources {
		f.Seed(s)
	}
	for _, t := range targets {
		f.MarkTarget(t)
	}

	for {
		c, ok := f.Pop()
		if !ok {
			return Result{}, false
		}
		// A rail net (power/ground) has no fixed target set: it terminates
		// the moment it reaches any cell already on its own rail.
		onRail := net.Kind != netlist.Signal && railMatches(g.Lookup(c).Owner, net.Kind)
		reachedTarget := f.State(c).Role.Has(frontier.Target) && g.EndpointAllowed(c, net.ID)
		if reachedTarget || onRail {
			return Result{Path: f.Path(c), Cost: f.State(c).Cost}, true
		}

		fromCost := f.State(c).Cost
		for _, d := range grid.Compass {
			n := c.Neighbor(d)
			if !g.InBounds(n) {
				continue
			}
			if !mask.Allows(bbox, failures, n.X, n.Y) {
				continue
			}
			if !routable(g, n, net.ID, net.Kind, conflictMode, net.NoRipup) {
				continue
			}

			newCost := fromCost + stepCost(g, taps, params, c, n, net.ID, conflictMode)
			if f.Relax(n, d, newCost) && conflictMode && g.Lookup(n).Owner.ForeignTo(net.ID) {
				f.MarkConflict(n)
			}
		}
	}
}
