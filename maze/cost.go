package maze

import (
	"github.com/sarchlab/qrouter/grid"
	"github.com/sarchlab/qrouter/netlist"
)

// CostParams holds the six configured cost weights used by the
// step-cost table.
type CostParams struct {
	Seg      int
	Via      int
	Jog      int
	Xover    int
	Block    int
	Conflict int
}

// railMatches reports whether owner is the reserved rail owner matching kind,
// i.e. whether a net of this kind is already "at home" on this cell rather
// than crossing a foreign one.
func railMatches(owner grid.Owner, kind netlist.NetKind) bool {
	switch kind {
	case netlist.PowerRail:
		return owner.Kind == grid.KindPower
	case netlist.GroundRail:
		return owner.Kind == grid.KindGround
	default:
		return false
	}
}

// routable implements expansion-rule routability test: a
// neighbour is routable if it is unused, if it is this net's own rail
// (power/ground nets terminate anywhere already on their rail), or — in
// stage 2 conflict mode — if it belongs to a different net that is not on
// the no-ripup list. Obstructions and rails are never crossable by a
// foreign net in either stage: ripping up a rail is never attempted by
// this router.
func routable(g *grid.Grid, to grid.Coord, net grid.NetID, kind netlist.NetKind, conflictMode bool, noRipup map[grid.NetID]bool) bool {
	cell := g.Lookup(to)
	owner := cell.Owner
	if owner.Kind == grid.KindEmpty {
		// RoutedByNet here means a prior commit's adjacent-track or
		// offset-shift blockage claimed this cell even though it carries
		// no net ownership; subsequent searches must treat it as occupied
		// regardless of which net they belong to.
		return !cell.RoutedByNet
	}
	if railMatches(owner, kind) {
		return true
	}
	if owner.IsNet(net) {
		// Already this net's own wire from an earlier leg of a multi-pin
		// route: free to pass through or branch from, in either stage.
		return true
	}
	if !conflictMode {
		return false
	}
	if owner.Kind == grid.KindObstructed || owner.IsRail() {
		return false
	}
	return owner.ForeignTo(net) && !noRipup[owner.Net]
}

// stepCost implements step_cost(from, to).
func stepCost(g *grid.Grid, taps *netlist.TapIndex, params CostParams, from, to grid.Coord, net grid.NetID, conflictMode bool) int {
	cost := 0

	if from.L != to.L {
		cost += params.Via
	} else {
		layer := g.Layers[from.L]
		d, _ := from.DirectionTo(to)
		a, b := layer.Dir.StepDirections()
		if d == a || d == b {
			cost += params.Seg
		} else {
			cost += params.Jog
		}
	}

	if e, ok := taps.Lookup(to); ok && e.Net != net {
		primary, extended := taps.AccessCounts(e)
		total := primary + extended
		switch {
		case total == 1 && extended == 1:
			cost += 10 * params.Block
		case total == 1:
			cost += params.Block
		default:
			cost += params.Xover
		}
	}

	if conflictMode && g.Lookup(to).Owner.ForeignTo(net) {
		cost += params.Conflict
	}

	return cost
}

// PathCost sums step_cost across every hop of path, the value checked
// against the cost the maze engine recorded while searching.
func PathCost(g *grid.Grid, taps *netlist.TapIndex, params CostParams, net grid.NetID, conflictMode bool, path []grid.Coord) int {
	total := 0
	for i := 0; i+1 < len(path); i++ {
		total += stepCost(g, taps, params, path[i], path[i+1], net, conflictMode)
	}
	return total
}
