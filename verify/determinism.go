package verify

import (
	"fmt"

	"github.com/sarchlab/qrouter/grid"
	"github.com/sarchlab/qrouter/maze"
	"github.com/sarchlab/qrouter/netlist"
)

// CheckCost verifies cost consistency: the cost of a committed path
// equals the cost computed by walking its segments through step_cost.
// Callers supply the flat cell path exactly as returned by maze.Search,
// the cost maze.Search recorded for it, and the same parameters the
// search ran with; CheckCost recomputes the cost independently via
// maze.PathCost and reports a mismatch.
func CheckCost(g *grid.Grid, taps *netlist.TapIndex, params maze.CostParams, net grid.NetID,
	conflictMode bool, path []grid.Coord, recordedCost int) []Issue {
	recomputed := maze.PathCost(g, taps, params, net, conflictMode, path)
	if recomputed != recordedCost {
		return []Issue{newIssue(IssueCost, "",
			fmt.Sprintf("path cost mismatch: recorded %d, recomputed %d", recordedCost, recomputed), nil)}
	}
	return nil
}

// RouteSnapshot captures one route's geometry in a form two independent
// routing runs can be compared by, abstracting away the RouteID/SegmentID
// arena indices, which are not stable across separately built netlists.
type RouteSnapshot struct {
	Net      string
	Segments []netlist.Segment
}

// Snapshot captures every net's committed route geometry, net name keyed,
// with segment identifiers stripped so two independently built netlists
// can be compared by value.
func Snapshot(nl *netlist.Netlist) map[string][]RouteSnapshot {
	out := map[string][]RouteSnapshot{}
	for _, n := range nl.Nets() {
		var routes []RouteSnapshot
		for _, rid := range n.Routes {
			route := nl.Route(rid)
			segs := make([]netlist.Segment, 0, len(route.Segments))
			for _, sid := range route.Segments {
				seg := nl.Segment(sid)
				seg.ID = 0
				seg.Net = 0
				segs = append(segs, seg)
			}
			routes = append(routes, RouteSnapshot{Net: n.Name, Segments: segs})
		}
		out[n.Name] = routes
	}
	return out
}

// CheckDeterminism verifies determinism: running stage 1 followed
// by stage 2 followed by a second stage 2 on the same inputs produces an
// identical final route set. Callers run the scheduler twice — once
// through stage 2, once through stage 2 a second time — on independently
// rebuilt grid/netlist pairs sharing the same source design, and pass the
// two resulting snapshots here.
func CheckDeterminism(first, second map[string][]RouteSnapshot) []Issue {
	var issues []Issue

	for name, firstRoutes := range first {
		secondRoutes, ok := second[name]
		if !ok {
			issues = append(issues, newIssue(IssueDeterminism, name,
				"net present after the first stage-2 pass but missing after the second", nil))
			continue
		}
		if !routesEqual(firstRoutes, secondRoutes) {
			issues = append(issues, newIssue(IssueDeterminism, name,
				fmt.Sprintf("route set changed between the second and third pass: %d routes became %d",
					len(firstRoutes), len(secondRoutes)), nil))
		}
	}
	for name := range second {
		if _, ok := first[name]; !ok {
			issues = append(issues, newIssue(IssueDeterminism, name,
				"net present after the second stage-2 pass but missing after the first", nil))
		}
	}

	return issues
}

func routesEqual(a, b []RouteSnapshot) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if len(a[i].Segments) != len(b[i].Segments) {
			return false
		}
		for j := range a[i].Segments {
			if a[i].Segments[j] != b[i].Segments[j] {
				return false
			}
		}
	}
	return true
}
