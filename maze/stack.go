package maze

import (
	"github.com/sarchlab/qrouter/grid"
	"github.com/sarchlab/qrouter/netlist"
)

// viaRun is a maximal run of path indices that share an (x, y) column and
// step one layer at a time — a contiguous stacked-via chain. Its height,
// in vias, is end-start.
type viaRun struct {
	start, end int
}

func viaRuns(path []grid.Coord) []viaRun {
	var runs []viaRun
	i := 0
	for i < len(path)-1 {
		if path[i].X != path[i+1].X || path[i].Y != path[i+1].Y || path[i].L == path[i+1].L {
			i++
			continue
		}
		j := i
		for j < len(path)-1 &&
			path[j+1].X == path[i].X && path[j+1].Y == path[i].Y &&
			abs(path[j+1].L-path[j].L) == 1 {
			j++
		}
		runs = append(runs, viaRun{start: i, end: j})
		i = j
	}
	return runs
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func containsCoord(path []grid.Coord, c grid.Coord) bool {
	for _, p := range path {
		if p == c {
			return true
		}
	}
	return false
}

// tryOffset attempts to move the via joining path[at] and path[at+1] to an
// offset column, walking out from path[at] along the joined layer's
// preferred direction and back in on path[at+1]'s layer — letting the path leave
// and re-enter the column at an offset.
func tryOffset(g *grid.Grid, path []grid.Coord, at int, net grid.NetID, kind netlist.NetKind, conflictMode bool, noRipup map[grid.NetID]bool) ([]grid.Coord, bool) {
	p, q := path[at], path[at+1]
	layer := g.Layers[p.L]
	d1, d2 := layer.Dir.StepDirections()

	for _, d := range []grid.Direction{d1, d2} {
		off := p.Neighbor(d)
		offP := grid.Coord{X: off.X, Y: off.Y, L: p.L}
		offQ := grid.Coord{X: off.X, Y: off.Y, L: q.L}

		if !g.InBounds(offP) || !g.InBounds(offQ) {
			continue
		}
		if containsCoord(path, offP) || containsCoord(path, offQ) {
			continue
		}
		if !routable(g, offP, net, kind, conflictMode, noRipup) || !routable(g, offQ, net, kind, conflictMode, noRipup) {
			continue
		}

		detour := make([]grid.Coord, 0, len(path)+2)
		detour = append(detour, path[:at+1]...)
		detour = append(detour, offP, offQ)
		detour = append(detour, path[at+1:]...)
		return detour, true
	}
	return nil, false
}

// splitRun tries to relieve one violating run by moving a single via to an
// offset column. It prefers moving the later via in the run (the split
// that keeps the lower segment at exactly maxStack); if that offset is not
// available, it falls back to moving the earlier via (splitting right
// after the run's first hop).
func splitRun(g *grid.Grid, path []grid.Coord, r viaRun, net grid.NetID, kind netlist.NetKind, maxStack int, conflictMode bool, noRipup map[grid.NetID]bool) ([]grid.Coord, bool) {
	later := r.start + maxStack
	if later+1 <= r.end {
		if detour, ok := tryOffset(g, path, later, net, kind, conflictMode, noRipup); ok {
			return detour, true
		}
	}
	if detour, ok := tryOffset(g, path, r.start, net, kind, conflictMode, noRipup); ok {
		return detour, true
	}
	return nil, false
}

// ReliefStackedVias enforces the stack-height limit by repeatedly splitting any via run taller
// than maxStack off into an offset column. It returns the rewritten path and whether every run now
// satisfies maxStack. On failure, the caller must escalate: surface a
// routing failure in stage 1, or accept the path as-is in
// stage 2 (permitting the over-height stack rather than failing the net).
func ReliefStackedVias(g *grid.Grid, path []grid.Coord, net grid.NetID, kind netlist.NetKind, maxStack int, conflictMode bool, noRipup map[grid.NetID]bool) ([]grid.Coord, bool) {
	for {
		var violating *viaRun
		for _, r := range viaRuns(path) {
			if r.end-r.start > maxStack {
				v := r
				violating = &v
				break
			}
		}
		if violating == nil {
			return path, true
		}

		detour, ok := splitRun(g, path, *violating, net, kind, maxStack, conflictMode, noRipup)
		if !ok {
			return path, false
		}
		path = detour
	}
}
