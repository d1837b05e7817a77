// Package commit implements the route committer: turning the maze
// engine's ordered cell list into coalesced segments, writing grid
// ownership, and the rip-up half of the same bookkeeping.
package commit

import (
	"fmt"
	"log/slog"

	"github.com/sarchlab/qrouter/config"
	"github.com/sarchlab/qrouter/grid"
	"github.com/sarchlab/qrouter/netlist"
)

// Commit walks path, emitting a fresh segment whenever the layer changes
// (a via) or the direction of travel changes, writes net ownership for
// every cell the resulting segments cover, and registers the segments as
// a new route on net. pattern selects which parity of (x+y) mod 2 prefers
// the rotated orientation of a non-square via footprint; it alternates
// automatically from via to via, and Invert flips the parity the normal
// policy would pick. It returns an error without partially rolling back
// if a covered cell was already owned by something else — that situation
// is a scheduler bug, not a recoverable condition.
func Commit(g *grid.Grid, nl *netlist.Netlist, net grid.NetID, path []grid.Coord, pattern config.ViaPattern, log *slog.Logger) (netlist.RouteID, error) {
	if log == nil {
		log = slog.Default()
	}
	if len(path) < 2 {
		return 0, fmt.Errorf("commit: path must have at least two cells, got %d", len(path))
	}

	segs := segmentize(path, net)
	ids := make([]netlist.SegmentID, 0, len(segs))
	var blocked []grid.Coord

	var prev *netlist.Segment
	for i := range segs {
		seg := &segs[i]
		seg.OffsetStart = g.Lookup(seg.From).OffsetTap
		seg.OffsetEnd = g.Lookup(seg.To).OffsetTap
		if prev != nil && prev.Kind == netlist.ViaSegment && prev.OffsetEnd && seg.Kind == netlist.WireSegment {
			seg.OffsetStart = true
		}

		marked, err := writeSegment(g, net, *seg, pattern, log)
		if err != nil {
			return 0, err
		}
		blocked = append(blocked, marked...)
		ids = append(ids, nl.AddSegment(*seg))
		prev = seg
	}

	return nl.AddRoute(net, ids, blocked), nil
}

// RipUp restores every cell a route's segments cover to "no net", releases
// the adjacent-track and offset-shift cells its commit blocked, and
// detaches the route from net.
func RipUp(g *grid.Grid, nl *netlist.Netlist, net grid.NetID, route netlist.RouteID) {
	r := nl.Route(route)
	for _, sid := range r.Segments {
		seg := nl.Segment(sid)
		for _, c := range coverage(seg) {
			g.RestoreCell(c)
		}
	}
	g.ReleaseBlockage(r.BlockedCells)
	nl.RemoveRoute(net, route)
}

// segmentize groups path into wire runs and single-cell vias, emitting a
// fresh segment whenever the layer changes or the direction of travel
// changes.
func segmentize(path []grid.Coord, net grid.NetID) []netlist.Segment {
	var segs []netlist.Segment

	i := 0
	for i < len(path)-1 {
		if path[i].L != path[i+1].L {
			lower := path[i]
			if path[i+1].L < path[i].L {
				lower = path[i+1]
			}
			segs = append(segs, netlist.Segment{
				Net: net, Kind: netlist.ViaSegment, Layer: lower.L, From: lower, To: lower,
			})
			i++
			continue
		}

		dir, _ := path[i].DirectionTo(path[i+1])
		j := i + 1
		for j < len(path)-1 {
			d2, _ := path[j].DirectionTo(path[j+1])
			if d2 != dir {
				break
			}
			j++
		}
		segs = append(segs, netlist.Segment{
			Net: net, Kind: netlist.WireSegment, Layer: path[i].L, From: path[i], To: path[j],
		})
		i = j
	}
	return segs
}

// coverage returns every grid cell a segment actually owns: a wire's
// collinear run, or both layers a via joins (Segment.Cells reports only
// the via's nominal lower-layer cell; the upper layer is equally owned).
func coverage(seg netlist.Segment) []grid.Coord {
	if seg.Kind == netlist.ViaSegment {
		lower := seg.From
		upper := grid.Coord{X: lower.X, Y: lower.Y, L: lower.L + 1}
		return []grid.Coord{lower, upper}
	}
	return seg.Cells()
}

func writeSegment(g *grid.Grid, net grid.NetID, seg netlist.Segment, pattern config.ViaPattern, log *slog.Logger) ([]grid.Coord, error) {
	if seg.Kind == netlist.ViaSegment {
		for _, c := range coverage(seg) {
			if err := own(g, net, c, log); err != nil {
				return nil, err
			}
		}
		g.Lookup(seg.From).ViaUp = true
		rotated := (seg.From.X+seg.From.Y)%2 == 1
		if pattern == config.Invert {
			rotated = !rotated
		}
		return g.MarkBlockageAfterVia(seg.From, rotated), nil
	}

	for _, c := range seg.Cells() {
		if err := own(g, net, c, log); err != nil {
			return nil, err
		}
	}
	return g.MarkBlockageAfterWire(seg.From, seg.To), nil
}

// own implements the final per-segment invariant: a cell that is already
// owned, obstructed, or carrying a foreign tap must never be overwritten.
func own(g *grid.Grid, net grid.NetID, c grid.Coord, log *slog.Logger) error {
	cell := g.Lookup(c)
	if !(cell.Owner.Kind == grid.KindEmpty || cell.Owner.IsNet(net)) {
		log.Error("commit: refusing to overwrite an owned cell",
			"coord", c, "owner_kind", cell.Owner.Kind, "net", net)
		return fmt.Errorf("commit: cell %+v already owned (kind=%d)", c, cell.Owner.Kind)
	}
	cell.Owner = grid.OfNet(net)
	cell.RoutedByNet = true
	return nil
}
