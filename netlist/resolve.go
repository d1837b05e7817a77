package netlist

import (
	"math"

	"github.com/sarchlab/qrouter/grid"
)

// Placement is the subset of an instance's placement the resolver needs:
// its origin in microns and its mirror flags. 90°-rotated orientations
// are rejected by the layout loader before reaching this point; only
// mirror-X/mirror-Y survive here.
type Placement struct {
	OriginX, OriginY float64
	MirrorX, MirrorY bool
}

// PinRect is one rectangle of a port, in macro-local coordinates, on a
// single layer.
type PinRect struct {
	Layer int
	Rect  grid.Rect
}

// ResolveNodeTaps translates, for every rectangle of a pin, the
// macro-local rectangle to the instance's placed location, applies the
// owning instance's mirror orientation about that location, rasterises
// the result against the grid, and appends the resulting primary/
// extended taps to node's lists. If, once every rectangle has been
// processed, the node has no primary tap but does have an extended one,
// the nearest extended tap is promoted to an off-grid route endpoint and
// its grid cell's stub distance is set.
func ResolveNodeTaps(g *grid.Grid, node *Node, placement Placement, rects []PinRect) {
	for _, pr := range rects {
		translated := grid.Rect{
			MinX: pr.Rect.MinX + placement.OriginX,
			MinY: pr.Rect.MinY + placement.OriginY,
			MaxX: pr.Rect.MaxX + placement.OriginX,
			MaxY: pr.Rect.MaxY + placement.OriginY,
		}
		placed := translated.Mirror(placement.MirrorX, placement.MirrorY, placement.OriginX, placement.OriginY)
		halo := g.Layers[pr.Layer].KeepOut

		primary, extended := g.RasterizeRect(pr.Layer, placed, halo)
		for _, c := range primary {
			node.Primary = append(node.Primary, tapAt(g, c, placed, Primary))
		}
		for _, c := range extended {
			node.Extended = append(node.Extended, tapAt(g, c, placed, Extended))
		}
	}

	if len(node.Primary) == 0 && len(node.Extended) > 0 {
		promoteOffGridTap(g, node)
	}
}

func tapAt(g *grid.Grid, c grid.Coord, rect grid.Rect, class TapClass) Tap {
	x, y := g.Physical(c)
	cx := clamp(x, rect.MinX, rect.MaxX)
	cy := clamp(y, rect.MinY, rect.MaxY)
	return Tap{
		Layer:   c.L,
		Cell:    c,
		OffsetX: cx - x,
		OffsetY: cy - y,
		Class:   class,
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// promoteOffGridTap picks the extended tap closest to its own pin offset
// and marks its grid cell's stub distance, so the committer can emit an
// offset-flagged via there.
func promoteOffGridTap(g *grid.Grid, node *Node) {
	best := 0
	bestDist := math.Inf(1)
	for i, t := range node.Extended {
		d := math.Hypot(t.OffsetX, t.OffsetY)
		if d < bestDist {
			bestDist = d
			best = i
		}
	}

	t := node.Extended[best]
	layer := g.Layers[t.Layer]
	stub := t.OffsetX
	if layer.Dir == grid.Vertical {
		stub = t.OffsetY
	}
	g.MarkOffsetTap(t.Cell, node.Net, stub)
}
