package grid

import "math"

// RasterizeRect enumerates the grid cells on layer l whose centre falls
// inside rect (primary) or inside rect expanded by halo but outside rect
// itself (extended); rect must already have the owning instance's
// orientation applied by the caller.
func (g *Grid) RasterizeRect(l int, rect Rect, halo float64) (primary, extended []Coord) {
	layer := g.Layers[l]
	outer := rect.Expand(halo)

	minGX := int(math.Floor((outer.MinX - g.X0) / layer.PitchX))
	maxGX := int(math.Ceil((outer.MaxX - g.X0) / layer.PitchX))
	minGY := int(math.Floor((outer.MinY - g.Y0) / layer.PitchY))
	maxGY := int(math.Ceil((outer.MaxY - g.Y0) / layer.PitchY))

	if minGX < 0 {
		minGX = 0
	}
	if minGY < 0 {
		minGY = 0
	}
	if maxGX >= g.nx[l] {
		maxGX = g.nx[l] - 1
	}
	if maxGY >= g.ny[l] {
		maxGY = g.ny[l] - 1
	}

	for gy := minGY; gy <= maxGY; gy++ {
		for gx := minGX; gx <= maxGX; gx++ {
			c := Coord{gx, gy, l}
			x, y := g.Physical(c)
			switch {
			case rect.ContainsClosed(x, y):
				primary = append(primary, c)
			case outer.ContainsClosed(x, y):
				extended = append(extended, c)
			}
		}
	}
	return primary, extended
}

// MarkObstructed paints rect on layer l as unroutable obstruction.
// Cells already owned by a net are left untouched; that case indicates
// overlapping geometry loaded out of order and is a library/placement
// data error, not something routing should paper over.
func (g *Grid) MarkObstructed(l int, rect Rect) {
	minGX := int(math.Floor((rect.MinX - g.X0) / g.Layers[l].PitchX))
	maxGX := int(math.Ceil((rect.MaxX - g.X0) / g.Layers[l].PitchX))
	minGY := int(math.Floor((rect.MinY - g.Y0) / g.Layers[l].PitchY))
	maxGY := int(math.Ceil((rect.MaxY - g.Y0) / g.Layers[l].PitchY))

	if minGX < 0 {
		minGX = 0
	}
	if minGY < 0 {
		minGY = 0
	}
	if maxGX >= g.nx[l] {
		maxGX = g.nx[l] - 1
	}
	if maxGY >= g.ny[l] {
		maxGY = g.ny[l] - 1
	}

	for gy := minGY; gy <= maxGY; gy++ {
		for gx := minGX; gx <= maxGX; gx++ {
			c := Coord{gx, gy, l}
			x, y := g.Physical(c)
			if !rect.ContainsClosed(x, y) {
				continue
			}
			cell := g.Lookup(c)
			if cell.Owner.Kind == KindEmpty {
				cell.Owner = Obstructed
			}
		}
	}
}

// MarkOffsetTap records that the cell at c, reached by net, needs a
// sub-grid stub of the given signed distance when a route terminates
// there — the off-grid pin case of tie-break. The shift direction implied
// by stub's sign is recorded as a directional blockage bit on c, and the
// neighbouring cell that bit points to is reserved so no other net may
// terminate a route there: a shifted via or wire from this tap would
// otherwise land on top of a foreign route's endpoint.
func (g *Grid) MarkOffsetTap(c Coord, net NetID, stub float64) {
	cell := g.Lookup(c)
	cell.OffsetTap = true
	cell.Stub = stub

	layer := g.Layers[c.L]
	d := West
	switch {
	case layer.Dir == Horizontal && stub > 0:
		d = East
	case layer.Dir == Vertical && stub > 0:
		d = North
	case layer.Dir == Vertical:
		d = South
	}
	cell.Blockage = cell.Blockage.Set(d)

	n := c.Neighbor(d)
	if g.InBounds(n) {
		g.endpointReserved[n] = net
	}
}
