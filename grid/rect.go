package grid

// Rect is an axis-aligned rectangle in physical (micron) coordinates, used
// for pin geometry, obstructions, and via footprints before rasterisation.
type Rect struct {
	MinX, MinY, MaxX, MaxY float64
}

// Contains reports whether (x, y) lies strictly inside r.
func (r Rect) Contains(x, y float64) bool {
	return x > r.MinX && x < r.MaxX && y > r.MinY && y < r.MaxY
}

// ContainsClosed reports whether (x, y) lies inside or on the boundary of r.
func (r Rect) ContainsClosed(x, y float64) bool {
	return x >= r.MinX && x <= r.MaxX && y >= r.MinY && y <= r.MaxY
}

// Expand returns r grown by halo on every side, the keep-out halo used to
// classify extended taps.
func (r Rect) Expand(halo float64) Rect {
	return Rect{
		MinX: r.MinX - halo,
		MinY: r.MinY - halo,
		MaxX: r.MaxX + halo,
		MaxY: r.MaxY + halo,
	}
}

// Mirror applies the orientation flags of the owning instance to r, about
// the instance's own origin (ox, oy), before rasterisation.
func (r Rect) Mirror(mirrorX, mirrorY bool, ox, oy float64) Rect {
	out := r
	if mirrorX {
		out.MinX, out.MaxX = 2*ox-r.MaxX, 2*ox-r.MinX
	}
	if mirrorY {
		out.MinY, out.MaxY = 2*oy-r.MaxY, 2*oy-r.MinY
	}
	return out
}

// Overlaps reports whether r and o share any interior area.
func (r Rect) Overlaps(o Rect) bool {
	return r.MinX < o.MaxX && o.MinX < r.MaxX && r.MinY < o.MaxY && o.MinY < r.MaxY
}
