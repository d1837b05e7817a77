package grid

// needsTrackBlockage reports whether a conductor at the layer's minimum
// width, given its spacing rule, would infringe on the next parallel
// track: the required pitch is wider than one track's worth of spacing.
func needsTrackBlockage(l Layer) bool {
	perp := l.PitchY
	if l.Dir == Vertical {
		perp = l.PitchX
	}
	required := l.MinWidth + l.Spacing.For(l.MinWidth)
	return required > perp
}

// markRouted writes the "no net, routed-by-this-net" marker onto c if it is
// currently unowned, and bumps its blockage refcount so a later rip-up of
// the route that requested the mark does not clear it out from under a
// second route that also requires it. It reports whether c now carries the
// marker on behalf of the caller (false if c was never eligible, e.g.
// already owned by a net).
func (g *Grid) markRouted(c Coord) bool {
	cell := g.Lookup(c)
	if cell.Owner.Kind != KindEmpty {
		return false
	}
	cell.RoutedByNet = true
	g.blockRefs[c]++
	return true
}

// ReleaseBlockage decrements the blockage refcount of every cell in cells,
// clearing the "routed-by-this-net" marker only once no other committed
// route still needs it — the rip-up half of markRouted.
func (g *Grid) ReleaseBlockage(cells []Coord) {
	for _, c := range cells {
		if g.blockRefs[c] <= 1 {
			delete(g.blockRefs, c)
			if g.InBounds(c) {
				g.Lookup(c).RoutedByNet = false
			}
			continue
		}
		g.blockRefs[c]--
	}
}

// MarkBlockageAfterWire implements mark_blockage_after_wire:
// after committing a wire segment from a to b (collinear on one layer in
// its preferred direction), the adjacent parallel track cells along the
// wire are written to "no net, routed-by-this-net" if the layer's spacing
// rule requires it. It returns every cell actually marked, so the caller
// can restore them on rip-up.
func (g *Grid) MarkBlockageAfterWire(a, b Coord) []Coord {
	layer := g.Layers[a.L]
	if !needsTrackBlockage(layer) {
		return nil
	}

	perpDirs := [2]Direction{North, South}
	along := [2]int{min(a.X, b.X), max(a.X, b.X)}
	fixed := a.Y
	if layer.Dir == Vertical {
		perpDirs = [2]Direction{East, West}
		along = [2]int{min(a.Y, b.Y), max(a.Y, b.Y)}
		fixed = a.X
	}

	var marked []Coord
	for i := along[0]; i <= along[1]; i++ {
		var c Coord
		if layer.Dir == Horizontal {
			c = Coord{i, fixed, a.L}
		} else {
			c = Coord{fixed, i, a.L}
		}
		for _, d := range perpDirs {
			n := c.Neighbor(d)
			if !g.InBounds(n) {
				continue
			}
			if g.markRouted(n) {
				marked = append(marked, n)
			}
		}
	}
	return marked
}

// MarkBlockageAfterVia implements mark_blockage_after_via:
// track blockage for the via footprint on both joined layers, plus the
// offset-tap propagation rule: if the via cell carries an offset-tap bit,
// the grid cell on the shifted side is marked on both via layers. rotated
// alternates which perpendicular pair of directions the footprint's track
// blockage applies to, for a non-square via footprint whose wide axis
// flips with the via-pattern parity policy. It returns every cell actually
// marked, so the caller can restore them on rip-up.
func (g *Grid) MarkBlockageAfterVia(c Coord, rotated bool) []Coord {
	lower := c
	upper := Coord{c.X, c.Y, c.L + 1}

	var marked []Coord
	for _, at := range []Coord{lower, upper} {
		if !g.InBounds(at) {
			continue
		}

		if needsTrackBlockage(g.Layers[at.L]) {
			pair := [2]Direction{North, South}
			if rotated {
				pair = [2]Direction{East, West}
			}
			for _, d := range pair {
				n := at.Neighbor(d)
				if !g.InBounds(n) {
					continue
				}
				if g.markRouted(n) {
					marked = append(marked, n)
				}
			}
		}

		cell := g.Lookup(at)
		if !cell.OffsetTap {
			continue
		}
		for _, d := range Compass {
			if !cell.Blockage.Has(d) {
				continue
			}
			n := at.Neighbor(d)
			for _, shiftLayer := range []int{lower.L, upper.L} {
				sc := Coord{n.X, n.Y, shiftLayer}
				if !g.InBounds(sc) {
					continue
				}
				if g.markRouted(sc) {
					marked = append(marked, sc)
				}
			}
		}
	}
	return marked
}

// RestoreCell implements the rip-up half of cell restoration: a cell
// previously owned by the net being ripped up is restored to "no net".
// Directional blockage bits, offset-tap flag, and stub distance are pin
// geometry and are never cleared here, so they survive rip-up. Adjacent
// track-spacing and offset-shift markers are not touched here either —
// those are released separately, by refcount, via ReleaseBlockage. Cells
// carrying a plain "obstructed" marker must never be passed to
// RestoreCell — callers only invoke it for cells recorded as part of the
// net's own committed coverage, which can never itself be "obstructed".
func (g *Grid) RestoreCell(c Coord) {
	cell := g.Lookup(c)
	cell.Owner = Empty
	cell.RoutedByNet = false
	cell.ViaUp = false
}
