package maze

import "github.com/sarchlab/qrouter/netlist"

// Mode selects how the scheduler restricts a net's search region.
type Mode uint8

const (
	// None searches the whole grid.
	None Mode = iota
	// BBox restricts the search to the net's bounding box.
	BBox
	// Auto restricts to the bounding box on a net's first attempt, exactly
	// like BBox, then widens by Margin for every failure or rip-up the net
	// accumulates afterward.
	Auto
	// Fixed restricts to the bounding box plus a constant integer margin.
	Fixed
)

// Mask is the scheduler's per-search spatial restriction.
type Mask struct {
	Mode   Mode
	Margin int // base margin for Auto and Fixed; unused for None/BBox
}

// Allows reports whether grid column/row (x, y) is inside the mask region
// for the given net bounding box and failure count. A net with no valid
// bounding box (no tap coordinate ever extended it)
// is never masked, since there is nothing to restrict around.
func (m Mask) Allows(bbox netlist.BBox, failures int, x, y int) bool {
	if m.Mode == None || !bbox.Valid() {
		return true
	}

	margin := 0
	switch m.Mode {
	case Fixed:
		margin = m.Margin
	case Auto:
		margin = m.Margin * failures
	}

	return x >= bbox.MinX-margin && x <= bbox.MaxX+margin &&
		y >= bbox.MinY-margin && y <= bbox.MaxY+margin
}
