package netlist

import "github.com/sarchlab/qrouter/grid"

// SegmentKind distinguishes the two segment shapes a route can contain.
type SegmentKind uint8

const (
	// WireSegment is a run of collinear grid cells on one layer, either
	// along the layer's preferred direction or, for a jog, across it.
	WireSegment SegmentKind = iota
	// ViaSegment is a single grid cell joining layer L and L+1.
	ViaSegment
)

// Segment is a wire run or a via. A via's From and
// To are the same cell; its Layer is the lower of the two joined layers.
type Segment struct {
	ID   SegmentID
	Net  NetID
	Kind SegmentKind

	Layer int
	From  grid.Coord
	To    grid.Coord

	// OffsetStart/OffsetEnd force physical displacement of the
	// corresponding endpoint onto pin geometry.
	OffsetStart bool
	OffsetEnd   bool
}

// Cells enumerates every grid cell the segment covers. For a wire this
// walks the collinear run; for a via it is the single joining cell.
func (s Segment) Cells() []grid.Coord {
	if s.Kind == ViaSegment {
		return []grid.Coord{s.From}
	}

	cells := make([]grid.Coord, 0)
	if s.From.Y == s.To.Y { // horizontal run
		lo, hi := s.From.X, s.To.X
		if lo > hi {
			lo, hi = hi, lo
		}
		for x := lo; x <= hi; x++ {
			cells = append(cells, grid.Coord{X: x, Y: s.From.Y, L: s.Layer})
		}
		return cells
	}
	// vertical run
	lo, hi := s.From.Y, s.To.Y
	if lo > hi {
		lo, hi = hi, lo
	}
	for y := lo; y <= hi; y++ {
		cells = append(cells, grid.Coord{X: s.From.X, Y: y, L: s.Layer})
	}
	return cells
}

// Route is a linked ordered sequence of segments implementing (part of) a
// net.
type Route struct {
	ID       RouteID
	Net      NetID
	Segments []SegmentID

	// BlockedCells are the adjacent-track and offset-shift cells this
	// route's commit marked "no net, routed-by-this-net" on the grid, kept
	// so rip-up can release them via grid.ReleaseBlockage.
	BlockedCells []grid.Coord
}
