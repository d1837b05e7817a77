package netlist

import "github.com/sarchlab/qrouter/grid"

// BBox is a net's bounding box in grid (column/row) coordinates, updated
// as nodes are added.
type BBox struct {
	MinX, MinY, MaxX, MaxY int
	valid                  bool
}

// Extend grows the bounding box to cover c, in the X/Y plane (the layer
// index does not participate in the planar bounding box used for masking
// and net ordering).
func (b *BBox) Extend(c grid.Coord) {
	if !b.valid {
		b.MinX, b.MaxX = c.X, c.X
		b.MinY, b.MaxY = c.Y, c.Y
		b.valid = true
		return
	}
	if c.X < b.MinX {
		b.MinX = c.X
	}
	if c.X > b.MaxX {
		b.MaxX = c.X
	}
	if c.Y < b.MinY {
		b.MinY = c.Y
	}
	if c.Y > b.MaxY {
		b.MaxY = c.Y
	}
}

// Valid reports whether the box has ever been extended.
func (b BBox) Valid() bool { return b.valid }

// HalfPerimeter is (width + height) of the box, the estimator the
// scheduler's net-ordering priority score uses.
func (b BBox) HalfPerimeter() int {
	if !b.valid {
		return 0
	}
	return (b.MaxX - b.MinX) + (b.MaxY - b.MinY)
}

// NetKind distinguishes ordinary signal nets from the design's reserved
// power/ground rails, which route to "any point already on the rail"
// rather than to a fixed target set.
type NetKind uint8

const (
	Signal NetKind = iota
	PowerRail
	GroundRail
)

// Net is an electrical connection to be realised.
type Net struct {
	ID   NetID
	Name string
	Kind NetKind

	Nodes []NodeID
	BBox  BBox

	Routes []RouteID

	// NoRipup holds nets already rerouted this pass that must not be
	// disturbed again.
	NoRipup map[NetID]bool

	Ignored  bool
	Critical bool
}

// FanOut is the number of nodes on the net, one factor of the scheduler's
// net-ordering priority score.
func (n *Net) FanOut() int {
	return len(n.Nodes)
}

// MarkNoRipup adds other to n's no-ripup set.
func (n *Net) MarkNoRipup(other NetID) {
	if n.NoRipup == nil {
		n.NoRipup = map[NetID]bool{}
	}
	n.NoRipup[other] = true
}

// CanRipup reports whether other is allowed to be ripped up while routing
// n — false if other is on n's no-ripup list.
func (n *Net) CanRipup(other NetID) bool {
	return !n.NoRipup[other]
}
