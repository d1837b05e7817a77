package netlist

import "github.com/sarchlab/qrouter/grid"

// TapClass distinguishes a pin tap that sits under the pin rectangle
// itself from one that only falls within its keep-out halo.
type TapClass uint8

const (
	// Primary: the pin rectangle covers the cell centre.
	Primary TapClass = iota
	// Extended: the cell centre is within the pin's keep-out halo but
	// outside the rectangle.
	Extended
)

// Tap is a single grid cell a port can be reached from.
type Tap struct {
	Layer   int
	Cell    grid.Coord
	OffsetX float64 // physical offset between the cell centre and the nearest point of the pin rectangle
	OffsetY float64
	Class   TapClass
}
