// Package def loads and writes a placed, (partially) routed design:
// die area, track grid, component placement, design pins, special and
// regular nets, and blockages. Build turns a
// parsed Layout, together with a lef.Library, into the grid.Grid and
// netlist.Netlist the scheduler operates on; Write serializes a routed
// netlist.Netlist back into a Layout's NETS section.
package def

import "github.com/sarchlab/qrouter/grid"

// Orientation is a component or pin's placement orientation. Only the
// non-rotated forms survive parsing (resolve.go's Placement only carries
// mirror flags); S, E, W, FE and FW all imply a rotation this router does
// not support and are rejected by Load.
type Orientation uint8

const (
	N Orientation = iota
	FN
	FS
)

// Mirror reports the X/Y mirror flags orientation o implies, for direct
// use as a netlist.Placement.
func (o Orientation) Mirror() (mirrorX, mirrorY bool) {
	switch o {
	case FN:
		return true, false
	case FS:
		return false, true
	default:
		return false, false
	}
}

// Component is one placed COMPONENTS entry.
type Component struct {
	Name             string
	Macro            string
	OriginX, OriginY float64 // DEF database units
	Orient           Orientation
	Fixed            bool
}

// PinGeometry is one LAYER/rect pair of a design-level pin, in DEF
// database units, relative to the pin's own placement origin.
type PinGeometry struct {
	Layer string
	Rect  grid.Rect
}

// Pin is one design-level I/O connection point (DEF PINS entry).
type Pin struct {
	Name      string
	Net       string
	Direction string // raw DIRECTION value: INPUT, OUTPUT, INOUT, FEEDTHRU
	Use       string // raw USE value: SIGNAL, POWER, GROUND, CLOCK, ANALOG

	Placed           bool
	OriginX, OriginY float64
	Orient           Orientation

	Geometry []PinGeometry
}

// Connection is one component-instance/pin pair of a NETS or SPECIALNETS
// entry. Instance is "PIN" when the connection names a design-level pin
// instead of a placed instance, and "*" for a SPECIALNETS wildcard
// ("connect to every instance of this pin name", used for rail straps).
type Connection struct {
	Instance string
	Pin      string
}

// Point is one coordinate of a ROUTED wire, in DEF database units.
type Point struct{ X, Y float64 }

// RoutedWire is one contiguous polyline of a ROUTED clause (everything
// up to the next NEW or the clause's end), on a single layer.
type RoutedWire struct {
	Layer  string
	Width  float64 // 0 means "use the layer's default width"
	Points []Point
}

// NetDef is one NETS or SPECIALNETS entry.
type NetDef struct {
	Name        string
	Special     bool
	Use         string // SPECIALNETS net USE: POWER, GROUND, SIGNAL, ...
	Connections []Connection
	Routed      []RoutedWire
}

// Track is one TRACKS statement: Num evenly spaced lines on Layer, Step
// apart, starting at Start along Axis ("X" or "Y").
type Track struct {
	Layer string
	Axis  string
	Start float64
	Num   int
	Step  float64
}

// Blockage is one BLOCKAGES LAYER/RECT pair, in DEF database units.
type Blockage struct {
	Layer string
	Rect  grid.Rect
}

// Layout is everything a DEF document describes about a placed design.
type Layout struct {
	UnitsPerMicron float64
	Design         string
	DieArea        grid.Rect

	Tracks     []Track
	Components []Component
	Pins       []Pin
	Nets       []NetDef
	Blockages  []Blockage
}

// ToMicrons converts a DEF database-unit coordinate to microns.
func (l *Layout) ToMicrons(v float64) float64 {
	if l.UnitsPerMicron == 0 {
		return v
	}
	return v / l.UnitsPerMicron
}

// Component looks up a placed instance by name.
func (l *Layout) Component(name string) (Component, bool) {
	for _, c := range l.Components {
		if c.Name == name {
			return c, true
		}
	}
	return Component{}, false
}
