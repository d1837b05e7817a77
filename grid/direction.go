// Package grid implements the per-layer dense occupancy map: coordinate
// transforms between physical and grid space, per-cell net ownership, and
// the directional blockage bookkeeping that pin geometry and committed
// wires leave behind.
package grid

import (
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Direction is one of the six compass steps a maze search can take: the
// four planar neighbours plus a layer change up or down.
type Direction uint8

// Compass order used for every deterministic tie-break in the router:
// N, S, E, W, U, D.
const (
	North Direction = iota
	South
	East
	West
	Up
	Down
)

// Compass lists every direction in the fixed tie-break order.
var Compass = [...]Direction{North, South, East, West, Up, Down}

var titleCaser = cases.Title(language.English)

var directionNames = []string{"North", "South", "East", "West", "Up", "Down"}

// String returns the title-cased direction name, for logs and reports.
func (d Direction) String() string {
	if int(d) < len(directionNames) {
		return titleCaser.String(directionNames[d])
	}
	return fmt.Sprintf("Direction(%d)", uint8(d))
}

// Opposite returns the reverse of d, used when stepping back from a cell
// to the predecessor it was reached from.
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	case West:
		return East
	case Up:
		return Down
	case Down:
		return Up
	default:
		return d
	}
}

// Planar reports whether d is one of the four in-layer steps (as opposed
// to a layer change).
func (d Direction) Planar() bool {
	return d == North || d == South || d == East || d == West
}

// DirBits packs one flag per Direction into a single word, used for the
// directional blockage bits that survive rip-up on an occupancy cell.
type DirBits uint8

// Set returns a copy of b with d set.
func (b DirBits) Set(d Direction) DirBits {
	return b | (1 << d)
}

// Clear returns a copy of b with d cleared.
func (b DirBits) Clear(d Direction) DirBits {
	return b &^ (1 << d)
}

// Has reports whether d is set in b.
func (b DirBits) Has(d Direction) bool {
	return b&(1<<d) != 0
}

// Any reports whether any direction bit is set.
func (b DirBits) Any() bool {
	return b != 0
}

// LayerDir is the routing preference of a layer.
type LayerDir uint8

const (
	Horizontal LayerDir = iota
	Vertical
)

// String names the layer direction for reports.
func (d LayerDir) String() string {
	if d == Horizontal {
		return "Horizontal"
	}
	return "Vertical"
}

// StepDirections returns the pair of opposite Directions that are "along"
// this layer's preferred direction (E/W for Horizontal, N/S for Vertical).
func (d LayerDir) StepDirections() (a, b Direction) {
	if d == Horizontal {
		return East, West
	}
	return North, South
}
