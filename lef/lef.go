// Package lef loads a technology/library description: routing and cut
// layers, via stacks, and standard-cell macros with their pin geometry
// and obstructions.
package lef

import "github.com/sarchlab/qrouter/grid"

// LayerClass is the lefClass field of qrouter-1.2.34's lefLayer: whether
// a named layer routes, cuts between two routing layers, or is a
// non-routing masterslice/overlap layer.
type LayerClass uint8

const (
	ClassRouting LayerClass = iota
	ClassCut
	ClassMasterslice
)

// Layer is one technology layer. Routing layers carry the fields
// grid.Layer needs directly; cut/masterslice layers are kept only so
// VIA and OBS statements can reference them by name.
type Layer struct {
	Name  string
	Class LayerClass

	Dir      grid.LayerDir
	PitchX   float64
	PitchY   float64
	Width    float64
	OffsetX  float64
	OffsetY  float64
	Spacing  grid.SpacingTable
}

// PortClass mirrors qrouter-1.2.34's port_classes enum.
type PortClass uint8

const (
	PortClassDefault PortClass = iota
	PortClassInput
	PortClassTristate
	PortClassOutput
	PortClassBidirectional
	PortClassFeedthrough
)

// PortUse mirrors qrouter-1.2.34's port_uses enum.
type PortUse uint8

const (
	PortUseDefault PortUse = iota
	PortUseSignal
	PortUseAnalog
	PortUsePower
	PortUseGround
	PortUseClock
)

// Rect is a pin or obstruction rectangle in macro-local microns, tagged
// to a layer by name (the macro's port geometry has not yet been
// resolved to a grid layer index — that happens once a Library is paired
// with a def.Layout in def.Build).
type Rect struct {
	Layer string
	grid.Rect
}

// Port is one PIN statement of a MACRO: a named connection point with
// one or more rectangles, usually on a single layer.
type Port struct {
	Name  string
	Class PortClass
	Use   PortUse
	Rects []Rect
}

// Macro is one MACRO statement: a standard cell or I/O pad template,
// shared by every placed instance of it.
type Macro struct {
	Name         string
	SizeX, SizeY float64
	Ports        map[string]*Port
	Obstructions []Rect
}

// Via is one fixed VIA statement joining two routing layers through a
// cut layer, described by its footprint on each.
type Via struct {
	Name             string
	LowerLayer       string
	CutLayer         string
	UpperLayer       string
	LowerRect        grid.Rect
	CutRect          grid.Rect
	UpperRect        grid.Rect
}

// Library is everything a LEF document defines: technology layers, vias,
// and macros.
type Library struct {
	Layers []Layer
	Vias   map[string]*Via
	Macros map[string]*Macro
}

// RoutingLayers returns the routing-class layers in declaration order,
// the order def.Build assigns grid layer indices in.
func (l *Library) RoutingLayers() []Layer {
	var out []Layer
	for _, layer := range l.Layers {
		if layer.Class == ClassRouting {
			out = append(out, layer)
		}
	}
	return out
}

// LayerNamed returns the layer with the given name, if any.
func (l *Library) LayerNamed(name string) (Layer, bool) {
	for _, layer := range l.Layers {
		if layer.Name == name {
			return layer, true
		}
	}
	return Layer{}, false
}

// Macro returns the named macro, if any.
func (l *Library) Macro(name string) (*Macro, bool) {
	m, ok := l.Macros[name]
	return m, ok
}
