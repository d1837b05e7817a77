package grid

import (
	"fmt"
	"log/slog"
	"math"
)

// Grid is the dense per-layer occupancy map. It is allocated once per
// routing session and lives for the session's duration; only the cells inside it mutate as nets route and rip up.
type Grid struct {
	Layers []Layer

	// X0, Y0 is the die origin in microns; grid coordinate (0, 0, L) sits
	// here on every layer.
	X0, Y0 float64

	// MaxStack is the configured cap on contiguous stacked-via height.
	// A configured value of zero is coerced to one.
	MaxStack int

	nx, ny []int
	cells  [][]Cell // cells[L] is a row-major Nx(L) x Ny(L) slice

	// blockRefs counts, per cell, how many committed routes currently rely
	// on that cell carrying the "no net, routed-by-this-net" marker, so
	// rip-up of one route never clears a marker another route still needs.
	blockRefs map[Coord]int

	// endpointReserved records, per cell, the net whose offset tap forces a
	// neighbouring cell off-limits as a different net's route endpoint.
	endpointReserved map[Coord]NetID

	log *slog.Logger
}

// New allocates a grid with Nx(L) x Ny(L) cells for every layer in
// layers, where nx[i]/ny[i] give the dimensions of layers[i].
func New(layers []Layer, x0, y0 float64, nx, ny []int, maxStack int, log *slog.Logger) *Grid {
	if log == nil {
		log = slog.Default()
	}
	if maxStack <= 0 {
		log.Warn("max_stack coerced to 1", "configured", maxStack)
		maxStack = 1
	}

	g := &Grid{
		Layers:           layers,
		X0:               x0,
		Y0:               y0,
		MaxStack:         maxStack,
		nx:               nx,
		ny:               ny,
		cells:            make([][]Cell, len(layers)),
		blockRefs:        map[Coord]int{},
		endpointReserved: map[Coord]NetID{},
		log:              log,
	}
	for i := range layers {
		g.cells[i] = make([]Cell, nx[i]*ny[i])
	}
	g.normalizePitches()
	return g
}

// normalizePitches implements the geometry-warning fallback:
// when parallel layers (same preferred direction) disagree on pitch, every
// layer in that direction group adopts the tightest (smallest) pitch, and
// the fallback is logged once.
func (g *Grid) normalizePitches() {
	tightest := map[LayerDir]float64{}
	for _, l := range g.Layers {
		p := l.PitchY
		if l.Dir == Vertical {
			p = l.PitchX
		}
		if cur, ok := tightest[l.Dir]; !ok || p < cur {
			tightest[l.Dir] = p
		}
	}
	warned := map[LayerDir]bool{}
	for i := range g.Layers {
		l := &g.Layers[i]
		want := tightest[l.Dir]
		cur := l.PitchY
		if l.Dir == Vertical {
			cur = l.PitchX
		}
		if cur != want {
			if !warned[l.Dir] {
				g.log.Warn("pitch mismatch between parallel layers, using tightest pitch",
					"direction", l.Dir.String(), "tightest_pitch", want)
				warned[l.Dir] = true
			}
			if l.Dir == Horizontal {
				l.PitchY = want
			} else {
				l.PitchX = want
			}
		}
	}
}

// NX returns the column count of layer L.
func (g *Grid) NX(l int) int { return g.nx[l] }

// NY returns the row count of layer L.
func (g *Grid) NY(l int) int { return g.ny[l] }

// InBounds reports whether c addresses a cell that exists on its layer.
func (g *Grid) InBounds(c Coord) bool {
	if c.L < 0 || c.L >= len(g.Layers) {
		return false
	}
	return c.X >= 0 && c.X < g.nx[c.L] && c.Y >= 0 && c.Y < g.ny[c.L]
}

func (g *Grid) index(c Coord) int {
	return c.Y*g.nx[c.L] + c.X
}

// Lookup returns a pointer to the occupancy cell at c for read or
// mutation. Panics if c is out of bounds — callers are expected to check
// InBounds first, as the maze engine's neighbour expansion does.
func (g *Grid) Lookup(c Coord) *Cell {
	if !g.InBounds(c) {
		panic(fmt.Sprintf("grid: coordinate %+v out of bounds", c))
	}
	return &g.cells[c.L][g.index(c)]
}

// Physical returns the micron position of grid coordinate c:
// (X0 + x·pitchX(L), Y0 + y·pitchY(L)).
func (g *Grid) Physical(c Coord) (x, y float64) {
	l := g.Layers[c.L]
	return g.X0 + float64(c.X)*l.PitchX, g.Y0 + float64(c.Y)*l.PitchY
}

// Nearest returns the grid cell on layer l whose centre is closest to the
// physical point (x, y), clamped to the layer's bounds.
func (g *Grid) Nearest(l int, x, y float64) Coord {
	layer := g.Layers[l]
	gx := int(math.Round((x - g.X0) / layer.PitchX))
	gy := int(math.Round((y - g.Y0) / layer.PitchY))
	if gx < 0 {
		gx = 0
	}
	if gx >= g.nx[l] {
		gx = g.nx[l] - 1
	}
	if gy < 0 {
		gy = 0
	}
	if gy >= g.ny[l] {
		gy = g.ny[l] - 1
	}
	return Coord{gx, gy, l}
}

// EndpointAllowed reports whether net may terminate a route at c. A cell
// reserved by another net's offset tap (see MarkOffsetTap) is off-limits as
// a terminal for every other net, though it remains passable en route.
func (g *Grid) EndpointAllowed(c Coord, net NetID) bool {
	owner, reserved := g.endpointReserved[c]
	return !reserved || owner == net
}

// StackHeight walks upward from (x, y, fromLayer) counting contiguous
// ViaUp cells belonging to the same net, to enforce the via-stack limit.
func (g *Grid) StackHeight(x, y, fromLayer int, net NetID) int {
	height := 0
	for l := fromLayer; l < len(g.Layers); l++ {
		c := Coord{x, y, l}
		if !g.InBounds(c) {
			break
		}
		cell := g.Lookup(c)
		if !cell.ViaUp || !cell.Owner.IsNet(net) {
			break
		}
		height++
	}
	return height
}
