package def

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/sarchlab/qrouter/grid"
	"github.com/sarchlab/qrouter/lef"
	"github.com/sarchlab/qrouter/netlist"
)

// Build turns a parsed Layout, together with the lef.Library it was
// placed against, into a routing session's Grid and Netlist: it assigns
// grid layer indices in the library's declared layer order, sizes each
// layer from its TRACKS statements (falling back to the die area and
// layer pitch when a layer has none), resolves every net's pin taps via
// netlist.ResolveNodeTaps, paints BLOCKAGES, and lays down SPECIALNETS
// power/ground geometry directly as rail ownership.
func Build(lib *lef.Library, layout *Layout, vddName, gndName string, maxStack int, log *slog.Logger) (*grid.Grid, *netlist.Netlist, error) {
	if log == nil {
		log = slog.Default()
	}

	routing := lib.RoutingLayers()
	if len(routing) == 0 {
		return nil, nil, fmt.Errorf("def: library has no routing layers")
	}

	layerIndex := make(map[string]int, len(routing))
	gridLayers := make([]grid.Layer, len(routing))
	nx := make([]int, len(routing))
	ny := make([]int, len(routing))

	ups := layout.UnitsPerMicron
	if ups == 0 {
		ups = 1
	}
	dieArea := toMicronRect(layout, layout.DieArea)

	for i, rl := range routing {
		layerIndex[rl.Name] = i
		gridLayers[i] = grid.Layer{
			Index:    i,
			Name:     rl.Name,
			Dir:      rl.Dir,
			PitchX:   rl.PitchX,
			PitchY:   rl.PitchY,
			MinWidth: rl.Width,
			Spacing:  rl.Spacing,
			OffsetX:  rl.OffsetX,
			OffsetY:  rl.OffsetY,
			KeepOut:  rl.Spacing.For(rl.Width),
		}

		tx, ty, haveX, haveY := trackCounts(layout.Tracks, rl.Name)
		if haveX {
			nx[i] = tx
		} else {
			nx[i] = spanCount(dieArea.MinX, dieArea.MaxX, rl.PitchX)
		}
		if haveY {
			ny[i] = ty
		} else {
			ny[i] = spanCount(dieArea.MinY, dieArea.MaxY, rl.PitchY)
		}
	}

	g := grid.New(gridLayers, dieArea.MinX, dieArea.MinY, nx, ny, maxStack, log)
	nl := netlist.New()

	placements := make(map[string]netlist.Placement, len(layout.Components))
	macros := make(map[string]string, len(layout.Components))
	for _, c := range layout.Components {
		mirrorX, mirrorY := c.Orient.Mirror()
		placements[c.Name] = netlist.Placement{
			OriginX: layout.ToMicrons(c.OriginX),
			OriginY: layout.ToMicrons(c.OriginY),
			MirrorX: mirrorX,
			MirrorY: mirrorY,
		}
		macros[c.Name] = c.Macro
	}

	netByName := make(map[string]netlist.NetID, len(layout.Nets))
	for _, nd := range layout.Nets {
		if nd.Special {
			continue
		}
		net := nl.AddNet(nd.Name)
		switch {
		case vddName != "" && nd.Name == vddName:
			net.Kind = netlist.PowerRail
		case gndName != "" && nd.Name == gndName:
			net.Kind = netlist.GroundRail
		}
		netByName[nd.Name] = net.ID
	}

	for _, pin := range layout.Pins {
		if !pin.Placed {
			log.Warn("pin has no PLACED/FIXED location, skipping", "pin", pin.Name)
			continue
		}
		netID, ok := netByName[pin.Net]
		if !ok {
			continue
		}
		mirrorX, mirrorY := pin.Orient.Mirror()
		placement := netlist.Placement{
			OriginX: layout.ToMicrons(pin.OriginX),
			OriginY: layout.ToMicrons(pin.OriginY),
			MirrorX: mirrorX,
			MirrorY: mirrorY,
		}
		rects, err := convertRects(layerIndex, layout, pin.Geometry)
		if err != nil {
			return nil, nil, fmt.Errorf("def: pin %s: %w", pin.Name, err)
		}
		node := nl.AddNode(netID, pin.Name)
		netlist.ResolveNodeTaps(g, node, placement, rects)
		extendBBox(nl.Net(netID), node)
	}

	for _, nd := range layout.Nets {
		if nd.Special {
			continue
		}
		netID := netByName[nd.Name]
		for _, conn := range nd.Connections {
			if conn.Instance == "PIN" || conn.Instance == "*" {
				continue
			}
			macroName, ok := macros[conn.Instance]
			if !ok {
				log.Warn("net connection references unknown instance", "net", nd.Name, "instance", conn.Instance)
				continue
			}
			macro, ok := lib.Macro(macroName)
			if !ok {
				log.Warn("net connection references unknown macro", "net", nd.Name, "macro", macroName)
				continue
			}
			port, ok := macro.Ports[conn.Pin]
			if !ok {
				log.Warn("net connection references unknown pin", "net", nd.Name, "instance", conn.Instance, "pin", conn.Pin)
				continue
			}
			rects, err := convertLefRects(layerIndex, port.Rects)
			if err != nil {
				return nil, nil, fmt.Errorf("def: net %s instance %s: %w", nd.Name, conn.Instance, err)
			}
			node := nl.AddNode(netID, conn.Instance+"/"+conn.Pin)
			netlist.ResolveNodeTaps(g, node, placements[conn.Instance], rects)
			extendBBox(nl.Net(netID), node)
		}
	}

	for _, b := range layout.Blockages {
		idx, ok := layerIndex[b.Layer]
		if !ok {
			log.Warn("blockage on unknown layer, ignored", "layer", b.Layer)
			continue
		}
		g.MarkObstructed(idx, toMicronRect(layout, b.Rect))
	}

	for _, nd := range layout.Nets {
		if !nd.Special {
			continue
		}
		owner := railOwner(nd, vddName, gndName)
		for _, wire := range nd.Routed {
			idx, ok := layerIndex[wire.Layer]
			if !ok {
				log.Warn("special net wire on unknown layer, ignored", "net", nd.Name, "layer", wire.Layer)
				continue
			}
			width := wire.Width
			if width == 0 {
				width = routing[idx].Width * ups
			}
			markRailWire(g, idx, layout, wire.Points, width, owner)
		}
	}

	return g, nl, nil
}

// extendBBox grows net's bounding box to cover every tap a just-resolved
// node reached, so nets with no primary tap (off-grid, extended-only
// pins) still get a usable mask region.
func extendBBox(net *netlist.Net, node *netlist.Node) {
	for _, t := range node.Taps() {
		net.BBox.Extend(t.Cell)
	}
}

func trackCounts(tracks []Track, layerName string) (nx, ny int, haveX, haveY bool) {
	for _, t := range tracks {
		if t.Layer != layerName {
			continue
		}
		if t.Axis == "X" {
			nx, haveX = t.Num, true
		} else {
			ny, haveY = t.Num, true
		}
	}
	return nx, ny, haveX, haveY
}

func spanCount(lo, hi, pitch float64) int {
	if pitch <= 0 {
		return 1
	}
	n := int((hi-lo)/pitch) + 1
	if n < 1 {
		n = 1
	}
	return n
}

func convertRects(layerIndex map[string]int, layout *Layout, rects []PinGeometry) ([]netlist.PinRect, error) {
	out := make([]netlist.PinRect, 0, len(rects))
	for _, r := range rects {
		idx, ok := layerIndex[r.Layer]
		if !ok {
			return nil, fmt.Errorf("rectangle on unknown layer %q", r.Layer)
		}
		out = append(out, netlist.PinRect{Layer: idx, Rect: toMicronRect(layout, r.Rect)})
	}
	return out, nil
}

// convertLefRects maps a macro port's rectangles, already in microns, to
// grid layer indices — no unit conversion needed, unlike DEF-native
// rectangles (pin and blockage geometry), which are in database units.
func convertLefRects(layerIndex map[string]int, rects []lef.Rect) ([]netlist.PinRect, error) {
	out := make([]netlist.PinRect, 0, len(rects))
	for _, r := range rects {
		idx, ok := layerIndex[r.Layer]
		if !ok {
			return nil, fmt.Errorf("rectangle on unknown layer %q", r.Layer)
		}
		out = append(out, netlist.PinRect{Layer: idx, Rect: r.Rect})
	}
	return out, nil
}

func toMicronRect(layout *Layout, r grid.Rect) grid.Rect {
	return grid.Rect{
		MinX: layout.ToMicrons(r.MinX),
		MinY: layout.ToMicrons(r.MinY),
		MaxX: layout.ToMicrons(r.MaxX),
		MaxY: layout.ToMicrons(r.MaxY),
	}
}

func railOwner(nd NetDef, vddName, gndName string) grid.Owner {
	switch {
	case strings.EqualFold(nd.Use, "GROUND"), gndName != "" && nd.Name == gndName:
		return grid.Ground
	case strings.EqualFold(nd.Use, "POWER"), vddName != "" && nd.Name == vddName:
		return grid.Power
	default:
		return grid.Obstructed
	}
}

// markRailWire paints every grid cell under a SPECIALNETS polyline as
// owned by owner, without going through the scheduler's commit path —
// rail geometry is pre-existing layout, not something the router chose
// to route.
func markRailWire(g *grid.Grid, layerIdx int, layout *Layout, points []Point, width float64, owner grid.Owner) {
	halfW := layout.ToMicrons(width) / 2
	for i := 0; i+1 < len(points); i++ {
		x0, y0 := layout.ToMicrons(points[i].X), layout.ToMicrons(points[i].Y)
		x1, y1 := layout.ToMicrons(points[i+1].X), layout.ToMicrons(points[i+1].Y)

		rect := grid.Rect{
			MinX: min(x0, x1) - halfW, MaxX: max(x0, x1) + halfW,
			MinY: min(y0, y1) - halfW, MaxY: max(y0, y1) + halfW,
		}
		primary, _ := g.RasterizeRect(layerIdx, rect, 0)
		for _, c := range primary {
			cell := g.Lookup(c)
			if cell.Owner.Kind == grid.KindEmpty {
				cell.Owner = owner
			}
		}
	}
}
