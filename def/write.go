package def

import (
	"fmt"
	"io"

	"github.com/sarchlab/qrouter/grid"
	"github.com/sarchlab/qrouter/netlist"
)

// Write serializes layout back out as a DEF document, with its NETS
// section regenerated from nl's committed routes instead of layout's own
// (pre-routing) Nets — the router's final output step.
func Write(w io.Writer, layout *Layout, g *grid.Grid, nl *netlist.Netlist) error {
	ups := layout.UnitsPerMicron
	if ups == 0 {
		ups = 1
	}

	fmt.Fprintf(w, "VERSION 5.6 ;\n")
	fmt.Fprintf(w, "DESIGN %s ;\n", layout.Design)
	fmt.Fprintf(w, "UNITS DISTANCE MICRONS %g ;\n", ups)
	fmt.Fprintf(w, "DIEAREA ( %g %g ) ( %g %g ) ;\n",
		layout.DieArea.MinX, layout.DieArea.MinY, layout.DieArea.MaxX, layout.DieArea.MaxY)

	for _, t := range layout.Tracks {
		fmt.Fprintf(w, "TRACKS %s %g DO %d STEP %g LAYER %s ;\n", t.Axis, t.Start, t.Num, t.Step, t.Layer)
	}

	writeComponents(w, layout)
	writePins(w, layout)
	writeSpecialNets(w, layout)
	writeNets(w, layout, g, nl, ups)
	writeBlockages(w, layout)

	fmt.Fprintf(w, "END DESIGN\n")
	return nil
}

func writeComponents(w io.Writer, layout *Layout) {
	if len(layout.Components) == 0 {
		return
	}
	fmt.Fprintf(w, "COMPONENTS %d ;\n", len(layout.Components))
	for _, c := range layout.Components {
		kind := "PLACED"
		if c.Fixed {
			kind = "FIXED"
		}
		fmt.Fprintf(w, "- %s %s + %s ( %g %g ) %s ;\n",
			c.Name, c.Macro, kind, c.OriginX, c.OriginY, orientationName(c.Orient))
	}
	fmt.Fprintf(w, "END COMPONENTS\n")
}

func writePins(w io.Writer, layout *Layout) {
	if len(layout.Pins) == 0 {
		return
	}
	fmt.Fprintf(w, "PINS %d ;\n", len(layout.Pins))
	for _, pin := range layout.Pins {
		fmt.Fprintf(w, "- %s + NET %s", pin.Name, pin.Net)
		if pin.Direction != "" {
			fmt.Fprintf(w, " + DIRECTION %s", pin.Direction)
		}
		if pin.Use != "" {
			fmt.Fprintf(w, " + USE %s", pin.Use)
		}
		for _, geo := range pin.Geometry {
			fmt.Fprintf(w, " + LAYER %s ( %g %g ) ( %g %g )",
				geo.Layer, geo.Rect.MinX, geo.Rect.MinY, geo.Rect.MaxX, geo.Rect.MaxY)
		}
		if pin.Placed {
			fmt.Fprintf(w, " + PLACED ( %g %g ) %s", pin.OriginX, pin.OriginY, orientationName(pin.Orient))
		}
		fmt.Fprintf(w, " ;\n")
	}
	fmt.Fprintf(w, "END PINS\n")
}

func writeSpecialNets(w io.Writer, layout *Layout) {
	var specials []NetDef
	for _, nd := range layout.Nets {
		if nd.Special {
			specials = append(specials, nd)
		}
	}
	if len(specials) == 0 {
		return
	}
	fmt.Fprintf(w, "SPECIALNETS %d ;\n", len(specials))
	for _, nd := range specials {
		fmt.Fprintf(w, "- %s", nd.Name)
		for _, c := range nd.Connections {
			fmt.Fprintf(w, " ( %s %s )", c.Instance, c.Pin)
		}
		if nd.Use != "" {
			fmt.Fprintf(w, " + USE %s", nd.Use)
		}
		writeRoutedWires(w, nd.Routed, true)
		fmt.Fprintf(w, " ;\n")
	}
	fmt.Fprintf(w, "END SPECIALNETS\n")
}

// writeNets regenerates every non-special net's ROUTED clause from its
// committed routes, walking each route's segments back into DEF points.
func writeNets(w io.Writer, layout *Layout, g *grid.Grid, nl *netlist.Netlist, ups float64) {
	var regular []*netlist.Net
	for _, n := range nl.Nets() {
		if n.Kind != netlist.Signal && n.Kind != netlist.PowerRail && n.Kind != netlist.GroundRail {
			continue
		}
		regular = append(regular, n)
	}
	if len(regular) == 0 {
		return
	}

	fmt.Fprintf(w, "NETS %d ;\n", len(regular))
	for _, n := range regular {
		fmt.Fprintf(w, "- %s", n.Name)
		for _, routeID := range n.Routes {
			route := nl.Route(routeID)
			writeRoute(w, g, nl, route, ups)
		}
		fmt.Fprintf(w, " ;\n")
	}
	fmt.Fprintf(w, "END NETS\n")
}

// writeRoute emits one ROUTED clause per route, starting a new wire
// (NEW) whenever the segment sequence changes layer.
func writeRoute(w io.Writer, g *grid.Grid, nl *netlist.Netlist, route netlist.Route, ups float64) {
	started := false
	lastLayer := -1
	for _, segID := range route.Segments {
		seg := nl.Segment(segID)
		if seg.Kind == netlist.ViaSegment {
			continue
		}
		kw := "NEW"
		if !started {
			kw = "ROUTED"
		}
		if started && seg.Layer == lastLayer {
			kw = ""
		}
		x0, y0 := g.Physical(seg.From)
		x1, y1 := g.Physical(seg.To)
		if kw != "" {
			fmt.Fprintf(w, " + %s %s ( %g %g ) ( %g %g )", kw, g.Layers[seg.Layer].Name, x0*ups, y0*ups, x1*ups, y1*ups)
		} else {
			fmt.Fprintf(w, " ( %g %g )", x1*ups, y1*ups)
		}
		started = true
		lastLayer = seg.Layer
	}
}

func writeRoutedWires(w io.Writer, wires []RoutedWire, special bool) {
	for i, wire := range wires {
		kw := "ROUTED"
		if i > 0 {
			kw = "NEW"
		}
		fmt.Fprintf(w, " + %s %s", kw, wire.Layer)
		if special && wire.Width != 0 {
			fmt.Fprintf(w, " %g", wire.Width)
		}
		for _, p := range wire.Points {
			fmt.Fprintf(w, " ( %g %g )", p.X, p.Y)
		}
	}
}

func writeBlockages(w io.Writer, layout *Layout) {
	if len(layout.Blockages) == 0 {
		return
	}
	fmt.Fprintf(w, "BLOCKAGES %d ;\n", len(layout.Blockages))
	for _, b := range layout.Blockages {
		fmt.Fprintf(w, "- LAYER %s ;\n  RECT ( %g %g ) ( %g %g ) ;\n",
			b.Layer, b.Rect.MinX, b.Rect.MinY, b.Rect.MaxX, b.Rect.MaxY)
	}
	fmt.Fprintf(w, "END BLOCKAGES\n")
}

func orientationName(o Orientation) string {
	switch o {
	case FN:
		return "FN"
	case FS:
		return "FS"
	default:
		return "N"
	}
}
