package router

import (
	"testing"

	gomock "github.com/golang/mock/gomock"

	"github.com/sarchlab/qrouter/config"
	"github.com/sarchlab/qrouter/def"
	"github.com/sarchlab/qrouter/grid"
	"github.com/sarchlab/qrouter/lef"
	"github.com/sarchlab/qrouter/maze"
)

func testLibrary() *lef.Library {
	return &lef.Library{
		Layers: []lef.Layer{
			{Name: "M1", Class: lef.ClassRouting, Dir: grid.Horizontal, PitchX: 1, PitchY: 1, Width: 0.5,
				Spacing: grid.SpacingTable{{MinWidth: 0, Spacing: 0.5}}},
			{Name: "M2", Class: lef.ClassRouting, Dir: grid.Vertical, PitchX: 1, PitchY: 1, Width: 0.5,
				Spacing: grid.SpacingTable{{MinWidth: 0, Spacing: 0.5}}},
		},
		Macros: map[string]*lef.Macro{
			"INVX1": {
				Name: "INVX1", SizeX: 2, SizeY: 2,
				Ports: map[string]*lef.Port{
					"A": {Name: "A", Class: lef.PortClassInput, Use: lef.PortUseSignal,
						Rects: []lef.Rect{{Layer: "M1", Rect: grid.Rect{MinX: 0, MinY: 0.9, MaxX: 0.2, MaxY: 1.1}}}},
					"Y": {Name: "Y", Class: lef.PortClassOutput, Use: lef.PortUseSignal,
						Rects: []lef.Rect{{Layer: "M1", Rect: grid.Rect{MinX: 1.8, MinY: 0.9, MaxX: 2.0, MaxY: 1.1}}}},
				},
			},
		},
	}
}

func testLayout() *def.Layout {
	return &def.Layout{
		UnitsPerMicron: 1000,
		Design:         "top",
		DieArea:        grid.Rect{MinX: 0, MinY: 0, MaxX: 10000, MaxY: 10000},
		Tracks: []def.Track{
			{Layer: "M2", Axis: "X", Start: 0, Num: 10, Step: 1000},
			{Layer: "M1", Axis: "Y", Start: 0, Num: 10, Step: 1000},
		},
		Components: []def.Component{
			{Name: "U1", Macro: "INVX1", OriginX: 0, OriginY: 0, Orient: def.N},
			{Name: "U2", Macro: "INVX1", OriginX: 6000, OriginY: 0, Orient: def.N},
		},
		Nets: []def.NetDef{
			{Name: "net1", Connections: []def.Connection{{Instance: "U1", Pin: "Y"}, {Instance: "U2", Pin: "A"}}},
		},
	}
}

func newTestRouter(t *testing.T) (*Router, *MockIO) {
	ctrl := gomock.NewController(t)
	mockIO := NewMockIO(ctrl)
	cfg := config.Default()
	cfg.MaxStack = 2
	r := New(cfg, nil)
	r.io = mockIO
	return r, mockIO
}

func TestLoadLibraryAndLayoutBuildsSession(t *testing.T) {
	r, mockIO := newTestRouter(t)
	mockIO.EXPECT().ReadLibrary("lib.lef").Return(testLibrary(), nil)
	mockIO.EXPECT().ReadLayout("design.def").Return(testLayout(), nil)

	if err := r.LoadLibrary("lib.lef"); err != nil {
		t.Fatalf("LoadLibrary failed: %v", err)
	}
	if err := r.LoadLayout("design.def"); err != nil {
		t.Fatalf("LoadLayout failed: %v", err)
	}

	if r.Grid() == nil || r.Netlist() == nil {
		t.Fatalf("expected grid/netlist to be built")
	}
	if len(r.Netlist().Nets()) != 1 {
		t.Fatalf("expected 1 net, got %d", len(r.Netlist().Nets()))
	}
}

func TestLoadLayoutWithoutLibraryFails(t *testing.T) {
	r, _ := newTestRouter(t)
	if err := r.LoadLayout("design.def"); err == nil {
		t.Fatalf("expected error loading layout before a library is loaded")
	}
}

func TestCommandSurfaceRoutesRipsUpAndWritesBack(t *testing.T) {
	r, mockIO := newTestRouter(t)
	mockIO.EXPECT().ReadLibrary("lib.lef").Return(testLibrary(), nil)
	mockIO.EXPECT().ReadLayout("design.def").Return(testLayout(), nil)
	mockIO.EXPECT().WriteLayout("out.def", gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	if err := r.LoadLibrary("lib.lef"); err != nil {
		t.Fatalf("LoadLibrary failed: %v", err)
	}
	if err := r.LoadLayout("design.def"); err != nil {
		t.Fatalf("LoadLayout failed: %v", err)
	}

	r.SetCost(maze.CostParams{Seg: 1, Via: 10, Jog: 2, Xover: 50, Block: 100, Conflict: 200})
	r.SetViaStackLimit(2)
	if err := r.SetMaskMode("bbox", 0); err != nil {
		t.Fatalf("SetMaskMode failed: %v", err)
	}

	if failed, err := r.RouteStage1(""); err != nil || failed != 0 {
		t.Fatalf("RouteStage1 = (%d, %v), want (0, nil)", failed, err)
	}
	if r.ExitStatus() != 0 {
		t.Fatalf("ExitStatus = %d, want 0 after a clean stage 1", r.ExitStatus())
	}

	if err := r.RipUpNet("net1"); err != nil {
		t.Fatalf("RipUpNet failed: %v", err)
	}
	if net, _ := r.Netlist().NetByName("net1"); len(net.Routes) != 0 {
		t.Fatalf("expected net1 to have no routes after rip-up, got %d", len(net.Routes))
	}

	if failed, err := r.RouteStage1("net1"); err != nil || failed != 0 {
		t.Fatalf("re-routing net1 after rip-up: RouteStage1 = (%d, %v), want (0, nil)", failed, err)
	}

	if err := r.WriteRoutedLayout("out.def"); err != nil {
		t.Fatalf("WriteRoutedLayout failed: %v", err)
	}
}

func TestRouteStage1UnknownNetErrors(t *testing.T) {
	r, mockIO := newTestRouter(t)
	mockIO.EXPECT().ReadLibrary("lib.lef").Return(testLibrary(), nil)
	mockIO.EXPECT().ReadLayout("design.def").Return(testLayout(), nil)

	if err := r.LoadLibrary("lib.lef"); err != nil {
		t.Fatalf("LoadLibrary failed: %v", err)
	}
	if err := r.LoadLayout("design.def"); err != nil {
		t.Fatalf("LoadLayout failed: %v", err)
	}

	if _, err := r.RouteStage1("does_not_exist"); err == nil {
		t.Fatalf("expected error for unknown net name")
	}
}

func TestListIgnoredAndPriority(t *testing.T) {
	r, _ := newTestRouter(t)
	r.cfg.Ignore = []string{"scan_en"}
	r.cfg.Priority = []string{"clk"}

	if got := r.ListIgnored(); len(got) != 1 || got[0] != "scan_en" {
		t.Fatalf("ListIgnored = %v", got)
	}
	if got := r.ListPriority(); len(got) != 1 || got[0] != "clk" {
		t.Fatalf("ListPriority = %v", got)
	}
}
