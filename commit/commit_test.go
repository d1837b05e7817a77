package commit_test

import (
	"testing"

	"github.com/sarchlab/qrouter/commit"
	"github.com/sarchlab/qrouter/config"
	"github.com/sarchlab/qrouter/grid"
	"github.com/sarchlab/qrouter/netlist"
)

func twoLayerGrid() *grid.Grid {
	layers := []grid.Layer{
		{Index: 0, Dir: grid.Horizontal, PitchX: 1, PitchY: 1},
		{Index: 1, Dir: grid.Vertical, PitchX: 1, PitchY: 1},
	}
	return grid.New(layers, 0, 0, []int{16, 16}, []int{16, 16}, 2, nil)
}

func straightPath() []grid.Coord {
	path := make([]grid.Coord, 0, 9)
	for x := 2; x <= 10; x++ {
		path = append(path, grid.Coord{X: x, Y: 2, L: 0})
	}
	return path
}

func TestCommitStraightWireOwnsEveryCell(t *testing.T) {
	g := twoLayerGrid()
	nl := netlist.New()
	net := nl.AddNet("n1")

	routeID, err := commit.Commit(g, nl, net.ID, straightPath(), config.Normal, nil)
	if err != nil {
		t.Fatalf("commit failed: %v", err)
	}

	route := nl.Route(routeID)
	if len(route.Segments) != 1 {
		t.Fatalf("expected a single coalesced wire segment, got %d", len(route.Segments))
	}

	for x := 2; x <= 10; x++ {
		cell := g.Lookup(grid.Coord{X: x, Y: 2, L: 0})
		if !cell.Owner.IsNet(net.ID) || !cell.RoutedByNet {
			t.Fatalf("cell (%d,2,0) not owned by the committed net: %+v", x, cell)
		}
	}
}

func TestCommitJogEmitsThreeSegments(t *testing.T) {
	g := twoLayerGrid()
	nl := netlist.New()
	net := nl.AddNet("n1")

	path := []grid.Coord{
		{X: 2, Y: 2, L: 0}, {X: 3, Y: 2, L: 0}, {X: 4, Y: 2, L: 0}, {X: 5, Y: 2, L: 0},
		{X: 5, Y: 3, L: 0}, {X: 5, Y: 4, L: 0},
		{X: 6, Y: 4, L: 0}, {X: 7, Y: 4, L: 0},
	}

	routeID, err := commit.Commit(g, nl, net.ID, path, config.Normal, nil)
	if err != nil {
		t.Fatalf("commit failed: %v", err)
	}
	route := nl.Route(routeID)
	if len(route.Segments) != 3 {
		t.Fatalf("expected 3 segments for a single jog, got %d", len(route.Segments))
	}
}

func TestCommitViaOwnsBothLayers(t *testing.T) {
	g := twoLayerGrid()
	nl := netlist.New()
	net := nl.AddNet("n1")

	path := []grid.Coord{{X: 4, Y: 4, L: 0}, {X: 4, Y: 4, L: 1}, {X: 4, Y: 8, L: 1}}
	if _, err := commit.Commit(g, nl, net.ID, path, config.Normal, nil); err != nil {
		t.Fatalf("commit failed: %v", err)
	}

	lower := g.Lookup(grid.Coord{X: 4, Y: 4, L: 0})
	upper := g.Lookup(grid.Coord{X: 4, Y: 4, L: 1})
	if !lower.Owner.IsNet(net.ID) || !lower.ViaUp {
		t.Fatalf("lower via cell not owned with ViaUp set: %+v", lower)
	}
	if !upper.Owner.IsNet(net.ID) || upper.ViaUp {
		t.Fatalf("upper via cell should be owned without ViaUp: %+v", upper)
	}
}

func TestCommitRefusesToOverwriteForeignCell(t *testing.T) {
	g := twoLayerGrid()
	nl := netlist.New()
	a := nl.AddNet("a")
	b := nl.AddNet("b")

	if _, err := commit.Commit(g, nl, a.ID, straightPath(), config.Normal, nil); err != nil {
		t.Fatalf("commit a failed: %v", err)
	}
	if _, err := commit.Commit(g, nl, b.ID, straightPath(), config.Normal, nil); err == nil {
		t.Fatalf("expected committing over an already-owned cell to fail")
	}
}

func TestRipUpRestoresCellsAndDetachesRoute(t *testing.T) {
	g := twoLayerGrid()
	nl := netlist.New()
	net := nl.AddNet("n1")

	routeID, err := commit.Commit(g, nl, net.ID, straightPath(), config.Normal, nil)
	if err != nil {
		t.Fatalf("commit failed: %v", err)
	}

	commit.RipUp(g, nl, net.ID, routeID)

	for x := 2; x <= 10; x++ {
		cell := g.Lookup(grid.Coord{X: x, Y: 2, L: 0})
		if cell.Owner.Kind != grid.KindEmpty {
			t.Fatalf("cell (%d,2,0) not restored to empty: %+v", x, cell)
		}
	}
	if len(nl.Net(net.ID).Routes) != 0 {
		t.Fatalf("expected the route to be detached from the net after rip-up")
	}
}
