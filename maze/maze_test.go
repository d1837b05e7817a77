package maze_test

import (
	"testing"

	"github.com/sarchlab/qrouter/frontier"
	"github.com/sarchlab/qrouter/grid"
	"github.com/sarchlab/qrouter/maze"
	"github.com/sarchlab/qrouter/netlist"
)

var params = maze.CostParams{Seg: 1, Via: 10, Jog: 5, Xover: 50, Block: 100, Conflict: 200}

func oneLayerGrid() *grid.Grid {
	layers := []grid.Layer{{Index: 0, Dir: grid.Horizontal, PitchX: 1, PitchY: 1}}
	return grid.New(layers, 0, 0, []int{16}, []int{16}, 1, nil)
}

func twoLayerGrid() *grid.Grid {
	layers := []grid.Layer{
		{Index: 0, Dir: grid.Horizontal, PitchX: 1, PitchY: 1},
		{Index: 1, Dir: grid.Vertical, PitchX: 1, PitchY: 1},
	}
	return grid.New(layers, 0, 0, []int{16, 16}, []int{16, 16}, 1, nil)
}

func search(t *testing.T, g *grid.Grid, from, to grid.Coord) maze.Result {
	t.Helper()
	f := frontier.New(g)
	taps := netlist.BuildTapIndex(netlist.New())
	net := maze.Net{ID: 0}
	res, ok := maze.Search(g, f, taps, params, net, []grid.Coord{from}, []grid.Coord{to},
		false, maze.Mask{Mode: maze.None}, netlist.BBox{}, 0)
	if !ok {
		t.Fatalf("search from %+v to %+v failed to find a path", from, to)
	}
	return res
}

// A two-pin net on an empty grid routes a single
// straight wire at cost 8*SEG.
func TestTwoPinNetStraightWire(t *testing.T) {
	g := oneLayerGrid()
	from := grid.Coord{X: 2, Y: 2, L: 0}
	to := grid.Coord{X: 10, Y: 2, L: 0}

	res := search(t, g, from, to)
	if want := 8 * params.Seg; res.Cost != want {
		t.Fatalf("cost = %d, want %d", res.Cost, want)
	}
	if len(res.Path) != 9 {
		t.Fatalf("path length = %d, want 9 (straight run)", len(res.Path))
	}
}

// A jog-requiring net on a single horizontal-preferred layer
// costs 8*SEG + 3*JOG.
func TestJogRequiringNet(t *testing.T) {
	g := oneLayerGrid()
	from := grid.Coord{X: 2, Y: 2, L: 0}
	to := grid.Coord{X: 10, Y: 5, L: 0}

	res := search(t, g, from, to)
	want := 8*params.Seg + 3*params.Jog
	if res.Cost != want {
		t.Fatalf("cost = %d, want %d", res.Cost, want)
	}
}

// A via-requiring net between two horizontal-preferred-layer
// pins, with a vertical-preferred layer above, costs 2*VIA + 8*SEG.
func TestViaRequiringNet(t *testing.T) {
	g := twoLayerGrid()
	from := grid.Coord{X: 2, Y: 2, L: 0}
	to := grid.Coord{X: 2, Y: 10, L: 0}

	res := search(t, g, from, to)
	want := 2*params.Via + 8*params.Seg
	if res.Cost != want {
		t.Fatalf("cost = %d, want %d", res.Cost, want)
	}
}

func TestSearchFailsWhenNoTargetReachable(t *testing.T) {
	g := oneLayerGrid()
	f := frontier.New(g)
	taps := netlist.BuildTapIndex(netlist.New())
	net := maze.Net{ID: 0}

	// Obstruct the whole x=1 column so no planar path can pass it.
	for y := 0; y < g.NY(0); y++ {
		g.Lookup(grid.Coord{X: 1, Y: y, L: 0}).Owner = grid.Obstructed
	}

	_, ok := maze.Search(g, f, taps, params, net,
		[]grid.Coord{{X: 0, Y: 0, L: 0}}, []grid.Coord{{X: 5, Y: 0, L: 0}},
		false, maze.Mask{Mode: maze.None}, netlist.BBox{}, 0)
	if ok {
		t.Fatalf("expected search to fail when the target column is fully obstructed")
	}
}
