package verify

import (
	"testing"

	"github.com/sarchlab/qrouter/frontier"
	"github.com/sarchlab/qrouter/grid"
	"github.com/sarchlab/qrouter/maze"
	"github.com/sarchlab/qrouter/netlist"
)

var testParams = maze.CostParams{Seg: 1, Via: 10, Jog: 2, Xover: 50, Block: 100, Conflict: 200}

// TestCheckCostAcceptsAnAccurateRecording verifies cost consistency:
// recomputing the cost of a maze.Search result through maze.PathCost
// matches the cost the search itself recorded.
func TestCheckCostAcceptsAnAccurateRecording(t *testing.T) {
	g := twoLayerGrid()
	nl := netlist.New()
	net := nl.AddNet("n1")
	taps := netlist.BuildTapIndex(nl)
	f := frontier.New(g)

	res, ok := maze.Search(g, f, taps, testParams, maze.Net{ID: net.ID, Kind: net.Kind},
		[]grid.Coord{{X: 2, Y: 2, L: 0}}, []grid.Coord{{X: 10, Y: 2, L: 0}},
		false, maze.Mask{Mode: maze.None}, netlist.BBox{}, 0)
	if !ok {
		t.Fatalf("expected the search to succeed on an empty grid")
	}

	if issues := CheckCost(g, taps, testParams, net.ID, false, res.Path, res.Cost); len(issues) != 0 {
		t.Fatalf("expected no cost issues, got %+v", issues)
	}
}

// TestCheckCostDetectsAMismatchedRecording verifies CheckCost flags a
// recorded cost that does not match the cost step_cost actually produces
// for the given path.
func TestCheckCostDetectsAMismatchedRecording(t *testing.T) {
	g := twoLayerGrid()
	nl := netlist.New()
	net := nl.AddNet("n1")
	taps := netlist.BuildTapIndex(nl)
	f := frontier.New(g)

	res, ok := maze.Search(g, f, taps, testParams, maze.Net{ID: net.ID, Kind: net.Kind},
		[]grid.Coord{{X: 2, Y: 2, L: 0}}, []grid.Coord{{X: 10, Y: 2, L: 0}},
		false, maze.Mask{Mode: maze.None}, netlist.BBox{}, 0)
	if !ok {
		t.Fatalf("expected the search to succeed on an empty grid")
	}

	issues := CheckCost(g, taps, testParams, net.ID, false, res.Path, res.Cost+1)
	if len(issues) == 0 {
		t.Fatalf("expected a cost mismatch issue")
	}
	if issues[0].Type != IssueCost {
		t.Fatalf("expected COST issue, got %s", issues[0].Type)
	}
}
