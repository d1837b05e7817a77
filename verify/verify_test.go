package verify

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

func straightPath(y int) []grid.Coord {
	path := make([]grid.Coord, 0, 9)
	for x := 2; x <= 10; x++ {
		path = append(path, grid.Coord{X: x, Y: y, L: 0})
	}
	return path
}

func TestCheckOwnershipPassesOnCleanCommit(t *testing.T) {
	g := twoLayerGrid()
	nl := netlist.New()
	net := nl.AddNet("n1")

	if _, err := commit.Commit(g, nl, net.ID, straightPath(2), config.Normal, nil); err != nil {
		t.Fatalf("commit failed: %v", err)
	}

	if issues := CheckOwnership(g, nl, net); len(issues) != 0 {
		t.Fatalf("expected no ownership issues, got %+v", issues)
	}
}

func TestCheckOwnershipDetectsTamperedCell(t *testing.T) {
	g := twoLayerGrid()
	nl := netlist.New()
	net := nl.AddNet("n1")

	if _, err := commit.Commit(g, nl, net.ID, straightPath(2), config.Normal, nil); err != nil {
		t.Fatalf("commit failed: %v", err)
	}

	// Simulate a corruption of the grid's own bookkeeping independent of
	// the netlist's segment records, which CheckOwnership must catch.
	g.Lookup(grid.Coord{X: 5, Y: 2, L: 0}).Owner = grid.Empty

	issues := CheckOwnership(g, nl, net)
	if len(issues) == 0 {
		t.Fatalf("expected an ownership issue for the cleared cell")
	}
	for _, issue := range issues {
		if issue.Type != IssueOwnership {
			t.Fatalf("expected only OWNERSHIP issues, got %s", issue.Type)
		}
	}
}

func TestCheckViaStackHeightDetectsOverStack(t *testing.T) {
	layers := []grid.Layer{
		{Index: 0, Dir: grid.Horizontal, PitchX: 1, PitchY: 1},
		{Index: 1, Dir: grid.Vertical, PitchX: 1, PitchY: 1},
		{Index: 2, Dir: grid.Horizontal, PitchX: 1, PitchY: 1},
	}
	g := grid.New(layers, 0, 0, []int{8, 8, 8}, []int{8, 8, 8}, 1, nil)
	nl := netlist.New()
	net := nl.AddNet("n1")

	path := []grid.Coord{{X: 2, Y: 2, L: 0}, {X: 2, Y: 2, L: 1}, {X: 2, Y: 2, L: 2}}
	if _, err := commit.Commit(g, nl, net.ID, path, config.Normal, nil); err != nil {
		t.Fatalf("commit failed: %v", err)
	}

	issues := CheckViaStackHeight(g, nl, net)
	if len(issues) == 0 {
		t.Fatalf("expected a via-stack issue: max_stack is 1 but the path stacks 2 vias")
	}
	if issues[0].Type != IssueViaStack {
		t.Fatalf("expected VIA_STACK issue, got %s", issues[0].Type)
	}
}

func TestCheckConnectivityDetectsMissingTap(t *testing.T) {
	g := twoLayerGrid()
	nl := netlist.New()
	net := nl.AddNet("n1")

	node := nl.AddNode(net.ID, "a")
	node.Primary = []netlist.Tap{{Layer: 0, Cell: grid.Coord{X: 0, Y: 0, L: 0}, Class: netlist.Primary}}
	net.Nodes = append(net.Nodes, node.ID)

	if _, err := commit.Commit(g, nl, net.ID, straightPath(2), config.Normal, nil); err != nil {
		t.Fatalf("commit failed: %v", err)
	}

	issues := CheckConnectivity(nl, net)
	if len(issues) == 0 {
		t.Fatalf("expected a connectivity issue: node's tap is nowhere near the committed path")
	}
}

func TestCheckConnectivityDetectsDisjointRoutes(t *testing.T) {
	g := twoLayerGrid()
	nl := netlist.New()
	net := nl.AddNet("n1")

	if _, err := commit.Commit(g, nl, net.ID, straightPath(2), config.Normal, nil); err != nil {
		t.Fatalf("commit failed: %v", err)
	}
	if _, err := commit.Commit(g, nl, net.ID, straightPath(10), config.Normal, nil); err != nil {
		t.Fatalf("commit failed: %v", err)
	}

	issues := CheckConnectivity(nl, net)
	if len(issues) == 0 {
		t.Fatalf("expected a connectivity issue: the two committed routes never touch")
	}
	found := false
	for _, issue := range issues {
		if issue.Type == IssueConnectivity {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected at least one CONNECTIVITY issue, got %+v", issues)
	}
}
