package verify

import (
	"fmt"

	"github.com/sarchlab/qrouter/grid"
	"github.com/sarchlab/qrouter/netlist"
)

// RunLint runs every static structural check over the current grid/netlist
// state: ownership, stacked-via height, and route
// connectivity. It never mutates either argument.
func RunLint(g *grid.Grid, nl *netlist.Netlist) []Issue {
	var issues []Issue
	for _, n := range nl.Nets() {
		issues = append(issues, CheckOwnership(g, nl, n)...)
		issues = append(issues, CheckViaStackHeight(g, nl, n)...)
		issues = append(issues, CheckConnectivity(nl, n)...)
	}
	return issues
}

// segmentCoverage returns every grid cell a segment occupies, including
// both layers a via joins — the same pair commit.Commit itself writes
// ownership to. Reconstructed here since commit's own coverage helper is
// unexported.
func segmentCoverage(seg netlist.Segment) []grid.Coord {
	if seg.Kind == netlist.ViaSegment {
		lower := seg.From
		upper := grid.Coord{X: lower.X, Y: lower.Y, L: lower.L + 1}
		return []grid.Coord{lower, upper}
	}
	return seg.Cells()
}

// CheckOwnership verifies that every cell a committed segment of net
// covers is owned by that net and carries the routed-by-this-net bit.
func CheckOwnership(g *grid.Grid, nl *netlist.Netlist, net *netlist.Net) []Issue {
	var issues []Issue
	for _, rid := range net.Routes {
		route := nl.Route(rid)
		for _, sid := range route.Segments {
			seg := nl.Segment(sid)
			for _, c := range segmentCoverage(seg) {
				if !g.InBounds(c) {
					cc := c
					issues = append(issues, newIssue(IssueOwnership, net.Name,
						fmt.Sprintf("segment cell %+v is out of bounds", c), &cc))
					continue
				}
				cell := g.Lookup(c)
				if !cell.Owner.IsNet(net.ID) {
					cc := c
					issues = append(issues, newIssue(IssueOwnership, net.Name,
						fmt.Sprintf("cell %+v owned by kind=%d, want net %d", c, cell.Owner.Kind, net.ID), &cc))
					continue
				}
				if !cell.RoutedByNet {
					cc := c
					issues = append(issues, newIssue(IssueOwnership, net.Name,
						fmt.Sprintf("cell %+v owned by net but missing routed-by-this-net bit", c), &cc))
				}
			}
		}
	}
	return issues
}

// CheckViaStackHeight verifies: no contiguous vertical chain of vias
// at a single (x, y) exceeds g.MaxStack, checked from every via's own
// layer upward.
func CheckViaStackHeight(g *grid.Grid, nl *netlist.Netlist, net *netlist.Net) []Issue {
	var issues []Issue
	seen := map[grid.Coord]bool{}
	for _, rid := range net.Routes {
		route := nl.Route(rid)
		for _, sid := range route.Segments {
			seg := nl.Segment(sid)
			if seg.Kind != netlist.ViaSegment {
				continue
			}
			if seen[seg.From] {
				continue
			}
			seen[seg.From] = true
			height := g.StackHeight(seg.From.X, seg.From.Y, seg.Layer, net.ID)
			if height > g.MaxStack {
				c := seg.From
				issues = append(issues, newIssue(IssueViaStack, net.Name,
					fmt.Sprintf("via stack at (%d,%d) from layer %d is %d cells tall, max_stack is %d",
						c.X, c.Y, seg.Layer, height, g.MaxStack), &c))
			}
		}
	}
	return issues
}

// coordUnionFind is a disjoint-set over grid coordinates, used to check
// that a net's committed cells form one connected component.
type coordUnionFind struct {
	parent map[grid.Coord]grid.Coord
}

func newCoordUnionFind() *coordUnionFind {
	return &coordUnionFind{parent: map[grid.Coord]grid.Coord{}}
}

func (u *coordUnionFind) find(c grid.Coord) grid.Coord {
	p, ok := u.parent[c]
	if !ok {
		u.parent[c] = c
		return c
	}
	if p == c {
		return c
	}
	root := u.find(p)
	u.parent[c] = root
	return root
}

func (u *coordUnionFind) union(a, b grid.Coord) {
	ra, rb := u.find(a), u.find(b)
	if ra != rb {
		u.parent[ra] = rb
	}
}

// CheckConnectivity verifies: the committed segment list of net is a
// connected graph, and every node of the net has at least one tap among
// the cells that graph covers.
func CheckConnectivity(nl *netlist.Netlist, net *netlist.Net) []Issue {
	if len(net.Routes) == 0 {
		return nil
	}

	u := newCoordUnionFind()
	covered := map[grid.Coord]bool{}
	for _, rid := range net.Routes {
		route := nl.Route(rid)
		for _, sid := range route.Segments {
			seg := nl.Segment(sid)
			cells := segmentCoverage(seg)
			for _, c := range cells {
				covered[c] = true
			}
			for i := 0; i+1 < len(cells); i++ {
				u.union(cells[i], cells[i+1])
			}
		}
	}

	var issues []Issue

	roots := map[grid.Coord]bool{}
	for c := range covered {
		roots[u.find(c)] = true
	}
	if len(roots) > 1 {
		issues = append(issues, newIssue(IssueConnectivity, net.Name,
			fmt.Sprintf("committed segments form %d disjoint components, want 1", len(roots)), nil))
	}

	for _, nid := range net.Nodes {
		node := nl.Node(nid)
		if !node.Reachable() {
			continue
		}
		found := false
		for _, tap := range node.Taps() {
			if covered[tap.Cell] {
				found = true
				break
			}
		}
		if !found {
			issues = append(issues, newIssue(IssueConnectivity, net.Name,
				fmt.Sprintf("node %q has no tap among the net's committed cells", node.Name), nil))
		}
	}

	return issues
}
