package netlist

import "github.com/sarchlab/qrouter/grid"

// TapEntry records which node owns a tap at some grid cell, for the maze
// engine's XOVER/BLOCK cost lookup.
type TapEntry struct {
	Net  NetID
	Node NodeID
}

// TapIndex maps grid cells to the node whose pin tap covers them. Built
// once after every node's taps are resolved, and consulted read-only
// during maze search (it answers "does this cell belong to someone
// else's unrouted pin, and how fragile is that pin's access").
type TapIndex struct {
	nl      *Netlist
	byCell  map[grid.Coord]TapEntry
}

// BuildTapIndex indexes every primary and extended tap of every node in
// nl. Later nodes win ties for a shared cell; in practice taps of
// distinct ports rarely coincide, and when they do any deterministic
// choice is acceptable since the XOVER/BLOCK cost is a heuristic, not an
// invariant.
func BuildTapIndex(nl *Netlist) *TapIndex {
	idx := &TapIndex{nl: nl, byCell: map[grid.Coord]TapEntry{}}
	for i := range nl.nodes {
		node := &nl.nodes[i]
		entry := TapEntry{Net: node.Net, Node: node.ID}
		for _, t := range node.Primary {
			idx.byCell[t.Cell] = entry
		}
		for _, t := range node.Extended {
			idx.byCell[t.Cell] = entry
		}
	}
	return idx
}

// Lookup returns the tap entry at c, if any.
func (t *TapIndex) Lookup(c grid.Coord) (TapEntry, bool) {
	e, ok := t.byCell[c]
	return e, ok
}

// AccessCounts returns how many primary and extended taps the node owning
// entry has in total, used to pick between XOVER/BLOCK/10xBLOCK.
func (t *TapIndex) AccessCounts(e TapEntry) (primary, extended int) {
	node := t.nl.Node(e.Node)
	return len(node.Primary), len(node.Extended)
}
