package netlist

// Node is a single electrical connection point of a net on a placed
// instance or a design-level I/O pin.
type Node struct {
	ID  NodeID
	Net NetID

	Name string // instance pin name, or I/O pin name for a top-level node

	Primary  []Tap
	Extended []Tap
}

// Reachable reports whether the node has at least one tap of any class —
// an unreachable node is marked so its net is still attempted but
// reported as failing.
func (n *Node) Reachable() bool {
	return len(n.Primary) > 0 || len(n.Extended) > 0
}

// Taps returns every tap of the node, primary first, in the deterministic
// order they were resolved — the order search-frontier seeding pushes
// them in.
func (n *Node) Taps() []Tap {
	all := make([]Tap, 0, len(n.Primary)+len(n.Extended))
	all = append(all, n.Primary...)
	all = append(all, n.Extended...)
	return all
}
