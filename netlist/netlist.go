package netlist

import "github.com/sarchlab/qrouter/grid"

// Netlist is the arena-allocated store of every Net, Node, Segment, and
// Route in the design. Nets are never deleted
// (rip-up clears a net's Routes, not the Net itself), so NetID remains
// stable for the life of a routing session.
type Netlist struct {
	nets  []Net
	nodes []Node

	segments []Segment
	routes   []Route
}

// New returns an empty Netlist.
func New() *Netlist {
	return &Netlist{}
}

// AddNet allocates a new net with the given name, defaulting to a signal
// net.
func (nl *Netlist) AddNet(name string) *Net {
	id := NetID(len(nl.nets))
	nl.nets = append(nl.nets, Net{ID: id, Name: name, Kind: Signal})
	return &nl.nets[id]
}

// Net returns a mutable pointer to the net with the given id.
func (nl *Netlist) Net(id NetID) *Net {
	return &nl.nets[id]
}

// Nets returns every net in allocation order.
func (nl *Netlist) Nets() []*Net {
	out := make([]*Net, len(nl.nets))
	for i := range nl.nets {
		out[i] = &nl.nets[i]
	}
	return out
}

// NetByName looks up a net by name, for command-surface operations
// addressed by net name rather than NetID.
func (nl *Netlist) NetByName(name string) (*Net, bool) {
	for i := range nl.nets {
		if nl.nets[i].Name == name {
			return &nl.nets[i], true
		}
	}
	return nil, false
}

// AddNode allocates a new node on net and appends it to the net's node
// list.
func (nl *Netlist) AddNode(net NetID, name string) *Node {
	id := NodeID(len(nl.nodes))
	nl.nodes = append(nl.nodes, Node{ID: id, Net: net, Name: name})
	nl.nets[net].Nodes = append(nl.nets[net].Nodes, id)
	return &nl.nodes[id]
}

// Node returns a mutable pointer to the node with the given id.
func (nl *Netlist) Node(id NodeID) *Node {
	return &nl.nodes[id]
}

// AddSegment allocates a new segment.
func (nl *Netlist) AddSegment(s Segment) SegmentID {
	id := SegmentID(len(nl.segments))
	s.ID = id
	nl.segments = append(nl.segments, s)
	return id
}

// Segment returns a copy of the segment with the given id.
func (nl *Netlist) Segment(id SegmentID) Segment {
	return nl.segments[id]
}

// AddRoute allocates a new route, ordered list of segment ids plus the
// blockage cells its commit marked on the grid, and attaches it to its net.
func (nl *Netlist) AddRoute(net NetID, segments []SegmentID, blocked []grid.Coord) RouteID {
	id := RouteID(len(nl.routes))
	nl.routes = append(nl.routes, Route{ID: id, Net: net, Segments: segments, BlockedCells: blocked})
	nl.nets[net].Routes = append(nl.nets[net].Routes, id)
	return id
}

// Route returns a copy of the route with the given id.
func (nl *Netlist) Route(id RouteID) Route {
	return nl.routes[id]
}

// RemoveRoute detaches a route from its net's route list; the Route and
// Segment records themselves stay in the arena (their indices are never
// reused) — rip-up releases the grid's ownership
// of the cells separately, via grid.RestoreCell and grid.ReleaseBlockage.
func (nl *Netlist) RemoveRoute(net NetID, route RouteID) {
	n := &nl.nets[net]
	for i, r := range n.Routes {
		if r == route {
			n.Routes = append(n.Routes[:i], n.Routes[i+1:]...)
			return
		}
	}
}
