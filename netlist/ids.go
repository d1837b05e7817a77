// Package netlist holds the nets, nodes, pin taps, and committed routes
// of a placed design, and the node/port resolution operation that turns
// pin geometry into grid-cell taps.
//
// Nets, nodes, segments, and taps are arena-allocated slices indexed by
// typed integer identifiers rather than doubly-linked lists.
package netlist

import "github.com/sarchlab/qrouter/grid"

// NodeID indexes a Node in a Netlist's arena.
type NodeID int32

// SegmentID indexes a Segment in a Netlist's arena.
type SegmentID int32

// RouteID indexes a Route in a Netlist's arena.
type RouteID int32

// NetID re-exports grid.NetID: nets are identified the same way the grid
// identifies their ownership of cells.
type NetID = grid.NetID
