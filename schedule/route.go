package schedule

import (
	"github.com/sarchlab/qrouter/commit"
	"github.com/sarchlab/qrouter/grid"
	"github.com/sarchlab/qrouter/maze"
	"github.com/sarchlab/qrouter/netlist"
)

// route runs one net's maze search(es) and commits the result, implementing
// both Stage 1 (conflictMode false) and Stage 2 (true). A
// multi-pin net is routed node-to-node: after the first connection, every
// cell of what has been committed so far joins the source set, so later
// legs may branch off the net's own existing wire rather than re-deriving a
// Steiner tree from scratch. On any failure, every sub-route already
// committed for this attempt is rolled back so a failing net never leaves
// partial ownership behind.
//
// It returns whether the net routed, and — in conflict mode — the distinct
// foreign nets whose cells the path traversed, already ripped up and each
// given this net on its no-ripup list per Stage 2 step 4.
func (s *Scheduler) route(net *netlist.Net, conflictMode bool) (bool, []grid.NetID) {
	if len(net.Nodes) < 2 {
		if len(net.Nodes) == 1 && net.Kind != netlist.Signal {
			return s.routeRailPin(net, conflictMode)
		}
		return true, nil
	}
	for _, nid := range net.Nodes {
		if !s.nl.Node(nid).Reachable() {
			s.log.Warn("net has an unreachable node, reporting as failing", "net", net.Name, "node", nid)
			return false, nil
		}
	}

	sourceCells := tapCells(s.nl.Node(net.Nodes[0]).Taps())
	var committed []netlist.RouteID
	var ripped []grid.NetID
	rippedSet := map[grid.NetID]bool{}

	for i := 1; i < len(net.Nodes); i++ {
		targetCells := tapCells(s.nl.Node(net.Nodes[i]).Taps())
		mazeNet := maze.Net{ID: net.ID, Kind: net.Kind, NoRipup: net.NoRipup}

		res, ok := maze.Search(s.g, s.f, s.taps, s.Params, mazeNet, sourceCells, targetCells,
			conflictMode, s.Mask, net.BBox, s.failures[net.ID])
		if !ok {
			s.rollback(committed, net.ID)
			return false, nil
		}

		path, relieved := maze.ReliefStackedVias(s.g, res.Path, net.ID, net.Kind, s.MaxStack, conflictMode, net.NoRipup)
		if !relieved {
			if !conflictMode {
				s.log.Warn("stacked-via relief failed, routing failure", "net", net.Name)
				s.rollback(committed, net.ID)
				return false, nil
			}
			path = res.Path // stage 2 permits the over-height stack
		}

		// A conflict-mode path may cross cells a foreign net still owns.
		// Those nets must be ripped up before this leg is committed, not
		// after every leg is: commit.Commit refuses to overwrite any cell
		// it does not already own, foreign or not.
		if conflictMode {
			for _, fid := range foreignNetsOn(s.g, path, net.ID) {
				if rippedSet[fid] {
					continue
				}
				rippedSet[fid] = true
				ripped = append(ripped, fid)
				foreign := s.nl.Net(fid)
				for _, rid := range append([]netlist.RouteID(nil), foreign.Routes...) {
					commit.RipUp(s.g, s.nl, fid, rid)
				}
			}
		}

		routeID, err := commit.Commit(s.g, s.nl, net.ID, path, s.ViaPattern, s.log)
		if err != nil {
			s.log.Error("commit failed", "net", net.Name, "error", err)
			s.rollback(committed, net.ID)
			return false, nil
		}
		committed = append(committed, routeID)
		sourceCells = append(sourceCells, path...)
	}

	for _, fid := range ripped {
		s.nl.Net(fid).MarkNoRipup(net.ID)
	}

	return true, ripped
}

// routeRailPin connects a single-pin power/ground net's lone node to its
// rail: it seeds the search from the pin's taps with no explicit target
// set, relying on Search's own-rail termination rule to stop at the
// nearest cell already on that rail.
func (s *Scheduler) routeRailPin(net *netlist.Net, conflictMode bool) (bool, []grid.NetID) {
	sourceCells := tapCells(s.nl.Node(net.Nodes[0]).Taps())
	mazeNet := maze.Net{ID: net.ID, Kind: net.Kind, NoRipup: net.NoRipup}

	res, ok := maze.Search(s.g, s.f, s.taps, s.Params, mazeNet, sourceCells, nil,
		conflictMode, s.Mask, net.BBox, s.failures[net.ID])
	if !ok {
		return false, nil
	}

	path, relieved := maze.ReliefStackedVias(s.g, res.Path, net.ID, net.Kind, s.MaxStack, conflictMode, net.NoRipup)
	if !relieved {
		if !conflictMode {
			return false, nil
		}
		path = res.Path
	}

	var ripped []grid.NetID
	if conflictMode {
		for _, fid := range foreignNetsOn(s.g, path, net.ID) {
			ripped = append(ripped, fid)
			foreign := s.nl.Net(fid)
			for _, rid := range append([]netlist.RouteID(nil), foreign.Routes...) {
				commit.RipUp(s.g, s.nl, fid, rid)
			}
		}
	}

	if _, err := commit.Commit(s.g, s.nl, net.ID, path, s.ViaPattern, s.log); err != nil {
		s.log.Error("commit failed", "net", net.Name, "error", err)
		return false, nil
	}
	for _, fid := range ripped {
		s.nl.Net(fid).MarkNoRipup(net.ID)
	}
	return true, ripped
}

func (s *Scheduler) rollback(routes []netlist.RouteID, net grid.NetID) {
	for _, rid := range routes {
		commit.RipUp(s.g, s.nl, net, rid)
	}
}

func tapCells(taps []netlist.Tap) []grid.Coord {
	cells := make([]grid.Coord, len(taps))
	for i, t := range taps {
		cells[i] = t.Cell
	}
	return cells
}

// foreignNetsOn returns the distinct nets, other than net, whose cells
// path traverses, in first-encountered order.
func foreignNetsOn(g *grid.Grid, path []grid.Coord, net grid.NetID) []grid.NetID {
	seen := map[grid.NetID]bool{}
	var out []grid.NetID
	for _, c := range path {
		owner := g.Lookup(c).Owner
		if owner.ForeignTo(net) && !seen[owner.Net] {
			seen[owner.Net] = true
			out = append(out, owner.Net)
		}
	}
	return out
}
