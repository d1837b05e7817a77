package frontier

import (
	"container/heap"

	"github.com/sarchlab/qrouter/grid"
)

// Frontier holds the search state for one net's maze expansion: a dense
// array parallel to the grid's occupancy map, plus the priority queue of
// cells pending expansion.
type Frontier struct {
	g     *grid.Grid
	state [][]CellState // state[L] parallel to the grid's own cell arrays

	queue   pq
	seq     int
	touched []grid.Coord // cells touched since the last Reset, for O(touched) clearing
}

// New allocates a frontier sized to g. It is allocated once per routing
// session and Reset between nets.
func New(g *grid.Grid) *Frontier {
	f := &Frontier{g: g}
	f.state = make([][]CellState, len(g.Layers))
	for l := range g.Layers {
		n := g.NX(l) * g.NY(l)
		states := make([]CellState, n)
		for i := range states {
			states[i] = unseenState()
		}
		f.state[l] = states
	}
	return f
}

func (f *Frontier) index(c grid.Coord) int {
	return c.Y*f.g.NX(c.L) + c.X
}

func (f *Frontier) at(c grid.Coord) *CellState {
	return &f.state[c.L][f.index(c)]
}

// State returns a copy of c's current search state.
func (f *Frontier) State(c grid.Coord) CellState {
	return *f.at(c)
}

// touch records that c's state has been modified from "unseen", so Reset
// can restore exactly the cells this net's search disturbed.
func (f *Frontier) touch(c grid.Coord) {
	s := f.at(c)
	if s.Cost == unseenCost && s.Role == 0 {
		f.touched = append(f.touched, c)
	}
}

// Reset clears every cell this net's search touched back to "unseen",
// and empties the queue — called once per net.
func (f *Frontier) Reset() {
	for _, c := range f.touched {
		*f.at(c) = unseenState()
	}
	f.touched = f.touched[:0]
	f.queue = f.queue[:0]
	f.seq = 0
}

// Seed marks c as a SOURCE cell reachable at zero cost and pushes it onto
// the queue — deterministic seeding of every source tap.
func (f *Frontier) Seed(c grid.Coord) {
	f.touch(c)
	s := f.at(c)
	s.Role |= Source | Cost
	s.Cost = 0
	f.push(c, 0)
}

// MarkTarget marks c as a TARGET cell without pushing it — termination
// checks Role, not queue membership.
func (f *Frontier) MarkTarget(c grid.Coord) {
	f.touch(c)
	f.at(c).Role |= Target
}

// MarkConflict records that a cell was relaxed past an existing route of
// another net, in stage-2 conflict mode.
func (f *Frontier) MarkConflict(c grid.Coord) {
	f.touch(c)
	f.at(c).Role |= Conflict
}

func (f *Frontier) push(c grid.Coord, cost int) {
	heap.Push(&f.queue, entry{coord: c, cost: cost, seq: f.seq})
	f.seq++
}

// Relax updates to's accumulated cost if newCost improves on what is
// recorded, setting its predecessor direction and re-enqueuing it with
// PROCESSED cleared. Returns whether the
// relaxation improved the cost.
func (f *Frontier) Relax(to grid.Coord, pred grid.Direction, newCost int) bool {
	f.touch(to)
	s := f.at(to)
	if newCost >= s.Cost {
		return false
	}
	s.Cost = newCost
	s.HasPred = true
	s.Pred = pred
	s.Role |= Cost
	s.Role &^= Processed
	f.push(to, newCost)
	return true
}

// Pop removes and returns the lowest-cost, earliest-inserted cell still
// pending, skipping stale queue entries left behind by a later Relax.
// Returns false once the queue is empty.
func (f *Frontier) Pop() (grid.Coord, bool) {
	for len(f.queue) > 0 {
		e := heap.Pop(&f.queue).(entry)
		s := f.at(e.coord)
		if s.Role.Has(Processed) || e.cost != s.Cost {
			continue // stale: a cheaper relaxation already superseded this entry
		}
		s.Role |= Processed
		return e.coord, true
	}
	return grid.Coord{}, false
}

// Path walks predecessor pointers from target back to a SOURCE cell,
// producing an ordered list from source to target.
func (f *Frontier) Path(target grid.Coord) []grid.Coord {
	var reversed []grid.Coord
	c := target
	for {
		reversed = append(reversed, c)
		s := f.at(c)
		if s.Role.Has(Source) || !s.HasPred {
			break
		}
		c = c.Neighbor(s.Pred.Opposite())
	}

	path := make([]grid.Coord, len(reversed))
	for i, c := range reversed {
		path[len(reversed)-1-i] = c
	}
	return path
}
