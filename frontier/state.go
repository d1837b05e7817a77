// Package frontier implements the search-state grid used by one net's
// maze expansion: a dense array parallel to the occupancy map holding
// visit flags, accumulated cost, and predecessor direction.
package frontier

import "github.com/sarchlab/qrouter/grid"

// Role packs the five boolean search-state flags into one word.
type Role uint8

const (
	// Source marks a cell reachable at zero cost — a net's source taps.
	Source Role = 1 << iota
	// Target marks a desired endpoint.
	Target
	// Cost marks that the cell is currently in, or was ever on, the
	// frontier (the COST role flag; distinct from CellState's Cost field).
	Cost
	// Processed marks a cell already popped and expanded.
	Processed
	// Conflict marks a cell relaxed past an existing route of another
	// net, in stage-2 conflict mode.
	Conflict
)

// Has reports whether every bit in want is set in r.
func (r Role) Has(want Role) bool {
	return r&want == want
}

// unseenCost is the sentinel accumulated cost of a cell never reached by
// the current expansion.
const unseenCost = int(^uint(0) >> 1) // math.MaxInt, without importing math for one constant

// CellState is one frontier cell's search state.
type CellState struct {
	Role    Role
	Cost    int
	HasPred bool
	Pred    grid.Direction // direction FROM the predecessor TO this cell
}

func unseenState() CellState {
	return CellState{Cost: unseenCost}
}
