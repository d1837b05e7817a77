package frontier

import "github.com/sarchlab/qrouter/grid"

// entry is one item in the priority queue: a cell and the accumulated
// cost it was enqueued with. Entries may go stale when a cell's cost is
// relaxed again before the earlier entry is popped; Frontier.Pop
// discards stale entries by comparing against the cell's current
// recorded cost.
type entry struct {
	coord grid.Coord
	cost  int
	seq   int // insertion order, the deterministic tie-break
}

// pq is a binary min-heap ordered by (cost, seq), implementing the
// deterministic "lowest accumulated cost, ties by insertion order"
// expansion rule.
type pq []entry

func (q pq) Len() int { return len(q) }
func (q pq) Less(i, j int) bool {
	if q[i].cost != q[j].cost {
		return q[i].cost < q[j].cost
	}
	return q[i].seq < q[j].seq
}
func (q pq) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *pq) Push(x any) {
	*q = append(*q, x.(entry))
}

func (q *pq) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}
