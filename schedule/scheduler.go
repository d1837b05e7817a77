// Package schedule implements the two-stage scheduler: net ordering, the
// conflict-free first pass, and the rip-up-and-reroute second pass.
package schedule

import (
	"log/slog"

	"github.com/sarchlab/qrouter/config"
	"github.com/sarchlab/qrouter/frontier"
	"github.com/sarchlab/qrouter/grid"
	"github.com/sarchlab/qrouter/maze"
	"github.com/sarchlab/qrouter/netlist"
)

// Scheduler holds the state shared across every net's routing attempt: the
// grid and netlist being routed, a reusable search frontier and tap index,
// the configured cost weights and limits, and per-net failure counts that
// feed the auto mask margin.
type Scheduler struct {
	g  *grid.Grid
	nl *netlist.Netlist
	f  *frontier.Frontier

	taps *netlist.TapIndex

	Params     maze.CostParams
	MaxStack   int
	Mask       maze.Mask
	ViaPattern config.ViaPattern

	// MaxPasses bounds stage 2's rip-up-and-reroute loop.
	MaxPasses int

	// ShouldStop is checked once per net, at stage-2 pass boundaries — the
	// cancellation/timeout hook: there is no cancellation point inside the
	// maze expansion itself, so between nets the scheduler checks a
	// cancellation token instead. A nil value never stops.
	ShouldStop func() bool

	log      *slog.Logger
	failures map[grid.NetID]int
}

// New builds a Scheduler over an already-populated grid and netlist (every
// node's taps resolved). It allocates the reusable frontier and tap index
// once, per Allocation.
func New(g *grid.Grid, nl *netlist.Netlist, params maze.CostParams, maxStack, maxPasses int, mask maze.Mask, viaPattern config.ViaPattern, log *slog.Logger) *Scheduler {
	if log == nil {
		log = slog.Default()
	}
	if viaPattern == "" {
		viaPattern = config.Normal
	}
	return &Scheduler{
		g:          g,
		nl:         nl,
		f:          frontier.New(g),
		taps:       netlist.BuildTapIndex(nl),
		Params:     params,
		MaxStack:   maxStack,
		MaxPasses:  maxPasses,
		Mask:       mask,
		ViaPattern: viaPattern,
		log:        log,
		failures:   map[grid.NetID]int{},
	}
}

// Stage1 runs the conflict-free pass over every routable net in priority
// order and returns the nets it could not route, in the order they failed.
func (s *Scheduler) Stage1() []grid.NetID {
	var failed []grid.NetID
	for _, net := range orderNets(routableNets(s.nl.Nets())) {
		if ok, _ := s.route(net, false); !ok {
			failed = append(failed, net.ID)
			s.failures[net.ID]++
		}
	}
	return failed
}

// Stage2 drains the rip-up-and-reroute queue, seeded with failedNets, until
// it is empty, the configured pass cap is reached, or ShouldStop reports
// true at a net boundary. It returns the count of nets still failing when
// it stops.
func (s *Scheduler) Stage2(failedNets []grid.NetID) int {
	queue := append([]grid.NetID(nil), failedNets...)
	passes := 0

	for len(queue) > 0 && passes < s.MaxPasses {
		if s.ShouldStop != nil && s.ShouldStop() {
			break
		}
		passes++

		id := queue[0]
		queue = queue[1:]
		net := s.nl.Net(id)

		ok, ripped := s.route(net, true)
		if !ok {
			queue = append(queue, id)
			s.failures[id]++
			continue
		}
		for _, r := range ripped {
			queue = append(queue, r)
			s.failures[r]++
		}
	}
	return len(queue)
}

// RouteAll runs stage 1 followed by stage 2 and returns the final count of
// still-failing nets, the scheduler's overall exit status.
func (s *Scheduler) RouteAll() int {
	return s.Stage2(s.Stage1())
}

// RouteOne runs a single net's routing attempt directly, in the given
// mode, for the command surface's "route stage 1/2, optionally one net"
// operation. It does not touch the
// stage 2 rip-up queue; callers doing single-net stage 2 are responsible
// for requeuing any net this net's path rips up.
func (s *Scheduler) RouteOne(id grid.NetID, conflictMode bool) (bool, []grid.NetID) {
	net := s.nl.Net(id)
	ok, ripped := s.route(net, conflictMode)
	if !ok {
		s.failures[id]++
	}
	for _, r := range ripped {
		s.failures[r]++
	}
	return ok, ripped
}
