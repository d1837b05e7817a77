// Package router collapses the module-level globals of the source
// router — grid pointer, cost knobs, net lists, vdd/gnd names — into a
// single session context. The command surface
// of (load library; load layout; set cost; set via-stack
// limit; set mask mode; set vdd/gnd; list-ignored; list-priority; route
// stage 1/2, optionally one net; rip up net; write routed layout) is
// implemented as methods on Router.
package router

import (
	"fmt"
	"log/slog"

	"github.com/rs/xid"

	"github.com/sarchlab/qrouter/commit"
	"github.com/sarchlab/qrouter/config"
	"github.com/sarchlab/qrouter/def"
	"github.com/sarchlab/qrouter/grid"
	"github.com/sarchlab/qrouter/lef"
	"github.com/sarchlab/qrouter/maze"
	"github.com/sarchlab/qrouter/netlist"
	"github.com/sarchlab/qrouter/schedule"
)

// Router is the collapsed session context: every field the source kept
// as a module-level global lives here, and the command surface operates
// through its methods instead of free functions over globals.
type Router struct {
	// Session tags every log line this router emits, so a run's messages
	// can be correlated in aggregate logs.
	Session xid.ID

	cfg *config.Config
	log *slog.Logger
	io  IO

	lib    *lef.Library
	layout *def.Layout
	g      *grid.Grid
	nl     *netlist.Netlist
	sched  *schedule.Scheduler

	stage1Failed map[string]bool
	stage2Failed map[string]bool
}

// New builds a Router bound to cfg. The grid/netlist/scheduler are not
// allocated until both LoadLibrary and LoadLayout have run.
func New(cfg *config.Config, log *slog.Logger) *Router {
	if log == nil {
		log = slog.Default()
	}
	session := xid.New()
	return &Router{
		Session:      session,
		cfg:          cfg,
		log:          log.With("session", session.String()),
		io:           fileIO{},
		stage1Failed: map[string]bool{},
		stage2Failed: map[string]bool{},
	}
}

// LoadLibrary loads the technology/cell library from path.
func (r *Router) LoadLibrary(path string) error {
	lib, err := r.io.ReadLibrary(path)
	if err != nil {
		return fmt.Errorf("router: load library: %w", err)
	}
	r.lib = lib
	r.log.Info("library loaded", "path", path, "layers", len(lib.RoutingLayers()), "macros", len(lib.Macros))
	return nil
}

// LoadLayout loads the placed design from path and, since a library must
// already be loaded, immediately builds the grid and netlist it
// describes and allocates the scheduler over them.
func (r *Router) LoadLayout(path string) error {
	if r.lib == nil {
		return fmt.Errorf("router: load layout: no library loaded")
	}

	layout, err := r.io.ReadLayout(path)
	if err != nil {
		return fmt.Errorf("router: load layout: %w", err)
	}
	r.layout = layout

	g, nl, err := def.Build(r.lib, layout, r.cfg.VDD, r.cfg.GND, r.cfg.MaxStack, r.log)
	if err != nil {
		return fmt.Errorf("router: build session: %w", err)
	}
	r.g, r.nl = g, nl

	r.applyObstructions()
	r.applyNetLists()

	mask, err := r.cfg.Mask()
	if err != nil {
		return fmt.Errorf("router: %w", err)
	}
	r.sched = schedule.New(g, nl, r.cfg.Cost.Resolve(), r.cfg.MaxStack, r.cfg.MaxPasses, mask, r.cfg.ViaPattern, r.log)
	r.log.Info("layout loaded", "path", path, "nets", len(nl.Nets()))
	return nil
}

// applyObstructions paints the configured user-obstruction rectangles
// directly as grid obstructions, the same way
// def.Build paints a design's BLOCKAGES.
func (r *Router) applyObstructions() {
	for _, rect := range r.cfg.Obstructions {
		if rect.Layer < 0 || rect.Layer >= len(r.g.Layers) {
			r.log.Warn("user obstruction on unknown layer, ignored", "layer", rect.Layer)
			continue
		}
		r.g.MarkObstructed(rect.Layer, grid.Rect{MinX: rect.X1, MinY: rect.Y1, MaxX: rect.X2, MaxY: rect.Y2})
	}
}

// applyNetLists marks every net named on the configured ignore/priority
// lists, warning about any name the loaded layout does not contain.
func (r *Router) applyNetLists() {
	for _, name := range r.cfg.Ignore {
		n, ok := r.nl.NetByName(name)
		if !ok {
			r.log.Warn("ignore list names unknown net", "net", name)
			continue
		}
		n.Ignored = true
	}
	for _, name := range r.cfg.Priority {
		n, ok := r.nl.NetByName(name)
		if !ok {
			r.log.Warn("priority list names unknown net", "net", name)
			continue
		}
		n.Critical = true
	}
}

// SetCost overrides the configured cost weights.
func (r *Router) SetCost(p maze.CostParams) {
	if r.sched != nil {
		r.sched.Params = p
	}
	r.cfg.Cost = config.Cost{Seg: p.Seg, Via: p.Via, Jog: p.Jog, Xover: p.Xover, Block: p.Block, Conflict: p.Conflict}
}

// SetViaStackLimit overrides max_stack, coercing zero to one with a
// warning, the same compatibility rule grid.New itself applies.
func (r *Router) SetViaStackLimit(n int) {
	if n <= 0 {
		r.log.Warn("max_stack coerced to 1", "configured", n)
		n = 1
	}
	r.cfg.MaxStack = n
	if r.sched != nil {
		r.sched.MaxStack = n
	}
	if r.g != nil {
		r.g.MaxStack = n
	}
}

// SetMaskMode overrides the scheduler's masking mode.
func (r *Router) SetMaskMode(mode string, margin int) error {
	r.cfg.MaskMode = mode
	r.cfg.MaskMargin = margin
	mask, err := r.cfg.Mask()
	if err != nil {
		return fmt.Errorf("router: %w", err)
	}
	if r.sched != nil {
		r.sched.Mask = mask
	}
	return nil
}

// SetVddGnd overrides the power/ground rail net names. Changing it after
// LoadLayout does not retag nets already built; it takes effect on the
// next LoadLayout.
func (r *Router) SetVddGnd(vdd, gnd string) {
	r.cfg.VDD = vdd
	r.cfg.GND = gnd
}

// ListIgnored returns the configured ignore-list net names.
func (r *Router) ListIgnored() []string { return append([]string(nil), r.cfg.Ignore...) }

// ListPriority returns the configured priority-list net names.
func (r *Router) ListPriority() []string { return append([]string(nil), r.cfg.Priority...) }

// RouteStage1 runs the conflict-free pass. If netName is empty it runs
// every routable net in priority order; otherwise it routes just that
// net.
// It returns the count of nets left failing by this call.
func (r *Router) RouteStage1(netName string) (int, error) {
	if r.sched == nil {
		return 0, fmt.Errorf("router: route stage 1: no layout loaded")
	}
	if netName == "" {
		failed := r.sched.Stage1()
		for _, id := range failed {
			r.stage1Failed[r.nl.Net(id).Name] = true
		}
		return len(failed), nil
	}

	net, ok := r.nl.NetByName(netName)
	if !ok {
		return 0, fmt.Errorf("router: route stage 1: unknown net %q", netName)
	}
	ok2, _ := r.sched.RouteOne(net.ID, false)
	if !ok2 {
		r.stage1Failed[netName] = true
		return 1, nil
	}
	delete(r.stage1Failed, netName)
	return 0, nil
}

// RouteStage2 drains the rip-up-and-reroute pass. If netName is empty it
// runs over every net stage 1 left failing; otherwise it attempts just
// that net in conflict mode. It returns the count of nets left failing.
func (r *Router) RouteStage2(netName string) (int, error) {
	if r.sched == nil {
		return 0, fmt.Errorf("router: route stage 2: no layout loaded")
	}
	if netName == "" {
		ids := make([]grid.NetID, 0, len(r.stage1Failed))
		for name := range r.stage1Failed {
			if net, ok := r.nl.NetByName(name); ok {
				ids = append(ids, net.ID)
			}
		}
		remaining := r.sched.Stage2(ids)
		r.stage1Failed = map[string]bool{}
		return remaining, nil
	}

	net, ok := r.nl.NetByName(netName)
	if !ok {
		return 0, fmt.Errorf("router: route stage 2: unknown net %q", netName)
	}
	ok2, _ := r.sched.RouteOne(net.ID, true)
	if !ok2 {
		r.stage2Failed[netName] = true
		return 1, nil
	}
	delete(r.stage1Failed, netName)
	delete(r.stage2Failed, netName)
	return 0, nil
}

// RipUpNet removes every committed route of the named net, restoring the
// grid cells it owned.
func (r *Router) RipUpNet(netName string) error {
	if r.nl == nil {
		return fmt.Errorf("router: rip up net: no layout loaded")
	}
	net, ok := r.nl.NetByName(netName)
	if !ok {
		return fmt.Errorf("router: rip up net: unknown net %q", netName)
	}
	for _, rid := range append([]netlist.RouteID(nil), net.Routes...) {
		commit.RipUp(r.g, r.nl, net.ID, rid)
	}
	r.log.Info("net ripped up", "net", netName)
	return nil
}

// WriteRoutedLayout writes the current routed state back out in the
// layout format.
func (r *Router) WriteRoutedLayout(path string) error {
	if r.layout == nil {
		return fmt.Errorf("router: write routed layout: no layout loaded")
	}
	if err := r.io.WriteLayout(path, r.layout, r.g, r.nl); err != nil {
		return fmt.Errorf("router: write routed layout: %w", err)
	}
	r.log.Info("routed layout written", "path", path)
	return nil
}

// FailingNets returns the names of every net still marked failing by the
// most recent stage 1/stage 2 run, for the exit-status rule: exit status
// is the count of failing nets.
func (r *Router) FailingNets() []string {
	seen := map[string]bool{}
	var out []string
	for name := range r.stage1Failed {
		if !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	for name := range r.stage2Failed {
		if !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	return out
}

// ExitStatus is the count of currently-failing nets, the process exit
// code cmd/qrouter reports.
func (r *Router) ExitStatus() int { return len(r.FailingNets()) }

// Netlist exposes the built netlist for read-only inspection (reporting,
// tests); nil until LoadLayout has run.
func (r *Router) Netlist() *netlist.Netlist { return r.nl }

// Grid exposes the built grid for read-only inspection; nil until
// LoadLayout has run.
func (r *Router) Grid() *grid.Grid { return r.g }
