// Package sim wires a Strategy, a network Model/View, a Controller, and a
// workload Iterator into the end-to-end event loop: pull the
// next (t, event) pair, dispatch it, repeat until the stream is exhausted.
// It is the single place disconnection events are handled,
// since that bookkeeping belongs to the run driver, not to any one strategy.
package sim

import (
	"github.com/google/uuid"

	"github.com/icnsim/icnsim/internal/engine"
	"github.com/icnsim/icnsim/internal/network"
	"github.com/icnsim/icnsim/internal/strategy"
	"github.com/icnsim/icnsim/internal/workload"
)

// Runner drives one simulation run to completion.
type Runner struct {
	model       *network.Model
	view        *network.View
	ctrl        *engine.Controller
	strat       strategy.Strategy
	warmupStrat strategy.Strategy // optional distinct warmup-phase strategy, used while ev.Log == false
	events      workload.Iterator

	// outstanding tracks, per receiver, how many active sessions have
	// delivered each content id to a receiver-side cache — the "connections"
	// counter a disconnection event decrements.
	outstanding map[network.NodeID]map[network.Cid]int
}

// New builds a Runner over a Model, a strategy, and a workload stream. bus
// may be nil (no telemetry) or pre-populated with collectors.
func New(model *network.Model, bus *engine.Bus, strat strategy.Strategy, events workload.Iterator) *Runner {
	return &Runner{
		model:       model,
		view:        network.NewView(model),
		ctrl:        engine.NewController(model, bus),
		strat:       strat,
		events:      events,
		outstanding: make(map[network.NodeID]map[network.Cid]int),
	}
}

// WithWarmupStrategy attaches a distinct strategy to run for the workload's
// warmup requests (those with Log == false), via the optional
// warmup_strategy config. Returns the Runner for chaining.
func (r *Runner) WithWarmupStrategy(s strategy.Strategy) *Runner {
	r.warmupStrat = s
	return r
}

// Run drains the workload stream to completion, dispatching every event
// through the strategy (content requests) or the disconnection handler
// (SIT-family eviction bookkeeping).
func (r *Runner) Run() {
	for {
		te, ok := r.events.Next()
		if !ok {
			return
		}
		r.dispatch(te)
	}
}

func (r *Runner) dispatch(te workload.TimedEvent) {
	ev := te.Event
	extras := map[string]any{"request_id": uuid.NewString()}

	if ev.IsDisconnection() {
		r.handleDisconnection(te.T, ev, extras)
		return
	}

	strat := r.strat
	if !ev.Log && r.warmupStrat != nil {
		strat = r.warmupStrat
	}

	sess := r.ctrl.StartSession(te.T, ev.Receiver, ev.Content, ev.Log, extras)
	strat.Process(r.view, r.ctrl, ev)
	success := sess.Satisfied()
	r.ctrl.EndSession(success)

	if success {
		r.trackConnection(ev.Receiver, ev.Content)
	}
}

// handleDisconnection decrements the receiver's
// outstanding-connection counter for the content, and once it reaches zero,
// evict the content from the receiver's own cache (SIT-family receivers may
// carry one) and emit evict_item. One session covers the whole event, since
// it may touch several contents across several receivers; Controller's
// EvictContentAtNode takes the cid explicitly rather than from the session.
func (r *Runner) handleDisconnection(t float64, ev workload.Event, extras map[string]any) {
	r.ctrl.StartSession(t, ev.Receiver, DisconnectionCid, ev.Log, extras)
	defer r.ctrl.EndSession(false)

	for receiver := range ev.Connections {
		byContent, ok := r.outstanding[receiver]
		if !ok {
			continue
		}
		for cid, count := range byContent {
			if count <= 0 {
				continue
			}
			byContent[cid]--
			if byContent[cid] == 0 {
				delete(byContent, cid)
				if r.view.HasCache(receiver) {
					r.ctrl.EvictContentAtNode(cid, receiver)
				}
			}
		}
	}
}

func (r *Runner) trackConnection(receiver network.NodeID, cid network.Cid) {
	if !r.view.HasCache(receiver) {
		return
	}
	byContent, ok := r.outstanding[receiver]
	if !ok {
		byContent = make(map[network.Cid]int)
		r.outstanding[receiver] = byContent
	}
	byContent[cid]++
}

// DisconnectionCid is a placeholder session content id used only to satisfy
// StartSession's content-source lookup while processing a disconnection
// event; disconnections never resolve content, so Source is never consulted.
const DisconnectionCid network.Cid = workload.DisconnectionContent
