// Package engine implements the Controller: the single gateway through which
// a forwarding strategy mutates Cache/RSN state and emits collector
// telemetry, plus the Session it guards and the Collector bus it fans out to.
package engine

import "github.com/icnsim/icnsim/internal/network"

// Session is the per-request lifetime state: at most one is active on a
// Controller at a time. Scratch fields (explored-trail bookkeeping) are
// released when the session ends.
type Session struct {
	Timestamp float64
	Receiver  network.NodeID
	Content   network.Cid
	Log       bool
	Source    network.NodeID

	// Extras carries opaque per-session metadata (e.g. a correlation id) a
	// caller attached at start_session; never interpreted by the engine
	// itself.
	Extras map[string]any

	// quotaUsed counts on-path + off-path request hops charged against this
	// session's quota (Q = shortest-path length - 1 + extra_quota), for
	// strategies that enforce one.
	quotaUsed int

	// visited dedups content-packet delivery per node (PIT aggregation,
	// property 5): at most one content_hop delivery per node per session.
	visited map[network.NodeID]bool

	sawHit bool // cache_hit or server_hit fired this session
}

func newSession(t float64, receiver network.NodeID, content network.Cid, log bool, source network.NodeID, extras map[string]any) *Session {
	return &Session{
		Timestamp: t,
		Receiver:  receiver,
		Content:   content,
		Log:       log,
		Source:    source,
		Extras:    extras,
		visited:   make(map[network.NodeID]bool),
	}
}

// MarkVisited records that the content packet has been delivered to node, and
// reports whether this is the first delivery (i.e. whether the caller should
// actually deliver it).
func (s *Session) MarkVisited(node network.NodeID) (firstDelivery bool) {
	if s.visited[node] {
		return false
	}
	s.visited[node] = true
	return true
}

// ChargeHop increments the request-hop quota counter and returns the new
// total.
func (s *Session) ChargeHop() int {
	s.quotaUsed++
	return s.quotaUsed
}

// RefundHops decrements the quota counter by n, floored at zero. Used by
// strategies that don't count a failed off-path probe's hops against the
// session's budget.
func (s *Session) RefundHops(n int) {
	s.quotaUsed -= n
	if s.quotaUsed < 0 {
		s.quotaUsed = 0
	}
}

// QuotaUsed returns the number of request hops charged so far.
func (s *Session) QuotaUsed() int { return s.quotaUsed }

// Satisfied reports whether a cache_hit, server_hit, or off_path_hit fired
// during this session — the per-request success signal a runner passes to
// EndSession.
func (s *Session) Satisfied() bool { return s.sawHit }
