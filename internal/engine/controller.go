package engine

import (
	"fmt"

	"github.com/icnsim/icnsim/internal/network"
	"github.com/icnsim/icnsim/internal/rsn"
)

// Controller is the single gateway through which a forwarding strategy reads
// and mutates Cache/RSN state and emits collector telemetry. It holds one
// optional Session and fans telemetry out through a Bus. Every mutating
// method panics if no session is active — a programmer error.
type Controller struct {
	model   *network.Model
	bus     *Bus
	session *Session
}

// NewController creates a Controller bound to a Model and a (possibly empty)
// collector Bus.
func NewController(model *network.Model, bus *Bus) *Controller {
	if bus == nil {
		bus = NewBus()
	}
	return &Controller{model: model, bus: bus}
}

// Session returns the currently active session, or nil.
func (c *Controller) Session() *Session { return c.session }

func (c *Controller) requireSession() *Session {
	if c.session == nil {
		panic("engine: controller operation requires an active session")
	}
	return c.session
}

// StartSession begins a new session. It is a programmer error to start one
// while another is active. content may be a sentinel id with no registered
// origin (the disconnection-event handler's pseudo-session is the only
// caller that does this); Source is left as the zero NodeID in that case and
// is never consulted by strategies, since a disconnection is never resolved
// through GetContent.
func (c *Controller) StartSession(t float64, receiver network.NodeID, content network.Cid, log bool, extras map[string]any) *Session {
	if c.session != nil {
		panic("engine: a session is already active")
	}
	source, _ := c.model.ContentSource(content)
	c.session = newSession(t, receiver, content, log, source, extras)
	if log {
		c.bus.startSession(t, receiver, content)
	}
	return c.session
}

// EndSession closes the active session and releases its scratch state.
func (c *Controller) EndSession(success bool) {
	s := c.requireSession()
	if s.Log {
		c.bus.endSession(success)
	}
	c.session = nil
}

// ForwardRequestHop emits request-hop telemetry for one edge.
func (c *Controller) ForwardRequestHop(u, v network.NodeID, mainPath bool) {
	s := c.requireSession()
	if s.Log {
		c.bus.requestHop(u, v, mainPath)
	}
}

// ForwardRequestPath emits request-hop telemetry for every adjacent pair in
// path.
func (c *Controller) ForwardRequestPath(path []network.NodeID, mainPath bool) {
	for i := 0; i+1 < len(path); i++ {
		c.ForwardRequestHop(path[i], path[i+1], mainPath)
	}
}

// ForwardContentHop emits content-hop telemetry for one edge.
func (c *Controller) ForwardContentHop(u, v network.NodeID, mainPath bool) {
	s := c.requireSession()
	if s.Log {
		c.bus.contentHop(u, v, mainPath)
	}
}

// ForwardContentPath emits content-hop telemetry for every adjacent pair in
// path.
func (c *Controller) ForwardContentPath(path []network.NodeID, mainPath bool) {
	for i := 0; i+1 < len(path); i++ {
		c.ForwardContentHop(path[i], path[i+1], mainPath)
	}
}

// GetContent attempts to serve content at v: if v has a cache, it checks the
// cache (emitting cache_hit/cache_miss); if v is the content's origin, it
// emits server_hit and returns true unconditionally.
func (c *Controller) GetContent(v network.NodeID) bool {
	s := c.requireSession()
	if ch, ok := c.model.Cache(v); ok {
		hit := ch.Get(s.Content)
		if s.Log {
			if hit {
				c.bus.cacheHit(v)
			} else {
				c.bus.cacheMiss(v)
			}
		}
		if hit {
			s.sawHit = true
			return true
		}
	}
	if v == s.Source {
		if s.Log {
			c.bus.serverHit(v)
		}
		s.sawHit = true
		return true
	}
	return false
}

// OffPathHit records that an off-path RSN-guided trail resolved content at
// v, distinct from the on-path cache_hit/server_hit already emitted by
// GetContent for the same node. Strategies call this once a followed trail
// is confirmed successful.
func (c *Controller) OffPathHit(v network.NodeID) {
	s := c.requireSession()
	if s.Log {
		c.bus.offPathHit(v)
	}
}

// HasContent checks presence at v with the same semantics as GetContent but
// never emits telemetry. Used by warmup.
func (c *Controller) HasContent(v network.NodeID) bool {
	s := c.requireSession()
	if ch, ok := c.model.Cache(v); ok {
		if ch.Get(s.Content) {
			return true
		}
	}
	return v == s.Source
}

// PutContent inserts the session content into v's cache, if it has one.
// put_item always fires, even during warmup; evict_item fires if a victim
// was evicted.
func (c *Controller) PutContent(v network.NodeID) {
	s := c.requireSession()
	ch, ok := c.model.Cache(v)
	if !ok {
		return
	}
	evicted, didEvict := ch.Put(s.Content)
	c.bus.putItem(s.Content)
	if didEvict {
		c.bus.evictItem(evicted)
	}
}

// RemoveContent removes the session content from v's cache, if present.
func (c *Controller) RemoveContent(v network.NodeID) bool {
	c.requireSession()
	ch, ok := c.model.Cache(v)
	if !ok {
		return false
	}
	return ch.Remove(c.session.Content)
}

// EvictContent removes the session content from v's cache and, if it was
// present, emits evict_item explicitly — used by disconnection handling
// which evicts outside of the normal Put-displaces-victim
// path and so needs its own telemetry rather than PutContent's.
func (c *Controller) EvictContent(v network.NodeID) bool {
	s := c.requireSession()
	ch, ok := c.model.Cache(v)
	if !ok {
		return false
	}
	if !ch.Remove(s.Content) {
		return false
	}
	c.bus.evictItem(s.Content)
	return true
}

// RemoveContentAtNode removes an explicit cid from v's cache.
func (c *Controller) RemoveContentAtNode(cid network.Cid, v network.NodeID) bool {
	c.requireSession()
	ch, ok := c.model.Cache(v)
	if !ok {
		return false
	}
	return ch.Remove(cid)
}

// EvictContentAtNode removes an explicit cid (not necessarily the session's
// content) from v's cache and emits evict_item if it was present. Used by
// disconnection handling, which may evict several distinct
// contents under a single session.
func (c *Controller) EvictContentAtNode(cid network.Cid, v network.NodeID) bool {
	c.requireSession()
	ch, ok := c.model.Cache(v)
	if !ok {
		return false
	}
	if !ch.Remove(cid) {
		return false
	}
	c.bus.evictItem(cid)
	return true
}

// resolveCid returns the explicit cid if non-nil, else the session's content.
func (c *Controller) resolveCid(cid *network.Cid) network.Cid {
	s := c.requireSession()
	if cid != nil {
		return *cid
	}
	return s.Content
}

// GetRSN returns the RSN entry at v for cid (or the session content if cid is
// nil), refreshing table-level recency. The returned entry is live: mutate it
// and call PutRSN to persist changes.
func (c *Controller) GetRSN(v network.NodeID, cid *network.Cid) (*rsn.Entry, bool) {
	id := c.resolveCid(cid)
	tb, ok := c.model.RSNTable(v)
	if !ok {
		return nil, false
	}
	return tb.Get(id)
}

// GetOrCreateRSN returns the RSN entry at v for cid, creating an empty one
// (not yet persisted) if absent.
func (c *Controller) GetOrCreateRSN(v network.NodeID, cid *network.Cid) (*rsn.Entry, bool) {
	id := c.resolveCid(cid)
	tb, ok := c.model.RSNTable(v)
	if !ok {
		return nil, false
	}
	return tb.GetOrCreate(id), true
}

// PutRSN persists entry at v for cid (or the session content), refreshing
// table-level recency.
func (c *Controller) PutRSN(v network.NodeID, entry *rsn.Entry, cid *network.Cid) {
	id := c.resolveCid(cid)
	tb, ok := c.model.RSNTable(v)
	if !ok {
		return
	}
	tb.Put(id, entry)
}

// RemoveRSN deletes the RSN entry at v for cid (or the session content).
func (c *Controller) RemoveRSN(v network.NodeID, cid *network.Cid) bool {
	id := c.resolveCid(cid)
	tb, ok := c.model.RSNTable(v)
	if !ok {
		return false
	}
	return tb.Remove(id)
}

// InvalidateTrail removes, for each adjacent pair (n_i, n_i+1) in trail, the
// hint record at n_i whose NextHop is n_i+1 — dropping the entry entirely if
// it becomes empty. Precondition: every n_i must already have an RSN
// entry for cid containing n_i+1; a violation panics as a programmer error.
func (c *Controller) InvalidateTrail(trail []network.NodeID, cid *network.Cid) {
	id := c.resolveCid(cid)
	for i := 0; i+1 < len(trail); i++ {
		n, next := trail[i], trail[i+1]
		tb, ok := c.model.RSNTable(n)
		if !ok {
			panic(fmt.Sprintf("engine: invalidate_trail: node %s has no RSN table", n))
		}
		entry, ok := tb.Get(id)
		if !ok {
			panic(fmt.Sprintf("engine: invalidate_trail: node %s has no RSN entry for content %d", n, id))
		}
		entry.DeleteNextHop(next)
		if entry.Empty() {
			tb.Remove(id)
		} else {
			tb.Put(id, entry)
		}
	}
}
