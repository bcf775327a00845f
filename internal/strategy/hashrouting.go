package strategy

import (
	"sort"

	"github.com/icnsim/icnsim/internal/engine"
	"github.com/icnsim/icnsim/internal/network"
	"github.com/icnsim/icnsim/internal/workload"
)

// designatedNode deterministically maps a content id onto one of the
// network's n cache-capable nodes (sorted by id) with "zig-zag" hashing:
// h = cid mod n, mirrored to n-h-1 when cid/n is odd. Every router gets the
// same stable "home" cache for a content, independent of request origin —
// the hash-routing family's defining trait.
func designatedNode(v *network.View, cid network.Cid) network.NodeID {
	nodes := append([]network.NodeID{}, v.CacheNodes()...)
	sort.Slice(nodes, func(i, j int) bool { return nodes[i] < nodes[j] })
	if len(nodes) == 0 {
		return ""
	}
	n := int64(len(nodes))
	h := int64(cid) % n
	if (int64(cid)/n)%2 == 1 {
		h = n - h - 1
	}
	return nodes[h]
}

// walkHops charges and emits request_hop telemetry for every edge in path,
// without any cache lookup — used by hash-routing variants to move the
// request toward a designated node before any cache is consulted.
func walkHops(c *engine.Controller, path []network.NodeID, mainPath bool) {
	s := c.Session()
	for i := 0; i+1 < len(path); i++ {
		c.ForwardRequestHop(path[i], path[i+1], mainPath)
		s.ChargeHop()
	}
}

// onlyAt caches at exactly one node of the final trail: the designated node.
func onlyAt(target network.NodeID, trail []network.NodeID) CachingPolicy {
	return func(d CachingDecision) bool { return trail[d.Idx] == target }
}

// hashSymmetric is Hashrouting-Symmetric: the request is routed to the
// content's designated node first; only on a miss there does it continue to
// the source. Caching happens only at the designated node.
type hashSymmetric struct{}

func NewHashSymmetric(Config) Strategy { return &hashSymmetric{} }
func (hashSymmetric) Name() string     { return "hashrouting_symmetric" }

func (hashSymmetric) Process(v *network.View, c *engine.Controller, _ workload.Event) {
	sess := c.Session()
	designated := designatedNode(v, sess.Content)

	toDesig, _ := v.ShortestPath(sess.Receiver, designated)
	walkHops(c, toDesig, true)
	trail := append([]network.NodeID{}, toDesig...)

	if !c.GetContent(designated) {
		toSource, _ := v.ShortestPath(designated, sess.Source)
		walkHops(c, toSource, true)
		trail = append(trail, toSource[1:]...)
		c.GetContent(sess.Source)
	}
	DeliverContent(v, c, trail, true, false, onlyAt(designated, trail), 0, 0)
}

// hashAsymmetric is Hashrouting-Asymmetric: the request always follows the
// normal shortest path to the source (ignoring the hash), but only the
// designated node (which may or may not lie on that path) is eligible to
// cache the reply.
type hashAsymmetric struct{}

func NewHashAsymmetric(Config) Strategy { return &hashAsymmetric{} }
func (hashAsymmetric) Name() string     { return "hashrouting_asymmetric" }

func (hashAsymmetric) Process(v *network.View, c *engine.Controller, _ workload.Event) {
	sess := c.Session()
	designated := designatedNode(v, sess.Content)
	path, _, _ := OnPathWalk(v, c)
	policy := onlyAt(designated, path)
	DeliverContent(v, c, path, true, false, policy, 0, 0)
}

// hashMulticast is Hashrouting-Multicast: the request first goes to the
// designated node (hops marked off the main path); on a hit there, content
// returns along that branch alone. On a miss, the request then takes the
// normal on-path walk and content returns along the shortest path, cached
// only at the designated node if it lies on that path. The two branches are
// tried one after the other, and exactly one trail is delivered; the return
// is not forked where the designated-node and receiver paths diverge.
type hashMulticast struct{}

func NewHashMulticast(Config) Strategy { return &hashMulticast{} }
func (hashMulticast) Name() string     { return "hashrouting_multicast" }

func (hashMulticast) Process(v *network.View, c *engine.Controller, _ workload.Event) {
	sess := c.Session()
	designated := designatedNode(v, sess.Content)

	toDesig, _ := v.ShortestPath(sess.Receiver, designated)
	walkHops(c, toDesig, false)
	if c.GetContent(designated) {
		DeliverContent(v, c, toDesig, false, false, onlyAt(designated, toDesig), 0, 0)
		return
	}

	path, _, _ := OnPathWalk(v, c)
	DeliverContent(v, c, path, true, false, onlyAt(designated, path), 0, 0)
}

// hashHybridAM combines Asymmetric routing with Multicast's dual-trail
// exploration, but only pays for the multicast probe when it is cheap
// enough: it compares the extra stretch of detouring through the
// designated node against maxStretch * diameter, falling back to
// plain Asymmetric (direct path only, designated node cache-eligible only
// if it happens to lie on that path) when the detour is too expensive.
type hashHybridAM struct {
	maxStretch float64
}

func NewHashHybridAM(cfg Config) Strategy {
	ms := cfg.MaxStretch
	if ms <= 0 {
		ms = 0.5
	}
	return &hashHybridAM{maxStretch: ms}
}
func (hashHybridAM) Name() string { return "hashrouting_hybrid_am" }

func (h *hashHybridAM) Process(v *network.View, c *engine.Controller, _ workload.Event) {
	sess := c.Session()
	designated := designatedNode(v, sess.Content)

	direct, _ := v.ShortestPath(sess.Receiver, sess.Source)
	toDesig, _ := v.ShortestPath(sess.Receiver, designated)
	desigToSource, _ := v.ShortestPath(designated, sess.Source)

	extraStretch := (len(toDesig) - 1 + len(desigToSource) - 1) - (len(direct) - 1)
	threshold := h.maxStretch * float64(v.Diameter())

	if float64(extraStretch) > threshold {
		// Too expensive to detour: behave like plain Asymmetric.
		path, _, _ := OnPathWalk(v, c)
		DeliverContent(v, c, path, true, false, onlyAt(designated, path), 0, 0)
		return
	}

	walkHops(c, toDesig, false)
	if c.GetContent(designated) {
		DeliverContent(v, c, toDesig, false, false, onlyAt(designated, toDesig), 0, 0)
		return
	}

	path, _, _ := OnPathWalk(v, c)
	DeliverContent(v, c, path, true, false, onlyAt(designated, path), 0, 0)
}

// hashHybridSM picks between Symmetric routing (detour through the
// designated node, then on to source if it misses) and Multicast fan-out
// by comparing each option's total hop count: symmetric pays
// toDesig + desigToSource only on a worst-case miss, multicast always pays
// both branches since they're issued in parallel. Whichever is cheaper
// wins.
type hashHybridSM struct{}

func NewHashHybridSM(Config) Strategy { return &hashHybridSM{} }
func (hashHybridSM) Name() string     { return "hashrouting_hybrid_sm" }

func (hashHybridSM) Process(v *network.View, c *engine.Controller, _ workload.Event) {
	sess := c.Session()
	designated := designatedNode(v, sess.Content)

	toDesig, _ := v.ShortestPath(sess.Receiver, designated)
	desigToSource, _ := v.ShortestPath(designated, sess.Source)
	direct, _ := v.ShortestPath(sess.Receiver, sess.Source)

	symmetricHops := (len(toDesig) - 1) + (len(desigToSource) - 1)
	multicastHops := (len(toDesig) - 1) + (len(direct) - 1)

	if symmetricHops <= multicastHops {
		walkHops(c, toDesig, true)
		trail := append([]network.NodeID{}, toDesig...)
		if c.GetContent(designated) {
			DeliverContent(v, c, trail, true, false, onlyAt(designated, trail), 0, 0)
			return
		}
		walkHops(c, desigToSource, true)
		trail = append(trail, desigToSource[1:]...)
		c.GetContent(sess.Source)
		DeliverContent(v, c, trail, true, false, onlyAt(designated, trail), 0, 0)
		return
	}

	walkHops(c, toDesig, false)
	if c.GetContent(designated) {
		DeliverContent(v, c, toDesig, false, false, onlyAt(designated, toDesig), 0, 0)
		return
	}
	path, _, _ := OnPathWalk(v, c)
	DeliverContent(v, c, path, true, false, onlyAt(designated, path), 0, 0)
}

func init() {
	Register("hashrouting_symmetric", NewHashSymmetric)
	Register("hashrouting_asymmetric", NewHashAsymmetric)
	Register("hashrouting_multicast", NewHashMulticast)
	Register("hashrouting_hybrid_am", NewHashHybridAM)
	Register("hashrouting_hybrid_sm", NewHashHybridSM)
}
