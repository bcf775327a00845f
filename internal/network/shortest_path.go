package network

import "container/heap"

// pathEntry is a min-heap item used by Dijkstra's algorithm.
type pathEntry struct {
	node NodeID
	dist float64
}

type pathHeap []pathEntry

func (h pathHeap) Len() int { return len(h) }
func (h pathHeap) Less(i, j int) bool {
	if h[i].dist != h[j].dist {
		return h[i].dist < h[j].dist
	}
	// deterministic tie-break by node id
	return h[i].node < h[j].node
}
func (h pathHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *pathHeap) Push(x interface{}) { *h = append(*h, x.(pathEntry)) }
func (h *pathHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// shortestPathsFrom runs Dijkstra from src over the topology and returns, for
// every reachable node, the full path (inclusive of src and the node) in
// order. Neighbor iteration order is already deterministic (Topology.Build
// sorts adjacency lists), and the heap itself ties-break by node id, so two
// equal-cost paths resolve identically across runs.
func shortestPathsFrom(t *Topology, src NodeID) map[NodeID][]NodeID {
	dist := map[NodeID]float64{src: 0}
	prev := map[NodeID]NodeID{}
	visited := map[NodeID]bool{}

	h := &pathHeap{{node: src, dist: 0}}
	heap.Init(h)

	for h.Len() > 0 {
		cur := heap.Pop(h).(pathEntry)
		if visited[cur.node] {
			continue
		}
		visited[cur.node] = true

		for _, e := range t.Neighbors(cur.node) {
			nd := cur.dist + e.Delay
			if d, ok := dist[e.To]; !ok || nd < d {
				dist[e.To] = nd
				prev[e.To] = cur.node
				heap.Push(h, pathEntry{node: e.To, dist: nd})
			}
		}
	}

	paths := make(map[NodeID][]NodeID, len(dist))
	for node := range dist {
		var path []NodeID
		for n := node; ; {
			path = append([]NodeID{n}, path...)
			if n == src {
				break
			}
			n = prev[n]
		}
		paths[node] = path
	}
	return paths
}

// AllPairsShortestPaths precomputes shortest paths between every ordered pair
// of nodes in the topology.
func AllPairsShortestPaths(t *Topology) map[NodeID]map[NodeID][]NodeID {
	out := make(map[NodeID]map[NodeID][]NodeID, len(t.order))
	for _, src := range t.order {
		out[src] = shortestPathsFrom(t, src)
	}
	return out
}
