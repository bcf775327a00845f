package network

// BetweennessCentrality computes unweighted (hop-count) betweenness
// centrality for every node via Brandes' algorithm. Used by the CL4M caching
// policy to pick the return-path node with maximum centrality.
func BetweennessCentrality(t *Topology) map[NodeID]float64 {
	cb := make(map[NodeID]float64, len(t.order))
	for _, n := range t.order {
		cb[n] = 0
	}

	for _, s := range t.order {
		stack := []NodeID{}
		pred := make(map[NodeID][]NodeID)
		sigma := make(map[NodeID]float64)
		dist := make(map[NodeID]int)
		for _, n := range t.order {
			sigma[n] = 0
			dist[n] = -1
		}
		sigma[s] = 1
		dist[s] = 0

		queue := []NodeID{s}
		for len(queue) > 0 {
			v := queue[0]
			queue = queue[1:]
			stack = append(stack, v)
			for _, e := range t.Neighbors(v) {
				w := e.To
				if dist[w] < 0 {
					dist[w] = dist[v] + 1
					queue = append(queue, w)
				}
				if dist[w] == dist[v]+1 {
					sigma[w] += sigma[v]
					pred[w] = append(pred[w], v)
				}
			}
		}

		delta := make(map[NodeID]float64)
		for i := len(stack) - 1; i >= 0; i-- {
			w := stack[i]
			for _, v := range pred[w] {
				delta[v] += (sigma[v] / sigma[w]) * (1 + delta[w])
			}
			if w != s {
				cb[w] += delta[w]
			}
		}
	}

	// undirected graph: each shortest path counted from both endpoints
	for n := range cb {
		cb[n] /= 2
	}
	return cb
}
