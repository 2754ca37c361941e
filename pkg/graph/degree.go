package graph

// Degrees counts incident edges for every stored node. A self-loop counts
// twice. Edge endpoints that are not stored nodes get no entry.
func (g *Graph) Degrees() map[string]int {
	deg := make(map[string]int, len(g.nodes))
	for _, n := range g.nodes {
		deg[n.ID] = 0
	}
	for _, e := range g.edges {
		if _, ok := deg[e.Source]; ok {
			deg[e.Source]++
		}
		if _, ok := deg[e.Target]; ok {
			deg[e.Target]++
		}
	}
	return deg
}

// MaxDegreeNodes returns every node whose degree equals the maximum, ties
// included. An empty graph yields an empty map.
func (g *Graph) MaxDegreeNodes() map[string]int {
	deg := g.Degrees()
	out := make(map[string]int)
	if len(deg) == 0 {
		return out
	}

	max := -1
	for _, d := range deg {
		if d > max {
			max = d
		}
	}
	for id, d := range deg {
		if d == max {
			out[id] = d
		}
	}
	return out
}
