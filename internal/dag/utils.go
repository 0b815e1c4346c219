package dag

// ids projects nodes to their IDs.
func ids[K comparable](nodes []*node[K]) []K {
	out := make([]K, len(nodes))
	for i, n := range nodes {
		out[i] = n.id
	}
	return out
}
