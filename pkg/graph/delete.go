package graph

// Delete removes the matched nodes and every incident edge, returning the
// removed node records. Plain nodes come back, not models: a deleted
// node's relations can no longer be traversed.
func (r *Repository) Delete(selector any) ([]*Node, error) {
	nodes, err := r.findNodes(selector)
	if err != nil {
		return nil, err
	}
	removed := make([]*Node, 0, len(nodes))
	for _, n := range nodes {
		for _, e := range r.edges.all() {
			if e.From == n.ID || e.To == n.ID {
				r.edges.delete(e.ID())
			}
		}
		r.nodes.delete(n.ID)
		removed = append(removed, n)
	}
	return removed, nil
}
