package graph

import "fmt"

// relatedNodes resolves a node's relation to the ordered set of related
// nodes by scanning the edge store. An undeclared relation yields nil.
func (r *Repository) relatedNodes(n *Node, name string) []*Node {
	rel, ok := r.relation(n.Kind, name)
	if !ok {
		return nil
	}
	p := parseRelation(rel)

	var out []*Node
	for _, e := range r.edges.all() {
		if p.edgeKind != "" && e.Kind != p.edgeKind {
			continue
		}
		if p.outbound {
			if e.From != n.ID {
				continue
			}
			if other, ok := r.nodes.get(e.To); ok && other.Kind == p.relatedKind {
				out = append(out, other)
			}
		} else {
			if e.To != n.ID {
				continue
			}
			if other, ok := r.nodes.get(e.From); ok && other.Kind == p.relatedKind {
				out = append(out, other)
			}
		}
	}
	return out
}

// relationEdge builds the edge linking node and related for a relation,
// respecting the relation's declared direction.
func relationEdge(p parsedRelation, node, related *Node) Edge {
	if p.outbound {
		return Edge{From: node.ID, To: related.ID, Kind: p.edgeKind}
	}
	return Edge{From: related.ID, To: node.ID, Kind: p.edgeKind}
}

// GetRelatedNodes exposes relation traversal for a stored node id.
func (r *Repository) GetRelatedNodes(id, relation string) ([]*Node, error) {
	n, ok := r.nodes.get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return r.relatedNodes(n, relation), nil
}
