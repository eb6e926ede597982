package graph

import (
	"fmt"
	"strconv"
)

// Repository is the in-memory graph engine. It owns the node store, the
// edge store and the id counter, and assumes a single caller at a time;
// callers needing concurrent access must serialize operations themselves.
type Repository struct {
	nodes     *nodeStore
	edges     *edgeStore
	relations Relations
	nextID    int
}

// New builds a repository from an optional schema snapshot. A nil schema
// starts with empty stores and no relations. Seed edges must reference
// seed nodes.
func New(schema *Schema) (*Repository, error) {
	r := &Repository{
		nodes:     newNodeStore(),
		edges:     newEdgeStore(),
		relations: Relations{},
		nextID:    1,
	}
	if schema == nil {
		return r, nil
	}
	if schema.Relations != nil {
		if err := validateRelations(schema.Relations); err != nil {
			return nil, err
		}
		r.relations = schema.Relations
	}
	for i, n := range schema.Nodes {
		if n.ID == "" || n.Kind == "" {
			return nil, validationErr(fmt.Sprintf("nodes[%d]", i), "node with id and kind", n)
		}
		if _, ok := r.nodes.get(n.ID); ok {
			return nil, validationErr(fmt.Sprintf("nodes[%d]", i), "unique node id", n.ID)
		}
		node := n.clone()
		if node.Props == nil {
			node.Props = Props{}
		}
		r.nodes.put(node)
		// keep generated ids clear of numeric snapshot ids
		if num, err := strconv.Atoi(n.ID); err == nil && num >= r.nextID {
			r.nextID = num + 1
		}
	}
	for i, e := range schema.Edges {
		if _, ok := r.nodes.get(e.From); !ok {
			return nil, validationErr(fmt.Sprintf("edges[%d].from", i), "existing node id", e.From)
		}
		if _, ok := r.nodes.get(e.To); !ok {
			return nil, validationErr(fmt.Sprintf("edges[%d].to", i), "existing node id", e.To)
		}
		r.edges.put(e)
	}
	return r, nil
}

// allocID returns the next generated node id. Ids are stringified
// monotone integers starting at "1".
func (r *Repository) allocID() string {
	id := strconv.Itoa(r.nextID)
	r.nextID++
	return id
}

// Nodes returns every stored node in insertion order.
func (r *Repository) Nodes() []*Node {
	return r.nodes.all()
}

// Edges returns every stored edge in insertion order.
func (r *Repository) Edges() []Edge {
	return r.edges.all()
}

// GetModel returns the node-model view for a stored node.
func (r *Repository) GetModel(id string) (*NodeModel, error) {
	if _, ok := r.nodes.get(id); !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return &NodeModel{id: id, repo: r}, nil
}
