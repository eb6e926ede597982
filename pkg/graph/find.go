package graph

import "fmt"

// Find resolves a selector to node models. The selector is an id, a list
// of ids, a query object, or a list of query objects. A query list is a
// disjunction: results are concatenated per branch and not deduplicated.
func (r *Repository) Find(selector any) ([]*NodeModel, error) {
	nodes, err := r.findNodes(selector)
	if err != nil {
		return nil, err
	}
	return r.models(nodes), nil
}

// FindID returns the model for a single id.
func (r *Repository) FindID(id string) (*NodeModel, error) {
	return r.GetModel(id)
}

func (r *Repository) models(nodes []*Node) []*NodeModel {
	out := make([]*NodeModel, len(nodes))
	for i, n := range nodes {
		out[i] = &NodeModel{id: n.ID, repo: r}
	}
	return out
}

// findNodes dispatches the selector to the id, id-list, query or
// query-list engine.
func (r *Repository) findNodes(selector any) ([]*Node, error) {
	switch sel := selector.(type) {
	case string:
		n, ok := r.nodes.get(sel)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, sel)
		}
		return []*Node{n}, nil
	case []string:
		return r.findByIDs(sel)
	case map[string]any:
		return r.findByQuery(sel)
	case []map[string]any:
		var out []*Node
		for _, q := range sel {
			matched, err := r.findByQuery(q)
			if err != nil {
				return nil, err
			}
			out = append(out, matched...)
		}
		return out, nil
	case []any:
		return r.findByList(sel)
	default:
		return nil, validationErr("selector", "id, id list, query, or query list", selector)
	}
}

// findByList routes a heterogeneous list on its first element: strings
// mean an id list, objects mean a disjunction of queries. An empty list
// is an empty id list.
func (r *Repository) findByList(sel []any) ([]*Node, error) {
	if len(sel) == 0 {
		return nil, nil
	}
	if _, ok := sel[0].(string); ok {
		ids := make([]string, len(sel))
		for i, raw := range sel {
			id, ok := raw.(string)
			if !ok {
				return nil, validationErr(fmt.Sprintf("selector[%d]", i), "id string", raw)
			}
			ids[i] = id
		}
		return r.findByIDs(ids)
	}
	queries := make([]map[string]any, len(sel))
	for i, raw := range sel {
		q, ok := raw.(map[string]any)
		if !ok {
			return nil, validationErr(fmt.Sprintf("selector[%d]", i), "query object", raw)
		}
		queries[i] = q
	}
	return r.findNodes(queries)
}

func (r *Repository) findByIDs(ids []string) ([]*Node, error) {
	out := make([]*Node, 0, len(ids))
	for _, id := range ids {
		n, ok := r.nodes.get(id)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		out = append(out, n)
	}
	return out, nil
}

// findByQuery keeps the nodes of the query's kind, in insertion order,
// that satisfy the query.
func (r *Repository) findByQuery(query map[string]any) ([]*Node, error) {
	kind, ok := query["kind"].(string)
	if !ok {
		return nil, validationErr("kind", "node kind string", query["kind"])
	}
	var out []*Node
	for _, n := range r.nodes.byKind(kind) {
		matched, err := r.matchesNodeQuery(n, query)
		if err != nil {
			return nil, err
		}
		if matched {
			out = append(out, n)
		}
	}
	return out, nil
}
