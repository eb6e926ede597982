package graph

import "fmt"

// Create materialises a nested create input into a node, recursively
// creating related nodes and the edges linking them. Relation entries
// accept nested create inputs or {id} refs to existing nodes. There is no
// rollback: an error mid-tree leaves earlier inserts in place.
func (r *Repository) Create(input map[string]any) (*NodeModel, error) {
	n, err := r.createOne(input, "")
	if err != nil {
		return nil, err
	}
	return &NodeModel{id: n.ID, repo: r}, nil
}

// CreateAll maps Create over a list of inputs in order.
func (r *Repository) CreateAll(inputs []map[string]any) ([]*NodeModel, error) {
	out := make([]*NodeModel, 0, len(inputs))
	for _, input := range inputs {
		m, err := r.Create(input)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

func (r *Repository) createOne(input map[string]any, path string) (*Node, error) {
	kind, ok := input["kind"].(string)
	if !ok {
		return nil, validationErr(joinPath(path, "kind"), "node kind string", input["kind"])
	}

	node := &Node{ID: r.allocID(), Kind: kind, Props: Props{}}
	relationInputs := map[string]any{}
	for key, value := range input {
		switch {
		case key == "kind" || key == "id":
		case r.isRelation(kind, key):
			relationInputs[key] = value
		default:
			node.Props[key] = value
		}
	}
	r.nodes.put(node)

	for name, sub := range relationInputs {
		rel, _ := r.relation(kind, name)
		p := parseRelation(rel)
		entries, err := normalizeEntryList(sub, joinPath(path, name))
		if err != nil {
			return nil, err
		}
		for i, entry := range entries {
			entryPath := fmt.Sprintf("%s[%d]", joinPath(path, name), i)
			related, err := r.resolveCreateEntry(entry, p, entryPath)
			if err != nil {
				return nil, err
			}
			r.edges.put(relationEdge(p, node, related))
		}
	}
	return node, nil
}

// resolveCreateEntry turns one relation entry into a node: a {id} ref
// resolves to the existing node, anything else is a nested create input
// for the relation's related kind.
func (r *Repository) resolveCreateEntry(entry map[string]any, p parsedRelation, path string) (*Node, error) {
	if id, ok := nodeRef(entry); ok {
		node, exists := r.nodes.get(id)
		if !exists {
			return nil, validationErr(path+".id", "existing node id", id)
		}
		if node.Kind != p.relatedKind {
			return nil, validationErr(path+".id", "node of kind "+p.relatedKind, node.Kind)
		}
		return node, nil
	}
	child := make(map[string]any, len(entry)+1)
	for k, v := range entry {
		child[k] = v
	}
	child["kind"] = p.relatedKind
	return r.createOne(child, path)
}

// nodeRef reports whether an entry is exactly {id: "..."}.
func nodeRef(entry map[string]any) (string, bool) {
	if len(entry) != 1 {
		return "", false
	}
	id, ok := entry["id"].(string)
	return id, ok
}

// normalizeEntryList accepts a single object or a list of objects.
func normalizeEntryList(sub any, path string) ([]map[string]any, error) {
	switch s := sub.(type) {
	case map[string]any:
		return []map[string]any{s}, nil
	case []map[string]any:
		return s, nil
	case []any:
		out := make([]map[string]any, len(s))
		for i, raw := range s {
			entry, ok := raw.(map[string]any)
			if !ok {
				return nil, validationErr(fmt.Sprintf("%s[%d]", path, i), "relation entry object", raw)
			}
			out[i] = entry
		}
		return out, nil
	default:
		return nil, validationErr(path, "relation entry or list", sub)
	}
}

func joinPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}
