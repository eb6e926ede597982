package graph

import "fmt"

// Update resolves the selector and applies the patch to every matched
// node. Value fields are shallow-merged over the existing record; id and
// kind in the patch are ignored. Relation entries hold add/remove
// directives whose elements resolve to target nodes through find; add
// inserts the relation's edge (idempotent), remove deletes it by
// canonical id.
func (r *Repository) Update(selector any, patch map[string]any) ([]*NodeModel, error) {
	nodes, err := r.findNodes(selector)
	if err != nil {
		return nil, err
	}
	for _, n := range nodes {
		if err := r.patchNode(n, patch); err != nil {
			return nil, err
		}
	}
	return r.models(nodes), nil
}

func (r *Repository) patchNode(n *Node, patch map[string]any) error {
	for key, value := range patch {
		switch {
		case key == "id" || key == "kind":
		case r.isRelation(n.Kind, key):
			if err := r.applyRelationDirective(n, key, value); err != nil {
				return err
			}
		default:
			n.Props[key] = value
		}
	}
	return nil
}

func (r *Repository) applyRelationDirective(n *Node, name string, value any) error {
	directive, ok := value.(map[string]any)
	if !ok {
		return validationErr(name, "add/remove directive object", value)
	}
	for key := range directive {
		if key != "add" && key != "remove" {
			return validationErr(name+"."+key, "add or remove", key)
		}
	}
	rel, _ := r.relation(n.Kind, name)
	p := parseRelation(rel)

	if add, ok := directive["add"]; ok {
		targets, err := r.resolveDirectiveTargets(add, p, name+".add")
		if err != nil {
			return err
		}
		for _, target := range targets {
			r.edges.put(relationEdge(p, n, target))
		}
	}
	if remove, ok := directive["remove"]; ok {
		targets, err := r.resolveDirectiveTargets(remove, p, name+".remove")
		if err != nil {
			return err
		}
		for _, target := range targets {
			r.edges.delete(relationEdge(p, n, target).ID())
		}
	}
	return nil
}

// resolveDirectiveTargets normalises a directive value to a list of
// partial sub-queries, injects the relation's kind, and resolves each
// through the find engine.
func (r *Repository) resolveDirectiveTargets(value any, p parsedRelation, path string) ([]*Node, error) {
	entries, err := normalizeEntryList(value, path)
	if err != nil {
		return nil, err
	}
	var out []*Node
	for i, entry := range entries {
		query := make(map[string]any, len(entry)+1)
		for k, v := range entry {
			query[k] = v
		}
		query["kind"] = p.relatedKind
		matched, err := r.findByQuery(query)
		if err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", path, i, err)
		}
		out = append(out, matched...)
	}
	return out, nil
}
