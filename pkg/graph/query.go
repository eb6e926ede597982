package graph

import (
	"github.com/relgraph/relgraph/pkg/match"
)

// matchesNodeQuery reports whether a node satisfies a query. The kind tag
// is dispatched before this point and ignored here. Query entries are
// partitioned into value fields and relation fields; the node matches iff
// every entry matches.
func (r *Repository) matchesNodeQuery(n *Node, query map[string]any) (bool, error) {
	for key, cond := range query {
		if key == "kind" {
			continue
		}
		var ok bool
		var err error
		if r.isRelation(n.Kind, key) {
			ok, err = r.matchesRelationField(n, key, cond)
		} else {
			v, _ := n.Field(key)
			ok, err = match.Value(v, cond)
			if err != nil {
				err = wrapMatchErr(key, err)
			}
		}
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

// matchesRelationField evaluates a relation entry of a query. An array of
// sub-queries matches when some related node satisfies some sub-query; an
// operator object is applied to the list of related node ids, so length,
// empty and includes work on the relation as a whole.
func (r *Repository) matchesRelationField(n *Node, name string, cond any) (bool, error) {
	related := r.relatedNodes(n, name)

	switch c := cond.(type) {
	case []any:
		for _, node := range related {
			for i, sub := range c {
				subQuery, ok := sub.(map[string]any)
				if !ok {
					return false, validationErr(name, "relation sub-query object", c[i])
				}
				matched, err := r.matchesNodeQuery(node, subQuery)
				if err != nil {
					return false, err
				}
				if matched {
					return true, nil
				}
			}
		}
		return false, nil
	case []map[string]any:
		generic := make([]any, len(c))
		for i, sub := range c {
			generic[i] = sub
		}
		return r.matchesRelationField(n, name, generic)
	case map[string]any:
		ids := make([]any, len(related))
		for i, node := range related {
			ids[i] = node.ID
		}
		ok, err := match.Value(ids, c)
		if err != nil {
			return false, wrapMatchErr(name, err)
		}
		return ok, nil
	default:
		return false, validationErr(name, "sub-query list or operator object", cond)
	}
}
