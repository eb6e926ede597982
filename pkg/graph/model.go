package graph

import (
	"encoding/json"
	"sort"
)

// NodeModel is a lazy view over a stored node. It holds only the node id
// and a repository handle; value fields and related models are read from
// the stores on each access, so a model never observes a stale related
// list and cycles in the graph never materialise as owning cycles.
type NodeModel struct {
	id   string
	repo *Repository
}

// ID returns the underlying node id.
func (m *NodeModel) ID() string { return m.id }

// Kind returns the underlying node kind, or "" if the node was deleted.
func (m *NodeModel) Kind() string {
	if n, ok := m.repo.nodes.get(m.id); ok {
		return n.Kind
	}
	return ""
}

// Attr resolves an attribute by name: a relation name yields the related
// []*NodeModel, a value field yields its value, anything else is nil.
func (m *NodeModel) Attr(name string) any {
	n, ok := m.repo.nodes.get(m.id)
	if !ok {
		return nil
	}
	if m.repo.isRelation(n.Kind, name) {
		return m.repo.models(m.repo.relatedNodes(n, name))
	}
	if v, ok := n.Field(name); ok {
		return v
	}
	return nil
}

// Related resolves a relation name to the related models, empty for
// value fields and undeclared names.
func (m *NodeModel) Related(name string) []*NodeModel {
	models, _ := m.Attr(name).([]*NodeModel)
	return models
}

// Attrs advertises the model's property set: the node's value fields
// plus every relation name declared for its kind, sorted.
func (m *NodeModel) Attrs() []string {
	n, ok := m.repo.nodes.get(m.id)
	if !ok {
		return nil
	}
	names := make([]string, 0, len(n.Props)+len(m.repo.relations[n.Kind])+2)
	names = append(names, "id", "kind")
	for k := range n.Props {
		names = append(names, k)
	}
	for k := range m.repo.relations[n.Kind] {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Record returns a copy of the current node record.
func (m *NodeModel) Record() (Node, bool) {
	n, ok := m.repo.nodes.get(m.id)
	if !ok {
		return Node{}, false
	}
	return *n.clone(), true
}

// MarshalJSON emits the flattened value fields only; relations stay lazy
// so cyclic graphs serialize.
func (m *NodeModel) MarshalJSON() ([]byte, error) {
	n, ok := m.repo.nodes.get(m.id)
	if !ok {
		return []byte("null"), nil
	}
	return json.Marshal(n)
}
