package graph_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relgraph/relgraph/pkg/graph"
)

func TestModelAttrs(t *testing.T) {
	repo := newSeedRepo(t)

	m, err := repo.GetModel("author1")
	require.NoError(t, err)
	assert.Equal(t, "author1", m.Attr("id"))
	assert.Equal(t, "author", m.Attr("kind"))
	assert.Equal(t, "Steve O", m.Attr("name"))
	assert.Nil(t, m.Attr("nonexistent"))

	assert.Equal(t, []string{"documents", "id", "kind", "name", "users"}, m.Attrs())
}

func TestModelRelationAccessIsLive(t *testing.T) {
	repo := newSeedRepo(t)

	m, err := repo.GetModel("author1")
	require.NoError(t, err)
	assert.Equal(t, []string{"doc1"}, modelIDs(m.Related("documents")))

	// mutate the edge set underneath the model; the next read sees it
	_, err = repo.Update("author1", map[string]any{
		"documents": map[string]any{"add": map[string]any{"id": "doc3"}},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"doc1", "doc3"}, modelIDs(m.Related("documents")))
}

// reciprocal relations observe the same edge from both ends
func TestSymmetricTraversal(t *testing.T) {
	repo := newSeedRepo(t)

	user, err := repo.GetModel("user1")
	require.NoError(t, err)
	for _, author := range user.Related("authors") {
		back := modelIDs(author.Related("users"))
		assert.Contains(t, back, "user1")
	}

	author, err := repo.GetModel("author3")
	require.NoError(t, err)
	for _, doc := range author.Related("documents") {
		owners := modelIDs(doc.Related("authors"))
		assert.Contains(t, owners, "author3")
	}
}

// cyclic traversal terminates because models are lazy
func TestModelCyclicTraversal(t *testing.T) {
	repo := newSeedRepo(t)

	m, err := repo.GetModel("user1")
	require.NoError(t, err)
	hop := m.Related("authors")[0].
		Related("users")[0].
		Related("authors")[0].
		Related("users")[0]
	assert.Equal(t, "user1", hop.ID())
}

func TestModelMarshalJSONFlattensValueFields(t *testing.T) {
	repo := newSeedRepo(t)

	m, err := repo.GetModel("doc3")
	require.NoError(t, err)
	data, err := json.Marshal(m)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, "doc3", out["id"])
	assert.Equal(t, "document", out["kind"])
	assert.Equal(t, "Notes", out["title"])
	assert.Equal(t, true, out["isPublic"])
	// relations stay lazy and are not embedded
	assert.NotContains(t, out, "authors")
}

func TestModelAfterDelete(t *testing.T) {
	repo := newSeedRepo(t)

	m, err := repo.GetModel("doc1")
	require.NoError(t, err)
	_, err = repo.Delete("doc1")
	require.NoError(t, err)

	assert.Nil(t, m.Attr("title"))
	assert.Empty(t, m.Related("authors"))
	assert.Equal(t, "", m.Kind())
}

func TestGetRelatedNodesUndeclaredRelation(t *testing.T) {
	repo := newSeedRepo(t)

	nodes, err := repo.GetRelatedNodes("user1", "documents")
	require.NoError(t, err)
	assert.Empty(t, nodes)

	_, err = repo.GetRelatedNodes("ghost", "authors")
	require.ErrorIs(t, err, graph.ErrNotFound)
}

func TestEdgeKindConstraintFiltersTraversal(t *testing.T) {
	repo, err := graph.New(&graph.Schema{
		Relations: graph.Relations{
			"person": {
				"friends": {To: "person", EdgeKind: "friend"},
				"rivals":  {To: "person", EdgeKind: "rival"},
			},
		},
		Nodes: []*graph.Node{
			{ID: "p1", Kind: "person", Props: graph.Props{}},
			{ID: "p2", Kind: "person", Props: graph.Props{}},
			{ID: "p3", Kind: "person", Props: graph.Props{}},
		},
		Edges: []graph.Edge{
			{From: "p1", Kind: "friend", To: "p2"},
			{From: "p1", Kind: "rival", To: "p3"},
		},
	})
	require.NoError(t, err)

	friends, err := repo.GetRelatedNodes("p1", "friends")
	require.NoError(t, err)
	assert.Equal(t, []string{"p2"}, nodeIDs(friends))

	rivals, err := repo.GetRelatedNodes("p1", "rivals")
	require.NoError(t, err)
	assert.Equal(t, []string{"p3"}, nodeIDs(rivals))
}
