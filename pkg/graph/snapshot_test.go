package graph_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relgraph/relgraph/pkg/graph"
)

const snapshotYAML = `
relations:
  user:
    authors: {to: author, edge_kind: is}
  author:
    users: {from: user, edge_kind: is}
nodes:
  - id: user1
    kind: user
    props:
      username: steve
  - id: author1
    kind: author
    props:
      name: Steve O
edges:
  - {from: user1, kind: is, to: author1}
`

func TestParseSnapshot(t *testing.T) {
	schema, err := graph.ParseSnapshot([]byte(snapshotYAML))
	require.NoError(t, err)

	repo, err := graph.New(schema)
	require.NoError(t, err)

	m, err := repo.GetModel("user1")
	require.NoError(t, err)
	assert.Equal(t, "steve", m.Attr("username"))
	assert.Equal(t, []string{"author1"}, modelIDs(m.Related("authors")))
}

func TestLoadSnapshotFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.yaml")
	require.NoError(t, os.WriteFile(path, []byte(snapshotYAML), 0o644))

	schema, err := graph.LoadSnapshot(path)
	require.NoError(t, err)
	assert.Len(t, schema.Nodes, 2)
	assert.Len(t, schema.Edges, 1)

	_, err = graph.LoadSnapshot(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestNewRejectsBadSchema(t *testing.T) {
	// relation with both directions set
	_, err := graph.New(&graph.Schema{
		Relations: graph.Relations{
			"user": {"authors": {From: "author", To: "author"}},
		},
	})
	require.ErrorIs(t, err, graph.ErrValidation)

	// edge referencing a missing node
	_, err = graph.New(&graph.Schema{
		Nodes: []*graph.Node{{ID: "a", Kind: "user"}},
		Edges: []graph.Edge{{From: "a", To: "b", Kind: "is"}},
	})
	require.ErrorIs(t, err, graph.ErrValidation)

	// duplicate node ids
	_, err = graph.New(&graph.Schema{
		Nodes: []*graph.Node{
			{ID: "a", Kind: "user"},
			{ID: "a", Kind: "user"},
		},
	})
	require.ErrorIs(t, err, graph.ErrValidation)
}

func TestNilSchema(t *testing.T) {
	repo, err := graph.New(nil)
	require.NoError(t, err)
	assert.Empty(t, repo.Nodes())
	assert.Empty(t, repo.Edges())
	assert.Empty(t, repo.RelationsFor("user"))
}
