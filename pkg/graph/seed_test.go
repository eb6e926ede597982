package graph_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/relgraph/relgraph/pkg/graph"
)

// publishingRelations declares the user/author/document/content schema
// used across the tests: user-(is)->author-(owns)->document-(uses)->content,
// with reciprocal inbound relations at every step.
func publishingRelations() graph.Relations {
	return graph.Relations{
		"user": {
			"authors": {To: "author", EdgeKind: "is"},
		},
		"author": {
			"users":     {From: "user", EdgeKind: "is"},
			"documents": {To: "document", EdgeKind: "owns"},
		},
		"document": {
			"authors":  {From: "author", EdgeKind: "owns"},
			"contents": {To: "content", EdgeKind: "uses"},
		},
		"content": {
			"documents": {From: "document", EdgeKind: "uses"},
		},
	}
}

// newSeedRepo builds the seed graph:
//
//	user1 -> author1, author2; user2 -> author3
//	author1 -> doc1; author2 -> doc2; author3 -> doc2, doc3
//	author4 owns nothing; doc1 -> content1; doc3 is public
func newSeedRepo(t *testing.T) *graph.Repository {
	t.Helper()
	repo, err := graph.New(&graph.Schema{
		Relations: publishingRelations(),
		Nodes: []*graph.Node{
			{ID: "user1", Kind: "user", Props: graph.Props{"username": "steve"}},
			{ID: "user2", Kind: "user", Props: graph.Props{"username": "maria"}},
			{ID: "author1", Kind: "author", Props: graph.Props{"name": "Steve O"}},
			{ID: "author2", Kind: "author", Props: graph.Props{"name": "Maria R"}},
			{ID: "author3", Kind: "author", Props: graph.Props{"name": "Steve R"}},
			{ID: "author4", Kind: "author", Props: graph.Props{"name": "Idle I"}},
			{ID: "doc1", Kind: "document", Props: graph.Props{"title": "Intro", "isPublic": false}},
			{ID: "doc2", Kind: "document", Props: graph.Props{"title": "Guide", "isPublic": false}},
			{ID: "doc3", Kind: "document", Props: graph.Props{"title": "Notes", "isPublic": true}},
			{ID: "content1", Kind: "content", Props: graph.Props{"body": "hello"}},
		},
		Edges: []graph.Edge{
			{From: "user1", Kind: "is", To: "author1"},
			{From: "user1", Kind: "is", To: "author2"},
			{From: "user2", Kind: "is", To: "author3"},
			{From: "author1", Kind: "owns", To: "doc1"},
			{From: "author2", Kind: "owns", To: "doc2"},
			{From: "author3", Kind: "owns", To: "doc2"},
			{From: "author3", Kind: "owns", To: "doc3"},
			{From: "doc1", Kind: "uses", To: "content1"},
		},
	})
	require.NoError(t, err)
	return repo
}

func modelIDs(models []*graph.NodeModel) []string {
	ids := make([]string, len(models))
	for i, m := range models {
		ids[i] = m.ID()
	}
	return ids
}

func nodeIDs(nodes []*graph.Node) []string {
	ids := make([]string, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID
	}
	return ids
}
