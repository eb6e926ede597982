package graph

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// snapshotFile is the yaml form of a schema snapshot:
//
//	relations:
//	  user:
//	    authors: {to: author, edge_kind: is}
//	nodes:
//	  - id: user1
//	    kind: user
//	    props: {username: steve}
//	edges:
//	  - {from: user1, kind: is, to: author1}
type snapshotFile struct {
	Relations Relations      `yaml:"relations"`
	Nodes     []snapshotNode `yaml:"nodes"`
	Edges     []Edge         `yaml:"edges"`
}

type snapshotNode struct {
	ID    string         `yaml:"id"`
	Kind  string         `yaml:"kind"`
	Props map[string]any `yaml:"props"`
}

// LoadSnapshot reads a schema snapshot from a yaml file. The snapshot is
// only consumed; the repository never writes it back.
func LoadSnapshot(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}
	return ParseSnapshot(data)
}

// ParseSnapshot parses yaml snapshot bytes into a schema.
func ParseSnapshot(data []byte) (*Schema, error) {
	var file snapshotFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing snapshot: %w", err)
	}
	schema := &Schema{
		Relations: file.Relations,
		Edges:     file.Edges,
	}
	for _, n := range file.Nodes {
		schema.Nodes = append(schema.Nodes, &Node{ID: n.ID, Kind: n.Kind, Props: n.Props})
	}
	return schema, nil
}
