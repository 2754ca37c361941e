package storage

import (
	"bytes"
	"context"
	"fmt"

	"github.com/DrSkyle/coactor/pkg/graph"
)

// Artifact keys.
const (
	NodesKey   = "nodes.csv"
	EdgesKey   = "edges.csv"
	SummaryKey = "summary.yaml"
)

// SaveGraph exports g as the node and edge tables.
func SaveGraph(ctx context.Context, store BlobStore, g *graph.Graph) error {
	var nodes, edges bytes.Buffer
	if err := g.ExportNodesTable(&nodes); err != nil {
		return fmt.Errorf("failed to export nodes: %w", err)
	}
	if err := g.ExportEdgesTable(&edges); err != nil {
		return fmt.Errorf("failed to export edges: %w", err)
	}
	if err := store.Put(ctx, NodesKey, nodes.Bytes()); err != nil {
		return err
	}
	return store.Put(ctx, EdgesKey, edges.Bytes())
}

// LoadGraph hydrates a graph from previously saved tables.
func LoadGraph(ctx context.Context, store BlobStore) (*graph.Graph, error) {
	nodes, err := store.Get(ctx, NodesKey)
	if err != nil {
		return nil, err
	}
	edges, err := store.Get(ctx, EdgesKey)
	if err != nil {
		return nil, err
	}
	return graph.LoadFromTables(bytes.NewReader(nodes), bytes.NewReader(edges))
}
