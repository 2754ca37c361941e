package graph

// Store is the mutation and query surface the expansion driver needs.
// *Graph is the only implementation; tests may wrap it.
type Store interface {
	// Node operations.
	AddNode(id, name string) bool
	TotalNodes() int

	// Edge operations.
	AddEdge(sourceID, targetID string) bool
	TotalEdges() int

	// Degree queries.
	Degrees() map[string]int
	MaxDegreeNodes() map[string]int
}

var _ Store = (*Graph)(nil)
