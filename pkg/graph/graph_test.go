package graph

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddNode_Idempotent(t *testing.T) {
	g := New()
	assert.True(t, g.AddNode("2975", "Laurence Fishburne"))
	assert.False(t, g.AddNode("2975", "Laurence Fishburne"))
	assert.Equal(t, 1, g.TotalNodes())
}

func TestAddNode_PairIdentity(t *testing.T) {
	// Same id, different name is a distinct node.
	g := New()
	g.AddNode("6384", "Keanu Reeves")
	g.AddNode("6384", "keanu reeves")
	assert.Equal(t, 2, g.TotalNodes())
}

func TestAddNode_SanitizesFirstSeparator(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Jane,Doe", "JaneDoe"},
		{"No Separator", "No Separator"},
		{"A,B,C", "AB,C"},
		{",Leading", "Leading"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			g := New()
			g.AddNode("7", tt.in)
			require.Len(t, g.Nodes(), 1)
			assert.Equal(t, tt.want, g.Nodes()[0].Name)
			assert.True(t, g.HasNode("7", tt.in))
		})
	}
}

func TestAddNode_SanitizedDuplicate(t *testing.T) {
	g := New()
	g.AddNode("7", "Jane,Doe")
	assert.False(t, g.AddNode("7", "JaneDoe"))
	assert.Equal(t, 1, g.TotalNodes())
}

func TestAddEdge_Symmetric(t *testing.T) {
	g := New()
	assert.True(t, g.AddEdge("a", "b"))
	assert.False(t, g.AddEdge("b", "a"))
	assert.False(t, g.AddEdge("a", "b"))
	assert.Equal(t, 1, g.TotalEdges())

	// First orientation wins.
	assert.Equal(t, []Edge{{Source: "a", Target: "b"}}, g.Edges())
	assert.True(t, g.HasEdge("b", "a"))
}

func TestAddEdge_DanglingEndpoints(t *testing.T) {
	g := New()
	assert.True(t, g.AddEdge("x", "y"))
	assert.Equal(t, 0, g.TotalNodes())
	assert.Equal(t, 1, g.TotalEdges())
}

func TestEdgeKey_NoCollision(t *testing.T) {
	// Keys compare both ids, so concatenation ambiguity cannot merge edges.
	g := New()
	g.AddEdge("1", "23")
	g.AddEdge("12", "3")
	assert.Equal(t, 2, g.TotalEdges())
}

func TestSnapshotsAreCopies(t *testing.T) {
	g := New()
	g.AddNode("a", "A")
	g.AddEdge("a", "b")

	nodes := g.Nodes()
	nodes[0].Name = "changed"
	edges := g.Edges()
	edges[0].Target = "changed"

	assert.Equal(t, "A", g.Nodes()[0].Name)
	assert.Equal(t, "b", g.Edges()[0].Target)
}

func TestDump(t *testing.T) {
	g := New()
	g.AddNode("a", "Alpha")
	g.AddEdge("a", "b")

	var buf bytes.Buffer
	g.Dump(&buf)
	assert.Contains(t, buf.String(), "nodes (1):")
	assert.Contains(t, buf.String(), "a\tAlpha")
	assert.Contains(t, buf.String(), "a -- b")
}
