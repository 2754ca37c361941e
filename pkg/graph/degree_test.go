package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaxDegreeNodes(t *testing.T) {
	tests := []struct {
		name  string
		nodes []string
		edges [][2]string
		want  map[string]int
	}{
		{
			name:  "single hub",
			nodes: []string{"a", "b", "c"},
			edges: [][2]string{{"a", "b"}, {"a", "c"}},
			want:  map[string]int{"a": 2},
		},
		{
			name:  "ties",
			nodes: []string{"a", "b", "c", "d"},
			edges: [][2]string{{"a", "b"}, {"c", "d"}},
			want:  map[string]int{"a": 1, "b": 1, "c": 1, "d": 1},
		},
		{
			name:  "no edges",
			nodes: []string{"a", "b"},
			want:  map[string]int{"a": 0, "b": 0},
		},
		{
			name: "empty",
			want: map[string]int{},
		},
		{
			name:  "self loop counts twice",
			nodes: []string{"a", "b"},
			edges: [][2]string{{"a", "a"}, {"b", "c"}},
			want:  map[string]int{"a": 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New()
			for _, id := range tt.nodes {
				g.AddNode(id, "name-"+id)
			}
			for _, e := range tt.edges {
				g.AddEdge(e[0], e[1])
			}
			got := g.MaxDegreeNodes()
			assert.NotNil(t, got)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDegrees_IgnoresDanglingEndpoints(t *testing.T) {
	g := New()
	g.AddNode("a", "A")
	g.AddEdge("a", "ghost")

	assert.Equal(t, map[string]int{"a": 1}, g.Degrees())
}
