// Package graph holds the deduplicated co-appearance graph: cast members as
// nodes, shared-movie relations as undirected edges.
package graph

import (
	"fmt"
	"io"
	"strings"
)

// Separator is the field separator of the exported tables. It never survives
// in a stored node name.
const Separator = ","

// Node is one cast member. Identity for dedup is the full (ID, Name) pair.
type Node struct {
	ID   string
	Name string
}

// Edge is an undirected co-appearance relation. Source and Target keep the
// orientation of the first insert; lookups ignore it.
type Edge struct {
	Source string
	Target string
}

type edgeKey struct {
	lo, hi string
}

func keyOf(a, b string) edgeKey {
	if b < a {
		a, b = b, a
	}
	return edgeKey{lo: a, hi: b}
}

// Graph is a single-owner, append-only node and edge set.
// Slices keep insertion order for export; the sets answer membership.
type Graph struct {
	nodes   []Node
	edges   []Edge
	nodeSet map[Node]struct{}
	edgeSet map[edgeKey]struct{}
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{
		nodes:   make([]Node, 0, 256),
		edges:   make([]Edge, 0, 256),
		nodeSet: make(map[Node]struct{}),
		edgeSet: make(map[edgeKey]struct{}),
	}
}

// SanitizeName removes the first separator from name. Only one occurrence is
// dropped, later ones stay.
func SanitizeName(name string) string {
	if i := strings.Index(name, Separator); i >= 0 {
		return name[:i] + name[i+len(Separator):]
	}
	return name
}

// AddNode inserts (id, name) unless that exact pair is already stored.
// It reports whether the node was inserted.
func (g *Graph) AddNode(id, name string) bool {
	n := Node{ID: id, Name: SanitizeName(name)}
	if _, ok := g.nodeSet[n]; ok {
		return false
	}
	g.nodeSet[n] = struct{}{}
	g.nodes = append(g.nodes, n)
	return true
}

// AddEdge inserts the relation unless it exists in either orientation.
// Endpoints are not required to be stored nodes.
func (g *Graph) AddEdge(sourceID, targetID string) bool {
	k := keyOf(sourceID, targetID)
	if _, ok := g.edgeSet[k]; ok {
		return false
	}
	g.edgeSet[k] = struct{}{}
	g.edges = append(g.edges, Edge{Source: sourceID, Target: targetID})
	return true
}

// HasNode reports whether the exact pair is stored. name is sanitized first.
func (g *Graph) HasNode(id, name string) bool {
	_, ok := g.nodeSet[Node{ID: id, Name: SanitizeName(name)}]
	return ok
}

// HasEdge reports whether a and b are connected, in either orientation.
func (g *Graph) HasEdge(a, b string) bool {
	_, ok := g.edgeSet[keyOf(a, b)]
	return ok
}

func (g *Graph) TotalNodes() int {
	return len(g.nodes)
}

func (g *Graph) TotalEdges() int {
	return len(g.edges)
}

// Nodes returns a copy of the stored nodes in insertion order.
func (g *Graph) Nodes() []Node {
	out := make([]Node, len(g.nodes))
	copy(out, g.nodes)
	return out
}

// Edges returns a copy of the stored edges in insertion order.
func (g *Graph) Edges() []Edge {
	out := make([]Edge, len(g.edges))
	copy(out, g.edges)
	return out
}

// Dump prints nodes then edges, one per line. Debug aid.
func (g *Graph) Dump(w io.Writer) {
	fmt.Fprintf(w, "nodes (%d):\n", len(g.nodes))
	for _, n := range g.nodes {
		fmt.Fprintf(w, "  %s\t%s\n", n.ID, n.Name)
	}
	fmt.Fprintf(w, "edges (%d):\n", len(g.edges))
	for _, e := range g.edges {
		fmt.Fprintf(w, "  %s -- %s\n", e.Source, e.Target)
	}
}
