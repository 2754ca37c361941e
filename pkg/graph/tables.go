package graph

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrMalformedInput marks a node or edge table that cannot be loaded.
var ErrMalformedInput = errors.New("malformed table")

var (
	nodesHeader = []string{"id", "name"}
	edgesHeader = []string{"source", "target"}
)

// LoadFromTables builds a graph from a node table and an edge table, each
// with a header row and two columns. Records are trusted to be deduplicated
// already and are stored as read. Any malformed record aborts the load.
func LoadFromTables(nodes, edges io.Reader) (*Graph, error) {
	nodeRows, err := readTable("nodes", nodes, nodesHeader)
	if err != nil {
		return nil, err
	}
	edgeRows, err := readTable("edges", edges, edgesHeader)
	if err != nil {
		return nil, err
	}

	g := New()
	for _, r := range nodeRows {
		n := Node{ID: r[0], Name: r[1]}
		g.nodes = append(g.nodes, n)
		g.nodeSet[n] = struct{}{}
	}
	for _, r := range edgeRows {
		g.edges = append(g.edges, Edge{Source: r[0], Target: r[1]})
		g.edgeSet[keyOf(r[0], r[1])] = struct{}{}
	}
	return g, nil
}

func readTable(table string, r io.Reader, header []string) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(header)

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedInput, table, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s: missing header", ErrMalformedInput, table)
	}
	for i, col := range header {
		if !strings.EqualFold(strings.TrimSpace(rows[0][i]), col) {
			return nil, fmt.Errorf("%w: %s: header %q, want %q",
				ErrMalformedInput, table, strings.Join(rows[0], Separator), strings.Join(header, Separator))
		}
	}
	return rows[1:], nil
}

// ExportNodesTable writes the "id,name" header and one record per node.
func (g *Graph) ExportNodesTable(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(nodesHeader); err != nil {
		return err
	}
	for _, n := range g.nodes {
		if err := cw.Write([]string{n.ID, n.Name}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportEdgesTable writes the "source,target" header and one record per edge.
func (g *Graph) ExportEdgesTable(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(edgesHeader); err != nil {
		return err
	}
	for _, e := range g.edges {
		if err := cw.Write([]string{e.Source, e.Target}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadFiles loads a graph from node and edge CSV files on disk.
func ReadFiles(nodesPath, edgesPath string) (*Graph, error) {
	nf, err := os.Open(nodesPath)
	if err != nil {
		return nil, err
	}
	defer nf.Close()

	ef, err := os.Open(edgesPath)
	if err != nil {
		return nil, err
	}
	defer ef.Close()

	return LoadFromTables(nf, ef)
}

// WriteFiles exports the graph to node and edge CSV files, replacing them.
func (g *Graph) WriteFiles(nodesPath, edgesPath string) error {
	if err := writeFile(nodesPath, g.ExportNodesTable); err != nil {
		return fmt.Errorf("failed to write nodes: %w", err)
	}
	if err := writeFile(edgesPath, g.ExportEdgesTable); err != nil {
		return fmt.Errorf("failed to write edges: %w", err)
	}
	return nil
}

func writeFile(path string, export func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := export(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
