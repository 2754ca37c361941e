// Package report summarizes a finished build for humans and for machines.
package report

import (
	"fmt"
	"io"

	"github.com/DrSkyle/coactor/pkg/engine"
	"github.com/DrSkyle/coactor/pkg/graph"
	"gopkg.in/yaml.v3"
)

// Seed identifies the person a build started from.
type Seed struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name,omitempty"`
}

// RoundSummary mirrors engine.Round with counts only.
type RoundSummary struct {
	Index    int `yaml:"index"`
	Frontier int `yaml:"frontier"`
	Added    int `yaml:"added"`
	Fetches  int `yaml:"fetches"`
	Skipped  int `yaml:"skipped"`
}

// Summary is written next to the node and edge tables as summary.yaml.
type Summary struct {
	Seed       Seed           `yaml:"seed"`
	TotalNodes int            `yaml:"total_nodes"`
	TotalEdges int            `yaml:"total_edges"`
	MaxDegree  map[string]int `yaml:"max_degree"`
	Skipped    int            `yaml:"skipped"`
	Rounds     []RoundSummary `yaml:"rounds"`
}

// NewSummary collects totals from g and per-round counts from res.
// res may be nil for graphs loaded from disk.
func NewSummary(seed Seed, g graph.Store, res *engine.Result) Summary {
	s := Summary{
		Seed:       seed,
		TotalNodes: g.TotalNodes(),
		TotalEdges: g.TotalEdges(),
		MaxDegree:  g.MaxDegreeNodes(),
		Rounds:     []RoundSummary{},
	}
	if res == nil {
		return s
	}
	s.Skipped = res.Skipped()
	for _, r := range res.Rounds {
		s.Rounds = append(s.Rounds, RoundSummary{
			Index:    r.Index,
			Frontier: r.Frontier,
			Added:    len(r.Added),
			Fetches:  r.Fetches,
			Skipped:  r.Skipped,
		})
	}
	return s
}

// WriteYAML encodes s with two-space indentation.
func (s Summary) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("failed to encode summary: %w", err)
	}
	return enc.Close()
}

// ReadSummary decodes a summary previously written by WriteYAML.
func ReadSummary(r io.Reader) (Summary, error) {
	var s Summary
	if err := yaml.NewDecoder(r).Decode(&s); err != nil {
		return Summary{}, fmt.Errorf("failed to decode summary: %w", err)
	}
	return s, nil
}
