package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00FF99"))
	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#AAAAAA")).
			Width(14)
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B"))
	boxStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7D40FF")).
			Padding(0, 1)
)

// Render formats s for a terminal.
func (s Summary) Render() string {
	var b strings.Builder

	seed := s.Seed.ID
	if s.Seed.Name != "" {
		seed = fmt.Sprintf("%s (%s)", s.Seed.Name, s.Seed.ID)
	}
	b.WriteString(titleStyle.Render("CO-ACTOR GRAPH") + "\n")
	b.WriteString(row("seed", seed))
	b.WriteString(row("nodes", fmt.Sprint(s.TotalNodes)))
	b.WriteString(row("edges", fmt.Sprint(s.TotalEdges)))

	ids := make([]string, 0, len(s.MaxDegree))
	for id := range s.MaxDegree {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		b.WriteString(row("max degree", fmt.Sprintf("%s = %d", id, s.MaxDegree[id])))
	}

	for _, r := range s.Rounds {
		line := fmt.Sprintf("frontier %d, added %d, fetches %d", r.Frontier, r.Added, r.Fetches)
		if r.Skipped > 0 {
			line += warnStyle.Render(fmt.Sprintf(", skipped %d", r.Skipped))
		}
		b.WriteString(row(fmt.Sprintf("round %d", r.Index), line))
	}

	return boxStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func row(label, value string) string {
	return labelStyle.Render(label) + value + "\n"
}
