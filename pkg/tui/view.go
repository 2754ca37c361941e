package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var (
	special = lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF99"))
	subtle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA"))
	warn    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F05D5E"))
	title   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D40FF"))
)

func (m Model) View() string {
	if m.quitting && !m.done {
		return subtle.Render("  Build cancelled.") + "\n"
	}

	var s strings.Builder
	s.WriteString("\n  " + title.Render("COACTOR") + "  ")
	if m.done {
		if m.err != nil {
			s.WriteString(warn.Render("stopped: " + m.err.Error()))
		} else {
			s.WriteString(special.Render("done"))
		}
	} else {
		s.WriteString(m.spinner.View() + " " + m.roundLabel())
	}
	s.WriteString("\n\n")

	s.WriteString("  " + m.progress.ViewAs(m.Percent()) + "\n\n")
	s.WriteString(subtle.Render(fmt.Sprintf("  nodes %d  edges %d  frontier %d/%d  added %d",
		m.nodes, m.edges, m.expanded, m.frontier, m.added)) + "\n")
	if m.lastNode != "" {
		s.WriteString(subtle.Render("  last expanded "+m.lastNode) + "\n")
	}
	elapsed := m.now.Sub(m.startTime).Round(time.Second)
	s.WriteString(subtle.Render(fmt.Sprintf("  elapsed %s  (q to quit)", elapsed)) + "\n")
	return s.String()
}

func (m Model) roundLabel() string {
	if m.round == 0 {
		return "seed round"
	}
	return fmt.Sprintf("round %d/%d", m.round, m.rounds)
}
