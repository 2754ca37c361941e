// Package tui renders build progress while the expansion driver runs.
package tui

import (
	"context"
	"time"

	"github.com/DrSkyle/coactor/pkg/engine"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// EventMsg carries one driver progress event into the program.
type EventMsg engine.Event

type tickMsg time.Time

type Model struct {
	spinner  spinner.Model
	progress progress.Model
	cancel   context.CancelFunc

	// state
	rounds   int // Expansion rounds, excluding the seed round.
	round    int
	frontier int
	added    int
	nodes    int
	edges    int
	lastNode string
	expanded int
	done     bool
	quitting bool
	err      error
	width    int

	startTime time.Time
	now       time.Time
}

// NewModel builds a model for a run of rounds expansion rounds. cancel is
// called when the user quits before the build finishes.
func NewModel(rounds int, cancel context.CancelFunc) Model {
	s := spinner.New()
	s.Spinner = spinner.Points
	s.Style = special

	now := time.Now()
	return Model{
		spinner:   s,
		progress:  progress.New(progress.WithGradient("#00FF99", "#00CCFF")),
		cancel:    cancel,
		rounds:    rounds,
		startTime: now,
		now:       now,
	}
}

// Notify returns a driver progress callback that forwards events to p.
func Notify(p *tea.Program) func(engine.Event) {
	return func(ev engine.Event) {
		p.Send(EventMsg(ev))
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, tick())
}

func tick() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			if !m.done && m.cancel != nil {
				m.cancel()
			}
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.progress.Width = max(msg.Width-10, 10)

	case EventMsg:
		m.apply(engine.Event(msg))
		if m.done {
			return m, tea.Quit
		}

	case tickMsg:
		m.now = time.Time(msg)
		if m.done {
			return m, nil
		}
		return m, tick()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) apply(ev engine.Event) {
	m.nodes, m.edges = ev.Nodes, ev.Edges
	switch ev.Kind {
	case engine.EventRoundStarted:
		m.round = ev.Round
		m.frontier = ev.Frontier
		m.added = 0
		m.expanded = 0
	case engine.EventNodeExpanded:
		m.lastNode = ev.NodeID
		m.added = ev.Added
		m.expanded++
	case engine.EventRoundFinished:
		m.added = ev.Added
	case engine.EventDone:
		m.done = true
		m.err = ev.Err
	}
}

// Percent is the share of rounds finished, counting the seed round.
func (m Model) Percent() float64 {
	if m.done {
		return 1
	}
	total := m.rounds + 1
	return float64(m.round) / float64(total)
}

// Err is the error carried by the final event, if any.
func (m Model) Err() error {
	return m.err
}
