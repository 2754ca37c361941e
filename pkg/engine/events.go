package engine

// EventKind tags a progress Event.
type EventKind int

const (
	EventRoundStarted EventKind = iota
	EventNodeExpanded
	EventRoundFinished
	EventDone
)

func (k EventKind) String() string {
	switch k {
	case EventRoundStarted:
		return "round_started"
	case EventNodeExpanded:
		return "node_expanded"
	case EventRoundFinished:
		return "round_finished"
	case EventDone:
		return "done"
	}
	return "unknown"
}

// Event reports build progress. Counts are graph totals at emit time.
type Event struct {
	Kind     EventKind
	Round    int
	NodeID   string
	Frontier int // Frontier size of the round.
	Added    int // Nodes added so far in the round.
	Nodes    int
	Edges    int
	Err      error // Set on EventDone when the build stopped early.
}
