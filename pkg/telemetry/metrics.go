package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics holds the build counters. A nil *Metrics records nothing.
type Metrics struct {
	fetches    metric.Int64Counter
	skipped    metric.Int64Counter
	nodesAdded metric.Int64Counter
}

// NewMetrics registers the counters on meter, or on the global meter
// provider when meter is nil.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	if meter == nil {
		meter = otel.Meter("coactor")
	}

	fetches, err := meter.Int64Counter("coactor.fetches",
		metric.WithDescription("Metadata lookups issued, by kind."))
	if err != nil {
		return nil, err
	}
	skipped, err := meter.Int64Counter("coactor.fetch.skipped",
		metric.WithDescription("Lookups that failed and were skipped, by kind."))
	if err != nil {
		return nil, err
	}
	nodesAdded, err := meter.Int64Counter("coactor.nodes.added",
		metric.WithDescription("Nodes inserted into the graph."))
	if err != nil {
		return nil, err
	}

	return &Metrics{fetches: fetches, skipped: skipped, nodesAdded: nodesAdded}, nil
}

// Fetch counts one lookup of the given kind ("credits" or "cast").
func (m *Metrics) Fetch(ctx context.Context, kind string) {
	if m == nil {
		return
	}
	m.fetches.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", kind)))
}

// Skip counts one failed lookup.
func (m *Metrics) Skip(ctx context.Context, kind string) {
	if m == nil {
		return
	}
	m.skipped.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", kind)))
}

// NodesAdded counts inserted nodes for a round.
func (m *Metrics) NodesAdded(ctx context.Context, round, n int) {
	if m == nil || n == 0 {
		return
	}
	m.nodesAdded.Add(ctx, int64(n), metric.WithAttributes(attribute.Int("round", round)))
}
