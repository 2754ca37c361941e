// Package engine grows the co-appearance graph from a seed person over a
// fixed number of fetch rounds.
package engine

import (
	"errors"
	"log/slog"
	"strconv"

	"github.com/DrSkyle/coactor/pkg/graph"
	"github.com/DrSkyle/coactor/pkg/telemetry"
	"github.com/DrSkyle/coactor/pkg/tmdb"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// ErrPartialResult indicates the build finished but some lookups were skipped.
// Only returned in strict mode.
var ErrPartialResult = errors.New("build completed with partial results")

// Defaults.
const (
	DefaultCastLimit      = 3
	DefaultRounds         = 2
	DefaultMinVoteAverage = 8.0
)

// Config holds driver settings.
type Config struct {
	SeedID   string
	SeedName string // Added as the first node when set.

	MinVoteAverage float64
	CastLimit      int
	Rounds         int // Expansion rounds after the seed round.

	// Strict turns skipped lookups into ErrPartialResult.
	Strict bool
}

// CreditFilter is an extra predicate on qualifying credits.
type CreditFilter interface {
	Allow(credit tmdb.MovieCredit) bool
}

// Driver runs the seed and expansion rounds. It is single-use and not safe
// for concurrent calls; the store is mutated in program order.
type Driver struct {
	Graph  graph.Store
	Source tmdb.Source
	Logger *slog.Logger
	Tracer trace.Tracer

	config   Config
	filter   CreditFilter
	metrics  *telemetry.Metrics
	progress func(Event)

	// Exclusion set, grown one id per expanded node.
	excluded    []int64
	excludedSet map[int64]struct{}
}

// Option defines a functional configuration override.
type Option func(*Driver)

// WithConfig sets raw config. Non-positive limits fall back to defaults.
func WithConfig(cfg Config) Option {
	return func(d *Driver) {
		if cfg.CastLimit <= 0 {
			cfg.CastLimit = DefaultCastLimit
		}
		if cfg.Rounds < 0 {
			cfg.Rounds = DefaultRounds
		}
		d.config = cfg
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(d *Driver) {
		if l != nil {
			d.Logger = l
		}
	}
}

// WithTracer sets the tracer.
func WithTracer(t trace.Tracer) Option {
	return func(d *Driver) {
		d.Tracer = t
	}
}

// WithCreditFilter applies f to credits that passed the vote threshold.
func WithCreditFilter(f CreditFilter) Option {
	return func(d *Driver) {
		d.filter = f
	}
}

// WithMetrics records fetch and insert counters.
func WithMetrics(m *telemetry.Metrics) Option {
	return func(d *Driver) {
		d.metrics = m
	}
}

// WithProgress registers a callback invoked synchronously for each Event.
func WithProgress(fn func(Event)) Option {
	return func(d *Driver) {
		d.progress = fn
	}
}

// New wires a driver to its store and metadata source.
func New(store graph.Store, src tmdb.Source, opts ...Option) *Driver {
	d := &Driver{
		Graph:  store,
		Source: src,
		Logger: slog.Default(),
		Tracer: otel.Tracer("coactor/engine"),
		config: Config{
			MinVoteAverage: DefaultMinVoteAverage,
			CastLimit:      DefaultCastLimit,
			Rounds:         DefaultRounds,
		},
		excludedSet: make(map[int64]struct{}),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Excluded returns the ids excluded from cast lookups so far, in the order
// they were added.
func (d *Driver) Excluded() []int64 {
	out := make([]int64, len(d.excluded))
	copy(out, d.excluded)
	return out
}

func (d *Driver) exclude(id string) {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		d.Logger.Warn("Non-numeric person id cannot be excluded", "id", id)
		return
	}
	if _, ok := d.excludedSet[n]; ok {
		return
	}
	d.excludedSet[n] = struct{}{}
	d.excluded = append(d.excluded, n)
}

func (d *Driver) emit(ev Event) {
	if d.progress != nil {
		d.progress(ev)
	}
}
