package engine

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/DrSkyle/coactor/pkg/graph"
	"github.com/DrSkyle/coactor/pkg/tmdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fixture builds a small world:
//
//	seed 1 -> movies 10 (9.0), 11 (5.0, below threshold), 12 (missing cast)
//	2 -> movies 10, 13; 3 has no credits; 5 -> movie 14
func fixture() *tmdb.MockSource {
	m := tmdb.NewMockSource()
	m.Credits["1"] = []tmdb.MovieCredit{
		{ID: 10, Title: "Ten", VoteAverage: 9.0},
		{ID: 11, Title: "Eleven", VoteAverage: 5.0},
		{ID: 12, Title: "Twelve", VoteAverage: 8.5},
	}
	m.Credits["2"] = []tmdb.MovieCredit{
		{ID: 10, Title: "Ten", VoteAverage: 9.0},
		{ID: 13, Title: "Thirteen", VoteAverage: 8.0},
	}
	m.Credits["5"] = []tmdb.MovieCredit{
		{ID: 14, Title: "Fourteen", VoteAverage: 8.0},
	}
	m.Casts["10"] = []tmdb.CastMember{
		{ID: 1, Name: "Seed", Order: 0},
		{ID: 2, Name: "Bea", Order: 1},
		{ID: 3, Name: "Cal", Order: 2},
		{ID: 4, Name: "Dee", Order: 3},
	}
	m.Casts["11"] = []tmdb.CastMember{
		{ID: 9, Name: "Never", Order: 0},
	}
	m.Casts["13"] = []tmdb.CastMember{
		{ID: 2, Name: "Bea", Order: 0},
		{ID: 5, Name: "Eve", Order: 1},
	}
	m.Casts["14"] = []tmdb.CastMember{
		{ID: 5, Name: "Eve", Order: 0},
		{ID: 1, Name: "Seed", Order: 1},
		{ID: 6, Name: "Fay", Order: 2},
	}
	return m
}

func newDriver(g *graph.Graph, src tmdb.Source, cfg Config, opts ...Option) *Driver {
	opts = append([]Option{WithConfig(cfg), WithLogger(quietLogger())}, opts...)
	return New(g, src, opts...)
}

func baseConfig() Config {
	return Config{
		SeedID:         "1",
		SeedName:       "Seed",
		MinVoteAverage: 8.0,
		CastLimit:      3,
		Rounds:         2,
	}
}

func TestBuild(t *testing.T) {
	g := graph.New()
	src := fixture()
	d := newDriver(g, src, baseConfig())

	res, err := d.Build(context.Background())
	require.NoError(t, err)

	require.Len(t, res.Rounds, 3)
	assert.Equal(t, []string{"2", "3"}, res.Rounds[0].Added)
	assert.Equal(t, []string{"5"}, res.Rounds[1].Added)
	assert.Equal(t, []string{"6"}, res.Rounds[2].Added)
	assert.Equal(t, 1, res.Rounds[0].Skipped)
	assert.Equal(t, 1, res.Rounds[1].Skipped)
	assert.Equal(t, 2, res.Skipped())
	assert.Equal(t, 4, res.Added())

	assert.Equal(t, 5, g.TotalNodes())
	assert.Equal(t, 5, g.TotalEdges())
	for _, e := range [][2]string{{"1", "2"}, {"1", "3"}, {"2", "3"}, {"2", "5"}, {"5", "6"}} {
		assert.True(t, g.HasEdge(e[0], e[1]), "edge %v", e)
	}
	assert.False(t, g.HasEdge("1", "9"), "below-threshold credit must not be expanded")
	assert.Equal(t, map[string]int{"2": 3}, g.MaxDegreeNodes())

	assert.Equal(t, []int64{1, 2, 3, 5}, d.Excluded())
	assert.Equal(t, []string{
		"person:1", "movie:10", "movie:12",
		"person:2", "movie:10", "movie:13",
		"person:3",
		"person:5", "movie:14",
	}, src.Calls)
}

func TestSeed_AddsSeedNodeOutsideFrontier(t *testing.T) {
	g := graph.New()
	d := newDriver(g, fixture(), baseConfig())

	rd, err := d.Seed(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, rd.Index)
	assert.Equal(t, []string{"2", "3"}, rd.Added)
	assert.True(t, g.HasNode("1", "Seed"))
	assert.Equal(t, 3, g.TotalNodes())
	assert.Equal(t, []int64{1}, d.Excluded())
}

func TestSeed_WithoutName(t *testing.T) {
	g := graph.New()
	cfg := baseConfig()
	cfg.SeedName = ""
	d := newDriver(g, fixture(), cfg)

	_, err := d.Seed(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, g.TotalNodes())
	assert.Equal(t, 2, g.TotalEdges())
}

func TestSeed_RequiresID(t *testing.T) {
	d := newDriver(graph.New(), fixture(), Config{})
	_, err := d.Seed(context.Background())
	assert.Error(t, err)
}

func TestBuild_ExactRoundCount(t *testing.T) {
	cfg := baseConfig()
	cfg.Rounds = 5
	res, err := newDriver(graph.New(), fixture(), cfg).Build(context.Background())
	require.NoError(t, err)

	// Frontier empties after round 2, rounds still run.
	require.Len(t, res.Rounds, 6)
	for _, rd := range res.Rounds[3:] {
		assert.Empty(t, rd.Added)
		assert.Equal(t, 0, rd.Frontier)
	}
}

func TestBuild_SeedOnly(t *testing.T) {
	cfg := baseConfig()
	cfg.Rounds = 0
	g := graph.New()
	res, err := newDriver(g, fixture(), cfg).Build(context.Background())
	require.NoError(t, err)
	require.Len(t, res.Rounds, 1)
	assert.Equal(t, 3, g.TotalNodes())
}

func TestBuild_FetchFailureSkipped(t *testing.T) {
	src := fixture()
	src.Failing["10"] = true
	g := graph.New()

	res, err := newDriver(g, src, baseConfig()).Build(context.Background())
	require.NoError(t, err)
	assert.Empty(t, res.Rounds[0].Added)
	assert.Equal(t, 2, res.Rounds[0].Skipped)
	assert.Equal(t, 1, g.TotalNodes())
}

func TestBuild_StrictPartial(t *testing.T) {
	cfg := baseConfig()
	cfg.Strict = true
	g := graph.New()

	res, err := newDriver(g, fixture(), cfg).Build(context.Background())
	assert.True(t, errors.Is(err, ErrPartialResult), "got %v", err)
	require.NotNil(t, res)
	assert.Equal(t, 5, g.TotalNodes())
}

type denyMovie int64

func (m denyMovie) Allow(c tmdb.MovieCredit) bool { return c.ID != int64(m) }

func TestBuild_CreditFilter(t *testing.T) {
	g := graph.New()
	_, err := newDriver(g, fixture(), baseConfig(), WithCreditFilter(denyMovie(13))).Build(context.Background())
	require.NoError(t, err)

	assert.False(t, g.HasNode("5", "Eve"))
	assert.Equal(t, 3, g.TotalNodes())
}

func TestBuild_CancelBetweenFetches(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var events []Event
	progress := func(ev Event) {
		events = append(events, ev)
		if ev.Kind == EventRoundFinished && ev.Round == 0 {
			cancel()
		}
	}

	g := graph.New()
	res, err := newDriver(g, fixture(), baseConfig(), WithProgress(progress)).Build(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, res)
	require.Len(t, res.Rounds, 2)
	assert.Empty(t, res.Rounds[1].Added)
	assert.Equal(t, 3, g.TotalNodes())

	last := events[len(events)-1]
	assert.Equal(t, EventDone, last.Kind)
	assert.ErrorIs(t, last.Err, context.Canceled)
}

func TestBuild_ProgressEvents(t *testing.T) {
	var kinds []EventKind
	d := newDriver(graph.New(), fixture(), baseConfig(), WithProgress(func(ev Event) {
		kinds = append(kinds, ev.Kind)
	}))
	_, err := d.Build(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []EventKind{
		EventRoundStarted, EventNodeExpanded, EventRoundFinished,
		EventRoundStarted, EventNodeExpanded, EventNodeExpanded, EventRoundFinished,
		EventRoundStarted, EventNodeExpanded, EventRoundFinished,
		EventDone,
	}, kinds)
}

func TestEventKind_String(t *testing.T) {
	assert.Equal(t, "round_started", EventRoundStarted.String())
	assert.Equal(t, "done", EventDone.String())
	assert.Equal(t, "unknown", EventKind(42).String())
}
