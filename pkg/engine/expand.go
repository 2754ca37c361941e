package engine

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/DrSkyle/coactor/pkg/tmdb"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// Round is the outcome of one fetch round.
type Round struct {
	Index    int
	Frontier int      // Nodes expanded this round.
	Added    []string // Node ids inserted this round, in order. Next frontier.
	Fetches  int
	Skipped  int
}

// Result accumulates the rounds of a build.
type Result struct {
	Rounds []Round
}

// Skipped is the number of lookups skipped across all rounds.
func (r *Result) Skipped() int {
	n := 0
	for _, rd := range r.Rounds {
		n += rd.Skipped
	}
	return n
}

// Added is the number of nodes inserted across all rounds.
func (r *Result) Added() int {
	n := 0
	for _, rd := range r.Rounds {
		n += len(rd.Added)
	}
	return n
}

// Build runs the seed round followed by exactly Config.Rounds expansion
// rounds. There is no fixpoint check: empty frontiers still count as rounds.
// On cancellation the partial result is returned with ctx.Err().
func (d *Driver) Build(ctx context.Context) (*Result, error) {
	ctx, span := d.Tracer.Start(ctx, "Driver.Build")
	defer span.End()

	res := &Result{}
	finish := func(err error) (*Result, error) {
		span.SetAttributes(
			attribute.Int("graph.nodes", d.Graph.TotalNodes()),
			attribute.Int("graph.edges", d.Graph.TotalEdges()),
			attribute.Int("build.skipped", res.Skipped()),
		)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		d.emit(Event{Kind: EventDone, Round: len(res.Rounds) - 1, Nodes: d.Graph.TotalNodes(), Edges: d.Graph.TotalEdges(), Err: err})
		return res, err
	}

	d.Logger.Info("Starting build",
		"seed", d.config.SeedID,
		"rounds", d.config.Rounds,
		"cast_limit", d.config.CastLimit,
		"min_vote_average", d.config.MinVoteAverage,
	)

	seed, err := d.Seed(ctx)
	res.Rounds = append(res.Rounds, seed)
	if err != nil {
		return finish(err)
	}

	frontier := seed.Added
	for i := 1; i <= d.config.Rounds; i++ {
		rd, err := d.Expand(ctx, i, frontier)
		res.Rounds = append(res.Rounds, rd)
		if err != nil {
			return finish(err)
		}
		frontier = rd.Added
	}

	d.Logger.Info("Build finished",
		"nodes", d.Graph.TotalNodes(),
		"edges", d.Graph.TotalEdges(),
		"skipped", res.Skipped(),
	)

	if skipped := res.Skipped(); skipped > 0 && d.config.Strict {
		return finish(fmt.Errorf("%w: %d lookups skipped", ErrPartialResult, skipped))
	}
	return finish(nil)
}

// Seed runs round 0 from Config.SeedID. The seed node itself, when named,
// is inserted before the round and is not part of the returned frontier.
func (d *Driver) Seed(ctx context.Context) (Round, error) {
	if d.config.SeedID == "" {
		return Round{}, errors.New("seed id is required")
	}
	if d.config.SeedName != "" {
		d.Graph.AddNode(d.config.SeedID, d.config.SeedName)
	}
	return d.Expand(ctx, 0, []string{d.config.SeedID})
}

// Expand runs one round over frontier. Each frontier id joins the exclusion
// set before its own lookups, so it never re-adds itself. Failed lookups are
// skipped; only context cancellation stops the round early.
func (d *Driver) Expand(ctx context.Context, index int, frontier []string) (Round, error) {
	ctx, span := d.Tracer.Start(ctx, "Driver.Round")
	defer span.End()
	span.SetAttributes(attribute.Int("round.index", index), attribute.Int("round.frontier", len(frontier)))

	rd := Round{Index: index, Frontier: len(frontier), Added: []string{}}
	d.emit(Event{Kind: EventRoundStarted, Round: index, Frontier: len(frontier), Nodes: d.Graph.TotalNodes(), Edges: d.Graph.TotalEdges()})
	d.Logger.Info("Round started", "round", index, "frontier", len(frontier))

	for _, id := range frontier {
		if err := ctx.Err(); err != nil {
			return d.endRound(ctx, rd, err)
		}
		d.exclude(id)
		if err := d.expandNode(ctx, &rd, id); err != nil {
			return d.endRound(ctx, rd, err)
		}
		d.emit(Event{Kind: EventNodeExpanded, Round: index, NodeID: id, Frontier: len(frontier), Added: len(rd.Added), Nodes: d.Graph.TotalNodes(), Edges: d.Graph.TotalEdges()})
	}

	span.SetAttributes(attribute.Int("round.added", len(rd.Added)), attribute.Int("round.skipped", rd.Skipped))
	return d.endRound(ctx, rd, nil)
}

func (d *Driver) endRound(ctx context.Context, rd Round, err error) (Round, error) {
	d.metrics.NodesAdded(ctx, rd.Index, len(rd.Added))
	d.emit(Event{Kind: EventRoundFinished, Round: rd.Index, Frontier: rd.Frontier, Added: len(rd.Added), Nodes: d.Graph.TotalNodes(), Edges: d.Graph.TotalEdges()})
	if err != nil {
		d.Logger.Warn("Round interrupted", "round", rd.Index, "added", len(rd.Added), "error", err)
		return rd, err
	}
	d.Logger.Info("Round finished", "round", rd.Index, "added", len(rd.Added), "skipped", rd.Skipped)
	return rd, nil
}

// expandNode links personID to the cast of each of its qualifying movies.
// The returned error is non-nil only for cancellation.
func (d *Driver) expandNode(ctx context.Context, rd *Round, personID string) error {
	rd.Fetches++
	d.metrics.Fetch(ctx, "credits")
	credits, err := d.Source.FetchCreditsForPerson(ctx, personID, tmdb.CreditQuery{MinVoteAverage: d.config.MinVoteAverage})
	if err != nil {
		return d.skip(ctx, rd, "credits", personID, err)
	}
	d.Logger.Debug("Expanding person", "id", personID, "credits", len(credits))

	for _, credit := range credits {
		if d.filter != nil && !d.filter.Allow(credit) {
			d.Logger.Debug("Credit rejected by filter", "person", personID, "movie", credit.ID, "title", credit.Title)
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		movieID := strconv.FormatInt(credit.ID, 10)
		rd.Fetches++
		d.metrics.Fetch(ctx, "cast")
		cast, err := d.Source.FetchCastForMovie(ctx, movieID, tmdb.CastQuery{
			Limit:      d.config.CastLimit,
			ExcludeIDs: d.Excluded(),
		})
		if err != nil {
			if err := d.skip(ctx, rd, "cast", movieID, err); err != nil {
				return err
			}
			continue
		}

		for _, m := range cast {
			memberID := strconv.FormatInt(m.ID, 10)
			if d.Graph.AddNode(memberID, m.Name) {
				rd.Added = append(rd.Added, memberID)
			}
			d.Graph.AddEdge(personID, memberID)
		}
	}
	return nil
}

// skip logs a failed lookup and counts it. Cancellation is passed through.
func (d *Driver) skip(ctx context.Context, rd *Round, kind, id string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	rd.Skipped++
	d.metrics.Skip(ctx, kind)
	if errors.Is(err, tmdb.ErrNotFound) {
		d.Logger.Warn("Lookup not found, skipping", "kind", kind, "id", id)
	} else {
		d.Logger.Warn("Lookup failed, skipping", "kind", kind, "id", id, "error", err)
	}
	return nil
}
