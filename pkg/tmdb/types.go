// Package tmdb fetches movie credits and casts from The Movie Database and
// applies the filtering contract the graph builder depends on.
package tmdb

import (
	"context"
	"errors"
)

var (
	// ErrNotFound means the service has no such person or movie.
	ErrNotFound = errors.New("tmdb: not found")
	// ErrFetchFailed covers every other non-success outcome, including
	// exhausted retries and undecodable bodies.
	ErrFetchFailed = errors.New("tmdb: fetch failed")
)

// CastMember is one entry of a movie's cast list.
type CastMember struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Character string `json:"character"`
	CreditID  string `json:"credit_id"`
	Order     int    `json:"order"`
}

// MovieCredit is one movie in a person's acting credits.
type MovieCredit struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	VoteAverage float64 `json:"vote_average"`
}

// CastQuery narrows a cast list. Zero values mean "not set".
type CastQuery struct {
	// Limit keeps members with 0 <= order < Limit, applied after exclusion.
	Limit int
	// ExcludeIDs are person ids removed before limiting.
	ExcludeIDs []int64
}

// CreditQuery narrows a credit list. Zero means "not set".
type CreditQuery struct {
	MinVoteAverage float64
}

// Source is the metadata lookup the expansion driver consumes. Both calls
// return an error wrapping ErrNotFound or ErrFetchFailed on failure, and a
// nil error with an empty slice when the lookup succeeded but nothing matched.
type Source interface {
	FetchCastForMovie(ctx context.Context, movieID string, q CastQuery) ([]CastMember, error)
	FetchCreditsForPerson(ctx context.Context, personID string, q CreditQuery) ([]MovieCredit, error)
}
