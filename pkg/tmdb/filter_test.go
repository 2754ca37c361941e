package tmdb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func castIDs(cast []CastMember) []int64 {
	ids := make([]int64, 0, len(cast))
	for _, m := range cast {
		ids = append(ids, m.ID)
	}
	return ids
}

func TestFilterCast(t *testing.T) {
	cast := []CastMember{
		{ID: 1, Order: 0},
		{ID: 2, Order: 1},
		{ID: 3, Order: 2},
		{ID: 4, Order: 3},
	}

	tests := []struct {
		name string
		q    CastQuery
		want []int64
	}{
		{"no query", CastQuery{}, []int64{1, 2, 3, 4}},
		{"limit only", CastQuery{Limit: 2}, []int64{1, 2}},
		{"exclude only", CastQuery{ExcludeIDs: []int64{2, 4}}, []int64{1, 3}},
		{"exclude before limit", CastQuery{Limit: 3, ExcludeIDs: []int64{2}}, []int64{1, 3}},
		{"exclude all", CastQuery{ExcludeIDs: []int64{1, 2, 3, 4}}, []int64{}},
		{"limit beyond cast", CastQuery{Limit: 10}, []int64{1, 2, 3, 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, castIDs(FilterCast(cast, tt.q)))
		})
	}
}

func TestFilterCast_DoesNotMutateInput(t *testing.T) {
	cast := []CastMember{{ID: 1, Order: 0}, {ID: 2, Order: 1}}
	FilterCast(cast, CastQuery{ExcludeIDs: []int64{1}})
	assert.Equal(t, int64(1), cast[0].ID)
}

func TestFilterCredits(t *testing.T) {
	credits := []MovieCredit{
		{ID: 603, Title: "The Matrix", VoteAverage: 8.2},
		{ID: 604, Title: "The Matrix Reloaded", VoteAverage: 7.1},
		{ID: 605, Title: "The Matrix Revolutions", VoteAverage: 8.0},
	}

	got := FilterCredits(credits, CreditQuery{MinVoteAverage: 8.0})
	assert.Equal(t, []MovieCredit{credits[0], credits[2]}, got)

	assert.Len(t, FilterCredits(credits, CreditQuery{}), 3)
	assert.Empty(t, FilterCredits(credits, CreditQuery{MinVoteAverage: 9.5}))
}
