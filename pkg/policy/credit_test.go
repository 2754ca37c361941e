package policy

import (
	"testing"

	"github.com/DrSkyle/coactor/pkg/tmdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreditFilter(t *testing.T) {
	matrix := tmdb.MovieCredit{ID: 603, Title: "The Matrix", VoteAverage: 8.2}
	reloaded := tmdb.MovieCredit{ID: 604, Title: "The Matrix Reloaded", VoteAverage: 7.1}
	docu := tmdb.MovieCredit{ID: 9001, Title: "Making The Matrix: A Documentary", VoteAverage: 9.0}

	tests := []struct {
		name string
		expr string
		want map[int64]bool
	}{
		{"empty allows all", "", map[int64]bool{603: true, 604: true, 9001: true}},
		{"vote threshold", "vote_average >= 8.0", map[int64]bool{603: true, 604: false, 9001: true}},
		{"title match", "!title.contains('Documentary')", map[int64]bool{603: true, 604: true, 9001: false}},
		{"id list", "id in [603, 604]", map[int64]bool{603: true, 604: true, 9001: false}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := NewCreditFilter(tt.expr, nil)
			require.NoError(t, err)
			for _, c := range []tmdb.MovieCredit{matrix, reloaded, docu} {
				assert.Equal(t, tt.want[c.ID], f.Allow(c), "movie %d", c.ID)
			}
		})
	}
}

func TestNewCreditFilter_Errors(t *testing.T) {
	_, err := NewCreditFilter("vote_average >=", nil)
	assert.Error(t, err)

	_, err = NewCreditFilter("unknown_field == 1", nil)
	assert.Error(t, err)

	_, err = NewCreditFilter("title", nil)
	assert.Error(t, err, "non-boolean expressions are rejected")
}

func TestCreditFilter_EvalErrorRejects(t *testing.T) {
	f, err := NewCreditFilter("100 / (id - 603) > 0", nil)
	require.NoError(t, err)
	assert.False(t, f.Allow(tmdb.MovieCredit{ID: 603}))
	assert.True(t, f.Allow(tmdb.MovieCredit{ID: 604}))
}
