package tmdb

import (
	"context"
	"fmt"
)

// MockSource serves canned credits and casts from memory and applies the
// same filters as Client. Missing keys report ErrNotFound.
type MockSource struct {
	Credits map[string][]MovieCredit // person id -> credits
	Casts   map[string][]CastMember  // movie id -> cast

	// Failing forces ErrFetchFailed for the listed person or movie ids.
	Failing map[string]bool

	// Calls records every lookup as "person:<id>" or "movie:<id>".
	Calls []string
}

// NewMockSource returns an empty mock.
func NewMockSource() *MockSource {
	return &MockSource{
		Credits: make(map[string][]MovieCredit),
		Casts:   make(map[string][]CastMember),
		Failing: make(map[string]bool),
	}
}

func (m *MockSource) FetchCastForMovie(ctx context.Context, movieID string, q CastQuery) ([]CastMember, error) {
	m.Calls = append(m.Calls, "movie:"+movieID)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.Failing[movieID] {
		return nil, fmt.Errorf("%w: movie %s", ErrFetchFailed, movieID)
	}
	cast, ok := m.Casts[movieID]
	if !ok {
		return nil, fmt.Errorf("%w: movie %s", ErrNotFound, movieID)
	}
	return FilterCast(cast, q), nil
}

func (m *MockSource) FetchCreditsForPerson(ctx context.Context, personID string, q CreditQuery) ([]MovieCredit, error) {
	m.Calls = append(m.Calls, "person:"+personID)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.Failing[personID] {
		return nil, fmt.Errorf("%w: person %s", ErrFetchFailed, personID)
	}
	credits, ok := m.Credits[personID]
	if !ok {
		return nil, fmt.Errorf("%w: person %s", ErrNotFound, personID)
	}
	return FilterCredits(credits, q), nil
}

// DemoSource returns a small fixed co-appearance world seeded at
// Laurence Fishburne (2975). Used by --mock runs.
func DemoSource() *MockSource {
	m := NewMockSource()

	m.Credits["2975"] = []MovieCredit{
		{ID: 603, Title: "The Matrix", VoteAverage: 8.2},
		{ID: 11324, Title: "Mystic River", VoteAverage: 7.5},
		{ID: 330457, Title: "John Wick: Chapter 2", VoteAverage: 7.3},
		{ID: 8834, Title: "Boyz n the Hood", VoteAverage: 8.1},
	}
	m.Casts["603"] = []CastMember{
		{ID: 6384, Name: "Keanu Reeves", Character: "Neo", CreditID: "52fe425bc3a36847f80181c1", Order: 0},
		{ID: 2975, Name: "Laurence Fishburne", Character: "Morpheus", CreditID: "52fe425bc3a36847f801818d", Order: 1},
		{ID: 530, Name: "Carrie-Anne Moss", Character: "Trinity", CreditID: "52fe425bc3a36847f8018191", Order: 2},
		{ID: 1331, Name: "Hugo Weaving", Character: "Agent Smith", CreditID: "52fe425bc3a36847f8018195", Order: 3},
	}
	m.Casts["8834"] = []CastMember{
		{ID: 9778, Name: "Ice Cube", Character: "Doughboy", CreditID: "52fe44b9c3a36847f80a8b21", Order: 0},
		{ID: 31, Name: "Cuba Gooding Jr.", Character: "Tre Styles", CreditID: "52fe44b9c3a36847f80a8b1d", Order: 1},
		{ID: 2975, Name: "Laurence Fishburne", Character: "Furious Styles", CreditID: "52fe44b9c3a36847f80a8b25", Order: 2},
		{ID: 15009, Name: "Nia Long", Character: "Brandi", CreditID: "52fe44b9c3a36847f80a8b29", Order: 3},
	}

	m.Credits["6384"] = []MovieCredit{
		{ID: 603, Title: "The Matrix", VoteAverage: 8.2},
		{ID: 550, Title: "Speed", VoteAverage: 8.0},
	}
	m.Casts["550"] = []CastMember{
		{ID: 6384, Name: "Keanu Reeves", Character: "Jack Traven", CreditID: "52fe420dc3a36847f800045b", Order: 0},
		{ID: 2040, Name: "Sandra Bullock", Character: "Annie Porter", CreditID: "52fe420dc3a36847f800045f", Order: 1},
		{ID: 2283, Name: "Dennis Hopper", Character: "Howard Payne", CreditID: "52fe420dc3a36847f8000463", Order: 2},
	}
	m.Credits["530"] = []MovieCredit{
		{ID: 77, Title: "Memento", VoteAverage: 8.2},
	}
	m.Casts["77"] = []CastMember{
		{ID: 529, Name: "Guy Pearce", Character: "Leonard Shelby", CreditID: "52fe4211c3a36847f8001ad3", Order: 0},
		{ID: 530, Name: "Carrie-Anne Moss", Character: "Natalie", CreditID: "52fe4211c3a36847f8001ad7", Order: 1},
		{ID: 532, Name: "Joe Pantoliano", Character: "Teddy", CreditID: "52fe4211c3a36847f8001adb", Order: 2},
	}
	m.Credits["9778"] = []MovieCredit{
		{ID: 8834, Title: "Boyz n the Hood", VoteAverage: 8.1},
	}
	m.Credits["31"] = []MovieCredit{
		{ID: 9444, Title: "Jerry Maguire", VoteAverage: 6.8},
	}
	m.Credits["2040"] = []MovieCredit{
		{ID: 59440, Title: "Gravity", VoteAverage: 8.0},
	}
	m.Casts["59440"] = []CastMember{
		{ID: 2040, Name: "Sandra Bullock", Character: "Ryan Stone", CreditID: "52fe4959c3a368484e12a4a1", Order: 0},
		{ID: 1461, Name: "George Clooney", Character: "Matt Kowalski", CreditID: "52fe4959c3a368484e12a4a5", Order: 1},
	}
	return m
}
