package movies

import (
	"testing"

	"github.com/cinedost/cinedost/internal/model"
)

func sampleMovies() []model.Movie {
	return []model.Movie{
		{ID: 1, Title: "Alpha", VoteAverage: 6.1, ReleaseDate: "2020-01-01", GenreIDs: []int{28}},
		{ID: 2, Title: "Beta", VoteAverage: 8.7, ReleaseDate: "2018-06-15", GenreIDs: []int{18, 80}},
		{ID: 3, Title: "Gamma", VoteAverage: 7.4, ReleaseDate: "2023-11-20", GenreIDs: []int{28, 878}},
		{ID: 4, Title: "Delta", VoteAverage: 5.2, ReleaseDate: "", GenreIDs: nil},
	}
}

func idsOf(movies []model.Movie) []int {
	ids := make([]int, len(movies))
	for i, m := range movies {
		ids[i] = m.ID
	}
	return ids
}

func equalIDs(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestFilterByGenre(t *testing.T) {
	got := Filter(sampleMovies(), Criteria{Genre: "Action"})
	if !equalIDs(idsOf(got), []int{1, 3}) {
		t.Errorf("Expected ids [1 3], got %v", idsOf(got))
	}
}

func TestFilterByMinVote(t *testing.T) {
	got := Filter(sampleMovies(), Criteria{MinVote: 7})
	if !equalIDs(idsOf(got), []int{2, 3}) {
		t.Errorf("Expected ids [2 3], got %v", idsOf(got))
	}
}

func TestFilterAllGenresPassesEverything(t *testing.T) {
	for _, genre := range []string{"", GenreFilterAll} {
		got := Filter(sampleMovies(), Criteria{Genre: genre})
		if len(got) != 4 {
			t.Errorf("Genre %q: expected all 4 movies, got %d", genre, len(got))
		}
	}
}

func TestSortRating(t *testing.T) {
	got := Sort(sampleMovies(), SortRating)
	if !equalIDs(idsOf(got), []int{2, 3, 1, 4}) {
		t.Errorf("Expected rating order [2 3 1 4], got %v", idsOf(got))
	}
}

func TestSortDate(t *testing.T) {
	got := Sort(sampleMovies(), SortDate)
	if !equalIDs(idsOf(got), []int{3, 1, 2, 4}) {
		t.Errorf("Expected date order [3 1 2 4], got %v", idsOf(got))
	}
}

func TestSortRelevanceKeepsServerOrder(t *testing.T) {
	got := Sort(sampleMovies(), SortRelevance)
	if !equalIDs(idsOf(got), []int{1, 2, 3, 4}) {
		t.Errorf("Expected original order, got %v", idsOf(got))
	}
}

func TestDeriveIsIdempotent(t *testing.T) {
	criteria := Criteria{Genre: "Action", MinVote: 6}

	once := Derive(sampleMovies(), criteria, SortRating)
	twice := Derive(once, criteria, SortRating)

	if !equalIDs(idsOf(once), idsOf(twice)) {
		t.Errorf("Derive not idempotent: %v vs %v", idsOf(once), idsOf(twice))
	}
}

func TestDeriveDoesNotMutateInput(t *testing.T) {
	input := sampleMovies()
	before := idsOf(input)

	Derive(input, Criteria{MinVote: 7}, SortRating)

	if !equalIDs(idsOf(input), before) {
		t.Errorf("Input mutated: %v", idsOf(input))
	}
}

func TestDeriveEmptyInput(t *testing.T) {
	got := Derive(nil, Criteria{Genre: "Drama", MinVote: 9}, SortDate)
	if len(got) != 0 {
		t.Errorf("Expected empty result, got %v", got)
	}
}
