package library

import (
	"testing"

	"github.com/cinedost/cinedost/internal/model"
)

func sampleWatchlist() []model.Movie {
	return []model.Movie{
		{ID: 1, Title: "zulu", VoteAverage: 6.0},
		{ID: 2, Title: "Alpha", VoteAverage: 8.5},
		{ID: 3, Title: "mango", VoteAverage: 7.1},
	}
}

func sampleHistory() []RatedMovie {
	return []RatedMovie{
		{Movie: model.Movie{ID: 1, Title: "Beta"}, UserRating: 3, RatedAt: "2026-01-10T08:00:00Z", Type: model.ContentTypeMovie},
		{Movie: model.Movie{ID: 2, Title: "alpha"}, UserRating: 5, RatedAt: "2026-03-02T12:00:00Z", Type: model.ContentTypeAnime},
		{Movie: model.Movie{ID: 3, Title: "Gamma"}, UserRating: 4, RatedAt: "2026-02-20T18:30:00Z", Type: model.ContentTypeMovie},
	}
}

func historyIDs(items []RatedMovie) []int {
	ids := make([]int, len(items))
	for i, item := range items {
		ids[i] = item.ID
	}
	return ids
}

func TestSortWatchlistAddedKeepsOrder(t *testing.T) {
	got := SortWatchlist(sampleWatchlist(), WatchlistSortAdded)
	for i, want := range []int{1, 2, 3} {
		if got[i].ID != want {
			t.Errorf("Position %d: expected id %d, got %d", i, want, got[i].ID)
		}
	}
}

func TestSortWatchlistByRating(t *testing.T) {
	got := SortWatchlist(sampleWatchlist(), WatchlistSortRating)
	for i, want := range []int{2, 3, 1} {
		if got[i].ID != want {
			t.Errorf("Position %d: expected id %d, got %d", i, want, got[i].ID)
		}
	}
}

func TestSortWatchlistByTitleIgnoresCase(t *testing.T) {
	got := SortWatchlist(sampleWatchlist(), WatchlistSortTitle)
	for i, want := range []string{"Alpha", "mango", "zulu"} {
		if got[i].Title != want {
			t.Errorf("Position %d: expected %q, got %q", i, want, got[i].Title)
		}
	}
}

func TestSortWatchlistDoesNotMutateInput(t *testing.T) {
	input := sampleWatchlist()
	SortWatchlist(input, WatchlistSortRating)
	if input[0].ID != 1 {
		t.Errorf("Input mutated, first id now %d", input[0].ID)
	}
}

func TestFilterHistoryByType(t *testing.T) {
	got := FilterHistory(sampleHistory(), HistoryFilterAnime)
	if len(got) != 1 || got[0].ID != 2 {
		t.Errorf("Expected only the anime entry, got %v", historyIDs(got))
	}
}

func TestFilterHistoryAll(t *testing.T) {
	got := FilterHistory(sampleHistory(), HistoryFilterAll)
	if len(got) != 3 {
		t.Errorf("Expected all 3 entries, got %d", len(got))
	}
}

func TestSortHistoryByDateNewestFirst(t *testing.T) {
	got := SortHistory(sampleHistory(), HistorySortDate)
	want := []int{2, 3, 1}
	ids := historyIDs(got)
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("Expected date order %v, got %v", want, ids)
			break
		}
	}
}

func TestSortHistoryByRatingHighestFirst(t *testing.T) {
	got := SortHistory(sampleHistory(), HistorySortRating)
	if got[0].UserRating != 5 || got[2].UserRating != 3 {
		t.Errorf("Expected ratings [5 4 3], got %v", historyIDs(got))
	}
}

func TestSortHistoryByTitleIgnoresCase(t *testing.T) {
	got := SortHistory(sampleHistory(), HistorySortTitle)
	for i, want := range []string{"alpha", "Beta", "Gamma"} {
		if got[i].Title != want {
			t.Errorf("Position %d: expected %q, got %q", i, want, got[i].Title)
		}
	}
}

func TestAverageRating(t *testing.T) {
	got := AverageRating(sampleHistory())
	if got != 4.0 {
		t.Errorf("Expected average 4.0, got %v", got)
	}
}

func TestFormatAverage(t *testing.T) {
	tests := []struct {
		name  string
		items []RatedMovie
		want  string
	}{
		{"empty", nil, "0.0"},
		{"whole", sampleHistory(), "4.0"},
		{"fractional", []RatedMovie{{UserRating: 3}, {UserRating: 4}}, "3.5"},
	}
	for _, tt := range tests {
		if got := FormatAverage(tt.items); got != tt.want {
			t.Errorf("%s: expected %q, got %q", tt.name, tt.want, got)
		}
	}
}
