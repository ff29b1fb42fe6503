package library

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cinedost/cinedost/internal/model"
)

// WatchlistSort orders the watchlist view.
type WatchlistSort string

const (
	WatchlistSortAdded  WatchlistSort = "added" // server insertion order
	WatchlistSortRating WatchlistSort = "rating"
	WatchlistSortTitle  WatchlistSort = "title"
)

// HistoryFilter narrows the rating history by content type.
type HistoryFilter string

const (
	HistoryFilterAll   HistoryFilter = "all"
	HistoryFilterMovie HistoryFilter = "movie"
	HistoryFilterAnime HistoryFilter = "anime"
)

// HistorySort orders the rating history view.
type HistorySort string

const (
	HistorySortDate   HistorySort = "date"
	HistorySortRating HistorySort = "rating"
	HistorySortTitle  HistorySort = "title"
)

// SortWatchlist returns a newly ordered copy. Added keeps server order.
func SortWatchlist(moviesIn []model.Movie, by WatchlistSort) []model.Movie {
	out := make([]model.Movie, len(moviesIn))
	copy(out, moviesIn)

	switch by {
	case WatchlistSortRating:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].VoteAverage > out[j].VoteAverage
		})
	case WatchlistSortTitle:
		sort.SliceStable(out, func(i, j int) bool {
			return strings.ToLower(out[i].Title) < strings.ToLower(out[j].Title)
		})
	}
	return out
}

// FilterHistory returns the rated movies matching the content-type filter.
// Pure: input untouched.
func FilterHistory(items []RatedMovie, f HistoryFilter) []RatedMovie {
	if f == HistoryFilterAll || f == "" {
		out := make([]RatedMovie, len(items))
		copy(out, items)
		return out
	}

	out := make([]RatedMovie, 0, len(items))
	for _, item := range items {
		if string(item.Type) == string(f) {
			out = append(out, item)
		}
	}
	return out
}

// SortHistory returns a newly ordered copy: date and rating descending,
// title ascending.
func SortHistory(items []RatedMovie, by HistorySort) []RatedMovie {
	out := make([]RatedMovie, len(items))
	copy(out, items)

	switch by {
	case HistorySortDate:
		// RFC 3339 timestamps compare lexically.
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].RatedAt > out[j].RatedAt
		})
	case HistorySortRating:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].UserRating > out[j].UserRating
		})
	case HistorySortTitle:
		sort.SliceStable(out, func(i, j int) bool {
			return strings.ToLower(out[i].Title) < strings.ToLower(out[j].Title)
		})
	}
	return out
}

// AverageRating is the arithmetic mean of the user's stars, 0 for no ratings.
func AverageRating(items []RatedMovie) float64 {
	if len(items) == 0 {
		return 0
	}
	sum := 0
	for _, item := range items {
		sum += item.UserRating
	}
	return float64(sum) / float64(len(items))
}

// FormatAverage renders the mean to one decimal place; an empty list renders
// "0.0", never a division failure.
func FormatAverage(items []RatedMovie) string {
	return fmt.Sprintf("%.1f", AverageRating(items))
}

// AverageOfRatings is the mean over raw rating records, for profile stats.
func AverageOfRatings(ratings []model.Rating) float64 {
	if len(ratings) == 0 {
		return 0
	}
	sum := 0
	for _, r := range ratings {
		sum += r.Rating
	}
	return float64(sum) / float64(len(ratings))
}
