package movies

import (
	"sort"

	"github.com/cinedost/cinedost/internal/model"
)

// SortOrder selects the client-side ordering of a fetched result list.
type SortOrder string

const (
	SortRelevance SortOrder = "relevance" // server order, untouched
	SortRating    SortOrder = "rating"
	SortDate      SortOrder = "date"
)

// GenreFilterAll disables genre filtering.
const GenreFilterAll = "All Genres"

// Criteria is a client-side filter over an already-fetched list. Filtering
// never triggers a new request.
type Criteria struct {
	Genre   string  // display name, GenreFilterAll or "" for no filter
	MinVote float64 // 0 for no minimum
}

// Filter returns the movies matching the criteria. Pure: the input slice is
// never mutated and the result is a fresh slice.
func Filter(moviesIn []model.Movie, c Criteria) []model.Movie {
	genreID := 0
	if c.Genre != "" && c.Genre != GenreFilterAll {
		if id, ok := model.GenreIDByName(c.Genre); ok {
			genreID = id
		}
	}

	out := make([]model.Movie, 0, len(moviesIn))
	for _, m := range moviesIn {
		if genreID != 0 && !containsID(m.GenreIDs, genreID) {
			continue
		}
		if c.MinVote > 0 && m.VoteAverage < c.MinVote {
			continue
		}
		out = append(out, m)
	}
	return out
}

// Sort returns a newly ordered copy. Relevance keeps the server order; rating
// and date sort descending. Stable so equal keys keep relative order.
func Sort(moviesIn []model.Movie, by SortOrder) []model.Movie {
	out := make([]model.Movie, len(moviesIn))
	copy(out, moviesIn)

	switch by {
	case SortRating:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].VoteAverage > out[j].VoteAverage
		})
	case SortDate:
		// ISO dates compare lexically; empty dates sink to the end.
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].ReleaseDate > out[j].ReleaseDate
		})
	}
	return out
}

// Derive applies filter then sort, both pure, for rendering.
func Derive(moviesIn []model.Movie, c Criteria, by SortOrder) []model.Movie {
	return Sort(Filter(moviesIn, c), by)
}

func containsID(ids []int, id int) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
