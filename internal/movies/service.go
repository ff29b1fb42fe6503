package movies

import (
	"context"
	"log"
	"strings"

	"github.com/cinedost/cinedost/internal/model"
)

// Source identifies which step of the fallback chain produced a result.
type Source string

const (
	SourcePersonalized Source = "personalized"
	SourcePopular      Source = "popular"
)

// Service implements Catalog over the API client.
type Service struct {
	api Backend
}

// NewService creates a catalog service.
func NewService(api Backend) *Service {
	return &Service{api: api}
}

// Recommended fetches the home feed through an ordered chain of sources:
// personalized recommendations first, the popular collection second. A source
// is acceptable when it returns a non-empty list; the chain short-circuits on
// the first acceptable result. An error surfaces only when every source
// failed. Any source succeeding, even with an empty list, makes the result an
// empty state rather than an error.
func (s *Service) Recommended(ctx context.Context) ([]model.Movie, Source, error) {
	sources := []struct {
		name  Source
		fetch func(context.Context) ([]model.Movie, error)
	}{
		{SourcePersonalized, s.api.Recommendations},
		{SourcePopular, s.api.PopularMovies},
	}

	var lastErr error
	succeeded := false
	for _, src := range sources {
		movies, err := src.fetch(ctx)
		if err != nil {
			log.Printf("movies: %s source failed: %v", src.name, err)
			lastErr = err
			continue
		}
		succeeded = true
		if len(movies) > 0 {
			return movies, src.name, nil
		}
		log.Printf("movies: %s source empty, falling through", src.name)
	}

	if !succeeded {
		return nil, "", lastErr
	}
	return nil, SourcePopular, nil
}

// Popular fetches the popular-movies collection.
func (s *Service) Popular(ctx context.Context) ([]model.Movie, error) {
	return s.api.PopularMovies(ctx)
}

// Trending returns the top entries of the popular collection for the
// pre-search suggestion grid.
func (s *Service) Trending(ctx context.Context, limit int) ([]model.Movie, error) {
	movies, err := s.api.PopularMovies(ctx)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(movies) > limit {
		movies = movies[:limit]
	}
	return movies, nil
}

// Search runs a free-text search. Blank queries return nothing without a
// request; searches fire only on explicit submission.
func (s *Service) Search(ctx context.Context, query string) ([]model.Movie, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	return s.api.SearchMovies(ctx, query)
}

// Details fetches the full projection for one movie.
func (s *Service) Details(ctx context.Context, movieID string) (*model.MovieDetail, error) {
	return s.api.MovieDetails(ctx, movieID)
}
