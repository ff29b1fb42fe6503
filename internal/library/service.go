package library

import (
	"context"
	"log"
	"sync"

	"github.com/cinedost/cinedost/internal/model"
)

// Backend is the slice of the API client the library needs.
type Backend interface {
	WatchlistIDs(ctx context.Context) ([]string, error)
	AddToWatchlist(ctx context.Context, movieID string) error
	RemoveFromWatchlist(ctx context.Context, movieID string) error
	Ratings(ctx context.Context) ([]model.Rating, error)
	RateMovie(ctx context.Context, movieID string, rating int, contentType model.ContentType) error
	Profile(ctx context.Context) (*model.User, error)
	MovieDetails(ctx context.Context, movieID string) (*model.MovieDetail, error)
}

// RatedMovie joins a rating record with its resolved movie.
type RatedMovie struct {
	model.Movie
	UserRating int
	RatedAt    string
	Type       model.ContentType
}

// Service implements the user-collection operations.
type Service struct {
	api Backend
}

// NewService creates a library service.
func NewService(api Backend) *Service {
	return &Service{api: api}
}

// Watchlist fetches the bookmark id list and resolves each id to movie
// details. Resolutions run concurrently with no ordering guarantee; results
// are slotted back by originating id, so the returned order is the server's
// insertion order with failed items dropped.
func (s *Service) Watchlist(ctx context.Context) ([]model.Movie, error) {
	ids, err := s.api.WatchlistIDs(ctx)
	if err != nil {
		return nil, err
	}
	return s.resolve(ctx, ids), nil
}

// RatedMovies fetches the profile's embedded ratings and resolves each to a
// movie, dropping items whose detail fetch failed.
func (s *Service) RatedMovies(ctx context.Context) ([]RatedMovie, error) {
	user, err := s.api.Profile(ctx)
	if err != nil {
		return nil, err
	}

	ratings := user.Ratings
	resolved := make([]*model.MovieDetail, len(ratings))
	var wg sync.WaitGroup
	for i := range ratings {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			detail, err := s.api.MovieDetails(ctx, ratings[i].MovieID)
			if err != nil {
				log.Printf("library: dropping rated movie %s: %v", ratings[i].MovieID, err)
				return
			}
			resolved[i] = detail
		}(i)
	}
	wg.Wait()

	var out []RatedMovie
	for i, detail := range resolved {
		if detail == nil {
			continue
		}
		out = append(out, RatedMovie{
			Movie:      detail.AsMovie(),
			UserRating: ratings[i].Rating,
			RatedAt:    ratings[i].RatedAt,
			Type:       ratings[i].Type,
		})
	}
	return out, nil
}

// Add bookmarks a movie after server confirmation.
func (s *Service) Add(ctx context.Context, movieID string) error {
	return s.api.AddToWatchlist(ctx, movieID)
}

// Remove deletes one bookmark. Callers drop the item locally only after this
// returns nil, keeping view state consistent with server truth.
func (s *Service) Remove(ctx context.Context, movieID string) error {
	return s.api.RemoveFromWatchlist(ctx, movieID)
}

// Clear issues one delete per id and reports which succeeded. The first
// failure is returned so the caller can surface it, but remaining deletes
// still run.
func (s *Service) Clear(ctx context.Context, ids []string) ([]string, error) {
	errs := make([]error, len(ids))
	var wg sync.WaitGroup
	for i, id := range ids {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			errs[i] = s.api.RemoveFromWatchlist(ctx, id)
		}(i, id)
	}
	wg.Wait()

	var removed []string
	var firstErr error
	for i, id := range ids {
		if errs[i] != nil {
			log.Printf("library: clear failed for %s: %v", id, errs[i])
			if firstErr == nil {
				firstErr = errs[i]
			}
			continue
		}
		removed = append(removed, id)
	}
	return removed, firstErr
}

// Rate submits a star rating. Validation happens before the request; callers
// reflect the new value locally only after server confirmation.
func (s *Service) Rate(ctx context.Context, movieID string, rating int, contentType model.ContentType) error {
	return s.api.RateMovie(ctx, movieID, rating, contentType)
}

// Ratings fetches the raw rating records.
func (s *Service) Ratings(ctx context.Context) ([]model.Rating, error) {
	return s.api.Ratings(ctx)
}

// resolve fans out one detail request per id and reassembles results in id
// order, dropping failures.
func (s *Service) resolve(ctx context.Context, ids []string) []model.Movie {
	resolved := make([]*model.MovieDetail, len(ids))
	var wg sync.WaitGroup
	for i, id := range ids {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			detail, err := s.api.MovieDetails(ctx, id)
			if err != nil {
				log.Printf("library: dropping watchlist movie %s: %v", id, err)
				return
			}
			resolved[i] = detail
		}(i, id)
	}
	wg.Wait()

	var out []model.Movie
	for _, detail := range resolved {
		if detail == nil {
			continue
		}
		out = append(out, detail.AsMovie())
	}
	return out
}
