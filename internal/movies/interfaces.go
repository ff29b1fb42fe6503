package movies

import (
	"context"

	"github.com/cinedost/cinedost/internal/model"
)

// Backend is the slice of the API client the catalog needs.
type Backend interface {
	Recommendations(ctx context.Context) ([]model.Movie, error)
	PopularMovies(ctx context.Context) ([]model.Movie, error)
	SearchMovies(ctx context.Context, query string) ([]model.Movie, error)
	MovieDetails(ctx context.Context, movieID string) (*model.MovieDetail, error)
}

// Catalog defines the interface the UI consumes.
type Catalog interface {
	Recommended(ctx context.Context) ([]model.Movie, Source, error)
	Popular(ctx context.Context) ([]model.Movie, error)
	Trending(ctx context.Context, limit int) ([]model.Movie, error)
	Search(ctx context.Context, query string) ([]model.Movie, error)
	Details(ctx context.Context, movieID string) (*model.MovieDetail, error)
}
