package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/cinedost/cinedost/internal/model"
)

// Service endpoint paths.
const (
	PathLogin           = "/api/auth/login"
	PathRegister        = "/api/auth/register"
	PathProfile         = "/api/users/profile"
	PathWatchlist       = "/api/users/watchlist"
	PathRatings         = "/api/users/ratings"
	PathRate            = "/api/users/rate"
	PathSearch          = "/api/movies/search"
	PathPopular         = "/api/movies/popular"
	PathMovies          = "/api/movies"
	PathRecommendations = "/api/recommendations"
)

const requestIDHeader = "X-Request-ID"

// GenericErrorMessage is surfaced when the server's error body does not match
// the expected schema. The client never guesses at undocumented fields.
const GenericErrorMessage = "Something went wrong. Please try again."

// ErrUnauthorized matches any *Error carrying a 401 status via errors.Is.
var ErrUnauthorized = errors.New("unauthorized")

// Error is a failed API call: transport failures have Status 0, HTTP failures
// carry the status code and the server's message when the body matched the
// documented schema.
type Error struct {
	Status    int
	Message   string
	RequestID string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("api: %s (request %s)", e.Message, e.RequestID)
	}
	return fmt.Sprintf("api: %d %s (request %s)", e.Status, e.Message, e.RequestID)
}

// Is reports 401 errors as ErrUnauthorized so callers can invalidate sessions
// with errors.Is.
func (e *Error) Is(target error) bool {
	return target == ErrUnauthorized && e.Status == http.StatusUnauthorized
}

// AuthResponse is the payload returned by login and register.
type AuthResponse struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

// serverError is the only error-body schema the client trusts. Bodies that do
// not decode into a non-empty message fail closed to GenericErrorMessage.
type serverError struct {
	Message string `json:"message"`
}

// movieEnvelope covers the collection shapes the service is known to return.
type movieEnvelope struct {
	Results         []model.Movie `json:"results"`
	Recommendations []model.Movie `json:"recommendations"`
}

// Client issues authenticated JSON requests against the service.
type Client struct {
	baseURL string
	http    *http.Client

	mu    sync.RWMutex
	token string
}

// NewClient creates a client for the given service base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{},
	}
}

// BaseURL returns the configured service base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// SetToken attaches a bearer token to all subsequent requests.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// ClearToken removes the bearer token.
func (c *Client) ClearToken() {
	c.SetToken("")
}

// Token returns the currently attached bearer token.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// Login posts credentials and returns the issued token and user.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	body := map[string]string{"email": email, "password": password}
	var auth AuthResponse
	if err := c.do(ctx, http.MethodPost, PathLogin, nil, body, &auth); err != nil {
		return nil, err
	}
	return &auth, nil
}

// Register creates an account and returns the issued token and user.
func (c *Client) Register(ctx context.Context, username, email, password string, genres []string) (*AuthResponse, error) {
	body := map[string]any{
		"username":       username,
		"email":          email,
		"password":       password,
		"favoriteGenres": genres,
	}
	var auth AuthResponse
	if err := c.do(ctx, http.MethodPost, PathRegister, nil, body, &auth); err != nil {
		return nil, err
	}
	return &auth, nil
}

// Profile fetches the current user. A 401 here means the attached token is
// invalid or expired.
func (c *Client) Profile(ctx context.Context) (*model.User, error) {
	var user model.User
	if err := c.do(ctx, http.MethodGet, PathProfile, nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateFavoriteGenres replaces the user's favorite-genre set.
func (c *Client) UpdateFavoriteGenres(ctx context.Context, genres []string) error {
	body := map[string][]string{"favoriteGenres": genres}
	return c.do(ctx, http.MethodPut, PathProfile, nil, body, nil)
}

// WatchlistIDs fetches the user's bookmarked movie ids in server order.
func (c *Client) WatchlistIDs(ctx context.Context) ([]string, error) {
	var ids []string
	if err := c.do(ctx, http.MethodGet, PathWatchlist, nil, nil, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// AddToWatchlist bookmarks a movie.
func (c *Client) AddToWatchlist(ctx context.Context, movieID string) error {
	body := map[string]string{"movieId": movieID}
	return c.do(ctx, http.MethodPost, PathWatchlist, nil, body, nil)
}

// RemoveFromWatchlist removes a bookmark.
func (c *Client) RemoveFromWatchlist(ctx context.Context, movieID string) error {
	return c.do(ctx, http.MethodDelete, PathWatchlist+"/"+url.PathEscape(movieID), nil, nil, nil)
}

// Ratings fetches the user's rating records.
func (c *Client) Ratings(ctx context.Context) ([]model.Rating, error) {
	var ratings []model.Rating
	if err := c.do(ctx, http.MethodGet, PathRatings, nil, nil, &ratings); err != nil {
		return nil, err
	}
	return ratings, nil
}

// RateMovie submits a 1-5 star rating; the server upserts per (user, movie).
func (c *Client) RateMovie(ctx context.Context, movieID string, rating int, contentType model.ContentType) error {
	if !model.ValidRating(rating) {
		return fmt.Errorf("rating %d outside allowed range %d-%d", rating, model.MinRating, model.MaxRating)
	}
	body := map[string]any{
		"movieId": movieID,
		"rating":  rating,
		"type":    contentType,
	}
	return c.do(ctx, http.MethodPost, PathRate, nil, body, nil)
}

// SearchMovies runs a free-text search.
func (c *Client) SearchMovies(ctx context.Context, query string) ([]model.Movie, error) {
	params := url.Values{"query": {query}}
	return c.movieCollection(ctx, PathSearch, params)
}

// PopularMovies fetches the popular-movies collection.
func (c *Client) PopularMovies(ctx context.Context) ([]model.Movie, error) {
	return c.movieCollection(ctx, PathPopular, nil)
}

// Recommendations fetches personalized recommendations. The timestamp
// parameter busts intermediary caches so every call draws a fresh page.
func (c *Client) Recommendations(ctx context.Context) ([]model.Movie, error) {
	params := url.Values{"t": {strconv.FormatInt(time.Now().UnixMilli(), 10)}}
	return c.movieCollection(ctx, PathRecommendations, params)
}

// MovieDetails fetches the full detail projection for one movie.
func (c *Client) MovieDetails(ctx context.Context, movieID string) (*model.MovieDetail, error) {
	var detail model.MovieDetail
	if err := c.do(ctx, http.MethodGet, PathMovies+"/"+url.PathEscape(movieID), nil, nil, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// movieCollection fetches a path that returns a movie list in any of the
// service's envelope shapes and normalizes it to a slice.
func (c *Client) movieCollection(ctx context.Context, path string, params url.Values) ([]model.Movie, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, path, params, nil, &raw); err != nil {
		return nil, err
	}

	var envelope movieEnvelope
	if err := json.Unmarshal(raw, &envelope); err == nil {
		if envelope.Results != nil {
			return envelope.Results, nil
		}
		if envelope.Recommendations != nil {
			return envelope.Recommendations, nil
		}
	}

	// Some endpoints return the bare array.
	var movies []model.Movie
	if err := json.Unmarshal(raw, &movies); err == nil {
		return movies, nil
	}

	return nil, nil
}

// do runs one request-response cycle. No retries and no client-side timeout;
// cancellation comes from ctx alone.
func (c *Client) do(ctx context.Context, method, path string, params url.Values, body, out any) error {
	requestID := uuid.NewString()

	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return &Error{Message: "encode request: " + err.Error(), RequestID: requestID}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return &Error{Message: "build request: " + err.Error(), RequestID: requestID}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestIDHeader, requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		log.Printf("api: %s %s failed: %v (request %s)", method, path, err, requestID)
		return &Error{Message: GenericErrorMessage, RequestID: requestID}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Printf("api: %s %s read body: %v (request %s)", method, path, err, requestID)
		return &Error{Status: resp.StatusCode, Message: GenericErrorMessage, RequestID: requestID}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &Error{Status: resp.StatusCode, Message: serverMessage(data), RequestID: requestID}
		log.Printf("api: %s %s -> %d: %s (request %s)", method, path, resp.StatusCode, apiErr.Message, requestID)
		return apiErr
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		log.Printf("api: %s %s decode: %v (request %s)", method, path, err, requestID)
		return &Error{Status: resp.StatusCode, Message: GenericErrorMessage, RequestID: requestID}
	}
	return nil
}

// serverMessage extracts the documented error-body message, failing closed to
// the generic message when the body doesn't match.
func serverMessage(body []byte) string {
	var se serverError
	if err := json.Unmarshal(body, &se); err != nil || se.Message == "" {
		return GenericErrorMessage
	}
	return se.Message
}
