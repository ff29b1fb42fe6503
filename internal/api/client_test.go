package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cinedost/cinedost/internal/model"
)

func TestLoginReturnsTokenAndUser(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != PathLogin {
			t.Errorf("Unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"token":"tok-123","user":{"id":"u1","username":"casey","email":"casey@example.com"}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	auth, err := client.Login(context.Background(), "casey@example.com", "abc123")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if auth.Token != "tok-123" {
		t.Errorf("Expected token 'tok-123', got '%s'", auth.Token)
	}
	if auth.User.Username != "casey" {
		t.Errorf("Expected username 'casey', got '%s'", auth.User.Username)
	}
}

func TestBearerTokenAttached(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"id":"u1","username":"casey","email":"c@example.com"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	client.SetToken("tok-456")

	if _, err := client.Profile(context.Background()); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if gotAuth != "Bearer tok-456" {
		t.Errorf("Expected bearer header, got '%s'", gotAuth)
	}

	client.ClearToken()
	if client.Token() != "" {
		t.Error("Expected token cleared")
	}
}

func TestMovieCollectionEnvelopes(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{"results envelope", `{"results":[{"id":1,"title":"A"},{"id":2,"title":"B"}]}`, 2},
		{"recommendations envelope", `{"recommendations":[{"id":3,"title":"C"}]}`, 1},
		{"bare array", `[{"id":4,"title":"D"}]`, 1},
		{"empty results", `{"results":[]}`, 0},
		{"null body", `{}`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := NewClient(server.URL)
			movies, err := client.PopularMovies(context.Background())
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if len(movies) != tt.want {
				t.Errorf("Expected %d movies, got %d", tt.want, len(movies))
			}
		})
	}
}

func TestRecommendationsCacheBust(t *testing.T) {
	var gotParam string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotParam = r.URL.Query().Get("t")
		w.Write([]byte(`{"results":[]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	if _, err := client.Recommendations(context.Background()); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if gotParam == "" {
		t.Error("Expected cache-bust parameter on recommendations request")
	}
}

func TestServerErrorSchema(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"documented schema", `{"message":"Invalid credentials"}`, "Invalid credentials"},
		{"wrong field", `{"error":"nope"}`, GenericErrorMessage},
		{"not json", `<html>oops</html>`, GenericErrorMessage},
		{"empty message", `{"message":""}`, GenericErrorMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := NewClient(server.URL)
			_, err := client.Login(context.Background(), "a@b.c", "abc123")
			if err == nil {
				t.Fatal("Expected an error")
			}

			var apiErr *Error
			if !errors.As(err, &apiErr) {
				t.Fatalf("Expected *Error, got %T", err)
			}
			if apiErr.Message != tt.want {
				t.Errorf("Expected message '%s', got '%s'", tt.want, apiErr.Message)
			}
		})
	}
}

func TestUnauthorizedMatching(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"token expired"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.Profile(context.Background())
	if !errors.Is(err, ErrUnauthorized) {
		t.Errorf("Expected errors.Is(err, ErrUnauthorized), got %v", err)
	}
}

func TestTransportErrorFailsClosed(t *testing.T) {
	client := NewClient("http://127.0.0.1:1")

	_, err := client.PopularMovies(context.Background())
	if err == nil {
		t.Fatal("Expected an error")
	}
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("Expected *Error, got %T", err)
	}
	if apiErr.Status != 0 {
		t.Errorf("Expected status 0 for transport failure, got %d", apiErr.Status)
	}
	if apiErr.Message != GenericErrorMessage {
		t.Errorf("Expected generic message, got '%s'", apiErr.Message)
	}
	if errors.Is(err, ErrUnauthorized) {
		t.Error("Transport failure must not match ErrUnauthorized")
	}
}

func TestRateMovieValidatesRange(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)

	if err := client.RateMovie(context.Background(), "550", 0, model.ContentTypeMovie); err == nil {
		t.Error("Expected error for rating 0")
	}
	if err := client.RateMovie(context.Background(), "550", 6, model.ContentTypeMovie); err == nil {
		t.Error("Expected error for rating 6")
	}
	if requests != 0 {
		t.Errorf("Expected no requests for invalid ratings, got %d", requests)
	}

	if err := client.RateMovie(context.Background(), "550", 4, model.ContentTypeMovie); err != nil {
		t.Errorf("Expected no error for rating 4, got %v", err)
	}
	if requests != 1 {
		t.Errorf("Expected exactly one request, got %d", requests)
	}
}

func TestRemoveFromWatchlistPath(t *testing.T) {
	var gotPath, gotMethod string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	if err := client.RemoveFromWatchlist(context.Background(), "603"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if gotMethod != http.MethodDelete || gotPath != PathWatchlist+"/603" {
		t.Errorf("Unexpected request: %s %s", gotMethod, gotPath)
	}
}
