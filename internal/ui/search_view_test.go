package ui

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"fyne.io/fyne/v2/test"

	"github.com/cinedost/cinedost/internal/api"
	"github.com/cinedost/cinedost/internal/config"
	"github.com/cinedost/cinedost/internal/images"
	"github.com/cinedost/cinedost/internal/library"
	"github.com/cinedost/cinedost/internal/model"
	"github.com/cinedost/cinedost/internal/movies"
	"github.com/cinedost/cinedost/internal/session"
)

// trendingServer serves the popular collection and counts requests to it.
type trendingServer struct {
	mu           sync.Mutex
	popularCalls int
}

func (ts *trendingServer) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != api.PathPopular {
			http.NotFound(w, r)
			return
		}
		ts.mu.Lock()
		ts.popularCalls++
		ts.mu.Unlock()
		w.Write([]byte(`{"results":[{"id":1,"title":"Heat"}]}`))
	})
}

func (ts *trendingServer) calls() int {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return ts.popularCalls
}

func newTestUI(t *testing.T, baseURL string) *RootUI {
	t.Helper()

	app := test.NewApp()
	settings := config.NewSettings(app)
	client := api.NewClient(baseURL)

	return &RootUI{
		window:   test.NewWindow(nil),
		app:      app,
		settings: settings,
		session:  session.NewService(client, settings),
		catalog:  movies.NewService(client),
		library:  library.NewService(client),
		loader:   images.NewLoader(baseURL),
	}
}

func TestSearchClearReusesCachedTrending(t *testing.T) {
	ts := &trendingServer{}
	server := httptest.NewServer(ts.handler())
	defer server.Close()

	v := NewSearchView(newTestUI(t, server.URL))
	v.trending = []model.Movie{{ID: 1, Title: "Heat"}}
	v.trendingLoaded = true

	v.onClear()

	if got := ts.calls(); got != 0 {
		t.Errorf("Clearing must re-render the cached trending set, got %d fetches", got)
	}
}

func TestSearchClearFetchesTrendingWhenCacheMissing(t *testing.T) {
	ts := &trendingServer{}
	server := httptest.NewServer(ts.handler())
	defer server.Close()

	v := NewSearchView(newTestUI(t, server.URL))

	v.onClear()

	deadline := time.Now().Add(2 * time.Second)
	for ts.calls() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if got := ts.calls(); got != 1 {
		t.Fatalf("Expected one trending fetch when nothing is cached, got %d", got)
	}
}
