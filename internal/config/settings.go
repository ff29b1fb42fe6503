package config

import (
	"log"
	"os"

	"fyne.io/fyne/v2"
	"github.com/joho/godotenv"
)

// ViewMode selects how the watchlist renders its items.
type ViewMode string

const (
	ViewModeGrid ViewMode = "grid"
	ViewModeList ViewMode = "list"
)

// Settings keys for Fyne preferences
const (
	KeyAPIBaseURL   = "api_base_url"
	KeySessionToken = "session_token"
	KeyViewMode     = "watchlist_view_mode"
	KeySearchSort   = "search_sort"
)

// EnvAPIBaseURL overrides the stored API base URL when set (directly or via a
// .env file next to the binary).
const EnvAPIBaseURL = "CINEDOST_API_URL"

// Default values
const (
	DefaultAPIBaseURL = "https://api.cinedost.app"
	DefaultViewMode   = ViewModeGrid
	DefaultSearchSort = "relevance"
)

// LoadEnvFile loads a .env file when present. Missing files are fine; the
// environment override is optional.
func LoadEnvFile() {
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			log.Printf("config: skipping .env: %v", err)
		}
	}
}

// Settings manages application configuration backed by Fyne preferences.
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager.
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetAPIBaseURL returns the service base URL. Resolution order: environment
// override, stored preference, built-in default.
func (s *Settings) GetAPIBaseURL() string {
	if env := os.Getenv(EnvAPIBaseURL); env != "" {
		return env
	}
	url := s.app.Preferences().String(KeyAPIBaseURL)
	if url == "" {
		return DefaultAPIBaseURL
	}
	return url
}

// SetAPIBaseURL stores the service base URL.
func (s *Settings) SetAPIBaseURL(url string) {
	s.app.Preferences().SetString(KeyAPIBaseURL, url)
}

// GetSessionToken returns the persisted session token, or "" when logged out.
func (s *Settings) GetSessionToken() string {
	return s.app.Preferences().String(KeySessionToken)
}

// SetSessionToken persists the session token. Written exactly on login and
// register.
func (s *Settings) SetSessionToken(token string) {
	s.app.Preferences().SetString(KeySessionToken, token)
}

// ClearSessionToken removes the persisted session token. Called exactly on
// logout (including invalid-token logout at startup).
func (s *Settings) ClearSessionToken() {
	s.app.Preferences().RemoveValue(KeySessionToken)
}

// GetViewMode returns the watchlist display mode.
func (s *Settings) GetViewMode() ViewMode {
	mode := ViewMode(s.app.Preferences().String(KeyViewMode))
	if mode != ViewModeGrid && mode != ViewModeList {
		return DefaultViewMode
	}
	return mode
}

// SetViewMode stores the watchlist display mode.
func (s *Settings) SetViewMode(mode ViewMode) {
	s.app.Preferences().SetString(KeyViewMode, string(mode))
}

// GetSearchSort returns the default search sort order.
func (s *Settings) GetSearchSort() string {
	sort := s.app.Preferences().String(KeySearchSort)
	if sort == "" {
		return DefaultSearchSort
	}
	return sort
}

// SetSearchSort stores the default search sort order.
func (s *Settings) SetSearchSort(sort string) {
	s.app.Preferences().SetString(KeySearchSort, sort)
}
