package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"fyne.io/fyne/v2/test"

	"github.com/cinedost/cinedost/internal/api"
	"github.com/cinedost/cinedost/internal/config"
	"github.com/cinedost/cinedost/internal/model"
)

func newTestService(serverURL string) (*Service, *api.Client, *config.Settings) {
	settings := config.NewSettings(test.NewApp())
	client := api.NewClient(serverURL)
	return NewService(client, settings), client, settings
}

func TestLoginStoresTokenAndUser(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case api.PathLogin:
			w.Write([]byte(`{"token":"tok-1","user":{"id":"u1","username":"casey","email":"casey@example.com"}}`))
		case api.PathProfile:
			if r.Header.Get("Authorization") != "Bearer tok-1" {
				t.Errorf("Profile fetch did not reuse stored token, got '%s'", r.Header.Get("Authorization"))
			}
			w.Write([]byte(`{"id":"u1","username":"casey","email":"casey@example.com"}`))
		default:
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	svc, client, settings := newTestService(server.URL)

	if err := svc.Login(context.Background(), "casey@example.com", "abc123"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	user := svc.CurrentUser()
	if user == nil || user.Username != "casey" {
		t.Fatalf("Expected signed-in user 'casey', got %+v", user)
	}
	if settings.GetSessionToken() != "tok-1" {
		t.Errorf("Expected token persisted, got '%s'", settings.GetSessionToken())
	}

	// Subsequent profile fetch reuses the stored token.
	if _, err := client.Profile(context.Background()); err != nil {
		t.Errorf("Expected profile fetch to succeed, got %v", err)
	}
}

func TestLoginPropagatesServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"Invalid credentials"}`))
	}))
	defer server.Close()

	svc, _, settings := newTestService(server.URL)

	err := svc.Login(context.Background(), "casey@example.com", "abc123")
	if err == nil {
		t.Fatal("Expected an error")
	}
	if svc.CurrentUser() != nil {
		t.Error("Expected no user after failed login")
	}
	if settings.GetSessionToken() != "" {
		t.Error("Expected no token persisted after failed login")
	}
}

func TestLoginValidatesBeforeRequest(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer server.Close()

	svc, _, _ := newTestService(server.URL)

	if err := svc.Login(context.Background(), "not-an-email", "abc123"); err != ErrInvalidEmail {
		t.Errorf("Expected ErrInvalidEmail, got %v", err)
	}
	if err := svc.Login(context.Background(), "a@example.com", "short"); err != ErrWeakPassword {
		t.Errorf("Expected ErrWeakPassword, got %v", err)
	}
	if requests != 0 {
		t.Errorf("Expected no requests for invalid input, got %d", requests)
	}
}

func TestRegisterRequiresGenres(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer server.Close()

	svc, _, _ := newTestService(server.URL)

	err := svc.Register(context.Background(), "casey", "casey@example.com", "abc123", nil)
	if err != ErrNoGenres {
		t.Errorf("Expected ErrNoGenres, got %v", err)
	}
	if requests != 0 {
		t.Errorf("Expected request never sent, got %d requests", requests)
	}
}

func TestRegisterSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != api.PathRegister {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"token":"tok-2","user":{"id":"u2","username":"robin","email":"robin@example.com","favoriteGenres":["Drama"]}}`))
	}))
	defer server.Close()

	svc, client, settings := newTestService(server.URL)

	err := svc.Register(context.Background(), "robin", "robin@example.com", "abc123", []string{"Drama"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if client.Token() != "tok-2" {
		t.Errorf("Expected token attached to client, got '%s'", client.Token())
	}
	if settings.GetSessionToken() != "tok-2" {
		t.Errorf("Expected token persisted, got '%s'", settings.GetSessionToken())
	}
}

func TestLogoutClearsEverythingWithoutServerCall(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Write([]byte(`{"token":"tok-3","user":{"id":"u3","username":"sam","email":"s@example.com"}}`))
	}))
	defer server.Close()

	svc, client, settings := newTestService(server.URL)
	if err := svc.Login(context.Background(), "s@example.com", "abc123"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	requestsAfterLogin := requests

	var observed *model.User = &model.User{Username: "sentinel"}
	svc.SetOnChange(func(u *model.User) { observed = u })

	svc.Logout()

	if requests != requestsAfterLogin {
		t.Error("Logout must not call the server")
	}
	if svc.CurrentUser() != nil {
		t.Error("Expected no user after logout")
	}
	if client.Token() != "" {
		t.Error("Expected client token cleared")
	}
	if settings.GetSessionToken() != "" {
		t.Error("Expected persisted token removed")
	}
	if observed != nil {
		t.Error("Expected change callback with nil user")
	}
}

func TestRestoreWithValidToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok-4" {
			t.Errorf("Expected persisted token on restore, got '%s'", r.Header.Get("Authorization"))
		}
		w.Write([]byte(`{"id":"u4","username":"alex","email":"a@example.com","favoriteGenres":["Horror"]}`))
	}))
	defer server.Close()

	svc, _, settings := newTestService(server.URL)
	settings.SetSessionToken("tok-4")

	if !svc.Loading() {
		t.Error("Expected loading before restore")
	}

	svc.Restore(context.Background())

	if svc.Loading() {
		t.Error("Expected loading cleared after restore")
	}
	user := svc.CurrentUser()
	if user == nil || user.Username != "alex" {
		t.Fatalf("Expected restored user 'alex', got %+v", user)
	}
}

func TestRestoreWithInvalidTokenLogsOut(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"token expired"}`))
	}))
	defer server.Close()

	svc, client, settings := newTestService(server.URL)
	settings.SetSessionToken("stale")

	svc.Restore(context.Background())

	if svc.CurrentUser() != nil {
		t.Error("Expected no user after failed restore")
	}
	if settings.GetSessionToken() != "" {
		t.Error("Expected stale token removed")
	}
	if client.Token() != "" {
		t.Error("Expected client token cleared")
	}
	if svc.Loading() {
		t.Error("Expected loading cleared")
	}
}

func TestRestoreWithoutToken(t *testing.T) {
	svc, _, _ := newTestService("http://127.0.0.1:1")

	svc.Restore(context.Background())

	if svc.Loading() {
		t.Error("Expected loading cleared immediately with no token")
	}
	if svc.CurrentUser() != nil {
		t.Error("Expected no user")
	}
}

func TestRefreshUserReplacesCachedUser(t *testing.T) {
	genres := `["Drama"]`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case api.PathLogin:
			w.Write([]byte(`{"token":"tok-5","user":{"id":"u5","username":"kim","email":"k@example.com","favoriteGenres":["Drama"]}}`))
		case api.PathProfile:
			w.Write([]byte(`{"id":"u5","username":"kim","email":"k@example.com","favoriteGenres":` + genres + `}`))
		}
	}))
	defer server.Close()

	svc, _, _ := newTestService(server.URL)
	if err := svc.Login(context.Background(), "k@example.com", "abc123"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	var notified *model.User
	svc.SetOnChange(func(u *model.User) { notified = u })

	genres = `["Drama","Horror"]`
	if err := svc.RefreshUser(context.Background()); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}

	user := svc.CurrentUser()
	if len(user.FavoriteGenres) != 2 {
		t.Errorf("Expected refreshed genres, got %v", user.FavoriteGenres)
	}
	if notified == nil || len(notified.FavoriteGenres) != 2 {
		t.Error("Expected change callback with refreshed user")
	}
}

func TestUpdateFavoriteGenresRefreshesUser(t *testing.T) {
	var putBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == api.PathLogin:
			w.Write([]byte(`{"token":"tok-6","user":{"id":"u6","username":"jo","email":"j@example.com","favoriteGenres":["Drama"]}}`))
		case r.URL.Path == api.PathProfile && r.Method == http.MethodPut:
			body := make([]byte, r.ContentLength)
			r.Body.Read(body)
			putBody = string(body)
		case r.URL.Path == api.PathProfile:
			w.Write([]byte(`{"id":"u6","username":"jo","email":"j@example.com","favoriteGenres":["Drama","Horror"]}`))
		}
	}))
	defer server.Close()

	svc, _, _ := newTestService(server.URL)
	if err := svc.Login(context.Background(), "j@example.com", "abc123"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	if err := svc.UpdateFavoriteGenres(context.Background(), []string{"Drama", "Horror"}); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if putBody == "" {
		t.Fatal("Expected a PUT request with the new genre set")
	}
	if user := svc.CurrentUser(); len(user.FavoriteGenres) != 2 {
		t.Errorf("Expected cached user refreshed, got %v", user.FavoriteGenres)
	}
}

func TestUpdateFavoriteGenresValidatesBeforeRequest(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer server.Close()

	svc, _, _ := newTestService(server.URL)

	if err := svc.UpdateFavoriteGenres(context.Background(), nil); err != ErrNoGenres {
		t.Errorf("Expected ErrNoGenres, got %v", err)
	}
	if requests != 0 {
		t.Errorf("Expected no requests, got %d", requests)
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		password string
		ok       bool
	}{
		{"abc123", true},
		{"a1b2c3d4", true},
		{"abcdef", false},  // no digit
		{"123456", false},  // no letter
		{"a1", false},      // too short
		{"", false},
	}

	for _, tt := range tests {
		err := ValidatePassword(tt.password)
		if tt.ok && err != nil {
			t.Errorf("ValidatePassword(%q) = %v, want nil", tt.password, err)
		}
		if !tt.ok && err == nil {
			t.Errorf("ValidatePassword(%q) = nil, want error", tt.password)
		}
	}
}

func TestCheckPasswordStrength(t *testing.T) {
	tests := []struct {
		password string
		want     PasswordStrength
	}{
		{"", StrengthNone},
		{"abc", StrengthWeak},
		{"abcdef", StrengthWeak},
		{"abc123", StrengthMedium},
		{"abc123!@", StrengthStrong},
	}

	for _, tt := range tests {
		if got := CheckPasswordStrength(tt.password); got != tt.want {
			t.Errorf("CheckPasswordStrength(%q) = %s, want %s", tt.password, got, tt.want)
		}
	}
}

func TestValidateGenres(t *testing.T) {
	if err := ValidateGenres([]string{"Drama", "Horror"}); err != nil {
		t.Errorf("Expected valid genres, got %v", err)
	}
	if err := ValidateGenres([]string{}); err != ErrNoGenres {
		t.Errorf("Expected ErrNoGenres, got %v", err)
	}
	if err := ValidateGenres([]string{"Telenovela"}); err == nil {
		t.Error("Expected error for unknown genre")
	}
}
