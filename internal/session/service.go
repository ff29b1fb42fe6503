package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/badoux/checkmail"

	"github.com/cinedost/cinedost/internal/api"
	"github.com/cinedost/cinedost/internal/config"
	"github.com/cinedost/cinedost/internal/model"
)

// Password policy: letters and digits required, six characters minimum.
const MinPasswordLength = 6

// Validation errors resolved client-side before any request is sent.
var (
	ErrInvalidEmail     = errors.New("please enter a valid email address")
	ErrWeakPassword     = fmt.Errorf("password must contain both letters and numbers (minimum %d characters)", MinPasswordLength)
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrNoGenres         = errors.New("please select at least one favorite genre")
	ErrUsernameTooShort = errors.New("username must be at least 3 characters")
)

// Service tracks the current user and session token. All methods are safe for
// use from UI callbacks; change notifications fire outside the lock.
type Service struct {
	client   *api.Client
	settings *config.Settings

	mu      sync.RWMutex
	user    *model.User
	loading bool

	onChange func(*model.User)
}

// NewService creates a session service. The service starts in the loading
// state until Restore has resolved, so guarded views can render neutrally
// instead of redirecting.
func NewService(client *api.Client, settings *config.Settings) *Service {
	return &Service{
		client:   client,
		settings: settings,
		loading:  true,
	}
}

// SetOnChange registers the callback invoked whenever the current user
// changes (login, logout, refresh). Called with nil on logout.
func (s *Service) SetOnChange(fn func(*model.User)) {
	s.onChange = fn
}

// CurrentUser returns the signed-in user, or nil.
func (s *Service) CurrentUser() *model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// Loading reports whether startup restoration is still resolving.
func (s *Service) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Restore attaches a persisted token, if any, and verifies it with a profile
// fetch. A failed fetch is treated as no session: token cleared, user nil.
func (s *Service) Restore(ctx context.Context) {
	defer func() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
	}()

	token := s.settings.GetSessionToken()
	if token == "" {
		return
	}

	s.client.SetToken(token)
	user, err := s.client.Profile(ctx)
	if err != nil {
		log.Printf("session: restore failed, clearing token: %v", err)
		s.Logout()
		return
	}

	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
	s.notify(user)
}

// Login posts credentials, then stores the returned token and user. Server
// errors are returned verbatim for the form to display.
func (s *Service) Login(ctx context.Context, email, password string) error {
	if err := ValidateEmail(email); err != nil {
		return err
	}
	if err := ValidatePassword(password); err != nil {
		return err
	}

	auth, err := s.client.Login(ctx, email, password)
	if err != nil {
		return err
	}

	s.adopt(auth)
	return nil
}

// Register creates an account. Genre selection is validated here as well as
// by the form: an empty set never reaches the network.
func (s *Service) Register(ctx context.Context, username, email, password string, genres []string) error {
	if err := ValidateUsername(username); err != nil {
		return err
	}
	if err := ValidateEmail(email); err != nil {
		return err
	}
	if err := ValidatePassword(password); err != nil {
		return err
	}
	if err := ValidateGenres(genres); err != nil {
		return err
	}

	auth, err := s.client.Register(ctx, username, email, password, genres)
	if err != nil {
		return err
	}

	s.adopt(auth)
	return nil
}

// Logout clears the token and user locally. The server is not called.
func (s *Service) Logout() {
	s.client.ClearToken()
	s.settings.ClearSessionToken()

	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()
	s.notify(nil)
}

// RefreshUser re-fetches the profile and replaces the cached user so views
// keyed on it (recommendations by favorite genres) observe the new state.
func (s *Service) RefreshUser(ctx context.Context) error {
	user, err := s.client.Profile(ctx)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			log.Printf("session: refresh unauthorized, logging out")
			s.Logout()
		}
		return err
	}

	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
	s.notify(user)
	return nil
}

// UpdateFavoriteGenres replaces the favorite-genre set on the server, then
// refreshes the cached user so feeds keyed on the set observe the change.
func (s *Service) UpdateFavoriteGenres(ctx context.Context, genres []string) error {
	if err := ValidateGenres(genres); err != nil {
		return err
	}
	if err := s.client.UpdateFavoriteGenres(ctx, genres); err != nil {
		return err
	}
	return s.RefreshUser(ctx)
}

// adopt installs a fresh authentication result: token on the client, token in
// durable storage, user in memory.
func (s *Service) adopt(auth *api.AuthResponse) {
	s.client.SetToken(auth.Token)
	s.settings.SetSessionToken(auth.Token)

	user := auth.User
	s.mu.Lock()
	s.user = &user
	s.mu.Unlock()
	s.notify(&user)
}

func (s *Service) notify(user *model.User) {
	if s.onChange != nil {
		s.onChange(user)
	}
}

// ValidateEmail checks the address format.
func ValidateEmail(email string) error {
	if err := checkmail.ValidateFormat(strings.TrimSpace(email)); err != nil {
		return ErrInvalidEmail
	}
	return nil
}

// ValidatePassword enforces the letters-and-numbers policy.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return ErrWeakPassword
	}
	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
			hasLetter = true
		case r >= '0' && r <= '9':
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return ErrWeakPassword
	}
	return nil
}

// ValidateUsername enforces the minimum username length.
func ValidateUsername(username string) error {
	if len(strings.TrimSpace(username)) < 3 {
		return ErrUsernameTooShort
	}
	return nil
}

// ValidateGenres requires a non-empty selection drawn from the fixed table.
func ValidateGenres(genres []string) error {
	if len(genres) == 0 {
		return ErrNoGenres
	}
	for _, g := range genres {
		if !model.ValidGenreName(g) {
			return fmt.Errorf("unknown genre %q", g)
		}
	}
	return nil
}

// PasswordStrength grades a password for the registration form meter.
type PasswordStrength string

const (
	StrengthNone   PasswordStrength = ""
	StrengthWeak   PasswordStrength = "weak"
	StrengthMedium PasswordStrength = "medium"
	StrengthStrong PasswordStrength = "strong"
)

// CheckPasswordStrength mirrors the policy plus a special-character bonus.
func CheckPasswordStrength(password string) PasswordStrength {
	if password == "" {
		return StrengthNone
	}
	var hasLetter, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
			hasLetter = true
		case r >= '0' && r <= '9':
			hasDigit = true
		case strings.ContainsRune(`!@#$%^&*(),.?":{}|<>`, r):
			hasSpecial = true
		}
	}
	switch {
	case len(password) < MinPasswordLength:
		return StrengthWeak
	case hasLetter && hasDigit && hasSpecial && len(password) >= 8:
		return StrengthStrong
	case hasLetter && hasDigit:
		return StrengthMedium
	default:
		return StrengthWeak
	}
}
