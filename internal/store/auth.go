package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/streamlethq/slx/internal/api"
	"github.com/streamlethq/slx/internal/models"
	"github.com/streamlethq/slx/internal/shared"
)

// Auth holds the process-wide session state: the current user or its absence.
type Auth struct {
	client *api.Client
	logger *log.Logger

	mu      sync.RWMutex
	user    *models.User
	loading bool
}

// userPayload is the envelope data shape for auth endpoints.
type userPayload struct {
	User models.User `json:"user"`
}

// NewAuth creates an Auth store. The store reports loading until the first
// Probe completes.
func NewAuth(client *api.Client, logger *log.Logger) *Auth {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Auth{client: client, logger: logger, loading: true}
}

// CurrentUser returns a copy of the authenticated user, or nil when logged out.
func (s *Auth) CurrentUser() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Loading reports whether the initial session probe is still outstanding.
func (s *Auth) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Login authenticates with the platform. On success the session is set to the
// returned principal; on failure the session is untouched and the error is
// returned.
func (s *Auth) Login(ctx context.Context, input models.LoginInput) error {
	env, err := s.client.Post(ctx, "/users/login", input)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAuthFailed, err)
	}

	var payload userPayload
	if err := env.Decode(&payload); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAuthFailed, err)
	}

	s.mu.Lock()
	s.user = &payload.User
	s.mu.Unlock()

	s.logger.Debug("logged in", "user", payload.User.Username)
	return nil
}

// Register creates an account via a multipart payload with optional avatar
// and cover image attachments, then sets the session. Same failure contract
// as Login.
func (s *Auth) Register(ctx context.Context, input models.RegisterInput) error {
	fields := map[string]string{
		"username": input.Username,
		"email":    input.Email,
		"password": input.Password,
	}
	files := map[string]string{
		"avatar":     input.AvatarPath,
		"coverImage": input.CoverImagePath,
	}

	env, err := s.client.PostForm(ctx, "/users/register", fields, files)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAuthFailed, err)
	}

	var payload userPayload
	if err := env.Decode(&payload); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAuthFailed, err)
	}

	s.mu.Lock()
	s.user = &payload.User
	s.mu.Unlock()

	s.logger.Debug("registered", "user", payload.User.Username)
	return nil
}

// Logout requests server-side session termination. The local session is
// cleared unconditionally, even when the server call fails, so a dead server
// session can never leave the client stuck logged in. The server error, if
// any, is still returned.
func (s *Auth) Logout(ctx context.Context) error {
	_, err := s.client.Post(ctx, "/users/logout", nil)

	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()

	if err != nil {
		s.logger.Warn("server logout failed, local session cleared anyway", "error", err)
		return err
	}
	return nil
}

// Probe is the idempotent "am I logged in" check run once at startup. On
// success the session is set; on any failure it is cleared. Probe never
// returns an error; the loading flag is cleared either way.
func (s *Auth) Probe(ctx context.Context) {
	env, err := s.client.Get(ctx, "/users/current-user")
	if err == nil {
		var payload userPayload
		if decodeErr := env.Decode(&payload); decodeErr == nil {
			s.mu.Lock()
			s.user = &payload.User
			s.loading = false
			s.mu.Unlock()
			return
		}
	}

	if err != nil {
		s.logger.Debug("session probe failed", "error", err)
	}

	s.mu.Lock()
	s.user = nil
	s.loading = false
	s.mu.Unlock()
}
