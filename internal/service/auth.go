package service

import (
	"context"
	"log/slog"
	"strings"

	"parkflow/internal/backend"
	"parkflow/internal/domain"
	"parkflow/internal/observability"
	"parkflow/internal/session"
)

// AuthBackend is the slice of the backend API the auth workflow needs.
type AuthBackend interface {
	Login(ctx context.Context, phone, password string) (*backend.AuthResponse, error)
	Register(ctx context.Context, req backend.RegisterRequest) (*backend.AuthResponse, error)
}

// AuthService handles login, registration and forced logout.
type AuthService struct {
	backend  AuthBackend
	sessions session.Store
	logger   *slog.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(b AuthBackend, sessions session.Store, logger *slog.Logger) *AuthService {
	return &AuthService{backend: b, sessions: sessions, logger: logger}
}

// Login exchanges credentials for a session and persists it under sid.
func (s *AuthService) Login(ctx context.Context, sid, phone, password string) (domain.Session, error) {
	if strings.TrimSpace(phone) == "" || password == "" {
		return domain.Session{}, ErrMissingCredentials
	}

	resp, err := s.backend.Login(ctx, phone, password)
	if err != nil {
		return domain.Session{}, classify(err)
	}

	sess := domain.Session{Token: resp.AccessToken, User: resp.User}
	if err := s.sessions.Set(ctx, sid, sess); err != nil {
		return domain.Session{}, err
	}

	s.logger.Info("login", "user_id", sess.User.ID, "role", sess.User.Role)
	return sess, nil
}

// Register creates an account and logs the new user in.
func (s *AuthService) Register(ctx context.Context, sid string, req backend.RegisterRequest) (domain.Session, error) {
	if strings.TrimSpace(req.Phone) == "" || req.Password == "" {
		return domain.Session{}, ErrMissingCredentials
	}
	if !req.Role.Valid() {
		return domain.Session{}, ErrInvalidRole
	}

	resp, err := s.backend.Register(ctx, req)
	if err != nil {
		return domain.Session{}, classify(err)
	}

	sess := domain.Session{Token: resp.AccessToken, User: resp.User}
	if err := s.sessions.Set(ctx, sid, sess); err != nil {
		return domain.Session{}, err
	}

	s.logger.Info("register", "user_id", sess.User.ID, "role", sess.User.Role)
	return sess, nil
}

// Logout clears the session. Clearing twice leaves the same empty
// state as once.
func (s *AuthService) Logout(ctx context.Context, sid string) error {
	return s.sessions.Clear(ctx, sid)
}

// Invalidate clears the session after an auth failure and reports
// whether this call actually removed a live session. Callers use the
// return value to emit the redirect exactly once: a second failure on
// an already-cleared session must not redirect again.
func (s *AuthService) Invalidate(ctx context.Context, sid string) (bool, error) {
	existing, err := s.sessions.Get(ctx, sid)
	if err != nil {
		return false, err
	}
	if !existing.Authenticated() {
		return false, nil
	}

	if err := s.sessions.Clear(ctx, sid); err != nil {
		return false, err
	}

	observability.SessionsExpired.Inc()
	s.logger.Info("session invalidated", "user_id", existing.User.ID)
	return true, nil
}
