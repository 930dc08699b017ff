package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/freshbasket/internal/domain"
	"github.com/nikolayk812/freshbasket/internal/port"
	"github.com/nikolayk812/freshbasket/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
)

// Auth authenticates admins and hands out opaque session tokens,
// the capability required by all mutating catalog and order operations.
type Auth struct {
	admins   port.AdminRepository
	sessions *SessionStore
	logger   *slog.Logger
}

func NewAuth(admins port.AdminRepository, sessionTTL time.Duration, logger *slog.Logger) *Auth {
	return &Auth{
		admins:   admins,
		sessions: NewSessionStore(sessionTTL),
		logger:   logger,
	}
}

// Login verifies the credentials and returns the admin with a fresh session token.
func (s *Auth) Login(ctx context.Context, username, password string) (domain.Admin, string, error) {
	var a domain.Admin

	if username == "" || password == "" {
		return a, "", ErrInvalidCredentials
	}

	admin, err := s.admins.GetAdminByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrAdminNotFound) {
			return a, "", ErrInvalidCredentials
		}
		return a, "", fmt.Errorf("admins.GetAdminByUsername: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return a, "", ErrInvalidCredentials
	}

	token := uuid.NewString()
	s.sessions.Put(token, admin)

	s.logger.InfoContext(ctx, "admin logged in", slog.String("username", admin.Username))

	return admin, token, nil
}

func (s *Auth) Logout(token string) {
	s.sessions.Delete(token)
}

// Session reports whether the token maps to a live admin session.
func (s *Auth) Session(token string) (domain.Admin, bool) {
	return s.sessions.Get(token)
}

// RequireAdmin is the access guard: it resolves the session token to an
// authenticated admin or fails with ErrUnauthorized.
func (s *Auth) RequireAdmin(_ context.Context, token string) (domain.Admin, error) {
	admin, ok := s.sessions.Get(token)
	if !ok {
		return domain.Admin{}, ErrUnauthorized
	}

	return admin, nil
}

// EnsureAdmin creates the admin if absent, used for startup seeding.
func (s *Auth) EnsureAdmin(ctx context.Context, username, password string) error {
	_, err := s.admins.GetAdminByUsername(ctx, username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repository.ErrAdminNotFound) {
		return fmt.Errorf("admins.GetAdminByUsername: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("bcrypt.GenerateFromPassword: %w", err)
	}

	if _, err := s.admins.CreateAdmin(ctx, domain.Admin{
		Username:     username,
		PasswordHash: string(hash),
	}); err != nil {
		// Lost a race against another instance seeding the same admin.
		if errors.Is(err, repository.ErrUsernameTaken) {
			return nil
		}
		return fmt.Errorf("admins.CreateAdmin: %w", err)
	}

	s.logger.InfoContext(ctx, "seeded admin", slog.String("username", username))

	return nil
}
