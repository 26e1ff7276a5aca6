package auth

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/saifinance/loan-inquiry-api/internal/admin"
	"github.com/saifinance/loan-inquiry-api/internal/config"
)

// ErrInvalidCredentials is returned for an unknown username or a password
// mismatch. Both cases share one error so the response cannot be used to probe
// which usernames exist.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Service verifies admin credentials and issues access tokens.
type Service struct {
	cfg    config.Config
	admins admin.Repository
}

// NewService creates a new auth service.
func NewService(cfg config.Config, admins admin.Repository) *Service {
	return &Service{cfg: cfg, admins: admins}
}

// Login checks the password against the stored bcrypt hash and returns a signed
// token on success. The plaintext password is never logged or stored.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	a, err := s.admins.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, admin.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword(a.PasswordHash, []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	return SignToken(a.ID, a.Username, s.cfg.JWTSecret, s.cfg.TokenTTL)
}
