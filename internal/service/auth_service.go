package service

import (
	"context"
	"strings"
	"time"

	"github.com/spec-kit/freshdesk-bridge/internal/auth"
	"github.com/spec-kit/freshdesk-bridge/internal/config"
	"github.com/spec-kit/freshdesk-bridge/internal/domain"
	apperrors "github.com/spec-kit/freshdesk-bridge/pkg/util"
)

// AuthService authenticates the bridge operator. There is exactly one
// admin credential, supplied via configuration as a bcrypt hash.
type AuthService struct {
	cfg    config.AuthConfig
	tokens *auth.TokenManager
}

// NewAuthService constructs the service.
func NewAuthService(cfg config.AuthConfig) *AuthService {
	return &AuthService{
		cfg:    cfg,
		tokens: auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTLMinutes),
	}
}

// TokenManager exposes the token manager for middleware wiring.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokens
}

// LoginAdmin verifies the admin credential and issues an access token.
func (s *AuthService) LoginAdmin(ctx context.Context, email, password string) (string, time.Time, error) {
	if s.cfg.AdminEmail == "" || s.cfg.AdminPasswordHash == "" {
		return "", time.Time{}, apperrors.NewUnauthorized("admin login not configured")
	}
	if !strings.EqualFold(strings.TrimSpace(email), s.cfg.AdminEmail) {
		return "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}
	if err := auth.ComparePassword(s.cfg.AdminPasswordHash, password); err != nil {
		return "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}

	token, expiresAt, err := s.tokens.GenerateToken(s.cfg.AdminEmail, domain.SubjectTypeAdmin)
	if err != nil {
		return "", time.Time{}, apperrors.NewInternalError(err)
	}
	return token, expiresAt, nil
}
