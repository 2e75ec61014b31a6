package service

import (
	"context"
	"testing"

	"github.com/spec-kit/freshdesk-bridge/internal/auth"
	"github.com/spec-kit/freshdesk-bridge/internal/config"
	"github.com/spec-kit/freshdesk-bridge/internal/domain"
	apperrors "github.com/spec-kit/freshdesk-bridge/pkg/util"
)

func newTestAuthService(t *testing.T) *AuthService {
	t.Helper()
	hash, err := auth.HashPassword("operator-pass", 4)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return NewAuthService(config.AuthConfig{
		JWTSecret:             "test-secret",
		AccessTokenTTLMinutes: 5,
		AdminEmail:            "ops@example.com",
		AdminPasswordHash:     hash,
	})
}

func TestLoginAdminIssuesToken(t *testing.T) {
	svc := newTestAuthService(t)

	token, _, err := svc.LoginAdmin(context.Background(), "ops@example.com", "operator-pass")
	if err != nil {
		t.Fatalf("LoginAdmin: %v", err)
	}

	claims, err := svc.TokenManager().ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.Subject != domain.SubjectTypeAdmin {
		t.Errorf("subject = %q, want ADMIN", claims.Subject)
	}
}

func TestLoginAdminEmailCaseInsensitive(t *testing.T) {
	svc := newTestAuthService(t)
	if _, _, err := svc.LoginAdmin(context.Background(), "OPS@Example.com", "operator-pass"); err != nil {
		t.Fatalf("LoginAdmin: %v", err)
	}
}

func TestLoginAdminRejectsWrongPassword(t *testing.T) {
	svc := newTestAuthService(t)

	_, _, err := svc.LoginAdmin(context.Background(), "ops@example.com", "wrong")
	if err == nil {
		t.Fatal("wrong password must not log in")
	}
	if apperrors.ToDomainError(err).Code != "UNAUTHORIZED" {
		t.Errorf("code = %s, want UNAUTHORIZED", apperrors.ToDomainError(err).Code)
	}
}

func TestLoginAdminUnconfigured(t *testing.T) {
	svc := NewAuthService(config.AuthConfig{JWTSecret: "test-secret"})

	if _, _, err := svc.LoginAdmin(context.Background(), "ops@example.com", "anything"); err == nil {
		t.Fatal("login must fail when no admin credential is configured")
	}
}
