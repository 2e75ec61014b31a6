package auth

import (
	"testing"
	"time"

	"github.com/spec-kit/freshdesk-bridge/internal/domain"
)

func TestGenerateAndParseToken(t *testing.T) {
	tm := NewTokenManager("secret-one", 5)

	token, expiresAt, err := tm.GenerateToken("ops@example.com", domain.SubjectTypeAdmin)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if time.Until(expiresAt) <= 0 {
		t.Error("token should expire in the future")
	}

	claims, err := tm.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.SubjectID != "ops@example.com" {
		t.Errorf("subject id = %q", claims.SubjectID)
	}
	if claims.Subject != domain.SubjectTypeAdmin {
		t.Errorf("subject = %q, want ADMIN", claims.Subject)
	}
}

func TestParseTokenWrongSecret(t *testing.T) {
	issuer := NewTokenManager("secret-one", 5)
	verifier := NewTokenManager("secret-two", 5)

	token, _, err := issuer.GenerateToken("ops@example.com", domain.SubjectTypeAdmin)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if _, err := verifier.ParseToken(token); err == nil {
		t.Fatal("token signed with a different secret must not parse")
	}
}

func TestParseTokenGarbage(t *testing.T) {
	tm := NewTokenManager("secret-one", 5)
	if _, err := tm.ParseToken("not.a.token"); err == nil {
		t.Fatal("garbage token must not parse")
	}
}
