package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/freshdesk-bridge/internal/auth"
	"github.com/spec-kit/freshdesk-bridge/internal/config"
	"github.com/spec-kit/freshdesk-bridge/internal/domain"
	"github.com/spec-kit/freshdesk-bridge/internal/repository"
	"github.com/spec-kit/freshdesk-bridge/internal/service"
)

type stubSubmissionRepo struct {
	submissions []domain.Submission
}

func (s *stubSubmissionRepo) Create(ctx context.Context, submission *domain.Submission) error {
	s.submissions = append(s.submissions, *submission)
	return nil
}

func (s *stubSubmissionRepo) GetByID(ctx context.Context, id string) (*domain.Submission, error) {
	return nil, nil
}

func (s *stubSubmissionRepo) ListWithFilter(ctx context.Context, filter repository.SubmissionFilter) ([]domain.Submission, error) {
	return s.submissions, nil
}

func newAdminApp(t *testing.T, repo repository.SubmissionRepository) (*fiber.App, *service.AuthService) {
	t.Helper()
	hash, err := auth.HashPassword("operator-pass", 4)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	authService := service.NewAuthService(config.AuthConfig{
		JWTSecret:             "test-secret",
		AccessTokenTTLMinutes: 5,
		AdminEmail:            "ops@example.com",
		AdminPasswordHash:     hash,
	})
	handler := NewAdminHandler(authService, repo)
	middleware := auth.NewAuthMiddleware(authService.TokenManager())

	app := fiber.New()
	app.Use(errorEnvelope())
	app.Post("/api/v1/auth/admin/login", handler.Login)
	app.Get("/api/v1/admin/submissions", middleware.Handle, handler.ListSubmissions)
	return app, authService
}

func TestAdminSubmissionsRequiresToken(t *testing.T) {
	app, _ := newAdminApp(t, &stubSubmissionRepo{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/submissions", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
}

func TestAdminLoginRejectsBadPassword(t *testing.T) {
	app, _ := newAdminApp(t, &stubSubmissionRepo{})

	resp := postJSON(t, app, "/api/v1/auth/admin/login",
		`{"email":"ops@example.com","password":"wrong"}`)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
}

func TestAdminLoginAndListSubmissions(t *testing.T) {
	repo := &stubSubmissionRepo{submissions: []domain.Submission{
		{ID: "s-1", Name: "Jordan", Email: "jordan@example.com", Message: "help", Outcome: domain.OutcomeDelivered},
		{ID: "s-2", Name: "Casey", Email: "casey@example.com", Message: "broken", Outcome: domain.OutcomeRejected},
	}}
	app, _ := newAdminApp(t, repo)

	resp := postJSON(t, app, "/api/v1/auth/admin/login",
		`{"email":"ops@example.com","password":"operator-pass"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login status = %d, want 200", resp.StatusCode)
	}
	var loginBody struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&loginBody); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	if loginBody.Data.Token == "" {
		t.Fatal("token should be issued")
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/submissions", nil)
	req.Header.Set("Authorization", "Bearer "+loginBody.Data.Token)
	listResp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if listResp.StatusCode != http.StatusOK {
		t.Fatalf("list status = %d, want 200", listResp.StatusCode)
	}

	var listBody struct {
		Data []struct {
			ID      string `json:"id"`
			Outcome string `json:"outcome"`
		} `json:"data"`
	}
	if err := json.NewDecoder(listResp.Body).Decode(&listBody); err != nil {
		t.Fatalf("decode list response: %v", err)
	}
	if len(listBody.Data) != 2 {
		t.Fatalf("items = %d, want 2", len(listBody.Data))
	}
	if listBody.Data[0].ID != "s-1" || listBody.Data[0].Outcome != "DELIVERED" {
		t.Errorf("first item = %+v", listBody.Data[0])
	}
}

func TestAdminLoginMalformedBody(t *testing.T) {
	app, _ := newAdminApp(t, &stubSubmissionRepo{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/admin/login", strings.NewReader("not-json"))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}
