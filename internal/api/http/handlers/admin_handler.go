package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/freshdesk-bridge/internal/api/dto"
	"github.com/spec-kit/freshdesk-bridge/internal/domain"
	"github.com/spec-kit/freshdesk-bridge/internal/repository"
	"github.com/spec-kit/freshdesk-bridge/internal/service"
	apperrors "github.com/spec-kit/freshdesk-bridge/pkg/util"
)

// AdminHandler exposes the operator surface: login and the submission
// audit log.
type AdminHandler struct {
	auth        *service.AuthService
	submissions repository.SubmissionRepository
}

// NewAdminHandler constructs handler.
func NewAdminHandler(authService *service.AuthService, submissions repository.SubmissionRepository) *AdminHandler {
	return &AdminHandler{auth: authService, submissions: submissions}
}

// Login POST /api/v1/auth/admin/login.
func (h *AdminHandler) Login(c *fiber.Ctx) error {
	var req dto.AdminLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password required", nil)
	}

	token, expiresAt, err := h.auth.LoginAdmin(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": dto.AuthResponse{Token: token, ExpiresAt: expiresAt},
	})
}

// ListSubmissions GET /api/v1/admin/submissions.
func (h *AdminHandler) ListSubmissions(c *fiber.Ctx) error {
	if h.submissions == nil {
		return apperrors.NewDomainError("AUDIT_DISABLED", "submission auditing is not configured", http.StatusServiceUnavailable, nil)
	}

	filter := parseSubmissionQuery(c)
	submissions, err := h.submissions.ListWithFilter(c.Context(), filter)
	if err != nil {
		return apperrors.MapError(err)
	}

	items := make([]dto.SubmissionSummary, 0, len(submissions))
	for i := range submissions {
		items = append(items, submissionSummary(&submissions[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

func parseSubmissionQuery(c *fiber.Ctx) repository.SubmissionFilter {
	filter := repository.SubmissionFilter{}
	if outcomeStr := c.Query("outcome"); outcomeStr != "" {
		for _, part := range strings.Split(outcomeStr, ",") {
			filter.Outcomes = append(filter.Outcomes, domain.SubmissionOutcome(strings.ToUpper(strings.TrimSpace(part))))
		}
	}
	if email := c.Query("email"); email != "" {
		filter.Email = &email
	}
	if from := parseTime(c.Query("created_from")); from != nil {
		filter.CreatedFrom = from
	}
	if to := parseTime(c.Query("created_to")); to != nil {
		filter.CreatedTo = to
	}
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil {
		filter.Limit = limit
	}
	if offset, err := strconv.Atoi(c.Query("offset")); err == nil {
		filter.Offset = offset
	}
	return filter
}

func parseTime(value string) *time.Time {
	if value == "" {
		return nil
	}
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil
	}
	return &parsed
}

func submissionSummary(submission *domain.Submission) dto.SubmissionSummary {
	return dto.SubmissionSummary{
		ID:                submission.ID,
		Name:              submission.Name,
		Email:             submission.Email,
		Message:           submission.Message,
		Tags:              submission.Tags,
		CustomFields:      submission.CustomFields,
		Outcome:           submission.Outcome,
		FreshdeskTicketID: submission.FreshdeskTicketID,
		FreshdeskStatus:   submission.FreshdeskStatus,
		FailureDetail:     submission.FailureDetail,
		CreatedAt:         submission.CreatedAt,
	}
}
