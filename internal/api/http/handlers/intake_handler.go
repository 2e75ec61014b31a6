package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/freshdesk-bridge/internal/api/dto"
	"github.com/spec-kit/freshdesk-bridge/internal/domain"
	"github.com/spec-kit/freshdesk-bridge/internal/guard"
	"github.com/spec-kit/freshdesk-bridge/internal/service"
	apperrors "github.com/spec-kit/freshdesk-bridge/pkg/util"
)

// IntakeHandler exposes the public contact-form endpoint.
type IntakeHandler struct {
	service *service.IntakeService
	limiter guard.RateLimiter
	logger  *zap.Logger
}

// NewIntakeHandler constructs handler.
func NewIntakeHandler(intakeService *service.IntakeService, limiter guard.RateLimiter, logger *zap.Logger) *IntakeHandler {
	return &IntakeHandler{service: intakeService, limiter: limiter, logger: logger}
}

// Submit POST /api/v1/forms/contact.
//
// The upstream Freshdesk status never reaches the browser directly;
// the sanitized status message does. A rejected or unreachable
// upstream is reported as 502 so the page script keeps the form
// populated for manual resubmission.
func (h *IntakeHandler) Submit(c *fiber.Ctx) error {
	if h.limiter != nil {
		allowed, err := h.limiter.Allow(c.Context(), c.IP())
		if err != nil {
			// A broken limiter must not block intake.
			h.logger.Warn("rate limiter unavailable", zap.Error(err))
		} else if !allowed {
			return apperrors.NewTooManyRequests("too many submissions, slow down")
		}
	}

	var req dto.IntakeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Name == "" || req.Email == "" || req.Message == "" {
		return apperrors.NewValidationError("name, email, message required", nil)
	}

	result, err := h.service.Submit(c.Context(), service.IntakeInput{
		Name:         req.Name,
		Email:        req.Email,
		Message:      req.Message,
		Tags:         req.Tags,
		CustomFields: req.CustomFields,
	})
	if err != nil {
		return err
	}

	response := dto.IntakeResponse{
		OK:            result.Delivered(),
		StatusMessage: result.StatusMessage,
		SubmissionID:  result.SubmissionID,
	}
	return c.Status(statusForOutcome(result.Outcome)).JSON(response)
}

func statusForOutcome(outcome domain.SubmissionOutcome) int {
	switch outcome {
	case domain.OutcomeDelivered:
		return http.StatusCreated
	case domain.OutcomeDuplicate:
		return http.StatusConflict
	default:
		return http.StatusBadGateway
	}
}
