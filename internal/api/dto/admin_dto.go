package dto

import (
	"time"

	"github.com/spec-kit/freshdesk-bridge/internal/domain"
)

// AdminLoginRequest payload.
type AdminLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse carries an issued access token.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SubmissionSummary response item for the admin audit listing.
type SubmissionSummary struct {
	ID                string                   `json:"id"`
	Name              string                   `json:"name"`
	Email             string                   `json:"email"`
	Message           string                   `json:"message"`
	Tags              []string                 `json:"tags,omitempty"`
	CustomFields      map[string]string        `json:"custom_fields,omitempty"`
	Outcome           domain.SubmissionOutcome `json:"outcome"`
	FreshdeskTicketID *int64                   `json:"freshdesk_ticket_id,omitempty"`
	FreshdeskStatus   *int                     `json:"freshdesk_status,omitempty"`
	FailureDetail     *string                  `json:"failure_detail,omitempty"`
	CreatedAt         time.Time                `json:"created_at"`
}
