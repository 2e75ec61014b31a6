package events

import (
	"time"

	"github.com/spec-kit/freshdesk-bridge/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventSubmissionDelivered EventType = "submission_delivered"
	EventSubmissionFailed    EventType = "submission_failed"
)

// Event represents a domain event emitted by the intake service.
type Event struct {
	ID           string      `json:"id"`
	Type         EventType   `json:"type"`
	SubmissionID string      `json:"submission_id"`
	Timestamp    time.Time   `json:"timestamp"`
	Payload      interface{} `json:"payload"`
}

// SubmissionDeliveredPayload payload.
type SubmissionDeliveredPayload struct {
	Email             string `json:"email"`
	FreshdeskTicketID *int64 `json:"freshdesk_ticket_id,omitempty"`
}

// SubmissionFailedPayload payload.
type SubmissionFailedPayload struct {
	Email           string                   `json:"email"`
	Outcome         domain.SubmissionOutcome `json:"outcome"`
	FreshdeskStatus *int                     `json:"freshdesk_status,omitempty"`
	Detail          string                   `json:"detail,omitempty"`
}
