package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/freshdesk-bridge/internal/domain"
	"github.com/spec-kit/freshdesk-bridge/internal/events"
	"github.com/spec-kit/freshdesk-bridge/internal/freshdesk"
	"github.com/spec-kit/freshdesk-bridge/internal/guard"
	"github.com/spec-kit/freshdesk-bridge/internal/observability"
	"github.com/spec-kit/freshdesk-bridge/internal/repository"
	apperrors "github.com/spec-kit/freshdesk-bridge/pkg/util"
)

// User-visible status strings. These travel back to the page verbatim;
// anything Freshdesk said beyond its message field stays server-side.
const (
	SuccessMessage        = "Thanks! Your ticket has been created."
	NetworkErrorMessage   = "Network error. Please try again."
	DuplicateMessage      = "This message was just submitted. Please wait a moment before trying again."
	rejectedMessagePrefix = "Something went wrong: "
)

// TicketCreator is the slice of the Freshdesk client the intake flow
// needs.
type TicketCreator interface {
	CreateTicket(ctx context.Context, ticket freshdesk.TicketRequest) (*freshdesk.CreatedTicket, error)
}

// IntakeInput describes one contact-form submission.
type IntakeInput struct {
	Name         string
	Email        string
	Message      string
	Tags         []string
	CustomFields map[string]string
}

// IntakeResult is the sanitized outcome handed back to the browser.
type IntakeResult struct {
	SubmissionID  string
	Outcome       domain.SubmissionOutcome
	StatusMessage string
}

// Delivered reports whether Freshdesk accepted the ticket.
func (r IntakeResult) Delivered() bool {
	return r.Outcome == domain.OutcomeDelivered
}

// IntakeService orchestrates one submit-and-report cycle: build the
// ticket payload, forward it to Freshdesk, classify the outcome, and
// record the attempt.
type IntakeService struct {
	tickets     TicketCreator
	submissions repository.SubmissionRepository
	dedupe      guard.DedupeGuard
	dispatcher  events.Dispatcher
	metrics     *observability.Metrics
	logger      *zap.Logger
	maxMessage  int
}

// IntakeDependencies bundles collaborators for the intake service.
type IntakeDependencies struct {
	Tickets        TicketCreator
	SubmissionRepo repository.SubmissionRepository
	Dedupe         guard.DedupeGuard
	Dispatcher     events.Dispatcher
	Metrics        *observability.Metrics
	Logger         *zap.Logger
	MaxMessageLen  int
}

// NewIntakeService constructs the service.
func NewIntakeService(deps IntakeDependencies) *IntakeService {
	return &IntakeService{
		tickets:     deps.Tickets,
		submissions: deps.SubmissionRepo,
		dedupe:      deps.Dedupe,
		dispatcher:  deps.Dispatcher,
		metrics:     deps.Metrics,
		logger:      deps.Logger,
		maxMessage:  deps.MaxMessageLen,
	}
}

// Submit forwards one form submission to Freshdesk and returns the
// sanitized status. Exactly one upstream call is made; there are no
// retries, and a failed submission leaves resubmission to the user.
func (s *IntakeService) Submit(ctx context.Context, input IntakeInput) (*IntakeResult, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(input.Email)
	message := strings.TrimSpace(input.Message)
	if name == "" || email == "" || message == "" {
		return nil, apperrors.NewValidationError("name, email, message required", nil)
	}
	if s.maxMessage > 0 && len(message) > s.maxMessage {
		return nil, apperrors.NewValidationError("message too long", map[string]any{
			"max_length": s.maxMessage,
		})
	}

	submission := &domain.Submission{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		Message:      message,
		Tags:         input.Tags,
		CustomFields: input.CustomFields,
	}

	if s.dedupe != nil {
		first, err := s.dedupe.FirstSeen(ctx, email, message)
		if err != nil {
			// A broken guard must not block intake.
			s.logger.Warn("dedupe guard unavailable", zap.Error(err))
		} else if !first {
			submission.Outcome = domain.OutcomeDuplicate
			s.record(ctx, submission)
			return &IntakeResult{
				SubmissionID:  submission.ID,
				Outcome:       domain.OutcomeDuplicate,
				StatusMessage: DuplicateMessage,
			}, nil
		}
	}

	ticket := freshdesk.NewTicketRequest(name, email, message)
	ticket.Tags = input.Tags
	ticket.CustomFields = input.CustomFields

	created, err := s.tickets.CreateTicket(ctx, ticket)
	result := &IntakeResult{SubmissionID: submission.ID}

	switch {
	case err == nil:
		submission.Outcome = domain.OutcomeDelivered
		if created != nil && created.ID != 0 {
			ticketID := created.ID
			submission.FreshdeskTicketID = &ticketID
		}
		result.Outcome = domain.OutcomeDelivered
		result.StatusMessage = SuccessMessage
		s.publish(ctx, events.Event{
			Type:         events.EventSubmissionDelivered,
			SubmissionID: submission.ID,
			Payload: events.SubmissionDeliveredPayload{
				Email:             email,
				FreshdeskTicketID: submission.FreshdeskTicketID,
			},
		})
	default:
		if apiErr, ok := freshdesk.AsAPIError(err); ok {
			submission.Outcome = domain.OutcomeRejected
			status := apiErr.StatusCode
			submission.FreshdeskStatus = &status
			detail := apiErr.Message
			submission.FailureDetail = &detail
			result.Outcome = domain.OutcomeRejected
			result.StatusMessage = rejectedMessagePrefix + apiErr.Message
		} else {
			submission.Outcome = domain.OutcomeUnreachable
			detail := err.Error()
			submission.FailureDetail = &detail
			result.Outcome = domain.OutcomeUnreachable
			result.StatusMessage = NetworkErrorMessage
			s.logger.Error("freshdesk unreachable", zap.Error(err))
		}
		s.publish(ctx, events.Event{
			Type:         events.EventSubmissionFailed,
			SubmissionID: submission.ID,
			Payload: events.SubmissionFailedPayload{
				Email:           email,
				Outcome:         submission.Outcome,
				FreshdeskStatus: submission.FreshdeskStatus,
				Detail:          deref(submission.FailureDetail),
			},
		})
	}

	s.record(ctx, submission)
	return result, nil
}

// record persists the audit row. Auditing is best effort: a storage
// failure is logged but never changes what the user is told.
func (s *IntakeService) record(ctx context.Context, submission *domain.Submission) {
	s.metrics.RecordSubmission(string(submission.Outcome))
	if s.submissions == nil {
		return
	}
	if err := s.submissions.Create(ctx, submission); err != nil {
		s.logger.Error("record submission",
			zap.String("submission_id", submission.ID),
			zap.Error(err))
	}
}

func (s *IntakeService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
