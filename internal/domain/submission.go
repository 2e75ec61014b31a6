package domain

import "time"

// SubmissionOutcome enumerates what happened to a form submission.
type SubmissionOutcome string

const (
	// OutcomeDelivered means Freshdesk accepted the ticket.
	OutcomeDelivered SubmissionOutcome = "DELIVERED"
	// OutcomeRejected means Freshdesk answered with a non-2xx status.
	OutcomeRejected SubmissionOutcome = "REJECTED"
	// OutcomeUnreachable means no response was received at all.
	OutcomeUnreachable SubmissionOutcome = "UNREACHABLE"
	// OutcomeDuplicate means the submission was caught by the
	// double-submit guard and never forwarded.
	OutcomeDuplicate SubmissionOutcome = "DUPLICATE"
)

// Submission is the audit record kept for every intake attempt,
// whatever its outcome.
type Submission struct {
	ID                string
	Name              string
	Email             string
	Message           string
	Tags              []string
	CustomFields      map[string]string
	Outcome           SubmissionOutcome
	FreshdeskTicketID *int64
	FreshdeskStatus   *int
	FailureDetail     *string
	CreatedAt         time.Time
}
