package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/freshdesk-bridge/internal/domain"
)

// SubmissionFilter captures listing parameters for the admin surface.
type SubmissionFilter struct {
	Outcomes    []domain.SubmissionOutcome
	Email       *string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	Limit       int
	Offset      int
}

// SubmissionRepository encapsulates submission audit persistence.
type SubmissionRepository interface {
	Create(ctx context.Context, submission *domain.Submission) error
	GetByID(ctx context.Context, id string) (*domain.Submission, error)
	ListWithFilter(ctx context.Context, filter SubmissionFilter) ([]domain.Submission, error)
}

type submissionRepository struct {
	pool *pgxpool.Pool
}

// NewSubmissionRepository instantiates repository.
func NewSubmissionRepository(pool *pgxpool.Pool) SubmissionRepository {
	return &submissionRepository{pool: pool}
}

func (r *submissionRepository) Create(ctx context.Context, submission *domain.Submission) error {
	const query = `
        INSERT INTO submissions (id, name, email, message, tags, custom_fields, outcome, freshdesk_ticket_id, freshdesk_status, failure_detail)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
        RETURNING created_at`
	return r.pool.QueryRow(ctx, query,
		submission.ID,
		submission.Name,
		submission.Email,
		submission.Message,
		normalizeTags(submission.Tags),
		normalizeCustomFields(submission.CustomFields),
		submission.Outcome,
		submission.FreshdeskTicketID,
		submission.FreshdeskStatus,
		submission.FailureDetail,
	).Scan(&submission.CreatedAt)
}

// normalizeTags replaces a nil slice with an empty one. pgx encodes a
// nil []string as SQL NULL, and submissions.tags is TEXT[] NOT NULL;
// the tag-less contact-form default must still insert.
func normalizeTags(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}

// normalizeCustomFields does the same for the JSONB column.
func normalizeCustomFields(fields map[string]string) map[string]string {
	if fields == nil {
		return map[string]string{}
	}
	return fields
}

func (r *submissionRepository) GetByID(ctx context.Context, id string) (*domain.Submission, error) {
	const query = `
        SELECT id, name, email, message, tags, custom_fields, outcome, freshdesk_ticket_id, freshdesk_status, failure_detail, created_at
        FROM submissions WHERE id=$1`
	row := r.pool.QueryRow(ctx, query, id)
	return scanSubmission(row)
}

func (r *submissionRepository) ListWithFilter(ctx context.Context, filter SubmissionFilter) ([]domain.Submission, error) {
	conditions := []string{}
	args := []any{}
	idx := 1

	if len(filter.Outcomes) > 0 {
		placeholders := make([]string, 0, len(filter.Outcomes))
		for _, outcome := range filter.Outcomes {
			placeholders = append(placeholders, fmt.Sprintf("$%d", idx))
			args = append(args, outcome)
			idx++
		}
		conditions = append(conditions, fmt.Sprintf("outcome IN (%s)", strings.Join(placeholders, ",")))
	}
	if filter.Email != nil {
		conditions = append(conditions, fmt.Sprintf("email = $%d", idx))
		args = append(args, *filter.Email)
		idx++
	}
	if filter.CreatedFrom != nil {
		conditions = append(conditions, fmt.Sprintf("created_at >= $%d", idx))
		args = append(args, *filter.CreatedFrom)
		idx++
	}
	if filter.CreatedTo != nil {
		conditions = append(conditions, fmt.Sprintf("created_at <= $%d", idx))
		args = append(args, *filter.CreatedTo)
		idx++
	}

	query := `
        SELECT id, name, email, message, tags, custom_fields, outcome, freshdesk_ticket_id, freshdesk_status, failure_detail, created_at
        FROM submissions`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC"

	limit := filter.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	query += fmt.Sprintf(" LIMIT $%d", idx)
	args = append(args, limit)
	idx++
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", idx)
		args = append(args, filter.Offset)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	submissions := []domain.Submission{}
	for rows.Next() {
		submission, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		submissions = append(submissions, *submission)
	}
	return submissions, rows.Err()
}

func scanSubmission(row pgx.Row) (*domain.Submission, error) {
	submission := &domain.Submission{}
	err := row.Scan(
		&submission.ID,
		&submission.Name,
		&submission.Email,
		&submission.Message,
		&submission.Tags,
		&submission.CustomFields,
		&submission.Outcome,
		&submission.FreshdeskTicketID,
		&submission.FreshdeskStatus,
		&submission.FailureDetail,
		&submission.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return submission, nil
}
