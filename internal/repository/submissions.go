package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/butlerian/directory/internal/logger"
	"github.com/butlerian/directory/internal/models"
)

type SubmissionRepository struct {
	db     *sql.DB
	logger logger.Logger
}

func NewSubmissionRepository(db *sql.DB, log logger.Logger) *SubmissionRepository {
	return &SubmissionRepository{
		db:     db,
		logger: log,
	}
}

func (r *SubmissionRepository) Create(ctx context.Context, sub *models.ResourceSubmission) error {
	sub.ID = models.NewSubmissionID()
	sub.Status = models.SubmissionPending
	sub.SubmittedAt = time.Now()

	query := `
		INSERT INTO resource_submissions (
			id, title, description, url, category, tags,
			status, submitted_at, submitted_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.ExecContext(ctx,
		query,
		sub.ID,
		sub.Title,
		sub.Description,
		sub.URL,
		sub.Category,
		sub.Tags,
		sub.Status,
		sub.SubmittedAt,
		sub.SubmittedBy,
	)

	if err != nil {
		return fmt.Errorf("insert resource submission: %w", err)
	}

	return nil
}

func (r *SubmissionRepository) GetByID(ctx context.Context, id string) (*models.ResourceSubmission, error) {
	query := `
		SELECT id, title, description, url, category, tags,
		       status, submitted_at, submitted_by,
		       reviewed_at, reviewed_by, rejection_reason
		FROM resource_submissions
		WHERE id = $1
	`

	var sub models.ResourceSubmission
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&sub.ID,
		&sub.Title,
		&sub.Description,
		&sub.URL,
		&sub.Category,
		&sub.Tags,
		&sub.Status,
		&sub.SubmittedAt,
		&sub.SubmittedBy,
		&sub.ReviewedAt,
		&sub.ReviewedBy,
		&sub.RejectionReason,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query resource submission: %w", err)
	}

	return &sub, nil
}

func (r *SubmissionRepository) List(ctx context.Context, status models.SubmissionStatus) ([]models.ResourceSubmission, error) {
	query := `
		SELECT id, title, description, url, category, tags,
		       status, submitted_at, submitted_by,
		       reviewed_at, reviewed_by, rejection_reason
		FROM resource_submissions
	`
	args := []any{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY submitted_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query resource submissions: %w", err)
	}
	defer rows.Close()

	subs := make([]models.ResourceSubmission, 0)
	for rows.Next() {
		var sub models.ResourceSubmission
		if scanErr := rows.Scan(
			&sub.ID,
			&sub.Title,
			&sub.Description,
			&sub.URL,
			&sub.Category,
			&sub.Tags,
			&sub.Status,
			&sub.SubmittedAt,
			&sub.SubmittedBy,
			&sub.ReviewedAt,
			&sub.ReviewedBy,
			&sub.RejectionReason,
		); scanErr != nil {
			return nil, fmt.Errorf("scan resource submission: %w", scanErr)
		}
		subs = append(subs, sub)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("iterate resource submissions: %w", rowsErr)
	}

	return subs, nil
}

// Approve merges any supplied edits and marks the submission approved in a
// single UPDATE. Approving an already-approved submission succeeds and
// refreshes the review stamp; there is no optimistic-concurrency guard, so
// concurrent reviews race with last-write-wins.
func (r *SubmissionRepository) Approve(ctx context.Context, id, reviewer string, edits *models.ResourceEdits) error {
	if reviewer == "" {
		reviewer = models.DefaultReviewer
	}

	set := []string{"status = $2", "reviewed_at = $3", "reviewed_by = $4", "rejection_reason = NULL"}
	args := []any{id, models.SubmissionApproved, time.Now(), reviewer}
	set, args = appendResourceEditClauses(set, args, edits)

	return r.execOne(ctx, set, args, "approve resource submission")
}

// Reject marks the submission rejected with the given reason, or the default
// reason when none is supplied.
func (r *SubmissionRepository) Reject(ctx context.Context, id, reviewer, reason string) error {
	if reviewer == "" {
		reviewer = models.DefaultReviewer
	}
	if reason == "" {
		reason = models.DefaultRejectionReason
	}

	set := []string{"status = $2", "reviewed_at = $3", "reviewed_by = $4", "rejection_reason = $5"}
	args := []any{id, models.SubmissionRejected, time.Now(), reviewer, reason}

	return r.execOne(ctx, set, args, "reject resource submission")
}

// ApplyEdits overwrites the supplied fields without touching the status.
func (r *SubmissionRepository) ApplyEdits(ctx context.Context, id string, edits *models.ResourceEdits) error {
	if edits.Empty() {
		return ErrNoFields
	}

	set, args := appendResourceEditClauses(nil, []any{id}, edits)
	return r.execOne(ctx, set, args, "update resource submission")
}

func (r *SubmissionRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM resource_submissions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete resource submission: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// execOne runs a single-row UPDATE built from set clauses. The transition is
// one statement so no multi-row transaction is needed.
func (r *SubmissionRepository) execOne(ctx context.Context, set []string, args []any, op string) error {
	query := `UPDATE resource_submissions SET ` + strings.Join(set, ", ") + ` WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// appendResourceEditClauses adds a SET clause per supplied edit field. Each
// supplied field fully replaces the stored value; nil fields are untouched.
func appendResourceEditClauses(set []string, args []any, edits *models.ResourceEdits) ([]string, []any) {
	if edits == nil {
		return set, args
	}

	add := func(column string, value any) {
		args = append(args, value)
		set = append(set, column+" = $"+strconv.Itoa(len(args)))
	}

	if edits.Title != nil {
		add("title", *edits.Title)
	}
	if edits.Description != nil {
		add("description", *edits.Description)
	}
	if edits.URL != nil {
		add("url", *edits.URL)
	}
	if edits.Category != nil {
		add("category", *edits.Category)
	}
	if edits.Tags != nil {
		add("tags", models.FilterTags(*edits.Tags))
	}

	return set, args
}
