package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/butlerian/directory/internal/logger"
	"github.com/butlerian/directory/internal/models"
)

type CompanySubmissionRepository struct {
	db     *sql.DB
	logger logger.Logger
}

func NewCompanySubmissionRepository(db *sql.DB, log logger.Logger) *CompanySubmissionRepository {
	return &CompanySubmissionRepository{
		db:     db,
		logger: log,
	}
}

func (r *CompanySubmissionRepository) Create(ctx context.Context, sub *models.CompanySubmission) error {
	sub.ID = uuid.New().String()
	sub.Status = models.SubmissionPending
	sub.SubmittedAt = time.Now()

	query := `
		INSERT INTO company_submissions (
			id, name, description, website, founders, products,
			status, submitted_at, submitted_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.ExecContext(ctx,
		query,
		sub.ID,
		sub.Name,
		sub.Description,
		sub.Website,
		sub.Founders,
		sub.Products,
		sub.Status,
		sub.SubmittedAt,
		sub.SubmittedBy,
	)

	if err != nil {
		return fmt.Errorf("insert company submission: %w", err)
	}

	return nil
}

func (r *CompanySubmissionRepository) GetByID(ctx context.Context, id string) (*models.CompanySubmission, error) {
	query := `
		SELECT id, name, description, website, founders, products,
		       status, submitted_at, submitted_by,
		       reviewed_at, reviewed_by, rejection_reason
		FROM company_submissions
		WHERE id = $1
	`

	var sub models.CompanySubmission
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&sub.ID,
		&sub.Name,
		&sub.Description,
		&sub.Website,
		&sub.Founders,
		&sub.Products,
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
		return nil, fmt.Errorf("query company submission: %w", err)
	}

	return &sub, nil
}

func (r *CompanySubmissionRepository) List(ctx context.Context, status models.SubmissionStatus) ([]models.CompanySubmission, error) {
	query := `
		SELECT id, name, description, website, founders, products,
		       status, submitted_at, submitted_by,
		       reviewed_at, reviewed_by, rejection_reason
		FROM company_submissions
	`
	args := []any{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY submitted_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query company submissions: %w", err)
	}
	defer rows.Close()

	subs := make([]models.CompanySubmission, 0)
	for rows.Next() {
		var sub models.CompanySubmission
		if scanErr := rows.Scan(
			&sub.ID,
			&sub.Name,
			&sub.Description,
			&sub.Website,
			&sub.Founders,
			&sub.Products,
			&sub.Status,
			&sub.SubmittedAt,
			&sub.SubmittedBy,
			&sub.ReviewedAt,
			&sub.ReviewedBy,
			&sub.RejectionReason,
		); scanErr != nil {
			return nil, fmt.Errorf("scan company submission: %w", scanErr)
		}
		subs = append(subs, sub)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("iterate company submissions: %w", rowsErr)
	}

	return subs, nil
}

// Approve merges any supplied edits and marks the submission approved in a
// single UPDATE. Same last-write-wins semantics as resource submissions.
func (r *CompanySubmissionRepository) Approve(ctx context.Context, id, reviewer string, edits *models.CompanyEdits) error {
	if reviewer == "" {
		reviewer = models.DefaultReviewer
	}

	set := []string{"status = $2", "reviewed_at = $3", "reviewed_by = $4", "rejection_reason = NULL"}
	args := []any{id, models.SubmissionApproved, time.Now(), reviewer}
	set, args = appendCompanyEditClauses(set, args, edits)

	return r.execOne(ctx, set, args, "approve company submission")
}

func (r *CompanySubmissionRepository) Reject(ctx context.Context, id, reviewer, reason string) error {
	if reviewer == "" {
		reviewer = models.DefaultReviewer
	}
	if reason == "" {
		reason = models.DefaultRejectionReason
	}

	set := []string{"status = $2", "reviewed_at = $3", "reviewed_by = $4", "rejection_reason = $5"}
	args := []any{id, models.SubmissionRejected, time.Now(), reviewer, reason}

	return r.execOne(ctx, set, args, "reject company submission")
}

func (r *CompanySubmissionRepository) ApplyEdits(ctx context.Context, id string, edits *models.CompanyEdits) error {
	if edits.Empty() {
		return ErrNoFields
	}

	set, args := appendCompanyEditClauses(nil, []any{id}, edits)
	return r.execOne(ctx, set, args, "update company submission")
}

func (r *CompanySubmissionRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM company_submissions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete company submission: %w", err)
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

func (r *CompanySubmissionRepository) execOne(ctx context.Context, set []string, args []any, op string) error {
	query := `UPDATE company_submissions SET ` + strings.Join(set, ", ") + ` WHERE id = $1`

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

func appendCompanyEditClauses(set []string, args []any, edits *models.CompanyEdits) ([]string, []any) {
	if edits == nil {
		return set, args
	}

	add := func(column string, value any) {
		args = append(args, value)
		set = append(set, column+" = $"+strconv.Itoa(len(args)))
	}

	if edits.Name != nil {
		add("name", *edits.Name)
	}
	if edits.Description != nil {
		add("description", *edits.Description)
	}
	if edits.Website != nil {
		add("website", *edits.Website)
	}
	if edits.Founders != nil {
		add("founders", *edits.Founders)
	}
	if edits.Products != nil {
		add("products", *edits.Products)
	}

	return set, args
}
