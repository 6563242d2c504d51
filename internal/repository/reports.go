package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/butlerian/directory/internal/logger"
	"github.com/butlerian/directory/internal/models"
)

type ReportRepository struct {
	db     *sql.DB
	logger logger.Logger
}

func NewReportRepository(db *sql.DB, log logger.Logger) *ReportRepository {
	return &ReportRepository{
		db:     db,
		logger: log,
	}
}

func (r *ReportRepository) Create(ctx context.Context, report *models.Report) error {
	report.ID = uuid.New().String()
	report.Status = models.ReportPending
	report.CreatedAt = time.Now()
	report.UpdatedAt = report.CreatedAt

	query := `
		INSERT INTO reports (
			id, type, target_id, reporter_email, field_name, proposed_value,
			source_url, message, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.ExecContext(ctx,
		query,
		report.ID,
		report.Type,
		report.TargetID,
		report.ReporterEmail,
		report.FieldName,
		report.ProposedValue,
		report.SourceURL,
		report.Message,
		report.Status,
		report.CreatedAt,
		report.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("insert report: %w", err)
	}

	return nil
}

func (r *ReportRepository) GetByID(ctx context.Context, id string) (*models.Report, error) {
	query := `
		SELECT id, type, target_id, reporter_email, field_name, proposed_value,
		       source_url, message, status, reviewed_by, admin_notes,
		       created_at, updated_at
		FROM reports
		WHERE id = $1
	`

	var report models.Report
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&report.ID,
		&report.Type,
		&report.TargetID,
		&report.ReporterEmail,
		&report.FieldName,
		&report.ProposedValue,
		&report.SourceURL,
		&report.Message,
		&report.Status,
		&report.ReviewedBy,
		&report.AdminNotes,
		&report.CreatedAt,
		&report.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query report: %w", err)
	}

	return &report, nil
}

// ReportFilter narrows the admin listing. Zero values mean "any".
type ReportFilter struct {
	Status   models.ReportStatus
	Type     models.ReportType
	TargetID string
}

func (r *ReportRepository) List(ctx context.Context, filter ReportFilter) ([]models.Report, error) {
	whereClause, args := buildReportWhere(filter)
	query := `
		SELECT id, type, target_id, reporter_email, field_name, proposed_value,
		       source_url, message, status, reviewed_by, admin_notes,
		       created_at, updated_at
		FROM reports
		WHERE 1=1` + whereClause + `
		ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query reports: %w", err)
	}
	defer rows.Close()

	reports := make([]models.Report, 0)
	for rows.Next() {
		var report models.Report
		if scanErr := rows.Scan(
			&report.ID,
			&report.Type,
			&report.TargetID,
			&report.ReporterEmail,
			&report.FieldName,
			&report.ProposedValue,
			&report.SourceURL,
			&report.Message,
			&report.Status,
			&report.ReviewedBy,
			&report.AdminNotes,
			&report.CreatedAt,
			&report.UpdatedAt,
		); scanErr != nil {
			return nil, fmt.Errorf("scan report: %w", scanErr)
		}
		reports = append(reports, report)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("iterate reports: %w", rowsErr)
	}

	return reports, nil
}

func buildReportWhere(filter ReportFilter) (whereClause string, args []any) {
	var clauses []string
	args = make([]any, 0)

	if filter.Status != "" {
		args = append(args, filter.Status)
		clauses = append(clauses, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.Type != "" {
		args = append(args, filter.Type)
		clauses = append(clauses, fmt.Sprintf("type = $%d", len(args)))
	}
	if filter.TargetID != "" {
		args = append(args, filter.TargetID)
		clauses = append(clauses, fmt.Sprintf("target_id = $%d", len(args)))
	}

	if len(clauses) == 0 {
		return "", args
	}
	return " AND " + strings.Join(clauses, " AND "), args
}

// Triage moves a report out of pending in a single UPDATE, recording the
// reviewer and optional notes.
func (r *ReportRepository) Triage(ctx context.Context, id string, status models.ReportStatus, reviewedBy string, adminNotes *string) error {
	query := `
		UPDATE reports
		SET status = $2, reviewed_by = $3, admin_notes = $4, updated_at = $5
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, id, status, reviewedBy, adminNotes, time.Now())
	if err != nil {
		return fmt.Errorf("triage report: %w", err)
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
