package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/butlerian/directory/internal/logger"
	"github.com/butlerian/directory/internal/models"
)

type ResourceRepository struct {
	db     *sql.DB
	logger logger.Logger
}

func NewResourceRepository(db *sql.DB, log logger.Logger) *ResourceRepository {
	return &ResourceRepository{
		db:     db,
		logger: log,
	}
}

const resourceColumns = `id, title, description, url, category, tags,
	       approved, featured, created_at, updated_at`

func (r *ResourceRepository) Create(ctx context.Context, resource *models.Resource) error {
	resource.ID = uuid.New().String()
	resource.CreatedAt = time.Now()
	resource.UpdatedAt = time.Now()

	query := `
		INSERT INTO resources (
			id, title, description, url, category, tags,
			approved, featured, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.ExecContext(ctx,
		query,
		resource.ID,
		resource.Title,
		resource.Description,
		resource.URL,
		resource.Category,
		resource.Tags,
		resource.Approved,
		resource.Featured,
		resource.CreatedAt,
		resource.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("insert resource: %w", err)
	}

	return nil
}

func (r *ResourceRepository) GetByID(ctx context.Context, id string) (*models.Resource, error) {
	query := `SELECT ` + resourceColumns + ` FROM resources WHERE id = $1`

	var resource models.Resource
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&resource.ID,
		&resource.Title,
		&resource.Description,
		&resource.URL,
		&resource.Category,
		&resource.Tags,
		&resource.Approved,
		&resource.Featured,
		&resource.CreatedAt,
		&resource.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query resource: %w", err)
	}

	return &resource, nil
}

// ListApproved returns the publicly visible resources.
func (r *ResourceRepository) ListApproved(ctx context.Context) ([]models.Resource, error) {
	query := `SELECT ` + resourceColumns + `
		FROM resources
		WHERE approved = true
		ORDER BY featured DESC, created_at DESC`

	return r.list(ctx, query)
}

// List returns every resource, for the admin view.
func (r *ResourceRepository) List(ctx context.Context) ([]models.Resource, error) {
	query := `SELECT ` + resourceColumns + ` FROM resources ORDER BY created_at DESC`
	return r.list(ctx, query)
}

func (r *ResourceRepository) list(ctx context.Context, query string, args ...any) ([]models.Resource, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query resources: %w", err)
	}
	defer rows.Close()

	resources := make([]models.Resource, 0)
	for rows.Next() {
		var resource models.Resource
		if scanErr := rows.Scan(
			&resource.ID,
			&resource.Title,
			&resource.Description,
			&resource.URL,
			&resource.Category,
			&resource.Tags,
			&resource.Approved,
			&resource.Featured,
			&resource.CreatedAt,
			&resource.UpdatedAt,
		); scanErr != nil {
			return nil, fmt.Errorf("scan resource: %w", scanErr)
		}
		resources = append(resources, resource)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("iterate resources: %w", rowsErr)
	}

	return resources, nil
}

func (r *ResourceRepository) Update(ctx context.Context, resource *models.Resource) error {
	resource.UpdatedAt = time.Now()

	query := `
		UPDATE resources
		SET title = $2, description = $3, url = $4, category = $5, tags = $6,
		    approved = $7, featured = $8, updated_at = $9
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx,
		query,
		resource.ID,
		resource.Title,
		resource.Description,
		resource.URL,
		resource.Category,
		resource.Tags,
		resource.Approved,
		resource.Featured,
		resource.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("update resource: %w", err)
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

func (r *ResourceRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM resources WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete resource: %w", err)
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
