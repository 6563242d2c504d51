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

type CompanyRepository struct {
	db     *sql.DB
	logger logger.Logger
}

func NewCompanyRepository(db *sql.DB, log logger.Logger) *CompanyRepository {
	return &CompanyRepository{
		db:     db,
		logger: log,
	}
}

const companyColumns = `id, name, description, website, founders, products,
	       approved, featured, controversies, citations, created_at, updated_at`

// Create persists a company. Callers run the provenance cleaner before this;
// the repository stores what it is given.
func (r *CompanyRepository) Create(ctx context.Context, company *models.Company) error {
	company.ID = uuid.New().String()
	company.CreatedAt = time.Now()
	company.UpdatedAt = time.Now()

	query := `
		INSERT INTO companies (
			id, name, description, website, founders, products,
			approved, featured, controversies, citations, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.db.ExecContext(ctx,
		query,
		company.ID,
		company.Name,
		company.Description,
		company.Website,
		company.Founders,
		company.Products,
		company.Approved,
		company.Featured,
		company.Controversies,
		company.Citations,
		company.CreatedAt,
		company.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("insert company: %w", err)
	}

	return nil
}

func (r *CompanyRepository) GetByID(ctx context.Context, id string) (*models.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE id = $1`

	var company models.Company
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&company.ID,
		&company.Name,
		&company.Description,
		&company.Website,
		&company.Founders,
		&company.Products,
		&company.Approved,
		&company.Featured,
		&company.Controversies,
		&company.Citations,
		&company.CreatedAt,
		&company.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query company: %w", err)
	}

	return &company, nil
}

func (r *CompanyRepository) List(ctx context.Context) ([]models.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query companies: %w", err)
	}
	defer rows.Close()

	companies := make([]models.Company, 0)
	for rows.Next() {
		var company models.Company
		if scanErr := rows.Scan(
			&company.ID,
			&company.Name,
			&company.Description,
			&company.Website,
			&company.Founders,
			&company.Products,
			&company.Approved,
			&company.Featured,
			&company.Controversies,
			&company.Citations,
			&company.CreatedAt,
			&company.UpdatedAt,
		); scanErr != nil {
			return nil, fmt.Errorf("scan company: %w", scanErr)
		}
		companies = append(companies, company)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("iterate companies: %w", rowsErr)
	}

	return companies, nil
}

func (r *CompanyRepository) Update(ctx context.Context, company *models.Company) error {
	company.UpdatedAt = time.Now()

	query := `
		UPDATE companies
		SET name = $2, description = $3, website = $4, founders = $5, products = $6,
		    approved = $7, featured = $8, controversies = $9, citations = $10, updated_at = $11
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx,
		query,
		company.ID,
		company.Name,
		company.Description,
		company.Website,
		company.Founders,
		company.Products,
		company.Approved,
		company.Featured,
		company.Controversies,
		company.Citations,
		company.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("update company: %w", err)
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

func (r *CompanyRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM companies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete company: %w", err)
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
