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

type NewsRepository struct {
	db     *sql.DB
	logger logger.Logger
}

func NewNewsRepository(db *sql.DB, log logger.Logger) *NewsRepository {
	return &NewsRepository{
		db:     db,
		logger: log,
	}
}

// InsertArticle stores a new article. The ingestion loop checks
// ArticleExistsByURL first; the unique index on url is the backstop.
func (r *NewsRepository) InsertArticle(ctx context.Context, article *models.NewsArticle) error {
	article.ID = uuid.New().String()
	article.CreatedAt = time.Now()

	query := `
		INSERT INTO news_articles (
			id, title, summary, url, image_url, source,
			published_at, approved, featured, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.ExecContext(ctx,
		query,
		article.ID,
		article.Title,
		article.Summary,
		article.URL,
		article.ImageURL,
		article.Source,
		article.PublishedAt,
		article.Approved,
		article.Featured,
		article.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("insert article: %w", err)
	}

	return nil
}

// ArticleExistsByURL is the ingestion dedup check: exact match on the
// canonical link URL.
func (r *NewsRepository) ArticleExistsByURL(ctx context.Context, url string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM news_articles WHERE url = $1)`, url,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check article url: %w", err)
	}
	return exists, nil
}

func (r *NewsRepository) ListArticles(ctx context.Context, limit int) ([]models.NewsArticle, error) {
	query := `
		SELECT id, title, summary, url, image_url, source,
		       published_at, approved, featured, created_at
		FROM news_articles
		WHERE approved = true
		ORDER BY published_at DESC
		LIMIT $1
	`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query articles: %w", err)
	}
	defer rows.Close()

	articles := make([]models.NewsArticle, 0)
	for rows.Next() {
		var article models.NewsArticle
		if scanErr := rows.Scan(
			&article.ID,
			&article.Title,
			&article.Summary,
			&article.URL,
			&article.ImageURL,
			&article.Source,
			&article.PublishedAt,
			&article.Approved,
			&article.Featured,
			&article.CreatedAt,
		); scanErr != nil {
			return nil, fmt.Errorf("scan article: %w", scanErr)
		}
		articles = append(articles, article)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("iterate articles: %w", rowsErr)
	}

	return articles, nil
}

func (r *NewsRepository) CreateSource(ctx context.Context, source *models.NewsSource) error {
	source.ID = uuid.New().String()
	source.CreatedAt = time.Now()
	source.UpdatedAt = time.Now()

	query := `
		INSERT INTO news_sources (
			id, name, feed_url, type, enabled, last_fetched, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.ExecContext(ctx,
		query,
		source.ID,
		source.Name,
		source.FeedURL,
		source.Type,
		source.Enabled,
		source.LastFetched,
		source.CreatedAt,
		source.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("insert news source: %w", err)
	}

	return nil
}

const sourceColumns = `id, name, feed_url, type, enabled, last_fetched, created_at, updated_at`

func (r *NewsRepository) GetSourceByID(ctx context.Context, id string) (*models.NewsSource, error) {
	query := `SELECT ` + sourceColumns + ` FROM news_sources WHERE id = $1`

	var source models.NewsSource
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&source.ID,
		&source.Name,
		&source.FeedURL,
		&source.Type,
		&source.Enabled,
		&source.LastFetched,
		&source.CreatedAt,
		&source.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query news source: %w", err)
	}

	return &source, nil
}

func (r *NewsRepository) ListSources(ctx context.Context) ([]models.NewsSource, error) {
	query := `SELECT ` + sourceColumns + ` FROM news_sources ORDER BY name`
	return r.listSources(ctx, query)
}

// ListEnabledSources returns the sources the ingestion run will visit.
func (r *NewsRepository) ListEnabledSources(ctx context.Context) ([]models.NewsSource, error) {
	query := `SELECT ` + sourceColumns + ` FROM news_sources WHERE enabled = true ORDER BY name`
	return r.listSources(ctx, query)
}

func (r *NewsRepository) listSources(ctx context.Context, query string) ([]models.NewsSource, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query news sources: %w", err)
	}
	defer rows.Close()

	sources := make([]models.NewsSource, 0)
	for rows.Next() {
		var source models.NewsSource
		if scanErr := rows.Scan(
			&source.ID,
			&source.Name,
			&source.FeedURL,
			&source.Type,
			&source.Enabled,
			&source.LastFetched,
			&source.CreatedAt,
			&source.UpdatedAt,
		); scanErr != nil {
			return nil, fmt.Errorf("scan news source: %w", scanErr)
		}
		sources = append(sources, source)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("iterate news sources: %w", rowsErr)
	}

	return sources, nil
}

func (r *NewsRepository) UpdateSource(ctx context.Context, source *models.NewsSource) error {
	source.UpdatedAt = time.Now()

	query := `
		UPDATE news_sources
		SET name = $2, feed_url = $3, type = $4, enabled = $5, updated_at = $6
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx,
		query,
		source.ID,
		source.Name,
		source.FeedURL,
		source.Type,
		source.Enabled,
		source.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("update news source: %w", err)
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

func (r *NewsRepository) DeleteSource(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM news_sources WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete news source: %w", err)
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

// StampLastFetched marks a source as visited by the ingestion run. Called
// after the source's items are processed, whether or not some items failed.
func (r *NewsRepository) StampLastFetched(ctx context.Context, id string, fetchedAt time.Time) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE news_sources SET last_fetched = $2, updated_at = $2 WHERE id = $1`,
		id, fetchedAt,
	)
	if err != nil {
		return fmt.Errorf("stamp last_fetched: %w", err)
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

// UpsertSourcesTx upserts multiple sources in a single transaction, keyed on
// feed_url. Returns created and updated counts; any failure rolls back the
// whole batch.
func (r *NewsRepository) UpsertSourcesTx(ctx context.Context, sources []*models.NewsSource) (created, updated int, err error) {
	if len(sources) == 0 {
		return 0, 0, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				r.logger.Error("failed to rollback transaction",
					logger.Error(rbErr),
				)
			}
		}
	}()

	for _, source := range sources {
		isCreated, upsertErr := r.upsertSource(ctx, tx, source)
		if upsertErr != nil {
			err = fmt.Errorf("upsert source %q: %w", source.Name, upsertErr)
			return 0, 0, err
		}
		if isCreated {
			created++
		} else {
			updated++
		}
	}

	if commitErr := tx.Commit(); commitErr != nil {
		err = fmt.Errorf("commit transaction: %w", commitErr)
		return 0, 0, err
	}

	return created, updated, nil
}

// upsertSource inserts or updates a source within an existing transaction.
// Uses ON CONFLICT with the xmax trick to report insert vs update.
func (r *NewsRepository) upsertSource(ctx context.Context, tx *sql.Tx, source *models.NewsSource) (bool, error) {
	now := time.Now()

	if source.ID == "" {
		source.ID = uuid.New().String()
	}
	source.CreatedAt = now
	source.UpdatedAt = now

	query := `
		INSERT INTO news_sources (
			id, name, feed_url, type, enabled, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (feed_url) DO UPDATE SET
			name = EXCLUDED.name,
			type = EXCLUDED.type,
			enabled = EXCLUDED.enabled,
			updated_at = EXCLUDED.updated_at
		RETURNING id, (xmax = 0) AS is_insert
	`

	var returnedID string
	var isInsert bool
	err := tx.QueryRowContext(ctx,
		query,
		source.ID,
		source.Name,
		source.FeedURL,
		source.Type,
		source.Enabled,
		source.CreatedAt,
		source.UpdatedAt,
	).Scan(&returnedID, &isInsert)

	if err != nil {
		return false, fmt.Errorf("upsert news source: %w", err)
	}

	source.ID = returnedID
	return isInsert, nil
}
