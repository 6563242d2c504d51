package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/butlerian/directory/internal/cache"
	"github.com/butlerian/directory/internal/importer"
	"github.com/butlerian/directory/internal/ingest"
	"github.com/butlerian/directory/internal/logger"
	"github.com/butlerian/directory/internal/models"
	"github.com/butlerian/directory/internal/repository"
)

const (
	defaultArticleLimit = 50
	maxArticleLimit     = 200

	// maxImportSize caps uploaded spreadsheets at 5 MiB.
	maxImportSize = 5 << 20
)

// NewsStore is the repository surface the news handler needs.
type NewsStore interface {
	ListArticles(ctx context.Context, limit int) ([]models.NewsArticle, error)
	CreateSource(ctx context.Context, source *models.NewsSource) error
	GetSourceByID(ctx context.Context, id string) (*models.NewsSource, error)
	ListSources(ctx context.Context) ([]models.NewsSource, error)
	UpdateSource(ctx context.Context, source *models.NewsSource) error
	DeleteSource(ctx context.Context, id string) error
	UpsertSourcesTx(ctx context.Context, sources []*models.NewsSource) (created, updated int, err error)
}

// FeedIngestor runs an ingestion pass over the enabled sources.
type FeedIngestor interface {
	Run(ctx context.Context) *ingest.Summary
}

type NewsHandler struct {
	repo      NewsStore
	ingestor  FeedIngestor
	pageCache *cache.PageCache
	logger    logger.Logger
}

func NewNewsHandler(repo NewsStore, ingestor FeedIngestor, pageCache *cache.PageCache, log logger.Logger) *NewsHandler {
	return &NewsHandler{
		repo:      repo,
		ingestor:  ingestor,
		pageCache: pageCache,
		logger:    log,
	}
}

// ListArticles returns approved articles, newest first. Responses are served
// from the page cache when possible since the feed only changes on ingestion.
func (h *NewsHandler) ListArticles(c *gin.Context) {
	ctx := c.Request.Context()
	cacheKey := c.Request.URL.RequestURI()

	if body := h.pageCache.Get(ctx, cacheKey); body != nil {
		c.Data(http.StatusOK, "application/json; charset=utf-8", body)
		return
	}

	limit := defaultArticleLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
			return
		}
		limit = min(parsed, maxArticleLimit)
	}

	articles, err := h.repo.ListArticles(ctx, limit)
	if err != nil {
		h.logger.Error("Failed to list articles",
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list articles"})
		return
	}

	body, err := json.Marshal(gin.H{
		"articles": articles,
		"count":    len(articles),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list articles"})
		return
	}

	h.pageCache.Set(ctx, cacheKey, body)
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

// Fetch runs an ingestion pass over all enabled sources and reports the
// outcome. Per-source failures are collected, not fatal.
func (h *NewsHandler) Fetch(c *gin.Context) {
	summary := h.ingestor.Run(c.Request.Context())

	// New articles make cached article listings stale
	if summary.Fetched > 0 {
		if err := h.pageCache.Invalidate(c.Request.Context(), "/api/v1/news"); err != nil {
			h.logger.Warn("Failed to invalidate news cache",
				logger.Error(err),
			)
		}
	}

	h.logger.Info("Ingestion run finished",
		logger.Int("fetched", summary.Fetched),
		logger.Int("skipped", summary.Skipped),
		logger.Int("errors", len(summary.Errors)),
	)

	c.JSON(http.StatusOK, summary)
}

func (h *NewsHandler) ListSources(c *gin.Context) {
	sources, err := h.repo.ListSources(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list sources",
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list sources"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sources": sources,
		"count":   len(sources),
	})
}

func (h *NewsHandler) GetSourceByID(c *gin.Context) {
	id := c.Param("id")

	source, err := h.repo.GetSourceByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Source not found"})
			return
		}
		h.logger.Error("Failed to get source",
			logger.String("source_id", id),
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get source"})
		return
	}

	c.JSON(http.StatusOK, source)
}

func (h *NewsHandler) CreateSource(c *gin.Context) {
	var source models.NewsSource
	if err := c.ShouldBindJSON(&source); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	if source.Type == "" {
		source.Type = models.SourceTypeRSS
	}
	if !models.ValidSourceType(source.Type) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown source type"})
		return
	}

	if err := h.repo.CreateSource(c.Request.Context(), &source); err != nil {
		h.logger.Error("Failed to create source",
			logger.String("name", source.Name),
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create source"})
		return
	}

	h.logger.Info("Source created",
		logger.String("source_id", source.ID),
		logger.String("name", source.Name),
	)

	c.JSON(http.StatusCreated, source)
}

func (h *NewsHandler) UpdateSource(c *gin.Context) {
	id := c.Param("id")

	var source models.NewsSource
	if err := c.ShouldBindJSON(&source); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	source.ID = id
	if !models.ValidSourceType(source.Type) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown source type"})
		return
	}

	if err := h.repo.UpdateSource(c.Request.Context(), &source); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Source not found"})
			return
		}
		h.logger.Error("Failed to update source",
			logger.String("source_id", id),
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update source"})
		return
	}

	h.logger.Info("Source updated",
		logger.String("source_id", id),
	)

	updated, err := h.repo.GetSourceByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusOK, source)
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *NewsHandler) DeleteSource(c *gin.Context) {
	id := c.Param("id")

	if err := h.repo.DeleteSource(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Source not found"})
			return
		}
		h.logger.Error("Failed to delete source",
			logger.String("source_id", id),
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete source"})
		return
	}

	h.logger.Info("Source deleted",
		logger.String("source_id", id),
	)

	c.JSON(http.StatusNoContent, nil)
}

// ImportSources bulk-imports sources from an uploaded Excel workbook.
// Valid rows are upserted by feed URL; invalid rows are reported per row.
func (h *NewsHandler) ImportSources(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing file upload"})
		return
	}
	defer file.Close()

	if header.Size > maxImportSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "File too large"})
		return
	}

	rows, rowErrors, err := importer.ParseExcelFile(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sources := make([]*models.NewsSource, 0, len(rows))
	for _, row := range rows {
		sources = append(sources, row.ToSource())
	}

	created, updated, err := h.repo.UpsertSourcesTx(c.Request.Context(), sources)
	if err != nil {
		h.logger.Error("Failed to import sources",
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to import sources"})
		return
	}

	h.logger.Info("Sources imported",
		logger.String("filename", header.Filename),
		logger.Int("created", created),
		logger.Int("updated", updated),
		logger.Int("invalid", len(rowErrors)),
	)

	c.JSON(http.StatusOK, gin.H{
		"created": created,
		"updated": updated,
		"errors":  rowErrors,
	})
}
