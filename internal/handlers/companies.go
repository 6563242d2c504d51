package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/butlerian/directory/internal/cache"
	"github.com/butlerian/directory/internal/logger"
	"github.com/butlerian/directory/internal/models"
	"github.com/butlerian/directory/internal/repository"
)

// CompanyStore is the repository surface the company handler needs.
type CompanyStore interface {
	Create(ctx context.Context, company *models.Company) error
	GetByID(ctx context.Context, id string) (*models.Company, error)
	List(ctx context.Context) ([]models.Company, error)
	Update(ctx context.Context, company *models.Company) error
	Delete(ctx context.Context, id string) error
}

type CompanyHandler struct {
	repo      CompanyStore
	pageCache *cache.PageCache
	logger    logger.Logger
}

func NewCompanyHandler(repo CompanyStore, pageCache *cache.PageCache, log logger.Logger) *CompanyHandler {
	return &CompanyHandler{
		repo:      repo,
		pageCache: pageCache,
		logger:    log,
	}
}

// List returns all companies through the page cache. Provenance fields come
// back already normalized because every write path runs the cleaner.
func (h *CompanyHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	cacheKey := c.Request.URL.RequestURI()

	if body := h.pageCache.Get(ctx, cacheKey); body != nil {
		c.Data(http.StatusOK, "application/json; charset=utf-8", body)
		return
	}

	companies, err := h.repo.List(ctx)
	if err != nil {
		h.logger.Error("Failed to list companies",
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list companies"})
		return
	}

	body, err := json.Marshal(gin.H{
		"companies": companies,
		"count":     len(companies),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list companies"})
		return
	}

	h.pageCache.Set(ctx, cacheKey, body)
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

// invalidateList drops the cached company listing after a write.
func (h *CompanyHandler) invalidateList(ctx context.Context) {
	if err := h.pageCache.Invalidate(ctx, "/api/v1/companies"); err != nil {
		h.logger.Warn("Failed to invalidate companies cache",
			logger.Error(err),
		)
	}
}

func (h *CompanyHandler) GetByID(c *gin.Context) {
	id := c.Param("id")

	company, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Company not found"})
			return
		}
		h.logger.Error("Failed to get company",
			logger.String("company_id", id),
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get company"})
		return
	}

	c.JSON(http.StatusOK, company)
}

// Create stores a new company. Controversies and citations are cleaned
// before the write so malformed provenance never reaches the database.
func (h *CompanyHandler) Create(c *gin.Context) {
	var company models.Company
	if err := c.ShouldBindJSON(&company); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	company.Clean()

	if err := h.repo.Create(c.Request.Context(), &company); err != nil {
		h.logger.Error("Failed to create company",
			logger.String("name", company.Name),
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create company"})
		return
	}

	h.logger.Info("Company created",
		logger.String("company_id", company.ID),
		logger.String("name", company.Name),
	)

	h.invalidateList(c.Request.Context())
	c.JSON(http.StatusCreated, company)
}

func (h *CompanyHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var company models.Company
	if err := c.ShouldBindJSON(&company); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	company.ID = id
	company.Clean()

	if err := h.repo.Update(c.Request.Context(), &company); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Company not found"})
			return
		}
		h.logger.Error("Failed to update company",
			logger.String("company_id", id),
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update company"})
		return
	}

	h.logger.Info("Company updated",
		logger.String("company_id", id),
	)

	h.invalidateList(c.Request.Context())

	updated, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusOK, company)
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *CompanyHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Company not found"})
			return
		}
		h.logger.Error("Failed to delete company",
			logger.String("company_id", id),
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete company"})
		return
	}

	h.logger.Info("Company deleted",
		logger.String("company_id", id),
	)

	h.invalidateList(c.Request.Context())
	c.JSON(http.StatusNoContent, nil)
}
