package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/butlerian/directory/internal/logger"
	"github.com/butlerian/directory/internal/models"
	"github.com/butlerian/directory/internal/repository"
)

// ResourceStore is the repository surface the resource handler needs.
type ResourceStore interface {
	Create(ctx context.Context, resource *models.Resource) error
	GetByID(ctx context.Context, id string) (*models.Resource, error)
	ListApproved(ctx context.Context) ([]models.Resource, error)
	List(ctx context.Context) ([]models.Resource, error)
	Update(ctx context.Context, resource *models.Resource) error
	Delete(ctx context.Context, id string) error
}

type ResourceHandler struct {
	repo   ResourceStore
	logger logger.Logger
}

func NewResourceHandler(repo ResourceStore, log logger.Logger) *ResourceHandler {
	return &ResourceHandler{
		repo:   repo,
		logger: log,
	}
}

// ListPublic returns approved resources, featured first. The response is
// marked no-store so moderation changes show up immediately.
func (h *ResourceHandler) ListPublic(c *gin.Context) {
	resources, err := h.repo.ListApproved(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list resources",
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list resources"})
		return
	}

	c.Header("Cache-Control", "no-store")
	c.JSON(http.StatusOK, gin.H{
		"resources": resources,
		"count":     len(resources),
	})
}

// ListAdmin returns all resources including unapproved ones.
func (h *ResourceHandler) ListAdmin(c *gin.Context) {
	resources, err := h.repo.List(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list resources",
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list resources"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"resources": resources,
		"count":     len(resources),
	})
}

func (h *ResourceHandler) GetByID(c *gin.Context) {
	id := c.Param("id")

	resource, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Resource not found"})
			return
		}
		h.logger.Error("Failed to get resource",
			logger.String("resource_id", id),
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get resource"})
		return
	}

	c.JSON(http.StatusOK, resource)
}

func (h *ResourceHandler) Create(c *gin.Context) {
	var resource models.Resource
	if err := c.ShouldBindJSON(&resource); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	if !models.ValidCategory(resource.Category) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown category"})
		return
	}
	resource.Tags = models.FilterTags(resource.Tags)

	if err := h.repo.Create(c.Request.Context(), &resource); err != nil {
		h.logger.Error("Failed to create resource",
			logger.String("title", resource.Title),
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create resource"})
		return
	}

	h.logger.Info("Resource created",
		logger.String("resource_id", resource.ID),
		logger.String("title", resource.Title),
	)

	c.JSON(http.StatusCreated, resource)
}

func (h *ResourceHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var resource models.Resource
	if err := c.ShouldBindJSON(&resource); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	if !models.ValidCategory(resource.Category) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown category"})
		return
	}
	resource.ID = id
	resource.Tags = models.FilterTags(resource.Tags)

	if err := h.repo.Update(c.Request.Context(), &resource); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Resource not found"})
			return
		}
		h.logger.Error("Failed to update resource",
			logger.String("resource_id", id),
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update resource"})
		return
	}

	h.logger.Info("Resource updated",
		logger.String("resource_id", id),
	)

	updated, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusOK, resource)
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *ResourceHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Resource not found"})
			return
		}
		h.logger.Error("Failed to delete resource",
			logger.String("resource_id", id),
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete resource"})
		return
	}

	h.logger.Info("Resource deleted",
		logger.String("resource_id", id),
	)

	c.JSON(http.StatusNoContent, nil)
}
