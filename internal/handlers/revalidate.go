package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/butlerian/directory/internal/cache"
	"github.com/butlerian/directory/internal/logger"
)

type RevalidateHandler struct {
	pageCache *cache.PageCache
	logger    logger.Logger
}

func NewRevalidateHandler(pageCache *cache.PageCache, log logger.Logger) *RevalidateHandler {
	return &RevalidateHandler{
		pageCache: pageCache,
		logger:    log,
	}
}

// Revalidate drops the cached response for the path given in ?path so the
// next request is served fresh.
//
// TODO: move this behind the admin JWT group once the frontend deploy hook
// can send a token.
func (h *RevalidateHandler) Revalidate(c *gin.Context) {
	path := c.Query("path")
	if path == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "path is required"})
		return
	}

	if err := h.pageCache.Invalidate(c.Request.Context(), path); err != nil {
		h.logger.Error("Failed to invalidate cache",
			logger.String("path", path),
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to invalidate cache"})
		return
	}

	h.logger.Info("Cache invalidated",
		logger.String("path", path),
	)

	c.JSON(http.StatusOK, gin.H{"revalidated": true, "path": path})
}
