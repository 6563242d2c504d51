package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/butlerian/directory/internal/handlers"
	"github.com/butlerian/directory/internal/testhelpers"
)

func setupBadgeRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/badge", handlers.NewBadgeHandler("https://butlerian.directory").Render)
	router.POST("/revalidate", handlers.NewRevalidateHandler(nil, testhelpers.NewTestLogger()).Revalidate)
	return router
}

func TestBadgeRender(t *testing.T) {
	router := setupBadgeRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/badge", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/svg+xml", w.Header().Get("Content-Type"))
	assert.Equal(t, "public, max-age=3600", w.Header().Get("Cache-Control"))
	assert.Contains(t, w.Body.String(), "<svg")
	assert.Contains(t, w.Body.String(), `href="https://butlerian.directory"`, "link defaults to the site URL")
}

func TestBadgeRender_CustomTextAndLink(t *testing.T) {
	router := setupBadgeRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/badge?text=AI-Free&style=dark&link=https://example.com", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "AI-Free")
	assert.Contains(t, w.Body.String(), `href="https://example.com"`)
}

func TestRevalidate(t *testing.T) {
	router := setupBadgeRouter()

	// no path
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/revalidate", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// nil cache is a no-op success
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/revalidate?path=/api/v1/news", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"revalidated":true`)
}
