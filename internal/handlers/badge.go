package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/butlerian/directory/internal/badge"
)

// badgeMaxAge is the Cache-Control max-age for rendered badges, in seconds.
const badgeMaxAge = "public, max-age=3600"

type BadgeHandler struct {
	siteURL string
}

func NewBadgeHandler(siteURL string) *BadgeHandler {
	return &BadgeHandler{siteURL: siteURL}
}

// Render serves an SVG badge. Text and style come from query parameters;
// anything missing or unrecognized falls back to the defaults.
func (h *BadgeHandler) Render(c *gin.Context) {
	text := c.Query("text")
	if text == "" {
		text = badge.DefaultText
	}
	style := c.Query("style")
	link := c.Query("link")
	if link == "" {
		link = h.siteURL
	}

	svg := badge.Render(text, style, link)

	c.Header("Cache-Control", badgeMaxAge)
	c.Data(http.StatusOK, "image/svg+xml", []byte(svg))
}
