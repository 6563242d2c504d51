// Package handlers implements the HTTP API on top of the repositories.
package handlers

import (
	"context"
	"errors"
	"net/http"
	neturl "net/url"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/butlerian/directory/internal/events"
	"github.com/butlerian/directory/internal/logger"
	"github.com/butlerian/directory/internal/models"
	"github.com/butlerian/directory/internal/repository"
	"github.com/butlerian/directory/internal/sanitize"
)

// Moderation actions accepted by the PATCH endpoint.
const (
	ActionApprove = "approve"
	ActionReject  = "reject"
	ActionUpdate  = "update"
)

// SubmissionStore is the repository surface the submission handler needs.
type SubmissionStore interface {
	Create(ctx context.Context, sub *models.ResourceSubmission) error
	GetByID(ctx context.Context, id string) (*models.ResourceSubmission, error)
	List(ctx context.Context, status models.SubmissionStatus) ([]models.ResourceSubmission, error)
	Approve(ctx context.Context, id, reviewer string, edits *models.ResourceEdits) error
	Reject(ctx context.Context, id, reviewer, reason string) error
	ApplyEdits(ctx context.Context, id string, edits *models.ResourceEdits) error
	Delete(ctx context.Context, id string) error
}

type SubmissionHandler struct {
	repo      SubmissionStore
	sanitizer *sanitize.Sanitizer
	publisher *events.Publisher
	logger    logger.Logger
}

func NewSubmissionHandler(repo SubmissionStore, sanitizer *sanitize.Sanitizer, publisher *events.Publisher, log logger.Logger) *SubmissionHandler {
	return &SubmissionHandler{
		repo:      repo,
		sanitizer: sanitizer,
		publisher: publisher,
		logger:    log,
	}
}

// submissionRequest is the public intake payload.
type submissionRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	URL         string   `json:"url"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
	SubmittedBy *string  `json:"submitted_by,omitempty"`
}

// moderationRequest is the admin PATCH payload.
type moderationRequest struct {
	Action          string                `json:"action"`
	Edits           *models.ResourceEdits `json:"edits,omitempty"`
	ReviewedBy      string                `json:"reviewed_by,omitempty"`
	RejectionReason string                `json:"rejection_reason,omitempty"`
}

// Create accepts a public resource submission. Text fields are sanitized,
// the category must be known, and unknown tags are silently dropped.
// Everything enters the queue pending regardless of what the client sends.
func (h *SubmissionHandler) Create(c *gin.Context) {
	var req submissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Debug("Invalid request body",
			logger.String("error", err.Error()),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	title, err := h.sanitizer.CleanRequired(req.Title, "title")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	description, err := h.sanitizer.CleanRequired(req.Description, "description")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	url, err := h.sanitizer.CleanRequired(req.URL, "url")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !validHTTPURL(url) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "url must be a valid http or https URL"})
		return
	}

	if !models.ValidCategory(req.Category) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown category"})
		return
	}

	sub := models.ResourceSubmission{
		Title:       title,
		Description: description,
		URL:         url,
		Category:    req.Category,
		Tags:        models.FilterTags(req.Tags),
		SubmittedBy: req.SubmittedBy,
	}

	if err := h.repo.Create(c.Request.Context(), &sub); err != nil {
		h.logger.Error("Failed to create submission",
			logger.String("title", sub.Title),
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create submission"})
		return
	}

	h.logger.Info("Submission created",
		logger.String("submission_id", sub.ID),
		logger.String("title", sub.Title),
	)

	c.JSON(http.StatusCreated, sub)
}

// List returns submissions, optionally filtered by ?status=.
func (h *SubmissionHandler) List(c *gin.Context) {
	status := models.SubmissionStatus(c.Query("status"))

	subs, err := h.repo.List(c.Request.Context(), status)
	if err != nil {
		h.logger.Error("Failed to list submissions",
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list submissions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"submissions": subs,
		"count":       len(subs),
	})
}

func (h *SubmissionHandler) GetByID(c *gin.Context) {
	id := c.Param("id")

	sub, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Submission not found"})
			return
		}
		h.logger.Error("Failed to get submission",
			logger.String("submission_id", id),
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get submission"})
		return
	}

	c.JSON(http.StatusOK, sub)
}

// Moderate applies an admin action: approve, reject, or update.
// Approve may carry edits which land in the same write as the status change.
func (h *SubmissionHandler) Moderate(c *gin.Context) {
	id := c.Param("id")

	var req moderationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	reviewer := req.ReviewedBy
	if reviewer == "" {
		reviewer = models.DefaultReviewer
	}

	var err error
	switch req.Action {
	case ActionApprove:
		err = h.repo.Approve(c.Request.Context(), id, reviewer, req.Edits)
		if err == nil {
			h.publishEvent(events.SubmissionApproved, id, reviewer)
		}
	case ActionReject:
		reason := req.RejectionReason
		if reason == "" {
			reason = models.DefaultRejectionReason
		}
		err = h.repo.Reject(c.Request.Context(), id, reviewer, reason)
		if err == nil {
			h.publishEvent(events.SubmissionRejected, id, reviewer)
		}
	case ActionUpdate:
		if req.Edits.Empty() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No fields to update"})
			return
		}
		err = h.repo.ApplyEdits(c.Request.Context(), id, req.Edits)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown action"})
		return
	}

	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Submission not found"})
			return
		}
		h.logger.Error("Failed to moderate submission",
			logger.String("submission_id", id),
			logger.String("action", req.Action),
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to moderate submission"})
		return
	}

	h.logger.Info("Submission moderated",
		logger.String("submission_id", id),
		logger.String("action", req.Action),
		logger.String("reviewer", reviewer),
	)

	updated, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"id": id, "action": req.Action})
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *SubmissionHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Submission not found"})
			return
		}
		h.logger.Error("Failed to delete submission",
			logger.String("submission_id", id),
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete submission"})
		return
	}

	h.publishEvent(events.SubmissionDeleted, id, "")

	h.logger.Info("Submission deleted",
		logger.String("submission_id", id),
	)

	c.JSON(http.StatusOK, gin.H{"deleted": true, "id": id})
}

func (h *SubmissionHandler) publishEvent(eventType events.EventType, id, reviewer string) {
	h.publisher.PublishAsync(events.ModerationEvent{
		EventID:      uuid.New(),
		EventType:    eventType,
		SubmissionID: id,
		Kind:         "resource",
		Reviewer:     reviewer,
		Timestamp:    time.Now().UTC(),
	})
}

// validHTTPURL reports whether s parses as an absolute http or https URL.
func validHTTPURL(s string) bool {
	u, err := neturl.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
