package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/butlerian/directory/internal/events"
	"github.com/butlerian/directory/internal/logger"
	"github.com/butlerian/directory/internal/models"
	"github.com/butlerian/directory/internal/repository"
	"github.com/butlerian/directory/internal/sanitize"
)

// CompanySubmissionStore is the repository surface the company submission
// handler needs.
type CompanySubmissionStore interface {
	Create(ctx context.Context, sub *models.CompanySubmission) error
	GetByID(ctx context.Context, id string) (*models.CompanySubmission, error)
	List(ctx context.Context, status models.SubmissionStatus) ([]models.CompanySubmission, error)
	Approve(ctx context.Context, id, reviewer string, edits *models.CompanyEdits) error
	Reject(ctx context.Context, id, reviewer, reason string) error
	ApplyEdits(ctx context.Context, id string, edits *models.CompanyEdits) error
	Delete(ctx context.Context, id string) error
}

type CompanySubmissionHandler struct {
	repo      CompanySubmissionStore
	sanitizer *sanitize.Sanitizer
	publisher *events.Publisher
	logger    logger.Logger
}

func NewCompanySubmissionHandler(repo CompanySubmissionStore, sanitizer *sanitize.Sanitizer, publisher *events.Publisher, log logger.Logger) *CompanySubmissionHandler {
	return &CompanySubmissionHandler{
		repo:      repo,
		sanitizer: sanitizer,
		publisher: publisher,
		logger:    log,
	}
}

type companySubmissionRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Website     *string  `json:"website,omitempty"`
	Founders    []string `json:"founders"`
	Products    []string `json:"products"`
	SubmittedBy *string  `json:"submitted_by,omitempty"`
}

type companyModerationRequest struct {
	Action          string               `json:"action"`
	Edits           *models.CompanyEdits `json:"edits,omitempty"`
	ReviewedBy      string               `json:"reviewed_by,omitempty"`
	RejectionReason string               `json:"rejection_reason,omitempty"`
}

// Create accepts a public company submission. Name and description are
// sanitized; the submission always enters the queue pending.
func (h *CompanySubmissionHandler) Create(c *gin.Context) {
	var req companySubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Debug("Invalid request body",
			logger.String("error", err.Error()),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	name, err := h.sanitizer.CleanRequired(req.Name, "name")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	description, err := h.sanitizer.CleanRequired(req.Description, "description")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sub := models.CompanySubmission{
		Name:        name,
		Description: description,
		Website:     req.Website,
		Founders:    models.StringArray(req.Founders),
		Products:    models.StringArray(req.Products),
		SubmittedBy: req.SubmittedBy,
	}

	if err := h.repo.Create(c.Request.Context(), &sub); err != nil {
		h.logger.Error("Failed to create company submission",
			logger.String("name", sub.Name),
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create company submission"})
		return
	}

	h.logger.Info("Company submission created",
		logger.String("submission_id", sub.ID),
		logger.String("name", sub.Name),
	)

	c.JSON(http.StatusCreated, sub)
}

// List returns company submissions, optionally filtered by ?status=.
func (h *CompanySubmissionHandler) List(c *gin.Context) {
	status := models.SubmissionStatus(c.Query("status"))

	subs, err := h.repo.List(c.Request.Context(), status)
	if err != nil {
		h.logger.Error("Failed to list company submissions",
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list company submissions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"submissions": subs,
		"count":       len(subs),
	})
}

func (h *CompanySubmissionHandler) GetByID(c *gin.Context) {
	id := c.Param("id")

	sub, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Company submission not found"})
			return
		}
		h.logger.Error("Failed to get company submission",
			logger.String("submission_id", id),
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get company submission"})
		return
	}

	c.JSON(http.StatusOK, sub)
}

// Moderate applies an admin action: approve, reject, or update.
func (h *CompanySubmissionHandler) Moderate(c *gin.Context) {
	id := c.Param("id")

	var req companyModerationRequest
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
			c.JSON(http.StatusNotFound, gin.H{"error": "Company submission not found"})
			return
		}
		h.logger.Error("Failed to moderate company submission",
			logger.String("submission_id", id),
			logger.String("action", req.Action),
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to moderate company submission"})
		return
	}

	h.logger.Info("Company submission moderated",
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

func (h *CompanySubmissionHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Company submission not found"})
			return
		}
		h.logger.Error("Failed to delete company submission",
			logger.String("submission_id", id),
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete company submission"})
		return
	}

	h.publishEvent(events.SubmissionDeleted, id, "")

	h.logger.Info("Company submission deleted",
		logger.String("submission_id", id),
	)

	c.JSON(http.StatusOK, gin.H{"deleted": true, "id": id})
}

func (h *CompanySubmissionHandler) publishEvent(eventType events.EventType, id, reviewer string) {
	h.publisher.PublishAsync(events.ModerationEvent{
		EventID:      uuid.New(),
		EventType:    eventType,
		SubmissionID: id,
		Kind:         "company",
		Reviewer:     reviewer,
		Timestamp:    time.Now().UTC(),
	})
}
