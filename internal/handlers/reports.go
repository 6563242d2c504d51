package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/butlerian/directory/internal/logger"
	"github.com/butlerian/directory/internal/models"
	"github.com/butlerian/directory/internal/repository"
	"github.com/butlerian/directory/internal/sanitize"
)

// ReportStore is the repository surface the report handler needs.
type ReportStore interface {
	Create(ctx context.Context, report *models.Report) error
	GetByID(ctx context.Context, id string) (*models.Report, error)
	List(ctx context.Context, filter repository.ReportFilter) ([]models.Report, error)
	Triage(ctx context.Context, id string, status models.ReportStatus, reviewedBy string, adminNotes *string) error
}

type ReportHandler struct {
	repo      ReportStore
	sanitizer *sanitize.Sanitizer
	logger    logger.Logger
}

func NewReportHandler(repo ReportStore, sanitizer *sanitize.Sanitizer, log logger.Logger) *ReportHandler {
	return &ReportHandler{
		repo:      repo,
		sanitizer: sanitizer,
		logger:    log,
	}
}

type reportRequest struct {
	Type          models.ReportType `json:"type"`
	TargetID      string            `json:"target_id"`
	ReporterEmail *string           `json:"reporter_email,omitempty"`
	FieldName     *string           `json:"field_name,omitempty"`
	ProposedValue *string           `json:"proposed_value,omitempty"`
	SourceURL     *string           `json:"source_url,omitempty"`
	Message       string            `json:"message"`
}

type triageRequest struct {
	Status     models.ReportStatus `json:"status"`
	ReviewedBy string              `json:"reviewed_by,omitempty"`
	AdminNotes *string             `json:"admin_notes,omitempty"`
}

// Create files a public abuse or correction report. The message is sanitized
// and required; the target is not checked for existence.
func (h *ReportHandler) Create(c *gin.Context) {
	var req reportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	if !models.ValidReportType(req.Type) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown report type"})
		return
	}
	if req.TargetID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "target_id is required"})
		return
	}

	message, err := h.sanitizer.CleanRequired(req.Message, "message")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report := models.Report{
		Type:          req.Type,
		TargetID:      req.TargetID,
		ReporterEmail: req.ReporterEmail,
		FieldName:     req.FieldName,
		ProposedValue: req.ProposedValue,
		SourceURL:     req.SourceURL,
		Message:       message,
	}

	if err := h.repo.Create(c.Request.Context(), &report); err != nil {
		h.logger.Error("Failed to create report",
			logger.String("type", string(report.Type)),
			logger.String("target_id", report.TargetID),
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create report"})
		return
	}

	h.logger.Info("Report created",
		logger.String("report_id", report.ID),
		logger.String("type", string(report.Type)),
		logger.String("target_id", report.TargetID),
	)

	c.JSON(http.StatusCreated, report)
}

// List returns reports filtered by the optional status, type, and target_id
// query parameters.
func (h *ReportHandler) List(c *gin.Context) {
	filter := repository.ReportFilter{
		Status:   models.ReportStatus(c.Query("status")),
		Type:     models.ReportType(c.Query("type")),
		TargetID: c.Query("target_id"),
	}

	reports, err := h.repo.List(c.Request.Context(), filter)
	if err != nil {
		h.logger.Error("Failed to list reports",
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list reports"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reports": reports,
		"count":   len(reports),
	})
}

func (h *ReportHandler) GetByID(c *gin.Context) {
	id := c.Param("id")

	report, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
			return
		}
		h.logger.Error("Failed to get report",
			logger.String("report_id", id),
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get report"})
		return
	}

	c.JSON(http.StatusOK, report)
}

// Triage moves a report to reviewed, resolved, or dismissed. Admin notes are
// sanitized like any other free text.
func (h *ReportHandler) Triage(c *gin.Context) {
	id := c.Param("id")

	var req triageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	if !models.ValidReportTransition(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}

	if req.ReviewedBy == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "reviewed_by is required"})
		return
	}

	notes := req.AdminNotes
	if notes != nil {
		cleaned, err := h.sanitizer.Clean(*notes)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		notes = &cleaned
	}

	if err := h.repo.Triage(c.Request.Context(), id, req.Status, req.ReviewedBy, notes); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
			return
		}
		h.logger.Error("Failed to triage report",
			logger.String("report_id", id),
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to triage report"})
		return
	}

	h.logger.Info("Report triaged",
		logger.String("report_id", id),
		logger.String("status", string(req.Status)),
		logger.String("reviewed_by", req.ReviewedBy),
	)

	updated, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"id": id, "status": req.Status})
		return
	}

	c.JSON(http.StatusOK, updated)
}
