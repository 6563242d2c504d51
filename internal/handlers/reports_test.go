package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/butlerian/directory/internal/handlers"
	"github.com/butlerian/directory/internal/models"
	"github.com/butlerian/directory/internal/repository"
	"github.com/butlerian/directory/internal/sanitize"
	"github.com/butlerian/directory/internal/testhelpers"
)

type MockReportStore struct {
	mock.Mock
}

func (m *MockReportStore) Create(ctx context.Context, report *models.Report) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

func (m *MockReportStore) GetByID(ctx context.Context, id string) (*models.Report, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Report), args.Error(1)
}

func (m *MockReportStore) List(ctx context.Context, filter repository.ReportFilter) ([]models.Report, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Report), args.Error(1)
}

func (m *MockReportStore) Triage(ctx context.Context, id string, status models.ReportStatus, reviewedBy string, adminNotes *string) error {
	args := m.Called(ctx, id, status, reviewedBy, adminNotes)
	return args.Error(0)
}

func setupReportRouter(store *MockReportStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := handlers.NewReportHandler(store, sanitize.New(), testhelpers.NewTestLogger())

	router := gin.New()
	router.POST("/reports", handler.Create)
	router.GET("/reports", handler.List)
	router.PATCH("/reports/:id", handler.Triage)
	return router
}

func TestReportCreate_SanitizesMessage(t *testing.T) {
	store := new(MockReportStore)
	store.On("Create", mock.Anything, mock.MatchedBy(func(r *models.Report) bool {
		return r.Message == "listing is outdated"
	})).Return(nil)

	router := setupReportRouter(store)
	w := postJSON(t, router, http.MethodPost, "/reports", gin.H{
		"type":      "company",
		"target_id": "comp-1",
		"message":   "<b>listing</b> is outdated",
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	store.AssertExpectations(t)
}

func TestReportCreate_Validation(t *testing.T) {
	tests := []struct {
		name string
		body gin.H
	}{
		{name: "unknown type", body: gin.H{"type": "user", "target_id": "x", "message": "m"}},
		{name: "missing target", body: gin.H{"type": "resource", "message": "m"}},
		{name: "missing message", body: gin.H{"type": "resource", "target_id": "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := new(MockReportStore)
			router := setupReportRouter(store)

			w := postJSON(t, router, http.MethodPost, "/reports", tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			store.AssertNotCalled(t, "Create")
		})
	}
}

func TestReportTriage(t *testing.T) {
	store := new(MockReportStore)
	store.On("Triage", mock.Anything, "rep-1", models.ReportResolved, "alice",
		mock.MatchedBy(func(notes *string) bool {
			return notes != nil && *notes == "fixed the listing"
		})).Return(nil)
	store.On("GetByID", mock.Anything, "rep-1").Return(&models.Report{
		ID:     "rep-1",
		Status: models.ReportResolved,
	}, nil)

	router := setupReportRouter(store)
	w := postJSON(t, router, http.MethodPatch, "/reports/rep-1", gin.H{
		"status":      "resolved",
		"reviewed_by": "alice",
		"admin_notes": "<i>fixed</i> the listing",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	store.AssertExpectations(t)
}

func TestReportTriage_Validation(t *testing.T) {
	tests := []struct {
		name string
		body gin.H
	}{
		{name: "back to pending", body: gin.H{"status": "pending", "reviewed_by": "alice"}},
		{name: "unknown status", body: gin.H{"status": "escalated", "reviewed_by": "alice"}},
		{name: "missing reviewer", body: gin.H{"status": "resolved"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := new(MockReportStore)
			router := setupReportRouter(store)

			w := postJSON(t, router, http.MethodPatch, "/reports/rep-1", tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			store.AssertNotCalled(t, "Triage")
		})
	}
}

func TestReportTriage_NotFound(t *testing.T) {
	store := new(MockReportStore)
	store.On("Triage", mock.Anything, "missing", models.ReportDismissed, "alice", (*string)(nil)).
		Return(repository.ErrNotFound)

	router := setupReportRouter(store)
	w := postJSON(t, router, http.MethodPatch, "/reports/missing", gin.H{
		"status":      "dismissed",
		"reviewed_by": "alice",
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
	store.AssertExpectations(t)
}

func TestReportList_Filters(t *testing.T) {
	store := new(MockReportStore)
	store.On("List", mock.Anything, repository.ReportFilter{
		Status:   models.ReportPending,
		Type:     models.ReportTargetCompany,
		TargetID: "comp-1",
	}).Return([]models.Report{}, nil)

	router := setupReportRouter(store)
	req := httptest.NewRequest(http.MethodGet, "/reports?status=pending&type=company&target_id=comp-1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	store.AssertExpectations(t)
}
