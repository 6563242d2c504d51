package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/butlerian/directory/internal/models"
	"github.com/butlerian/directory/internal/testhelpers"
)

func newMockSubmissionRepo(t *testing.T) (*SubmissionRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewSubmissionRepository(db, testhelpers.NewTestLogger()), mock
}

func TestSubmissionRepository_Create_ForcesPending(t *testing.T) {
	repo, mock := newMockSubmissionRepo(t)

	mock.ExpectExec(`INSERT INTO resource_submissions`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	sub := &models.ResourceSubmission{
		Title:       "Blocker",
		Description: "Blocks AI crawlers",
		URL:         "https://example.com",
		Category:    "tool",
		Tags:        models.StringArray{"privacy"},
		Status:      models.SubmissionApproved, // client tried to sneak this in
	}

	err := repo.Create(context.Background(), sub)
	require.NoError(t, err)

	assert.Equal(t, models.SubmissionPending, sub.Status)
	assert.NotEmpty(t, sub.ID)
	assert.False(t, sub.SubmittedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmissionRepository_Approve_SingleUpdate(t *testing.T) {
	repo, mock := newMockSubmissionRepo(t)

	title := "Edited Title"
	edits := &models.ResourceEdits{Title: &title}

	mock.ExpectExec(`UPDATE resource_submissions SET status = \$2, reviewed_at = \$3, reviewed_by = \$4, rejection_reason = NULL, title = \$5 WHERE id = \$1`).
		WithArgs("sub-1", models.SubmissionApproved, sqlmock.AnyArg(), "alice", "Edited Title").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Approve(context.Background(), "sub-1", "alice", edits)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmissionRepository_Approve_DefaultsReviewer(t *testing.T) {
	repo, mock := newMockSubmissionRepo(t)

	mock.ExpectExec(`UPDATE resource_submissions SET`).
		WithArgs("sub-1", models.SubmissionApproved, sqlmock.AnyArg(), models.DefaultReviewer).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Approve(context.Background(), "sub-1", "", nil)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmissionRepository_Approve_NotFound(t *testing.T) {
	repo, mock := newMockSubmissionRepo(t)

	mock.ExpectExec(`UPDATE resource_submissions SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Approve(context.Background(), "missing", "alice", nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSubmissionRepository_Reject_DefaultsReason(t *testing.T) {
	repo, mock := newMockSubmissionRepo(t)

	mock.ExpectExec(`UPDATE resource_submissions SET status = \$2, reviewed_at = \$3, reviewed_by = \$4, rejection_reason = \$5 WHERE id = \$1`).
		WithArgs("sub-1", models.SubmissionRejected, sqlmock.AnyArg(), "bob", models.DefaultRejectionReason).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Reject(context.Background(), "sub-1", "bob", "")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmissionRepository_ApplyEdits(t *testing.T) {
	repo, mock := newMockSubmissionRepo(t)

	t.Run("empty edits rejected without touching the database", func(t *testing.T) {
		err := repo.ApplyEdits(context.Background(), "sub-1", &models.ResourceEdits{})
		assert.ErrorIs(t, err, ErrNoFields)

		err = repo.ApplyEdits(context.Background(), "sub-1", nil)
		assert.ErrorIs(t, err, ErrNoFields)
	})

	t.Run("supplied fields update, status untouched", func(t *testing.T) {
		desc := "new description"
		tags := models.StringArray{"privacy", "not-a-tag"}

		mock.ExpectExec(`UPDATE resource_submissions SET description = \$2, tags = \$3 WHERE id = \$1`).
			WithArgs("sub-1", "new description", models.StringArray{"privacy"}).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.ApplyEdits(context.Background(), "sub-1", &models.ResourceEdits{
			Description: &desc,
			Tags:        &tags,
		})
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSubmissionRepository_GetByID_NotFound(t *testing.T) {
	repo, mock := newMockSubmissionRepo(t)

	mock.ExpectQuery(`SELECT .+ FROM resource_submissions`).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSubmissionRepository_Delete_NotFound(t *testing.T) {
	repo, mock := newMockSubmissionRepo(t)

	mock.ExpectExec(`DELETE FROM resource_submissions`).
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
