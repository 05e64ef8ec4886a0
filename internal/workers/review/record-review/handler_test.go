package recordreview

import (
	"context"
	"testing"
	"time"

	"admissions-workers/internal/common/errors"
	"admissions-workers/internal/common/logger"
	"admissions-workers/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T) (*Handler, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	h := NewHandler(&Config{Timeout: 5 * time.Second}, db, logger.NewTestLogger(t))
	return h, mock
}

func validInput() *Input {
	return &Input{
		ApplicationID: "app-001",
		Stage:         "screening",
		ReviewerID:    "staff-007",
		Scores:        models.ReviewScores{Academics: 80, EnglishProficiency: 70, StatementQuality: 60, VisaRisk: 90},
		Total:         76,
		Decision:      "approve",
	}
}

func TestHandler_Execute_InsertsReview(t *testing.T) {
	h, mock := newTestHandler(t)

	mock.ExpectQuery("INSERT INTO application_reviews").
		WillReturnRows(sqlmock.NewRows([]string{"id", "updated"}).AddRow("rev-001", false))

	output, err := h.Execute(context.Background(), validInput())

	require.NoError(t, err)
	assert.Equal(t, "rev-001", output.ReviewID)
	assert.Equal(t, "approve", output.Decision)
	assert.False(t, output.Updated)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Execute_ResubmissionReplacesReview(t *testing.T) {
	h, mock := newTestHandler(t)

	mock.ExpectQuery("INSERT INTO application_reviews").
		WillReturnRows(sqlmock.NewRows([]string{"id", "updated"}).AddRow("rev-001", true))

	output, err := h.Execute(context.Background(), validInput())

	require.NoError(t, err)
	assert.True(t, output.Updated)
}

func TestHandler_Execute_UnknownDecision(t *testing.T) {
	h, _ := newTestHandler(t)

	input := validInput()
	input.Decision = "escalate"

	_, err := h.Execute(context.Background(), input)

	require.Error(t, err)
	stdErr, ok := err.(*errors.StandardError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeApplicationValidationFailed, stdErr.Code)
}

func TestHandler_Execute_MissingStage(t *testing.T) {
	h, _ := newTestHandler(t)

	input := validInput()
	input.Stage = ""

	_, err := h.Execute(context.Background(), input)

	require.Error(t, err)
	stdErr, ok := err.(*errors.StandardError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeApplicationValidationFailed, stdErr.Code)
}

func TestHandler_Execute_InsertFailureIsRetryable(t *testing.T) {
	h, mock := newTestHandler(t)

	mock.ExpectQuery("INSERT INTO application_reviews").
		WillReturnError(assert.AnError)

	_, err := h.Execute(context.Background(), validInput())

	require.Error(t, err)
	stdErr, ok := err.(*errors.StandardError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeReviewRecordFailed, stdErr.Code)
	assert.True(t, stdErr.Retryable)
}
