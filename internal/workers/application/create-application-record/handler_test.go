package createapplicationrecord

import (
	"context"
	"testing"
	"time"

	"admissions-workers/internal/common/errors"
	"admissions-workers/internal/common/logger"
	"admissions-workers/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
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
		StudentID:    "student-001",
		AgentID:      "agent-001",
		UniversityID: "uni-001",
		ProgramID:    "prog-001",
		IntakeTerm:   "2027-spring",
		Payload: models.ApplicationPayload{
			PersonalInfo: models.PersonalInfo{Name: "Amina Yusuf", Email: "amina@example.com"},
		},
	}
}

func TestHandler_Execute_InsertsDraftApplication(t *testing.T) {
	h, mock := newTestHandler(t)

	mock.ExpectExec("INSERT INTO applications").
		WillReturnResult(sqlmock.NewResult(0, 1))

	output, err := h.Execute(context.Background(), validInput())

	require.NoError(t, err)
	assert.NotEmpty(t, output.ApplicationID)
	assert.Equal(t, "draft", output.Status)
	assert.Equal(t, 0, output.Progress)
	assert.NotEmpty(t, output.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Execute_MissingRequiredFields(t *testing.T) {
	h, _ := newTestHandler(t)

	input := validInput()
	input.StudentID = ""

	_, err := h.Execute(context.Background(), input)

	require.Error(t, err)
	stdErr, ok := err.(*errors.StandardError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeApplicationValidationFailed, stdErr.Code)
}

func TestHandler_Execute_DuplicateApplication(t *testing.T) {
	h, mock := newTestHandler(t)

	mock.ExpectExec("INSERT INTO applications").
		WillReturnError(&pq.Error{Code: "23505"})

	_, err := h.Execute(context.Background(), validInput())

	require.Error(t, err)
	stdErr, ok := err.(*errors.StandardError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeDuplicateApplication, stdErr.Code)
	assert.False(t, stdErr.Retryable)
	assert.Contains(t, stdErr.Details, "studentId: student-001")
	assert.Contains(t, stdErr.Details, "programId: prog-001")
	assert.Contains(t, stdErr.Details, "intakeTerm: 2027-spring")
}

func TestHandler_Execute_InsertFailureIsRetryable(t *testing.T) {
	h, mock := newTestHandler(t)

	mock.ExpectExec("INSERT INTO applications").
		WillReturnError(assert.AnError)

	_, err := h.Execute(context.Background(), validInput())

	require.Error(t, err)
	stdErr, ok := err.(*errors.StandardError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeDatabaseInsertFailed, stdErr.Code)
	assert.True(t, stdErr.Retryable)
}
