package querypostgresql

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"admissions-workers/internal/common/logger"
	"admissions-workers/internal/models"
)

func newTestHandler(t *testing.T) (*Handler, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	h := NewHandler(&Config{Timeout: 5 * time.Second}, db, logger.NewTestLogger(t))
	return h, mock
}

func TestHandler_Execute_Success(t *testing.T) {
	tests := []struct {
		name           string
		input          *Input
		mockQuery      func(mock sqlmock.Sqlmock)
		validateOutput func(t *testing.T, output *Output)
	}{
		{
			name: "application details",
			input: &Input{
				QueryType:     string(models.QueryTypeApplicationDetails),
				ApplicationID: "app-001",
			},
			mockQuery: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{
					"id", "student_id", "agent_id", "university_id", "program_id", "intake_term",
					"status", "composite_score", "payload", "created_at", "updated_at",
				}).AddRow(
					"app-001", "student-001", "agent-001", "uni-001", "prog-001", "2027-spring",
					"screening", 76, []byte(`{"personalInfo":{"name":"Amina"}}`),
					"2026-08-01T10:00:00Z", "2026-08-10T12:00:00Z",
				)
				mock.ExpectQuery("SELECT id, student_id").WithArgs("app-001").WillReturnRows(rows)
			},
			validateOutput: func(t *testing.T, output *Output) {
				assert.Equal(t, 1, output.RowCount)
				data := output.Data.(map[string]interface{})
				assert.Equal(t, "screening", data["status"])
				assert.Equal(t, "Screening", data["statusLabel"])
				assert.Equal(t, 30, data["progress"])
				assert.Equal(t, false, data["terminal"])
			},
		},
		{
			name: "application reviews",
			input: &Input{
				QueryType:     string(models.QueryTypeApplicationReviews),
				ApplicationID: "app-001",
			},
			mockQuery: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{
					"id", "stage", "reviewer_id", "scores", "total", "feedback",
					"decision", "created_at", "updated_at",
				}).AddRow(
					"rev-001", "screening", "staff-007",
					[]byte(`{"academics":80,"englishProficiency":70,"statementQuality":60,"visaRisk":90}`),
					76, []byte(`{"strengths":["solid grades"]}`),
					"approve", "2026-08-05T09:00:00Z", "2026-08-05T09:00:00Z",
				)
				mock.ExpectQuery("SELECT id, stage").WithArgs("app-001").WillReturnRows(rows)
			},
			validateOutput: func(t *testing.T, output *Output) {
				assert.Equal(t, 1, output.RowCount)
				reviews := output.Data.([]map[string]interface{})
				require.Len(t, reviews, 1)
				assert.Equal(t, "approve", reviews[0]["decision"])
				assert.Equal(t, 76, reviews[0]["total"])
			},
		},
		{
			name: "student applications",
			input: &Input{
				QueryType: string(models.QueryTypeStudentApplications),
				StudentID: "student-001",
			},
			mockQuery: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{
					"id", "university_id", "program_id", "intake_term", "status", "created_at",
				}).
					AddRow("app-001", "uni-001", "prog-001", "2027-spring", "visa", "2026-06-01T08:00:00Z").
					AddRow("app-002", "uni-002", "prog-009", "2027-fall", "withdrawn", "2026-04-01T08:00:00Z")
				mock.ExpectQuery("SELECT id, university_id").WithArgs("student-001").WillReturnRows(rows)
			},
			validateOutput: func(t *testing.T, output *Output) {
				assert.Equal(t, 2, output.RowCount)
				applications := output.Data.([]map[string]interface{})
				assert.Equal(t, 85, applications[0]["progress"])
				assert.Equal(t, 0, applications[1]["progress"])
			},
		},
		{
			name: "university scoring config",
			input: &Input{
				QueryType:    string(models.QueryTypeUniversityScoringConf),
				UniversityID: "uni-001",
			},
			mockQuery: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{
					"university_id", "academics_weight", "english_weight", "statement_weight", "visa_weight",
				}).AddRow("uni-001", 40, 20, 20, 20)
				mock.ExpectQuery("SELECT university_id").WithArgs("uni-001").WillReturnRows(rows)
			},
			validateOutput: func(t *testing.T, output *Output) {
				data := output.Data.(map[string]interface{})
				assert.Equal(t, 100, data["weightSum"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, mock := newTestHandler(t)
			tt.mockQuery(mock)

			output, err := h.Execute(context.Background(), tt.input)

			require.NoError(t, err)
			tt.validateOutput(t, output)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestHandler_Execute_InvalidQueryType(t *testing.T) {
	h, _ := newTestHandler(t)

	_, err := h.Execute(context.Background(), &Input{QueryType: "visa_risk_report"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidQueryType))
}

func TestHandler_Execute_QueryFailure(t *testing.T) {
	h, mock := newTestHandler(t)

	mock.ExpectQuery("SELECT id, student_id").
		WithArgs("app-bad").
		WillReturnError(assert.AnError)

	_, err := h.Execute(context.Background(), &Input{
		QueryType:     string(models.QueryTypeApplicationDetails),
		ApplicationID: "app-bad",
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrQueryExecutionFailed))
}

func TestHandler_Execute_NilInput(t *testing.T) {
	h, _ := newTestHandler(t)

	_, err := h.Execute(context.Background(), nil)

	assert.Error(t, err)
}
