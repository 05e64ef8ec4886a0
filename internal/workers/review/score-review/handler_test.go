package scorereview

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"admissions-workers/internal/common/errors"
	"admissions-workers/internal/common/logger"
	"admissions-workers/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T) (*Handler, sqlmock.Sqlmock, *miniredis.Miniredis) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	h := NewHandler(&Config{CacheTTL: time.Minute, Timeout: 5 * time.Second}, db, rdb, logger.NewTestLogger(t))
	return h, mock, mr
}

func expectConfigQuery(mock sqlmock.Sqlmock, universityID string, academics, english, statement, visa int) {
	rows := sqlmock.NewRows([]string{"university_id", "academics_weight", "english_weight", "statement_weight", "visa_weight"}).
		AddRow(universityID, academics, english, statement, visa)
	mock.ExpectQuery("SELECT university_id, academics_weight").
		WithArgs(universityID).
		WillReturnRows(rows)
}

func TestHandler_Execute_WeightedTotal(t *testing.T) {
	h, mock, _ := newTestHandler(t)

	expectConfigQuery(mock, "uni-001", 40, 20, 20, 20)

	input := &Input{
		ApplicationID: "app-001",
		UniversityID:  "uni-001",
		Scores: models.ReviewScores{
			Academics:          80,
			EnglishProficiency: 70,
			StatementQuality:   60,
			VisaRisk:           90,
		},
	}

	output, err := h.Execute(context.Background(), input)

	require.NoError(t, err)
	// round(80*0.4 + 70*0.2 + 60*0.2 + 90*0.2) = round(32+14+12+18) = 76
	assert.Equal(t, 76, output.Total)
	assert.Equal(t, BandPromising, output.RecommendationBand)
	assert.Equal(t, 100, output.WeightSum)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Execute_WeightsOver100NotClamped(t *testing.T) {
	h, mock, _ := newTestHandler(t)

	expectConfigQuery(mock, "uni-002", 50, 20, 20, 20)

	input := &Input{
		ApplicationID: "app-002",
		UniversityID:  "uni-002",
		Scores: models.ReviewScores{
			Academics:          100,
			EnglishProficiency: 100,
			StatementQuality:   100,
			VisaRisk:           100,
		},
	}

	output, err := h.Execute(context.Background(), input)

	require.NoError(t, err)
	// Permissive behavior: totals above 100 are carried through.
	assert.Equal(t, 110, output.Total)
	assert.Equal(t, 110, output.WeightSum)
	assert.Equal(t, BandStrong, output.RecommendationBand)
}

func TestHandler_Execute_MissingConfigBlocksScoring(t *testing.T) {
	h, mock, _ := newTestHandler(t)

	mock.ExpectQuery("SELECT university_id, academics_weight").
		WithArgs("uni-unconfigured").
		WillReturnError(sql.ErrNoRows)

	input := &Input{
		ApplicationID: "app-003",
		UniversityID:  "uni-unconfigured",
		Scores:        models.ReviewScores{Academics: 90},
	}

	output, err := h.Execute(context.Background(), input)

	require.Error(t, err)
	assert.Nil(t, output)

	stdErr, ok := err.(*errors.StandardError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeScoringConfigMissing, stdErr.Code)
	assert.False(t, stdErr.Retryable)
}

func TestHandler_Execute_OutOfRangeScoresClamped(t *testing.T) {
	h, mock, _ := newTestHandler(t)

	expectConfigQuery(mock, "uni-003", 25, 25, 25, 25)

	input := &Input{
		ApplicationID: "app-004",
		UniversityID:  "uni-003",
		Scores: models.ReviewScores{
			Academics:          150,
			EnglishProficiency: -20,
			StatementQuality:   100,
			VisaRisk:           0,
		},
	}

	output, err := h.Execute(context.Background(), input)

	require.NoError(t, err)
	assert.Equal(t, models.ReviewScores{Academics: 100, EnglishProficiency: 0, StatementQuality: 100, VisaRisk: 0}, output.Scores)
	// round((100+0+100+0) * 0.25) = 50
	assert.Equal(t, 50, output.Total)
}

func TestHandler_Execute_ConfigCached(t *testing.T) {
	h, mock, mr := newTestHandler(t)

	// Only one DB roundtrip; the second execute must be served from Redis.
	expectConfigQuery(mock, "uni-004", 40, 20, 20, 20)

	input := &Input{
		ApplicationID: "app-005",
		UniversityID:  "uni-004",
		Scores:        models.ReviewScores{Academics: 80, EnglishProficiency: 70, StatementQuality: 60, VisaRisk: 90},
	}

	first, err := h.Execute(context.Background(), input)
	require.NoError(t, err)

	assert.True(t, mr.Exists("scoring:config:uni-004"))

	second, err := h.Execute(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, first.Total, second.Total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Execute_CacheHitSkipsDatabase(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	rdb, redisMock := redismock.NewClientMock()
	redisMock.ExpectGet("scoring:config:uni-cached").
		SetVal(`{"universityId":"uni-cached","academics":40,"englishProficiency":20,"statementQuality":20,"visaRisk":20}`)

	h := NewHandler(&Config{CacheTTL: time.Minute, Timeout: 5 * time.Second}, db, rdb, logger.NewTestLogger(t))

	output, err := h.Execute(context.Background(), &Input{
		ApplicationID: "app-006",
		UniversityID:  "uni-cached",
		Scores:        models.ReviewScores{Academics: 80, EnglishProficiency: 70, StatementQuality: 60, VisaRisk: 90},
	})

	require.NoError(t, err)
	assert.Equal(t, 76, output.Total)
	// No SQL expectations were registered, so a DB roundtrip would fail here.
	assert.NoError(t, mock.ExpectationsWereMet())
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestWeightedTotal_RoundsHalfUp(t *testing.T) {
	// 50*1 + 0 + 0 + 1*50 → weighted 2550/100 = 25.5, rounds up to 26.
	scores := models.ReviewScores{Academics: 50, VisaRisk: 1}
	config := models.ScoringConfig{Academics: 50, VisaRisk: 50}
	assert.Equal(t, 26, weightedTotal(scores, config))
}

func TestClassifyBand(t *testing.T) {
	tests := []struct {
		total    int
		expected string
	}{
		{100, BandStrong},
		{81, BandStrong},
		{80, BandPromising},
		{61, BandPromising},
		{60, BandBorderline},
		{41, BandBorderline},
		{40, BandWeak},
		{0, BandWeak},
		{110, BandStrong},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, classifyBand(tt.total), "total %d", tt.total)
	}
}
