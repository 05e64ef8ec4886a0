package scorereview

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"math"

	"admissions-workers/internal/common/errors"
	"admissions-workers/internal/common/logger"
	"admissions-workers/internal/common/metrics"
	"admissions-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/redis/go-redis/v9"
)

const (
	TaskType = "score-review"
)

type Handler struct {
	config *Config
	db     *sql.DB
	redis  *redis.Client
	logger logger.Logger
}

func NewHandler(config *Config, db *sql.DB, redis *redis.Client, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		db:     db,
		redis:  redis,
		logger: log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.failJob(client, job, "PARSE_ERROR", fmt.Sprintf("parse input: %v", err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		errorCode := "REVIEW_SCORE_FAILED"
		if stdErr, ok := err.(*errors.StandardError); ok {
			errorCode = string(stdErr.Code)
		}
		h.failJob(client, job, errorCode, err.Error())
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	config, err := h.getScoringConfig(ctx, input.UniversityID)
	if err != nil {
		return nil, err
	}

	// Upstream sliders clamp to [0,100] already; re-clamp because job
	// variables arrive as untrusted JSON.
	scores := input.Scores.Clamp()

	total := weightedTotal(scores, *config)
	band := classifyBand(total)

	metrics.ReviewsScored.WithLabelValues(band).Inc()

	h.logger.Info("review scored", map[string]interface{}{
		"applicationId": input.ApplicationID,
		"universityId":  input.UniversityID,
		"total":         total,
		"band":          band,
		"weightSum":     config.WeightSum(),
	})

	return &Output{
		ApplicationID:      input.ApplicationID,
		Total:              total,
		RecommendationBand: band,
		Scores:             scores,
		WeightSum:          config.WeightSum(),
	}, nil
}

// weightedTotal combines the four rubric dimensions with the university's
// percentage weights, rounding half-up. Weight sums other than 100 are
// carried through unchanged; a sum above 100 can push the total past 100.
func weightedTotal(s models.ReviewScores, c models.ScoringConfig) int {
	weighted := s.Academics*c.Academics +
		s.EnglishProficiency*c.EnglishProficiency +
		s.StatementQuality*c.StatementQuality +
		s.VisaRisk*c.VisaRisk
	return int(math.Round(float64(weighted) / 100.0))
}

func classifyBand(total int) string {
	switch {
	case total >= 81:
		return BandStrong
	case total >= 61:
		return BandPromising
	case total >= 41:
		return BandBorderline
	default:
		return BandWeak
	}
}

func (h *Handler) getScoringConfig(ctx context.Context, universityID string) (*models.ScoringConfig, error) {
	cacheKey := "scoring:config:" + universityID
	if val, err := h.redis.Get(ctx, cacheKey).Result(); err == nil {
		var cached models.ScoringConfig
		if err := json.Unmarshal([]byte(val), &cached); err == nil {
			return &cached, nil
		}
	}

	row := h.db.QueryRowContext(ctx, `
		SELECT university_id, academics_weight, english_weight, statement_weight, visa_weight
		FROM scoring_configs
		WHERE university_id = $1`, universityID)

	var config models.ScoringConfig
	err := row.Scan(&config.UniversityID, &config.Academics, &config.EnglishProficiency,
		&config.StatementQuality, &config.VisaRisk)
	if err != nil {
		if err == sql.ErrNoRows {
			// No rubric configured: scoring must not proceed against
			// default weights.
			return nil, errors.NewScoringConfigMissingError(universityID)
		}
		return nil, errors.NewQueryExecutionFailedError(string(models.QueryTypeUniversityScoringConf), err)
	}

	if data, err := json.Marshal(config); err == nil {
		h.redis.Set(ctx, cacheKey, string(data), h.config.CacheTTL)
	}

	return &config, nil
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	_, err = cmd.Send(context.Background())
	if err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
	}
}

func (h *Handler) failJob(client worker.JobClient, job entities.Job, errorCode, errorMessage string) {
	h.logger.Error("job failed", map[string]interface{}{
		"jobKey":       job.Key,
		"errorCode":    errorCode,
		"errorMessage": errorMessage,
	})

	_, err := client.NewThrowErrorCommand().
		JobKey(job.Key).
		ErrorCode(errorCode).
		ErrorMessage(errorMessage).
		Send(context.Background())
	if err != nil {
		h.logger.Error("failed to throw error", map[string]interface{}{
			"error": err,
		})
	}
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
