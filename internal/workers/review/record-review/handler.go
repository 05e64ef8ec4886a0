package recordreview

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"admissions-workers/internal/common/errors"
	"admissions-workers/internal/common/logger"
	"admissions-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
)

const (
	TaskType = "record-review"
)

type Handler struct {
	config *Config
	db     *sql.DB
	logger logger.Logger
}

func NewHandler(config *Config, db *sql.DB, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		db:     db,
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
		errorCode := "REVIEW_RECORD_FAILED"
		if stdErr, ok := err.(*errors.StandardError); ok {
			errorCode = string(stdErr.Code)
		}
		h.failJob(client, job, errorCode, err.Error())
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input.ApplicationID == "" || input.Stage == "" {
		return nil, errors.NewApplicationValidationFailedError(
			"applicationId and stage are required")
	}
	if !models.IsReviewDecision(input.Decision) {
		return nil, errors.NewApplicationValidationFailedError(
			fmt.Sprintf("unknown review decision: %s", input.Decision))
	}

	review := models.ApplicationReview{
		ID:            uuid.New().String(),
		ApplicationID: input.ApplicationID,
		Stage:         input.Stage,
		ReviewerID:    input.ReviewerID,
		Scores:        input.Scores.Clamp(),
		Total:         input.Total,
		Feedback:      input.Feedback,
		Decision:      models.ReviewDecision(input.Decision),
	}

	scores, err := json.Marshal(review.Scores)
	if err != nil {
		return nil, errors.NewReviewRecordFailedError(err)
	}
	feedback, err := json.Marshal(review.Feedback)
	if err != nil {
		return nil, errors.NewReviewRecordFailedError(err)
	}

	now := time.Now().UTC()

	// One review per application and stage. A resubmitted review for the
	// same stage replaces the earlier one.
	row := h.db.QueryRowContext(ctx, `
		INSERT INTO application_reviews (id, application_id, stage, reviewer_id, scores, total, feedback, decision, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
		ON CONFLICT (application_id, stage) DO UPDATE
		SET reviewer_id = EXCLUDED.reviewer_id,
		    scores = EXCLUDED.scores,
		    total = EXCLUDED.total,
		    feedback = EXCLUDED.feedback,
		    decision = EXCLUDED.decision,
		    updated_at = EXCLUDED.updated_at
		RETURNING id, (created_at <> updated_at)`,
		review.ID, review.ApplicationID, review.Stage, review.ReviewerID,
		scores, review.Total, feedback, string(review.Decision), now)

	var reviewID string
	var updated bool
	if err := row.Scan(&reviewID, &updated); err != nil {
		return nil, errors.NewReviewRecordFailedError(err)
	}

	h.logger.Info("review recorded", map[string]interface{}{
		"reviewId":      reviewID,
		"applicationId": input.ApplicationID,
		"stage":         input.Stage,
		"decision":      input.Decision,
		"updated":       updated,
	})

	return &Output{
		ReviewID:      reviewID,
		ApplicationID: input.ApplicationID,
		Stage:         input.Stage,
		Decision:      input.Decision,
		Updated:       updated,
	}, nil
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
