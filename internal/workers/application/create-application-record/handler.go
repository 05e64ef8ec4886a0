package createapplicationrecord

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
	"github.com/lib/pq"
)

const (
	TaskType = "create-application-record"

	uniqueViolation = "23505"
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
		errorCode := "DATABASE_INSERT_FAILED"
		if stdErr, ok := err.(*errors.StandardError); ok {
			errorCode = string(stdErr.Code)
		}
		h.failJob(client, job, errorCode, err.Error())
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input.StudentID == "" || input.UniversityID == "" || input.ProgramID == "" {
		return nil, errors.NewApplicationValidationFailedError(
			"studentId, universityId and programId are required")
	}

	payload, err := json.Marshal(input.Payload)
	if err != nil {
		return nil, errors.NewApplicationValidationFailedError(
			fmt.Sprintf("encode payload: %v", err))
	}

	applicationID := uuid.New().String()
	now := time.Now().UTC()

	_, err = h.db.ExecContext(ctx, `
		INSERT INTO applications (id, student_id, agent_id, university_id, program_id, intake_term, status, payload, created_at, updated_at)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7, $8, $9, $9)`,
		applicationID, input.StudentID, input.AgentID, input.UniversityID,
		input.ProgramID, input.IntakeTerm, string(models.StatusDraft), payload, now)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && string(pqErr.Code) == uniqueViolation {
			return nil, errors.NewDuplicateApplicationError(
				input.StudentID, input.UniversityID, input.ProgramID, input.IntakeTerm)
		}
		return nil, errors.NewDatabaseInsertFailedError(err)
	}

	h.logger.Info("application record created", map[string]interface{}{
		"applicationId": applicationID,
		"studentId":     input.StudentID,
		"universityId":  input.UniversityID,
		"programId":     input.ProgramID,
	})

	return &Output{
		ApplicationID: applicationID,
		Status:        string(models.StatusDraft),
		Progress:      models.StatusDraft.Progress(),
		CreatedAt:     now.Format(time.RFC3339),
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
