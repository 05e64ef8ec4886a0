package advancestatus

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"admissions-workers/internal/common/errors"
	"admissions-workers/internal/common/logger"
	"admissions-workers/internal/common/metrics"
	"admissions-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "advance-status"
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
		h.failJob(client, job, errors.NewApplicationValidationFailedError(fmt.Sprintf("parse input: %v", err)))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.failJob(client, job, err)
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	target := models.ApplicationStatus(input.TargetStatus)
	if !target.IsValid() {
		return nil, errors.NewStatusUnknownError(input.TargetStatus)
	}

	current, err := h.currentStatus(ctx, input.ApplicationID)
	if err != nil {
		return nil, err
	}

	if !current.IsValid() {
		// A row holding a status outside the lifecycle means the data
		// was written by something other than this worker. Refuse to
		// guess a transition from it.
		return nil, errors.NewStatusUnknownError(string(current))
	}

	if !current.CanTransitionTo(target) {
		return nil, errors.NewStatusTransitionInvalidError(string(current), string(target))
	}

	if err := h.updateStatus(ctx, input.ApplicationID, current, target); err != nil {
		return nil, err
	}

	metrics.StatusTransitions.WithLabelValues(string(current), string(target)).Inc()

	h.logger.Info("status advanced", map[string]interface{}{
		"applicationId": input.ApplicationID,
		"from":          string(current),
		"to":            string(target),
		"actorId":       input.ActorID,
	})

	next := make([]string, 0, len(target.NextStatuses()))
	for _, s := range target.NextStatuses() {
		next = append(next, string(s))
	}

	return &Output{
		ApplicationID:  input.ApplicationID,
		PreviousStatus: string(current),
		Status:         string(target),
		StatusLabel:    target.Label(),
		Progress:       target.Progress(),
		Terminal:       target.IsTerminal(),
		NextStatuses:   next,
	}, nil
}

func (h *Handler) currentStatus(ctx context.Context, applicationID string) (models.ApplicationStatus, error) {
	row := h.db.QueryRowContext(ctx, `
		SELECT status
		FROM applications
		WHERE id = $1`, applicationID)

	var status string
	if err := row.Scan(&status); err != nil {
		if err == sql.ErrNoRows {
			return "", errors.NewApplicationNotFoundError(applicationID)
		}
		return "", errors.NewQueryExecutionFailedError(string(models.QueryTypeApplicationDetails), err)
	}
	return models.ApplicationStatus(status), nil
}

func (h *Handler) updateStatus(ctx context.Context, applicationID string, from, target models.ApplicationStatus) error {
	// The update only lands if the row still holds the status we read.
	// A concurrent transition leaves zero rows affected.
	result, err := h.db.ExecContext(ctx, `
		UPDATE applications
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND status = $3`, string(target), applicationID, string(from))
	if err != nil {
		return errors.NewQueryExecutionFailedError("update_application_status", err)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		observed, err := h.currentStatus(ctx, applicationID)
		if err != nil {
			return err
		}
		return errors.NewStatusTransitionConflictError(applicationID, string(from), string(observed))
	}
	return nil
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

// failJob leaves retries on the job for a transient failure, typically a
// lost update race, and throws a BPMN error for everything else.
func (h *Handler) failJob(client worker.JobClient, job entities.Job, err error) {
	stdErr, ok := err.(*errors.StandardError)
	if !ok {
		stdErr = errors.NewStatusUnknownError(err.Error())
	}
	bpmnErr := errors.ConvertToBPMNError(stdErr)

	h.logger.Error("job failed", map[string]interface{}{
		"jobKey":       job.Key,
		"errorCode":    bpmnErr.Code,
		"errorMessage": bpmnErr.Message,
		"retryable":    bpmnErr.Retryable,
	})

	if bpmnErr.Retryable && job.Retries > 0 {
		failCmd := client.NewFailJobCommand().
			JobKey(job.Key).
			Retries(int32(bpmnErr.Retries)).
			ErrorMessage(fmt.Sprintf("[%s] %s", bpmnErr.Code, bpmnErr.Message))
		if _, sendErr := failCmd.Send(context.Background()); sendErr != nil {
			h.logger.Error("failed to fail job", map[string]interface{}{
				"error": sendErr,
			})
		}
		return
	}

	_, throwErr := client.NewThrowErrorCommand().
		JobKey(job.Key).
		ErrorCode(bpmnErr.Code).
		ErrorMessage(bpmnErr.Message).
		Send(context.Background())
	if throwErr != nil {
		h.logger.Error("failed to throw error", map[string]interface{}{
			"error": throwErr,
		})
	}
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
