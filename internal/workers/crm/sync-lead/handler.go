package synclead

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"admissions-workers/internal/common/crm"
	"admissions-workers/internal/common/errors"
	"admissions-workers/internal/common/logger"
	"admissions-workers/internal/common/metrics"
	"admissions-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "sync-lead"
)

// CRMService is the subset of the CRM client this worker uses.
type CRMService interface {
	CreateLead(ctx context.Context, lead *crm.Lead) (string, error)
	UpdateLeadStage(ctx context.Context, leadID, stage string) error
}

type Handler struct {
	config *Config
	crm    CRMService
	logger logger.Logger
}

func NewHandler(config *Config, crmService CRMService, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		crm:    crmService,
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
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(errors.ErrCodeApplicationValidationFailed)).Inc()
		h.failJob(client, job, errors.NewApplicationValidationFailedError(fmt.Sprintf("parse input: %v", err)))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.Execute(ctx, &input)
	if err != nil {
		h.failJob(client, job, err)
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input.AgentID == "" {
		return nil, errors.NewApplicationValidationFailedError("agentId is required")
	}

	stage := leadStage(models.ApplicationStatus(input.Status))

	if input.LeadID != "" {
		if err := h.crm.UpdateLeadStage(ctx, input.LeadID, stage); err != nil {
			return nil, errors.NewCRMSyncFailedError(err)
		}

		h.logger.Info("lead stage updated", map[string]interface{}{
			"applicationId": input.ApplicationID,
			"leadId":        input.LeadID,
			"stage":         stage,
		})

		return &Output{
			ApplicationID: input.ApplicationID,
			LeadID:        input.LeadID,
			Stage:         stage,
			Created:       false,
		}, nil
	}

	if input.StudentName == "" || input.Email == "" {
		return nil, errors.NewApplicationValidationFailedError(
			"studentName and email are required to create a lead")
	}

	leadID, err := h.crm.CreateLead(ctx, &crm.Lead{
		AgentID:       input.AgentID,
		StudentName:   input.StudentName,
		Email:         input.Email,
		Phone:         input.Phone,
		Country:       input.Country,
		ApplicationID: input.ApplicationID,
		Source:        "admissions-platform",
		Stage:         stage,
	})
	if err != nil {
		return nil, errors.NewCRMSyncFailedError(err)
	}

	h.logger.Info("lead created", map[string]interface{}{
		"applicationId": input.ApplicationID,
		"leadId":        leadID,
		"stage":         stage,
	})

	return &Output{
		ApplicationID: input.ApplicationID,
		LeadID:        leadID,
		Stage:         stage,
		Created:       true,
	}, nil
}

// leadStage maps the application lifecycle onto the CRM's coarser lead
// pipeline.
func leadStage(status models.ApplicationStatus) string {
	switch status {
	case models.StatusDraft:
		return "Prospect"
	case models.StatusSubmitted, models.StatusScreening:
		return "Applied"
	case models.StatusConditionalOffer, models.StatusUnconditionalOffer:
		return "Offer"
	case models.StatusCASLOA, models.StatusVisa:
		return "Visa"
	case models.StatusEnrolled:
		return "Enrolled"
	case models.StatusWithdrawn, models.StatusRejected, models.StatusDeferred:
		return "Closed"
	default:
		return "Prospect"
	}
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

// failJob retries transient CRM failures and throws a BPMN error for the
// rest, so the process can route terminal failures to a human task.
func (h *Handler) failJob(client worker.JobClient, job entities.Job, err error) {
	stdErr, ok := err.(*errors.StandardError)
	if !ok {
		stdErr = errors.NewCRMSyncFailedError(err)
	}
	bpmnErr := errors.ConvertToBPMNError(stdErr)

	h.logger.Error("job failed", map[string]interface{}{
		"jobKey":       job.Key,
		"errorCode":    bpmnErr.Code,
		"errorMessage": bpmnErr.Message,
		"retryable":    bpmnErr.Retryable,
		"retries":      bpmnErr.Retries,
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
	startTime := time.Now()
	metrics.WorkerJobsActive.WithLabelValues(TaskType).Inc()
	defer metrics.WorkerJobsActive.WithLabelValues(TaskType).Dec()

	output, err := h.execute(ctx, input)
	if err != nil {
		errorCode := string(errors.ErrCodeCRMSyncFailed)
		if stdErr, ok := err.(*errors.StandardError); ok {
			errorCode = string(stdErr.Code)
		}
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, errorCode).Inc()
		return nil, err
	}

	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(startTime).Seconds())
	return output, nil
}
