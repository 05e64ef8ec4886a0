package validateapplicationdata

import (
	"context"
	"encoding/json"
	"fmt"

	"admissions-workers/internal/common/errors"
	"admissions-workers/internal/common/logger"
	"admissions-workers/internal/common/validation"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "validate-application-data"
)

// payloadSchema is the submission contract enforced before an
// application may leave draft.
var payloadSchema = map[string]interface{}{
	"type":     "object",
	"required": []interface{}{"personalInfo", "academics"},
	"properties": map[string]interface{}{
		"personalInfo": map[string]interface{}{
			"type":     "object",
			"required": []interface{}{"name", "email", "phone"},
			"properties": map[string]interface{}{
				"name":  map[string]interface{}{"type": "string", "minLength": 1},
				"email": map[string]interface{}{"type": "string", "format": "email"},
				"phone": map[string]interface{}{"type": "string", "minLength": 5},
			},
		},
		"academics": map[string]interface{}{
			"type":     "object",
			"required": []interface{}{"highestQualification"},
			"properties": map[string]interface{}{
				"highestQualification": map[string]interface{}{"type": "string", "minLength": 1},
				"gpa":                  map[string]interface{}{"type": "number", "minimum": 0},
				"englishScore":         map[string]interface{}{"type": "number", "minimum": 0},
			},
		},
		"statement": map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"text": map[string]interface{}{"type": "string"},
			},
		},
		"documents": map[string]interface{}{
			"type": "array",
			"items": map[string]interface{}{
				"type":     "object",
				"required": []interface{}{"documentType", "fileName"},
			},
		},
	},
}

type Handler struct {
	config *Config
	logger logger.Logger
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	return &Handler{
		config: config,
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
		errorCode := "APPLICATION_VALIDATION_FAILED"
		if stdErr, ok := err.(*errors.StandardError); ok {
			errorCode = string(stdErr.Code)
		}
		h.failJob(client, job, errorCode, err.Error())
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	result, err := validation.ValidateDocument(input.Payload, payloadSchema)
	if err != nil {
		return nil, errors.NewApplicationValidationFailedError(err.Error())
	}

	if !result.Valid {
		h.logger.Warn("application payload rejected", map[string]interface{}{
			"applicationId": input.ApplicationID,
			"errorCount":    len(result.Errors),
		})
	}

	return &Output{
		ApplicationID: input.ApplicationID,
		Valid:         result.Valid,
		Errors:        result.Errors,
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
