package verifydocument

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"admissions-workers/internal/common/errors"
	httpclient "admissions-workers/internal/common/http"
	"admissions-workers/internal/common/logger"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "verify-document"
)

type Handler struct {
	config *Config
	client *httpclient.Client
	logger logger.Logger
}

func NewHandler(config *Config, client *httpclient.Client, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		client: client,
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
		errorCode := "DOCUMENT_VERIFICATION_FAILED"
		if stdErr, ok := err.(*errors.StandardError); ok {
			errorCode = string(stdErr.Code)
		}
		h.failJob(client, job, errorCode, err.Error())
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input.DocumentID == "" || input.FileName == "" {
		return nil, errors.NewApplicationValidationFailedError(
			"documentId and fileName are required")
	}

	body, err := json.Marshal(verificationRequest{
		DocumentType: input.DocumentType,
		FileName:     input.FileName,
		FileSize:     input.FileSize,
	})
	if err != nil {
		return nil, errors.NewDocumentVerificationFailedError(err)
	}

	req, err := http.NewRequest(http.MethodPost, h.config.BaseURL+"/v1/verify", bytes.NewReader(body))
	if err != nil {
		return nil, errors.NewDocumentVerificationFailedError(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", h.config.APIKey)

	resp, err := h.client.DoWithContext(ctx, req)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, errors.NewDocumentVerificationTimeoutError()
		}
		return nil, errors.NewDocumentVerificationFailedError(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.NewDocumentVerificationFailedError(err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, errors.NewDocumentVerificationFailedError(
			fmt.Errorf("verification service returned status %d: %s", resp.StatusCode, respBody))
	}

	var result verificationResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, errors.NewDocumentVerificationFailedError(err)
	}

	verdict := normalizeVerdict(result.Status)

	h.logger.Info("document verified", map[string]interface{}{
		"applicationId": input.ApplicationID,
		"documentId":    input.DocumentID,
		"verdict":       verdict,
		"reason":        result.Reason,
	})

	return &Output{
		ApplicationID: input.ApplicationID,
		DocumentID:    input.DocumentID,
		Verdict:       verdict,
		Reason:        result.Reason,
	}, nil
}

// normalizeVerdict maps the verification service's labels onto the fixed
// verdict set. Anything unrecognized is treated as suspicious so a human
// looks at it.
func normalizeVerdict(raw string) string {
	switch strings.ToLower(raw) {
	case "verified", "ok", "passed", "genuine":
		return VerdictVerified
	case "invalid", "failed", "forged", "rejected":
		return VerdictInvalid
	default:
		return VerdictSuspicious
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
