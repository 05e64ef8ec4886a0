// Package errors provides standardized error handling for BPMN workflow integration.
package errors

import (
	"fmt"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeScoringConfigMissing     ErrorCode = "SCORING_CONFIG_MISSING"
	ErrCodeReviewScoreFailed        ErrorCode = "REVIEW_SCORE_FAILED"
	ErrCodeReviewRecordFailed       ErrorCode = "REVIEW_RECORD_FAILED"
	ErrCodeStatusTransitionInvalid  ErrorCode = "STATUS_TRANSITION_INVALID"
	ErrCodeStatusTransitionConflict ErrorCode = "STATUS_TRANSITION_CONFLICT"
	ErrCodeStatusUnknown            ErrorCode = "STATUS_UNKNOWN"

	ErrCodeApplicationValidationFailed ErrorCode = "APPLICATION_VALIDATION_FAILED"
	ErrCodeApplicationNotFound         ErrorCode = "APPLICATION_NOT_FOUND"
	ErrCodeProfileNotFound             ErrorCode = "PROFILE_NOT_FOUND"

	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeQueryExecutionFailed     ErrorCode = "QUERY_EXECUTION_FAILED"
	ErrCodeQueryTimeout             ErrorCode = "QUERY_TIMEOUT"
	ErrCodeInvalidQueryType         ErrorCode = "INVALID_QUERY_TYPE"

	ErrCodeElasticsearchConnectionFailed ErrorCode = "ELASTICSEARCH_CONNECTION_FAILED"
	ErrCodeSearchQueryFailed             ErrorCode = "SEARCH_QUERY_FAILED"
	ErrCodeSearchTimeout                 ErrorCode = "SEARCH_TIMEOUT"
	ErrCodeIndexNotFound                 ErrorCode = "INDEX_NOT_FOUND"

	ErrCodeDatabaseInsertFailed ErrorCode = "DATABASE_INSERT_FAILED"
	ErrCodeDuplicateApplication ErrorCode = "DUPLICATE_APPLICATION"

	ErrCodeNotificationSendFailed ErrorCode = "NOTIFICATION_SEND_FAILED"

	ErrCodeDocumentVerificationFailed  ErrorCode = "DOCUMENT_VERIFICATION_FAILED"
	ErrCodeDocumentVerificationTimeout ErrorCode = "DOCUMENT_VERIFICATION_TIMEOUT"

	ErrCodeCRMSyncFailed ErrorCode = "CRM_SYNC_FAILED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. BPMN Error Integration
// ==========================

// BPMNError represents an error that can be thrown to the workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns a map suitable for setting job fail variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}

	if e.ErrorVariables != nil {
		for k, v := range e.ErrorVariables {
			vars[k] = v
		}
	}

	return vars
}

// ConvertToBPMNError maps a StandardError into its BPMN counterpart.
func ConvertToBPMNError(err *StandardError) *BPMNError {
	return &BPMNError{
		Code:      string(err.Code),
		Message:   err.Message,
		Details:   err.Details,
		Retryable: err.Retryable,
		Retries:   GetRetryCount(err.Code),
	}
}

// GetRetryCount returns how many retries a given error code deserves.
// Non-retryable codes always return 0.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeDatabaseConnectionFailed,
		ErrCodeReviewRecordFailed,
		ErrCodeStatusTransitionConflict,
		ErrCodeQueryExecutionFailed,
		ErrCodeQueryTimeout,
		ErrCodeElasticsearchConnectionFailed,
		ErrCodeSearchQueryFailed,
		ErrCodeSearchTimeout,
		ErrCodeDatabaseInsertFailed,
		ErrCodeNotificationSendFailed,
		ErrCodeDocumentVerificationTimeout,
		ErrCodeCRMSyncFailed:
		return 3
	default:
		return 0
	}
}

// ==========================
// 3. Error Constructors
// ==========================

// NewScoringConfigMissingError signals that a university has no rubric
// configured. Scoring must not proceed against default weights.
func NewScoringConfigMissingError(universityID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeScoringConfigMissing,
		Message:   "Scoring configuration not found for university",
		Details:   fmt.Sprintf("universityId: %s", universityID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewReviewRecordFailedError creates a retryable persistence error for
// review upserts.
func NewReviewRecordFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeReviewRecordFailed,
		Message:   "Failed to record review",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewStatusTransitionInvalidError creates a non-retryable lifecycle error.
func NewStatusTransitionInvalidError(from, to string) *StandardError {
	return &StandardError{
		Code:      ErrCodeStatusTransitionInvalid,
		Message:   "Illegal application status transition",
		Details:   fmt.Sprintf("from: %s, to: %s", from, to),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewStatusTransitionConflictError signals that the stored status changed
// between the lifecycle check and the update. Retrying re-reads the row, so
// the worker either proceeds or reports the transition as invalid.
func NewStatusTransitionConflictError(applicationID, expected, observed string) *StandardError {
	return &StandardError{
		Code:      ErrCodeStatusTransitionConflict,
		Message:   "Application status changed concurrently",
		Details:   fmt.Sprintf("applicationId: %s, expected: %s, observed: %s", applicationID, expected, observed),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewStatusUnknownError creates a non-retryable unknown status error.
func NewStatusUnknownError(status string) *StandardError {
	return &StandardError{
		Code:      ErrCodeStatusUnknown,
		Message:   "Unknown application status",
		Details:   fmt.Sprintf("status: %s", status),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewApplicationValidationFailedError creates a non-retryable validation error.
func NewApplicationValidationFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeApplicationValidationFailed,
		Message:   "Application data validation failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewApplicationNotFoundError creates a non-retryable lookup error.
func NewApplicationNotFoundError(applicationID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeApplicationNotFound,
		Message:   "Application not found",
		Details:   fmt.Sprintf("applicationId: %s", applicationID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewProfileNotFoundError creates a non-retryable lookup error.
func NewProfileNotFoundError(userID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeProfileNotFound,
		Message:   "Profile not found",
		Details:   fmt.Sprintf("userId: %s", userID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewQueryExecutionFailedError creates a retryable query execution error.
func NewQueryExecutionFailedError(queryType string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeQueryExecutionFailed,
		Message:   "Database query execution error",
		Details:   fmt.Sprintf("queryType: %s, error: %s", queryType, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewDatabaseInsertFailedError creates a retryable database insert error.
func NewDatabaseInsertFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatabaseInsertFailed,
		Message:   "Database insert operation failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewDuplicateApplicationError creates a non-retryable duplicate application
// error, identified by the natural key of the existing row.
func NewDuplicateApplicationError(studentID, universityID, programID, intakeTerm string) *StandardError {
	return &StandardError{
		Code:    ErrCodeDuplicateApplication,
		Message: "Application already exists",
		Details: fmt.Sprintf("studentId: %s, universityId: %s, programId: %s, intakeTerm: %s",
			studentID, universityID, programID, intakeTerm),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewNotificationSendFailedError creates a retryable notification send error.
func NewNotificationSendFailedError(notificationType string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotificationSendFailed,
		Message:   "Notification delivery failed",
		Details:   fmt.Sprintf("type: %s, error: %s", notificationType, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewDocumentVerificationFailedError creates a non-retryable verification error.
func NewDocumentVerificationFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDocumentVerificationFailed,
		Message:   "Document verification service error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewDocumentVerificationTimeoutError creates a retryable verification timeout error.
func NewDocumentVerificationTimeoutError() *StandardError {
	return &StandardError{
		Code:      ErrCodeDocumentVerificationTimeout,
		Message:   "Document verification service timeout",
		Details:   "Verification call exceeded timeout threshold",
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewCRMSyncFailedError creates a retryable CRM sync error.
func NewCRMSyncFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCRMSyncFailed,
		Message:   "CRM lead sync failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}
