package verifydocument

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"admissions-workers/internal/common/errors"
	httpclient "admissions-workers/internal/common/http"
	"admissions-workers/internal/common/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T, baseURL string) *Handler {
	t.Helper()
	return NewHandler(
		&Config{BaseURL: baseURL, APIKey: "test-key", Timeout: 2 * time.Second},
		httpclient.NewClient(2*time.Second),
		logger.NewTestLogger(t),
	)
}

func validInput() *Input {
	return &Input{
		ApplicationID: "app-001",
		DocumentID:    "doc-001",
		DocumentType:  "passport",
		FileName:      "doc-001.pdf",
		FileSize:      482113,
	}
}

func TestHandler_Execute_VerifiedDocument(t *testing.T) {
	var gotRequest verificationRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/verify", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-API-Key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotRequest))

		json.NewEncoder(w).Encode(verificationResponse{Status: "Verified"})
	}))
	defer server.Close()

	h := newTestHandler(t, server.URL)

	output, err := h.Execute(context.Background(), validInput())

	require.NoError(t, err)
	assert.Equal(t, VerdictVerified, output.Verdict)
	assert.Equal(t, "doc-001.pdf", gotRequest.FileName)
	assert.Equal(t, int64(482113), gotRequest.FileSize)
	assert.Equal(t, "passport", gotRequest.DocumentType)
}

func TestHandler_Execute_InvalidDocument(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(verificationResponse{
			Status: "Invalid",
			Reason: "MRZ checksum mismatch",
		})
	}))
	defer server.Close()

	h := newTestHandler(t, server.URL)

	output, err := h.Execute(context.Background(), validInput())

	require.NoError(t, err)
	assert.Equal(t, VerdictInvalid, output.Verdict)
	assert.Equal(t, "MRZ checksum mismatch", output.Reason)
}

func TestHandler_Execute_UnknownLabelIsSuspicious(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(verificationResponse{Status: "needs_review"})
	}))
	defer server.Close()

	h := newTestHandler(t, server.URL)

	output, err := h.Execute(context.Background(), validInput())

	require.NoError(t, err)
	assert.Equal(t, VerdictSuspicious, output.Verdict)
}

func TestHandler_Execute_ServiceError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	h := newTestHandler(t, server.URL)

	_, err := h.Execute(context.Background(), validInput())

	require.Error(t, err)
	stdErr, ok := err.(*errors.StandardError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeDocumentVerificationFailed, stdErr.Code)
}

func TestHandler_Execute_TimeoutIsRetryable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer server.Close()

	h := NewHandler(
		&Config{BaseURL: server.URL, APIKey: "test-key", Timeout: 50 * time.Millisecond},
		httpclient.NewClient(time.Second),
		logger.NewTestLogger(t),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := h.Execute(ctx, validInput())

	require.Error(t, err)
	stdErr, ok := err.(*errors.StandardError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeDocumentVerificationTimeout, stdErr.Code)
	assert.True(t, stdErr.Retryable)
}

func TestHandler_Execute_MissingDocumentID(t *testing.T) {
	h := newTestHandler(t, "http://unused.example.com")

	input := validInput()
	input.DocumentID = ""

	_, err := h.Execute(context.Background(), input)

	require.Error(t, err)
	stdErr, ok := err.(*errors.StandardError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeApplicationValidationFailed, stdErr.Code)
}
