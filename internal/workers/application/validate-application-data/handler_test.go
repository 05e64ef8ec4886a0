package validateapplicationdata

import (
	"context"
	"testing"
	"time"

	"admissions-workers/internal/common/logger"
	"admissions-workers/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	return NewHandler(&Config{Timeout: 5 * time.Second}, logger.NewTestLogger(t))
}

func completePayload() models.ApplicationPayload {
	return models.ApplicationPayload{
		PersonalInfo: models.PersonalInfo{
			Name:  "Diego Fernandez",
			Email: "diego@example.com",
			Phone: "+34600111222",
		},
		Academics: models.Academics{
			HighestQualification: "bachelor",
			GPA:                  3.4,
			EnglishTest:          "IELTS",
			EnglishScore:         7.0,
		},
	}
}

func TestHandler_Execute_ValidPayload(t *testing.T) {
	h := newTestHandler(t)

	output, err := h.Execute(context.Background(), &Input{
		ApplicationID: "app-001",
		Payload:       completePayload(),
	})

	require.NoError(t, err)
	assert.True(t, output.Valid)
	assert.Empty(t, output.Errors)
}

func TestHandler_Execute_PayloadWithDocuments(t *testing.T) {
	h := newTestHandler(t)

	payload := completePayload()
	payload.Documents = []models.Document{
		{DocumentType: "passport", FileName: "passport.pdf", FileSize: 204800},
		{DocumentType: "transcript", FileName: "transcript.pdf", FileSize: 512000},
	}

	output, err := h.Execute(context.Background(), &Input{
		ApplicationID: "app-004",
		Payload:       payload,
	})

	require.NoError(t, err)
	assert.True(t, output.Valid)
	assert.Empty(t, output.Errors)
}

func TestHandler_Execute_MissingContactFields(t *testing.T) {
	h := newTestHandler(t)

	payload := completePayload()
	payload.PersonalInfo.Email = ""
	payload.PersonalInfo.Phone = ""

	output, err := h.Execute(context.Background(), &Input{
		ApplicationID: "app-002",
		Payload:       payload,
	})

	require.NoError(t, err)
	assert.False(t, output.Valid)
	assert.NotEmpty(t, output.Errors)
}

func TestHandler_Execute_MissingQualification(t *testing.T) {
	h := newTestHandler(t)

	payload := completePayload()
	payload.Academics.HighestQualification = ""

	output, err := h.Execute(context.Background(), &Input{
		ApplicationID: "app-003",
		Payload:       payload,
	})

	require.NoError(t, err)
	assert.False(t, output.Valid)

	fields := make([]string, 0, len(output.Errors))
	for _, e := range output.Errors {
		fields = append(fields, e.Field)
	}
	assert.Contains(t, fields, "academics.highestQualification")
}
