package validateapplicationdata

import (
	"admissions-workers/internal/common/validation"
	"admissions-workers/internal/models"
)

// Input represents the job variables carrying the submitted payload.
type Input struct {
	ApplicationID string                    `json:"applicationId"`
	Payload       models.ApplicationPayload `json:"payload"`
}

// Output is written back to the process with the validation verdict.
type Output struct {
	ApplicationID string                       `json:"applicationId"`
	Valid         bool                         `json:"valid"`
	Errors        []validation.ValidationError `json:"errors,omitempty"`
}
