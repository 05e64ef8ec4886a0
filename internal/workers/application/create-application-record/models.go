package createapplicationrecord

import "admissions-workers/internal/models"

// Input represents the job variables for creating an application row.
type Input struct {
	StudentID    string                    `json:"studentId"`
	AgentID      string                    `json:"agentId,omitempty"`
	UniversityID string                    `json:"universityId"`
	ProgramID    string                    `json:"programId"`
	IntakeTerm   string                    `json:"intakeTerm"`
	Payload      models.ApplicationPayload `json:"payload"`
}

// Output is written back to the process after the row is created.
type Output struct {
	ApplicationID string `json:"applicationId"`
	Status        string `json:"status"`
	Progress      int    `json:"progress"`
	CreatedAt     string `json:"createdAt"`
}
