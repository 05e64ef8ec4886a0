package querypostgresql

import "admissions-workers/internal/models"

type Input struct {
	QueryType     string                 `json:"queryType"`
	ApplicationID string                 `json:"applicationId,omitempty"`
	StudentID     string                 `json:"studentId,omitempty"`
	UniversityID  string                 `json:"universityId,omitempty"`
	UserID        string                 `json:"userId,omitempty"`
	Filters       map[string]interface{} `json:"filters,omitempty"`
}

type Output struct {
	Data               interface{} `json:"data"`
	RowCount           int         `json:"rowCount"`
	QueryExecutionTime int64       `json:"queryExecutionTime"` // milliseconds
}

type QueryType = models.QueryType

var (
	QueryTypeApplicationDetails    = models.QueryTypeApplicationDetails
	QueryTypeApplicationReviews    = models.QueryTypeApplicationReviews
	QueryTypeStudentApplications   = models.QueryTypeStudentApplications
	QueryTypeUniversityScoringConf = models.QueryTypeUniversityScoringConf
	QueryTypeUserProfile           = models.QueryTypeUserProfile
)
