package scorereview

import "admissions-workers/internal/models"

type Input struct {
	ApplicationID string                `json:"applicationId"`
	UniversityID  string                `json:"universityId"`
	ReviewerID    string                `json:"reviewerId"`
	Stage         string                `json:"stage"`
	Scores        models.ReviewScores   `json:"scores"`
	Feedback      models.ReviewFeedback `json:"feedback"`
	Decision      string                `json:"decision"`
}

type Output struct {
	ApplicationID      string              `json:"applicationId"`
	Total              int                 `json:"total"`
	RecommendationBand string              `json:"recommendationBand"`
	Scores             models.ReviewScores `json:"scores"`
	WeightSum          int                 `json:"weightSum"`
}

// Recommendation bands over the composite total.
const (
	BandStrong     = "strong"
	BandPromising  = "promising"
	BandBorderline = "borderline"
	BandWeak       = "weak"
)
