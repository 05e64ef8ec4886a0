package recordreview

import "admissions-workers/internal/models"

// Input represents the job variables for persisting a scored review.
type Input struct {
	ApplicationID string                `json:"applicationId"`
	Stage         string                `json:"stage"`
	ReviewerID    string                `json:"reviewerId"`
	Scores        models.ReviewScores   `json:"scores"`
	Total         int                   `json:"total"`
	Feedback      models.ReviewFeedback `json:"feedback"`
	Decision      string                `json:"decision"`
}

// Output is written back to the process after the review row is stored.
type Output struct {
	ReviewID      string `json:"reviewId"`
	ApplicationID string `json:"applicationId"`
	Stage         string `json:"stage"`
	Decision      string `json:"decision"`
	Updated       bool   `json:"updated"`
}
