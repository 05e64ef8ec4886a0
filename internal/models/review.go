package models

// ReviewDecision is the reviewer's verdict on an application stage.
type ReviewDecision string

const (
	DecisionApprove        ReviewDecision = "approve"
	DecisionReject         ReviewDecision = "reject"
	DecisionRequestChanges ReviewDecision = "request_changes"
)

// IsReviewDecision reports whether value is a member of the decision set.
func IsReviewDecision(value string) bool {
	switch ReviewDecision(value) {
	case DecisionApprove, DecisionReject, DecisionRequestChanges:
		return true
	default:
		return false
	}
}

// ReviewScores holds the four rubric dimensions, each scored 0-100 by the
// reviewer. Job variables arrive as untrusted JSON, so Clamp re-applies
// the bounds before any total is computed.
type ReviewScores struct {
	Academics          int `json:"academics"`
	EnglishProficiency int `json:"englishProficiency"`
	StatementQuality   int `json:"statementQuality"`
	VisaRisk           int `json:"visaRisk"`
}

// Clamp returns a copy with every dimension clamped to [0,100].
func (s ReviewScores) Clamp() ReviewScores {
	return ReviewScores{
		Academics:          clampScore(s.Academics),
		EnglishProficiency: clampScore(s.EnglishProficiency),
		StatementQuality:   clampScore(s.StatementQuality),
		VisaRisk:           clampScore(s.VisaRisk),
	}
}

func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// ScoringConfig is a university's rubric: a percentage weight per
// dimension. Weights are expected to sum to 100 but this is not enforced;
// callers that care can check WeightSum.
type ScoringConfig struct {
	UniversityID       string `json:"universityId"`
	Academics          int    `json:"academics"`
	EnglishProficiency int    `json:"englishProficiency"`
	StatementQuality   int    `json:"statementQuality"`
	VisaRisk           int    `json:"visaRisk"`
}

// WeightSum returns the sum of the four weights. 100 means a score can
// top out at 100; anything else skews the total accordingly.
func (c ScoringConfig) WeightSum() int {
	return c.Academics + c.EnglishProficiency + c.StatementQuality + c.VisaRisk
}

// ReviewFeedback holds the four free-text feedback categories, each a
// list of lines.
type ReviewFeedback struct {
	Strengths    []string `json:"strengths,omitempty"`
	Weaknesses   []string `json:"weaknesses,omitempty"`
	Conditions   []string `json:"conditions,omitempty"`
	VisaConcerns []string `json:"visaConcerns,omitempty"`
}

// ApplicationReview aggregates a reviewer's scores, feedback and decision
// for one application+stage pair. Created on first submission, updated in
// place on resubmission; the latest review by creation time is
// authoritative. Never deleted in normal flow.
type ApplicationReview struct {
	ID            string         `json:"id"`
	ApplicationID string         `json:"applicationId"`
	Stage         string         `json:"stage"`
	ReviewerID    string         `json:"reviewerId"`
	Scores        ReviewScores   `json:"scores"`
	Total         int            `json:"total"`
	Feedback      ReviewFeedback `json:"feedback"`
	Decision      ReviewDecision `json:"decision"`
	CreatedAt     string         `json:"createdAt"`
	UpdatedAt     string         `json:"updatedAt"`
}
