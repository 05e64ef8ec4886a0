package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReviewScores_Clamp(t *testing.T) {
	tests := []struct {
		name     string
		in       ReviewScores
		expected ReviewScores
	}{
		{
			name:     "within range untouched",
			in:       ReviewScores{Academics: 80, EnglishProficiency: 70, StatementQuality: 60, VisaRisk: 90},
			expected: ReviewScores{Academics: 80, EnglishProficiency: 70, StatementQuality: 60, VisaRisk: 90},
		},
		{
			name:     "negative clamped to zero",
			in:       ReviewScores{Academics: -5, EnglishProficiency: -100, StatementQuality: 0, VisaRisk: 50},
			expected: ReviewScores{Academics: 0, EnglishProficiency: 0, StatementQuality: 0, VisaRisk: 50},
		},
		{
			name:     "above range clamped to 100",
			in:       ReviewScores{Academics: 101, EnglishProficiency: 250, StatementQuality: 100, VisaRisk: 99},
			expected: ReviewScores{Academics: 100, EnglishProficiency: 100, StatementQuality: 100, VisaRisk: 99},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.in.Clamp())
		})
	}
}

func TestScoringConfig_WeightSum(t *testing.T) {
	cfg := ScoringConfig{Academics: 40, EnglishProficiency: 20, StatementQuality: 20, VisaRisk: 20}
	assert.Equal(t, 100, cfg.WeightSum())

	over := ScoringConfig{Academics: 50, EnglishProficiency: 20, StatementQuality: 20, VisaRisk: 20}
	assert.Equal(t, 110, over.WeightSum())

	assert.Equal(t, 0, ScoringConfig{}.WeightSum())
}

func TestIsReviewDecision(t *testing.T) {
	for _, d := range []string{"approve", "reject", "request_changes"} {
		assert.True(t, IsReviewDecision(d))
	}
	for _, d := range []string{"", "Approve", "approved", "defer"} {
		assert.False(t, IsReviewDecision(d))
	}
}
