package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsApplicationStatus(t *testing.T) {
	for _, s := range AllStatuses() {
		t.Run(string(s), func(t *testing.T) {
			assert.True(t, IsApplicationStatus(string(s)))
		})
	}

	invalid := []string{"", "Draft", "DRAFT", "offer", "unknown_status", "enrolled ", "cas", "visa_granted"}
	for _, s := range invalid {
		t.Run("invalid_"+s, func(t *testing.T) {
			assert.False(t, IsApplicationStatus(s))
		})
	}
}

func TestApplicationStatus_Progress(t *testing.T) {
	tests := []struct {
		status   ApplicationStatus
		expected int
	}{
		{StatusDraft, 0},
		{StatusSubmitted, 15},
		{StatusScreening, 30},
		{StatusConditionalOffer, 50},
		{StatusUnconditionalOffer, 65},
		{StatusCASLOA, 75},
		{StatusVisa, 85},
		{StatusEnrolled, 100},
		{StatusWithdrawn, 0},
		{StatusRejected, 0},
		{StatusDeferred, 0},
		{ApplicationStatus("unknown_status"), 0},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.status.Progress())
		})
	}

	// Every known status stays within [0,100].
	for _, s := range AllStatuses() {
		p := s.Progress()
		assert.GreaterOrEqual(t, p, 0)
		assert.LessOrEqual(t, p, 100)
	}
}

func TestApplicationStatus_Label(t *testing.T) {
	tests := []struct {
		status   ApplicationStatus
		expected string
	}{
		{StatusDraft, "Draft"},
		{StatusScreening, "Screening"},
		{StatusConditionalOffer, "Conditional Offer"},
		{StatusCASLOA, "CAS / LOA Issued"},
		{StatusVisa, "Visa Processing"},
		{StatusEnrolled, "Enrolled"},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.status.Label())
		})
	}

	// Unrecognized input is returned unchanged.
	assert.Equal(t, "unknown_status", ApplicationStatus("unknown_status").Label())
	assert.Equal(t, "", ApplicationStatus("").Label())
}

func TestApplicationStatus_IsTerminal(t *testing.T) {
	terminal := []ApplicationStatus{StatusEnrolled, StatusWithdrawn, StatusRejected, StatusDeferred}
	for _, s := range terminal {
		assert.True(t, s.IsTerminal(), "expected %s to be terminal", s)
	}

	inFlight := []ApplicationStatus{StatusDraft, StatusSubmitted, StatusScreening,
		StatusConditionalOffer, StatusUnconditionalOffer, StatusCASLOA, StatusVisa}
	for _, s := range inFlight {
		assert.False(t, s.IsTerminal(), "expected %s not to be terminal", s)
	}
}

func TestApplicationStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name    string
		from    ApplicationStatus
		to      ApplicationStatus
		allowed bool
	}{
		{"draft to submitted", StatusDraft, StatusSubmitted, true},
		{"draft to withdrawn", StatusDraft, StatusWithdrawn, true},
		{"draft to screening skips submission", StatusDraft, StatusScreening, false},
		{"submitted to screening", StatusSubmitted, StatusScreening, true},
		{"screening to conditional offer", StatusScreening, StatusConditionalOffer, true},
		{"screening to unconditional offer", StatusScreening, StatusUnconditionalOffer, true},
		{"conditional upgrade to unconditional", StatusConditionalOffer, StatusUnconditionalOffer, true},
		{"conditional offer to cas", StatusConditionalOffer, StatusCASLOA, true},
		{"cas to visa", StatusCASLOA, StatusVisa, true},
		{"visa to enrolled", StatusVisa, StatusEnrolled, true},
		{"visa to rejected", StatusVisa, StatusRejected, true},
		{"no backwards move", StatusVisa, StatusScreening, false},
		{"enrolled is terminal", StatusEnrolled, StatusScreening, false},
		{"withdrawn is terminal", StatusWithdrawn, StatusSubmitted, false},
		{"rejected is terminal", StatusRejected, StatusScreening, false},
		{"deferred is terminal", StatusDeferred, StatusSubmitted, false},
		{"unknown source", ApplicationStatus("unknown_status"), StatusSubmitted, false},
		{"unknown target", StatusDraft, ApplicationStatus("unknown_status"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestApplicationStatus_NextStatuses(t *testing.T) {
	// Terminal states have no outgoing edges.
	for _, s := range []ApplicationStatus{StatusEnrolled, StatusWithdrawn, StatusRejected, StatusDeferred} {
		assert.Nil(t, s.NextStatuses(), "terminal status %s must have no next statuses", s)
	}

	// Every in-flight state can be withdrawn.
	for _, s := range []ApplicationStatus{StatusDraft, StatusSubmitted, StatusScreening,
		StatusConditionalOffer, StatusUnconditionalOffer, StatusCASLOA, StatusVisa} {
		assert.Contains(t, s.NextStatuses(), StatusWithdrawn)
	}

	// NextStatuses returns a copy, not the shared table.
	next := StatusDraft.NextStatuses()
	next[0] = StatusEnrolled
	assert.Contains(t, StatusDraft.NextStatuses(), StatusSubmitted)
}

func TestApplicationStatus_Idempotence(t *testing.T) {
	for _, s := range AllStatuses() {
		assert.Equal(t, s.Progress(), s.Progress())
		assert.Equal(t, s.Label(), s.Label())
		assert.Equal(t, s.IsTerminal(), s.IsTerminal())
	}
}
