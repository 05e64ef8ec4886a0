package models

// ApplicationStatus is the admission pipeline status of an application.
// The set is closed; anything outside it is treated as unknown, never as
// an error.
type ApplicationStatus string

const (
	StatusDraft              ApplicationStatus = "draft"
	StatusSubmitted          ApplicationStatus = "submitted"
	StatusScreening          ApplicationStatus = "screening"
	StatusConditionalOffer   ApplicationStatus = "conditional_offer"
	StatusUnconditionalOffer ApplicationStatus = "unconditional_offer"
	StatusCASLOA             ApplicationStatus = "cas_loa"
	StatusVisa               ApplicationStatus = "visa"
	StatusEnrolled           ApplicationStatus = "enrolled"
	StatusWithdrawn          ApplicationStatus = "withdrawn"
	StatusRejected           ApplicationStatus = "rejected"
	StatusDeferred           ApplicationStatus = "deferred"
)

// AllStatuses returns every valid status value.
func AllStatuses() []ApplicationStatus {
	return []ApplicationStatus{
		StatusDraft,
		StatusSubmitted,
		StatusScreening,
		StatusConditionalOffer,
		StatusUnconditionalOffer,
		StatusCASLOA,
		StatusVisa,
		StatusEnrolled,
		StatusWithdrawn,
		StatusRejected,
		StatusDeferred,
	}
}

// IsApplicationStatus reports whether value is a member of the closed
// status set. Unknown strings are simply invalid.
func IsApplicationStatus(value string) bool {
	switch ApplicationStatus(value) {
	case StatusDraft, StatusSubmitted, StatusScreening,
		StatusConditionalOffer, StatusUnconditionalOffer,
		StatusCASLOA, StatusVisa, StatusEnrolled,
		StatusWithdrawn, StatusRejected, StatusDeferred:
		return true
	default:
		return false
	}
}

func (s ApplicationStatus) String() string {
	return string(s)
}

// IsValid reports whether s is a member of the closed status set.
func (s ApplicationStatus) IsValid() bool {
	return IsApplicationStatus(string(s))
}

// Label returns the display label for the status. Unrecognized input is
// returned unchanged so the caller always has something to render.
func (s ApplicationStatus) Label() string {
	switch s {
	case StatusDraft:
		return "Draft"
	case StatusSubmitted:
		return "Submitted"
	case StatusScreening:
		return "Screening"
	case StatusConditionalOffer:
		return "Conditional Offer"
	case StatusUnconditionalOffer:
		return "Unconditional Offer"
	case StatusCASLOA:
		return "CAS / LOA Issued"
	case StatusVisa:
		return "Visa Processing"
	case StatusEnrolled:
		return "Enrolled"
	case StatusWithdrawn:
		return "Withdrawn"
	case StatusRejected:
		return "Rejected"
	case StatusDeferred:
		return "Deferred"
	default:
		return string(s)
	}
}

// Progress returns the pipeline progress percentage for UI display.
// Terminal non-success statuses report 0 regardless of how far the
// application advanced before termination. Unknown statuses report 0.
func (s ApplicationStatus) Progress() int {
	switch s {
	case StatusDraft:
		return 0
	case StatusSubmitted:
		return 15
	case StatusScreening:
		return 30
	case StatusConditionalOffer:
		return 50
	case StatusUnconditionalOffer:
		return 65
	case StatusCASLOA:
		return 75
	case StatusVisa:
		return 85
	case StatusEnrolled:
		return 100
	default:
		return 0
	}
}

// IsTerminal reports whether no further transition is defined from s.
// Enrolled is the sole successful terminal state.
func (s ApplicationStatus) IsTerminal() bool {
	switch s {
	case StatusEnrolled, StatusWithdrawn, StatusRejected, StatusDeferred:
		return true
	default:
		return false
	}
}

// transitions is the legal status transition table. Terminal states have
// no outgoing edges. Withdrawal is allowed from any in-flight state;
// rejection and deferral once the application has been submitted.
var transitions = map[ApplicationStatus][]ApplicationStatus{
	StatusDraft: {
		StatusSubmitted,
		StatusWithdrawn,
	},
	StatusSubmitted: {
		StatusScreening,
		StatusWithdrawn,
		StatusRejected,
		StatusDeferred,
	},
	StatusScreening: {
		StatusConditionalOffer,
		StatusUnconditionalOffer,
		StatusWithdrawn,
		StatusRejected,
		StatusDeferred,
	},
	StatusConditionalOffer: {
		StatusUnconditionalOffer,
		StatusCASLOA,
		StatusWithdrawn,
		StatusRejected,
		StatusDeferred,
	},
	StatusUnconditionalOffer: {
		StatusCASLOA,
		StatusWithdrawn,
		StatusRejected,
		StatusDeferred,
	},
	StatusCASLOA: {
		StatusVisa,
		StatusWithdrawn,
		StatusRejected,
		StatusDeferred,
	},
	StatusVisa: {
		StatusEnrolled,
		StatusWithdrawn,
		StatusRejected,
		StatusDeferred,
	},
}

// CanTransitionTo reports whether moving from s to next is legal.
// Unknown statuses on either side are never legal.
func (s ApplicationStatus) CanTransitionTo(next ApplicationStatus) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// NextStatuses returns the legal statuses reachable from s. Terminal and
// unknown statuses return nil.
func (s ApplicationStatus) NextStatuses() []ApplicationStatus {
	allowed := transitions[s]
	if len(allowed) == 0 {
		return nil
	}
	out := make([]ApplicationStatus, len(allowed))
	copy(out, allowed)
	return out
}
