package models

// Status is the lifecycle state of a submitted paper as reported by the
// backend. The wire format is an open string, but only four values are valid
// for a persisted paper; anything else renders through the AwaitingApproval
// fallback instead of failing.
type Status string

const (
	StatusPending     Status = "Pending"
	StatusUnderReview Status = "UnderReview"
	StatusAccepted    Status = "Accepted"
	StatusRejected    Status = "Rejected"
)

// Category is the visual class a status maps to.
type Category string

const (
	CategoryNeutral  Category = "neutral"
	CategoryInfo     Category = "info"
	CategoryPositive Category = "positive"
	CategoryNegative Category = "negative"
	CategoryWarning  Category = "warning"
)

// awaitingApprovalLabel is the display-only fallback for unrecognized
// status strings. It is never a valid persisted status.
const awaitingApprovalLabel = "Awaiting Approval"

// Known reports whether s is one of the four valid persisted values.
func (s Status) Known() bool {
	switch s {
	case StatusPending, StatusUnderReview, StatusAccepted, StatusRejected:
		return true
	}
	return false
}

// Label returns the human-readable label for s.
func (s Status) Label() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusUnderReview:
		return "Under Review"
	case StatusAccepted:
		return "Accepted"
	case StatusRejected:
		return "Rejected"
	}
	return awaitingApprovalLabel
}

// Category returns the visual category for s.
func (s Status) Category() Category {
	switch s {
	case StatusPending:
		return CategoryNeutral
	case StatusUnderReview:
		return CategoryInfo
	case StatusAccepted:
		return CategoryPositive
	case StatusRejected:
		return CategoryNegative
	}
	return CategoryWarning
}

// Reviewable reports whether a reviewer may select s when submitting a
// review. Reviewers pick from exactly these three values.
func (s Status) Reviewable() bool {
	return s == StatusUnderReview || s == StatusAccepted || s == StatusRejected
}

// Decided reports whether the paper has reached a final decision.
func (s Status) Decided() bool {
	return s == StatusAccepted || s == StatusRejected
}
