package model

import "fmt"

const (
	StatusPending     = "pending"
	StatusUnderReview = "under_review"
	StatusApproved    = "approved"
	StatusRejected    = "rejected"
	StatusWaitlist    = "waitlist"
	StatusCancelled   = "cancelled"
)

// RegistrationStatuses is the closed set accepted by status transitions.
var RegistrationStatuses = []string{
	StatusPending,
	StatusUnderReview,
	StatusApproved,
	StatusRejected,
	StatusWaitlist,
	StatusCancelled,
}

func IsRegistrationStatus(s string) bool {
	for _, st := range RegistrationStatuses {
		if st == s {
			return true
		}
	}
	return false
}

const (
	EnrollmentRegistered = "registered"
	EnrollmentCancelled  = "cancelled"

	SessionPublished = "published"
	ActivityActive   = "active"
)

// ParentKind names the schedulable offering an enrollment points at.
type ParentKind string

const (
	KindSession  ParentKind = "session"
	KindActivity ParentKind = "activity"
)

func (k ParentKind) Valid() bool {
	return k == KindSession || k == KindActivity
}

// EligibleStatus is the parent status that admits new enrollments.
func (k ParentKind) EligibleStatus() string {
	if k == KindActivity {
		return ActivityActive
	}
	return SessionPublished
}

func ParseParentKind(s string) (ParentKind, error) {
	k := ParentKind(s)
	if !k.Valid() {
		return "", fmt.Errorf("unknown parent kind %q", s)
	}
	return k, nil
}

// ParentRef identifies one session or activity.
type ParentRef struct {
	Kind ParentKind `json:"kind"`
	ID   int64      `json:"id"`
}
