package domain

import "time"

// ApplicationStatus enumerates adjudication states.
type ApplicationStatus string

const (
	ApplicationStatusPending   ApplicationStatus = "pending"
	ApplicationStatusReceived  ApplicationStatus = "received"
	ApplicationStatusReviewed  ApplicationStatus = "reviewed"
	ApplicationStatusInterview ApplicationStatus = "interview"
	ApplicationStatusSelected  ApplicationStatus = "selected"
	ApplicationStatusRejected  ApplicationStatus = "rejected"
)

// Valid reports whether s can be stored.
func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationStatusPending, ApplicationStatusReceived, ApplicationStatusReviewed,
		ApplicationStatusInterview, ApplicationStatusSelected, ApplicationStatusRejected:
		return true
	default:
		return false
	}
}

// IsDecision reports whether an approver may set s. Pending is never re-entered and
// reviewed is storable but not offered as a decision.
func (s ApplicationStatus) IsDecision() bool {
	switch s {
	case ApplicationStatusReceived, ApplicationStatusInterview, ApplicationStatusSelected, ApplicationStatusRejected:
		return true
	default:
		return false
	}
}

// CanTransition reports whether an approver decision may move an application from -> to.
// Decisions may be revised any number of times.
func CanTransition(from, to ApplicationStatus) bool {
	if !from.Valid() {
		return false
	}
	return to.IsDecision()
}

// Application joins an applicant to a job.
type Application struct {
	ID              string
	JobID           string
	ApplicantID     string
	Status          ApplicationStatus
	ResumeURL       *string
	CoverLetter     *string
	ApproverID      *string
	RejectionReason *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ApplicantApplication is an application as seen by its applicant.
type ApplicantApplication struct {
	Application
	JobTitle       string
	JobDescription string
	JobLocation    *string
	PublisherName  string
}

// JobApplication is an application as seen by the job's publisher.
type JobApplication struct {
	Application
	ApplicantName  string
	ApplicantEmail string
}
