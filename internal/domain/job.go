package domain

import "time"

// JobStatus enumerates posting states. open -> closed is one-way.
type JobStatus string

const (
	JobStatusOpen   JobStatus = "open"
	JobStatusClosed JobStatus = "closed"
)

// Job is a posting owned by a publisher.
type Job struct {
	ID          string
	PublisherID string
	Title       string
	Description string
	Location    *string
	SalaryRange *string
	Status      JobStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// PublisherName is populated by read queries that join users.
	PublisherName string
}

// IsOpen reports whether applications are accepted.
func (j *Job) IsOpen() bool {
	return j != nil && j.Status == JobStatusOpen
}

// JobFields are the publisher-editable attributes of a job.
type JobFields struct {
	Title       string
	Description string
	Location    *string
	SalaryRange *string
}
