package dto

import (
	"time"

	"github.com/spec-kit/job-tracker/internal/domain"
)

// JobRequest payload for creating and updating jobs.
type JobRequest struct {
	Title       string  `json:"title" validate:"required"`
	Description string  `json:"description" validate:"required"`
	Location    *string `json:"location"`
	SalaryRange *string `json:"salary_range"`
}

// Fields converts the payload into editable job fields.
func (r JobRequest) Fields() domain.JobFields {
	return domain.JobFields{
		Title:       r.Title,
		Description: r.Description,
		Location:    r.Location,
		SalaryRange: r.SalaryRange,
	}
}

// JobResponse represents a posting.
type JobResponse struct {
	ID            string           `json:"id"`
	PublisherID   string           `json:"publisher_id"`
	PublisherName string           `json:"publisher_name,omitempty"`
	Title         string           `json:"title"`
	Description   string           `json:"description"`
	Location      *string          `json:"location"`
	SalaryRange   *string          `json:"salary_range"`
	Status        domain.JobStatus `json:"status"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// NewJobResponse maps a domain job.
func NewJobResponse(job *domain.Job) JobResponse {
	return JobResponse{
		ID:            job.ID,
		PublisherID:   job.PublisherID,
		PublisherName: job.PublisherName,
		Title:         job.Title,
		Description:   job.Description,
		Location:      job.Location,
		SalaryRange:   job.SalaryRange,
		Status:        job.Status,
		CreatedAt:     job.CreatedAt,
		UpdatedAt:     job.UpdatedAt,
	}
}

// NewJobResponses maps a list of jobs.
func NewJobResponses(jobs []domain.Job) []JobResponse {
	out := make([]JobResponse, 0, len(jobs))
	for i := range jobs {
		out = append(out, NewJobResponse(&jobs[i]))
	}
	return out
}
