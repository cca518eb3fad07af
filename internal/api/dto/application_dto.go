package dto

import (
	"time"

	"github.com/spec-kit/job-tracker/internal/domain"
)

// ApplyRequest payload for submitting an application.
type ApplyRequest struct {
	JobID       string  `json:"job_id" validate:"required,uuid"`
	CoverLetter *string `json:"cover_letter"`
	ResumeURL   *string `json:"resume_url" validate:"omitempty,url"`
}

// UpdateStatusRequest payload for an approver decision.
type UpdateStatusRequest struct {
	Status          string  `json:"status" validate:"required,oneof=received interview selected rejected"`
	RejectionReason *string `json:"rejection_reason"`
}

// ApplicationResponse represents an application row.
type ApplicationResponse struct {
	ID              string                   `json:"id"`
	JobID           string                   `json:"job_id"`
	ApplicantID     string                   `json:"applicant_id"`
	Status          domain.ApplicationStatus `json:"status"`
	ResumeURL       *string                  `json:"resume_url"`
	CoverLetter     *string                  `json:"cover_letter"`
	ApproverID      *string                  `json:"approver_id"`
	RejectionReason *string                  `json:"rejection_reason"`
	CreatedAt       time.Time                `json:"created_at"`
	UpdatedAt       time.Time                `json:"updated_at"`
}

// MyApplicationResponse is an application with the job it targets.
type MyApplicationResponse struct {
	ApplicationResponse
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	Location      *string `json:"location"`
	PublisherName string  `json:"publisher_name"`
}

// JobApplicationResponse is an application with its applicant.
type JobApplicationResponse struct {
	ApplicationResponse
	ApplicantName  string `json:"applicant_name"`
	ApplicantEmail string `json:"applicant_email"`
}

// NewApplicationResponse maps a domain application.
func NewApplicationResponse(app *domain.Application) ApplicationResponse {
	return ApplicationResponse{
		ID:              app.ID,
		JobID:           app.JobID,
		ApplicantID:     app.ApplicantID,
		Status:          app.Status,
		ResumeURL:       app.ResumeURL,
		CoverLetter:     app.CoverLetter,
		ApproverID:      app.ApproverID,
		RejectionReason: app.RejectionReason,
		CreatedAt:       app.CreatedAt,
		UpdatedAt:       app.UpdatedAt,
	}
}

// NewMyApplicationResponses maps the applicant view.
func NewMyApplicationResponses(apps []domain.ApplicantApplication) []MyApplicationResponse {
	out := make([]MyApplicationResponse, 0, len(apps))
	for i := range apps {
		out = append(out, MyApplicationResponse{
			ApplicationResponse: NewApplicationResponse(&apps[i].Application),
			Title:               apps[i].JobTitle,
			Description:         apps[i].JobDescription,
			Location:            apps[i].JobLocation,
			PublisherName:       apps[i].PublisherName,
		})
	}
	return out
}

// NewJobApplicationResponses maps the publisher view.
func NewJobApplicationResponses(apps []domain.JobApplication) []JobApplicationResponse {
	out := make([]JobApplicationResponse, 0, len(apps))
	for i := range apps {
		out = append(out, JobApplicationResponse{
			ApplicationResponse: NewApplicationResponse(&apps[i].Application),
			ApplicantName:       apps[i].ApplicantName,
			ApplicantEmail:      apps[i].ApplicantEmail,
		})
	}
	return out
}
