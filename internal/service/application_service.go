package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/spec-kit/job-tracker/internal/domain"
	"github.com/spec-kit/job-tracker/internal/events"
	"github.com/spec-kit/job-tracker/internal/repository"
	apperrors "github.com/spec-kit/job-tracker/pkg/util/errorutil"
)

const (
	msgJobNotOpen        = "Job not found or is closed"
	msgAlreadyApplied    = "You have already applied for this job"
	msgNotJobPublisher   = "You can only view applications for your own jobs"
	msgInvalidTransition = "status must be one of received, interview, selected, rejected"
)

// ApplicationService coordinates the application lifecycle.
type ApplicationService struct {
	jobs         repository.JobRepository
	applications repository.ApplicationRepository
	dispatcher   events.Dispatcher
	logger       *zap.Logger
}

// ApplicationDependencies bundles collaborators for the application service.
type ApplicationDependencies struct {
	JobRepo         repository.JobRepository
	ApplicationRepo repository.ApplicationRepository
	Dispatcher      events.Dispatcher
	Logger          *zap.Logger
}

// ApplyInput describes an application submission.
type ApplyInput struct {
	JobID       string
	CoverLetter *string
	ResumeURL   *string
}

// StatusDecision describes an approver decision.
type StatusDecision struct {
	Status          domain.ApplicationStatus
	RejectionReason *string
}

// NewApplicationService constructs the service.
func NewApplicationService(deps ApplicationDependencies) *ApplicationService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ApplicationService{
		jobs:         deps.JobRepo,
		applications: deps.ApplicationRepo,
		dispatcher:   deps.Dispatcher,
		logger:       logger,
	}
}

// Apply submits a pending application for an open job. Each applicant may apply to a job once.
func (s *ApplicationService) Apply(ctx context.Context, applicantID string, input ApplyInput) (*domain.Application, error) {
	job, err := s.jobs.GetByID(ctx, input.JobID)
	if err != nil && !isNotFound(err) {
		return nil, storeError(err)
	}
	if !job.IsOpen() {
		return nil, apperrors.NewNotFoundMessage(msgJobNotOpen)
	}

	if _, err := s.applications.FindByJobAndApplicant(ctx, input.JobID, applicantID); err == nil {
		return nil, apperrors.NewConflict(msgAlreadyApplied, nil)
	} else if !isNotFound(err) {
		return nil, storeError(err)
	}

	app := &domain.Application{
		JobID:       input.JobID,
		ApplicantID: applicantID,
		Status:      domain.ApplicationStatusPending,
		CoverLetter: input.CoverLetter,
		ResumeURL:   input.ResumeURL,
	}
	if err := s.applications.Create(ctx, app); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return nil, apperrors.NewConflict(msgAlreadyApplied, nil)
		case errors.Is(err, repository.ErrForeignKey):
			return nil, apperrors.NewNotFoundMessage(msgJobNotOpen)
		default:
			return nil, storeError(err)
		}
	}

	publish(ctx, s.dispatcher, s.logger, events.Event{
		Type:       events.EventApplicationSubmitted,
		ResourceID: app.ID,
		ActorID:    applicantID,
		Payload:    events.ApplicationSubmittedPayload{JobID: app.JobID},
	})
	return app, nil
}

// ListMine returns the applicant's applications with job details, newest first.
func (s *ApplicationService) ListMine(ctx context.Context, applicantID string) ([]domain.ApplicantApplication, error) {
	apps, err := s.applications.ListByApplicant(ctx, applicantID)
	if err != nil {
		return nil, storeError(err)
	}
	return apps, nil
}

// ListForJob returns a job's applications to its publisher. A missing job is reported as
// Forbidden so job existence is not revealed.
func (s *ApplicationService) ListForJob(ctx context.Context, jobID, publisherID string) ([]domain.JobApplication, error) {
	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil && !isNotFound(err) {
		return nil, storeError(err)
	}
	if job == nil || job.PublisherID != publisherID {
		return nil, apperrors.NewForbidden(msgNotJobPublisher)
	}

	apps, err := s.applications.ListByJob(ctx, jobID)
	if err != nil {
		return nil, storeError(err)
	}
	return apps, nil
}

// UpdateStatus records an approver decision. The approver and rejection reason are
// overwritten on every decision; an absent reason clears the stored one.
func (s *ApplicationService) UpdateStatus(ctx context.Context, applicationID, approverID string, decision StatusDecision) (*domain.Application, error) {
	if !decision.Status.IsDecision() {
		return nil, apperrors.NewValidationError("invalid status", map[string]any{"status": msgInvalidTransition})
	}

	current, err := s.applications.GetByID(ctx, applicationID)
	if err != nil {
		if isNotFound(err) {
			return nil, apperrors.NewNotFound("Application", nil)
		}
		return nil, storeError(err)
	}
	if !domain.CanTransition(current.Status, decision.Status) {
		return nil, apperrors.NewValidationError("invalid status", map[string]any{"status": msgInvalidTransition})
	}

	updated, err := s.applications.UpdateDecision(ctx, applicationID, decision.Status, approverID, decision.RejectionReason)
	if err != nil {
		if isNotFound(err) {
			return nil, apperrors.NewNotFound("Application", nil)
		}
		return nil, storeError(err)
	}

	publish(ctx, s.dispatcher, s.logger, events.Event{
		Type:       events.EventApplicationStatusChanged,
		ResourceID: updated.ID,
		ActorID:    approverID,
		Payload: events.ApplicationStatusChangedPayload{
			JobID:     updated.JobID,
			OldStatus: current.Status,
			NewStatus: updated.Status,
		},
	})
	return updated, nil
}
