package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/job-tracker/internal/domain"
	"github.com/spec-kit/job-tracker/internal/events"
	"github.com/spec-kit/job-tracker/internal/repository"
	apperrors "github.com/spec-kit/job-tracker/pkg/util/errorutil"
)

const msgNotJobOwner = "You can only modify your own jobs"

// JobService coordinates posting workflows.
type JobService struct {
	jobs       repository.JobRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// JobDependencies bundles collaborators for the job service.
type JobDependencies struct {
	JobRepo    repository.JobRepository
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewJobService constructs the service.
func NewJobService(deps JobDependencies) *JobService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &JobService{jobs: deps.JobRepo, dispatcher: deps.Dispatcher, logger: logger}
}

// Create posts a new open job owned by publisherID.
func (s *JobService) Create(ctx context.Context, publisherID string, fields domain.JobFields) (*domain.Job, error) {
	fields = normalizeJobFields(fields)
	job := &domain.Job{
		PublisherID: publisherID,
		Title:       fields.Title,
		Description: fields.Description,
		Location:    fields.Location,
		SalaryRange: fields.SalaryRange,
		Status:      domain.JobStatusOpen,
	}
	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, storeError(err)
	}
	publish(ctx, s.dispatcher, s.logger, events.Event{
		Type:       events.EventJobCreated,
		ResourceID: job.ID,
		ActorID:    publisherID,
	})
	return job, nil
}

// ListOpen returns open jobs, newest first.
func (s *JobService) ListOpen(ctx context.Context) ([]domain.Job, error) {
	jobs, err := s.jobs.ListOpen(ctx)
	if err != nil {
		return nil, storeError(err)
	}
	return jobs, nil
}

// Get returns a job in any status.
func (s *JobService) Get(ctx context.Context, id string) (*domain.Job, error) {
	job, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, apperrors.NewNotFound("Job", nil)
		}
		return nil, storeError(err)
	}
	return job, nil
}

// Update overwrites the editable fields of a job owned by publisherID.
func (s *JobService) Update(ctx context.Context, id, publisherID string, fields domain.JobFields) (*domain.Job, error) {
	if _, err := s.ownedJob(ctx, id, publisherID); err != nil {
		return nil, err
	}
	job, err := s.jobs.UpdateFields(ctx, id, normalizeJobFields(fields))
	if err != nil {
		if isNotFound(err) {
			return nil, apperrors.NewNotFound("Job", nil)
		}
		return nil, storeError(err)
	}
	publish(ctx, s.dispatcher, s.logger, events.Event{
		Type:       events.EventJobUpdated,
		ResourceID: job.ID,
		ActorID:    publisherID,
	})
	return job, nil
}

// Close marks a job owned by publisherID as closed. Closing a closed job is a no-op.
func (s *JobService) Close(ctx context.Context, id, publisherID string) (*domain.Job, error) {
	current, err := s.ownedJob(ctx, id, publisherID)
	if err != nil {
		return nil, err
	}
	job, err := s.jobs.Close(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, apperrors.NewNotFound("Job", nil)
		}
		return nil, storeError(err)
	}
	if current.IsOpen() {
		publish(ctx, s.dispatcher, s.logger, events.Event{
			Type:       events.EventJobClosed,
			ResourceID: job.ID,
			ActorID:    publisherID,
		})
	}
	return job, nil
}

func (s *JobService) ownedJob(ctx context.Context, id, publisherID string) (*domain.Job, error) {
	job, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if job.PublisherID != publisherID {
		return nil, apperrors.NewForbidden(msgNotJobOwner)
	}
	return job, nil
}

func normalizeJobFields(fields domain.JobFields) domain.JobFields {
	fields.Title = strings.TrimSpace(fields.Title)
	fields.Description = strings.TrimSpace(fields.Description)
	return fields
}

func publish(ctx context.Context, dispatcher events.Dispatcher, logger *zap.Logger, event events.Event) {
	if dispatcher == nil {
		return
	}
	if err := dispatcher.Publish(ctx, event); err != nil {
		logger.Warn("event handler failed", zap.String("type", string(event.Type)), zap.Error(err))
	}
}
