// Package memory provides in-process repositories that enforce the same uniqueness and
// referential constraints as the Postgres schema. Service and HTTP tests run against it.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/job-tracker/internal/domain"
	"github.com/spec-kit/job-tracker/internal/repository"
)

// Store holds users, jobs and applications behind one lock.
type Store struct {
	mu           sync.Mutex
	users        map[string]domain.User
	jobs         map[string]domain.Job
	applications map[string]domain.Application
	clock        time.Time
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		users:        make(map[string]domain.User),
		jobs:         make(map[string]domain.Job),
		applications: make(map[string]domain.Application),
		clock:        time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// tick returns strictly increasing timestamps so newest-first ordering is deterministic.
func (s *Store) tick() time.Time {
	s.clock = s.clock.Add(time.Millisecond)
	return s.clock
}

// Users returns the UserRepository view.
func (s *Store) Users() repository.UserRepository { return userRepo{s} }

// Jobs returns the JobRepository view.
func (s *Store) Jobs() repository.JobRepository { return jobRepo{s} }

// Applications returns the ApplicationRepository view.
func (s *Store) Applications() repository.ApplicationRepository { return applicationRepo{s} }

// UserCount reports stored accounts.
func (s *Store) UserCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}

// ApplicationCount reports stored applications.
func (s *Store) ApplicationCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.applications)
}

type userRepo struct{ s *Store }

func (r userRepo) Create(_ context.Context, user *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.users {
		if existing.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	now := r.s.tick()
	user.ID = uuid.NewString()
	user.CreatedAt, user.UpdatedAt = now, now
	r.s.users[user.ID] = *user
	return nil
}

func (r userRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	user, ok := r.s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &user, nil
}

func (r userRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, user := range r.s.users {
		if user.Email == email {
			found := user
			return &found, nil
		}
	}
	return nil, repository.ErrNotFound
}

type jobRepo struct{ s *Store }

func (r jobRepo) Create(_ context.Context, job *domain.Job) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[job.PublisherID]; !ok {
		return repository.ErrForeignKey
	}
	now := r.s.tick()
	job.ID = uuid.NewString()
	job.CreatedAt, job.UpdatedAt = now, now
	r.s.jobs[job.ID] = *job
	return nil
}

func (r jobRepo) GetByID(_ context.Context, id string) (*domain.Job, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.joinedJob(id)
}

func (r jobRepo) ListOpen(_ context.Context) ([]domain.Job, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	result := make([]domain.Job, 0)
	for id, job := range r.s.jobs {
		if job.Status != domain.JobStatusOpen {
			continue
		}
		joined, err := r.s.joinedJob(id)
		if err != nil {
			return nil, err
		}
		result = append(result, *joined)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

func (r jobRepo) UpdateFields(_ context.Context, id string, fields domain.JobFields) (*domain.Job, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	job, ok := r.s.jobs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	job.Title = fields.Title
	job.Description = fields.Description
	job.Location = fields.Location
	job.SalaryRange = fields.SalaryRange
	job.UpdatedAt = r.s.tick()
	r.s.jobs[id] = job
	return r.s.joinedJob(id)
}

func (r jobRepo) Close(_ context.Context, id string) (*domain.Job, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	job, ok := r.s.jobs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	job.Status = domain.JobStatusClosed
	job.UpdatedAt = r.s.tick()
	r.s.jobs[id] = job
	return r.s.joinedJob(id)
}

func (s *Store) joinedJob(id string) (*domain.Job, error) {
	job, ok := s.jobs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	job.PublisherName = s.users[job.PublisherID].Name
	return &job, nil
}

type applicationRepo struct{ s *Store }

func (r applicationRepo) Create(_ context.Context, app *domain.Application) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.jobs[app.JobID]; !ok {
		return repository.ErrForeignKey
	}
	if _, ok := r.s.users[app.ApplicantID]; !ok {
		return repository.ErrForeignKey
	}
	for _, existing := range r.s.applications {
		if existing.JobID == app.JobID && existing.ApplicantID == app.ApplicantID {
			return repository.ErrDuplicate
		}
	}
	now := r.s.tick()
	app.ID = uuid.NewString()
	app.CreatedAt, app.UpdatedAt = now, now
	r.s.applications[app.ID] = *app
	return nil
}

func (r applicationRepo) GetByID(_ context.Context, id string) (*domain.Application, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	app, ok := r.s.applications[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &app, nil
}

func (r applicationRepo) FindByJobAndApplicant(_ context.Context, jobID, applicantID string) (*domain.Application, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, app := range r.s.applications {
		if app.JobID == jobID && app.ApplicantID == applicantID {
			found := app
			return &found, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r applicationRepo) ListByApplicant(_ context.Context, applicantID string) ([]domain.ApplicantApplication, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	result := make([]domain.ApplicantApplication, 0)
	for _, app := range r.s.applications {
		if app.ApplicantID != applicantID {
			continue
		}
		job := r.s.jobs[app.JobID]
		result = append(result, domain.ApplicantApplication{
			Application:    app,
			JobTitle:       job.Title,
			JobDescription: job.Description,
			JobLocation:    job.Location,
			PublisherName:  r.s.users[job.PublisherID].Name,
		})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

func (r applicationRepo) ListByJob(_ context.Context, jobID string) ([]domain.JobApplication, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	result := make([]domain.JobApplication, 0)
	for _, app := range r.s.applications {
		if app.JobID != jobID {
			continue
		}
		applicant := r.s.users[app.ApplicantID]
		result = append(result, domain.JobApplication{
			Application:    app,
			ApplicantName:  applicant.Name,
			ApplicantEmail: applicant.Email,
		})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

func (r applicationRepo) UpdateDecision(_ context.Context, id string, status domain.ApplicationStatus, approverID string, rejectionReason *string) (*domain.Application, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	app, ok := r.s.applications[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if _, ok := r.s.users[approverID]; !ok {
		return nil, repository.ErrForeignKey
	}
	approver := approverID
	app.Status = status
	app.ApproverID = &approver
	app.RejectionReason = rejectionReason
	app.UpdatedAt = r.s.tick()
	r.s.applications[id] = app
	return &app, nil
}
