package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/job-tracker/internal/config"
	"github.com/spec-kit/job-tracker/internal/domain"
	"github.com/spec-kit/job-tracker/internal/events"
	"github.com/spec-kit/job-tracker/internal/repository"
	"github.com/spec-kit/job-tracker/internal/repository/memory"
	apperrors "github.com/spec-kit/job-tracker/pkg/util/errorutil"
)

type fixture struct {
	store        *memory.Store
	auth         *AuthService
	jobs         *JobService
	applications *ApplicationService
	recorder     *eventRecorder
}

type eventRecorder struct {
	mu     sync.Mutex
	events []events.Event
}

func (r *eventRecorder) record(_ context.Context, e events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *eventRecorder) types() []events.EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]events.EventType, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}

func testConfig() config.Config {
	return config.Config{Auth: config.AuthConfig{
		JWTSecret:             "test-secret",
		AccessTokenTTLMinutes: 60,
		BcryptCost:            bcrypt.MinCost,
	}}
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	dispatcher := events.NewInMemoryDispatcher()
	recorder := &eventRecorder{}
	for _, eventType := range []events.EventType{
		events.EventJobCreated, events.EventJobUpdated, events.EventJobClosed,
		events.EventApplicationSubmitted, events.EventApplicationStatusChanged,
	} {
		dispatcher.Subscribe(eventType, recorder.record)
	}

	return &fixture{
		store: store,
		auth:  NewAuthService(testConfig(), AuthDependencies{UserRepo: store.Users()}),
		jobs:  NewJobService(JobDependencies{JobRepo: store.Jobs(), Dispatcher: dispatcher}),
		applications: NewApplicationService(ApplicationDependencies{
			JobRepo:         store.Jobs(),
			ApplicationRepo: store.Applications(),
			Dispatcher:      dispatcher,
		}),
		recorder: recorder,
	}
}

func (f *fixture) register(t *testing.T, email string, role domain.Role) *domain.User {
	t.Helper()
	user, _, err := f.auth.Register(context.Background(), RegisterInput{
		Email:    email,
		Password: "secret123",
		Name:     string(role) + " user",
		Role:     role,
	})
	require.NoError(t, err)
	return user
}

func (f *fixture) openJob(t *testing.T, publisherID string) *domain.Job {
	t.Helper()
	job, err := f.jobs.Create(context.Background(), publisherID, domain.JobFields{
		Title:       "Backend Engineer",
		Description: "Build APIs",
	})
	require.NoError(t, err)
	return job
}

func strPtr(s string) *string { return &s }

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	f := newFixture(t)
	f.register(t, "p@example.com", domain.RolePublisher)

	_, _, err := f.auth.Register(context.Background(), RegisterInput{
		Email: "p@example.com", Password: "another1", Name: "Other", Role: domain.RoleApplicant,
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeConflict))
	assert.Equal(t, "Email already registered", apperrors.ToDomainError(err).Message)
	assert.Equal(t, 400, apperrors.ToDomainError(err).HTTPStatus)
	assert.Equal(t, 1, f.store.UserCount())
}

type blindUserRepo struct {
	repository.UserRepository
}

func (blindUserRepo) GetByEmail(context.Context, string) (*domain.User, error) {
	return nil, repository.ErrNotFound
}

func TestRegisterTranslatesStoreUniqueViolation(t *testing.T) {
	store := memory.NewStore()
	svc := NewAuthService(testConfig(), AuthDependencies{UserRepo: blindUserRepo{store.Users()}})
	input := RegisterInput{Email: "race@example.com", Password: "secret123", Name: "Racer", Role: domain.RoleApplicant}

	_, _, err := svc.Register(context.Background(), input)
	require.NoError(t, err)

	_, _, err = svc.Register(context.Background(), input)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeConflict))
	assert.Equal(t, 1, store.UserCount())
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	f := newFixture(t)
	_, _, err := f.auth.Register(context.Background(), RegisterInput{
		Email: "x@example.com", Password: "secret123", Name: "X", Role: domain.Role("admin"),
	})
	assert.True(t, apperrors.IsCode(err, apperrors.CodeValidation))
}

func TestLoginFailsUniformly(t *testing.T) {
	f := newFixture(t)
	f.register(t, "a@example.com", domain.RoleApplicant)

	_, _, unknownErr := f.auth.Login(context.Background(), "nobody@example.com", "secret123")
	_, _, wrongErr := f.auth.Login(context.Background(), "a@example.com", "wrong-password")

	for _, err := range []error{unknownErr, wrongErr} {
		require.Error(t, err)
		assert.True(t, apperrors.IsCode(err, apperrors.CodeInvalidCredentials))
		assert.Equal(t, "Invalid email or password", apperrors.ToDomainError(err).Message)
	}
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	f := newFixture(t)
	registered := f.register(t, "r@example.com", domain.RoleApprover)

	user, token, err := f.auth.Login(context.Background(), "r@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)

	identity, err := f.auth.TokenManager().Verify(token.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, identity.UserID)
	assert.Equal(t, domain.RoleApprover, identity.Role)
	assert.Equal(t, "r@example.com", identity.Email)
}

func TestOnlyOwnerMutatesJob(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.register(t, "owner@example.com", domain.RolePublisher)
	other := f.register(t, "other@example.com", domain.RolePublisher)
	job := f.openJob(t, owner.ID)

	fields := domain.JobFields{Title: "Changed", Description: "Changed", Location: strPtr("Remote")}

	_, err := f.jobs.Update(ctx, job.ID, other.ID, fields)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeForbidden))
	_, err = f.jobs.Close(ctx, job.ID, other.ID)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeForbidden))

	_, err = f.jobs.Update(ctx, "missing", owner.ID, fields)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))
	_, err = f.jobs.Close(ctx, "missing", owner.ID)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))

	updated, err := f.jobs.Update(ctx, job.ID, owner.ID, fields)
	require.NoError(t, err)
	assert.Equal(t, "Changed", updated.Title)
	require.NotNil(t, updated.Location)
	assert.Equal(t, "Remote", *updated.Location)
	assert.Equal(t, domain.JobStatusOpen, updated.Status)
	assert.Equal(t, "publisher user", updated.PublisherName)

	closed, err := f.jobs.Close(ctx, job.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusClosed, closed.Status)

	again, err := f.jobs.Close(ctx, job.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusClosed, again.Status)

	assert.Equal(t, []events.EventType{
		events.EventJobCreated, events.EventJobUpdated, events.EventJobClosed,
	}, f.recorder.types())
}

func TestListOpenHidesClosedJobsButGetReturnsThem(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.register(t, "owner@example.com", domain.RolePublisher)
	first := f.openJob(t, owner.ID)
	second := f.openJob(t, owner.ID)
	third := f.openJob(t, owner.ID)

	_, err := f.jobs.Close(ctx, second.ID, owner.ID)
	require.NoError(t, err)

	open, err := f.jobs.ListOpen(ctx)
	require.NoError(t, err)
	require.Len(t, open, 2)
	assert.Equal(t, third.ID, open[0].ID)
	assert.Equal(t, first.ID, open[1].ID)

	got, err := f.jobs.Get(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusClosed, got.Status)

	_, err = f.jobs.Get(ctx, "missing")
	assert.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))
}

func TestApplyToClosedOrMissingJob(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	publisher := f.register(t, "p@example.com", domain.RolePublisher)
	applicant := f.register(t, "a@example.com", domain.RoleApplicant)
	job := f.openJob(t, publisher.ID)

	_, err := f.jobs.Close(ctx, job.ID, publisher.ID)
	require.NoError(t, err)

	for _, jobID := range []string{job.ID, "missing"} {
		_, err := f.applications.Apply(ctx, applicant.ID, ApplyInput{JobID: jobID})
		require.Error(t, err)
		assert.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))
		assert.Equal(t, "Job not found or is closed", apperrors.ToDomainError(err).Message)
	}
	assert.Zero(t, f.store.ApplicationCount())
}

func TestApplyIsPermanentlyUnique(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	publisher := f.register(t, "p@example.com", domain.RolePublisher)
	applicant := f.register(t, "a@example.com", domain.RoleApplicant)
	approver := f.register(t, "r@example.com", domain.RoleApprover)
	job := f.openJob(t, publisher.ID)

	app, err := f.applications.Apply(ctx, applicant.ID, ApplyInput{JobID: job.ID, CoverLetter: strPtr("hello")})
	require.NoError(t, err)
	assert.Equal(t, domain.ApplicationStatusPending, app.Status)

	_, err = f.applications.UpdateStatus(ctx, app.ID, approver.ID, StatusDecision{
		Status: domain.ApplicationStatusRejected, RejectionReason: strPtr("insufficient experience"),
	})
	require.NoError(t, err)

	_, err = f.applications.Apply(ctx, applicant.ID, ApplyInput{JobID: job.ID})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeConflict))
	assert.Equal(t, "You have already applied for this job", apperrors.ToDomainError(err).Message)
	assert.Equal(t, 1, f.store.ApplicationCount())
}

type blindApplicationRepo struct {
	repository.ApplicationRepository
}

func (blindApplicationRepo) FindByJobAndApplicant(context.Context, string, string) (*domain.Application, error) {
	return nil, repository.ErrNotFound
}

func TestApplyTranslatesStoreUniqueViolation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	publisher := f.register(t, "p@example.com", domain.RolePublisher)
	applicant := f.register(t, "a@example.com", domain.RoleApplicant)
	job := f.openJob(t, publisher.ID)

	svc := NewApplicationService(ApplicationDependencies{
		JobRepo:         f.store.Jobs(),
		ApplicationRepo: blindApplicationRepo{f.store.Applications()},
	})

	_, err := svc.Apply(ctx, applicant.ID, ApplyInput{JobID: job.ID})
	require.NoError(t, err)

	_, err = svc.Apply(ctx, applicant.ID, ApplyInput{JobID: job.ID})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeConflict))
	assert.False(t, apperrors.IsCode(err, apperrors.CodeStoreUnavailable))
	assert.Equal(t, 1, f.store.ApplicationCount())
}

func TestConcurrentDuplicateApplicationsYieldOneRow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	publisher := f.register(t, "p@example.com", domain.RolePublisher)
	applicant := f.register(t, "a@example.com", domain.RoleApplicant)
	job := f.openJob(t, publisher.ID)

	const attempts = 8
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.applications.Apply(ctx, applicant.ID, ApplyInput{JobID: job.ID})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.True(t, apperrors.IsCode(err, apperrors.CodeConflict), "unexpected error %v", err)
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, f.store.ApplicationCount())
}

func TestApplyThenListMine(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	publisher := f.register(t, "p@example.com", domain.RolePublisher)
	applicant := f.register(t, "a@example.com", domain.RoleApplicant)
	first := f.openJob(t, publisher.ID)
	second := f.openJob(t, publisher.ID)

	_, err := f.applications.Apply(ctx, applicant.ID, ApplyInput{JobID: first.ID})
	require.NoError(t, err)
	app, err := f.applications.Apply(ctx, applicant.ID, ApplyInput{JobID: second.ID, ResumeURL: strPtr("https://cv.example.com/a")})
	require.NoError(t, err)

	mine, err := f.applications.ListMine(ctx, applicant.ID)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, app.ID, mine[0].ID)
	assert.Equal(t, domain.ApplicationStatusPending, mine[0].Status)
	assert.Equal(t, "Backend Engineer", mine[0].JobTitle)
	assert.Equal(t, "publisher user", mine[0].PublisherName)

	other, err := f.applications.ListMine(ctx, publisher.ID)
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestListForJobRequiresOwnership(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.register(t, "owner@example.com", domain.RolePublisher)
	other := f.register(t, "other@example.com", domain.RolePublisher)
	applicant := f.register(t, "a@example.com", domain.RoleApplicant)
	job := f.openJob(t, owner.ID)

	_, err := f.applications.Apply(ctx, applicant.ID, ApplyInput{JobID: job.ID})
	require.NoError(t, err)

	_, err = f.applications.ListForJob(ctx, job.ID, other.ID)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeForbidden))
	_, err = f.applications.ListForJob(ctx, "missing", owner.ID)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeForbidden))

	apps, err := f.applications.ListForJob(ctx, job.ID, owner.ID)
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, "a@example.com", apps[0].ApplicantEmail)
	assert.Equal(t, "applicant user", apps[0].ApplicantName)
}

func TestUpdateStatusDecisions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	publisher := f.register(t, "p@example.com", domain.RolePublisher)
	applicant := f.register(t, "a@example.com", domain.RoleApplicant)
	firstApprover := f.register(t, "r1@example.com", domain.RoleApprover)
	secondApprover := f.register(t, "r2@example.com", domain.RoleApprover)
	job := f.openJob(t, publisher.ID)

	app, err := f.applications.Apply(ctx, applicant.ID, ApplyInput{JobID: job.ID})
	require.NoError(t, err)

	for _, status := range []domain.ApplicationStatus{domain.ApplicationStatusPending, domain.ApplicationStatusReviewed, "hired"} {
		_, err := f.applications.UpdateStatus(ctx, app.ID, firstApprover.ID, StatusDecision{Status: status})
		assert.True(t, apperrors.IsCode(err, apperrors.CodeValidation), "status %q", status)
	}

	_, err = f.applications.UpdateStatus(ctx, "missing", firstApprover.ID, StatusDecision{Status: domain.ApplicationStatusReceived})
	assert.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))

	rejected, err := f.applications.UpdateStatus(ctx, app.ID, firstApprover.ID, StatusDecision{
		Status: domain.ApplicationStatusRejected, RejectionReason: strPtr("insufficient experience"),
	})
	require.NoError(t, err)
	require.NotNil(t, rejected.ApproverID)
	assert.Equal(t, firstApprover.ID, *rejected.ApproverID)
	require.NotNil(t, rejected.RejectionReason)
	assert.Equal(t, "insufficient experience", *rejected.RejectionReason)

	// A later decision without a reason clears it and takes over approver attribution.
	interview, err := f.applications.UpdateStatus(ctx, app.ID, secondApprover.ID, StatusDecision{
		Status: domain.ApplicationStatusInterview,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ApplicationStatusInterview, interview.Status)
	assert.Nil(t, interview.RejectionReason)
	require.NotNil(t, interview.ApproverID)
	assert.Equal(t, secondApprover.ID, *interview.ApproverID)

	f.recorder.mu.Lock()
	last := f.recorder.events[len(f.recorder.events)-1]
	f.recorder.mu.Unlock()
	assert.Equal(t, events.EventApplicationStatusChanged, last.Type)
	assert.Equal(t, events.ApplicationStatusChangedPayload{
		JobID:     job.ID,
		OldStatus: domain.ApplicationStatusRejected,
		NewStatus: domain.ApplicationStatusInterview,
	}, last.Payload)
}
