package repository

import (
	"context"

	"github.com/spec-kit/job-tracker/internal/domain"
)

// ApplicationRepository stores applications and their joined read models.
type ApplicationRepository interface {
	Create(ctx context.Context, app *domain.Application) error
	GetByID(ctx context.Context, id string) (*domain.Application, error)
	FindByJobAndApplicant(ctx context.Context, jobID, applicantID string) (*domain.Application, error)
	ListByApplicant(ctx context.Context, applicantID string) ([]domain.ApplicantApplication, error)
	ListByJob(ctx context.Context, jobID string) ([]domain.JobApplication, error)
	UpdateDecision(ctx context.Context, id string, status domain.ApplicationStatus, approverID string, rejectionReason *string) (*domain.Application, error)
}

type applicationRepository struct {
	db DBTX
}

// NewApplicationRepository builds repository.
func NewApplicationRepository(db DBTX) ApplicationRepository {
	return &applicationRepository{db: db}
}

const applicationColumns = `a.id, a.job_id, a.applicant_id, a.status, a.resume_url, a.cover_letter,
               a.approver_id, a.rejection_reason, a.created_at, a.updated_at`

// Create inserts a pending application. A second row for the same (job, applicant)
// surfaces as ErrDuplicate; a vanished job or applicant as ErrForeignKey.
func (r *applicationRepository) Create(ctx context.Context, app *domain.Application) error {
	const query = `
        INSERT INTO applications (job_id, applicant_id, status, resume_url, cover_letter)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(ctx, query,
		app.JobID,
		app.ApplicantID,
		app.Status,
		app.ResumeURL,
		app.CoverLetter,
	).Scan(&app.ID, &app.CreatedAt, &app.UpdatedAt)
	return translate(err)
}

func (r *applicationRepository) GetByID(ctx context.Context, id string) (*domain.Application, error) {
	const query = `SELECT ` + applicationColumns + ` FROM applications a WHERE a.id=$1`
	var app domain.Application
	if err := r.db.QueryRow(ctx, query, id).Scan(applicationDest(&app)...); err != nil {
		return nil, translate(err)
	}
	return &app, nil
}

func (r *applicationRepository) FindByJobAndApplicant(ctx context.Context, jobID, applicantID string) (*domain.Application, error) {
	const query = `SELECT ` + applicationColumns + ` FROM applications a WHERE a.job_id=$1 AND a.applicant_id=$2`
	var app domain.Application
	if err := r.db.QueryRow(ctx, query, jobID, applicantID).Scan(applicationDest(&app)...); err != nil {
		return nil, translate(err)
	}
	return &app, nil
}

func (r *applicationRepository) ListByApplicant(ctx context.Context, applicantID string) ([]domain.ApplicantApplication, error) {
	const query = `
        SELECT ` + applicationColumns + `, j.title, j.description, j.location, u.name
        FROM applications a
        JOIN jobs j ON j.id = a.job_id
        JOIN users u ON u.id = j.publisher_id
        WHERE a.applicant_id=$1
        ORDER BY a.created_at DESC`
	rows, err := r.db.Query(ctx, query, applicantID)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	result := make([]domain.ApplicantApplication, 0)
	for rows.Next() {
		var item domain.ApplicantApplication
		dest := append(applicationDest(&item.Application),
			&item.JobTitle,
			&item.JobDescription,
			&item.JobLocation,
			&item.PublisherName,
		)
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	return result, rows.Err()
}

func (r *applicationRepository) ListByJob(ctx context.Context, jobID string) ([]domain.JobApplication, error) {
	const query = `
        SELECT ` + applicationColumns + `, u.name, u.email
        FROM applications a
        JOIN users u ON u.id = a.applicant_id
        WHERE a.job_id=$1
        ORDER BY a.created_at DESC`
	rows, err := r.db.Query(ctx, query, jobID)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	result := make([]domain.JobApplication, 0)
	for rows.Next() {
		var item domain.JobApplication
		dest := append(applicationDest(&item.Application), &item.ApplicantName, &item.ApplicantEmail)
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	return result, rows.Err()
}

// UpdateDecision records an approver decision. rejectionReason is written as given,
// so a nil value clears any earlier reason.
func (r *applicationRepository) UpdateDecision(ctx context.Context, id string, status domain.ApplicationStatus, approverID string, rejectionReason *string) (*domain.Application, error) {
	const query = `
        UPDATE applications a SET status=$1, approver_id=$2, rejection_reason=$3, updated_at=NOW()
        WHERE a.id=$4
        RETURNING ` + applicationColumns
	var app domain.Application
	if err := r.db.QueryRow(ctx, query, status, approverID, rejectionReason, id).Scan(applicationDest(&app)...); err != nil {
		return nil, translate(err)
	}
	return &app, nil
}

func applicationDest(app *domain.Application) []any {
	return []any{
		&app.ID,
		&app.JobID,
		&app.ApplicantID,
		&app.Status,
		&app.ResumeURL,
		&app.CoverLetter,
		&app.ApproverID,
		&app.RejectionReason,
		&app.CreatedAt,
		&app.UpdatedAt,
	}
}
