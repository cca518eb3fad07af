package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/job-tracker/internal/domain"
)

// JobRepository encapsulates job persistence.
type JobRepository interface {
	Create(ctx context.Context, job *domain.Job) error
	GetByID(ctx context.Context, id string) (*domain.Job, error)
	ListOpen(ctx context.Context) ([]domain.Job, error)
	UpdateFields(ctx context.Context, id string, fields domain.JobFields) (*domain.Job, error)
	Close(ctx context.Context, id string) (*domain.Job, error)
}

type jobRepository struct {
	db DBTX
}

// NewJobRepository instantiates repository.
func NewJobRepository(db DBTX) JobRepository {
	return &jobRepository{db: db}
}

const jobColumns = `j.id, j.publisher_id, j.title, j.description, j.location, j.salary_range,
               j.status, j.created_at, j.updated_at, u.name`

func (r *jobRepository) Create(ctx context.Context, job *domain.Job) error {
	const query = `
        INSERT INTO jobs (publisher_id, title, description, location, salary_range, status)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(ctx, query,
		job.PublisherID,
		job.Title,
		job.Description,
		job.Location,
		job.SalaryRange,
		job.Status,
	).Scan(&job.ID, &job.CreatedAt, &job.UpdatedAt)
	return translate(err)
}

func (r *jobRepository) GetByID(ctx context.Context, id string) (*domain.Job, error) {
	const query = `
        SELECT ` + jobColumns + `
        FROM jobs j JOIN users u ON u.id = j.publisher_id
        WHERE j.id=$1`
	job, err := scanJob(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, translate(err)
	}
	return job, nil
}

func (r *jobRepository) ListOpen(ctx context.Context) ([]domain.Job, error) {
	const query = `
        SELECT ` + jobColumns + `
        FROM jobs j JOIN users u ON u.id = j.publisher_id
        WHERE j.status=$1
        ORDER BY j.created_at DESC`
	rows, err := r.db.Query(ctx, query, domain.JobStatusOpen)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	result := make([]domain.Job, 0)
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *job)
	}
	return result, rows.Err()
}

// UpdateFields overwrites the editable attributes and leaves status untouched.
func (r *jobRepository) UpdateFields(ctx context.Context, id string, fields domain.JobFields) (*domain.Job, error) {
	const query = `
        WITH updated AS (
            UPDATE jobs SET title=$1, description=$2, location=$3, salary_range=$4, updated_at=NOW()
            WHERE id=$5
            RETURNING *
        )
        SELECT ` + jobColumns + `
        FROM updated j JOIN users u ON u.id = j.publisher_id`
	job, err := scanJob(r.db.QueryRow(ctx, query,
		fields.Title,
		fields.Description,
		fields.Location,
		fields.SalaryRange,
		id,
	))
	if err != nil {
		return nil, translate(err)
	}
	return job, nil
}

// Close marks the job closed. There is no path back to open.
func (r *jobRepository) Close(ctx context.Context, id string) (*domain.Job, error) {
	const query = `
        WITH updated AS (
            UPDATE jobs SET status=$1, updated_at=NOW()
            WHERE id=$2
            RETURNING *
        )
        SELECT ` + jobColumns + `
        FROM updated j JOIN users u ON u.id = j.publisher_id`
	job, err := scanJob(r.db.QueryRow(ctx, query, domain.JobStatusClosed, id))
	if err != nil {
		return nil, translate(err)
	}
	return job, nil
}

func scanJob(row pgx.Row) (*domain.Job, error) {
	var job domain.Job
	if err := row.Scan(
		&job.ID,
		&job.PublisherID,
		&job.Title,
		&job.Description,
		&job.Location,
		&job.SalaryRange,
		&job.Status,
		&job.CreatedAt,
		&job.UpdatedAt,
		&job.PublisherName,
	); err != nil {
		return nil, err
	}
	return &job, nil
}
