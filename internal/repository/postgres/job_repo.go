package postgres

import (
	"context"
	"errors"
	"time"

	"go-jobportal-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type jobRepo struct {
	db *pgxpool.Pool
}

// NewJobRepository creates a new job repository
func NewJobRepository(db *pgxpool.Pool) domain.JobRepository {
	return &jobRepo{db: db}
}

func (r *jobRepo) Create(ctx context.Context, job *domain.Job) error {
	query := `
		INSERT INTO jobs (recruiter_user_id, company_id, title, description, category, location,
		                  experience_level, required_skills, tags, requirements, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id`

	now := time.Now()
	job.CreatedAt = now
	job.UpdatedAt = now
	if job.Status == "" {
		job.Status = "active"
	}

	return r.db.QueryRow(ctx, query,
		job.RecruiterUserID, job.CompanyID, job.Title, job.Description, job.Category,
		job.Location, job.ExperienceLevel,
		pq.Array(job.RequiredSkills), pq.Array(job.Tags), pq.Array(job.Requirements),
		job.Status, job.CreatedAt, job.UpdatedAt,
	).Scan(&job.ID)
}

func (r *jobRepo) GetByID(ctx context.Context, id int64) (*domain.Job, error) {
	query := `
		SELECT j.id, j.recruiter_user_id, j.company_id, j.title, j.description, j.category,
		       j.location, j.experience_level, j.required_skills, j.tags, j.requirements,
		       j.status, j.created_at, j.updated_at,
		       cp.company_name
		FROM jobs j
		LEFT JOIN company_profiles cp ON j.company_id = cp.id
		WHERE j.id = $1`

	var job domain.Job
	err := r.db.QueryRow(ctx, query, id).Scan(
		&job.ID, &job.RecruiterUserID, &job.CompanyID, &job.Title, &job.Description, &job.Category,
		&job.Location, &job.ExperienceLevel,
		pq.Array(&job.RequiredSkills), pq.Array(&job.Tags), pq.Array(&job.Requirements),
		&job.Status, &job.CreatedAt, &job.UpdatedAt,
		&job.CompanyName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &job, nil
}

func (r *jobRepo) Fetch(ctx context.Context, limit, offset int) ([]domain.Job, int64, error) {
	query := `
		SELECT j.id, j.recruiter_user_id, j.company_id, j.title, j.description, j.category,
		       j.location, j.experience_level, j.required_skills, j.tags, j.requirements,
		       j.status, j.created_at, j.updated_at,
		       cp.company_name,
		       COUNT(*) OVER() as total
		FROM jobs j
		LEFT JOIN company_profiles cp ON j.company_id = cp.id
		WHERE j.status = 'active'
		ORDER BY j.created_at DESC
		LIMIT $1 OFFSET $2`
	return r.fetch(ctx, query, limit, offset)
}

func (r *jobRepo) FetchByRecruiter(ctx context.Context, recruiterUserID string, limit, offset int) ([]domain.Job, int64, error) {
	query := `
		SELECT j.id, j.recruiter_user_id, j.company_id, j.title, j.description, j.category,
		       j.location, j.experience_level, j.required_skills, j.tags, j.requirements,
		       j.status, j.created_at, j.updated_at,
		       cp.company_name,
		       COUNT(*) OVER() as total
		FROM jobs j
		LEFT JOIN company_profiles cp ON j.company_id = cp.id
		WHERE j.recruiter_user_id = $3
		ORDER BY j.created_at DESC
		LIMIT $1 OFFSET $2`
	return r.fetch(ctx, query, limit, offset, recruiterUserID)
}

func (r *jobRepo) fetch(ctx context.Context, query string, limit, offset int, extra ...any) ([]domain.Job, int64, error) {
	args := append([]any{limit, offset}, extra...)
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var jobs []domain.Job
	var total int64
	for rows.Next() {
		var job domain.Job
		if err := rows.Scan(
			&job.ID, &job.RecruiterUserID, &job.CompanyID, &job.Title, &job.Description, &job.Category,
			&job.Location, &job.ExperienceLevel,
			pq.Array(&job.RequiredSkills), pq.Array(&job.Tags), pq.Array(&job.Requirements),
			&job.Status, &job.CreatedAt, &job.UpdatedAt,
			&job.CompanyName,
			&total,
		); err != nil {
			return nil, 0, err
		}
		jobs = append(jobs, job)
	}
	return jobs, total, rows.Err()
}

func (r *jobRepo) Update(ctx context.Context, job *domain.Job) error {
	query := `
		UPDATE jobs
		SET title = $2, description = $3, category = $4, location = $5,
		    experience_level = $6, required_skills = $7, tags = $8, requirements = $9,
		    status = $10, updated_at = $11
		WHERE id = $1`

	job.UpdatedAt = time.Now()
	result, err := r.db.Exec(ctx, query,
		job.ID, job.Title, job.Description, job.Category, job.Location,
		job.ExperienceLevel, pq.Array(job.RequiredSkills), pq.Array(job.Tags), pq.Array(job.Requirements),
		job.Status, job.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *jobRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
