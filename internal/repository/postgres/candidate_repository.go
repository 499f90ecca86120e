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

const candidateColumns = `
	id, user_id, full_name, COALESCE(email, ''), COALESCE(about_me, ''),
	skills, COALESCE(primary_skill, ''), COALESCE(experience_level, ''),
	COALESCE(preferred_role, ''), COALESCE(location, ''), education,
	COALESCE(resume_key, ''), created_at, updated_at`

type candidateRepository struct {
	db *pgxpool.Pool
}

func NewCandidateRepository(db *pgxpool.Pool) domain.CandidateRepository {
	return &candidateRepository{db: db}
}

func (r *candidateRepository) GetByUserID(ctx context.Context, userID string) (*domain.CandidateProfile, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidate_profiles WHERE user_id = $1`

	var p domain.CandidateProfile
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&p.ID, &p.UserID, &p.FullName, &p.Email, &p.AboutMe,
		pq.Array(&p.Skills), &p.PrimarySkill, &p.ExperienceLevel,
		&p.PreferredRole, &p.Location, pq.Array(&p.Education),
		&p.ResumeKey, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// List returns the full candidate pool for bulk recommendation scoring.
func (r *candidateRepository) List(ctx context.Context) ([]domain.CandidateProfile, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidate_profiles ORDER BY id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []domain.CandidateProfile
	for rows.Next() {
		var p domain.CandidateProfile
		if err := rows.Scan(
			&p.ID, &p.UserID, &p.FullName, &p.Email, &p.AboutMe,
			pq.Array(&p.Skills), &p.PrimarySkill, &p.ExperienceLevel,
			&p.PreferredRole, &p.Location, pq.Array(&p.Education),
			&p.ResumeKey, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

func (r *candidateRepository) Create(ctx context.Context, p *domain.CandidateProfile) error {
	query := `
		INSERT INTO candidate_profiles (user_id, full_name, email, about_me, skills, primary_skill,
		                                experience_level, preferred_role, location, education, resume_key,
		                                created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id`

	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	return r.db.QueryRow(ctx, query,
		p.UserID, p.FullName, p.Email, p.AboutMe, pq.Array(p.Skills), p.PrimarySkill,
		p.ExperienceLevel, p.PreferredRole, p.Location, pq.Array(p.Education), p.ResumeKey,
		p.CreatedAt, p.UpdatedAt,
	).Scan(&p.ID)
}

func (r *candidateRepository) Update(ctx context.Context, p *domain.CandidateProfile) error {
	query := `
		UPDATE candidate_profiles
		SET full_name = $2, email = $3, about_me = $4, skills = $5, primary_skill = $6,
		    experience_level = $7, preferred_role = $8, location = $9, education = $10,
		    resume_key = $11, updated_at = $12
		WHERE user_id = $1`

	p.UpdatedAt = time.Now()
	result, err := r.db.Exec(ctx, query,
		p.UserID, p.FullName, p.Email, p.AboutMe, pq.Array(p.Skills), p.PrimarySkill,
		p.ExperienceLevel, p.PreferredRole, p.Location, pq.Array(p.Education),
		p.ResumeKey, p.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
