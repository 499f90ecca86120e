package postgres

import (
	"context"
	"errors"
	"time"

	"go-jobportal-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type companyProfileRepo struct {
	db *pgxpool.Pool
}

func NewCompanyProfileRepository(db *pgxpool.Pool) domain.CompanyProfileRepository {
	return &companyProfileRepo{db: db}
}

func (r *companyProfileRepo) GetByUserID(ctx context.Context, userID string) (*domain.CompanyProfile, error) {
	query := `
		SELECT id, user_id, company_name, website, industry, location, description, created_at, updated_at
		FROM company_profiles WHERE user_id = $1`
	return r.scanOne(r.db.QueryRow(ctx, query, userID))
}

func (r *companyProfileRepo) GetByID(ctx context.Context, id int64) (*domain.CompanyProfile, error) {
	query := `
		SELECT id, user_id, company_name, website, industry, location, description, created_at, updated_at
		FROM company_profiles WHERE id = $1`
	return r.scanOne(r.db.QueryRow(ctx, query, id))
}

func (r *companyProfileRepo) scanOne(row pgx.Row) (*domain.CompanyProfile, error) {
	var p domain.CompanyProfile
	err := row.Scan(
		&p.ID, &p.UserID, &p.CompanyName, &p.Website, &p.Industry,
		&p.Location, &p.Description, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *companyProfileRepo) Upsert(ctx context.Context, p *domain.CompanyProfile) error {
	query := `
		INSERT INTO company_profiles (user_id, company_name, website, industry, location, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		ON CONFLICT (user_id) DO UPDATE
		SET company_name = EXCLUDED.company_name,
		    website = EXCLUDED.website,
		    industry = EXCLUDED.industry,
		    location = EXCLUDED.location,
		    description = EXCLUDED.description,
		    updated_at = EXCLUDED.updated_at
		RETURNING id`

	now := time.Now()
	p.UpdatedAt = now
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	return r.db.QueryRow(ctx, query,
		p.UserID, p.CompanyName, p.Website, p.Industry, p.Location, p.Description, now,
	).Scan(&p.ID)
}
