package domain

import (
	"context"
	"time"
)

// CompanyProfile represents a recruiter's company. Recruiters sharing a
// company share one interview-booking scope.
type CompanyProfile struct {
	ID          int64     `json:"id"`
	UserID      string    `json:"user_id"`
	CompanyName string    `json:"company_name" validate:"required,min=2,max=150"`
	Website     *string   `json:"website,omitempty" validate:"omitempty,url"`
	Industry    *string   `json:"industry,omitempty"`
	Location    *string   `json:"location,omitempty"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CompanyProfileRepository defines storage operations
type CompanyProfileRepository interface {
	GetByUserID(ctx context.Context, userID string) (*CompanyProfile, error)
	GetByID(ctx context.Context, id int64) (*CompanyProfile, error)
	Upsert(ctx context.Context, profile *CompanyProfile) error
}

// CompanyProfileUsecase defines business logic operations
type CompanyProfileUsecase interface {
	GetRecruiterCompany(ctx context.Context, userID string) (*CompanyProfile, error)
	UpdateRecruiterCompany(ctx context.Context, userID string, profile *CompanyProfile) error
}
