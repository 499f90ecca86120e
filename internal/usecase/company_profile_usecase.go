package usecase

import (
	"context"

	"go-jobportal-backend/internal/domain"
	"go-jobportal-backend/pkg/apperror"

	"github.com/go-playground/validator/v10"
)

type companyProfileUsecase struct {
	companyRepo domain.CompanyProfileRepository
	validate    *validator.Validate
}

// NewCompanyProfileUsecase creates a new company profile usecase
func NewCompanyProfileUsecase(companyRepo domain.CompanyProfileRepository, validate *validator.Validate) domain.CompanyProfileUsecase {
	return &companyProfileUsecase{companyRepo: companyRepo, validate: validate}
}

func (uc *companyProfileUsecase) GetRecruiterCompany(ctx context.Context, userID string) (*domain.CompanyProfile, error) {
	profile, err := uc.companyRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, apperror.NotFound("Company profile not found")
	}
	return profile, nil
}

func (uc *companyProfileUsecase) UpdateRecruiterCompany(ctx context.Context, userID string, profile *domain.CompanyProfile) error {
	profile.UserID = userID
	if err := uc.validate.Struct(profile); err != nil {
		return apperror.BadRequest(err.Error())
	}
	if err := uc.companyRepo.Upsert(ctx, profile); err != nil {
		return apperror.Internal(err)
	}
	return nil
}
