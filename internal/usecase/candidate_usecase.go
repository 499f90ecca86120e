package usecase

import (
	"context"
	"errors"

	"go-jobportal-backend/internal/domain"
	"go-jobportal-backend/pkg/apperror"

	"github.com/go-playground/validator/v10"
)

type candidateUsecase struct {
	candidateRepo domain.CandidateRepository
	validate      *validator.Validate
}

// NewCandidateUsecase creates a new candidate usecase
func NewCandidateUsecase(candidateRepo domain.CandidateRepository, validate *validator.Validate) domain.CandidateUsecase {
	return &candidateUsecase{candidateRepo: candidateRepo, validate: validate}
}

func (uc *candidateUsecase) GetProfile(ctx context.Context, userID string) (*domain.CandidateProfile, error) {
	ctxUserID, ok := ctx.Value(domain.KeyUserID).(string)
	if !ok || ctxUserID == "" {
		return nil, apperror.Unauthorized("User not authenticated")
	}
	if ctxUserID != userID {
		return nil, apperror.Forbidden("You can only view your own profile")
	}
	profile, err := uc.candidateRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, apperror.NotFound("Profile not found")
	}
	return profile, nil
}

// UpdateProfile upserts the caller's profile. The UserID always comes from
// the authenticated context, never from the payload.
func (uc *candidateUsecase) UpdateProfile(ctx context.Context, profile *domain.CandidateProfile) error {
	ctxUserID, ok := ctx.Value(domain.KeyUserID).(string)
	if !ok || ctxUserID == "" {
		return apperror.Unauthorized("User not authenticated")
	}
	profile.UserID = ctxUserID

	if err := uc.validate.Struct(profile); err != nil {
		return apperror.BadRequest(err.Error())
	}

	err := uc.candidateRepo.Update(ctx, profile)
	if errors.Is(err, domain.ErrNotFound) {
		err = uc.candidateRepo.Create(ctx, profile)
	}
	if err != nil {
		return apperror.Internal(err)
	}
	return nil
}
