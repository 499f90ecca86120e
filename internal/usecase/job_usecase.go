package usecase

import (
	"context"
	"errors"

	"go-jobportal-backend/internal/domain"
	"go-jobportal-backend/pkg/apperror"

	"github.com/go-playground/validator/v10"
)

type jobUsecase struct {
	jobRepo     domain.JobRepository
	companyRepo domain.CompanyProfileRepository
	validate    *validator.Validate
}

// NewJobUsecase creates a new job usecase
func NewJobUsecase(jobRepo domain.JobRepository, companyRepo domain.CompanyProfileRepository, validate *validator.Validate) domain.JobUsecase {
	return &jobUsecase{jobRepo: jobRepo, companyRepo: companyRepo, validate: validate}
}

func (uc *jobUsecase) CreateJob(ctx context.Context, userID string, job *domain.Job) error {
	job.RecruiterUserID = userID
	if err := uc.validate.Struct(job); err != nil {
		return apperror.BadRequest(err.Error())
	}

	// Link the recruiter's company when one exists so applications on this
	// job share the company-wide booking scope.
	company, err := uc.companyRepo.GetByUserID(ctx, userID)
	if err == nil {
		job.CompanyID = &company.ID
	} else if !errors.Is(err, domain.ErrNotFound) {
		return apperror.Internal(err)
	}

	if err := uc.jobRepo.Create(ctx, job); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (uc *jobUsecase) GetJobDetails(ctx context.Context, id int64) (*domain.Job, error) {
	job, err := uc.jobRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.NotFound("Job not found")
	}
	return job, nil
}

func (uc *jobUsecase) ListJobs(ctx context.Context, page, pageSize int) ([]domain.Job, int64, error) {
	limit, offset := pageBounds(page, pageSize)
	return uc.jobRepo.Fetch(ctx, limit, offset)
}

func (uc *jobUsecase) ListJobsByRecruiter(ctx context.Context, userID string, page, pageSize int) ([]domain.Job, int64, error) {
	limit, offset := pageBounds(page, pageSize)
	return uc.jobRepo.FetchByRecruiter(ctx, userID, limit, offset)
}

func (uc *jobUsecase) UpdateJob(ctx context.Context, userID string, job *domain.Job) error {
	existing, err := uc.jobRepo.GetByID(ctx, job.ID)
	if err != nil {
		return apperror.NotFound("Job not found")
	}
	if existing.RecruiterUserID != userID {
		return apperror.Forbidden("You do not own this job posting")
	}
	if err := uc.validate.Struct(job); err != nil {
		return apperror.BadRequest(err.Error())
	}
	if err := uc.jobRepo.Update(ctx, job); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (uc *jobUsecase) DeleteJob(ctx context.Context, userID string, id int64) error {
	existing, err := uc.jobRepo.GetByID(ctx, id)
	if err != nil {
		return apperror.NotFound("Job not found")
	}
	if existing.RecruiterUserID != userID {
		return apperror.Forbidden("You do not own this job posting")
	}
	if err := uc.jobRepo.Delete(ctx, id); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func pageBounds(page, pageSize int) (limit, offset int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}
	return pageSize, (page - 1) * pageSize
}
