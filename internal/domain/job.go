package domain

import (
	"context"
	"errors"
	"strings"
	"time"
)

// Common domain errors
var ErrNotFound = errors.New("resource not found")

// Formal experience levels on job postings. Candidate profiles carry casual
// values (fresher, senior, ...) which the matcher maps onto these.
const (
	ExperienceEntry     = "Entry Level"
	ExperienceMidSenior = "Mid-Senior Level"
	ExperienceSenior    = "Senior Level"
	ExperienceExpert    = "Expert-Principal"
)

type Job struct {
	ID              int64     `json:"id"`
	RecruiterUserID string    `json:"recruiter_user_id"`
	CompanyID       *int64    `json:"company_id,omitempty"`
	Title           string    `json:"title" validate:"required,min=3,max=150"`
	Description     string    `json:"description" validate:"required"`
	Category        string    `json:"category"`
	Location        string    `json:"location"`
	ExperienceLevel string    `json:"experience_level"`
	RequiredSkills  []string  `json:"required_skills"`
	Tags            []string  `json:"tags,omitempty"`
	Requirements    []string  `json:"requirements,omitempty"`
	Status          string    `json:"status"` // active | closed
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	// Joined data for list responses
	CompanyName *string `json:"company_name,omitempty"`
}

// RequirementText assembles the free text a resume is scanned against: title,
// description, category and every list-valued requirement field. Never empty:
// a job with blank fields still yields its title or a generic fallback.
func (j *Job) RequirementText() string {
	parts := make([]string, 0, 6)
	for _, p := range []string{j.Title, j.Description, j.Category} {
		if strings.TrimSpace(p) != "" {
			parts = append(parts, p)
		}
	}
	for _, list := range [][]string{j.RequiredSkills, j.Tags, j.Requirements} {
		if len(list) > 0 {
			parts = append(parts, strings.Join(list, ", "))
		}
	}
	if len(parts) == 0 {
		return "general role requirements"
	}
	return strings.Join(parts, ". ")
}

type JobRepository interface {
	Create(ctx context.Context, job *Job) error
	GetByID(ctx context.Context, id int64) (*Job, error)
	Fetch(ctx context.Context, limit, offset int) ([]Job, int64, error)
	FetchByRecruiter(ctx context.Context, recruiterUserID string, limit, offset int) ([]Job, int64, error)
	Update(ctx context.Context, job *Job) error
	Delete(ctx context.Context, id int64) error
}

type JobUsecase interface {
	CreateJob(ctx context.Context, userID string, job *Job) error
	GetJobDetails(ctx context.Context, id int64) (*Job, error)
	ListJobs(ctx context.Context, page, pageSize int) ([]Job, int64, error)
	ListJobsByRecruiter(ctx context.Context, userID string, page, pageSize int) ([]Job, int64, error)
	UpdateJob(ctx context.Context, userID string, job *Job) error
	DeleteJob(ctx context.Context, userID string, id int64) error
}
