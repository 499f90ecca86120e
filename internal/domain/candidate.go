package domain

import (
	"context"
	"strings"
	"time"
)

type CandidateProfile struct {
	ID              int64     `json:"id"`
	UserID          string    `json:"user_id" validate:"required"`
	FullName        string    `json:"full_name" validate:"required,min=2,max=100"`
	Email           string    `json:"email" validate:"omitempty,email"`
	AboutMe         string    `json:"about_me" validate:"max=1000"`
	Skills          []string  `json:"skills" validate:"required,min=1"`
	PrimarySkill    string    `json:"primary_skill"` // comma-separated free text
	ExperienceLevel string    `json:"experience_level"`
	PreferredRole   string    `json:"preferred_role"`
	Location        string    `json:"location"`
	Education       []string  `json:"education,omitempty"`
	ResumeKey       string    `json:"resume_key" validate:"omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// AllSkills merges the skills list with the comma-separated primary skill
// field, trimmed and de-duplicated case-insensitively.
func (p *CandidateProfile) AllSkills() []string {
	seen := make(map[string]bool, len(p.Skills)+2)
	out := make([]string, 0, len(p.Skills)+2)
	add := func(s string) {
		s = strings.TrimSpace(s)
		if s == "" {
			return
		}
		key := strings.ToLower(s)
		if !seen[key] {
			seen[key] = true
			out = append(out, s)
		}
	}
	for _, s := range p.Skills {
		add(s)
	}
	for _, s := range strings.Split(p.PrimarySkill, ",") {
		add(s)
	}
	return out
}

// SynthesizedText builds scan input from profile fields when resume text
// extraction fails or no resume was uploaded.
func (p *CandidateProfile) SynthesizedText() string {
	var b strings.Builder
	if p.FullName != "" {
		b.WriteString(p.FullName)
		b.WriteString(". ")
	}
	if skills := p.AllSkills(); len(skills) > 0 {
		b.WriteString("Skills: ")
		b.WriteString(strings.Join(skills, ", "))
		b.WriteString(". ")
	}
	if len(p.Education) > 0 {
		b.WriteString("Education: ")
		b.WriteString(strings.Join(p.Education, "; "))
		b.WriteString(". ")
	}
	if p.ExperienceLevel != "" {
		b.WriteString("Experience level: ")
		b.WriteString(p.ExperienceLevel)
		b.WriteString(". ")
	}
	if p.AboutMe != "" {
		b.WriteString(p.AboutMe)
	}
	return strings.TrimSpace(b.String())
}

type CandidateRepository interface {
	GetByUserID(ctx context.Context, userID string) (*CandidateProfile, error)
	List(ctx context.Context) ([]CandidateProfile, error)
	Create(ctx context.Context, profile *CandidateProfile) error
	Update(ctx context.Context, profile *CandidateProfile) error
}

type CandidateUsecase interface {
	GetProfile(ctx context.Context, userID string) (*CandidateProfile, error)
	UpdateProfile(ctx context.Context, profile *CandidateProfile) error
}
