package scoring

import (
	"math"
	"strings"

	"go-jobportal-backend/internal/domain"
)

// Bulk recommendation weights. This rubric compares structured profile fields,
// not free text, and is deliberately separate from the resume scan.
const (
	profileSkillsWeight   = 50.0
	profileLevelWeight    = 20.0
	profileLocationWeight = 15.0
	profileRoleWeight     = 15.0
)

// MinRecommendScore is the cutoff below which a candidate is dropped from the
// ranked recommendation list. Strictly-greater wins inclusion.
const MinRecommendScore = 20

// casualLevelMap maps the casual experience-level values candidates type onto
// the formal levels jobs are posted with. Full points on exact match only.
var casualLevelMap = map[string]string{
	"fresher":     domain.ExperienceEntry,
	"entry":       domain.ExperienceEntry,
	"mid":         domain.ExperienceMidSenior,
	"experienced": domain.ExperienceMidSenior,
	"senior":      domain.ExperienceSenior,
	"expert":      domain.ExperienceExpert,
	"principal":   domain.ExperienceExpert,
}

// ProfileMatch is the outcome of scoring one candidate profile against a job.
type ProfileMatch struct {
	Score         int
	MatchedSkills []string
}

// MatchProfile scores a candidate's structured profile against a job posting:
// skills 50%, experience-level exact match 20%, location containment 15%,
// preferred-role containment 15%.
func MatchProfile(job *domain.Job, profile *domain.CandidateProfile) ProfileMatch {
	var total float64

	// Skills: fraction of the job's required skills the candidate lists.
	// Neutral half-weight when the job names none.
	candidateSkills := make(map[string]bool)
	for _, s := range profile.AllSkills() {
		candidateSkills[strings.ToLower(strings.TrimSpace(s))] = true
	}
	var matched []string
	if len(job.RequiredSkills) > 0 {
		for _, req := range job.RequiredSkills {
			if candidateSkills[strings.ToLower(strings.TrimSpace(req))] {
				matched = append(matched, req)
			}
		}
		total += float64(len(matched)) / float64(len(job.RequiredSkills)) * profileSkillsWeight
	} else {
		total += profileSkillsWeight / 2
	}

	// Experience level: exact match through the casual→formal table, no
	// partial credit.
	casual := strings.ToLower(strings.TrimSpace(profile.ExperienceLevel))
	if formal, ok := casualLevelMap[casual]; ok && formal == job.ExperienceLevel {
		total += profileLevelWeight
	}

	// Location: full points if either string contains the other.
	if mutualContains(job.Location, profile.Location) {
		total += profileLocationWeight
	}

	// Preferred role vs. job title, same containment rule.
	if mutualContains(job.Title, profile.PreferredRole) {
		total += profileRoleWeight
	}

	return ProfileMatch{Score: int(math.Round(total)), MatchedSkills: matched}
}

func mutualContains(a, b string) bool {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}
