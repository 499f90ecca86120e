package domain

import "context"

// AIAnalysis is the persisted scan breakdown. The JSON field names are a
// stable contract with the frontend renderer, do not rename.
type AIAnalysis struct {
	CandidateName         string   `json:"candidate_name"`
	Role                  string   `json:"role"`
	ExperienceLevel       string   `json:"experience_level"`
	ATSScore              int      `json:"ats_score"`
	SkillsMatchPercentage int      `json:"skills_match_percentage"`
	MatchedSkills         []string `json:"matched_skills"`
	MissingSkills         []string `json:"missing_skills"`
	EducationMatch        bool     `json:"education_match"`
	ExperienceMatch       bool     `json:"experience_match"`
	Summary               string   `json:"summary"`
	FinalVerdict          string   `json:"final_verdict"`
}

// ScanResult is what a single-application deep scan returns to the caller.
// Insufficient input is a soft failure: Score is ScanScoreUnavailable and
// Analysis is nil, but the call itself succeeds. Error is set on bulk-scan
// rows whose individual scan failed outright; such rows are not insufficient
// input, the scan simply did not run to completion.
type ScanResult struct {
	ApplicationID int64       `json:"application_id"`
	Score         int         `json:"score"`
	Insufficient  bool        `json:"insufficient_input,omitempty"`
	Error         string      `json:"error,omitempty"`
	Analysis      *AIAnalysis `json:"analysis,omitempty"`
	NewStatus     string      `json:"new_status,omitempty"`
}

// CandidateMatch is one row of the bulk recommendation ranking.
type CandidateMatch struct {
	UserID          string   `json:"user_id"`
	FullName        string   `json:"full_name"`
	Score           int      `json:"score"`
	MatchedSkills   []string `json:"matched_skills"`
	ExperienceLevel string   `json:"experience_level"`
	PreferredRole   string   `json:"preferred_role"`
	Location        string   `json:"location"`
}

// MatchUsecase orchestrates the two scoring rubrics: the deep resume scan for
// a single application and the lighter profile-field ranking for a whole pool.
type MatchUsecase interface {
	ScanApplication(ctx context.Context, userID string, applicationID int64, autoClassify bool) (*ScanResult, error)
	RecommendCandidates(ctx context.Context, userID string, jobID int64) ([]CandidateMatch, error)
	ExportMatchReport(ctx context.Context, userID string, jobID int64) ([]byte, string, error)
}
