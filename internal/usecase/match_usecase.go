package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"go-jobportal-backend/internal/domain"
	"go-jobportal-backend/internal/scoring"
	"go-jobportal-backend/pkg/apperror"
	"go-jobportal-backend/pkg/logger"

	"github.com/xuri/excelize/v2"
)

type matchUsecase struct {
	applicationRepo domain.ApplicationRepository
	jobRepo         domain.JobRepository
	candidateRepo   domain.CandidateRepository
	extractor       domain.ResumeTextExtractor
}

// NewMatchUsecase creates the match scoring service. extractor may be nil,
// in which case every scan falls back to profile-field synthesis.
func NewMatchUsecase(
	appRepo domain.ApplicationRepository,
	jobRepo domain.JobRepository,
	candidateRepo domain.CandidateRepository,
	extractor domain.ResumeTextExtractor,
) domain.MatchUsecase {
	return &matchUsecase{
		applicationRepo: appRepo,
		jobRepo:         jobRepo,
		candidateRepo:   candidateRepo,
		extractor:       extractor,
	}
}

// ScanApplication runs the deep resume rubric for one application and
// persists the score and breakdown. With autoClassify set and the application
// still in "applied", the score also drives the shortlist/reject transition.
// Insufficient candidate text is a soft failure: the sentinel score is stored
// and the status left untouched.
func (uc *matchUsecase) ScanApplication(ctx context.Context, userID string, applicationID int64, autoClassify bool) (*domain.ScanResult, error) {
	app, err := uc.applicationRepo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, apperror.NotFound("Application not found")
	}
	job, err := uc.jobRepo.GetByID(ctx, app.JobID)
	if err != nil {
		return nil, apperror.NotFound("Job not found")
	}
	if job.RecruiterUserID != userID {
		return nil, apperror.Forbidden("You do not own this job posting")
	}

	profile, err := uc.candidateRepo.GetByUserID(ctx, app.CandidateUserID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, apperror.Internal(err)
	}

	candidateText := uc.resolveCandidateText(ctx, app, profile)

	score, err := scoring.ScanResume(job.RequirementText(), candidateText)
	if errors.Is(err, scoring.ErrInsufficientText) {
		if err := uc.applicationRepo.UpdateScan(ctx, app.ID, domain.ScanScoreUnavailable, nil); err != nil {
			return nil, apperror.Internal(err)
		}
		return &domain.ScanResult{
			ApplicationID: app.ID,
			Score:         domain.ScanScoreUnavailable,
			Insufficient:  true,
		}, nil
	}
	if err != nil {
		return nil, apperror.Internal(err)
	}

	analysis := buildAnalysis(app, job, profile, score)
	if err := uc.applicationRepo.UpdateScan(ctx, app.ID, score.Overall, analysis); err != nil {
		return nil, apperror.Internal(err)
	}

	result := &domain.ScanResult{
		ApplicationID: app.ID,
		Score:         score.Overall,
		Analysis:      analysis,
	}

	if autoClassify && domain.CanonicalStatus(app.Status) == domain.StatusApplied {
		next := domain.StatusRejected
		if score.Overall >= domain.AutoClassifyThreshold {
			next = domain.StatusShortlisted
		}
		if err := uc.applicationRepo.UpdateStatus(ctx, app.ID, next); err != nil {
			return nil, apperror.Internal(err)
		}
		result.NewStatus = next
	}

	return result, nil
}

// resolveCandidateText prefers extracted resume text and falls back to
// profile synthesis on any extraction failure.
func (uc *matchUsecase) resolveCandidateText(ctx context.Context, app *domain.Application, profile *domain.CandidateProfile) string {
	resumeKey := app.ResumeKey
	if resumeKey == "" && profile != nil {
		resumeKey = profile.ResumeKey
	}
	if resumeKey != "" && uc.extractor != nil {
		text, err := uc.extractor.ExtractText(ctx, resumeKey)
		if err == nil && strings.TrimSpace(text) != "" {
			return text
		}
		if err != nil {
			logger.Log.Warn("resume extraction failed, synthesizing from profile",
				"application_id", app.ID, "resume_key", resumeKey, "error", err)
		}
	}
	if profile != nil {
		return profile.SynthesizedText()
	}
	return ""
}

func buildAnalysis(app *domain.Application, job *domain.Job, profile *domain.CandidateProfile, score *scoring.ResumeScore) *domain.AIAnalysis {
	name := ""
	if profile != nil {
		name = profile.FullName
	} else if app.CandidateName != nil {
		name = *app.CandidateName
	}

	skillsPct := 0
	if total := len(score.MatchedSkills) + len(score.MissingSkills); total > 0 {
		skillsPct = len(score.MatchedSkills) * 100 / total
	}

	summary := fmt.Sprintf("Matched %d skills for %s. %s candidate.",
		len(score.MatchedSkills), job.Title, score.ExperienceLevel)

	return &domain.AIAnalysis{
		CandidateName:         name,
		Role:                  job.Title,
		ExperienceLevel:       score.ExperienceLevel,
		ATSScore:              score.Overall,
		SkillsMatchPercentage: skillsPct,
		MatchedSkills:         score.MatchedSkills,
		MissingSkills:         score.MissingSkills,
		EducationMatch:        score.Sections.HasEducation,
		ExperienceMatch:       score.Sections.HasExperience,
		Summary:               summary,
		FinalVerdict:          score.Verdict,
	}
}

// RecommendCandidates ranks the candidate pool against a job with the light
// profile rubric, drops everyone at or below the threshold, and sorts by
// score descending (stable on ties).
func (uc *matchUsecase) RecommendCandidates(ctx context.Context, userID string, jobID int64) ([]domain.CandidateMatch, error) {
	job, err := uc.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, apperror.NotFound("Job not found")
	}
	if job.RecruiterUserID != userID {
		return nil, apperror.Forbidden("You do not own this job posting")
	}

	pool, err := uc.candidateRepo.List(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	matches := make([]domain.CandidateMatch, 0, len(pool))
	for i := range pool {
		p := &pool[i]
		m := scoring.MatchProfile(job, p)
		if m.Score <= scoring.MinRecommendScore {
			continue
		}
		matches = append(matches, domain.CandidateMatch{
			UserID:          p.UserID,
			FullName:        p.FullName,
			Score:           m.Score,
			MatchedSkills:   m.MatchedSkills,
			ExperienceLevel: p.ExperienceLevel,
			PreferredRole:   p.PreferredRole,
			Location:        p.Location,
		})
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].Score > matches[j].Score })
	return matches, nil
}

// matchReportColumns are the export sheet headers, in order.
var matchReportColumns = []string{
	"Rank", "Candidate", "Score", "Experience Level", "Preferred Role", "Location", "Matched Skills",
}

// ExportMatchReport renders the ranked recommendation list as an xlsx
// workbook and returns the file bytes plus a download filename.
func (uc *matchUsecase) ExportMatchReport(ctx context.Context, userID string, jobID int64) ([]byte, string, error) {
	matches, err := uc.RecommendCandidates(ctx, userID, jobID)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Matches"
	f.SetSheetName("Sheet1", sheet)

	for col, header := range matchReportColumns {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, header)
	}

	for row, m := range matches {
		values := []any{
			row + 1,
			m.FullName,
			m.Score,
			m.ExperienceLevel,
			m.PreferredRole,
			m.Location,
			strings.Join(m.MatchedSkills, ", "),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", apperror.Internal(err)
	}
	filename := fmt.Sprintf("match-report-job-%d-%s.xlsx", jobID, time.Now().Format("20060102"))
	return buf.Bytes(), filename, nil
}
