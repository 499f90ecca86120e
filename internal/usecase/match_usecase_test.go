package usecase

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"go-jobportal-backend/internal/domain"
)

func newMatchUsecase(withExtractor bool) (domain.MatchUsecase, *MockApplicationRepo, *MockJobRepo, *MockCandidateRepo, *MockExtractor) {
	appRepo := new(MockApplicationRepo)
	jobRepo := new(MockJobRepo)
	candidateRepo := new(MockCandidateRepo)
	extractor := new(MockExtractor)

	var uc domain.MatchUsecase
	if withExtractor {
		uc = NewMatchUsecase(appRepo, jobRepo, candidateRepo, extractor)
	} else {
		uc = NewMatchUsecase(appRepo, jobRepo, candidateRepo, nil)
	}
	return uc, appRepo, jobRepo, candidateRepo, extractor
}

func scanJob() *domain.Job {
	return &domain.Job{
		ID:              1,
		RecruiterUserID: testRecruiter,
		Title:           "Backend Engineer",
		Description:     "Build APIs",
		RequiredSkills:  []string{"react", "node.js"},
		Status:          "active",
	}
}

const strongResume = "Experienced software developer with 4 years of experience building apps " +
	"with React and Node.js. Projects: built a portfolio site. Education: Bachelor of Engineering. AWS certified."

func TestScanApplicationShortlistsStrongResume(t *testing.T) {
	uc, appRepo, jobRepo, candidateRepo, extractor := newMatchUsecase(true)
	appRepo.On("GetByID", mock.Anything, int64(5)).
		Return(&domain.Application{ID: 5, JobID: 1, CandidateUserID: testCandidate, ResumeKey: "resumes/cv.pdf", Status: domain.StatusApplied}, nil)
	jobRepo.On("GetByID", mock.Anything, int64(1)).Return(scanJob(), nil)
	candidateRepo.On("GetByUserID", mock.Anything, testCandidate).Return(nil, domain.ErrNotFound)
	extractor.On("ExtractText", mock.Anything, "resumes/cv.pdf").Return(strongResume, nil)

	appRepo.On("UpdateScan", mock.Anything, int64(5), 94, mock.AnythingOfType("*domain.AIAnalysis")).Return(nil)
	appRepo.On("UpdateStatus", mock.Anything, int64(5), domain.StatusShortlisted).Return(nil)

	result, err := uc.ScanApplication(context.Background(), testRecruiter, 5, true)
	require.NoError(t, err)
	assert.Equal(t, 94, result.Score)
	assert.Equal(t, domain.StatusShortlisted, result.NewStatus)
	assert.False(t, result.Insufficient)
	require.NotNil(t, result.Analysis)
	assert.Equal(t, 100, result.Analysis.SkillsMatchPercentage)
	assert.Equal(t, "Experienced", result.Analysis.ExperienceLevel)
	assert.ElementsMatch(t, []string{"react", "node.js"}, result.Analysis.MatchedSkills)
	appRepo.AssertExpectations(t)
}

func TestScanApplicationRejectsUnrelatedResume(t *testing.T) {
	uc, appRepo, jobRepo, candidateRepo, extractor := newMatchUsecase(true)
	appRepo.On("GetByID", mock.Anything, int64(5)).
		Return(&domain.Application{ID: 5, JobID: 1, CandidateUserID: testCandidate, ResumeKey: "resumes/cv.pdf", Status: domain.StatusApplied}, nil)
	jobRepo.On("GetByID", mock.Anything, int64(1)).Return(scanJob(), nil)
	candidateRepo.On("GetByUserID", mock.Anything, testCandidate).Return(nil, domain.ErrNotFound)
	extractor.On("ExtractText", mock.Anything, "resumes/cv.pdf").
		Return("I enjoy painting landscapes and hiking in the mountains every weekend.", nil)

	appRepo.On("UpdateScan", mock.Anything, int64(5), 0, mock.AnythingOfType("*domain.AIAnalysis")).Return(nil)
	appRepo.On("UpdateStatus", mock.Anything, int64(5), domain.StatusRejected).Return(nil)

	result, err := uc.ScanApplication(context.Background(), testRecruiter, 5, true)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Score)
	assert.Equal(t, domain.StatusRejected, result.NewStatus)
	assert.ElementsMatch(t, []string{"react", "node.js"}, result.Analysis.MissingSkills)
	appRepo.AssertExpectations(t)
}

func TestScanApplicationWithoutAutoClassifyLeavesStatus(t *testing.T) {
	uc, appRepo, jobRepo, candidateRepo, extractor := newMatchUsecase(true)
	appRepo.On("GetByID", mock.Anything, int64(5)).
		Return(&domain.Application{ID: 5, JobID: 1, CandidateUserID: testCandidate, ResumeKey: "resumes/cv.pdf", Status: domain.StatusApplied}, nil)
	jobRepo.On("GetByID", mock.Anything, int64(1)).Return(scanJob(), nil)
	candidateRepo.On("GetByUserID", mock.Anything, testCandidate).Return(nil, domain.ErrNotFound)
	extractor.On("ExtractText", mock.Anything, "resumes/cv.pdf").Return(strongResume, nil)
	appRepo.On("UpdateScan", mock.Anything, int64(5), 94, mock.Anything).Return(nil)

	result, err := uc.ScanApplication(context.Background(), testRecruiter, 5, false)
	require.NoError(t, err)
	assert.Empty(t, result.NewStatus)
	appRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestScanApplicationSkipsClassifyWhenNotApplied(t *testing.T) {
	uc, appRepo, jobRepo, candidateRepo, extractor := newMatchUsecase(true)
	appRepo.On("GetByID", mock.Anything, int64(5)).
		Return(&domain.Application{ID: 5, JobID: 1, CandidateUserID: testCandidate, ResumeKey: "resumes/cv.pdf", Status: domain.StatusShortlisted}, nil)
	jobRepo.On("GetByID", mock.Anything, int64(1)).Return(scanJob(), nil)
	candidateRepo.On("GetByUserID", mock.Anything, testCandidate).Return(nil, domain.ErrNotFound)
	extractor.On("ExtractText", mock.Anything, "resumes/cv.pdf").Return(strongResume, nil)
	appRepo.On("UpdateScan", mock.Anything, int64(5), 94, mock.Anything).Return(nil)

	result, err := uc.ScanApplication(context.Background(), testRecruiter, 5, true)
	require.NoError(t, err)
	// Re-scans of already triaged applications refresh the score only
	assert.Empty(t, result.NewStatus)
	appRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestScanApplicationInsufficientTextIsSoft(t *testing.T) {
	uc, appRepo, jobRepo, candidateRepo, _ := newMatchUsecase(false)
	appRepo.On("GetByID", mock.Anything, int64(5)).
		Return(&domain.Application{ID: 5, JobID: 1, CandidateUserID: testCandidate, Status: domain.StatusApplied}, nil)
	jobRepo.On("GetByID", mock.Anything, int64(1)).Return(scanJob(), nil)
	candidateRepo.On("GetByUserID", mock.Anything, testCandidate).Return(nil, domain.ErrNotFound)
	appRepo.On("UpdateScan", mock.Anything, int64(5), domain.ScanScoreUnavailable, (*domain.AIAnalysis)(nil)).Return(nil)

	result, err := uc.ScanApplication(context.Background(), testRecruiter, 5, true)
	require.NoError(t, err)
	assert.True(t, result.Insufficient)
	assert.Equal(t, domain.ScanScoreUnavailable, result.Score)
	assert.Nil(t, result.Analysis)
	appRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestScanApplicationExtractionFailureFallsBackToProfile(t *testing.T) {
	uc, appRepo, jobRepo, candidateRepo, extractor := newMatchUsecase(true)
	appRepo.On("GetByID", mock.Anything, int64(5)).
		Return(&domain.Application{ID: 5, JobID: 1, CandidateUserID: testCandidate, ResumeKey: "resumes/cv.pdf", Status: domain.StatusApplied}, nil)
	jobRepo.On("GetByID", mock.Anything, int64(1)).Return(scanJob(), nil)
	candidateRepo.On("GetByUserID", mock.Anything, testCandidate).Return(&domain.CandidateProfile{
		UserID:          testCandidate,
		FullName:        "Asha Rao",
		Skills:          []string{"react", "node.js"},
		Education:       []string{"Bachelor of Technology"},
		ExperienceLevel: "fresher",
	}, nil)
	extractor.On("ExtractText", mock.Anything, "resumes/cv.pdf").Return("", assert.AnError)

	// Synthesized profile text: both skills (40), education (10), two matched
	// tools (2), one of three role keywords (5/3), fresher with no internship
	// or project evidence.
	appRepo.On("UpdateScan", mock.Anything, int64(5), 54, mock.AnythingOfType("*domain.AIAnalysis")).Return(nil)
	appRepo.On("UpdateStatus", mock.Anything, int64(5), domain.StatusRejected).Return(nil)

	result, err := uc.ScanApplication(context.Background(), testRecruiter, 5, true)
	require.NoError(t, err)
	assert.Equal(t, 54, result.Score)
	assert.Equal(t, "Asha Rao", result.Analysis.CandidateName)
	assert.Equal(t, "Fresher", result.Analysis.ExperienceLevel)
	appRepo.AssertExpectations(t)
}

func TestScanApplicationOwnershipEnforced(t *testing.T) {
	uc, appRepo, jobRepo, candidateRepo, _ := newMatchUsecase(false)
	appRepo.On("GetByID", mock.Anything, int64(5)).
		Return(&domain.Application{ID: 5, JobID: 1, CandidateUserID: testCandidate, Status: domain.StatusApplied}, nil)
	jobRepo.On("GetByID", mock.Anything, int64(1)).
		Return(&domain.Job{ID: 1, RecruiterUserID: "someone-else"}, nil)

	_, err := uc.ScanApplication(context.Background(), testRecruiter, 5, true)
	require.Error(t, err)
	assert.Equal(t, 403, statusCode(t, err))
	candidateRepo.AssertNotCalled(t, "GetByUserID", mock.Anything, mock.Anything)
}

func recommendPool() []domain.CandidateProfile {
	return []domain.CandidateProfile{
		{
			UserID:          "cand-a",
			FullName:        "Asha Rao",
			Skills:          []string{"react", "node.js"},
			ExperienceLevel: "experienced",
			PreferredRole:   "Backend Engineer",
			Location:        "Bengaluru",
		},
		{
			UserID:        "cand-b",
			FullName:      "Vikram Shah",
			Skills:        []string{"react"},
			PreferredRole: "Engineer",
			Location:      "Remote",
		},
		{
			UserID:          "cand-c",
			FullName:        "Priya Nair",
			Skills:          []string{"python"},
			ExperienceLevel: "experienced",
			Location:        "Hyderabad",
		},
	}
}

func TestRecommendCandidatesFiltersAndRanks(t *testing.T) {
	uc, _, jobRepo, candidateRepo, _ := newMatchUsecase(false)
	job := scanJob()
	job.ExperienceLevel = domain.ExperienceMidSenior
	job.Location = "Bengaluru"
	jobRepo.On("GetByID", mock.Anything, int64(1)).Return(job, nil)
	candidateRepo.On("List", mock.Anything).Return(recommendPool(), nil)

	matches, err := uc.RecommendCandidates(context.Background(), testRecruiter, 1)
	require.NoError(t, err)
	// cand-a scores 100, cand-b 40; cand-c lands exactly on the cutoff (20)
	// and is dropped because inclusion is strictly greater than the cutoff.
	require.Len(t, matches, 2)
	assert.Equal(t, "cand-a", matches[0].UserID)
	assert.Equal(t, 100, matches[0].Score)
	assert.Equal(t, "cand-b", matches[1].UserID)
	assert.Equal(t, 40, matches[1].Score)
	assert.ElementsMatch(t, []string{"react", "node.js"}, matches[0].MatchedSkills)
}

func TestRecommendCandidatesOwnershipEnforced(t *testing.T) {
	uc, _, jobRepo, candidateRepo, _ := newMatchUsecase(false)
	jobRepo.On("GetByID", mock.Anything, int64(1)).
		Return(&domain.Job{ID: 1, RecruiterUserID: "someone-else"}, nil)

	_, err := uc.RecommendCandidates(context.Background(), testRecruiter, 1)
	require.Error(t, err)
	assert.Equal(t, 403, statusCode(t, err))
	candidateRepo.AssertNotCalled(t, "List", mock.Anything)
}

func TestExportMatchReportProducesWorkbook(t *testing.T) {
	uc, _, jobRepo, candidateRepo, _ := newMatchUsecase(false)
	job := scanJob()
	job.ExperienceLevel = domain.ExperienceMidSenior
	job.Location = "Bengaluru"
	jobRepo.On("GetByID", mock.Anything, int64(1)).Return(job, nil)
	candidateRepo.On("List", mock.Anything).Return(recommendPool(), nil)

	data, filename, err := uc.ExportMatchReport(context.Background(), testRecruiter, 1)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
	assert.True(t, strings.HasPrefix(filename, "match-report-job-1-"))
	assert.True(t, strings.HasSuffix(filename, ".xlsx"))
}
