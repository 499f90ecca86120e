package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"go-jobportal-backend/internal/domain"
	"go-jobportal-backend/pkg/apperror"
)

const (
	testRecruiter = "rec-1"
	testCandidate = "cand-1"
)

// newAppUsecase wires an application usecase over fresh mocks with a fixed
// clock (Wednesday 2026-01-07 08:00).
func newAppUsecase(t *testing.T) (*applicationUsecase, *MockApplicationRepo, *MockJobRepo, *MockCompanyRepo, *MockMatchUC) {
	t.Helper()
	appRepo := new(MockApplicationRepo)
	jobRepo := new(MockJobRepo)
	companyRepo := new(MockCompanyRepo)
	matchUC := new(MockMatchUC)

	uc := NewApplicationUsecase(appRepo, jobRepo, companyRepo, matchUC, nil, "https://meet.example.com").(*applicationUsecase)
	uc.now = func() time.Time {
		return time.Date(2026, 1, 7, 8, 0, 0, 0, time.UTC)
	}
	return uc, appRepo, jobRepo, companyRepo, matchUC
}

func ownedJob(id int64) *domain.Job {
	return &domain.Job{ID: id, RecruiterUserID: testRecruiter, Title: "Backend Engineer", Status: "active"}
}

func statusCode(t *testing.T, err error) int {
	t.Helper()
	appErr, ok := err.(*apperror.AppError)
	require.True(t, ok, "expected AppError, got %T: %v", err, err)
	return appErr.Code
}

func TestApplyToJobDuplicateRejected(t *testing.T) {
	uc, appRepo, jobRepo, _, _ := newAppUsecase(t)
	jobRepo.On("GetByID", mock.Anything, int64(1)).Return(ownedJob(1), nil)
	appRepo.On("CheckExists", mock.Anything, int64(1), testCandidate).Return(true, nil)

	_, err := uc.ApplyToJob(context.Background(), testCandidate, 1, "", "")
	require.Error(t, err)
	assert.Equal(t, 400, statusCode(t, err))
	appRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestApplyToJobClosedJobRejected(t *testing.T) {
	uc, _, jobRepo, _, _ := newAppUsecase(t)
	closed := ownedJob(1)
	closed.Status = "closed"
	jobRepo.On("GetByID", mock.Anything, int64(1)).Return(closed, nil)

	_, err := uc.ApplyToJob(context.Background(), testCandidate, 1, "", "")
	require.Error(t, err)
	assert.Equal(t, 400, statusCode(t, err))
}

func TestApplyToJobScansAndClassifies(t *testing.T) {
	uc, appRepo, jobRepo, _, matchUC := newAppUsecase(t)
	jobRepo.On("GetByID", mock.Anything, int64(1)).Return(ownedJob(1), nil)
	appRepo.On("CheckExists", mock.Anything, int64(1), testCandidate).Return(false, nil)
	appRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Application")).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Application).ID = 42
	}).Return(nil)
	// The apply-time scan runs as the job owner, with auto-classification
	matchUC.On("ScanApplication", mock.Anything, testRecruiter, int64(42), true).
		Return(&domain.ScanResult{ApplicationID: 42, Score: 81, NewStatus: domain.StatusShortlisted}, nil)

	app, err := uc.ApplyToJob(context.Background(), testCandidate, 1, "resumes/cv.pdf", "hello")
	require.NoError(t, err)
	assert.Equal(t, int64(42), app.ID)
	assert.Equal(t, 81, app.AIMatchScore)
	assert.Equal(t, domain.StatusShortlisted, app.Status)
}

func TestApplyToJobScanFailureIsSoft(t *testing.T) {
	uc, appRepo, jobRepo, _, matchUC := newAppUsecase(t)
	jobRepo.On("GetByID", mock.Anything, int64(1)).Return(ownedJob(1), nil)
	appRepo.On("CheckExists", mock.Anything, int64(1), testCandidate).Return(false, nil)
	appRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	matchUC.On("ScanApplication", mock.Anything, testRecruiter, mock.Anything, true).
		Return(nil, apperror.Internal(assert.AnError))

	app, err := uc.ApplyToJob(context.Background(), testCandidate, 1, "", "")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApplied, app.Status)
	assert.Equal(t, domain.ScanScoreUnavailable, app.AIMatchScore)
}

func TestUpdateApplicationStatusTransitions(t *testing.T) {
	cases := []struct {
		name    string
		from    string
		to      string
		allowed bool
	}{
		{"applied to shortlisted", domain.StatusApplied, domain.StatusShortlisted, true},
		{"applied to rejected", domain.StatusApplied, domain.StatusRejected, true},
		{"applied straight to hired", domain.StatusApplied, domain.StatusHired, false},
		{"shortlisted to rejected", domain.StatusShortlisted, domain.StatusRejected, true},
		{"interview to hired", domain.StatusInterview, domain.StatusHired, true},
		{"interview to rejected_after_interview", domain.StatusInterview, domain.StatusRejectedAfterInterview, true},
		{"interview to plain rejected", domain.StatusInterview, domain.StatusRejected, false},
		{"legacy scheduled treated as interview", domain.StatusScheduled, domain.StatusHired, true},
		{"hired is terminal", domain.StatusHired, domain.StatusRejected, false},
		{"cancelled is terminal", domain.StatusCancelled, domain.StatusShortlisted, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc, appRepo, jobRepo, _, _ := newAppUsecase(t)
			appRepo.On("GetByID", mock.Anything, int64(5)).
				Return(&domain.Application{ID: 5, JobID: 1, Status: tc.from}, nil)
			jobRepo.On("GetByID", mock.Anything, int64(1)).Return(ownedJob(1), nil)
			if tc.allowed {
				appRepo.On("UpdateStatus", mock.Anything, int64(5), tc.to).Return(nil)
			}

			app, err := uc.UpdateApplicationStatus(context.Background(), testRecruiter, 5, domain.StatusChange{Status: tc.to})
			if tc.allowed {
				require.NoError(t, err)
				assert.Equal(t, tc.to, app.Status)
			} else {
				require.Error(t, err)
				assert.Equal(t, 400, statusCode(t, err))
				appRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
			}
		})
	}
}

func TestUpdateApplicationStatusRecruiterCannotCancel(t *testing.T) {
	uc, appRepo, _, _, _ := newAppUsecase(t)

	_, err := uc.UpdateApplicationStatus(context.Background(), testRecruiter, 5, domain.StatusChange{Status: domain.StatusCancelled})
	require.Error(t, err)
	assert.Equal(t, 403, statusCode(t, err))
	appRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestUpdateApplicationStatusOwnershipEnforced(t *testing.T) {
	uc, appRepo, jobRepo, _, _ := newAppUsecase(t)
	appRepo.On("GetByID", mock.Anything, int64(5)).
		Return(&domain.Application{ID: 5, JobID: 1, Status: domain.StatusApplied}, nil)
	jobRepo.On("GetByID", mock.Anything, int64(1)).
		Return(&domain.Job{ID: 1, RecruiterUserID: "someone-else"}, nil)

	_, err := uc.UpdateApplicationStatus(context.Background(), testRecruiter, 5, domain.StatusChange{Status: domain.StatusShortlisted})
	require.Error(t, err)
	assert.Equal(t, 403, statusCode(t, err))
}

func TestScheduleInterviewProposedSlotConflict(t *testing.T) {
	uc, appRepo, jobRepo, companyRepo, _ := newAppUsecase(t)
	appRepo.On("GetByID", mock.Anything, int64(5)).
		Return(&domain.Application{ID: 5, JobID: 1, Status: domain.StatusShortlisted}, nil)
	jobRepo.On("GetByID", mock.Anything, int64(1)).Return(ownedJob(1), nil)
	companyRepo.On("GetByUserID", mock.Anything, testRecruiter).Return(nil, domain.ErrNotFound)

	slot := domain.InterviewSlot{Date: "2026-01-07", Time: "10:45"}
	scope := domain.InterviewScope{RecruiterID: testRecruiter}
	appRepo.On("ScheduleInterview", mock.Anything, int64(5), scope, slot, mock.Anything).
		Return(domain.ErrSlotTaken)

	_, err := uc.UpdateApplicationStatus(context.Background(), testRecruiter, 5, domain.StatusChange{
		Status:        domain.StatusInterview,
		InterviewDate: "2026-01-07",
		InterviewTime: "10:45",
	})
	require.Error(t, err)
	// A caller-proposed slot conflict is surfaced, never silently reassigned
	assert.Equal(t, 409, statusCode(t, err))
}

func TestScheduleInterviewProposedSlotOffGrid(t *testing.T) {
	uc, appRepo, jobRepo, companyRepo, _ := newAppUsecase(t)
	appRepo.On("GetByID", mock.Anything, int64(5)).
		Return(&domain.Application{ID: 5, JobID: 1, Status: domain.StatusShortlisted}, nil)
	jobRepo.On("GetByID", mock.Anything, int64(1)).Return(ownedJob(1), nil)
	companyRepo.On("GetByUserID", mock.Anything, testRecruiter).Return(nil, domain.ErrNotFound)

	// Saturday
	_, err := uc.UpdateApplicationStatus(context.Background(), testRecruiter, 5, domain.StatusChange{
		Status:        domain.StatusInterview,
		InterviewDate: "2026-01-10",
		InterviewTime: "10:00",
	})
	require.Error(t, err)
	assert.Equal(t, 400, statusCode(t, err))

	// off the 45-minute grid
	_, err = uc.UpdateApplicationStatus(context.Background(), testRecruiter, 5, domain.StatusChange{
		Status:        domain.StatusInterview,
		InterviewDate: "2026-01-07",
		InterviewTime: "10:30",
	})
	require.Error(t, err)
	assert.Equal(t, 400, statusCode(t, err))
	appRepo.AssertNotCalled(t, "ScheduleInterview", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestScheduleInterviewAutoAssignRetriesLostRace(t *testing.T) {
	uc, appRepo, jobRepo, companyRepo, _ := newAppUsecase(t)
	appRepo.On("GetByID", mock.Anything, int64(5)).
		Return(&domain.Application{ID: 5, JobID: 1, Status: domain.StatusShortlisted}, nil)
	jobRepo.On("GetByID", mock.Anything, int64(1)).Return(ownedJob(1), nil)
	companyRepo.On("GetByUserID", mock.Anything, testRecruiter).Return(nil, domain.ErrNotFound)

	scope := domain.InterviewScope{RecruiterID: testRecruiter}
	first := domain.InterviewSlot{Date: "2026-01-07", Time: "10:00"}
	second := domain.InterviewSlot{Date: "2026-01-07", Time: "10:45"}

	// First attempt: empty booked set, but another recruiter wins the write
	appRepo.On("BookedSlots", mock.Anything, scope, int64(5)).
		Return([]domain.InterviewSlot{}, nil).Once()
	appRepo.On("ScheduleInterview", mock.Anything, int64(5), scope, first, mock.Anything).
		Return(domain.ErrSlotTaken).Once()
	// Retry re-reads the booked set, which now contains the winner's slot
	appRepo.On("BookedSlots", mock.Anything, scope, int64(5)).
		Return([]domain.InterviewSlot{first}, nil).Once()
	appRepo.On("ScheduleInterview", mock.Anything, int64(5), scope, second, mock.Anything).
		Return(nil).Once()

	app, err := uc.UpdateApplicationStatus(context.Background(), testRecruiter, 5, domain.StatusChange{Status: domain.StatusInterview})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInterview, app.Status)
	require.NotNil(t, app.InterviewDate)
	assert.Equal(t, "2026-01-07", *app.InterviewDate)
	assert.Equal(t, "10:45", *app.InterviewTime)
	require.NotNil(t, app.MeetingLink)
	assert.Contains(t, *app.MeetingLink, "https://meet.example.com/")
	appRepo.AssertExpectations(t)
}

func TestScheduleInterviewCompanyScopeShared(t *testing.T) {
	uc, appRepo, jobRepo, companyRepo, _ := newAppUsecase(t)
	appRepo.On("GetByID", mock.Anything, int64(5)).
		Return(&domain.Application{ID: 5, JobID: 1, Status: domain.StatusShortlisted}, nil)
	jobRepo.On("GetByID", mock.Anything, int64(1)).Return(ownedJob(1), nil)
	companyRepo.On("GetByUserID", mock.Anything, testRecruiter).
		Return(&domain.CompanyProfile{ID: 7, UserID: testRecruiter, CompanyName: "Acme"}, nil)

	appRepo.On("BookedSlots", mock.Anything, mock.MatchedBy(func(s domain.InterviewScope) bool {
		return s.Key() == "company:7"
	}), int64(5)).Return([]domain.InterviewSlot{}, nil)
	appRepo.On("ScheduleInterview", mock.Anything, int64(5), mock.MatchedBy(func(s domain.InterviewScope) bool {
		return s.Key() == "company:7"
	}), mock.Anything, mock.Anything).Return(nil)

	_, err := uc.UpdateApplicationStatus(context.Background(), testRecruiter, 5, domain.StatusChange{Status: domain.StatusInterview})
	require.NoError(t, err)
	appRepo.AssertExpectations(t)
}

func TestScheduleInterviewRecruiterScopesAreIsolated(t *testing.T) {
	uc, appRepo, jobRepo, companyRepo, _ := newAppUsecase(t)

	appRepo.On("GetByID", mock.Anything, int64(5)).
		Return(&domain.Application{ID: 5, JobID: 1, Status: domain.StatusShortlisted}, nil)
	appRepo.On("GetByID", mock.Anything, int64(6)).
		Return(&domain.Application{ID: 6, JobID: 2, Status: domain.StatusShortlisted}, nil)
	jobRepo.On("GetByID", mock.Anything, int64(1)).Return(ownedJob(1), nil)
	jobRepo.On("GetByID", mock.Anything, int64(2)).
		Return(&domain.Job{ID: 2, RecruiterUserID: "rec-2", Title: "Data Engineer", Status: "active"}, nil)
	companyRepo.On("GetByUserID", mock.Anything, mock.Anything).Return(nil, domain.ErrNotFound)

	scopeA := func(s domain.InterviewScope) bool { return s.Key() == "recruiter:"+testRecruiter }
	scopeB := func(s domain.InterviewScope) bool { return s.Key() == "recruiter:rec-2" }
	slot := domain.InterviewSlot{Date: "2026-01-07", Time: "10:00"}

	// The booked set is keyed by scope: rec-2's query stays empty even after
	// rec-1 has taken 10:00, so both land on the identical slot.
	appRepo.On("BookedSlots", mock.Anything, mock.MatchedBy(scopeA), int64(5)).
		Return([]domain.InterviewSlot{}, nil)
	appRepo.On("BookedSlots", mock.Anything, mock.MatchedBy(scopeB), int64(6)).
		Return([]domain.InterviewSlot{}, nil)
	appRepo.On("ScheduleInterview", mock.Anything, int64(5), mock.MatchedBy(scopeA), slot, mock.Anything).Return(nil)
	appRepo.On("ScheduleInterview", mock.Anything, int64(6), mock.MatchedBy(scopeB), slot, mock.Anything).Return(nil)

	appA, err := uc.UpdateApplicationStatus(context.Background(), testRecruiter, 5, domain.StatusChange{Status: domain.StatusInterview})
	require.NoError(t, err)
	appB, err := uc.UpdateApplicationStatus(context.Background(), "rec-2", 6, domain.StatusChange{Status: domain.StatusInterview})
	require.NoError(t, err)

	assert.Equal(t, "10:00", *appA.InterviewTime)
	assert.Equal(t, *appA.InterviewDate, *appB.InterviewDate)
	assert.Equal(t, *appA.InterviewTime, *appB.InterviewTime)
	appRepo.AssertExpectations(t)
}

func TestCancelInterviewOwnerOnly(t *testing.T) {
	uc, appRepo, _, _, _ := newAppUsecase(t)
	appRepo.On("GetByID", mock.Anything, int64(5)).
		Return(&domain.Application{ID: 5, CandidateUserID: testCandidate, Status: domain.StatusInterview}, nil)

	err := uc.CancelInterview(context.Background(), "intruder", 5)
	require.Error(t, err)
	assert.Equal(t, 403, statusCode(t, err))
	appRepo.AssertNotCalled(t, "CancelInterview", mock.Anything, mock.Anything)
}

func TestCancelInterviewRequiresInterviewStatus(t *testing.T) {
	uc, appRepo, _, _, _ := newAppUsecase(t)
	appRepo.On("GetByID", mock.Anything, int64(5)).
		Return(&domain.Application{ID: 5, CandidateUserID: testCandidate, Status: domain.StatusShortlisted}, nil)

	err := uc.CancelInterview(context.Background(), testCandidate, 5)
	require.Error(t, err)
	assert.Equal(t, 400, statusCode(t, err))
}

func TestCancelInterviewReleasesSlot(t *testing.T) {
	for _, status := range []string{domain.StatusInterview, domain.StatusScheduled} {
		t.Run(status, func(t *testing.T) {
			uc, appRepo, _, _, _ := newAppUsecase(t)
			appRepo.On("GetByID", mock.Anything, int64(5)).
				Return(&domain.Application{ID: 5, CandidateUserID: testCandidate, Status: status}, nil)
			appRepo.On("CancelInterview", mock.Anything, int64(5)).Return(nil)

			require.NoError(t, uc.CancelInterview(context.Background(), testCandidate, 5))
			appRepo.AssertExpectations(t)
		})
	}
}

func TestBulkScanOnlyAppliedApplications(t *testing.T) {
	uc, appRepo, jobRepo, _, matchUC := newAppUsecase(t)
	jobRepo.On("GetByID", mock.Anything, int64(1)).Return(ownedJob(1), nil)
	appRepo.On("GetByJobID", mock.Anything, int64(1)).Return([]domain.Application{
		{ID: 10, JobID: 1, Status: domain.StatusApplied},
		{ID: 11, JobID: 1, Status: domain.StatusHired},
		{ID: 12, JobID: 1, Status: domain.StatusApplied},
	}, nil)
	matchUC.On("ScanApplication", mock.Anything, testRecruiter, int64(10), true).
		Return(&domain.ScanResult{ApplicationID: 10, Score: 40, NewStatus: domain.StatusRejected}, nil)
	matchUC.On("ScanApplication", mock.Anything, testRecruiter, int64(12), true).
		Return(&domain.ScanResult{ApplicationID: 12, Score: 85, NewStatus: domain.StatusShortlisted}, nil)

	results, err := uc.BulkScan(context.Background(), testRecruiter, 1, false)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, int64(10), results[0].ApplicationID)
	assert.Equal(t, int64(12), results[1].ApplicationID)
	matchUC.AssertNotCalled(t, "ScanApplication", mock.Anything, mock.Anything, int64(11), mock.Anything)
}

func TestBulkScanAutoSchedulesShortlisted(t *testing.T) {
	uc, appRepo, jobRepo, companyRepo, matchUC := newAppUsecase(t)
	jobRepo.On("GetByID", mock.Anything, int64(1)).Return(ownedJob(1), nil)
	appRepo.On("GetByJobID", mock.Anything, int64(1)).Return([]domain.Application{
		{ID: 10, JobID: 1, Status: domain.StatusApplied},
	}, nil)
	matchUC.On("ScanApplication", mock.Anything, testRecruiter, int64(10), true).
		Return(&domain.ScanResult{ApplicationID: 10, Score: 85, NewStatus: domain.StatusShortlisted}, nil)
	companyRepo.On("GetByUserID", mock.Anything, testRecruiter).Return(nil, domain.ErrNotFound)
	appRepo.On("BookedSlots", mock.Anything, mock.Anything, int64(10)).Return([]domain.InterviewSlot{}, nil)
	appRepo.On("ScheduleInterview", mock.Anything, int64(10), mock.Anything, domain.InterviewSlot{Date: "2026-01-07", Time: "10:00"}, mock.Anything).Return(nil)

	results, err := uc.BulkScan(context.Background(), testRecruiter, 1, true)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, domain.StatusInterview, results[0].NewStatus)
	appRepo.AssertExpectations(t)
}

func TestBulkScanScanFailureRecordedNotFatal(t *testing.T) {
	uc, appRepo, jobRepo, _, matchUC := newAppUsecase(t)
	jobRepo.On("GetByID", mock.Anything, int64(1)).Return(ownedJob(1), nil)
	appRepo.On("GetByJobID", mock.Anything, int64(1)).Return([]domain.Application{
		{ID: 10, JobID: 1, Status: domain.StatusApplied},
		{ID: 11, JobID: 1, Status: domain.StatusApplied},
	}, nil)
	matchUC.On("ScanApplication", mock.Anything, testRecruiter, int64(10), true).
		Return(nil, apperror.Internal(assert.AnError))
	matchUC.On("ScanApplication", mock.Anything, testRecruiter, int64(11), true).
		Return(&domain.ScanResult{ApplicationID: 11, Score: 70, NewStatus: domain.StatusShortlisted}, nil)

	results, err := uc.BulkScan(context.Background(), testRecruiter, 1, false)
	require.NoError(t, err)
	require.Len(t, results, 2)
	// A failed scan is an adapter failure, not short candidate text: the row
	// carries an error marker, never the insufficient-input flag.
	assert.NotEmpty(t, results[0].Error)
	assert.False(t, results[0].Insufficient)
	assert.Equal(t, domain.ScanScoreUnavailable, results[0].Score)
	assert.Equal(t, 70, results[1].Score)
	assert.Empty(t, results[1].Error)
}
