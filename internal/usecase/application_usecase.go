package usecase

import (
	"context"
	"errors"
	"time"

	"go-jobportal-backend/internal/domain"
	"go-jobportal-backend/internal/scheduling"
	"go-jobportal-backend/pkg/apperror"
	"go-jobportal-backend/pkg/logger"

	"github.com/google/uuid"
)

// maxScheduleRetries bounds the conflict-retry loop when auto-assigning a
// slot. Each retry re-reads the booked set, so losing the race more than a
// couple of times in a row means pathological contention.
const maxScheduleRetries = 3

// allowedTransitions is the application state machine. Keys and values are
// canonical statuses; "scheduled" rows are normalized before lookup.
var allowedTransitions = map[string][]string{
	domain.StatusApplied:     {domain.StatusShortlisted, domain.StatusRejected},
	domain.StatusShortlisted: {domain.StatusInterview, domain.StatusRejected},
	domain.StatusInterview:   {domain.StatusHired, domain.StatusRejectedAfterInterview},
}

type applicationUsecase struct {
	applicationRepo domain.ApplicationRepository
	jobRepo         domain.JobRepository
	companyRepo     domain.CompanyProfileRepository
	matchUC         domain.MatchUsecase
	notifier        domain.Notifier
	meetingLinkBase string
	now             func() time.Time
}

// NewApplicationUsecase creates a new application usecase. matchUC may be nil
// in tests that do not exercise the apply-time scan.
func NewApplicationUsecase(
	appRepo domain.ApplicationRepository,
	jobRepo domain.JobRepository,
	companyRepo domain.CompanyProfileRepository,
	matchUC domain.MatchUsecase,
	notifier domain.Notifier,
	meetingLinkBase string,
) domain.ApplicationUsecase {
	return &applicationUsecase{
		applicationRepo: appRepo,
		jobRepo:         jobRepo,
		companyRepo:     companyRepo,
		matchUC:         matchUC,
		notifier:        notifier,
		meetingLinkBase: meetingLinkBase,
		now:             time.Now,
	}
}

// ApplyToJob creates the application and then scans it best-effort. The apply
// itself always succeeds even when scanning fails.
func (uc *applicationUsecase) ApplyToJob(ctx context.Context, userID string, jobID int64, resumeKey, coverLetter string) (*domain.Application, error) {
	job, err := uc.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, apperror.NotFound("Job not found")
	}
	if job.Status != "active" {
		return nil, apperror.BadRequest("Cannot apply to a closed job")
	}

	exists, err := uc.applicationRepo.CheckExists(ctx, jobID, userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if exists {
		return nil, apperror.BadRequest("You have already applied to this job")
	}

	var coverLetterPtr *string
	if coverLetter != "" {
		coverLetterPtr = &coverLetter
	}

	app := &domain.Application{
		JobID:           jobID,
		CandidateUserID: userID,
		ResumeKey:       resumeKey,
		CoverLetter:     coverLetterPtr,
		Status:          domain.StatusApplied,
		AIMatchScore:    domain.ScanScoreUnavailable,
	}
	if err := uc.applicationRepo.Create(ctx, app); err != nil {
		return nil, apperror.Internal(err)
	}

	// Apply-time scan with auto-classification. Soft failure only: the
	// application stays in "applied" with the sentinel score if the scan
	// cannot run.
	if uc.matchUC != nil {
		if result, err := uc.matchUC.ScanApplication(ctx, job.RecruiterUserID, app.ID, true); err != nil {
			logger.Log.Warn("apply-time scan failed", "application_id", app.ID, "error", err)
		} else {
			app.AIMatchScore = result.Score
			app.AIAnalysis = result.Analysis
			if result.NewStatus != "" {
				app.Status = result.NewStatus
			}
		}
	}

	return app, nil
}

// GetMyApplications returns all applications for the current candidate
func (uc *applicationUsecase) GetMyApplications(ctx context.Context, userID string) ([]domain.Application, error) {
	return uc.applicationRepo.GetByUserID(ctx, userID)
}

// ListByJobID returns all applications for a job (recruiter only, validated by ownership)
func (uc *applicationUsecase) ListByJobID(ctx context.Context, userID string, jobID int64) ([]domain.Application, error) {
	if _, err := uc.requireJobOwnership(ctx, userID, jobID); err != nil {
		return nil, err
	}
	return uc.applicationRepo.GetByJobID(ctx, jobID)
}

// GetApplicationDetail returns one application with joined candidate/job data
func (uc *applicationUsecase) GetApplicationDetail(ctx context.Context, userID string, applicationID int64) (*domain.Application, error) {
	app, err := uc.applicationRepo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, apperror.NotFound("Application not found")
	}
	if _, err := uc.requireJobOwnership(ctx, userID, app.JobID); err != nil {
		return nil, err
	}
	return app, nil
}

// UpdateApplicationStatus drives the recruiter-side state machine. A move
// into interview status books a slot: a caller-supplied slot is validated and
// rejected on conflict, an omitted one is auto-assigned.
func (uc *applicationUsecase) UpdateApplicationStatus(ctx context.Context, userID string, applicationID int64, change domain.StatusChange) (*domain.Application, error) {
	target := domain.CanonicalStatus(change.Status)
	if target == domain.StatusCancelled {
		return nil, apperror.Forbidden("Only the candidate can cancel an interview")
	}

	app, err := uc.applicationRepo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, apperror.NotFound("Application not found")
	}
	if _, err := uc.requireJobOwnership(ctx, userID, app.JobID); err != nil {
		return nil, err
	}

	current := domain.CanonicalStatus(app.Status)
	if !transitionAllowed(current, target) {
		return nil, apperror.BadRequest("Cannot move application from " + app.Status + " to " + change.Status)
	}

	if target == domain.StatusInterview {
		if err := uc.scheduleInterview(ctx, userID, app, change); err != nil {
			return nil, err
		}
	} else {
		if err := uc.applicationRepo.UpdateStatus(ctx, applicationID, target); err != nil {
			return nil, apperror.Internal(err)
		}
		app.Status = target
	}

	uc.notifyStatus(ctx, app)
	return app, nil
}

// scheduleInterview books a slot for the application within the recruiter's
// scope. The repository's uniqueness constraint is the arbiter: a lost race
// on an auto-assigned slot is retried with the next free one, a conflict on a
// caller-proposed slot is surfaced as 409.
func (uc *applicationUsecase) scheduleInterview(ctx context.Context, userID string, app *domain.Application, change domain.StatusChange) error {
	scope, err := uc.resolveScope(ctx, userID)
	if err != nil {
		return apperror.Internal(err)
	}

	meetingLink := change.MeetingLink
	if meetingLink == "" {
		if app.MeetingLink != nil && *app.MeetingLink != "" {
			meetingLink = *app.MeetingLink
		} else {
			meetingLink = uc.meetingLinkBase + "/" + uuid.NewString()
		}
	}

	// Caller-proposed slot: validate against the grid, then let the unique
	// index decide availability. No state change on conflict.
	if change.InterviewDate != "" || change.InterviewTime != "" {
		slot := domain.InterviewSlot{Date: change.InterviewDate, Time: change.InterviewTime}
		if err := scheduling.ValidateSlot(slot); err != nil {
			return apperror.BadRequest(err.Error())
		}
		err := uc.applicationRepo.ScheduleInterview(ctx, app.ID, scope, slot, meetingLink)
		if errors.Is(err, domain.ErrSlotTaken) {
			return apperror.Conflict("That interview slot is already booked, pick another time")
		}
		if err != nil {
			return apperror.Internal(err)
		}
		uc.applyScheduled(app, slot, meetingLink)
		return nil
	}

	// Auto-assign: compute the next free slot and write it. Losing the race
	// re-reads the booked set, which now contains the winner's slot.
	for attempt := 0; attempt <= maxScheduleRetries; attempt++ {
		bookedList, err := uc.applicationRepo.BookedSlots(ctx, scope, app.ID)
		if err != nil {
			return apperror.Internal(err)
		}
		booked := make(map[domain.InterviewSlot]bool, len(bookedList))
		for _, s := range bookedList {
			booked[s] = true
		}

		slot, found := scheduling.NextAvailable(uc.now(), booked)
		if !found {
			logger.Log.Warn("slot search horizon exhausted, using fallback",
				"scope", scope.Key(), "slot_date", slot.Date, "slot_time", slot.Time)
		}

		err = uc.applicationRepo.ScheduleInterview(ctx, app.ID, scope, slot, meetingLink)
		if errors.Is(err, domain.ErrSlotTaken) {
			logger.Log.Info("lost slot race, retrying",
				"application_id", app.ID, "slot_date", slot.Date, "slot_time", slot.Time)
			continue
		}
		if err != nil {
			return apperror.Internal(err)
		}
		uc.applyScheduled(app, slot, meetingLink)
		return nil
	}
	return apperror.Conflict("Could not secure an interview slot, please retry")
}

func (uc *applicationUsecase) applyScheduled(app *domain.Application, slot domain.InterviewSlot, meetingLink string) {
	app.Status = domain.StatusInterview
	app.InterviewDate = &slot.Date
	app.InterviewTime = &slot.Time
	app.MeetingLink = &meetingLink
}

// BulkScan runs the auto-classifying scan over every still-applied
// application on a job. Scan failures on individual applications are recorded
// in the result set, never fatal to the sweep. With autoSchedule, a freshly
// shortlisted application is carried straight into interview with an
// auto-assigned slot.
func (uc *applicationUsecase) BulkScan(ctx context.Context, userID string, jobID int64, autoSchedule bool) ([]domain.ScanResult, error) {
	if _, err := uc.requireJobOwnership(ctx, userID, jobID); err != nil {
		return nil, err
	}
	apps, err := uc.applicationRepo.GetByJobID(ctx, jobID)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	results := make([]domain.ScanResult, 0, len(apps))
	for i := range apps {
		app := &apps[i]
		if domain.CanonicalStatus(app.Status) != domain.StatusApplied {
			continue
		}
		result, err := uc.matchUC.ScanApplication(ctx, userID, app.ID, true)
		if err != nil {
			logger.Log.Warn("bulk scan skipped application", "application_id", app.ID, "error", err)
			results = append(results, domain.ScanResult{
				ApplicationID: app.ID,
				Score:         domain.ScanScoreUnavailable,
				Error:         "scan failed",
			})
			continue
		}
		if autoSchedule && result.NewStatus == domain.StatusShortlisted {
			app.Status = domain.StatusShortlisted
			if err := uc.scheduleInterview(ctx, userID, app, domain.StatusChange{Status: domain.StatusInterview}); err != nil {
				logger.Log.Warn("bulk scan could not auto-schedule", "application_id", app.ID, "error", err)
			} else {
				result.NewStatus = domain.StatusInterview
				uc.notifyStatus(ctx, app)
			}
		}
		results = append(results, *result)
	}
	return results, nil
}

// CancelInterview is the candidate's own transition: only the applicant may
// cancel, and only while the application holds a slot. The slot fields are
// cleared so the slot is released back to the scope.
func (uc *applicationUsecase) CancelInterview(ctx context.Context, userID string, applicationID int64) error {
	app, err := uc.applicationRepo.GetByID(ctx, applicationID)
	if err != nil {
		return apperror.NotFound("Application not found")
	}
	if app.CandidateUserID != userID {
		return apperror.Forbidden("You can only cancel your own interview")
	}
	if !domain.IsInterviewStatus(app.Status) {
		return apperror.BadRequest("Only a scheduled interview can be cancelled")
	}
	if err := uc.applicationRepo.CancelInterview(ctx, applicationID); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

// resolveScope returns the booking scope for a recruiter: the linked company
// when there is one, otherwise the recruiter alone. Recruiters at the same
// company therefore share one slot namespace.
func (uc *applicationUsecase) resolveScope(ctx context.Context, recruiterUserID string) (domain.InterviewScope, error) {
	company, err := uc.companyRepo.GetByUserID(ctx, recruiterUserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.InterviewScope{RecruiterID: recruiterUserID}, nil
		}
		return domain.InterviewScope{}, err
	}
	return domain.InterviewScope{CompanyID: &company.ID, RecruiterID: recruiterUserID}, nil
}

// requireJobOwnership checks the job exists and belongs to the caller.
func (uc *applicationUsecase) requireJobOwnership(ctx context.Context, userID string, jobID int64) (*domain.Job, error) {
	job, err := uc.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, apperror.NotFound("Job not found")
	}
	if job.RecruiterUserID != userID {
		return nil, apperror.Forbidden("You do not own this job posting")
	}
	return job, nil
}

// notifyStatus is fire-and-forget: a notification failure is logged and never
// fails the transition that triggered it.
func (uc *applicationUsecase) notifyStatus(ctx context.Context, app *domain.Application) {
	if uc.notifier == nil || app.CandidateEmail == nil || *app.CandidateEmail == "" {
		return
	}
	payload := domain.NotificationPayload{
		Status: app.Status,
	}
	if app.CandidateName != nil {
		payload.CandidateName = *app.CandidateName
	}
	if app.JobTitle != nil {
		payload.JobTitle = *app.JobTitle
	}
	kind := domain.NotifyStatusChange
	if domain.IsInterviewStatus(app.Status) {
		kind = domain.NotifyInterviewScheduled
		if app.InterviewDate != nil {
			payload.InterviewDate = *app.InterviewDate
		}
		if app.InterviewTime != nil {
			payload.InterviewTime = *app.InterviewTime
		}
		if app.MeetingLink != nil {
			payload.MeetingLink = *app.MeetingLink
		}
	}
	if err := uc.notifier.Notify(ctx, *app.CandidateEmail, kind, payload); err != nil {
		logger.Log.Error("notification failed", "application_id", app.ID, "kind", kind, "error", err)
	}
}

func transitionAllowed(from, to string) bool {
	for _, allowed := range allowedTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}
