package domain

import (
	"context"
	"errors"
	"strconv"
	"time"
)

// Application status constants.
// Flow: applied → shortlisted/rejected → interview → hired / rejected_after_interview / cancelled.
// "scheduled" is a legacy synonym for "interview" written by the old backend;
// it is accepted on read but never produced by new transitions.
const (
	StatusApplied                = "applied"
	StatusShortlisted            = "shortlisted"
	StatusInterview              = "interview"
	StatusScheduled              = "scheduled"
	StatusHired                  = "hired"
	StatusRejected               = "rejected"
	StatusRejectedAfterInterview = "rejected_after_interview"
	StatusCancelled              = "cancelled"
)

// ScanScoreUnavailable marks an application whose resume could not be scanned.
// Absence of data must not be conflated with a bad match.
const ScanScoreUnavailable = -1

// AutoClassifyThreshold is the scan score at or above which an application
// is auto-shortlisted (and below which it is auto-rejected).
const AutoClassifyThreshold = 60

// ErrSlotTaken signals that another application in the same scope already
// holds the requested interview slot.
var ErrSlotTaken = errors.New("interview slot already taken")

// Application represents a job application from a candidate
type Application struct {
	ID              int64       `json:"id"`
	JobID           int64       `json:"job_id"`
	CandidateUserID string      `json:"candidate_user_id"`
	ResumeKey       string      `json:"resume_key"` // object key of the uploaded resume, may be empty
	CoverLetter     *string     `json:"cover_letter,omitempty"`
	Status          string      `json:"status"`
	AIMatchScore    int         `json:"ai_match_score"` // -1 = could not scan
	AIAnalysis      *AIAnalysis `json:"ai_analysis,omitempty"`
	InterviewDate   *string     `json:"interview_date,omitempty"` // "2006-01-02"
	InterviewTime   *string     `json:"interview_time,omitempty"` // "15:04"
	MeetingLink     *string     `json:"meeting_link,omitempty"`
	ReminderSent    bool        `json:"reminder_sent"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`

	// Joined data for list responses
	CandidateName  *string `json:"candidate_name,omitempty"`
	CandidateEmail *string `json:"candidate_email,omitempty"`
	JobTitle       *string `json:"job_title,omitempty"`
}

// CanonicalStatus maps the legacy "scheduled" value onto "interview" so the
// state machine only ever reasons about one spelling.
func CanonicalStatus(status string) string {
	if status == StatusScheduled {
		return StatusInterview
	}
	return status
}

// IsInterviewStatus reports whether the application currently holds a slot.
func IsInterviewStatus(status string) bool {
	return CanonicalStatus(status) == StatusInterview
}

// InterviewSlot is a (date, time) pair held by an application.
type InterviewSlot struct {
	Date string `json:"date"` // "2006-01-02"
	Time string `json:"time"` // "15:04"
}

// InterviewScope identifies the booking namespace for slot uniqueness.
// Two recruiters at the same company share a scope; a recruiter without a
// company books against their own user ID.
type InterviewScope struct {
	CompanyID   *int64
	RecruiterID string
}

// Key returns the stable string stored alongside scheduled applications and
// covered by the slot uniqueness index.
func (s InterviewScope) Key() string {
	if s.CompanyID != nil {
		return "company:" + strconv.FormatInt(*s.CompanyID, 10)
	}
	return "recruiter:" + s.RecruiterID
}

// StatusChange is a recruiter-driven status transition request. Date, Time and
// MeetingLink are only honored when Status is "interview".
type StatusChange struct {
	Status        string `json:"status" binding:"required"`
	InterviewDate string `json:"interview_date" binding:"omitempty,dateonly"`
	InterviewTime string `json:"interview_time" binding:"omitempty,hhmm"`
	MeetingLink   string `json:"meeting_link" binding:"omitempty,url"`
}

// ApplicationRepository defines data access methods for applications
type ApplicationRepository interface {
	Create(ctx context.Context, app *Application) error
	GetByID(ctx context.Context, id int64) (*Application, error)
	GetByJobID(ctx context.Context, jobID int64) ([]Application, error)
	GetByUserID(ctx context.Context, userID string) ([]Application, error)
	CheckExists(ctx context.Context, jobID int64, userID string) (bool, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
	UpdateScan(ctx context.Context, id int64, score int, analysis *AIAnalysis) error

	// BookedSlots returns the (date, time) pairs currently held by
	// interview-status applications in the scope, excluding ignoreID.
	// Recomputed on every call; never cached.
	BookedSlots(ctx context.Context, scope InterviewScope, ignoreID int64) ([]InterviewSlot, error)

	// ScheduleInterview moves the application into interview status holding
	// the given slot. Returns ErrSlotTaken when another application in the
	// same scope already holds the slot (storage-level uniqueness).
	ScheduleInterview(ctx context.Context, id int64, scope InterviewScope, slot InterviewSlot, meetingLink string) error

	// CancelInterview sets status=cancelled and clears the slot fields.
	CancelInterview(ctx context.Context, id int64) error

	// DueForReminder lists interview-status applications starting within the
	// window that have not been reminded yet.
	DueForReminder(ctx context.Context, within time.Duration) ([]Application, error)
	MarkReminderSent(ctx context.Context, id int64) error
}

// ApplicationUsecase defines business logic for applications
type ApplicationUsecase interface {
	// Candidate operations
	ApplyToJob(ctx context.Context, userID string, jobID int64, resumeKey, coverLetter string) (*Application, error)
	GetMyApplications(ctx context.Context, userID string) ([]Application, error)
	CancelInterview(ctx context.Context, userID string, applicationID int64) error

	// Recruiter operations
	ListByJobID(ctx context.Context, userID string, jobID int64) ([]Application, error)
	GetApplicationDetail(ctx context.Context, userID string, applicationID int64) (*Application, error)
	UpdateApplicationStatus(ctx context.Context, userID string, applicationID int64, change StatusChange) (*Application, error)

	// BulkScan scans every still-applied application on a job with
	// auto-classification. With autoSchedule set, freshly shortlisted
	// applications are moved straight to interview with an auto-assigned
	// slot and a default meeting link.
	BulkScan(ctx context.Context, userID string, jobID int64, autoSchedule bool) ([]ScanResult, error)
}
