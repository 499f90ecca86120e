package domain

import "context"

// ResumeTextExtractor turns a stored resume reference into raw text.
// Any failure is treated by callers as "no usable text": they fall back to
// profile-field synthesis rather than propagating the error.
type ResumeTextExtractor interface {
	ExtractText(ctx context.Context, resumeKey string) (string, error)
}

// Notification template kinds.
const (
	NotifyStatusChange       = "status_change"
	NotifyInterviewScheduled = "interview_scheduled"
	NotifyInterviewReminder  = "interview_reminder"
)

// NotificationPayload carries the template data for a single message.
type NotificationPayload struct {
	CandidateName string
	JobTitle      string
	Status        string
	InterviewDate string
	InterviewTime string
	MeetingLink   string
}

// Notifier is a fire-and-forget sink. Senders must log failures and never let
// them fail the state transition that triggered the message.
type Notifier interface {
	Notify(ctx context.Context, recipient, kind string, payload NotificationPayload) error
}
