package usecase

import (
	"context"
	"time"

	"go-jobportal-backend/internal/domain"
	"go-jobportal-backend/pkg/logger"
)

// ReminderWorker periodically reminds candidates of upcoming interviews.
// Each sweep is independent; a failed send is retried on the next sweep
// because reminder_sent is only flagged after a successful notify.
type ReminderWorker struct {
	applicationRepo domain.ApplicationRepository
	notifier        domain.Notifier
	interval        time.Duration
	window          time.Duration
}

// NewReminderWorker creates a reminder sweep with the given tick interval and
// look-ahead window.
func NewReminderWorker(appRepo domain.ApplicationRepository, notifier domain.Notifier, interval, window time.Duration) *ReminderWorker {
	return &ReminderWorker{
		applicationRepo: appRepo,
		notifier:        notifier,
		interval:        interval,
		window:          window,
	}
}

// Run blocks until ctx is cancelled. Call it from its own goroutine.
func (w *ReminderWorker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Log.Info("reminder worker stopped")
			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

func (w *ReminderWorker) sweep(ctx context.Context) {
	due, err := w.applicationRepo.DueForReminder(ctx, w.window)
	if err != nil {
		logger.Log.Error("reminder sweep query failed", "error", err)
		return
	}
	for i := range due {
		app := &due[i]
		if app.CandidateEmail == nil || *app.CandidateEmail == "" {
			continue
		}
		payload := domain.NotificationPayload{Status: app.Status}
		if app.CandidateName != nil {
			payload.CandidateName = *app.CandidateName
		}
		if app.JobTitle != nil {
			payload.JobTitle = *app.JobTitle
		}
		if app.InterviewDate != nil {
			payload.InterviewDate = *app.InterviewDate
		}
		if app.InterviewTime != nil {
			payload.InterviewTime = *app.InterviewTime
		}
		if app.MeetingLink != nil {
			payload.MeetingLink = *app.MeetingLink
		}
		if err := w.notifier.Notify(ctx, *app.CandidateEmail, domain.NotifyInterviewReminder, payload); err != nil {
			logger.Log.Error("interview reminder failed", "application_id", app.ID, "error", err)
			continue
		}
		if err := w.applicationRepo.MarkReminderSent(ctx, app.ID); err != nil {
			logger.Log.Error("could not mark reminder sent", "application_id", app.ID, "error", err)
		}
	}
}
