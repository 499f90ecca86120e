package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go-jobportal-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// uniqueViolation is the postgres error code raised by the partial unique
// index on (scope_key, interview_date, interview_time) for interview rows.
const uniqueViolation = "23505"

type applicationRepo struct {
	db *pgxpool.Pool
}

// NewApplicationRepository creates a new application repository
func NewApplicationRepository(db *pgxpool.Pool) domain.ApplicationRepository {
	return &applicationRepo{db: db}
}

// Create inserts a new application
func (r *applicationRepo) Create(ctx context.Context, app *domain.Application) error {
	query := `
		INSERT INTO applications (job_id, candidate_user_id, resume_key, cover_letter, status, ai_match_score, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`

	now := time.Now()
	app.CreatedAt = now
	app.UpdatedAt = now
	if app.Status == "" {
		app.Status = domain.StatusApplied
	}
	if app.AIMatchScore == 0 {
		app.AIMatchScore = domain.ScanScoreUnavailable
	}

	return r.db.QueryRow(ctx, query,
		app.JobID,
		app.CandidateUserID,
		app.ResumeKey,
		app.CoverLetter,
		app.Status,
		app.AIMatchScore,
		app.CreatedAt,
		app.UpdatedAt,
	).Scan(&app.ID)
}

// GetByID retrieves an application by ID with joined candidate and job data
func (r *applicationRepo) GetByID(ctx context.Context, id int64) (*domain.Application, error) {
	query := `
		SELECT
			a.id, a.job_id, a.candidate_user_id, a.resume_key, a.cover_letter,
			a.status, a.ai_match_score, a.ai_analysis,
			a.interview_date, a.interview_time, a.meeting_link, a.reminder_sent,
			a.created_at, a.updated_at,
			cp.full_name as candidate_name,
			cp.email as candidate_email,
			j.title as job_title
		FROM applications a
		LEFT JOIN candidate_profiles cp ON a.candidate_user_id = cp.user_id
		LEFT JOIN jobs j ON a.job_id = j.id
		WHERE a.id = $1`

	var app domain.Application
	var analysisJSON []byte
	err := r.db.QueryRow(ctx, query, id).Scan(
		&app.ID, &app.JobID, &app.CandidateUserID, &app.ResumeKey, &app.CoverLetter,
		&app.Status, &app.AIMatchScore, &analysisJSON,
		&app.InterviewDate, &app.InterviewTime, &app.MeetingLink, &app.ReminderSent,
		&app.CreatedAt, &app.UpdatedAt,
		&app.CandidateName, &app.CandidateEmail, &app.JobTitle,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if len(analysisJSON) > 0 {
		var analysis domain.AIAnalysis
		if err := json.Unmarshal(analysisJSON, &analysis); err == nil {
			app.AIAnalysis = &analysis
		}
	}
	return &app, nil
}

// GetByJobID retrieves all applications for a job, newest first
func (r *applicationRepo) GetByJobID(ctx context.Context, jobID int64) ([]domain.Application, error) {
	query := `
		SELECT
			a.id, a.job_id, a.candidate_user_id, a.resume_key, a.cover_letter,
			a.status, a.ai_match_score,
			a.interview_date, a.interview_time, a.meeting_link, a.reminder_sent,
			a.created_at, a.updated_at,
			cp.full_name as candidate_name,
			cp.email as candidate_email
		FROM applications a
		LEFT JOIN candidate_profiles cp ON a.candidate_user_id = cp.user_id
		WHERE a.job_id = $1
		ORDER BY a.ai_match_score DESC, a.created_at DESC`

	rows, err := r.db.Query(ctx, query, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var applications []domain.Application
	for rows.Next() {
		var app domain.Application
		if err := rows.Scan(
			&app.ID, &app.JobID, &app.CandidateUserID, &app.ResumeKey, &app.CoverLetter,
			&app.Status, &app.AIMatchScore,
			&app.InterviewDate, &app.InterviewTime, &app.MeetingLink, &app.ReminderSent,
			&app.CreatedAt, &app.UpdatedAt,
			&app.CandidateName, &app.CandidateEmail,
		); err != nil {
			return nil, err
		}
		applications = append(applications, app)
	}
	return applications, rows.Err()
}

// GetByUserID retrieves all applications for a candidate with job titles
func (r *applicationRepo) GetByUserID(ctx context.Context, userID string) ([]domain.Application, error) {
	query := `
		SELECT
			a.id, a.job_id, a.candidate_user_id, a.resume_key, a.cover_letter,
			a.status, a.ai_match_score,
			a.interview_date, a.interview_time, a.meeting_link, a.reminder_sent,
			a.created_at, a.updated_at,
			j.title as job_title
		FROM applications a
		LEFT JOIN jobs j ON a.job_id = j.id
		WHERE a.candidate_user_id = $1
		ORDER BY a.created_at DESC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var applications []domain.Application
	for rows.Next() {
		var app domain.Application
		if err := rows.Scan(
			&app.ID, &app.JobID, &app.CandidateUserID, &app.ResumeKey, &app.CoverLetter,
			&app.Status, &app.AIMatchScore,
			&app.InterviewDate, &app.InterviewTime, &app.MeetingLink, &app.ReminderSent,
			&app.CreatedAt, &app.UpdatedAt,
			&app.JobTitle,
		); err != nil {
			return nil, err
		}
		applications = append(applications, app)
	}
	return applications, rows.Err()
}

// CheckExists checks if an application already exists for the job/user combination
func (r *applicationRepo) CheckExists(ctx context.Context, jobID int64, userID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM applications WHERE job_id = $1 AND candidate_user_id = $2)`
	var exists bool
	err := r.db.QueryRow(ctx, query, jobID, userID).Scan(&exists)
	return exists, err
}

// UpdateStatus updates the status of an application and sets updated_at
func (r *applicationRepo) UpdateStatus(ctx context.Context, id int64, status string) error {
	query := `UPDATE applications SET status = $2, updated_at = $3 WHERE id = $1`
	result, err := r.db.Exec(ctx, query, id, status, time.Now())
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateScan persists the scan score and breakdown
func (r *applicationRepo) UpdateScan(ctx context.Context, id int64, score int, analysis *domain.AIAnalysis) error {
	var analysisJSON []byte
	if analysis != nil {
		var err error
		analysisJSON, err = json.Marshal(analysis)
		if err != nil {
			return err
		}
	}
	query := `UPDATE applications SET ai_match_score = $2, ai_analysis = $3, updated_at = $4 WHERE id = $1`
	result, err := r.db.Exec(ctx, query, id, score, analysisJSON, time.Now())
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// BookedSlots returns the slots currently held by interview-status
// applications in the scope. Recomputed per call; nothing is cached here.
func (r *applicationRepo) BookedSlots(ctx context.Context, scope domain.InterviewScope, ignoreID int64) ([]domain.InterviewSlot, error) {
	query := `
		SELECT interview_date, interview_time
		FROM applications
		WHERE scope_key = $1
		  AND status IN ('interview', 'scheduled')
		  AND interview_date IS NOT NULL
		  AND interview_time IS NOT NULL
		  AND id <> $2`

	rows, err := r.db.Query(ctx, query, scope.Key(), ignoreID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var slots []domain.InterviewSlot
	for rows.Next() {
		var s domain.InterviewSlot
		if err := rows.Scan(&s.Date, &s.Time); err != nil {
			return nil, err
		}
		slots = append(slots, s)
	}
	return slots, rows.Err()
}

// ScheduleInterview moves the application into interview status holding the
// slot. The partial unique index turns a lost check-then-act race into
// ErrSlotTaken so the caller can retry with the next slot.
func (r *applicationRepo) ScheduleInterview(ctx context.Context, id int64, scope domain.InterviewScope, slot domain.InterviewSlot, meetingLink string) error {
	query := `
		UPDATE applications
		SET status = $2, interview_date = $3, interview_time = $4,
		    meeting_link = $5, scope_key = $6, reminder_sent = FALSE, updated_at = $7
		WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id,
		domain.StatusInterview, slot.Date, slot.Time, meetingLink, scope.Key(), time.Now())
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.ErrSlotTaken
		}
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CancelInterview sets status=cancelled and clears the slot fields
func (r *applicationRepo) CancelInterview(ctx context.Context, id int64) error {
	query := `
		UPDATE applications
		SET status = $2, interview_date = NULL, interview_time = NULL,
		    meeting_link = NULL, scope_key = NULL, updated_at = $3
		WHERE id = $1`
	result, err := r.db.Exec(ctx, query, id, domain.StatusCancelled, time.Now())
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DueForReminder lists interview-status applications starting within the
// window that have not been reminded yet
func (r *applicationRepo) DueForReminder(ctx context.Context, within time.Duration) ([]domain.Application, error) {
	query := `
		SELECT
			a.id, a.job_id, a.candidate_user_id, a.status,
			a.interview_date, a.interview_time, a.meeting_link,
			cp.full_name as candidate_name,
			cp.email as candidate_email,
			j.title as job_title
		FROM applications a
		LEFT JOIN candidate_profiles cp ON a.candidate_user_id = cp.user_id
		LEFT JOIN jobs j ON a.job_id = j.id
		WHERE a.status IN ('interview', 'scheduled')
		  AND a.reminder_sent = FALSE
		  AND a.interview_date IS NOT NULL
		  AND (a.interview_date || ' ' || a.interview_time)::timestamp
		      BETWEEN NOW() AND NOW() + $1::interval`

	rows, err := r.db.Query(ctx, query, within.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var applications []domain.Application
	for rows.Next() {
		var app domain.Application
		if err := rows.Scan(
			&app.ID, &app.JobID, &app.CandidateUserID, &app.Status,
			&app.InterviewDate, &app.InterviewTime, &app.MeetingLink,
			&app.CandidateName, &app.CandidateEmail, &app.JobTitle,
		); err != nil {
			return nil, err
		}
		applications = append(applications, app)
	}
	return applications, rows.Err()
}

// MarkReminderSent flags an application so the sweep does not re-send
func (r *applicationRepo) MarkReminderSent(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `UPDATE applications SET reminder_sent = TRUE, updated_at = $2 WHERE id = $1`, id, time.Now())
	return err
}
