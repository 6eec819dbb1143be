package postgres

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/skill-bridge/server/pkg/interview"
)

// InterviewRepository stores interviews linked to applications.
type InterviewRepository struct {
	pool *pgxpool.Pool
}

func NewInterviewRepository(pool *pgxpool.Pool) (*InterviewRepository, error) {
	r := &InterviewRepository{pool: pool}
	if err := r.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *InterviewRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS interviews (
	id UUID PRIMARY KEY,
	application_id UUID NOT NULL REFERENCES applications(id) ON DELETE CASCADE,
	scheduled_time TIMESTAMPTZ NOT NULL,
	duration_minutes INT NOT NULL DEFAULT 60,
	status TEXT NOT NULL DEFAULT 'scheduled',
	meeting_type TEXT NOT NULL,
	location TEXT NOT NULL DEFAULT '',
	platform TEXT NOT NULL DEFAULT '',
	join_url TEXT NOT NULL DEFAULT '',
	notes TEXT NOT NULL DEFAULT '',
	interviewers UUID[] NOT NULL DEFAULT '{}',
	candidate_confirmed BOOLEAN NOT NULL DEFAULT FALSE,
	reminder_sent BOOLEAN NOT NULL DEFAULT FALSE,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_interviews_application_time ON interviews(application_id, scheduled_time);
CREATE INDEX IF NOT EXISTS idx_interviews_status ON interviews(status);
`)
	return err
}

func (r *InterviewRepository) Create(ctx context.Context, iv interview.Interview) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO interviews (id, application_id, scheduled_time, duration_minutes, status, meeting_type, location, platform, join_url, notes, interviewers, candidate_confirmed, reminder_sent, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
`, iv.ID, iv.ApplicationID, iv.ScheduledTime, iv.Duration, iv.Status, iv.MeetingType,
		iv.MeetingDetails.Location, iv.MeetingDetails.Platform, iv.MeetingDetails.JoinURL, iv.MeetingDetails.Notes,
		iv.Interviewers, iv.CandidateConfirmed, iv.ReminderSent, iv.CreatedAt, iv.UpdatedAt)
	return err
}

const interviewColumns = `i.id, i.application_id, i.scheduled_time, i.duration_minutes, i.status, i.meeting_type, i.location, i.platform, i.join_url, i.notes, i.interviewers, i.candidate_confirmed, i.reminder_sent, i.created_at, i.updated_at`

func scanInterview(row pgx.Row) (interview.Interview, error) {
	var iv interview.Interview
	var scheduled, created, updated time.Time
	err := row.Scan(&iv.ID, &iv.ApplicationID, &scheduled, &iv.Duration, &iv.Status, &iv.MeetingType,
		&iv.MeetingDetails.Location, &iv.MeetingDetails.Platform, &iv.MeetingDetails.JoinURL, &iv.MeetingDetails.Notes,
		&iv.Interviewers, &iv.CandidateConfirmed, &iv.ReminderSent, &created, &updated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return interview.Interview{}, interview.ErrNotFound
		}
		return interview.Interview{}, err
	}
	iv.ScheduledTime = scheduled.UTC()
	iv.CreatedAt = created.UTC()
	iv.UpdatedAt = updated.UTC()
	return iv, nil
}

func (r *InterviewRepository) GetByID(ctx context.Context, id uuid.UUID) (interview.Interview, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+interviewColumns+` FROM interviews i WHERE i.id = $1`, id)
	return scanInterview(row)
}

func (r *InterviewRepository) Update(ctx context.Context, iv interview.Interview) error {
	cmd, err := r.pool.Exec(ctx, `
UPDATE interviews
SET status = $2, notes = $3, candidate_confirmed = $4, reminder_sent = $5, scheduled_time = $6, updated_at = $7
WHERE id = $1
`, iv.ID, iv.Status, iv.MeetingDetails.Notes, iv.CandidateConfirmed, iv.ReminderSent, iv.ScheduledTime, iv.UpdatedAt)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return interview.ErrNotFound
	}
	return nil
}

// detailsQuery joins application context for list views.
const interviewDetailsQuery = `
SELECT ` + interviewColumns + `,
	a.candidate_id,
	COALESCE(c.name, ''), COALESCE(c.email, ''),
	COALESCE(j.title, ''), COALESCE(co.name, '')
FROM interviews i
JOIN applications a ON a.id = i.application_id
LEFT JOIN candidates c ON c.id = a.candidate_id
LEFT JOIN jobs j ON j.id = a.job_id
LEFT JOIN companies co ON co.id = a.company_id
`

func (r *InterviewRepository) listDetails(ctx context.Context, where string, args ...any) ([]interview.Details, error) {
	rows, err := r.pool.Query(ctx, interviewDetailsQuery+where, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []interview.Details
	for rows.Next() {
		var d interview.Details
		var scheduled, created, updated time.Time
		err := rows.Scan(&d.ID, &d.ApplicationID, &scheduled, &d.Duration, &d.Status, &d.MeetingType,
			&d.MeetingDetails.Location, &d.MeetingDetails.Platform, &d.MeetingDetails.JoinURL, &d.MeetingDetails.Notes,
			&d.Interviewers, &d.CandidateConfirmed, &d.ReminderSent, &created, &updated,
			&d.CandidateID, &d.CandidateName, &d.CandidateEmail, &d.JobTitle, &d.CompanyName)
		if err != nil {
			return nil, err
		}
		d.ScheduledTime = scheduled.UTC()
		d.CreatedAt = created.UTC()
		d.UpdatedAt = updated.UTC()
		res = append(res, d)
	}
	return res, rows.Err()
}

func (r *InterviewRepository) ListByInterviewer(ctx context.Context, companyID uuid.UUID, f interview.ListFilter) ([]interview.Details, error) {
	where := ` WHERE $1 = ANY(i.interviewers)`
	args := []any{companyID}
	if f.Status != "" {
		args = append(args, f.Status)
		where += ` AND i.status = $` + strconv.Itoa(len(args))
	}
	if !f.From.IsZero() && !f.To.IsZero() {
		args = append(args, f.From)
		where += ` AND i.scheduled_time >= $` + strconv.Itoa(len(args))
		args = append(args, f.To)
		where += ` AND i.scheduled_time <= $` + strconv.Itoa(len(args))
	}
	where += ` ORDER BY i.scheduled_time ASC`
	return r.listDetails(ctx, where, args...)
}

func (r *InterviewRepository) ListUpcomingByCandidate(ctx context.Context, candidateID string, now time.Time) ([]interview.Details, error) {
	return r.listDetails(ctx, ` WHERE a.candidate_id = $1 AND i.scheduled_time >= $2 ORDER BY i.scheduled_time ASC`, candidateID, now)
}
