package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/skill-bridge/server/pkg/application"
)

// ApplicationRepository stores job applications and serves the joined
// projections the workflow views need.
type ApplicationRepository struct {
	pool *pgxpool.Pool
}

func NewApplicationRepository(pool *pgxpool.Pool) (*ApplicationRepository, error) {
	r := &ApplicationRepository{pool: pool}
	if err := r.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *ApplicationRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS applications (
	id UUID PRIMARY KEY,
	candidate_id TEXT NOT NULL,
	job_id UUID NOT NULL REFERENCES jobs(id) ON DELETE CASCADE,
	company_id UUID NOT NULL,
	resume TEXT NOT NULL,
	cover_letter TEXT NOT NULL DEFAULT '',
	expected_salary INT NOT NULL DEFAULT 0,
	status TEXT NOT NULL DEFAULT 'pending',
	recruiter_notes TEXT NOT NULL DEFAULT '',
	recruiter_rating INT NOT NULL DEFAULT 0,
	application_date TIMESTAMPTZ NOT NULL,
	last_status_update TIMESTAMPTZ NOT NULL,
	UNIQUE (candidate_id, job_id)
);
CREATE INDEX IF NOT EXISTS idx_applications_company ON applications(company_id);
CREATE INDEX IF NOT EXISTS idx_applications_candidate ON applications(candidate_id);
CREATE INDEX IF NOT EXISTS idx_applications_job ON applications(job_id);
`)
	return err
}

func (r *ApplicationRepository) Create(ctx context.Context, a application.Application) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO applications (id, candidate_id, job_id, company_id, resume, cover_letter, expected_salary, status, recruiter_notes, recruiter_rating, application_date, last_status_update)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
`, a.ID, a.CandidateID, a.JobID, a.CompanyID, a.Resume, a.CoverLetter, a.ExpectedSalary,
		a.Status, a.RecruiterNotes, a.RecruiterRating, a.ApplicationDate, a.LastStatusUpdate)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation on (candidate_id, job_id)
			return application.ErrAlreadyApplied
		}
		return err
	}
	return nil
}

const applicationColumns = `a.id, a.candidate_id, a.job_id, a.company_id, a.resume, a.cover_letter, a.expected_salary, a.status, a.recruiter_notes, a.recruiter_rating, a.application_date, a.last_status_update`

func scanApplication(row pgx.Row) (application.Application, error) {
	var a application.Application
	var applied, updated time.Time
	err := row.Scan(&a.ID, &a.CandidateID, &a.JobID, &a.CompanyID, &a.Resume, &a.CoverLetter,
		&a.ExpectedSalary, &a.Status, &a.RecruiterNotes, &a.RecruiterRating, &applied, &updated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return application.Application{}, application.ErrNotFound
		}
		return application.Application{}, err
	}
	a.ApplicationDate = applied.UTC()
	a.LastStatusUpdate = updated.UTC()
	return a, nil
}

func (r *ApplicationRepository) GetByID(ctx context.Context, id uuid.UUID) (application.Application, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+applicationColumns+` FROM applications a WHERE a.id = $1`, id)
	return scanApplication(row)
}

// detailsQuery joins the projections used by list and detail views. The
// candidate and company joins are LEFT: candidate ids come from an external
// provider and carry no FK.
const detailsQuery = `
SELECT ` + applicationColumns + `,
	COALESCE(j.title, ''), COALESCE(j.location, ''),
	COALESCE(c.name, ''), COALESCE(c.email, ''), COALESCE(c.image, ''),
	COALESCE(co.name, '')
FROM applications a
JOIN jobs j ON j.id = a.job_id
LEFT JOIN candidates c ON c.id = a.candidate_id
LEFT JOIN companies co ON co.id = a.company_id
`

func scanDetails(row pgx.Row) (application.Details, error) {
	var d application.Details
	var applied, updated time.Time
	err := row.Scan(&d.ID, &d.CandidateID, &d.JobID, &d.CompanyID, &d.Resume, &d.CoverLetter,
		&d.ExpectedSalary, &d.Status, &d.RecruiterNotes, &d.RecruiterRating, &applied, &updated,
		&d.JobTitle, &d.JobLocation, &d.CandidateName, &d.CandidateEmail, &d.CandidateImage, &d.CompanyName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return application.Details{}, application.ErrNotFound
		}
		return application.Details{}, err
	}
	d.ApplicationDate = applied.UTC()
	d.LastStatusUpdate = updated.UTC()
	return d, nil
}

func (r *ApplicationRepository) GetDetails(ctx context.Context, id uuid.UUID) (application.Details, error) {
	return scanDetails(r.pool.QueryRow(ctx, detailsQuery+` WHERE a.id = $1`, id))
}

func (r *ApplicationRepository) Update(ctx context.Context, a application.Application) error {
	cmd, err := r.pool.Exec(ctx, `
UPDATE applications
SET status = $2, recruiter_notes = $3, recruiter_rating = $4, last_status_update = $5
WHERE id = $1
`, a.ID, a.Status, a.RecruiterNotes, a.RecruiterRating, a.LastStatusUpdate)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return application.ErrNotFound
	}
	return nil
}

func (r *ApplicationRepository) listDetails(ctx context.Context, where string, args ...any) ([]application.Details, error) {
	rows, err := r.pool.Query(ctx, detailsQuery+where, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []application.Details
	for rows.Next() {
		d, err := scanDetails(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, d)
	}
	return res, rows.Err()
}

func (r *ApplicationRepository) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]application.Details, error) {
	return r.listDetails(ctx, ` WHERE a.company_id = $1 ORDER BY a.application_date DESC`, companyID)
}

func (r *ApplicationRepository) ListByCandidate(ctx context.Context, candidateID string) ([]application.Details, error) {
	return r.listDetails(ctx, ` WHERE a.candidate_id = $1 ORDER BY a.application_date DESC`, candidateID)
}

func (r *ApplicationRepository) ListByJob(ctx context.Context, jobID uuid.UUID) ([]application.Details, error) {
	return r.listDetails(ctx, ` WHERE a.job_id = $1 ORDER BY a.application_date DESC`, jobID)
}

func (r *ApplicationRepository) Stats(ctx context.Context, jobID uuid.UUID) (application.Stats, error) {
	stats := application.Stats{ByStatus: make(map[string]int, len(application.Statuses))}
	for _, s := range application.Statuses {
		stats.ByStatus[s] = 0
	}

	rows, err := r.pool.Query(ctx, `
SELECT status, COUNT(*) FROM applications WHERE job_id = $1 GROUP BY status
`, jobID)
	if err != nil {
		return application.Stats{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return application.Stats{}, err
		}
		stats.ByStatus[status] = count
		stats.Total += count
	}
	if err := rows.Err(); err != nil {
		return application.Stats{}, err
	}

	row := r.pool.QueryRow(ctx, `
SELECT COALESCE(AVG(recruiter_rating), 0) FROM applications WHERE job_id = $1 AND recruiter_rating > 0
`, jobID)
	if err := row.Scan(&stats.AverageRating); err != nil {
		return application.Stats{}, err
	}
	return stats, nil
}
