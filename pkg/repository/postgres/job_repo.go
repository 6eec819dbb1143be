package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/skill-bridge/server/pkg/job"
)

// JobRepository stores postings.
type JobRepository struct {
	pool *pgxpool.Pool
}

func NewJobRepository(pool *pgxpool.Pool) (*JobRepository, error) {
	r := &JobRepository{pool: pool}
	if err := r.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *JobRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS jobs (
	id UUID PRIMARY KEY,
	company_id UUID NOT NULL REFERENCES companies(id) ON DELETE CASCADE,
	title TEXT NOT NULL,
	description TEXT NOT NULL,
	location TEXT NOT NULL DEFAULT '',
	category TEXT NOT NULL DEFAULT '',
	level TEXT NOT NULL DEFAULT '',
	salary_min INT NOT NULL DEFAULT 0,
	salary_max INT NOT NULL DEFAULT 0,
	type TEXT NOT NULL DEFAULT '',
	work_mode TEXT NOT NULL DEFAULT '',
	visible BOOLEAN NOT NULL DEFAULT TRUE,
	status TEXT NOT NULL DEFAULT 'active',
	application_deadline TIMESTAMPTZ,
	created_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_jobs_company ON jobs(company_id);
`)
	return err
}

const jobColumns = `id, company_id, title, description, location, category, level, salary_min, salary_max, type, work_mode, visible, status, application_deadline, created_at`

func (r *JobRepository) Create(ctx context.Context, j job.Job) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO jobs (`+jobColumns+`)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
`, j.ID, j.CompanyID, j.Title, j.Description, j.Location, j.Category, j.Level,
		j.SalaryMin, j.SalaryMax, j.Type, j.WorkMode, j.Visible, j.Status, j.ApplicationDeadline, j.CreatedAt)
	return err
}

func scanJob(row pgx.Row) (job.Job, error) {
	var j job.Job
	var created time.Time
	err := row.Scan(&j.ID, &j.CompanyID, &j.Title, &j.Description, &j.Location, &j.Category,
		&j.Level, &j.SalaryMin, &j.SalaryMax, &j.Type, &j.WorkMode, &j.Visible, &j.Status,
		&j.ApplicationDeadline, &created)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return job.Job{}, job.ErrNotFound
		}
		return job.Job{}, err
	}
	j.CreatedAt = created.UTC()
	return j, nil
}

func (r *JobRepository) GetByID(ctx context.Context, id uuid.UUID) (job.Job, error) {
	return scanJob(r.pool.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id))
}

func (r *JobRepository) GetForCompany(ctx context.Context, companyID, id uuid.UUID) (job.Job, error) {
	return scanJob(r.pool.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1 AND company_id = $2`, id, companyID))
}

func (r *JobRepository) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]job.Job, error) {
	rows, err := r.pool.Query(ctx, `
SELECT `+jobColumns+` FROM jobs WHERE company_id = $1 ORDER BY created_at DESC
`, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []job.Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, j)
	}
	return res, rows.Err()
}
