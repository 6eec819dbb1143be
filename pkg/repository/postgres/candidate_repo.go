package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/skill-bridge/server/pkg/candidate"
)

// CandidateRepository stores job-seeker profiles. The primary key is the
// opaque subject from the identity provider, hence TEXT not UUID.
type CandidateRepository struct {
	pool *pgxpool.Pool
}

func NewCandidateRepository(pool *pgxpool.Pool) (*CandidateRepository, error) {
	r := &CandidateRepository{pool: pool}
	if err := r.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *CandidateRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS candidates (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	email TEXT NOT NULL,
	image TEXT NOT NULL DEFAULT '',
	resume TEXT NOT NULL DEFAULT '',
	headline TEXT NOT NULL DEFAULT '',
	phone TEXT NOT NULL DEFAULT '',
	location TEXT NOT NULL DEFAULT '',
	website TEXT NOT NULL DEFAULT '',
	about TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);
`)
	return err
}

func (r *CandidateRepository) Create(ctx context.Context, c candidate.Candidate) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO candidates (id, name, email, image, resume, headline, phone, location, website, about, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
ON CONFLICT (id) DO NOTHING
`, c.ID, c.Name, c.Email, c.Image, c.Resume, c.Headline, c.Phone, c.Location, c.Website, c.About, c.CreatedAt, c.UpdatedAt)
	return err
}

func (r *CandidateRepository) GetByID(ctx context.Context, id string) (candidate.Candidate, error) {
	row := r.pool.QueryRow(ctx, `
SELECT id, name, email, image, resume, headline, phone, location, website, about, created_at, updated_at
FROM candidates WHERE id = $1
`, id)
	var c candidate.Candidate
	var createdAt, updatedAt time.Time
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Image, &c.Resume, &c.Headline,
		&c.Phone, &c.Location, &c.Website, &c.About, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return candidate.Candidate{}, candidate.ErrNotFound
		}
		return candidate.Candidate{}, err
	}
	c.CreatedAt = createdAt.UTC()
	c.UpdatedAt = updatedAt.UTC()
	return c, nil
}

func (r *CandidateRepository) UpdateProfile(ctx context.Context, c candidate.Candidate) error {
	cmd, err := r.pool.Exec(ctx, `
UPDATE candidates
SET name = $2, email = $3, image = $4, headline = $5, phone = $6, location = $7, website = $8, about = $9, updated_at = $10
WHERE id = $1
`, c.ID, c.Name, c.Email, c.Image, c.Headline, c.Phone, c.Location, c.Website, c.About, c.UpdatedAt)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return candidate.ErrNotFound
	}
	return nil
}

func (r *CandidateRepository) UpdateResume(ctx context.Context, id, resumeURL string) error {
	cmd, err := r.pool.Exec(ctx, `
UPDATE candidates SET resume = $2, updated_at = $3 WHERE id = $1
`, id, resumeURL, time.Now().UTC())
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return candidate.ErrNotFound
	}
	return nil
}
