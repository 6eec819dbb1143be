package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/skill-bridge/server/pkg/company"
)

// CompanyRepository implements company.Repository backed by PostgreSQL (pgx).
type CompanyRepository struct {
	pool *pgxpool.Pool
}

func NewCompanyRepository(pool *pgxpool.Pool) (*CompanyRepository, error) {
	r := &CompanyRepository{pool: pool}
	if err := r.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *CompanyRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS companies (
	id UUID PRIMARY KEY,
	name TEXT NOT NULL,
	email TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	image TEXT NOT NULL DEFAULT '',
	website TEXT NOT NULL DEFAULT '',
	location TEXT NOT NULL DEFAULT '',
	about TEXT NOT NULL DEFAULT '',
	industry TEXT NOT NULL DEFAULT '',
	size TEXT NOT NULL DEFAULT '',
	founded_year INT NOT NULL DEFAULT 0,
	verified BOOLEAN NOT NULL DEFAULT FALSE,
	created_at TIMESTAMPTZ NOT NULL
);
`)
	return err
}

func (r *CompanyRepository) Create(ctx context.Context, c company.Company) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO companies (id, name, email, password_hash, image, website, location, about, industry, size, founded_year, verified, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
`, c.ID, c.Name, strings.ToLower(c.Email), c.PasswordHash, c.Image, c.Website, c.Location, c.About, c.Industry, c.Size, c.FoundedYear, c.Verified, c.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return company.ErrAlreadyExists
		}
		return err
	}
	return nil
}

const companyColumns = `id, name, email, password_hash, image, website, location, about, industry, size, founded_year, verified, created_at`

func (r *CompanyRepository) scanCompany(row pgx.Row) (company.Company, error) {
	var c company.Company
	var createdAt time.Time
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.PasswordHash, &c.Image, &c.Website,
		&c.Location, &c.About, &c.Industry, &c.Size, &c.FoundedYear, &c.Verified, &createdAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return company.Company{}, company.ErrNotFound
		}
		return company.Company{}, err
	}
	c.CreatedAt = createdAt.UTC()
	return c, nil
}

func (r *CompanyRepository) GetByEmail(ctx context.Context, email string) (company.Company, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+companyColumns+` FROM companies WHERE email = $1`, strings.ToLower(email))
	return r.scanCompany(row)
}

func (r *CompanyRepository) GetByID(ctx context.Context, id uuid.UUID) (company.Company, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+companyColumns+` FROM companies WHERE id = $1`, id)
	return r.scanCompany(row)
}

func (r *CompanyRepository) UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE companies SET password_hash = $2 WHERE id = $1`, id, hash)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return company.ErrNotFound
	}
	return nil
}
