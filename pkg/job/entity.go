package job

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("job not found")
)

// Job statuses.
const (
	StatusActive = "active"
	StatusClosed = "closed"
	StatusDraft  = "draft"
)

// Job is a posting owned by a company. Applications reference it; its title
// feeds the notification templates.
type Job struct {
	ID                  uuid.UUID
	CompanyID           uuid.UUID
	Title               string
	Description         string
	Location            string
	Category            string
	Level               string
	SalaryMin           int
	SalaryMax           int
	Type                string // Full-time, Part-time, Contract, ...
	WorkMode            string // Remote, On-site, Hybrid
	Visible             bool
	Status              string
	ApplicationDeadline *time.Time
	CreatedAt           time.Time
}

type Repository interface {
	Create(ctx context.Context, j Job) error
	GetByID(ctx context.Context, id uuid.UUID) (Job, error)
	// GetForCompany returns ErrNotFound when the job exists but is owned by
	// another company.
	GetForCompany(ctx context.Context, companyID, id uuid.UUID) (Job, error)
	ListByCompany(ctx context.Context, companyID uuid.UUID) ([]Job, error)
}
