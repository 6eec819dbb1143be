package job

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrValidation is a simple validation error with a caller-facing message.
type ErrValidation string

func (e ErrValidation) Error() string { return string(e) }

// UseCase covers the minimal job management the application workflow needs:
// postings must exist and be owned before anyone can apply or read stats.
type UseCase interface {
	Create(ctx context.Context, j Job) (Job, error)
	GetForCompany(ctx context.Context, companyID, id uuid.UUID) (Job, error)
	ListByCompany(ctx context.Context, companyID uuid.UUID) ([]Job, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) UseCase { return &service{repo: repo} }

func (s *service) Create(ctx context.Context, j Job) (Job, error) {
	j.Title = strings.TrimSpace(j.Title)
	if j.Title == "" {
		return Job{}, ErrValidation("title is required")
	}
	if strings.TrimSpace(j.Description) == "" {
		return Job{}, ErrValidation("description is required")
	}
	if j.SalaryMin < 0 || (j.SalaryMax > 0 && j.SalaryMax < j.SalaryMin) {
		return Job{}, ErrValidation("invalid salary range")
	}
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	if j.Status == "" {
		j.Status = StatusActive
	}
	j.Visible = true
	j.CreatedAt = time.Now().UTC()
	if err := s.repo.Create(ctx, j); err != nil {
		return Job{}, err
	}
	return j, nil
}

func (s *service) GetForCompany(ctx context.Context, companyID, id uuid.UUID) (Job, error) {
	return s.repo.GetForCompany(ctx, companyID, id)
}

func (s *service) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]Job, error) {
	return s.repo.ListByCompany(ctx, companyID)
}
