package company

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common errors used by repository/use cases
var (
	ErrNotFound           = errors.New("company not found")
	ErrAlreadyExists      = errors.New("company already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Company is a recruiter-side account. It owns jobs and the applications
// submitted to them.
type Company struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	Image        string
	Website      string
	Location     string
	About        string
	Industry     string
	Size         string
	FoundedYear  int
	Verified     bool
	CreatedAt    time.Time
}

// Repository abstracts persistence concerns from the domain layer.
type Repository interface {
	Create(ctx context.Context, c Company) error
	GetByEmail(ctx context.Context, email string) (Company, error)
	GetByID(ctx context.Context, id uuid.UUID) (Company, error)
	UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error
}

// TokenGenerator abstracts token creation (e.g., JWT) so use cases stay
// framework-agnostic.
type TokenGenerator interface {
	Generate(ctx context.Context, c Company) (string, error)
}
