package candidate

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound = errors.New("candidate not found")
)

// Candidate is a job seeker. The id is the stable subject issued by the
// external identity provider, so it is an opaque string rather than a UUID.
type Candidate struct {
	ID        string
	Name      string
	Email     string
	Image     string
	Resume    string // URL of the current resume in the blob store
	Headline  string
	Phone     string
	Location  string
	Website   string
	About     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Repository interface {
	Create(ctx context.Context, c Candidate) error
	GetByID(ctx context.Context, id string) (Candidate, error)
	UpdateProfile(ctx context.Context, c Candidate) error
	UpdateResume(ctx context.Context, id, resumeURL string) error
}
