package application

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Application statuses. The workflow is a flat enum: any status may move to
// any other. Tightening this into a transition graph is a product decision
// that has not been made, so the engine only validates membership.
const (
	StatusPending     = "pending"
	StatusReviewed    = "reviewed"
	StatusShortlisted = "shortlisted"
	StatusRejected    = "rejected"
	StatusInterviewed = "interviewed"
	StatusOffered     = "offered"
	StatusHired       = "hired"
)

// Statuses lists every valid application status.
var Statuses = []string{
	StatusPending, StatusReviewed, StatusShortlisted, StatusRejected,
	StatusInterviewed, StatusOffered, StatusHired,
}

// ValidStatus reports whether s is a member of the status enum.
func ValidStatus(s string) bool {
	for _, v := range Statuses {
		if v == s {
			return true
		}
	}
	return false
}

var (
	ErrNotFound       = errors.New("application not found")
	ErrInvalidStatus  = errors.New("invalid status value")
	ErrAlreadyApplied = errors.New("already applied")
	ErrResumeRequired = errors.New("resume is required to apply for jobs")
	ErrInvalidResume  = errors.New("invalid resume URL format")
	ErrInvalidRating  = errors.New("rating must be between 1 and 5")

	// ErrNotAccessible deliberately merges "missing" and "foreign-owned" so
	// the API cannot be used to probe which application ids exist.
	ErrNotAccessible = errors.New("application not found or you are not authorized")
)

// Application is a candidate's submission for a job. The resume URL is a
// snapshot taken at apply time, not a live reference to the profile.
type Application struct {
	ID               uuid.UUID
	CandidateID      string
	JobID            uuid.UUID
	CompanyID        uuid.UUID
	Resume           string
	CoverLetter      string
	ExpectedSalary   int
	Status           string
	RecruiterNotes   string
	RecruiterRating  int // 0 = unrated
	ApplicationDate  time.Time
	LastStatusUpdate time.Time
}

// Details is an application joined with the projections list/detail views
// need.
type Details struct {
	Application
	JobTitle       string
	JobLocation    string
	CandidateName  string
	CandidateEmail string
	CandidateImage string
	CompanyName    string
}

// Stats aggregates per-status counts for one job's applications.
type Stats struct {
	Total         int            `json:"total"`
	ByStatus      map[string]int `json:"byStatus"`
	AverageRating float64        `json:"averageRating"`
}

type Repository interface {
	// Create returns ErrAlreadyApplied when the (candidate, job) pair already
	// has an application.
	Create(ctx context.Context, a Application) error
	GetByID(ctx context.Context, id uuid.UUID) (Application, error)
	GetDetails(ctx context.Context, id uuid.UUID) (Details, error)
	// Update persists the mutable fields: status, notes, rating and the
	// last-status-update timestamp.
	Update(ctx context.Context, a Application) error
	ListByCompany(ctx context.Context, companyID uuid.UUID) ([]Details, error)
	ListByCandidate(ctx context.Context, candidateID string) ([]Details, error)
	ListByJob(ctx context.Context, jobID uuid.UUID) ([]Details, error)
	Stats(ctx context.Context, jobID uuid.UUID) (Stats, error)
}
