package interview

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Interview statuses. scheduled is the initial state; the others may be set
// and re-set freely (idempotent assignment, no ordering constraint).
const (
	StatusScheduled   = "scheduled"
	StatusCompleted   = "completed"
	StatusCancelled   = "cancelled"
	StatusRescheduled = "rescheduled"
)

// Meeting types.
const (
	MeetingOnline   = "online"
	MeetingInPerson = "in-person"
)

var (
	ErrNotFound        = errors.New("interview not found")
	ErrForbidden       = errors.New("not authorized")
	ErrInvalidStatus   = errors.New("invalid interview status")
	ErrInvalidMeeting  = errors.New("meetingType must be online or in-person")
	ErrMissingSchedule = errors.New("scheduledTime is required")
	ErrInvalidDuration = errors.New("duration must be positive")
)

// ValidStatus reports membership in the interview status enum.
func ValidStatus(s string) bool {
	switch s {
	case StatusScheduled, StatusCompleted, StatusCancelled, StatusRescheduled:
		return true
	}
	return false
}

// MeetingDetails carries the venue. For online meetings platform/joinUrl are
// the meaningful fields; for in-person the location is.
type MeetingDetails struct {
	Location string `json:"location,omitempty"`
	Platform string `json:"platform,omitempty"`
	JoinURL  string `json:"joinUrl,omitempty"`
	Notes    string `json:"notes,omitempty"`
}

// Interview is a scheduled meeting tied to exactly one application.
type Interview struct {
	ID                 uuid.UUID
	ApplicationID      uuid.UUID
	ScheduledTime      time.Time
	Duration           int // minutes
	Status             string
	MeetingType        string
	MeetingDetails     MeetingDetails
	Interviewers       []uuid.UUID
	CandidateConfirmed bool
	ReminderSent       bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Details joins the interview with its application context for list views.
type Details struct {
	Interview
	CandidateID    string
	CandidateName  string
	CandidateEmail string
	JobTitle       string
	CompanyName    string
}

// ListFilter narrows company interview listings. Zero values mean "no
// constraint"; From/To only apply together.
type ListFilter struct {
	Status string
	From   time.Time
	To     time.Time
}

type Repository interface {
	Create(ctx context.Context, iv Interview) error
	GetByID(ctx context.Context, id uuid.UUID) (Interview, error)
	Update(ctx context.Context, iv Interview) error
	// ListByInterviewer returns interviews where the company appears in the
	// interviewers list, soonest first.
	ListByInterviewer(ctx context.Context, companyID uuid.UUID, f ListFilter) ([]Details, error)
	// ListUpcomingByCandidate returns the candidate's interviews with
	// scheduledTime >= now, soonest first.
	ListUpcomingByCandidate(ctx context.Context, candidateID string, now time.Time) ([]Details, error)
}
