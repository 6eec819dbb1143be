package interview

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/skill-bridge/server/pkg/application"
	"github.com/skill-bridge/server/pkg/auth"
	"github.com/skill-bridge/server/pkg/candidate"
	"github.com/skill-bridge/server/pkg/notify"
)

// ScheduleInput is what a company submits to book an interview.
type ScheduleInput struct {
	ApplicationID  uuid.UUID
	ScheduledTime  time.Time
	Duration       int
	MeetingType    string
	MeetingDetails MeetingDetails
	Interviewers   []uuid.UUID
}

// UseCase is the interview workflow: scheduling with its notification side
// effect, status updates, candidate confirmation and the two listings.
type UseCase interface {
	Schedule(ctx context.Context, companyID uuid.UUID, in ScheduleInput) (Interview, error)
	UpdateStatus(ctx context.Context, p auth.Principal, id uuid.UUID, status, notes string) (Interview, error)
	Confirm(ctx context.Context, p auth.Principal, id uuid.UUID) (Interview, error)
	ListForCompany(ctx context.Context, companyID uuid.UUID, f ListFilter) ([]Details, error)
	ListUpcomingForCandidate(ctx context.Context, candidateID string) ([]Details, error)
}

type service struct {
	repo         Repository
	applications application.Repository
	candidates   candidate.Repository
	events       *notify.Dispatcher
}

func NewService(repo Repository, applications application.Repository, candidates candidate.Repository, events *notify.Dispatcher) UseCase {
	return &service{repo: repo, applications: applications, candidates: candidates, events: events}
}

// Schedule creates an interview for an application owned by the scheduling
// company. Past scheduledTime values are accepted on purpose: rescheduling
// flows legitimately backdate records, and rejecting them here would break
// imports from external calendars.
func (s *service) Schedule(ctx context.Context, companyID uuid.UUID, in ScheduleInput) (Interview, error) {
	if in.ScheduledTime.IsZero() {
		return Interview{}, ErrMissingSchedule
	}
	if in.MeetingType != MeetingOnline && in.MeetingType != MeetingInPerson {
		return Interview{}, ErrInvalidMeeting
	}
	if in.Duration == 0 {
		in.Duration = 60
	}
	if in.Duration < 0 {
		return Interview{}, ErrInvalidDuration
	}

	app, err := s.applications.GetByID(ctx, in.ApplicationID)
	if err != nil {
		if errors.Is(err, application.ErrNotFound) {
			return Interview{}, application.ErrNotAccessible
		}
		return Interview{}, err
	}
	if !auth.CanAccessApplication(auth.CompanyPrincipal(companyID), auth.Ownership{CompanyID: app.CompanyID, CandidateID: app.CandidateID}) {
		return Interview{}, application.ErrNotAccessible
	}

	interviewers := in.Interviewers
	if len(interviewers) == 0 {
		interviewers = []uuid.UUID{companyID}
	}
	now := time.Now().UTC()
	iv := Interview{
		ID:             uuid.New(),
		ApplicationID:  app.ID,
		ScheduledTime:  in.ScheduledTime,
		Duration:       in.Duration,
		Status:         StatusScheduled,
		MeetingType:    in.MeetingType,
		MeetingDetails: in.MeetingDetails,
		Interviewers:   interviewers,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.repo.Create(ctx, iv); err != nil {
		return Interview{}, err
	}

	// Persisted; the candidate email is best-effort from here.
	if cand, err := s.candidates.GetByID(ctx, app.CandidateID); err == nil {
		s.events.Dispatch(ctx, notify.InterviewScheduled{
			Email:       cand.Email,
			ScheduledAt: iv.ScheduledTime,
			Duration:    iv.Duration,
			MeetingType: iv.MeetingType,
			Location:    iv.MeetingDetails.Location,
			JoinURL:     iv.MeetingDetails.JoinURL,
			Notes:       iv.MeetingDetails.Notes,
		})
	}
	return iv, nil
}

func (s *service) UpdateStatus(ctx context.Context, p auth.Principal, id uuid.UUID, status, notes string) (Interview, error) {
	if !ValidStatus(status) {
		return Interview{}, ErrInvalidStatus
	}
	iv, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Interview{}, err
	}
	if !auth.CanManageInterview(p, iv.Interviewers) {
		return Interview{}, ErrForbidden
	}
	iv.Status = status
	if notes != "" {
		iv.MeetingDetails.Notes = notes
	}
	iv.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, iv); err != nil {
		return Interview{}, err
	}
	return iv, nil
}

// Confirm sets the one-way candidateConfirmed flag. Repeat calls are no-ops;
// nothing in the workflow ever resets it.
func (s *service) Confirm(ctx context.Context, p auth.Principal, id uuid.UUID) (Interview, error) {
	iv, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Interview{}, err
	}
	app, err := s.applications.GetByID(ctx, iv.ApplicationID)
	if err != nil {
		return Interview{}, err
	}
	if !auth.CanConfirmInterview(p, auth.Ownership{CompanyID: app.CompanyID, CandidateID: app.CandidateID}) {
		return Interview{}, ErrForbidden
	}
	if iv.CandidateConfirmed {
		return iv, nil
	}
	iv.CandidateConfirmed = true
	iv.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, iv); err != nil {
		return Interview{}, err
	}
	return iv, nil
}

func (s *service) ListForCompany(ctx context.Context, companyID uuid.UUID, f ListFilter) ([]Details, error) {
	if f.Status != "" && !ValidStatus(f.Status) {
		return nil, ErrInvalidStatus
	}
	return s.repo.ListByInterviewer(ctx, companyID, f)
}

func (s *service) ListUpcomingForCandidate(ctx context.Context, candidateID string) ([]Details, error) {
	return s.repo.ListUpcomingByCandidate(ctx, candidateID, time.Now().UTC())
}
