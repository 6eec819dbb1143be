package application

import (
	"context"
	"errors"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/skill-bridge/server/pkg/auth"
	"github.com/skill-bridge/server/pkg/candidate"
	"github.com/skill-bridge/server/pkg/job"
	"github.com/skill-bridge/server/pkg/notify"
)

// UseCase is the application workflow: applying, listing, and the status
// transition engine with its notification side effect.
type UseCase interface {
	Apply(ctx context.Context, candidateID string, jobID uuid.UUID, coverLetter string, expectedSalary int) (Application, error)
	Get(ctx context.Context, p auth.Principal, id uuid.UUID) (Details, error)
	UpdateStatus(ctx context.Context, p auth.Principal, id uuid.UUID, status string) (Application, error)
	Review(ctx context.Context, p auth.Principal, id uuid.UUID, status, notes string, rating int) (Application, error)
	ListForCompany(ctx context.Context, companyID uuid.UUID) ([]Details, error)
	ListForCandidate(ctx context.Context, candidateID string) ([]Details, error)
	ListForJob(ctx context.Context, companyID, jobID uuid.UUID) ([]Details, error)
	StatsForJob(ctx context.Context, companyID, jobID uuid.UUID) (Stats, error)
}

type service struct {
	repo       Repository
	candidates candidate.Repository
	jobs       job.Repository
	events     *notify.Dispatcher
}

func NewService(repo Repository, candidates candidate.Repository, jobs job.Repository, events *notify.Dispatcher) UseCase {
	return &service{repo: repo, candidates: candidates, jobs: jobs, events: events}
}

func (s *service) Apply(ctx context.Context, candidateID string, jobID uuid.UUID, coverLetter string, expectedSalary int) (Application, error) {
	cand, err := s.candidates.GetByID(ctx, candidateID)
	if err != nil {
		return Application{}, err
	}
	if cand.Resume == "" {
		return Application{}, ErrResumeRequired
	}
	// The snapshot must be a syntactically valid absolute URL.
	if u, err := url.Parse(cand.Resume); err != nil || u.Scheme == "" || u.Host == "" {
		return Application{}, ErrInvalidResume
	}
	j, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return Application{}, err
	}

	now := time.Now().UTC()
	a := Application{
		ID:               uuid.New(),
		CandidateID:      candidateID,
		JobID:            j.ID,
		CompanyID:        j.CompanyID,
		Resume:           cand.Resume,
		CoverLetter:      coverLetter,
		ExpectedSalary:   expectedSalary,
		Status:           StatusPending,
		ApplicationDate:  now,
		LastStatusUpdate: now,
	}
	// The unique (candidate, job) index makes the duplicate check race-free;
	// the repo reports it as ErrAlreadyApplied.
	if err := s.repo.Create(ctx, a); err != nil {
		return Application{}, err
	}
	return a, nil
}

func (s *service) Get(ctx context.Context, p auth.Principal, id uuid.UUID) (Details, error) {
	d, err := s.repo.GetDetails(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Details{}, ErrNotAccessible
		}
		return Details{}, err
	}
	if !auth.CanAccessApplication(p, auth.Ownership{CompanyID: d.CompanyID, CandidateID: d.CandidateID}) {
		return Details{}, ErrNotAccessible
	}
	return d, nil
}

func (s *service) UpdateStatus(ctx context.Context, p auth.Principal, id uuid.UUID, status string) (Application, error) {
	return s.transition(ctx, p, id, status, nil, 0)
}

func (s *service) Review(ctx context.Context, p auth.Principal, id uuid.UUID, status, notes string, rating int) (Application, error) {
	if rating != 0 && (rating < 1 || rating > 5) {
		return Application{}, ErrInvalidRating
	}
	return s.transition(ctx, p, id, status, &notes, rating)
}

// transition is the status transition engine: enum validation strictly before
// any store access, ownership check before mutation, persist before notify.
func (s *service) transition(ctx context.Context, p auth.Principal, id uuid.UUID, status string, notes *string, rating int) (Application, error) {
	if !ValidStatus(status) {
		return Application{}, ErrInvalidStatus
	}
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Application{}, ErrNotAccessible
		}
		return Application{}, err
	}
	if !p.IsCompany() || !auth.CanAccessApplication(p, auth.Ownership{CompanyID: a.CompanyID, CandidateID: a.CandidateID}) {
		return Application{}, ErrNotAccessible
	}

	a.Status = status
	a.LastStatusUpdate = time.Now().UTC()
	if notes != nil && *notes != "" {
		a.RecruiterNotes = *notes
	}
	if rating != 0 {
		a.RecruiterRating = rating
	}
	if err := s.repo.Update(ctx, a); err != nil {
		return Application{}, err
	}

	// The mutation is durable at this point; the email is best-effort.
	s.notifyStatusChange(ctx, a)
	return a, nil
}

func (s *service) notifyStatusChange(ctx context.Context, a Application) {
	cand, err := s.candidates.GetByID(ctx, a.CandidateID)
	if err != nil {
		return
	}
	j, err := s.jobs.GetByID(ctx, a.JobID)
	if err != nil {
		return
	}
	s.events.Dispatch(ctx, notify.ApplicationStatusChanged{
		Email:     cand.Email,
		JobTitle:  j.Title,
		NewStatus: a.Status,
	})
}

func (s *service) ListForCompany(ctx context.Context, companyID uuid.UUID) ([]Details, error) {
	return s.repo.ListByCompany(ctx, companyID)
}

func (s *service) ListForCandidate(ctx context.Context, candidateID string) ([]Details, error) {
	return s.repo.ListByCandidate(ctx, candidateID)
}

func (s *service) ListForJob(ctx context.Context, companyID, jobID uuid.UUID) ([]Details, error) {
	if _, err := s.jobs.GetForCompany(ctx, companyID, jobID); err != nil {
		return nil, err
	}
	return s.repo.ListByJob(ctx, jobID)
}

func (s *service) StatsForJob(ctx context.Context, companyID, jobID uuid.UUID) (Stats, error) {
	if _, err := s.jobs.GetForCompany(ctx, companyID, jobID); err != nil {
		return Stats{}, err
	}
	return s.repo.Stats(ctx, jobID)
}
