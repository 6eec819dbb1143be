package message

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/skill-bridge/server/pkg/application"
	"github.com/skill-bridge/server/pkg/auth"
	"github.com/skill-bridge/server/pkg/candidate"
	"github.com/skill-bridge/server/pkg/company"
	"github.com/skill-bridge/server/pkg/job"
	"github.com/skill-bridge/server/pkg/notify"
)

// SendInput is a message submission from either side of an application.
type SendInput struct {
	ApplicationID uuid.UUID
	Content       string
	ReceiverID    string
	ReceiverType  string
	Attachments   []string
}

// UseCase is the messaging pipeline between the two participants of an
// application, with a best-effort email ping to the receiver.
type UseCase interface {
	Send(ctx context.Context, p auth.Principal, in SendInput) (Message, error)
	// ListForApplication returns the conversation and marks the caller's
	// unread messages as read.
	ListForApplication(ctx context.Context, p auth.Principal, applicationID uuid.UUID) ([]Message, error)
	UnreadCount(ctx context.Context, p auth.Principal) (int, error)
}

type service struct {
	repo         Repository
	applications application.Repository
	candidates   candidate.Repository
	companies    company.Repository
	jobs         job.Repository
	events       *notify.Dispatcher
}

func NewService(repo Repository, applications application.Repository, candidates candidate.Repository, companies company.Repository, jobs job.Repository, events *notify.Dispatcher) UseCase {
	return &service{
		repo:         repo,
		applications: applications,
		candidates:   candidates,
		companies:    companies,
		jobs:         jobs,
		events:       events,
	}
}

func (s *service) Send(ctx context.Context, p auth.Principal, in SendInput) (Message, error) {
	if in.ApplicationID == uuid.Nil || in.ReceiverID == "" || in.ReceiverType == "" || in.Content == "" {
		return Message{}, ErrMissingFields
	}
	if in.ReceiverType != TypeRecruiter && in.ReceiverType != TypeCandidate {
		return Message{}, ErrInvalidReceiver
	}
	if strings.TrimSpace(in.Content) == "" {
		return Message{}, ErrEmptyContent
	}

	app, err := s.applications.GetByID(ctx, in.ApplicationID)
	if err != nil {
		return Message{}, err
	}
	if !auth.CanMessage(p, auth.Ownership{CompanyID: app.CompanyID, CandidateID: app.CandidateID}) {
		return Message{}, ErrForbidden
	}

	senderType := TypeCandidate
	if p.IsCompany() {
		senderType = TypeRecruiter
	}
	m := Message{
		ID:            uuid.New(),
		ApplicationID: app.ID,
		SenderID:      p.ID(),
		SenderType:    senderType,
		ReceiverID:    in.ReceiverID,
		ReceiverType:  in.ReceiverType,
		Content:       in.Content,
		Attachments:   in.Attachments,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return Message{}, err
	}

	s.notifyReceiver(ctx, p, m, app.JobID)
	return m, nil
}

// notifyReceiver resolves the receiver's email and the sender's display name,
// then pings the receiver. Any lookup or delivery failure is dropped: the
// message is already saved.
func (s *service) notifyReceiver(ctx context.Context, p auth.Principal, m Message, jobID uuid.UUID) {
	var receiverEmail, senderName string
	if m.ReceiverType == TypeCandidate {
		cand, err := s.candidates.GetByID(ctx, m.ReceiverID)
		if err != nil {
			return
		}
		receiverEmail = cand.Email
		if c, err := s.companies.GetByID(ctx, p.CompanyID()); err == nil {
			senderName = c.Name
		}
	} else {
		id, err := uuid.Parse(m.ReceiverID)
		if err != nil {
			return
		}
		c, err := s.companies.GetByID(ctx, id)
		if err != nil {
			return
		}
		receiverEmail = c.Email
		if cand, err := s.candidates.GetByID(ctx, p.CandidateID()); err == nil {
			senderName = cand.Name
		}
	}
	j, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return
	}
	s.events.Dispatch(ctx, notify.MessageReceived{
		Email:      receiverEmail,
		SenderName: senderName,
		JobTitle:   j.Title,
	})
}

func (s *service) ListForApplication(ctx context.Context, p auth.Principal, applicationID uuid.UUID) ([]Message, error) {
	app, err := s.applications.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if !auth.CanMessage(p, auth.Ownership{CompanyID: app.CompanyID, CandidateID: app.CandidateID}) {
		return nil, ErrForbidden
	}

	msgs, err := s.repo.ListByApplication(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	// Reading the conversation acknowledges everything addressed to us.
	if err := s.repo.MarkRead(ctx, applicationID, p.ID()); err != nil {
		return nil, err
	}
	return msgs, nil
}

func (s *service) UnreadCount(ctx context.Context, p auth.Principal) (int, error) {
	return s.repo.CountUnread(ctx, p.ID())
}
