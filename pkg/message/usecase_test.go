package message

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skill-bridge/server/pkg/application"
	"github.com/skill-bridge/server/pkg/auth"
	"github.com/skill-bridge/server/pkg/candidate"
	"github.com/skill-bridge/server/pkg/company"
	"github.com/skill-bridge/server/pkg/job"
	"github.com/skill-bridge/server/pkg/notify"
)

type fakeRepo struct {
	messages  []Message
	readMarks []string // receiver ids MarkRead was called with
}

func (r *fakeRepo) Create(_ context.Context, m Message) error {
	r.messages = append(r.messages, m)
	return nil
}

func (r *fakeRepo) ListByApplication(_ context.Context, applicationID uuid.UUID) ([]Message, error) {
	var res []Message
	for _, m := range r.messages {
		if m.ApplicationID == applicationID {
			res = append(res, m)
		}
	}
	return res, nil
}

func (r *fakeRepo) MarkRead(_ context.Context, _ uuid.UUID, receiverID string) error {
	r.readMarks = append(r.readMarks, receiverID)
	for i, m := range r.messages {
		if m.ReceiverID == receiverID {
			r.messages[i].IsRead = true
		}
	}
	return nil
}

func (r *fakeRepo) CountUnread(_ context.Context, receiverID string) (int, error) {
	n := 0
	for _, m := range r.messages {
		if m.ReceiverID == receiverID && !m.IsRead {
			n++
		}
	}
	return n, nil
}

type fakeApplications map[uuid.UUID]application.Application

func (f fakeApplications) Create(_ context.Context, a application.Application) error {
	f[a.ID] = a
	return nil
}
func (f fakeApplications) GetByID(_ context.Context, id uuid.UUID) (application.Application, error) {
	a, ok := f[id]
	if !ok {
		return application.Application{}, application.ErrNotFound
	}
	return a, nil
}
func (f fakeApplications) GetDetails(context.Context, uuid.UUID) (application.Details, error) {
	return application.Details{}, application.ErrNotFound
}
func (f fakeApplications) Update(_ context.Context, a application.Application) error {
	f[a.ID] = a
	return nil
}
func (f fakeApplications) ListByCompany(context.Context, uuid.UUID) ([]application.Details, error) {
	return nil, nil
}
func (f fakeApplications) ListByCandidate(context.Context, string) ([]application.Details, error) {
	return nil, nil
}
func (f fakeApplications) ListByJob(context.Context, uuid.UUID) ([]application.Details, error) {
	return nil, nil
}
func (f fakeApplications) Stats(context.Context, uuid.UUID) (application.Stats, error) {
	return application.Stats{}, nil
}

type fakeCandidates map[string]candidate.Candidate

func (f fakeCandidates) Create(_ context.Context, c candidate.Candidate) error { f[c.ID] = c; return nil }
func (f fakeCandidates) GetByID(_ context.Context, id string) (candidate.Candidate, error) {
	c, ok := f[id]
	if !ok {
		return candidate.Candidate{}, candidate.ErrNotFound
	}
	return c, nil
}
func (f fakeCandidates) UpdateProfile(context.Context, candidate.Candidate) error { return nil }
func (f fakeCandidates) UpdateResume(context.Context, string, string) error { return nil }

type fakeCompanies map[uuid.UUID]company.Company

func (f fakeCompanies) Create(_ context.Context, c company.Company) error { f[c.ID] = c; return nil }
func (f fakeCompanies) GetByEmail(_ context.Context, email string) (company.Company, error) {
	for _, c := range f {
		if c.Email == email {
			return c, nil
		}
	}
	return company.Company{}, company.ErrNotFound
}
func (f fakeCompanies) GetByID(_ context.Context, id uuid.UUID) (company.Company, error) {
	c, ok := f[id]
	if !ok {
		return company.Company{}, company.ErrNotFound
	}
	return c, nil
}
func (f fakeCompanies) UpdatePasswordHash(context.Context, uuid.UUID, string) error { return nil }

type fakeJobs map[uuid.UUID]job.Job

func (f fakeJobs) Create(_ context.Context, j job.Job) error { f[j.ID] = j; return nil }
func (f fakeJobs) GetByID(_ context.Context, id uuid.UUID) (job.Job, error) {
	j, ok := f[id]
	if !ok {
		return job.Job{}, job.ErrNotFound
	}
	return j, nil
}
func (f fakeJobs) GetForCompany(ctx context.Context, _, id uuid.UUID) (job.Job, error) {
	return f.GetByID(ctx, id)
}
func (f fakeJobs) ListByCompany(context.Context, uuid.UUID) ([]job.Job, error) { return nil, nil }

type captureNotifier struct {
	to   []string
	body string
}

func (n *captureNotifier) Send(_ context.Context, to, _, body string) error {
	n.to = append(n.to, to)
	n.body = body
	return nil
}

type fixture struct {
	companyID uuid.UUID
	appID     uuid.UUID
	repo      *fakeRepo
	notifier  *captureNotifier
	svc       UseCase
}

func newFixture() *fixture {
	companyID := uuid.New()
	jobID := uuid.New()
	appID := uuid.New()

	f := &fixture{
		companyID: companyID,
		appID:     appID,
		repo:      &fakeRepo{},
		notifier:  &captureNotifier{},
	}
	apps := fakeApplications{
		appID: {ID: appID, CandidateID: "cand_1", CompanyID: companyID, JobID: jobID},
	}
	candidates := fakeCandidates{
		"cand_1": {ID: "cand_1", Name: "Ada", Email: "ada@example.com"},
	}
	companies := fakeCompanies{
		companyID: {ID: companyID, Name: "Acme", Email: "hr@acme.example.com"},
	}
	jobs := fakeJobs{jobID: {ID: jobID, CompanyID: companyID, Title: "Backend Engineer"}}
	f.svc = NewService(f.repo, apps, candidates, companies, jobs, notify.NewDispatcher(f.notifier, time.Second))
	return f
}

func TestSend(t *testing.T) {
	ctx := context.Background()

	t.Run("recruiter to candidate", func(t *testing.T) {
		f := newFixture()
		p := auth.CompanyPrincipal(f.companyID)

		m, err := f.svc.Send(ctx, p, SendInput{
			ApplicationID: f.appID,
			Content:       "We'd like to move forward.",
			ReceiverID:    "cand_1",
			ReceiverType:  TypeCandidate,
		})
		require.NoError(t, err)
		assert.Equal(t, TypeRecruiter, m.SenderType)
		assert.Equal(t, f.companyID.String(), m.SenderID)
		assert.False(t, m.IsRead)
		require.Len(t, f.repo.messages, 1)

		require.Equal(t, []string{"ada@example.com"}, f.notifier.to)
		assert.Contains(t, f.notifier.body, "Acme")
		assert.Contains(t, f.notifier.body, "Backend Engineer")
	})

	t.Run("candidate to recruiter", func(t *testing.T) {
		f := newFixture()
		p := auth.CandidatePrincipal("cand_1")

		m, err := f.svc.Send(ctx, p, SendInput{
			ApplicationID: f.appID,
			Content:       "Thanks, looking forward to it.",
			ReceiverID:    f.companyID.String(),
			ReceiverType:  TypeRecruiter,
		})
		require.NoError(t, err)
		assert.Equal(t, TypeCandidate, m.SenderType)
		assert.Equal(t, "cand_1", m.SenderID)

		require.Equal(t, []string{"hr@acme.example.com"}, f.notifier.to)
		assert.Contains(t, f.notifier.body, "Ada")
	})

	t.Run("validation", func(t *testing.T) {
		f := newFixture()
		p := auth.CompanyPrincipal(f.companyID)

		_, err := f.svc.Send(ctx, p, SendInput{ApplicationID: f.appID, Content: "hi"})
		assert.ErrorIs(t, err, ErrMissingFields)

		_, err = f.svc.Send(ctx, p, SendInput{
			ApplicationID: f.appID, Content: "hi", ReceiverID: "cand_1", ReceiverType: "bot",
		})
		assert.ErrorIs(t, err, ErrInvalidReceiver)

		_, err = f.svc.Send(ctx, p, SendInput{
			ApplicationID: f.appID, Content: "   ", ReceiverID: "cand_1", ReceiverType: TypeCandidate,
		})
		assert.ErrorIs(t, err, ErrEmptyContent)
	})

	t.Run("outsiders are rejected", func(t *testing.T) {
		f := newFixture()

		_, err := f.svc.Send(ctx, auth.CompanyPrincipal(uuid.New()), SendInput{
			ApplicationID: f.appID, Content: "hi", ReceiverID: "cand_1", ReceiverType: TypeCandidate,
		})
		assert.ErrorIs(t, err, ErrForbidden)

		_, err = f.svc.Send(ctx, auth.CandidatePrincipal("cand_9"), SendInput{
			ApplicationID: f.appID, Content: "hi", ReceiverID: f.companyID.String(), ReceiverType: TypeRecruiter,
		})
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("unknown application", func(t *testing.T) {
		f := newFixture()
		_, err := f.svc.Send(ctx, auth.CompanyPrincipal(f.companyID), SendInput{
			ApplicationID: uuid.New(), Content: "hi", ReceiverID: "cand_1", ReceiverType: TypeCandidate,
		})
		assert.ErrorIs(t, err, application.ErrNotFound)
	})
}

func TestListForApplication(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	recruiter := auth.CompanyPrincipal(f.companyID)
	cand := auth.CandidatePrincipal("cand_1")

	_, err := f.svc.Send(ctx, recruiter, SendInput{
		ApplicationID: f.appID, Content: "hello", ReceiverID: "cand_1", ReceiverType: TypeCandidate,
	})
	require.NoError(t, err)

	// Reading as the candidate acknowledges the recruiter's message.
	msgs, err := f.svc.ListForApplication(ctx, cand, f.appID)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, []string{"cand_1"}, f.repo.readMarks)

	n, err := f.svc.UnreadCount(ctx, cand)
	require.NoError(t, err)
	assert.Zero(t, n)

	// Outsiders cannot read the conversation.
	_, err = f.svc.ListForApplication(ctx, auth.CompanyPrincipal(uuid.New()), f.appID)
	assert.ErrorIs(t, err, ErrForbidden)
}
