package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skill-bridge/server/pkg/auth"
	"github.com/skill-bridge/server/pkg/candidate"
	"github.com/skill-bridge/server/pkg/job"
	"github.com/skill-bridge/server/pkg/notify"
)

type fakeRepo struct {
	apps      map[uuid.UUID]Application
	getCalls  int
	createErr error
}

func newFakeRepo(apps ...Application) *fakeRepo {
	r := &fakeRepo{apps: make(map[uuid.UUID]Application)}
	for _, a := range apps {
		r.apps[a.ID] = a
	}
	return r
}

func (r *fakeRepo) Create(_ context.Context, a Application) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.apps[a.ID] = a
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (Application, error) {
	r.getCalls++
	a, ok := r.apps[id]
	if !ok {
		return Application{}, ErrNotFound
	}
	return a, nil
}

func (r *fakeRepo) GetDetails(ctx context.Context, id uuid.UUID) (Details, error) {
	a, err := r.GetByID(ctx, id)
	if err != nil {
		return Details{}, err
	}
	return Details{Application: a}, nil
}

func (r *fakeRepo) Update(_ context.Context, a Application) error {
	if _, ok := r.apps[a.ID]; !ok {
		return ErrNotFound
	}
	r.apps[a.ID] = a
	return nil
}

func (r *fakeRepo) ListByCompany(context.Context, uuid.UUID) ([]Details, error) { return nil, nil }
func (r *fakeRepo) ListByCandidate(context.Context, string) ([]Details, error)  { return nil, nil }
func (r *fakeRepo) ListByJob(context.Context, uuid.UUID) ([]Details, error)     { return nil, nil }
func (r *fakeRepo) Stats(context.Context, uuid.UUID) (Stats, error)             { return Stats{}, nil }

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

type fakeJobs map[uuid.UUID]job.Job

func (f fakeJobs) Create(_ context.Context, j job.Job) error { f[j.ID] = j; return nil }
func (f fakeJobs) GetByID(_ context.Context, id uuid.UUID) (job.Job, error) {
	j, ok := f[id]
	if !ok {
		return job.Job{}, job.ErrNotFound
	}
	return j, nil
}
func (f fakeJobs) GetForCompany(ctx context.Context, companyID, id uuid.UUID) (job.Job, error) {
	j, err := f.GetByID(ctx, id)
	if err != nil || j.CompanyID != companyID {
		return job.Job{}, job.ErrNotFound
	}
	return j, nil
}
func (f fakeJobs) ListByCompany(context.Context, uuid.UUID) ([]job.Job, error) { return nil, nil }

type sentMail struct {
	to, subject, body string
}

type captureNotifier struct {
	sent []sentMail
	err  error
}

func (n *captureNotifier) Send(_ context.Context, to, subject, body string) error {
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}

type fixture struct {
	companyID  uuid.UUID
	jobID      uuid.UUID
	app        Application
	repo       *fakeRepo
	candidates fakeCandidates
	jobs       fakeJobs
	notifier   *captureNotifier
	svc        UseCase
}

func newFixture() *fixture {
	companyID := uuid.New()
	jobID := uuid.New()
	app := Application{
		ID:          uuid.New(),
		CandidateID: "cand_1",
		JobID:       jobID,
		CompanyID:   companyID,
		Resume:      "https://cdn.example.com/resume.pdf",
		Status:      StatusPending,
	}
	f := &fixture{
		companyID: companyID,
		jobID:     jobID,
		app:       app,
		repo:      newFakeRepo(app),
		candidates: fakeCandidates{
			"cand_1": {ID: "cand_1", Name: "Ada", Email: "ada@example.com", Resume: "https://cdn.example.com/resume.pdf"},
		},
		jobs:     fakeJobs{jobID: {ID: jobID, CompanyID: companyID, Title: "Backend Engineer"}},
		notifier: &captureNotifier{},
	}
	f.svc = NewService(f.repo, f.candidates, f.jobs, notify.NewDispatcher(f.notifier, time.Second))
	return f
}

func TestApply(t *testing.T) {
	ctx := context.Background()

	t.Run("snapshots the resume and starts pending", func(t *testing.T) {
		f := newFixture()
		otherJob := uuid.New()
		f.jobs[otherJob] = job.Job{ID: otherJob, CompanyID: f.companyID, Title: "SRE"}

		a, err := f.svc.Apply(ctx, "cand_1", otherJob, "hello", 90000)
		require.NoError(t, err)
		assert.Equal(t, StatusPending, a.Status)
		assert.Equal(t, "https://cdn.example.com/resume.pdf", a.Resume)
		assert.Equal(t, f.companyID, a.CompanyID)
		assert.Equal(t, "hello", a.CoverLetter)
		assert.False(t, a.ApplicationDate.IsZero())
		assert.Contains(t, f.repo.apps, a.ID)
	})

	t.Run("requires a resume on the profile", func(t *testing.T) {
		f := newFixture()
		f.candidates["cand_2"] = candidate.Candidate{ID: "cand_2", Name: "Bob", Email: "bob@example.com"}

		_, err := f.svc.Apply(ctx, "cand_2", f.jobID, "", 0)
		assert.ErrorIs(t, err, ErrResumeRequired)
	})

	t.Run("rejects a malformed resume URL", func(t *testing.T) {
		f := newFixture()
		f.candidates["cand_3"] = candidate.Candidate{ID: "cand_3", Name: "Cy", Email: "cy@example.com", Resume: "not-a-url"}

		_, err := f.svc.Apply(ctx, "cand_3", f.jobID, "", 0)
		assert.ErrorIs(t, err, ErrInvalidResume)
	})

	t.Run("unknown candidate", func(t *testing.T) {
		f := newFixture()
		_, err := f.svc.Apply(ctx, "nobody", f.jobID, "", 0)
		assert.ErrorIs(t, err, candidate.ErrNotFound)
	})

	t.Run("unknown job", func(t *testing.T) {
		f := newFixture()
		_, err := f.svc.Apply(ctx, "cand_1", uuid.New(), "", 0)
		assert.ErrorIs(t, err, job.ErrNotFound)
	})

	t.Run("duplicate application surfaces from the store", func(t *testing.T) {
		f := newFixture()
		f.repo.createErr = ErrAlreadyApplied
		_, err := f.svc.Apply(ctx, "cand_1", f.jobID, "", 0)
		assert.ErrorIs(t, err, ErrAlreadyApplied)
	})
}

func TestUpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("persists then notifies the candidate", func(t *testing.T) {
		f := newFixture()
		p := auth.CompanyPrincipal(f.companyID)

		a, err := f.svc.UpdateStatus(ctx, p, f.app.ID, StatusShortlisted)
		require.NoError(t, err)
		assert.Equal(t, StatusShortlisted, a.Status)
		assert.Equal(t, StatusShortlisted, f.repo.apps[f.app.ID].Status)
		assert.False(t, a.LastStatusUpdate.IsZero())

		require.Len(t, f.notifier.sent, 1)
		assert.Equal(t, "ada@example.com", f.notifier.sent[0].to)
		assert.Contains(t, f.notifier.sent[0].body, "Backend Engineer")
		assert.Contains(t, f.notifier.sent[0].body, StatusShortlisted)
	})

	t.Run("every known status is accepted and only status fields move", func(t *testing.T) {
		f := newFixture()
		p := auth.CompanyPrincipal(f.companyID)
		before := f.repo.apps[f.app.ID]

		for _, s := range Statuses {
			a, err := f.svc.UpdateStatus(ctx, p, f.app.ID, s)
			require.NoError(t, err, s)
			assert.Equal(t, s, a.Status)
			assert.Equal(t, before.Resume, a.Resume)
			assert.Equal(t, before.RecruiterNotes, a.RecruiterNotes)
			assert.Equal(t, before.RecruiterRating, a.RecruiterRating)
		}
	})

	t.Run("rejects unknown status before touching the store", func(t *testing.T) {
		f := newFixture()
		p := auth.CompanyPrincipal(f.companyID)

		_, err := f.svc.UpdateStatus(ctx, p, f.app.ID, "archived")
		assert.ErrorIs(t, err, ErrInvalidStatus)
		assert.Zero(t, f.repo.getCalls)
	})

	t.Run("missing and foreign applications are indistinguishable", func(t *testing.T) {
		f := newFixture()

		_, err := f.svc.UpdateStatus(ctx, auth.CompanyPrincipal(f.companyID), uuid.New(), StatusReviewed)
		assert.ErrorIs(t, err, ErrNotAccessible)

		_, err = f.svc.UpdateStatus(ctx, auth.CompanyPrincipal(uuid.New()), f.app.ID, StatusReviewed)
		assert.ErrorIs(t, err, ErrNotAccessible)
	})

	t.Run("candidates cannot move the status", func(t *testing.T) {
		f := newFixture()
		_, err := f.svc.UpdateStatus(ctx, auth.CandidatePrincipal("cand_1"), f.app.ID, StatusReviewed)
		assert.ErrorIs(t, err, ErrNotAccessible)
		assert.Equal(t, StatusPending, f.repo.apps[f.app.ID].Status)
	})

	t.Run("notification failure does not fail the transition", func(t *testing.T) {
		f := newFixture()
		f.notifier.err = errors.New("smtp down")

		a, err := f.svc.UpdateStatus(ctx, auth.CompanyPrincipal(f.companyID), f.app.ID, StatusRejected)
		require.NoError(t, err)
		assert.Equal(t, StatusRejected, a.Status)
		assert.Equal(t, StatusRejected, f.repo.apps[f.app.ID].Status)
	})
}

func TestReview(t *testing.T) {
	ctx := context.Background()

	t.Run("sets status, notes and rating together", func(t *testing.T) {
		f := newFixture()
		p := auth.CompanyPrincipal(f.companyID)

		a, err := f.svc.Review(ctx, p, f.app.ID, StatusInterviewed, "strong systems background", 4)
		require.NoError(t, err)
		assert.Equal(t, StatusInterviewed, a.Status)
		assert.Equal(t, "strong systems background", a.RecruiterNotes)
		assert.Equal(t, 4, a.RecruiterRating)
	})

	t.Run("rating bounds", func(t *testing.T) {
		f := newFixture()
		p := auth.CompanyPrincipal(f.companyID)

		_, err := f.svc.Review(ctx, p, f.app.ID, StatusReviewed, "", 6)
		assert.ErrorIs(t, err, ErrInvalidRating)
		_, err = f.svc.Review(ctx, p, f.app.ID, StatusReviewed, "", -1)
		assert.ErrorIs(t, err, ErrInvalidRating)
	})

	t.Run("zero rating leaves the stored rating alone", func(t *testing.T) {
		f := newFixture()
		p := auth.CompanyPrincipal(f.companyID)

		_, err := f.svc.Review(ctx, p, f.app.ID, StatusReviewed, "", 3)
		require.NoError(t, err)
		a, err := f.svc.Review(ctx, p, f.app.ID, StatusShortlisted, "", 0)
		require.NoError(t, err)
		assert.Equal(t, 3, a.RecruiterRating)
	})
}

func TestGet(t *testing.T) {
	ctx := context.Background()

	t.Run("both parties can read", func(t *testing.T) {
		f := newFixture()

		d, err := f.svc.Get(ctx, auth.CompanyPrincipal(f.companyID), f.app.ID)
		require.NoError(t, err)
		assert.Equal(t, f.app.ID, d.ID)

		d, err = f.svc.Get(ctx, auth.CandidatePrincipal("cand_1"), f.app.ID)
		require.NoError(t, err)
		assert.Equal(t, f.app.ID, d.ID)
	})

	t.Run("outsiders get the combined not-found", func(t *testing.T) {
		f := newFixture()

		_, err := f.svc.Get(ctx, auth.CompanyPrincipal(uuid.New()), f.app.ID)
		assert.ErrorIs(t, err, ErrNotAccessible)

		_, err = f.svc.Get(ctx, auth.CandidatePrincipal("cand_9"), f.app.ID)
		assert.ErrorIs(t, err, ErrNotAccessible)

		_, err = f.svc.Get(ctx, auth.CompanyPrincipal(f.companyID), uuid.New())
		assert.ErrorIs(t, err, ErrNotAccessible)
	})
}

func TestListForJobOwnership(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	_, err := f.svc.ListForJob(ctx, uuid.New(), f.jobID)
	assert.ErrorIs(t, err, job.ErrNotFound)

	_, err = f.svc.StatsForJob(ctx, uuid.New(), f.jobID)
	assert.ErrorIs(t, err, job.ErrNotFound)

	_, err = f.svc.ListForJob(ctx, f.companyID, f.jobID)
	assert.NoError(t, err)
}

func TestValidStatus(t *testing.T) {
	for _, s := range Statuses {
		assert.True(t, ValidStatus(s), s)
	}
	assert.False(t, ValidStatus("Pending"))
	assert.False(t, ValidStatus(""))
	assert.False(t, ValidStatus("archived"))
}
