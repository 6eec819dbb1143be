package interview

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
	"github.com/skill-bridge/server/pkg/notify"
)

type fakeRepo struct {
	interviews map[uuid.UUID]Interview
	lastFilter ListFilter
}

func newFakeRepo() *fakeRepo { return &fakeRepo{interviews: make(map[uuid.UUID]Interview)} }

func (r *fakeRepo) Create(_ context.Context, iv Interview) error {
	r.interviews[iv.ID] = iv
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (Interview, error) {
	iv, ok := r.interviews[id]
	if !ok {
		return Interview{}, ErrNotFound
	}
	return iv, nil
}

func (r *fakeRepo) Update(_ context.Context, iv Interview) error {
	if _, ok := r.interviews[iv.ID]; !ok {
		return ErrNotFound
	}
	r.interviews[iv.ID] = iv
	return nil
}

func (r *fakeRepo) ListByInterviewer(_ context.Context, companyID uuid.UUID, f ListFilter) ([]Details, error) {
	r.lastFilter = f
	var out []Details
	for _, iv := range r.interviews {
		listed := false
		for _, id := range iv.Interviewers {
			if id == companyID {
				listed = true
			}
		}
		if !listed {
			continue
		}
		if f.Status != "" && iv.Status != f.Status {
			continue
		}
		// window applies only when both ends are given, like the SQL repo
		if !f.From.IsZero() && !f.To.IsZero() {
			if iv.ScheduledTime.Before(f.From) || iv.ScheduledTime.After(f.To) {
				continue
			}
		}
		out = append(out, Details{Interview: iv})
	}
	return out, nil
}

func (r *fakeRepo) ListUpcomingByCandidate(context.Context, string, time.Time) ([]Details, error) {
	return nil, nil
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

type captureNotifier struct {
	sent []string // recipient per send
	body string
}

func (n *captureNotifier) Send(_ context.Context, to, _, body string) error {
	n.sent = append(n.sent, to)
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
	appID := uuid.New()
	apps := fakeApplications{
		appID: {ID: appID, CandidateID: "cand_1", CompanyID: companyID, JobID: uuid.New()},
	}
	candidates := fakeCandidates{
		"cand_1": {ID: "cand_1", Name: "Ada", Email: "ada@example.com"},
	}
	f := &fixture{
		companyID: companyID,
		appID:     appID,
		repo:      newFakeRepo(),
		notifier:  &captureNotifier{},
	}
	f.svc = NewService(f.repo, apps, candidates, notify.NewDispatcher(f.notifier, time.Second))
	return f
}

func (f *fixture) schedule(t *testing.T, in ScheduleInput) Interview {
	t.Helper()
	if in.ApplicationID == uuid.Nil {
		in.ApplicationID = f.appID
	}
	if in.ScheduledTime.IsZero() {
		in.ScheduledTime = time.Now().Add(48 * time.Hour)
	}
	if in.MeetingType == "" {
		in.MeetingType = MeetingOnline
	}
	iv, err := f.svc.Schedule(context.Background(), f.companyID, in)
	require.NoError(t, err)
	return iv
}

func TestSchedule(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults and notification", func(t *testing.T) {
		f := newFixture()
		iv := f.schedule(t, ScheduleInput{
			MeetingDetails: MeetingDetails{Platform: "meet", JoinURL: "https://meet.example.com/x"},
		})

		assert.Equal(t, StatusScheduled, iv.Status)
		assert.Equal(t, 60, iv.Duration)
		assert.Equal(t, []uuid.UUID{f.companyID}, iv.Interviewers)
		assert.False(t, iv.CandidateConfirmed)
		assert.Contains(t, f.repo.interviews, iv.ID)

		require.Equal(t, []string{"ada@example.com"}, f.notifier.sent)
		assert.Contains(t, f.notifier.body, "https://meet.example.com/x")
	})

	t.Run("validation", func(t *testing.T) {
		f := newFixture()

		_, err := f.svc.Schedule(ctx, f.companyID, ScheduleInput{
			ApplicationID: f.appID, MeetingType: MeetingOnline,
		})
		assert.ErrorIs(t, err, ErrMissingSchedule)

		_, err = f.svc.Schedule(ctx, f.companyID, ScheduleInput{
			ApplicationID: f.appID, ScheduledTime: time.Now(), MeetingType: "phone",
		})
		assert.ErrorIs(t, err, ErrInvalidMeeting)

		_, err = f.svc.Schedule(ctx, f.companyID, ScheduleInput{
			ApplicationID: f.appID, ScheduledTime: time.Now(), MeetingType: MeetingOnline, Duration: -30,
		})
		assert.ErrorIs(t, err, ErrInvalidDuration)
	})

	t.Run("past scheduledTime is accepted", func(t *testing.T) {
		f := newFixture()
		iv := f.schedule(t, ScheduleInput{ScheduledTime: time.Now().Add(-24 * time.Hour)})
		assert.Equal(t, StatusScheduled, iv.Status)
	})

	t.Run("foreign application reads as missing", func(t *testing.T) {
		f := newFixture()

		_, err := f.svc.Schedule(ctx, uuid.New(), ScheduleInput{
			ApplicationID: f.appID, ScheduledTime: time.Now(), MeetingType: MeetingOnline,
		})
		assert.ErrorIs(t, err, application.ErrNotAccessible)

		_, err = f.svc.Schedule(ctx, f.companyID, ScheduleInput{
			ApplicationID: uuid.New(), ScheduledTime: time.Now(), MeetingType: MeetingOnline,
		})
		assert.ErrorIs(t, err, application.ErrNotAccessible)
	})
}

func TestUpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("listed interviewer may set any status repeatedly", func(t *testing.T) {
		f := newFixture()
		iv := f.schedule(t, ScheduleInput{})
		p := auth.CompanyPrincipal(f.companyID)

		got, err := f.svc.UpdateStatus(ctx, p, iv.ID, StatusCompleted, "went well")
		require.NoError(t, err)
		assert.Equal(t, StatusCompleted, got.Status)
		assert.Equal(t, "went well", got.MeetingDetails.Notes)

		// Same status again is a no-op, not an error.
		got, err = f.svc.UpdateStatus(ctx, p, iv.ID, StatusCompleted, "")
		require.NoError(t, err)
		assert.Equal(t, StatusCompleted, got.Status)
		assert.Equal(t, "went well", got.MeetingDetails.Notes)
	})

	t.Run("unknown status", func(t *testing.T) {
		f := newFixture()
		iv := f.schedule(t, ScheduleInput{})
		_, err := f.svc.UpdateStatus(ctx, auth.CompanyPrincipal(f.companyID), iv.ID, "done", "")
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("non-interviewers get an explicit 403", func(t *testing.T) {
		f := newFixture()
		iv := f.schedule(t, ScheduleInput{})

		_, err := f.svc.UpdateStatus(ctx, auth.CompanyPrincipal(uuid.New()), iv.ID, StatusCancelled, "")
		assert.ErrorIs(t, err, ErrForbidden)

		_, err = f.svc.UpdateStatus(ctx, auth.CandidatePrincipal("cand_1"), iv.ID, StatusCancelled, "")
		assert.ErrorIs(t, err, ErrForbidden)
	})
}

func TestConfirm(t *testing.T) {
	ctx := context.Background()

	t.Run("one-way and idempotent", func(t *testing.T) {
		f := newFixture()
		iv := f.schedule(t, ScheduleInput{})
		p := auth.CandidatePrincipal("cand_1")

		got, err := f.svc.Confirm(ctx, p, iv.ID)
		require.NoError(t, err)
		assert.True(t, got.CandidateConfirmed)

		again, err := f.svc.Confirm(ctx, p, iv.ID)
		require.NoError(t, err)
		assert.True(t, again.CandidateConfirmed)
		assert.Equal(t, got.UpdatedAt, again.UpdatedAt)
	})

	t.Run("only the applying candidate", func(t *testing.T) {
		f := newFixture()
		iv := f.schedule(t, ScheduleInput{})

		_, err := f.svc.Confirm(ctx, auth.CandidatePrincipal("cand_2"), iv.ID)
		assert.ErrorIs(t, err, ErrForbidden)

		_, err = f.svc.Confirm(ctx, auth.CompanyPrincipal(f.companyID), iv.ID)
		assert.ErrorIs(t, err, ErrForbidden)
	})
}

func TestListForCompanyFilter(t *testing.T) {
	f := newFixture()
	base := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	early := f.schedule(t, ScheduleInput{ScheduledTime: base})
	f.schedule(t, ScheduleInput{ScheduledTime: base.Add(10 * 24 * time.Hour)})

	t.Run("invalid status rejected", func(t *testing.T) {
		_, err := f.svc.ListForCompany(context.Background(), f.companyID, ListFilter{Status: "bogus"})
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("date window narrows the listing", func(t *testing.T) {
		filter := ListFilter{From: base.Add(-time.Hour), To: base.Add(time.Hour)}
		got, err := f.svc.ListForCompany(context.Background(), f.companyID, filter)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, early.ID, got[0].ID)
		assert.Equal(t, filter, f.repo.lastFilter)
	})

	t.Run("half-open window is ignored", func(t *testing.T) {
		got, err := f.svc.ListForCompany(context.Background(), f.companyID, ListFilter{From: base.Add(time.Hour)})
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("outsider sees nothing", func(t *testing.T) {
		got, err := f.svc.ListForCompany(context.Background(), uuid.New(), ListFilter{})
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}
