package job

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo map[uuid.UUID]Job

func (f fakeRepo) Create(_ context.Context, j Job) error { f[j.ID] = j; return nil }
func (f fakeRepo) GetByID(_ context.Context, id uuid.UUID) (Job, error) {
	j, ok := f[id]
	if !ok {
		return Job{}, ErrNotFound
	}
	return j, nil
}
func (f fakeRepo) GetForCompany(ctx context.Context, companyID, id uuid.UUID) (Job, error) {
	j, err := f.GetByID(ctx, id)
	if err != nil || j.CompanyID != companyID {
		return Job{}, ErrNotFound
	}
	return j, nil
}
func (f fakeRepo) ListByCompany(context.Context, uuid.UUID) ([]Job, error) { return nil, nil }

func TestCreate(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()

	t.Run("fills defaults", func(t *testing.T) {
		repo := fakeRepo{}
		svc := NewService(repo)

		j, err := svc.Create(ctx, Job{
			CompanyID:   companyID,
			Title:       "  Backend Engineer  ",
			Description: "Build things.",
			SalaryMin:   100, SalaryMax: 200,
		})
		require.NoError(t, err)
		assert.Equal(t, "Backend Engineer", j.Title)
		assert.Equal(t, StatusActive, j.Status)
		assert.True(t, j.Visible)
		assert.NotEqual(t, uuid.Nil, j.ID)
		assert.Contains(t, repo, j.ID)
	})

	t.Run("validation", func(t *testing.T) {
		svc := NewService(fakeRepo{})

		_, err := svc.Create(ctx, Job{CompanyID: companyID, Description: "d"})
		assert.ErrorContains(t, err, "title")

		_, err = svc.Create(ctx, Job{CompanyID: companyID, Title: "t"})
		assert.ErrorContains(t, err, "description")

		_, err = svc.Create(ctx, Job{CompanyID: companyID, Title: "t", Description: "d", SalaryMin: 200, SalaryMax: 100})
		assert.ErrorContains(t, err, "salary")
	})
}

func TestGetForCompany(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()
	jobID := uuid.New()
	repo := fakeRepo{jobID: {ID: jobID, CompanyID: companyID, Title: "t"}}
	svc := NewService(repo)

	_, err := svc.GetForCompany(ctx, companyID, jobID)
	assert.NoError(t, err)

	// A foreign company sees someone else's job as missing.
	_, err = svc.GetForCompany(ctx, uuid.New(), jobID)
	assert.ErrorIs(t, err, ErrNotFound)
}
