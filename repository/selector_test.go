package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acadash/backend/domain"
	"github.com/acadash/backend/repository"
	"github.com/acadash/backend/repository/memory"
)

type stubProbe struct {
	available bool
}

func (p stubProbe) Available(ctx context.Context) bool { return p.available }

// brokenRepo accepts connections (the probe passes) but fails every call,
// the way a store dropping mid-operation would.
type brokenRepo struct{}

func (brokenRepo) List(ctx context.Context) ([]domain.Task, error) {
	return nil, domain.NewError(domain.ErrCodePersistence, "connection reset")
}

func (brokenRepo) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	return nil, domain.NewError(domain.ErrCodePersistence, "connection reset")
}

func (brokenRepo) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	return nil, domain.NewError(domain.ErrCodePersistence, "connection reset")
}

func (brokenRepo) Update(ctx context.Context, task *domain.Task) error {
	return domain.NewError(domain.ErrCodePersistence, "connection reset")
}

func (brokenRepo) Delete(ctx context.Context, id string) error {
	return domain.NewError(domain.ErrCodePersistence, "connection reset")
}

func (brokenRepo) FindBySourceExternalID(ctx context.Context, source domain.Source, externalID string) (*domain.Task, error) {
	return nil, domain.NewError(domain.ErrCodePersistence, "connection reset")
}

func seedFallback(t *testing.T, title string) (*memory.TaskRepository, *domain.Task) {
	t.Helper()
	fallback := memory.NewTaskRepository()
	created, err := fallback.Create(context.Background(), &domain.Task{
		Title:    title,
		Priority: domain.PriorityMedium,
		Status:   domain.StatusTodo,
		Source:   domain.SourceManual,
	})
	require.NoError(t, err)
	return fallback, created
}

func TestSelectorUsesFallbackWhenProbeFails(t *testing.T) {
	fallback, seeded := seedFallback(t, "kept in memory")
	selector := repository.NewSelector(brokenRepo{}, fallback, stubProbe{available: false}, nil)

	tasks, err := selector.List(context.Background())
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, seeded.ID, tasks[0].ID)
}

func TestSelectorUsesFallbackWithoutDurableBackend(t *testing.T) {
	fallback, _ := seedFallback(t, "memory only")
	selector := repository.NewSelector(nil, fallback, nil, nil)

	created, err := selector.Create(context.Background(), &domain.Task{
		Title:    "new",
		Priority: domain.PriorityMedium,
		Status:   domain.StatusTodo,
		Source:   domain.SourceManual,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	tasks, err := selector.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, tasks, 2)
}

func TestSelectorReadFallsBackOnDurableFailure(t *testing.T) {
	// The probe passes but the durable store errors mid-call; reads degrade
	// silently instead of surfacing a persistence error.
	fallback, seeded := seedFallback(t, "rescued")
	selector := repository.NewSelector(brokenRepo{}, fallback, stubProbe{available: true}, nil)

	tasks, err := selector.List(context.Background())
	require.NoError(t, err)
	require.Len(t, tasks, 1)

	got, err := selector.GetByID(context.Background(), seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, "rescued", got.Title)
}

func TestSelectorWriteSurfacesDurableFailure(t *testing.T) {
	fallback, _ := seedFallback(t, "existing")
	selector := repository.NewSelector(brokenRepo{}, fallback, stubProbe{available: true}, nil)

	_, err := selector.Create(context.Background(), &domain.Task{Title: "doomed"})
	require.Error(t, err)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodePersistence))
}
