package repository

import (
	"context"

	"github.com/acadash/backend/domain"
)

// TaskRepository is implemented once per storage backend. Implementations
// return domain errors only: domain.ErrTaskNotFound for missing ids and
// ErrCodePersistence wraps for anything the backend itself broke on.
type TaskRepository interface {
	List(ctx context.Context) ([]domain.Task, error)
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	Update(ctx context.Context, task *domain.Task) error
	Delete(ctx context.Context, id string) error

	// FindBySourceExternalID looks up a task by its import dedup key.
	// Returns (nil, nil) when no such task exists.
	FindBySourceExternalID(ctx context.Context, source domain.Source, externalID string) (*domain.Task, error)
}

// Prober reports whether the durable backend is reachable right now.
// Callers must not cache the answer; availability changes mid-process.
type Prober interface {
	Available(ctx context.Context) bool
}
