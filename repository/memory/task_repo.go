package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/acadash/backend/domain"
	"github.com/acadash/backend/repository"
)

// TaskRepository is the in-memory fallback store. fasthttp serves requests
// from multiple goroutines, so access is guarded by a RWMutex.
type TaskRepository struct {
	mu    sync.RWMutex
	tasks map[string]*domain.Task
	order []string
}

// NewTaskRepository returns an empty in-memory TaskRepository.
func NewTaskRepository() *TaskRepository {
	return &TaskRepository{
		tasks: make(map[string]*domain.Task),
	}
}

var _ repository.TaskRepository = (*TaskRepository)(nil)

func (r *TaskRepository) List(ctx context.Context) ([]domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tasks := make([]domain.Task, 0, len(r.order))
	for _, id := range r.order {
		tasks = append(tasks, *r.tasks[id])
	}
	// Newest first, same order the durable backend serves.
	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
	})
	return tasks, nil
}

func (r *TaskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	task, ok := r.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	copied := *task
	return &copied, nil
}

func (r *TaskRepository) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *task
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	stored.CreatedAt = time.Now().UTC()

	r.tasks[stored.ID] = &stored
	r.order = append(r.order, stored.ID)

	result := stored
	return &result, nil
}

func (r *TaskRepository) Update(ctx context.Context, task *domain.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.tasks[task.ID]
	if !ok {
		return domain.ErrTaskNotFound
	}

	updated := *task
	updated.CreatedAt = existing.CreatedAt
	now := time.Now().UTC()
	updated.UpdatedAt = &now
	r.tasks[task.ID] = &updated

	task.CreatedAt = updated.CreatedAt
	task.UpdatedAt = updated.UpdatedAt
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tasks[id]; !ok {
		return domain.ErrTaskNotFound
	}
	delete(r.tasks, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *TaskRepository) FindBySourceExternalID(ctx context.Context, source domain.Source, externalID string) (*domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.order {
		task := r.tasks[id]
		if task.Source == source && task.ExternalID == externalID {
			copied := *task
			return &copied, nil
		}
	}
	return nil, nil
}
