package repository

import (
	"context"

	"go.uber.org/zap"

	"github.com/acadash/backend/domain"
)

// Selector is a TaskRepository that picks between a durable backend and an
// in-memory fallback on every call, based on a live probe. The two backends
// are not synchronized: tasks written while the durable store was down stay
// in memory, same as the original deployment model.
type Selector struct {
	durable  TaskRepository
	fallback TaskRepository
	probe    Prober
	logger   *zap.Logger
}

// NewSelector wires the dual-backend repository. durable and probe may be nil
// when no durable store is configured; the fallback then serves everything.
func NewSelector(durable TaskRepository, fallback TaskRepository, probe Prober, logger *zap.Logger) *Selector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Selector{
		durable:  durable,
		fallback: fallback,
		probe:    probe,
		logger:   logger,
	}
}

func (s *Selector) active(ctx context.Context) TaskRepository {
	if s.durable == nil || s.probe == nil {
		return s.fallback
	}
	if !s.probe.Available(ctx) {
		s.logger.Debug("durable store unavailable, using in-memory fallback")
		return s.fallback
	}
	return s.durable
}

func (s *Selector) List(ctx context.Context) ([]domain.Task, error) {
	repo := s.active(ctx)
	tasks, err := repo.List(ctx)
	if err != nil && repo != s.fallback && domain.IsDomainError(err, domain.ErrCodePersistence) {
		s.logger.Warn("durable list failed, serving in-memory tasks", zap.Error(err))
		return s.fallback.List(ctx)
	}
	return tasks, err
}

func (s *Selector) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	repo := s.active(ctx)
	task, err := repo.GetByID(ctx, id)
	if err != nil && repo != s.fallback && domain.IsDomainError(err, domain.ErrCodePersistence) {
		s.logger.Warn("durable get failed, trying in-memory fallback", zap.Error(err))
		return s.fallback.GetByID(ctx, id)
	}
	return task, err
}

func (s *Selector) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	return s.active(ctx).Create(ctx, task)
}

func (s *Selector) Update(ctx context.Context, task *domain.Task) error {
	return s.active(ctx).Update(ctx, task)
}

func (s *Selector) Delete(ctx context.Context, id string) error {
	return s.active(ctx).Delete(ctx, id)
}

func (s *Selector) FindBySourceExternalID(ctx context.Context, source domain.Source, externalID string) (*domain.Task, error) {
	return s.active(ctx).FindBySourceExternalID(ctx, source, externalID)
}
