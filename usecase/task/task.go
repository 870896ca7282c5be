package task

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/acadash/backend/domain"
	"github.com/acadash/backend/repository"
)

// UseCase owns task validation, defaulting and merge semantics. Storage
// selection happens below it, in the repository selector.
type UseCase struct {
	tasks  repository.TaskRepository
	logger *zap.Logger
}

func New(tasks repository.TaskRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		tasks:  tasks,
		logger: logger,
	}
}

// CreateInput carries the user-settable fields of a new task. Empty enum
// fields get defaults; invalid ones are rejected, never coerced.
type CreateInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     string `json:"dueDate"`
	TimeSlot    string `json:"timeSlot"`
	Priority    string `json:"priority"`
	Status      string `json:"status"`
	Source      string `json:"source"`
}

// UpdateInput distinguishes absent fields (nil) from explicitly empty ones,
// so updates merge instead of overwrite.
type UpdateInput struct {
	Title            *string `json:"title"`
	Description      *string `json:"description"`
	DueDate          *string `json:"dueDate"`
	TimeSlot         *string `json:"timeSlot"`
	Priority         *string `json:"priority"`
	Status           *string `json:"status"`
	Source           *string `json:"source"`
	ExternalID       *string `json:"externalId"`
	CanvasCourseID   *string `json:"canvasCourseId"`
	CanvasCourseName *string `json:"canvasCourseName"`
	CalendarEventID  *string `json:"calendarEventId"`
}

func (uc *UseCase) ListTasks(ctx context.Context) ([]domain.Task, error) {
	return uc.tasks.List(ctx)
}

func (uc *UseCase) GetTask(ctx context.Context, id string) (*domain.Task, error) {
	return uc.tasks.GetByID(ctx, id)
}

func (uc *UseCase) CreateTask(ctx context.Context, input CreateInput) (*domain.Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, domain.ErrTitleRequired
	}

	task := &domain.Task{
		Title:       title,
		Description: input.Description,
		DueDate:     input.DueDate,
		TimeSlot:    input.TimeSlot,
		Priority:    domain.PriorityMedium,
		Status:      domain.StatusTodo,
		Source:      domain.SourceManual,
	}

	if input.Priority != "" {
		task.Priority = domain.Priority(input.Priority)
	}
	if input.Status != "" {
		task.Status = domain.Status(input.Status)
	}
	if input.Source != "" {
		task.Source = domain.Source(input.Source)
	}
	if err := validateEnums(task); err != nil {
		return nil, err
	}

	return uc.tasks.Create(ctx, task)
}

func (uc *UseCase) UpdateTask(ctx context.Context, id string, input UpdateInput) (*domain.Task, error) {
	task, err := uc.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, domain.ErrTitleRequired
		}
		task.Title = title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.DueDate != nil {
		task.DueDate = *input.DueDate
	}
	if input.TimeSlot != nil {
		task.TimeSlot = *input.TimeSlot
	}
	if input.Priority != nil {
		task.Priority = domain.Priority(*input.Priority)
	}
	if input.Status != nil {
		task.Status = domain.Status(*input.Status)
	}
	if input.Source != nil {
		task.Source = domain.Source(*input.Source)
	}
	if input.ExternalID != nil {
		task.ExternalID = *input.ExternalID
	}
	if input.CanvasCourseID != nil {
		task.CanvasCourseID = *input.CanvasCourseID
	}
	if input.CanvasCourseName != nil {
		task.CanvasCourseName = *input.CanvasCourseName
	}
	if input.CalendarEventID != nil {
		task.CalendarEventID = *input.CalendarEventID
	}

	if err := validateEnums(task); err != nil {
		return nil, err
	}

	if err := uc.tasks.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (uc *UseCase) DeleteTask(ctx context.Context, id string) error {
	return uc.tasks.Delete(ctx, id)
}

func validateEnums(task *domain.Task) error {
	if !task.Priority.Valid() {
		return domain.NewError(domain.ErrCodeInvalid, "priority must be one of low, medium, high")
	}
	if !task.Status.Valid() {
		return domain.NewError(domain.ErrCodeInvalid, "status must be one of todo, progress, done")
	}
	if !task.Source.Valid() {
		return domain.NewError(domain.ErrCodeInvalid, "source must be one of manual, canvas, calendar")
	}
	return nil
}
