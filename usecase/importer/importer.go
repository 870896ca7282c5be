package importer

import (
	"context"
	"regexp"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/acadash/backend/domain"
	"github.com/acadash/backend/internal/infrastructure/canvas"
	"github.com/acadash/backend/repository"
)

// CanvasAPI is the slice of the Canvas client the reconciler needs,
// extracted so tests can fake the provider.
type CanvasAPI interface {
	Course(ctx context.Context, courseID string) (*canvas.Course, error)
	CourseAssignments(ctx context.Context, courseID string) ([]canvas.Assignment, error)
	Assignment(ctx context.Context, courseID, assignmentID string) (*canvas.Assignment, error)
	UpcomingAssignments(ctx context.Context) ([]canvas.Assignment, error)
}

// Result reports a (possibly partial) import. Tasks that could not be durably
// stored are included with Unpersisted set.
type Result struct {
	ImportedCount int           `json:"importedCount"`
	Tasks         []domain.Task `json:"tasks"`
}

// Service materializes Canvas assignments as local tasks exactly once each.
type Service struct {
	api    CanvasAPI
	tasks  repository.TaskRepository
	logger *zap.Logger
}

func New(api CanvasAPI, tasks repository.TaskRepository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		api:    api,
		tasks:  tasks,
		logger: logger,
	}
}

// Import pulls assignments and creates tasks for the ones not imported
// before. Selection priority: explicit assignment ids, then a whole course,
// then the caller's upcoming feed. Partial success is not an error.
func (s *Service) Import(ctx context.Context, courseID string, assignmentIDs []string) (*Result, error) {
	assignments, err := s.collect(ctx, courseID, assignmentIDs)
	if err != nil {
		return nil, err
	}

	// One lookup of the course display name for the whole batch. On failure
	// each assignment falls back to its own context name.
	courseName := ""
	if courseID != "" {
		if course, err := s.api.Course(ctx, courseID); err == nil {
			courseName = course.Name
		} else {
			s.logger.Warn("could not fetch course name", zap.String("course_id", courseID), zap.Error(err))
		}
	}

	result := &Result{Tasks: []domain.Task{}}
	for _, assignment := range assignments {
		if assignment.Name == "" {
			continue
		}

		externalID := strconv.FormatInt(assignment.ID, 10)
		existing, err := s.tasks.FindBySourceExternalID(ctx, domain.SourceCanvas, externalID)
		if err != nil {
			s.logger.Warn("dedup lookup failed", zap.String("external_id", externalID), zap.Error(err))
		}
		if existing != nil {
			s.logger.Info("skipping already imported assignment", zap.String("title", assignment.Name))
			continue
		}

		task := s.mapAssignment(assignment, courseID, courseName)

		created, err := s.tasks.Create(ctx, &task)
		if err != nil {
			// Degrade per item: hand the caller a transient record instead
			// of failing the batch.
			s.logger.Warn("import write failed, returning unpersisted task",
				zap.String("title", task.Title), zap.Error(err))
			task.ID = uuid.NewString()
			task.CreatedAt = time.Now().UTC()
			task.Unpersisted = true
			result.Tasks = append(result.Tasks, task)
			result.ImportedCount++
			continue
		}

		result.Tasks = append(result.Tasks, *created)
		result.ImportedCount++
	}

	return result, nil
}

func (s *Service) collect(ctx context.Context, courseID string, assignmentIDs []string) ([]canvas.Assignment, error) {
	if len(assignmentIDs) > 0 {
		// Per-id fetch failures are logged and skipped; these records also
		// bypass the due-date filter the listing paths apply.
		var assignments []canvas.Assignment
		for _, id := range assignmentIDs {
			assignment, err := s.api.Assignment(ctx, courseID, id)
			if err != nil {
				s.logger.Warn("failed to fetch assignment", zap.String("assignment_id", id), zap.Error(err))
				continue
			}
			assignments = append(assignments, *assignment)
		}
		return assignments, nil
	}

	if courseID != "" {
		assignments, err := s.api.CourseAssignments(ctx, courseID)
		if err != nil {
			return nil, err
		}
		return withDueDate(assignments), nil
	}

	assignments, err := s.api.UpcomingAssignments(ctx)
	if err != nil {
		return nil, err
	}
	return withDueDate(assignments), nil
}

func (s *Service) mapAssignment(assignment canvas.Assignment, courseID, courseName string) domain.Task {
	task := domain.Task{
		Title:       assignment.Name,
		Description: truncate(stripHTML(assignment.Description), 500),
		Priority:    domain.PriorityMedium,
		Status:      domain.StatusTodo,
		Source:      domain.SourceCanvas,
		ExternalID:  strconv.FormatInt(assignment.ID, 10),
	}

	if assignment.DueAt != nil {
		due := assignment.DueAt.UTC()
		task.DueDate = due.Format("2006-01-02")
		task.TimeSlot = due.Format("15:04")
	}

	switch {
	case assignment.CourseID != 0:
		task.CanvasCourseID = strconv.FormatInt(assignment.CourseID, 10)
	case courseID != "":
		task.CanvasCourseID = courseID
	}

	if assignment.ContextName != "" {
		task.CanvasCourseName = assignment.ContextName
	} else {
		task.CanvasCourseName = courseName
	}

	return task
}

func withDueDate(assignments []canvas.Assignment) []canvas.Assignment {
	eligible := assignments[:0]
	for _, assignment := range assignments {
		if assignment.DueAt != nil {
			eligible = append(eligible, assignment)
		}
	}
	return eligible
}

var tagPattern = regexp.MustCompile(`<[^>]*>`)

func stripHTML(s string) string {
	return tagPattern.ReplaceAllString(s, "")
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
