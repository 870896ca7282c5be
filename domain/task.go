package domain

import "time"

// Priority levels accepted for a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Status values a task moves through on the board.
type Status string

const (
	StatusTodo     Status = "todo"
	StatusProgress Status = "progress"
	StatusDone     Status = "done"
)

func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusProgress, StatusDone:
		return true
	}
	return false
}

// Source records where a task came from.
type Source string

const (
	SourceManual   Source = "manual"
	SourceCanvas   Source = "canvas"
	SourceCalendar Source = "calendar"
)

func (s Source) Valid() bool {
	switch s {
	case SourceManual, SourceCanvas, SourceCalendar:
		return true
	}
	return false
}

// Task is the single persisted entity of the system. DueDate is a plain
// YYYY-MM-DD string and TimeSlot a HH:MM string, both optional: the UI works
// in calendar days, not instants, so the backend stores them as entered.
type Task struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	DueDate     string   `json:"dueDate"`
	TimeSlot    string   `json:"timeSlot"`
	Priority    Priority `json:"priority"`
	Status      Status   `json:"status"`
	Source      Source   `json:"source"`

	// ExternalID is the id the originating system knows this task by.
	// (Source, ExternalID) is the dedup key for imports.
	ExternalID       string `json:"externalId,omitempty"`
	CanvasCourseID   string `json:"canvasCourseId,omitempty"`
	CanvasCourseName string `json:"canvasCourseName,omitempty"`
	CalendarEventID  string `json:"calendarEventId,omitempty"`

	// Unpersisted marks an import result that could not be durably stored
	// and exists only in the response payload.
	Unpersisted bool `json:"unpersisted,omitempty"`

	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}
