package transport

import "encoding/json"

// ImportRequest selects what to import from Canvas. The UI sends course and
// assignment ids as JSON numbers, hence json.Number.
type ImportRequest struct {
	CourseID      json.Number   `json:"courseId"`
	AssignmentIDs []json.Number `json:"assignmentIds"`
}

// SyncTaskRequest carries the task fields needed to build a calendar event.
type SyncTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     string `json:"dueDate"`
	TimeSlot    string `json:"timeSlot"`
}
