package canvas

import "time"

// Course is the subset of a Canvas course the dashboard cares about.
type Course struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	CourseCode       string `json:"course_code"`
	EnrollmentTermID int64  `json:"enrollment_term_id"`
}

// Assignment mirrors the Canvas assignment payload. Entries coming from the
// upcoming_events feed carry a Type discriminator; course listings do not.
type Assignment struct {
	ID              int64      `json:"id"`
	Name            string     `json:"name"`
	Description     string     `json:"description"`
	DueAt           *time.Time `json:"due_at"`
	CourseID        int64      `json:"course_id"`
	ContextName     string     `json:"context_name"`
	PointsPossible  float64    `json:"points_possible"`
	SubmissionTypes []string   `json:"submission_types"`
	HTMLURL         string     `json:"html_url"`
	Type            string     `json:"type,omitempty"`
}
