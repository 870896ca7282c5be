package transport

// ErrorResponse is the error payload shape the UI expects.
type ErrorResponse struct {
	Error string `json:"error"`
}

// CanvasStatusResponse reports whether the Canvas integration can be used.
type CanvasStatusResponse struct {
	Configured bool   `json:"configured"`
	APIURL     string `json:"apiUrl,omitempty"`
	Message    string `json:"message"`
}

// CalendarStatusResponse reports calendar configuration and session state.
type CalendarStatusResponse struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Message    string `json:"message"`
}

// DisconnectResponse acknowledges a calendar disconnect.
type DisconnectResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// SyncTaskResponse returns the id of the event created for a task.
type SyncTaskResponse struct {
	Success bool   `json:"success"`
	EventID string `json:"eventId"`
}

// CourseResponse is the trimmed course representation served to the UI.
type CourseResponse struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Code           string `json:"code"`
	EnrollmentTerm int64  `json:"enrollmentTerm"`
}

// AssignmentResponse is the trimmed assignment representation served to the UI.
type AssignmentResponse struct {
	ID              int64    `json:"id"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	DueDate         string   `json:"dueDate"`
	CourseID        int64    `json:"courseId"`
	CourseName      string   `json:"courseName"`
	PointsPossible  float64  `json:"pointsPossible"`
	SubmissionTypes []string `json:"submissionTypes"`
	HTMLURL         string   `json:"htmlUrl"`
}

// ImportResponse wraps an import result.
type ImportResponse struct {
	Success       bool        `json:"success"`
	ImportedCount int         `json:"importedCount"`
	Tasks         interface{} `json:"tasks"`
	Message       string      `json:"message"`
}

// HealthResponse reports overall subsystem configuration.
type HealthResponse struct {
	Status         string `json:"status"`
	Timestamp      string `json:"timestamp"`
	Storage        string `json:"storage"`
	MongoDB        string `json:"mongodb"`
	GoogleCalendar string `json:"googleCalendar"`
	Canvas         string `json:"canvas"`
}
