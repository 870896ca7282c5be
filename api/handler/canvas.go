package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/acadash/backend/api/transport"
	"github.com/acadash/backend/internal/infrastructure/canvas"
	"github.com/acadash/backend/pkg/httpcontext"
	"github.com/acadash/backend/usecase/importer"
)

type CanvasHandler struct {
	baseHandler
	client   *canvas.Client
	importer *importer.Service
	apiURL   string
}

func NewCanvasHandler(client *canvas.Client, importerSvc *importer.Service, apiURL string, adapter *httpcontext.Adapter, logger *zap.Logger) *CanvasHandler {
	return &CanvasHandler{
		baseHandler: newBaseHandler(adapter, logger),
		client:      client,
		importer:    importerSvc,
		apiURL:      apiURL,
	}
}

// Status handles GET /api/canvas/status.
func (h *CanvasHandler) Status(ctx *fasthttp.RequestCtx) {
	configured := h.client.Configured()
	message := "Canvas not configured. Set CANVAS_API_URL and CANVAS_ACCESS_TOKEN"
	if configured {
		message = "Canvas is configured and ready"
	}
	h.respondJSON(ctx, http.StatusOK, transport.CanvasStatusResponse{
		Configured: configured,
		APIURL:     h.apiURL,
		Message:    message,
	})
}

// Courses handles GET /api/canvas/courses.
func (h *CanvasHandler) Courses(ctx *fasthttp.RequestCtx) {
	if !h.client.Configured() {
		h.respondJSON(ctx, http.StatusBadRequest, transport.ErrorResponse{Error: "Canvas not configured"})
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	courses, err := h.client.Courses(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	payload := make([]transport.CourseResponse, 0, len(courses))
	for _, course := range courses {
		payload = append(payload, transport.CourseResponse{
			ID:             course.ID,
			Name:           course.Name,
			Code:           course.CourseCode,
			EnrollmentTerm: course.EnrollmentTermID,
		})
	}
	h.respondJSON(ctx, http.StatusOK, payload)
}

// Assignments handles GET /api/canvas/assignments?courseId=.
func (h *CanvasHandler) Assignments(ctx *fasthttp.RequestCtx) {
	if !h.client.Configured() {
		h.respondJSON(ctx, http.StatusBadRequest, transport.ErrorResponse{Error: "Canvas not configured"})
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	courseID := string(ctx.QueryArgs().Peek("courseId"))

	var (
		assignments []canvas.Assignment
		err         error
	)
	if courseID != "" {
		assignments, err = h.client.CourseAssignments(stdCtx, courseID)
	} else {
		assignments, err = h.client.UpcomingAssignments(stdCtx)
	}
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	payload := make([]transport.AssignmentResponse, 0, len(assignments))
	for _, assignment := range assignments {
		// Only assignments that can become dated tasks are worth showing.
		if assignment.Name == "" || assignment.DueAt == nil {
			continue
		}
		payload = append(payload, transport.AssignmentResponse{
			ID:              assignment.ID,
			Title:           assignment.Name,
			Description:     assignment.Description,
			DueDate:         assignment.DueAt.Format(time.RFC3339),
			CourseID:        assignment.CourseID,
			CourseName:      assignment.ContextName,
			PointsPossible:  assignment.PointsPossible,
			SubmissionTypes: assignment.SubmissionTypes,
			HTMLURL:         assignment.HTMLURL,
		})
	}
	h.respondJSON(ctx, http.StatusOK, payload)
}

// Import handles POST /api/canvas/import.
func (h *CanvasHandler) Import(ctx *fasthttp.RequestCtx) {
	if !h.client.Configured() {
		h.respondJSON(ctx, http.StatusBadRequest, transport.ErrorResponse{Error: "Canvas not configured"})
		return
	}

	var req transport.ImportRequest
	if len(ctx.PostBody()) > 0 {
		if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
			h.respondJSON(ctx, http.StatusBadRequest, transport.ErrorResponse{Error: "invalid payload"})
			return
		}
	}

	assignmentIDs := make([]string, 0, len(req.AssignmentIDs))
	for _, id := range req.AssignmentIDs {
		assignmentIDs = append(assignmentIDs, id.String())
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	result, err := h.importer.Import(stdCtx, req.CourseID.String(), assignmentIDs)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	h.respondJSON(ctx, http.StatusOK, transport.ImportResponse{
		Success:       true,
		ImportedCount: result.ImportedCount,
		Tasks:         result.Tasks,
		Message:       fmt.Sprintf("Imported %d assignment(s) from Canvas", result.ImportedCount),
	})
}
