package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/acadash/backend/api/handler"
)

type Handlers struct {
	Task     *apiHandler.TaskHandler
	Canvas   *apiHandler.CanvasHandler
	Calendar *apiHandler.CalendarHandler
	Health   *apiHandler.HealthHandler
}

func New(handlers Handlers) *router.Router {
	r := router.New()

	r.GET("/api/health", handlers.Health.Check)

	r.GET("/api/tasks", handlers.Task.GetTasks)
	r.POST("/api/tasks", handlers.Task.CreateTask)
	r.GET("/api/tasks/{id}", handlers.Task.GetTask)
	r.PUT("/api/tasks/{id}", handlers.Task.UpdateTask)
	r.DELETE("/api/tasks/{id}", handlers.Task.DeleteTask)

	r.GET("/api/canvas/status", handlers.Canvas.Status)
	r.GET("/api/canvas/courses", handlers.Canvas.Courses)
	r.GET("/api/canvas/assignments", handlers.Canvas.Assignments)
	r.POST("/api/canvas/import", handlers.Canvas.Import)

	r.GET("/api/calendar/status", handlers.Calendar.Status)
	r.GET("/api/calendar/auth", handlers.Calendar.Auth)
	r.GET("/api/calendar/callback", handlers.Calendar.Callback)
	r.POST("/api/calendar/disconnect", handlers.Calendar.Disconnect)
	r.GET("/api/calendar/events", handlers.Calendar.Events)
	r.POST("/api/calendar/sync-task", handlers.Calendar.SyncTask)

	return r
}

// WithMiddleware wraps the router handler with the given decorators,
// outermost first.
func WithMiddleware(handler fasthttp.RequestHandler, wrappers ...func(fasthttp.RequestHandler) fasthttp.RequestHandler) fasthttp.RequestHandler {
	for i := len(wrappers) - 1; i >= 0; i-- {
		handler = wrappers[i](handler)
	}
	return handler
}
