package handler_test

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/acadash/backend/api/handler"
	"github.com/acadash/backend/domain"
	"github.com/acadash/backend/pkg/httpcontext"
	"github.com/acadash/backend/repository/memory"
	taskUC "github.com/acadash/backend/usecase/task"
)

func newTaskHandler(t *testing.T) *handler.TaskHandler {
	t.Helper()
	uc := taskUC.New(memory.NewTaskRepository(), zap.NewNop())
	return handler.NewTaskHandler(uc, httpcontext.NewAdapter(5*time.Second), zap.NewNop())
}

func newRequestCtx(method, body string) *fasthttp.RequestCtx {
	var req fasthttp.Request
	req.Header.SetMethod(method)
	if body != "" {
		req.SetBodyString(body)
		req.Header.SetContentType("application/json")
	}
	ctx := &fasthttp.RequestCtx{}
	ctx.Init(&req, nil, nil)
	return ctx
}

func decodeTask(t *testing.T, ctx *fasthttp.RequestCtx) domain.Task {
	t.Helper()
	var task domain.Task
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &task))
	return task
}

func TestCreateTaskAppliesDefaults(t *testing.T) {
	h := newTaskHandler(t)

	ctx := newRequestCtx(fasthttp.MethodPost, `{"title":"Read Ch. 5"}`)
	h.CreateTask(ctx)

	require.Equal(t, http.StatusCreated, ctx.Response.StatusCode())
	task := decodeTask(t, ctx)
	assert.NotEmpty(t, task.ID)
	assert.Equal(t, "Read Ch. 5", task.Title)
	assert.Equal(t, domain.PriorityMedium, task.Priority)
	assert.Equal(t, domain.StatusTodo, task.Status)
	assert.Equal(t, domain.SourceManual, task.Source)
	assert.NotEmpty(t, ctx.Response.Header.Peek("X-Request-ID"))
}

func TestCreateTaskRejectsEmptyTitle(t *testing.T) {
	h := newTaskHandler(t)

	ctx := newRequestCtx(fasthttp.MethodPost, `{"title":"   "}`)
	h.CreateTask(ctx)

	assert.Equal(t, http.StatusBadRequest, ctx.Response.StatusCode())
	assert.Contains(t, string(ctx.Response.Body()), "title is required")
}

func TestCreateTaskRejectsMalformedJSON(t *testing.T) {
	h := newTaskHandler(t)

	ctx := newRequestCtx(fasthttp.MethodPost, `{"title":`)
	h.CreateTask(ctx)

	assert.Equal(t, http.StatusBadRequest, ctx.Response.StatusCode())
}

func TestTaskCRUDFlow(t *testing.T) {
	repo := memory.NewTaskRepository()
	uc := taskUC.New(repo, zap.NewNop())
	h := handler.NewTaskHandler(uc, httpcontext.NewAdapter(5*time.Second), zap.NewNop())

	createCtx := newRequestCtx(fasthttp.MethodPost, `{"title":"Finish lab","priority":"high","dueDate":"2026-09-20"}`)
	h.CreateTask(createCtx)
	require.Equal(t, http.StatusCreated, createCtx.Response.StatusCode())
	created := decodeTask(t, createCtx)

	listCtx := newRequestCtx(fasthttp.MethodGet, "")
	h.GetTasks(listCtx)
	require.Equal(t, http.StatusOK, listCtx.Response.StatusCode())
	var tasks []domain.Task
	require.NoError(t, json.Unmarshal(listCtx.Response.Body(), &tasks))
	require.Len(t, tasks, 1)
	assert.Equal(t, created.ID, tasks[0].ID)

	updateCtx := newRequestCtx(fasthttp.MethodPut, `{"status":"done"}`)
	updateCtx.SetUserValue("id", created.ID)
	h.UpdateTask(updateCtx)
	require.Equal(t, http.StatusOK, updateCtx.Response.StatusCode())
	updated := decodeTask(t, updateCtx)
	assert.Equal(t, domain.StatusDone, updated.Status)
	assert.Equal(t, domain.PriorityHigh, updated.Priority)
	require.NotNil(t, updated.UpdatedAt)

	deleteCtx := newRequestCtx(fasthttp.MethodDelete, "")
	deleteCtx.SetUserValue("id", created.ID)
	h.DeleteTask(deleteCtx)
	assert.Equal(t, http.StatusNoContent, deleteCtx.Response.StatusCode())
	assert.Empty(t, deleteCtx.Response.Body())

	getCtx := newRequestCtx(fasthttp.MethodGet, "")
	getCtx.SetUserValue("id", created.ID)
	h.GetTask(getCtx)
	assert.Equal(t, http.StatusNotFound, getCtx.Response.StatusCode())
}

func TestGetUnknownTaskReturns404(t *testing.T) {
	h := newTaskHandler(t)

	ctx := newRequestCtx(fasthttp.MethodGet, "")
	ctx.SetUserValue("id", "no-such-id")
	h.GetTask(ctx)

	assert.Equal(t, http.StatusNotFound, ctx.Response.StatusCode())
	assert.Contains(t, string(ctx.Response.Body()), "task not found")
}
