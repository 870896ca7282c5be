package handler

import (
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/acadash/backend/api/transport"
	"github.com/acadash/backend/domain"
	"github.com/acadash/backend/internal/infrastructure/googlecal"
	"github.com/acadash/backend/pkg/httpcontext"
)

type CalendarHandler struct {
	baseHandler
	bridge      *googlecal.Bridge
	frontendURL string
}

func NewCalendarHandler(bridge *googlecal.Bridge, frontendURL string, adapter *httpcontext.Adapter, logger *zap.Logger) *CalendarHandler {
	if frontendURL == "" {
		frontendURL = "/"
	}
	return &CalendarHandler{
		baseHandler: newBaseHandler(adapter, logger),
		bridge:      bridge,
		frontendURL: frontendURL,
	}
}

// Status handles GET /api/calendar/status.
func (h *CalendarHandler) Status(ctx *fasthttp.RequestCtx) {
	configured := h.bridge.Configured()
	connected := h.bridge.Connected()

	message := "Google Calendar not configured. Set GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET"
	switch {
	case configured && connected:
		message = "Connected to Google Calendar"
	case configured:
		message = "Not connected - click Connect to authorize"
	}

	h.respondJSON(ctx, http.StatusOK, transport.CalendarStatusResponse{
		Configured: configured,
		Connected:  connected,
		Message:    message,
	})
}

// Auth handles GET /api/calendar/auth: kicks off the consent flow.
func (h *CalendarHandler) Auth(ctx *fasthttp.RequestCtx) {
	authURL, err := h.bridge.AuthCodeURL()
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	ctx.Redirect(authURL, http.StatusFound)
}

// Callback handles GET /api/calendar/callback?code=. The browser lands here
// from the provider, so outcomes are reported as query flags on the UI URL
// rather than as JSON.
func (h *CalendarHandler) Callback(ctx *fasthttp.RequestCtx) {
	if providerErr := string(ctx.QueryArgs().Peek("error")); providerErr != "" {
		h.redirectWithFlag(ctx, "calendar_error", providerErr)
		return
	}

	code := string(ctx.QueryArgs().Peek("code"))
	if code == "" {
		h.redirectWithFlag(ctx, "calendar_error", "no_code")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.bridge.Exchange(stdCtx, code); err != nil {
		h.logger.Error("oauth callback failed", zap.Error(err))
		h.redirectWithFlag(ctx, "calendar_error", err.Error())
		return
	}
	h.redirectWithFlag(ctx, "calendar_connected", "true")
}

// Disconnect handles POST /api/calendar/disconnect.
func (h *CalendarHandler) Disconnect(ctx *fasthttp.RequestCtx) {
	h.bridge.Disconnect()
	h.respondJSON(ctx, http.StatusOK, transport.DisconnectResponse{
		Success: true,
		Message: "Disconnected from Google Calendar",
	})
}

// Events handles GET /api/calendar/events.
func (h *CalendarHandler) Events(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	events, err := h.bridge.ListEvents(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondJSON(ctx, http.StatusOK, events)
}

// SyncTask handles POST /api/calendar/sync-task.
func (h *CalendarHandler) SyncTask(ctx *fasthttp.RequestCtx) {
	var req transport.SyncTaskRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.ErrorResponse{Error: "invalid payload"})
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	eventID, err := h.bridge.SyncTask(stdCtx, domain.Task{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		TimeSlot:    req.TimeSlot,
	})
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	h.respondJSON(ctx, http.StatusOK, transport.SyncTaskResponse{
		Success: true,
		EventID: eventID,
	})
}

func (h *CalendarHandler) redirectWithFlag(ctx *fasthttp.RequestCtx, key, value string) {
	target := h.frontendURL + "?" + key + "=" + url.QueryEscape(value)
	ctx.Redirect(target, http.StatusFound)
}
