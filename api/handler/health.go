package handler

import (
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/acadash/backend/api/transport"
	"github.com/acadash/backend/internal/infrastructure/canvas"
	"github.com/acadash/backend/internal/infrastructure/googlecal"
	"github.com/acadash/backend/internal/infrastructure/monitor"
	"github.com/acadash/backend/pkg/httpcontext"
)

type HealthHandler struct {
	baseHandler
	probe  *monitor.Probe
	bridge *googlecal.Bridge
	canvas *canvas.Client
}

func NewHealthHandler(probe *monitor.Probe, bridge *googlecal.Bridge, canvasClient *canvas.Client, adapter *httpcontext.Adapter, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		baseHandler: newBaseHandler(adapter, logger),
		probe:       probe,
		bridge:      bridge,
		canvas:      canvasClient,
	}
}

// Check handles GET /api/health. The process is healthy as long as it can
// answer; subsystems report their degraded states individually.
func (h *HealthHandler) Check(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	storage := "in-memory"
	mongoState := "not configured"
	if h.probe.Configured() {
		if h.probe.Available(stdCtx) {
			storage = "mongodb"
			mongoState = "connected"
		} else {
			mongoState = "unreachable"
		}
	}

	h.respondJSON(ctx, http.StatusOK, transport.HealthResponse{
		Status:         "ok",
		Timestamp:      time.Now().UTC().Format(time.RFC3339),
		Storage:        storage,
		MongoDB:        mongoState,
		GoogleCalendar: configuredState(h.bridge.Configured()),
		Canvas:         configuredState(h.canvas.Configured()),
	})
}

func configuredState(configured bool) string {
	if configured {
		return "configured"
	}
	return "not configured"
}
