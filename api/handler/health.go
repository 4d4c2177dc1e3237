package handler

import (
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/backoffice/api/transport"
	"github.com/fastygo/backoffice/internal/infrastructure/monitor"
	"github.com/fastygo/backoffice/pkg/httpcontext"
)

type HealthHandler struct {
	baseHandler
	monitor *monitor.Monitor
}

func NewHealthHandler(mon *monitor.Monitor, adapter *httpcontext.Adapter, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		baseHandler: newBaseHandler(adapter, logger),
		monitor:     mon,
	}
}

// @Summary Health check
// @Tags health
// @Router /health [get]
func (h *HealthHandler) Check(ctx *fasthttp.RequestCtx) {
	status := h.monitor.Refresh()
	payload := map[string]interface{}{
		"timestamp": time.Now().UTC(),
		"services": map[string]interface{}{
			"database": status.Database,
			"catalog": map[string]interface{}{
				"online":  status.Catalog,
				"entries": status.CatalogEntries,
			},
		},
	}

	if status.Database {
		h.respondSuccess(ctx, "health", payload)
		return
	}
	h.respondJSON(ctx, http.StatusServiceUnavailable, transport.NewError("DEGRADED", "health",
		transport.ErrorBody{Message: "database unavailable", Details: payload}))
}
