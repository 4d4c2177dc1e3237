package handler

import (
	"encoding/json"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/backoffice/pkg/httpcontext"
	"github.com/fastygo/backoffice/pkg/logger"
	"github.com/fastygo/backoffice/usecase"
)

// OpsHandler exposes the operation catalog over HTTP.
type OpsHandler struct {
	baseHandler
	dispatcher *usecase.Dispatcher
}

func NewOpsHandler(dispatcher *usecase.Dispatcher, adapter *httpcontext.Adapter, logger *zap.Logger) *OpsHandler {
	return &OpsHandler{
		baseHandler: newBaseHandler(adapter, logger),
		dispatcher:  dispatcher,
	}
}

// @Summary Invoke an operation
// @Tags ops
// @Router /api/v1/ops/{name} [post]
func (h *OpsHandler) Invoke(ctx *fasthttp.RequestCtx) {
	name, _ := ctx.UserValue("name").(string)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	payload := json.RawMessage(append([]byte(nil), ctx.PostBody()...))
	res := h.dispatcher.Dispatch(stdCtx, name, payload)
	if res.Err != nil {
		logger.WithRequestID(stdCtx, h.logger).Debug("operation returned error",
			zap.String("operation", name), zap.String("reply", res.Reply), zap.Error(res.Err))
		h.respondError(ctx, res.Reply, res.Err)
		return
	}
	h.respondSuccess(ctx, res.Reply, res.Data)
}

// @Summary List operations
// @Tags ops
// @Router /api/v1/ops [get]
func (h *OpsHandler) List(ctx *fasthttp.RequestCtx) {
	h.respondSuccess(ctx, "operations", h.dispatcher.Operations())
}
