package handler

import (
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/backoffice/pkg/httpcontext"
	businessUC "github.com/fastygo/backoffice/usecase/business"
)

// BusinessHandler serves the startup business the shell pulls once its UI is ready.
type BusinessHandler struct {
	baseHandler
	uc *businessUC.UseCase
}

func NewBusinessHandler(uc *businessUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *BusinessHandler {
	return &BusinessHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Startup business
// @Tags business
// @Router /api/v1/business [get]
func (h *BusinessHandler) Get(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	business, err := h.uc.Startup(stdCtx)
	if err != nil {
		h.respondError(ctx, "business-data-error", err)
		return
	}
	h.respondSuccess(ctx, "business-data", business)
}
