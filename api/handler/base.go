package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/backoffice/api/transport"
	"github.com/fastygo/backoffice/domain"
	"github.com/fastygo/backoffice/pkg/httpcontext"
)

type baseHandler struct {
	adapter *httpcontext.Adapter
	logger  *zap.Logger
}

func newBaseHandler(adapter *httpcontext.Adapter, logger *zap.Logger) baseHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return baseHandler{adapter: adapter, logger: logger}
}

func (h baseHandler) requestContext(ctx *fasthttp.RequestCtx) (context.Context, context.CancelFunc) {
	if h.adapter != nil {
		return h.adapter.Attach(ctx)
	}
	return context.WithCancel(context.Background())
}

func (h baseHandler) respondJSON(ctx *fasthttp.RequestCtx, status int, payload transport.Envelope) {
	payload = payload.WithRequestID(httpcontext.RequestIDFrom(ctx))
	body, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error("encode response failed", zap.Error(err))
		status = http.StatusInternalServerError
		body, _ = json.Marshal(transport.NewError(string(domain.ErrCodeInternal), payload.Reply,
			transport.ErrorBody{Message: "encode response"}).WithRequestID(payload.RequestID))
	}
	ctx.Response.Header.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(body)
}

func (h baseHandler) respondSuccess(ctx *fasthttp.RequestCtx, reply string, data interface{}) {
	h.respondJSON(ctx, http.StatusOK, transport.NewSuccess(reply, data))
}

func (h baseHandler) respondError(ctx *fasthttp.RequestCtx, reply string, err error) {
	status, code := mapError(err)
	body := transport.ErrorBody{Message: err.Error()}
	if dErr, ok := asDomainError(err); ok {
		body.Fields = dErr.Fields
		if code == string(domain.ErrCodeInternal) {
			body.Message = dErr.Message
		}
	} else {
		// unclassified errors may carry SQL or file paths
		body.Message = "internal error"
	}
	h.respondJSON(ctx, status, transport.NewError(code, reply, body))
}

func asDomainError(err error) (*domain.Error, bool) {
	var dErr *domain.Error
	if errors.As(err, &dErr) {
		return dErr, true
	}
	return nil, false
}

func mapError(err error) (int, string) {
	switch domain.CodeOf(err) {
	case domain.ErrCodeUnauthorized:
		return http.StatusUnauthorized, string(domain.ErrCodeUnauthorized)
	case domain.ErrCodeInvalid:
		return http.StatusBadRequest, string(domain.ErrCodeInvalid)
	case domain.ErrCodeNotFound:
		return http.StatusNotFound, string(domain.ErrCodeNotFound)
	case domain.ErrCodeConflict:
		return http.StatusConflict, string(domain.ErrCodeConflict)
	default:
		return http.StatusInternalServerError, string(domain.ErrCodeInternal)
	}
}
