package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/fastygo/backoffice/api/handler"
)

type Handlers struct {
	Ops      *apiHandler.OpsHandler
	Business *apiHandler.BusinessHandler
	Health   *apiHandler.HealthHandler
}

// New wires the routes. authMiddleware guards everything under /api/v1; pass nil to leave
// the API open.
func New(handlers Handlers, authMiddleware func(fasthttp.RequestHandler) fasthttp.RequestHandler) *router.Router {
	if authMiddleware == nil {
		authMiddleware = func(next fasthttp.RequestHandler) fasthttp.RequestHandler { return next }
	}
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	api := r.Group("/api/v1")
	api.GET("/business", authMiddleware(handlers.Business.Get))
	api.GET("/ops", authMiddleware(handlers.Ops.List))
	api.POST("/ops/{name}", authMiddleware(handlers.Ops.Invoke))

	return r
}
