// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and defines the API route groups,
// mapping specific paths to their corresponding handlers.
package router

import (
	"github.com/deppfellow/go-todos/internal/handler"
	"github.com/deppfellow/go-todos/internal/middleware"
	"github.com/deppfellow/go-todos/internal/server"
	"github.com/labstack/echo/v4"
)

// NewRouter builds the Echo instance with the full middleware chain.
//
// Order, outermost first:
//   - error handler (Echo's HTTPErrorHandler sees every returned error)
//   - request id, New Relic transaction + attributes, request logger context
//   - access log, panic recovery, secure headers, CORS
//   - rate limit
//   - request timeout
//   - database injection
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	mws := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true

	router.HTTPErrorHandler = mws.Global.GlobalErrorHandler

	router.Use(
		middleware.RequestID(),
		mws.Tracing.NewRelicMiddleware(),
		mws.Tracing.EnhanceTracing(),
		mws.ContextEnhancer.EnhanceContext(),
		mws.Global.RequestLogger(),
		mws.Global.Recover(),
		mws.Global.Secure(),
		mws.Global.CORS(),
		mws.RateLimit.RateLimit(),
		mws.Timeout.Timeout(),
		mws.Resources.Inject(),
	)

	registerSystemRoutes(router, h)
	registerTodoRoutes(router, h)

	return router
}
