package middleware

import (
	"context"
	"time"

	"github.com/deppfellow/go-todos/internal/errs"
	"github.com/deppfellow/go-todos/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
)

// TimeoutMiddleware bounds request processing time.
type TimeoutMiddleware struct {
	timeout time.Duration
}

func NewTimeoutMiddleware(s *server.Server) *TimeoutMiddleware {
	return &TimeoutMiddleware{timeout: s.Config.Server.RequestTimeout}
}

// Timeout puts a deadline on the request context. Anything downstream that
// honours the context (pgx queries included) fails once it passes, and that
// failure is turned into a 408 here.
func (tm *TimeoutMiddleware) Timeout() echo.MiddlewareFunc {
	return middleware.ContextTimeoutWithConfig(middleware.ContextTimeoutConfig{
		Timeout: tm.timeout,
		ErrorHandler: func(err error, c echo.Context) error {
			if errors.Is(err, context.DeadlineExceeded) ||
				errors.Is(c.Request().Context().Err(), context.DeadlineExceeded) {
				return errs.NewRequestTimeoutError(tm.timeout)
			}
			return err
		},
	})
}
