package middleware

import (
	"github.com/deppfellow/go-todos/internal/logger"
	"github.com/deppfellow/go-todos/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"
)

// LoggerKey is the Echo context key of the request-scoped logger.
const LoggerKey = "logger"

// ContextEnhancer gives every request its own child logger.
type ContextEnhancer struct {
	server *server.Server
}

func NewContextEnhancer(s *server.Server) *ContextEnhancer {
	return &ContextEnhancer{server: s}
}

func (ce *ContextEnhancer) requestLogger(c echo.Context) zerolog.Logger {
	req := c.Request()

	l := ce.server.Logger.With().
		Str("request_id", GetRequestID(c)).
		Str("method", req.Method).
		Str("path", c.Path()).
		Str("ip", c.RealIP()).
		Logger()

	if txn := newrelic.FromContext(req.Context()); txn != nil {
		l = logger.WithTraceContext(l, txn)
	}
	return l
}

// EnhanceContext stores the request logger on the Echo context (GetLogger)
// and on the request context (zerolog.Ctx). It must run after RequestID and
// the New Relic middleware so their fields are available.
func (ce *ContextEnhancer) EnhanceContext() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			l := ce.requestLogger(c)

			c.Set(LoggerKey, &l)
			c.SetRequest(c.Request().WithContext(l.WithContext(c.Request().Context())))

			return next(c)
		}
	}
}

// GetLogger returns the request logger, or a no-op logger outside EnhanceContext.
func GetLogger(c echo.Context) *zerolog.Logger {
	if l, ok := c.Get(LoggerKey).(*zerolog.Logger); ok {
		return l
	}

	nop := zerolog.Nop()
	return &nop
}
