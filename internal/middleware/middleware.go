// Package middleware stores global and route-specific middleware.
//
// These intercept requests to handle cross-cutting concerns
// such as error mapping, request logging, request timeouts,
// rate limiting, tracing, and handing the database pool to handlers.
package middleware
