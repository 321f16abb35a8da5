// Package errs defines the error types returned to API clients.
//
// Every fault that reaches the HTTP layer is turned into an HTTPError so
// clients always receive the same JSON error shape, whatever layer failed.
package errs
