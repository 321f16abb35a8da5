// Package service contains the business logic.
//
// It sits between the handler and repository layers: it receives validated
// input from handlers, applies the todo rules (not found, partial updates),
// calls the repository, and publishes lifecycle events for the job worker.
package service
