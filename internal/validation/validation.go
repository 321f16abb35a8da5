// Package validation binds request data and validates it.
//
// It uses go-playground/validator struct tags for the rules and turns
// failures into errs.HTTPError values with per-field messages.
package validation
