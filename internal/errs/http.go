package errs

import (
	"net/http"
	"time"
)

func newHTTPError(status int, message string, override bool, code *string) *HTTPError {
	formattedCode := MakeUpperCaseWithUnderscores(http.StatusText(status))
	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:     formattedCode,
		Message:  message,
		Status:   status,
		Override: override,
	}
}

// NewBadRequestError creates a 400 Bad Request HTTPError.
//
// This supports extra payload:
//   - code: optional custom code string (defaults to "BAD_REQUEST")
//   - errors: optional slice of field errors (validation errors)
//   - action: optional client instruction
func NewBadRequestError(message string, override bool, code *string, errors []FieldError, action *Action) *HTTPError {
	err := newHTTPError(http.StatusBadRequest, message, override, code)
	err.Errors = errors
	err.Action = action
	return err
}

// NewNotFoundError creates a 404 Not Found HTTPError.
func NewNotFoundError(message string, override bool, code *string) *HTTPError {
	return newHTTPError(http.StatusNotFound, message, override, code)
}

// NewRequestTimeoutError creates a 408 Request Timeout HTTPError.
//
// It is returned when a request exceeds its processing budget.
func NewRequestTimeoutError(timeout time.Duration) *HTTPError {
	return newHTTPError(
		http.StatusRequestTimeout,
		"Request did not complete within "+timeout.String(),
		true,
		nil,
	)
}

// NewTooManyRequestsError creates a 429 Too Many Requests HTTPError with a
// retry hint.
func NewTooManyRequestsError(retryAfter time.Duration) *HTTPError {
	err := newHTTPError(http.StatusTooManyRequests, "Too many requests, slow down", true, nil)
	err.Action = &Action{
		Type:    ActionTypeRetry,
		Message: "Retry the request later",
		Value:   retryAfter.String(),
	}
	return err
}

// NewInternalServerError creates a 500 Internal Server Error HTTPError.
//
// The message is the generic status text, never the underlying error.
func NewInternalServerError() *HTTPError {
	return newHTTPError(
		http.StatusInternalServerError,
		http.StatusText(http.StatusInternalServerError),
		false,
		nil,
	)
}

// ValidationError converts a generic validation error into a 400 HTTPError.
func ValidationError(err error) *HTTPError {
	return NewBadRequestError("Validation failed: "+err.Error(), false, nil, nil, nil)
}
