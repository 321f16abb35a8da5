package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/deppfellow/go-todos/internal/errs"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Validatable is implemented by request payload types that know how to validate themselves.
//
// Typical pattern:
//   - Define a request struct with validator tags (`validate:"required"`)
//   - Implement Validate() error that runs Struct(req)
type Validatable interface {
	Validate() error
}

// CustomValidationError is a rule that cannot be expressed with a tag.
type CustomValidationError struct {
	Field   string
	Message string
}

// CustomValidationErrors is a slice of custom validation errors that satisfies error.
type CustomValidationErrors []CustomValidationError

func (c CustomValidationErrors) Error() string {
	return "Validation failed"
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Struct validates s with the shared validator instance. Field names in
// errors are taken from json tags so clients see their own key names.
func Struct(s any) error {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			for _, tag := range []string{"json", "query", "param"} {
				name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
				if name != "" && name != "-" {
					return name
				}
			}
			return fld.Name
		})
	})
	return validate.Struct(s)
}

// BindAndValidate binds request data into payload and validates it.
//
// Flow:
//  1. c.Bind(payload) populates the struct from path, query and body.
//  2. payload.Validate() applies validation rules.
//  3. Failures become a 400 *errs.HTTPError, with field errors when the
//     validator produced them.
//
// payload must be a pointer to a struct.
func BindAndValidate(c echo.Context, payload Validatable) error {
	if err := c.Bind(payload); err != nil {
		return bindError(err)
	}

	if msg, fieldErrors := validateStruct(payload); fieldErrors != nil {
		return errs.NewBadRequestError(msg, true, nil, fieldErrors, nil)
	}

	return nil
}

// bindError keeps the client-facing part of an Echo bind error.
func bindError(err error) error {
	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		if echoErr.Code == 415 {
			return echoErr
		}
		if msg, ok := echoErr.Message.(string); ok && msg != "" {
			return errs.NewBadRequestError(msg, false, nil, nil, nil)
		}
	}
	return errs.NewBadRequestError("Invalid request", false, nil, nil, nil)
}

func validateStruct(v Validatable) (string, []errs.FieldError) {
	if err := v.Validate(); err != nil {
		return "Validation failed", fieldErrors(err)
	}
	return "", nil
}

// tagMessages renders a failed validator tag as a client message.
var tagMessages = map[string]func(fe validator.FieldError) string{
	"required": func(validator.FieldError) string { return "is required" },
	"min": func(fe validator.FieldError) string {
		return fmt.Sprintf("must be at least %s%s", fe.Param(), lengthUnit(fe))
	},
	"max": func(fe validator.FieldError) string {
		return fmt.Sprintf("must not exceed %s%s", fe.Param(), lengthUnit(fe))
	},
	"gte":   func(fe validator.FieldError) string { return "must be greater than or equal to " + fe.Param() },
	"oneof": func(fe validator.FieldError) string { return "must be one of: " + fe.Param() },
	"uuid":  func(validator.FieldError) string { return "must be a valid UUID" },
}

func lengthUnit(fe validator.FieldError) string {
	if fe.Kind() == reflect.String {
		return " characters"
	}
	return ""
}

func fieldErrors(err error) []errs.FieldError {
	var custom CustomValidationErrors
	if errors.As(err, &custom) {
		out := make([]errs.FieldError, 0, len(custom))
		for _, e := range custom {
			out = append(out, errs.FieldError{Field: e.Field, Error: e.Message})
		}
		return out
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []errs.FieldError{{Field: "request", Error: err.Error()}}
	}

	out := make([]errs.FieldError, 0, len(validationErrors))
	for _, fe := range validationErrors {
		msg := fe.Tag()
		if fe.Param() != "" {
			msg += ":" + fe.Param()
		}
		if render, ok := tagMessages[fe.Tag()]; ok {
			msg = render(fe)
		}

		out = append(out, errs.FieldError{
			Field: strings.ToLower(fe.Field()),
			Error: msg,
		})
	}
	return out
}
