package validation

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/go-todos/internal/errs"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type createPayload struct {
	Text string `json:"text" validate:"required,max=10"`
}

func (p *createPayload) Validate() error { return Struct(p) }

type customPayload struct {
	Name string `json:"name"`
}

func (p *customPayload) Validate() error {
	if p.Name == "root" {
		return CustomValidationErrors{{Field: "name", Message: "is reserved"}}
	}
	return nil
}

func newContext(body string) echo.Context {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return echo.New().NewContext(req, httptest.NewRecorder())
}

func badRequest(t *testing.T, err error) *errs.HTTPError {
	t.Helper()

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	return httpErr
}

func TestBindAndValidate_OK(t *testing.T) {
	p := &createPayload{}
	require.NoError(t, BindAndValidate(newContext(`{"text":"milk"}`), p))
	assert.Equal(t, "milk", p.Text)
}

func TestBindAndValidate_MalformedJSON(t *testing.T) {
	badRequest(t, BindAndValidate(newContext(`{"text":`), &createPayload{}))
}

func TestBindAndValidate_FieldErrors(t *testing.T) {
	httpErr := badRequest(t, BindAndValidate(newContext(`{}`), &createPayload{}))
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "text", httpErr.Errors[0].Field)
	assert.Equal(t, "is required", httpErr.Errors[0].Error)

	httpErr = badRequest(t, BindAndValidate(newContext(`{"text":"far too long text"}`), &createPayload{}))
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "must not exceed 10 characters", httpErr.Errors[0].Error)
}

func TestBindAndValidate_CustomErrors(t *testing.T) {
	httpErr := badRequest(t, BindAndValidate(newContext(`{"name":"root"}`), &customPayload{}))
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "is reserved", httpErr.Errors[0].Error)
}
