package handler

import (
	"fmt"
	"io/fs"
	"net/http"

	"github.com/deppfellow/go-todos/internal/server"
	"github.com/labstack/echo/v4"
)

// OpenAPIHandler serves the API reference UI. The page loads its renderer
// from a CDN and reads the API document from /static/openapi.json.
type OpenAPIHandler struct {
	Handler
	files fs.FS
}

// NewOpenAPIHandler constructs an OpenAPIHandler over the embedded assets.
func NewOpenAPIHandler(s *server.Server, files fs.FS) *OpenAPIHandler {
	return &OpenAPIHandler{
		Handler: NewHandler(s),
		files:   files,
	}
}

// ServeOpenAPIUI serves openapi.html with caching disabled, so doc updates
// show up immediately.
func (h *OpenAPIHandler) ServeOpenAPIUI(c echo.Context) error {
	c.Response().Header().Set("Cache-Control", "no-cache")

	templateBytes, err := fs.ReadFile(h.files, "openapi.html")
	if err != nil {
		return fmt.Errorf("failed to read OpenAPI UI template: %w", err)
	}

	if err := c.HTMLBlob(http.StatusOK, templateBytes); err != nil {
		return fmt.Errorf("failed to write HTML response: %w", err)
	}

	return nil
}
