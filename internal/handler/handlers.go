package handler

import (
	"github.com/deppfellow/go-todos/internal/server"
	"github.com/deppfellow/go-todos/internal/service"
	"github.com/deppfellow/go-todos/static"
)

// Handlers is a container that groups all HTTP handlers, so router setup
// passes one object around instead of many.
type Handlers struct {
	Health  *HealthHandler
	OpenAPI *OpenAPIHandler
	Todos   *TodoHandler
}

// NewHandlers constructs the handler container.
func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:  NewHealthHandler(s),
		OpenAPI: NewOpenAPIHandler(s, static.Files),
		Todos:   NewTodoHandler(s, services.Todos),
	}
}
