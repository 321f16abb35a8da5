package router

import (
	"github.com/deppfellow/go-todos/internal/handler"
	"github.com/labstack/echo/v4"
)

func registerTodoRoutes(r *echo.Echo, h *handler.Handlers) {
	todos := r.Group("/todos")

	todos.GET("", h.Todos.List())
	todos.POST("", h.Todos.Create())
	todos.GET("/:id", h.Todos.Get())
	todos.PATCH("/:id", h.Todos.Update())
	todos.DELETE("/:id", h.Todos.Delete())
}
