package handler

import (
	"net/http"

	"github.com/deppfellow/go-todos/internal/model"
	"github.com/deppfellow/go-todos/internal/server"
	"github.com/deppfellow/go-todos/internal/service"
	"github.com/deppfellow/go-todos/internal/validation"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ListTodosRequest carries the optional pagination window.
type ListTodosRequest struct {
	Offset model.OptionalInt64 `query:"offset"`
	Limit  model.OptionalInt64 `query:"limit"`
}

func (r *ListTodosRequest) Validate() error {
	var errs validation.CustomValidationErrors
	if r.Offset.Set && r.Offset.Value < 0 {
		errs = append(errs, validation.CustomValidationError{Field: "offset", Message: "must not be negative"})
	}
	if r.Limit.Set && r.Limit.Value < 0 {
		errs = append(errs, validation.CustomValidationError{Field: "limit", Message: "must not be negative"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (r *ListTodosRequest) Pagination() model.Pagination {
	return model.Pagination{
		Offset: r.Offset.Ptr(),
		Limit:  r.Limit.Ptr(),
	}
}

type CreateTodoRequest struct {
	Text string `json:"text" validate:"required"`
}

func (r *CreateTodoRequest) Validate() error {
	return validation.Struct(r)
}

type TodoIDRequest struct {
	ID string `param:"id" json:"-" validate:"required,uuid"`
}

func (r *TodoIDRequest) Validate() error {
	return validation.Struct(r)
}

// todoID is only called after Validate accepted ID.
func (r *TodoIDRequest) todoID() uuid.UUID {
	return uuid.MustParse(r.ID)
}

type UpdateTodoRequest struct {
	ID        string  `param:"id" json:"-" validate:"required,uuid"`
	Text      *string `json:"text"`
	Completed *bool   `json:"completed"`
}

func (r *UpdateTodoRequest) Validate() error {
	return validation.Struct(r)
}

func (r *UpdateTodoRequest) todoID() uuid.UUID {
	return uuid.MustParse(r.ID)
}

func (r *UpdateTodoRequest) Patch() model.TodoPatch {
	return model.TodoPatch{
		Text:      r.Text,
		Completed: r.Completed,
	}
}

// TodoHandler serves the /todos resource.
type TodoHandler struct {
	Handler
	todos *service.TodoService
}

func NewTodoHandler(s *server.Server, todos *service.TodoService) *TodoHandler {
	return &TodoHandler{
		Handler: NewHandler(s),
		todos:   todos,
	}
}

// ListTodos returns stored todos in insertion order, windowed by the
// optional offset and limit.
func (h *TodoHandler) ListTodos(c echo.Context, req *ListTodosRequest) ([]model.Todo, error) {
	return h.todos.List(c.Request().Context(), req.Pagination())
}

func (h *TodoHandler) GetTodo(c echo.Context, req *TodoIDRequest) (*model.Todo, error) {
	return h.todos.Get(c.Request().Context(), req.todoID())
}

func (h *TodoHandler) CreateTodo(c echo.Context, req *CreateTodoRequest) (*model.Todo, error) {
	return h.todos.Create(c.Request().Context(), req.Text)
}

func (h *TodoHandler) UpdateTodo(c echo.Context, req *UpdateTodoRequest) (*model.Todo, error) {
	return h.todos.Update(c.Request().Context(), req.todoID(), req.Patch())
}

func (h *TodoHandler) DeleteTodo(c echo.Context, req *TodoIDRequest) error {
	return h.todos.Delete(c.Request().Context(), req.todoID())
}

// List, Get, Create, Update and Delete wrap the typed endpoints in the
// shared request pipeline for registration on the router.
func (h *TodoHandler) List() echo.HandlerFunc {
	return Handle(h.Handler, h.ListTodos, http.StatusOK, &ListTodosRequest{})
}

func (h *TodoHandler) Get() echo.HandlerFunc {
	return Handle(h.Handler, h.GetTodo, http.StatusOK, &TodoIDRequest{})
}

func (h *TodoHandler) Create() echo.HandlerFunc {
	return Handle(h.Handler, h.CreateTodo, http.StatusCreated, &CreateTodoRequest{})
}

func (h *TodoHandler) Update() echo.HandlerFunc {
	return Handle(h.Handler, h.UpdateTodo, http.StatusOK, &UpdateTodoRequest{})
}

func (h *TodoHandler) Delete() echo.HandlerFunc {
	return HandleNoContent(h.Handler, h.DeleteTodo, http.StatusNoContent, &TodoIDRequest{})
}
