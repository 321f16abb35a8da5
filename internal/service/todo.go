package service

import (
	"context"
	"time"

	"github.com/deppfellow/go-todos/internal/errs"
	"github.com/deppfellow/go-todos/internal/model"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// TodoStore is the persistence the todo service needs.
// repository.TodoRepository is the production implementation.
type TodoStore interface {
	List(ctx context.Context, p model.Pagination) ([]model.Todo, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Todo, error)
	Insert(ctx context.Context, todo model.Todo) (*model.Todo, error)
	Update(ctx context.Context, todo model.Todo) (*model.Todo, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

// EventPublisher receives an event after each committed mutation.
type EventPublisher interface {
	PublishTodoEvent(ctx context.Context, event model.TodoEvent) error
}

type TodoService struct {
	logger *zerolog.Logger
	store  TodoStore
	events EventPublisher
}

func NewTodoService(logger *zerolog.Logger, store TodoStore) *TodoService {
	return &TodoService{
		logger: logger,
		store:  store,
	}
}

// WithEvents makes the service publish lifecycle events to p.
func (s *TodoService) WithEvents(p EventPublisher) *TodoService {
	s.events = p
	return s
}

func todoNotFound() error {
	return errs.NewNotFoundError("Todo not found", true, nil)
}

func (s *TodoService) List(ctx context.Context, p model.Pagination) ([]model.Todo, error) {
	todos, err := s.store.List(ctx, p)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list todos")
	}
	return todos, nil
}

func (s *TodoService) Get(ctx context.Context, id uuid.UUID) (*model.Todo, error) {
	todo, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get todo")
	}
	if todo == nil {
		return nil, todoNotFound()
	}
	return todo, nil
}

// Create stores a new, not completed todo with a server generated id.
func (s *TodoService) Create(ctx context.Context, text string) (*model.Todo, error) {
	todo, err := s.store.Insert(ctx, model.NewTodo(text))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create todo")
	}

	s.publish(ctx, model.TodoCreated, todo.ID)
	return todo, nil
}

// Update applies the present fields of patch to the stored todo.
// An empty patch returns the todo unchanged.
func (s *TodoService) Update(ctx context.Context, id uuid.UUID, patch model.TodoPatch) (*model.Todo, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.IsEmpty() {
		return current, nil
	}

	updated, err := s.store.Update(ctx, patch.Apply(*current))
	if err != nil {
		return nil, errors.Wrap(err, "failed to update todo")
	}

	s.publish(ctx, model.TodoUpdated, updated.ID)
	return updated, nil
}

func (s *TodoService) Delete(ctx context.Context, id uuid.UUID) error {
	removed, err := s.store.Delete(ctx, id)
	if err != nil {
		return errors.Wrap(err, "failed to delete todo")
	}
	if !removed {
		return todoNotFound()
	}

	s.publish(ctx, model.TodoDeleted, id)
	return nil
}

// publish never fails the request; the mutation is already committed.
func (s *TodoService) publish(ctx context.Context, eventType model.TodoEventType, id uuid.UUID) {
	if s.events == nil {
		return
	}

	event := model.TodoEvent{Type: eventType, TodoID: id, At: time.Now().UTC()}
	if err := s.events.PublishTodoEvent(ctx, event); err != nil {
		logger := zerolog.Ctx(ctx)
		if logger.GetLevel() == zerolog.Disabled {
			logger = s.logger
		}

		logger.Warn().
			Err(err).
			Str("event_type", string(eventType)).
			Str("todo_id", id.String()).
			Msg("failed to publish todo event")
	}
}
