// Package servicetest provides in-memory implementations of the service
// dependencies for tests.
package servicetest

import (
	"context"
	"sync"

	"github.com/deppfellow/go-todos/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// MemoryStore keeps todos in insertion order. It satisfies service.TodoStore.
type MemoryStore struct {
	mu    sync.Mutex
	todos []model.Todo

	// Err, when set, is returned by every method.
	Err error

	// Block, when set, makes every method wait for ctx to be done.
	Block bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) wait(ctx context.Context) error {
	if m.Block {
		<-ctx.Done()
		return ctx.Err()
	}
	return m.Err
}

func (m *MemoryStore) List(ctx context.Context, p model.Pagination) ([]model.Todo, error) {
	if err := m.wait(ctx); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	start := p.OffsetOrDefault()
	if start > int64(len(m.todos)) {
		start = int64(len(m.todos))
	}
	end := int64(len(m.todos))
	if p.Limit != nil && start+*p.Limit < end {
		end = start + *p.Limit
	}

	out := make([]model.Todo, end-start)
	copy(out, m.todos[start:end])
	return out, nil
}

func (m *MemoryStore) Get(ctx context.Context, id uuid.UUID) (*model.Todo, error) {
	if err := m.wait(ctx); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, t := range m.todos {
		if t.ID == id {
			found := t
			return &found, nil
		}
	}
	return nil, nil
}

func (m *MemoryStore) Insert(ctx context.Context, todo model.Todo) (*model.Todo, error) {
	if err := m.wait(ctx); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.todos = append(m.todos, todo)
	return &todo, nil
}

func (m *MemoryStore) Update(ctx context.Context, todo model.Todo) (*model.Todo, error) {
	if err := m.wait(ctx); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.todos {
		if m.todos[i].ID == todo.ID {
			m.todos[i] = todo
			return &todo, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *MemoryStore) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	if err := m.wait(ctx); err != nil {
		return false, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.todos {
		if m.todos[i].ID == id {
			m.todos = append(m.todos[:i], m.todos[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// Len returns the number of stored todos.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.todos)
}

// Recorder collects published events. It satisfies service.EventPublisher.
type Recorder struct {
	mu     sync.Mutex
	Events []model.TodoEvent
	Err    error
}

func (r *Recorder) PublishTodoEvent(_ context.Context, event model.TodoEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Err != nil {
		return r.Err
	}
	r.Events = append(r.Events, event)
	return nil
}

// Types returns the recorded event types in publish order.
func (r *Recorder) Types() []model.TodoEventType {
	r.mu.Lock()
	defer r.mu.Unlock()

	types := make([]model.TodoEventType, 0, len(r.Events))
	for _, e := range r.Events {
		types = append(types, e.Type)
	}
	return types
}
