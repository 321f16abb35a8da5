package repository

import (
	"context"
	"errors"

	"github.com/deppfellow/go-todos/internal/database"
	"github.com/deppfellow/go-todos/internal/model"
	"github.com/deppfellow/go-todos/internal/sqlerr"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const todosTable = "todos"

// TodoRepository persists todos in the todos table.
type TodoRepository struct {
	db database.Querier
}

// NewTodoRepository returns a repository that queries db unless a request
// carries its own handle (see database.NewContext).
func NewTodoRepository(db database.Querier) *TodoRepository {
	return &TodoRepository{db: db}
}

func (r *TodoRepository) querier(ctx context.Context) database.Querier {
	if db, ok := database.FromContext(ctx); ok && db.Pool != nil {
		return db.Pool
	}
	return r.db
}

// List returns todos in insertion order. A nil limit is sent as NULL, which
// Postgres treats as no limit.
func (r *TodoRepository) List(ctx context.Context, p model.Pagination) ([]model.Todo, error) {
	rows, err := r.querier(ctx).Query(ctx, `
		SELECT id, text, completed
		FROM todos
		ORDER BY created_at, id
		LIMIT $1
		OFFSET $2
	`, p.Limit, p.OffsetOrDefault())
	if err != nil {
		return nil, sqlerr.WithTable(todosTable, err)
	}

	todos, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Todo])
	if err != nil {
		return nil, sqlerr.WithTable(todosTable, err)
	}
	if todos == nil {
		todos = []model.Todo{}
	}

	return todos, nil
}

// Get returns the todo with id, or nil without an error when it does not exist.
func (r *TodoRepository) Get(ctx context.Context, id uuid.UUID) (*model.Todo, error) {
	rows, err := r.querier(ctx).Query(ctx, `
		SELECT id, text, completed
		FROM todos
		WHERE id = $1
	`, id)
	if err != nil {
		return nil, sqlerr.WithTable(todosTable, err)
	}

	todo, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[model.Todo])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, sqlerr.WithTable(todosTable, err)
	}

	return &todo, nil
}

// Insert stores a new todo and returns the row as written.
func (r *TodoRepository) Insert(ctx context.Context, todo model.Todo) (*model.Todo, error) {
	rows, err := r.querier(ctx).Query(ctx, `
		INSERT INTO todos (id, text, completed)
		VALUES ($1, $2, $3)
		RETURNING id, text, completed
	`, todo.ID, todo.Text, todo.Completed)
	if err != nil {
		return nil, sqlerr.WithTable(todosTable, err)
	}

	stored, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[model.Todo])
	if err != nil {
		return nil, sqlerr.WithTable(todosTable, err)
	}

	return &stored, nil
}

// Update replaces text and completed of the row matching todo.ID.
// A missing row surfaces as pgx.ErrNoRows.
func (r *TodoRepository) Update(ctx context.Context, todo model.Todo) (*model.Todo, error) {
	rows, err := r.querier(ctx).Query(ctx, `
		UPDATE todos SET
			text = $2,
			completed = $3
		WHERE id = $1
		RETURNING id, text, completed
	`, todo.ID, todo.Text, todo.Completed)
	if err != nil {
		return nil, sqlerr.WithTable(todosTable, err)
	}

	updated, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[model.Todo])
	if err != nil {
		return nil, sqlerr.WithTable(todosTable, err)
	}

	return &updated, nil
}

// Delete removes the row matching id and reports whether one was removed.
func (r *TodoRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.querier(ctx).Exec(ctx, `DELETE FROM todos WHERE id = $1`, id)
	if err != nil {
		return false, sqlerr.WithTable(todosTable, err)
	}

	return tag.RowsAffected() > 0, nil
}
