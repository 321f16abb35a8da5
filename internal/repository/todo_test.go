package repository

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/deppfellow/go-todos/internal/database"
	"github.com/deppfellow/go-todos/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestRepository connects to TODOS_TEST_DATABASE_URL, migrates it and
// empties the todos table. Tests are skipped when the variable is unset.
func newTestRepository(t *testing.T) *TodoRepository {
	t.Helper()

	url := os.Getenv("TODOS_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TODOS_TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	logger := zerolog.Nop()
	require.NoError(t, database.Migrate(ctx, &logger, url))

	pool, err := pgxpool.New(ctx, url)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = pool.Exec(ctx, "TRUNCATE todos")
	require.NoError(t, err)

	return NewTodoRepository(pool)
}

func int64Ptr(v int64) *int64 { return &v }

func TestTodoRepository_InsertThenGet(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	created, err := repo.Insert(ctx, model.NewTodo("buy milk"))
	require.NoError(t, err)

	got, err := repo.Get(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "buy milk", got.Text)
	assert.False(t, got.Completed)
}

func TestTodoRepository_GetMissingIsNotAnError(t *testing.T) {
	repo := newTestRepository(t)

	got, err := repo.Get(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestTodoRepository_Update(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	created, err := repo.Insert(ctx, model.NewTodo("buy milk"))
	require.NoError(t, err)

	done := true
	updated, err := repo.Update(ctx, model.TodoPatch{Completed: &done}.Apply(*created))
	require.NoError(t, err)
	assert.Equal(t, "buy milk", updated.Text)
	assert.True(t, updated.Completed)

	_, err = repo.Update(ctx, model.NewTodo("ghost"))
	assert.True(t, errors.Is(err, pgx.ErrNoRows))
}

func TestTodoRepository_Delete(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	created, err := repo.Insert(ctx, model.NewTodo("buy milk"))
	require.NoError(t, err)

	removed, err := repo.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	got, err := repo.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	removed, err = repo.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestTodoRepository_ListPagination(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	var texts []string
	for _, text := range []string{"one", "two", "three", "four", "five"} {
		_, err := repo.Insert(ctx, model.NewTodo(text))
		require.NoError(t, err)
		texts = append(texts, text)
	}

	all, err := repo.List(ctx, model.Pagination{})
	require.NoError(t, err)
	require.Len(t, all, 5)
	for i, todo := range all {
		assert.Equal(t, texts[i], todo.Text)
	}

	page, err := repo.List(ctx, model.Pagination{Offset: int64Ptr(0), Limit: int64Ptr(2)})
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "one", page[0].Text)
	assert.Equal(t, "two", page[1].Text)

	empty, err := repo.List(ctx, model.Pagination{Offset: int64Ptr(5)})
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestTodoRepository_UsesInjectedPool(t *testing.T) {
	repo := newTestRepository(t)

	// A repository without its own pool works when the request carries one.
	injected := NewTodoRepository(nil)
	ctx := database.NewContext(context.Background(), &database.Database{Pool: repo.db.(*pgxpool.Pool)})

	created, err := injected.Insert(ctx, model.NewTodo("from context"))
	require.NoError(t, err)

	got, err := repo.Get(context.Background(), created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "from context", got.Text)
}
